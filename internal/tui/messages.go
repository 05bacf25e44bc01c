package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/blackwell-systems/lumina/internal/library"
)

// NavigateMsg switches the active view. ItemID is only meaningful when
// navigating to the reader.
type NavigateMsg struct {
	To     View
	ItemID string
}

// Navigate returns a command that switches to the given view.
func Navigate(to View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// OpenReader returns a command that opens an item in the reader.
func OpenReader(itemID string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: ViewReader, ItemID: itemID} }
}

// Async results carry the run token of the operation that produced them.
// A model drops any message whose token does not match its current run, so
// a superseded search or import can never overwrite newer state.

// stageMsg reports a pipeline stage transition.
type stageMsg struct {
	run   int
	stage ingest.Stage
}

// searchDoneMsg delivers the outcome of a grounded search.
type searchDoneMsg struct {
	run int
	res *ingest.Result
	err error
}

// importDoneMsg delivers the outcome of an import.
type importDoneMsg struct {
	run    int
	item   library.Item
	stages []ingest.StageResult
	err    error
}

// explainDoneMsg delivers an explanation for a selected passage. The text is
// always printable; failures arrive as the apology string.
type explainDoneMsg struct {
	run  int
	text string
}

// waitForStage blocks on the progress channel and resurfaces the next stage
// transition as a message. The model re-issues it after each stageMsg.
func waitForStage(ch <-chan ingest.Stage, run int) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stageMsg{run: run, stage: s}
	}
}
