package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/blackwell-systems/lumina/internal/library"
)

type discoverPhase int

const (
	phaseInput discoverPhase = iota
	phaseSearching
	phaseResult
	phaseImporting
	phaseImported
)

// suggestions seed the discovery screen before the user has typed anything.
var suggestions = []string{
	"The history of the Roman aqueducts",
	"Latest breakthroughs in fusion energy",
	"Classic science fiction short stories",
	"This week's technology news",
}

type discoverModel struct {
	deps     Deps
	pipeline *ingest.Pipeline
	stageCh  chan ingest.Stage

	input  textinput.Model
	spin   spinner.Model
	result viewport.Model

	phase  discoverPhase
	run    int
	stage  ingest.Stage
	found  *ingest.Result
	saved  library.Item
	notes  []string
	errMsg string
	sugIdx int

	width  int
	height int
}

func newDiscoverModel(deps Deps, width, height int) discoverModel {
	ti := textinput.New()
	ti.Placeholder = "What would you like to read about?"
	ti.CharLimit = 200
	ti.Prompt = "│ "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor(deps.Settings.ThemeColor))

	// Stage transitions flow from the pipeline goroutine into the Update
	// loop through this channel. Sends never block; a dropped transition
	// only costs a label refresh.
	ch := make(chan ingest.Stage, 8)
	pl := deps.NewPipeline(func(s ingest.Stage) {
		select {
		case ch <- s:
		default:
		}
	})

	m := discoverModel{
		deps:     deps,
		pipeline: pl,
		stageCh:  ch,
		input:    ti,
		spin:     sp,
		result:   viewport.New(0, 0),
		sugIdx:   -1,
	}
	m.resize(width, height)
	return m
}

func (m *discoverModel) resize(width, height int) {
	m.width = width
	m.height = height

	w := width - 12
	if w < 50 {
		w = 50
	}
	h := height - 14
	if h < 6 {
		h = 6
	}
	m.input.Width = w - 4
	m.result.Width = w
	m.result.Height = h
	if m.found != nil {
		m.result.SetContent(m.renderResult(w))
	}
}

func (m discoverModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m discoverModel) busy() bool {
	return m.phase == phaseSearching || m.phase == phaseImporting
}

func (m discoverModel) searchCmd(query string, run int) tea.Cmd {
	pl := m.pipeline
	return func() tea.Msg {
		res, err := pl.Search(context.Background(), query)
		return searchDoneMsg{run: run, res: res, err: err}
	}
}

func (m discoverModel) importCmd(run int) tea.Cmd {
	pl, res, st := m.pipeline, m.found, *m.deps.Settings
	return func() tea.Msg {
		item, stages, err := pl.Import(context.Background(), res, st)
		return importDoneMsg{run: run, item: item, stages: stages, err: err}
	}
}

func (m discoverModel) Update(msg tea.Msg) (discoverModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case stageMsg:
		if msg.run == m.run && m.busy() {
			m.stage = msg.stage
		}
		return m, waitForStage(m.stageCh, m.run)

	case searchDoneMsg:
		if msg.run != m.run || m.phase != phaseSearching {
			return m, nil
		}
		if msg.err != nil {
			m.phase = phaseInput
			m.errMsg = searchFailureNotice(msg.err)
			return m, nil
		}
		m.found = msg.res
		m.phase = phaseResult
		m.result.SetContent(m.renderResult(m.result.Width))
		m.result.GotoTop()
		return m, nil

	case importDoneMsg:
		if msg.run != m.run || m.phase != phaseImporting {
			return m, nil
		}
		if msg.err != nil {
			if errors.Is(msg.err, ingest.ErrImportInFlight) {
				m.phase = phaseResult
				return m, nil
			}
			m.phase = phaseResult
			m.errMsg = "Saving failed: " + msg.err.Error()
			return m, nil
		}
		m.saved = msg.item
		m.notes = stageNotes(msg.stages)
		m.phase = phaseImported
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m discoverModel) handleKey(msg tea.KeyMsg) (discoverModel, tea.Cmd) {
	switch m.phase {
	case phaseInput:
		switch msg.String() {
		case "esc":
			return m, Navigate(ViewHub)
		case "tab":
			m.sugIdx = (m.sugIdx + 1) % len(suggestions)
			m.input.SetValue(suggestions[m.sugIdx])
			m.input.CursorEnd()
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			if !m.deps.AI.Available() {
				m.errMsg = "No API key configured. Set GEMINI_API_KEY to enable discovery."
				return m, nil
			}
			m.run++
			m.phase = phaseSearching
			m.stage = ingest.StageSearching
			m.errMsg = ""
			m.found = nil
			return m, tea.Batch(
				m.spin.Tick,
				m.searchCmd(query, m.run),
				waitForStage(m.stageCh, m.run),
			)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseSearching, phaseImporting:
		if msg.String() == "esc" {
			// Abandon the run; its messages carry a stale token from here on.
			m.run++
			m.phase = phaseInput
			return m, nil
		}
		return m, nil

	case phaseResult:
		switch msg.String() {
		case "esc":
			return m, Navigate(ViewHub)
		case "n", "/":
			m.phase = phaseInput
			m.errMsg = ""
			return m, textinput.Blink
		case "s", "enter":
			m.run++
			m.phase = phaseImporting
			m.stage = ingest.StageAnalyzing
			m.errMsg = ""
			return m, tea.Batch(
				m.spin.Tick,
				m.importCmd(m.run),
				waitForStage(m.stageCh, m.run),
			)
		}
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd

	case phaseImported:
		switch msg.String() {
		case "o", "enter":
			return m, OpenReader(m.saved.ID)
		case "n", "/":
			m.phase = phaseInput
			m.input.SetValue("")
			m.errMsg = ""
			return m, textinput.Blink
		case "esc":
			return m, Navigate(ViewHub)
		}
	}
	return m, nil
}

// searchFailureNotice folds a search error into one calm line; the raw error
// stays out of the UI.
func searchFailureNotice(err error) string {
	if errors.Is(err, ingest.ErrEmptyQuery) {
		return ""
	}
	return "The search didn't go through. Check your connection and try again."
}

// stageNotes converts non-success stage outcomes into user-facing notices.
func stageNotes(stages []ingest.StageResult) []string {
	var notes []string
	for _, sr := range stages {
		switch {
		case sr.Stage == ingest.StageAnalyzing && sr.Outcome == ingest.OutcomeFallback:
			notes = append(notes, "Couldn't fully analyze the result, so it was saved as-is.")
		case sr.Stage == ingest.StageGeneratingArt && sr.Outcome == ingest.OutcomeFailed:
			notes = append(notes, "Cover art generation failed; saved without a cover.")
		case sr.Stage == ingest.StageGeneratingArt && sr.Outcome == ingest.OutcomeFallback:
			notes = append(notes, "No cover art was produced.")
		}
	}
	return notes
}

func (m discoverModel) renderResult(width int) string {
	if m.found == nil {
		return ""
	}
	var b strings.Builder
	wrapStyle := lipgloss.NewStyle().Width(width)
	b.WriteString(wrapStyle.Render(m.found.Text))
	if len(m.found.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(StyleHeader.Render("Sources"))
		b.WriteString("\n")
		for _, src := range m.found.Sources {
			title := src.Title
			if title == "" {
				title = src.URI
			}
			b.WriteString(StyleHelp.Render("  • " + title))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m discoverModel) View() string {
	accent := AccentColor(m.deps.Settings.ThemeColor)
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Discover")

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	switch m.phase {
	case phaseInput:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(StyleHelp.Render("Suggestions (tab to cycle):"))
		b.WriteString("\n")
		for i, s := range suggestions {
			if i == m.sugIdx {
				b.WriteString(StyleHighlight.Render("  › " + s))
			} else {
				b.WriteString(StyleHelp.Render("    " + s))
			}
			b.WriteString("\n")
		}
		if m.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(StyleError.Render(m.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Label: "enter search"},
			{Label: "tab suggestion"},
			{Label: "esc back"},
		}, ""))

	case phaseSearching, phaseImporting:
		label := m.stage.Label()
		if label == "" {
			label = "Working…"
		}
		b.WriteString(fmt.Sprintf("%s %s\n\n", m.spin.View(), label))
		b.WriteString(StyleHelp.Render("esc cancel"))

	case phaseResult:
		b.WriteString(StyleHelp.Render(fmt.Sprintf("Results for %q", m.found.Query)))
		b.WriteString("\n\n")
		b.WriteString(m.result.View())
		b.WriteString("\n")
		if m.errMsg != "" {
			b.WriteString(StyleError.Render(m.errMsg))
			b.WriteString("\n")
		}
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Label: "s save to library"},
			{Label: "n new search"},
			{Label: "↑↓ scroll"},
			{Label: "esc back"},
		}, ""))

	case phaseImported:
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("✓ Saved %q to your library", m.saved.Title)))
		b.WriteString("\n")
		for _, note := range m.notes {
			b.WriteString(StyleHelp.Render("  " + note))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Label: "o open"},
			{Label: "n new search"},
			{Label: "esc back"},
		}, ""))
	}

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	outer := lipgloss.NewStyle().Padding(2, 4)
	return outer.Render(StyleBorder.Render(inner.Render(b.String())))
}
