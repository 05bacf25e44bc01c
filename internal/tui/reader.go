package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/blackwell-systems/lumina/internal/annotation"
	"github.com/blackwell-systems/lumina/internal/gemini"
	"github.com/blackwell-systems/lumina/internal/library"
	"github.com/blackwell-systems/lumina/internal/reader"
	"github.com/blackwell-systems/lumina/internal/util"
)

type readerMode int

const (
	modeRead readerMode = iota
	modeSelect
	modeRail
	modeExplain
)

// explainContextLimit bounds how much of the item body is sent along with a
// snippet when asking for an explanation.
const explainContextLimit = 1000

type readerModel struct {
	deps Deps
	item library.Item

	vp      viewport.Model
	lines   []string
	tracker *reader.Tracker
	spin    spinner.Model

	mode readerMode

	// selection cursor, in content coordinates
	curLine, curCol int
	pinned          bool
	span            reader.Span

	railIdx int

	explainRun     int
	explainBusy    bool
	explainSnippet string
	explainText    string

	notice string

	width  int
	height int
}

func newReaderModel(deps Deps, itemID string, width, height int) readerModel {
	var item library.Item
	if it := deps.Library.ByID(itemID); it != nil {
		item = *it
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor(deps.Settings.ThemeColor))

	m := readerModel{
		deps:    deps,
		item:    item,
		vp:      viewport.New(0, 0),
		tracker: reader.NewTracker(reader.Rect{}),
		spin:    sp,
	}
	m.resize(width, height)
	return m
}

func (m *readerModel) resize(width, height int) {
	m.width = width
	m.height = height

	w := width - 10
	if w < 40 {
		w = 40
	}
	h := height - 9
	if h < 5 {
		h = 5
	}

	m.vp.Width = w
	m.vp.Height = h
	m.lines = reader.WrapText(m.item.Content, w)
	m.tracker.SetRegion(reader.Rect{X: 0, Y: 0, Width: w, Height: len(m.lines)})

	// Wrapping changed the coordinate space, so any in-progress selection
	// is no longer meaningful.
	m.pinned = false
	m.tracker.Clear()
	m.clampCursor()
	m.refreshContent()
}

func (m *readerModel) clampCursor() {
	if len(m.lines) == 0 {
		m.curLine, m.curCol = 0, 0
		return
	}
	if m.curLine >= len(m.lines) {
		m.curLine = len(m.lines) - 1
	}
	if m.curLine < 0 {
		m.curLine = 0
	}
	if n := len([]rune(m.lines[m.curLine])); m.curCol > n {
		m.curCol = n
	}
	if m.curCol < 0 {
		m.curCol = 0
	}
}

func (m readerModel) Init() tea.Cmd {
	return nil
}

func (m readerModel) explainCmd(snippet string, run int) tea.Cmd {
	ai := m.deps.AI
	contextText := m.item.Content
	if len(contextText) > explainContextLimit {
		contextText = contextText[:explainContextLimit]
	}
	return func() tea.Msg {
		return explainDoneMsg{run: run, text: gemini.ExplainText(context.Background(), ai, snippet, contextText)}
	}
}

func (m readerModel) Update(msg tea.Msg) (readerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.explainBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case explainDoneMsg:
		if msg.run != m.explainRun || m.mode != modeExplain {
			return m, nil
		}
		m.explainBusy = false
		m.explainText = msg.text
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		switch m.mode {
		case modeSelect:
			return m.handleSelectKey(msg)
		case modeRail:
			return m.handleRailKey(msg)
		case modeExplain:
			if msg.String() == "esc" || msg.String() == "q" {
				m.mode = modeRead
				m.explainRun++ // late results are dropped
				m.explainBusy = false
			}
			return m, nil
		default:
			return m.handleReadKey(msg)
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m readerModel) handleReadKey(msg tea.KeyMsg) (readerModel, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, Navigate(ViewLibrary)
	case "v", "s":
		m.mode = modeSelect
		m.curLine = m.vp.YOffset
		m.curCol = 0
		m.pinned = false
		m.clampCursor()
		m.refreshContent()
		return m, nil
	case "h":
		m.mode = modeRail
		m.railIdx = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m readerModel) handleSelectKey(msg tea.KeyMsg) (readerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.pinned {
			m.pinned = false
			m.tracker.Clear()
			m.refreshContent()
			return m, nil
		}
		m.mode = modeRead
		m.refreshContent()
		return m, nil

	case " ", "v":
		m.pinned = true
		m.span = reader.Span{StartLine: m.curLine, StartCol: m.curCol, EndLine: m.curLine, EndCol: m.curCol}
		m.observeSelection()
		return m, nil

	case "up", "k":
		m.moveCursor(-1, 0)
		return m, nil
	case "down", "j":
		m.moveCursor(1, 0)
		return m, nil
	case "left":
		m.moveCursor(0, -1)
		return m, nil
	case "right":
		m.moveCursor(0, 1)
		return m, nil
	case "0", "home":
		m.curCol = 0
		m.afterCursorMove()
		return m, nil
	case "$", "end":
		if m.curLine < len(m.lines) {
			m.curCol = len([]rune(m.lines[m.curLine]))
		}
		m.afterCursorMove()
		return m, nil

	case "y", "g", "b", "p":
		return m.applyHighlight(msg.String())

	case "e":
		anchor := m.tracker.Anchor()
		if anchor == nil {
			return m, nil
		}
		snippet := anchor.Text
		m.tracker.Clear()
		m.pinned = false
		m.mode = modeExplain
		m.explainRun++
		m.explainBusy = true
		m.explainSnippet = snippet
		m.explainText = ""
		m.refreshContent()
		return m, tea.Batch(m.spin.Tick, m.explainCmd(snippet, m.explainRun))
	}
	return m, nil
}

var toolbarColors = map[string]annotation.Color{
	"y": annotation.ColorYellow,
	"g": annotation.ColorGreen,
	"b": annotation.ColorBlue,
	"p": annotation.ColorPink,
}

func (m readerModel) applyHighlight(key string) (readerModel, tea.Cmd) {
	anchor := m.tracker.Anchor()
	if anchor == nil {
		return m, nil
	}
	h := annotation.Highlight{
		ID:        uuid.NewString(),
		ItemID:    m.item.ID,
		Text:      anchor.Text,
		Color:     toolbarColors[key],
		CreatedAt: time.Now(),
	}
	if err := m.deps.Highlights.Add(h); err != nil {
		m.notice = StyleError.Render("Couldn't save the highlight: " + err.Error())
	} else {
		m.notice = StyleSuccess.Render("Highlighted")
	}
	m.tracker.Clear()
	m.pinned = false
	m.mode = modeRead
	m.refreshContent()
	return m, nil
}

func (m *readerModel) moveCursor(dl, dc int) {
	m.curLine += dl
	m.curCol += dc
	m.clampCursor()
	m.afterCursorMove()
}

func (m *readerModel) afterCursorMove() {
	// Keep the cursor on screen.
	if m.curLine < m.vp.YOffset {
		m.vp.SetYOffset(m.curLine)
	} else if m.curLine >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.curLine - m.vp.Height + 1)
	}
	if m.pinned {
		m.span.EndLine = m.curLine
		m.span.EndCol = m.curCol
		m.observeSelection()
	} else {
		m.refreshContent()
	}
}

// observeSelection feeds the current span through the tracker, which decides
// whether it deserves a toolbar anchor.
func (m *readerModel) observeSelection() {
	sel := reader.Extract(m.lines, m.span, 0, 0)
	m.tracker.Observe(sel)
	m.refreshContent()
}

func (m readerModel) handleRailKey(msg tea.KeyMsg) (readerModel, tea.Cmd) {
	hs := m.deps.Highlights.ForItem(m.item.ID)
	switch msg.String() {
	case "esc", "q", "h":
		m.mode = modeRead
		return m, nil
	case "up", "k":
		if m.railIdx > 0 {
			m.railIdx--
		}
		return m, nil
	case "down", "j":
		if m.railIdx < len(hs)-1 {
			m.railIdx++
		}
		return m, nil
	case "d", "x":
		if m.railIdx < len(hs) {
			if err := m.deps.Highlights.Remove(hs[m.railIdx].ID); err != nil {
				m.notice = StyleError.Render("Couldn't remove the highlight: " + err.Error())
			}
			if m.railIdx > 0 {
				m.railIdx--
			}
			m.refreshContent()
		}
		return m, nil
	}
	return m, nil
}

// refreshContent re-renders the decorated body into the viewport.
func (m *readerModel) refreshContent() {
	hs := m.deps.Highlights.ForItem(m.item.ID)

	var sel *reader.Span
	if m.mode == modeSelect && m.pinned {
		n := m.span.Normalize()
		sel = &n
	}

	cursorLine, cursorCol := -1, -1
	if m.mode == modeSelect {
		cursorLine, cursorCol = m.curLine, m.curCol
	}

	out := make([]string, len(m.lines))
	for i, ln := range m.lines {
		out[i] = decorateLine(ln, i, hs, sel, cursorLine, cursorCol)
	}
	m.vp.SetContent(strings.Join(out, "\n"))
}

// runePaint classifies each rune of a line for rendering.
type runePaint int

const (
	paintPlain runePaint = iota
	paintSelected
	paintCursor
)

// decorateLine renders one content line with highlight backgrounds, the
// active selection, and the selection cursor. Highlights attach by literal
// text match, first occurrence per line.
func decorateLine(line string, lineNo int, hs []annotation.Highlight, sel *reader.Span, cursorLine, cursorCol int) string {
	runes := []rune(line)

	paints := make([]runePaint, len(runes)+1) // +1 so the cursor can sit past EOL
	colors := make([]*annotation.Color, len(runes))

	for i := range hs {
		for _, frag := range strings.Split(hs[i].Text, "\n") {
			if frag == "" {
				continue
			}
			idx := strings.Index(line, frag)
			if idx < 0 {
				continue
			}
			lo := len([]rune(line[:idx]))
			hi := lo + len([]rune(frag))
			for r := lo; r < hi && r < len(runes); r++ {
				if colors[r] == nil {
					colors[r] = &hs[i].Color
				}
			}
		}
	}

	if sel != nil && lineNo >= sel.StartLine && lineNo <= sel.EndLine {
		lo, hi := 0, len(runes)
		if lineNo == sel.StartLine {
			lo = sel.StartCol
		}
		if lineNo == sel.EndLine {
			hi = sel.EndCol + 1
		}
		for r := lo; r < hi && r < len(paints); r++ {
			paints[r] = paintSelected
		}
	}

	if lineNo == cursorLine && cursorCol >= 0 && cursorCol < len(paints) {
		paints[cursorCol] = paintCursor
	}

	selStyle := lipgloss.NewStyle().Reverse(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true).Bold(true)

	var b strings.Builder
	for r := 0; r <= len(runes); r++ {
		var ch string
		if r < len(runes) {
			ch = string(runes[r])
		} else if paints[r] == paintCursor {
			ch = " " // cursor resting past end of line
		} else {
			break
		}

		switch {
		case paints[r] == paintCursor:
			b.WriteString(cursorStyle.Render(ch))
		case paints[r] == paintSelected:
			b.WriteString(selStyle.Render(ch))
		case r < len(colors) && colors[r] != nil:
			b.WriteString(HighlightStyle(*colors[r]).Render(ch))
		default:
			b.WriteString(ch)
		}
	}
	return b.String()
}

// renderToolbar draws the floating color toolbar near the anchor.
func (m readerModel) renderToolbar(anchor *reader.Anchor) string {
	bar := fmt.Sprintf("%s y  %s g  %s b  %s p  │ e explain",
		ColorDot(annotation.ColorYellow),
		ColorDot(annotation.ColorGreen),
		ColorDot(annotation.ColorBlue),
		ColorDot(annotation.ColorPink),
	)
	box := StyleBorder.Padding(0, 1).Render(bar)

	// Nudge toward the anchor's column without running off either edge.
	indent := anchor.X - lipgloss.Width(box)/2
	if max := m.vp.Width - lipgloss.Width(box); indent > max {
		indent = max
	}
	if indent < 0 {
		indent = 0
	}
	return lipgloss.NewStyle().MarginLeft(indent).Render(box)
}

func (m readerModel) renderRail() string {
	hs := m.deps.Highlights.ForItem(m.item.ID)
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Highlights"))
	b.WriteString("\n\n")
	if len(hs) == 0 {
		b.WriteString(StyleHelp.Render("No highlights yet. Press v to select a passage."))
		b.WriteString("\n")
	}
	for i, h := range hs {
		excerpt := truncate(strings.ReplaceAll(h.Text, "\n", " "), 60)
		row := fmt.Sprintf("%s %s  %s", ColorDot(h.Color), excerpt, StyleHelp.Render(util.FormatDate(h.CreatedAt)))
		if i == m.railIdx {
			b.WriteString(StyleHighlight.Render("› " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Label: "j/k move"},
		{Label: "d remove"},
		{Label: "esc close"},
	}, ""))
	return b.String()
}

func (m readerModel) renderExplain() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Explain"))
	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("“" + truncate(strings.ReplaceAll(m.explainSnippet, "\n", " "), 80) + "”"))
	b.WriteString("\n\n")
	if m.explainBusy {
		b.WriteString(m.spin.View() + " Thinking…")
	} else {
		wrap := lipgloss.NewStyle().Width(m.vp.Width)
		b.WriteString(wrap.Render(m.explainText))
	}
	b.WriteString("\n\n")
	b.WriteString(StyleHelp.Render("esc close"))
	return b.String()
}

func (m readerModel) View() string {
	accent := AccentColor(m.deps.Settings.ThemeColor)

	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(m.item.Title)
	meta := m.item.Author
	if meta != "" {
		meta += " · "
	}
	meta += util.FormatDate(m.item.DateAdded)
	if n := len(m.deps.Highlights.ForItem(m.item.ID)); n > 0 {
		meta += fmt.Sprintf(" · %d highlights", n)
	}

	var body string
	switch m.mode {
	case modeRail:
		body = m.renderRail()
	case modeExplain:
		body = m.renderExplain()
	default:
		body = m.vp.View()
	}

	var footer string
	switch m.mode {
	case modeSelect:
		if anchor := m.tracker.Anchor(); anchor != nil {
			footer = m.renderToolbar(anchor)
		} else if m.pinned {
			footer = StyleHelp.Render("  Extend the selection, then pick a color.")
		} else {
			footer = RenderFooterBar([]ShortcutEntry{
				{Label: "move cursor"},
				{Label: "space start selection"},
				{Label: "esc cancel"},
			}, "")
		}
	case modeRead:
		footer = RenderFooterBar([]ShortcutEntry{
			{Label: "↑↓ scroll"},
			{Label: "v select"},
			{Label: "h highlights"},
			{Label: "esc back"},
		}, "")
	}

	parts := []string{title, StyleHelp.Render(meta), "", body}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	if footer != "" {
		parts = append(parts, footer)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	outer := lipgloss.NewStyle().Padding(1, 3)
	return outer.Render(StyleBorder.Render(inner.Render(content)))
}
