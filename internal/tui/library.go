package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/lumina/internal/library"
	"github.com/blackwell-systems/lumina/internal/tui/delegate"
	"github.com/blackwell-systems/lumina/internal/util"
)

// shelfEntry wraps a library item for the list component.
type shelfEntry struct {
	item       library.Item
	highlights int
}

// FilterValue implements list.Item
func (e shelfEntry) FilterValue() string {
	return e.item.Title + " " + e.item.Author
}

func kindGlyph(k library.Kind) string {
	switch k {
	case library.KindBook:
		return "📖"
	case library.KindNews:
		return "📰"
	default:
		return "📄"
	}
}

func renderShelfEntry(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(shelfEntry)
	if !ok {
		return
	}

	meta := util.FormatDate(e.item.DateAdded)
	if e.item.Author != "" {
		meta = e.item.Author + " · " + meta
	}
	if e.highlights > 0 {
		meta += fmt.Sprintf(" · %d highlights", e.highlights)
	}

	display := fmt.Sprintf("%s %-32s %s", kindGlyph(e.item.Kind), truncate(e.item.Title, 32), StyleHelp.Render(meta))
	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
	}
}

func truncate(s string, n int) string {
	return xansi.Truncate(s, n, "…")
}

type libraryModel struct {
	deps Deps
	list list.Model

	confirming bool
	target     shelfEntry
	notice     string
	activeCmd  string

	width  int
	height int
}

func newLibraryModel(deps Deps, width, height int) libraryModel {
	l := list.New(nil, delegate.New(renderShelfEntry), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.HelpStyle = StyleHelp

	m := libraryModel{deps: deps, list: l}
	m.reload()
	m.resize(width, height)
	return m
}

// reload rebuilds the list from the store, newest first.
func (m *libraryModel) reload() {
	items := m.deps.Library.Items()
	entries := make([]list.Item, len(items))
	for i, it := range items {
		entries[i] = shelfEntry{item: it, highlights: len(m.deps.Highlights.ForItem(it.ID))}
	}
	m.list.SetItems(entries)
}

func (m *libraryModel) resize(width, height int) {
	m.width = width
	m.height = height

	h, v := StyleBorder.GetFrameSize()
	listWidth := width - 12 - h
	listHeight := height - 10 - v
	if listWidth < 50 {
		listWidth = 50
	}
	if listHeight < 5 {
		listHeight = 5
	}
	m.list.SetSize(listWidth, listHeight)
}

func (m libraryModel) Init() tea.Cmd {
	return nil
}

func (m libraryModel) Update(msg tea.Msg) (libraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y", "Y", "enter":
				m.confirming = false
				if err := m.deps.DeleteItem(m.target.item.ID); err != nil {
					m.notice = StyleError.Render("Delete failed: " + err.Error())
				} else {
					m.notice = StyleSuccess.Render(fmt.Sprintf("Deleted %q", m.target.item.Title))
				}
				m.reload()
				return m, nil
			case "n", "N", "esc":
				m.confirming = false
				return m, nil
			}
			return m, nil
		}

		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "esc":
			return m, Navigate(ViewHub)
		case "enter":
			if e, ok := m.list.SelectedItem().(shelfEntry); ok {
				m.activeCmd = "enter"
				return m, tea.Batch(HighlightCmd(), OpenReader(e.item.ID))
			}
		case "d", "x":
			if e, ok := m.list.SelectedItem().(shelfEntry); ok {
				m.target = e
				m.confirming = true
				m.notice = ""
				m.activeCmd = "d"
				return m, HighlightCmd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m libraryModel) View() string {
	accent := AccentColor(m.deps.Settings.ThemeColor)
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("My Library")

	var footer string
	switch {
	case m.confirming:
		n := len(m.deps.Highlights.ForItem(m.target.item.ID))
		prompt := fmt.Sprintf("  Delete %q", m.target.item.Title)
		if n > 0 {
			prompt += fmt.Sprintf(" and its %d highlights", n)
		}
		footer = StyleError.Render(prompt+"? ") + StyleHelp.Render("y/N")
	case m.deps.Library.Len() == 0:
		footer = StyleHelp.Render("  Your library is empty. Try Discover to find something to read.")
	default:
		footer = RenderFooterBar([]ShortcutEntry{
			{Key: "enter", Label: "enter read"},
			{Key: "d", Label: "d delete"},
			{Label: "/ filter"},
			{Label: "esc back"},
		}, m.activeCmd)
	}

	parts := []string{title, "", m.list.View()}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	parts = append(parts, footer)
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	outer := lipgloss.NewStyle().Padding(2, 4)
	return outer.Render(StyleBorder.Render(inner.Render(content)))
}
