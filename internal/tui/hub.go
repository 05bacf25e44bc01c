package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/lumina/internal/tui/delegate"
)

// menuItem represents an action in the hub menu
type menuItem struct {
	view        View
	label       string
	description string
	quit        bool
}

// FilterValue implements list.Item
func (m menuItem) FilterValue() string {
	return m.label + " " + m.description
}

var hubMenu = []menuItem{
	{view: ViewDiscover, label: "Discover", description: "Search for books, news, and articles"},
	{view: ViewLibrary, label: "My Library", description: "Read and annotate saved items"},
	{view: ViewSettings, label: "Settings", description: "Name, theme, and AI image options"},
	{label: "Quit", description: "Exit lumina", quit: true},
}

func renderMenuItem(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(menuItem)
	if !ok {
		return
	}

	display := fmt.Sprintf("%-14s %s", mi.label, StyleHelp.Render(mi.description))
	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
	}
}

type hubModel struct {
	deps   Deps
	list   list.Model
	keys   StandardKeys
	width  int
	height int
}

func newHubModel(deps Deps, width, height int) hubModel {
	items := make([]list.Item, len(hubMenu))
	for i, mi := range hubMenu {
		items[i] = mi
	}

	l := list.New(items, delegate.NewWithSpacing(renderMenuItem, 1), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := hubModel{deps: deps, list: l, keys: NewStandardKeys(), width: width, height: height}
	m.resize(width, height)
	return m
}

func (m *hubModel) resize(width, height int) {
	m.width = width
	m.height = height

	const headerLines = 5
	h, v := StyleBorder.GetFrameSize()
	listWidth := width - 12 - h
	listHeight := height - 6 - v - headerLines
	if listWidth < 40 {
		listWidth = 40
	}
	if listHeight < len(hubMenu)*2 {
		listHeight = len(hubMenu) * 2
	}
	m.list.SetSize(listWidth, listHeight)
}

// greeting returns the salutation for the hub header.
func greeting(name string, now time.Time) string {
	var part string
	switch h := now.Hour(); {
	case h < 12:
		part = "Good morning"
	case h < 18:
		part = "Good afternoon"
	default:
		part = "Good evening"
	}
	if name == "" {
		return part
	}
	return fmt.Sprintf("%s, %s", part, name)
}

func (m hubModel) Init() tea.Cmd {
	return nil
}

func (m hubModel) Update(msg tea.Msg) (hubModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back), msg.String() == "q":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if mi, ok := m.list.SelectedItem().(menuItem); ok {
				if mi.quit {
					return m, tea.Quit
				}
				return m, Navigate(mi.view)
			}
		case msg.String() == "d":
			return m, Navigate(ViewDiscover)
		case msg.String() == "l":
			return m, Navigate(ViewLibrary)
		case msg.String() == "s":
			return m, Navigate(ViewSettings)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m hubModel) View() string {
	accent := AccentColor(m.deps.Settings.ThemeColor)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Padding(0, 1).
		Render("lumina")

	hello := lipgloss.NewStyle().
		Foreground(ColorWhite).
		Padding(0, 1).
		Render(greeting(m.deps.Settings.UserName, time.Now()))

	status := StyleHelp.Padding(0, 1).Render(fmt.Sprintf(
		"%d items · %d highlights", m.deps.Library.Len(), m.deps.Highlights.Len()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title, hello, status, "", m.list.View(),
		RenderFooterBar([]ShortcutEntry{
			{Label: "enter select"},
			{Label: "d/l/s jump"},
			{Label: "q quit"},
		}, ""),
	)

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	outer := lipgloss.NewStyle().Padding(2, 4)
	return outer.Render(StyleBorder.Render(inner.Render(content)))
}
