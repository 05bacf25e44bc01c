package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/lumina/internal/settings"
)

const (
	settingsFieldName = iota
	settingsFieldImages
	settingsFieldTheme
	settingsFieldCount
)

var themeOrder = []settings.ThemeColor{
	settings.ThemeTeal,
	settings.ThemeBlue,
	settings.ThemeViolet,
}

type settingsModel struct {
	deps Deps

	name    textinput.Model
	images  bool
	theme   settings.ThemeColor
	focused int

	notice string

	width  int
	height int
}

func newSettingsModel(deps Deps, width, height int) settingsModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.SetValue(deps.Settings.UserName)
	ti.CharLimit = 60
	ti.Width = 32
	ti.Prompt = "│ "
	ti.Focus()

	return settingsModel{
		deps:   deps,
		name:   ti,
		images: deps.Settings.EnableAIImages,
		theme:  deps.Settings.ThemeColor,
		width:  width,
		height: height,
	}
}

func (m settingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Navigate(ViewHub)

		case "enter":
			m.deps.Settings.UserName = strings.TrimSpace(m.name.Value())
			m.deps.Settings.EnableAIImages = m.images
			m.deps.Settings.ThemeColor = m.theme
			if err := m.deps.SaveSettings(); err != nil {
				m.notice = StyleError.Render("Couldn't save settings: " + err.Error())
				return m, nil
			}
			return m, Navigate(ViewHub)

		case "tab", "down", "shift+tab", "up":
			if msg.String() == "up" || msg.String() == "shift+tab" {
				m.focused--
			} else {
				m.focused++
			}
			if m.focused < 0 {
				m.focused = settingsFieldCount - 1
			} else if m.focused >= settingsFieldCount {
				m.focused = 0
			}
			if m.focused == settingsFieldName {
				return m, m.name.Focus()
			}
			m.name.Blur()
			return m, nil

		case " ", "left", "right":
			switch m.focused {
			case settingsFieldImages:
				m.images = !m.images
				return m, nil
			case settingsFieldTheme:
				m.theme = nextTheme(m.theme, msg.String() != "left")
				return m, nil
			}
		}
	}

	if m.focused == settingsFieldName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func nextTheme(t settings.ThemeColor, forward bool) settings.ThemeColor {
	idx := 0
	for i, c := range themeOrder {
		if c == t {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(themeOrder)
	} else {
		idx = (idx + len(themeOrder) - 1) % len(themeOrder)
	}
	return themeOrder[idx]
}

func (m settingsModel) View() string {
	accent := AccentColor(m.theme)
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Settings")

	label := lipgloss.NewStyle().Foreground(ColorGray).Width(12).Align(lipgloss.Right).PaddingRight(1)
	labelActive := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Width(12).Align(lipgloss.Right).PaddingRight(1)

	renderLabel := func(field int, text string) string {
		if field == m.focused {
			return labelActive.Render("› " + text)
		}
		return label.Render(text)
	}

	imagesVal := "off"
	if m.images {
		imagesVal = "on"
	}

	var themeParts []string
	for _, c := range themeOrder {
		swatch := lipgloss.NewStyle().Foreground(AccentColor(c)).Render("●")
		name := string(c)
		if c == m.theme {
			name = StyleHighlight.Render(name)
		} else {
			name = StyleHelp.Render(name)
		}
		themeParts = append(themeParts, swatch+" "+name)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(renderLabel(settingsFieldName, "Name"))
	b.WriteString(m.name.View())
	b.WriteString("\n\n")
	b.WriteString(renderLabel(settingsFieldImages, "AI covers"))
	b.WriteString(StyleNormal.Render(imagesVal))
	b.WriteString(StyleHelp.Render("  (space to toggle)"))
	b.WriteString("\n\n")
	b.WriteString(renderLabel(settingsFieldTheme, "Theme"))
	b.WriteString(strings.Join(themeParts, "  "))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Label: "tab navigate"},
		{Label: "space change"},
		{Label: "enter save"},
		{Label: "esc cancel"},
	}, ""))

	inner := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	outer := lipgloss.NewStyle().Padding(2, 4)
	return outer.Render(StyleBorder.Render(inner.Render(b.String())))
}
