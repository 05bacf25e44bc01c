package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/lumina/internal/annotation"
	"github.com/blackwell-systems/lumina/internal/settings"
)

// Color palette matching existing fatih/color usage
var (
	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text and help
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for warnings and the active footer shortcut
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	// ColorGreen for success indicators
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorRed for errors and destructive prompts
	ColorRed = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	// StyleError is for error lines
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleSuccess is for confirmation lines
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)
)

// themeAccents maps the user's theme preference to an accent color.
var themeAccents = map[settings.ThemeColor]lipgloss.AdaptiveColor{
	settings.ThemeTeal:   {Light: "#0D9488", Dark: "#2DD4BF"},
	settings.ThemeBlue:   {Light: "#2563EB", Dark: "#60A5FA"},
	settings.ThemeViolet: {Light: "#7C3AED", Dark: "#A78BFA"},
}

// AccentColor returns the accent for a theme, defaulting to teal for
// anything unrecognized.
func AccentColor(t settings.ThemeColor) lipgloss.AdaptiveColor {
	if c, ok := themeAccents[t]; ok {
		return c
	}
	return themeAccents[settings.ThemeTeal]
}

// highlightStyles render highlighted passages inside reader content. The
// backgrounds stay muted so the foreground text remains legible on both
// light and dark terminals.
var highlightStyles = map[annotation.Color]lipgloss.Style{
	annotation.ColorYellow: lipgloss.NewStyle().Background(lipgloss.Color("227")).Foreground(lipgloss.Color("16")),
	annotation.ColorGreen:  lipgloss.NewStyle().Background(lipgloss.Color("157")).Foreground(lipgloss.Color("16")),
	annotation.ColorBlue:   lipgloss.NewStyle().Background(lipgloss.Color("117")).Foreground(lipgloss.Color("16")),
	annotation.ColorPink:   lipgloss.NewStyle().Background(lipgloss.Color("218")).Foreground(lipgloss.Color("16")),
}

// HighlightStyle returns the content style for a highlight color.
func HighlightStyle(c annotation.Color) lipgloss.Style {
	if s, ok := highlightStyles[c]; ok {
		return s
	}
	return highlightStyles[annotation.ColorYellow]
}

// colorDots are the swatch glyphs shown in highlight lists and the toolbar.
var colorDots = map[annotation.Color]lipgloss.Style{
	annotation.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	annotation.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	annotation.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	annotation.ColorPink:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
}

// ColorDot renders the ● swatch for a highlight color.
func ColorDot(c annotation.Color) string {
	if s, ok := colorDots[c]; ok {
		return s.Render("●")
	}
	return "●"
}
