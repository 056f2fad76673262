package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/reflex/internal/model"
)

var (
	colorFg     = lipgloss.Color("#F0F0F0")
	colorDim    = lipgloss.Color("#6E6E6E")
	colorMuted  = lipgloss.Color("#8C8C8C")
	colorPanel  = lipgloss.Color("#3F3F46")
	colorDanger = lipgloss.Color("#FF4D4F")
	colorGold   = lipgloss.Color("#C89A3A")

	titleStyle   = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(colorFg)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle   = lipgloss.NewStyle().Foreground(colorDim).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	bestStyle    = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPanel).Padding(0, 1)
	confirmStyle = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)

// themeColors maps each accent to its terminal color.
var themeColors = map[model.ThemeColor]lipgloss.Color{
	model.ThemeIndigo:  lipgloss.Color("#6366F1"),
	model.ThemeRose:    lipgloss.Color("#F43F5E"),
	model.ThemeEmerald: lipgloss.Color("#10B981"),
	model.ThemeAmber:   lipgloss.Color("#F59E0B"),
}

func accent(theme model.ThemeColor) lipgloss.Color {
	if c, ok := themeColors[theme]; ok {
		return c
	}
	return themeColors[model.ThemeIndigo]
}

func accentStyle(theme model.ThemeColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accent(theme)).Bold(true)
}

func settingsHuhTheme(theme model.ThemeColor) *huh.Theme {
	t := huh.ThemeBase()
	c := accent(theme)

	t.Focused.Title = lipgloss.NewStyle().Foreground(c).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(c)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorMuted)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(c).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(colorDim)

	return t
}
