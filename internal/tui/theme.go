package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the Charm theme recoloured to the app palette.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeCharm()

	purple := lipgloss.Color("#7D56F4")
	green := lipgloss.Color("#04B575")

	t.Focused.Title = t.Focused.Title.Foreground(purple)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(purple)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Group.Title = t.Focused.Title

	t.Blurred.Title = t.Focused.Title
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")

	return t
}
