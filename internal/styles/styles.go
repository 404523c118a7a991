// Package styles provides shared lipgloss styles for CLI prompts.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// CurrentStyle highlights the current value in listings.
var CurrentStyle = lipgloss.NewStyle().
	Foreground(ColorGreen).
	Bold(true)

// MutedStyle renders secondary text such as rolled-back values.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used for answer prompts.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorGreen)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorGreen)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorYellow)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorYellow)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorBlue)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(ColorWhite)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(ColorGray)

	t.Blurred = t.Focused
	return t
}
