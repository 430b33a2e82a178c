package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/shearch/internal/ui/components"
)

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#7f57b4") // purple
	ColorSecondary  = lipgloss.Color("#436b77") // teal
	ColorAccent     = lipgloss.Color("#a7754e") // warm
	ColorBackground = lipgloss.Color("#16161d") // dark
	ColorText       = lipgloss.Color("#d7d9da") // main text
	ColorMuted      = lipgloss.Color("#9ba0bf") // muted text
	ColorWarning    = lipgloss.Color("#c78854") // warning
)

// --- Reusable Styles ---

var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	TagStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// Argument currently selected for replacement.
	MarkStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorAccent)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorText)
)

func editLineStyles() components.EditLineStyles {
	return components.EditLineStyles{
		Text:   NormalStyle,
		Mark:   MarkStyle,
		Cursor: CursorStyle,
	}
}
