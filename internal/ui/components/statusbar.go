package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	segmentStyle = lipgloss.NewStyle().
			MarginRight(2)
	statusBarStyle = lipgloss.NewStyle().
			PaddingLeft(1)
	statusNoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c7a16a"))
)

// StatusBar renders key hints on one or more rows, wrapped to width, with an
// optional note (reload notices, skipped candidates) on its own line.
func StatusBar(hints []string, note string, width int) string {
	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		segments = append(segments, segmentStyle.Render(h))
	}
	rows := wrapSegments(segments, width)
	if note = SanitizeOneLine(note); note != "" {
		if width > 0 {
			note = ClampTextWidth(note, width-1)
		}
		rows = append(rows, statusNoteStyle.Render(note))
	}
	return statusBarStyle.Render(strings.Join(rows, "\n"))
}

// Hint formats a single keybind hint like "tab edit".
func Hint(key, desc string) string {
	return keyCapStyle.Render(key) + hintDescStyle.Render(" "+desc)
}

func wrapSegments(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	rows := make([]string, 0, 2)
	var current []string
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if currentWidth > 0 && currentWidth+segWidth > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = []string{seg}
			currentWidth = segWidth
			continue
		}
		current = append(current, seg)
		currentWidth += segWidth
	}
	if len(current) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	}
	return rows
}
