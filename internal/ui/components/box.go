package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxBorderColor = lipgloss.Color("#273540")

	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(boxBorderColor).
			Padding(0, 1)

	boxBorderActive = boxBorder.
			BorderForeground(lipgloss.Color("#7f57b4"))

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)
)

// boxWidth picks the outer width for a terminal of the given width: most of
// the screen, but never wider than a comfortable command line.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 90 / 100
	w = max(w, 40)
	w = min(w, 120)
	return min(w, width)
}

// BoxContentWidth returns the inner content width excluding border and padding.
func BoxContentWidth(width int) int {
	w := boxWidth(width)
	if w <= 0 {
		return 0
	}
	// Border adds 2, padding adds 2.
	return max(w-4, 0)
}

// ClampTextWidth sanitizes text to one line and truncates it to width cells.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

// TitledBox renders content in a rounded box with the title set into the
// top border. Active boxes use the accent border.
func TitledBox(title, content string, width int, active bool) string {
	style := boxBorder
	color := boxBorderColor
	if active {
		style = boxBorderActive
		color = lipgloss.Color("#7f57b4")
	}
	if w := boxWidth(width); w > 0 {
		// lipgloss Width excludes the border.
		style = style.Width(w - 2)
	}
	boxed := style.Render(content)
	if title == "" {
		return boxed
	}

	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middle := lineWidth - 2
	label := fmt.Sprintf(" %s ", title)
	if lipgloss.Width(label) > middle {
		label = truncateRunes(label, middle)
	}
	right := max(middle-lipgloss.Width(label)-1, 0)
	left := middle - lipgloss.Width(label) - right

	borderStyle := lipgloss.NewStyle().Foreground(color)
	lines[0] = borderStyle.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(label) +
		borderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	var b strings.Builder
	b.Grow(n)
	i := 0
	for _, r := range s {
		if i >= n {
			break
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}
