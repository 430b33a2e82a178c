package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHintIncludesKeyAndDesc(t *testing.T) {
	out := Hint("tab", "edit")
	assert.Contains(t, out, "tab")
	assert.Contains(t, out, "edit")
}

func TestStatusBarRendersHintsAndNote(t *testing.T) {
	out := StatusBar([]string{Hint("esc", "quit")}, "catalog reloaded", 0)
	assert.Contains(t, out, "quit")
	assert.Contains(t, out, "catalog reloaded")
}

func TestStatusBarEmpty(t *testing.T) {
	out := StatusBar(nil, "", 80)
	assert.Empty(t, strings.TrimSpace(SanitizeText(out)))
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	segments := []string{"123456", "abcdef", "ghijkl"}
	rows := wrapSegments(segments, 10)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.LessOrEqual(t, lipgloss.Width(row), 10)
	}
}
