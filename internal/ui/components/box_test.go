package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBoxContentWidth(t *testing.T) {
	assert.Equal(t, 0, BoxContentWidth(0))
	assert.Equal(t, 86, BoxContentWidth(100))
	assert.Equal(t, 116, BoxContentWidth(200))
	// Narrow terminals never get a box wider than the screen.
	assert.Equal(t, 26, BoxContentWidth(30))
}

func TestClampTextWidth(t *testing.T) {
	assert.Equal(t, "git status", ClampTextWidth("git status", 20))
	assert.Equal(t, "git st…", ClampTextWidth("git status", 7))
	assert.Equal(t, "a b", ClampTextWidth("a\nb", 0))
}

func TestTitledBoxPlacesTitleInBorder(t *testing.T) {
	out := TitledBox("shearch", "hello", 60, false)
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "shearch")
	assert.Contains(t, out, "hello")
	for _, line := range lines {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(line))
	}
}

func TestTitledBoxWithoutTitle(t *testing.T) {
	out := TitledBox("", "x", 0, true)
	assert.Contains(t, out, "x")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "", truncateRunes("abc", 0))
	assert.Equal(t, "abc", truncateRunes("abc", 5))
}
