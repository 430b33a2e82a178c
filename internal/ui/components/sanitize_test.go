package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.False(t, strings.Contains(out, "\x1b"))
	assert.False(t, strings.Contains(out, "\n"))
	assert.False(t, strings.Contains(out, "\t"))
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	input := "safe\u202eexe.txt"
	out := SanitizeText(input)

	assert.NotContains(t, out, "\u202e")
}

func TestSanitizeTextStripsColorCodes(t *testing.T) {
	assert.Equal(t, "git status", SanitizeText("\x1b[1;31mgit\x1b[0m status"))
}

func TestSanitizeOneLineKeepsWordsApart(t *testing.T) {
	assert.Equal(t, "ls  -la", SanitizeOneLine("ls\n\t-la"))
}

func TestDisplayRuneReplacesControls(t *testing.T) {
	assert.Equal(t, 'a', displayRune('a'))
	assert.Equal(t, ' ', displayRune(' '))
	assert.Equal(t, '?', displayRune('\x07'))
	assert.Equal(t, '?', displayRune('\u202e'))
}
