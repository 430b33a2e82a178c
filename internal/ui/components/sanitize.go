package components

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
	oscPattern = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
)

var bidiControls = map[rune]struct{}{
	'\u202a': {},
	'\u202b': {},
	'\u202c': {},
	'\u202d': {},
	'\u202e': {},
	'\u2066': {},
	'\u2067': {},
	'\u2068': {},
	'\u2069': {},
	'\u200e': {},
	'\u200f': {},
}

// SanitizeText strips escape sequences, bidi overrides and control
// characters other than newline and tab. Catalog files are user supplied and
// end up painted verbatim, so everything drawn goes through here.
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	cleaned := oscPattern.ReplaceAllString(input, "")
	cleaned = csiPattern.ReplaceAllString(cleaned, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if _, ok := bidiControls[r]; ok {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
}

// SanitizeOneLine is SanitizeText with newlines and tabs turned into spaces.
func SanitizeOneLine(input string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		return r
	}, SanitizeText(input))
}

// displayRune maps a rune to something safe to paint in a single cell.
func displayRune(r rune) rune {
	if _, ok := bidiControls[r]; ok {
		return '?'
	}
	if unicode.IsControl(r) || !unicode.IsPrint(r) && r != ' ' {
		return '?'
	}
	return r
}
