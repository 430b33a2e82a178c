package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EditLineStyles styles the parts of an edit line.
type EditLineStyles struct {
	Text   lipgloss.Style
	Mark   lipgloss.Style
	Cursor lipgloss.Style
}

// EditLine paints text with a block cursor at rune offset cursor and the
// runes in [markStart, markStart+markLen) highlighted. A cursor at the end of
// the text is drawn as a trailing cell. When the line is wider than width the
// view scrolls horizontally to keep the cursor visible.
func EditLine(text string, cursor, markStart, markLen, width int, st EditLineStyles) string {
	runes := []rune(text)
	cursor = min(max(cursor, 0), len(runes))
	cells := len(runes) + 1

	from, to := 0, cells
	if width > 0 && cells > width {
		from = max(cursor-width+1, 0)
		to = from + width
	}

	var b strings.Builder
	for i := from; i < to; i++ {
		r := ' '
		if i < len(runes) {
			r = displayRune(runes[i])
		}
		cell := string(r)
		switch {
		case i == cursor:
			b.WriteString(st.Cursor.Render(cell))
		case markLen > 0 && i >= markStart && i < markStart+markLen:
			b.WriteString(st.Mark.Render(cell))
		case i < len(runes):
			b.WriteString(st.Text.Render(cell))
		}
	}
	return b.String()
}
