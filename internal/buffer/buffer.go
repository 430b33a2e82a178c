// Package buffer implements a single-line command editor that keeps track of
// which substrings are template arguments while the text is being edited.
//
// Offsets are rune offsets into the text. After every mutation the argument
// index is derived again from scratch, so no stale offset survives an edit.
package buffer

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Surface is whatever the buffer is painted on. Its text is authoritative when
// the buffer has to resynchronize after a failed insert.
type Surface interface {
	Text() string
}

type mark struct {
	active bool
	value  string
	start  int
}

// Buffer is the editable text of one candidate command.
type Buffer struct {
	text   []rune
	cursor int
	clip   []rune

	args        []string
	positions   []int
	at          map[int]string
	occurrences map[string][]int

	mark mark
	prev Key

	surface Surface
	logger  *zap.Logger
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithSurface attaches the render surface used for resynchronization.
func WithSurface(s Surface) Option {
	return func(b *Buffer) { b.surface = s }
}

// WithLogger sets the logger used for recovery diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a buffer holding text, tracking every whole-word occurrence of
// the given argument values. Empty and repeated values are dropped.
func New(text string, args []string, opts ...Option) *Buffer {
	b := &Buffer{
		text:   []rune(text),
		logger: zap.NewNop(),
	}
	seen := make(map[string]struct{}, len(args))
	for _, a := range args {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		b.args = append(b.args, a)
	}
	for _, opt := range opts {
		opt(b)
	}
	b.Reindex()
	return b
}

// Text returns the current contents.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the text length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor, clamped to the text, and drops any mark.
func (b *Buffer) SetCursor(pos int) {
	b.cursor = clamp(pos, 0, len(b.text))
	b.mark = mark{}
}

// Clip returns the cut register.
func (b *Buffer) Clip() string {
	return string(b.clip)
}

// Args returns the known argument values.
func (b *Buffer) Args() []string {
	return append([]string(nil), b.args...)
}

// Positions returns the sorted start offsets of all tracked arguments.
func (b *Buffer) Positions() []int {
	return append([]int(nil), b.positions...)
}

// ArgumentAt returns the argument value starting at pos.
func (b *Buffer) ArgumentAt(pos int) (string, bool) {
	v, ok := b.at[pos]
	return v, ok
}

// Occurrences returns every tracked offset of value.
func (b *Buffer) Occurrences(value string) []int {
	return append([]int(nil), b.occurrences[value]...)
}

// Mark returns the selected argument, if any.
func (b *Buffer) Mark() (value string, start int, ok bool) {
	if !b.mark.active {
		return "", 0, false
	}
	return b.mark.value, b.mark.start, true
}

// Marked reports whether an argument is selected for replacement.
func (b *Buffer) Marked() bool {
	return b.mark.active
}

// Apply feeds one key to the buffer.
func (b *Buffer) Apply(k Key) Outcome {
	prev := b.prev
	b.prev = k

	if action, ok := terminatorAction(k.Kind); ok {
		b.mark = mark{}
		return Outcome{Action: action}
	}

	if prev.Kind == KeyEscape && k.Kind == KeyRune {
		switch k.Rune {
		case 'b':
			k = Named(KeyWordLeft)
		case 'f':
			k = Named(KeyWordRight)
		}
	}

	switch k.Kind {
	case KeyTab:
		b.cycle(1)
		return Outcome{}
	case KeyShiftTab:
		b.cycle(-1)
		return Outcome{}
	}

	if k.Kind == KeyRune && !printable(k.Rune) {
		b.mark = mark{}
		return b.resync(&UnrepresentableError{Rune: k.Rune})
	}

	changed := false
	if b.mark.active {
		m := b.mark
		b.mark = mark{}
		if k.Kind == KeyRune || k.Kind == KeyPaste {
			changed = b.removeMarked(m)
		}
	}

	switch k.Kind {
	case KeyLeft:
		if b.cursor > 0 {
			b.cursor--
		}
	case KeyRight:
		if b.cursor < len(b.text) {
			b.cursor++
		}
	case KeyHome:
		b.cursor = 0
	case KeyEnd:
		b.cursor = len(b.text)
	case KeyWordLeft:
		b.cursor = b.wordStart(b.cursor)
	case KeyWordRight:
		b.cursor = b.wordEnd(b.cursor)
	case KeyBackspace:
		if b.cursor > 0 {
			b.remove(b.cursor-1, b.cursor)
			b.cursor--
			changed = true
		}
	case KeyDelete:
		if b.cursor < len(b.text) {
			b.remove(b.cursor, b.cursor+1)
			changed = true
		}
	case KeyKillToEnd:
		changed = b.kill(b.cursor, len(b.text)) || changed
	case KeyKillToStart:
		changed = b.kill(0, b.cursor) || changed
	case KeyKillWord:
		changed = b.kill(b.wordStart(b.cursor), b.cursor) || changed
	case KeyPaste:
		if len(b.clip) > 0 {
			b.insert(b.clip)
			changed = true
		}
	case KeyRune:
		b.insert([]rune{k.Rune})
		changed = true
	}

	if changed {
		b.Reindex()
	}
	return Outcome{Changed: changed}
}

// cycle moves to the next (dir > 0) or previous tracked argument, wrapping
// around, and marks it.
func (b *Buffer) cycle(dir int) {
	b.mark = mark{}
	if len(b.positions) == 0 {
		return
	}
	var target int
	if dir > 0 {
		target = b.positions[0]
		for _, p := range b.positions {
			if p > b.cursor {
				target = p
				break
			}
		}
	} else {
		target = b.positions[len(b.positions)-1]
		for i := len(b.positions) - 1; i >= 0; i-- {
			if b.positions[i] < b.cursor {
				target = b.positions[i]
				break
			}
		}
	}
	b.cursor = target
	b.mark = mark{active: true, value: b.at[target], start: target}
}

func (b *Buffer) removeMarked(m mark) bool {
	span := []rune(m.value)
	end := m.start + len(span)
	if end > len(b.text) || string(b.text[m.start:end]) != m.value {
		return false
	}
	b.remove(m.start, end)
	b.cursor = m.start
	return true
}

// resync is the recovery path for a failed insert: the surface text wins, the
// cursor is clamped and the index is rebuilt.
func (b *Buffer) resync(err error) Outcome {
	if b.surface != nil {
		b.text = []rune(b.surface.Text())
	}
	b.cursor = clamp(b.cursor, 0, len(b.text))
	b.Reindex()
	b.logger.Debug("buffer resynchronized",
		zap.Error(err),
		zap.String("text", string(b.text)),
		zap.Int("cursor", b.cursor),
	)
	return Outcome{Resynced: true, Err: err}
}

func (b *Buffer) insert(rs []rune) {
	out := make([]rune, 0, len(b.text)+len(rs))
	out = append(out, b.text[:b.cursor]...)
	out = append(out, rs...)
	out = append(out, b.text[b.cursor:]...)
	b.text = out
	b.cursor += len(rs)
}

func (b *Buffer) remove(start, end int) {
	b.text = append(b.text[:start:start], b.text[end:]...)
}

// kill cuts [start, end) into the clip register. An empty span leaves the
// register untouched.
func (b *Buffer) kill(start, end int) bool {
	if start >= end {
		return false
	}
	b.clip = append([]rune(nil), b.text[start:end]...)
	b.remove(start, end)
	b.cursor = start
	return true
}

func (b *Buffer) wordStart(pos int) int {
	i := pos
	for i > 0 && !isWordRune(b.text[i-1]) {
		i--
	}
	for i > 0 && isWordRune(b.text[i-1]) {
		i--
	}
	return i
}

func (b *Buffer) wordEnd(pos int) int {
	i := pos
	for i < len(b.text) && !isWordRune(b.text[i]) {
		i++
	}
	for i < len(b.text) && isWordRune(b.text[i]) {
		i++
	}
	return i
}

// Reindex derives the argument index from the current text. Each known value
// is matched as a whole word, without overlap. An offset claimed by an
// earlier value stays with it. A value that is a whole word inside another
// value (say "a b" and "b") is still found at the nested offset.
func (b *Buffer) Reindex() {
	b.at = make(map[int]string)
	b.occurrences = make(map[string][]int, len(b.args))

	for _, value := range b.args {
		needle := []rune(value)
		found := []int{}
		for i := 0; i+len(needle) <= len(b.text); {
			end := i + len(needle)
			if hasPrefixAt(b.text, needle, i) && wholeWord(b.text, i, end) {
				if _, taken := b.at[i]; !taken {
					b.at[i] = value
					found = append(found, i)
				}
				i = end
				continue
			}
			i++
		}
		b.occurrences[value] = found
	}

	b.positions = make([]int, 0, len(b.at))
	for p := range b.at {
		b.positions = append(b.positions, p)
	}
	sort.Ints(b.positions)
}

func hasPrefixAt(text, needle []rune, at int) bool {
	for j, r := range needle {
		if text[at+j] != r {
			return false
		}
	}
	return true
}

func wholeWord(text []rune, start, end int) bool {
	if start > 0 && isIdentRune(text[start-1]) {
		return false
	}
	if end < len(text) && isIdentRune(text[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || isWordRune(r)
}

func printable(r rune) bool {
	return r != utf8.RuneError && utf8.ValidRune(r) && !unicode.IsControl(r)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
