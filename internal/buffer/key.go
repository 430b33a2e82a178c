package buffer

import "fmt"

// KeyKind is an abstract editing key, independent of any terminal binding.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyCancel
	KeyUp
	KeyDown
	KeyTab
	KeyShiftTab
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyWordLeft
	KeyWordRight
	KeyBackspace
	KeyDelete
	KeyKillToEnd
	KeyKillToStart
	KeyKillWord
	KeyPaste
	KeyEscape
)

var keyNames = map[KeyKind]string{
	KeyRune:        "rune",
	KeyEnter:       "enter",
	KeyCancel:      "cancel",
	KeyUp:          "up",
	KeyDown:        "down",
	KeyTab:         "tab",
	KeyShiftTab:    "shift+tab",
	KeyLeft:        "left",
	KeyRight:       "right",
	KeyHome:        "home",
	KeyEnd:         "end",
	KeyWordLeft:    "word-left",
	KeyWordRight:   "word-right",
	KeyBackspace:   "backspace",
	KeyDelete:      "delete",
	KeyKillToEnd:   "kill-to-end",
	KeyKillToStart: "kill-to-start",
	KeyKillWord:    "kill-word",
	KeyPaste:       "paste",
	KeyEscape:      "escape",
}

func (k KeyKind) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Key is one input event. Rune is only meaningful for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Rune builds a printable-insert key.
func Rune(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// Named builds a non-rune key.
func Named(kind KeyKind) Key {
	return Key{Kind: kind}
}

// Runes turns s into one insert key per rune.
func Runes(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Rune(r))
	}
	return keys
}

func (k Key) String() string {
	if k.Kind == KeyRune {
		return fmt.Sprintf("rune(%q)", k.Rune)
	}
	return k.Kind.String()
}

// Action tells the caller what to do after Apply.
type Action int

const (
	ActionContinue Action = iota
	ActionCommit
	ActionCancel
	ActionPrev
	ActionNext
)

func terminatorAction(kind KeyKind) (Action, bool) {
	switch kind {
	case KeyEnter:
		return ActionCommit, true
	case KeyCancel:
		return ActionCancel, true
	case KeyUp:
		return ActionPrev, true
	case KeyDown:
		return ActionNext, true
	}
	return ActionContinue, false
}

// Outcome is the result of one Apply call.
type Outcome struct {
	Action Action
	// Changed is set when the text was mutated.
	Changed bool
	// Resynced is set when the buffer recovered from Err by reloading its text
	// from the render surface.
	Resynced bool
	Err      error
}

// Done reports whether editing should stop.
func (o Outcome) Done() bool {
	return o.Action != ActionContinue
}

// Code is 0 once editing stops and 1 while it continues.
func (o Outcome) Code() int {
	if o.Done() {
		return 0
	}
	return 1
}
