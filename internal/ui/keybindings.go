package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/shearch/internal/buffer"
)

// --- Search Mode ---

type searchKeyMap struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Accept key.Binding
}

func defaultSearchKeys() searchKeyMap {
	return searchKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/↓", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
		),
		Edit: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "edit"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
	}
}

func (k searchKeyMap) hints() []key.Binding {
	return []key.Binding{k.Up, k.Edit, k.Accept, k.Quit}
}

// --- Edit Mode ---

type editBinding struct {
	kind    buffer.KeyKind
	binding key.Binding
}

// editKeyMap translates terminal keys into buffer keys. Bindings are matched
// in order; alt+<rune> chords that no binding claims are replayed as escape
// followed by the rune, which is how terminals send them anyway.
type editKeyMap struct {
	bindings []editBinding
}

func bind(kind buffer.KeyKind, keys ...string) editBinding {
	return editBinding{kind: kind, binding: key.NewBinding(key.WithKeys(keys...))}
}

func defaultEditKeys() editKeyMap {
	return editKeyMap{bindings: []editBinding{
		bind(buffer.KeyEnter, "enter"),
		bind(buffer.KeyCancel, "ctrl+c", "ctrl+g"),
		bind(buffer.KeyUp, "up", "ctrl+p"),
		bind(buffer.KeyDown, "down", "ctrl+n"),
		bind(buffer.KeyTab, "tab"),
		bind(buffer.KeyShiftTab, "shift+tab"),
		bind(buffer.KeyWordLeft, "alt+left", "ctrl+left"),
		bind(buffer.KeyWordRight, "alt+right", "ctrl+right"),
		bind(buffer.KeyLeft, "left", "ctrl+b"),
		bind(buffer.KeyRight, "right", "ctrl+f"),
		bind(buffer.KeyHome, "home", "ctrl+a"),
		bind(buffer.KeyEnd, "end", "ctrl+e"),
		bind(buffer.KeyKillWord, "ctrl+w", "alt+backspace"),
		bind(buffer.KeyBackspace, "backspace", "ctrl+h"),
		bind(buffer.KeyDelete, "delete", "ctrl+d"),
		bind(buffer.KeyKillToEnd, "ctrl+k"),
		bind(buffer.KeyKillToStart, "ctrl+u"),
		bind(buffer.KeyPaste, "ctrl+y"),
		bind(buffer.KeyEscape, "esc"),
	}}
}

// translate returns the buffer keys for msg, or nil when msg means nothing to
// the editor.
func (k editKeyMap) translate(msg tea.KeyMsg) []buffer.Key {
	for _, b := range k.bindings {
		if key.Matches(msg, b.binding) {
			return []buffer.Key{buffer.Named(b.kind)}
		}
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		runes := msg.Runes
		if msg.Type == tea.KeySpace && len(runes) == 0 {
			runes = []rune{' '}
		}
		keys := make([]buffer.Key, 0, len(runes)+1)
		if msg.Alt {
			keys = append(keys, buffer.Named(buffer.KeyEscape))
		}
		for _, r := range runes {
			keys = append(keys, buffer.Rune(r))
		}
		return keys
	}
	return nil
}

func (k editKeyMap) hints() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/⇧tab", "next/prev arg")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("^k/^u/^w", "cut")),
		key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "paste")),
		key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^g", "back")),
	}
}
