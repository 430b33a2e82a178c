// Package ui is the interactive selection shell: a tag field, the matching
// commands, and an in-place editor for the focused one.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/buffer"
	"github.com/gravitrone/shearch/internal/index"
	"github.com/gravitrone/shearch/internal/ui/components"
)

const toastDuration = 3 * time.Second

type mode int

const (
	modeSearch mode = iota
	modeEdit
)

// --- Messages ---

// CatalogChangedMsg reports that a catalog file changed on disk.
type CatalogChangedMsg struct{}

type catalogReloadedMsg struct {
	index *index.Index
	err   error
}

type clearToastMsg struct{ seq int }

// Reloader rebuilds the index from the configured catalogs.
type Reloader func() (*index.Index, error)

// Options configures the shell.
type Options struct {
	Index    *index.Index
	Resolver buffer.Resolver
	Reload   Reloader
	Logger   *zap.Logger
	// MaxResults caps the listed candidates.
	MaxResults int
	// ResolveTimeout bounds each computed template argument.
	ResolveTimeout time.Duration
	// Query is the initial content of the tag field.
	Query string
}

// --- App Model ---

// App is the root TUI model.
type App struct {
	search SearchModel
	keys   searchKeyMap
	edit   editKeyMap
	reload Reloader
	logger *zap.Logger

	mode     mode
	width    int
	height   int
	toast    string
	toastSeq int

	result    string
	committed bool
}

// NewApp creates the root application model.
func NewApp(opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	search := NewSearchModel(opts.Index, opts.Resolver, logger, opts.MaxResults, opts.ResolveTimeout)
	if q := strings.TrimSpace(opts.Query); q != "" {
		search.SetQuery(q)
	}
	return App{
		search: search,
		keys:   defaultSearchKeys(),
		edit:   defaultEditKeys(),
		reload: opts.Reload,
		logger: logger,
	}
}

// Result returns the committed command line. ok is false when the user quit
// without choosing one.
func (a App) Result() (command string, ok bool) {
	return a.result, a.committed
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.setSize(msg.Width, msg.Height)
		return a, nil

	case CatalogChangedMsg:
		if a.reload == nil {
			return a, nil
		}
		reload := a.reload
		return a, func() tea.Msg {
			ix, err := reload()
			return catalogReloadedMsg{index: ix, err: err}
		}

	case catalogReloadedMsg:
		if msg.err != nil {
			a.logger.Warn("catalog reload failed", zap.Error(msg.err))
			return a, a.setToast("reload failed: " + msg.err.Error())
		}
		focus := a.applyIndex(msg.index)
		return a, tea.Batch(focus, a.setToast(fmt.Sprintf("catalog reloaded: %d commands", msg.index.Len())))

	case clearToastMsg:
		if msg.seq == a.toastSeq {
			a.toast = ""
		}
		return a, nil

	case tea.KeyMsg:
		if a.mode == modeEdit {
			return a.updateEdit(msg)
		}
		return a.updateSearch(msg)
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Accept):
		if c := a.search.Focused(); c != nil {
			return a.commit(c)
		}
		return a, nil
	case key.Matches(msg, a.keys.Edit):
		if c := a.search.Focused(); c != nil {
			a.startEdit(c)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

// startEdit moves the cursor to the end of the line and jumps to the first
// argument, if the line has any.
func (a *App) startEdit(c *candidate) {
	a.mode = modeEdit
	a.search.blurInput()
	c.buf.SetCursor(c.buf.Len())
	c.buf.Apply(buffer.Named(buffer.KeyTab))
	c.paint()
}

func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := a.search.Focused()
	if c == nil {
		a.mode = modeSearch
		return a, a.search.focusInput()
	}

	for _, k := range a.edit.translate(msg) {
		out := c.buf.Apply(k)
		if out.Resynced {
			a.logger.Debug("edit resynchronized", zap.String("key", k.String()), zap.Error(out.Err))
		}
		if !out.Done() {
			c.paint()
			continue
		}
		switch out.Action {
		case buffer.ActionCommit:
			return a.commit(c)
		case buffer.ActionCancel:
			a.mode = modeSearch
			return a, a.search.focusInput()
		case buffer.ActionPrev:
			a.search.moveUp()
			a.mode = modeSearch
			return a, a.search.focusInput()
		case buffer.ActionNext:
			a.search.moveDown()
			a.mode = modeSearch
			return a, a.search.focusInput()
		}
	}
	return a, nil
}

func (a App) commit(c *candidate) (tea.Model, tea.Cmd) {
	a.result = c.buf.Text()
	a.committed = true
	a.logger.Info("command chosen",
		zap.String("record", c.record.ID().String()),
		zap.Bool("edited", a.result != c.origin),
	)
	return a, tea.Quit
}

func (a *App) applyIndex(ix *index.Index) tea.Cmd {
	a.search.SetIndex(ix)
	if a.mode != modeEdit {
		return nil
	}
	// Rebuilt rows carry fresh buffers, so an edit in progress cannot
	// survive the swap.
	a.logger.Debug("catalog reload ended edit")
	a.mode = modeSearch
	return a.search.focusInput()
}

func (a *App) setToast(text string) tea.Cmd {
	a.toastSeq++
	a.toast = components.SanitizeOneLine(text)
	seq := a.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}

func (a App) View() string {
	content := centerBlockUniform(a.search.View(a.mode == modeEdit), a.width)
	bar := components.StatusBar(a.statusHints(), a.toast, a.width)
	return content + "\n" + centerBlockUniform(bar, a.width)
}

func (a App) statusHints() []string {
	bindings := a.keys.hints()
	if a.mode == modeEdit {
		bindings = a.edit.hints()
	}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, components.Hint(h.Key, h.Desc))
	}
	return hints
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
