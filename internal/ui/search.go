package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/buffer"
	"github.com/gravitrone/shearch/internal/catalog"
	"github.com/gravitrone/shearch/internal/index"
	"github.com/gravitrone/shearch/internal/ui/components"
)

const (
	defaultPageSize  = 10
	suggestionLimit  = 3
	defaultMaxResult = 50
)

// SearchModel is the tag field plus the list of matching candidates. Only
// rows inside the scroll window hold a buffer; the rest are built when they
// scroll into view and dropped when they leave it.
type SearchModel struct {
	index  *index.Index
	cache  *resolveCache
	logger *zap.Logger
	limit  int
	keys   searchKeyMap

	input       textinput.Model
	tags        []string
	list        *components.List
	records     []catalog.Record
	rows        []*candidate
	total       int
	suggestions []string
	width       int
}

// NewSearchModel builds the search model over ix. limit caps how many
// matches are listed; zero means the default. timeout bounds each computed
// template argument.
func NewSearchModel(ix *index.Index, resolver buffer.Resolver, logger *zap.Logger, limit int, timeout time.Duration) SearchModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = defaultMaxResult
	}
	input := textinput.New()
	input.Prompt = "tags › "
	input.PromptStyle = PromptStyle
	input.Placeholder = "git status"
	input.Focus()

	return SearchModel{
		index:  ix,
		cache:  newResolveCache(resolver, timeout),
		logger: logger,
		limit:  limit,
		keys:   defaultSearchKeys(),
		input:  input,
		list:   components.NewList(defaultPageSize),
	}
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveUp()
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveDown()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// SetQuery replaces the tag field and re-runs the query.
func (m *SearchModel) SetQuery(q string) {
	m.input.SetValue(q)
	m.input.CursorEnd()
	m.refresh()
}

// SetIndex swaps in a rebuilt index. Focus stays on the same record when it
// still matches.
func (m *SearchModel) SetIndex(ix *index.Index) {
	var focused catalog.ID
	hadFocus := false
	if c := m.Focused(); c != nil {
		focused, hadFocus = c.record.ID(), true
	}
	m.index = ix
	m.cache.reset()
	m.refresh()
	if !hadFocus {
		return
	}
	for i, rec := range m.records {
		if rec.ID() == focused {
			m.list.Select(i)
			m.fill()
			return
		}
	}
}

func (m *SearchModel) moveUp() {
	m.list.Up()
	m.fill()
}

func (m *SearchModel) moveDown() {
	m.list.Down()
	m.fill()
}

// fill builds buffers for the rows in the scroll window and drops the rest.
func (m *SearchModel) fill() {
	start, end := m.list.Range()
	for i := range m.rows {
		if i < start || i >= end {
			m.rows[i] = nil
			continue
		}
		if m.rows[i] == nil {
			rec := m.records[i]
			m.rows[i] = newCandidate(context.Background(), rec, m.cache.forRecord(rec.ID()), m.logger)
		}
	}
}

func (m *SearchModel) refresh() {
	m.tags = index.ParseQuery(m.input.Value())
	m.suggestions = nil

	var records []catalog.Record
	if m.index != nil {
		records = m.index.Query(m.tags)
	}
	m.total = len(records)
	if len(records) > m.limit {
		records = records[:m.limit]
	}
	m.records = records
	m.rows = make([]*candidate, len(records))
	m.list.Reset(len(records))
	m.fill()

	if len(m.rows) == 0 && len(m.tags) > 0 && m.index != nil {
		for _, tag := range m.tags {
			if m.index.Count(tag) > 0 {
				continue
			}
			m.suggestions = append(m.suggestions, m.index.Suggest(tag, suggestionLimit)...)
		}
	}
	m.logger.Debug("query",
		zap.Strings("tags", m.tags),
		zap.Int("matches", m.total),
	)
}

// Focused returns the candidate under the cursor.
func (m SearchModel) Focused() *candidate {
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}
	return m.rows[idx]
}

func (m *SearchModel) setSize(width, height int) {
	m.width = width
	// Box chrome, prompt, description and status bar take about ten lines.
	if height > 0 {
		m.list.Resize(max(height-12, 3))
		m.fill()
	}
	if w := components.BoxContentWidth(width); w > 0 {
		m.input.Width = max(w-lenRunes(m.input.Prompt)-1, 10)
	}
}

func (m *SearchModel) focusInput() tea.Cmd {
	return m.input.Focus()
}

func (m *SearchModel) blurInput() {
	m.input.Blur()
}

// View renders the search box. When editing is set the focused row is drawn
// as an edit line with its cursor and marked argument.
func (m SearchModel) View(editing bool) string {
	contentWidth := components.BoxContentWidth(m.width)
	rowWidth := 0
	if contentWidth > 0 {
		rowWidth = contentWidth - 4
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case len(m.tags) == 0:
		b.WriteString(MutedStyle.Render(fmt.Sprintf("Type tags to search %d commands.", m.indexLen())))
	case len(m.rows) == 0:
		b.WriteString(MutedStyle.Render("No matches."))
		if len(m.suggestions) > 0 {
			b.WriteString("\n")
			b.WriteString(MutedStyle.Render("did you mean: ") + TagStyle.Render(strings.Join(m.suggestions, ", ")))
		}
	default:
		start, end := m.list.Range()
		for i := start; i < end; i++ {
			c := m.rows[i]
			if c == nil {
				continue
			}
			switch {
			case editing && m.list.IsSelected(i):
				b.WriteString(SelectedStyle.Render("  ✎ "))
				b.WriteString(renderEditLine(c.buf, rowWidth))
			case m.list.IsSelected(i):
				b.WriteString(SelectedStyle.Render("  › " + components.ClampTextWidth(c.buf.Text(), rowWidth)))
			default:
				b.WriteString(NormalStyle.Render("    " + components.ClampTextWidth(c.buf.Text(), rowWidth)))
			}
			if i < end-1 {
				b.WriteString("\n")
			}
		}
		if m.total > len(m.rows) {
			b.WriteString("\n")
			b.WriteString(MutedStyle.Render(fmt.Sprintf("    … %d more, add tags to narrow", m.total-len(m.rows))))
		}
		if c := m.Focused(); c != nil {
			b.WriteString("\n\n")
			b.WriteString(renderDetails(c, contentWidth))
		}
	}

	return components.TitledBox("shearch", b.String(), m.width, editing)
}

func (m SearchModel) indexLen() int {
	if m.index == nil {
		return 0
	}
	return m.index.Len()
}

func renderEditLine(b *buffer.Buffer, width int) string {
	markStart, markLen := 0, 0
	if value, start, ok := b.Mark(); ok {
		markStart, markLen = start, lenRunes(value)
	}
	return components.EditLine(b.Text(), b.Cursor(), markStart, markLen, width, editLineStyles())
}

func renderDetails(c *candidate, width int) string {
	lines := make([]string, 0, 3)
	if desc := strings.TrimSpace(c.record.Description); desc != "" {
		lines = append(lines, MutedStyle.Render(components.ClampTextWidth(desc, width)))
	}
	if len(c.record.Tags) > 0 {
		lines = append(lines, TagStyle.Render(components.ClampTextWidth("#"+strings.Join(c.record.Tags, " #"), width)))
	}
	if c.err != nil {
		lines = append(lines, WarningStyle.Render(components.ClampTextWidth("template: "+c.err.Error(), width)))
	}
	return strings.Join(lines, "\n")
}

func lenRunes(s string) int {
	return len([]rune(s))
}
