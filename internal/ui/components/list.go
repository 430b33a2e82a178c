package components

// List tracks the focused row and scroll window over Count rows. It holds no
// row data; callers index their own slice with Range and Selected.
type List struct {
	Count    int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// Reset sets the row count and moves focus to the first row.
func (l *List) Reset(count int) {
	l.Count = max(count, 0)
	l.Cursor = 0
	l.Offset = 0
}

// Resize changes the page size and keeps the cursor on screen.
func (l *List) Resize(pageSize int) {
	l.PageSize = max(pageSize, 1)
	l.follow()
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < l.Count-1 {
		l.Cursor++
		l.follow()
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		l.follow()
	}
}

// Select focuses the row at idx, clamped to the list.
func (l *List) Select(idx int) {
	if l.Count == 0 {
		l.Cursor = 0
		l.Offset = 0
		return
	}
	l.Cursor = min(max(idx, 0), l.Count-1)
	l.follow()
}

func (l *List) follow() {
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
}

// Range returns the half-open interval of visible row indices.
func (l *List) Range() (start, end int) {
	if l.Count == 0 {
		return 0, 0
	}
	end = min(l.Offset+l.PageSize, l.Count)
	return l.Offset, end
}

// Selected returns the index of the focused row, or -1 when empty.
func (l *List) Selected() int {
	if l.Count == 0 {
		return -1
	}
	return l.Cursor
}

// IsSelected reports whether idx is the focused row.
func (l *List) IsSelected(idx int) bool {
	return l.Count > 0 && idx == l.Cursor
}
