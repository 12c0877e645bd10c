package selector

// List is the scrollable menu state: the candidates, the selected index,
// and the first visible row.
//
// After every mutation:
//
//	0 <= selected < len(items)
//	0 <= offset <= selected < offset+window
//	offset+window <= len(items) when len(items) >= window, else offset == 0
type List struct {
	items    []string
	active   string
	selected int
	offset   int
	window   int
}

// NewList builds a List over items with the given visible window. Items are
// copied. A window smaller than 1 is treated as 1.
func NewList(items []string, active string, window int) *List {
	if window < 1 {
		window = 1
	}
	return &List{
		items:  append([]string(nil), items...),
		active: active,
		window: window,
	}
}

// Up moves the selection one row up, scrolling when it leaves the window.
func (l *List) Up() {
	if l.selected > 0 {
		l.selected--
	}
	if l.selected < l.offset {
		l.offset--
	}
}

// Down moves the selection one row down, scrolling when it leaves the window.
func (l *List) Down() {
	if l.selected+1 < len(l.items) {
		l.selected++
	}
	if l.selected >= l.offset+l.window {
		l.offset++
	}
}

// Apply mutates the list for a navigation event. Other events are ignored.
func (l *List) Apply(e Event) {
	switch e {
	case EventUp:
		l.Up()
	case EventDown:
		l.Down()
	}
}

// Visible returns the rows currently inside the window.
func (l *List) Visible() []string {
	end := l.offset + l.window
	if end > len(l.items) {
		end = len(l.items)
	}
	return l.items[l.offset:end]
}

// HasMoreAbove reports whether rows are hidden above the window.
func (l *List) HasMoreAbove() bool {
	return l.offset > 0
}

// HasMoreBelow reports whether rows are hidden below the window.
func (l *List) HasMoreBelow() bool {
	return l.offset+l.window < len(l.items)
}

// Promote moves name to the front of the list and selects it. Unknown
// names are ignored.
func (l *List) Promote(name string) {
	idx := -1
	for i, item := range l.items {
		if item == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	copy(l.items[1:idx+1], l.items[:idx])
	l.items[0] = name
	l.selected = 0
	l.offset = 0
}

func (l *List) Len() int { return len(l.items) }
func (l *List) Index() int { return l.selected }
func (l *List) Offset() int { return l.offset }
func (l *List) Window() int { return l.window }
func (l *List) Active() string { return l.active }
func (l *List) Selected() string { return l.items[l.selected] }

// Items returns a copy of the candidates in their current order.
func (l *List) Items() []string {
	return append([]string(nil), l.items...)
}
