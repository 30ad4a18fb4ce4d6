package window

import "github.com/tilescribe/tilescribe/internal/layout"

// Table is the Window arena spec.md §9 calls for alongside
// layout.Tree's Region arena: the layout engine addresses Windows only
// by layout.WindowIndex, never holding a live pointer, so the two
// arenas can be mutated independently without the pointer cycle a
// direct Region<->Window struct embedding would create.
type Table struct {
	windows []*Window
	free    []layout.WindowIndex
}

func NewTable() *Table {
	return &Table{}
}

// New allocates a Window and returns its index.
func (t *Table) New() (layout.WindowIndex, *Window) {
	w := NewWindow()
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.windows[idx] = w
		return idx, w
	}
	t.windows = append(t.windows, w)
	return layout.WindowIndex(len(t.windows) - 1), w
}

func (t *Table) Get(idx layout.WindowIndex) *Window {
	if idx == layout.NoWindow {
		return nil
	}
	return t.windows[idx]
}

// Free releases idx for reuse. The caller must already have removed
// every reference to it from layout.Tree.
func (t *Table) Free(idx layout.WindowIndex) {
	t.windows[idx] = nil
	t.free = append(t.free, idx)
}

// Indices returns every live Window index, in arena order (not
// document order — callers needing traversal order use layout.Tree's
// Leaves, whose Window field is a layout.WindowIndex into this Table).
func (t *Table) Indices() []layout.WindowIndex {
	var out []layout.WindowIndex
	for i, w := range t.windows {
		if w != nil {
			out = append(out, layout.WindowIndex(i))
		}
	}
	return out
}
