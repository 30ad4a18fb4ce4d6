// Package window is the per-pane view model from spec.md §4.2: cursor,
// scroll offset, mark, minibar/error/search substates, and the
// per-File saved-state cache that lets a Window remember where it was
// when the user switches back to a File it showed before.
//
// Grounded on the teacher's pkg/editor/window.go Window, split in two:
// the split-tree plumbing moved to internal/layout (spec.md §9's
// arena-with-indices design), leaving this type the view-model half
// spec.md §3 describes plus a layout.RegionIndex back-reference to its
// leaf.
package window

import (
	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/layout"
	"github.com/tilescribe/tilescribe/internal/search"
)

const (
	LeftMargin   = 6
	RightMargin  = 6
	TopMargin    = 6
	BottomMargin = 6
)

type MinibarMode int

const (
	Inactive MinibarMode = iota
	Open
	New
	Command
	Find
)

type Minibar struct {
	Mode   MinibarMode
	Data   []byte
	Cursor int
	Offset int
	Active bool
}

type ErrorState struct {
	Present bool
	Message string
}

type Mark struct {
	Point geom.Point
	Valid bool
}

// FileState is the snapshot spec.md §3 calls `file_states`: everything
// about how a Window was looking at one particular File, restored the
// next time that File is shown in this Window.
type FileState struct {
	Cursor          geom.Point
	CursorIdeal     int
	Offset          geom.Point
	Mark            Mark
	PreviousKeycode byte
}

// Window is a view onto at most one File (spec.md §3).
type Window struct {
	File   *buffer.File
	Region layout.RegionIndex

	Cursor      geom.Point
	CursorIdeal int
	Offset      geom.Point
	Mark        Mark

	Minibar Minibar
	Err     ErrorState
	Search  search.State

	FileStates map[*buffer.File]FileState

	Redraw          bool
	PreviousKeycode byte

	// Viewport is the content area available for text, excluding the
	// gutter, status bar, and any left border — set by the caller
	// whenever layout.Tree recomputes this Window's Region, consumed by
	// cursor-margin scrolling.
	Viewport geom.Size
}

func NewWindow() *Window {
	return &Window{FileStates: make(map[*buffer.File]FileState), Redraw: true}
}

func (w *Window) MarkDirty() { w.Redraw = true }

func (w *Window) SetError(message string) {
	w.Err.Present = true
	w.Err.Message = message
}

func (w *Window) ClearError() {
	w.Err.Present = false
	w.Err.Message = ""
}

func (w *Window) SetViewport(size geom.Size) {
	w.Viewport = size
	w.MarkDirty()
}

// ChangeFile implements spec.md §4.2's change_file: snapshot the
// current viewport into file_states, then either restore the target
// File's prior snapshot or reset to the origin.
func (w *Window) ChangeFile(f *buffer.File) {
	if w.File != nil {
		w.FileStates[w.File] = FileState{
			Cursor:          w.Cursor,
			CursorIdeal:     w.CursorIdeal,
			Offset:          w.Offset,
			Mark:            w.Mark,
			PreviousKeycode: w.PreviousKeycode,
		}
	}
	w.File = f
	if st, ok := w.FileStates[f]; ok {
		w.Cursor = st.Cursor
		w.CursorIdeal = st.CursorIdeal
		w.Offset = st.Offset
		w.Mark = st.Mark
		w.PreviousKeycode = st.PreviousKeycode
	} else {
		w.Cursor = geom.Point{}
		w.CursorIdeal = 0
		w.Offset = geom.Point{}
		w.Mark = Mark{}
		w.PreviousKeycode = 0
	}
	w.Search.Clear()
	w.MarkDirty()
}

func (w *Window) lineLen(y int) int {
	return w.File.Line(y).Len()
}

// clamp enforces spec.md §8 invariant 1: cursor.y in [0,|lines|),
// cursor.x in [0,|lines[y].chars|].
func (w *Window) clamp() {
	if w.File == nil {
		return
	}
	last := w.File.LineCount() - 1
	w.Cursor.Y = geom.Clamp(w.Cursor.Y, 0, last)
	w.Cursor.X = geom.Clamp(w.Cursor.X, 0, w.lineLen(w.Cursor.Y))
}

// adjustOffset keeps the cursor at least LeftMargin/RightMargin cells
// from the viewport's horizontal edges and TopMargin/BottomMargin
// cells from its vertical edges (spec.md §4.2 "offset tracking"). On an
// axis too small to hold both margins, the margins are dropped and the
// offset only keeps the cursor inside the viewport.
func (w *Window) adjustOffset() {
	if w.Viewport.Width <= 0 || w.Viewport.Height <= 0 {
		return
	}
	w.Offset.X = scrollAxis(w.Cursor.X, w.Offset.X, w.Viewport.Width, LeftMargin, RightMargin)
	w.Offset.Y = scrollAxis(w.Cursor.Y, w.Offset.Y, w.Viewport.Height, TopMargin, BottomMargin)
	if w.Offset.X < 0 {
		w.Offset.X = 0
	}
	if w.Offset.Y < 0 {
		w.Offset.Y = 0
	}
}

func scrollAxis(cursor, offset, extent, nearMargin, farMargin int) int {
	if extent <= nearMargin+farMargin {
		nearMargin, farMargin = 0, 0
	}
	if cursor-offset < nearMargin {
		offset = cursor - nearMargin
	}
	if cursor-offset > extent-farMargin-1 {
		offset = cursor - (extent - farMargin - 1)
	}
	return offset
}

func (w *Window) settle() {
	w.clamp()
	w.adjustOffset()
	w.MarkDirty()
}

// Settle re-clamps the cursor to file bounds, re-adjusts the scroll
// offset, and marks the Window dirty. Exported for internal/edit,
// whose primitives mutate File content out from under the Window and
// must restore its invariants afterward (spec.md §8 invariant 1).
func (w *Window) Settle() { w.settle() }

func (w *Window) MoveLeft() {
	if w.File == nil {
		return
	}
	if w.Cursor.X > 0 {
		w.Cursor.X--
	} else if w.Cursor.Y > 0 {
		w.Cursor.Y--
		w.Cursor.X = w.lineLen(w.Cursor.Y)
	}
	w.CursorIdeal = w.Cursor.X
	w.settle()
}

func (w *Window) MoveRight() {
	if w.File == nil {
		return
	}
	if w.Cursor.X < w.lineLen(w.Cursor.Y) {
		w.Cursor.X++
	} else if w.Cursor.Y < w.File.LineCount()-1 {
		w.Cursor.Y++
		w.Cursor.X = 0
	}
	w.CursorIdeal = w.Cursor.X
	w.settle()
}

func (w *Window) MoveUp() { w.moveVertical(-1) }

func (w *Window) MoveDown() { w.moveVertical(1) }

func (w *Window) moveVertical(delta int) {
	if w.File == nil {
		return
	}
	w.Cursor.Y = geom.Clamp(w.Cursor.Y+delta, 0, w.File.LineCount()-1)
	w.Cursor.X = geom.Clamp(w.CursorIdeal, 0, w.lineLen(w.Cursor.Y))
	w.settle()
}

// Home toggles between the line's first non-space column and column 0
// (spec.md §4.2).
func (w *Window) Home() {
	if w.File == nil {
		return
	}
	leading := w.File.Line(w.Cursor.Y).LeadingSpaces()
	if w.Cursor.X > leading {
		w.Cursor.X = leading
	} else {
		w.Cursor.X = 0
	}
	w.CursorIdeal = w.Cursor.X
	w.settle()
}

func (w *Window) End() {
	if w.File == nil {
		return
	}
	w.Cursor.X = w.lineLen(w.Cursor.Y)
	w.CursorIdeal = w.Cursor.X
	w.settle()
}

func (w *Window) ShiftHome() {
	if w.File == nil {
		return
	}
	w.Cursor = geom.Point{}
	w.CursorIdeal = 0
	w.settle()
}

func (w *Window) ShiftEnd() {
	if w.File == nil {
		return
	}
	last := w.File.LineCount() - 1
	w.Cursor = geom.Point{X: w.lineLen(last), Y: last}
	w.CursorIdeal = w.Cursor.X
	w.settle()
}

// PageUp and PageDown move both cursor and offset by half the
// viewport's height (spec.md §4.2), not a full page.
func (w *Window) PageUp() { w.page(-1) }

func (w *Window) PageDown() { w.page(1) }

func (w *Window) page(dir int) {
	w.scrollByRows(dir * maxInt(w.Viewport.Height/2, 1))
}

func (w *Window) scrollByRows(rows int) {
	if w.File == nil {
		return
	}
	w.Cursor.Y = geom.Clamp(w.Cursor.Y+rows, 0, w.File.LineCount()-1)
	w.Offset.Y = geom.Clamp(w.Offset.Y+rows, 0, maxInt(w.File.LineCount()-1, 0))
	w.Cursor.X = geom.Clamp(w.CursorIdeal, 0, w.lineLen(w.Cursor.Y))
	w.settle()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ToggleMark sets the mark at the current cursor (spec.md §4.3 "mark
// toggle").
func (w *Window) ToggleMark() {
	w.Mark = Mark{Point: w.Cursor, Valid: true}
	w.MarkDirty()
}

// Normalize implements block_normalize: produces (start, end) in
// document order regardless of which of mark/cursor comes first
// (spec.md §8's mark-symmetry law).
func Normalize(a, b geom.Point) (geom.Point, geom.Point) {
	if a.Y < b.Y || (a.Y == b.Y && a.X <= b.X) {
		return a, b
	}
	return b, a
}
