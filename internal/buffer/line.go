package buffer

// Line is one line of a File: a byte sequence plus a parallel per-byte
// color-class sequence and a redraw flag. Grounded on the teacher's
// editor/row.go Row, generalized from []rune to []byte per spec.md §9's
// single-byte-cell simplification and given an explicit redraw flag
// (the teacher instead recomputed Highlighted at the Buffer level).
type Line struct {
	chars  []byte
	colors []ColorClass
	redraw bool
}

// ColorClass is the syntax highlighter's per-byte tag. The renderer maps
// each class to a theme.Token; the core never stores RGB directly on a
// Line (spec.md §4.4).
type ColorClass byte

const (
	ClassNone ColorClass = iota
	ClassForeground
	ClassKeyword
	ClassString
	ClassChar
	ClassNumber
	ClassComment
)

func newLine(text []byte) *Line {
	return &Line{chars: append([]byte(nil), text...), redraw: true}
}

func (l *Line) Bytes() []byte { return l.chars }

func (l *Line) Len() int { return len(l.chars) }

// Colors returns the per-byte color classes, or nil if the line has
// never been highlighted (spec.md §3 invariant: |colors| is 0 or
// |chars|).
func (l *Line) Colors() []ColorClass { return l.colors }

func (l *Line) Redraw() bool { return l.redraw }

func (l *Line) MarkDirty() { l.redraw = true }

func (l *Line) ClearRedraw() { l.redraw = false }

func (l *Line) setColors(c []ColorClass) {
	l.colors = c
}

// InsertAt inserts b at byte offset col.
func (l *Line) InsertAt(col int, b byte) {
	l.chars = append(l.chars, 0)
	copy(l.chars[col+1:], l.chars[col:])
	l.chars[col] = b
	l.colors = nil
	l.redraw = true
}

// DeleteAt deletes and returns the byte at col.
func (l *Line) DeleteAt(col int) byte {
	b := l.chars[col]
	l.chars = append(l.chars[:col], l.chars[col+1:]...)
	l.colors = nil
	l.redraw = true
	return b
}

// Split cuts the line at col, keeping [0,col) in place and returning a
// new Line holding [col,len).
func (l *Line) Split(col int) *Line {
	tail := append([]byte(nil), l.chars[col:]...)
	l.chars = l.chars[:col]
	l.colors = nil
	l.redraw = true
	return newLine(tail)
}

// LeadingSpaces returns the count of leading ' ' bytes.
func (l *Line) LeadingSpaces() int {
	n := 0
	for n < len(l.chars) && l.chars[n] == ' ' {
		n++
	}
	return n
}
