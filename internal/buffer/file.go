package buffer

import (
	"bytes"
	"errors"
	"os"
	"strings"
)

// Error kinds surfaced to a Window's status bar (spec.md §7).
var (
	ErrFileOpenFailed    = errors.New("can not open file")
	ErrInvalidLineEnding = errors.New("invalid line ending")
	ErrFileSaveFailed    = errors.New("can not save file")
)

// File is an ordered sequence of Lines plus the bookkeeping the spec
// requires: path, saved flag, a whole-file redraw flag, and an optional
// highlighter binding. Grounded on the teacher's editor/buffer.go
// Buffer, stripped of its undo-era fields (number, ReadOnly) which have
// no home in this spec, and given the redraw/highlighter fields spec.md
// §3 calls for.
type File struct {
	path        string
	lines       []*Line
	saved       bool
	redraw      bool
	highlighter Highlighter
}

// newEmptyFile returns a File with a single empty line, matching the
// "|lines| >= 1" invariant that must hold even before any content is
// loaded.
func newEmptyFile(path string) *File {
	return &File{path: path, lines: []*Line{newLine(nil)}, saved: false, redraw: true}
}

func (f *File) Path() string { return f.path }

func (f *File) Saved() bool { return f.saved }

func (f *File) Redraw() bool { return f.redraw }

func (f *File) MarkDirty() { f.redraw = true; f.saved = false }

func (f *File) ClearRedraw() { f.redraw = false }

func (f *File) LineCount() int { return len(f.lines) }

func (f *File) Line(i int) *Line { return f.lines[i] }

func (f *File) Highlighter() Highlighter { return f.highlighter }

// Rehighlight recomputes colors for a single line, the only granularity
// spec.md §4.5 allows (no cross-line state).
func (f *File) Rehighlight(y int) {
	if f.highlighter == nil {
		return
	}
	l := f.lines[y]
	l.setColors(f.highlighter.Highlight(l.chars))
}

// insertLineAfter inserts a freshly created Line after index y.
func (f *File) insertLineAfter(y int, l *Line) {
	f.lines = append(f.lines, nil)
	copy(f.lines[y+2:], f.lines[y+1:])
	f.lines[y+1] = l
	f.redraw = true
}

// removeLine deletes line y. The caller must never let the count drop
// to zero (spec.md §3 invariant); every caller (JoinLines, edit.Cut,
// minibar.RunGofmt) removes only lines after line 0, so the count
// stays at least one.
func (f *File) removeLine(y int) {
	f.lines = append(f.lines[:y], f.lines[y+1:]...)
	f.redraw = true
}

// Table is the process-wide set of Files, deduplicated by byte-equal
// path (spec.md §3 "Ownership"). Windows hold handles into it; Files
// outlive the Windows that reference them.
type Table struct {
	byPath map[string]*File
}

func NewTable() *Table {
	return &Table{byPath: make(map[string]*File)}
}

// OpenPath returns the existing File for path if one is already loaded,
// otherwise reads path from disk. \r is tolerated only immediately
// before \n; any other \r rejects the load. The trailing partial line
// (no terminator) becomes the last line.
func (t *Table) OpenPath(path string) (*File, error) {
	if f, ok := t.byPath[path]; ok {
		return f, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrFileOpenFailed
	}
	lines, err := splitLines(raw)
	if err != nil {
		return nil, err
	}
	f := &File{path: path, lines: lines, saved: true, redraw: true}
	f.bindHighlighter()
	t.byPath[path] = f
	return f, nil
}

// CreatePath yields a fresh, unsaved File with a single empty line. A
// later save to the same path will dedupe against this entry.
func (t *Table) CreatePath(path string) *File {
	if f, ok := t.byPath[path]; ok {
		return f
	}
	f := newEmptyFile(path)
	f.bindHighlighter()
	t.byPath[path] = f
	return f
}

func splitLines(raw []byte) ([]*Line, error) {
	var lines []*Line
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\n':
			end := i
			if end > start && raw[end-1] == '\r' {
				end--
			}
			lines = append(lines, newLine(raw[start:end]))
			start = i + 1
		case '\r':
			if i+1 >= len(raw) || raw[i+1] != '\n' {
				return nil, ErrInvalidLineEnding
			}
		}
	}
	// trailing partial line (possibly empty) becomes the last line.
	lines = append(lines, newLine(raw[start:]))
	if len(lines) == 0 {
		lines = append(lines, newLine(nil))
	}
	return lines, nil
}

// Save writes every line separated by \r\n, with no trailing
// terminator, truncating the target file.
func (t *Table) Save(f *File) error {
	var buf bytes.Buffer
	for i, l := range f.lines {
		if i > 0 {
			buf.WriteString("\r\n")
		}
		buf.Write(l.chars)
	}
	if err := os.WriteFile(f.path, buf.Bytes(), 0644); err != nil {
		return ErrFileSaveFailed
	}
	f.saved = true
	return nil
}

// InsertByte inserts b into line y at column x. The caller is
// responsible for rehighlighting afterward (spec.md §4.3 lists
// rehighlight as a separate step of insert_char).
func (f *File) InsertByte(y, x int, b byte) {
	f.lines[y].InsertAt(x, b)
	f.saved = false
}

// DeleteByte removes and returns the byte at column x of line y.
func (f *File) DeleteByte(y, x int) byte {
	b := f.lines[y].DeleteAt(x)
	f.saved = false
	return b
}

// SplitLineAt splits line y at column x, inserting the tail as a new
// line immediately after. Changes the line count, so the whole File
// is marked for redraw: every Window viewing it may now be showing
// different lines at the same screen row.
func (f *File) SplitLineAt(y, x int) {
	tail := f.lines[y].Split(x)
	f.insertLineAfter(y, tail)
	f.saved = false
}

// JoinLines appends line y+1 onto line y and removes line y+1.
func (f *File) JoinLines(y int) {
	if y+1 >= len(f.lines) {
		return
	}
	a, b := f.lines[y], f.lines[y+1]
	a.chars = append(a.chars, b.Bytes()...)
	a.colors = nil
	a.MarkDirty()
	f.removeLine(y + 1)
	f.saved = false
}

// InsertLineAfter inserts a new line holding content immediately after
// line y.
func (f *File) InsertLineAfter(y int, content []byte) {
	f.insertLineAfter(y, newLine(content))
	f.saved = false
}

// RemoveLine deletes line y outright (not joining it into a neighbor).
func (f *File) RemoveLine(y int) {
	f.removeLine(y)
	f.saved = false
}

// SetLineBytes replaces line y's entire content, clearing its colors.
func (f *File) SetLineBytes(y int, content []byte) {
	f.lines[y] = newLine(content)
	f.redraw = true
	f.saved = false
}

// Bytes joins every line with a plain '\n', the representation tools
// like gofmt expect — distinct from Save's on-disk '\r\n' format.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	for i, l := range f.lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(l.chars)
	}
	return buf.Bytes()
}

// Lookup returns the already-open File at path, if any.
func (t *Table) Lookup(path string) (*File, bool) {
	f, ok := t.byPath[path]
	return f, ok
}

// Listing renders every open File's path and saved state (a trailing
// '*' marks an unsaved File) as one space-separated line, for the
// `buffers` minibar command (SPEC_FULL.md §11).
func (t *Table) Listing() string {
	var b strings.Builder
	for path, f := range t.byPath {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(path)
		if !f.saved {
			b.WriteByte('*')
		}
	}
	if b.Len() == 0 {
		return "no open files"
	}
	return b.String()
}

// bindHighlighter selects a Highlighter by path suffix, per spec.md
// §4.5's per-language profile selection.
func (f *File) bindHighlighter() {
	for _, p := range Profiles {
		for _, suffix := range p.Suffixes {
			if strings.HasSuffix(f.path, suffix) {
				f.highlighter = p
				return
			}
		}
	}
}
