// Package edit implements spec.md §4.3's editing primitives: character
// and newline insertion with smart indent, word/tab-aware deletion,
// and block mark/copy/cut/paste through the process-wide Clipboard.
//
// Grounded on the teacher's pkg/editor/window.go forward-edit methods
// (InsertChar, InsertRow, BackspaceChar, JoinRow, DeleteWordsAtCursor,
// DeleteCharactersAtCursor) and on operations/paste.go's clipboard
// splice logic — stripped of the Operation/undo wrapper the teacher
// builds around them, since undo is a non-goal here.
package edit

import (
	"bytes"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/window"
)

// SpacesPerTab is the indent unit for smart-indent and tab-aware
// delete (spec.md §4.3).
const SpacesPerTab = 2

// InsertChar inserts c at the cursor, advances the cursor, rehighlights
// the line, and clears the File's saved flag.
func InsertChar(w *window.Window, c byte) {
	if w.File == nil {
		return
	}
	f := w.File
	f.InsertByte(w.Cursor.Y, w.Cursor.X, c)
	w.Cursor.X++
	w.CursorIdeal = w.Cursor.X
	f.Rehighlight(w.Cursor.Y)
	settle(w)
}

// InsertNewline implements spec.md §4.3's insert_newline: splits the
// line at the cursor, indents the new line by the pre-split line's
// leading spaces (plus SpacesPerTab if that line ends in `{` right
// before the cursor), and — if the previous keystroke was also that
// `{` — appends a closing-brace line at the original indent.
func InsertNewline(w *window.Window) {
	if w.File == nil {
		return
	}
	f := w.File
	y, x := w.Cursor.Y, w.Cursor.X
	line := f.Line(y)
	preSplit := line.Bytes()[:x]
	leading := line.LeadingSpaces()

	indentWidth := leading
	closesBrace := len(preSplit) > 0 && preSplit[len(preSplit)-1] == '{'
	if closesBrace {
		indentWidth += SpacesPerTab
	}

	f.SplitLineAt(y, x)
	newLineIdx := y + 1
	tail := f.Line(newLineIdx).Bytes()
	f.SetLineBytes(newLineIdx, append(spaces(indentWidth), tail...))

	w.Cursor.Y = newLineIdx
	w.Cursor.X = indentWidth
	w.CursorIdeal = w.Cursor.X

	if closesBrace && w.PreviousKeycode == '{' {
		f.InsertLineAfter(newLineIdx, append(spaces(leading), '}'))
	}

	f.Rehighlight(y)
	f.Rehighlight(newLineIdx)
	settle(w)
}

func spaces(n int) []byte {
	return bytes.Repeat([]byte{' '}, n)
}

// DeleteChar implements backspace semantics: delete the character left
// of the cursor, joining into the previous line at column 0.
func DeleteChar(w *window.Window) {
	if w.File == nil {
		return
	}
	f := w.File
	if w.Cursor.X > 0 {
		f.DeleteByte(w.Cursor.Y, w.Cursor.X-1)
		w.Cursor.X--
		f.Rehighlight(w.Cursor.Y)
	} else if w.Cursor.Y > 0 {
		prevLen := f.Line(w.Cursor.Y - 1).Len()
		f.JoinLines(w.Cursor.Y - 1)
		w.Cursor.Y--
		w.Cursor.X = prevLen
		f.Rehighlight(w.Cursor.Y)
	}
	w.CursorIdeal = w.Cursor.X
	settle(w)
}

// DeleteWordOrUnit implements spec.md §4.3's delete_word_or_unit: a
// delete count is computed from the run classification of the
// pre-cursor bytes, then DeleteChar runs that many times.
func DeleteWordOrUnit(w *window.Window, ctrl bool) {
	if w.File == nil {
		return
	}
	pre := w.File.Line(w.Cursor.Y).Bytes()[:w.Cursor.X]
	var n int
	if ctrl {
		n = ctrlDeleteCount(pre)
	} else {
		n = plainDeleteCount(pre)
	}
	for i := 0; i < n; i++ {
		DeleteChar(w)
	}
}

// DeleteCountForPrefix exposes the same run-classification unit rule
// DeleteWordOrUnit uses, for the minibar to reuse verbatim on its own
// buffer (spec.md §4.8: "ctrl uses the same unit rule as the editor").
func DeleteCountForPrefix(ctrl bool, pre []byte) int {
	if ctrl {
		return ctrlDeleteCount(pre)
	}
	return plainDeleteCount(pre)
}

type runClass int

const (
	classSpace runClass = iota
	classIdent
	classOther
)

func classify(b byte) runClass {
	switch {
	case b == ' ':
		return classSpace
	case b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9'):
		return classIdent
	default:
		return classOther
	}
}

// ctrlDeleteCount returns the length of the trailing run sharing the
// cursor-adjacent byte's class: a run of spaces, or a run of
// identifier bytes. Any other byte deletes just itself. Grounded on
// get_delete_count (original_source/test/test.c:1092-1131), whose
// delete_word branch returns max(1, max(space_count, char_count)) —
// the larger of the two trailing runs, not their sum, since only one
// of the two can be nonzero for a given cursor-adjacent byte.
func ctrlDeleteCount(pre []byte) int {
	if len(pre) == 0 {
		return 1
	}
	switch want := classify(pre[len(pre)-1]); want {
	case classSpace, classIdent:
		i := len(pre)
		run := 0
		for i > 0 && classify(pre[i-1]) == want {
			i--
			run++
		}
		return run
	default:
		return 1
	}
}

// plainDeleteCount deletes SpacesPerTab when the entire pre-cursor
// content is leading whitespace whose length is a multiple of it
// (including an empty prefix, at column zero), else a single byte.
// Grounded on get_delete_count's `leading` branch
// (original_source/test/test.c:1126-1130).
func plainDeleteCount(pre []byte) int {
	for _, b := range pre {
		if b != ' ' {
			return 1
		}
	}
	if len(pre)%SpacesPerTab == 0 {
		return SpacesPerTab
	}
	return 1
}

// Copy implements spec.md §4.3's copy: requires a valid mark, serializes
// the normalized block to clip.
func Copy(w *window.Window, clip *Clipboard) error {
	if !w.Mark.Valid {
		return ErrBlockOperationNoMark
	}
	clip.Set(blockBytes(w.File, w.Mark.Point, w.Cursor))
	return nil
}

func blockBytes(f *buffer.File, a, b geom.Point) []byte {
	start, end := window.Normalize(a, b)
	if start.Y == end.Y {
		return append([]byte(nil), f.Line(start.Y).Bytes()[start.X:end.X]...)
	}
	var parts [][]byte
	parts = append(parts, f.Line(start.Y).Bytes()[start.X:])
	for y := start.Y + 1; y < end.Y; y++ {
		parts = append(parts, f.Line(y).Bytes())
	}
	parts = append(parts, f.Line(end.Y).Bytes()[:end.X])
	return bytes.Join(parts, []byte("\n"))
}

// Cut implements spec.md §4.3's cut: Copy, then delete_block — remove
// every line strictly between start and end, splice the start line's
// prefix onto the end line's suffix, and move the cursor to start.
func Cut(w *window.Window, clip *Clipboard) error {
	if err := Copy(w, clip); err != nil {
		return err
	}
	f := w.File
	start, end := window.Normalize(w.Mark.Point, w.Cursor)

	prefix := append([]byte(nil), f.Line(start.Y).Bytes()[:start.X]...)
	suffix := f.Line(end.Y).Bytes()[end.X:]
	spliced := append(prefix, suffix...)

	for y := end.Y; y > start.Y; y-- {
		f.RemoveLine(y)
	}
	f.SetLineBytes(start.Y, spliced)
	f.Rehighlight(start.Y)

	w.Cursor = start
	w.CursorIdeal = start.X
	w.Mark.Valid = false
	settle(w)
	return nil
}

// Paste implements spec.md §4.3's paste: clipboard bytes are inserted
// at the cursor, '\n' splitting into new lines; the mark is set to the
// pre-paste cursor.
func Paste(w *window.Window, clip *Clipboard) error {
	if clip.Empty() {
		return ErrBlockOperationNoMark
	}
	f := w.File
	origCursor := w.Cursor
	segments := bytes.Split(clip.Get(), []byte("\n"))

	if len(segments) == 1 {
		for _, b := range segments[0] {
			f.InsertByte(w.Cursor.Y, w.Cursor.X, b)
			w.Cursor.X++
		}
		f.Rehighlight(w.Cursor.Y)
	} else {
		original := f.Line(w.Cursor.Y).Bytes()
		head := append([]byte(nil), original[:w.Cursor.X]...)
		tail := append([]byte(nil), original[w.Cursor.X:]...)

		f.SetLineBytes(w.Cursor.Y, append(head, segments[0]...))
		insertAt := w.Cursor.Y
		for i := 1; i < len(segments); i++ {
			content := segments[i]
			if i == len(segments)-1 {
				content = append(append([]byte(nil), segments[i]...), tail...)
			}
			f.InsertLineAfter(insertAt, content)
			insertAt++
		}
		w.Cursor.Y = insertAt
		w.Cursor.X = len(segments[len(segments)-1])
		for y := origCursor.Y; y <= insertAt; y++ {
			f.Rehighlight(y)
		}
	}

	w.CursorIdeal = w.Cursor.X
	w.Mark = window.Mark{Point: origCursor, Valid: true}
	settle(w)
	return nil
}

func settle(w *window.Window) {
	w.Settle()
}
