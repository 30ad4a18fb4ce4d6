package edit

import (
	"errors"
	"testing"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/window"
)

func newTestWindow(content string) *window.Window {
	table := buffer.NewTable()
	f := table.CreatePath("/tmp/test.go")
	f.SetLineBytes(0, []byte(content))
	w := window.NewWindow()
	w.SetViewport(geom.Size{Width: 80, Height: 24})
	w.ChangeFile(f)
	return w
}

func TestInsertChar(t *testing.T) {
	w := newTestWindow("ac")
	w.Cursor = geom.Point{X: 1, Y: 0}
	InsertChar(w, 'b')
	if string(w.File.Line(0).Bytes()) != "abc" {
		t.Fatalf("line = %q, want abc", w.File.Line(0).Bytes())
	}
	if w.Cursor.X != 2 {
		t.Errorf("cursor.X = %d, want 2", w.Cursor.X)
	}
}

// TestInsertNewlineBracePair is spec.md's S2 scenario: pressing Enter
// right after typing `{` at the end of a line opens a new, indented
// line and appends a matching closing-brace line beneath it.
func TestInsertNewlineBracePair(t *testing.T) {
	w := newTestWindow("func f() {")
	w.Cursor = geom.Point{X: len("func f() {"), Y: 0}
	w.PreviousKeycode = '{'

	InsertNewline(w)

	if w.File.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", w.File.LineCount())
	}
	if string(w.File.Line(1).Bytes()) != "  " {
		t.Errorf("line 1 = %q, want two spaces of indent", w.File.Line(1).Bytes())
	}
	if string(w.File.Line(2).Bytes()) != "}" {
		t.Errorf("line 2 = %q, want closing brace", w.File.Line(2).Bytes())
	}
	if w.Cursor.Y != 1 || w.Cursor.X != 2 {
		t.Errorf("cursor = %+v, want {Y:1 X:2}", w.Cursor)
	}
}

func TestInsertNewlinePlainCarriesLeadingIndent(t *testing.T) {
	w := newTestWindow("  hello")
	w.Cursor = geom.Point{X: len("  hello"), Y: 0}

	InsertNewline(w)

	if w.File.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", w.File.LineCount())
	}
	if string(w.File.Line(1).Bytes()) != "  " {
		t.Errorf("line 1 = %q, want two leading spaces and nothing else", w.File.Line(1).Bytes())
	}
}

func TestDeleteChar(t *testing.T) {
	w := newTestWindow("abc")
	w.Cursor = geom.Point{X: 2, Y: 0}
	DeleteChar(w)
	if string(w.File.Line(0).Bytes()) != "ac" {
		t.Fatalf("line = %q, want ac", w.File.Line(0).Bytes())
	}
}

func TestDeleteCharJoinsAtColumnZero(t *testing.T) {
	w := newTestWindow("first")
	w.File.InsertLineAfter(0, []byte("second"))
	w.Cursor = geom.Point{X: 0, Y: 1}

	DeleteChar(w)

	if w.File.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", w.File.LineCount())
	}
	if string(w.File.Line(0).Bytes()) != "firstsecond" {
		t.Errorf("joined line = %q, want firstsecond", w.File.Line(0).Bytes())
	}
	if w.Cursor.Y != 0 || w.Cursor.X != len("first") {
		t.Errorf("cursor = %+v, want {Y:0 X:5}", w.Cursor)
	}
}

// TestDeleteWordOrUnitCtrl is spec.md's S3 scenario: Ctrl-Delete on
// "    hello world" with the cursor at the end removes the trailing
// identifier run "world", exactly 5 bytes, and keeps the space before it.
func TestDeleteWordOrUnitCtrl(t *testing.T) {
	w := newTestWindow("    hello world")
	w.Cursor = geom.Point{X: len("    hello world"), Y: 0}

	DeleteWordOrUnit(w, true)

	if string(w.File.Line(0).Bytes()) != "    hello " {
		t.Fatalf("line = %q, want %q", w.File.Line(0).Bytes(), "    hello ")
	}
}

// TestDeleteWordOrUnitCtrlTrailingSpaceDeletesOnlyTheSpaceRun covers
// the case S3 doesn't: when the cursor-adjacent byte is itself a
// space, Ctrl-Delete removes only that trailing space run, not the
// word before it too (get_delete_count takes the max of the two runs,
// not their sum).
func TestDeleteWordOrUnitCtrlTrailingSpaceDeletesOnlyTheSpaceRun(t *testing.T) {
	w := newTestWindow("foo ")
	w.Cursor = geom.Point{X: len("foo "), Y: 0}

	DeleteWordOrUnit(w, true)

	if string(w.File.Line(0).Bytes()) != "foo" {
		t.Fatalf("line = %q, want %q", w.File.Line(0).Bytes(), "foo")
	}
}

func TestDeleteWordOrUnitPlainAtColumnZeroDeletesOneTabWidth(t *testing.T) {
	w := newTestWindow("")
	w.Cursor = geom.Point{X: 0, Y: 0}
	DeleteWordOrUnit(w, false)
	if w.Cursor.Y != 0 || w.File.LineCount() != 1 {
		t.Fatalf("deleting a tab-width at column zero on the first line should be a no-op past the buffer start, got cursor=%+v lines=%d", w.Cursor, w.File.LineCount())
	}
}

func TestDeleteWordOrUnitPlainDeletesOneTabOnMultipleOfTabWidth(t *testing.T) {
	w := newTestWindow("    ")
	w.Cursor = geom.Point{X: 4, Y: 0}
	DeleteWordOrUnit(w, false)
	if string(w.File.Line(0).Bytes()) != "  " {
		t.Fatalf("line = %q, want two spaces left after one tab-width delete", w.File.Line(0).Bytes())
	}
}

func TestCopyRequiresMark(t *testing.T) {
	w := newTestWindow("abc")
	err := Copy(w, NewClipboard())
	if !errors.Is(err, ErrBlockOperationNoMark) {
		t.Fatalf("err = %v, want ErrBlockOperationNoMark", err)
	}
}

func TestCopyCutPasteRoundTrip(t *testing.T) {
	w := newTestWindow("hello world")
	w.Mark = window.Mark{Point: geom.Point{X: 0, Y: 0}, Valid: true}
	w.Cursor = geom.Point{X: 5, Y: 0}

	clip := NewClipboard()
	if err := Copy(w, clip); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if string(clip.Get()) != "hello" {
		t.Fatalf("clipboard = %q, want hello", clip.Get())
	}

	if err := Cut(w, clip); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if string(w.File.Line(0).Bytes()) != " world" {
		t.Fatalf("line after cut = %q, want %q", w.File.Line(0).Bytes(), " world")
	}
	if w.Mark.Valid {
		t.Errorf("mark should be invalidated after Cut")
	}

	w.Cursor = geom.Point{X: 0, Y: 0}
	if err := Paste(w, clip); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if string(w.File.Line(0).Bytes()) != "hello world" {
		t.Fatalf("line after paste = %q, want hello world", w.File.Line(0).Bytes())
	}
}

func TestPasteRequiresNonEmptyClipboard(t *testing.T) {
	w := newTestWindow("abc")
	if err := Paste(w, NewClipboard()); !errors.Is(err, ErrBlockOperationNoMark) {
		t.Fatalf("err = %v, want ErrBlockOperationNoMark", err)
	}
}

func TestMultilinePasteSplicesAcrossLines(t *testing.T) {
	w := newTestWindow("AZ")
	clip := NewClipboard()
	clip.Set([]byte("B\nC"))
	w.Cursor = geom.Point{X: 1, Y: 0}

	if err := Paste(w, clip); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if w.File.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", w.File.LineCount())
	}
	if string(w.File.Line(0).Bytes()) != "AB" || string(w.File.Line(1).Bytes()) != "CZ" {
		t.Fatalf("lines = %q / %q", w.File.Line(0).Bytes(), w.File.Line(1).Bytes())
	}
}
