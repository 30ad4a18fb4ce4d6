package render

import (
	"errors"
	"testing"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/layout"
	"github.com/tilescribe/tilescribe/internal/theme"
	"github.com/tilescribe/tilescribe/internal/window"
)

// fakeTerminal captures Write calls instead of touching a real tty,
// letting Frame's six-step algorithm be asserted against in isolation.
type fakeTerminal struct {
	written []byte
	writes  int
	size    geom.Size
	failing bool
}

func (f *fakeTerminal) Read(buf []byte) (int, error) { return 0, nil }

func (f *fakeTerminal) Write(buf []byte) (int, error) {
	if f.failing {
		return 0, errors.New("write failed")
	}
	f.writes++
	f.written = append(f.written, buf...)
	return len(buf), nil
}

func (f *fakeTerminal) Size() (geom.Size, error) { return f.size, nil }

func (f *fakeTerminal) Close() error { return nil }

func newFrameFixture(t *testing.T) (*layout.Tree, *window.Table, *window.Window) {
	t.Helper()
	windows := window.NewTable()
	widx, w := windows.New()
	tree := layout.NewTree(geom.Size{Width: 20, Height: 5}, 10, 3, widx)
	w.Region = tree.Root()
	w.SetViewport(geom.Size{Width: 18, Height: 4})

	files := buffer.NewTable()
	f := files.CreatePath("/tmp/frame.txt")
	f.SetLineBytes(0, []byte("hello"))
	w.ChangeFile(f)
	return tree, windows, w
}

func TestFrameWritesExactlyOnce(t *testing.T) {
	tree, windows, w := newFrameFixture(t)
	term := &fakeTerminal{}
	r := New(theme.Default())

	if err := r.Frame(tree, windows, w, term); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(term.written) == 0 {
		t.Fatalf("Frame wrote nothing to the terminal")
	}
	if term.writes != 1 {
		t.Errorf("Frame called Write %d times, want exactly 1", term.writes)
	}
}

func TestFramePropagatesWriteError(t *testing.T) {
	tree, windows, w := newFrameFixture(t)
	term := &fakeTerminal{failing: true}
	r := New(theme.Default())

	if err := r.Frame(tree, windows, w, term); err == nil {
		t.Fatalf("Frame should propagate the terminal's Write error")
	}
}

func TestFrameClearsRedrawFlagsAfterPainting(t *testing.T) {
	tree, windows, w := newFrameFixture(t)
	r := New(theme.Default())

	if err := r.Frame(tree, windows, w, &fakeTerminal{}); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if w.Redraw {
		t.Errorf("Window.Redraw still true after a frame painted it")
	}
	if w.File.Redraw() {
		t.Errorf("File.Redraw still true after a frame painted it")
	}
}

func TestFrameSkipsUntouchedRowsOnSecondPass(t *testing.T) {
	tree, windows, w := newFrameFixture(t)
	r := New(theme.Default())

	first := &fakeTerminal{}
	if err := r.Frame(tree, windows, w, first); err != nil {
		t.Fatalf("first Frame: %v", err)
	}
	second := &fakeTerminal{}
	if err := r.Frame(tree, windows, w, second); err != nil {
		t.Fatalf("second Frame: %v", err)
	}
	// The status bar row is always repainted (spec.md §4.4 treats it as
	// permanently dirty), but with nothing else touched between frames
	// the second pass must still be strictly smaller than the first,
	// which also repaints the full content area.
	if len(second.written) == 0 {
		t.Fatalf("second Frame wrote nothing at all, expected at least the status bar and cursor escapes")
	}
	if len(second.written) >= len(first.written) {
		t.Errorf("second Frame wrote %d bytes, want fewer than the first frame's %d now that only the status bar is dirty", len(second.written), len(first.written))
	}
}

func TestStatusTextShowsErrorOverEverythingElse(t *testing.T) {
	tree, windows, w := newFrameFixture(t)
	_, _ = tree, windows
	w.SetError("boom")
	if got := statusText(w, 40); got != "boom" {
		t.Errorf("statusText = %q, want the error message", got)
	}
}

func TestMinibarPromptPerMode(t *testing.T) {
	cases := map[window.MinibarMode]string{
		window.Open:    "open: ",
		window.New:     "new: ",
		window.Command: ": ",
		window.Find:    "find: ",
	}
	w := window.NewWindow()
	for mode, want := range cases {
		w.Minibar.Mode = mode
		if got := minibarPrompt(w); got != want {
			t.Errorf("minibarPrompt(%v) = %q, want %q", mode, got, want)
		}
	}
}
