package minibar

import (
	"testing"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/input"
	"github.com/tilescribe/tilescribe/internal/layout"
	"github.com/tilescribe/tilescribe/internal/theme"
	"github.com/tilescribe/tilescribe/internal/window"
)

func newTestContext(t *testing.T) (*Context, *window.Window, layout.RegionIndex) {
	t.Helper()
	windows := window.NewTable()
	widx, w := windows.New()
	tree := layout.NewTree(geom.Size{Width: 80, Height: 24}, 40, 10, widx)
	w.Region = tree.Root()
	w.SetViewport(geom.Size{Width: 78, Height: 23})

	ctx := &Context{
		Tree:         tree,
		Windows:      windows,
		Files:        buffer.NewTable(),
		Themes:       theme.Builtin(),
		Clipboard:    nil,
		SetTheme:     func(*theme.Theme) {},
		MarkAllDirty: func() {},
	}
	return ctx, w, tree.Root()
}

func typeString(w *window.Window, ctx *Context, focus layout.RegionIndex, s string) layout.RegionIndex {
	for _, b := range []byte(s) {
		focus = HandleKey(w, input.Key{Code: input.Printable, Rune: b}, ctx, focus)
	}
	return focus
}

func TestEnterActivatesMinibar(t *testing.T) {
	_, w, _ := newTestContext(t)
	Enter(w, window.Command)
	if !w.Minibar.Active || w.Minibar.Mode != window.Command {
		t.Fatalf("Minibar = %+v, want Active Command mode", w.Minibar)
	}
}

func TestEscapeExitsAndRestoresFindCursor(t *testing.T) {
	ctx, w, focus := newTestContext(t)
	w.Cursor = geom.Point{X: 3, Y: 0}
	Enter(w, window.Find)
	focus = typeString(w, ctx, focus, "xyz")

	HandleKey(w, input.Key{Code: input.Escape}, ctx, focus)
	if w.Minibar.Active {
		t.Errorf("Minibar still active after Escape")
	}
	if w.Cursor != (geom.Point{X: 3, Y: 0}) {
		t.Errorf("Cursor after Escape = %+v, want restored to {X:3 Y:0}", w.Cursor)
	}
}

func TestCommandSplitCreatesSecondWindow(t *testing.T) {
	ctx, w, focus := newTestContext(t)
	Enter(w, window.Command)
	focus = typeString(w, ctx, focus, "split |")
	focus = HandleKey(w, input.Key{Code: input.Enter}, ctx, focus)

	if len(ctx.Tree.Leaves()) != 2 {
		t.Fatalf("got %d leaves after split, want 2", len(ctx.Tree.Leaves()))
	}
	if w.Minibar.Active {
		t.Errorf("Minibar still active after commit")
	}
	_ = focus
}

func TestCommandUnknownSetsError(t *testing.T) {
	ctx, w, focus := newTestContext(t)
	Enter(w, window.Command)
	focus = typeString(w, ctx, focus, "bogus")
	HandleKey(w, input.Key{Code: input.Enter}, ctx, focus)
	if !w.Err.Present {
		t.Errorf("expected an error to be set for an unknown command")
	}
}

func TestCommandThemeSwitchesActiveTheme(t *testing.T) {
	ctx, w, focus := newTestContext(t)
	var applied *theme.Theme
	ctx.SetTheme = func(th *theme.Theme) { applied = th }
	Enter(w, window.Command)
	focus = typeString(w, ctx, focus, "theme high-contrast")
	HandleKey(w, input.Key{Code: input.Enter}, ctx, focus)
	if applied == nil || applied.Name != "high-contrast" {
		t.Errorf("applied theme = %+v, want high-contrast", applied)
	}
}

func TestNewModeCreatesFile(t *testing.T) {
	ctx, w, focus := newTestContext(t)
	path := ctx.Files.CreatePath("/tmp/does-not-matter.go").Path()
	_ = path
	Enter(w, window.New)
	focus = typeString(w, ctx, focus, "/tmp/fresh.go")
	HandleKey(w, input.Key{Code: input.Enter}, ctx, focus)
	if w.File == nil || w.File.Path() != "/tmp/fresh.go" {
		t.Errorf("File after commit = %+v, want /tmp/fresh.go", w.File)
	}
}

func TestRunGofmtSkipsNonGoFiles(t *testing.T) {
	ctx, w, _ := newTestContext(t)
	f := ctx.Files.CreatePath("/tmp/notes.txt")
	f.SetLineBytes(0, []byte("   messy    "))
	w.ChangeFile(f)

	RunGofmt(w)
	if string(f.Line(0).Bytes()) != "   messy    " {
		t.Errorf("RunGofmt touched a non-.go file's content")
	}
}

func TestRunGofmtReformatsGoSource(t *testing.T) {
	ctx, w, _ := newTestContext(t)
	f := ctx.Files.CreatePath("/tmp/messy.go")
	f.SetLineBytes(0, []byte("package   p"))
	f.InsertLineAfter(0, []byte("func   F(){}"))
	w.ChangeFile(f)

	RunGofmt(w)
	if w.Err.Present {
		t.Fatalf("RunGofmt set an error: %s", w.Err.Message)
	}
	if got := string(f.Line(0).Bytes()); got != "package p" {
		t.Errorf("line 0 after gofmt = %q, want %q", got, "package p")
	}
}

func TestDeleteInBufferUsesSharedUnitRule(t *testing.T) {
	ctx, w, focus := newTestContext(t)
	Enter(w, window.Command)
	focus = typeString(w, ctx, focus, "  ") // two leading spaces, a multiple of SpacesPerTab
	HandleKey(w, input.Key{Code: input.Delete}, ctx, focus)
	if string(w.Minibar.Data) != "" {
		t.Errorf("Minibar.Data = %q, want empty after deleting the whole tab-width run", w.Minibar.Data)
	}
}
