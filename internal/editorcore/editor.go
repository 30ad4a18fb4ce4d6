// Package editorcore is the top-level glue spec.md §5 describes: a
// single-threaded cooperative loop of the shape "render; read_input;
// dispatch", owning the Region tree, the Window arena, the process-wide
// File table and Clipboard, and the active Theme.
//
// Grounded on the teacher's pkg/editor/editor.go Editor, stripped of
// its undo stack and Perform/Repeat machinery (a non-goal here) and
// of its direct termbox coupling — this Editor talks to the terminal
// only through internal/term.Terminal.
package editorcore

import (
	"strconv"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/config"
	"github.com/tilescribe/tilescribe/internal/edit"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/input"
	"github.com/tilescribe/tilescribe/internal/layout"
	"github.com/tilescribe/tilescribe/internal/minibar"
	"github.com/tilescribe/tilescribe/internal/render"
	"github.com/tilescribe/tilescribe/internal/term"
	"github.com/tilescribe/tilescribe/internal/theme"
	"github.com/tilescribe/tilescribe/internal/window"
)

// Editor wires every subsystem together and runs the main loop.
type Editor struct {
	Tree      *layout.Tree
	Windows   *window.Table
	Files     *buffer.Table
	Clipboard *edit.Clipboard
	Themes    *theme.Registry
	Active    *theme.Theme
	Focus     layout.RegionIndex

	term     term.Terminal
	renderer *render.Renderer
	cfg      config.Config

	pendingSize *geom.Size
	quit        bool

	inputBuf [64]byte
}

// New sizes the tree to the terminal's current dimensions and seats a
// single root Window in it.
func New(cfg config.Config, t term.Terminal) (*Editor, error) {
	size, err := t.Size()
	if err != nil {
		return nil, err
	}

	themes := theme.Builtin()
	active, ok := themes.ByName(cfg.Theme)
	if !ok {
		active = theme.Default()
	}

	windows := window.NewTable()
	winIdx, win := windows.New()
	tree := layout.NewTree(size, cfg.WindowMinimumWidth, cfg.WindowMinimumHeight, winIdx)
	win.Region = tree.Root()

	e := &Editor{
		Tree:      tree,
		Windows:   windows,
		Files:     buffer.NewTable(),
		Clipboard: edit.NewClipboard(),
		Themes:    themes,
		Active:    active,
		Focus:     tree.Root(),
		term:      t,
		renderer:  render.New(active),
		cfg:       cfg,
	}
	e.syncViewports()
	return e, nil
}

func (e *Editor) focusedWindow() *window.Window {
	return e.Windows.Get(e.Tree.Region(e.Focus).Window)
}

// Open loads paths into Windows: the first into the root Window, and
// every subsequent path into a fresh side-by-side split, mirroring a
// CLI invocation like `tilescribe a.go b.go`.
func (e *Editor) Open(paths []string) {
	if len(paths) == 0 {
		return
	}
	win := e.focusedWindow()
	for i, p := range paths {
		f, err := e.Files.OpenPath(p)
		if err != nil {
			win.SetError("can not open file " + p)
			continue
		}
		if i > 0 {
			newIdx, newWin := e.Windows.New()
			childIdx, affected := e.Tree.Split(win.Region, false, newIdx)
			newWin.Region = childIdx
			e.markAffected(affected)
			win = newWin
			e.Focus = childIdx
		}
		win.ChangeFile(f)
	}
	e.syncViewports()
}

// RunCommands feeds a list of minibar command strings through the
// command pipeline at startup, the `--eval` flag described in
// SPEC_FULL.md §0 (cmd/tilescribe splits the flag value on ';').
func (e *Editor) RunCommands(commands []string) {
	win := e.focusedWindow()
	for _, cmd := range commands {
		if cmd == "" {
			continue
		}
		minibar.Enter(win, window.Command)
		win.Minibar.Data = []byte(cmd)
		e.Focus = minibar.HandleKey(win, input.Key{Code: input.Enter}, e.minibarContext(), e.Focus)
		win = e.focusedWindow()
	}
	e.syncViewports()
}

// NotifyResize records the latest known terminal size without
// touching any shared structure — the signal handler installed by
// cmd/tilescribe calls this directly, and the main loop applies it on
// its next iteration (spec.md §5, §9 "Signal-based resize").
func (e *Editor) NotifyResize(size geom.Size) {
	e.pendingSize = &size
}

func (e *Editor) relayout(size geom.Size) {
	affected := e.Tree.Relayout(geom.Rect{Size: size})
	e.markAffected(affected)
	e.syncViewports()
}

func (e *Editor) markAffected(affected []layout.RegionIndex) {
	for _, leaf := range affected {
		widx := e.Tree.Region(leaf).Window
		if win := e.Windows.Get(widx); win != nil {
			win.Region = leaf
			win.MarkDirty()
		}
	}
}

// syncViewports recomputes each Window's content-area size from its
// Region's current Rect, so cursor-margin scrolling always sees the
// true visible width/height.
func (e *Editor) syncViewports() {
	for _, leaf := range e.Tree.Leaves() {
		region := e.Tree.Region(leaf)
		w := e.Windows.Get(region.Window)
		if w == nil {
			continue
		}
		border := 0
		if region.Rect.Origin.X > 0 {
			border = 2
		}
		digits := 1
		if w.File != nil {
			digits = len(strconv.Itoa(w.File.LineCount()))
		}
		gutter := digits + render.EditorLineNumberMargin
		w.Viewport = geom.Size{
			Width:  region.Rect.Size.Width - border - gutter,
			Height: region.Rect.Size.Height - 1,
		}
	}
}

// Run is the single-threaded cooperative loop of spec.md §5:
// render; read_input; dispatch.
func (e *Editor) Run() error {
	for !e.quit {
		if e.pendingSize != nil {
			e.relayout(*e.pendingSize)
			e.pendingSize = nil
		}
		if err := e.renderer.Frame(e.Tree, e.Windows, e.focusedWindow(), e.term); err != nil {
			return err
		}
		n, err := e.term.Read(e.inputBuf[:])
		if err != nil {
			return err
		}
		e.dispatch(e.inputBuf[:n])
	}
	return nil
}

func (e *Editor) save(w *window.Window) {
	if w.File == nil {
		return
	}
	if err := e.Files.Save(w.File); err != nil {
		w.SetError(err.Error())
		return
	}
	w.MarkDirty()
}

func (e *Editor) setTheme(t *theme.Theme) {
	e.Active = t
	e.renderer.Theme = t
}

func (e *Editor) markAllWindowsDirty() {
	for _, idx := range e.Windows.Indices() {
		e.Windows.Get(idx).MarkDirty()
	}
}

func (e *Editor) minibarContext() *minibar.Context {
	return &minibar.Context{
		Tree:         e.Tree,
		Windows:      e.Windows,
		Files:        e.Files,
		Themes:       e.Themes,
		Clipboard:    e.Clipboard,
		SetTheme:     e.setTheme,
		MarkAllDirty: e.markAllWindowsDirty,
	}
}
