// Package minibar implements the single-row prompt mode machine from
// spec.md §4.8: open/new/command/find states, each driving the
// focused Window's Minibar substate, with commit actions that reach
// into the layout tree, the file table, and the theme registry.
//
// Grounded on the teacher's commander/commander.go mode-dispatch
// pattern (ProcessKeyEditMode/InsertMode/CommandMode/SearchMode,
// PerformCommand's space-split-and-switch parser), with the vim
// keybindings and golisp eval mode dropped — spec.md §4.7/§4.8 define
// a different, fixed key/command grammar entirely.
package minibar

import (
	"strings"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/edit"
	"github.com/tilescribe/tilescribe/internal/input"
	"github.com/tilescribe/tilescribe/internal/layout"
	"github.com/tilescribe/tilescribe/internal/search"
	"github.com/tilescribe/tilescribe/internal/theme"
	"github.com/tilescribe/tilescribe/internal/window"
)

// Context bundles every process-wide collaborator a commit action may
// need. The editor core constructs one and passes it into HandleKey;
// minibar never holds its own reference to these singletons.
type Context struct {
	Tree         *layout.Tree
	Windows      *window.Table
	Files        *buffer.Table
	Themes       *theme.Registry
	Clipboard    *edit.Clipboard
	PendingInput func() bool
	SetTheme     func(*theme.Theme)
	MarkAllDirty func()
}

// Enter activates mode on w, saving the cursor when entering Find so
// Escape has something to restore.
func Enter(w *window.Window, mode window.MinibarMode) {
	w.Minibar = window.Minibar{Mode: mode, Active: true}
	if mode == window.Find {
		w.Search.SavedCursor = w.Cursor
	}
	w.MarkDirty()
}

func exit(w *window.Window) {
	w.Minibar = window.Minibar{}
	w.MarkDirty()
}

// HandleKey dispatches k to the active minibar state and returns the
// Region that should now have focus (unchanged unless a `close` or
// `split` command ran).
func HandleKey(w *window.Window, k input.Key, ctx *Context, focus layout.RegionIndex) layout.RegionIndex {
	mb := &w.Minibar
	switch k.Code {
	case input.Escape:
		if mb.Mode == window.Find {
			w.Cursor = w.Search.SavedCursor
			w.Search.Clear()
			w.Settle()
		}
		exit(w)
		return focus
	case input.Enter:
		return commit(w, ctx, focus)
	case input.Left:
		if mb.Cursor > 0 {
			mb.Cursor--
		}
		w.MarkDirty()
		return focus
	case input.Right:
		if mb.Cursor < len(mb.Data) {
			mb.Cursor++
		}
		w.MarkDirty()
		return focus
	case input.Home:
		mb.Cursor = 0
		w.MarkDirty()
		return focus
	case input.End:
		mb.Cursor = len(mb.Data)
		w.MarkDirty()
		return focus
	case input.Up:
		if mb.Mode == window.Find {
			w.Search.Previous()
			w.MarkDirty()
		}
		return focus
	case input.Down:
		if mb.Mode == window.Find {
			w.Search.Next()
			w.MarkDirty()
		}
		return focus
	case input.CtrlDown:
		if mb.Mode == window.Find {
			w.Search.JumpForward()
			w.MarkDirty()
		}
		return focus
	case input.Delete:
		deleteInBuffer(w, false, ctx)
		return focus
	case input.CtrlDelete:
		deleteInBuffer(w, true, ctx)
		return focus
	case input.Printable:
		insertInBuffer(w, k.Rune, ctx)
		return focus
	default:
		return focus
	}
}

func insertInBuffer(w *window.Window, b byte, ctx *Context) {
	mb := &w.Minibar
	mb.Data = append(mb.Data, 0)
	copy(mb.Data[mb.Cursor+1:], mb.Data[mb.Cursor:])
	mb.Data[mb.Cursor] = b
	mb.Cursor++
	if mb.Mode == window.Find {
		rerunSearch(w, ctx)
	}
	w.MarkDirty()
}

func deleteInBuffer(w *window.Window, ctrl bool, ctx *Context) {
	mb := &w.Minibar
	if mb.Cursor == 0 {
		return
	}
	n := edit.DeleteCountForPrefix(ctrl, mb.Data[:mb.Cursor])
	for i := 0; i < n && mb.Cursor > 0; i++ {
		mb.Data = append(mb.Data[:mb.Cursor-1], mb.Data[mb.Cursor:]...)
		mb.Cursor--
	}
	if mb.Mode == window.Find {
		rerunSearch(w, ctx)
	}
	w.MarkDirty()
}

// rerunSearch implements spec.md §4.6's incremental re-run: every
// keystroke re-scans the whole File, aborting (and clearing matches)
// if more input arrives mid-scan.
func rerunSearch(w *window.Window, ctx *Context) {
	if w.File == nil {
		w.Search.Clear()
		return
	}
	var abort func() bool
	if ctx != nil {
		abort = ctx.PendingInput
	}
	matches := search.Run(w.Minibar.Data, w.File.LineCount(), func(y int) []byte {
		return w.File.Line(y).Bytes()
	}, abort)
	w.Search.Matches = matches
	w.Search.MatchLength = len(w.Minibar.Data)
	w.Search.SelectFirstAtOrAfter(w.Search.SavedCursor)
	w.MarkDirty()
}

func commit(w *window.Window, ctx *Context, focus layout.RegionIndex) layout.RegionIndex {
	mode := w.Minibar.Mode
	data := string(w.Minibar.Data)
	switch mode {
	case window.Open:
		f, err := ctx.Files.OpenPath(data)
		if err != nil {
			w.SetError("can not open file " + data)
		} else {
			w.ChangeFile(f)
		}
		exit(w)
	case window.New:
		f := ctx.Files.CreatePath(data)
		w.ChangeFile(f)
		exit(w)
	case window.Command:
		focus = runCommand(w, data, ctx, focus)
		exit(w)
	case window.Find:
		if m, ok := w.Search.Current(); ok {
			w.Cursor = m
			w.CursorIdeal = m.X
		}
		w.Search.Clear()
		exit(w)
		w.Settle()
	}
	return focus
}

// runCommand parses the minibar command grammar of spec.md §4.8
// (split/theme/close) plus SPEC_FULL.md §11's fmt/buffer/buffers
// additions.
func runCommand(w *window.Window, cmd string, ctx *Context, focus layout.RegionIndex) layout.RegionIndex {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		w.SetError("unknown command")
		return focus
	}
	switch parts[0] {
	case "split":
		return runSplit(w, parts, ctx, focus)
	case "close":
		return runClose(w, ctx, focus)
	case "theme":
		runTheme(w, parts, ctx)
	case "fmt":
		RunGofmt(w)
	case "buffer":
		runBuffer(w, parts, ctx)
	case "buffers":
		w.SetError(ctx.Files.Listing())
	default:
		w.SetError("unknown command")
	}
	return focus
}

func runSplit(w *window.Window, parts []string, ctx *Context, focus layout.RegionIndex) layout.RegionIndex {
	if len(parts) < 2 || (parts[1] != "-" && parts[1] != "|") {
		w.SetError("split requires - or |")
		return focus
	}
	stacked := parts[1] == "-"
	newIdx, newWin := ctx.Windows.New()
	childIdx, affected := ctx.Tree.Split(w.Region, stacked, newIdx)
	newWin.Region = childIdx
	markAffected(ctx, affected)
	return w.Region
}

func runClose(w *window.Window, ctx *Context, focus layout.RegionIndex) layout.RegionIndex {
	newFocus, freedWindow, affected, ok := ctx.Tree.Remove(w.Region)
	if !ok {
		w.SetError("can not close the only window")
		return focus
	}
	ctx.Windows.Free(freedWindow)
	markAffected(ctx, affected)
	return newFocus
}

func runTheme(w *window.Window, parts []string, ctx *Context) {
	if len(parts) < 2 {
		w.SetError("unknown command")
		return
	}
	th, ok := ctx.Themes.Lookup(parts[1])
	if !ok {
		w.SetError("unknown command")
		return
	}
	ctx.SetTheme(th)
	ctx.MarkAllDirty()
}

func runBuffer(w *window.Window, parts []string, ctx *Context) {
	if len(parts) < 2 {
		w.SetError("unknown command")
		return
	}
	f, ok := ctx.Files.Lookup(parts[1])
	if !ok {
		w.SetError("unknown command")
		return
	}
	w.ChangeFile(f)
}

func markAffected(ctx *Context, affected []layout.RegionIndex) {
	for _, leaf := range affected {
		widx := ctx.Tree.Region(leaf).Window
		if win := ctx.Windows.Get(widx); win != nil {
			win.Region = leaf
			win.MarkDirty()
		}
	}
}
