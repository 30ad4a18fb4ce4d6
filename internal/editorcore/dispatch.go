package editorcore

import (
	"github.com/tilescribe/tilescribe/internal/edit"
	"github.com/tilescribe/tilescribe/internal/input"
	"github.com/tilescribe/tilescribe/internal/minibar"
	"github.com/tilescribe/tilescribe/internal/window"
)

// dispatch decodes every key packed into one terminal read and routes
// each through the focused Window's minibar or the plain editor
// bindings, in order, updating PreviousKeycode after each (spec.md
// §4.2's "previous_keycode" feeds InsertNewline's brace-pair rule).
func (e *Editor) dispatch(buf []byte) {
	idx := 0
	for idx < len(buf) && !e.quit {
		key, consumed := input.Decode(buf[idx:])
		if consumed == 0 {
			break
		}
		next := idx + consumed
		remaining := next < len(buf)
		e.dispatchKey(key, remaining)
		idx = next
	}
}

func (e *Editor) dispatchKey(key input.Key, moreBuffered bool) {
	win := e.focusedWindow()
	if win == nil {
		return
	}

	if key.Code == input.CtrlQ {
		e.quit = true
		return
	}

	if win.Minibar.Active {
		ctx := e.minibarContext()
		ctx.PendingInput = func() bool { return moreBuffered }
		e.Focus = minibar.HandleKey(win, key, ctx, e.Focus)
		e.syncViewports()
		win.PreviousKeycode = prevCode(key)
		return
	}

	switch input.Bind(key) {
	case input.Exit:
		e.quit = true
		return
	case input.FocusNext:
		e.Focus = e.Tree.FocusNext(win.Region)
	case input.FocusPrevious:
		e.Focus = e.Tree.FocusPrevious(win.Region)
	case input.PageUp:
		win.PageUp()
	case input.PageDown:
		win.PageDown()
	case input.Open:
		minibar.Enter(win, window.Open)
	case input.New:
		minibar.Enter(win, window.New)
	case input.Save:
		e.save(win)
	case input.Command:
		minibar.Enter(win, window.Command)
	case input.Mark:
		win.ToggleMark()
	case input.Copy:
		if err := edit.Copy(win, e.Clipboard); err != nil {
			win.SetError("no marked block")
		}
	case input.Paste:
		if err := edit.Paste(win, e.Clipboard); err != nil {
			win.SetError("clipboard is empty")
		}
	case input.CutAction:
		if err := edit.Cut(win, e.Clipboard); err != nil {
			win.SetError("no marked block")
		}
	case input.Find:
		minibar.Enter(win, window.Find)
	default:
		e.dispatchEditorKey(win, key)
	}
	win.PreviousKeycode = prevCode(key)
}

// dispatchEditorKey handles every key with no entry in input.Bind's
// Action table: plain motion, line editing, and the error-clearing
// Escape (spec.md §4.7's "unbound keys are motion/edit primitives or
// no-ops").
func (e *Editor) dispatchEditorKey(win *window.Window, key input.Key) {
	switch key.Code {
	case input.Printable:
		edit.InsertChar(win, key.Rune)
	case input.Tab:
		for i := 0; i < edit.SpacesPerTab; i++ {
			edit.InsertChar(win, ' ')
		}
	case input.Enter:
		edit.InsertNewline(win)
	case input.Delete:
		edit.DeleteWordOrUnit(win, false)
	case input.CtrlDelete:
		edit.DeleteWordOrUnit(win, true)
	case input.Up:
		win.MoveUp()
	case input.Down:
		win.MoveDown()
	case input.Left:
		win.MoveLeft()
	case input.Right:
		win.MoveRight()
	case input.Home:
		win.Home()
	case input.End:
		win.End()
	case input.ShiftHome:
		win.ShiftHome()
	case input.ShiftEnd:
		win.ShiftEnd()
	case input.Escape:
		win.ClearError()
	}
}

// prevCode folds a decoded Key back into the single byte FileState and
// InsertNewline track as PreviousKeycode — only the printable-rune
// case matters, since that's the only value InsertNewline inspects
// (looking for '{').
func prevCode(k input.Key) byte {
	if k.Code == input.Printable {
		return k.Rune
	}
	return 0
}
