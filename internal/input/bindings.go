package input

// Action is a logical editor command bound to a Key, per spec.md
// §4.7's "User-key bindings (logical)" table.
type Action int

const (
	NoAction Action = iota
	FocusNext
	FocusPrevious
	PageUp
	PageDown
	Exit
	Open
	New
	Save
	Command
	Mark
	Copy
	Paste
	CutAction
	Find
)

// Bind resolves a Key to its bound Action, or NoAction if the key has
// no editor-level binding (it may still be a plain motion key or
// printable character handled directly by the caller).
func Bind(k Key) Action {
	switch k.Code {
	case ShiftRight:
		return FocusNext
	case ShiftLeft:
		return FocusPrevious
	case ShiftUp:
		return PageUp
	case ShiftDown:
		return PageDown
	case CtrlQ:
		return Exit
	case CtrlG:
		return Open
	case CtrlN:
		return New
	case CtrlS:
		return Save
	case CtrlR:
		return Command
	case CtrlB:
		return Mark
	case CtrlC:
		return Copy
	case CtrlV:
		return Paste
	case CtrlX:
		return CutAction
	case CtrlF:
		return Find
	default:
		return NoAction
	}
}
