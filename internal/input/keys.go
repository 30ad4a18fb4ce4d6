// Package input decodes raw terminal bytes into logical keycodes per
// spec.md §4.7's table, and maps the resulting keys onto the editor's
// user-facing bindings. No terminal library is consulted for this:
// the whole point of the table is that tilescribe owns byte-level key
// decoding itself, which is why internal/term's golang.org/x/term
// adapter is kept to raw-mode plumbing only.
//
// Grounded on the teacher's screen/screen.go key() function (which
// maps termbox.Key to gott.Key) for the shape of a decode table, but
// rewritten from scratch against spec.md's own byte table since this
// core decodes raw bytes rather than delegating to termbox's decoder.
package input

// Key is a logical keycode: either a named key below, or a printable
// rune stored in Key.Rune with Code == Printable.
type Key struct {
	Code Code
	Rune byte
}

type Code int

const (
	None Code = iota
	Printable
	Tab
	Enter
	Delete
	CtrlDelete
	Escape
	Up
	Down
	Left
	Right
	Home
	End
	ShiftHome
	ShiftEnd
	ShiftUp
	ShiftDown
	ShiftLeft
	ShiftRight
	CtrlUp
	CtrlDown
	CtrlLeft
	CtrlRight
	CtrlA
	CtrlB
	CtrlC
	CtrlD
	CtrlE
	CtrlF
	CtrlG
	CtrlH
	CtrlJ
	CtrlK
	CtrlL
	CtrlN
	CtrlO
	CtrlP
	CtrlQ
	CtrlR
	CtrlS
	CtrlT
	CtrlU
	CtrlV
	CtrlW
	CtrlX
	CtrlY
	CtrlZ
)

// ctrlLetters maps 0x01..0x1A to the Ctrl-<letter> Code, excluding
// 0x09 (Tab) and 0x0A (Enter), which have their own named keys, and
// 0x0D, which has no Ctrl code and decodes as None. Decode turns 0x08
// into CtrlDelete before this table is consulted, so its CtrlH entry
// is never reached.
var ctrlLetters = map[byte]Code{
	1: CtrlA, 2: CtrlB, 3: CtrlC, 4: CtrlD, 5: CtrlE, 6: CtrlF, 7: CtrlG,
	8: CtrlH, 10: CtrlJ, 11: CtrlK, 12: CtrlL, 14: CtrlN, 15: CtrlO,
	16: CtrlP, 17: CtrlQ, 18: CtrlR, 19: CtrlS, 20: CtrlT, 21: CtrlU,
	22: CtrlV, 23: CtrlW, 24: CtrlX, 25: CtrlY, 26: CtrlZ,
}

// Decode consumes one key's worth of bytes from buf and returns the
// Key plus the number of bytes consumed. buf holds everything read by
// the single blocking read of up to 64 bytes spec.md §4.7 describes;
// Decode is called repeatedly until buf is exhausted.
func Decode(buf []byte) (Key, int) {
	if len(buf) == 0 {
		return Key{Code: None}, 0
	}
	b := buf[0]

	switch {
	case b == 0x09:
		return Key{Code: Tab}, 1
	case b == 0x0A:
		return Key{Code: Enter}, 1
	case b == 0x7F || b == 0x08:
		if b == 0x08 {
			return Key{Code: CtrlDelete}, 1
		}
		return Key{Code: Delete}, 1
	case b >= 0x20 && b <= 0x7E:
		return Key{Code: Printable, Rune: b}, 1
	case b == 0x1B:
		return decodeEscape(buf)
	case b >= 0x01 && b <= 0x1A:
		if code, ok := ctrlLetters[b]; ok {
			return Key{Code: code}, 1
		}
		return Key{Code: None}, 1
	default:
		return Key{Code: None}, 1
	}
}

// decodeEscape handles the ESC-prefixed sequences of spec.md §4.7's
// table: a lone ESC is Escape; unrecognized continuations are
// absorbed as None so the next read starts clean.
func decodeEscape(buf []byte) (Key, int) {
	if len(buf) < 2 {
		return Key{Code: Escape}, 1
	}
	if buf[1] != '[' {
		return Key{Code: None}, len(buf)
	}
	if len(buf) < 3 {
		return Key{Code: None}, len(buf)
	}

	switch buf[2] {
	case 'A':
		return Key{Code: Up}, 3
	case 'B':
		return Key{Code: Down}, 3
	case 'C':
		return Key{Code: Right}, 3
	case 'D':
		return Key{Code: Left}, 3
	case 'H':
		return Key{Code: Home}, 3
	case 'K':
		return Key{Code: ShiftEnd}, 3
	case '4':
		if len(buf) >= 4 && buf[3] == '~' {
			return Key{Code: End}, 4
		}
		return Key{Code: None}, 3
	case '2':
		if len(buf) >= 4 && buf[3] == 'J' {
			return Key{Code: ShiftHome}, 4
		}
		return Key{Code: None}, 3
	case '1':
		return decodeModified(buf)
	default:
		return Key{Code: None}, 3
	}
}

// decodeModified handles `ESC [ 1;2 <dir>` (Shift) and
// `ESC [ 1;5 <dir>` (Ctrl) sequences.
func decodeModified(buf []byte) (Key, int) {
	if len(buf) < 6 || buf[3] != ';' {
		return Key{Code: None}, len(buf)
	}
	mod := buf[4]
	dir := buf[5]
	var shifted, ctrled Code
	switch dir {
	case 'A':
		shifted, ctrled = ShiftUp, CtrlUp
	case 'B':
		shifted, ctrled = ShiftDown, CtrlDown
	case 'C':
		shifted, ctrled = ShiftRight, CtrlRight
	case 'D':
		shifted, ctrled = ShiftLeft, CtrlLeft
	default:
		return Key{Code: None}, 6
	}
	switch mod {
	case '2':
		return Key{Code: shifted}, 6
	case '5':
		return Key{Code: ctrled}, 6
	default:
		return Key{Code: None}, 6
	}
}
