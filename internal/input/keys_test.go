package input

import "testing"

func TestDecodePrintable(t *testing.T) {
	k, n := Decode([]byte("a"))
	if n != 1 || k.Code != Printable || k.Rune != 'a' {
		t.Errorf("Decode('a') = %+v, %d", k, n)
	}
}

func TestDecodeTabEnterDelete(t *testing.T) {
	cases := []struct {
		b    byte
		code Code
	}{
		{0x09, Tab},
		{0x0A, Enter},
		{0x7F, Delete},
		{0x08, CtrlDelete},
	}
	for _, c := range cases {
		k, n := Decode([]byte{c.b})
		if n != 1 || k.Code != c.code {
			t.Errorf("Decode(%#x) = %+v, %d; want code %v", c.b, k, n, c.code)
		}
	}
}

func TestDecodeCtrlLetters(t *testing.T) {
	k, n := Decode([]byte{0x11}) // Ctrl-Q
	if n != 1 || k.Code != CtrlQ {
		t.Errorf("Decode(0x11) = %+v, %d; want CtrlQ", k, n)
	}
}

func TestDecodeArrowKeys(t *testing.T) {
	cases := map[string]Code{
		"\x1b[A": Up,
		"\x1b[B": Down,
		"\x1b[C": Right,
		"\x1b[D": Left,
		"\x1b[H": Home,
	}
	for seq, want := range cases {
		k, n := Decode([]byte(seq))
		if n != len(seq) || k.Code != want {
			t.Errorf("Decode(%q) = %+v, %d; want code %v consuming %d bytes", seq, k, n, want, len(seq))
		}
	}
}

func TestDecodeEndAndShiftHome(t *testing.T) {
	k, n := Decode([]byte("\x1b[4~"))
	if n != 4 || k.Code != End {
		t.Errorf("Decode(ESC[4~) = %+v, %d; want End", k, n)
	}
	k, n = Decode([]byte("\x1b[2J"))
	if n != 4 || k.Code != ShiftHome {
		t.Errorf("Decode(ESC[2J) = %+v, %d; want ShiftHome", k, n)
	}
}

func TestDecodeModifiedArrows(t *testing.T) {
	k, n := Decode([]byte("\x1b[1;2C")) // Shift-Right
	if n != 6 || k.Code != ShiftRight {
		t.Errorf("Decode(ESC[1;2C) = %+v, %d; want ShiftRight", k, n)
	}
	k, n = Decode([]byte("\x1b[1;5D")) // Ctrl-Left
	if n != 6 || k.Code != CtrlLeft {
		t.Errorf("Decode(ESC[1;5D) = %+v, %d; want CtrlLeft", k, n)
	}
}

func TestDecodeLoneEscape(t *testing.T) {
	k, n := Decode([]byte{0x1b})
	if n != 1 || k.Code != Escape {
		t.Errorf("Decode(lone ESC) = %+v, %d; want Escape", k, n)
	}
}

func TestDecodeUnknownEscapeAbsorbed(t *testing.T) {
	k, n := Decode([]byte("\x1b[Z"))
	if k.Code != None || n != 3 {
		t.Errorf("Decode(unknown ESC[Z) = %+v, %d; want None consuming 3", k, n)
	}
}

func TestBindLogicalActions(t *testing.T) {
	cases := map[Key]Action{
		{Code: CtrlQ}:      Exit,
		{Code: CtrlS}:      Save,
		{Code: ShiftRight}: FocusNext,
		{Code: ShiftLeft}:  FocusPrevious,
		{Code: Up}:         NoAction,
	}
	for k, want := range cases {
		if got := Bind(k); got != want {
			t.Errorf("Bind(%+v) = %v, want %v", k, got, want)
		}
	}
}
