// Package render implements spec.md §4.4's incremental renderer: dirty
// row accounting, a single assembled framebuffer per frame, and the
// raw ANSI/VT escape sequences spec.md §6 lists as the terminal's
// emission surface (CSI cursor addressing, SGR truecolor, OSC cursor
// color).
//
// Grounded on the teacher's screen/screen.go Render/RenderInfoBar
// pattern (build up state, single termbox.Flush per frame) — but
// termbox owned escape assembly there; here the byte buffer is
// assembled directly, since spec.md §4.4 step 6 requires one Write
// call through internal/term, not a library's own flush.
package render

import (
	"fmt"
	"strconv"

	"github.com/tilescribe/tilescribe/internal/theme"
)

// Buffer accumulates one frame's worth of escape sequences and text,
// flushed through internal/term.Terminal.Write in a single call.
type Buffer struct {
	b []byte
}

func (f *Buffer) Bytes() []byte { return f.b }

func (f *Buffer) Reset() { f.b = f.b[:0] }

func (f *Buffer) WriteString(s string) { f.b = append(f.b, s...) }

func (f *Buffer) WriteByte(b byte) { f.b = append(f.b, b) }

// MoveTo emits CSI y;x H, 1-indexed as the terminal expects.
func (f *Buffer) MoveTo(x, y int) {
	f.b = append(f.b, "\x1b["...)
	f.b = strconv.AppendInt(f.b, int64(y+1), 10)
	f.b = append(f.b, ';')
	f.b = strconv.AppendInt(f.b, int64(x+1), 10)
	f.b = append(f.b, 'H')
}

func (f *Buffer) ClearLine() { f.WriteString("\x1b[2K") }

func (f *Buffer) ClearScreen() { f.WriteString("\x1b[2J") }

func (f *Buffer) ShowCursor() { f.WriteString("\x1b[?25h") }

func (f *Buffer) HideCursor() { f.WriteString("\x1b[?25l") }

func (f *Buffer) Bold() { f.WriteString("\x1b[1m") }

func (f *Buffer) Reset3() { f.WriteString("\x1b[0m") }

// FgRGB emits an SGR 24-bit truecolor foreground.
func (f *Buffer) FgRGB(c theme.RGB) {
	f.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B))
}

// BgRGB emits an SGR 24-bit truecolor background.
func (f *Buffer) BgRGB(c theme.RGB) {
	f.WriteString(fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B))
}

// SetCursorColor emits the OSC 12 cursor-color command.
func (f *Buffer) SetCursorColor(c theme.RGB) {
	f.WriteString(fmt.Sprintf("\x1b]12;#%02x%02x%02x\x07", c.R, c.G, c.B))
}

// SetDefaultBackground emits the OSC 11 default-background command.
func (f *Buffer) SetDefaultBackground(c theme.RGB) {
	f.WriteString(fmt.Sprintf("\x1b]11;#%02x%02x%02x\x07", c.R, c.G, c.B))
}
