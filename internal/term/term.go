// Package term is the narrow seam between tilescribe's core and the
// operating system's terminal, matching spec.md §6's "external
// collaborator" framing: raw-mode byte reads, a width/height query,
// and a single Write per rendered frame. No escape sequence is
// assembled here — internal/render owns that — this package only
// moves bytes and toggles raw mode.
//
// Grounded on golang.org/x/term's usage in kungfusheep-glyph and
// Gaurav-Gosain-tuios, replacing the teacher's termbox-go (see
// DESIGN.md for why termbox itself isn't kept: it owns its own event
// decoding loop, which conflicts with spec.md §4.7's explicit
// byte-level key table that this core must own).
package term

import (
	"os"

	"golang.org/x/term"

	"github.com/tilescribe/tilescribe/internal/geom"
)

// Terminal is the interface internal/render and internal/editorcore
// consume. It never appears in test code as anything but a fake (see
// the fakeTerminal helpers in internal/editorcore and internal/render
// tests).
type Terminal interface {
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)
	Size() (geom.Size, error)
	Close() error
}

// Real is the golang.org/x/term-backed Terminal, operating on stdin/stdout
// once placed into raw mode.
type Real struct {
	fd       int
	oldState *term.State
}

// Open puts stdin into raw mode and returns a Terminal writing to
// stdout. The caller must Close it (which restores the saved mode)
// before the process exits, including on a fatal error path
// (spec.md §7).
func Open() (*Real, error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Real{fd: fd, oldState: old}, nil
}

func (r *Real) Read(buf []byte) (int, error) { return os.Stdin.Read(buf) }

func (r *Real) Write(buf []byte) (int, error) { return os.Stdout.Write(buf) }

func (r *Real) Size() (geom.Size, error) {
	w, h, err := term.GetSize(r.fd)
	if err != nil {
		return geom.Size{}, err
	}
	return geom.Size{Width: w, Height: h}, nil
}

func (r *Real) Close() error {
	if r.oldState == nil {
		return nil
	}
	return term.Restore(r.fd, r.oldState)
}
