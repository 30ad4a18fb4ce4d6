package render

import (
	"strconv"

	"github.com/tilescribe/tilescribe/internal/buffer"
	"github.com/tilescribe/tilescribe/internal/geom"
	"github.com/tilescribe/tilescribe/internal/layout"
	"github.com/tilescribe/tilescribe/internal/term"
	"github.com/tilescribe/tilescribe/internal/theme"
	"github.com/tilescribe/tilescribe/internal/window"
)

const (
	EditorLineNumberMargin = 2
	BarLeftMargin          = 6
	BarRightMargin         = 6
	MinibarMaxPathWidth    = 40
)

// Renderer owns the one Buffer reused across frames and the active
// Theme pointer, set by the `theme` minibar command.
type Renderer struct {
	buf   Buffer
	Theme *theme.Theme
}

func New(t *theme.Theme) *Renderer {
	return &Renderer{Theme: t}
}

// Frame runs spec.md §4.4's six-step algorithm against the current
// layout.Tree and window.Table, and writes the assembled buffer to
// termOut in one call.
func (r *Renderer) Frame(tree *layout.Tree, windows *window.Table, focused *window.Window, termOut term.Terminal) error {
	leaves := tree.Leaves()
	root := tree.Rect(tree.Root())
	dirty := make([]bool, root.Size.Height)

	// 1. Dirty aggregation.
	for _, leaf := range leaves {
		region := tree.Region(leaf)
		w := windows.Get(region.Window)
		if w == nil {
			continue
		}
		rect := region.Rect
		contentHeight := rect.Size.Height - 1
		if w.Redraw || (w.File != nil && w.File.Redraw()) {
			for y := rect.Origin.Y; y < rect.Origin.Y+rect.Size.Height; y++ {
				dirty[y] = true
			}
		} else if w.File != nil {
			for j := 0; j < contentHeight; j++ {
				lineIdx := w.Offset.Y + j
				if lineIdx < w.File.LineCount() && w.File.Line(lineIdx).Redraw() {
					dirty[rect.Origin.Y+j] = true
				}
			}
		}
		dirty[rect.Origin.Y+rect.Size.Height-1] = true
	}

	r.buf.Reset()
	r.buf.HideCursor()

	// 2. Clear.
	for y, d := range dirty {
		if d {
			r.buf.MoveTo(0, y)
			r.buf.ClearLine()
		}
	}

	// 3. Paint.
	for _, leaf := range leaves {
		region := tree.Region(leaf)
		w := windows.Get(region.Window)
		if w == nil {
			continue
		}
		r.paintWindow(region.Rect, w, dirty, w == focused)
	}

	// 4. Reset flags (second pass: Files are shared across Windows).
	for _, leaf := range leaves {
		region := tree.Region(leaf)
		w := windows.Get(region.Window)
		if w == nil {
			continue
		}
		w.Redraw = false
		if w.File != nil {
			for j := 0; j < region.Rect.Size.Height-1; j++ {
				lineIdx := w.Offset.Y + j
				if lineIdx < w.File.LineCount() {
					w.File.Line(lineIdx).ClearRedraw()
				}
			}
		}
	}
	for _, leaf := range leaves {
		region := tree.Region(leaf)
		if w := windows.Get(region.Window); w != nil && w.File != nil {
			w.File.ClearRedraw()
		}
	}

	// 5. Cursor.
	r.positionCursor(tree, focused)
	r.buf.ShowCursor()

	// 6. Flush.
	_, err := termOut.Write(r.buf.Bytes())
	return err
}

func (r *Renderer) positionCursor(tree *layout.Tree, w *window.Window) {
	if w == nil {
		return
	}
	rect := tree.Rect(w.Region)
	gutter := gutterWidth(w)
	border := leftBorder(rect)
	if w.Minibar.Active {
		r.buf.MoveTo(rect.Origin.X+w.Minibar.Cursor-w.Minibar.Offset, rect.Origin.Y+rect.Size.Height-1)
		r.buf.SetCursorColor(r.Theme.Color(theme.CursorBackground))
		return
	}
	x := rect.Origin.X + border + gutter + (w.Cursor.X - w.Offset.X)
	y := rect.Origin.Y + (w.Cursor.Y - w.Offset.Y)
	r.buf.MoveTo(x, y)
	r.buf.SetCursorColor(r.Theme.Color(theme.CursorBackground))
}

func leftBorder(rect geom.Rect) int {
	if rect.Origin.X > 0 {
		return 2
	}
	return 0
}

func gutterWidth(w *window.Window) int {
	digits := 1
	if w.File != nil {
		digits = len(strconv.Itoa(w.File.LineCount()))
	}
	return digits + EditorLineNumberMargin
}

func (r *Renderer) paintWindow(rect geom.Rect, w *window.Window, dirty []bool, focused bool) {
	border := leftBorder(rect)
	gutter := gutterWidth(w)
	contentWidth := rect.Size.Width - border - gutter
	contentHeight := rect.Size.Height - 1

	for j := 0; j < contentHeight; j++ {
		row := rect.Origin.Y + j
		if !dirty[row] {
			continue
		}
		r.buf.MoveTo(rect.Origin.X, row)
		if border > 0 {
			r.buf.BgRGB(r.Theme.Color(theme.StatusBackground))
			r.buf.WriteByte(' ')
			r.buf.BgRGB(r.Theme.Color(theme.EditorBackground))
			r.buf.WriteByte(' ')
		}
		r.paintLineNumberAndContent(w, j, gutter, contentWidth)
	}

	if dirty[rect.Origin.Y+rect.Size.Height-1] {
		r.buf.MoveTo(rect.Origin.X, rect.Origin.Y+rect.Size.Height-1)
		r.paintStatusBar(w, rect.Size.Width, focused)
	}
}

func (r *Renderer) paintLineNumberAndContent(w *window.Window, row, gutter, contentWidth int) {
	r.buf.FgRGB(r.Theme.Color(theme.EditorForeground))
	r.buf.BgRGB(r.Theme.Color(theme.EditorBackground))

	lineIdx := w.Offset.Y + row
	if w.File == nil || lineIdx >= w.File.LineCount() {
		r.buf.WriteString(blank(gutter + contentWidth))
		return
	}
	line := w.File.Line(lineIdx)
	num := strconv.Itoa(lineIdx + 1)
	r.buf.WriteString(blank(gutter - len(num) - EditorLineNumberMargin))
	r.buf.WriteString(num)
	r.buf.WriteString(blank(EditorLineNumberMargin))

	chars := line.Bytes()
	colors := line.Colors()
	selMatch, matchLen := selectedMatchOn(w, lineIdx)
	written := 0
	for x := w.Offset.X; x < len(chars) && written < contentWidth; x++ {
		r.paintCell(w, chars[x], colors, x, selMatch, matchLen)
		written++
	}
	r.buf.WriteString(blank(contentWidth - written))
}

func (r *Renderer) paintCell(w *window.Window, b byte, colors []buffer.ColorClass, x int, selMatchX, matchLen int) {
	if selMatchX >= 0 && x >= selMatchX && x < selMatchX+matchLen {
		r.buf.FgRGB(r.Theme.Color(theme.SelectedMatchForeground))
		r.buf.BgRGB(r.Theme.Color(theme.SelectedMatchBackground))
	} else if x < len(colors) {
		r.buf.FgRGB(r.Theme.Color(classToken(colors[x])))
		r.buf.BgRGB(r.Theme.Color(theme.EditorBackground))
	} else {
		r.buf.FgRGB(r.Theme.Color(theme.EditorForeground))
		r.buf.BgRGB(r.Theme.Color(theme.EditorBackground))
	}
	r.buf.WriteByte(b)
}

func classToken(c buffer.ColorClass) theme.Token {
	switch c {
	case buffer.ClassKeyword:
		return theme.SyntaxKeyword
	case buffer.ClassString:
		return theme.SyntaxString
	case buffer.ClassChar:
		return theme.SyntaxChar
	case buffer.ClassNumber:
		return theme.SyntaxNumber
	case buffer.ClassComment:
		return theme.SyntaxComment
	default:
		return theme.EditorForeground
	}
}

// selectedMatchOn returns the column of the currently selected search
// match on lineIdx, or -1 if none.
func selectedMatchOn(w *window.Window, lineIdx int) (int, int) {
	m, ok := w.Search.Current()
	if !ok || m.Y != lineIdx {
		return -1, 0
	}
	return m.X, w.Search.MatchLength
}

func (r *Renderer) paintStatusBar(w *window.Window, width int, focused bool) {
	r.buf.BgRGB(r.Theme.Color(theme.StatusBackground))
	r.buf.FgRGB(r.Theme.Color(theme.StatusForeground))

	text := statusText(w, width)
	if len(text) > width {
		text = text[:width]
	}
	r.buf.WriteString(text)
	r.buf.WriteString(blank(width - len(text)))
}

func statusText(w *window.Window, width int) string {
	if w.Err.Present {
		return w.Err.Message
	}
	if w.Minibar.Active {
		return minibarPrompt(w) + scrolledMinibar(w, width)
	}
	if w.File == nil {
		return "no file"
	}
	path := w.File.Path()
	if len(path) > MinibarMaxPathWidth {
		path = path[len(path)-MinibarMaxPathWidth:]
	}
	marked := ""
	if w.Mark.Valid {
		marked = "[] "
	}
	unsaved := ""
	if !w.File.Saved() {
		unsaved = "*"
	}
	counter := ""
	if w.Search.HasMatches() {
		counter = strconv.Itoa(w.Search.MatchIndex+1) + "/" + strconv.Itoa(len(w.Search.Matches)) + " "
	}
	pct := 0
	if n := w.File.LineCount(); n > 0 {
		pct = w.Cursor.Y * 100 / n
	}
	return counter + marked + path + unsaved + " " + strconv.Itoa(pct) + "%"
}

func minibarPrompt(w *window.Window) string {
	switch w.Minibar.Mode {
	case window.Open:
		return "open: "
	case window.New:
		return "new: "
	case window.Command:
		return ": "
	case window.Find:
		return "find: "
	default:
		return ""
	}
}

// scrolledMinibar keeps the minibar's own cursor at least
// BarLeftMargin/BarRightMargin from the visible edges.
func scrolledMinibar(w *window.Window, width int) string {
	mb := &w.Minibar
	if mb.Cursor-mb.Offset < BarLeftMargin {
		mb.Offset = mb.Cursor - BarLeftMargin
	}
	if mb.Offset < 0 {
		mb.Offset = 0
	}
	if mb.Cursor-mb.Offset > width-BarRightMargin {
		mb.Offset = mb.Cursor - (width - BarRightMargin)
	}
	if mb.Offset > len(mb.Data) {
		mb.Offset = len(mb.Data)
	}
	end := mb.Offset + width
	if end > len(mb.Data) {
		end = len(mb.Data)
	}
	return string(mb.Data[mb.Offset:end])
}

func blank(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
