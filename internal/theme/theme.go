// Package theme assigns RGB triples to the semantic color tokens the
// renderer addresses. It is the editor core's only coupling to color
// policy: the renderer never hard-codes an RGB value, it asks the active
// Theme for one by token.
//
// Grounded on the teacher's gott.Color palette (types/types.go), widened
// from termbox's 256-color attribute space to arbitrary RGB triples, and
// on Gaurav-Gosain-tuios/internal/theme's pattern of a swappable named
// palette behind plain functions — adapted here to a struct-based,
// indexed-and-named registry since spec.md §6 requires lookup by either
// name or numeric index.
package theme

// RGB is a 24-bit color value.
type RGB struct {
	R, G, B uint8
}

// Token identifies a semantic color slot the renderer fills in from the
// active Theme. Never a raw RGB value: swapping the Theme must recolor
// every token-addressed cell without touching renderer code.
type Token int

const (
	EditorForeground Token = iota
	EditorBackground
	StatusForeground
	StatusBackground
	CursorForeground
	CursorBackground
	SelectedMatchForeground
	SelectedMatchBackground
	MatchForeground
	MatchBackground
	SyntaxComment
	SyntaxKeyword
	SyntaxString
	SyntaxChar
	SyntaxNumber
	tokenCount
)

// Theme is a complete assignment of RGB values to every semantic token.
type Theme struct {
	Name   string
	Colors [tokenCount]RGB
}

func (t *Theme) Color(tok Token) RGB {
	return t.Colors[tok]
}

// Registry is an indexed, named collection of Themes. Lookup is by
// case-sensitive name or by position.
type Registry struct {
	themes []*Theme
	byName map[string]int
}

func NewRegistry(themes ...*Theme) *Registry {
	r := &Registry{byName: make(map[string]int, len(themes))}
	for _, t := range themes {
		r.Add(t)
	}
	return r
}

func (r *Registry) Add(t *Theme) {
	r.byName[t.Name] = len(r.themes)
	r.themes = append(r.themes, t)
}

func (r *Registry) ByName(name string) (*Theme, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.themes[i], true
}

func (r *Registry) ByIndex(i int) (*Theme, bool) {
	if i < 0 || i >= len(r.themes) {
		return nil, false
	}
	return r.themes[i], true
}

// Lookup resolves a command-line token from the minibar `theme` command:
// a theme name if one matches exactly, otherwise a plain base-10 index.
func (r *Registry) Lookup(token string) (*Theme, bool) {
	if t, ok := r.byName[token]; ok {
		return r.themes[t], true
	}
	if n, ok := parseIndex(token); ok {
		return r.ByIndex(n)
	}
	return nil, false
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Default returns the built-in default theme, the zero-value choice when
// no config and no `theme` command has run yet.
func Default() *Theme {
	return &defaultTheme
}

// Builtin is the set of themes tilescribe ships without any config file,
// in the spirit of Gaurav-Gosain-tuios/internal/theme's bundled palettes
// (bubbletint) but expressed as plain RGB triples.
func Builtin() *Registry {
	return NewRegistry(&defaultTheme, &solarizedDark, &highContrast)
}

var defaultTheme = Theme{
	Name: "default",
	Colors: [tokenCount]RGB{
		EditorForeground:        {0xe5, 0xe5, 0xe5},
		EditorBackground:        {0x00, 0x00, 0x00},
		StatusForeground:        {0x00, 0x00, 0x00},
		StatusBackground:        {0xe5, 0xe5, 0xe5},
		CursorForeground:        {0x00, 0x00, 0x00},
		CursorBackground:        {0x00, 0xff, 0x00},
		SelectedMatchForeground: {0x00, 0x00, 0x00},
		SelectedMatchBackground: {0xff, 0xff, 0x00},
		MatchForeground:         {0x00, 0x00, 0x00},
		MatchBackground:         {0x80, 0x80, 0x00},
		SyntaxComment:           {0x7f, 0x7f, 0x7f},
		SyntaxKeyword:           {0x5c, 0x5c, 0xff},
		SyntaxString:            {0x00, 0xcd, 0x00},
		SyntaxChar:               {0x00, 0xcd, 0xcd},
		SyntaxNumber:            {0xcd, 0x00, 0xcd},
	},
}

var solarizedDark = Theme{
	Name: "solarized-dark",
	Colors: [tokenCount]RGB{
		EditorForeground:        {0x83, 0x94, 0x96},
		EditorBackground:        {0x00, 0x2b, 0x36},
		StatusForeground:        {0x00, 0x2b, 0x36},
		StatusBackground:        {0x83, 0x94, 0x96},
		CursorForeground:        {0x00, 0x2b, 0x36},
		CursorBackground:        {0x2a, 0xa1, 0x98},
		SelectedMatchForeground: {0x00, 0x2b, 0x36},
		SelectedMatchBackground: {0xb5, 0x89, 0x00},
		MatchForeground:         {0x00, 0x2b, 0x36},
		MatchBackground:         {0x65, 0x7b, 0x83},
		SyntaxComment:           {0x58, 0x6e, 0x75},
		SyntaxKeyword:           {0x85, 0x99, 0x00},
		SyntaxString:            {0x2a, 0xa1, 0x98},
		SyntaxChar:               {0x2a, 0xa1, 0x98},
		SyntaxNumber:            {0xd3, 0x36, 0x82},
	},
}

var highContrast = Theme{
	Name: "high-contrast",
	Colors: [tokenCount]RGB{
		EditorForeground:        {0xff, 0xff, 0xff},
		EditorBackground:        {0x00, 0x00, 0x00},
		StatusForeground:        {0x00, 0x00, 0x00},
		StatusBackground:        {0xff, 0xff, 0xff},
		CursorForeground:        {0x00, 0x00, 0x00},
		CursorBackground:        {0xff, 0xff, 0x00},
		SelectedMatchForeground: {0x00, 0x00, 0x00},
		SelectedMatchBackground: {0x00, 0xff, 0xff},
		MatchForeground:         {0x00, 0x00, 0x00},
		MatchBackground:         {0xff, 0x00, 0xff},
		SyntaxComment:           {0xa0, 0xa0, 0xa0},
		SyntaxKeyword:           {0x00, 0xff, 0xff},
		SyntaxString:            {0x00, 0xff, 0x00},
		SyntaxChar:               {0x00, 0xff, 0x00},
		SyntaxNumber:            {0xff, 0xff, 0x00},
	},
}
