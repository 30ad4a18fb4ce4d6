package buffer

// Highlighter is the syntax highlighting contract from spec.md §4.5: a
// single left-to-right pass over one line's bytes producing a parallel
// ColorClass slice. Implementations never see more than one line —
// there is no cross-line state, and a comment that spans lines is
// explicitly out of scope (spec.md §4.5 Open Question, left
// unimplemented here as the spec leaves it).
type Highlighter interface {
	Highlight(line []byte) []ColorClass
}

// LanguageProfile is a per-language Highlighter selected by file path
// suffix. Grounded on the teacher's editor/highlighter.go GoHighlighter,
// replacing its five independent regexp passes (which stomp on each
// other's byte ranges) with the single deterministic scan spec.md §4.5
// requires. Keywords are bucketed by length so a candidate identifier
// is checked against only the bucket matching its length, rather than
// the whole set.
type LanguageProfile struct {
	Name        string
	Suffixes    []string
	LineComment string
	Quotes      []byte
	keywordsBy  map[int]map[string]bool
}

// NewLanguageProfile builds the length-bucketed keyword index once, at
// package-init time, not per Highlight call.
func NewLanguageProfile(name string, suffixes []string, lineComment string, quotes []byte, keywords []string) *LanguageProfile {
	p := &LanguageProfile{
		Name:        name,
		Suffixes:    suffixes,
		LineComment: lineComment,
		Quotes:      quotes,
		keywordsBy:  make(map[int]map[string]bool),
	}
	for _, kw := range keywords {
		bucket := p.keywordsBy[len(kw)]
		if bucket == nil {
			bucket = make(map[string]bool)
			p.keywordsBy[len(kw)] = bucket
		}
		bucket[kw] = true
	}
	return p
}

func (p *LanguageProfile) isKeyword(word []byte) bool {
	bucket, ok := p.keywordsBy[len(word)]
	if !ok {
		return false
	}
	return bucket[string(word)]
}

func (p *LanguageProfile) hasQuote(b byte) bool {
	for _, q := range p.Quotes {
		if q == b {
			return true
		}
	}
	return false
}

// Highlight implements a single deterministic scan: at each byte offset
// it tries, in order, line comment / quoted literal / number /
// identifier-or-keyword, falling back to advancing one byte with no
// color. Once a line comment opens, the rest of the line is
// ClassComment and the scan stops — the early termination spec.md
// §4.5 calls for.
func (p *LanguageProfile) Highlight(line []byte) []ColorClass {
	colors := make([]ColorClass, len(line))
	i := 0
	for i < len(line) {
		if p.matchesLineComment(line, i) {
			for j := i; j < len(line); j++ {
				colors[j] = ClassComment
			}
			break
		}
		if p.hasQuote(line[i]) {
			quote := line[i]
			j := i + 1
			for j < len(line) && line[j] != quote {
				j++
			}
			if j < len(line) {
				j++
			}
			class := ClassString
			if quote == '\'' {
				class = ClassChar
			}
			for k := i; k < j; k++ {
				colors[k] = class
			}
			i = j
			continue
		}
		if isDigit(line[i]) {
			j := i
			for j < len(line) && (isDigit(line[j]) || line[j] == '.') {
				j++
			}
			for k := i; k < j; k++ {
				colors[k] = ClassNumber
			}
			i = j
			continue
		}
		if isIdentStart(line[i]) {
			j := i
			for j < len(line) && isIdentPart(line[j]) {
				j++
			}
			if p.isKeyword(line[i:j]) {
				for k := i; k < j; k++ {
					colors[k] = ClassKeyword
				}
			}
			i = j
			continue
		}
		i++
	}
	return colors
}

func (p *LanguageProfile) matchesLineComment(line []byte, i int) bool {
	m := p.LineComment
	if m == "" || i+len(m) > len(line) {
		return false
	}
	for k := 0; k < len(m); k++ {
		if line[i+k] != m[k] {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// Profiles is the built-in set of per-language highlighters, selected
// by path suffix in File.bindHighlighter. Go is grounded directly on
// the teacher's GoHighlighter keyword list; Python is added per
// SPEC_FULL.md §11 to show the mechanism is not Go-specific.
var Profiles = []*LanguageProfile{
	NewLanguageProfile("go", []string{".go"}, "//", []byte{'"', '\''}, []string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var",
		"bool", "byte", "error", "int", "int32", "int64", "rune", "string",
		"uint", "uint32", "uint64", "nil", "true", "false",
	}),
	NewLanguageProfile("python", []string{".py"}, "#", []byte{'"', '\''}, []string{
		"and", "as", "assert", "break", "class", "continue", "def", "del",
		"elif", "else", "except", "finally", "for", "from", "global", "if",
		"import", "in", "is", "lambda", "not", "or", "pass", "raise",
		"return", "try", "while", "with", "yield", "None", "True", "False",
	}),
}
