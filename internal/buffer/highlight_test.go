package buffer

import "testing"

func TestGoProfileKeywordAndComment(t *testing.T) {
	p := Profiles[0]
	line := []byte(`func main() { // start`)
	colors := p.Highlight(line)
	if colors[0] != ClassKeyword {
		t.Errorf("'f' of func = %v, want ClassKeyword", colors[0])
	}
	commentAt := len(`func main() { `)
	if colors[commentAt] != ClassComment {
		t.Errorf("comment start = %v, want ClassComment", colors[commentAt])
	}
	if colors[len(line)-1] != ClassComment {
		t.Errorf("comment should extend to line end")
	}
}

func TestGoProfileStringAndNumber(t *testing.T) {
	p := Profiles[0]
	line := []byte(`x := "hi" + 42`)
	colors := p.Highlight(line)
	quoteStart := len(`x := `)
	if colors[quoteStart] != ClassString {
		t.Errorf("string start = %v, want ClassString", colors[quoteStart])
	}
	numStart := len(`x := "hi" + `)
	if colors[numStart] != ClassNumber {
		t.Errorf("number start = %v, want ClassNumber", colors[numStart])
	}
}

func TestGoProfileIdentifierIsNotKeyword(t *testing.T) {
	p := Profiles[0]
	colors := p.Highlight([]byte("funcky"))
	for i, c := range colors {
		if c == ClassKeyword {
			t.Fatalf("byte %d colored as keyword in non-keyword identifier %q", i, "funcky")
		}
	}
}

func TestPythonProfileSelectedBySuffix(t *testing.T) {
	var found *LanguageProfile
	for _, p := range Profiles {
		for _, s := range p.Suffixes {
			if s == ".py" {
				found = p
			}
		}
	}
	if found == nil {
		t.Fatal("no profile registered for .py")
	}
	colors := found.Highlight([]byte("def f(): pass"))
	if colors[0] != ClassKeyword {
		t.Errorf("'def' = %v, want ClassKeyword", colors[0])
	}
}
