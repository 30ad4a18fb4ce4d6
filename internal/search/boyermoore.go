// Package search implements the in-file substring search: Boyer-Moore
// matching per line, run across an entire buffer.File, plus the match
// navigation state a Window's find-mode minibar drives.
//
// No file in the retrieval pack implements Boyer-Moore (the teacher's
// commander.go search mode is a linear byte.Contains scan); this
// package is written directly from spec.md §4.6's bad-character and
// good-suffix tables and scanning loop, in the same plain, no-library
// style the teacher uses for its own hand-rolled algorithms (e.g. the
// indent heuristics in pkg/editor/window.go).
package search

// Pattern is a compiled Boyer-Moore pattern: the bad-character table
// bc[256] and the good-suffix table gs, indexed directly by the number
// of trailing characters matched before a mismatch (spec.md §4.6's
// scanning loop uses gs[matched], not the classical per-position
// table).
type Pattern struct {
	bytes []byte
	bc    [256]int
	gs    []int
}

// Compile precomputes both tables for pattern. The empty pattern
// compiles to a Pattern that matches nothing.
func Compile(pattern []byte) *Pattern {
	p := &Pattern{bytes: append([]byte(nil), pattern...)}
	if len(pattern) == 0 {
		return p
	}
	p.bc = computeBadChar(pattern)
	p.gs = computeGoodSuffix(pattern)
	return p
}

func (p *Pattern) Len() int { return len(p.bytes) }

func computeBadChar(pattern []byte) [256]int {
	m := len(pattern)
	var bc [256]int
	for c := range bc {
		bc[c] = m
	}
	for i := 0; i < m; i++ {
		bc[pattern[i]] = m - i - 1
	}
	return bc
}

// computeGoodSuffix returns gs[1..m) where gs[k] is the smallest
// positive shift that re-aligns an earlier occurrence of the last k
// characters of pattern against itself, falling back to 1 (per
// spec.md §9's "clamp shift to >= 1") when no such occurrence exists.
// This checks every candidate shift directly against the matched
// suffix rather than building the classical linear-time suffix
// tables — O(m^2) in the pattern length, acceptable for the short,
// interactively-typed patterns a find-mode minibar produces.
func computeGoodSuffix(pattern []byte) []int {
	m := len(pattern)
	gs := make([]int, m)
	for k := 1; k < m; k++ {
		shift := 1
		for s := 1; s < m; s++ {
			ok := true
			for i := 0; i < k; i++ {
				pos := m - k + i
				shifted := pos - s
				if shifted < 0 {
					continue
				}
				if pattern[pos] != pattern[shifted] {
					ok = false
					break
				}
			}
			if ok {
				shift = s
				break
			}
			shift = 1
		}
		gs[k] = shift
	}
	return gs
}

// ScanLine finds every non-overlapping occurrence of p in line, in
// left-to-right order, following spec.md §4.6's scanning loop. After a
// match the scan resumes with the next window starting just past the
// match's last byte, which is why results are non-overlapping.
func (p *Pattern) ScanLine(line []byte) []int {
	m := len(p.bytes)
	n := len(line)
	if m == 0 || m > n {
		return nil
	}
	var matches []int
	i := m - 1
	for i < n {
		j := m - 1
		matched := 0
		for j >= 0 && i >= 0 && p.bytes[j] == line[i] {
			i--
			j--
			matched++
		}
		if j < 0 {
			matches = append(matches, i+1)
			i += 2 * m
		} else {
			shift := p.bc[line[i]]
			if matched > 0 {
				shift = p.gs[matched]
			}
			if shift < 1 {
				shift = 1
			}
			i = i + matched + shift
		}
	}
	return matches
}
