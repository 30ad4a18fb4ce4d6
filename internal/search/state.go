package search

import "github.com/tilescribe/tilescribe/internal/geom"

// State is the per-Window search substate from spec.md §3: the current
// match set, the selected match, the pattern length (needed to
// highlight the right span), and the cursor position saved on
// entering find mode so Escape can restore it.
type State struct {
	Matches     []geom.Point
	MatchIndex  int
	MatchLength int
	SavedCursor geom.Point
}

func (s *State) Clear() {
	s.Matches = nil
	s.MatchIndex = 0
	s.MatchLength = 0
}

func (s *State) HasMatches() bool { return len(s.Matches) > 0 }

func (s *State) Current() (geom.Point, bool) {
	if !s.HasMatches() {
		return geom.Point{}, false
	}
	return s.Matches[s.MatchIndex], true
}

// Next selects the next match, wrapping around.
func (s *State) Next() {
	if !s.HasMatches() {
		return
	}
	s.MatchIndex = (s.MatchIndex + 1) % len(s.Matches)
}

// Previous selects the previous match, wrapping around.
func (s *State) Previous() {
	if !s.HasMatches() {
		return
	}
	s.MatchIndex--
	if s.MatchIndex < 0 {
		s.MatchIndex = len(s.Matches) - 1
	}
}

// JumpForward advances by spec.md §4.6's Ctrl-Down stride,
// 1 + total/50, wrapping around.
func (s *State) JumpForward() {
	if !s.HasMatches() {
		return
	}
	stride := 1 + len(s.Matches)/50
	s.MatchIndex = (s.MatchIndex + stride) % len(s.Matches)
}

// SelectFirstAtOrAfter picks the first match at or after cursor in
// document order, falling back to the first match overall — spec.md
// §4.6's "initial selection after typing" rule.
func (s *State) SelectFirstAtOrAfter(cursor geom.Point) {
	if !s.HasMatches() {
		return
	}
	for i, m := range s.Matches {
		if m.Y > cursor.Y || (m.Y == cursor.Y && m.X >= cursor.X) {
			s.MatchIndex = i
			return
		}
	}
	s.MatchIndex = 0
}

// Run re-scans every line of lines (via a callback so this package
// never imports buffer) and rebuilds the match set in document order.
// abort is polled between lines; if it returns true, Run stops and
// clears the partial result so a newer pattern can take over cleanly
// (spec.md §4.6's pending-input abort).
func Run(pattern []byte, lineCount int, lineBytes func(y int) []byte, abort func() bool) []geom.Point {
	if len(pattern) == 0 {
		return nil
	}
	p := Compile(pattern)
	var matches []geom.Point
	for y := 0; y < lineCount; y++ {
		if abort != nil && abort() {
			return nil
		}
		for _, x := range p.ScanLine(lineBytes(y)) {
			matches = append(matches, geom.Point{X: x, Y: y})
		}
	}
	return matches
}
