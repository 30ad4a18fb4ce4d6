package search

import (
	"reflect"
	"testing"

	"github.com/tilescribe/tilescribe/internal/geom"
)

func TestScanLineFindsNonOverlappingMatches(t *testing.T) {
	p := Compile([]byte("aa"))
	got := p.ScanLine([]byte("aaaa"))
	want := []int{0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanLine(aaaa) for pattern aa = %v, want %v", got, want)
	}
}

func TestScanLineNoMatch(t *testing.T) {
	p := Compile([]byte("xyz"))
	if got := p.ScanLine([]byte("hello world")); got != nil {
		t.Errorf("ScanLine with no occurrences = %v, want nil", got)
	}
}

func TestScanLinePatternLongerThanLine(t *testing.T) {
	p := Compile([]byte("a very long pattern"))
	if got := p.ScanLine([]byte("short")); got != nil {
		t.Errorf("ScanLine with m>n = %v, want nil", got)
	}
}

func TestScanLineSingleByteMatchesEveryOccurrence(t *testing.T) {
	p := Compile([]byte("l"))
	got := p.ScanLine([]byte("hello"))
	want := []int{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanLine(hello) for pattern l = %v, want %v", got, want)
	}
}

func TestScanLineExhaustive(t *testing.T) {
	// Law: every exact, non-overlapping substring occurrence a naive
	// scan would report is also reported by the Boyer-Moore scan.
	line := []byte("abcabcabcabc")
	p := Compile([]byte("abc"))
	got := p.ScanLine(line)
	want := []int{0, 3, 6, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanLine = %v, want %v", got, want)
	}
}

func TestRunAbortsAndClearsPartialResult(t *testing.T) {
	calls := 0
	abort := func() bool {
		calls++
		return calls > 1
	}
	lines := [][]byte{[]byte("aa"), []byte("aa"), []byte("aa")}
	got := Run([]byte("a"), len(lines), func(y int) []byte { return lines[y] }, abort)
	if got != nil {
		t.Errorf("Run with an abort mid-scan should return nil, got %v", got)
	}
}

func TestRunEmptyPatternYieldsNoMatches(t *testing.T) {
	if got := Run(nil, 3, func(int) []byte { return []byte("x") }, nil); got != nil {
		t.Errorf("Run with empty pattern = %v, want nil", got)
	}
}

func TestStateNextPreviousWrap(t *testing.T) {
	s := &State{Matches: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}}
	s.Previous()
	if s.MatchIndex != 2 {
		t.Errorf("Previous() from index 0 = %d, want 2 (wrap)", s.MatchIndex)
	}
	s.Next()
	if s.MatchIndex != 0 {
		t.Errorf("Next() from index 2 = %d, want 0 (wrap)", s.MatchIndex)
	}
}

func TestStateSelectFirstAtOrAfter(t *testing.T) {
	s := &State{Matches: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 2}, {X: 0, Y: 5}}}
	s.SelectFirstAtOrAfter(geom.Point{X: 0, Y: 3})
	if s.MatchIndex != 2 {
		t.Errorf("SelectFirstAtOrAfter(y=3) = index %d, want 2", s.MatchIndex)
	}
}

func TestStateSelectFirstAtOrAfterFallsBackToFirst(t *testing.T) {
	s := &State{Matches: []geom.Point{{X: 0, Y: 0}}, MatchIndex: 0}
	s.SelectFirstAtOrAfter(geom.Point{X: 99, Y: 99})
	if s.MatchIndex != 0 {
		t.Errorf("fallback MatchIndex = %d, want 0", s.MatchIndex)
	}
}

func TestStateClearIsIdempotent(t *testing.T) {
	s := &State{Matches: []geom.Point{{X: 0, Y: 0}}, MatchIndex: 0, MatchLength: 1}
	s.Clear()
	s.Clear()
	if s.HasMatches() {
		t.Errorf("HasMatches() after double Clear should be false")
	}
}
