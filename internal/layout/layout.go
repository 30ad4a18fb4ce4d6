// Package layout implements the binary-tree partition of the terminal
// into rectangular regions described by spec.md §4.1. A Region is
// either a leaf holding a window slot or an internal node holding two
// children and a split ratio.
//
// Grounded on the teacher's pkg/editor/window.go, which folds region
// geometry and window state into one recursive Window type. spec.md §9
// calls for separating the two into an arena of Regions plus a
// separate arena of Windows linked by index, because the
// Region↔Window back-reference and the Region parent pointer form a
// cyclic graph that Go's ownership model can't express as plain
// pointers without either arena indices or unsafe aliasing. This
// package owns only the Region arena; the Window arena lives in
// internal/window and is threaded through by index (WindowIndex),
// never referenced directly here.
package layout

import "github.com/tilescribe/tilescribe/internal/geom"

// RegionIndex addresses a node in a Tree's arena. The zero value is a
// valid index (the root, always allocated first); NoRegion marks the
// absence of a parent or child.
type RegionIndex int

// WindowIndex addresses a slot in the caller's Window arena. Layout
// never dereferences it; NoWindow marks an internal node.
type WindowIndex int

const (
	NoRegion RegionIndex = -1
	NoWindow WindowIndex = -1
)

// Region is a node in the binary partition tree: a leaf (Window !=
// NoWindow, both children == NoRegion) or an internal node (both
// children valid, Window == NoWindow).
type Region struct {
	Parent   RegionIndex
	Children [2]RegionIndex
	Window   WindowIndex
	Split    float64
	Stacked  bool
	Rect     geom.Rect
}

func (r *Region) IsLeaf() bool { return r.Window != NoWindow }

// Tree is the arena of Regions for one terminal. Freed slots are
// tracked on a free list so repeated split/remove cycles don't grow
// the arena without bound.
type Tree struct {
	regions []Region
	free    []RegionIndex
	root    RegionIndex
	minW    int
	minH    int
}

// NewTree allocates a single root leaf filling size, holding firstWindow.
func NewTree(size geom.Size, minWidth, minHeight int, firstWindow WindowIndex) *Tree {
	t := &Tree{minW: minWidth, minH: minHeight}
	idx := t.alloc(Region{
		Parent:   NoRegion,
		Children: [2]RegionIndex{NoRegion, NoRegion},
		Window:   firstWindow,
		Rect:     geom.Rect{Size: size},
	})
	t.root = idx
	return t
}

func (t *Tree) alloc(r Region) RegionIndex {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.regions[idx] = r
		return idx
	}
	t.regions = append(t.regions, r)
	return RegionIndex(len(t.regions) - 1)
}

func (t *Tree) free1(idx RegionIndex) {
	t.free = append(t.free, idx)
}

func (t *Tree) Root() RegionIndex { return t.root }

func (t *Tree) Region(idx RegionIndex) *Region { return &t.regions[idx] }

func (t *Tree) Rect(idx RegionIndex) geom.Rect { return t.regions[idx].Rect }

func (t *Tree) IsLeaf(idx RegionIndex) bool { return t.regions[idx].IsLeaf() }

// Leaves returns every leaf Region index in document (in-order) order.
func (t *Tree) Leaves() []RegionIndex {
	var out []RegionIndex
	var walk func(RegionIndex)
	walk = func(idx RegionIndex) {
		r := &t.regions[idx]
		if r.IsLeaf() {
			out = append(out, idx)
			return
		}
		walk(r.Children[0])
		walk(r.Children[1])
	}
	walk(t.root)
	return out
}

// Split converts leaf into an internal node with split=0.5 and the
// given orientation, keeping leaf's existing window as child 0 and
// attaching newWindow as child 1. Returns the new leaf Region holding
// newWindow, and the set of leaves whose Rect changed (both children).
func (t *Tree) Split(leaf RegionIndex, stacked bool, newWindow WindowIndex) (RegionIndex, []RegionIndex) {
	r := &t.regions[leaf]
	existingWindow := r.Window
	rect := r.Rect

	child0 := t.alloc(Region{Parent: leaf, Children: [2]RegionIndex{NoRegion, NoRegion}, Window: existingWindow})
	child1 := t.alloc(Region{Parent: leaf, Children: [2]RegionIndex{NoRegion, NoRegion}, Window: newWindow})

	r = &t.regions[leaf] // alloc may have grown the arena
	r.Window = NoWindow
	r.Children = [2]RegionIndex{child0, child1}
	r.Split = 0.5
	r.Stacked = stacked

	var affected []RegionIndex
	t.recomputeRect(leaf, rect, &affected)
	return child1, affected
}

// Remove deletes leaf, which must not be the root. The parent slot is
// reused to hold the promoted sibling so every other index in the
// arena stays valid. Returns the region that should receive focus
// (computed before the tree is mutated, remapped if it was the
// now-freed sibling slot), the window slot that was freed, and the
// leaves whose Rect changed.
func (t *Tree) Remove(leaf RegionIndex) (focus RegionIndex, freedWindow WindowIndex, affected []RegionIndex, ok bool) {
	r := &t.regions[leaf]
	parentIdx := r.Parent
	if parentIdx == NoRegion {
		return NoRegion, NoWindow, nil, false
	}
	nextFocus := t.focusNext(leaf)

	parent := &t.regions[parentIdx]
	var siblingIdx RegionIndex
	if parent.Children[0] == leaf {
		siblingIdx = parent.Children[1]
	} else {
		siblingIdx = parent.Children[0]
	}
	sibling := t.regions[siblingIdx]

	parentRect := parent.Rect
	parent.Window = sibling.Window
	parent.Children = sibling.Children
	parent.Split = sibling.Split
	parent.Stacked = sibling.Stacked
	parent.Rect = parentRect
	if !parent.IsLeaf() {
		t.regions[parent.Children[0]].Parent = parentIdx
		t.regions[parent.Children[1]].Parent = parentIdx
	}

	if nextFocus == siblingIdx {
		nextFocus = parentIdx
	}

	freedWindow = r.Window
	t.free1(leaf)
	t.free1(siblingIdx)

	t.recomputeRect(parentIdx, parentRect, &affected)
	return nextFocus, freedWindow, affected, true
}

// Swap exchanges leaf's sibling pair under its parent, a no-op at the
// root. Returns the leaves whose Rect changed.
func (t *Tree) Swap(leaf RegionIndex) []RegionIndex {
	parentIdx := t.regions[leaf].Parent
	if parentIdx == NoRegion {
		return nil
	}
	parent := &t.regions[parentIdx]
	parent.Children[0], parent.Children[1] = parent.Children[1], parent.Children[0]
	var affected []RegionIndex
	t.recomputeRect(parentIdx, parent.Rect, &affected)
	return affected
}

// Resize nudges the split ratio of leaf's parent by amount cells,
// doubled for side-by-side splits to give a proportional feel, growing
// leaf's own side. The ratio is clamped so both children keep at
// least the configured minimum extent. Returns the leaves whose Rect
// changed.
func (t *Tree) Resize(leaf RegionIndex, amount int) []RegionIndex {
	parentIdx := t.regions[leaf].Parent
	if parentIdx == NoRegion {
		return nil
	}
	parent := &t.regions[parentIdx]
	delta := amount
	if !parent.Stacked {
		delta *= 2
	}
	sign := 1
	if parent.Children[1] == leaf {
		sign = -1
	}

	var extent int
	if parent.Stacked {
		extent = parent.Rect.Size.Height
	} else {
		extent = parent.Rect.Size.Width
	}
	currentChild0 := int(parent.Split * float64(extent))
	newChild0 := currentChild0 + sign*delta
	newSplit := float64(newChild0) / float64(extent)
	if newSplit < 0 {
		newSplit = 0
	}
	if newSplit > 1 {
		newSplit = 1
	}
	parent.Split = newSplit

	var affected []RegionIndex
	t.recomputeRect(parentIdx, parent.Rect, &affected)
	return affected
}

// Relayout is called on a terminal resize: it re-seats the whole tree
// in the new rect and returns every leaf, all of which must be
// considered dirty.
func (t *Tree) Relayout(rect geom.Rect) []RegionIndex {
	var affected []RegionIndex
	t.recomputeRect(t.root, rect, &affected)
	return affected
}

// recomputeRect assigns rect to idx and, for an internal node,
// recurses into both children per spec.md §4.1's geometry formulas,
// rewriting Split to the ratio actually realized after clamping.
func (t *Tree) recomputeRect(idx RegionIndex, rect geom.Rect, affected *[]RegionIndex) {
	r := &t.regions[idx]
	r.Rect = rect
	if r.IsLeaf() {
		*affected = append(*affected, idx)
		return
	}

	if r.Stacked {
		topH := geom.Clamp(int(float64(rect.Size.Height)*r.Split), t.minH, rect.Size.Height-t.minH)
		bottomH := rect.Size.Height - topH
		r.Split = float64(topH) / float64(rect.Size.Height)

		top := geom.Rect{Origin: rect.Origin, Size: geom.Size{Width: rect.Size.Width, Height: topH}}
		bottom := geom.Rect{
			Origin: geom.Point{X: rect.Origin.X, Y: rect.Origin.Y + topH},
			Size:   geom.Size{Width: rect.Size.Width, Height: bottomH},
		}
		t.recomputeRect(r.Children[0], top, affected)
		t.recomputeRect(r.Children[1], bottom, affected)
		return
	}

	leftW := geom.Clamp(int(float64(rect.Size.Width)*r.Split), t.minW, rect.Size.Width-t.minW-1)
	rightW := rect.Size.Width - leftW - 1
	r.Split = float64(leftW) / float64(rect.Size.Width)

	left := geom.Rect{Origin: rect.Origin, Size: geom.Size{Width: leftW, Height: rect.Size.Height}}
	right := geom.Rect{
		Origin: geom.Point{X: rect.Origin.X + leftW + 1, Y: rect.Origin.Y},
		Size:   geom.Size{Width: rightW, Height: rect.Size.Height},
	}
	t.recomputeRect(r.Children[0], left, affected)
	t.recomputeRect(r.Children[1], right, affected)
}

// FocusNext returns the leaf that follows leaf in in-order traversal,
// wrapping to the leftmost leaf from the root.
func (t *Tree) FocusNext(leaf RegionIndex) RegionIndex { return t.focusNext(leaf) }

func (t *Tree) focusNext(leaf RegionIndex) RegionIndex {
	cur := leaf
	for {
		p := t.regions[cur].Parent
		if p == NoRegion {
			return t.leftmostLeaf(t.root)
		}
		if t.regions[p].Children[0] == cur {
			return t.leftmostLeaf(t.regions[p].Children[1])
		}
		cur = p
	}
}

// FocusPrevious returns the leaf that precedes leaf in in-order
// traversal, wrapping to the rightmost leaf from the root.
func (t *Tree) FocusPrevious(leaf RegionIndex) RegionIndex {
	cur := leaf
	for {
		p := t.regions[cur].Parent
		if p == NoRegion {
			return t.rightmostLeaf(t.root)
		}
		if t.regions[p].Children[1] == cur {
			return t.rightmostLeaf(t.regions[p].Children[0])
		}
		cur = p
	}
}

func (t *Tree) leftmostLeaf(idx RegionIndex) RegionIndex {
	for !t.regions[idx].IsLeaf() {
		idx = t.regions[idx].Children[0]
	}
	return idx
}

func (t *Tree) rightmostLeaf(idx RegionIndex) RegionIndex {
	for !t.regions[idx].IsLeaf() {
		idx = t.regions[idx].Children[1]
	}
	return idx
}
