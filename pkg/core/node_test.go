package core

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/go-drift/keel/pkg/errors"
	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
)

// sizedVisual lays its node out at a fixed preferred size and counts
// layout calls through the shared pointer.
type sizedVisual struct {
	VisualBase
	size    geometry.Size
	layouts *int
}

func (v sizedVisual) Layout(n *Node, constraints geometry.Constraints) Geometry {
	if v.layouts != nil {
		*v.layouts++
	}
	return GeometryOf(constraints.Constrain(v.size))
}

// boxVisual sizes the node to a fixed box and gives each child loose
// constraints, keeping whatever offsets the test assigned.
type boxVisual struct {
	VisualBase
	size geometry.Size
}

func (v boxVisual) Layout(n *Node, constraints geometry.Constraints) Geometry {
	for c := range n.Children() {
		c.DoLayout(geometry.Loose(v.size))
	}
	return GeometryOf(constraints.Constrain(v.size))
}

// countingOwner tallies update requests from the tree root.
type countingOwner struct {
	requests int
}

func (o *countingOwner) RequestVisualUpdate() {
	o.requests++
}

func childNames(n *Node) []string {
	var names []string
	for c := range n.Children() {
		names = append(names, c.Name())
	}
	return names
}

func childNamesReverse(n *Node) []string {
	var names []string
	for c := range n.ChildrenReverse() {
		names = append(names, c.Name())
	}
	return names
}

// checkChain verifies that the forward walk, the backward walk, the
// sibling links, and the child count of n all agree.
func checkChain(t *testing.T, n *Node) {
	t.Helper()

	forward := childNames(n)
	backward := childNamesReverse(n)
	slices.Reverse(backward)
	if !slices.Equal(forward, backward) {
		t.Fatalf("walks disagree: forward %v, reversed backward %v", forward, backward)
	}
	if n.ChildCount() != len(forward) {
		t.Fatalf("ChildCount() = %d, walk found %d", n.ChildCount(), len(forward))
	}

	var prev *Node
	for c := range n.Children() {
		if c.Parent() != n {
			t.Fatalf("child %q has parent %v", c.Name(), c.Parent())
		}
		if c.PrevSibling() != prev {
			t.Fatalf("child %q has wrong prev sibling", c.Name())
		}
		if prev != nil && prev.NextSibling() != c {
			t.Fatalf("child %q has wrong next sibling", prev.Name())
		}
		prev = c
	}
	if n.LastChild() != prev {
		t.Fatalf("LastChild() = %v, walk ended at %v", n.LastChild(), prev)
	}
	if prev == nil && n.FirstChild() != nil {
		t.Fatal("FirstChild() set on a node with no children")
	}
}

// cleanTree lays the tree out tight to size and paints it, clearing every
// dirty flag.
func cleanTree(t *testing.T, root *Node, size geometry.Size) {
	t.Helper()
	root.DoLayout(geometry.Tight(size))
	var rec graphics.PictureRecorder
	pc := &PaintContext{Canvas: rec.BeginRecording(root.Size())}
	pc.PaintChild(root)
	rec.EndRecording()
	for n := range root.DepthFirst() {
		if n.NeedsLayout() || n.NeedsPaint() {
			t.Fatalf("node %q still dirty after layout and paint", n.Name())
		}
	}
}

func TestAttachChildAppends(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	c := NewNode("c", nil)

	root.AttachChild(a)
	root.AttachChild(b)
	root.AttachChild(c)

	if got := childNames(root); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("children = %v, want [a b c]", got)
	}
	if root.FirstChild() != a || root.LastChild() != c {
		t.Error("first/last child pointers wrong after appends")
	}
	checkChain(t, root)
}

func TestInsertAfterPositions(t *testing.T) {
	root := NewNode("root", nil)
	b := NewNode("b", nil)
	root.AttachChild(b)

	// nil sibling inserts at the front.
	a := NewNode("a", nil)
	root.InsertAfter(a, nil)
	if got := childNames(root); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("after front insert: %v, want [a b]", got)
	}

	// Insert between two siblings.
	mid := NewNode("mid", nil)
	root.InsertAfter(mid, a)
	if got := childNames(root); !slices.Equal(got, []string{"a", "mid", "b"}) {
		t.Fatalf("after middle insert: %v, want [a mid b]", got)
	}

	// Insert after the last child.
	z := NewNode("z", nil)
	root.InsertAfter(z, b)
	if got := childNames(root); !slices.Equal(got, []string{"a", "mid", "b", "z"}) {
		t.Fatalf("after tail insert: %v, want [a mid b z]", got)
	}
	if root.LastChild() != z {
		t.Error("LastChild() not updated by tail insert")
	}
	checkChain(t, root)
}

func TestInsertAfterSelfKeepsPosition(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	root.AttachChild(a)
	root.AttachChild(b)

	root.InsertAfter(b, b)

	if got := childNames(root); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("children = %v, want [a b]", got)
	}
	checkChain(t, root)
}

func TestInsertAfterMovesWithinParent(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	c := NewNode("c", nil)
	root.AttachChild(a)
	root.AttachChild(b)
	root.AttachChild(c)

	// Move a to the end.
	root.InsertAfter(a, c)
	if got := childNames(root); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Fatalf("after move: %v, want [b c a]", got)
	}
	checkChain(t, root)
}

func TestAttachChildReparents(t *testing.T) {
	p1 := NewNode("p1", nil)
	p2 := NewNode("p2", nil)
	child := NewNode("child", nil)

	p1.AttachChild(child)
	cleanTree(t, p1, geometry.Size{Width: 10, Height: 10})

	p2.AttachChild(child)

	if child.Parent() != p2 {
		t.Fatal("child not reparented")
	}
	if p1.ChildCount() != 0 || p1.FirstChild() != nil {
		t.Error("old parent still holds the child")
	}
	if !p1.NeedsLayout() {
		t.Error("old parent not marked needs-layout by the implicit detach")
	}
	if !p2.NeedsLayout() {
		t.Error("new parent not marked needs-layout")
	}
	checkChain(t, p2)
}

func TestDetachSplicesNeighbors(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	c := NewNode("c", nil)
	root.AttachChild(a)
	root.AttachChild(b)
	root.AttachChild(c)

	b.Detach()

	if got := childNames(root); !slices.Equal(got, []string{"a", "c"}) {
		t.Fatalf("children = %v, want [a c]", got)
	}
	if a.NextSibling() != c || c.PrevSibling() != a {
		t.Error("neighbors not spliced together")
	}
	if b.Parent() != nil || b.PrevSibling() != nil || b.NextSibling() != nil {
		t.Error("detached node keeps stale links")
	}
	checkChain(t, root)

	a.Detach()
	if root.FirstChild() != c {
		t.Error("FirstChild() not updated when the first child detaches")
	}
	c.Detach()
	if root.FirstChild() != nil || root.LastChild() != nil || root.ChildCount() != 0 {
		t.Error("root not empty after detaching every child")
	}
}

func TestDetachWithoutParentIsNoOp(t *testing.T) {
	n := NewNode("loose", nil)
	n.Detach()
	if n.Parent() != nil {
		t.Error("parentless detach changed the node")
	}
}

func TestClearChildren(t *testing.T) {
	root := NewNode("root", nil)
	for _, name := range []string{"a", "b", "c"} {
		root.AttachChild(NewNode(name, nil))
	}
	root.ClearChildren()
	if root.ChildCount() != 0 || root.FirstChild() != nil || root.LastChild() != nil {
		t.Error("ClearChildren left children behind")
	}
}

func TestAttachBelowItselfPanics(t *testing.T) {
	root := NewNode("root", nil)
	child := NewNode("child", nil)
	root.AttachChild(child)

	assertInvariantPanic(t, func() { root.AttachChild(root) })
	assertInvariantPanic(t, func() { child.AttachChild(root) })
}

func TestInsertAfterForeignSiblingPanics(t *testing.T) {
	root := NewNode("root", nil)
	other := NewNode("other", nil)
	stranger := NewNode("stranger", nil)
	other.AttachChild(stranger)

	assertInvariantPanic(t, func() { root.InsertAfter(NewNode("n", nil), stranger) })
}

func assertInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected an invariant panic")
		}
		ke, ok := r.(*errors.KeelError)
		if !ok {
			t.Fatalf("panic value is %T, want *errors.KeelError", r)
		}
		if ke.Kind != errors.KindInvariant {
			t.Errorf("panic kind = %v, want invariant", ke.Kind)
		}
	}()
	fn()
}

func TestRandomizedSiblingOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	root := NewNode("root", nil)
	var children []*Node

	pick := func() *Node {
		return children[rng.Intn(len(children))]
	}

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(children) == 0:
			n := NewNode("n"+strconv.Itoa(i), nil)
			var after *Node
			if len(children) > 0 && rng.Intn(2) == 0 {
				after = pick()
			}
			root.InsertAfter(n, after)
			children = append(children, n)
		case op == 1:
			n := pick()
			n.Detach()
			children = slices.DeleteFunc(children, func(c *Node) bool { return c == n })
		default:
			root.InsertAfter(pick(), pick())
		}
		checkChain(t, root)
	}
}

func TestChildrenIterationToleratesDetach(t *testing.T) {
	root := NewNode("root", nil)
	for _, name := range []string{"a", "b", "c"} {
		root.AttachChild(NewNode(name, nil))
	}

	var visited []string
	for c := range root.Children() {
		visited = append(visited, c.Name())
		c.Detach()
	}

	if !slices.Equal(visited, []string{"a", "b", "c"}) {
		t.Fatalf("visited %v, want [a b c]", visited)
	}
	if root.ChildCount() != 0 {
		t.Error("children remain after detach-while-iterating")
	}
}

func TestDepthFirstOrder(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	a1 := NewNode("a1", nil)
	a2 := NewNode("a2", nil)
	b := NewNode("b", nil)
	root.AttachChild(a)
	root.AttachChild(b)
	a.AttachChild(a1)
	a.AttachChild(a2)

	var got []string
	for n := range root.DepthFirst() {
		got = append(got, n.Name())
	}
	want := []string{"root", "a", "a1", "a2", "b"}
	if !slices.Equal(got, want) {
		t.Fatalf("depth-first walk = %v, want %v", got, want)
	}

	// A subtree walk must not escape into the node's siblings.
	got = got[:0]
	for n := range a.DepthFirst() {
		got = append(got, n.Name())
	}
	if !slices.Equal(got, []string{"a", "a1", "a2"}) {
		t.Fatalf("subtree walk = %v, want [a a1 a2]", got)
	}
}

func TestRootAndIsAncestorOf(t *testing.T) {
	root := NewNode("root", nil)
	mid := NewNode("mid", nil)
	leaf := NewNode("leaf", nil)
	root.AttachChild(mid)
	mid.AttachChild(leaf)

	if leaf.Root() != root {
		t.Error("Root() did not reach the top")
	}
	if !root.IsAncestorOf(leaf) || !mid.IsAncestorOf(leaf) {
		t.Error("ancestors not recognized")
	}
	if leaf.IsAncestorOf(root) {
		t.Error("descendant reported as ancestor")
	}
	if leaf.IsAncestorOf(leaf) {
		t.Error("a node is not its own ancestor")
	}
}

func TestWindowTransformComposesOffsets(t *testing.T) {
	root := NewNode("root", nil)
	mid := NewNode("mid", nil)
	leaf := NewNode("leaf", nil)
	root.AttachChild(mid)
	mid.AttachChild(leaf)

	mid.SetOffset(geometry.Offset{X: 10, Y: 20})
	leaf.SetOffset(geometry.Offset{X: 5, Y: 7})

	got := leaf.WindowTransform().Apply(geometry.Offset{X: 1, Y: 1})
	want := geometry.Offset{X: 16, Y: 28}
	if got != want {
		t.Fatalf("window point = %v, want %v", got, want)
	}
}

func TestMarkNeedsLayoutPropagatesToRoot(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	leaf := NewNode("leaf", nil)
	root.AttachChild(a)
	root.AttachChild(b)
	a.AttachChild(leaf)
	cleanTree(t, root, geometry.Size{Width: 100, Height: 100})

	leaf.MarkNeedsLayout()

	for _, n := range []*Node{leaf, a, root} {
		if !n.NeedsLayout() {
			t.Errorf("node %q should need layout", n.Name())
		}
	}
	if b.NeedsLayout() {
		t.Error("sibling outside the marked chain should stay clean")
	}
	if leaf.NeedsPaint() {
		t.Error("layout mark must not set the paint flag")
	}
}

func TestOwnerNotifiedOncePerDirtyCycle(t *testing.T) {
	owner := &countingOwner{}
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	leafA := NewNode("leafA", nil)
	leafB := NewNode("leafB", nil)
	root.AttachChild(a)
	a.AttachChild(leafA)
	a.AttachChild(leafB)
	root.SetOwner(owner)
	cleanTree(t, root, geometry.Size{Width: 50, Height: 50})
	owner.requests = 0

	leafA.MarkNeedsLayout()
	if owner.requests != 1 {
		t.Fatalf("owner requests = %d after first mark, want 1", owner.requests)
	}

	// The second mark stops at the already-dirty parent.
	leafB.MarkNeedsLayout()
	if owner.requests != 1 {
		t.Fatalf("owner requests = %d after second mark, want 1", owner.requests)
	}

	// After a pass cleans the tree, marking notifies again.
	cleanTree(t, root, geometry.Size{Width: 50, Height: 50})
	owner.requests = 0
	leafB.MarkNeedsPaint()
	if owner.requests != 1 {
		t.Fatalf("owner requests = %d after clean, want 1", owner.requests)
	}
}

func TestMarkOnDetachedSubtreeIsInert(t *testing.T) {
	owner := &countingOwner{}
	root := NewNode("root", nil)
	root.SetOwner(owner)
	cleanTree(t, root, geometry.Size{Width: 10, Height: 10})

	loose := NewNode("loose", nil)
	loose.MarkNeedsLayout()

	if owner.requests != 0 {
		t.Error("detached subtree reached the owner")
	}
	if !loose.NeedsLayout() {
		t.Error("detached node should still record its own flag")
	}
}

func TestDoLayoutCachesCleanResult(t *testing.T) {
	calls := 0
	n := NewNode("n", sizedVisual{size: geometry.Size{Width: 40, Height: 30}, layouts: &calls})
	loose := geometry.Loose(geometry.Size{Width: 100, Height: 100})

	g := n.DoLayout(loose)
	if calls != 1 {
		t.Fatalf("layout calls = %d, want 1", calls)
	}
	if g.Size != (geometry.Size{Width: 40, Height: 30}) {
		t.Fatalf("size = %v", g.Size)
	}
	if n.NeedsLayout() {
		t.Error("needs-layout flag survived DoLayout")
	}

	// Clean node, same constraints: cached.
	n.DoLayout(loose)
	if calls != 1 {
		t.Fatalf("layout calls = %d after cached pass, want 1", calls)
	}

	// New constraints force a pass even on a clean node.
	n.DoLayout(geometry.Loose(geometry.Size{Width: 60, Height: 60}))
	if calls != 2 {
		t.Fatalf("layout calls = %d after new constraints, want 2", calls)
	}

	// A dirty node recomputes under the cached constraints too.
	n.MarkNeedsLayout()
	n.DoLayout(geometry.Loose(geometry.Size{Width: 60, Height: 60}))
	if calls != 3 {
		t.Fatalf("layout calls = %d after explicit mark, want 3", calls)
	}
}

func TestDoLayoutSizeChangeMarksPaint(t *testing.T) {
	root := NewNode("root", nil)
	cleanTree(t, root, geometry.Size{Width: 100, Height: 100})

	root.DoLayout(geometry.Tight(geometry.Size{Width: 50, Height: 50}))

	if !root.NeedsPaint() {
		t.Error("size change should mark the node needs-paint")
	}

	// Same size again: no paint mark.
	var rec graphics.PictureRecorder
	pc := &PaintContext{Canvas: rec.BeginRecording(root.Size())}
	pc.PaintChild(root)
	rec.EndRecording()
	root.MarkNeedsLayout()
	root.DoLayout(geometry.Tight(geometry.Size{Width: 50, Height: 50}))
	if root.NeedsPaint() {
		t.Error("unchanged size should not mark needs-paint")
	}
}

func TestMixedVisualKindsInOneTree(t *testing.T) {
	root := NewNode("root", boxVisual{size: geometry.Size{Width: 100, Height: 100}})
	leaf := NewNode("leaf", sizedVisual{size: geometry.Size{Width: 20, Height: 10}})
	root.AttachChild(leaf)

	root.DoLayout(geometry.Loose(geometry.Size{Width: 200, Height: 200}))

	if root.Size() != (geometry.Size{Width: 100, Height: 100}) {
		t.Errorf("root size = %v", root.Size())
	}
	if leaf.Size() != (geometry.Size{Width: 20, Height: 10}) {
		t.Errorf("leaf size = %v", leaf.Size())
	}
}
