package core

import (
	"iter"

	"github.com/go-drift/keel/pkg/errors"
	"github.com/go-drift/keel/pkg/geometry"
)

// DirtyFlags is the per-node bitset of pending passes.
type DirtyFlags uint8

const (
	// DirtyLayout means the node's layout must be recomputed.
	DirtyLayout DirtyFlags = 1 << iota
	// DirtyPaint means the node must be repainted.
	DirtyPaint
)

// Geometry is the result of laying out a node: its size, baseline, and
// bounding rectangles in local coordinates.
type Geometry struct {
	Size        geometry.Size
	Baseline    float64
	Bounds      geometry.Rect
	PaintBounds geometry.Rect
}

// GeometryOf builds a Geometry whose bounds equal the size at the origin.
func GeometryOf(size geometry.Size) Geometry {
	r := size.Rect()
	return Geometry{Size: size, Bounds: r, PaintBounds: r}
}

// Owner receives visual update requests from the root of a node tree.
// It is implemented by the window owning the tree.
type Owner interface {
	// RequestVisualUpdate asks the owner to schedule a layout/paint pass.
	RequestVisualUpdate()
}

// Node is one unit of the retained visual tree. Identity is pointer
// identity; a Node is created once and linked into at most one parent at
// any time. Behavior comes from the Visual attached at construction.
//
// All Node methods must run on the scheduler thread. The tree uses no
// locks; its single-thread invariant is what makes the intrusive links
// safe to mutate from any handler.
type Node struct {
	visual Visual
	name   string

	parent     *Node
	prev, next *Node
	firstChild *Node
	lastChild  *Node
	childCount int

	transform geometry.Affine
	geom      Geometry
	dirty     DirtyFlags

	lastConstraints geometry.Constraints
	hasLaidOut      bool

	props map[any]any
	owner Owner
}

// NewNode creates a detached node with the given debug name and visual.
// A nil visual gets the VisualBase defaults.
func NewNode(name string, visual Visual) *Node {
	if visual == nil {
		visual = VisualBase{}
	}
	return &Node{
		name:      name,
		visual:    visual,
		transform: geometry.AffineIdentity(),
		dirty:     DirtyLayout | DirtyPaint,
	}
}

// Name returns the node's debug label.
func (n *Node) Name() string {
	return n.name
}

// Visual returns the capability value attached at construction.
func (n *Node) Visual() Visual {
	return n.visual
}

// Parent returns the current parent, or nil for a detached or root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// FirstChild returns the head of the child chain.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the tail of the child chain.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// NextSibling returns the following sibling, if any.
func (n *Node) NextSibling() *Node {
	return n.next
}

// PrevSibling returns the preceding sibling, if any.
func (n *Node) PrevSibling() *Node {
	return n.prev
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return n.childCount
}

// Root walks the parent chain to the tree root. A detached node is its
// own root.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil {
		return false
	}
	for a := other.parent; a != nil; a = a.parent {
		if a == n {
			return true
		}
	}
	return false
}

// SetOwner attaches the tree owner. It is called on the root by the window
// that owns the tree; marks reaching the root notify this owner.
func (n *Node) SetOwner(owner Owner) {
	n.owner = owner
}

// Owner returns the owner set on this node (normally only the root).
func (n *Node) Owner() Owner {
	return n.owner
}

// Transform returns the local-to-parent transform.
func (n *Node) Transform() geometry.Affine {
	return n.transform
}

// SetTransform sets the local-to-parent transform. Layout implementations
// call this to position children; it does not mark anything dirty.
func (n *Node) SetTransform(t geometry.Affine) {
	n.transform = t
}

// SetOffset sets the local-to-parent transform to a pure translation.
func (n *Node) SetOffset(offset geometry.Offset) {
	n.transform = geometry.Translation(offset.X, offset.Y)
}

// Offset returns the translation component of the local transform.
func (n *Node) Offset() geometry.Offset {
	return n.transform.Translation()
}

// Geometry returns the last computed layout result.
func (n *Node) Geometry() Geometry {
	return n.geom
}

// Size returns the last computed size.
func (n *Node) Size() geometry.Size {
	return n.geom.Size
}

// AttachChild detaches child from wherever it currently lives and splices
// it at the end of n's child list. Attaching n's current last child is a
// no-op apart from the dirty mark.
//
// Attaching a node above itself (child == n or child an ancestor of n)
// corrupts the tree and panics.
func (n *Node) AttachChild(child *Node) {
	n.InsertAfter(child, n.lastChild)
}

// InsertAfter detaches child and splices it into n's child list
// immediately after the sibling after. A nil after inserts at the front.
//
// Panics if after is neither nil nor a child of n, or if the insertion
// would make a node its own ancestor.
func (n *Node) InsertAfter(child, after *Node) {
	if child == nil {
		errors.Invariant("core.InsertAfter", "nil child")
	}
	if child == n || child.IsAncestorOf(n) {
		errors.Invariant("core.InsertAfter", "node %q attached below itself", child.name)
	}
	if after != nil && after.parent != n && after != child {
		errors.Invariant("core.InsertAfter", "sibling %q is not a child of %q", after.name, n.name)
	}
	if after == child {
		// Already in position; child keeps its links.
		if child.parent != n {
			errors.Invariant("core.InsertAfter", "sibling %q is not a child of %q", after.name, n.name)
		}
		n.MarkNeedsLayout()
		return
	}

	child.Detach()
	child.parent = n
	if after == nil {
		child.next = n.firstChild
		if n.firstChild != nil {
			n.firstChild.prev = child
		} else {
			n.lastChild = child
		}
		n.firstChild = child
	} else {
		child.prev = after
		child.next = after.next
		if after.next != nil {
			after.next.prev = child
		} else {
			n.lastChild = child
		}
		after.next = child
	}
	n.childCount++
	n.MarkNeedsLayout()
}

/// Detach fully unlinks n from its parent: the sibling chain is spliced
// around it, the parent's first/last pointers are updated at the ends, and
// the old parent is marked needs-layout. Detaching a parentless node is a
// no-op.
func (n *Node) Detach() {
	parent := n.parent
	if parent == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		parent.firstChild = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		parent.lastChild = n.prev
	}
	n.prev = nil
	n.next = nil
	n.parent = nil
	parent.childCount--
	parent.MarkNeedsLayout()
}

// ClearChildren detaches every child of n.
func (n *Node) ClearChildren() {
	for n.firstChild != nil {
		n.firstChild.Detach()
	}
}

// Children returns a lazy forward walk over the direct children. The
// sequence is restartable and tolerates the current child being detached
// mid-iteration (its link is captured before yield).
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.firstChild; c != nil; {
			next := c.next
			if !yield(c) {
				return
			}
			c = next
		}
	}
}

// ChildrenReverse returns a lazy backward walk from the last child.
func (n *Node) ChildrenReverse() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.lastChild; c != nil; {
			prev := c.prev
			if !yield(c) {
				return
			}
			c = prev
		}
	}
}

// DepthFirst returns a pre-order walk of the subtree rooted at n,
// including n itself. The cursor advances to the first child when present,
// else the next sibling, else up through ancestors looking for a next
// sibling; it never leaves n's subtree and terminates on a single node.
func (n *Node) DepthFirst() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for cur := n; cur != nil; cur = nextDepthFirst(cur, n) {
			if !yield(cur) {
				return
			}
		}
	}
}

func nextDepthFirst(cur, root *Node) *Node {
	if cur.firstChild != nil {
		return cur.firstChild
	}
	for cur != nil && cur != root {
		if cur.next != nil {
			return cur.next
		}
		cur = cur.parent
	}
	return nil
}

// WindowTransform composes local transforms from n up to its root,
// yielding the local-to-window mapping. O(depth) per call; traversals
// should cache the result rather than call it per event.
func (n *Node) WindowTransform() geometry.Affine {
	t := n.transform
	for a := n.parent; a != nil; a = a.parent {
		t = a.transform.Concat(t)
	}
	return t
}

// NeedsLayout reports whether a layout pass is owed for this node.
func (n *Node) NeedsLayout() bool {
	return n.dirty&DirtyLayout != 0
}

// NeedsPaint reports whether a paint pass is owed for this node.
func (n *Node) NeedsPaint() bool {
	return n.dirty&DirtyPaint != 0
}

// MarkNeedsLayout ORs the needs-layout flag into this node and every
// ancestor up to the root, then asks the root's owner (if any) for a
// visual update. The walk stops early at an already-marked ancestor, whose
// own marking already notified the owner.
func (n *Node) MarkNeedsLayout() {
	n.mark(DirtyLayout)
}

// MarkNeedsPaint ORs the needs-paint flag toward the root, requesting a
// visual update from the owner like MarkNeedsLayout.
func (n *Node) MarkNeedsPaint() {
	n.mark(DirtyPaint)
}

func (n *Node) mark(flag DirtyFlags) {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.dirty&flag != 0 {
			return
		}
		cur.dirty |= flag
		if cur.parent == nil && cur.owner != nil {
			cur.owner.RequestVisualUpdate()
		}
	}
}

// DoLayout runs the node's layout against the given constraints, stores
// the resulting geometry, and clears the needs-layout flag. A clean node
// receiving the same constraints as last time returns the cached geometry
// without calling its visual.
//
// A size change marks the node needs-paint, since its recorded content is
// stale at the new size.
func (n *Node) DoLayout(constraints geometry.Constraints) Geometry {
	if n.hasLaidOut && n.dirty&DirtyLayout == 0 && n.lastConstraints == constraints {
		return n.geom
	}
	n.lastConstraints = constraints
	n.hasLaidOut = true
	n.dirty &^= DirtyLayout

	oldSize := n.geom.Size
	n.geom = n.visual.Layout(n, constraints)
	if n.geom.Size != oldSize {
		n.MarkNeedsPaint()
	}
	return n.geom
}
