package core

import "github.com/go-drift/keel/pkg/geometry"

// HitTestResult collects the path of hit nodes from outermost to
// innermost.
type HitTestResult struct {
	Path []*Node
}

// Innermost returns the deepest hit node, or nil for an empty result.
func (r *HitTestResult) Innermost() *Node {
	if len(r.Path) == 0 {
		return nil
	}
	return r.Path[len(r.Path)-1]
}

// Contains reports whether the node appears anywhere on the path.
func (r *HitTestResult) Contains(n *Node) bool {
	for _, e := range r.Path {
		if e == n {
			return true
		}
	}
	return false
}

// HitTest tests the subtree rooted at n against a point in n-local
// coordinates, appending the hit path to result. A node is hit when any
// child is hit (tried topmost sibling first, through the child's inverse
// transform) or when its own visual claims the point. The walk
// short-circuits on the first hit child, so the result ends at the
// deepest node under the point.
func (n *Node) HitTest(position geometry.Offset, result *HitTestResult) bool {
	mark := len(result.Path)
	result.Path = append(result.Path, n)

	for c := range n.ChildrenReverse() {
		inv, ok := c.transform.Invert()
		if !ok {
			// Degenerate child transform; nothing under it is hittable.
			continue
		}
		if c.HitTest(inv.Apply(position), result) {
			return true
		}
	}
	if n.visual.HitTest(n, position) {
		return true
	}

	result.Path = result.Path[:mark]
	return false
}
