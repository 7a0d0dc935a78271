package core_test

import (
	"fmt"

	"github.com/go-drift/keel/pkg/core"
	"github.com/go-drift/keel/pkg/geometry"
)

// This example builds a small tree and walks it depth-first. Children are
// visited in sibling order, each subtree before the next sibling.
func ExampleNode() {
	root := core.NewNode("root", nil)
	sidebar := core.NewNode("sidebar", nil)
	content := core.NewNode("content", nil)
	button := core.NewNode("button", nil)

	root.AttachChild(sidebar)
	root.AttachChild(content)
	content.AttachChild(button)

	for n := range root.DepthFirst() {
		fmt.Println(n.Name())
	}

	// Output:
	// root
	// sidebar
	// content
	// button
}

// This example lays a tree out and hit tests a point. The resulting path
// runs from the root down to the innermost node under the point; later
// siblings sit on top, so content wins over sidebar.
func ExampleNode_HitTest() {
	root := core.NewNode("root", nil)
	sidebar := core.NewNode("sidebar", nil)
	content := core.NewNode("content", nil)
	button := core.NewNode("button", nil)
	root.AttachChild(sidebar)
	root.AttachChild(content)
	content.AttachChild(button)

	root.DoLayout(geometry.Tight(geometry.Size{Width: 100, Height: 100}))

	var result core.HitTestResult
	root.HitTest(geometry.Offset{X: 50, Y: 50}, &result)
	for _, n := range result.Path {
		fmt.Println(n.Name())
	}

	// Output:
	// root
	// content
	// button
}
