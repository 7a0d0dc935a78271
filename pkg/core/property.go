package core

// Property is a typed key for per-node attached data. Container visuals
// declare properties to read layout hints off their children without the
// child type knowing about the container.
//
// Each Property value is its own key: two properties created with the same
// name do not collide.
type Property[V any] struct {
	name string
}

// NewProperty declares a property. The name is used in diagnostics only.
func NewProperty[V any](name string) *Property[V] {
	return &Property[V]{name: name}
}

// Name returns the diagnostic name given at declaration.
func (p *Property[V]) Name() string { return p.name }

// Get returns the value stored on n, or the zero value and false when the
// property was never set or has been cleared.
func (p *Property[V]) Get(n *Node) (V, bool) {
	if n == nil || n.props == nil {
		var zero V
		return zero, false
	}
	v, ok := n.props[p]
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// GetOr returns the value stored on n, or fallback when unset.
func (p *Property[V]) GetOr(n *Node, fallback V) V {
	if v, ok := p.Get(n); ok {
		return v
	}
	return fallback
}

// Set stores v on n, replacing any previous value for this property.
func (p *Property[V]) Set(n *Node, v V) {
	if n.props == nil {
		n.props = make(map[any]any)
	}
	n.props[p] = v
}

// Clear removes this property from n.
func (p *Property[V]) Clear(n *Node) {
	if n.props != nil {
		delete(n.props, p)
	}
}
