package btree

// NodeView is a read-only handle to a tree node, for renderers and other
// clients which need to inspect the structure of a tree.
//
// A view is valid until the next mutation of its tree.
type NodeView[K, V any] struct {
	n *node[K, V]
}

// IsValid reports whether the view refers to a node.
func (v NodeView[K, V]) IsValid() bool {
	return v.n != nil
}

// IsLeaf reports whether the node has no children.
func (v NodeView[K, V]) IsLeaf() bool {
	return v.n == nil || v.n.isLeaf()
}

// Len returns the number of entries in the node.
func (v NodeView[K, V]) Len() int {
	if v.n == nil {
		return 0
	}
	return len(v.n.entries)
}

// Entry returns the i-th entry of the node.
func (v NodeView[K, V]) Entry(i int) Entry[K, V] {
	assert(v.n != nil && i >= 0 && i < len(v.n.entries), "NodeView.Entry index out of range")
	return v.n.entries[i]
}

// Entries returns a copy of the node's entries.
func (v NodeView[K, V]) Entries() []Entry[K, V] {
	if v.n == nil {
		return nil
	}
	return append([]Entry[K, V](nil), v.n.entries...)
}

// NumChildren returns the number of children, 0 for a leaf.
func (v NodeView[K, V]) NumChildren() int {
	if v.n == nil {
		return 0
	}
	return len(v.n.children)
}

// Child returns a view of the i-th child.
func (v NodeView[K, V]) Child(i int) NodeView[K, V] {
	assert(v.n != nil && i >= 0 && i < len(v.n.children), "NodeView.Child index out of range")
	return NodeView[K, V]{n: v.n.children[i]}
}

// Root returns a view of the root node.
func (t *Tree[K, V]) Root() NodeView[K, V] {
	if t == nil {
		return NodeView[K, V]{}
	}
	return NodeView[K, V]{n: t.root}
}

// WalkFunc is called for every node visited by Walk. index is the position
// of the node within its parent's children (0 for the root), depth is 0 for
// the root.
type WalkFunc[K, V any] func(node NodeView[K, V], depth int, index int) error

// Walk visits all nodes in pre-order, parents before children and children
// left to right. If fn returns an error, the walk stops and Walk returns it.
func (t *Tree[K, V]) Walk(fn WalkFunc[K, V]) error {
	if t == nil || t.root == nil || fn == nil {
		return nil
	}
	return walkNode(t.root, 0, 0, fn)
}

func walkNode[K, V any](n *node[K, V], depth, index int, fn WalkFunc[K, V]) error {
	if err := fn(NodeView[K, V]{n: n}, depth, index); err != nil {
		return err
	}
	for i, child := range n.children {
		if err := walkNode(child, depth+1, i, fn); err != nil {
			return err
		}
	}
	return nil
}
