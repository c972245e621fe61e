package btree

// Entry is a key/value pair stored in the tree.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// node is a B-tree node. Leaves have no children; an internal node with k
// entries has exactly k+1 children. Each node is owned by its parent alone.
type node[K, V any] struct {
	// entries are sorted ascending by key, without duplicates.
	entries []Entry[K, V]
	// children is nil for leaves.
	children []*node[K, V]
}

func (n *node[K, V]) isLeaf() bool {
	return len(n.children) == 0
}
