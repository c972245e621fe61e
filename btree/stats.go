package btree

// Stats summarizes the shape of a tree.
type Stats struct {
	Degree int // minimum degree t
	Height int // number of levels, 1 for a leaf root
	Nodes  int // total number of nodes
	Keys   int // total number of entries
}

// Stats collects height, node count and key count in a single traversal.
func (t *Tree[K, V]) Stats() Stats {
	if t == nil || t.root == nil {
		return Stats{}
	}
	s := Stats{Degree: t.cfg.Degree, Height: t.Height()}
	s.Nodes, s.Keys = countNodes(t.root)
	return s
}

// Height returns the number of levels of the tree. A fresh tree has height 1.
//
// All leaves are at the same depth, so following the leftmost spine suffices.
func (t *Tree[K, V]) Height() int {
	if t == nil || t.root == nil {
		return 0
	}
	h := 1
	for n := t.root; !n.isLeaf(); n = n.children[0] {
		h++
	}
	return h
}

// NodeCount returns the total number of nodes, including the root.
func (t *Tree[K, V]) NodeCount() int {
	if t == nil || t.root == nil {
		return 0
	}
	nodes, _ := countNodes(t.root)
	return nodes
}

// KeyCount returns the total number of entries stored in the tree.
func (t *Tree[K, V]) KeyCount() int {
	if t == nil || t.root == nil {
		return 0
	}
	_, keys := countNodes(t.root)
	return keys
}

// Len is an alias for KeyCount.
func (t *Tree[K, V]) Len() int {
	return t.KeyCount()
}

// countNodes returns the number of nodes and entries under n. Not cached.
func countNodes[K, V any](n *node[K, V]) (nodes int, keys int) {
	nodes, keys = 1, len(n.entries)
	for _, child := range n.children {
		cn, ck := countNodes(child)
		nodes += cn
		keys += ck
	}
	return nodes, keys
}
