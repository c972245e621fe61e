package btree

// makeLeaf allocates an empty leaf with room for a full node's entries.
func (t *Tree[K, V]) makeLeaf() *node[K, V] {
	return &node[K, V]{
		entries: make([]Entry[K, V], 0, t.cfg.maxEntries()),
	}
}

// makeInternal allocates an internal node over the given children. Entries
// are added by the caller.
func (t *Tree[K, V]) makeInternal(children ...*node[K, V]) *node[K, V] {
	assert(len(children) > 0, "makeInternal called without children")
	inner := &node[K, V]{
		entries:  make([]Entry[K, V], 0, t.cfg.maxEntries()),
		children: make([]*node[K, V], 0, t.cfg.maxEntries()+1),
	}
	inner.children = append(inner.children, children...)
	return inner
}

func (t *Tree[K, V]) isFull(n *node[K, V]) bool {
	return len(n.entries) >= t.cfg.maxEntries()
}

// find locates key in n by binary search.
//
// If the key is present, find returns its entry index and true. Otherwise it
// returns the index of the first entry with a greater key, which is also the
// index of the child to descend into. comparisons is the number of calls to
// compare actually performed.
func (n *node[K, V]) find(key K, compare CompareFunc[K]) (index int, found bool, comparisons int) {
	low, high := 0, len(n.entries)
	for low < high {
		mid := int(uint(low+high) >> 1)
		comparisons++
		c := compare(key, n.entries[mid].Key)
		switch {
		case c > 0:
			low = mid + 1
		case c < 0:
			high = mid
		default:
			return mid, true, comparisons
		}
	}
	return low, false, comparisons
}

// insertAt inserts v into s at idx, shifting the tail right.
func insertAt[T any](s []T, idx int, v T) []T {
	assert(idx >= 0 && idx <= len(s), "insertAt index out of range")
	var zero T
	s = append(s, zero)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

// splitChild splits the full child at parent.children[index].
//
// The median entry at position t-1 moves up into parent at index, entries
// [t, 2t-1) and, for internal nodes, children [t, 2t) move to a new right
// sibling which is linked into parent at index+1. Both halves are left with
// t-1 entries.
func (t *Tree[K, V]) splitChild(parent *node[K, V], index int) {
	assert(parent != nil && !parent.isLeaf(), "splitChild called with leaf parent")
	assert(index >= 0 && index < len(parent.children), "splitChild index out of range")
	assert(!t.isFull(parent), "splitChild called with full parent")
	full := parent.children[index]
	assert(len(full.entries) == t.cfg.maxEntries(), "splitChild called on non-full child")
	deg := t.cfg.Degree
	median := full.entries[deg-1]

	var sibling *node[K, V]
	if full.isLeaf() {
		sibling = t.makeLeaf()
	} else {
		sibling = t.makeInternal(full.children[deg:]...)
		clear(full.children[deg:])
		full.children = full.children[:deg]
	}
	sibling.entries = append(sibling.entries, full.entries[deg:]...)
	clear(full.entries[deg-1:])
	full.entries = full.entries[:deg-1]

	parent.entries = insertAt(parent.entries, index, median)
	parent.children = insertAt(parent.children, index+1, sibling)
	tracer().Debugf("btree: split child %d, median %v promoted", index, median.Key)
}
