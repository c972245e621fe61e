package btree

import "iter"

// Ascend walks all entries in ascending key order.
//
// Iteration stops early if callback returns false.
func (t *Tree[K, V]) Ascend(fn func(key K, value V) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	t.ascendNode(t.root, fn)
}

func (t *Tree[K, V]) ascendNode(n *node[K, V], fn func(key K, value V) bool) bool {
	assert(n != nil, "ascendNode called with nil node")
	for i, e := range n.entries {
		if !n.isLeaf() && !t.ascendNode(n.children[i], fn) {
			return false
		}
		if !fn(e.Key, e.Value) {
			return false
		}
	}
	if !n.isLeaf() {
		return t.ascendNode(n.children[len(n.entries)], fn)
	}
	return true
}

// AscendRange walks all entries with low ≤ key ≤ high in ascending key order.
//
// Subtrees entirely below low are never entered, and the walk ends at the
// first key above high. Iteration stops early if callback returns false.
func (t *Tree[K, V]) AscendRange(low, high K, fn func(key K, value V) bool) {
	if t == nil || t.root == nil || fn == nil {
		return
	}
	if t.cfg.Compare(low, high) > 0 {
		return
	}
	t.ascendRangeNode(t.root, low, high, fn)
}

// ascendRangeNode returns false once the walk is complete or was stopped by
// fn; all later keys in in-order sequence are then known to be out of range.
func (t *Tree[K, V]) ascendRangeNode(n *node[K, V], low, high K, fn func(key K, value V) bool) bool {
	assert(n != nil, "ascendRangeNode called with nil node")
	start, exact, _ := n.find(low, t.cfg.Compare)
	for i := start; i < len(n.entries); i++ {
		// With an exact match at start, the child to its left holds only keys < low.
		if !n.isLeaf() && !(exact && i == start) {
			if !t.ascendRangeNode(n.children[i], low, high, fn) {
				return false
			}
		}
		e := n.entries[i]
		if t.cfg.Compare(e.Key, high) > 0 {
			return false
		}
		if !fn(e.Key, e.Value) {
			return false
		}
	}
	if !n.isLeaf() {
		return t.ascendRangeNode(n.children[len(n.entries)], low, high, fn)
	}
	return true
}

// All returns an iterator over all entries in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Ascend(yield)
	}
}

// Range returns an iterator over the entries with low ≤ key ≤ high.
func (t *Tree[K, V]) Range(low, high K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.AscendRange(low, high, yield)
	}
}

// Keys returns an iterator over all keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.Ascend(func(key K, _ V) bool {
			return yield(key)
		})
	}
}
