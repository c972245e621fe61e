package btree

import (
	"cmp"
	"fmt"
)

// Tree is a B-tree index from keys K to values V.
//
// A tree is created with a minimum degree t and always has a root node; a
// fresh tree consists of a single empty leaf. Keys are unique: inserting an
// existing key replaces its value.
type Tree[K, V any] struct {
	cfg  Config[K]
	root *node[K, V]
}

// New creates an empty tree of the given degree for naturally ordered keys.
func New[K cmp.Ordered, V any](degree int) (*Tree[K, V], error) {
	return NewWithConfig[K, V](OrderedConfig[K](degree))
}

// NewWithConfig creates an empty tree with validated configuration.
func NewWithConfig[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Tree[K, V]{cfg: cfg}
	t.root = t.makeLeaf()
	return t, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, V]) Config() Config[K] {
	return t.cfg
}

// Degree returns the minimum degree t of the tree.
func (t *Tree[K, V]) Degree() int {
	return t.cfg.Degree
}

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t == nil || t.root == nil || len(t.root.entries) == 0
}

// Insert stores value under key. If key is already present anywhere in the
// tree, its value is replaced and no entry is added.
//
// Insertion is a single downward pass: a full root is split up front, and
// every full child is split before descending into it, so the node receiving
// the entry always has room.
func (t *Tree[K, V]) Insert(key K, value V) {
	assert(t != nil && t.root != nil, "Insert called on uninitialized tree")
	if t.isFull(t.root) {
		old := t.root
		t.root = t.makeInternal(old)
		t.splitChild(t.root, 0)
	}
	t.insertNonFull(t.root, key, value)
}

// insertNonFull inserts into the subtree at n, which must not be full.
func (t *Tree[K, V]) insertNonFull(n *node[K, V], key K, value V) {
	assert(!t.isFull(n), "insertNonFull called with full node")
	pos, found, _ := n.find(key, t.cfg.Compare)
	if found {
		n.entries[pos].Value = value
		return
	}
	if n.isLeaf() {
		n.entries = insertAt(n.entries, pos, Entry[K, V]{Key: key, Value: value})
		return
	}
	if t.isFull(n.children[pos]) {
		t.splitChild(n, pos)
		// The promoted median may redirect us to the new right sibling, or
		// may itself be the key we are inserting.
		switch c := t.cfg.Compare(key, n.entries[pos].Key); {
		case c > 0:
			pos++
		case c == 0:
			n.entries[pos].Value = value
			return
		}
	}
	t.insertNonFull(n.children[pos], key, value)
}

// Search returns the value stored under key. The boolean result is false if
// the key is not present.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	value, found, _ := t.SearchStats(key)
	return value, found
}

// SearchStats is like Search, but additionally reports the number of key
// comparisons performed during the lookup.
func (t *Tree[K, V]) SearchStats(key K) (value V, found bool, comparisons int) {
	if t == nil || t.root == nil {
		return value, false, 0
	}
	for n := t.root; ; {
		pos, ok, c := n.find(key, t.cfg.Compare)
		comparisons += c
		if ok {
			return n.entries[pos].Value, true, comparisons
		}
		if n.isLeaf() {
			return value, false, comparisons
		}
		n = n.children[pos]
	}
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, found := t.Search(key)
	return found
}

// Min returns the entry with the smallest key, or false for an empty tree.
func (t *Tree[K, V]) Min() (Entry[K, V], bool) {
	if t.IsEmpty() {
		return Entry[K, V]{}, false
	}
	n := t.root
	for !n.isLeaf() {
		n = n.children[0]
	}
	return n.entries[0], true
}

// Max returns the entry with the largest key, or false for an empty tree.
func (t *Tree[K, V]) Max() (Entry[K, V], bool) {
	if t.IsEmpty() {
		return Entry[K, V]{}, false
	}
	n := t.root
	for !n.isLeaf() {
		n = n.children[len(n.children)-1]
	}
	return n.entries[len(n.entries)-1], true
}

// RangeSearch returns all entries with low ≤ key ≤ high in ascending key
// order. If low > high, the result is empty.
func (t *Tree[K, V]) RangeSearch(low, high K) []Entry[K, V] {
	var result []Entry[K, V]
	t.AscendRange(low, high, func(key K, value V) bool {
		result = append(result, Entry[K, V]{Key: key, Value: value})
		return true
	})
	return result
}

// String returns a short description of the tree's shape.
func (t *Tree[K, V]) String() string {
	if t == nil || t.root == nil {
		return "btree(nil)"
	}
	s := t.Stats()
	return fmt.Sprintf("btree(degree=%d, height=%d, nodes=%d, keys=%d)",
		s.Degree, s.Height, s.Nodes, s.Keys)
}
