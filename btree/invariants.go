package btree

import "fmt"

// Check validates structural tree invariants:
//   - node occupancy within [t-1, 2t-1] entries, root within [0, 2t-1],
//   - internal nodes with k entries have k+1 children,
//   - keys strictly ascending within a node and across the whole tree,
//     with every separator bounding its neighbouring subtrees,
//   - all leaves at the same depth.
//
// Violations are reported wrapping ErrInvariantViolation. Check is meant for
// tests and diagnostics.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		return fmt.Errorf("%w: tree has no root", ErrInvariantViolation)
	}
	_, err := t.checkNode(t.root, true, nil, nil)
	return err
}

// checkNode validates the subtree at n, whose keys must lie strictly between
// lower and upper (nil meaning unbounded). It returns the subtree height.
func (t *Tree[K, V]) checkNode(n *node[K, V], isRoot bool, lower, upper *K) (int, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: nil node", ErrInvariantViolation)
	}
	count := len(n.entries)
	if count > t.cfg.maxEntries() {
		return 0, fmt.Errorf("%w: node holds %d entries, maximum is %d",
			ErrInvariantViolation, count, t.cfg.maxEntries())
	}
	if !isRoot && count < t.cfg.minEntries() {
		return 0, fmt.Errorf("%w: non-root node holds %d entries, minimum is %d",
			ErrInvariantViolation, count, t.cfg.minEntries())
	}
	for i, e := range n.entries {
		if i > 0 && t.cfg.Compare(n.entries[i-1].Key, e.Key) >= 0 {
			return 0, fmt.Errorf("%w: keys not strictly ascending at entry %d", ErrInvariantViolation, i)
		}
		if lower != nil && t.cfg.Compare(*lower, e.Key) >= 0 {
			return 0, fmt.Errorf("%w: key %v not above separator %v", ErrInvariantViolation, e.Key, *lower)
		}
		if upper != nil && t.cfg.Compare(e.Key, *upper) >= 0 {
			return 0, fmt.Errorf("%w: key %v not below separator %v", ErrInvariantViolation, e.Key, *upper)
		}
	}
	if n.isLeaf() {
		return 1, nil
	}
	if len(n.children) != count+1 {
		return 0, fmt.Errorf("%w: internal node with %d entries has %d children",
			ErrInvariantViolation, count, len(n.children))
	}
	childHeight := 0
	for i, child := range n.children {
		lo, hi := lower, upper
		if i > 0 {
			lo = &n.entries[i-1].Key
		}
		if i < count {
			hi = &n.entries[i].Key
		}
		h, err := t.checkNode(child, false, lo, hi)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			childHeight = h
		} else if h != childHeight {
			return 0, fmt.Errorf("%w: leaves at different depths (%d != %d)",
				ErrInvariantViolation, h, childHeight)
		}
	}
	return childHeight + 1, nil
}
