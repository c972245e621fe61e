package btree

import (
	"cmp"
	"fmt"
)

const (
	// MinDegree is the smallest admissible minimum degree. A degree of 1 could
	// not keep non-root nodes at t-1 entries.
	MinDegree = 2
	// DefaultDegree is used by clients which do not care about fan-out.
	DefaultDegree = 3
)

// CompareFunc is a three-way comparison for keys. It returns a negative number
// if a < b, zero if a == b, and a positive number if a > b.
//
// It must define a total order.
type CompareFunc[K any] func(a, b K) int

// Config configures a B-tree.
type Config[K any] struct {
	// Degree is the minimum degree t of the tree. Nodes hold at most 2t-1 entries.
	Degree int
	// Compare orders keys.
	Compare CompareFunc[K]
}

// OrderedConfig returns a configuration for keys with a natural order.
func OrderedConfig[K cmp.Ordered](degree int) Config[K] {
	return Config[K]{
		Degree:  degree,
		Compare: cmp.Compare[K],
	}
}

func (cfg Config[K]) validate() error {
	if cfg.Degree < MinDegree {
		return fmt.Errorf("%w: degree %d is less than %d", ErrInvalidConfig, cfg.Degree, MinDegree)
	}
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	return nil
}

// maxEntries is the capacity 2t-1 of a node.
func (cfg Config[K]) maxEntries() int {
	return 2*cfg.Degree - 1
}

// minEntries is the lower occupancy bound t-1 of a non-root node.
func (cfg Config[K]) minEntries() int {
	return cfg.Degree - 1
}
