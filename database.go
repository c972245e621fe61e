package bindex

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/npillmayer/bindex/btree"
)

// Table is a named collection of rows, indexed by a B-tree over the row keys.
type Table[K cmp.Ordered, V any] struct {
	name  string
	index *btree.Tree[K, V]
}

// Name returns the table's name.
func (tab *Table[K, V]) Name() string {
	return tab.name
}

// Index returns the B-tree backing the table, e.g. for renderers.
func (tab *Table[K, V]) Index() *btree.Tree[K, V] {
	return tab.index
}

// Len returns the number of rows in the table.
func (tab *Table[K, V]) Len() int {
	return tab.index.KeyCount()
}

// Insert stores a row. An existing row with the same key is replaced.
func (tab *Table[K, V]) Insert(key K, value V) {
	T().Debugf("INSERT INTO %s VALUES (%v, '%v')", tab.name, key, value)
	tab.index.Insert(key, value)
}

// Select looks up the row with the given key.
func (tab *Table[K, V]) Select(key K) (V, bool) {
	T().Debugf("SELECT * FROM %s WHERE id = %v", tab.name, key)
	return tab.index.Search(key)
}

// SelectRange returns all rows with low ≤ key ≤ high, ordered by key.
func (tab *Table[K, V]) SelectRange(low, high K) []btree.Entry[K, V] {
	T().Debugf("SELECT * FROM %s WHERE id BETWEEN %v AND %v", tab.name, low, high)
	return tab.index.RangeSearch(low, high)
}

// --- Database --------------------------------------------------------------

// Database maps table names to tables.
//
// A Database created by
//
//	NewDatabase[int64, string]()
//
// is empty; tables are added with CreateTable.
type Database[K cmp.Ordered, V any] struct {
	tables map[string]*Table[K, V]
}

// NewDatabase creates a database without tables.
func NewDatabase[K cmp.Ordered, V any]() *Database[K, V] {
	return &Database[K, V]{
		tables: make(map[string]*Table[K, V]),
	}
}

// CreateTable adds an empty table with an index of the given B-tree degree.
//
// It fails with ErrTableExists if the name is taken, ErrIllegalArguments for
// an empty name, and an error wrapping btree.ErrInvalidConfig for a degree
// below btree.MinDegree.
func (db *Database[K, V]) CreateTable(name string, degree int) (*Table[K, V], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: table name must not be empty", ErrIllegalArguments)
	}
	if _, exists := db.tables[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrTableExists, name)
	}
	index, err := btree.New[K, V](degree)
	if err != nil {
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}
	tab := &Table[K, V]{name: name, index: index}
	db.tables[name] = tab
	T().Infof("created table '%s' with B-tree index of degree %d", name, degree)
	return tab, nil
}

// Table returns the table with the given name.
func (db *Database[K, V]) Table(name string) (*Table[K, V], error) {
	tab, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchTable, name)
	}
	return tab, nil
}

// DropTable removes a table together with its index.
func (db *Database[K, V]) DropTable(name string) error {
	if _, ok := db.tables[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchTable, name)
	}
	delete(db.tables, name)
	T().Infof("dropped table '%s'", name)
	return nil
}

// TableNames returns the names of all tables in ascending order.
func (db *Database[K, V]) TableNames() []string {
	return slices.Sorted(maps.Keys(db.tables))
}

// Insert stores a row in the named table.
func (db *Database[K, V]) Insert(table string, key K, value V) error {
	tab, err := db.Table(table)
	if err != nil {
		T().Errorf("insert: %v", err)
		return err
	}
	tab.Insert(key, value)
	return nil
}

// Select looks up a row of the named table. A missing row is not an error.
func (db *Database[K, V]) Select(table string, key K) (value V, found bool, err error) {
	tab, err := db.Table(table)
	if err != nil {
		return value, false, err
	}
	value, found = tab.Select(key)
	return value, found, nil
}

// SelectRange returns the rows of the named table with low ≤ key ≤ high.
func (db *Database[K, V]) SelectRange(table string, low, high K) ([]btree.Entry[K, V], error) {
	tab, err := db.Table(table)
	if err != nil {
		return nil, err
	}
	return tab.SelectRange(low, high), nil
}
