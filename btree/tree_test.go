package btree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type employee struct {
	id   int
	name string
}

var employees = []employee{
	{101, "Alice Johnson"},
	{205, "Bob Smith"},
	{150, "Carol Davis"},
	{175, "David Wilson"},
	{110, "Eva Brown"},
	{300, "Frank Miller"},
	{125, "Grace Lee"},
	{180, "Henry Clark"},
	{195, "Ivy Martinez"},
	{250, "Jack Taylor"},
}

func makeIntTree(t *testing.T, degree int) *Tree[int, string] {
	t.Helper()
	tree, err := New[int, string](degree)
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	return tree
}

func makeEmployeeTree(t *testing.T) *Tree[int, string] {
	t.Helper()
	tree := makeIntTree(t, 3)
	for _, e := range employees {
		tree.Insert(e.id, e.name)
	}
	return tree
}

func entryKeys[K, V any](entries []Entry[K, V]) []K {
	keys := make([]K, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func mustCheck[K, V any](t *testing.T, tree *Tree[K, V]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant check failed: %v", err)
	}
}

func TestNewRejectsInvalidDegree(t *testing.T) {
	for _, degree := range []int{1, 0, -3} {
		tree, err := New[int, string](degree)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("degree %d: expected ErrInvalidConfig, got %v", degree, err)
		}
		if tree != nil {
			t.Fatalf("degree %d: expected no tree on failure", degree)
		}
	}
}

func TestNewWithConfigRequiresCompare(t *testing.T) {
	_, err := NewWithConfig[string, int](Config[string]{Degree: 4})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for missing compare, got %v", err)
	}
}

func TestNewWithCustomCompare(t *testing.T) {
	tree, err := NewWithConfig[string, int](Config[string]{
		Degree:  2,
		Compare: func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tree.Insert("Apple", 1)
	tree.Insert("apple", 2)
	tree.Insert("Banana", 3)
	if tree.KeyCount() != 2 {
		t.Fatalf("expected case-insensitive keys to collapse, got %d keys", tree.KeyCount())
	}
	if v, ok := tree.Search("APPLE"); !ok || v != 2 {
		t.Fatalf("expected APPLE -> 2, got %d, %v", v, ok)
	}
	if tree.Config().Degree != 2 || tree.Degree() != 2 {
		t.Fatalf("unexpected degree in config")
	}
}

func TestEmptyTree(t *testing.T) {
	tree := makeIntTree(t, 3)
	mustCheck(t, tree)
	if _, ok := tree.Search(42); ok {
		t.Fatalf("expected search on empty tree to fail")
	}
	if r := tree.RangeSearch(0, 1000); len(r) != 0 {
		t.Fatalf("expected empty range result, got %v", r)
	}
	if tree.Height() != 1 || tree.NodeCount() != 1 || tree.KeyCount() != 0 {
		t.Fatalf("unexpected empty tree shape height=%d nodes=%d keys=%d",
			tree.Height(), tree.NodeCount(), tree.KeyCount())
	}
	if !tree.IsEmpty() {
		t.Fatalf("expected fresh tree to be empty")
	}
	if _, ok := tree.Min(); ok {
		t.Fatalf("expected no minimum in empty tree")
	}
	if _, ok := tree.Max(); ok {
		t.Fatalf("expected no maximum in empty tree")
	}
}

func TestEmployeeScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bindex")
	defer teardown()

	tree := makeEmployeeTree(t)
	mustCheck(t, tree)
	if v, ok := tree.Search(150); !ok || v != "Carol Davis" {
		t.Fatalf("expected 150 -> Carol Davis, got %q, %v", v, ok)
	}
	if _, ok := tree.Search(999); ok {
		t.Fatalf("expected 999 to be absent")
	}
	got := tree.RangeSearch(120, 200)
	want := []int{125, 150, 175, 180, 195}
	if !slices.Equal(entryKeys(got), want) {
		t.Fatalf("range 120..200: got %v, want %v", entryKeys(got), want)
	}
	if got[0].Value != "Grace Lee" || got[4].Value != "Ivy Martinez" {
		t.Fatalf("range returned wrong values: %v", got)
	}
	s := tree.Stats()
	if s.Height != 2 || s.Nodes != 4 || s.Keys != 10 || s.Degree != 3 {
		t.Fatalf("unexpected stats %+v", s)
	}
	root := tree.Root()
	if !slices.Equal(entryKeys(root.Entries()), []int{150, 195}) {
		t.Fatalf("unexpected root separators %v", entryKeys(root.Entries()))
	}
	wantLeaves := [][]int{{101, 110, 125}, {175, 180}, {205, 250, 300}}
	for i, want := range wantLeaves {
		if got := entryKeys(root.Child(i).Entries()); !slices.Equal(got, want) {
			t.Fatalf("leaf %d: got %v, want %v", i, got, want)
		}
	}
}

func TestInsertUpdatesExistingKey(t *testing.T) {
	tree := makeEmployeeTree(t)
	tree.Insert(110, "Eva Green")   // key in a leaf
	tree.Insert(150, "Carol Jones") // separator key in the root
	mustCheck(t, tree)
	if tree.KeyCount() != len(employees) {
		t.Fatalf("update created duplicates: %d keys", tree.KeyCount())
	}
	if v, _ := tree.Search(110); v != "Eva Green" {
		t.Fatalf("leaf update lost: %q", v)
	}
	if v, _ := tree.Search(150); v != "Carol Jones" {
		t.Fatalf("separator update lost: %q", v)
	}
	count := 0
	for k := range tree.Keys() {
		if k == 150 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one entry for 150, found %d", count)
	}
}

func TestInsertUpdatesPromotedMedian(t *testing.T) {
	tree := makeIntTree(t, 2)
	for _, k := range []int{1, 2, 3, 4, 5} {
		tree.Insert(k, fmt.Sprintf("v%d", k))
	}
	// root [2], children [1] and [3 4 5]; re-inserting 4 splits [3 4 5]
	// and meets 4 as the promoted median
	tree.Insert(4, "updated")
	mustCheck(t, tree)
	if v, _ := tree.Search(4); v != "updated" {
		t.Fatalf("expected updated value for 4, got %q", v)
	}
	if tree.KeyCount() != 5 {
		t.Fatalf("expected 5 keys, got %d", tree.KeyCount())
	}
	if !slices.Equal(entryKeys(tree.Root().Entries()), []int{2, 4}) {
		t.Fatalf("unexpected root %v", entryKeys(tree.Root().Entries()))
	}
}

func TestRootSplitGrowsHeight(t *testing.T) {
	tree := makeIntTree(t, 2)
	heights := []int{}
	for k := 1; k <= 20; k++ {
		tree.Insert(k, "")
		mustCheck(t, tree)
		heights = append(heights, tree.Height())
	}
	for i := 1; i < len(heights); i++ {
		if heights[i] < heights[i-1] || heights[i] > heights[i-1]+1 {
			t.Fatalf("height sequence not monotone by single steps: %v", heights)
		}
	}
	if heights[len(heights)-1] < 3 {
		t.Fatalf("expected tree of degree 2 with 20 keys to reach height 3, got %d", heights[len(heights)-1])
	}
}

func TestSplitChildKeepsHalves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bindex")
	defer teardown()
	//
	tree := makeIntTree(t, 3)
	for k := 1; k <= 5; k++ {
		tree.Insert(k*10, "")
	}
	full := tree.root
	parent := tree.makeInternal(full)
	tree.splitChild(parent, 0)
	if !slices.Equal(entryKeys(parent.entries), []int{30}) {
		t.Fatalf("expected median 30 promoted, got %v", entryKeys(parent.entries))
	}
	if len(parent.children) != 2 {
		t.Fatalf("expected 2 children after split, got %d", len(parent.children))
	}
	if !slices.Equal(entryKeys(parent.children[0].entries), []int{10, 20}) ||
		!slices.Equal(entryKeys(parent.children[1].entries), []int{40, 50}) {
		t.Fatalf("unexpected halves %v / %v",
			entryKeys(parent.children[0].entries), entryKeys(parent.children[1].entries))
	}
	if !parent.children[1].isLeaf() {
		t.Fatalf("sibling of a leaf must be a leaf")
	}
}

func TestSplitChildPanicsOnNonFullChild(t *testing.T) {
	tree := makeIntTree(t, 3)
	tree.Insert(1, "")
	parent := tree.makeInternal(tree.root)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected splitChild on non-full child to panic")
		}
	}()
	tree.splitChild(parent, 0)
}

func TestRangeSearchDegenerate(t *testing.T) {
	tree := makeEmployeeTree(t)
	if r := tree.RangeSearch(500, 10); len(r) != 0 {
		t.Fatalf("expected empty result for low > high, got %v", r)
	}
	if r := tree.RangeSearch(301, 400); len(r) != 0 {
		t.Fatalf("expected empty result above all keys, got %v", r)
	}
	if r := tree.RangeSearch(0, 100); len(r) != 0 {
		t.Fatalf("expected empty result below all keys, got %v", r)
	}
}

func TestRangeSearchInclusiveBounds(t *testing.T) {
	tree := makeEmployeeTree(t)
	cases := []struct {
		low, high int
		want      []int
	}{
		{101, 101, []int{101}},
		{150, 195, []int{150, 175, 180, 195}},
		{195, 205, []int{195, 205}},
		{0, 1000, []int{101, 110, 125, 150, 175, 180, 195, 205, 250, 300}},
		{126, 149, nil},
	}
	for _, c := range cases {
		got := entryKeys(tree.RangeSearch(c.low, c.high))
		if !slices.Equal(got, c.want) {
			t.Fatalf("range %d..%d: got %v, want %v", c.low, c.high, got, c.want)
		}
	}
}

func TestAscendRangeStopsEarly(t *testing.T) {
	tree := makeEmployeeTree(t)
	var seen []int
	tree.AscendRange(100, 300, func(k int, _ string) bool {
		seen = append(seen, k)
		return len(seen) < 3
	})
	if !slices.Equal(seen, []int{101, 110, 125}) {
		t.Fatalf("unexpected early-stopped range %v", seen)
	}
}

func TestIterators(t *testing.T) {
	tree := makeEmployeeTree(t)
	var keys []int
	for k, v := range tree.All() {
		if v == "" {
			t.Fatalf("missing value for %d", k)
		}
		keys = append(keys, k)
	}
	if !slices.IsSorted(keys) || len(keys) != len(employees) {
		t.Fatalf("All() not sorted or incomplete: %v", keys)
	}
	var ranged []int
	for k := range tree.Range(175, 205) {
		ranged = append(ranged, k)
	}
	if !slices.Equal(ranged, []int{175, 180, 195, 205}) {
		t.Fatalf("Range() got %v", ranged)
	}
	if first, _ := tree.Min(); first.Key != 101 {
		t.Fatalf("Min() got %d", first.Key)
	}
	if last, _ := tree.Max(); last.Key != 300 {
		t.Fatalf("Max() got %d", last.Key)
	}
}

func TestSearchStatsCountsComparisons(t *testing.T) {
	tree := makeEmployeeTree(t)
	// root [150 195]: 195 then 150
	if _, ok, c := tree.SearchStats(150); !ok || c != 2 {
		t.Fatalf("expected 150 found with 2 comparisons, got %v, %d", ok, c)
	}
	// root [150 195]: 195; leaf [205 250 300]: 250, 300
	if _, ok, c := tree.SearchStats(999); ok || c != 3 {
		t.Fatalf("expected 999 missing after 3 comparisons, got %v, %d", ok, c)
	}
}

func TestBinarySearchWithinWideNode(t *testing.T) {
	tree := makeIntTree(t, 1000)
	for k := 0; k < 1999; k++ {
		tree.Insert(k, "")
	}
	if tree.Height() != 1 {
		t.Fatalf("expected single leaf for 2t-1 keys, got height %d", tree.Height())
	}
	for _, k := range []int{0, 1, 998, 1997, 1998, 5000} {
		if _, _, c := tree.SearchStats(k); c > 11 {
			t.Fatalf("search for %d used %d comparisons, binary search needs at most 11", k, c)
		}
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	tree := makeEmployeeTree(t)
	visited, entries := 0, 0
	maxDepth := 0
	err := tree.Walk(func(n NodeView[int, string], depth, index int) error {
		visited++
		entries += n.Len()
		if depth > maxDepth {
			maxDepth = depth
		}
		if !n.IsLeaf() && n.NumChildren() != n.Len()+1 {
			t.Fatalf("node at depth %d has %d children for %d entries", depth, n.NumChildren(), n.Len())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
	if visited != tree.NodeCount() || entries != tree.KeyCount() || maxDepth+1 != tree.Height() {
		t.Fatalf("walk saw %d nodes, %d entries, depth %d", visited, entries, maxDepth)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	tree := makeEmployeeTree(t)
	stop := errors.New("stop")
	visited := 0
	err := tree.Walk(func(NodeView[int, string], int, int) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || visited != 2 {
		t.Fatalf("expected walk to stop after 2 nodes with error, got %v after %d", err, visited)
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	tree := makeEmployeeTree(t)
	tree.root.children[0].entries[0].Key = 400
	if err := tree.Check(); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	tree = makeEmployeeTree(t)
	tree.root.children[1].entries = tree.root.children[1].entries[:1]
	if err := tree.Check(); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected underfull node to be flagged, got %v", err)
	}
}

func TestString(t *testing.T) {
	tree := makeEmployeeTree(t)
	if s := tree.String(); s != "btree(degree=3, height=2, nodes=4, keys=10)" {
		t.Fatalf("unexpected String(): %s", s)
	}
}
