/*
Package bench measures how the degree of a B-tree index affects its shape
and search cost.

Run builds one tree per degree over the same shuffled set of employee
records, then searches every tree for the same random sample of ids,
counting key comparisons exactly. A linear scan over the sorted records
serves as baseline.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package bench

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"github.com/npillmayer/bindex/btree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bindex'
func tracer() tracing.Trace {
	return tracing.Select("bindex")
}

// FirstID is the id of the first generated record.
const FirstID = 1000

// DefaultDegrees are the degrees compared if Config.Degrees is empty.
var DefaultDegrees = []int{5, 10, 25, 50, 100, 1000}

// ErrIllegalConfig is returned by Run for unusable parameters.
var ErrIllegalConfig = errors.New("bench: illegal configuration")

// Record is an employee record, keyed by id.
type Record = btree.Entry[int64, string]

// Config parametrizes a benchmark run. Zero values select defaults.
type Config struct {
	Records    int   // number of records, default 100,000
	Searches   int   // number of random searches per tree, default 100
	Degrees    []int // degrees to compare, default DefaultDegrees
	Seed       uint64
	PlainNames bool // name records "Employee_<id>" instead of faking names
}

func (cfg Config) normalized() Config {
	if cfg.Records == 0 {
		cfg.Records = 100000
	}
	if cfg.Searches == 0 {
		cfg.Searches = 100
	}
	if len(cfg.Degrees) == 0 {
		cfg.Degrees = DefaultDegrees
	}
	return cfg
}

// Result holds the measurements for a single search method.
type Result struct {
	Degree         int // 0 for the linear baseline
	Height         int
	Nodes          int
	BuildTime      time.Duration
	AvgComparisons float64
	MaxComparisons int
	AvgSearchTime  time.Duration
	Found          int // number of searches which found their key
}

// Report is the outcome of Run.
type Report struct {
	Records  int
	Searches int
	Linear   Result
	Trees    []Result // in the order of Config.Degrees
}

// Run generates records, builds a tree per degree and measures searches.
func Run(cfg Config) (*Report, error) {
	cfg = cfg.normalized()
	if cfg.Records < 1 || cfg.Searches < 1 {
		return nil, fmt.Errorf("%w: records=%d, searches=%d", ErrIllegalConfig, cfg.Records, cfg.Searches)
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed))
	records := GenerateRecords(cfg.Records, !cfg.PlainNames)
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	probes := make([]int64, cfg.Searches)
	for i := range probes {
		probes[i] = FirstID + int64(rng.IntN(cfg.Records))
	}
	report := &Report{Records: cfg.Records, Searches: cfg.Searches}
	for _, degree := range cfg.Degrees {
		res, err := measureTree(records, degree, probes)
		if err != nil {
			return nil, err
		}
		report.Trees = append(report.Trees, res)
	}
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b Record) int {
		return cmp.Compare(a.Key, b.Key)
	})
	report.Linear = measureLinear(sorted, probes)
	return report, nil
}

// GenerateRecords creates n records with ids counting up from FirstID.
func GenerateRecords(n int, fakeNames bool) []Record {
	records := make([]Record, n)
	for i := range records {
		id := int64(FirstID + i)
		name := fmt.Sprintf("Employee_%d", id)
		if fakeNames {
			name = faker.Name()
		}
		records[i] = Record{Key: id, Value: name}
	}
	return records
}

func measureTree(records []Record, degree int, probes []int64) (Result, error) {
	tree, err := btree.New[int64, string](degree)
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	for _, r := range records {
		tree.Insert(r.Key, r.Value)
	}
	res := Result{Degree: degree, BuildTime: time.Since(start)}
	stats := tree.Stats()
	res.Height, res.Nodes = stats.Height, stats.Nodes
	tracer().Infof("built B-tree of degree %d: height=%d, nodes=%d, build time=%s",
		degree, res.Height, res.Nodes, res.BuildTime)
	total := 0
	start = time.Now()
	for _, key := range probes {
		_, found, comps := tree.SearchStats(key)
		total += comps
		res.MaxComparisons = max(res.MaxComparisons, comps)
		if found {
			res.Found++
		}
	}
	res.AvgSearchTime = time.Since(start) / time.Duration(len(probes))
	res.AvgComparisons = float64(total) / float64(len(probes))
	return res, nil
}

func measureLinear(sorted []Record, probes []int64) Result {
	var res Result
	total := 0
	start := time.Now()
	for _, key := range probes {
		_, found, comps := LinearSearch(sorted, key)
		total += comps
		res.MaxComparisons = max(res.MaxComparisons, comps)
		if found {
			res.Found++
		}
	}
	res.AvgSearchTime = time.Since(start) / time.Duration(len(probes))
	res.AvgComparisons = float64(total) / float64(len(probes))
	return res
}

// LinearSearch scans records front to back for key, counting one comparison
// per record inspected.
func LinearSearch(records []Record, key int64) (Record, bool, int) {
	for i, r := range records {
		if r.Key == key {
			return r, true, i + 1
		}
	}
	return Record{}, false, len(records)
}

// Best returns the tree result with the fewest average comparisons. Ties go
// to the earlier degree.
func (r *Report) Best() (Result, bool) {
	if len(r.Trees) == 0 {
		return Result{}, false
	}
	best := r.Trees[0]
	for _, res := range r.Trees[1:] {
		if res.AvgComparisons < best.AvgComparisons {
			best = res
		}
	}
	return best, true
}

// Print writes the report as a table.
func (r *Report) Print(w io.Writer) error {
	fmt.Fprintf(w, "B-tree search benchmark: %d records, %d random searches\n\n", r.Records, r.Searches)
	fmt.Fprintf(w, "%-16s %6s %8s %12s %14s %10s %10s\n",
		"Method", "Height", "Nodes", "Build", "Avg Time", "Avg Comp", "Max Comp")
	fmt.Fprintf(w, "%-16s %6s %8s %12s %14s %10.1f %10d\n", "Linear Search", "-", "-", "-",
		r.Linear.AvgSearchTime, r.Linear.AvgComparisons, r.Linear.MaxComparisons)
	for _, res := range r.Trees {
		fmt.Fprintf(w, "%-16s %6d %8d %12s %14s %10.1f %10d\n", fmt.Sprintf("B-tree (t=%d)", res.Degree),
			res.Height, res.Nodes, res.BuildTime.Round(time.Microsecond), res.AvgSearchTime,
			res.AvgComparisons, res.MaxComparisons)
	}
	best, ok := r.Best()
	if !ok {
		return nil
	}
	_, err := color.New(color.FgGreen, color.Bold).Fprintf(w,
		"\nBest degree: %d (%.1f avg comparisons vs. %.1f for linear search)\n",
		best.Degree, best.AvgComparisons, r.Linear.AvgComparisons)
	return err
}
