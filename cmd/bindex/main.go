package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/npillmayer/bindex"
	"github.com/npillmayer/bindex/bench"
	"github.com/npillmayer/bindex/cli"
	"github.com/npillmayer/bindex/display"
	"github.com/npillmayer/bindex/textfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var (
	degree         *int
	tableName      *string
	seedNumRecords *int
	loadFile       *string
	runBench       *bool
	benchRecords   *int
	traceLevel     *string
)

func seedTableWithTestRecords(db *cli.DB) {
	tab, err := db.Table(*tableName)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *seedNumRecords; i++ {
		tab.Insert(int64(bench.FirstID+i), faker.Name())
	}
}

func loadRecords(db *cli.DB) {
	tab, err := db.Table(*tableName)
	if err != nil {
		log.Fatal(err)
	}
	n, err := textfile.Load(nil, *loadFile, tab.Index(), textfile.ParseIntRecord)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d records from %s into %s\n", n, *loadFile, *tableName)
}

func main() {
	setupFlags()
	setupTracing(*traceLevel)

	if *runBench {
		report, err := bench.Run(bench.Config{Records: *benchRecords})
		if err != nil {
			log.Fatal(err)
		}
		if err := report.Print(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	db := bindex.NewDatabase[int64, string]()
	if _, err := db.CreateTable(*tableName, *degree); err != nil {
		log.Fatal(err)
	}
	if *loadFile != "" {
		loadRecords(db)
	}
	if *seedNumRecords > 0 {
		seedTableWithTestRecords(db)
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.New(scanner, os.Stdout, db, *tableName, *degree)
	demo.SetConsole(display.ConfigFromTerminal())
	demo.Start()
}

// setupTracing routes both the core tracer and all selected traces (every
// sub-package traces with key 'bindex') to a go-log tracer.
func setupTracing(level string) {
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(traceLevelFromFlag(level))
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return gtrace.CoreTracer
	}))
}

func traceLevelFromFlag(level string) tracing.TraceLevel {
	switch strings.ToLower(level) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

func setupFlags() {
	degree = flag.Int("degree", 3, "Minimum degree of B-tree indexes.")
	tableName = flag.String("table", "employees", "Name of the table to create upon startup.")
	seedNumRecords = flag.Int("seed", 0, "Seed the table with this many records created with go-faker.")
	loadFile = flag.String("load", "", "Load records (key<TAB>value per line) from this file upon startup.")
	runBench = flag.Bool("bench", false, "Run the degree benchmark instead of the interactive shell.")
	benchRecords = flag.Int("records", 100000, "Amount of records used by the benchmark.")
	traceLevel = flag.String("trace", "error", "Trace level: error, info or debug.")
	flag.Usage = func() {
		fmt.Println("\nB-Tree Index CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}
