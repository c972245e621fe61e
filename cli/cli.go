/*
Package cli implements an interactive shell over a database of B-tree
indexed tables.

Commands are case-insensitive:

	CREATE <table> [degree]   create a table and switch to it
	USE <table>               switch to a table
	SET <key> <value...>      insert or replace a row
	GET <key>                 look up a row
	RANGE <low> <high>        list the rows with low ≤ key ≤ high
	SHOW                      print the index node by node
	TREE                      draw the index
	DOT                       print the index in Graphviz DOT format
	HTML                      print the index as nested HTML lists
	STATS                     print height, node count and key count
	TABLES                    list all tables
	HELP                      print this help
	EXIT                      terminate the session
*/
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/bindex"
	"github.com/npillmayer/bindex/display"
)

// DB is the kind of database the shell operates on.
type DB = bindex.Database[int64, string]

// CLI is an interactive session. It reads commands line by line and writes
// results to its output.
type CLI struct {
	scanner *bufio.Scanner
	out     io.Writer
	db      *DB
	table   string          // current table, may be empty
	degree  int             // default degree for CREATE
	console *display.Config // configuration for TREE
	errors  *color.Color
}

// New creates a session over db, starting with table as the current table.
// degree is used for tables created without an explicit degree.
func New(scanner *bufio.Scanner, out io.Writer, db *DB, table string, degree int) *CLI {
	return &CLI{
		scanner: scanner,
		out:     out,
		db:      db,
		table:   table,
		degree:  degree,
		console: &display.Config{},
		errors:  color.New(color.FgRed),
	}
}

// SetConsole sets the configuration used for drawing trees.
func (c *CLI) SetConsole(cfg *display.Config) {
	c.console = cfg
}

// Start prints the help text and processes commands until EXIT or the end
// of input.
func (c *CLI) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if quit := c.Execute(c.scanner.Text()); quit {
			return
		}
		c.printPrompt()
	}
}

func (c *CLI) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree Index CLI

Available Commands:
  CREATE <table> [degree]  Create a table and switch to it
  USE <table>              Switch to a table
  SET <key> <value...>     Insert or replace a row
  GET <key>                Retrieve the row for a key
  RANGE <low> <high>       List rows with low <= key <= high
  SHOW                     Print the index node by node
  TREE                     Draw the index
  DOT                      Print the index in Graphviz DOT format
  HTML                     Print the index as HTML
  STATS                    Print statistics of the index
  TABLES                   List all tables
  HELP                     Print this help
  EXIT                     Terminate this session`)
}

func (c *CLI) printPrompt() {
	if c.table != "" {
		fmt.Fprintf(c.out, "%s> ", c.table)
		return
	}
	fmt.Fprint(c.out, "> ")
}

func (c *CLI) fail(format string, args ...any) {
	c.errors.Fprintf(c.out, format+"\n", args...)
}

// Execute processes a single command line. It returns true if the session
// should end.
func (c *CLI) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return false
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	switch command {
	default:
		c.fail("Unknown command \"%s\"", command)
	case "create":
		c.processCreateCommand(args)
	case "use":
		c.processUseCommand(args)
	case "set":
		c.processSetCommand(args)
	case "get":
		c.processGetCommand(args)
	case "range":
		c.processRangeCommand(args)
	case "show", "tree", "dot", "html", "stats":
		c.processRenderCommand(command, args)
	case "tables":
		c.processTablesCommand()
	case "help":
		c.printHelp()
	case "exit":
		return true
	}
	return false
}

func (c *CLI) processCreateCommand(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(c.out, "Usage: CREATE <table> [degree]")
		return
	}
	degree := c.degree
	if len(args) == 2 {
		d, err := strconv.Atoi(args[1])
		if err != nil {
			c.fail("Degree must be a number: %s", args[1])
			return
		}
		degree = d
	}
	if _, err := c.db.CreateTable(args[0], degree); err != nil {
		c.fail("%v", err)
		return
	}
	c.table = args[0]
	fmt.Fprintf(c.out, "Created table %s (degree %d)\n", args[0], degree)
}

func (c *CLI) processUseCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: USE <table>")
		return
	}
	if _, err := c.db.Table(args[0]); err != nil {
		c.fail("%v", err)
		return
	}
	c.table = args[0]
}

func (c *CLI) currentTable() (*bindex.Table[int64, string], bool) {
	if c.table == "" {
		c.fail("No table selected, use CREATE or USE")
		return nil, false
	}
	tab, err := c.db.Table(c.table)
	if err != nil {
		c.fail("%v", err)
		return nil, false
	}
	return tab, true
}

func (c *CLI) parseKey(arg string) (int64, bool) {
	key, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		c.fail("Key must be an integer: %s", arg)
		return 0, false
	}
	return key, true
}

func (c *CLI) processSetCommand(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value...>")
		return
	}
	tab, ok := c.currentTable()
	if !ok {
		return
	}
	key, ok := c.parseKey(args[0])
	if !ok {
		return
	}
	tab.Insert(key, strings.Join(args[1:], " "))
	fmt.Fprintln(c.out, "OK")
}

func (c *CLI) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	tab, ok := c.currentTable()
	if !ok {
		return
	}
	key, ok := c.parseKey(args[0])
	if !ok {
		return
	}
	value, found := tab.Select(key)
	if !found {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, value)
}

func (c *CLI) processRangeCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: RANGE <low> <high>")
		return
	}
	tab, ok := c.currentTable()
	if !ok {
		return
	}
	low, ok := c.parseKey(args[0])
	if !ok {
		return
	}
	high, ok := c.parseKey(args[1])
	if !ok {
		return
	}
	rows := tab.SelectRange(low, high)
	for _, row := range rows {
		fmt.Fprintf(c.out, "%d\t%s\n", row.Key, row.Value)
	}
	fmt.Fprintf(c.out, "(%d rows)\n", len(rows))
}

func (c *CLI) processRenderCommand(command string, args []string) {
	if len(args) != 0 {
		fmt.Fprintf(c.out, "Usage: %s\n", strings.ToUpper(command))
		return
	}
	tab, ok := c.currentTable()
	if !ok {
		return
	}
	var err error
	switch command {
	case "show":
		err = display.Print(c.out, tab.Index())
	case "tree":
		err = display.PrintVisual(c.out, tab.Index(), c.console)
	case "dot":
		err = display.Tree2Dot(tab.Index(), c.out)
	case "html":
		if err = display.Tree2HTML(tab.Index(), c.out); err == nil {
			fmt.Fprintln(c.out)
		}
	case "stats":
		s := tab.Index().Stats()
		fmt.Fprintf(c.out, "Degree: %d\nHeight: %d\nNodes:  %d\nKeys:   %d\n",
			s.Degree, s.Height, s.Nodes, s.Keys)
	}
	if err != nil {
		c.fail("%v", err)
	}
}

func (c *CLI) processTablesCommand() {
	for _, name := range c.db.TableNames() {
		marker := " "
		if name == c.table {
			marker = "*"
		}
		tab, _ := c.db.Table(name)
		fmt.Fprintf(c.out, "%s %s (%d rows, degree %d)\n", marker, name, tab.Len(), tab.Index().Degree())
	}
}
