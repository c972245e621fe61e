package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/bindex/btree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// NodeKind distinguishes node types for coloring.
type NodeKind int

// Kinds of B-tree nodes.
const (
	LeafNode NodeKind = iota
	InternalNode
)

func (k NodeKind) String() string {
	if k == LeafNode {
		return "LEAF"
	}
	return "NODE"
}

// DefaultMaxInline is the number of entries up to which a node's entries are
// listed in full by PrintVisual.
const DefaultMaxInline = 3

// Config controls console output.
type Config struct {
	// LineWidth clips output lines to this many display cells. 0 means no clipping.
	LineWidth int
	// Context is used to measure display widths. nil means uax11.LatinContext.
	Context *uax11.Context
	// MaxInline is the number of entries shown in full per node; larger nodes
	// are abbreviated. 0 means DefaultMaxInline.
	MaxInline int
	// Colors maps node kinds to colors. nil means the default palette.
	Colors map[NodeKind]*color.Color
}

func (cfg *Config) normalized() *Config {
	out := Config{}
	if cfg != nil {
		out = *cfg
	}
	if out.Context == nil {
		out.Context = uax11.LatinContext
	}
	if out.MaxInline <= 0 {
		out.MaxInline = DefaultMaxInline
	}
	if out.Colors == nil {
		out.Colors = makeDefaultPalette()
	}
	return &out
}

func makeDefaultPalette() map[NodeKind]*color.Color {
	return map[NodeKind]*color.Color{
		LeafNode:     color.New(color.FgGreen),
		InternalNode: color.New(color.FgBlue),
	}
}

// ConfigFromTerminal is a simple helper for creating a console Config.
// It checks whether stdout is a terminal, and if so it reads the terminal's
// width and sets Config.LineWidth accordingly. Config.Context is created from
// the user environment.
func ConfigFromTerminal() *Config {
	config := &Config{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil {
			tracer().Errorf("cannot read terminal size: %v", err)
			config.LineWidth = 80
		} else {
			config.LineWidth = w
		}
	}
	setupGraphemes()
	config.Context = uax11.ContextFromEnvironment()
	return config
}

var graphemesOnce sync.Once

func setupGraphemes() {
	graphemesOnce.Do(grapheme.SetupGraphemeClasses)
}

// Print writes the indented structural listing of a tree, one node per line:
//
//	NODE: [(150, Carol Davis) (195, Ivy Martinez)]
//	  LEAF: [(101, Alice Johnson) (110, Eva Brown) (125, Grace Lee)]
//	  …
func Print[K, V any](w io.Writer, tree *btree.Tree[K, V]) error {
	if tree == nil {
		return fmt.Errorf("display: nil tree")
	}
	return tree.Walk(func(n btree.NodeView[K, V], depth, _ int) error {
		_, err := fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat("  ", depth), kindOf(n), listEntries(n))
		return err
	})
}

// PrintVisual writes a tree as a branch-drawn diagram, headed by the tree's
// height:
//
//	Tree Height: 2
//
//	ROOT NODE: [(150, Carol Davis) (195, Ivy Martinez)]
//	├── LEAF: [(101, Alice Johnson) (110, Eva Brown) (125, Grace Lee)]
//	├── LEAF: [(175, David Wilson) (180, Henry Clark)]
//	└── LEAF: [(205, Bob Smith) (250, Jack Taylor) (300, Frank Miller)]
//
// Nodes holding more than cfg.MaxInline entries are shown as
// "[n items: first...last]". cfg may be nil.
func PrintVisual[K, V any](w io.Writer, tree *btree.Tree[K, V], cfg *Config) error {
	if tree == nil {
		return fmt.Errorf("display: nil tree")
	}
	cfg = cfg.normalized()
	setupGraphemes()
	if _, err := fmt.Fprintf(w, "Tree Height: %d\n\n", tree.Height()); err != nil {
		return err
	}
	return printVisualNode(w, tree.Root(), "", true, true, cfg)
}

func printVisualNode[K, V any](w io.Writer, n btree.NodeView[K, V], prefix string,
	isLast, isRoot bool, cfg *Config) error {
	//
	kind := kindOf(n)
	var content string
	if n.Len() <= cfg.MaxInline {
		content = listEntries(n)
	} else {
		content = fmt.Sprintf("[%d items: %v...%v]", n.Len(), n.Entry(0).Key, n.Entry(n.Len()-1).Key)
	}
	var lead string
	switch {
	case isRoot:
		lead = "ROOT "
	case isLast:
		lead = prefix + "└── "
	default:
		lead = prefix + "├── "
	}
	label := clip(kind.String()+": "+content, cfg.LineWidth-cellWidth(lead, cfg.Context), cfg.Context)
	if _, err := io.WriteString(w, lead); err != nil {
		return err
	}
	if c, ok := cfg.Colors[kind]; ok && c != nil {
		if _, err := c.Fprint(w, label); err != nil {
			return err
		}
	} else if _, err := io.WriteString(w, label); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i := 0; i < n.NumChildren(); i++ {
		last := i == n.NumChildren()-1
		if err := printVisualNode(w, n.Child(i), childPrefix, last, false, cfg); err != nil {
			return err
		}
	}
	return nil
}

func kindOf[K, V any](n btree.NodeView[K, V]) NodeKind {
	if n.IsLeaf() {
		return LeafNode
	}
	return InternalNode
}

func listEntries[K, V any](n btree.NodeView[K, V]) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		e := n.Entry(i)
		fmt.Fprintf(&b, "(%v, %v)", e.Key, e.Value)
	}
	b.WriteByte(']')
	return b.String()
}

// cellWidth measures s in fixed-width display cells.
func cellWidth(s string, context *uax11.Context) int {
	return uax11.StringWidth(grapheme.StringFromString(s), context)
}

// clip shortens s to at most width display cells, marking the cut with an
// ellipsis. A width ≤ 0 disables clipping.
func clip(s string, width int, context *uax11.Context) string {
	if width <= 0 || cellWidth(s, context) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cut := string(runes[:n]) + "…"
		if cellWidth(cut, context) <= width {
			return cut
		}
	}
	return "…"
}
