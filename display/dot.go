package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/bindex/btree"
)

// Tree2Dot outputs the internal structure of a B-tree in Graphviz DOT format
// (for debugging purposes). Nodes are drawn as records with one field per
// key; leaves and internal nodes are filled differently.
func Tree2Dot[K, V any](tree *btree.Tree[K, V], w io.Writer) error {
	if tree == nil {
		return fmt.Errorf("display: nil tree")
	}
	var nodelist, edgelist strings.Builder
	var parents []int // parents[d] is the ID of the last node visited at depth d
	ID := 0
	err := tree.Walk(func(n btree.NodeView[K, V], depth, index int) error {
		ID++
		if depth < len(parents) {
			parents = parents[:depth]
		}
		parents = append(parents, ID)
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", ID, dotLabel(n), nodeDotStyles(n.IsLeaf()))
		if depth > 0 {
			fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\" [label=\"%d\"];\n", parents[depth-1], ID, index)
		}
		return nil
	})
	if err != nil {
		tracer().Errorf("btree DOT: %s", err.Error())
		return err
	}
	if _, err = io.WriteString(w, "strict digraph {\n"); err != nil {
		return err
	}
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	_, err = io.WriteString(w, "}\n")
	return err
}

func dotLabel[K, V any](n btree.NodeView[K, V]) string {
	if n.Len() == 0 {
		return "∅"
	}
	keys := make([]string, n.Len())
	for i := range keys {
		keys[i] = dotEscape(fmt.Sprint(n.Entry(i).Key))
	}
	return strings.Join(keys, "|")
}

func dotEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `|`, `\|`, `{`, `\{`, `}`, `\}`, `<`, `\<`, `>`, `\>`)
	return r.Replace(s)
}

func nodeDotStyles(isleaf bool) string {
	s := ",shape=record,style=filled"
	if isleaf {
		s += ",fillcolor=\"#a3d7e4\""
	} else {
		s += ",color=black,fillcolor=\"#FFCCAA\""
	}
	return s
}
