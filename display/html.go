package display

import (
	"fmt"
	"io"

	"github.com/npillmayer/bindex/btree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree2HTML renders a B-tree as nested HTML lists:
//
//	<div class="btree">
//	  <ul><li><span class="node">150 195</span><ul>…children…</ul></li></ul>
//	</div>
//
// Each node becomes a list item holding a span of its keys, classed "node"
// or "leaf"; the children of an internal node form a nested list. Values are
// attached as title attributes of per-key spans.
func Tree2HTML[K, V any](tree *btree.Tree[K, V], w io.Writer) error {
	if tree == nil {
		return fmt.Errorf("display: nil tree")
	}
	root := element(atom.Div, "btree")
	lists := []*html.Node{element(atom.Ul, "")}
	root.AppendChild(lists[0])
	err := tree.Walk(func(n btree.NodeView[K, V], depth, _ int) error {
		li := element(atom.Li, "")
		li.AppendChild(htmlKeys(n))
		lists[depth].AppendChild(li)
		if !n.IsLeaf() {
			ul := element(atom.Ul, "")
			li.AppendChild(ul)
			lists = append(lists[:depth+1], ul)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return html.Render(w, root)
}

func htmlKeys[K, V any](n btree.NodeView[K, V]) *html.Node {
	class := "node"
	if n.IsLeaf() {
		class = "leaf"
	}
	span := element(atom.Span, class)
	for i := 0; i < n.Len(); i++ {
		e := n.Entry(i)
		key := element(atom.Span, "key")
		key.Attr = append(key.Attr, html.Attribute{Key: "title", Val: fmt.Sprint(e.Value)})
		key.AppendChild(&html.Node{Type: html.TextNode, Data: fmt.Sprint(e.Key)})
		if i > 0 {
			span.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
		}
		span.AppendChild(key)
	}
	return span
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}
