/*
Package display renders the structure of B-tree indexes for humans.

Renderers only read a tree, through btree.Tree.Walk; they never mutate it.
Supported formats are an indented listing and a branch-drawn console view
(both optionally colored), Graphviz DOT, and nested HTML lists.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package display

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bindex'
func tracer() tracing.Trace {
	return tracing.Select("bindex")
}
