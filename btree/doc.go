/*
Package btree provides an in-memory B-tree index mapping ordered keys to values.

The tree follows the classic minimum-degree formulation: for a degree t ≥ 2
every node except the root holds between t-1 and 2t-1 entries, an internal node
with k entries has k+1 children, and all leaves are at the same depth. The
tree grows exclusively by splitting full nodes on the way down during
insertion, so it is balanced by construction.

Within a node, keys are located by binary search. For the large fan-outs used
by storage engines (degrees in the hundreds or thousands) this keeps the total
comparison cost of a lookup at O(log t · log_t n).

Supported operations are:
  - insertion with last-write-wins update of existing keys,
  - point lookup (`Search`, `SearchStats` with exact comparison counts),
  - inclusive range scan (`RangeSearch`, `AscendRange`, `Range`),
  - in-order iteration (`All`, `Ascend`),
  - read-only structural traversal for renderers (`Walk`, `NodeView`),
  - diagnostics (`Height`, `NodeCount`, `KeyCount`, `Stats`, `Check`).

Deletion is not supported. A tree is not safe for concurrent use; clients
have to serialize mutations themselves.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'bindex'
func tracer() tracing.Trace {
	return tracing.Select("bindex")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
