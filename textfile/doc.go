/*
Package textfile bulk-loads text files of records into B-tree indexes.

A record file holds one record per line, a key and a value separated by a
tab or a comma:

	# id	name
	101	Alice Johnson
	205	Bob Smith

Lines starting with '#' and blank lines are skipped. Lines may be up to
MaxLineLength bytes long. Clients interested in
the progress of long-running loads subscribe to a Loader before calling Load.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bindex'
func tracer() tracing.Trace {
	return tracing.Select("bindex")
}
