/*
Package bindex offers named, B-tree indexed tables of ordered keys and values.

Indexes

A database table is, at its core, an ordered index from row keys to row
payloads. Storage engines keep these indexes as B-trees: wide, shallow search
trees whose nodes map naturally onto disk pages, so that a lookup touches only
a handful of pages even for very large tables.

Package bindex is a thin table layer over package btree. A Database maps table
names to tables, and every table owns exactly one B-tree index. Operations are
named after the SQL statements they resemble:

	INSERT INTO t VALUES (k, v)             →  db.Insert("t", k, v)
	SELECT * FROM t WHERE id = k            →  db.Select("t", k)
	SELECT * FROM t WHERE id BETWEEN a AND b →  db.SelectRange("t", a, b)

Inserting an existing key replaces the row's payload. Rows cannot be deleted.

Neither a database nor its tables are safe for concurrent mutation. Clients
which share a database between goroutines have to serialize all writes, and
may read concurrently only while no write is in flight.

Persistence, transactions and secondary indexes are not provided.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.

*/
package bindex

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// IndexError is an error type for the bindex module
type IndexError string

func (e IndexError) Error() string {
	return string(e)
}

// ErrNoSuchTable is flagged whenever a table name is not known to a database.
const ErrNoSuchTable = IndexError("no such table")

// ErrTableExists is flagged when creating a table under a name already in use.
const ErrTableExists = IndexError("table already exists")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = IndexError("illegal arguments")
