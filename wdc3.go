// Package wdc3 decodes WDC3 game-data tables.
//
// A WDC3 file holds one table: a header describing the record layout, per-column
// compression metadata, pallet and common value side tables, and one or more
// sections of records. Records are either dense (fixed stride, strings in a shared
// string table) or sparse (variable length, strings inline).
//
// # Basic Usage
//
// Loading a table and decoding its rows:
//
//	import "github.com/arloliu/wdc3"
//
//	tbl, err := wdc3.OpenFile("Map.db2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	schema, _ := table.ParseSchema("i32 string string u8 i16[]")
//	for _, row := range tbl.Rows() {
//	    values, err := row.Values(schema)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(values)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the table package. For
// section metadata, identifier lookups and concurrent decoding, use the table
// package directly.
package wdc3

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/wdc3/table"
)

// Open loads a table from r.
//
// Available options:
//   - table.WithLogger(log.Logger)
//   - table.WithSourceCompression(format.SourceNone|SourceZstd|SourceS2|SourceLZ4)
//   - table.WithLegacyQuirks(true|false)
//
// Example:
//
//	tbl, err := wdc3.Open(resp.Body, table.WithSourceCompression(format.SourceZstd))
func Open(r io.Reader, opts ...table.Option) (*table.Table, error) {
	return table.Read(r, opts...)
}

// OpenBytes loads a table from data. The returned table does not reference data.
func OpenBytes(data []byte, opts ...table.Option) (*table.Table, error) {
	return table.Load(data, opts...)
}

// OpenFile loads a table from the file at path.
func OpenFile(path string, opts ...table.Option) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := table.Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tbl, nil
}
