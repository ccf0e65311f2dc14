// Package table loads WDC3 tables and decodes their records.
//
// A table is parsed once, completely, by Load or Read. Loading builds one Row per
// physical record; a Row only stores where its record starts. Field values are
// decoded on demand by projecting a Row onto a caller supplied Schema:
//
//	tbl, err := table.Load(data)
//	if err != nil {
//	    return err
//	}
//	schema, _ := table.ParseSchema("i32 string u16 f32[]")
//	values := make([]table.Value, len(schema))
//	for _, row := range tbl.Rows() {
//	    if err := row.Project(schema, values); err != nil {
//	        return err
//	    }
//	}
//
// Schema slot IDFieldIndex of the header receives the record identifier, either
// from the section index array or decoded from its column. Slots past the last
// physical column receive the row's foreign key.
//
// Column values are stored in one of six compression kinds: None, Immediate,
// SignedImmediate, Common, Pallet and PalletArray. Dense tables store strings in a
// shared string table referenced by offset; sparse tables store them inline.
//
// The table and its metadata are immutable after load. A Row keeps a bit cursor
// and is not safe for concurrent use; Clone it for each goroutine.
package table
