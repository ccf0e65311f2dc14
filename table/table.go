package table

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/arloliu/wdc3/internal/collision"
	"github.com/arloliu/wdc3/section"
)

// SectionInfo summarizes one physical section of a loaded table.
type SectionInfo struct {
	Header section.SectionHeader
	// Encrypted is set when the section was skipped because its key is unknown and
	// its record bytes are zero.
	Encrypted bool
	// FirstRow is the index of the first row of the section in the table.
	FirstRow int
	RowCount int
	// ForeignKeys maps a record slot within the section to its reference id.
	ForeignKeys map[int]int32
	// Checksum is the xxHash64 of the raw record bytes.
	Checksum uint64
}

// Table is a loaded WDC3 table.
//
// The row collection and all metadata are read-only after load and may be shared
// between goroutines. Individual rows may not; see Row.
type Table struct {
	data     *tableData
	rows     []*Row
	ids      *collision.Tracker
	copies   map[int32]int32
	sections []SectionInfo
}

// Header returns the file header.
func (t *Table) Header() section.Header {
	return t.data.header
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// RowAt returns the row at physical position i.
func (t *Table) RowAt(i int) (*Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}

	return t.rows[i], true
}

// Rows iterates rows in physical order.
func (t *Table) Rows() iter.Seq2[int, *Row] {
	return func(yield func(int, *Row) bool) {
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// RowByID returns the row with identifier id. Rows whose identifier is stored as a
// column are found only after ResolveIDs.
func (t *Table) RowByID(id int32) (*Row, bool) {
	i, ok := t.ids.Lookup(id)
	if !ok {
		return nil, false
	}

	return t.rows[i], true
}

// ResolveIDs projects every row with an undecoded identifier onto schema so that it
// becomes addressable by RowByID. It mutates rows and must not run concurrently
// with other use of the table.
func (t *Table) ResolveIDs(schema Schema) error {
	dst := make([]Value, len(schema))
	for i, r := range t.rows {
		if _, known := r.ID(); !known {
			if err := r.Project(schema, dst); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		if id, known := r.ID(); known {
			t.ids.Track(id, i)
		}
	}

	return nil
}

// DuplicateIDs returns how many rows carry an identifier already used by an
// earlier row. Such rows are reachable by position only.
func (t *Table) DuplicateIDs() int {
	return t.ids.Collisions()
}

// DuplicateRows returns the copy table: each key is an identifier whose values are
// those of the row with the mapped identifier.
func (t *Table) DuplicateRows() map[int32]int32 {
	return maps.Clone(t.copies)
}

// Sections returns the per-section summaries in file order.
func (t *Table) Sections() []SectionInfo {
	return slices.Clone(t.sections)
}

// FieldMeta returns the per-column field metadata.
func (t *Table) FieldMeta() []section.FieldMeta {
	return slices.Clone(t.data.fieldMeta)
}

// ColumnMeta returns the per-column compression metadata.
func (t *Table) ColumnMeta() []section.ColumnMeta {
	return slices.Clone(t.data.columnMeta)
}

// Pallet returns the pallet values of column col, or nil.
func (t *Table) Pallet(col int) []uint32 {
	if col < 0 || col >= len(t.data.pallets) {
		return nil
	}

	return slices.Clone(t.data.pallets[col])
}

// StringTable returns the dense string table.
func (t *Table) StringTable() *StringTable {
	return t.data.strings
}
