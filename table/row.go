package table

import (
	"fmt"

	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/internal/bitio"
)

// idState tracks where a row's identifier comes from.
type idState uint8

const (
	// idExplicit: the section index array supplied the identifier.
	idExplicit idState = iota
	// idInlineUnknown: the identifier is a column and has not been decoded yet.
	idInlineUnknown
	// idInlineResolved: the identifier column has been decoded at least once.
	idInlineResolved
)

// unknownID is the identifier of a row whose identifier column is not decoded yet.
const unknownID int32 = -1

// Row is one physical record. It stores where the record starts; fields are
// decoded on every Project call.
//
// A Row is not safe for concurrent use. Use Clone to get an independent copy that
// shares the record bytes and table metadata.
type Row struct {
	table        *tableData
	cursor       bitio.Cursor
	anchor       bitio.Anchor
	recordOffset int64
	index        int
	refID        int32
	id           int32
	state        idState
}

// ID returns the record identifier and whether it is known. Identifiers stored as
// a column become known after the first Project call.
func (r *Row) ID() (int32, bool) {
	if r.state == idInlineUnknown {
		return unknownID, false
	}

	return r.id, true
}

// Index returns the physical position of the row in its table.
func (r *Row) Index() int {
	return r.index
}

// ForeignKey returns the reference table value of the row, or 0.
func (r *Row) ForeignKey() int32 {
	return r.refID
}

// Clone returns an independent copy of the row.
func (r *Row) Clone() *Row {
	c := *r
	return &c
}

// Project decodes the row onto schema, writing slot i into dst[i].
//
// The slot at the header identifier index receives the record identifier. Slots past
// the last physical column receive the foreign key. Repeated calls yield the same
// values.
func (r *Row) Project(schema Schema, dst []Value) error {
	if len(dst) < len(schema) {
		return fmt.Errorf("%w: %d output slots for %d fields", errs.ErrInvalidSchema, len(dst), len(schema))
	}
	if err := schema.Validate(); err != nil {
		return err
	}

	r.cursor.Reset(r.anchor)

	// Common value lookups of inline identifier rows see the identifier only once
	// its column has been decoded in this call.
	id := r.id
	if r.state != idExplicit {
		id = unknownID
	}

	idSlot := int(r.table.header.IDFieldIndex)
	columns := len(r.table.columnMeta)
	shift := 0

	for slot, f := range schema {
		var (
			v   Value
			err error
		)

		col := slot - shift
		switch {
		case slot == idSlot && r.state == idExplicit:
			shift++
			v, err = fromInt(f, r.id)
		case slot == idSlot:
			if col >= columns {
				return fmt.Errorf("%w: identifier column %d, table has %d", errs.ErrInvalidFieldCount, col, columns)
			}
			var raw uint64
			raw, err = r.table.decodeScalar(&r.cursor, col, 0, format.TypeI32)
			if err != nil {
				break
			}
			if r.state == idInlineUnknown {
				r.id = int32(raw) //nolint: gosec
				r.state = idInlineResolved
			}
			id = r.id
			v, err = fromInt(f, r.id)
		case col >= columns:
			v, err = fromInt(f, r.refID)
		default:
			v, err = r.table.decodeField(&r.cursor, f, col, id, r.recordOffset)
		}
		if err != nil {
			return fmt.Errorf("slot %d: %w", slot, err)
		}
		dst[slot] = v
	}

	return nil
}

// Values decodes the row onto schema into a new slice.
func (r *Row) Values(schema Schema) ([]Value, error) {
	dst := make([]Value, len(schema))
	if err := r.Project(schema, dst); err != nil {
		return nil, err
	}

	return dst, nil
}
