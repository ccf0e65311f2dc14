package section

import (
	"github.com/arloliu/wdc3/endian"
	"github.com/arloliu/wdc3/errs"
)

// SparseEntry addresses one variable length record in a sparse section.
type SparseEntry struct {
	Offset uint32
	Size   uint16
}

// ParseSparseEntry parses a SparseEntry from data.
func ParseSparseEntry(data []byte) (SparseEntry, error) {
	if len(data) < SparseEntrySize {
		return SparseEntry{}, errs.ErrTruncatedData
	}

	engine := endian.GetLittleEndianEngine()

	return SparseEntry{
		Offset: engine.Uint32(data[0:4]),
		Size:   engine.Uint16(data[4:6]),
	}, nil
}

// Append appends the wire form of the entry to b.
func (e SparseEntry) Append(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = engine.AppendUint32(b, e.Offset)
	b = engine.AppendUint16(b, e.Size)

	return b
}

// ReferenceEntry maps a record slot to a foreign identifier.
type ReferenceEntry struct {
	ID    int32
	Index int32
}

// ParseReferenceEntry parses a ReferenceEntry from data.
func ParseReferenceEntry(data []byte) (ReferenceEntry, error) {
	if len(data) < ReferenceEntrySize {
		return ReferenceEntry{}, errs.ErrTruncatedData
	}

	engine := endian.GetLittleEndianEngine()

	return ReferenceEntry{
		ID:    int32(engine.Uint32(data[0:4])), //nolint: gosec
		Index: int32(engine.Uint32(data[4:8])), //nolint: gosec
	}, nil
}

// Append appends the wire form of the entry to b.
func (e ReferenceEntry) Append(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = engine.AppendUint32(b, uint32(e.ID))    //nolint: gosec
	b = engine.AppendUint32(b, uint32(e.Index)) //nolint: gosec

	return b
}
