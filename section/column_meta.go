package section

import (
	"github.com/arloliu/wdc3/endian"
	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
)

// FieldMeta is the per-field entry of the field metadata block.
//
// Bits is stored as 32 minus the field width, so an inline width of 32-Bits bits.
// A value of -32 denotes a 64 bit field.
type FieldMeta struct {
	Bits   int16
	Offset int16
}

// ParseFieldMeta parses a FieldMeta from data.
func ParseFieldMeta(data []byte) (FieldMeta, error) {
	if len(data) < FieldMetaSize {
		return FieldMeta{}, errs.ErrTruncatedData
	}

	engine := endian.GetLittleEndianEngine()

	return FieldMeta{
		Bits:   int16(engine.Uint16(data[0:2])), //nolint: gosec
		Offset: int16(engine.Uint16(data[2:4])), //nolint: gosec
	}, nil
}

// Append appends the wire form of the field meta to b.
func (f FieldMeta) Append(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = engine.AppendUint16(b, uint16(f.Bits))   //nolint: gosec
	b = engine.AppendUint16(b, uint16(f.Offset)) //nolint: gosec

	return b
}

// ColumnMeta describes the storage of one column (24 bytes on disk).
//
// The trailing three words are interpreted by compression kind:
//
//	Immediate, SignedImmediate: bit offset, bit width, flags
//	Pallet, PalletArray:        bit offset, bit width, cardinality
//	Common:                     default value, unused, unused
type ColumnMeta struct {
	RecordOffset       uint16 // bit offset of the column inside the record
	Size               uint16 // column size in bits
	AdditionalDataSize uint32 // pallet or common block size in bytes
	Compression        format.CompressionType
	Words              [3]uint32
}

// ParseColumnMeta parses a ColumnMeta from data.
func ParseColumnMeta(data []byte) (ColumnMeta, error) {
	if len(data) < ColumnMetaSize {
		return ColumnMeta{}, errs.ErrTruncatedData
	}

	engine := endian.GetLittleEndianEngine()

	return ColumnMeta{
		RecordOffset:       engine.Uint16(data[0:2]),
		Size:               engine.Uint16(data[2:4]),
		AdditionalDataSize: engine.Uint32(data[4:8]),
		Compression:        format.CompressionType(engine.Uint32(data[8:12])),
		Words: [3]uint32{
			engine.Uint32(data[12:16]),
			engine.Uint32(data[16:20]),
			engine.Uint32(data[20:24]),
		},
	}, nil
}

// Append appends the wire form of the column meta to b.
func (c ColumnMeta) Append(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = engine.AppendUint16(b, c.RecordOffset)
	b = engine.AppendUint16(b, c.Size)
	b = engine.AppendUint32(b, c.AdditionalDataSize)
	b = engine.AppendUint32(b, uint32(c.Compression))
	for _, w := range c.Words {
		b = engine.AppendUint32(b, w)
	}

	return b
}

// BitWidth returns the packed width for immediate and pallet columns.
func (c ColumnMeta) BitWidth() int {
	return int(c.Words[1])
}

// Cardinality returns the element count of pallet array columns.
func (c ColumnMeta) Cardinality() int {
	return int(c.Words[2])
}

// DefaultValue returns the raw default of a common column.
func (c ColumnMeta) DefaultValue() uint32 {
	return c.Words[0]
}
