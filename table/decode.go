package table

import (
	"fmt"

	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/internal/bitio"
	"github.com/arloliu/wdc3/section"
)

// tableData is the immutable metadata shared by every row of a table.
type tableData struct {
	header     section.Header
	fieldMeta  []section.FieldMeta
	columnMeta []section.ColumnMeta
	pallets    [][]uint32
	commons    []map[int32]uint32
	strings    *StringTable
}

func (t *tableData) sparse() bool {
	return t.header.IsSparse()
}

// inlineWidth returns the bit width of an uncompressed column.
func (t *tableData) inlineWidth(col int) int {
	width := 32 - int(t.fieldMeta[col].Bits)
	if width <= 0 {
		width = t.columnMeta[col].BitWidth()
	}

	return width
}

func (t *tableData) palletValue(col int, idx uint64) (uint32, error) {
	pallet := t.pallets[col]
	if len(pallet) == 0 {
		return 0, fmt.Errorf("%w: column %d", errs.ErrMissingPalletData, col)
	}
	if idx >= uint64(len(pallet)) {
		return 0, fmt.Errorf("%w: column %d index %d, pallet size %d", errs.ErrPalletIndexOutOfRange, col, idx, len(pallet))
	}

	return pallet[idx], nil
}

// decodeScalar decodes column col as a scalar of type ft. id is the record
// identifier used for common value lookups.
func (t *tableData) decodeScalar(c *bitio.Cursor, col int, id int32, ft format.FieldType) (uint64, error) {
	meta := t.columnMeta[col]

	switch meta.Compression {
	case format.CompressionNone:
		raw, err := c.ReadBits(t.inlineWidth(col))
		if err != nil {
			return 0, err
		}

		return normalize(ft, raw), nil
	case format.CompressionImmediate:
		raw, err := c.ReadBits(meta.BitWidth())
		if err != nil {
			return 0, err
		}

		return normalize(ft, raw), nil
	case format.CompressionSignedImmediate:
		raw, err := c.ReadSignedBits(meta.BitWidth())
		if err != nil {
			return 0, err
		}

		return normalize(ft, uint64(raw)), nil //nolint: gosec
	case format.CompressionCommon:
		values := t.commons[col]
		if values == nil {
			return 0, fmt.Errorf("%w: column %d", errs.ErrMissingCommonData, col)
		}
		raw, ok := values[id]
		if !ok {
			raw = meta.DefaultValue()
		}

		return widen32(ft, raw), nil
	case format.CompressionPallet, format.CompressionPalletArray:
		if meta.Compression == format.CompressionPalletArray && meta.Cardinality() != 1 {
			return 0, fmt.Errorf("%w: column %d has cardinality %d", errs.ErrInvalidPalletCardinality, col, meta.Cardinality())
		}
		idx, err := c.ReadBits(meta.BitWidth())
		if err != nil {
			return 0, err
		}
		raw, err := t.palletValue(col, idx)
		if err != nil {
			return 0, err
		}

		return widen32(ft, raw), nil
	default:
		return 0, fmt.Errorf("%w: column %d uses %s", errs.ErrInvalidCompressionKind, col, meta.Compression)
	}
}

// decodeArray decodes column col as a fixed array of ft elements.
func (t *tableData) decodeArray(c *bitio.Cursor, col int, ft format.FieldType) ([]uint64, error) {
	meta := t.columnMeta[col]

	switch meta.Compression {
	case format.CompressionNone:
		width := t.inlineWidth(col)
		out := make([]uint64, int(meta.Size)/ft.Bits())
		for i := range out {
			raw, err := c.ReadBits(width)
			if err != nil {
				return nil, err
			}
			out[i] = normalize(ft, raw)
		}

		return out, nil
	case format.CompressionPalletArray:
		card := meta.Cardinality()
		if card <= 0 {
			return nil, fmt.Errorf("%w: column %d has cardinality %d", errs.ErrInvalidPalletCardinality, col, card)
		}
		idx, err := c.ReadBits(meta.BitWidth())
		if err != nil {
			return nil, err
		}
		pallet := t.pallets[col]
		if len(pallet) == 0 {
			return nil, fmt.Errorf("%w: column %d", errs.ErrMissingPalletData, col)
		}
		start := idx * uint64(card)
		if idx >= uint64(len(pallet)) || start+uint64(card) > uint64(len(pallet)) {
			return nil, fmt.Errorf("%w: column %d index %d, cardinality %d, pallet size %d",
				errs.ErrPalletIndexOutOfRange, col, idx, card, len(pallet))
		}

		out := make([]uint64, card)
		for i := range out {
			out[i] = widen32(ft, pallet[start+uint64(i)]) //nolint: gosec
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: column %d uses %s for an array", errs.ErrInvalidCompressionKind, col, meta.Compression)
	}
}

// decodeString resolves a string column. Sparse records store strings inline;
// dense records store an offset relative to the field position.
func (t *tableData) decodeString(c *bitio.Cursor, col int, id int32, recordOffset int64) (string, error) {
	if t.sparse() {
		return c.ReadCString()
	}

	pos := c.BytePos()
	raw, err := t.decodeScalar(c, col, id, format.TypeI32)
	if err != nil {
		return "", err
	}

	return t.lookupString(col, recordOffset+int64(pos)+int64(int32(raw))) //nolint: gosec
}

// decodeStringArray resolves an uncompressed dense string array. Each element
// offset is relative to its own position.
func (t *tableData) decodeStringArray(c *bitio.Cursor, col int, recordOffset int64) ([]string, error) {
	meta := t.columnMeta[col]
	if t.sparse() {
		return nil, fmt.Errorf("%w: column %d is a string array in a sparse table", errs.ErrInvalidCompressionKind, col)
	}
	if meta.Compression != format.CompressionNone {
		return nil, fmt.Errorf("%w: column %d uses %s for a string array", errs.ErrInvalidCompressionKind, col, meta.Compression)
	}

	width := t.inlineWidth(col)
	out := make([]string, int(meta.Size)/32)
	for i := range out {
		pos := c.BytePos()
		raw, err := c.ReadBits(width)
		if err != nil {
			return nil, err
		}
		s, err := t.lookupString(col, recordOffset+int64(pos)+int64(int32(raw))) //nolint: gosec
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

func (t *tableData) lookupString(col int, offset int64) (string, error) {
	s, ok := t.strings.Lookup(offset)
	if !ok {
		return "", fmt.Errorf("%w: column %d offset %d", errs.ErrStringNotFound, col, offset)
	}

	return s, nil
}

// decodeField dispatches a schema slot to the decoder for its shape.
func (t *tableData) decodeField(c *bitio.Cursor, f Field, col int, id int32, recordOffset int64) (Value, error) {
	v := Value{Type: f.Type, Array: f.Array}

	var err error
	switch {
	case f.Type == format.TypeString && f.Array:
		v.strs, err = t.decodeStringArray(c, col, recordOffset)
	case f.Type == format.TypeString:
		v.str, err = t.decodeString(c, col, id, recordOffset)
	case !f.Type.IsNumeric():
		err = fmt.Errorf("%w: %d", errs.ErrUnknownFieldType, f.Type)
	case f.Array:
		v.elems, err = t.decodeArray(c, col, f.Type)
	default:
		v.bits, err = t.decodeScalar(c, col, id, f.Type)
	}
	if err != nil {
		return Value{}, err
	}

	return v, nil
}
