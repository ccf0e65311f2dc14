package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
	"github.com/arloliu/wdc3/section"
)

func mustLoad(t *testing.T, f *testFile, opts ...Option) *Table {
	t.Helper()

	tbl, err := Load(f.bytes(), opts...)
	require.NoError(t, err)

	return tbl
}

func mustValues(t *testing.T, tbl *Table, row int, schema Schema) []Value {
	t.Helper()

	r, ok := tbl.RowAt(row)
	require.True(t, ok)
	values, err := r.Values(schema)
	require.NoError(t, err)

	return values
}

// allKindsFile has one column per compression kind and explicit ids 10 and 11.
func allKindsFile() *testFile {
	columns := []testColumn{
		noneColumn(16, 16),
		immediateColumn(format.CompressionImmediate, 5),
		immediateColumn(format.CompressionSignedImmediate, 6),
		commonColumn(7, commonPair{id: 10, value: 99}),
		palletColumn(format.CompressionPallet, 2, 0, 100, 200, 300, 0xFFFFFFFF),
		palletColumn(format.CompressionPalletArray, 2, 1, 5, 6, 7),
		palletColumn(format.CompressionPalletArray, 1, 3, 1, 2, 3, 4, 5, 6),
	}
	row0 := new(bitWriter).write(0xBEEF, 16).write(31, 5).write(0b111011, 6).write(3, 2).write(2, 2).write(1, 1).bytes(4)
	row1 := new(bitWriter).write(1, 16).write(0, 5).write(31, 6).write(0, 2).write(0, 2).write(0, 1).bytes(4)

	return newTestFile(4, columns...).add(testSection{
		records: [][]byte{row0, row1},
		index:   []int32{10, 11},
	})
}

func TestDecode_CompressionKinds(t *testing.T) {
	tbl := mustLoad(t, allKindsFile())
	require.Equal(t, 2, tbl.Len())

	schema := Schema{
		Scalar(format.TypeI32),
		Scalar(format.TypeU16),
		Scalar(format.TypeU8),
		Scalar(format.TypeI8),
		Scalar(format.TypeU32),
		Scalar(format.TypeU32),
		Scalar(format.TypeU32),
		ArrayOf(format.TypeU32),
	}

	t.Run("First record", func(t *testing.T) {
		v := mustValues(t, tbl, 0, schema)
		require.Equal(t, int64(10), v[0].Int64())
		require.Equal(t, uint64(0xBEEF), v[1].Uint64())
		require.Equal(t, uint64(31), v[2].Uint64())
		require.Equal(t, int64(-5), v[3].Int64())
		require.Equal(t, uint64(99), v[4].Uint64(), "common value for id 10")
		require.Equal(t, uint64(0xFFFFFFFF), v[5].Uint64())
		require.Equal(t, uint64(7), v[6].Uint64())
		require.Equal(t, []uint32{4, 5, 6}, v[7].Any())
	})

	t.Run("Second record", func(t *testing.T) {
		v := mustValues(t, tbl, 1, schema)
		require.Equal(t, int64(11), v[0].Int64())
		require.Equal(t, uint64(1), v[1].Uint64())
		require.Equal(t, uint64(0), v[2].Uint64())
		require.Equal(t, int64(31), v[3].Int64())
		require.Equal(t, uint64(7), v[4].Uint64(), "common default")
		require.Equal(t, uint64(100), v[5].Uint64())
		require.Equal(t, uint64(5), v[6].Uint64())
		require.Equal(t, []uint32{1, 2, 3}, v[7].Any())
	})

	t.Run("Wider and signed targets", func(t *testing.T) {
		wide := Schema{
			Scalar(format.TypeI32),
			Scalar(format.TypeI32),
			Scalar(format.TypeU64),
			Scalar(format.TypeI16),
			Scalar(format.TypeI64),
			Scalar(format.TypeI64),
			Scalar(format.TypeU64),
			ArrayOf(format.TypeI8),
		}
		v := mustValues(t, tbl, 0, wide)
		require.Equal(t, int32(0xBEEF), v[1].Any())
		require.Equal(t, uint64(31), v[2].Any())
		require.Equal(t, int16(-5), v[3].Any())
		require.Equal(t, int64(99), v[4].Any())
		require.Equal(t, int64(-1), v[5].Any(), "pallet value sign-extends from int32")
		require.Equal(t, uint64(7), v[6].Any())
		require.Equal(t, []int8{4, 5, 6}, v[7].Any())
	})

	t.Run("Narrower targets truncate", func(t *testing.T) {
		v := mustValues(t, tbl, 0, Schema{Scalar(format.TypeI32), Scalar(format.TypeU8)})
		require.Equal(t, uint8(0xEF), v[1].Any())

		v = mustValues(t, tbl, 0, Schema{Scalar(format.TypeI32), Scalar(format.TypeI8)})
		require.Equal(t, int8(-17), v[1].Any())
	})
}

func TestDecode_UncompressedWidths(t *testing.T) {
	fallback := testColumn{
		fieldBits: 32,
		meta: section.ColumnMeta{
			Size:        16,
			Compression: format.CompressionNone,
			Words:       [3]uint32{0, 12, 0},
		},
	}
	f := newTestFile(14, noneColumn(64, 64), noneColumn(32, 32), fallback).add(testSection{
		records: [][]byte{
			new(bitWriter).
				write(0x0123456789ABCDEF, 64).
				write(uint64(math.Float32bits(1.5)), 32).
				write(0xABC, 12).
				bytes(14),
		},
		index: []int32{1},
	})
	tbl := mustLoad(t, f)

	v := mustValues(t, tbl, 0, Schema{
		Scalar(format.TypeI32),
		Scalar(format.TypeU64),
		Scalar(format.TypeF32),
		Scalar(format.TypeU16),
	})
	require.Equal(t, uint64(0x0123456789ABCDEF), v[1].Uint64())
	require.Equal(t, float32(1.5), v[2].Float32())
	require.Equal(t, uint64(0xABC), v[3].Uint64(), "falls back to the column bit width")
}

func TestDecode_Errors(t *testing.T) {
	t.Run("Pallet index out of range", func(t *testing.T) {
		f := newTestFile(1, palletColumn(format.CompressionPallet, 2, 0, 1, 2)).add(testSection{
			records: [][]byte{new(bitWriter).write(3, 2).bytes(1)},
			index:   []int32{1},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeI32), Scalar(format.TypeU32)})
		require.ErrorIs(t, err, errs.ErrPalletIndexOutOfRange)
		require.ErrorIs(t, err, errs.ErrCorruptFile)
	})

	t.Run("Pallet array index out of range", func(t *testing.T) {
		f := newTestFile(1, palletColumn(format.CompressionPalletArray, 2, 2, 1, 2, 3, 4)).add(testSection{
			records: [][]byte{new(bitWriter).write(2, 2).bytes(1)},
			index:   []int32{1},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeI32), ArrayOf(format.TypeU32)})
		require.ErrorIs(t, err, errs.ErrPalletIndexOutOfRange)
	})

	t.Run("Array of immediate column", func(t *testing.T) {
		f := newTestFile(1, immediateColumn(format.CompressionImmediate, 8)).add(testSection{
			records: [][]byte{{0x01}},
			index:   []int32{1},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeI32), ArrayOf(format.TypeU8)})
		require.ErrorIs(t, err, errs.ErrInvalidCompressionKind)
		require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
	})

	t.Run("Scalar of pallet array with cardinality above one", func(t *testing.T) {
		f := newTestFile(1, palletColumn(format.CompressionPalletArray, 1, 2, 1, 2)).add(testSection{
			records: [][]byte{{0x00}},
			index:   []int32{1},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeI32), Scalar(format.TypeU32)})
		require.ErrorIs(t, err, errs.ErrInvalidPalletCardinality)
		require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
	})

	t.Run("Unknown compression kind", func(t *testing.T) {
		col := immediateColumn(format.CompressionType(9), 8)
		f := newTestFile(1, col).add(testSection{
			records: [][]byte{{0x01}},
			index:   []int32{1},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeI32), Scalar(format.TypeU8)})
		require.ErrorIs(t, err, errs.ErrInvalidCompressionKind)
	})

	t.Run("String offset not in table", func(t *testing.T) {
		f := newTestFile(4, noneColumn(32, 32)).add(testSection{
			records: [][]byte{new(bitWriter).write(stringRef(3, 0, 1, 4, 0), 32).bytes(4)},
			strings: []byte("abc\x00"),
			index:   []int32{1},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeI32), Scalar(format.TypeString)})
		require.ErrorIs(t, err, errs.ErrStringNotFound)
		require.ErrorIs(t, err, errs.ErrCorruptFile)
	})

	t.Run("Record shorter than the schema", func(t *testing.T) {
		f := newTestFile(1, noneColumn(64, 64)).sparse().add(testSection{
			records: [][]byte{{0x01, 0x02}},
		})
		r, _ := mustLoad(t, f).RowAt(0)

		_, err := r.Values(Schema{Scalar(format.TypeU64)})
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})
}
