package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wdc3/errs"
)

func TestReader_FixedWidth(t *testing.T) {
	data := []byte{
		// uint32
		0x04, 0x03, 0x02, 0x01,
		// int32 -1
		0xFF, 0xFF, 0xFF, 0xFF,
	}
	r := NewReader(data)

	u32, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), u32)

	i32, err := r.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(-1), i32)

	require.Equal(t, 0, r.Remaining())
	_, err = r.Uint32()
	require.ErrorIs(t, err, errs.ErrTruncatedData)
	require.Equal(t, len(data), r.Pos())
}

func TestReader_Arrays(t *testing.T) {
	data := []byte{1, 0, 0, 0, 0xFE, 0xFF, 0xFF, 0xFF, 3, 0, 0, 0}

	r := NewReader(data)
	ints, err := r.Int32s(3)
	require.NoError(t, err)
	require.Equal(t, []int32{1, -2, 3}, ints)

	require.NoError(t, r.Seek(0))
	uints, err := r.Uint32s(2)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 0xFFFFFFFE}, uints)

	_, err = r.Int32s(2)
	require.ErrorIs(t, err, errs.ErrTruncatedData)
	require.Equal(t, 8, r.Pos())
}

func TestReader_BytesPadding(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})

	b, err := r.Bytes(3, 8)
	require.NoError(t, err)
	require.Len(t, b, 11)
	require.Equal(t, []byte{1, 2, 3}, b[:3])
	require.Equal(t, make([]byte, 8), b[3:])

	// The copy must not alias the source.
	b[0] = 9
	require.NoError(t, r.Seek(0))
	src, err := r.Slice(1)
	require.NoError(t, err)
	require.Equal(t, byte(1), src[0])
}

func TestReader_Seek(t *testing.T) {
	r := NewReader(make([]byte, 10))

	require.NoError(t, r.Seek(10))
	require.ErrorIs(t, r.Seek(11), errs.ErrInvalidSeek)
	require.ErrorIs(t, r.Seek(-1), errs.ErrInvalidSeek)
	require.NoError(t, r.Seek(2))
	require.NoError(t, r.Skip(3))
	require.Equal(t, 5, r.Pos())
	require.ErrorIs(t, r.Skip(6), errs.ErrCorruptFile)
}
