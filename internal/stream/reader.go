// Package stream provides a little-endian sequential reader over resident bytes.
package stream

import (
	"fmt"

	"github.com/arloliu/wdc3/endian"
	"github.com/arloliu/wdc3/errs"
)

// Reader reads fixed-width little-endian values from a byte slice.
//
// Every read advances the position. Reads past the end return errs.ErrTruncatedData
// and leave the position unchanged.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReader creates a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Pos returns the current byte position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Seek moves to an absolute byte position.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return fmt.Errorf("%w: position %d, length %d", errs.ErrInvalidSeek, pos, len(r.data))
	}
	r.pos = pos

	return nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	return r.Seek(r.pos + n)
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, fmt.Errorf("%w: need %d bytes at %d, have %d", errs.ErrTruncatedData, n, r.pos, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()

	return int32(v), err //nolint: gosec
}

// Bytes reads n bytes into a newly allocated slice with extra zeroed capacity
// of pad bytes appended to its length.
func (r *Reader) Bytes(n, pad int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n+pad)
	copy(out, b)

	return out, nil
}

// Slice returns the next n bytes without copying.
func (r *Reader) Slice(n int) ([]byte, error) {
	return r.take(n)
}

// Int32s reads count little-endian int32 values.
func (r *Reader) Int32s(count int) ([]int32, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", errs.ErrTruncatedData, count)
	}
	b, err := r.take(count * 4)
	if err != nil {
		return nil, err
	}

	out := make([]int32, count)
	for i := range out {
		out[i] = int32(r.engine.Uint32(b[i*4:])) //nolint: gosec
	}

	return out, nil
}

// Uint32s reads count little-endian uint32 values.
func (r *Reader) Uint32s(count int) ([]uint32, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", errs.ErrTruncatedData, count)
	}
	b, err := r.take(count * 4)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, count)
	for i := range out {
		out[i] = r.engine.Uint32(b[i*4:])
	}

	return out, nil
}
