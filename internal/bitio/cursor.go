// Package bitio implements the bit cursor used to decode bit-packed records.
//
// Bits are consumed LSB-first from little-endian bytes: a value of width n at bit
// position p is bits [p, p+n) of the little-endian integer starting at the record
// base offset.
package bitio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/arloliu/wdc3/errs"
)

// Anchor is the start of a record: a byte base offset and a bit position relative to it.
type Anchor struct {
	Offset int
	Pos    int
}

// Cursor reads bit fields from a shared byte buffer.
//
// Cursor is a small value type. Copying a Cursor yields an independent position over
// the same buffer; the buffer itself is never written.
type Cursor struct {
	data   []byte
	offset int // record base, in bytes
	pos    int // position relative to offset, in bits
}

// NewCursor creates a cursor over data positioned at anchor.
func NewCursor(data []byte, anchor Anchor) Cursor {
	return Cursor{data: data, offset: anchor.Offset, pos: anchor.Pos}
}

// Reset moves the cursor back to anchor.
func (c *Cursor) Reset(anchor Anchor) {
	c.offset = anchor.Offset
	c.pos = anchor.Pos
}

// Pos returns the bit position relative to the base offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// BytePos returns the byte position relative to the base offset, rounded down.
func (c *Cursor) BytePos() int {
	return c.pos >> 3
}

// ReadBits reads n (0-64) bits as an unsigned value.
func (c *Cursor) ReadBits(n int) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, n)
	}

	start := c.offset + c.pos>>3
	shift := uint(c.pos & 7)
	nbytes := (int(shift) + n + 7) >> 3
	if start < 0 || start+nbytes > len(c.data) {
		return 0, fmt.Errorf("%w: %d bits at byte %d bit %d, buffer %d bytes",
			errs.ErrTruncatedData, n, start, shift, len(c.data))
	}

	var v uint64
	if start+8 <= len(c.data) {
		v = binary.LittleEndian.Uint64(c.data[start:])
	} else {
		for i := 0; i < nbytes && i < 8; i++ {
			v |= uint64(c.data[start+i]) << (8 * i)
		}
	}
	v >>= shift
	// A 64 bit read at a non-zero bit shift spans a ninth byte.
	if nbytes > 8 {
		v |= uint64(c.data[start+8]) << (64 - shift)
	}
	if n < 64 {
		v &= (uint64(1) << n) - 1
	}
	c.pos += n

	return v, nil
}

// ReadSignedBits reads n (1-64) bits and sign-extends bit n-1 to 64 bits.
func (c *Cursor) ReadSignedBits(n int) (int64, error) {
	v, err := c.ReadBits(n)
	if err != nil || n == 0 {
		return 0, err
	}
	sign := uint64(1) << (n - 1)

	return int64((v ^ sign) - sign), nil //nolint: gosec
}

// ReadCString reads a null-terminated string starting at the current byte
// position and advances past the terminator.
func (c *Cursor) ReadCString() (string, error) {
	start := c.offset + c.pos>>3
	if start < 0 || start > len(c.data) {
		return "", fmt.Errorf("%w: string at byte %d", errs.ErrTruncatedData, start)
	}
	end := bytes.IndexByte(c.data[start:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at byte %d", errs.ErrTruncatedData, start)
	}
	c.pos += (end + 1) * 8

	return string(c.data[start : start+end]), nil
}
