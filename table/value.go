package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
)

// Value is one decoded schema slot.
//
// Numeric values are stored as 64 raw bits already narrowed to the slot type: signed
// types are sign-extended, F32 keeps its IEEE-754 bits in the low 32 bits.
type Value struct {
	Type  format.FieldType
	Array bool

	bits  uint64
	str   string
	elems []uint64
	strs  []string
}

// Uint64 returns an unsigned scalar. Signed values are returned as their two's
// complement bit pattern.
func (v Value) Uint64() uint64 {
	return v.bits
}

// Int64 returns a signed scalar.
func (v Value) Int64() int64 {
	return int64(v.bits) //nolint: gosec
}

// Float32 returns an F32 scalar.
func (v Value) Float32() float32 {
	return math.Float32frombits(uint32(v.bits)) //nolint: gosec
}

// Text returns a string scalar.
func (v Value) Text() string {
	return v.str
}

// Len returns the number of array elements, or 0 for scalars.
func (v Value) Len() int {
	if v.Type == format.TypeString {
		return len(v.strs)
	}

	return len(v.elems)
}

// UintAt returns array element i as an unsigned value.
func (v Value) UintAt(i int) uint64 {
	return v.elems[i]
}

// IntAt returns array element i as a signed value.
func (v Value) IntAt(i int) int64 {
	return int64(v.elems[i]) //nolint: gosec
}

// FloatAt returns array element i as an F32 value.
func (v Value) FloatAt(i int) float32 {
	return math.Float32frombits(uint32(v.elems[i])) //nolint: gosec
}

// TextAt returns string array element i.
func (v Value) TextAt(i int) string {
	return v.strs[i]
}

// Strings returns the elements of a string array. The slice must not be modified.
func (v Value) Strings() []string {
	return v.strs
}

// Any returns the value as the Go type matching its slot: uint8 through float32,
// string, or a slice of those for arrays.
func (v Value) Any() any {
	if !v.Array {
		return scalarAny(v.Type, v.bits, v.str)
	}

	switch v.Type {
	case format.TypeString:
		return v.strs
	case format.TypeU8:
		return convertElems(v.elems, func(b uint64) uint8 { return uint8(b) }) //nolint: gosec
	case format.TypeI8:
		return convertElems(v.elems, func(b uint64) int8 { return int8(b) }) //nolint: gosec
	case format.TypeU16:
		return convertElems(v.elems, func(b uint64) uint16 { return uint16(b) }) //nolint: gosec
	case format.TypeI16:
		return convertElems(v.elems, func(b uint64) int16 { return int16(b) }) //nolint: gosec
	case format.TypeU32:
		return convertElems(v.elems, func(b uint64) uint32 { return uint32(b) }) //nolint: gosec
	case format.TypeI32:
		return convertElems(v.elems, func(b uint64) int32 { return int32(b) }) //nolint: gosec
	case format.TypeU64:
		return convertElems(v.elems, func(b uint64) uint64 { return b })
	case format.TypeI64:
		return convertElems(v.elems, func(b uint64) int64 { return int64(b) }) //nolint: gosec
	case format.TypeF32:
		return convertElems(v.elems, func(b uint64) float32 { return math.Float32frombits(uint32(b)) }) //nolint: gosec
	default:
		return nil
	}
}

func (v Value) String() string {
	if !v.Array {
		return formatScalar(v.Type, v.bits, v.str)
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i := range v.Len() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if v.Type == format.TypeString {
			sb.WriteString(strconv.Quote(v.strs[i]))
		} else {
			sb.WriteString(formatScalar(v.Type, v.elems[i], ""))
		}
	}
	sb.WriteByte(']')

	return sb.String()
}

func scalarAny(t format.FieldType, bits uint64, str string) any {
	switch t {
	case format.TypeU8:
		return uint8(bits) //nolint: gosec
	case format.TypeI8:
		return int8(bits) //nolint: gosec
	case format.TypeU16:
		return uint16(bits) //nolint: gosec
	case format.TypeI16:
		return int16(bits) //nolint: gosec
	case format.TypeU32:
		return uint32(bits) //nolint: gosec
	case format.TypeI32:
		return int32(bits) //nolint: gosec
	case format.TypeU64:
		return bits
	case format.TypeI64:
		return int64(bits) //nolint: gosec
	case format.TypeF32:
		return math.Float32frombits(uint32(bits)) //nolint: gosec
	case format.TypeString:
		return str
	default:
		return nil
	}
}

func formatScalar(t format.FieldType, bits uint64, str string) string {
	switch {
	case t == format.TypeString:
		return str
	case t == format.TypeF32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(bits))), 'g', -1, 32) //nolint: gosec
	case t.IsSigned():
		return strconv.FormatInt(int64(bits), 10) //nolint: gosec
	default:
		return strconv.FormatUint(bits, 10)
	}
}

func convertElems[T any](elems []uint64, conv func(uint64) T) []T {
	out := make([]T, len(elems))
	for i, e := range elems {
		out[i] = conv(e)
	}

	return out
}

// normalize narrows raw bits to the width of t, sign-extending signed types.
func normalize(t format.FieldType, raw uint64) uint64 {
	bits := t.Bits()
	if bits == 0 || bits == 64 {
		return raw
	}

	raw &= (uint64(1) << bits) - 1
	if t.IsSigned() {
		sign := uint64(1) << (bits - 1)
		raw = (raw ^ sign) - sign
	}

	return raw
}

// widen32 converts a raw 32-bit side-table value to t. Signed targets sign-extend
// from int32, unsigned targets zero-extend.
func widen32(t format.FieldType, raw uint32) uint64 {
	if t.IsSigned() {
		return normalize(t, uint64(int64(int32(raw)))) //nolint: gosec
	}

	return normalize(t, uint64(raw))
}

// fromInt converts an identifier or foreign key to a value of field f.
func fromInt(f Field, v int32) (Value, error) {
	if f.Array {
		return Value{}, fmt.Errorf("%w: identifier slot cannot be an array of %s", errs.ErrUnknownFieldType, f.Type)
	}

	switch {
	case f.Type == format.TypeString:
		return Value{Type: f.Type, str: strconv.FormatInt(int64(v), 10)}, nil
	case f.Type == format.TypeF32:
		return Value{Type: f.Type, bits: uint64(math.Float32bits(float32(v)))}, nil
	case f.Type.IsNumeric():
		return Value{Type: f.Type, bits: normalize(f.Type, uint64(int64(v)))}, nil //nolint: gosec
	default:
		return Value{}, fmt.Errorf("%w: %d", errs.ErrUnknownFieldType, f.Type)
	}
}
