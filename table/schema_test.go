package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
)

func TestParseSchema(t *testing.T) {
	t.Run("Whitespace and commas", func(t *testing.T) {
		schema, err := ParseSchema("i32 u16,string\tf32[] , u8[]")
		require.NoError(t, err)
		require.Equal(t, Schema{
			Scalar(format.TypeI32),
			Scalar(format.TypeU16),
			Scalar(format.TypeString),
			ArrayOf(format.TypeF32),
			ArrayOf(format.TypeU8),
		}, schema)
		require.Equal(t, "i32 u16 string f32[] u8[]", schema.String())
	})

	t.Run("Aliases", func(t *testing.T) {
		schema, err := ParseSchema("int float str byte[]")
		require.NoError(t, err)
		require.Equal(t, "i32 f32 string u8[]", schema.String())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseSchema("  ")
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := ParseSchema("i32 decimal")
		require.ErrorIs(t, err, errs.ErrInvalidSchema)
		require.ErrorIs(t, err, errs.ErrUnsupportedFieldType)
		require.Contains(t, err.Error(), "decimal")
	})
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, Schema{Scalar(format.TypeU64), ArrayOf(format.TypeString)}.Validate())

	err := Schema{Scalar(format.TypeU8), {Type: format.FieldType(11)}}.Validate()
	require.ErrorIs(t, err, errs.ErrUnknownFieldType)
	require.Contains(t, err.Error(), "slot 1")
}
