package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Immediate", CompressionImmediate.String())
	require.Equal(t, "Common", CompressionCommon.String())
	require.Equal(t, "Pallet", CompressionPallet.String())
	require.Equal(t, "PalletArray", CompressionPalletArray.String())
	require.Equal(t, "SignedImmediate", CompressionSignedImmediate.String())
	require.Equal(t, "Unknown(9)", CompressionType(9).String())

	require.True(t, CompressionPallet.UsesPallet())
	require.True(t, CompressionPalletArray.UsesPallet())
	require.False(t, CompressionCommon.UsesPallet())
}

func TestFieldTypeRoundTripNames(t *testing.T) {
	for ft := TypeU8; ft <= TypeString; ft++ {
		parsed, err := ParseFieldType(ft.String())
		require.NoError(t, err)
		require.Equal(t, ft, parsed)
	}

	_, err := ParseFieldType("f64")
	require.Error(t, err)
}

func TestFieldTypeProperties(t *testing.T) {
	tests := []struct {
		ft      FieldType
		bits    int
		signed  bool
		numeric bool
	}{
		{TypeU8, 8, false, true},
		{TypeI8, 8, true, true},
		{TypeU16, 16, false, true},
		{TypeI16, 16, true, true},
		{TypeU32, 32, false, true},
		{TypeI32, 32, true, true},
		{TypeU64, 64, false, true},
		{TypeI64, 64, true, true},
		{TypeF32, 32, false, true},
		{TypeString, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.ft.String(), func(t *testing.T) {
			require.Equal(t, tt.bits, tt.ft.Bits())
			require.Equal(t, tt.signed, tt.ft.IsSigned())
			require.Equal(t, tt.numeric, tt.ft.IsNumeric())
		})
	}
}

func TestFlags(t *testing.T) {
	f := FlagSparse | FlagIndex
	require.True(t, f.IsSparse())
	require.True(t, f.Has(FlagIndex))
	require.False(t, f.Has(FlagBitPacked))
	require.False(t, Flags(0).IsSparse())
}

func TestParseSourceCompression(t *testing.T) {
	for _, s := range []SourceCompression{SourceNone, SourceZstd, SourceS2, SourceLZ4} {
		parsed, err := ParseSourceCompression(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}

	parsed, err := ParseSourceCompression("")
	require.NoError(t, err)
	require.Equal(t, SourceNone, parsed)

	_, err = ParseSourceCompression("brotli")
	require.Error(t, err)
}
