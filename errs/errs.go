// Package errs defines the sentinel errors returned by the wdc3 packages.
//
// Errors fall into three classes. Use errors.Is with the class sentinel to
// decide how to react to a failure:
//
//   - ErrCorruptFile: the input bytes are structurally invalid. Loading aborts.
//   - ErrUnsupportedEncoding: a column's compression kind cannot serve the
//     requested scalar or array shape.
//   - ErrUnsupportedFieldType: the schema declares a type with no decode rule.
//
// Every specific sentinel below also matches its class sentinel.
package errs

import "errors"

var (
	ErrCorruptFile          = errors.New("corrupt wdc3 file")
	ErrUnsupportedEncoding  = errors.New("unsupported compression")
	ErrUnsupportedFieldType = errors.New("unsupported field type")
)

var (
	ErrInvalidHeaderSize        = newClassError("file shorter than header", ErrCorruptFile)
	ErrInvalidMagic             = newClassError("invalid magic signature", ErrCorruptFile)
	ErrTruncatedData            = newClassError("unexpected end of data", ErrCorruptFile)
	ErrInvalidSeek              = newClassError("seek outside of data", ErrCorruptFile)
	ErrSparseLengthMismatch     = newClassError("sparse section length mismatch", ErrCorruptFile)
	ErrIndexLengthMismatch      = newClassError("index data and sparse id list length mismatch", ErrCorruptFile)
	ErrSparseEntryMissing       = newClassError("missing sparse offset entry", ErrCorruptFile)
	ErrPalletIndexOutOfRange    = newClassError("pallet index out of range", ErrCorruptFile)
	ErrMissingPalletData        = newClassError("pallet column without pallet data", ErrCorruptFile)
	ErrMissingCommonData        = newClassError("common column without value map", ErrCorruptFile)
	ErrStringNotFound           = newClassError("string offset not in string table", ErrCorruptFile)
	ErrInvalidBitWidth          = newClassError("invalid bit width", ErrCorruptFile)
	ErrInvalidFieldCount        = newClassError("invalid field count", ErrCorruptFile)
	ErrInvalidCompressionKind   = newClassError("compression kind invalid for field shape", ErrUnsupportedEncoding)
	ErrInvalidPalletCardinality = newClassError("pallet array used as scalar with cardinality != 1", ErrUnsupportedEncoding)
	ErrUnknownFieldType         = newClassError("no decode rule for field type", ErrUnsupportedFieldType)
	ErrInvalidSchema            = newClassError("invalid schema", ErrUnsupportedFieldType)
)

// classError is a named error that also reports its class through Unwrap.
type classError struct {
	msg   string
	class error
}

func newClassError(msg string, class error) error {
	return &classError{msg: msg, class: class}
}

func (e *classError) Error() string {
	return e.class.Error() + ": " + e.msg
}

func (e *classError) Unwrap() error {
	return e.class
}
