package table

import (
	"fmt"
	"strings"

	"github.com/arloliu/wdc3/errs"
	"github.com/arloliu/wdc3/format"
)

// Field describes one schema slot: a primitive type and whether it is a fixed array.
type Field struct {
	Type  format.FieldType
	Array bool
}

// Scalar returns a scalar field of type t.
func Scalar(t format.FieldType) Field {
	return Field{Type: t}
}

// ArrayOf returns a fixed array field with elements of type t.
func ArrayOf(t format.FieldType) Field {
	return Field{Type: t, Array: true}
}

func (f Field) String() string {
	if f.Array {
		return f.Type.String() + "[]"
	}

	return f.Type.String()
}

// Schema is the ordered list of slots a row is projected onto.
type Schema []Field

// Validate checks that every slot has a type with a decode rule.
func (s Schema) Validate() error {
	for i, f := range s {
		if !f.Type.IsNumeric() && f.Type != format.TypeString {
			return fmt.Errorf("%w: slot %d has type %d", errs.ErrUnknownFieldType, i, f.Type)
		}
	}

	return nil
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.String()
	}

	return strings.Join(parts, " ")
}

// ParseSchema parses a schema from its text form, for example "i32 u16 string f32[]".
// Slots are separated by whitespace or commas; a "[]" suffix marks an array slot.
func ParseSchema(text string) (Schema, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty schema", errs.ErrInvalidSchema)
	}

	schema := make(Schema, 0, len(tokens))
	for _, tok := range tokens {
		name, isArray := strings.CutSuffix(tok, "[]")
		t, err := format.ParseFieldType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSchema, err)
		}
		schema = append(schema, Field{Type: t, Array: isArray})
	}

	return schema, nil
}
