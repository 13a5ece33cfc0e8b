package mapper

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrIncompatibleField = errors.New("incompatible field")
	ErrUnsupportedTarget = errors.New("unsupported target type")
	ErrNilSource         = errors.New("nil source for non-nillable target")
	ErrLengthMismatch    = errors.New("collection length mismatch")
)

// MappingError reports a value that could not be mapped. SrcField and DstField
// hold the field paths relative to the top-level values, e.g. "Items[2].Name",
// and are empty when the failure concerns the values themselves.
type MappingError struct {
	SrcType  reflect.Type
	DstType  reflect.Type
	SrcField string
	DstField string
	Err      error
}

func (e *MappingError) Error() string {
	if e.SrcField == "" && e.DstField == "" {
		return fmt.Sprintf("map %s to %s: %v", typeName(e.SrcType), typeName(e.DstType), e.Err)
	}

	return fmt.Sprintf("map field %s (%s) to %s (%s): %v",
		orRoot(e.SrcField), typeName(e.SrcType), orRoot(e.DstField), typeName(e.DstType), e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}

func orRoot(field string) string {
	if field == "" {
		return "<root>"
	}

	return field
}
