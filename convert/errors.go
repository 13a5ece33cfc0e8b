package convert

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNoConversion = errors.New("no conversion registered")
	ErrNilValue     = errors.New("nil value for a type that cannot hold nil")
	ErrRejected     = errors.New("converter rejected value")
	ErrWrongResult  = errors.New("converter returned a value of the wrong type")
)

// ConversionError is returned by every failing conversion. Err is one of the
// sentinels above or the error reported by the converter itself.
type ConversionError struct {
	Src, Dst reflect.Type
	Value    any
	Err      error
}

func (e *ConversionError) Error() string {
	if e.Src == nil {
		return fmt.Sprintf("convert nil to %s: %v", typeName(e.Dst), e.Err)
	}

	return fmt.Sprintf("convert %s(%v) to %s: %v", typeName(e.Src), e.Value, typeName(e.Dst), e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
