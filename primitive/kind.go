package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

var ErrUnknownKind = errors.New("unknown kind")

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named integer or string type, never converted implicitly

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindTypes = map[KindEnum]reflect.Type{
	KindInt:      reflect.TypeFor[int](),
	KindInt8:     reflect.TypeFor[int8](),
	KindInt16:    reflect.TypeFor[int16](),
	KindInt32:    reflect.TypeFor[int32](),
	KindInt64:    reflect.TypeFor[int64](),
	KindUint:     reflect.TypeFor[uint](),
	KindUint8:    reflect.TypeFor[uint8](),
	KindUint16:   reflect.TypeFor[uint16](),
	KindUint32:   reflect.TypeFor[uint32](),
	KindUint64:   reflect.TypeFor[uint64](),
	KindFloat32:  reflect.TypeFor[float32](),
	KindFloat64:  reflect.TypeFor[float64](),
	KindBool:     reflect.TypeFor[bool](),
	KindString:   reflect.TypeFor[string](),
	KindTime:     reflect.TypeFor[time.Time](),
	KindDuration: reflect.TypeFor[time.Duration](),
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// IsTemporal reports whether k is time.Time or time.Duration.
func (k KindEnum) IsTemporal() bool {
	return k == KindTime || k == KindDuration
}

func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only number kinds has meaningful bits amount, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

// Type returns the reflect type backing k, or nil for KindPrimitiveEnum and invalid kinds.
func (k KindEnum) Type() reflect.Type {
	return kindTypes[k]
}

// FromReflectType classifies rtype. Only the exact predeclared types (plus time.Time and
// time.Duration) map onto concrete kinds; named types over int or string report
// KindPrimitiveEnum and everything else the zero kind.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	for kind, t := range kindTypes {
		if t == rtype {
			return kind
		}
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String:
		return KindPrimitiveEnum
	}
}

// Of classifies the dynamic type of v.
func Of(v any) KindEnum {
	return FromReflectType(reflect.TypeOf(v))
}

// IsScalar reports whether values of rtype carry no references, so that a plain
// assignment is already a full copy.
func IsScalar(rtype reflect.Type) bool {
	if FromReflectType(rtype) != 0 {
		return true
	}

	switch rtype.Kind() {
	case reflect.Bool, reflect.Uintptr, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// Name returns the short lower-case name of k, e.g. "int64" or "duration".
func (k KindEnum) Name() string {
	return strings.ToLower(strings.TrimPrefix(k.String(), "Kind"))
}

// ParseKind is the inverse of KindEnum.Name for kinds backed by a concrete type.
func ParseKind(name string) (KindEnum, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := KindEnum(1); int(k) < KindTotal; k++ {
		if k.Type() != nil && k.Name() == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
}
