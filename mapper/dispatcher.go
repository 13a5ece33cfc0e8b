package mapper

import (
	"reflect"

	"universal-mapper/convert"
	"universal-mapper/internal/common"
	"universal-mapper/primitive"
)

// DispatcherEnum names the branch the mapper takes for a (source, target) pair.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherPrimitive
	DispatcherConvert
	DispatcherInterface
	DispatcherSlice
	DispatcherMap
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

func (d DispatcherEnum) String() string {
	switch d {
	case DispatcherPrimitive:
		return "primitive"
	case DispatcherConvert:
		return "convert"
	case DispatcherInterface:
		return "interface"
	case DispatcherSlice:
		return "slice"
	case DispatcherMap:
		return "map"
	case DispatcherStruct:
		return "struct"
	default:
		return common.UnknownStr
	}
}

// Dispatch classifies how values of src are mapped onto dst. Pointers on
// either side are classified by their element types. A registered conversion
// between two different types wins over structural mapping.
func Dispatch(src, dst reflect.Type, registry *convert.Registry) DispatcherEnum {
	src, dst = base(src), base(dst)

	if dst.Kind() == reflect.Interface {
		return DispatcherInterface
	}

	if src != dst && registry.CanConvert(src, dst) {
		return DispatcherConvert
	}

	if src == dst && opaque(src) {
		return DispatcherPrimitive
	}

	switch dst.Kind() {
	case reflect.Slice, reflect.Array:
		if src.Kind() == reflect.Slice || src.Kind() == reflect.Array {
			return DispatcherSlice
		}
	case reflect.Map:
		if src.Kind() == reflect.Map {
			return DispatcherMap
		}
	case reflect.Struct:
		if src.Kind() == reflect.Struct {
			return DispatcherStruct
		}
	default:
	}

	return DispatcherUnknown
}

// opaque reports whether a value of t is copied by plain assignment: scalars,
// plus funcs and channels which have no structure to copy.
func opaque(t reflect.Type) bool {
	if primitive.IsScalar(t) {
		return true
	}

	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// mappable reports whether t may be requested as a top-level target.
func mappable(t reflect.Type) bool {
	if t == nil {
		return false
	}

	switch base(t).Kind() {
	case reflect.Struct, reflect.Interface, reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
