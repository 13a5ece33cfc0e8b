package match

import (
	"reflect"

	"universal-mapper/internal/common"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be mapped.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means the mapper has to recurse into both shapes.
	TypeNeedsTransform
	// TypeConvertible means a registered conversion exists.
	TypeConvertible
	// TypeAssignable means the source type can be directly assigned to the target.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// Convertible reports whether a conversion from src to dst is registered.
type Convertible func(src, dst reflect.Type) bool

// ScoreTypeCompatibility determines the compatibility between a source and target type.
// A nil convertible treats every non-assignable scalar pair as incompatible.
func ScoreTypeCompatibility(source, target reflect.Type, convertible Convertible) TypeCompatibility {
	switch {
	case source == target:
		return TypeIdentical
	case source.AssignableTo(target):
		return TypeAssignable
	case convertible != nil && convertible(source, target):
		return TypeConvertible
	case needsTransform(source, target):
		return TypeNeedsTransform
	default:
		return TypeIncompatible
	}
}

// needsTransform checks for shapes the mapper descends into.
func needsTransform(source, target reflect.Type) bool {
	source, target = deref(source), deref(target)

	if target.Kind() == reflect.Interface {
		return true
	}

	switch source.Kind() {
	case reflect.Struct:
		return target.Kind() == reflect.Struct
	case reflect.Slice, reflect.Array:
		return target.Kind() == reflect.Slice || target.Kind() == reflect.Array
	case reflect.Map:
		return target.Kind() == reflect.Map
	default:
		return false
	}
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
