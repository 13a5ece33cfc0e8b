package remap

import (
	"reflect"
	"strings"

	"universal-mapper/internal/common"
)

// TypeResolver maps the type names used in remap files to Go types.
type TypeResolver interface {
	ResolveType(name string) (reflect.Type, bool)
}

// TypeTable is a TypeResolver over an explicit list of types.
type TypeTable struct {
	types []reflect.Type
}

// NewTypeTable registers the dynamic type of every sample. Pointer samples
// register their element type, so both T{} and (*T)(nil) work.
func NewTypeTable(samples ...any) *TypeTable {
	tt := &TypeTable{}
	for _, s := range samples {
		tt.Add(reflect.TypeOf(s))
	}

	return tt
}

// Add registers named types declared in a package. Predeclared, unnamed and
// nil types are ignored.
func (tt *TypeTable) Add(types ...reflect.Type) *TypeTable {
	for _, t := range types {
		t = base(t)
		if t == nil || t.Name() == "" || t.PkgPath() == "" {
			continue
		}

		tt.types = append(tt.types, t)
	}

	return tt
}

// ResolveType resolves a type name like:
// - "legacy.Customer" (short)
// - "example.com/app/legacy.Customer" (full)
// - "Customer" (name only, first registered match).
func (tt *TypeTable) ResolveType(name string) (reflect.Type, bool) {
	if name == "" {
		return nil, false
	}

	lastDot := strings.LastIndex(name, ".")
	if lastDot < 0 {
		for _, t := range tt.types {
			if t.Name() == name {
				return t, true
			}
		}

		return nil, false
	}

	pkgStr, typeName := name[:lastDot], name[lastDot+1:]
	if pkgStr == "" || typeName == "" {
		return nil, false
	}

	// 1) exact match (for fully qualified import path)
	for _, t := range tt.types {
		if t.Name() == typeName && t.PkgPath() == pkgStr {
			return t, true
		}
	}

	// 2) suffix match (for short forms like "legacy.Customer" vs "example.com/app/legacy.Customer")
	for _, t := range tt.types {
		if t.Name() == typeName && strings.HasSuffix(t.PkgPath(), "/"+pkgStr) {
			return t, true
		}
	}

	return nil, false
}

// TypeName is the short name of t used in remap files: package alias and type name.
func TypeName(t reflect.Type) string {
	t = base(t)
	if t == nil {
		return ""
	}

	if alias := common.PkgAlias(t.PkgPath()); alias != "" && t.Name() != "" {
		return alias + "." + t.Name()
	}

	return t.String()
}
