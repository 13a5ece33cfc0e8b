package access

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"universal-mapper/convert"
)

var (
	ErrNotAddressable = errors.New("root is not addressable")
	ErrFieldNotFound  = errors.New("field not found")
)

// Accessor reads and writes fields by path. Values that are not directly
// assignable to the destination field are converted through its registry.
type Accessor struct {
	registry *convert.Registry
}

// New returns an accessor converting through registry, or through
// convert.Default() when registry is nil.
func New(registry *convert.Registry) *Accessor {
	if registry == nil {
		registry = convert.Default()
	}

	return &Accessor{registry: registry}
}

var defaultAccessor = sync.OnceValue(func() *Accessor {
	return New(nil)
})

// Default returns the accessor backed by convert.Default().
func Default() *Accessor {
	return defaultAccessor()
}

// Registry returns the conversion registry used by Assign.
func (a *Accessor) Registry() *convert.Registry {
	return a.registry
}

// Resolve reads the value at path below root. Pointers and interfaces are
// dereferenced at every hop, struct fields are looked up by exported name and
// maps with string keys by key. A missing field, a nil intermediate or an
// invalid path yields (nil, false).
func Resolve(root any, path string) (any, bool) {
	return Default().Resolve(root, path)
}

// Assign writes value at path below root using the default accessor.
func Assign(root any, path string, value any) error {
	return Default().Assign(root, path, value)
}

// Get reads a typed value at path. A missing value, a nil value or a value of
// another dynamic type yields false.
func Get[T any](root any, path string) (T, bool) {
	res, ok := Resolve(root, path)
	if !ok {
		var zero T
		return zero, false
	}

	v, ok := res.(T)
	return v, ok
}

// GetOr is like Get but returns def when the value is absent.
func GetOr[T any](root any, path string, def T) T {
	if v, ok := Get[T](root, path); ok {
		return v
	}

	return def
}

func (a *Accessor) Resolve(root any, path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	return a.ResolvePath(root, p)
}

func (a *Accessor) ResolvePath(root any, p Path) (any, bool) {
	v := reflect.ValueOf(root)

	for _, seg := range p.Segments {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}

		switch v.Kind() {
		default:
			return nil, false

		case reflect.Struct:
			sf, ok := v.Type().FieldByName(seg)
			if !ok || !sf.IsExported() {
				return nil, false
			}

			f, err := v.FieldByIndexErr(sf.Index)
			if err != nil {
				return nil, false
			}

			v = f

		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}

			v = v.MapIndex(reflect.ValueOf(seg).Convert(v.Type().Key()))
			if !v.IsValid() {
				return nil, false
			}
		}
	}

	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}

	return v.Interface(), true
}

// Assign writes value to the terminal field of path below root, allocating nil
// intermediate pointers and maps on the way. root must be a non-nil pointer or
// a non-nil map.
func (a *Accessor) Assign(root any, path string, value any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	return a.AssignPath(root, p, value)
}

func (a *Accessor) AssignPath(root any, p Path, value any) error {
	if p.Len() == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	rv := reflect.ValueOf(root)

	switch {
	case rv.Kind() == reflect.Pointer && !rv.IsNil():
		rv = rv.Elem()
	case rv.Kind() == reflect.Map && !rv.IsNil():
		return a.assignMapEntry(rv, p, 0, value)
	default:
		return fmt.Errorf("assign %q on %T: %w", p, root, ErrNotAddressable)
	}

	return a.assign(rv, p, 0, value)
}

// assign writes value at p.Segments[i:] below v, which must be settable.
func (a *Accessor) assign(v reflect.Value, p Path, i int, value any) error {
	if i == p.Len() {
		if err := a.Set(v, value); err != nil {
			return fmt.Errorf("assign %q: %w", p, err)
		}
		return nil
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
			continue
		}

		if v.IsNil() {
			return fmt.Errorf("assign %q: nil interface at %q: %w", p, p.Segments[i], ErrFieldNotFound)
		}

		inner := v.Elem()
		if inner.Kind() != reflect.Pointer {
			// values held by an interface are not addressable, modify a copy and store it back
			tmp := reflect.New(inner.Type()).Elem()
			tmp.Set(inner)
			if err := a.assign(tmp, p, i, value); err != nil {
				return err
			}

			v.Set(tmp)
			return nil
		}

		if inner.IsNil() {
			inner = reflect.New(inner.Type().Elem())
			v.Set(inner)
		}
		v = inner.Elem()
	}

	seg := p.Segments[i]

	switch v.Kind() {
	default:
		return fmt.Errorf("assign %q: %s has no field %q: %w", p, v.Type(), seg, ErrFieldNotFound)

	case reflect.Struct:
		f, err := fieldAlloc(v, seg)
		if err != nil {
			return fmt.Errorf("assign %q: %w", p, err)
		}

		return a.assign(f, p, i+1, value)

	case reflect.Map:
		if v.IsNil() {
			v.Set(reflect.MakeMap(v.Type()))
		}

		return a.assignMapEntry(v, p, i, value)
	}
}

func (a *Accessor) assignMapEntry(m reflect.Value, p Path, i int, value any) error {
	keyType := m.Type().Key()
	if keyType.Kind() != reflect.String {
		return fmt.Errorf("assign %q: %s is not keyed by string: %w", p, m.Type(), ErrFieldNotFound)
	}

	key := reflect.ValueOf(p.Segments[i]).Convert(keyType)

	elem := reflect.New(m.Type().Elem()).Elem()
	if existing := m.MapIndex(key); existing.IsValid() {
		elem.Set(existing)
	}

	if err := a.assign(elem, p, i+1, value); err != nil {
		return err
	}

	m.SetMapIndex(key, elem)
	return nil
}

// fieldAlloc returns the settable exported field name of struct v, allocating
// nil embedded pointers that the field is promoted through.
func fieldAlloc(v reflect.Value, name string) (reflect.Value, error) {
	sf, ok := v.Type().FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, fmt.Errorf("%s has no field %q: %w", v.Type(), name, ErrFieldNotFound)
	}

	for n, idx := range sf.Index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					if !v.CanSet() {
						return reflect.Value{}, fmt.Errorf("%s.%s: %w", v.Type(), name, ErrNotAddressable)
					}
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}

		v = v.Field(idx)
	}

	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("%s: %w", name, ErrNotAddressable)
	}

	return v, nil
}

// Set assigns value to dst, converting it through the accessor's registry when
// it is not directly assignable. A nil value zeroes dst when dst can hold nil
// and leaves it untouched otherwise. A non-nil pointer value is dereferenced
// when only its element fits, and a pointer dst is allocated when the value
// fits its element.
func (a *Accessor) Set(dst reflect.Value, value any) error {
	if !dst.CanSet() {
		return ErrNotAddressable
	}

	if value == nil {
		if convert.CanHoldNil(dst.Type()) {
			dst.SetZero()
		}
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			if convert.CanHoldNil(dst.Type()) {
				dst.SetZero()
			}
			return nil
		}

		if a.fits(rv.Type().Elem(), dst.Type()) {
			return a.Set(dst, rv.Elem().Interface())
		}
	}

	if a.registry.CanConvert(rv.Type(), dst.Type()) {
		res, err := a.registry.Convert(value, dst.Type())
		if err != nil {
			return err
		}

		if res == nil {
			dst.SetZero()
		} else {
			dst.Set(reflect.ValueOf(res))
		}
		return nil
	}

	if dst.Kind() == reflect.Pointer && a.fits(rv.Type(), dst.Type().Elem()) {
		ptr := reflect.New(dst.Type().Elem())
		if err := a.Set(ptr.Elem(), value); err != nil {
			return err
		}

		dst.Set(ptr)
		return nil
	}

	// reports ErrNoConversion
	_, err := a.registry.Convert(value, dst.Type())
	return err
}

func (a *Accessor) fits(src, dst reflect.Type) bool {
	return src.AssignableTo(dst) || a.registry.CanConvert(src, dst)
}

// indirect dereferences pointers and interfaces, returning the zero Value on nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

// Fields lists the exported fields declared directly on struct type t.
// Embedded structs are reported as one field named after their type.
func Fields(t reflect.Type) []reflect.StructField {
	res := make([]reflect.StructField, 0, t.NumField())
	for i := range t.NumField() {
		if sf := t.Field(i); sf.IsExported() {
			res = append(res, sf)
		}
	}

	return res
}
