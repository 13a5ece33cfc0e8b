package access

import (
	"fmt"
	"reflect"
)

// Target is a field of T that can be written from an untyped value. Both
// compile-time field handles and string paths implement it.
type Target[T any] interface {
	Assign(a *Accessor, dst *T, value any) error
	Resolve(src *T) (any, bool)
	Path() string
}

// Field is a compile-time field handle built from a getter/setter pair.
type Field[T, V any] struct {
	Name string
	Get  func(*T) V
	Set  func(*T, V)
}

// NewField builds a handle from a pointer-to-field selector:
//
//	access.NewField("Name", func(u *User) *string { return &u.Name })
func NewField[T, V any](name string, ref func(*T) *V) Field[T, V] {
	return Field[T, V]{
		Name: name,
		Get:  func(t *T) V { return *ref(t) },
		Set:  func(t *T, v V) { *ref(t) = v },
	}
}

func (f Field[T, V]) Path() string {
	return f.Name
}

func (f Field[T, V]) Resolve(src *T) (any, bool) {
	if src == nil || f.Get == nil {
		return nil, false
	}

	return f.Get(src), true
}

// Assign converts value to V through a and stores it with the setter.
func (f Field[T, V]) Assign(a *Accessor, dst *T, value any) error {
	var v V
	if f.Get != nil {
		v = f.Get(dst)
	}

	if err := a.Set(reflect.ValueOf(&v).Elem(), value); err != nil {
		return fmt.Errorf("assign %s: %w", f.Name, err)
	}

	f.Set(dst, v)
	return nil
}

type pathTarget[T any] struct {
	path Path
}

// PathTarget wraps a dotted path as a Target.
func PathTarget[T any](path string) (Target[T], error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	return pathTarget[T]{path: p}, nil
}

func (p pathTarget[T]) Path() string {
	return p.path.String()
}

func (p pathTarget[T]) Resolve(src *T) (any, bool) {
	if src == nil {
		return nil, false
	}

	return Default().ResolvePath(src, p.path)
}

func (p pathTarget[T]) Assign(a *Accessor, dst *T, value any) error {
	return a.AssignPath(dst, p.path, value)
}
