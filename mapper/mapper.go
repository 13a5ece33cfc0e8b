// Package mapper copies values between independently declared Go types by
// matching struct fields, converting scalars through a convert.Registry and
// recursing into nested structs, pointers, interfaces, collections and maps.
//
// Every produced value is freshly allocated: slices, maps and pointers reached
// through the source are copied, never shared. The source is never modified.
// Cyclic object graphs are not detected.
package mapper

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"universal-mapper/convert"
)

// Mapper holds the configuration shared by mapping calls. It is safe for
// concurrent use once constructed.
type Mapper struct {
	registry *convert.Registry
	log      *zap.Logger
	matcher  Matcher
}

// New builds a Mapper.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		registry: convert.Default(),
		log:      zap.NewNop(),
		matcher:  ExactNames,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

var defaultMapper = sync.OnceValue(func() *Mapper {
	return New()
})

// Default returns the shared Mapper built over convert.Default().
func Default() *Mapper {
	return defaultMapper()
}

// Registry returns the conversion registry used for scalar fields.
func (m *Mapper) Registry() *convert.Registry {
	return m.registry
}

// MapTo maps src onto a new value of type dst. dst must be a struct,
// interface, slice, array or map type, or a pointer to one of those; other
// targets fail with ErrUnsupportedTarget under any policy.
func (m *Mapper) MapTo(src any, dst reflect.Type, opts ...CallOption) (any, error) {
	if !mappable(dst) {
		return nil, &MappingError{SrcType: reflect.TypeOf(src), DstType: dst, Err: ErrUnsupportedTarget}
	}

	res, err := m.newCall(opts).mapValue(reflect.ValueOf(src), dst, location{})
	if err != nil {
		return nil, err
	}

	return res.Interface(), nil
}

// MapTo maps src with the default Mapper.
func MapTo(src any, dst reflect.Type, opts ...CallOption) (any, error) {
	return Default().MapTo(src, dst, opts...)
}

// To is the typed variant of Mapper.MapTo.
func To[T any](m *Mapper, src any, opts ...CallOption) (T, error) {
	var zero T

	res, err := m.MapTo(src, reflect.TypeFor[T](), opts...)
	if err != nil || res == nil {
		return zero, err
	}

	return res.(T), nil
}

// MapWith maps src to T and then hands both to post, which may adjust the
// result. post is not called when mapping fails.
func MapWith[S, T any](m *Mapper, src S, post func(S, *T), opts ...CallOption) (T, error) {
	res, err := To[T](m, src, opts...)
	if err != nil {
		return res, err
	}

	if post != nil {
		post(src, &res)
	}

	return res, nil
}

// Slice maps a slice or array src to []T element by element.
func Slice[T any](m *Mapper, src any, opts ...CallOption) ([]T, error) {
	return To[[]T](m, src, opts...)
}

// Copy maps the fields of struct src onto the existing struct dst points to.
// Target fields without a source counterpart keep their values. On error dst
// is left untouched.
func (m *Mapper) Copy(src, dst any, opts ...CallOption) error {
	return m.copy(src, dst, false, opts)
}

// CopyNonZero is Copy that ignores source fields holding their zero value, so
// dst keeps what it had for them. Only the top-level fields are filtered.
func (m *Mapper) CopyNonZero(src, dst any, opts ...CallOption) error {
	return m.copy(src, dst, true, opts)
}

func (m *Mapper) copy(src, dst any, nonZero bool, opts []CallOption) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Pointer || dv.IsNil() || dv.Elem().Kind() != reflect.Struct {
		return &MappingError{SrcType: reflect.TypeOf(src), DstType: reflect.TypeOf(dst), Err: ErrUnsupportedTarget}
	}

	sv := indirect(reflect.ValueOf(src))
	if !sv.IsValid() {
		return &MappingError{SrcType: reflect.TypeOf(src), DstType: dv.Type(), Err: ErrNilSource}
	}

	if sv.Kind() != reflect.Struct {
		return &MappingError{SrcType: sv.Type(), DstType: dv.Type(), Err: ErrIncompatibleField}
	}

	tmp := reflect.New(dv.Elem().Type()).Elem()
	tmp.Set(dv.Elem())

	if err := m.newCall(opts).mapStruct(sv, tmp, location{}, nonZero); err != nil {
		return err
	}

	dv.Elem().Set(tmp)

	return nil
}

func (m *Mapper) newCall(opts []CallOption) *mappingContext {
	mc := &mappingContext{Mapper: m}
	for _, opt := range opts {
		opt(&mc.callOptions)
	}

	return mc
}
