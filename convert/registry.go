package convert

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"universal-mapper/primitive"
)

// Func converts a non-nil value of a registered source type into the target type.
type Func func(value any) (any, error)

// Pair is the registry key: an ordered (source, target) type tuple.
type Pair struct {
	Src, Dst reflect.Type
}

func (p Pair) String() string {
	return typeName(p.Src) + " -> " + typeName(p.Dst)
}

// PairOf builds the key for two static types.
func PairOf[S, D any]() Pair {
	return Pair{reflect.TypeFor[S](), reflect.TypeFor[D]()}
}

// Registry is an immutable table of converters keyed by exact type pair.
// It is safe for concurrent use once New returns.
type Registry struct {
	funcs map[Pair]Func
}

type entry struct {
	pair   Pair
	fn     Func
	caster any
}

type options struct {
	categories primitive.CategoryEnum
	entries    []entry
}

type Option func(*options)

// WithCategories selects which built-in conversion categories are registered.
// The default is primitive.CategoryAll.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(o *options) {
		o.categories = categories
	}
}

// WithFunc registers fn for the exact (src, dst) pair, replacing a built-in if any.
func WithFunc(src, dst reflect.Type, fn Func) Option {
	return func(o *options) {
		o.entries = append(o.entries, entry{pair: Pair{src, dst}, fn: fn})
	}
}

// WithConverter registers a typed converter function.
func WithConverter[S, D any](fn func(S) (D, error)) Option {
	return WithFunc(reflect.TypeFor[S](), reflect.TypeFor[D](), func(value any) (any, error) {
		return fn(value.(S))
	})
}

// WithCaster registers any function accepted by ParseCaster.
func WithCaster(fn any) Option {
	return func(o *options) {
		o.entries = append(o.entries, entry{caster: fn})
	}
}

// New builds a registry from the selected built-in categories and the custom
// converters, in option order. The last registration for a pair wins.
func New(opts ...Option) (*Registry, error) {
	o := options{categories: primitive.CategoryAll}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{funcs: make(map[Pair]Func)}

	for pair := range primitive.Pairs(o.categories) {
		src, dst := pair.From.Type(), pair.To.Type()
		if src == nil || dst == nil || src == dst {
			continue
		}

		r.funcs[Pair{src, dst}] = builtin(pair)
	}

	for _, e := range o.entries {
		if e.caster != nil {
			caster, err := ParseCaster(e.caster)
			if err != nil {
				return nil, fmt.Errorf("convert: register %T: %w", e.caster, err)
			}

			e.pair, e.fn = Pair{caster.Src, caster.Dst}, caster.Func()
		}

		if e.pair.Src == nil || e.pair.Dst == nil || e.fn == nil {
			return nil, fmt.Errorf("convert: register %s: %w", e.pair, ErrIsNotACaster)
		}

		r.funcs[e.pair] = e.fn
	}

	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding every built-in conversion.
// It is constructed once, on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New()
		if err != nil {
			panic(err)
		}

		defaultRegistry = r
	})

	return defaultRegistry
}

// CanConvert reports whether values of src can be converted to dst. Identical
// types are always convertible. Pointer sources are looked up by their element
// type; dst is matched exactly.
func (r *Registry) CanConvert(src, dst reflect.Type) bool {
	if src == nil || dst == nil {
		return false
	}

	if src == dst {
		return true
	}

	src = base(src)
	if src == dst {
		return true
	}

	_, ok := r.funcs[Pair{src, dst}]
	return ok
}

// Convert converts value to dst using the converter registered for the
// dynamic type of value, dereferencing pointers first. A nil value, or a nil
// pointer, yields the zero value of dst if dst can hold nil. A converter
// result that is not assignable to dst is reported as ErrWrongResult; a nil
// result becomes the zero value of dst.
func (r *Registry) Convert(value any, dst reflect.Type) (any, error) {
	if dst == nil {
		return nil, &ConversionError{Src: reflect.TypeOf(value), Value: value, Err: ErrNoConversion}
	}

	if value != nil && reflect.TypeOf(value) == dst {
		return value, nil
	}

	value = deref(value)
	if value == nil {
		if CanHoldNil(dst) {
			return reflect.Zero(dst).Interface(), nil
		}

		return nil, &ConversionError{Dst: dst, Err: ErrNilValue}
	}

	src := reflect.TypeOf(value)
	if src == dst {
		return value, nil
	}

	fn, ok := r.funcs[Pair{src, dst}]
	if !ok {
		return nil, &ConversionError{Src: src, Dst: dst, Value: value, Err: ErrNoConversion}
	}

	res, err := fn(value)
	if err != nil {
		return nil, &ConversionError{Src: src, Dst: dst, Value: value, Err: err}
	}

	if res == nil {
		return reflect.Zero(dst).Interface(), nil
	}

	if !reflect.TypeOf(res).AssignableTo(dst) {
		return nil, &ConversionError{
			Src: src, Dst: dst, Value: value,
			Err: fmt.Errorf("%w: %T", ErrWrongResult, res),
		}
	}

	return res, nil
}

// Pairs lists every registered pair sorted by source then target type name.
func (r *Registry) Pairs() []Pair {
	res := make([]Pair, 0, len(r.funcs))
	for pair := range r.funcs {
		res = append(res, pair)
	}

	slices.SortFunc(res, func(a, b Pair) int {
		return cmp.Or(
			cmp.Compare(a.Src.String(), b.Src.String()),
			cmp.Compare(a.Dst.String(), b.Dst.String()),
		)
	})

	return res
}

// To is the typed variant of Registry.Convert.
func To[T any](r *Registry, value any) (T, error) {
	var zero T

	dst := reflect.TypeFor[T]()

	res, err := r.Convert(value, dst)
	if err != nil || res == nil {
		return zero, err
	}

	v, ok := res.(T)
	if !ok {
		return zero, &ConversionError{
			Src: reflect.TypeOf(value), Dst: dst, Value: value,
			Err: fmt.Errorf("%w: %T", ErrWrongResult, res),
		}
	}

	return v, nil
}

// CanHoldNil reports whether nil is a valid value of t.
func CanHoldNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
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

// deref follows pointers in value, returning nil for a nil pointer.
func deref(value any) any {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer {
		return value
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	return rv.Interface()
}
