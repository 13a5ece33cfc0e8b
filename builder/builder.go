// Package builder populates one object from keyed data: a sequence of items,
// a map, or the set bits of an integer. Keys are associated with target field
// paths up front; unknown keys are ignored.
package builder

import (
	"errors"
	"fmt"
	"reflect"

	"universal-mapper/access"
)

var (
	ErrInvalidKey    = errors.New("key is not comparable")
	ErrBitOutOfRange = errors.New("bit index out of range")
	ErrNilTarget     = errors.New("nil target")
)

// Option configures a builder.
type Option func(*settings)

type settings struct {
	accessor *access.Accessor
	setOnly  bool
}

// WithAccessor sets the accessor used to write target fields. Defaults to
// access.Default().
func WithAccessor(accessor *access.Accessor) Option {
	return func(s *settings) {
		if accessor != nil {
			s.accessor = accessor
		}
	}
}

// WithSetOnly makes NumberToFlag write only the set bits, leaving the fields of
// clear bits untouched.
func WithSetOnly() Option {
	return func(s *settings) {
		s.setOnly = true
	}
}

func newSettings(opts []Option) settings {
	s := settings{accessor: access.Default()}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// registrations holds the errors met while registering mappings. They are
// reported by every subsequent Map call.
type registrations struct {
	errs []error
}

func (r *registrations) fail(key any, err error) {
	r.errs = append(r.errs, fmt.Errorf("mapping for key %v: %w", key, err))
}

func (r *registrations) err() error {
	return errors.Join(r.errs...)
}

func pathTarget[T any](r *registrations, key any, path string) (access.Target[T], bool) {
	target, err := access.PathTarget[T](path)
	if err != nil {
		r.fail(key, err)
		return nil, false
	}

	return target, true
}

func assign[T any](a *access.Accessor, target access.Target[T], dst *T, key, value any) error {
	if err := target.Assign(a, dst, value); err != nil {
		return fmt.Errorf("key %v to %s: %w", key, target.Path(), err)
	}

	return nil
}

// isComparable reports whether key can be used as a map key. Interface
// contents are inspected, so struct{ V any }{[]int{1}} is rejected.
func isComparable(key any) bool {
	return key == nil || reflect.ValueOf(key).Comparable()
}
