package builder

import (
	"iter"
	"slices"

	"universal-mapper/access"
)

// CollectionBuilder fills a T from items of type I, each carrying a key and a
// value picked by caller-supplied selectors.
type CollectionBuilder[T, I any] struct {
	settings
	registrations

	targets map[any]access.Target[T]
}

// CollectionToObject creates an empty CollectionBuilder.
func CollectionToObject[T, I any](opts ...Option) *CollectionBuilder[T, I] {
	return &CollectionBuilder[T, I]{
		settings: newSettings(opts),
		targets:  make(map[any]access.Target[T]),
	}
}

// AddMapping sends the value of items keyed by key to the dotted path of T.
// A later mapping for the same key replaces the earlier one.
func (b *CollectionBuilder[T, I]) AddMapping(key any, path string) *CollectionBuilder[T, I] {
	if target, ok := pathTarget[T](&b.registrations, key, path); ok {
		b.AddTarget(key, target)
	}

	return b
}

// AddTarget is AddMapping for an already built target, such as an access.Field.
func (b *CollectionBuilder[T, I]) AddTarget(key any, target access.Target[T]) *CollectionBuilder[T, I] {
	if !isComparable(key) {
		b.fail(key, ErrInvalidKey)
		return b
	}

	b.targets[key] = target
	return b
}

// Map builds a new T from items.
func (b *CollectionBuilder[T, I]) Map(items []I, key, value func(I) any) (T, error) {
	return b.MapSeq(slices.Values(items), key, value)
}

// MapInto applies items to an existing T. Fields whose key does not occur keep
// their values.
func (b *CollectionBuilder[T, I]) MapInto(items []I, key, value func(I) any, dst *T) error {
	return b.apply(slices.Values(items), key, value, dst)
}

// MapSeq builds a new T from a sequence of items.
func (b *CollectionBuilder[T, I]) MapSeq(items iter.Seq[I], key, value func(I) any) (T, error) {
	var res T
	if err := b.apply(items, key, value, &res); err != nil {
		var zero T
		return zero, err
	}

	return res, nil
}

func (b *CollectionBuilder[T, I]) apply(items iter.Seq[I], key, value func(I) any, dst *T) error {
	if err := b.err(); err != nil {
		return err
	}

	if dst == nil {
		return ErrNilTarget
	}

	for item := range items {
		k := key(item)
		if !isComparable(k) {
			continue
		}

		target, ok := b.targets[k]
		if !ok {
			continue
		}

		if err := assign(b.accessor, target, dst, k, value(item)); err != nil {
			return err
		}
	}

	return nil
}
