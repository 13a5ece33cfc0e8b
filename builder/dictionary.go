package builder

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"universal-mapper/access"
)

// DictionaryBuilder fills a T from a map keyed by K.
type DictionaryBuilder[T any, K comparable, V any] struct {
	settings
	registrations

	targets map[K]access.Target[T]
}

// DictionaryToObject creates an empty DictionaryBuilder.
func DictionaryToObject[T any, K comparable, V any](opts ...Option) *DictionaryBuilder[T, K, V] {
	return &DictionaryBuilder[T, K, V]{
		settings: newSettings(opts),
		targets:  make(map[K]access.Target[T]),
	}
}

// AddMapping sends the entry stored under key to the dotted path of T.
func (b *DictionaryBuilder[T, K, V]) AddMapping(key K, path string) *DictionaryBuilder[T, K, V] {
	if target, ok := pathTarget[T](&b.registrations, key, path); ok {
		b.targets[key] = target
	}

	return b
}

func (b *DictionaryBuilder[T, K, V]) AddTarget(key K, target access.Target[T]) *DictionaryBuilder[T, K, V] {
	b.targets[key] = target
	return b
}

// Map builds a new T from dict.
func (b *DictionaryBuilder[T, K, V]) Map(dict map[K]V) (T, error) {
	var res T
	if err := b.MapInto(dict, &res); err != nil {
		var zero T
		return zero, err
	}

	return res, nil
}

// MapInto applies dict to an existing T. Entries are applied in the order of
// their printed keys, so two keys mapped onto one field resolve the same way
// on every call.
func (b *DictionaryBuilder[T, K, V]) MapInto(dict map[K]V, dst *T) error {
	if err := b.err(); err != nil {
		return err
	}

	if dst == nil {
		return ErrNilTarget
	}

	keys := slices.SortedFunc(maps.Keys(dict), func(x, y K) int {
		return cmp.Compare(fmt.Sprint(x), fmt.Sprint(y))
	})

	for _, k := range keys {
		target, ok := b.targets[k]
		if !ok {
			continue
		}

		if err := assign(b.accessor, target, dst, k, dict[k]); err != nil {
			return err
		}
	}

	return nil
}
