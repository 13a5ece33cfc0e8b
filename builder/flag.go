package builder

import (
	"maps"
	"slices"

	"universal-mapper/access"
)

const maxBit = 63

// FlagBuilder decodes the bits of an integer into boolean fields of T.
//
// By default every registered bit is written: true when set, false when clear,
// so a reused target never keeps a stale flag. WithSetOnly writes only the set
// bits.
type FlagBuilder[T any] struct {
	settings
	registrations

	bits map[int]access.Target[T]
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// NumberToFlag creates an empty FlagBuilder.
func NumberToFlag[T any](opts ...Option) *FlagBuilder[T] {
	return &FlagBuilder[T]{
		settings: newSettings(opts),
		bits:     make(map[int]access.Target[T]),
	}
}

// AddMapping sends bit (0 is the least significant) to the dotted path of T.
// Bits outside 0..63 are rejected and reported by Map.
func (b *FlagBuilder[T]) AddMapping(bit int, path string) *FlagBuilder[T] {
	if target, ok := pathTarget[T](&b.registrations, bit, path); ok {
		b.AddTarget(bit, target)
	}

	return b
}

// AddFlag is AddMapping keyed by a named bit position.
func (b *FlagBuilder[T]) AddFlag(flag FlagValue, path string) *FlagBuilder[T] {
	return b.AddMapping(int(flag), path)
}

func (b *FlagBuilder[T]) AddTarget(bit int, target access.Target[T]) *FlagBuilder[T] {
	if bit < 0 || bit > maxBit {
		b.fail(bit, ErrBitOutOfRange)
		return b
	}

	b.bits[bit] = target
	return b
}

// Map builds a new T from the bits of n.
func (b *FlagBuilder[T]) Map(n uint64) (T, error) {
	var res T
	if err := b.MapInto(n, &res); err != nil {
		var zero T
		return zero, err
	}

	return res, nil
}

// MapInto applies the bits of n to an existing T.
func (b *FlagBuilder[T]) MapInto(n uint64, dst *T) error {
	if err := b.err(); err != nil {
		return err
	}

	if dst == nil {
		return ErrNilTarget
	}

	if b.setOnly {
		for bit, remain := 0, n; remain > 0; bit, remain = bit+1, remain>>1 {
			target, ok := b.bits[bit]
			if !ok || remain&1 == 0 {
				continue
			}

			if err := assign(b.accessor, target, dst, bit, true); err != nil {
				return err
			}
		}

		return nil
	}

	for _, bit := range slices.Sorted(maps.Keys(b.bits)) {
		if err := assign(b.accessor, b.bits[bit], dst, bit, n>>bit&1 == 1); err != nil {
			return err
		}
	}

	return nil
}

// MapNumber maps any integer through b. Negative values contribute their two's
// complement bits.
func MapNumber[T any, N integer](b *FlagBuilder[T], n N) (T, error) {
	return b.Map(uint64(n))
}
