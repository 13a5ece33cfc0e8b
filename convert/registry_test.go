package convert_test

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-mapper/convert"
	"universal-mapper/primitive"
)

type Celsius float64
type Fahrenheit float64

func TestConvertBuiltins(t *testing.T) {
	t.Parallel()

	r := convert.Default()
	epoch := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		dst   reflect.Type
		want  any
	}{
		{"int32 to int64", int32(-7), reflect.TypeFor[int64](), int64(-7)},
		{"float64 to int32 truncates", 3.99, reflect.TypeFor[int32](), int32(3)},
		{"negative float64 to int64 truncates", -3.99, reflect.TypeFor[int64](), int64(-3)},
		{"int64 to int32 wraps", int64(1<<32 + 5), reflect.TypeFor[int32](), int32(5)},
		{"int32 to float32", int32(42), reflect.TypeFor[float32](), float32(42)},
		{"true to int", true, reflect.TypeFor[int](), 1},
		{"false to float64", false, reflect.TypeFor[float64](), 0.0},
		{"int to bool", 2, reflect.TypeFor[bool](), true},
		{"zero to bool", int64(0), reflect.TypeFor[bool](), false},
		{"small float rounds to false", 0.4, reflect.TypeFor[bool](), false},
		{"float rounds to true", 0.6, reflect.TypeFor[bool](), true},
		{"bool to string", true, reflect.TypeFor[string](), "true"},
		{"yes to bool", "yes", reflect.TypeFor[bool](), true},
		{"off to bool", "off", reflect.TypeFor[bool](), false},
		{"int to string", -12, reflect.TypeFor[string](), "-12"},
		{"string to uint16", " 65535 ", reflect.TypeFor[uint16](), uint16(65535)},
		{"string to float64", "2.5", reflect.TypeFor[float64](), 2.5},
		{"time to int32 seconds", epoch, reflect.TypeFor[int32](), int32(epoch.Unix())},
		{"time to int64 milliseconds", epoch, reflect.TypeFor[int64](), epoch.UnixMilli()},
		{"int seconds to time", int(epoch.Unix()), reflect.TypeFor[time.Time](), epoch},
		{"int64 milliseconds to time", epoch.UnixMilli(), reflect.TypeFor[time.Time](), epoch},
		{"time to string", epoch, reflect.TypeFor[string](), "2024-03-01T12:30:00Z"},
		{"string to time", "2024-03-01T12:30:00Z", reflect.TypeFor[time.Time](), epoch},
		{"duration to int32 seconds", 90 * time.Second, reflect.TypeFor[int32](), int32(90)},
		{"duration to int64 nanoseconds", time.Millisecond, reflect.TypeFor[int64](), int64(1_000_000)},
		{"duration to float64 seconds", 1500 * time.Millisecond, reflect.TypeFor[float64](), 1.5},
		{"int32 seconds to duration", int32(3), reflect.TypeFor[time.Duration](), 3 * time.Second},
		{"int64 nanoseconds to duration", int64(250), reflect.TypeFor[time.Duration](), 250 * time.Nanosecond},
		{"duration to string", 2*time.Hour + 45*time.Minute, reflect.TypeFor[string](), "2h45m0s"},
		{"string to duration", "2h45m", reflect.TypeFor[time.Duration](), 2*time.Hour + 45*time.Minute},
		{"identity of a named type", Celsius(1), reflect.TypeFor[Celsius](), Celsius(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.True(t, r.CanConvert(reflect.TypeOf(tt.value), tt.dst))

			got, err := r.Convert(tt.value, tt.dst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertFailures(t *testing.T) {
	t.Parallel()

	r := convert.Default()

	t.Run("unregistered pair", func(t *testing.T) {
		t.Parallel()

		for _, tt := range []struct {
			value any
			dst   reflect.Type
		}{
			{time.Now(), reflect.TypeFor[bool]()},
			{Celsius(1), reflect.TypeFor[Fahrenheit]()},
			{Celsius(1), reflect.TypeFor[float64]()},
			{1, reflect.TypeFor[[]int]()},
			{struct{}{}, reflect.TypeFor[string]()},
		} {
			assert.False(t, r.CanConvert(reflect.TypeOf(tt.value), tt.dst))

			got, err := r.Convert(tt.value, tt.dst)
			assert.Nil(t, got)

			var convErr *convert.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.ErrorIs(t, err, convert.ErrNoConversion)
			assert.Equal(t, tt.dst, convErr.Dst)
		}
	})

	t.Run("unparsable string", func(t *testing.T) {
		t.Parallel()

		for _, dst := range []reflect.Type{
			reflect.TypeFor[int](), reflect.TypeFor[uint8](), reflect.TypeFor[float32](),
			reflect.TypeFor[bool](), reflect.TypeFor[time.Time](), reflect.TypeFor[time.Duration](),
		} {
			_, err := r.Convert("not a value", dst)

			var convErr *convert.ConversionError
			require.ErrorAs(t, err, &convErr, dst.String())
			assert.NotErrorIs(t, err, convert.ErrNoConversion)
			assert.Equal(t, "not a value", convErr.Value)
		}
	})

	t.Run("overflow and sign", func(t *testing.T) {
		t.Parallel()

		_, err := r.Convert("300", reflect.TypeFor[int8]())
		assert.Error(t, err)

		_, err = r.Convert("-1", reflect.TypeFor[uint]())
		assert.Error(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		_, err := r.Convert(nil, reflect.TypeFor[int]())
		require.ErrorIs(t, err, convert.ErrNilValue)

		got, err := r.Convert(nil, reflect.TypeFor[*int]())
		require.NoError(t, err)
		assert.Equal(t, (*int)(nil), got)
	})
}

func TestTo(t *testing.T) {
	t.Parallel()

	r := convert.Default()

	n, err := convert.To[int64](r, "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	s, err := convert.To[[]string](r, nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	e, err := convert.To[error](r, nil)
	require.NoError(t, err)
	assert.NoError(t, e)

	_, err = convert.To[float64](r, nil)
	require.ErrorIs(t, err, convert.ErrNilValue)

	_, err = convert.To[time.Time](r, true)
	require.ErrorIs(t, err, convert.ErrNoConversion)
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	t.Run("categories", func(t *testing.T) {
		t.Parallel()

		r, err := convert.New(convert.WithCategories(primitive.CategoryNone))
		require.NoError(t, err)
		assert.Empty(t, r.Pairs())
		assert.True(t, r.CanConvert(reflect.TypeFor[int](), reflect.TypeFor[int]()))
		assert.False(t, r.CanConvert(reflect.TypeFor[int](), reflect.TypeFor[int64]()))

		r, err = convert.New(convert.WithCategories(primitive.CategoryDuration))
		require.NoError(t, err)
		assert.Len(t, r.Pairs(), 2)
	})

	t.Run("casters", func(t *testing.T) {
		t.Parallel()

		r, err := convert.New(
			convert.WithCaster(func(c Celsius) Fahrenheit { return Fahrenheit(c*9/5 + 32) }),
			convert.WithCaster(func(s string) (Celsius, error) {
				f, err := strconv.ParseFloat(s, 64)
				return Celsius(f), err
			}),
			convert.WithCaster(func(f Fahrenheit) (Celsius, bool) { return Celsius((f - 32) * 5 / 9), f >= -459.67 }),
			convert.WithConverter(func(c Celsius) (float64, error) { return float64(c), nil }),
		)
		require.NoError(t, err)

		f, err := convert.To[Fahrenheit](r, Celsius(100))
		require.NoError(t, err)
		assert.InDelta(t, 212.0, float64(f), 1e-9)

		c, err := convert.To[Celsius](r, "21.5")
		require.NoError(t, err)
		assert.Equal(t, Celsius(21.5), c)

		_, err = convert.To[Celsius](r, "warm")
		require.Error(t, err)

		_, err = convert.To[Celsius](r, Fahrenheit(-500))
		require.ErrorIs(t, err, convert.ErrRejected)

		v, err := convert.To[float64](r, Celsius(3))
		require.NoError(t, err)
		assert.Equal(t, 3.0, v)
	})

	t.Run("custom overrides built-in", func(t *testing.T) {
		t.Parallel()

		r, err := convert.New(convert.WithFunc(reflect.TypeFor[bool](), reflect.TypeFor[string](), func(value any) (any, error) {
			if value.(bool) {
				return "Y", nil
			}
			return "N", nil
		}))
		require.NoError(t, err)

		s, err := convert.To[string](r, true)
		require.NoError(t, err)
		assert.Equal(t, "Y", s)
	})

	t.Run("invalid casters", func(t *testing.T) {
		t.Parallel()

		for _, fn := range []any{
			nil,
			42,
			func() int { return 0 },
			func(int, int) int { return 0 },
			func(int) (int, string) { return 0, "" },
			func(int) (int, error, bool) { return 0, nil, false },
		} {
			_, err := convert.New(convert.WithCaster(fn))
			require.Error(t, err)
			assert.True(t, errors.Is(err, convert.ErrIsNotACaster) || errors.Is(err, convert.ErrCasterIsNotAFunction))
		}
	})

	t.Run("option order", func(t *testing.T) {
		t.Parallel()

		first := func(value any) (any, error) { return "func", nil }
		reg, err := convert.New(
			convert.WithFunc(reflect.TypeFor[int](), reflect.TypeFor[string](), first),
			convert.WithCaster(func(int) string { return "caster" }),
		)
		require.NoError(t, err)

		got, err := convert.To[string](reg, 7)
		require.NoError(t, err)
		assert.Equal(t, "caster", got)

		reg, err = convert.New(
			convert.WithCaster(func(int) string { return "caster" }),
			convert.WithFunc(reflect.TypeFor[int](), reflect.TypeFor[string](), first),
		)
		require.NoError(t, err)

		got, err = convert.To[string](reg, 7)
		require.NoError(t, err)
		assert.Equal(t, "func", got)
	})
}

func TestConverterResult(t *testing.T) {
	t.Parallel()

	type Token struct{ V int }

	reg, err := convert.New(
		convert.WithFunc(reflect.TypeFor[Token](), reflect.TypeFor[bool](), func(any) (any, error) {
			return "x", nil
		}),
		convert.WithFunc(reflect.TypeFor[Token](), reflect.TypeFor[int](), func(any) (any, error) {
			return nil, nil
		}),
	)
	require.NoError(t, err)

	_, err = convert.To[bool](reg, Token{V: 1})
	require.ErrorIs(t, err, convert.ErrWrongResult)

	var convErr *convert.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, reflect.TypeFor[bool](), convErr.Dst)

	got, err := reg.Convert(Token{}, reflect.TypeFor[int]())
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestPointerSources(t *testing.T) {
	t.Parallel()

	r := convert.Default()
	x := 5

	assert.True(t, r.CanConvert(reflect.TypeFor[*int](), reflect.TypeFor[int64]()))
	assert.True(t, r.CanConvert(reflect.TypeFor[*int](), reflect.TypeFor[int]()))

	got, err := r.Convert(&x, reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	_, err = r.Convert((*int)(nil), reflect.TypeFor[int64]())
	require.ErrorIs(t, err, convert.ErrNilValue)

	got, err = r.Convert((*int)(nil), reflect.TypeFor[*int]())
	require.NoError(t, err)
	assert.Equal(t, (*int)(nil), got)
}

func TestPairsSorted(t *testing.T) {
	t.Parallel()

	pairs := convert.Default().Pairs()
	require.NotEmpty(t, pairs)

	for i := 1; i < len(pairs); i++ {
		prev, cur := pairs[i-1], pairs[i]
		assert.True(t, prev.Src.String() < cur.Src.String() ||
			prev.Src.String() == cur.Src.String() && prev.Dst.String() < cur.Dst.String(), "%s before %s", prev, cur)
	}

	assert.Contains(t, pairs, convert.PairOf[time.Time, int64]())
	assert.NotContains(t, pairs, convert.PairOf[int, int]())
}

func TestDefaultIsShared(t *testing.T) {
	t.Parallel()

	const n = 16

	var wg sync.WaitGroup
	got := make([]*convert.Registry, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = convert.Default()
		}()
	}
	wg.Wait()

	for _, r := range got {
		assert.Same(t, got[0], r)
	}
}
