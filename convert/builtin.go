package convert

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"

	"universal-mapper/primitive"
)

// builtin returns the converter for one pair of the primitive conversion tables.
//
// Numbers follow Go conversion semantics: float to integer truncates toward zero
// and integer narrowing wraps. Timestamps are Unix seconds, except int64 which
// carries Unix milliseconds. Durations are whole seconds for int, int32 and uint32,
// nanoseconds for int64 and uint64, and fractional seconds for floats.
func builtin(pair primitive.ConversionPair) Func {
	from, to := pair.From, pair.To
	dst := to.Type()

	switch {
	case from.IsNumber() && to.IsNumber():
		return func(value any) (any, error) {
			return reflect.ValueOf(value).Convert(dst).Interface(), nil
		}

	case from.IsNumber() && to == primitive.KindBool:
		return func(value any) (any, error) {
			rv := reflect.ValueOf(value)
			if from.IsFloat() {
				return math.RoundToEven(rv.Float()) != 0, nil
			}

			return !rv.IsZero(), nil
		}

	case from == primitive.KindBool && to.IsNumber():
		return func(value any) (any, error) {
			n := 0
			if value.(bool) {
				n = 1
			}

			return reflect.ValueOf(n).Convert(dst).Interface(), nil
		}

	case from.IsNumber() && to == primitive.KindString:
		return func(value any) (any, error) {
			return cast.ToStringE(value)
		}

	case from == primitive.KindString && to.IsNumber():
		return func(value any) (any, error) {
			return parseNumber(strings.TrimSpace(value.(string)), to)
		}

	case from == primitive.KindBool && to == primitive.KindString:
		return func(value any) (any, error) {
			return cast.ToStringE(value)
		}

	case from == primitive.KindString && to == primitive.KindBool:
		return func(value any) (any, error) {
			return parseBool(value.(string))
		}

	case from == primitive.KindTime:
		return timeTo(to)

	case to == primitive.KindTime:
		return toTime(from)

	case from == primitive.KindDuration:
		return durationTo(to)

	case to == primitive.KindDuration:
		return toDuration(from)
	}

	panic("no built-in converter for " + from.String() + " -> " + to.String())
}

func parseNumber(s string, to primitive.KindEnum) (any, error) {
	dst := to.Type()
	rv := reflect.New(dst).Elem()

	switch {
	case to.IsSigned():
		n, err := cast.ToInt64E(s)
		if err != nil {
			return nil, err
		}
		if rv.OverflowInt(n) {
			return nil, fmt.Errorf("%q overflows %s", s, dst)
		}
		rv.SetInt(n)

	case to.IsUnsigned():
		if strings.HasPrefix(s, "-") {
			return nil, fmt.Errorf("%q is negative", s)
		}

		n, err := cast.ToUint64E(s)
		if err != nil {
			return nil, err
		}
		if rv.OverflowUint(n) {
			return nil, fmt.Errorf("%q overflows %s", s, dst)
		}
		rv.SetUint(n)

	default:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return nil, err
		}
		if rv.OverflowFloat(f) {
			return nil, fmt.Errorf("%q overflows %s", s, dst)
		}
		rv.SetFloat(f)
	}

	return rv.Interface(), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}

	return cast.ToBoolE(strings.TrimSpace(s))
}

func timeTo(to primitive.KindEnum) Func {
	dst := to.Type()

	switch to {
	case primitive.KindString:
		return func(value any) (any, error) {
			return value.(time.Time).Format(time.RFC3339Nano), nil
		}
	case primitive.KindInt64:
		return func(value any) (any, error) {
			return value.(time.Time).UnixMilli(), nil
		}
	default:
		return func(value any) (any, error) {
			return reflect.ValueOf(value.(time.Time).Unix()).Convert(dst).Interface(), nil
		}
	}
}

func toTime(from primitive.KindEnum) Func {
	switch from {
	case primitive.KindString:
		return func(value any) (any, error) {
			return time.Parse(time.RFC3339Nano, strings.TrimSpace(value.(string)))
		}
	case primitive.KindInt64:
		return func(value any) (any, error) {
			return time.UnixMilli(value.(int64)).UTC(), nil
		}
	default:
		return func(value any) (any, error) {
			return time.Unix(integer(reflect.ValueOf(value)), 0).UTC(), nil
		}
	}
}

func durationTo(to primitive.KindEnum) Func {
	dst := to.Type()

	switch {
	case to == primitive.KindString:
		return func(value any) (any, error) {
			return value.(time.Duration).String(), nil
		}
	case to == primitive.KindInt64 || to == primitive.KindUint64:
		return func(value any) (any, error) {
			return reflect.ValueOf(int64(value.(time.Duration))).Convert(dst).Interface(), nil
		}
	case to.IsFloat():
		return func(value any) (any, error) {
			return reflect.ValueOf(value.(time.Duration).Seconds()).Convert(dst).Interface(), nil
		}
	default:
		return func(value any) (any, error) {
			return reflect.ValueOf(int64(value.(time.Duration) / time.Second)).Convert(dst).Interface(), nil
		}
	}
}

func toDuration(from primitive.KindEnum) Func {
	switch {
	case from == primitive.KindString:
		return func(value any) (any, error) {
			return time.ParseDuration(strings.TrimSpace(value.(string)))
		}
	case from == primitive.KindInt64 || from == primitive.KindUint64:
		return func(value any) (any, error) {
			return time.Duration(integer(reflect.ValueOf(value))), nil
		}
	case from.IsFloat():
		return func(value any) (any, error) {
			return time.Duration(reflect.ValueOf(value).Float() * float64(time.Second)), nil
		}
	default:
		return func(value any) (any, error) {
			return time.Duration(integer(reflect.ValueOf(value))) * time.Second, nil
		}
	}
}

func integer(rv reflect.Value) int64 {
	if rv.CanUint() {
		return int64(rv.Uint())
	}

	return rv.Int()
}
