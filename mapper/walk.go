package mapper

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"universal-mapper/access"
	"universal-mapper/convert"
	"universal-mapper/remap"
)

var anySlice = reflect.TypeFor[[]any]()

// mappingContext lives for one top-level call and is shared by every nested
// descent it triggers.
type mappingContext struct {
	*Mapper
	callOptions
}

// location tracks where in the source and target graphs a value sits.
type location struct {
	src, dst string
}

func (l location) field(src, dst string) location {
	return location{src: joinPath(l.src, src), dst: joinPath(l.dst, dst)}
}

func (l location) index(i int) location {
	suffix := "[" + strconv.Itoa(i) + "]"
	return location{src: l.src + suffix, dst: l.dst + suffix}
}

func (l location) key(k reflect.Value) location {
	suffix := fmt.Sprintf("[%v]", k)
	return location{src: l.src + suffix, dst: l.dst + suffix}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

func (mc *mappingContext) mapValue(src reflect.Value, dst reflect.Type, at location) (reflect.Value, error) {
	if dst.Kind() == reflect.Interface {
		src = elem(src)
	} else {
		src = indirect(src)
	}

	if !src.IsValid() || (convert.CanHoldNil(src.Type()) && src.IsNil()) {
		if convert.CanHoldNil(dst) {
			return reflect.Zero(dst), nil
		}

		return reflect.Value{}, mc.fail(src, dst, at, ErrNilSource)
	}

	if dst.Kind() == reflect.Interface {
		return mc.mapInterface(src, dst, at)
	}

	if dst.Kind() == reflect.Pointer {
		v, err := mc.mapValue(src, dst.Elem(), at)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(dst.Elem())
		ptr.Elem().Set(v)

		return ptr, nil
	}

	switch Dispatch(src.Type(), dst, mc.registry) {
	case DispatcherPrimitive:
		return src, nil
	case DispatcherConvert:
		return mc.convert(src, dst, at)
	case DispatcherSlice:
		return mc.mapCollection(src, dst, at)
	case DispatcherMap:
		return mc.mapMap(src, dst, at)
	case DispatcherStruct:
		v := reflect.New(dst).Elem()
		if err := mc.mapStruct(src, v, at, false); err != nil {
			return reflect.Value{}, err
		}

		return v, nil
	default:
		return reflect.Value{}, mc.fail(src, dst, at, ErrIncompatibleField)
	}
}

func (mc *mappingContext) convert(src reflect.Value, dst reflect.Type, at location) (reflect.Value, error) {
	res, err := mc.registry.Convert(src.Interface(), dst)
	if err != nil {
		return reflect.Value{}, mc.fail(src, dst, at, err)
	}

	rv := reflect.ValueOf(res)
	switch {
	case !rv.IsValid():
		return reflect.Zero(dst), nil
	case rv.Type().AssignableTo(dst):
		return rv, nil
	default:
		return reflect.Value{}, mc.fail(src, dst, at, fmt.Errorf("%w: converter returned %s", ErrIncompatibleField, rv.Type()))
	}
}

// mapInterface copies src into a new value of its own dynamic type and wraps it
// in dst. Collections requested as an interface []any satisfies become []any.
func (mc *mappingContext) mapInterface(src reflect.Value, dst reflect.Type, at location) (reflect.Value, error) {
	var (
		v   reflect.Value
		err error
	)

	switch {
	case isCollection(src.Kind()) && anySlice.Implements(dst):
		v, err = mc.mapCollection(src, anySlice, at)
	case src.Type().Implements(dst):
		v, err = mc.mapValue(src, src.Type(), at)
	default:
		return reflect.Value{}, mc.fail(src, dst, at, ErrIncompatibleField)
	}

	if err != nil {
		return reflect.Value{}, err
	}

	iv := reflect.New(dst).Elem()
	iv.Set(v)

	return iv, nil
}

func (mc *mappingContext) mapCollection(src reflect.Value, dst reflect.Type, at location) (reflect.Value, error) {
	n := src.Len()

	var out reflect.Value
	if dst.Kind() == reflect.Array {
		if dst.Len() != n {
			return reflect.Value{}, mc.fail(src, dst, at,
				fmt.Errorf("%w: source has %d elements, target holds %d", ErrLengthMismatch, n, dst.Len()))
		}

		out = reflect.New(dst).Elem()
	} else {
		out = reflect.MakeSlice(dst, n, n)
	}

	for i := range n {
		elemAt := at.index(i)

		v, err := mc.mapValue(src.Index(i), dst.Elem(), elemAt)
		if err != nil {
			if err = mc.tolerate(err, src.Type(), dst, elemAt); err != nil {
				return reflect.Value{}, err
			}

			continue
		}

		out.Index(i).Set(v)
	}

	return out, nil
}

// mapMap converts keys and values separately. Entries are visited in key order
// so that failures are reported deterministically; an entry that fails under
// Skip is left out of the result.
func (mc *mappingContext) mapMap(src reflect.Value, dst reflect.Type, at location) (reflect.Value, error) {
	out := reflect.MakeMapWithSize(dst, src.Len())

	keys := src.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})

	for _, k := range keys {
		keyAt := at.key(k)

		dk, err := mc.mapValue(k, dst.Key(), keyAt)
		if err == nil {
			var dv reflect.Value
			if dv, err = mc.mapValue(src.MapIndex(k), dst.Elem(), keyAt); err == nil {
				out.SetMapIndex(dk, dv)
				continue
			}
		}

		if err = mc.tolerate(err, src.Type(), dst, keyAt); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

// mapStruct fills the settable struct dst from struct src. Fields are visited in
// source declaration order; unexported fields on either side are ignored.
func (mc *mappingContext) mapStruct(src, dst reflect.Value, at location, nonZero bool) error {
	rules := mc.remap.Lookup(src.Type(), dst.Type())

	for _, sf := range access.Fields(src.Type()) {
		fv := src.FieldByIndex(sf.Index)
		if nonZero && fv.IsZero() {
			continue
		}

		df, ok := mc.target(rules, sf, src.Type(), dst.Type(), at)
		if !ok {
			continue
		}

		fieldAt := at.field(sf.Name, df.Name)

		v, err := mc.mapValue(fv, df.Type, fieldAt)
		if err != nil {
			if err = mc.tolerate(err, src.Type(), dst.Type(), fieldAt); err != nil {
				return err
			}

			continue
		}

		dst.FieldByIndex(df.Index).Set(v)
	}

	return nil
}

// target picks the field of dst that source field sf maps onto. A remap rule
// overrides the matcher; a rule without target name drops the field.
func (mc *mappingContext) target(
	rules *remap.Rules, sf reflect.StructField, src, dst reflect.Type, at location,
) (reflect.StructField, bool) {
	name, ok := rules.TargetName(sf.Name)
	if !ok {
		return mc.matcher(dst, sf)
	}

	if name == "" {
		srcPath := joinPath(at.src, sf.Name)
		mc.log.Debug("field dropped by remap rule",
			zap.String("pair", typePair(src, dst)),
			zap.String("field", srcPath),
		)

		if mc.diags != nil {
			mc.diags.AddInfo("field_dropped", "source field dropped by remap rule", typePair(src, dst), srcPath)
		}

		return reflect.StructField{}, false
	}

	return fieldByName(dst, name)
}

func (mc *mappingContext) fail(src reflect.Value, dst reflect.Type, at location, err error) error {
	var srcType reflect.Type
	if src.IsValid() {
		srcType = src.Type()
	}

	return &MappingError{SrcType: srcType, DstType: dst, SrcField: at.src, DstField: at.dst, Err: err}
}

// tolerate returns err under Throw. Under Skip it records the failure and
// returns nil.
func (mc *mappingContext) tolerate(err error, src, dst reflect.Type, at location) error {
	if mc.policy != Skip {
		return err
	}

	mc.log.Debug("field skipped",
		zap.String("pair", typePair(src, dst)),
		zap.String("field", at.dst),
		zap.Error(err),
	)

	if mc.diags != nil {
		mc.diags.AddWarning("field_skipped", err.Error(), typePair(src, dst), at.dst)
	}

	return nil
}

func typePair(src, dst reflect.Type) string {
	return typeName(src) + "->" + typeName(dst)
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array
}

// elem unwraps interfaces, returning the zero Value for a nil interface.
func elem(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

// indirect unwraps interfaces and pointers, returning the zero Value on nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}
