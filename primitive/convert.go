package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotConvertible is returned when no allowed category converts between the two types.
	ErrNotConvertible = errors.New("value is not convertible")
	// ErrLossyConversion is returned when a narrowing number conversion would change the value.
	ErrLossyConversion = errors.New("conversion loses precision")
)

var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.Bool:    reflect.TypeOf(false),
	reflect.String:  reflect.TypeOf(""),
}

// Convert turns a loosely typed value (as decoded from YAML, JSON or a request map) into a value of type to.
// Scalar conversions are limited to the allowed categories. Narrowing number conversions granted by
// CategoryUnsafeNumber still fail with ErrLossyConversion when the converted value differs from the input.
// Slices, arrays, maps and pointers are converted element by element. A nil input yields the zero value.
func Convert(value reflect.Value, to reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	for value.IsValid() && value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Zero(to), nil
		}

		value = value.Elem()
	}

	if !value.IsValid() {
		return reflect.Zero(to), nil
	}

	from := value.Type()
	if from.AssignableTo(to) {
		res := reflect.New(to).Elem()
		res.Set(value)

		return res, nil
	}

	switch {
	case value.Kind() == reflect.Pointer:
		if value.IsNil() {
			return reflect.Zero(to), nil
		}

		return Convert(value.Elem(), to, allowed)

	case to.Kind() == reflect.Pointer:
		elem, err := Convert(value, to.Elem(), allowed)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(elem)

		return ptr, nil

	case (value.Kind() == reflect.Slice || value.Kind() == reflect.Array) && to.Kind() == reflect.Slice:
		res := reflect.MakeSlice(to, value.Len(), value.Len())
		for i := range value.Len() {
			elem, err := Convert(value.Index(i), to.Elem(), allowed)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}

			res.Index(i).Set(elem)
		}

		return res, nil

	case (value.Kind() == reflect.Slice || value.Kind() == reflect.Array) && to.Kind() == reflect.Array:
		if value.Len() > to.Len() {
			return reflect.Value{}, fmt.Errorf("%w: %d elements do not fit into %s", ErrNotConvertible, value.Len(), to)
		}

		res := reflect.New(to).Elem()
		for i := range value.Len() {
			elem, err := Convert(value.Index(i), to.Elem(), allowed)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}

			res.Index(i).Set(elem)
		}

		return res, nil

	case value.Kind() == reflect.Map && to.Kind() == reflect.Map:
		res := reflect.MakeMapWithSize(to, value.Len())

		iter := value.MapRange()
		for iter.Next() {
			key, err := Convert(iter.Key(), to.Key(), allowed)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}

			elem, err := Convert(iter.Value(), to.Elem(), allowed)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("value for key %v: %w", iter.Key(), err)
			}

			res.SetMapIndex(key, elem)
		}

		return res, nil
	}

	return convertScalar(value, to, allowed)
}

func convertScalar(value reflect.Value, to reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	from := value.Type()
	fromKind, toKind := FromReflectType(from), FromReflectType(to)

	// named types and their underlying basic type share a representation
	if from.Kind() == to.Kind() && IsScalar(from) && IsScalar(to) && from.ConvertibleTo(to) &&
		!isTemporal(fromKind) && !isTemporal(toKind) {
		return validEnum(value.Convert(to))
	}

	if fromKind == KindPrimitiveEnum && baseKind(to) == KindString && allowed&CategoryEnumString != 0 {
		if stringer, ok := value.Interface().(fmt.Stringer); ok {
			return reflect.ValueOf(stringer.String()).Convert(to), nil
		}
	}

	fromBase, toBase := baseKind(from), baseKind(to)
	if fromBase == 0 || toBase == 0 || !Allows(fromBase, toBase, allowed) {
		return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrNotConvertible, from, to)
	}

	res, err := convertBase(value, fromBase, toBase, basicOrSelf(to))
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s to %s: %w", from, to, err)
	}

	if fromBase.IsNumber() && toBase.IsNumber() && !Allows(fromBase, toBase, CategorySafeNumber) {
		back := res.Convert(basicOrSelf(from))
		if !back.Equal(value.Convert(basicOrSelf(from))) {
			return reflect.Value{}, fmt.Errorf("%w: %v to %s", ErrLossyConversion, value, to)
		}
	}

	return validEnum(res.Convert(to))
}

func convertBase(value reflect.Value, from, to KindEnum, target reflect.Type) (reflect.Value, error) {
	switch {
	case from.IsNumber() && to.IsNumber():
		return value.Convert(target), nil

	case from == KindString && to.IsNumber():
		s := strings.TrimSpace(value.String())
		switch {
		case to.IsSigned():
			n, err := strconv.ParseInt(s, 10, to.Bits())
			return reflect.ValueOf(n).Convert(target), err
		case to.IsUnsigned():
			n, err := strconv.ParseUint(s, 10, to.Bits())
			return reflect.ValueOf(n).Convert(target), err
		default:
			n, err := strconv.ParseFloat(s, to.Bits())
			return reflect.ValueOf(n).Convert(target), err
		}

	case from.IsNumber() && to == KindString:
		switch {
		case from.IsSigned():
			return reflect.ValueOf(strconv.FormatInt(value.Int(), 10)), nil
		case from.IsUnsigned():
			return reflect.ValueOf(strconv.FormatUint(value.Uint(), 10)), nil
		default:
			return reflect.ValueOf(strconv.FormatFloat(value.Float(), 'g', -1, from.Bits())), nil
		}

	case from.IsInteger() && to == KindBool:
		switch n := numberOf(value, from); n {
		case 0, 1:
			return reflect.ValueOf(n == 1), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: %v is not 0 or 1", ErrNotConvertible, n)
		}

	case from == KindBool && to.IsInteger():
		n := 0
		if value.Bool() {
			n = 1
		}

		return reflect.ValueOf(n).Convert(target), nil

	case from == KindString && to == KindBool:
		switch strings.ToLower(strings.TrimSpace(value.String())) {
		case "true", "yes", "on":
			return reflect.ValueOf(true), nil
		case "false", "no", "off":
			return reflect.ValueOf(false), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: %q is not a boolean", ErrNotConvertible, value.String())
		}

	case from == KindBool && to == KindString:
		return reflect.ValueOf(strconv.FormatBool(value.Bool())), nil

	case from == KindString && to == KindTime:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value.String()))
		return reflect.ValueOf(t), err

	case from == KindTime && to == KindString:
		return reflect.ValueOf(value.Interface().(time.Time).Format(time.RFC3339Nano)), nil

	case from.IsInteger() && to == KindTime:
		return reflect.ValueOf(time.Unix(numberOf(value, from), 0).UTC()), nil

	case from == KindTime && to.IsInteger():
		return reflect.ValueOf(value.Interface().(time.Time).Unix()).Convert(target), nil

	case from == KindString && to == KindDuration:
		d, err := time.ParseDuration(strings.TrimSpace(value.String()))
		return reflect.ValueOf(d), err

	case from == KindDuration && to == KindString:
		return reflect.ValueOf(time.Duration(value.Int()).String()), nil

	case from.IsInteger() && to == KindDuration:
		return reflect.ValueOf(time.Duration(numberOf(value, from))), nil

	case from == KindDuration && to.IsInteger():
		return reflect.ValueOf(value.Int()).Convert(target), nil

	case from.IsFloat() && to == KindDuration:
		return reflect.ValueOf(time.Duration(value.Float() * float64(time.Second))), nil

	case from == KindDuration && to.IsFloat():
		return reflect.ValueOf(time.Duration(value.Int()).Seconds()).Convert(target), nil
	}

	return reflect.Value{}, ErrNotConvertible
}

// baseKind resolves primitive enums to the kind of their underlying basic type.
func baseKind(t reflect.Type) KindEnum {
	kind := FromReflectType(t)
	if kind == KindPrimitiveEnum {
		return FromReflectType(basicTypes[t.Kind()])
	}

	return kind
}

func basicOrSelf(t reflect.Type) reflect.Type {
	if FromReflectType(t) == KindPrimitiveEnum {
		return basicTypes[t.Kind()]
	}

	return t
}

func numberOf(value reflect.Value, kind KindEnum) int64 {
	if kind.IsUnsigned() {
		return int64(value.Uint())
	}

	return value.Int()
}

func isTemporal(kind KindEnum) bool {
	return kind == KindTime || kind == KindDuration
}

func validEnum(value reflect.Value) (reflect.Value, error) {
	if v, ok := value.Interface().(interface{ IsValid() bool }); ok && !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %v is not a valid %s", ErrNotConvertible, value, value.Type())
	}

	return value, nil
}
