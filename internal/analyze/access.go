package analyze

import (
	"errors"
	"fmt"
	"reflect"

	"graph-copier/internal/match"
)

// ErrIncompatibleValue is returned when a value cannot be passed to or returned from a route.
var ErrIncompatibleValue = errors.New("incompatible value")

// Get reads the attribute from host, a non-nil pointer to the host struct.
// Values read from fields are addressable; values returned by methods are not.
// An attribute promoted through a nil embedded pointer reads as the zero value.
func (a *Accessor) Get(host reflect.Value) (reflect.Value, error) {
	if a.Direct() {
		v, err := fieldByIndex(host.Elem(), a.attr.Index, false)
		if err != nil || !v.IsValid() {
			return reflect.Zero(a.attr.Type), err
		}

		return v, nil
	}

	out := host.Method(a.index).Call(nil)
	if a.errOut {
		if err, _ := out[1].Interface().(error); err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", a.Method, err)
		}
	}

	return fit(out[0], a.attr.Type)
}

// Call passes value to the mutator of host: a new attribute value for writers, one element for adders and removers.
// An invalid value passes the zero value of the parameter.
func (m *Mutator) Call(host, value reflect.Value) error {
	if m.Direct() {
		field, err := fieldByIndex(host.Elem(), m.attr.Index, true)
		if err != nil {
			return err
		}

		v, err := fit(value, field.Type())
		if err != nil {
			return err
		}

		if !field.CanSet() {
			return fmt.Errorf("field %s of %s cannot be set", m.attr.FieldName, host.Type())
		}

		field.Set(v)

		return nil
	}

	arg, err := fit(value, m.param)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Method, err)
	}

	method := host.Method(m.index)

	var out []reflect.Value

	switch {
	case m.Variadic:
		spread := reflect.MakeSlice(reflect.SliceOf(m.param), 1, 1)
		spread.Index(0).Set(arg)
		out = method.CallSlice([]reflect.Value{spread})
	case m.spread:
		out = method.CallSlice([]reflect.Value{arg})
	default:
		out = method.Call([]reflect.Value{arg})
	}

	if m.errOut {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return fmt.Errorf("%s: %w", m.Method, err)
		}
	}

	return nil
}

// fit makes v usable as a value of type t: interfaces are unwrapped, widening conversions applied.
func fit(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.IsValid() && v.Kind() == reflect.Interface && t.Kind() != reflect.Interface {
		v = v.Elem()
	}

	if !v.IsValid() {
		return reflect.Zero(t), nil
	}

	switch {
	case v.Type() == t:
		return v, nil
	case v.Type().AssignableTo(t):
		res := reflect.New(t).Elem()
		res.Set(v)

		return res, nil
	case widens(v.Type(), t):
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not %s", ErrIncompatibleValue, v.Type(), t)
}

// widens reports a widening match in either direction: readers return the candidate type,
// writers receive it.
func widens(from, to reflect.Type) bool {
	return match.ScoreReflectCompatibility(to, from) == match.TypeWidening ||
		match.ScoreReflectCompatibility(from, to) == match.TypeWidening
}

// fieldByIndex walks the index route through embedded structs. Nil embedded pointers are allocated
// when alloc is set; otherwise the walk stops and returns an invalid value.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}, nil
				}

				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate embedded %s", v.Type())
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	return v, nil
}
