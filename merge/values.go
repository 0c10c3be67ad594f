package merge

import (
	"reflect"

	"graph-copier/internal/analyze"
	"graph-copier/node"
	"graph-copier/primitive"
)

// Initialized reports whether v carries a value: strings, slices and maps are initialized
// when non-empty, pointers and interfaces when non-nil, everything else when not the zero value.
func Initialized(v any) bool {
	return initialized(reflect.ValueOf(v))
}

// NotInitialized is the negation of Initialized.
func NotInitialized(v any) bool {
	return !Initialized(v)
}

func initialized(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}

	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return v.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	}

	return !v.IsZero()
}

// equal compares two values of an attribute or of collection elements: an Equal(T) bool method
// wins, then the attributes tagged merge:",key", then deep equality.
func equal(a, b reflect.Value) bool {
	a, b = unwrap(a), unwrap(b)

	switch {
	case !a.IsValid() || !b.IsValid():
		return a.IsValid() == b.IsValid()
	case a.Type() != b.Type():
		return false
	}

	if isNilable(a.Kind()) && (a.IsNil() || b.IsNil()) {
		return a.IsNil() == b.IsNil()
	}

	if eq, ok := equalMethod(a.Type()); ok {
		return eq.Func.Call([]reflect.Value{a, b})[0].Bool()
	}

	if eq, ok := keysEqual(a, b); ok {
		return eq
	}

	if a.CanInterface() && b.CanInterface() {
		return reflect.DeepEqual(a.Interface(), b.Interface())
	}

	return a.Comparable() && a.Equal(b)
}

func unwrap(v reflect.Value) reflect.Value {
	if v.IsValid() && v.Kind() == reflect.Interface {
		return v.Elem()
	}

	return v
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return true
	}

	return false
}

// equalMethod finds func (T) Equal(T) bool in the method set of t.
func equalMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Equal")
	if !ok {
		return reflect.Method{}, false
	}

	mt := m.Type
	if mt.NumIn() != 2 || mt.In(1) != t || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return reflect.Method{}, false
	}

	return m, true
}

// keysEqual compares composite values by their readable key attributes.
func keysEqual(a, b reflect.Value) (same, ok bool) {
	base := node.Base(a.Type())
	if base.Kind() != reflect.Struct || primitive.IsScalar(base) || node.Dispatch(a.Type()) != node.KindComposite {
		return false, false
	}

	table, err := analyze.For(base)
	if err != nil || len(table.Keys) == 0 {
		return false, false
	}

	pa, pb := pointerTo(a), pointerTo(b)

	for _, key := range table.Keys {
		if key.Reader == nil {
			continue
		}

		ka, errA := key.Reader.Get(pa)
		kb, errB := key.Reader.Get(pb)

		if errA != nil || errB != nil {
			return false, false
		}

		if !equal(ka, kb) {
			return false, true
		}

		ok = true
	}

	return ok, ok
}

// indexOf returns the index of the first element of list equal to elem, or -1.
func indexOf(list, elem reflect.Value) int {
	if !list.IsValid() {
		return -1
	}

	for i := range list.Len() {
		if equal(list.Index(i), elem) {
			return i
		}
	}

	return -1
}

// pointerTo returns a pointer to v: its address when addressable, a pointer to a copy otherwise.
// Pointers are returned as they are.
func pointerTo(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer {
		return v
	}

	if v.CanAddr() {
		return v.Addr()
	}

	p := reflect.New(v.Type())
	p.Elem().Set(v)

	return p
}

// detach copies v so it no longer aliases the slice or map it was read from.
func detach(v reflect.Value) reflect.Value {
	c := reflect.New(v.Type()).Elem()
	c.Set(v)

	return c
}
