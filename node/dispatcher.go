package node

import (
	"graph-copier/primitive"
	"reflect"
)

// Dispatch classifies a declared attribute type:
//   - interfaces are dynamic;
//   - slices are collections, except []byte which is atomic;
//   - maps are maps;
//   - structs and single pointers to structs are composites, except scalar structs like time.Time;
//   - everything else (basic types, arrays, pointers to non-structs, multi-level pointers) is atomic.
//
// Func, chan and unsafe pointer types are unknown: they never hold merge state.
func Dispatch(t reflect.Type) KindEnum {
	if t == nil {
		return KindUnknown
	}

	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return KindUnknown
	case reflect.Interface:
		return KindDynamic
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindAtomic
		}

		return KindCollection
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		if primitive.IsScalar(t) {
			return KindAtomic
		}

		return KindComposite
	case reflect.Pointer:
		depth, base := PtrDepthAndBase(t)
		if depth == 1 && base.Kind() == reflect.Struct && !primitive.IsScalar(base) {
			return KindComposite
		}

		return KindAtomic
	}

	return KindAtomic
}

// ElemKind classifies the element type of a collection or map type.
func ElemKind(t reflect.Type) KindEnum {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return Dispatch(t.Elem())
	}

	return KindUnknown
}
