package node

import (
	"graph-copier/internal/common"
	"reflect"
	"strconv"
)

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

// PtrDepthAndBase returns the pointer depth and the final base type.
func PtrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Pointer {
		depth++
		base = base.Elem()
	}

	return
}

// TypeString renders t with package aliases instead of full import paths, e.g. "[]*store.Order".
func TypeString(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeString(t.Elem())
	case reflect.Slice:
		return "[]" + TypeString(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + TypeString(t.Elem())
	case reflect.Map:
		return "map[" + TypeString(t.Key()) + "]" + TypeString(t.Elem())
	default:
		if t.PkgPath() == "" || t.Name() == "" {
			return t.String()
		}

		return common.PkgAlias(t.PkgPath()) + "." + t.Name()
	}
}

// IsError reports whether t implements error.
func IsError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(reflect.TypeFor[error]())
}
