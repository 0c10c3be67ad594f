package match

import (
	"go/types"
	"reflect"
	"strings"
)

// TypeCompatibility is how well a candidate type (a method parameter or result)
// stands in for a required attribute type.
type TypeCompatibility int

const (
	// TypeIncompatible means the candidate cannot carry values of the required type.
	TypeIncompatible TypeCompatibility = iota
	// TypeWidening means both are basic types and values are converted between them:
	// same basic kind (named enum and its underlying type), or the candidate's
	// name is a case-insensitive prefix of the required one (int for int64).
	TypeWidening
	// TypeAssignable means values of the required type are assignable to the candidate.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictWidening     = "widening"
	VerdictIncompatible = "incompatible"
)

func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeWidening:
		return VerdictWidening
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Compatible reports whether values can be passed through the candidate type at all.
func (c TypeCompatibility) Compatible() bool {
	return c > TypeIncompatible
}

// NeedsConversion reports whether values must be converted to the candidate type
// (and back) instead of being passed as they are.
func (c TypeCompatibility) NeedsConversion() bool {
	return c == TypeWidening
}

// ScoreReflectCompatibility scores a candidate type against the required type at runtime.
func ScoreReflectCompatibility(candidate, required reflect.Type) TypeCompatibility {
	switch {
	case candidate == nil || required == nil:
		return TypeIncompatible
	case candidate == required:
		return TypeIdentical
	case required.AssignableTo(candidate):
		return TypeAssignable
	case isBasicKind(candidate.Kind()) && isBasicKind(required.Kind()) &&
		widens(candidate.Kind() == required.Kind(), candidate.Name(), required.Name()) &&
		required.ConvertibleTo(candidate) && candidate.ConvertibleTo(required):
		return TypeWidening
	}

	return TypeIncompatible
}

// ScoreTypeCompatibility is ScoreReflectCompatibility over go/types, used when
// inspecting packages without loading them into the running program.
func ScoreTypeCompatibility(candidate, required types.Type) TypeCompatibility {
	switch {
	case candidate == nil || required == nil:
		return TypeIncompatible
	case types.Identical(candidate, required):
		return TypeIdentical
	case types.AssignableTo(required, candidate):
		return TypeAssignable
	}

	cb, ok := candidate.Underlying().(*types.Basic)
	if !ok {
		return TypeIncompatible
	}

	rb, ok := required.Underlying().(*types.Basic)
	if !ok {
		return TypeIncompatible
	}

	if widens(cb.Kind() == rb.Kind(), typeName(candidate), typeName(required)) &&
		types.ConvertibleTo(required, candidate) && types.ConvertibleTo(candidate, required) {
		return TypeWidening
	}

	return TypeIncompatible
}

func widens(sameKind bool, candidate, required string) bool {
	if sameKind {
		return true
	}

	return candidate != "" && strings.HasPrefix(strings.ToLower(required), strings.ToLower(candidate))
}

func typeName(t types.Type) string {
	switch t := t.(type) {
	case *types.Named:
		return t.Obj().Name()
	case *types.Alias:
		return t.Obj().Name()
	case *types.Basic:
		return t.Name()
	}

	return ""
}

func isBasicKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}

	return false
}
