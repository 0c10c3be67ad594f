package match

import (
	"go/token"
	"go/types"
	"reflect"
	"testing"
)

type status string

type celsius float64

func TestScoreReflectCompatibility(t *testing.T) {
	tests := []struct {
		name      string
		candidate reflect.Type
		required  reflect.Type
		expected  TypeCompatibility
	}{
		{"identical", reflect.TypeFor[int64](), reflect.TypeFor[int64](), TypeIdentical},
		{"interface accepts value", reflect.TypeFor[any](), reflect.TypeFor[string](), TypeAssignable},
		{"int prefixes int64", reflect.TypeFor[int](), reflect.TypeFor[int64](), TypeWidening},
		{"int64 does not prefix int", reflect.TypeFor[int64](), reflect.TypeFor[int](), TypeIncompatible},
		{"enum and underlying", reflect.TypeFor[string](), reflect.TypeFor[status](), TypeWidening},
		{"underlying and enum", reflect.TypeFor[status](), reflect.TypeFor[string](), TypeWidening},
		{"named float", reflect.TypeFor[float64](), reflect.TypeFor[celsius](), TypeWidening},
		{"string and int", reflect.TypeFor[string](), reflect.TypeFor[int](), TypeIncompatible},
		{"slices", reflect.TypeFor[[]int](), reflect.TypeFor[[]int64](), TypeIncompatible},
		{"nil", nil, reflect.TypeFor[int](), TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreReflectCompatibility(tt.candidate, tt.required); got != tt.expected {
				t.Errorf("ScoreReflectCompatibility() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScoreTypeCompatibility(t *testing.T) {
	pkg := types.NewPackage("example.com/store", "store")
	statusName := types.NewTypeName(token.NoPos, pkg, "Status", nil)
	statusType := types.NewNamed(statusName, types.Typ[types.String], nil)
	empty := types.NewInterfaceType(nil, nil).Complete()

	tests := []struct {
		name      string
		candidate types.Type
		required  types.Type
		expected  TypeCompatibility
	}{
		{"identical", types.Typ[types.Int], types.Typ[types.Int], TypeIdentical},
		{"interface accepts value", empty, types.Typ[types.String], TypeAssignable},
		{"int prefixes int64", types.Typ[types.Int], types.Typ[types.Int64], TypeWidening},
		{"enum and underlying", types.Typ[types.String], statusType, TypeWidening},
		{"string and float", types.Typ[types.String], types.Typ[types.Float64], TypeIncompatible},
		{"slice", types.NewSlice(types.Typ[types.Int]), types.Typ[types.Int], TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreTypeCompatibility(tt.candidate, tt.required); got != tt.expected {
				t.Errorf("ScoreTypeCompatibility() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTypeCompatibility_String(t *testing.T) {
	for compat, expected := range map[TypeCompatibility]string{
		TypeIdentical:         "identical",
		TypeAssignable:        "assignable",
		TypeWidening:          "widening",
		TypeIncompatible:      "incompatible",
		TypeCompatibility(42): "unknown",
	} {
		if got := compat.String(); got != expected {
			t.Errorf("%d.String() = %q, want %q", int(compat), got, expected)
		}
	}

	if !TypeWidening.NeedsConversion() || TypeAssignable.NeedsConversion() {
		t.Error("only widening needs conversion")
	}

	if TypeIncompatible.Compatible() {
		t.Error("incompatible must not be compatible")
	}
}
