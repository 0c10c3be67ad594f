package primitive

import (
	"reflect"
	"strconv"
	"time"
)

// KindEnum classifies the scalar types the merge engine treats as atomic values.
type KindEnum int

const (
	_ KindEnum = iota // zero is the invalid kind

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named integer, boolean or string type

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

type numberClass int

const (
	notNumber numberClass = iota
	signed
	unsigned
	float
)

// kindInfo describes a kind: its name, the number class and the width in bits of numbers.
type kindInfo struct {
	name  string
	class numberClass
	bits  int
}

var kinds = [...]kindInfo{
	KindInt:           {"KindInt", signed, strconv.IntSize},
	KindInt8:          {"KindInt8", signed, 8},
	KindInt16:         {"KindInt16", signed, 16},
	KindInt32:         {"KindInt32", signed, 32},
	KindInt64:         {"KindInt64", signed, 64},
	KindUint:          {"KindUint", unsigned, strconv.IntSize},
	KindUint8:         {"KindUint8", unsigned, 8},
	KindUint16:        {"KindUint16", unsigned, 16},
	KindUint32:        {"KindUint32", unsigned, 32},
	KindUint64:        {"KindUint64", unsigned, 64},
	KindFloat32:       {"KindFloat32", float, 32},
	KindFloat64:       {"KindFloat64", float, 64},
	KindBool:          {"KindBool", notNumber, 0},
	KindString:        {"KindString", notNumber, 0},
	KindTime:          {"KindTime", notNumber, 0},
	KindDuration:      {"KindDuration", notNumber, 0},
	KindPrimitiveEnum: {"KindPrimitiveEnum", notNumber, 0},
}

func (k KindEnum) info() kindInfo {
	if k <= 0 || int(k) >= KindTotal {
		return kindInfo{}
	}

	return kinds[k]
}

func (k KindEnum) String() string {
	if name := k.info().name; name != "" {
		return name
	}

	return "KindEnum(" + strconv.Itoa(int(k)) + ")"
}

func (k KindEnum) IsNumber() bool {
	return k.info().class != notNumber
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	return k.info().class == float
}

func (k KindEnum) IsSigned() bool {
	return k.info().class == signed
}

func (k KindEnum) IsUnsigned() bool {
	return k.info().class == unsigned
}

// Bits is the width of a number kind; int and uint report the platform width.
func (k KindEnum) Bits() int {
	if !k.IsNumber() {
		panic("only number kinds have a meaningful width, but requested for: " + k.String())
	}

	return k.info().bits
}

var exactKinds = map[reflect.Type]KindEnum{
	reflect.TypeFor[int]():           KindInt,
	reflect.TypeFor[int8]():          KindInt8,
	reflect.TypeFor[int16]():         KindInt16,
	reflect.TypeFor[int32]():         KindInt32,
	reflect.TypeFor[int64]():         KindInt64,
	reflect.TypeFor[uint]():          KindUint,
	reflect.TypeFor[uint8]():         KindUint8,
	reflect.TypeFor[uint16]():        KindUint16,
	reflect.TypeFor[uint32]():        KindUint32,
	reflect.TypeFor[uint64]():        KindUint64,
	reflect.TypeFor[float32]():       KindFloat32,
	reflect.TypeFor[float64]():       KindFloat64,
	reflect.TypeFor[bool]():          KindBool,
	reflect.TypeFor[string]():        KindString,
	reflect.TypeFor[time.Time]():     KindTime,
	reflect.TypeFor[time.Duration](): KindDuration,
}

// FromReflectType returns the kind of rtype: the exact basic, time and duration types map to
// their own kinds, other named integer, boolean and string types to KindPrimitiveEnum, and
// everything else to the invalid zero kind.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	if k, ok := exactKinds[rtype]; ok {
		return k
	}

	switch rtype.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.String, reflect.Bool:
		return KindPrimitiveEnum
	}

	return 0
}

// IsScalar reports whether values of rtype are compared and overwritten as a whole:
// every kind known to FromReflectType plus the remaining basic reflect kinds
// (named floats, complex numbers, uintptr).
func IsScalar(rtype reflect.Type) bool {
	if FromReflectType(rtype) != 0 {
		return true
	}

	switch rtype.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Uintptr:
		return true
	}

	return false
}
