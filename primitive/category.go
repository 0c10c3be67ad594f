package primitive

import (
	"fmt"
	"strings"
)

// CategoryEnum is a set of conversion categories, combined with bitwise or.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float widening without precision loss
	CategoryUnsafeNumber                          // int, uint, float narrowing, checked for loss at runtime
	CategoryTextNumber                            // number <-> "42", "4.2"
	CategoryNumericBool                           // integer <-> bool as 0 and 1
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time
	CategoryTimestamp                             // integer(Unix seconds) <-> time.Time
	CategoryDuration                              // string(2h45m) <-> time.Duration
	CategoryNanoseconds                           // integer(nanoseconds) <-> time.Duration
	CategorySeconds                               // float(seconds) <-> time.Duration
	CategoryEnumString                            // string <-> named scalar validated by its IsValid method

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // no categories selected
)

// DefaultCategories are the conversions applied to loosely typed input unless configured otherwise:
// numbers decoded as float64, enum names, RFC3339 timestamps and duration strings.
const DefaultCategories = CategorySafeNumber | CategoryUnsafeNumber | CategoryEnumString | CategoryDatetime | CategoryDuration

// rule reports whether a category converts between two kinds.
type rule func(from, to KindEnum) bool

var rules = map[CategoryEnum]rule{
	CategorySafeNumber: widens,
	CategoryUnsafeNumber: func(from, to KindEnum) bool {
		return from.IsNumber() && to.IsNumber() && !widens(from, to)
	},
	CategoryTextNumber:  between(KindString, KindEnum.IsNumber),
	CategoryNumericBool: between(KindBool, KindEnum.IsInteger),
	CategoryTextualBool: between(KindString, is(KindBool)),
	CategoryDatetime:    between(KindString, is(KindTime)),
	CategoryTimestamp:   between(KindTime, KindEnum.IsInteger),
	CategoryDuration:    between(KindString, is(KindDuration)),
	CategoryNanoseconds: between(KindDuration, func(k KindEnum) bool {
		return k.IsInteger() && k != KindUint64
	}),
	CategorySeconds: between(KindDuration, KindEnum.IsFloat),
	CategoryEnumString: func(from, to KindEnum) bool {
		return from == KindPrimitiveEnum && (to == KindString || to == KindPrimitiveEnum) ||
			from == KindString && to == KindPrimitiveEnum
	},
}

// between matches conversions in both directions between k and the kinds accepted by other.
func between(k KindEnum, other func(KindEnum) bool) rule {
	return func(from, to KindEnum) bool {
		return from == k && other(to) || to == k && other(from)
	}
}

func is(k KindEnum) func(KindEnum) bool {
	return func(other KindEnum) bool { return other == k }
}

// widens reports whether every value of from is represented exactly by to.
// int and uint count as 32 bits wide when converted to and 64 bits wide when converted from.
func widens(from, to KindEnum) bool {
	switch {
	case !from.IsNumber() || !to.IsNumber():
		return false
	case from == to:
		return true
	case from.IsFloat():
		return to.IsFloat() && from.Bits() <= to.Bits()
	case to.IsFloat():
		_, widest := bounds(from)
		return widest <= mantissa(to)
	case from.IsSigned() && to.IsUnsigned():
		return false
	}

	_, widest := bounds(from)
	narrowest, _ := bounds(to)

	if from.IsUnsigned() && to.IsSigned() {
		// the sign bit is lost
		return widest < narrowest
	}

	return widest <= narrowest
}

func bounds(k KindEnum) (narrowest, widest int) {
	if k == KindInt || k == KindUint {
		return 32, 64
	}

	return k.Bits(), k.Bits()
}

func mantissa(k KindEnum) int {
	if k == KindFloat32 {
		return 24
	}

	return 53
}

var categoryNames = map[string]CategoryEnum{
	"safe_number":   CategorySafeNumber,
	"unsafe_number": CategoryUnsafeNumber,
	"text_number":   CategoryTextNumber,
	"numeric_bool":  CategoryNumericBool,
	"textual_bool":  CategoryTextualBool,
	"datetime":      CategoryDatetime,
	"timestamp":     CategoryTimestamp,
	"duration":      CategoryDuration,
	"nanoseconds":   CategoryNanoseconds,
	"seconds":       CategorySeconds,
	"enum_string":   CategoryEnumString,
	"all":           CategoryAll,
	"none":          CategoryNone,
}

// ParseCategories combines the named conversion categories, e.g. "safe_number", "datetime".
func ParseCategories(names ...string) (CategoryEnum, error) {
	var res CategoryEnum

	for _, name := range names {
		category, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown conversion category %q", name)
		}

		res |= category
	}

	return res, nil
}

// Allows reports whether converting from one kind to another belongs to one of the allowed categories.
func Allows(from, to KindEnum, allowed CategoryEnum) bool {
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category != 0 && rules[category](from, to) {
			return true
		}
	}

	return false
}
