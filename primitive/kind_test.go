package primitive_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"graph-copier/primitive"

	"github.com/stretchr/testify/assert"
)

type (
	status string
	point  struct{ X, Y int }
	ratio  float64
)

func TestIsScalar(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"int", 0, true},
		{"named int", level(0), true},
		{"named string", status(""), true},
		{"named float", ratio(0), true},
		{"complex", complex(1, 2), true},
		{"time", time.Time{}, true},
		{"duration", time.Second, true},
		{"struct", point{}, false},
		{"pointer", &point{}, false},
		{"slice", []int{}, false},
		{"map", map[string]int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, primitive.IsScalar(reflect.TypeOf(tt.value)))
		})
	}
}

func TestKindEnum(t *testing.T) {
	assert.True(t, primitive.KindUint16.IsUnsigned())
	assert.True(t, primitive.KindInt8.IsSigned())
	assert.True(t, primitive.KindFloat32.IsFloat())
	assert.False(t, primitive.KindString.IsNumber())
	assert.Equal(t, 16, primitive.KindUint16.Bits())
	assert.Equal(t, "KindEnum(99)", primitive.KindEnum(99).String())
}

func Example() {
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(int64(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(level(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(status(""))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Duration(0))))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(time.Time{})))
	fmt.Println(primitive.FromReflectType(reflect.TypeOf(point{})))
	// Output:
	// KindInt64
	// KindPrimitiveEnum
	// KindPrimitiveEnum
	// KindDuration
	// KindTime
	// KindEnum(0)
}
