package options_test

import (
	"fmt"
	"graph-copier/options"
	"graph-copier/primitive"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	o := options.New()

	assert.Empty(t, o.Paths)
	assert.False(t, o.Exclusion)
	assert.Equal(t, options.AllowDefault, o.Allow)
	assert.Equal(t, primitive.DefaultCategories, o.Coercion)
	require.NotNil(t, o.Logger)
}

func TestNew_UpdateImpliesMerge(t *testing.T) {
	o := options.New(options.UpdateCollections())
	assert.True(t, o.MergeCollections)

	o = options.New(options.Excluding("address.line"), options.WithLogger(nil), nil)
	assert.True(t, o.Exclusion)
	assert.Equal(t, []string{"address.line"}, o.Paths)
	assert.NotNil(t, o.Logger)
}

func TestAllowEnum_Admits(t *testing.T) {
	tests := []struct {
		allow    options.AllowEnum
		category options.CategoryEnum
		want     bool
	}{
		{options.AllowNone, options.CategoryPlain, true},
		{options.AllowNone, options.CategoryStatic, false},
		{options.AllowDefault, options.CategoryStatic | options.CategoryImmutable, true},
		{options.AllowDefault, options.CategoryTransient, false},
		{options.AllowStatic, options.CategoryStatic | options.CategoryUnderscored, false},
		{options.AllowAll, options.CategoryAll, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s admits %s", tt.allow, tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.allow.Admits(tt.category))
		})
	}
}

func TestParseAllow(t *testing.T) {
	allow, err := options.ParseAllow("static", " Underscored ")
	require.NoError(t, err)
	assert.Equal(t, options.AllowStatic|options.AllowUnderscored, allow)

	allow, err = options.ParseAllow("default", "transient")
	require.NoError(t, err)
	assert.True(t, allow.Admits(options.CategoryTransient|options.CategoryImmutable))

	_, err = options.ParseAllow("final")
	require.Error(t, err)
}

func ExampleCategoryEnum_String() {
	fmt.Println(options.CategoryPlain)
	fmt.Println(options.CategoryStatic | options.CategoryUnderscored)
	fmt.Println(options.AllowDefault)
	// Output:
	// plain
	// static|underscored
	// static|immutable
}
