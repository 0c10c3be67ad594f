package merge_test

import (
	"reflect"
	"testing"
	"time"

	"graph-copier/internal/analyze"
	"graph-copier/merge"
	"graph-copier/options"
	"graph-copier/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue(t *testing.T) {
	p := ross()

	name, err := merge.GetValue(p, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ross", name)

	active, err := merge.GetValue(p, "active")
	require.NoError(t, err)
	assert.Equal(t, p.IsActive(), active)

	orders, err := merge.GetValue(p, "orders")
	require.NoError(t, err)
	assert.Equal(t, p.Orders(), orders)

	_, err = merge.GetValue(p, "nmae")
	require.ErrorIs(t, err, merge.ErrAttributeNotFound)

	var attrErr *merge.AttributeError
	require.ErrorAs(t, err, &attrErr)
	assert.Contains(t, attrErr.Suggestions, "name")

	_, err = merge.GetValue(nil, "name")
	require.ErrorIs(t, err, merge.ErrInvalidTarget)

	_, err = merge.GetValue(store.Person{}, "name")
	require.ErrorIs(t, err, merge.ErrInvalidTarget)
}

func TestSetValue(t *testing.T) {
	p := &store.Person{}

	require.NoError(t, merge.SetValue(p, "name", "Joey"))
	assert.Equal(t, "Joey", p.Name)

	require.NoError(t, merge.SetValue(p, "active", true))
	assert.True(t, p.IsActive())

	require.NoError(t, merge.SetValue(p, "nickNames", []any{"Joe"}))
	assert.Equal(t, []string{"Joe"}, p.NickNames)

	err := merge.SetValue(p, "createdAt", time.Now())
	require.ErrorIs(t, err, merge.ErrMissingMutator)
	assert.True(t, p.CreatedAt.IsZero())

	o := &store.Order{}

	require.NoError(t, merge.SetValue(o, "amount", 3))
	assert.InDelta(t, 3.0, o.Amount, 1e-9)

	err = merge.SetValue(o, "amount", "3")
	require.ErrorIs(t, err, merge.ErrIncompatibleType)
}

func TestAddRemoveValue(t *testing.T) {
	p := &store.Person{}

	require.NoError(t, merge.AddValue(p, "orders", &store.Order{ID: 3}))
	require.Len(t, p.Orders(), 1)
	assert.Same(t, p, p.Orders()[0].Person, "orders are added through AddOrder")

	require.NoError(t, merge.AddValue(p, "nickNames", "Joe"))
	require.NoError(t, merge.AddValue(p, "nickNames", "Joey"))
	assert.Equal(t, []string{"Joe", "Joey"}, p.NickNames)

	require.NoError(t, merge.RemoveValue(p, "orders", &store.Order{ID: 3}))
	assert.Empty(t, p.Orders())

	require.NoError(t, merge.RemoveValue(p, "nickNames", "Joe"))
	assert.Equal(t, []string{"Joey"}, p.NickNames)

	require.ErrorIs(t, merge.AddValue(p, "name", "x"), merge.ErrIncompatibleType)
	require.ErrorIs(t, merge.RemoveValue(p, "address", "x"), merge.ErrIncompatibleType)
	require.ErrorIs(t, merge.AddValue(p, "orders", "x"), merge.ErrIncompatibleType)
	require.ErrorIs(t, merge.AddValue(p, "order", &store.Order{}), merge.ErrAttributeNotFound)
}

// twin declares the attribute x twice.
type twin struct {
	A int `json:"x"`
	B int `json:"x"`
}

func TestDuplicateAttribute(t *testing.T) {
	calls := map[string]func(obj *twin) error{
		"Merge":       func(obj *twin) error { return merge.Merge(obj, &twin{A: 1}) },
		"MergeMap":    func(obj *twin) error { return merge.MergeMap(obj, map[string]any{"x": 1}) },
		"SetValue":    func(obj *twin) error { return merge.SetValue(obj, "x", 1) },
		"AddValue":    func(obj *twin) error { return merge.AddValue(obj, "x", 1) },
		"RemoveValue": func(obj *twin) error { return merge.RemoveValue(obj, "x", 1) },

		"MergePaths": func(obj *twin) error {
			return merge.Merge(obj, &twin{A: 1}, options.WithPaths("x"))
		},

		"GetValue": func(obj *twin) error {
			_, err := merge.GetValue(obj, "x")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			obj := &twin{}

			var err error

			require.NotPanics(t, func() { err = call(obj) })
			require.ErrorIs(t, err, analyze.ErrDuplicateAttribute)

			var attrErr *merge.AttributeError
			require.ErrorAs(t, err, &attrErr)
			assert.Empty(t, attrErr.Path)
			assert.Regexp(t, `^type \S+twin: duplicate attribute "x"`, err.Error())
			assert.Equal(t, twin{}, *obj)
		})
	}
}

func TestAttributeError(t *testing.T) {
	err := &merge.AttributeError{Type: reflect.TypeFor[store.Person](), Err: merge.ErrInvalidTarget}
	assert.Equal(t, "type store.Person: invalid target", err.Error())

	err.Path = "address.line"
	assert.Equal(t, "attribute address.line of store.Person: invalid target", err.Error())

	assert.Equal(t, "merge root: invalid target", (&merge.AttributeError{Err: merge.ErrInvalidTarget}).Error())
}
