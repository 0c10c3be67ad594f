package merge_test

import (
	"fmt"
	"testing"
	"time"

	"graph-copier/internal/mapping"
	"graph-copier/merge"
	"graph-copier/options"
	"graph-copier/primitive"
	"graph-copier/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMap(t *testing.T) {
	p := &store.Person{Name: "Ross"}

	err := merge.MergeMap(p, map[string]any{
		"name":      "Michael",
		"nickNames": []any{"a", "b"},
		"active":    true,
		"tags":      map[string]any{"team": "blue"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Michael", p.Name)
	assert.Equal(t, []string{"a", "b"}, p.NickNames)
	assert.True(t, p.IsActive())
	assert.Equal(t, map[string]string{"team": "blue"}, p.Tags)
}

func TestMergeMap_Coercion(t *testing.T) {
	o := &store.Order{}

	err := merge.MergeMap(o, map[string]any{
		"amount":      12,
		"status":      "PAID",
		"purchasedOn": "2024-01-02T03:04:05Z",
	})
	require.NoError(t, err)

	assert.InDelta(t, 12.0, o.Amount, 1e-9)
	assert.Equal(t, store.StatusPaid, o.Status)
	assert.True(t, o.PurchasedOn.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	err = merge.MergeMap(o, map[string]any{"amount": "lots"})
	require.ErrorIs(t, err, merge.ErrIncompatibleType)
	assert.InDelta(t, 12.0, o.Amount, 1e-9)

	err = merge.MergeMap(o, map[string]any{"status": "LOST"})
	require.ErrorIs(t, err, merge.ErrIncompatibleType)

	require.NoError(t, merge.MergeMap(o, map[string]any{"amount": "7.5"},
		options.WithCoercion(primitive.DefaultCategories|primitive.CategoryTextNumber)))
	assert.InDelta(t, 7.5, o.Amount, 1e-9)
}

func TestMergeMap_UnknownKey(t *testing.T) {
	err := merge.MergeMap(&store.Order{}, map[string]any{"amout": 1})
	require.ErrorIs(t, err, merge.ErrAttributeNotFound)

	var attrErr *merge.AttributeError
	require.ErrorAs(t, err, &attrErr)
	assert.Equal(t, "amout", attrErr.Path)
	require.NotEmpty(t, attrErr.Suggestions)
	assert.Equal(t, "amount", attrErr.Suggestions[0])
}

func TestMergeMap_Exclusion(t *testing.T) {
	a := &store.Address{Line: "1st Ave", City: "Nashville", Zip: "37201"}

	require.NoError(t, merge.MergeMap(a, map[string]any{"line": "ignored"}, options.Excluding()))

	assert.Equal(t, store.Address{Line: "1st Ave"}, *a)
}

func TestMergeMap_NullsOnly(t *testing.T) {
	a := &store.Address{Line: "1st Ave"}

	require.NoError(t, merge.MergeMap(a, map[string]any{"line": "3rd Ave", "city": "Memphis"}, options.NullsOnly()))

	assert.Equal(t, store.Address{Line: "1st Ave", City: "Memphis"}, *a)
}

func TestMergeMap_Collections(t *testing.T) {
	p := &store.Person{NickNames: []string{"a"}}
	p.AddOrder(&store.Order{ID: 1})

	require.NoError(t, merge.MergeMap(p, map[string]any{
		"nickNames": []any{"a", "b"},
		"orders":    []any{&store.Order{ID: 1}, &store.Order{ID: 2}},
	}, options.MergeCollections()))

	assert.Equal(t, []string{"a", "b"}, p.NickNames)
	require.Len(t, p.Orders(), 2)
	assert.Same(t, p, p.Orders()[1].Person)

	require.NoError(t, merge.MergeMap(p, map[string]any{
		"nickNames": []any{"b"},
		"orders":    []any{&store.Order{ID: 2}},
	}, options.UpdateCollections()))

	assert.Equal(t, []string{"b"}, p.NickNames)
	require.Len(t, p.Orders(), 1)
	assert.Equal(t, int64(2), p.Orders()[0].ID)
}

func TestMergeMap_RequiredCapabilities(t *testing.T) {
	err := merge.MergeMap(&store.Person{}, map[string]any{"createdAt": time.Now()})
	require.ErrorIs(t, err, merge.ErrMissingMutator)
}

func TestMergeMap_Invalid(t *testing.T) {
	require.ErrorIs(t, merge.MergeMap(store.Address{}, map[string]any{}), merge.ErrInvalidTarget)
	require.NoError(t, merge.MergeMap((*store.Address)(nil), map[string]any{"line": "x"}))
	require.NoError(t, merge.MergeMap(&store.Address{}, nil))
}

func ExampleMergeMap() {
	request, _ := mapping.ParseDocument([]byte(`
name: Michael
address:
  line: 3rd Ave
`))

	p := &store.Person{Name: "Ross", Address: &store.Address{Line: "1st Ave"}}

	err := merge.MergeMap(p, map[string]any{"name": request["name"]})
	fmt.Println(p.Name, err)

	fmt.Println(mapping.ParameterNames(request))
	// Output:
	// Michael <nil>
	// [address.line name]
}
