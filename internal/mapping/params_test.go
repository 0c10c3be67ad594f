package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const request = `
name: Ross Oreto
orders:
  - amount: 12.01
    person:
      name: Michael Oreto
  - amount: 13.5
    status: PAID
nickNames: [rossSauce]
address:
  line: 1st st
`

func TestParameterNames(t *testing.T) {
	values, err := ParseDocument([]byte(request))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"address.line",
		"name",
		"nickNames",
		"orders.amount",
		"orders.person.name",
	}, ParameterNames(values))
}

func TestParameterNames_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]any
		expected []string
	}{
		{
			name:     "empty",
			values:   map[string]any{},
			expected: nil,
		},
		{
			name:     "empty list is a value",
			values:   map[string]any{"tags": []any{}},
			expected: []string{"tags"},
		},
		{
			name:     "empty map carries nothing",
			values:   map[string]any{"address": map[string]any{}, "name": "x"},
			expected: []string{"name"},
		},
		{
			name: "any keyed maps",
			values: map[string]any{
				"address": map[any]any{"zip": 37201, "city": "Nashville"},
			},
			expected: []string{"address.city", "address.zip"},
		},
		{
			name: "deeply nested",
			values: map[string]any{
				"orders": []any{map[string]any{"items": []any{map[string]any{"name": "sword"}}}},
			},
			expected: []string{"orders.items.name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParameterNames(tt.values))
		})
	}
}

func TestParseDocument(t *testing.T) {
	values, err := ParseDocument([]byte(`{"name": "Ross", "address": {"line": "1st st"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"address.line", "name"}, ParameterNames(values))

	empty, err := ParseDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseDocument([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, ErrNotDocument)

	_, err = ParseDocument([]byte("name: [unclosed"))
	require.Error(t, err)
}

func TestDocumentPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(request), 0o600))

	paths, err := DocumentPaths(path)
	require.NoError(t, err)
	assert.Contains(t, paths, "orders.person.name")

	_, err = DocumentPaths(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
