package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"graph-copier/internal/config"
	"graph-copier/internal/mapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestPathsCmd(t *testing.T) {
	doc := writeFile(t, "request.yaml", `
name: Michael
orders:
  - amount: 3
    person:
      name: Ross
address:
  line: 3rd Ave
`)

	out, err := run(t, "paths", doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"address.line", "name", "orders.amount", "orders.person.name"},
		strings.Fields(out))
}

func TestPathsCmd_Errors(t *testing.T) {
	_, err := run(t, "paths", writeFile(t, "bad.yaml", "first name: Ross\n"))
	require.ErrorIs(t, err, mapping.ErrInvalidPath)

	_, err = run(t, "paths", writeFile(t, "list.yaml", "- a\n- b\n"))
	require.ErrorIs(t, err, mapping.ErrNotDocument)

	_, err = run(t, "paths", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = run(t, "paths")
	require.Error(t, err)
}

func TestProfileCmd(t *testing.T) {
	t.Setenv("GRAPHCOPIER_MERGE_NULLS_ONLY", "true")

	file := writeFile(t, "graph-copier.yaml", `
merge:
  paths: [address.line, orders]
  merge_collections: true
`)

	out, err := run(t, "profile", "--config", file)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))

	assert.Equal(t, []string{"address.line", "orders"}, cfg.Merge.Paths)
	assert.True(t, cfg.Merge.NullsOnly)
	assert.True(t, cfg.Merge.MergeCollections)
	assert.False(t, cfg.Merge.UpdateCollections)
	assert.Equal(t, []string{"default"}, cfg.Merge.Allow)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestProfileCmd_Invalid(t *testing.T) {
	t.Setenv("GRAPHCOPIER_MERGE_ALLOW", "bogus")

	_, err := run(t, "profile")
	require.Error(t, err)
}

func TestRootCmd_LogFlags(t *testing.T) {
	_, err := run(t, "profile", "--log-level", "loud")
	require.Error(t, err)

	_, err = run(t, "profile", "--log-format", "xml")
	require.Error(t, err)

	out, err := run(t, "profile", "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "level: debug")
}

func TestInspectCmd(t *testing.T) {
	out, err := run(t, "inspect", "graph-copier/store", "--output", "yaml")
	require.NoError(t, err)

	var views []tableView
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))

	var person *tableView

	for i := range views {
		if views[i].Type == "graph-copier/store.Person" {
			person = &views[i]
		}
	}

	require.NotNil(t, person)

	var orders attributeView

	for _, attr := range person.Attributes {
		if attr.Name == "orders" {
			orders = attr
		}
	}

	assert.Equal(t, "collection", orders.Kind)
	assert.Equal(t, "Orders()", orders.Reader)
	assert.Equal(t, "AddOrder(...*graph-copier/store.Order)", orders.Adder)

	text, err := run(t, "inspect", "graph-copier/store")
	require.NoError(t, err)
	assert.Contains(t, text, "graph-copier/store.Person")
	assert.Contains(t, text, "add=AddOrder(...*graph-copier/store.Order)")

	_, err = run(t, "inspect", "graph-copier/store", "-o", "xml")
	require.Error(t, err)
}
