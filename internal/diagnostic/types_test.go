package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	require.NoError(t, d.Error())

	d.AddInfo("restricted", "transient attribute is skipped unless allowed", "store.Person", "revision")
	d.AddWarning("no-writer", "attribute has no writer and is only read", "store.Person", "createdAt",
		"SetCreatedAt", "WithCreatedAt")
	d.AddError("duplicate-attribute", `attribute "id" is declared twice`, "store.Order", "id")

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.HasErrors())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)

	assert.Equal(t,
		"[store.Person] createdAt: [no-writer] attribute has no writer and is only read (did you mean SetCreatedAt, WithCreatedAt?)",
		all[1].String())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, `[store.Order] id: [duplicate-attribute] attribute "id" is declared twice`, err.Error())
}

func TestSeverityEnum_String(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", SeverityEnum(7).String())
	assert.Equal(t, "plain message", Diagnostic{Message: "plain message"}.String())
}
