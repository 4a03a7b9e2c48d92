package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Collect(t *testing.T) {
	var diags Diagnostics

	assert.True(t, diags.IsValid())
	require.NoError(t, diags.Error())

	diags.AddWarning(CodeAmbiguousParent, "implements Describer and Usable", "Relic", "")
	diags.AddInfo(CodeCacheCorrupt, "no module header", "", "")
	assert.True(t, diags.IsValid())

	diags.AddUnmappable("Ticker", "ticks", "chan int", nil)
	diags.AddError(CodeDuplicateDeclaration, `schema name "Item" is declared twice`, "Item", "")

	assert.True(t, diags.HasErrors())
	assert.Len(t, diags.Unmappable(), 1)
	assert.Equal(t, "chan int", diags.Unmappable()[0].TypeName)

	err := diags.Error()
	require.Error(t, err)

	var diagErr *Error
	require.True(t, errors.As(err, &diagErr))
	assert.Len(t, diagErr.Diagnostics.Errors, 2)
	assert.Contains(t, err.Error(), "2 errors")
	assert.Contains(t, err.Error(), "[Ticker] ticks: [unmappable-type] type chan int has no schema mapping")
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddWarning(CodeDuplicateField, "dup", "Monster", "name")
	b.AddUnmappable("Ticker", "ticks", "chan int", nil)
	b.AddInfo(CodeCacheCorrupt, "corrupt", "", "")

	a.Merge(b)

	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Code: CodeDuplicateField, Message: "skipped", Declaration: "Monster", Field: "name"}
	assert.Equal(t, "[Monster] name: [duplicate-field] skipped", d.String())

	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}

func TestError_Single(t *testing.T) {
	var diags Diagnostics
	diags.AddUnmappable("Ticker", "ticks", "chan int", nil)

	assert.Equal(t, "[Ticker] ticks: [unmappable-type] type chan int has no schema mapping", diags.Error().Error())
}
