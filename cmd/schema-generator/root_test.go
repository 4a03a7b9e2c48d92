package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-generator/internal/config"
	"schema-generator/internal/diagnostic"
	"schema-generator/internal/plan"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRoot_Generate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cfg.schema")

	_, stderr, err := execute(t, "--input", "../../examples/scenario", "--output", out, "--module", "game")
	require.NoError(t, err)
	assert.Contains(t, stderr, "schema written")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "module \"game\" {\n")
	assert.Contains(t, string(data), `    var "drops" type="list,DropItem"`)
}

func TestRoot_Unmappable(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cfg.schema")

	_, stderr, err := execute(t, "--input", "../../examples/broken", "--output", out)
	require.Error(t, err)

	var diagErr *diagnostic.Error
	require.ErrorAs(t, err, &diagErr)

	assert.Contains(t, stderr, "error: 2 unmappable types in 1 declaration")
	assert.Contains(t, stderr, "  - ticks: chan int")
	assert.Contains(t, stderr, diagnostic.Remediation)
	assert.NoFileExists(t, out)
}

func TestRoot_MissingInput(t *testing.T) {
	_, _, err := execute(t, "--output", filepath.Join(t.TempDir(), "cfg.schema"))
	require.Error(t, err)

	var missing *plan.MissingInputError
	assert.ErrorAs(t, err, &missing)
}

func TestRoot_Dump(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cfg.schema")

	stdout, _, err := execute(t, "--input", "../../examples/scenario", "--output", out, "--module", "dumped", "--dump")
	require.NoError(t, err)

	// The effective configuration comes first, flags applied.
	assert.True(t, strings.HasPrefix(stdout, "module: dumped\n"), stdout)
	assert.Contains(t, stdout, "ambiguous_parent: warn\n")

	assert.Contains(t, stdout, `Name: (string) (len=7) "Monster"`)
	assert.Contains(t, stdout, `Name: (string) (len=8) "DropItem"`)
	assert.NoFileExists(t, out)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)

	input, err := filepath.Abs("../../examples/scenario")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("module: fromfile\ninput: "+input+"\noutput: out.schema\n"), 0o644))

	_, _, err = execute(t, "--config", path, "--module", "fromflag")
	require.NoError(t, err)

	// Relative paths follow the config file; flags win over it.
	data, err := os.ReadFile(filepath.Join(dir, "out.schema"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "module \"fromflag\" {\n")
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "extra")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, "warn")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	t.Setenv(EnvLogLevel, "debug")
	buf.Reset()

	logger = newLogger(&buf, "")
	logger.Debug().Msg("from env")
	assert.Contains(t, buf.String(), "from env")
}
