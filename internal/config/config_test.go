package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `root: /srv/invoices
layout: amounts
default_currency: EUR
ignore:
  - "*.tmp"
  - archive/
checksum: true

output:
  console: false
  csv: true
  csv_path: out/report.csv
  json: true

postgres:
  connection: postgresql://localhost:5432/reports
  table: invoices
  timeout: 30s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/srv/invoices", cfg.Root)
	assert.Equal(t, "amounts", cfg.Layout)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, []string{"*.tmp", "archive/"}, cfg.Ignore)
	assert.True(t, cfg.Checksum)
	require.NotNil(t, cfg.Output.Console)
	assert.False(t, *cfg.Output.Console)
	require.NotNil(t, cfg.Output.CSV)
	assert.True(t, *cfg.Output.CSV)
	assert.Equal(t, "out/report.csv", cfg.Output.CSVPath)
	assert.True(t, cfg.Output.JSON)
	assert.Equal(t, "postgresql://localhost:5432/reports", cfg.Postgres.Connection)
	assert.Equal(t, "invoices", cfg.Postgres.Table)

	timeout, err := cfg.PostgresTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("layout: basic\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "basic", cfg.Layout)
	assert.Nil(t, cfg.Output.Console, "unset booleans stay nil so defaults apply")
	assert.Nil(t, cfg.Output.CSV)
	assert.Empty(t, cfg.Postgres.Connection)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: ./data\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.Root)
}

func TestPostgresTimeout(t *testing.T) {
	var nilCfg *ProjectConfig
	d, err := nilCfg.PostgresTimeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg := &ProjectConfig{Postgres: PostgresConfig{Timeout: "soon"}}
	_, err = cfg.PostgresTimeout()
	assert.ErrorContains(t, err, "invalid postgres.timeout")
}
