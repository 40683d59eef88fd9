package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

func buildFromArgs(t *testing.T, argv ...string) (filemeta.ReportConfig, error) {
	t.Helper()
	cmd, flags := newScanCmdWithFlags()
	require.NoError(t, cmd.ParseFlags(argv))
	return buildReportConfig(cmd, flags, cmd.Flags().Args(), false)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filemeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuildReportConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := buildFromArgs(t, "/data")
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.Root)
	assert.Equal(t, filemeta.LayoutBasic, cfg.Layout)
	assert.Equal(t, "DKK", cfg.DefaultCurrency)
	assert.True(t, cfg.Console)
	assert.Equal(t, "file_metadata.csv", cfg.CSVPath)
	assert.False(t, cfg.JSON)
	assert.Empty(t, cfg.PostgresConnection)
	assert.Equal(t, "file_metadata", cfg.PostgresTable)
}

func TestBuildReportConfig_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `root: /from/file
layout: amounts
default_currency: SEK
ignore: ["*.tmp"]
output:
  console: false
  csv_path: file.csv
postgres:
  connection: postgres://file/db
  table: from_file
  timeout: 10s
`)

	t.Run("file only", func(t *testing.T) {
		cfg, err := buildFromArgs(t, "--config", path)
		require.NoError(t, err)
		assert.Equal(t, "/from/file", cfg.Root)
		assert.Equal(t, filemeta.LayoutAmounts, cfg.Layout)
		assert.Equal(t, "SEK", cfg.DefaultCurrency)
		assert.Equal(t, []string{"*.tmp"}, cfg.IgnorePatterns)
		assert.False(t, cfg.Console)
		assert.Equal(t, "file.csv", cfg.CSVPath)
		assert.Equal(t, "postgres://file/db", cfg.PostgresConnection)
		assert.Equal(t, "from_file", cfg.PostgresTable)
		assert.Equal(t, 10*time.Second, cfg.PostgresTimeout)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv(EnvRoot, "/from/env")
		t.Setenv(EnvDefaultCurrency, "NOK")
		t.Setenv(EnvPostgresConnection, "postgres://env/db")

		cfg, err := buildFromArgs(t, "--config", path)
		require.NoError(t, err)
		assert.Equal(t, "/from/env", cfg.Root)
		assert.Equal(t, "NOK", cfg.DefaultCurrency)
		assert.Equal(t, "postgres://env/db", cfg.PostgresConnection)
	})

	t.Run("flags beat env", func(t *testing.T) {
		t.Setenv(EnvRoot, "/from/env")
		t.Setenv(EnvDefaultCurrency, "NOK")

		cfg, err := buildFromArgs(t, "--config", path, "/from/arg",
			"--layout", "basic",
			"--default-currency", "EUR",
			"--ignore", "*.bak",
			"--csv", "flag.csv",
			"--postgres-table", "from_flag",
			"--postgres-timeout", "1m",
		)
		require.NoError(t, err)
		assert.Equal(t, "/from/arg", cfg.Root)
		assert.Equal(t, filemeta.LayoutBasic, cfg.Layout)
		assert.Equal(t, "EUR", cfg.DefaultCurrency)
		assert.Equal(t, []string{"*.tmp", "*.bak"}, cfg.IgnorePatterns)
		assert.Equal(t, "flag.csv", cfg.CSVPath)
		assert.Equal(t, "from_flag", cfg.PostgresTable)
		assert.Equal(t, time.Minute, cfg.PostgresTimeout)
	})
}

func TestBuildReportConfig_OutputFlags(t *testing.T) {
	clearEnv(t)

	cfg, err := buildFromArgs(t, "/data", "--no-csv", "--no-console")
	require.NoError(t, err)
	assert.Empty(t, cfg.CSVPath)
	assert.False(t, cfg.Console)

	cfg, err = buildFromArgs(t, "/data", "--json")
	require.NoError(t, err)
	assert.True(t, cfg.JSON)
	assert.False(t, cfg.Console, "json takes over stdout")
	assert.NoError(t, cfg.Validate())
}

func TestBuildReportConfig_ConfigDisablesCSV(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "output:\n  csv: false\n")

	cfg, err := buildFromArgs(t, "/data", "--config", path)
	require.NoError(t, err)
	assert.Empty(t, cfg.CSVPath)
}

func TestBuildReportConfig_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing explicit config", func(t *testing.T) {
		_, err := buildFromArgs(t, "/data", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, filemeta.ErrInvalidConfig)
	})

	t.Run("bad layout in file", func(t *testing.T) {
		_, err := buildFromArgs(t, "/data", "--config", writeConfig(t, "layout: wide\n"))
		assert.ErrorIs(t, err, filemeta.ErrInvalidConfig)
	})

	t.Run("bad timeout in file", func(t *testing.T) {
		_, err := buildFromArgs(t, "/data", "--config", writeConfig(t, "postgres:\n  timeout: later\n"))
		assert.ErrorIs(t, err, filemeta.ErrInvalidConfig)
	})

	t.Run("bad layout flag", func(t *testing.T) {
		_, err := buildFromArgs(t, "/data", "--layout", "wide")
		assert.ErrorIs(t, err, filemeta.ErrInvalidConfig)
	})
}
