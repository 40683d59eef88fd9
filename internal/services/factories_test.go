package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/filemeta/internal/db"
	"github.com/vvka-141/filemeta/internal/report"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

func TestDefaultReportService_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"invoice_100.txt",
		"invoice_100_50.txt",
		"invoice_100_usd.txt",
		"invoice_100_50_usd.txt",
		"notes.txt",
	)
	csvPath := filepath.Join(t.TempDir(), filemeta.DefaultCSVFileName)

	var stdout bytes.Buffer
	logger := &recordingLogger{}
	svc := NewDefaultReportService(&stdout, logger)

	cfg := filemeta.ReportConfig{
		Root:            root,
		Layout:          filemeta.LayoutAmounts,
		DefaultCurrency: filemeta.DefaultCurrency,
		Console:         true,
		CSVPath:         csvPath,
	}
	table, err := svc.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())
	assert.Empty(t, logger.errors)
	assert.Contains(t, logger.infos, "File metadata saved to "+csvPath)

	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "File Name,Amount,Currency,File Path,Size (Bytes),Creation Time,Modification Time", lines[0])

	want := map[string][2]string{
		"invoice_100.txt":        {"100.0", "DKK"},
		"invoice_100_50.txt":     {"100.5", "DKK"},
		"invoice_100_usd.txt":    {"100.0", "usd"},
		"invoice_100_50_usd.txt": {"100.5", "usd"},
		"notes.txt":              {"", ""},
	}
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 7, line)
		w, ok := want[fields[0]]
		require.True(t, ok, "unexpected row %q", line)
		assert.Equal(t, w[0], fields[1], fields[0])
		assert.Equal(t, w[1], fields[2], fields[0])
		assert.Equal(t, filepath.Join(root, fields[0]), fields[3])
		assert.Regexp(t, `^\d+$`, fields[4], "size is an integer")
	}

	assert.Contains(t, stdout.String(), "invoice_100_50_usd.txt")
}

func TestDefaultReportService_InvalidRoot(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), filemeta.DefaultCSVFileName)
	var stdout bytes.Buffer
	logger := &recordingLogger{}

	svc := NewDefaultReportService(&stdout, logger)
	_, err := svc.Run(context.Background(), filemeta.ReportConfig{
		Root:            filepath.Join(t.TempDir(), "missing"),
		Layout:          filemeta.LayoutBasic,
		DefaultCurrency: filemeta.DefaultCurrency,
		Console:         true,
		CSVPath:         csvPath,
	})

	assert.Equal(t, filemeta.ExitNotADirectory, filemeta.ExitCodeForError(err))
	assert.Len(t, logger.errors, 1)
	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, csvPath)
}

func TestDefaultReportService_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "file.txt")

	logger := &recordingLogger{}
	svc := NewDefaultReportService(&bytes.Buffer{}, logger)
	_, err := svc.Run(context.Background(), filemeta.ReportConfig{
		Root:            filepath.Join(dir, "file.txt"),
		Layout:          filemeta.LayoutBasic,
		DefaultCurrency: filemeta.DefaultCurrency,
	})

	assert.ErrorIs(t, err, filemeta.ErrNotADirectory)
	assert.Len(t, logger.errors, 1)
}

func TestNewSinkFactory(t *testing.T) {
	factory := NewSinkFactory(&bytes.Buffer{}, &recordingLogger{})

	t.Run("console and csv", func(t *testing.T) {
		sinks, err := factory(filemeta.ReportConfig{Console: true, CSVPath: "out.csv"})
		require.NoError(t, err)
		require.Len(t, sinks, 2)
		assert.IsType(t, &report.ConsoleSink{}, sinks[0])
		assert.IsType(t, &report.CSVSink{}, sinks[1])
	})

	t.Run("json replaces console", func(t *testing.T) {
		sinks, err := factory(filemeta.ReportConfig{JSON: true})
		require.NoError(t, err)
		require.Len(t, sinks, 1)
		assert.IsType(t, &report.JSONSink{}, sinks[0])
	})

	t.Run("postgres", func(t *testing.T) {
		sinks, err := factory(filemeta.ReportConfig{
			PostgresConnection: "postgres://localhost/reports",
			PostgresTable:      "invoices",
		})
		require.NoError(t, err)
		require.Len(t, sinks, 1)
		assert.IsType(t, &db.PostgresSink{}, sinks[0])
	})

	t.Run("bad postgres table", func(t *testing.T) {
		_, err := factory(filemeta.ReportConfig{
			PostgresConnection: "postgres://localhost/reports",
			PostgresTable:      "a.b.c",
		})
		assert.ErrorIs(t, err, filemeta.ErrInvalidConfig)
	})

	t.Run("nothing enabled", func(t *testing.T) {
		sinks, err := factory(filemeta.ReportConfig{})
		require.NoError(t, err)
		assert.Empty(t, sinks)
	})
}

func TestNewScannerFactory_AppliesConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "invoice_7.txt", "skip.tmp")

	scanner := NewScannerFactory(&recordingLogger{})(filemeta.ReportConfig{
		DefaultCurrency: "EUR",
		IgnorePatterns:  []string{"*.tmp"},
		Checksum:        true,
	})

	result, err := scanner.ScanDirectory(root)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "EUR", result.Files[0].Currency)
	assert.Len(t, result.Files[0].Checksum, 64)
}
