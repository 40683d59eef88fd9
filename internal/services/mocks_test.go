package services

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/vvka-141/filemeta/internal/report"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

type mockFileScanner struct {
	scanResult filemeta.ScanResult
	scanErr    error
	scannedDir string
}

func (m *mockFileScanner) ScanDirectory(root string) (filemeta.ScanResult, error) {
	m.scannedDir = root
	return m.scanResult, m.scanErr
}

func (m *mockFileScanner) Paths(_ string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, f := range m.scanResult.Files {
			if !yield(f.Path, nil) {
				return
			}
		}
	}
}

type mockSink struct {
	name    string
	err     error
	written []*report.Table
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Write(_ context.Context, t *report.Table) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, t)
	return nil
}

func scannerOf(s filemeta.FileScanner) ScannerFactory {
	return func(filemeta.ReportConfig) filemeta.FileScanner { return s }
}

func sinksOf(sinks ...report.Sink) SinkFactory {
	return func(filemeta.ReportConfig) ([]report.Sink, error) { return sinks, nil }
}

// recordingLogger captures messages per level.
type recordingLogger struct {
	mu      sync.Mutex
	verbose []string
	infos   []string
	errors  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
