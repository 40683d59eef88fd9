package services

import (
	"context"
	"errors"

	"github.com/vvka-141/filemeta/internal/db"
	"github.com/vvka-141/filemeta/internal/report"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// ScannerFactory builds the scanner for one run.
type ScannerFactory func(cfg filemeta.ReportConfig) filemeta.FileScanner

// SinkFactory builds the output sinks for one run, in write order.
type SinkFactory func(cfg filemeta.ReportConfig) ([]report.Sink, error)

// LoggedError marks an error that the service already reported through its
// logger, so callers can avoid printing it a second time.
type LoggedError struct {
	Err error
}

func (e *LoggedError) Error() string { return e.Err.Error() }
func (e *LoggedError) Unwrap() error { return e.Err }

// ReportService runs the scan-and-report pipeline.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type ReportService struct {
	scannerFactory ScannerFactory
	sinkFactory    SinkFactory
	logger         filemeta.Logger
}

// NewReportService creates a new ReportService with all dependencies injected.
// Panics on nil dependencies; runtime failures are returned from Run.
func NewReportService(scannerFactory ScannerFactory, sinkFactory SinkFactory, logger filemeta.Logger) *ReportService {
	if scannerFactory == nil {
		panic("scannerFactory cannot be nil")
	}
	if sinkFactory == nil {
		panic("sinkFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ReportService{
		scannerFactory: scannerFactory,
		sinkFactory:    sinkFactory,
		logger:         logger,
	}
}

// Run validates the configuration, scans the root directory, builds the
// report table and writes it to every configured sink, stopping at the
// first failure. Every returned error has been logged exactly once and is
// a *LoggedError.
func (s *ReportService) Run(ctx context.Context, cfg filemeta.ReportConfig) (*report.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, s.fail(err, "Invalid configuration: %v", err)
	}

	sinks, err := s.sinkFactory(cfg)
	if err != nil {
		return nil, s.fail(err, "Failed to prepare outputs: %v", err)
	}

	s.logger.Info("Starting the file metadata extraction process")
	result, err := s.scannerFactory(cfg).ScanDirectory(cfg.Root)
	if err != nil {
		if errors.Is(err, filemeta.ErrNotADirectory) {
			return nil, s.fail(err, "The provided directory path does not exist or is not a directory: %s", cfg.Root)
		}
		return nil, s.fail(err, "Failed to read directory %s: %v", cfg.Root, err)
	}

	if len(result.Files) == 0 {
		s.logger.Info("No files found under %s", result.Root)
	}

	opts := []report.TableOption{report.WithRoot(result.Root)}
	if cfg.Checksum {
		opts = append(opts, report.WithChecksumColumn())
	}
	table, err := report.NewTable(cfg.Layout, result.Files, opts...)
	if err != nil {
		return nil, s.fail(err, "Failed to build report: %v", err)
	}

	for _, sink := range sinks {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(err, "Report cancelled: %v", err)
		}

		s.logger.Verbose("Writing %s output", sink.Name())
		if err := sink.Write(ctx, table); err != nil {
			return nil, s.fail(err, "Failed to write %s output: %v", sink.Name(), err)
		}
		s.logSinkDone(sink, table)
	}

	return table, nil
}

func (s *ReportService) logSinkDone(sink report.Sink, table *report.Table) {
	switch v := sink.(type) {
	case *report.CSVSink:
		s.logger.Info("File metadata saved to %s", v.Path())
	case *db.PostgresSink:
		s.logger.Info("File metadata saved to PostgreSQL table %s (%d row(s), scan %s)", v.Table(), table.Len(), table.ScanID())
	}
}

// fail logs the message once and returns err marked as logged.
func (s *ReportService) fail(err error, format string, args ...interface{}) error {
	s.logger.Error(format, args...)
	return &LoggedError{Err: err}
}
