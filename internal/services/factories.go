package services

import (
	"io"

	"github.com/vvka-141/filemeta/internal/checksum"
	"github.com/vvka-141/filemeta/internal/db"
	"github.com/vvka-141/filemeta/internal/filename"
	"github.com/vvka-141/filemeta/internal/files/scanner"
	"github.com/vvka-141/filemeta/internal/report"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// NewScannerFactory returns a factory building OS scanners configured
// from the run's currency, ignore patterns and checksum settings.
func NewScannerFactory(logger filemeta.Logger) ScannerFactory {
	return func(cfg filemeta.ReportConfig) filemeta.FileScanner {
		opts := []scanner.Option{
			scanner.WithLogger(logger),
			scanner.WithParser(filename.NewParser(filename.WithDefaultCurrency(cfg.DefaultCurrency))),
			scanner.WithIgnorePatterns(cfg.IgnorePatterns...),
		}
		if cfg.Checksum {
			opts = append(opts, scanner.WithChecksum(checksum.New()))
		}
		return scanner.NewScanner(opts...)
	}
}

// NewSinkFactory returns a factory building the sinks enabled in the
// config: console or JSON on stdout, then CSV, then PostgreSQL.
func NewSinkFactory(stdout io.Writer, logger filemeta.Logger) SinkFactory {
	return func(cfg filemeta.ReportConfig) ([]report.Sink, error) {
		var sinks []report.Sink

		switch {
		case cfg.JSON:
			sinks = append(sinks, report.NewJSONSink(stdout))
		case cfg.Console:
			sinks = append(sinks, report.NewConsoleSink(stdout))
		}

		if cfg.CSVPath != "" {
			sinks = append(sinks, report.NewCSVSink(cfg.CSVPath))
		}

		if cfg.PostgresConnection != "" {
			pg, err := db.NewPostgresSink(cfg.PostgresConnection, cfg.PostgresTable,
				db.WithTimeout(cfg.PostgresTimeout),
				db.WithLogger(logger),
			)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, pg)
		}

		return sinks, nil
	}
}

// NewDefaultReportService wires the OS scanner and the standard sinks.
func NewDefaultReportService(stdout io.Writer, logger filemeta.Logger) *ReportService {
	return NewReportService(NewScannerFactory(logger), NewSinkFactory(stdout, logger), logger)
}
