package filemeta

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FileRecord is one entry per scanned file.
type FileRecord struct {
	// Name is the base file name.
	Name string

	// Path is the full resolved path.
	Path string

	SizeBytes  int64
	CreatedAt  time.Time
	ModifiedAt time.Time

	// Amount is parsed from the file name. Invalid when the name does not match.
	Amount decimal.NullDecimal

	// Currency is empty whenever Amount is not valid.
	Currency string

	// Checksum is the SHA-256 of the content, only filled when requested.
	Checksum string
}

// HasAmount reports whether an amount was extracted from the file name.
func (r FileRecord) HasAmount() bool {
	return r.Amount.Valid
}

// Normalize returns a copy with the amount/currency invariant enforced:
// a record without an amount never carries a currency.
func (r FileRecord) Normalize() FileRecord {
	if !r.Amount.Valid {
		r.Amount = decimal.NullDecimal{}
		r.Currency = ""
	}
	return r
}

// Layout selects the set of report columns.
type Layout string

const (
	// LayoutBasic renders name, path, size and timestamps.
	LayoutBasic Layout = "basic"

	// LayoutAmounts adds the amount and currency parsed from file names.
	LayoutAmounts Layout = "amounts"
)

// ParseLayout converts a user-supplied layout name.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutBasic:
		return LayoutBasic, nil
	case LayoutAmounts:
		return LayoutAmounts, nil
	default:
		return "", fmt.Errorf("unknown layout %q (expected %q or %q): %w", s, LayoutBasic, LayoutAmounts, ErrInvalidConfig)
	}
}

// ReportConfig contains all parameters needed for a scan-and-report run.
type ReportConfig struct {
	// Root is the directory to scan.
	Root string

	// Layout selects the report columns.
	Layout Layout

	// DefaultCurrency is applied when an amount has no currency token.
	DefaultCurrency string

	// IgnorePatterns are gitignore-style patterns excluded from the scan.
	IgnorePatterns []string

	// Checksum adds a SHA-256 column.
	Checksum bool

	// Console prints the table to stdout.
	Console bool

	// CSVPath is the CSV output file. Empty disables CSV output.
	CSVPath string

	// JSON prints the report as JSON to stdout instead of the console table.
	JSON bool

	// PostgresConnection enables the PostgreSQL sink when non-empty.
	PostgresConnection string

	// PostgresTable is the destination table for the PostgreSQL sink.
	PostgresTable string

	// PostgresTimeout bounds the PostgreSQL write. Zero means no limit.
	PostgresTimeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the ReportConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ReportConfig) Validate() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("root directory is required: %w", ErrInvalidConfig))
	}

	if _, err := ParseLayout(string(c.Layout)); err != nil {
		errs = append(errs, err)
	}

	if c.DefaultCurrency == "" {
		errs = append(errs, fmt.Errorf("default currency cannot be empty: %w", ErrInvalidConfig))
	}

	if c.JSON && c.Console {
		errs = append(errs, fmt.Errorf("console and JSON output both write to stdout, pick one: %w", ErrInvalidConfig))
	}

	if c.PostgresTimeout < 0 {
		errs = append(errs, fmt.Errorf("postgres timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if c.PostgresConnection != "" && c.PostgresTable == "" {
		errs = append(errs, fmt.Errorf("postgres table is required when a postgres connection is set: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
