package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/filemeta/internal/logging"
	"github.com/vvka-141/filemeta/internal/report"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    id          bigserial PRIMARY KEY,
    scan_id     uuid NOT NULL,
    file_name   text NOT NULL,
    file_path   text NOT NULL,
    size_bytes  bigint NOT NULL,
    created_at  timestamptz NOT NULL,
    modified_at timestamptz NOT NULL,
    amount      numeric,
    currency    text,
    sha256      text,
    scanned_at  timestamptz NOT NULL DEFAULT now()
)`

const insertSQL = `INSERT INTO %s (scan_id, file_name, file_path, size_bytes, created_at, modified_at, amount, currency, sha256)
VALUES ($1::text::uuid, $2, $3, $4, $5, $6, $7::text::numeric, $8, $9)`

// PostgresSink stores report rows in a PostgreSQL table. All rows of a run
// are inserted in one transaction tagged with the table's scan id.
type PostgresSink struct {
	connStr string
	table   pgx.Identifier
	timeout time.Duration
	logger  filemeta.Logger
}

// SinkOption configures a PostgresSink.
type SinkOption func(*PostgresSink)

// WithTimeout bounds the whole write, connection included.
func WithTimeout(d time.Duration) SinkOption {
	return func(s *PostgresSink) { s.timeout = d }
}

// WithLogger sets the logger for connection progress.
func WithLogger(l filemeta.Logger) SinkOption {
	return func(s *PostgresSink) { s.logger = l }
}

// NewPostgresSink creates a sink for the given connection string and table.
// The table name may be schema-qualified ("reports.file_metadata").
func NewPostgresSink(connStr, table string, opts ...SinkOption) (*PostgresSink, error) {
	if connStr == "" {
		return nil, fmt.Errorf("postgres connection string is required: %w", filemeta.ErrInvalidConfig)
	}

	ident, err := ParseTableName(table)
	if err != nil {
		return nil, err
	}

	s := &PostgresSink{
		connStr: connStr,
		table:   ident,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		panic("logger cannot be nil")
	}
	return s, nil
}

// ParseTableName splits an optionally schema-qualified table name.
func ParseTableName(table string) (pgx.Identifier, error) {
	if table == "" {
		table = filemeta.DefaultPostgresTable
	}
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid table name %q: expected [schema.]table: %w", table, filemeta.ErrInvalidConfig)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid table name %q: %w", table, filemeta.ErrInvalidConfig)
		}
	}
	return pgx.Identifier(parts), nil
}

func (s *PostgresSink) Name() string { return "postgres" }

// Table returns the quoted destination table.
func (s *PostgresSink) Table() string { return s.table.Sanitize() }

func (s *PostgresSink) Write(ctx context.Context, t *report.Table) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	pool, err := Connect(ctx, s.connStr)
	if err != nil {
		return err
	}
	defer pool.Close()
	s.logger.Verbose("Connected to PostgreSQL")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", filemeta.ErrDatabase, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	table := s.table.Sanitize()
	if _, err := tx.Exec(ctx, fmt.Sprintf(createTableSQL, table)); err != nil {
		return fmt.Errorf("%w: failed to create table %s: %w", filemeta.ErrDatabase, table, err)
	}

	if err := s.insertRecords(ctx, tx, table, t); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", filemeta.ErrDatabase, err)
	}

	s.logger.Verbose("Inserted %d row(s) into %s", t.Len(), table)
	return nil
}

// insertRecords queues one INSERT per record and sends them as a single batch.
func (s *PostgresSink) insertRecords(ctx context.Context, tx pgx.Tx, table string, t *report.Table) error {
	records := t.Records()
	if len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(insertSQL, table)
	scanID := t.ScanID().String()

	batch := &pgx.Batch{}
	for _, r := range records {
		var amount, currency, checksum *string
		if r.HasAmount() {
			a := r.Amount.Decimal.String()
			c := r.Currency
			amount, currency = &a, &c
		}
		if r.Checksum != "" {
			c := r.Checksum
			checksum = &c
		}
		batch.Queue(query, scanID, r.Name, r.Path, r.SizeBytes, r.CreatedAt, r.ModifiedAt, amount, currency, checksum)
	}

	results := tx.SendBatch(ctx, batch)

	for i := range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("%w: failed to insert %s: %w", filemeta.ErrDatabase, records[i].Path, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("%w: failed to complete batch insert: %w", filemeta.ErrDatabase, err)
	}

	return nil
}

var _ report.Sink = (*PostgresSink)(nil)
