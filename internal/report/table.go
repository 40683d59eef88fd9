package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// Column headers as they appear in every rendering.
const (
	HeaderFileName         = "File Name"
	HeaderFilePath         = "File Path"
	HeaderSize             = "Size (Bytes)"
	HeaderCreationTime     = "Creation Time"
	HeaderModificationTime = "Modification Time"
	HeaderAmount           = "Amount"
	HeaderCurrency         = "Currency"
	HeaderChecksum         = "SHA-256"
)

// Column is one report column.
type Column struct {
	Header  string
	Numeric bool
	Value   func(filemeta.FileRecord) string
}

var (
	nameColumn     = Column{Header: HeaderFileName, Value: func(r filemeta.FileRecord) string { return r.Name }}
	pathColumn     = Column{Header: HeaderFilePath, Value: func(r filemeta.FileRecord) string { return r.Path }}
	sizeColumn     = Column{Header: HeaderSize, Numeric: true, Value: func(r filemeta.FileRecord) string { return FormatSize(r.SizeBytes) }}
	createdColumn  = Column{Header: HeaderCreationTime, Value: func(r filemeta.FileRecord) string { return FormatTime(r.CreatedAt) }}
	modifiedColumn = Column{Header: HeaderModificationTime, Value: func(r filemeta.FileRecord) string { return FormatTime(r.ModifiedAt) }}
	amountColumn   = Column{Header: HeaderAmount, Numeric: true, Value: func(r filemeta.FileRecord) string { return FormatAmount(r) }}
	currencyColumn = Column{Header: HeaderCurrency, Value: func(r filemeta.FileRecord) string { return r.Currency }}
	checksumColumn = Column{Header: HeaderChecksum, Value: func(r filemeta.FileRecord) string { return r.Checksum }}
)

// Columns returns the column set of a layout.
func Columns(layout filemeta.Layout, withChecksum bool) []Column {
	var cols []Column
	switch layout {
	case filemeta.LayoutAmounts:
		cols = []Column{nameColumn, amountColumn, currencyColumn, pathColumn, sizeColumn, createdColumn, modifiedColumn}
	default:
		cols = []Column{nameColumn, pathColumn, sizeColumn, createdColumn, modifiedColumn}
	}
	if withChecksum {
		cols = append(cols, checksumColumn)
	}
	return cols
}

// Table is an immutable, ordered report: one row per file record.
type Table struct {
	scanID   uuid.UUID
	root     string
	layout   filemeta.Layout
	checksum bool
	columns  []Column
	records  []filemeta.FileRecord
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithChecksumColumn appends the SHA-256 column.
func WithChecksumColumn() TableOption {
	return func(t *Table) { t.checksum = true }
}

// WithScanID sets the run identifier instead of generating one.
func WithScanID(id uuid.UUID) TableOption {
	return func(t *Table) { t.scanID = id }
}

// WithRoot records the scanned root directory.
func WithRoot(root string) TableOption {
	return func(t *Table) { t.root = root }
}

// NewTable builds a report table. Records are normalized and copied, so
// later changes to the input slice do not affect the table.
func NewTable(layout filemeta.Layout, records []filemeta.FileRecord, opts ...TableOption) (*Table, error) {
	l, err := filemeta.ParseLayout(string(layout))
	if err != nil {
		return nil, err
	}

	t := &Table{layout: l, scanID: uuid.New()}
	for _, opt := range opts {
		opt(t)
	}

	t.records = make([]filemeta.FileRecord, len(records))
	for i, r := range records {
		t.records[i] = r.Normalize()
	}
	t.columns = Columns(t.layout, t.checksum)

	return t, nil
}

// ScanID identifies the run that produced the table.
func (t *Table) ScanID() uuid.UUID { return t.scanID }

// Root returns the scanned root directory, if known.
func (t *Table) Root() string { return t.root }

// Layout returns the table's layout.
func (t *Table) Layout() filemeta.Layout { return t.layout }

// HasChecksum reports whether the SHA-256 column is present.
func (t *Table) HasChecksum() bool { return t.checksum }

// Columns returns the table's columns in display order.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Records returns the normalized records in traversal order.
func (t *Table) Records() []filemeta.FileRecord {
	return append([]filemeta.FileRecord(nil), t.records...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.records) }

// Headers returns the column headers.
func (t *Table) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	return headers
}

// Rows returns every record rendered as strings, one slice per row.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.records))
	for i, r := range t.records {
		row := make([]string, len(t.columns))
		for j, c := range t.columns {
			row[j] = c.Value(r)
		}
		rows[i] = row
	}
	return rows
}

// FormatTime renders a timestamp in UTC with microsecond precision.
// The zero time renders empty.
func FormatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(filemeta.TimestampLayout)
}

// FormatAmount renders the amount with at least one decimal place
// ("100.0", "100.5"). An absent amount renders empty.
func FormatAmount(r filemeta.FileRecord) string {
	if !r.Amount.Valid {
		return ""
	}
	s := r.Amount.Decimal.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatSize renders a byte count.
func FormatSize(n int64) string {
	return strconv.FormatInt(n, 10)
}
