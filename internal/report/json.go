package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// JSONSink prints the report as one JSON document.
type JSONSink struct {
	out io.Writer
	now func() time.Time
}

// NewJSONSink creates a JSON sink writing to out.
func NewJSONSink(out io.Writer) *JSONSink {
	if out == nil {
		panic("out cannot be nil")
	}
	return &JSONSink{
		out: out,
		now: time.Now,
	}
}

type jsonReport struct {
	ScanID      uuid.UUID    `json:"scan_id"`
	Root        string       `json:"root,omitempty"`
	Layout      string       `json:"layout"`
	GeneratedAt string       `json:"generated_at"`
	Files       []jsonRecord `json:"files"`
}

type jsonRecord struct {
	Name       string  `json:"name"`
	Path       string  `json:"path"`
	SizeBytes  int64   `json:"size_bytes"`
	CreatedAt  string  `json:"created_at"`
	ModifiedAt string  `json:"modified_at"`
	Amount     *string `json:"amount,omitempty"`
	Currency   *string `json:"currency,omitempty"`
	SHA256     string  `json:"sha256,omitempty"`
}

func (s *JSONSink) Name() string { return "json" }

func (s *JSONSink) Write(_ context.Context, t *Table) error {
	doc := jsonReport{
		ScanID:      t.ScanID(),
		Root:        t.Root(),
		Layout:      string(t.Layout()),
		GeneratedAt: FormatTime(s.now()),
		Files:       make([]jsonRecord, 0, t.Len()),
	}

	for _, r := range t.Records() {
		rec := jsonRecord{
			Name:       r.Name,
			Path:       r.Path,
			SizeBytes:  r.SizeBytes,
			CreatedAt:  FormatTime(r.CreatedAt),
			ModifiedAt: FormatTime(r.ModifiedAt),
			SHA256:     r.Checksum,
		}
		if t.Layout() == filemeta.LayoutAmounts && r.HasAmount() {
			amount := FormatAmount(r)
			currency := r.Currency
			rec.Amount = &amount
			rec.Currency = &currency
		}
		doc.Files = append(doc.Files, rec)
	}

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: json: %w", filemeta.ErrOutputFailed, err)
	}
	return nil
}
