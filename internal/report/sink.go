package report

import "context"

// Sink writes a finished report somewhere.
type Sink interface {
	// Name identifies the sink in log messages.
	Name() string

	// Write renders the whole table. Sinks never partially succeed silently:
	// any failure is returned wrapped in filemeta.ErrOutputFailed.
	Write(ctx context.Context, t *Table) error
}
