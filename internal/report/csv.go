package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// lockRetryDelay is how often a blocked writer retries the output lock.
const lockRetryDelay = 50 * time.Millisecond

// CSVSink writes the report as a CSV file: one header line, one line per
// record, no index column. The file is replaced atomically while holding
// an exclusive lock on "<path>.lock", so concurrent runs never interleave.
type CSVSink struct {
	path string
}

// NewCSVSink creates a CSV sink. An empty path means file_metadata.csv in
// the working directory.
func NewCSVSink(path string) *CSVSink {
	if path == "" {
		path = filemeta.DefaultCSVFileName
	}
	return &CSVSink{path: path}
}

func (s *CSVSink) Name() string { return "csv" }

// Path returns the destination file.
func (s *CSVSink) Path() string { return s.path }

func (s *CSVSink) Write(ctx context.Context, t *Table) error {
	if err := s.lockAndWrite(ctx, t); err != nil {
		return fmt.Errorf("%w: csv %s: %w", filemeta.ErrOutputFailed, s.path, err)
	}
	return nil
}

func (s *CSVSink) lockAndWrite(ctx context.Context, t *Table) error {
	lockPath := s.path + ".lock"
	lock := flock.New(lockPath)

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock on %s", lockPath)
	}
	defer func() {
		lock.Unlock() //nolint:errcheck
		os.Remove(lockPath)
	}()

	return s.write(t)
}

func (s *CSVSink) write(t *Table) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(t.Headers()); err != nil {
		return err
	}
	if err = w.WriteAll(t.Rows()); err != nil {
		return err
	}

	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
