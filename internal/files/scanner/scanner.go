package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/vvka-141/filemeta/internal/checksum"
	"github.com/vvka-141/filemeta/internal/filename"
	"github.com/vvka-141/filemeta/internal/files/filesystem"
	"github.com/vvka-141/filemeta/internal/logging"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// errStopWalk unwinds a walk when a Paths consumer stops iterating.
var errStopWalk = errors.New("walk stopped by consumer")

// Scanner discovers regular files in a directory tree and builds one
// filemeta.FileRecord per file. The scan is single-threaded and the first
// per-file failure aborts it.
type Scanner struct {
	fsProvider     filesystem.FileSystemProvider
	parser         *filename.Parser
	logger         filemeta.Logger
	calculator     checksum.Calculator
	ignorePatterns []string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFileSystem replaces the OS filesystem, primarily for in-memory tests.
func WithFileSystem(fsProvider filesystem.FileSystemProvider) Option {
	return func(s *Scanner) { s.fsProvider = fsProvider }
}

// WithParser sets the file name parser.
func WithParser(p *filename.Parser) Option {
	return func(s *Scanner) { s.parser = p }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l filemeta.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithChecksum enables content checksums using the given calculator.
func WithChecksum(c checksum.Calculator) Option {
	return func(s *Scanner) { s.calculator = c }
}

// WithIgnorePatterns adds gitignore-style exclusion patterns.
// They are combined with the root's .filemetaignore file, if any.
func WithIgnorePatterns(patterns ...string) Option {
	return func(s *Scanner) { s.ignorePatterns = append(s.ignorePatterns, patterns...) }
}

// NewScanner creates a new file scanner.
// Uses the OS filesystem, the default parser and a NullLogger unless overridden.
// Panics if an option sets a nil filesystem, parser or logger.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		fsProvider: filesystem.NewOSFileSystem(),
		parser:     filename.NewParser(),
		logger:     logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if s.parser == nil {
		panic("parser cannot be nil")
	}
	if s.logger == nil {
		panic("logger cannot be nil")
	}
	return s
}

// ScanDirectory recursively scans a directory and returns one record per regular file.
//
// Parameters:
//   - root: Root directory to scan
//
// Returns:
//   - filemeta.ScanResult: Scan results in traversal order
//   - error: filemeta.ErrNotADirectory for a bad root, filemeta.ErrStatFailed
//     when any file's metadata cannot be read, or a walk error
func (s *Scanner) ScanDirectory(root string) (filemeta.ScanResult, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return filemeta.ScanResult{}, err
	}

	rules, err := s.loadIgnoreRules(dir.Path())
	if err != nil {
		return filemeta.ScanResult{}, err
	}

	s.logger.Info("Reading directory: %s", dir.Path())

	var files []filemeta.FileRecord
	err = s.walk(dir, rules, func(file filesystem.File) error {
		s.logger.Verbose("Processing file: %s", file.Info().Name())

		record, err := s.processFile(file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", file.RelativePath(), err)
		}

		files = append(files, record)
		return nil
	})
	if err != nil {
		return filemeta.ScanResult{}, err
	}

	s.logger.Info("Finished reading directory: %d file(s)", len(files))

	return filemeta.ScanResult{
		Root:  dir.Path(),
		Files: files,
	}, nil
}

// Paths lazily yields the absolute path of every regular file under root.
// A bad root or a walk failure is yielded once as an error with an empty path.
func (s *Scanner) Paths(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		dir, err := s.fsProvider.Open(root)
		if err != nil {
			yield("", err)
			return
		}

		rules, err := s.loadIgnoreRules(dir.Path())
		if err != nil {
			yield("", err)
			return
		}

		err = s.walk(dir, rules, func(file filesystem.File) error {
			if !yield(file.Path(), nil) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			yield("", err)
		}
	}
}

// walk calls visit for every regular, non-ignored file under dir.
func (s *Scanner) walk(dir filesystem.Directory, rules *ignoreRules, visit func(filesystem.File) error) error {
	return dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		info := file.Info()
		relPath := filepath.ToSlash(file.RelativePath())

		if info.IsDir() {
			if relPath != "." && rules.matchesDir(relPath) {
				s.logger.Verbose("Skipping ignored directory: %s", relPath)
				return fs.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			s.logger.Verbose("Skipping non-regular file: %s", relPath)
			return nil
		}

		if rules.matchesFile(relPath) {
			s.logger.Verbose("Skipping ignored file: %s", relPath)
			return nil
		}

		return visit(file)
	})
}

// processFile reads a file's metadata and parses its name.
func (s *Scanner) processFile(file filesystem.File) (filemeta.FileRecord, error) {
	info := file.Info()

	ft, err := s.fsProvider.Times(file.Path())
	if err != nil {
		return filemeta.FileRecord{}, fmt.Errorf("%w: %s: %w", filemeta.ErrStatFailed, file.Path(), err)
	}

	parsed := s.parser.Parse(info.Name())

	record := filemeta.FileRecord{
		Name:       info.Name(),
		Path:       file.Path(),
		SizeBytes:  info.Size(),
		CreatedAt:  ft.Created,
		ModifiedAt: ft.Modified,
		Amount:     parsed.Amount,
		Currency:   parsed.Currency,
	}

	if s.calculator != nil {
		content, err := file.ReadContent()
		if err != nil {
			return filemeta.FileRecord{}, fmt.Errorf("%w: failed to read %s: %w", filemeta.ErrStatFailed, file.Path(), err)
		}
		record.Checksum = s.calculator.Calculate(content)
	}

	return record.Normalize(), nil
}

// Verify Scanner implements the interface at compile time
var _ filemeta.FileScanner = (*Scanner)(nil)
