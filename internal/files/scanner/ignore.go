package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// ignoreRules wraps a compiled gitignore matcher. A nil *ignoreRules matches nothing.
type ignoreRules struct {
	matcher *ignore.GitIgnore
}

// loadIgnoreRules compiles the configured patterns together with the
// root's .filemetaignore file. The ignore file itself is always excluded.
func (s *Scanner) loadIgnoreRules(root string) (*ignoreRules, error) {
	lines := append([]string(nil), s.ignorePatterns...)

	ignorePath := filepath.Join(root, filemeta.IgnoreFileName)
	content, err := s.fsProvider.ReadFile(ignorePath)
	switch {
	case err == nil:
		s.logger.Verbose("Loaded ignore rules from %s", ignorePath)
		lines = append(lines, strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")...)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("error reading %s: %w", ignorePath, err)
	}

	// The ignore file itself never shows up in the report.
	lines = append(lines, "/"+filemeta.IgnoreFileName)

	return &ignoreRules{matcher: ignore.CompileIgnoreLines(lines...)}, nil
}

func (r *ignoreRules) matchesFile(relPath string) bool {
	if r == nil || r.matcher == nil {
		return false
	}
	return r.matcher.MatchesPath(relPath)
}

func (r *ignoreRules) matchesDir(relPath string) bool {
	if r == nil || r.matcher == nil {
		return false
	}
	return r.matcher.MatchesPath(relPath + "/")
}
