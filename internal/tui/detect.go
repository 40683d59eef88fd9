package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode represents how console output should be rendered.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, redirected output and NO_COLOR.
	ModePlain Mode = iota
	// ModeStyled is used when a human is looking at the terminal.
	ModeStyled
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// DetectMode determines whether output written to w should be styled.
//
// Returns ModePlain if:
//   - FILEMETA_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - w is not a terminal (file, pipe, buffer)
//
// Returns ModeStyled otherwise.
func DetectMode(w io.Writer) Mode {
	if os.Getenv("FILEMETA_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	if !IsTerminal(w) {
		return ModePlain
	}

	return ModeStyled
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
