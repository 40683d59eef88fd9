package report

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/filemeta/internal/tui"
	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// ConsoleSink prints the report as a table.
// Output to a terminal gets rounded borders and colors; anything else gets plain ASCII.
type ConsoleSink struct {
	out    io.Writer
	styled bool
}

// NewConsoleSink creates a console sink writing to out.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	if out == nil {
		panic("out cannot be nil")
	}
	return &ConsoleSink{
		out:    out,
		styled: tui.DetectMode(out) == tui.ModeStyled,
	}
}

func (s *ConsoleSink) Name() string { return "console" }

func (s *ConsoleSink) Write(_ context.Context, t *Table) error {
	if _, err := fmt.Fprintln(s.out, s.Render(t)); err != nil {
		return fmt.Errorf("%w: console: %w", filemeta.ErrOutputFailed, err)
	}
	return nil
}

// Render returns the table as text without writing it.
func (s *ConsoleSink) Render(t *Table) string {
	cols := t.Columns()

	tbl := table.New().
		Headers(t.Headers()...).
		Rows(t.Rows()...)

	if !s.styled {
		return tbl.
			Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				style := lipgloss.NewStyle().Padding(0, 1)
				if row != table.HeaderRow && col < len(cols) && cols[col].Numeric {
					style = style.Align(lipgloss.Right)
				}
				return style
			}).
			Render()
	}

	return tbl.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tui.BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tui.HeaderStyle
			case col < len(cols) && cols[col].Numeric:
				return tui.NumericCellStyle
			default:
				return tui.CellStyle
			}
		}).
		Render()
}
