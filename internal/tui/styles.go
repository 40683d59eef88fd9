package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
)

// Styles for report tables.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// NumericCellStyle right-aligns sizes and amounts.
	NumericCellStyle = CellStyle.
				Align(lipgloss.Right)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)
