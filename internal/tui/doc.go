// Package tui holds terminal detection and the lipgloss styles used for console reports.
package tui
