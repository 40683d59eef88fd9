// Package report turns scanned file records into a tabular report and
// writes it through interchangeable sinks.
//
// A Table is built once per run from the scan result and a layout:
//
//	basic:   File Name, File Path, Size (Bytes), Creation Time, Modification Time
//	amounts: File Name, Amount, Currency, File Path, Size (Bytes), Creation Time, Modification Time
//
// Sinks render the same Table to the console (lipgloss), a CSV file or JSON.
// The PostgreSQL sink lives in package db.
package report
