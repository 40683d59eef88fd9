// Package db writes reports to PostgreSQL using pgx.
//
// The destination table is created on first use. Every run appends its rows
// inside one transaction, so a failed run leaves no partial report behind.
package db
