// Package files groups the file discovery sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: recursive discovery of regular files and per-file metadata
//
// # Usage
//
//	fileScanner := scanner.NewScanner(scanner.WithLogger(logger))
//	result, err := fileScanner.ScanDirectory("./invoices")
package files
