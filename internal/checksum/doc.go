// Package checksum provides file content hashing for the optional SHA-256
// report column.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.Calculate(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
