// Package logging provides concrete implementations of the filemeta.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zerolog console output, "<time> - <LEVEL> - <message>" per line
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
