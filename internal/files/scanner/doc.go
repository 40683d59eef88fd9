// Package scanner provides file discovery and metadata extraction.
//
// The scanner package is responsible for:
//   - Validating the scan root before traversal begins
//   - Recursively discovering regular files in a directory tree
//   - Reading per-file metadata (path, size, creation and modification times)
//   - Parsing amount and currency out of each file name
//   - Applying gitignore-style exclusion rules
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
