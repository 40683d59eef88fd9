package filemeta

import "iter"

// FileScanner defines the interface for discovering files and reading their metadata.
type FileScanner interface {
	// ScanDirectory recursively scans a directory and returns one record per regular file.
	// The root is validated before traversal begins.
	ScanDirectory(root string) (ScanResult, error)

	// Paths lazily yields the absolute path of every regular file under root.
	Paths(root string) iter.Seq2[string, error]
}

// ScanResult contains the results of scanning a directory.
type ScanResult struct {
	// Root is the absolute path that was scanned.
	Root string

	// Files holds one record per regular file, in traversal order.
	Files []FileRecord
}
