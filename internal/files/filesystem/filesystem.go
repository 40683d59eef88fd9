package filesystem

import (
	"io/fs"
	"time"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileTimes holds the two timestamps reported for every scanned file.
type FileTimes struct {
	// Created is the birth time where the platform records one,
	// otherwise the inode change time.
	Created time.Time

	// Modified is the last content modification time.
	Modified time.Time
}

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the scan root
	RelativePath() string

	// Info returns file metadata as seen by the walk (symlinks are not followed)
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn for each file and directory.
	// The function receives the file/directory and any error encountered.
	// Returning fs.SkipDir for a directory prunes it; any other error stops the walk.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens a directory at the specified path.
	// Fails with an error wrapping filemeta.ErrNotADirectory when the path
	// does not exist or is not a directory.
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Times reads the creation and modification timestamps of the file at path.
	Times(path string) (FileTimes, error)
}
