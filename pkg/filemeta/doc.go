// Package filemeta defines the public types shared by the filemeta scanner,
// parser and report sinks: FileRecord, ReportConfig, the Logger and
// FileScanner interfaces, sentinel errors and exit codes.
package filemeta
