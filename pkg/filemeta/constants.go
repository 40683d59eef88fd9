package filemeta

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Scan and report completed successfully
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration or flags
	ExitNotADirectory = 11 // Root path missing or not a directory
	ExitScanFailed    = 12 // A file could not be read during the scan
	ExitOutputFailed  = 13 // Report could not be written
	ExitDatabaseError = 14 // PostgreSQL sink failed
)

const (
	// DefaultCurrency is applied when a file name carries an amount but no currency token.
	DefaultCurrency = "DKK"

	// DefaultCSVFileName is the CSV report written to the working directory.
	DefaultCSVFileName = "file_metadata.csv"

	// DefaultPostgresTable is the table the PostgreSQL sink writes into.
	DefaultPostgresTable = "file_metadata"

	// IgnoreFileName is read from the scan root when present. Gitignore syntax.
	IgnoreFileName = ".filemetaignore"

	// TimestampLayout is used for every rendered timestamp (always UTC).
	TimestampLayout = "2006-01-02 15:04:05.999999"

	// MinCurrencyLength is the shortest alphabetic token accepted as a currency code.
	MinCurrencyLength = 3
)
