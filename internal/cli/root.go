package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/filemeta/internal/services"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filemeta",
		Short: "Report file metadata for a directory tree",
		Long: `filemeta walks a directory tree and reports, for every regular file, its name,
full path, size, creation time and modification time. With the amounts layout
it also reads an amount and currency out of file names such as
invoice_100_50_usd.txt.

The report is printed to the console and saved as file_metadata.csv by
default. JSON and PostgreSQL outputs are available.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Root path does not exist or is not a directory
  12 - File metadata could not be read
  13 - Report output could not be written
  14 - PostgreSQL output failed`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

var rootCmd = newRootCmd()

// Execute runs the root command. Errors already reported by the report
// service are not printed again.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	var logged *services.LoggedError
	if !errors.As(err, &logged) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
