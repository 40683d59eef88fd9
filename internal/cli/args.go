package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalRoot accepts zero or one root directory argument.
// Without an argument the root comes from $FILEMETA_ROOT or filemeta.yaml.
func OptionalRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./invoices --layout amounts`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
