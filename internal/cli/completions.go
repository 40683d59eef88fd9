package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/filemeta/pkg/filemeta"
)

// layoutNames contains valid report layouts for shell completion.
var layoutNames = []string{string(filemeta.LayoutBasic), string(filemeta.LayoutAmounts)}

// completeLayouts provides shell completion for the --layout flag.
func completeLayouts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, l := range layoutNames {
		if strings.HasPrefix(l, toComplete) {
			matches = append(matches, l)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeRootDir restricts the positional argument to directories.
func completeRootDir(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
