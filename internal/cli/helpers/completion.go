// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"strings"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/commands"
)

// CompleteDrawings completes drawing file names
func CompleteDrawings(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"ddw"}, cobra.ShellCompDirectiveFilterFileExt
}

// CompleteCommands completes command names for the second argument of
// "ddw run"
func CompleteCommands(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"ddw"}, cobra.ShellCompDirectiveFilterFileExt
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, c := range commands.All() {
		spec := c.Spec()
		if spec.Run != nil && strings.HasPrefix(spec.Name, toComplete) {
			names = append(names, spec.Name+"\t"+spec.Help)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
