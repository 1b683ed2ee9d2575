// Package cli implements the ddw command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ddw",
		Short: "ddw draws and animates pictures made of terminal characters",
		Long: `ddw is an editor for drawings made of colored terminal characters.

Drawings are JSONL files of glyphs, groups, references and animation
frames. Open one with "ddw edit", or render, export and import drawings
from the command line.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default $DDW_CONFIG or ddw/config.json in the user config dir)")

	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newFramesCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}
