package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/autosave"
	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
	"darkdraw.dev/ddw/internal/tui/components/editor"
)

// newEditCmd creates the edit command
func newEditCmd() *cobra.Command {
	var restore string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a drawing in the editor",
		Long: `Open a drawing in the interactive editor. A file that does not exist
yet is created on the first save.

Examples:
  ddw edit cat.ddw
  ddw edit cat.ddw --restore cat-20250102T150405`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: helpers.CompleteDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsTTY() {
				return fmt.Errorf("the editor needs a terminal")
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if len(args) == 1 {
					if err := ctx.Open(args[0]); err != nil {
						return err
					}
				}
				if restore != "" {
					if err := restoreSnapshot(ctx, restore); err != nil {
						return err
					}
				}
				return editor.Run(ctx, editorOptions(ctx))
			})
		},
	}

	cmd.Flags().StringVar(&restore, "restore", "", "start from the autosave snapshot with this id")
	return cmd
}

// editorOptions builds the editor's key bindings, typing keymap and
// autosaver from the configuration. Problems are logged and the defaults
// are used.
func editorOptions(ctx *runtime.Context) editor.Options {
	bindings, err := commands.NewBindings(ctx.Config.Bindings)
	if err != nil {
		ctx.Splog.Warn("key bindings: %v", err)
	}

	opts := editor.Options{Bindings: bindings}
	if path := ctx.Config.KeymapPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			km, err := config.LoadKeymap(path)
			if err != nil {
				ctx.Splog.Warn("ignoring keymap: %v", err)
			} else {
				opts.Keymap = km
			}
		}
	}

	saver := autosave.New(ctx.Config)
	if saver.Enabled() {
		opts.Saver = saver
	}
	return opts
}
