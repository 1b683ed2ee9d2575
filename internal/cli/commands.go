package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
)

// newCommandsCmd creates the commands command
func newCommandsCmd() *cobra.Command {
	var editorOnly bool

	cmd := &cobra.Command{
		Use:   "commands [filter]",
		Short: "List the editor commands and their keys",
		Long: `List every editor command with the keys bound to it, including the
overrides from the configuration. Commands marked * run only inside the
editor; the rest also work with "ddw run".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				bindings, err := commands.NewBindings(ctx.Config.Bindings)
				if err != nil {
					ctx.Splog.Warn("key bindings: %v", err)
				}

				t := tui.NewTable("COMMAND", "KEYS", "DESCRIPTION")
				for _, c := range commands.All() {
					spec := c.Spec()
					if len(args) == 1 && !strings.Contains(spec.Name, args[0]) {
						continue
					}
					name := spec.Name
					if spec.Run == nil {
						name += "*"
					} else if editorOnly {
						continue
					}
					t.Row(name, strings.Join(bindings.Keys(c), ", "), spec.Help)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&editorOnly, "editor-only", false, "list only the commands that need the editor")
	return cmd
}
