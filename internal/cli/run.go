package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/runtime"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	var (
		at     []int
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "run <file> <command> [input]",
		Short: "Run an editor command on a drawing and save it",
		Long: `Run one editor command against a drawing without opening the editor,
then save the drawing. The cursor starts at the origin; --at moves it
first and --all selects every row.

Examples:
  ddw run cat.ddw select-all
  ddw run cat.ddw --all set-color-input-selected "bold 214"
  ddw run cat.ddw --at 3,4 add-input "hello"
  ddw run cat.ddw --all flip-selected-horiz --dry-run`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: helpers.CompleteCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 3 {
				input = args[2]
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Open(args[0]); err != nil {
					return err
				}
				if len(at) > 0 {
					if len(at) != 2 {
						return fmt.Errorf("--at takes x,y")
					}
					ctx.Cursor.Box = cursor.NewBox(at[0], at[1], 1, 1)
				}
				if all {
					ctx.Store.Select(ctx.Store.Rows()...)
				}

				status, err := commands.DispatchName(ctx, args[1], input)
				if err != nil {
					return err
				}
				if status != "" && status != ctx.Splog.Status() {
					ctx.Splog.Info("%s", status)
				}
				if dryRun {
					return nil
				}
				if !ctx.Store.Modified() {
					return nil
				}
				return ctx.Save("")
			})
		},
	}

	cmd.Flags().IntSliceVar(&at, "at", nil, "place the cursor at x,y first")
	cmd.Flags().BoolVar(&all, "all", false, "select every row first")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the command without saving")
	return cmd
}
