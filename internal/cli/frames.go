package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/compositor"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
)

// newFramesCmd creates the frames command
func newFramesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "frames <file>",
		Short:             "List the animation frames of a drawing",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunDrawing(cmd, args[0], func(ctx *runtime.Context) error {
				frames := compositor.Timeline(ctx.Store)
				out := cmd.OutOrStdout()
				if len(frames) == 0 {
					_, _ = fmt.Fprintln(out, "no frames")
					return nil
				}

				t := tui.NewTable("#", "FRAME", "DURATION")
				for i, f := range frames {
					t.Row(strconv.Itoa(i), f.ID, f.Duration.String())
				}
				_, _ = fmt.Fprintln(out, t.Render())
				_, _ = fmt.Fprintf(out, "%d %s, %s total\n", len(frames), pluralize("frame", len(frames)), compositor.TotalDuration(frames))
				return nil
			})
		},
	}
}
