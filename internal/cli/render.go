package cli

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/compositor"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
)

// newRenderCmd creates the render command
func newRenderCmd() *cobra.Command {
	var (
		frame string
		color bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print a drawing",
		Long: `Print one frame of a drawing as text. With --color the text carries
terminal color escapes.

Examples:
  ddw render cat.ddw
  ddw render cat.ddw --frame 2 --color`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunDrawing(cmd, args[0], func(ctx *runtime.Context) error {
				cache := ctx.Cache
				if frame != "" {
					if ctx.Store.FrameIndex(frame) < 0 {
						return fmt.Errorf("no frame %q in %s", frame, args[0])
					}
					opts := ctx.Options()
					opts.Frames = []string{frame}
					var err error
					if cache, err = compositor.Composite(ctx.Store, opts); err != nil {
						ctx.Splog.Warn("%v", err)
					}
				} else if ctx.CompositeErr != nil {
					ctx.Splog.Warn("%v", ctx.CompositeErr)
				}

				out := cmd.OutOrStdout()
				if color {
					return tui.WriteANSI(out, cache, termenv.EnvColorProfile())
				}
				return compositor.WriteText(out, cache)
			})
		},
	}

	cmd.Flags().StringVar(&frame, "frame", "", "frame id to render (default the first frame)")
	cmd.Flags().BoolVar(&color, "color", false, "include terminal colors")
	return cmd
}
