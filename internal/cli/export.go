package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/compositor"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
)

// newExportCmd creates the export command
func newExportCmd() *cobra.Command {
	var (
		outDir string
		force  bool
		color  bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write every frame of a drawing to text files",
		Long: `Write each animation frame of a drawing to its own text file, named
after the drawing and the frame number. A drawing without frames is
written to a single file.

Examples:
  ddw export cat.ddw
  ddw export cat.ddw --out frames/ --color`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.RunDrawing(cmd, args[0], func(ctx *runtime.Context) error {
				if outDir == "" {
					outDir = filepath.Dir(args[0])
				}
				return exportFrames(ctx, args[0], exportOptions{dir: outDir, force: force, color: color})
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write to (default next to the drawing)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files without asking")
	cmd.Flags().BoolVar(&color, "color", false, "include terminal colors")
	return cmd
}

type exportOptions struct {
	dir   string
	force bool
	color bool
}

// exportPaths returns the file each frame is written to
func exportPaths(drawing, dir string, frames []compositor.FrameCache) []string {
	base := strings.TrimSuffix(filepath.Base(drawing), filepath.Ext(drawing))
	paths := make([]string, len(frames))
	for i := range frames {
		name := base + ".txt"
		if len(frames) > 1 || frames[i].Frame.ID != "" {
			name = fmt.Sprintf("%s-%03d.txt", base, i)
		}
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

func exportFrames(ctx *runtime.Context, drawing string, opts exportOptions) error {
	frames, err := compositor.CompositeFrames(ctx.Store, compositor.Options{DisabledTags: ctx.Session.DisabledTags})
	if err != nil {
		ctx.Splog.Warn("%v", err)
	}
	paths := exportPaths(drawing, opts.dir, frames)
	for _, p := range paths {
		if err := tui.ConfirmOverwrite(p, opts.force); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.dir, err)
	}

	write := func(i int) (string, error) {
		var buf bytes.Buffer
		var err error
		if opts.color {
			err = tui.WriteANSI(&buf, frames[i].Cache, termenv.ANSI256)
		} else {
			err = compositor.WriteText(&buf, frames[i].Cache)
		}
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(paths[i], buf.Bytes(), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", paths[i], err)
		}
		return paths[i], nil
	}

	items := make([]tui.ExportItem, len(frames))
	for i, f := range frames {
		name := f.Frame.ID
		if name == "" {
			name = "drawing"
		}
		items[i] = tui.ExportItem{Name: "frame " + name, Status: tui.StatusPending}
	}

	ctx.Splog.Info("Exporting %d %s from %s", len(frames), pluralize("frame", len(frames)), drawing)
	if !tui.IsTTY() {
		return tui.RunExportSimple(items, write, ctx.Splog)
	}
	return tui.RunExportTUI(items, func(i int) tea.Cmd {
		return func() tea.Msg {
			path, err := write(i)
			return tui.ExportResultMsg{Idx: i, Path: path, Error: err}
		}
	})
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
