package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/importer"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
	"darkdraw.dev/ddw/internal/utils"
)

// newImportCmd creates the import command
func newImportCmd() *cobra.Command {
	var (
		format string
		out    string
		force  bool
	)

	formats := make([]string, len(importer.Formats))
	for i, f := range importer.Formats {
		formats[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert ANSI art or a durdraw file into a drawing",
		Long: `Convert a file of text with ANSI color escapes, or a durdraw
animation, into a drawing. The format is taken from the file extension
unless --format is given. A file name of - reads standard input.

Examples:
  ddw import logo.ans
  ddw import cat.dur --out cat.ddw
  ddw import banner.txt --format ansi
  figlet hi | ddw import - --format ansi --out hi.ddw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if src != utils.StdinPath {
				if err := helpers.RequireFile(src); err != nil {
					return err
				}
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				f, err := inputFormat(src, format)
				if err != nil {
					return err
				}
				in, err := utils.OpenInput(src)
				if err != nil {
					return err
				}
				defer func() { _ = in.Close() }()
				trees, err := importer.Read(in, f)
				if err != nil {
					return fmt.Errorf("%s: %w", src, err)
				}

				dest := out
				if dest == "" {
					if src == utils.StdinPath {
						return fmt.Errorf("--out is required when importing from stdin")
					}
					dest = importer.OutputPath(src)
				}
				if err := tui.ConfirmOverwrite(dest, force); err != nil {
					return err
				}

				var buf bytes.Buffer
				if err := importer.Write(&buf, trees); err != nil {
					return err
				}
				if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", dest, err)
				}
				ctx.Splog.Info("Imported %d %s into %s", len(trees), pluralize("row", len(trees)), dest)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format: "+strings.Join(formats, ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "", "drawing to write (default the input name with .ddw)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing drawing without asking")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// inputFormat resolves the --format flag, falling back to the extension of
// the input file
func inputFormat(src, name string) (importer.Format, error) {
	if name != "" {
		return importer.ParseFormat(name)
	}
	if src == utils.StdinPath {
		return "", fmt.Errorf("--format is required when importing from stdin")
	}
	return importer.DetectFormat(src)
}
