package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/autosave"
	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
)

// newHistoryCmd creates the history command
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and restore autosave snapshots",
		Long: `The editor periodically writes snapshots of the open drawing to the
autosave directory, optionally committing them to a git repository there.
These commands list the snapshots and restore them.

Examples:
  ddw history list cat
  ddw history restore cat.ddw
  ddw history restore cat.ddw cat-20250102T150405 --out recovered.ddw
  ddw history log`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryRestoreCmd())
	cmd.AddCommand(newHistoryLogCmd())
	return cmd
}

// newHistoryListCmd creates the history list command
func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [drawing]",
		Short: "List autosave snapshots, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				var name string
				if len(args) == 1 {
					name = autosave.DrawingName(args[0])
				}
				snaps, err := autosave.List(ctx.Config.AutosaveDir(), name)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(snaps) == 0 {
					_, _ = fmt.Fprintln(out, "no autosaves")
					return nil
				}
				t := tui.NewTable()
				for _, snap := range snaps {
					t.Row(snap.ID, snap.DisplayName)
				}
				_, _ = fmt.Fprintln(out, t.Render())
				return nil
			})
		},
	}
}

// newHistoryRestoreCmd creates the history restore command
func newHistoryRestoreCmd() *cobra.Command {
	var (
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "restore <drawing> [snapshot]",
		Short: "Restore a drawing from an autosave",
		Long: `Replace a drawing with one of its autosave snapshots. Without a
snapshot id the snapshots of the drawing are offered for selection.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: helpers.CompleteDrawings,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Open(args[0]); err != nil {
					return err
				}
				opts := actions.RestoreOptions{Force: true}
				if len(args) == 2 {
					opts.SnapshotID = args[1]
				}
				if err := actions.RestoreAction(ctx, opts); err != nil {
					return err
				}
				if !ctx.Store.Modified() {
					return nil
				}

				dest := out
				if dest == "" {
					dest = args[0]
				}
				if err := tui.ConfirmOverwrite(dest, force); err != nil {
					return err
				}
				if err := ctx.Save(dest); err != nil {
					return err
				}
				ctx.Splog.Info("Wrote %s", dest)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the restored drawing here instead of over the original")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite without asking")
	return cmd
}

// newHistoryLogCmd creates the history log command
func newHistoryLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the git history of the autosave directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				commits, err := autosave.History(ctx.Config.AutosaveDir(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(commits) == 0 {
					_, _ = fmt.Fprintln(out, "no autosave history")
					return nil
				}
				t := tui.NewTable()
				for _, c := range commits {
					t.Row(c.ShortHash(), c.When.Format("2006-01-02 15:04"), c.Subject)
				}
				_, _ = fmt.Fprintln(out, t.Render())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of commits to show; 0 shows all")
	return cmd
}

// restoreSnapshot loads the snapshot id into the editing context
func restoreSnapshot(ctx *runtime.Context, id string) error {
	if err := actions.RestoreAction(ctx, actions.RestoreOptions{SnapshotID: id, Force: true}); err != nil {
		return fmt.Errorf("failed to restore %s: %w", id, err)
	}
	return nil
}
