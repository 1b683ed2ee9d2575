package actions

import (
	"fmt"

	"darkdraw.dev/ddw/internal/autosave"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/tui"
	"darkdraw.dev/ddw/internal/utils"
)

// Undo reverts the last editing command
func Undo(ctx *runtime.Context) error {
	label, err := ctx.Store.Undo()
	if err != nil {
		return err
	}
	ctx.Recomposite()
	ctx.Splog.Info("undid %s", label)
	return nil
}

// Redo reapplies the last undone editing command
func Redo(ctx *runtime.Context) error {
	label, err := ctx.Store.Redo()
	if err != nil {
		return err
	}
	ctx.Recomposite()
	ctx.Splog.Info("redid %s", label)
	return nil
}

// RestoreOptions contains options for restoring an autosave
type RestoreOptions struct {
	SnapshotID string // Optional: specific snapshot to restore (skips interactive selection)
	Force      bool   // Skip the confirmation prompt
}

// RestoreAction replaces the drawing with one of its autosave snapshots.
// The restored drawing is marked modified and not written anywhere.
func RestoreAction(ctx *runtime.Context, opts RestoreOptions) error {
	splog := ctx.Splog
	dir := ctx.Config.AutosaveDir()

	snapshots, err := autosave.List(dir, autosave.DrawingName(ctx.Path))
	if err != nil {
		return fmt.Errorf("failed to list autosaves: %w", err)
	}
	if len(snapshots) == 0 && opts.SnapshotID == "" {
		splog.Info("No autosaves of this drawing in %s.", dir)
		return nil
	}

	var selected autosave.Snapshot
	switch {
	case opts.SnapshotID != "":
		// any drawing's snapshot may be restored by id
		selected, err = autosave.Find(dir, opts.SnapshotID)
		if err != nil {
			return err
		}
	case len(snapshots) == 1:
		selected = snapshots[0]
		splog.Info("Restoring %s", selected.DisplayName)
	case !utils.IsInteractive():
		return fmt.Errorf("%d autosaves of %s; name the one to restore", len(snapshots), autosave.DrawingName(ctx.Path))
	default:
		options := make([]tui.SelectOption, len(snapshots))
		for i, snap := range snapshots {
			options[i] = tui.SelectOption{Label: snap.DisplayName, Value: snap.ID}
		}
		id, err := tui.PromptSelect("Select autosave to restore:", options, 0)
		if err != nil {
			return fmt.Errorf("failed to select autosave: %w", err)
		}
		for _, snap := range snapshots {
			if snap.ID == id {
				selected = snap
			}
		}
		if selected.ID == "" {
			return fmt.Errorf("selected autosave not found")
		}
	}

	if !opts.Force && ctx.Store.Modified() {
		confirmed, err := tui.PromptConfirm(
			fmt.Sprintf("Discard unsaved changes and restore %s?", selected.DisplayName), false)
		if err != nil {
			return fmt.Errorf("failed to get confirmation: %w", err)
		}
		if !confirmed {
			splog.Info("Restore canceled.")
			return nil
		}
	}

	store, err := autosave.Load(selected)
	if err != nil {
		return err
	}
	ctx.Store = store
	ctx.Store.SetModified(true)
	ctx.Reset()
	splog.Info("Restored %s.", selected.ID)
	return nil
}
