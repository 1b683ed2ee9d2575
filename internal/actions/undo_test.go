package actions_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/autosave"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestUndoRedo(t *testing.T) {
	s := scenario.NewScenario(t, nil).Clip(`{"text":"x"}`)
	ctx := s.Context

	require.ErrorIs(t, actions.Undo(ctx), errors.ErrNothingToUndo)

	require.NoError(t, actions.FillChars(ctx, ctx.Session.ClipboardRows(), cursor.NewBox(0, 0, 3, 1), 0))
	s.ExpectText("xxx")

	require.NoError(t, actions.Undo(ctx))
	s.ExpectRows(0).ExpectText()
	require.Contains(t, s.Log.String(), "undid fill")

	require.NoError(t, actions.Redo(ctx))
	s.ExpectText("xxx")
	require.ErrorIs(t, actions.Redo(ctx), errors.ErrNothingToRedo)
}

func TestFailedBatchRollsBack(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"x","group":"cat"}`,
		`{"type":"group","id":"cat","x":2,"y":0,"group":"cat"}`,
	))
	ctx := s.Context
	before := s.Saved()

	// x moves into cat before cat is found to be its own target
	err := actions.Regroup(ctx, ctx.Store.Rows())
	require.ErrorIs(t, err, errors.ErrCyclicRef)
	require.Equal(t, before, s.Saved())
	require.Zero(t, ctx.Store.UndoDepth())
	s.ExpectRows(2)
}

func TestRestoreAction(t *testing.T) {
	t.Run("nothing to restore", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		dir := filepath.Join(s.Scene.Dir, "autosave")
		s.Context.Config.AutosavePath = &dir

		require.NoError(t, actions.RestoreAction(s.Context, actions.RestoreOptions{}))
		require.Contains(t, s.Log.String(), "No autosaves")
	})

	t.Run("restores the only autosave", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(`{"x":0,"y":0,"text":"new"}`))
		ctx := s.Context
		dir := filepath.Join(s.Scene.Dir, "autosave")
		ctx.Config.AutosavePath = &dir

		old := engine.NewStore()
		_, err := old.AddRow(testhelpers.Glyph(0, 0, "old"))
		require.NoError(t, err)
		saver := &autosave.Saver{Dir: dir, Interval: time.Minute, Keep: 5}
		_, err = saver.Save(old, autosave.UntitledName, time.Now())
		require.NoError(t, err)

		require.NoError(t, actions.RestoreAction(ctx, actions.RestoreOptions{Force: true}))
		s.ExpectText("old")
		require.True(t, ctx.Store.Modified())
	})

	t.Run("unknown snapshot id", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		dir := filepath.Join(s.Scene.Dir, "autosave")
		s.Context.Config.AutosavePath = &dir

		err := actions.RestoreAction(s.Context, actions.RestoreOptions{SnapshotID: "cat-20200101T000000"})
		require.Error(t, err)
	})
}
