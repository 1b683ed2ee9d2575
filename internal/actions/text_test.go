package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestPlaceText(t *testing.T) {
	t.Run("advances the cursor", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		ctx := s.Context
		ctx.Session.DefaultColor = "red"

		require.NoError(t, actions.PlaceText(ctx, "ab", actions.PlaceTextOptions{}))
		require.NoError(t, actions.PlaceText(ctx, "c", actions.PlaceTextOptions{}))
		s.ExpectText("abc")
		require.Equal(t, 3, ctx.Cursor.X1)
		require.Equal(t, "red", lastRow(s).(*scene.Glyph).Color)
	})

	t.Run("follows the pen direction", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		ctx := s.Context
		ctx.Cursor.PenDir = cursor.PenDown

		require.NoError(t, actions.PlaceText(ctx, "a", actions.PlaceTextOptions{}))
		require.NoError(t, actions.PlaceText(ctx, "b", actions.PlaceTextOptions{}))
		s.ExpectText("a", "b")
	})

	t.Run("lands on the current frame", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(framesOneTwo)).Seek(1)
		require.NoError(t, actions.PlaceText(s.Context, "a", actions.PlaceTextOptions{}))
		require.Equal(t, scene.FrameSet{"2"}, lastRow(s).Common().Frames)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		require.ErrorIs(t, actions.PlaceText(s.Context, "", actions.PlaceTextOptions{}), errors.ErrInvalidInput)
	})
}

func TestPlaceTextN(t *testing.T) {
	s := scenario.NewScenario(t, nil).Clip(`{"text":"#","color":"blue"}`)
	ctx := s.Context

	require.NoError(t, actions.PlaceTextN(ctx, 0))
	require.Equal(t, "blue", lastRow(s).(*scene.Glyph).Color)
	require.ErrorIs(t, actions.PlaceTextN(ctx, 3), errors.ErrEmptyClipboard)

	ctx.Session.PasteMode = runtime.PasteColor
	ctx.Session.SetClipboard([]*scene.Tree{{Node: &scene.Glyph{Text: "#", Color: "green"}}})
	s.Cursor(0, 0, 1, 1)
	require.NoError(t, actions.PlaceTextN(ctx, 0))
	s.ExpectRows(1)
	require.Equal(t, "green", lastRow(s).(*scene.Glyph).Color)
}

func TestEditText(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(`{"x":0,"y":0,"text":"a"}`))
	ctx := s.Context

	require.NoError(t, actions.EditText(ctx, "z"))
	s.ExpectRows(1).ExpectText("z")

	s.Cursor(3, 0, 1, 1)
	require.NoError(t, actions.EditText(ctx, "q"))
	s.ExpectRows(2).ExpectText("z  q")
	require.Equal(t, 5, ctx.Cursor.X1)
}

func TestCutAndYank(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":1,"y":0,"text":"b"}`,
	)).Cursor(1, 0, 1, 1)
	ctx := s.Context

	require.NoError(t, actions.Cut(ctx))
	s.ExpectRows(1).ExpectText("a")
	require.Len(t, ctx.Session.ClipboardRows(), 1)
	require.Equal(t, "b", ctx.Session.ClipboardRows()[0].Text())

	require.ErrorIs(t, actions.Cut(ctx), errors.ErrNothingUnderCursor)

	require.NoError(t, actions.Yank(ctx, ctx.Store.Rows()))
	require.Equal(t, "a", ctx.Session.ClipboardRows()[0].Text())
	require.ErrorIs(t, actions.Yank(ctx, nil), errors.ErrEmptySelection)
}

func TestDeleteSelected(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":1,"y":0,"text":"b"}`,
	))
	ctx := s.Context
	require.ErrorIs(t, actions.DeleteSelected(ctx), errors.ErrEmptySelection)

	ctx.Store.Select(ctx.Store.Rows()[0])
	require.NoError(t, actions.DeleteSelected(ctx))
	s.ExpectText(" b")
	require.Zero(t, ctx.Store.NumSelected())
}

func TestJoinAndSplit(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"ab"}`,
		`{"x":2,"y":0,"text":"c"}`,
	))
	ctx := s.Context

	require.NoError(t, actions.JoinRows(ctx, ctx.Store.Rows()))
	s.ExpectRows(1).ExpectText("abc")
	require.Error(t, actions.JoinRows(ctx, ctx.Store.Rows()))

	n, err := actions.SplitRows(ctx, ctx.Store.Rows())
	require.NoError(t, err)
	require.Equal(t, 3, n)
	s.ExpectRows(3).ExpectText("abc")
	for i, id := range ctx.Store.Rows() {
		x, _ := ctx.Store.Position(id)
		require.Equal(t, i, x)
	}

	_, err = actions.SplitRows(ctx, ctx.Store.Rows())
	require.ErrorIs(t, err, errors.ErrNothingUnderCursor)
}
