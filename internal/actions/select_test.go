package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestTags(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":1,"y":0,"text":"b","tags":["sky"]}`,
	))
	ctx := s.Context
	rows := ctx.Store.Rows()

	require.NoError(t, actions.TagRows(ctx, rows[:1], "sun sky"))
	require.Equal(t, 2, actions.SelectTag(ctx, "sky"))
	require.Equal(t, 1, actions.UnselectTag(ctx, "sun"))
	require.Equal(t, []scene.ID{rows[1]}, ctx.Store.Selected())

	require.NoError(t, actions.UntagRows(ctx, rows, "sky"))
	require.Empty(t, actions.Tagged(ctx, "sky"))
	require.Error(t, actions.TagRows(ctx, rows, "  "))

	tag, err := actions.TagAt(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "sun", tag)
	require.NoError(t, actions.ToggleTagN(ctx, 1))
	s.ExpectText(" b")
	actions.EnableAllTags(ctx)
	s.ExpectText("ab")
	require.ErrorIs(t, actions.ToggleTagN(ctx, 9), errors.ErrInvalidInput)
}

func TestSelectBox(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":1,"y":1,"text":"bcd"}`,
		`{"x":5,"y":5,"text":"e"}`,
	))
	ctx := s.Context

	require.Equal(t, 1, actions.SelectBox(ctx, cursor.NewBox(0, 0, 3, 3)), "partly covered text is left out")
	require.Equal(t, 2, actions.SelectBox(ctx, cursor.NewBox(0, 0, 4, 2)))
	require.Equal(t, 2, ctx.Store.NumSelected())
	require.Equal(t, 2, actions.ToggleBox(ctx, cursor.NewBox(0, 0, 4, 2)))
	require.Zero(t, ctx.Store.NumSelected())
	require.Equal(t, 2, actions.SelectTop(ctx, cursor.NewBox(0, 0, 2, 2)))
}

func TestSelectEqualChar(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"x"}`,
		`{"x":1,"y":0,"text":"y"}`,
		`{"x":2,"y":0,"text":"x"}`,
	))
	n, err := actions.SelectEqualChar(s.Context)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	s.Cursor(9, 9, 1, 1)
	_, err = actions.SelectEqualChar(s.Context)
	require.ErrorIs(t, err, errors.ErrNothingUnderCursor)
}

func TestSelectFrame(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		framesOneTwo,
		`{"x":0,"y":0,"text":"a","frame":"1"}`,
		`{"x":1,"y":0,"text":"b","frame":"1 2"}`,
		`{"x":2,"y":0,"text":"c"}`,
	))
	n, err := actions.SelectFrame(s.Context)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	n, err = actions.UnselectFrame(s.Context)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Zero(t, s.Context.Store.NumSelected())

	empty := scenario.NewScenario(t, nil)
	_, err = actions.SelectFrame(empty.Context)
	require.ErrorIs(t, err, errors.ErrNoFrames)
}

func TestGoSelected(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":4,"y":2,"text":"b"}`,
		`{"x":7,"y":3,"text":"c"}`,
	))
	ctx := s.Context
	require.ErrorIs(t, actions.GoSelected(ctx, false), errors.ErrEmptySelection)

	rows := ctx.Store.Rows()
	ctx.Store.Select(rows[1], rows[2])
	require.NoError(t, actions.GoSelected(ctx, false))
	require.Equal(t, 4, ctx.Cursor.X1)
	require.Equal(t, 2, ctx.Cursor.Y1)
	require.NoError(t, actions.GoSelected(ctx, false))
	require.Equal(t, 7, ctx.Cursor.X1)
	require.Error(t, actions.GoSelected(ctx, false))
	require.NoError(t, actions.GoSelected(ctx, true))
	require.Equal(t, 4, ctx.Cursor.X1)
}

func TestColors(t *testing.T) {
	t.Run("shift color wraps the palette", func(t *testing.T) {
		require.Equal(t, "4 on 13", actions.ShiftColor("250 on 3", 10))
		require.Equal(t, "253", actions.ShiftColor("7", -10))
		require.Equal(t, "bold", actions.ShiftColor("bold", 1))
	})

	t.Run("set and cycle color reach grouped glyphs", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"type":"group","id":"cat","x":0,"y":0,"rows":[{"x":0,"y":0,"text":"c","color":"1"}]}`,
		))
		ctx := s.Context
		gid := ctx.Store.Rows()[0]
		child := ctx.Store.Children(gid)[0]

		require.NoError(t, actions.SetColor(ctx, "10", []scene.ID{gid}))
		require.Equal(t, "10", ctx.Store.Get(child).(*scene.Glyph).Color)
		require.NoError(t, actions.CycleColor(ctx, []scene.ID{gid}, 1))
		require.Equal(t, "11", ctx.Store.Get(child).(*scene.Glyph).Color)
		require.ErrorIs(t, actions.SetColor(ctx, "1", nil), errors.ErrNothingUnderCursor)
	})

	t.Run("pick default color", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(`{"x":0,"y":0,"text":"c","color":"red"}`))
		require.NoError(t, actions.PickDefaultColor(s.Context))
		require.Equal(t, "red", s.Context.Session.DefaultColor)
	})
}
