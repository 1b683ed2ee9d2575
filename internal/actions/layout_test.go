package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestLineWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, up, down string
	}{
		{"─", "═", "─"},
		{"═", "━", "─"},
		{"━", "━", "═"},
		{"┌", "╒", "┌"},
		{"╔", "┏", "┍"},
		{"-", "=", "-"},
		{"a", "a", "a"},
		{"┌─┐", "╒═╕", "┌─┐"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.up, actions.UpgradeText(tt.in), "upgrade %s", tt.in)
		require.Equal(t, tt.down, actions.DowngradeText(tt.in), "downgrade %s", tt.in)
	}
}

func TestUpgradeGlyphs(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"─"}`,
		`{"x":1,"y":0,"text":"x"}`,
	))
	ctx := s.Context

	require.NoError(t, actions.Upgrade(ctx, ctx.Store.Rows()))
	s.ExpectText("═x")
	require.NoError(t, actions.Downgrade(ctx, ctx.Store.Rows()))
	s.ExpectText("─x")
	require.ErrorIs(t, actions.Upgrade(ctx, nil), errors.ErrNothingUnderCursor)
}

func TestBoxCursor(t *testing.T) {
	s := scenario.NewScenario(t, nil).Cursor(0, 0, 4, 3)
	require.NoError(t, actions.BoxCursor(s.Context))
	s.ExpectText(
		"┌──┐",
		"│  │",
		"└──┘",
	)

	require.Error(t, actions.SetBoxChars(s.Context, "- |"))
	require.NoError(t, actions.SetBoxChars(s.Context, "- | + + + +"))
	require.Equal(t, "+", s.Context.Session.BoxChars[5])
}

func TestCirclePoints(t *testing.T) {
	t.Parallel()

	pts := actions.CirclePoints(cursor.NewBox(0, 0, 9, 9))
	require.NotEmpty(t, pts)
	seen := map[actions.Point]bool{}
	for _, p := range pts {
		require.False(t, seen[p], "duplicate point %v", p)
		seen[p] = true
		require.True(t, p.X >= 0 && p.X < 9 && p.Y >= 0 && p.Y < 9, "point %v outside box", p)
	}
	require.True(t, seen[actions.Point{X: 8, Y: 4}])
	require.True(t, seen[actions.Point{X: 4, Y: 8}])
}

func TestStampCircle(t *testing.T) {
	s := scenario.NewScenario(t, nil)
	box := cursor.NewBox(0, 0, 5, 5)
	require.NoError(t, actions.StampCircle(s.Context, box))
	s.ExpectRows(len(actions.CirclePoints(box)))
	s.ExpectChar(4, 2, "*")
}

func TestSlide(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":0,"y":0,"text":"b"}`,
		`{"x":0,"y":0,"text":"c"}`,
	))
	ctx := s.Context
	rows := ctx.Store.Rows()
	s.ExpectChar(0, 0, "c")

	require.NoError(t, actions.SlideTop(ctx, rows[:1]))
	s.ExpectChar(0, 0, "a")
	require.NoError(t, actions.SlideBottom(ctx, rows[:1]))
	s.ExpectChar(0, 0, "c")
	require.Equal(t, rows, ctx.Store.Rows())
}

func TestInsertRowAndCol(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":0,"y":0,"text":"a"}`,
		`{"x":0,"y":1,"text":"b"}`,
	)).SelectAll().Cursor(0, 1, 1, 1)
	ctx := s.Context

	require.NoError(t, actions.InsertRow(ctx))
	s.ExpectText("a", "", "b")
	s.Cursor(0, 0, 1, 1)
	require.NoError(t, actions.InsertCol(ctx))
	s.ExpectText(" a", "", " b")
}

func TestAlignSelected(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"x":2,"y":0,"text":"a"}`,
		`{"x":5,"y":1,"text":"b"}`,
	)).SelectAll()
	require.NoError(t, actions.AlignSelected(s.Context))
	s.ExpectText("  a", "  b")
}
