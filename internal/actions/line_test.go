package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func TestBresenham(t *testing.T) {
	t.Parallel()

	t.Run("horizontal", func(t *testing.T) {
		pts := actions.Bresenham(0, 0, 5, 0)
		require.Len(t, pts, 6)
		for i, p := range pts {
			require.Equal(t, actions.Point{X: i, Y: 0}, p)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		require.Equal(t, []actions.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, actions.Bresenham(0, 0, 3, 3))
	})

	t.Run("backwards", func(t *testing.T) {
		pts := actions.Bresenham(5, 2, 0, 2)
		require.Len(t, pts, 6)
		require.Equal(t, actions.Point{X: 5, Y: 2}, pts[0])
		require.Equal(t, actions.Point{X: 0, Y: 2}, pts[5])
	})

	t.Run("single point", func(t *testing.T) {
		require.Equal(t, []actions.Point{{2, 2}}, actions.Bresenham(2, 2, 2, 2))
	})

	t.Run("steep lines are connected", func(t *testing.T) {
		pts := actions.Bresenham(0, 0, 2, 7)
		require.Len(t, pts, 8)
		for i := 1; i < len(pts); i++ {
			require.LessOrEqual(t, abs(pts[i].X-pts[i-1].X), 1)
			require.Equal(t, 1, pts[i].Y-pts[i-1].Y)
		}
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestQuadBezier(t *testing.T) {
	t.Parallel()

	pts := actions.QuadBezier(0, 0, 5, 10, 10, 0)
	require.Equal(t, [2]float64{0, 0}, pts[0])
	require.Equal(t, [2]float64{10, 0}, pts[len(pts)-1])
	for i := 1; i < len(pts); i++ {
		dx, dy := pts[i][0]-pts[i-1][0], pts[i][1]-pts[i-1][1]
		require.Less(t, dx*dx+dy*dy, 1.0)
	}

	cx, cy := actions.CurveControl(actions.Point{X: 0, Y: 0}, actions.Point{X: 5, Y: 5}, actions.Point{X: 10, Y: 0})
	require.Equal(t, 5.0, cx)
	require.Equal(t, 10.0, cy)
}

func TestLineMode(t *testing.T) {
	s := scenario.NewScenario(t, nil)
	ctx := s.Context

	require.Equal(t, runtime.ModeLine, actions.ToggleLineMode(ctx))
	actions.Click(ctx, 0, 0)
	require.NoError(t, actions.Release(ctx, 3, 0))
	s.ExpectText("....")
	require.Equal(t, [][2]int{{0, 0}}, ctx.Session.LinePoints)

	require.Equal(t, runtime.ModeNormal, actions.ToggleLineMode(ctx))
	require.Empty(t, ctx.Session.LinePoints)
	actions.Click(ctx, 1, 1)
	require.NoError(t, actions.Release(ctx, 3, 2))
	require.Equal(t, 1, ctx.Cursor.X1)
	require.Equal(t, 1, ctx.Cursor.Y1)
}

func TestDrawLineCyclesClipboard(t *testing.T) {
	s := scenario.NewScenario(t, nil).Clip(`{"text":"a"}`, `{"text":"b"}`)
	ctx := s.Context

	err := actions.DrawLine(ctx, ctx.Session.ClipboardRows(), actions.Point{X: 0, Y: 1}, actions.Point{X: 4, Y: 1})
	require.NoError(t, err)
	s.ExpectText("", "ababa")
	require.Equal(t, 1, ctx.Store.UndoDepth(), "a line is one undo entry")
}

func TestDrawCurveEndpoints(t *testing.T) {
	s := scenario.NewScenario(t, nil)
	ctx := s.Context

	src := []*scene.Tree{ctx.Session.BoxChar("*")}
	require.NoError(t, actions.DrawCurve(ctx, src, actions.Point{X: 0, Y: 0}, actions.Point{X: 4, Y: 3}, actions.Point{X: 8, Y: 0}))
	s.ExpectChar(0, 0, "*").ExpectChar(8, 0, "*")
}
