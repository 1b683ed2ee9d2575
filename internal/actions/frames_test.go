package actions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func frameIDs(s *scenario.Scenario) []string {
	var ids []string
	for _, f := range s.Context.Store.Frames() {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestNewFrameBetween(t *testing.T) {
	t.Run("first frame of a drawing", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		f, err := actions.NewFrameBetween(s.Context, 0, 1)
		require.NoError(t, err)
		require.Equal(t, "0", f.ID)
		require.Equal(t, actions.DefaultFrameDurationMS, f.DurationMS)
	})

	t.Run("names frames after their neighbors", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			framesOneTwo,
			`{"x":0,"y":0,"text":"a","frame":"1"}`,
			`{"x":1,"y":0,"text":"b","frame":"2"}`,
		))
		ctx := s.Context

		_, err := actions.NewFrameBetween(ctx, 0, 1)
		require.NoError(t, err)
		require.Equal(t, []string{"1", "1-2", "2"}, frameIDs(s))

		_, err = actions.NewFrameBetween(ctx, 2, 3)
		require.NoError(t, err)
		_, err = actions.NewFrameBetween(ctx, -1, 0)
		require.NoError(t, err)
		require.Equal(t, []string{"0", "1", "1-2", "2", "3"}, frameIDs(s))
	})

	t.Run("copies the previous frame", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			framesOneTwo,
			`{"x":0,"y":0,"text":"a","frame":"1"}`,
		))
		ctx := s.Context

		_, err := actions.NewFrameBetween(ctx, 0, 1)
		require.NoError(t, err)
		s.Seek(1)
		require.Equal(t, "1-2", ctx.CurrentFrameID())
		s.ExpectText("a")
		require.Equal(t, scene.FrameSet{"1-2"}, lastRow(s).Common().Frames)
	})

	t.Run("numeric names stay unique", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			`{"type":"frame","id":"1","duration_ms":100}`,
			`{"type":"frame","id":"2","duration_ms":100}`,
		))
		f, err := actions.NewFrameBetween(s.Context, 0, -1)
		require.NoError(t, err)
		require.Equal(t, "2-2", f.ID)
	})
}

func TestFrameNavigation(t *testing.T) {
	t.Run("without frames", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		require.ErrorIs(t, actions.NextFrame(s.Context), errors.ErrNoFrames)
		require.ErrorIs(t, actions.Play(s.Context), errors.ErrNoFrames)
		require.ErrorIs(t, actions.SetFrameDuration(s.Context, 50), errors.ErrNoFrames)
	})

	t.Run("steps through frames", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(
			framesOneTwo,
			`{"x":0,"y":0,"text":"a","frame":"1"}`,
			`{"x":0,"y":0,"text":"b","frame":"2"}`,
		))
		ctx := s.Context
		s.ExpectText("a")

		require.NoError(t, actions.NextFrame(ctx))
		s.ExpectText("b")
		require.Error(t, actions.NextFrame(ctx))
		require.NoError(t, actions.FirstFrame(ctx))
		s.ExpectText("a")
		require.NoError(t, actions.LastFrame(ctx))
		require.Equal(t, "2", ctx.CurrentFrameID())
	})

	t.Run("new frame after shows it", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(framesOneTwo))
		ctx := s.Context
		require.NoError(t, actions.NewFrameAfter(ctx))
		require.Equal(t, "1-2", ctx.CurrentFrameID())
	})

	t.Run("frame duration", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(framesOneTwo))
		ctx := s.Context
		require.Error(t, actions.SetFrameDuration(ctx, 0))
		require.NoError(t, actions.SetFrameDuration(ctx, 250))
		require.Equal(t, 250, ctx.Store.Frames()[0].DurationMS)
	})
}

func TestPlayWhileEditingFrames(t *testing.T) {
	t0 := time.Unix(0, 0)

	t.Run("undoing the only frame stops playback", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		ctx := s.Context
		_, err := actions.NewFrameBetween(ctx, 0, 1)
		require.NoError(t, err)
		require.NoError(t, actions.Play(ctx))
		ctx.Player.Advance(t0)

		require.NoError(t, actions.Undo(ctx))
		require.False(t, ctx.Player.Playing())
		require.NotPanics(t, func() { ctx.Player.Advance(t0.Add(time.Second)) })
		require.Nil(t, ctx.CurrentFrame())
	})

	t.Run("a new duration applies to the frame on display", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.Records(framesOneTwo))
		ctx := s.Context
		require.NoError(t, actions.Play(ctx))
		ctx.Player.Advance(t0)

		require.NoError(t, actions.SetFrameDuration(ctx, 500))
		require.Equal(t, 500*time.Millisecond, ctx.Player.Timeout())
		require.Equal(t, "1", ctx.Player.Advance(t0.Add(300*time.Millisecond)).ID)
	})
}
