package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

func frames() []*scene.Frame {
	return []*scene.Frame{
		{ID: "f0", DurationMS: 100},
		{ID: "f1", DurationMS: 200},
	}
}

func TestPlayerAutoplay(t *testing.T) {
	t.Parallel()

	p := NewPlayer()
	p.SetFrames(frames())
	p.Start()
	require.True(t, p.Playing())
	require.Equal(t, 100*time.Millisecond, p.Timeout())

	t0 := time.Unix(0, 0)
	seen := map[string]bool{}
	for ms := 0; ms <= 310; ms++ {
		f := p.Advance(t0.Add(time.Duration(ms) * time.Millisecond))
		seen[f.ID] = true
		if ms == 150 {
			require.Equal(t, "f1", f.ID)
			require.Equal(t, 1, p.Index())
			require.Equal(t, 200*time.Millisecond, p.Timeout())
		}
	}

	require.True(t, seen["f0"])
	require.True(t, seen["f1"])
	require.Equal(t, 0, p.Index())
	require.Equal(t, "f0", p.Current().ID)
	require.GreaterOrEqual(t, p.Loops(), 1)

	p.Stop()
	require.False(t, p.Playing())
	require.Equal(t, DefaultIdle, p.Timeout())
}

func TestPlayerFirstTickStartsTiming(t *testing.T) {
	t.Parallel()

	p := NewPlayer()
	p.SetFrames(frames())
	p.Start()

	// A long pause before the first draw must not skip the head frame
	t0 := time.Unix(1000, 0)
	require.Equal(t, "f0", p.Advance(t0).ID)
	require.Equal(t, "f0", p.Advance(t0.Add(100*time.Millisecond)).ID)
	require.Equal(t, "f1", p.Advance(t0.Add(101*time.Millisecond)).ID)
}

func TestPlayerStepping(t *testing.T) {
	t.Parallel()

	t.Run("empty drawing", func(t *testing.T) {
		p := NewPlayer()
		require.ErrorIs(t, p.Next(), errors.ErrNoFrames)
		require.ErrorIs(t, p.Prev(), errors.ErrNoFrames)
		require.Nil(t, p.Current())
		require.Empty(t, p.Describe())
		p.Start()
		require.False(t, p.Playing())
	})

	t.Run("bounds", func(t *testing.T) {
		p := NewPlayer()
		p.SetFrames(frames())
		require.ErrorIs(t, p.Prev(), errors.ErrFirstFrame)
		require.NoError(t, p.Next())
		require.ErrorIs(t, p.Next(), errors.ErrLastFrame)
		require.Equal(t, "Frame f1 1/1", p.Describe())
		p.First()
		require.Equal(t, scene.FrameSet{"f0"}, p.Active())
		p.Last()
		require.Equal(t, 1, p.Index())
	})

	t.Run("index is clamped when frames shrink", func(t *testing.T) {
		p := NewPlayer()
		p.SetFrames(frames())
		p.Seek(5)
		require.Equal(t, 1, p.Index())
		p.SetFrames(frames()[:1])
		require.Equal(t, 0, p.Index())
		p.SetFrames(nil)
		require.Equal(t, 0, p.Index())
	})
}

func TestPlayerFramesChangeWhilePlaying(t *testing.T) {
	t.Parallel()
	t0 := time.Unix(0, 0)

	t.Run("stops when every frame is gone", func(t *testing.T) {
		p := NewPlayer()
		p.SetFrames(frames()[:1])
		p.Start()
		p.Advance(t0)

		p.SetFrames(nil)
		require.False(t, p.Playing())
		require.Nil(t, p.Advance(t0.Add(time.Second)))
		require.Equal(t, DefaultIdle, p.Timeout())
	})

	t.Run("stops when the refill finds no frames", func(t *testing.T) {
		p := NewPlayer()
		p.SetFrames(frames()[:1])
		p.Start()
		p.Advance(t0)
		p.frames = nil

		require.Nil(t, p.Advance(t0.Add(time.Second)))
		require.False(t, p.Playing())
	})

	t.Run("queued frames pick up new durations", func(t *testing.T) {
		p := NewPlayer()
		p.SetFrames(frames())
		p.Start()
		p.Advance(t0)

		longer := frames()
		longer[0].DurationMS = 500
		p.SetFrames(longer)
		require.True(t, p.Playing())
		require.Equal(t, 500*time.Millisecond, p.Timeout())
		require.Equal(t, "f0", p.Advance(t0.Add(300*time.Millisecond)).ID)
		require.Equal(t, "f1", p.Advance(t0.Add(501*time.Millisecond)).ID)
	})

	t.Run("drops a removed frame from the queue", func(t *testing.T) {
		p := NewPlayer()
		p.SetFrames(frames())
		p.Start()
		p.Advance(t0)

		p.SetFrames(frames()[1:])
		require.True(t, p.Playing())
		require.Equal(t, "f1", p.Current().ID)
		require.Equal(t, 0, p.Index())
	})
}
