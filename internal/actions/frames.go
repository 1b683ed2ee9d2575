package actions

import (
	"fmt"
	"strconv"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/internal/utils"
)

// DefaultFrameDurationMS is the duration of frames added by the editor
const DefaultFrameDurationMS = 100

// NewFrameBetween adds a frame between frames i and j (indexes into the
// frame list; either may be out of range). A frame after i starts as a
// copy of everything on frame i.
func NewFrameBetween(ctx *runtime.Context, i, j int) (*scene.Frame, error) {
	frames := ctx.Store.Frames()
	var f1, f2 *scene.Frame
	if i >= 0 && i < len(frames) {
		f1 = frames[i]
	}
	if j >= 0 && j < len(frames) {
		f2 = frames[j]
	}

	name := "0"
	switch {
	case f1 != nil && f2 != nil:
		name = f1.ID + "-" + f2.ID
	case f1 != nil:
		name = offsetFrameID(f1.ID, 1)
	case f2 != nil:
		name = offsetFrameID(f2.ID, -1)
	case len(frames) > 0:
		return nil, fmt.Errorf("no frame at %d or %d: %w", i, j, errors.ErrInvalidInput)
	}
	name = utils.UniqueGroupName(name, func(id string) bool {
		return ctx.Store.FrameIndex(id) >= 0
	})

	frame := &scene.Frame{ID: name, DurationMS: DefaultFrameDurationMS}
	err := run(ctx, "new frame", func() error {
		if f1 == nil {
			_, err := ctx.Store.InsertRow(0, frame)
			return err
		}

		var copies []*scene.Tree
		for _, id := range ctx.Store.Rows() {
			if n := ctx.Store.Get(id); n.Kind() != scene.KindFrame && n.Common().Frames.Has(f1.ID) {
				copies = append(copies, ctx.Store.Tree(id))
			}
		}
		if _, err := ctx.Store.InsertRow(ctx.Store.FrameIndex(f1.ID)+1, frame); err != nil {
			return err
		}
		taken := ctx.Store.Groups()
		for _, t := range copies {
			t.Node.Common().Frames = scene.FrameSet{name}
			renameGroups(t, taken)
			if _, err := ctx.Store.AddTree(t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ctx.Splog.Info("new frame %s", name)
	return frame, nil
}

// offsetFrameID adds delta to a numeric frame id
func offsetFrameID(id string, delta int) string {
	if n, err := strconv.Atoi(id); err == nil {
		return strconv.Itoa(n + delta)
	}
	if delta > 0 {
		return id + "+" + strconv.Itoa(delta)
	}
	return id + strconv.Itoa(delta)
}

// NewFrameBefore adds a frame before the current one
func NewFrameBefore(ctx *runtime.Context) error {
	idx := ctx.Player.Index()
	_, err := NewFrameBetween(ctx, idx-1, idx)
	return err
}

// NewFrameAfter adds a frame after the current one and shows it
func NewFrameAfter(ctx *runtime.Context) error {
	idx := ctx.Player.Index()
	if _, err := NewFrameBetween(ctx, idx, idx+1); err != nil {
		return err
	}
	if ctx.Player.Len() > 1 {
		ctx.Player.Seek(idx + 1)
	}
	ctx.Recomposite()
	return nil
}

// NextFrame shows the following frame
func NextFrame(ctx *runtime.Context) error {
	return stepFrame(ctx, ctx.Player.Next)
}

// PrevFrame shows the preceding frame
func PrevFrame(ctx *runtime.Context) error {
	return stepFrame(ctx, ctx.Player.Prev)
}

// FirstFrame shows the first frame
func FirstFrame(ctx *runtime.Context) error {
	return stepFrame(ctx, func() error { ctx.Player.First(); return nil })
}

// LastFrame shows the last frame
func LastFrame(ctx *runtime.Context) error {
	return stepFrame(ctx, func() error { ctx.Player.Last(); return nil })
}

func stepFrame(ctx *runtime.Context, fn func() error) error {
	if ctx.Player.Len() == 0 {
		return errors.ErrNoFrames
	}
	if err := fn(); err != nil {
		return err
	}
	ctx.Recomposite()
	return nil
}

// Play starts autoplay from the first frame
func Play(ctx *runtime.Context) error {
	if ctx.Player.Len() == 0 {
		return errors.ErrNoFrames
	}
	ctx.Player.Start()
	ctx.Recomposite()
	return nil
}

// StopAnimation stops autoplay on the frame being shown
func StopAnimation(ctx *runtime.Context) {
	idx := ctx.Player.Index()
	ctx.Player.Stop()
	ctx.Player.Seek(idx)
	ctx.Recomposite()
}

// SetFrameDuration changes how long the current frame is shown
func SetFrameDuration(ctx *runtime.Context, ms int) error {
	f := ctx.CurrentFrame()
	if f == nil {
		return errors.ErrNoFrames
	}
	if ms <= 0 {
		return fmt.Errorf("duration must be positive: %w", errors.ErrInvalidInput)
	}
	id := ctx.Store.Rows()[ctx.Store.FrameIndex(f.ID)]
	return run(ctx, "frame duration", func() error {
		return ctx.Store.Mutate(id, func(n scene.Node) {
			n.(*scene.Frame).DurationMS = ms
		})
	})
}
