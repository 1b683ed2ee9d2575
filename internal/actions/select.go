package actions

import (
	"fmt"

	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// TagRows adds each space-separated tag in tags to ids
func TagRows(ctx *runtime.Context, ids []scene.ID, tags string) error {
	return retag(ctx, "tag", ids, tags, scene.TagSet.Add)
}

// UntagRows removes each space-separated tag in tags from ids
func UntagRows(ctx *runtime.Context, ids []scene.ID, tags string) error {
	return retag(ctx, "untag", ids, tags, scene.TagSet.Remove)
}

func retag(ctx *runtime.Context, label string, ids []scene.ID, tags string, fn func(scene.TagSet, string) scene.TagSet) error {
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	list := scene.ParseTags(tags)
	if len(list) == 0 {
		return fmt.Errorf("no tag given: %w", errors.ErrInvalidInput)
	}
	return run(ctx, label, func() error {
		for _, id := range ids {
			if err := ctx.Store.Mutate(id, func(n scene.Node) {
				b := n.Common()
				for _, tag := range list {
					b.Tags = fn(b.Tags, tag)
				}
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Tagged returns the top-level rows carrying tag
func Tagged(ctx *runtime.Context, tag string) []scene.ID {
	var ids []scene.ID
	for _, id := range ctx.Store.Rows() {
		if ctx.Store.Get(id).Common().Tags.Has(tag) {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectTag selects the rows carrying tag and returns how many there were
func SelectTag(ctx *runtime.Context, tag string) int {
	ids := Tagged(ctx, tag)
	ctx.Store.Select(ids...)
	return len(ids)
}

// UnselectTag unselects the rows carrying tag
func UnselectTag(ctx *runtime.Context, tag string) int {
	ids := Tagged(ctx, tag)
	ctx.Store.Unselect(ids...)
	return len(ids)
}

// TagAt returns the nth tag (from 1) in the order tags were drawn
func TagAt(ctx *runtime.Context, n int) (string, error) {
	tags := ctx.Cache.Tags()
	if n < 1 || n > len(tags) {
		return "", fmt.Errorf("no tag %d: %w", n, errors.ErrInvalidInput)
	}
	return tags[n-1], nil
}

// ToggleTagN enables or disables drawing of the nth tag
func ToggleTagN(ctx *runtime.Context, n int) error {
	tag, err := TagAt(ctx, n)
	if err != nil {
		return err
	}
	ctx.Session.ToggleTag(tag)
	ctx.Recomposite()
	return nil
}

// EnableAllTags draws every tag again
func EnableAllTags(ctx *runtime.Context) {
	ctx.Session.EnableAllTags()
	ctx.Recomposite()
}

// SelectTop selects the topmost row drawn at each cell of box
func SelectTop(ctx *runtime.Context, box cursor.Box) int {
	ids := ctx.BoxRows(box, 1)
	ctx.Store.Select(ids...)
	return len(ids)
}

// FrameRows returns the top-level rows scoped to exactly the current frame
func FrameRows(ctx *runtime.Context) ([]scene.ID, error) {
	id := ctx.CurrentFrameID()
	if id == "" {
		return nil, errors.ErrNoFrames
	}
	var ids []scene.ID
	for _, rid := range ctx.Store.Rows() {
		if ctx.Store.Get(rid).Common().Frames.String() == id {
			ids = append(ids, rid)
		}
	}
	return ids, nil
}

// SelectFrame selects the rows on the current frame
func SelectFrame(ctx *runtime.Context) (int, error) {
	ids, err := FrameRows(ctx)
	if err != nil {
		return 0, err
	}
	ctx.Store.Select(ids...)
	return len(ids), nil
}

// UnselectFrame unselects the rows on the current frame
func UnselectFrame(ctx *runtime.Context) (int, error) {
	ids, err := FrameRows(ctx)
	if err != nil {
		return 0, err
	}
	ctx.Store.Unselect(ids...)
	return len(ids), nil
}

// SelectEqualChar selects every glyph row whose text is the character
// under the cursor
func SelectEqualChar(ctx *runtime.Context) (int, error) {
	ch := ctx.Cache.Char(ctx.Cursor.X1, ctx.Cursor.Y1)
	if ch == "" {
		return 0, errors.ErrNothingUnderCursor
	}
	var ids []scene.ID
	for _, id := range ctx.Store.Rows() {
		if g, ok := ctx.Store.Get(id).(*scene.Glyph); ok && g.Text == ch {
			ids = append(ids, id)
		}
	}
	ctx.Store.Select(ids...)
	return len(ids), nil
}

// BoxRows returns the top-level rows lying entirely inside box on any frame
func BoxRows(ctx *runtime.Context, box cursor.Box) []scene.ID {
	var ids []scene.ID
	for _, id := range ctx.Store.Rows() {
		n := ctx.Store.Get(id)
		if n.Kind() == scene.KindFrame {
			continue
		}
		b := n.Common()
		w, h := scene.Extent(n)
		if b.X >= box.X1 && b.Y >= box.Y1 && b.X+w <= box.X1+box.W && b.Y+h <= box.Y1+box.H {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectBox selects the rows inside box
func SelectBox(ctx *runtime.Context, box cursor.Box) int {
	ids := BoxRows(ctx, box)
	ctx.Store.Select(ids...)
	return len(ids)
}

// ToggleBox flips the selection of the rows inside box
func ToggleBox(ctx *runtime.Context, box cursor.Box) int {
	ids := BoxRows(ctx, box)
	ctx.Store.Toggle(ids...)
	return len(ids)
}

// GoSelected moves the cursor to the next (or previous) selected row in
// z-order after the one under the cursor
func GoSelected(ctx *runtime.Context, reverse bool) error {
	sel := topRows(ctx.Store, ctx.Store.Selected())
	if len(sel) == 0 {
		return errors.ErrEmptySelection
	}
	current := -1
	if hit, ok := ctx.CursorHit(); ok {
		for i, id := range sel {
			if id == hit.Top {
				current = i
			}
		}
	}
	next := current + 1
	if reverse {
		next = current - 1
		if current < 0 {
			next = len(sel) - 1
		}
	}
	if next < 0 || next >= len(sel) {
		if reverse {
			return fmt.Errorf("no previous selected row")
		}
		return fmt.Errorf("no next selected row")
	}
	x, y := ctx.Store.Position(sel[next])
	ctx.Cursor.MoveTo(x, y)
	return nil
}
