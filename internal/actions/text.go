package actions

import (
	"fmt"
	"strings"

	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// AddText adds a glyph at x, y on the current frame
func AddText(ctx *runtime.Context, text string, x, y int, color string) (scene.ID, error) {
	if text == "" {
		return 0, fmt.Errorf("empty text: %w", errors.ErrInvalidInput)
	}
	var id scene.ID
	err := run(ctx, "add text", func() error {
		var err error
		id, err = ctx.Store.AddRow(newGlyph(ctx, text, x, y, color))
		return err
	})
	return id, err
}

// PlaceTextOptions configures PlaceText
type PlaceTextOptions struct {
	// Color defaults to the session's default color
	Color string
	// DX and DY are added to the pen advance
	DX, DY int
	// Stay keeps the cursor where it is
	Stay bool
}

// PlaceText adds text at the cursor and advances the cursor in the pen
// direction by the text's width
func PlaceText(ctx *runtime.Context, text string, opts PlaceTextOptions) error {
	color := opts.Color
	if color == "" {
		color = ctx.Session.DefaultColor
	}
	if _, err := AddText(ctx, text, ctx.Cursor.X1, ctx.Cursor.Y1, color); err != nil {
		return err
	}
	if !opts.Stay {
		ctx.Cursor.Forward(scene.DisplayWidth(text)+opts.DX, 1+opts.DY)
	}
	return nil
}

// PlaceTextN places clipboard slot n at the cursor. In color paste mode it
// recolors the elements under the cursor instead.
func PlaceTextN(ctx *runtime.Context, n int) error {
	slot, err := ctx.Session.Palette(n)
	if err != nil {
		return err
	}
	g, ok := slot.Node.(*scene.Glyph)
	if !ok {
		return fmt.Errorf("clipboard item %d is a %s: %w", n+1, slot.Node.Kind(), errors.ErrInvalidInput)
	}

	switch ctx.Session.PasteMode {
	case runtime.PasteColor:
		return SetColor(ctx, g.Color, ctx.CursorRows())
	case runtime.PasteChar:
		return PlaceText(ctx, g.Text, PlaceTextOptions{})
	default:
		return PlaceText(ctx, g.Text, PlaceTextOptions{Color: g.Color})
	}
}

// EditText replaces the text of the glyph under the cursor. With nothing
// there, the text is placed at the cursor instead.
func EditText(ctx *runtime.Context, text string) error {
	hit, ok := ctx.CursorHit()
	if !ok {
		return PlaceText(ctx, text, PlaceTextOptions{DX: 1})
	}
	if text == "" {
		return fmt.Errorf("empty text: %w", errors.ErrInvalidInput)
	}
	return run(ctx, "edit text", func() error {
		return setText(ctx, hit.Glyph, text)
	})
}

// EditSelected sets the text of every selected glyph
func EditSelected(ctx *runtime.Context, text string) error {
	ids := ctx.Store.Selected()
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	if text == "" {
		return fmt.Errorf("empty text: %w", errors.ErrInvalidInput)
	}
	return run(ctx, "edit selected", func() error {
		for _, id := range ids {
			if _, ok := ctx.Store.Get(id).(*scene.Glyph); !ok {
				continue
			}
			if err := setText(ctx, id, text); err != nil {
				return err
			}
		}
		return nil
	})
}

func setText(ctx *runtime.Context, id scene.ID, text string) error {
	return ctx.Store.Mutate(id, func(n scene.Node) {
		n.(*scene.Glyph).Text = text
	})
}

// RemoveAt deletes every top-level row drawn in box and returns copies of
// them
func RemoveAt(ctx *runtime.Context, box cursor.Box) ([]*scene.Tree, error) {
	ids := ctx.BoxRows(box, 0)
	if len(ids) == 0 {
		return nil, errors.ErrNothingUnderCursor
	}
	trees := copyRows(ctx, ids)
	err := run(ctx, "delete", func() error {
		ctx.Store.Delete(ids...)
		return nil
	})
	return trees, err
}

// Cut removes the rows under the cursor onto the clipboard
func Cut(ctx *runtime.Context) error {
	trees, err := RemoveAt(ctx, ctx.Cursor.Box)
	if err != nil {
		return err
	}
	ctx.Session.SetClipboard(trees)
	ctx.Splog.Info("cut %d elements", len(trees))
	return nil
}

// CutTop removes the last row found under the cursor onto the clipboard
func CutTop(ctx *runtime.Context) error {
	ids := ctx.CursorRows()
	if len(ids) == 0 {
		return errors.ErrNothingUnderCursor
	}
	top := ids[len(ids)-1]
	ctx.Session.SetClipboard(copyRows(ctx, []scene.ID{top}))
	return run(ctx, "cut", func() error {
		ctx.Store.Delete(top)
		return nil
	})
}

// Yank copies ids onto the current clipboard page
func Yank(ctx *runtime.Context, ids []scene.ID) error {
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	trees := copyRows(ctx, ids)
	ctx.Session.SetClipboard(trees)
	ctx.Splog.Info("copied %d elements", len(trees))
	return nil
}

func copyRows(ctx *runtime.Context, ids []scene.ID) []*scene.Tree {
	trees := make([]*scene.Tree, 0, len(ids))
	for _, id := range ids {
		if t := ctx.Store.AbsoluteTree(id); t != nil {
			trees = append(trees, t)
		}
	}
	return trees
}

// DeleteSelected deletes the selected top-level rows
func DeleteSelected(ctx *runtime.Context) error {
	ids := topRows(ctx.Store, ctx.Store.Selected())
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	err := run(ctx, "delete selected", func() error {
		ctx.Store.Delete(ids...)
		return nil
	})
	if err == nil {
		ctx.Splog.Info("deleted %d elements", len(ids))
	}
	return err
}

// JoinRows concatenates the text of ids into the first glyph and deletes
// the rest
func JoinRows(ctx *runtime.Context, ids []scene.ID) error {
	ids = topRows(ctx.Store, ids)
	var glyphs []scene.ID
	var text strings.Builder
	for _, id := range ids {
		if g, ok := ctx.Store.Get(id).(*scene.Glyph); ok {
			glyphs = append(glyphs, id)
			text.WriteString(g.Text)
		}
	}
	if len(glyphs) < 2 {
		return fmt.Errorf("need at least two text elements to join: %w", errors.ErrEmptySelection)
	}
	return run(ctx, "join", func() error {
		if err := setText(ctx, glyphs[0], text.String()); err != nil {
			return err
		}
		ctx.Store.Delete(glyphs[1:]...)
		return nil
	})
}

// SplitRows replaces each multi-character glyph in ids with one glyph per
// character, keeping its place in the z-order
func SplitRows(ctx *runtime.Context, ids []scene.ID) (int, error) {
	type split struct {
		id    scene.ID
		glyph *scene.Glyph
		parts []string
	}
	var todo []split
	for _, id := range ids {
		g, ok := ctx.Store.Get(id).(*scene.Glyph)
		if !ok {
			continue
		}
		if parts := scene.Clusters(g.Text); len(parts) > 1 {
			todo = append(todo, split{id, g, parts})
		}
	}
	if len(todo) == 0 {
		return 0, fmt.Errorf("no multi-character text: %w", errors.ErrNothingUnderCursor)
	}

	n := 0
	err := run(ctx, "split", func() error {
		for _, s := range todo {
			parent, index := ctx.Store.Parent(s.id), ctx.Store.Index(s.id)
			if err := ctx.Store.Remove(s.id); err != nil {
				return err
			}
			dx := 0
			for i, part := range s.parts {
				ng := s.glyph.Clone().(*scene.Glyph)
				ng.Text = part
				ng.X += dx
				dx += scene.DisplayWidth(part)
				if _, err := ctx.Store.InsertTree(parent, index+i, &scene.Tree{Node: ng}); err != nil {
					return err
				}
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	ctx.Splog.Info("split into %d objects", n)
	return n, nil
}
