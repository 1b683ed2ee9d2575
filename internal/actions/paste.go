package actions

import (
	"fmt"
	"slices"

	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// maxFillIterations bounds FillChars on boxes the source can't advance
// through
const maxFillIterations = 10000

// PasteChars copies src into the drawing with its bounding box moved to the
// box corner. Floating elements go to the cursor. In color mode only the
// colors of the topmost n elements at each target cell change; n <= 0
// recolors the whole stack.
func PasteChars(ctx *runtime.Context, src []*scene.Tree, box cursor.Box, n int) error {
	if len(src) == 0 {
		return errors.ErrEmptyClipboard
	}

	mode := ctx.Session.PasteMode
	sourceFrames := make(map[string]bool)
	for _, t := range src {
		sourceFrames[t.Node.Common().Frames.String()] = true
	}
	frames := knownFrames(ctx.Store)
	x1, y1, _, _ := engine.BoundingBox(src)

	npasted := 0
	err := run(ctx, "paste", func() error {
		taken := ctx.Store.Groups()
		for _, old := range src {
			ob := old.Node.Common()
			var newx, newy int
			if ob.Floating {
				newx, newy = ctx.Cursor.X1, ctx.Cursor.Y1
				if len(src) > 1 {
					ctx.Cursor.Forward(scene.DisplayWidth(old.Text())+1, 1)
				}
			} else {
				newx, newy = ob.X+box.X1-x1, ob.Y+box.Y1-y1
			}

			if mode == runtime.PasteColor {
				color := rootColor(old)
				if color == "" || newx >= box.X2() || newy >= box.Y2()-1 {
					continue
				}
				k, err := recolorCell(ctx, newx, newy, n, color)
				if err != nil {
					return err
				}
				npasted += k
				continue
			}

			t := old.Clone()
			b := t.Node.Common()
			b.X, b.Y, b.Floating = newx, newy, false
			switch {
			case ctx.Session.AddBaseFrame:
				b.Frames = nil
			case !allKnown(ob.Frames, frames):
				b.Frames = nil
			case len(sourceFrames) == 1:
				b.Frames = currentFrameSet(ctx)
			}
			if mode == runtime.PasteChar {
				setTreeColor(t, ctx.Session.DefaultColor)
			}
			renameGroups(t, taken)
			if _, err := ctx.Store.AddTree(t); err != nil {
				return err
			}
			npasted++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if npasted == 0 {
		ctx.Splog.Warn("paste mode %s had nothing to paste", mode)
	}
	return nil
}

// FillChars covers every cell of box with src, cycling through it and
// advancing by each element's width
func FillChars(ctx *runtime.Context, src []*scene.Tree, box cursor.Box, n int) error {
	if len(src) == 0 {
		return errors.ErrEmptyClipboard
	}

	mode := ctx.Session.PasteMode
	nfilled := 0
	err := run(ctx, "fill", func() error {
		taken := ctx.Store.Groups()
		next, niters := 0, 0
		for newy := box.Y1; newy < box.Y1+box.H; newy++ {
			newx := box.X1
			for newx < box.X1+box.W && niters < maxFillIterations {
				niters++
				old := src[next%len(src)]
				next++

				switch mode {
				case runtime.PasteColor:
					color := rootColor(old)
					if color != "" && newx < box.X2() && newy < box.Y2()-1 {
						k, err := recolorCell(ctx, newx, newy, n, color)
						if err != nil {
							return err
						}
						nfilled += k
					}
				default:
					t := old.Clone()
					b := t.Node.Common()
					b.X, b.Y, b.Floating = newx, newy, false
					b.Frames = currentFrameSet(ctx)
					if mode == runtime.PasteChar {
						setTreeColor(t, ctx.Session.DefaultColor)
					}
					renameGroups(t, taken)
					if _, err := ctx.Store.AddTree(t); err != nil {
						return err
					}
					nfilled++
				}
				w, _ := scene.Extent(old.Node)
				newx += w
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	ctx.Splog.Info("filled %d cells", nfilled)
	if nfilled == 0 {
		ctx.Splog.Warn("paste mode %s had nothing to fill", mode)
	}
	return nil
}

// PasteSpecial instances each group on the clipboard as a ref at the
// cursor. In color mode it recolors the top element under each clipboard
// cell instead.
func PasteSpecial(ctx *runtime.Context) error {
	src, err := ctx.Session.RequireClipboard()
	if err != nil {
		return err
	}
	if ctx.Session.PasteMode == runtime.PasteColor {
		return PasteChars(ctx, src, ctx.Cursor.Box, 1)
	}

	groups := ctx.Store.Groups()
	var refs []string
	for _, t := range src {
		switch v := t.Node.(type) {
		case *scene.Group:
			if _, ok := groups[v.ID]; !ok {
				return errors.NewRefNotFoundError(v.ID)
			}
			refs = append(refs, v.ID)
		default:
			ctx.Splog.Info("ignoring %s element", v.Kind())
		}
	}
	if len(refs) == 0 {
		return nil
	}

	return run(ctx, "paste ref", func() error {
		for _, name := range refs {
			ref := &scene.Ref{Base: scene.Base{X: ctx.Cursor.X1, Y: ctx.Cursor.Y1}, Ref: name}
			id, err := ctx.Store.AddRow(ref)
			if err != nil {
				return err
			}
			if err := ctx.Store.CheckCycle(id); err != nil {
				return err
			}
		}
		return nil
	})
}

// CyclePasteMode rotates all, char and color
func CyclePasteMode(ctx *runtime.Context) runtime.PasteMode {
	ctx.Session.PasteMode = ctx.Session.PasteMode.Next()
	return ctx.Session.PasteMode
}

// recolorCell sets color on the topmost n elements drawn at x, y
func recolorCell(ctx *runtime.Context, x, y, n int, color string) (int, error) {
	hits := ctx.Cache.Hits(x, y)
	if n > 0 && len(hits) > n {
		hits = hits[len(hits)-n:]
	}
	for _, h := range hits {
		if err := ctx.Store.Mutate(h.Glyph, func(node scene.Node) {
			if g, ok := node.(*scene.Glyph); ok {
				g.Color = color
			}
		}); err != nil {
			return 0, fmt.Errorf("recolor %d,%d: %w", x, y, err)
		}
	}
	return len(hits), nil
}

func rootColor(t *scene.Tree) string {
	if g, ok := t.Node.(*scene.Glyph); ok {
		return g.Color
	}
	return ""
}

func setTreeColor(t *scene.Tree, color string) {
	t.Walk(0, 0, func(sub *scene.Tree, _, _ int) bool {
		if g, ok := sub.Node.(*scene.Glyph); ok {
			g.Color = color
		}
		return true
	})
}

func allKnown(fs scene.FrameSet, frames []string) bool {
	if fs.Empty() {
		return false
	}
	for _, f := range fs {
		if !slices.Contains(frames, f) {
			return false
		}
	}
	return true
}
