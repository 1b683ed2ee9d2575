package actions

import (
	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/internal/utils"
)

// run applies fn as one undo entry and recomposites the drawing
func run(ctx *runtime.Context, label string, fn func() error) error {
	err := ctx.Store.Batch(label, fn)
	ctx.Recomposite()
	return err
}

// newGlyph builds a glyph at x, y scoped to the current frame unless new
// elements go to the base frame
func newGlyph(ctx *runtime.Context, text string, x, y int, color string) *scene.Glyph {
	g := &scene.Glyph{Base: scene.Base{X: x, Y: y}, Text: text, Color: color}
	g.Frames = currentFrameSet(ctx)
	return g
}

func currentFrameSet(ctx *runtime.Context) scene.FrameSet {
	if ctx.Session.AddBaseFrame {
		return nil
	}
	if id := ctx.CurrentFrameID(); id != "" {
		return scene.FrameSet{id}
	}
	return nil
}

// topRows maps ids to their top-level rows, dropping duplicates and keeping
// the store's z-order
func topRows(store *engine.Store, ids []scene.ID) []scene.ID {
	seen := make(map[scene.ID]bool, len(ids))
	for _, id := range ids {
		if store.Live(id) {
			seen[store.Top(id)] = true
		}
	}
	var rows []scene.ID
	for _, id := range store.Rows() {
		if seen[id] {
			rows = append(rows, id)
		}
	}
	return rows
}

// recolor rewrites the color of a glyph, or of every glyph owned by a group.
// Refs share their group's children and are left alone.
func recolor(store *engine.Store, id scene.ID, fn func(string) string) (int, error) {
	var glyphs []scene.ID
	store.Walk([]scene.ID{id}, func(v engine.Visit) bool {
		if _, ok := v.Node.(*scene.Glyph); ok {
			glyphs = append(glyphs, v.ID)
		}
		return true
	})
	for _, gid := range glyphs {
		if err := store.Mutate(gid, func(n scene.Node) {
			g := n.(*scene.Glyph)
			g.Color = fn(g.Color)
		}); err != nil {
			return 0, err
		}
	}
	return len(glyphs), nil
}

// knownFrames returns the ids of the drawing's frames
func knownFrames(store *engine.Store) []string {
	var ids []string
	for _, f := range store.Frames() {
		ids = append(ids, f.ID)
	}
	return ids
}

// renameGroups gives every group in t an id not used by the store or by
// groups earlier in t
func renameGroups(t *scene.Tree, taken map[string]scene.ID) {
	t.Walk(0, 0, func(sub *scene.Tree, _, _ int) bool {
		if g, ok := sub.Node.(*scene.Group); ok {
			base := g.ID
			if base == "" {
				base = "group"
			}
			g.ID = utils.UniqueGroupName(base, func(name string) bool {
				_, used := taken[name]
				return used
			})
			taken[g.ID] = 0
		}
		return true
	})
}
