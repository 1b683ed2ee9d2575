package actions

import (
	"fmt"
	"slices"
	"strings"

	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/internal/utils"
)

// GroupSelected moves the selected rows into a new group named name, placed
// at their bounding box and with children rebased to its origin. An empty
// name picks a random word.
func GroupSelected(ctx *runtime.Context, name string) (scene.ID, error) {
	ids := topRows(ctx.Store, ctx.Store.Selected())
	if len(ids) == 0 {
		return 0, errors.ErrEmptySelection
	}
	if name == "" {
		name = utils.RandomGroupName(ctx.Config.WordsPath())
	}
	name = utils.SanitizeGroupName(name)
	if name == "" {
		return 0, fmt.Errorf("group name: %w", errors.ErrInvalidInput)
	}
	if _, taken := ctx.Store.Groups()[name]; taken {
		return 0, errors.NewDuplicateGroupError(name)
	}

	x1, y1, x2, y2 := ctx.Store.BoundingBox(ids)
	var gid scene.ID
	err := run(ctx, "group", func() error {
		var err error
		gid, err = ctx.Store.AddRow(&scene.Group{
			Base: scene.Base{X: x1, Y: y1},
			ID:   name,
			W:    x2 - x1,
			H:    y2 - y1,
		})
		if err != nil {
			return err
		}
		for i, id := range ids {
			if err := ctx.Store.Mutate(id, func(n scene.Node) {
				b := n.Common()
				b.X -= x1
				b.Y -= y1
				b.Floating = false
			}); err != nil {
				return err
			}
			if err := ctx.Store.Move(id, gid, i); err != nil {
				return err
			}
		}
		return ctx.Store.CheckCycle(gid)
	})
	if err != nil {
		return 0, err
	}

	ctx.Store.ClearSelection()
	ctx.Store.Select(gid)
	ctx.Splog.Info("group %q (%d objects)", name, len(ids))
	return gid, nil
}

// Degroup lifts the contents of the groups among ids to the top level at
// their absolute positions, labelling each element with the dotted ids of
// the groups it came from. The emptied groups stay behind so Regroup can
// put everything back. The lifted elements are returned and selected.
func Degroup(ctx *runtime.Context, ids []scene.ID) ([]scene.ID, error) {
	return degroup(ctx, ids, false)
}

// DegroupAll flattens the groups among ids for good: contents are lifted to
// the top level at their absolute positions and the group elements are
// deleted.
func DegroupAll(ctx *runtime.Context, ids []scene.ID) ([]scene.ID, error) {
	return degroup(ctx, ids, true)
}

type lifted struct {
	id   scene.ID
	x, y int
	path string
}

func degroup(ctx *runtime.Context, ids []scene.ID, permanent bool) ([]scene.ID, error) {
	ids = topRows(ctx.Store, ids)
	for _, id := range ids {
		if r, ok := ctx.Store.Get(id).(*scene.Ref); ok {
			return nil, fmt.Errorf("%w (to %q)", errors.ErrDegroupRef, r.Ref)
		}
	}

	var items []lifted
	var shells []scene.ID
	for _, id := range ids {
		if _, ok := ctx.Store.Get(id).(*scene.Group); !ok {
			continue
		}
		shells = append(shells, id)
		ctx.Store.Walk([]scene.ID{id}, func(v engine.Visit) bool {
			if v.ID == id {
				return true
			}
			if _, ok := v.Node.(*scene.Group); ok {
				shells = append(shells, v.ID)
			}
			items = append(items, lifted{id: v.ID, x: v.X, y: v.Y, path: groupPath(ctx.Store, v.Parents)})
			return true
		})
	}
	if len(shells) == 0 {
		return nil, fmt.Errorf("no groups to degroup: %w", errors.ErrEmptySelection)
	}

	label := "degroup"
	if permanent {
		label = "degroup all"
	}
	var out []scene.ID
	err := run(ctx, label, func() error {
		for _, it := range items {
			path := it.path
			if permanent {
				path = ""
			}
			if err := ctx.Store.Mutate(it.id, func(n scene.Node) {
				b := n.Common()
				b.X, b.Y, b.Path = it.x, it.y, path
			}); err != nil {
				return err
			}
			if _, isGroup := ctx.Store.Get(it.id).(*scene.Group); permanent && isGroup {
				continue
			}
			if err := ctx.Store.Move(it.id, 0, ctx.Store.Len()); err != nil {
				return err
			}
			out = append(out, it.id)
		}
		if permanent {
			for i := len(shells) - 1; i >= 0; i-- {
				if err := ctx.Store.Remove(shells[i]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx.Store.ClearSelection()
	ctx.Store.Select(out...)
	ctx.Splog.Info("ungrouped %d elements", len(out))
	return out, nil
}

// groupPath joins the group ids of parents with dots
func groupPath(store *engine.Store, parents []scene.ID) string {
	names := make([]string, 0, len(parents))
	for _, p := range parents {
		if g, ok := store.Get(p).(*scene.Group); ok {
			names = append(names, g.ID)
		}
	}
	return strings.Join(names, ".")
}

// Regroup returns degrouped rows among ids to the group named by the last
// component of their path label, creating missing groups at the first
// member's position.
func Regroup(ctx *runtime.Context, ids []scene.ID) error {
	ids = topRows(ctx.Store, ids)
	var members []scene.ID
	for _, id := range ids {
		if ctx.Store.Get(id).Common().Path != "" {
			members = append(members, id)
		}
	}
	if len(members) == 0 {
		return fmt.Errorf("nothing to regroup: %w", errors.ErrEmptySelection)
	}

	var touched []string
	err := run(ctx, "regroup", func() error {
		for _, id := range members {
			path := ctx.Store.Get(id).Common().Path
			name := path[strings.LastIndex(path, ".")+1:]
			x, y := ctx.Store.Position(id)

			gid, _, err := ctx.Store.Group(name)
			if err != nil {
				gid, err = ctx.Store.AddRow(&scene.Group{Base: scene.Base{X: x, Y: y}, ID: name})
				if err != nil {
					return err
				}
			}
			if ctx.Store.Top(gid) == id {
				return fmt.Errorf("group %q can't contain itself: %w", name, errors.ErrCyclicRef)
			}
			gx, gy := ctx.Store.Position(gid)
			if err := ctx.Store.Mutate(id, func(n scene.Node) {
				b := n.Common()
				b.X, b.Y, b.Path = x-gx, y-gy, ""
			}); err != nil {
				return err
			}
			if err := ctx.Store.Move(id, gid, len(ctx.Store.Children(gid))); err != nil {
				return err
			}
			if err := ctx.Store.CheckCycle(ctx.Store.Top(gid)); err != nil {
				return err
			}
			if !slices.Contains(touched, name) {
				touched = append(touched, name)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	groups := ctx.Store.Groups()
	ctx.Store.ClearSelection()
	for _, name := range touched {
		ctx.Store.Select(ctx.Store.Top(groups[name]))
	}
	ctx.Splog.Info("regrouped %d elements", len(members))
	return nil
}
