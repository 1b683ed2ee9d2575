// Package compositor flattens the scene graph into a per-cell cache of the
// elements drawn there, honoring frame scoping, disabled tags and z-order.
package compositor

import (
	stderrors "errors"
	"slices"

	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/scene"
)

// Options selects what gets drawn
type Options struct {
	// Frames is the active frame set. Frame-scoped elements show only when
	// they share an id with it.
	Frames scene.FrameSet
	// DisabledTags hides every element carrying one of these tags.
	DisabledTags scene.TagSet
}

// Point is an absolute cell position
type Point struct {
	X, Y int
}

// Hit is one element drawn at a cell
type Hit struct {
	// Top is the top-level row the glyph belongs to. Selection and editing
	// address elements through it.
	Top scene.ID
	// Glyph is the glyph actually drawn, possibly nested or reached via a ref.
	Glyph scene.ID
	// X0 is the absolute column of the glyph's first cell.
	X0    int
	Text  string
	Color string
}

// Char returns the part of the glyph text rendered at column x
func (h Hit) Char(x int) string {
	return scene.CharAt(h.Text, x-h.X0)
}

// Composite flattens store under opts. Referential problems (missing or
// cyclic refs) are collected into the returned error while the rest of the
// drawing is still composited.
func Composite(store *engine.Store, opts Options) (*Cache, error) {
	f := &flattener{
		store:  store,
		opts:   opts,
		groups: store.Groups(),
		cache:  newCache(),
		seen:   make(map[string]bool),
	}
	for _, id := range store.Rows() {
		f.visit(id, 0, 0, id, false, nil)
	}
	return f.cache, stderrors.Join(f.errs...)
}

type flattener struct {
	store  *engine.Store
	opts   Options
	groups map[string]scene.ID
	cache  *Cache
	errs   []error
	seen   map[string]bool
}

func (f *flattener) fail(err error) {
	if f.seen[err.Error()] {
		return
	}
	f.seen[err.Error()] = true
	f.errs = append(f.errs, err)
}

// visit draws id at offset (ox, oy). scoped is set once an enclosing
// element restricted the subtree to the active frames; descendants of a
// scoped element are not checked again. path holds the group ids being
// resolved, outermost first.
func (f *flattener) visit(id scene.ID, ox, oy int, top scene.ID, scoped bool, path []string) {
	n := f.store.Get(id)
	if n == nil {
		return
	}
	b := n.Common()
	for _, tag := range b.Tags {
		f.cache.addTag(tag, id)
	}
	if b.Tags.Any(f.opts.DisabledTags) {
		return
	}

	inFrame := func() bool {
		if scoped || b.Frames.Empty() {
			return true
		}
		scoped = true
		return b.Frames.VisibleIn(f.opts.Frames)
	}

	x, y := ox+b.X, oy+b.Y
	switch n := n.(type) {
	case *scene.Frame:
		return

	case *scene.Glyph:
		if !inFrame() || n.Text == "" {
			return
		}
		f.cache.put(x, y, Hit{Top: top, Glyph: id, X0: x, Text: n.Text, Color: n.Color})

	case *scene.Group:
		if !inFrame() {
			return
		}
		if slices.Contains(path, n.ID) {
			f.fail(errors.NewCyclicRefError(n.ID, path))
			return
		}
		inner := append(slices.Clone(path), n.ID)
		for _, c := range n.Rows {
			f.visit(c, x, y, top, scoped, inner)
		}

	case *scene.Ref:
		if !inFrame() {
			return
		}
		target, ok := f.groups[n.Ref]
		if !ok {
			f.fail(errors.NewRefNotFoundError(n.Ref))
			return
		}
		if slices.Contains(path, n.Ref) {
			f.fail(errors.NewCyclicRefError(n.Ref, path))
			return
		}
		g := f.store.Get(target).(*scene.Group)
		inner := append(slices.Clone(path), n.Ref)
		for _, c := range g.Rows {
			f.visit(c, x, y, top, scoped, inner)
		}
	}
}
