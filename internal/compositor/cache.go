package compositor

import (
	"slices"

	"darkdraw.dev/ddw/internal/scene"
)

// Cache maps each drawn cell to the stack of elements covering it,
// topmost last.
type Cache struct {
	cells    map[Point][]Hit
	tags     map[string][]scene.ID
	tagOrder []string

	minX, minY, maxX, maxY int
}

func newCache() *Cache {
	return &Cache{
		cells: make(map[Point][]Hit),
		tags:  make(map[string][]scene.ID),
	}
}

// put records h over every cell the glyph covers. A top-level row hit again
// moves to the top of the stack.
func (c *Cache) put(x, y int, h Hit) {
	w := max(scene.DisplayWidth(h.Text), 1)
	for i := 0; i < w; i++ {
		p := Point{x + i, y}
		stack := slices.DeleteFunc(c.cells[p], func(old Hit) bool { return old.Top == h.Top })
		c.cells[p] = append(stack, h)
		c.grow(p)
	}
}

func (c *Cache) grow(p Point) {
	if len(c.cells) == 1 {
		c.minX, c.maxX, c.minY, c.maxY = p.X, p.X, p.Y, p.Y
		return
	}
	c.minX = min(c.minX, p.X)
	c.maxX = max(c.maxX, p.X)
	c.minY = min(c.minY, p.Y)
	c.maxY = max(c.maxY, p.Y)
}

func (c *Cache) addTag(tag string, id scene.ID) {
	ids, ok := c.tags[tag]
	if !ok {
		c.tagOrder = append(c.tagOrder, tag)
	}
	if !slices.Contains(ids, id) {
		c.tags[tag] = append(ids, id)
	}
}

// Empty reports whether nothing was drawn
func (c *Cache) Empty() bool {
	return len(c.cells) == 0
}

// Hits returns the elements drawn at a cell, topmost last
func (c *Cache) Hits(x, y int) []Hit {
	return c.cells[Point{x, y}]
}

// Stack returns the top-level rows drawn at a cell, topmost last
func (c *Cache) Stack(x, y int) []scene.ID {
	hits := c.cells[Point{x, y}]
	ids := make([]scene.ID, len(hits))
	for i, h := range hits {
		ids[i] = h.Top
	}
	return ids
}

// Top returns the topmost hit at a cell
func (c *Cache) Top(x, y int) (Hit, bool) {
	hits := c.cells[Point{x, y}]
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[len(hits)-1], true
}

// Char returns the text rendered at a cell. Cells covered by the trailing
// half of a wide glyph return "".
func (c *Cache) Char(x, y int) string {
	h, ok := c.Top(x, y)
	if !ok {
		return ""
	}
	return h.Char(x)
}

// Bounds returns the extent of drawn cells, inclusive. ok is false when
// nothing was drawn.
func (c *Cache) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	if c.Empty() {
		return 0, 0, 0, 0, false
	}
	return c.minX, c.minY, c.maxX, c.maxY, true
}

// MaxXY returns the bottom-right drawn cell, or the origin when empty
func (c *Cache) MaxXY() (int, int) {
	return c.maxX, c.maxY
}

// Box returns the top-level rows drawn in the w by h box at (x, y). Only
// the topmost n rows of each cell are considered; n <= 0 takes them all.
// Rows are returned in order of first appearance, scanning row-major.
func (c *Cache) Box(x, y, w, h, n int) []scene.ID {
	var out []scene.ID
	for ny := y; ny < y+h; ny++ {
		for nx := x; nx < x+w; nx++ {
			stack := c.Stack(nx, ny)
			if n > 0 && len(stack) > n {
				stack = stack[len(stack)-n:]
			}
			for _, id := range stack {
				if !slices.Contains(out, id) {
					out = append(out, id)
				}
			}
		}
	}
	return out
}

// BoxHits returns the distinct glyph hits in the box, topmost n per cell
func (c *Cache) BoxHits(x, y, w, h, n int) []Hit {
	var out []Hit
	for ny := y; ny < y+h; ny++ {
		for nx := x; nx < x+w; nx++ {
			hits := c.Hits(nx, ny)
			if n > 0 && len(hits) > n {
				hits = hits[len(hits)-n:]
			}
			for _, hit := range hits {
				if !slices.ContainsFunc(out, func(o Hit) bool { return o.Glyph == hit.Glyph }) {
					out = append(out, hit)
				}
			}
		}
	}
	return out
}

// Tags returns every tag seen while compositing, in order of first use
func (c *Cache) Tags() []string {
	return slices.Clone(c.tagOrder)
}

// Tagged returns the elements carrying tag
func (c *Cache) Tagged(tag string) []scene.ID {
	return slices.Clone(c.tags[tag])
}

// Points returns every drawn cell, sorted row-major
func (c *Cache) Points() []Point {
	pts := make([]Point, 0, len(c.cells))
	for p := range c.cells {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return pts
}
