package compositor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/scene"
)

// Rect is a viewport in absolute cell coordinates
type Rect struct {
	X, Y, W, H int
}

// Cell is one position of an exported viewport
type Cell struct {
	X, Y  int
	Text  string
	Color Color
	// Empty is set when nothing is drawn at the cell
	Empty bool
	// Cont is set on the trailing cells of a wide glyph
	Cont bool
}

// Extent returns the rect from the origin to the bottom-right drawn cell
func (c *Cache) Extent() Rect {
	if c.Empty() {
		return Rect{}
	}
	maxX, maxY := c.MaxXY()
	return Rect{W: max(maxX+1, 0), H: max(maxY+1, 0)}
}

// Each calls fn for every cell of r in row-major order
func (c *Cache) Each(r Rect, fn func(Cell)) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			fn(c.Cell(x, y))
		}
	}
}

// Cell returns the exported view of one position
func (c *Cache) Cell(x, y int) Cell {
	h, ok := c.Top(x, y)
	if !ok {
		return Cell{X: x, Y: y, Empty: true}
	}
	text := h.Char(x)
	return Cell{
		X:     x,
		Y:     y,
		Text:  text,
		Color: ParseColor(h.Color),
		Cont:  text == "" && x != h.X0,
	}
}

// WriteText writes the drawing as plain text, from the origin to the last
// drawn cell. Trailing spaces are trimmed and blank lines are only written
// when a later line has content.
func WriteText(w io.Writer, c *Cache) error {
	bw := bufio.NewWriter(w)
	r := c.Extent()
	pending := ""
	for y := r.Y; y < r.Y+r.H; y++ {
		var line strings.Builder
		for x := r.X; x < r.X+r.W; x++ {
			cell := c.Cell(x, y)
			switch {
			case cell.Empty:
				line.WriteByte(' ')
			case cell.Cont:
			default:
				line.WriteString(cell.Text)
			}
		}
		text := strings.TrimRight(line.String(), " ") + "\n"
		pending += text
		if strings.TrimSpace(text) != "" {
			if _, err := bw.WriteString(pending); err != nil {
				return fmt.Errorf("failed to write text: %w", err)
			}
			pending = ""
		}
	}
	return bw.Flush()
}

// FrameInfo describes one animation frame for exporters
type FrameInfo struct {
	ID       string
	Duration time.Duration
}

// Timeline lists the drawing's frames with their durations
func Timeline(store *engine.Store) []FrameInfo {
	var out []FrameInfo
	for _, f := range store.Frames() {
		out = append(out, FrameInfo{ID: f.ID, Duration: time.Duration(f.DurationMS) * time.Millisecond})
	}
	return out
}

// TotalDuration sums the frame durations
func TotalDuration(frames []FrameInfo) time.Duration {
	var d time.Duration
	for _, f := range frames {
		d += f.Duration
	}
	return d
}

// FrameCache is the composited drawing for one frame
type FrameCache struct {
	Frame FrameInfo
	Cache *Cache
}

// CompositeFrames composites every frame in order. A drawing without frames
// yields a single unnamed frame.
func CompositeFrames(store *engine.Store, opts Options) ([]FrameCache, error) {
	frames := Timeline(store)
	if len(frames) == 0 {
		c, err := Composite(store, opts)
		return []FrameCache{{Cache: c}}, err
	}

	out := make([]FrameCache, 0, len(frames))
	var firstErr error
	for _, f := range frames {
		o := opts
		o.Frames = scene.FrameSet{f.ID}
		c, err := Composite(store, o)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out = append(out, FrameCache{Frame: f, Cache: c})
	}
	return out, firstErr
}
