package cursor

import (
	"darkdraw.dev/ddw/internal/scene"
)

// PenDir is the direction the cursor advances after placing text
type PenDir byte

// Pen directions
const (
	PenRight PenDir = 'r'
	PenLeft  PenDir = 'l'
	PenUp    PenDir = 'u'
	PenDown  PenDir = 'd'
)

// ParsePenDir parses "l", "r", "u" or "d"; anything else is PenRight
func ParsePenDir(s string) PenDir {
	switch s {
	case "l", "left":
		return PenLeft
	case "u", "up":
		return PenUp
	case "d", "down":
		return PenDown
	default:
		return PenRight
	}
}

func (d PenDir) String() string {
	return string(d)
}

// Rows reserved for the header and status lines when scrolling vertically
const (
	statusRows = 3
	marginCols = 2
)

// Cursor is the editor cursor plus the scroll offset of the viewport
type Cursor struct {
	Box
	XOffset, YOffset int
	PenDir           PenDir
	Mark             [2]int
	// Width and Height of the viewport in cells
	Width, Height int
}

// New returns a 1x1 cursor at the origin for a viewport of w by h cells
func New(w, h int) *Cursor {
	return &Cursor{Box: NewBox(0, 0, 1, 1), PenDir: PenRight, Width: w, Height: h}
}

// Resize sets the viewport size
func (c *Cursor) Resize(w, h int) {
	c.Width, c.Height = w, h
	c.Check()
}

func (c *Cursor) Left()  { c.X1 = max(0, c.X1-1) }
func (c *Cursor) Right() { c.X1++ }
func (c *Cursor) Up()    { c.Y1 = max(0, c.Y1-1) }
func (c *Cursor) Down()  { c.Y1++ }

// MoveTo places the top-left corner at (x, y)
func (c *Cursor) MoveTo(x, y int) {
	c.X1, c.Y1 = x, y
}

// PageDown scrolls the cursor and viewport by n pages; negative n pages up
func (c *Cursor) PageDown(n int) {
	dy := n * (c.Height - statusRows)
	c.Y1 += dy
	c.YOffset += dy
}

func (c *Cursor) Leftmost() {
	c.X1 = 0
	c.XOffset = 0
}

func (c *Cursor) Top() {
	c.Y1 = 0
	c.YOffset = 0
}

// Rightmost moves to the rightmost drawn column
func (c *Cursor) Rightmost(maxX int) {
	c.X1 = maxX
	c.XOffset = max(0, c.X1-c.Width+marginCols)
}

// Bottom moves to the bottom drawn row
func (c *Cursor) Bottom(maxY int) {
	c.Y1 = maxY
	c.YOffset = max(0, c.Y1-c.Height+marginCols)
}

// Forward moves along the pen direction: dx cells when the pen runs
// horizontally, dy rows when it runs vertically
func (c *Cursor) Forward(dx, dy int) {
	switch c.PenDir {
	case PenDown:
		c.Y1 += dy
	case PenUp:
		c.Y1 -= dy
	case PenLeft:
		c.X1 -= dx
	default:
		c.X1 += dx
	}
}

func (c *Cursor) Wider()   { c.W++ }
func (c *Cursor) Thinner() { c.W = max(0, c.W-1) }
func (c *Cursor) Taller()  { c.H++ }
func (c *Cursor) Shorter() { c.H = max(0, c.H-1) }

// Click starts a drag at (x, y) with a 1x1 box
func (c *Cursor) Click(x, y int) {
	c.Box = NewBox(x, y, 1, 1)
}

// Release ends a drag at (x, y), stretching the box to include that cell
func (c *Cursor) Release(x, y int) {
	c.SetX2(x + 2)
	c.SetY2(y + 2)
	c.Normalize()
}

// PlaceMark remembers the cursor position
func (c *Cursor) PlaceMark() {
	c.Mark = [2]int{c.X1, c.Y1}
}

// SwapMark exchanges the cursor position with the mark
func (c *Cursor) SwapMark() {
	pos := [2]int{c.X1, c.Y1}
	c.X1, c.Y1 = c.Mark[0], c.Mark[1]
	c.Mark = pos
}

// Check clamps the cursor to non-negative coordinates and scrolls the
// viewport just far enough to keep the cursor visible
func (c *Cursor) Check() {
	c.YOffset = max(0, c.YOffset)
	c.XOffset = max(0, c.XOffset)
	c.Y1 = max(0, c.Y1)
	c.X1 = max(0, c.X1)
	c.W = max(0, c.W)
	c.H = max(0, c.H)

	if c.Y1 < c.YOffset {
		c.YOffset = c.Y1
	} else if c.Y1 > c.YOffset+c.Height-statusRows {
		c.YOffset = c.Y1 - c.Height + statusRows
	}

	if c.X1 < c.XOffset {
		c.XOffset = c.X1
	} else if c.X1 >= c.XOffset+c.Width-marginCols {
		c.XOffset = c.X1 - c.Width + marginCols
	}
}

// Grid is the composited cell stack the cursor can search
type Grid interface {
	Stack(x, y int) []scene.ID
	Bounds() (minX, minY, maxX, maxY int, ok bool)
}

// NextObject moves in direction (dx, dy) to the first cell holding an
// element that is not under the cursor now. The cursor stays put when the
// edge of the drawing is reached first.
func (c *Cursor) NextObject(g Grid, dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	minX, minY, maxX, maxY, ok := g.Bounds()
	if !ok {
		return false
	}
	minX, maxX = min(minX, c.X1), max(maxX, c.X1)
	minY, maxY = min(minY, c.Y1), max(maxY, c.Y1)
	current := make(map[scene.ID]bool)
	for _, id := range g.Stack(c.X1, c.Y1) {
		current[id] = true
	}

	for x, y := c.X1, c.Y1; minX <= x && x <= maxX && minY <= y && y <= maxY; x, y = x+dx, y+dy {
		for _, id := range g.Stack(x, y) {
			if !current[id] {
				c.X1, c.Y1 = x, y
				return true
			}
		}
	}
	return false
}
