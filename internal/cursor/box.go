// Package cursor holds the rectangular cell cursor of the editor and the
// viewport that follows it.
package cursor

import "fmt"

// Box is a rectangle of cells with its top-left corner at (X1, Y1).
// X2 and Y2 sit one past the cell after the last column and row, so the
// cells of a box run from X1 to X2-2 and from Y1 to Y2-2.
type Box struct {
	X1, Y1 int
	W, H   int
}

// NewBox returns a box of w by h cells at (x, y)
func NewBox(x, y, w, h int) Box {
	return Box{X1: x, Y1: y, W: w, H: h}
}

// X2 returns X1+W+1
func (b Box) X2() int { return b.X1 + b.W + 1 }

// Y2 returns Y1+H+1
func (b Box) Y2() int { return b.Y1 + b.H + 1 }

// SetX2 resizes the box so that X2 becomes x2
func (b *Box) SetX2(x2 int) { b.W = x2 - b.X1 - 1 }

// SetY2 resizes the box so that Y2 becomes y2
func (b *Box) SetY2(y2 int) { b.H = y2 - b.Y1 - 1 }

// Normalize makes W and H non-negative by moving the top-left corner
func (b *Box) Normalize() {
	if b.W < 0 {
		b.X1 += b.W
		b.W = -b.W
	}
	if b.H < 0 {
		b.Y1 += b.H
		b.H = -b.H
	}
}

// Contains reports whether the cell (x, y) lies inside the box
func (b Box) Contains(x, y int) bool {
	return x >= b.X1 && x < b.X1+b.W && y >= b.Y1 && y < b.Y1+b.H
}

// ContainsBox reports whether o lies entirely inside the box
func (b Box) ContainsBox(o Box) bool {
	return o.X1 >= b.X1 && o.Y1 >= b.Y1 && o.X1+o.W <= b.X1+b.W && o.Y1+o.H <= b.Y1+b.H
}

// Cells returns every cell of the box in row-major order
func (b Box) Cells() [][2]int {
	var out [][2]int
	for y := b.Y1; y < b.Y1+b.H; y++ {
		for x := b.X1; x < b.X1+b.W; x++ {
			out = append(out, [2]int{x, y})
		}
	}
	return out
}

// Empty reports whether the box covers no cells
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)+%dx%d", b.X1, b.Y1, b.W, b.H)
}
