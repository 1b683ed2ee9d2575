package actions

import (
	"math"

	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// Point is a cell coordinate
type Point struct {
	X, Y int
}

// Bresenham returns the cells of the straight line from (x0, y0) to
// (x1, y1), both ends included
func Bresenham(x0, y0, x1, y1 int) []Point {
	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	e := dx + dy

	var pts []Point
	for {
		pts = append(pts, Point{x0, y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			e += dx
			y0 += sy
		}
	}
	return pts
}

// curveTolerance is the flatness below which a curve segment is emitted
const curveTolerance = 0.5

// QuadBezier samples the quadratic curve from p0 through control c to p2 by
// recursive subdivision. Consecutive samples are less than a cell apart.
func QuadBezier(x0, y0, cx, cy, x2, y2 float64) [][2]float64 {
	pts := [][2]float64{{x0, y0}}
	var subdivide func(x0, y0, cx, cy, x2, y2 float64, depth int)
	subdivide = func(x0, y0, cx, cy, x2, y2 float64, depth int) {
		if depth > 16 || (math.Hypot(cx-x0, cy-y0)+math.Hypot(x2-cx, y2-cy) < 1 &&
			flatness(x0, y0, cx, cy, x2, y2) < curveTolerance) {
			pts = append(pts, [2]float64{x2, y2})
			return
		}
		ax, ay := (x0+cx)/2, (y0+cy)/2
		bx, by := (cx+x2)/2, (cy+y2)/2
		mx, my := (ax+bx)/2, (ay+by)/2
		subdivide(x0, y0, ax, ay, mx, my, depth+1)
		subdivide(mx, my, bx, by, x2, y2, depth+1)
	}
	subdivide(x0, y0, cx, cy, x2, y2, 0)
	return pts
}

// flatness is the distance of the control point from the chord midpoint
func flatness(x0, y0, cx, cy, x2, y2 float64) float64 {
	return math.Hypot(cx-(x0+x2)/2, cy-(y0+y2)/2)
}

// CurveControl returns the control point that makes the quadratic curve from
// p0 to p2 pass through mid
func CurveControl(p0, mid, p2 Point) (float64, float64) {
	cx := 2*float64(mid.X) - 0.5*float64(p0.X+p2.X)
	cy := 2*float64(mid.Y) - 0.5*float64(p0.Y+p2.Y)
	return cx, cy
}

// lineSource returns the clipboard, or a single "." in the default color
func lineSource(ctx *runtime.Context) []*scene.Tree {
	if src := ctx.Session.ClipboardRows(); len(src) > 0 {
		return src
	}
	return []*scene.Tree{ctx.Session.BoxChar(".")}
}

// DrawLine pastes src along the line between two cells, cycling through it
func DrawLine(ctx *runtime.Context, src []*scene.Tree, from, to Point) error {
	return run(ctx, "draw line", func() error {
		for i, p := range Bresenham(from.X, from.Y, to.X, to.Y) {
			if err := pasteOne(ctx, src[i%len(src)], p); err != nil {
				return err
			}
		}
		return nil
	})
}

// DrawCurve pastes src along the quadratic curve from p0 through mid to p2
func DrawCurve(ctx *runtime.Context, src []*scene.Tree, p0, mid, p2 Point) error {
	cx, cy := CurveControl(p0, mid, p2)
	samples := QuadBezier(float64(p0.X), float64(p0.Y), cx, cy, float64(p2.X), float64(p2.Y))
	return run(ctx, "draw curve", func() error {
		for i, s := range samples {
			if err := pasteOne(ctx, src[i%len(src)], Point{int(s[0]), int(s[1])}); err != nil {
				return err
			}
		}
		return nil
	})
}

func pasteOne(ctx *runtime.Context, t *scene.Tree, p Point) error {
	t = t.Clone()
	t.Node.Common().Floating = false
	return PasteChars(ctx, []*scene.Tree{t}, cursor.NewBox(p.X, p.Y, 1, 1), 0)
}

// ToggleLineMode enters or leaves line drawing, forgetting any points
func ToggleLineMode(ctx *runtime.Context) runtime.Mode {
	if ctx.Session.Mode == runtime.ModeLine {
		ctx.Session.Mode = runtime.ModeNormal
	} else {
		ctx.Session.Mode = runtime.ModeLine
	}
	ctx.Session.LinePoints = nil
	return ctx.Session.Mode
}

// NextPoint completes a line segment at x, y. With one pending point, or
// when x, y repeats the last point, a straight line is drawn; with two, a
// curve through x, y. The last point becomes the start of the next segment.
func NextPoint(ctx *runtime.Context, x, y int) error {
	pts := ctx.Session.LinePoints
	if len(pts) == 0 {
		return nil
	}
	src := lineSource(ctx)
	last := pts[len(pts)-1]

	var err error
	if len(pts) == 1 || last == [2]int{x, y} {
		err = DrawLine(ctx, src, Point{pts[0][0], pts[0][1]}, Point{x, y})
	} else {
		err = DrawCurve(ctx, src, Point{pts[0][0], pts[0][1]}, Point{x, y}, Point{pts[1][0], pts[1][1]})
	}
	ctx.Session.LinePoints = [][2]int{last}
	return err
}

// Click starts a cursor box at x, y, recording a line point in line mode
func Click(ctx *runtime.Context, x, y int) {
	if ctx.Session.Mode == runtime.ModeLine {
		ctx.Session.LinePoints = append(ctx.Session.LinePoints, [2]int{x, y})
	}
	ctx.Cursor.Click(x, y)
}

// Release finishes a drag at x, y. In line mode it draws to the point,
// otherwise it stretches the cursor box.
func Release(ctx *runtime.Context, x, y int) error {
	if ctx.Session.Mode == runtime.ModeLine {
		return NextPoint(ctx, x, y)
	}
	ctx.Cursor.Release(x, y)
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
