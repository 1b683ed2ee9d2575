package actions

import (
	"fmt"
	"math"
	"strings"

	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// SlideTop moves ids above everything else in the drawing
func SlideTop(ctx *runtime.Context, ids []scene.ID) error {
	ids = topRows(ctx.Store, ids)
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	return run(ctx, "slide top", func() error {
		for _, id := range ids {
			if err := ctx.Store.Move(id, 0, ctx.Store.Len()); err != nil {
				return err
			}
		}
		return nil
	})
}

// SlideBottom moves ids beneath everything else in the drawing
func SlideBottom(ctx *runtime.Context, ids []scene.ID) error {
	ids = topRows(ctx.Store, ids)
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	return run(ctx, "slide bottom", func() error {
		for i, id := range ids {
			if err := ctx.Store.Move(id, 0, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// AlignSelected lines the selected rows (or those under the cursor) up
// with the first one's x
func AlignSelected(ctx *runtime.Context) error {
	ids := topRows(ctx.Store, ctx.SomeSelectedRows())
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	x := ctx.Store.Get(ids[0]).Common().X
	return shiftRows(ctx, "align", ids, func(b *scene.Base) { b.X = x })
}

// InsertRow pushes the selected rows at or below the cursor down a line
func InsertRow(ctx *runtime.Context) error {
	y := ctx.Cursor.Y1
	return shiftRows(ctx, "insert row", topRows(ctx.Store, ctx.SomeSelectedRows()), func(b *scene.Base) {
		if b.Y >= y {
			b.Y++
		}
	})
}

// InsertCol pushes the selected rows at or right of the cursor over a column
func InsertCol(ctx *runtime.Context) error {
	x := ctx.Cursor.X1
	return shiftRows(ctx, "insert column", topRows(ctx.Store, ctx.SomeSelectedRows()), func(b *scene.Base) {
		if b.X >= x {
			b.X++
		}
	})
}

func shiftRows(ctx *runtime.Context, label string, ids []scene.ID, fn func(b *scene.Base)) error {
	if len(ids) == 0 {
		return errors.ErrEmptySelection
	}
	return run(ctx, label, func() error {
		for _, id := range ids {
			if err := ctx.Store.Mutate(id, func(n scene.Node) { fn(n.Common()) }); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetBoxChars sets the six box tool characters from a space-separated list:
// horizontal, vertical, then the top-left, top-right, bottom-left and
// bottom-right corners
func SetBoxChars(ctx *runtime.Context, chars string) error {
	fields := strings.Fields(chars)
	if len(fields) != 6 {
		return fmt.Errorf("need exactly 6 characters separated by spaces: %w", errors.ErrInvalidInput)
	}
	copy(ctx.Session.BoxChars[:], fields)
	ctx.Splog.Info("box chars set: %s", strings.Join(fields, " "))
	return nil
}

// BoxCursor draws a box along the inner edge of the cursor
func BoxCursor(ctx *runtime.Context) error {
	horiz, vert, tl, tr, bl, br := ctx.Session.BoxChars[0], ctx.Session.BoxChars[1],
		ctx.Session.BoxChars[2], ctx.Session.BoxChars[3], ctx.Session.BoxChars[4], ctx.Session.BoxChars[5]
	b := ctx.Cursor.Box
	right, bottom := b.X2()-2, b.Y2()-2
	color := ctx.Session.DefaultColor

	return run(ctx, "box", func() error {
		add := func(text string, x, y int) error {
			_, err := ctx.Store.AddRow(newGlyph(ctx, text, x, y, color))
			return err
		}
		for _, c := range []struct {
			text string
			x, y int
		}{{tl, b.X1, b.Y1}, {tr, right, b.Y1}, {bl, b.X1, bottom}, {br, right, bottom}} {
			if err := add(c.text, c.x, c.y); err != nil {
				return err
			}
		}
		for x := b.X1 + 1; x < right; x++ {
			if err := add(horiz, x, b.Y1); err != nil {
				return err
			}
			if err := add(horiz, x, bottom); err != nil {
				return err
			}
		}
		for y := b.Y1 + 1; y < bottom; y++ {
			if err := add(vert, b.X1, y); err != nil {
				return err
			}
			if err := add(vert, right, y); err != nil {
				return err
			}
		}
		return nil
	})
}

// CirclePoints returns the cells of the ellipse inscribed in box, in order
// of angle
func CirclePoints(box cursor.Box) []Point {
	xr := float64(box.W-1) / 2
	yr := float64(box.H-1) / 2
	cx := float64(2*box.X1+box.W) / 2
	cy := float64(2*box.Y1+box.H) / 2

	seen := make(map[Point]bool)
	var pts []Point
	for deg := 0; deg <= 360; deg++ {
		theta := float64(deg) * math.Pi / 180
		p := Point{int(cx + xr*math.Cos(theta)), int(cy + yr*math.Sin(theta))}
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}
	return pts
}

// StampCircle draws an ellipse inscribed in box with the clipboard's
// characters, or "*" with an empty clipboard
func StampCircle(ctx *runtime.Context, box cursor.Box) error {
	type stamp struct{ text, color string }
	var chars []stamp
	for _, t := range ctx.Session.ClipboardRows() {
		if g, ok := t.Node.(*scene.Glyph); ok && g.Text != "" {
			chars = append(chars, stamp{g.Text, g.Color})
		}
	}
	if len(chars) == 0 {
		chars = []stamp{{text: "*"}}
	}

	return run(ctx, "stamp circle", func() error {
		for i, p := range CirclePoints(box) {
			ch := chars[i%len(chars)]
			color := ch.color
			if color == "" {
				color = ctx.Session.DefaultColor
			}
			if _, err := ctx.Store.AddRow(newGlyph(ctx, ch.text, p.X, p.Y, color)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Line weight chains, lightest first. Characters sharing a token move
// together; the first character of the next or previous token is the
// replacement.
const weightChains = `
┌ ╒ ┍ ╔ ┏
┌ ╓ ┎ ╔ ┏
└ ╘ ┕ ╚ ┗
└ ╙ ┖ ╚ ┗
┐ ╕ ┑ ╗ ┓
┐ ╖ ┒ ╗ ┓
┘ ╛ ┙ ╝ ┛
┘ ╜ ┚ ╝ ┛
├ ╞ ┝ ╠ ┣
├ ╟ ┠ ╠ ┣
┤ ╡ ┥ ╣ ┫
┤ ╢ ┨ ╣ ┫
┬ ╤ ┯ ╦ ┳
┬ ╥ ┰ ╦ ┳
┴ ╧ ┷ ╩ ┻
┴ ┸ ╨ ╩ ┻
┼ ╪ ┿ ╬ ╋
┼ ╫ ╂ ╬ ╋
─ ═ ━
│ ║ ┃
┞┟ ┠
┡┢ ┣
┦┧ ┨
┩┪ ┫
┭┮ ┯
┵┶ ┷
┱┲ ┳
┹┺ ┻
╁╀ ╂
┽┾ ┿
╄╃╅╆╇╈╉╊ ╋
- =
. :
! |
`

var upgradePath, downgradePath = buildWeightChains()

// buildWeightChains reads the chains bottom up so the first chain listing a
// character decides its path
func buildWeightChains() (up, down map[rune]rune) {
	up = make(map[rune]rune)
	down = make(map[rune]rune)
	lines := strings.Split(weightChains, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		tokens := strings.Fields(lines[i])
		for j, tok := range tokens {
			for _, ch := range tok {
				if j+1 < len(tokens) {
					up[ch] = []rune(tokens[j+1])[0]
				}
				if j > 0 {
					down[ch] = []rune(tokens[j-1])[0]
				}
			}
		}
	}
	return up, down
}

// UpgradeText replaces each character with its heavier line weight
func UpgradeText(s string) string {
	return mapRunes(s, upgradePath)
}

// DowngradeText replaces each character with its lighter line weight
func DowngradeText(s string) string {
	return mapRunes(s, downgradePath)
}

func mapRunes(s string, m map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if v, ok := m[r]; ok {
			return v
		}
		return r
	}, s)
}

// Upgrade makes the line-drawing glyphs in ids heavier
func Upgrade(ctx *runtime.Context, ids []scene.ID) error {
	return reweight(ctx, "upgrade", ids, UpgradeText)
}

// Downgrade makes the line-drawing glyphs in ids lighter
func Downgrade(ctx *runtime.Context, ids []scene.ID) error {
	return reweight(ctx, "downgrade", ids, DowngradeText)
}

func reweight(ctx *runtime.Context, label string, ids []scene.ID, fn func(string) string) error {
	if len(ids) == 0 {
		return errors.ErrNothingUnderCursor
	}
	return run(ctx, label, func() error {
		for _, id := range ids {
			g, ok := ctx.Store.Get(id).(*scene.Glyph)
			if !ok {
				continue
			}
			text := fn(g.Text)
			if text == g.Text {
				continue
			}
			if err := setText(ctx, id, text); err != nil {
				return err
			}
		}
		return nil
	})
}
