package actions

import (
	"strconv"
	"strings"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// SetColor sets the color of every glyph in ids, including the glyphs
// owned by groups among them
func SetColor(ctx *runtime.Context, color string, ids []scene.ID) error {
	return recolorRows(ctx, "set color", ids, func(string) string { return color })
}

// CycleColor adds n to every numeric color in the color strings of ids,
// wrapping around the 256-color palette
func CycleColor(ctx *runtime.Context, ids []scene.ID, n int) error {
	return recolorRows(ctx, "cycle color", ids, func(c string) string { return ShiftColor(c, n) })
}

// ShiftColor adds n to each numeric token of color modulo 256
func ShiftColor(color string, n int) string {
	tokens := strings.Fields(color)
	for i, tok := range tokens {
		if v, err := strconv.Atoi(tok); err == nil {
			tokens[i] = strconv.Itoa(((v+n)%256 + 256) % 256)
		}
	}
	return strings.Join(tokens, " ")
}

func recolorRows(ctx *runtime.Context, label string, ids []scene.ID, fn func(string) string) error {
	if len(ids) == 0 {
		return errors.ErrNothingUnderCursor
	}
	return run(ctx, label, func() error {
		for _, id := range ids {
			if _, err := recolor(ctx.Store, id, fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetDefaultColor sets the color new text is drawn in
func SetDefaultColor(ctx *runtime.Context, color string) {
	ctx.Session.DefaultColor = strings.TrimSpace(color)
	ctx.Splog.Info("default color %q", ctx.Session.DefaultColor)
}

// PickDefaultColor takes the default color from the last glyph under the
// cursor
func PickDefaultColor(ctx *runtime.Context) error {
	hits := ctx.Cache.Hits(ctx.Cursor.X1, ctx.Cursor.Y1)
	if len(hits) == 0 {
		return errors.ErrNothingUnderCursor
	}
	SetDefaultColor(ctx, hits[len(hits)-1].Color)
	return nil
}
