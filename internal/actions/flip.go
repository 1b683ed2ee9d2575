package actions

import (
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// Axis selects the direction of a flip
type Axis int

const (
	// Horizontal reflects x coordinates
	Horizontal Axis = iota
	// Vertical reflects y coordinates
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Semigraphic glyphs and their reflections. Characters at the same index of
// upperXY and lowerXY mirror vertically; each of upperXY, lowerXY and
// horizChars mirrors horizontally against its own reverse.
const (
	upperXY    = "╭🭽🮠🮭🬀🬄🬔🬖🬥🬚🬆🬒🬕🬝▘▛🭈🭆🭂🭉🭃🭋🭅🭊🭁🭇🭄◢🮞🮟◣🭏🬼🭌🬿🭐🭀🭎🬾🭍🭑🬽▜▝🬬🬨🬡🬊🬩🬙🬢🬧🬉🬁🮬🮡🭾╮"
	lowerXY    = "╰🭼🮢🮫🬏🬓🬣🬈🬳🬌🬱🬮🬲🬺▖▙🭣🭧🭓🭤🭔🭦🭖🭥🭒🭢🭕◥🮝🮜◤🭠🭗🭝🭚🭡🭛🭟🭙🭞🭜🭘▟▗🬻🬷🬯🬵🬍🬶🬅🬘🬦🬞🮪🮣🭿╯"
	horizChars = "🭮▏▎▍▌▋▊▉🮤🮨▏🭰🭱🭲🬛🬜▌🬴🬐🬟🬤╱▚🭪🮌🮍🭨▞╲🬗🬑🬠🬸▐🬪🬫🭳🭴🭵▕🮩🮥🮋🮊🮉▐🮈🮇▕🭬"
	upperVert  = "🬎▀🮑🮏🭫🭯🬭🬟▇▆▅▄▃▂▁🭻🭺🭹🬜▚🮧🮨╱"
	lowerVert  = "🬹▄🮒🮎🭩🭭🬂🬑🮆🮅🮄▀🮃🮂▔🭶🭷🭸🬪▞🮦🮩╲"
)

var horizMirror, vertMirror = buildMirrorTables()

func buildMirrorTables() (horiz, vert map[string]string) {
	horiz = make(map[string]string)
	vert = make(map[string]string)
	reversed := func(s string) {
		r := []rune(s)
		for i, c := range r {
			horiz[string(c)] = string(r[len(r)-1-i])
		}
	}
	paired := func(a, b string) {
		ra, rb := []rune(a), []rune(b)
		for i := range ra {
			vert[string(ra[i])] = string(rb[i])
		}
	}
	reversed(upperXY)
	reversed(lowerXY)
	reversed(horizChars)
	paired(upperXY, lowerXY)
	paired(lowerXY, upperXY)
	paired(upperVert, lowerVert)
	paired(lowerVert, upperVert)
	return horiz, vert
}

// MirrorGlyph returns the reflection of text along axis, or text when it
// has none
func MirrorGlyph(text string, axis Axis) string {
	table := horizMirror
	if axis == Vertical {
		table = vertMirror
	}
	if m, ok := table[text]; ok {
		return m
	}
	return text
}

// Flip reflects the positions of rows within box
func Flip(ctx *runtime.Context, box cursor.Box, rows []scene.ID, axis Axis) error {
	return flip(ctx, box, rows, axis, false)
}

// Mirror flips rows within box and swaps semigraphic glyphs for their
// reflections
func Mirror(ctx *runtime.Context, box cursor.Box, rows []scene.ID, axis Axis) error {
	return flip(ctx, box, rows, axis, true)
}

func flip(ctx *runtime.Context, box cursor.Box, rows []scene.ID, axis Axis, mirror bool) error {
	rows = topRows(ctx.Store, rows)
	if len(rows) == 0 {
		return errors.ErrNothingUnderCursor
	}
	label := "flip " + axis.String()
	if mirror {
		label = "mirror " + axis.String()
	}
	return run(ctx, label, func() error {
		for _, id := range rows {
			if err := ctx.Store.Mutate(id, func(n scene.Node) {
				b := n.Common()
				if axis == Horizontal {
					b.X = box.X2() + box.X1 - b.X - 2
				} else {
					b.Y = box.Y2() + box.Y1 - b.Y - 2
				}
				if g, ok := n.(*scene.Glyph); ok && mirror {
					g.Text = MirrorGlyph(g.Text, axis)
				}
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// SelectedBox returns the bounding box of the selection as a cursor box
func SelectedBox(ctx *runtime.Context) cursor.Box {
	x1, y1, x2, y2 := ctx.Store.SelectedBox()
	return cursor.NewBox(x1, y1, x2-x1, y2-y1)
}
