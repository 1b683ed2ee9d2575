package actions

import (
	"fmt"

	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

// Typist handles keys in typing mode. Each printable key is looked up in
// the keymap and placed at the cursor; typing over a cell typed earlier in
// the same session replaces it.
type Typist struct {
	Keymap *config.Keymap

	edits     map[[2]int]scene.ID
	lastWidth int
}

// NewTypist starts a typing session. A nil keymap types keys as themselves.
func NewTypist(km *config.Keymap) *Typist {
	if km == nil {
		km = config.NewKeymap()
	}
	return &Typist{Keymap: km, edits: map[[2]int]scene.ID{}}
}

// Key handles one keypress, named the way the terminal reports it
// ("a", "enter", "ctrl+n"). It returns false when the key ends typing mode.
func (t *Typist) Key(ctx *runtime.Context, key string) (bool, error) {
	x, y := ctx.Cursor.X1, ctx.Cursor.Y1
	var err error

	switch key {
	case "esc", "ctrl+q", "ctrl+c":
		return false, nil
	case "enter", "ctrl+j":
		x, y = 0, y+1
	case "up":
		y--
	case "down":
		y++
	case "left":
		x--
	case "right":
		x++
	case "backspace":
		x -= t.lastWidth
		pos := [2]int{x, y}
		if id, ok := t.edits[pos]; ok {
			delete(t.edits, pos)
			err = run(ctx, "erase typed text", func() error {
				ctx.Store.Delete(id)
				return nil
			})
		}
	case "ctrl+p":
		t.Keymap.Rotate(-1)
	case "ctrl+n":
		t.Keymap.Rotate(1)
	default:
		if len([]rune(key)) != 1 {
			return true, fmt.Errorf("unknown keypress %s: %w", key, errors.ErrInvalidInput)
		}
		text := t.Keymap.Lookup(key)
		pos := [2]int{x, y}
		err = run(ctx, "type", func() error {
			if id, ok := t.edits[pos]; ok {
				ctx.Store.Delete(id)
			}
			id, err := ctx.Store.AddRow(newGlyph(ctx, text, x, y, ctx.Session.DefaultColor))
			if err != nil {
				return err
			}
			t.edits[pos] = id
			return nil
		})
		t.lastWidth = scene.DisplayWidth(text)
		x += t.lastWidth
	}

	ctx.Cursor.X1, ctx.Cursor.Y1 = max(0, x), max(0, y)
	ctx.Cursor.Check()
	return true, err
}

// Layer returns the active keymap layer
func (t *Typist) Layer() string {
	return t.Keymap.Active()
}
