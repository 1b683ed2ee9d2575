package commands

import (
	"fmt"
	"strconv"
	"strings"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
)

var table = [numCommands]Spec{
	GoLeft:     {Name: "go-left", Help: "go left one char", Run: move(func(c *cursor.Cursor) { c.Left() })},
	GoDown:     {Name: "go-down", Help: "go down one char", Run: move(func(c *cursor.Cursor) { c.Down() })},
	GoUp:       {Name: "go-up", Help: "go up one char", Run: move(func(c *cursor.Cursor) { c.Up() })},
	GoRight:    {Name: "go-right", Help: "go right one char", Run: move(func(c *cursor.Cursor) { c.Right() })},
	GoPageDown: {Name: "go-pagedown", Help: "scroll one page forward", Run: move(func(c *cursor.Cursor) { c.PageDown(1) })},
	GoPageUp:   {Name: "go-pageup", Help: "scroll one page backward", Run: move(func(c *cursor.Cursor) { c.PageDown(-1) })},
	GoLeftmost: {Name: "go-leftmost", Help: "go all the way to the left", Run: move(func(c *cursor.Cursor) { c.Leftmost() })},
	GoTop:      {Name: "go-top", Help: "go all the way to the top", Run: move(func(c *cursor.Cursor) { c.Top() })},
	GoBottom: {Name: "go-bottom", Help: "go all the way to the bottom", Run: func(ctx *runtime.Context, _ string) (string, error) {
		_, maxY := ctx.Cache.MaxXY()
		ctx.Cursor.Bottom(maxY)
		return "", nil
	}},
	GoRightmost: {Name: "go-rightmost", Help: "go all the way to the right", Run: func(ctx *runtime.Context, _ string) (string, error) {
		maxX, _ := ctx.Cache.MaxXY()
		ctx.Cursor.Rightmost(maxX)
		return "", nil
	}},
	GoLeftObj:     {Name: "go-left-obj", Help: "go left to the next object", Run: goObj(-1, 0)},
	GoDownObj:     {Name: "go-down-obj", Help: "go down to the next object", Run: goObj(0, 1)},
	GoUpObj:       {Name: "go-up-obj", Help: "go up to the next object", Run: goObj(0, -1)},
	GoRightObj:    {Name: "go-right-obj", Help: "go right to the next object", Run: goObj(1, 0)},
	PenLeft:       {Name: "pen-left", Help: "write text leftwards", Run: pen(cursor.PenLeft)},
	PenDown:       {Name: "pen-down", Help: "write text downwards", Run: pen(cursor.PenDown)},
	PenUp:         {Name: "pen-up", Help: "write text upwards", Run: pen(cursor.PenUp)},
	PenRight:      {Name: "pen-right", Help: "write text rightwards", Run: pen(cursor.PenRight)},
	ResizeWider:   {Name: "resize-cursor-wider", Help: "widen the cursor", Run: move(func(c *cursor.Cursor) { c.Wider() })},
	ResizeThinner: {Name: "resize-cursor-thinner", Help: "narrow the cursor", Run: move(func(c *cursor.Cursor) { c.Thinner() })},
	ResizeShorter: {Name: "resize-cursor-shorter", Help: "shorten the cursor", Run: move(func(c *cursor.Cursor) { c.Shorter() })},
	ResizeTaller:  {Name: "resize-cursor-taller", Help: "lengthen the cursor", Run: move(func(c *cursor.Cursor) { c.Taller() })},
	PlaceMark:     {Name: "place-mark", Help: "remember the cursor position", Run: move(func(c *cursor.Cursor) { c.PlaceMark() })},
	SwapMark:      {Name: "swap-mark", Help: "jump to the mark, marking where the cursor was", Run: move(func(c *cursor.Cursor) { c.SwapMark() })},
	ClickCursor: {Name: "click-cursor", Help: "start the cursor box at x y", Needs: NeedInput, Run: point(func(ctx *runtime.Context, x, y int) error {
		actions.Click(ctx, x, y)
		return nil
	})},
	EndCursor: {Name: "end-cursor", Help: "end the cursor box at x y", Needs: NeedInput, Run: point(actions.Release)},
	ShowChar:  {Name: "show-char", Help: "show the cursor box and the character under it", Run: showChar},

	PrevFrame:      {Name: "prev-frame", Help: "show the previous frame", Needs: NeedFrames, Run: do(actions.PrevFrame)},
	NextFrame:      {Name: "next-frame", Help: "show the next frame", Needs: NeedFrames, Run: do(actions.NextFrame)},
	FirstFrame:     {Name: "first-frame", Help: "show the first frame", Needs: NeedFrames, Run: do(actions.FirstFrame)},
	LastFrame:      {Name: "last-frame", Help: "show the last frame", Needs: NeedFrames, Run: do(actions.LastFrame)},
	NewFrameBefore: {Name: "new-frame-before", Help: "add a frame before this one", Run: do(actions.NewFrameBefore)},
	NewFrameAfter:  {Name: "new-frame-after", Help: "add a frame after this one", Run: do(actions.NewFrameAfter)},
	ResetTime: {Name: "reset-time", Help: "play the animation from the start", Needs: NeedFrames, Run: func(ctx *runtime.Context, _ string) (string, error) {
		return "playing", actions.Play(ctx)
	}},
	StopAnimation: {Name: "stop-animation", Help: "stop the animation", Run: func(ctx *runtime.Context, _ string) (string, error) {
		actions.StopAnimation(ctx)
		return "stopped", nil
	}},
	SetFrameDuration: {Name: "set-frame-duration", Help: "set how long this frame shows", Prompt: "duration (ms): ", Needs: NeedFrames | NeedInput, Run: number(actions.SetFrameDuration)},

	AddInput: {Name: "add-input", Help: "place text at the cursor", Prompt: "text: ", Needs: NeedInput, Run: func(ctx *runtime.Context, input string) (string, error) {
		return "", actions.PlaceText(ctx, input, actions.PlaceTextOptions{})
	}},
	EditText:     {Name: "edit-text", Help: "replace the text under the cursor", Prompt: "text: ", Needs: NeedInput, Run: text(actions.EditText)},
	EditSelected: {Name: "edit-selected", Help: "replace the text of the selected rows", Prompt: "text: ", Needs: NeedSelection | NeedInput, Run: text(actions.EditSelected)},
	DeleteCursor: {Name: "delete-cursor", Help: "delete the items under the cursor", Needs: NeedCursor, Run: func(ctx *runtime.Context, _ string) (string, error) {
		trees, err := actions.RemoveAt(ctx, ctx.Cursor.Box)
		return fmt.Sprintf("deleted %d elements", len(trees)), err
	}},
	DeleteSelected: {Name: "delete-selected", Help: "delete the selected rows", Needs: NeedSelection, Run: do(actions.DeleteSelected)},
	YankChar:       {Name: "yank-char", Help: "copy the items under the cursor", Needs: NeedCursor, Run: rows(cursorRows, actions.Yank)},
	YankSelected:   {Name: "yank-selected", Help: "copy the selected rows", Needs: NeedSelection, Run: rows(selectedRows, actions.Yank)},
	CutChar:        {Name: "cut-char", Help: "cut the items under the cursor", Needs: NeedCursor, Run: do(actions.Cut)},
	CutCharTop:     {Name: "cut-char-top", Help: "cut the top item under the cursor", Needs: NeedCursor, Run: do(actions.CutTop)},
	PasteChars: {Name: "paste-chars", Help: "paste the clipboard at the cursor", Needs: NeedClipboard, Run: func(ctx *runtime.Context, _ string) (string, error) {
		return "", actions.PasteChars(ctx, ctx.Session.ClipboardRows(), ctx.Cursor.Box, 0)
	}},
	PasteSpecial: {Name: "paste-special", Help: "paste clipboard groups as references", Needs: NeedClipboard, Run: do(actions.PasteSpecial)},
	FillChars: {Name: "fill-chars", Help: "fill the cursor with clipboard items", Needs: NeedClipboard, Run: func(ctx *runtime.Context, _ string) (string, error) {
		return "", actions.FillChars(ctx, ctx.Session.ClipboardRows(), ctx.Cursor.Box, 0)
	}},
	PasteCharN: {Name: "paste-char", Help: "place clipboard item n at the cursor", Needs: NeedInput, Run: number(func(ctx *runtime.Context, n int) error {
		return actions.PlaceTextN(ctx, n-1)
	})},
	CyclePasteMode: {Name: "cycle-paste-mode", Help: "switch between pasting all, chars or colors", Run: func(ctx *runtime.Context, _ string) (string, error) {
		return fmt.Sprintf("paste mode %s", actions.CyclePasteMode(ctx)), nil
	}},
	SetPasteBase: {Name: "set-paste-base", Help: "toggle adding new items to every frame", Run: func(ctx *runtime.Context, _ string) (string, error) {
		ctx.Session.AddBaseFrame = !ctx.Session.AddBaseFrame
		if ctx.Session.AddBaseFrame {
			return "new items go on every frame", nil
		}
		return "new items go on the current frame", nil
	}},
	CyclePaletteDown: {Name: "cycle-char-palette-down", Help: "show the previous clipboard page", Run: page(-1)},
	CyclePaletteUp:   {Name: "cycle-char-palette-up", Help: "show the next clipboard page", Run: page(1)},
	SetClipboardPage: {Name: "set-clipboard-page", Help: "show clipboard page n", Needs: NeedInput, Run: func(ctx *runtime.Context, input string) (string, error) {
		n, err := parseInt(input)
		if err != nil {
			return "", err
		}
		if n < 0 || n >= runtime.ClipboardPages {
			return "", fmt.Errorf("no clipboard page %d: %w", n, errors.ErrInvalidInput)
		}
		ctx.Session.Page = n
		return fmt.Sprintf("clipboard page %d", n), nil
	}},
	JoinSelected: {Name: "join-selected", Help: "join selected text into one element", Needs: NeedSelection, Run: rows(selectedRows, actions.JoinRows)},
	SplitCursor:  {Name: "split-cursor", Help: "split text under the cursor into one element per character", Needs: NeedCursor, Run: split(cursorRows)},
	SplitSelected: {Name: "split-selected", Help: "split selected text into one element per character", Needs: NeedSelection, Run: split(selectedRows)},

	GroupSelected: {Name: "group-selected", Help: "group the selected rows", Prompt: "group name: ", Needs: NeedSelection, Run: func(ctx *runtime.Context, input string) (string, error) {
		_, err := actions.GroupSelected(ctx, strings.TrimSpace(input))
		return "", err
	}},
	DegroupSelectedTemp: {Name: "degroup-selected-temp", Help: "ungroup, remembering the groups for regroup", Run: degroup(actions.Degroup)},
	DegroupSelectedPerm: {Name: "degroup-selected-perm", Help: "ungroup for good", Run: degroup(actions.DegroupAll)},
	RegroupSelected: {Name: "regroup-selected", Help: "return ungrouped rows to their groups", Run: func(ctx *runtime.Context, _ string) (string, error) {
		return "", actions.Regroup(ctx, ctx.SomeSelectedRows())
	}},

	SelectTop: {Name: "select-top", Help: "select the top item of each cell under the cursor", Run: count("selected %d", func(ctx *runtime.Context) (int, error) {
		return actions.SelectTop(ctx, ctx.Cursor.Box), nil
	})},
	SelectAllThisFrame:   {Name: "select-all-this-frame", Help: "select everything on this frame", Needs: NeedFrames, Run: count("selected %d", actions.SelectFrame)},
	UnselectAllThisFrame: {Name: "unselect-all-this-frame", Help: "unselect everything on this frame", Needs: NeedFrames, Run: count("unselected %d", actions.UnselectFrame)},
	SelectEqualChar:      {Name: "select-equal-char", Help: "select every copy of the character under the cursor", Run: count("selected %d", actions.SelectEqualChar)},
	SelectTag: {Name: "select-tag", Help: "select rows with a tag", Prompt: "select tag: ", Needs: NeedInput, Run: func(ctx *runtime.Context, input string) (string, error) {
		return fmt.Sprintf("selected %d", actions.SelectTag(ctx, strings.TrimSpace(input))), nil
	}},
	UnselectTag: {Name: "unselect-tag", Help: "unselect rows with a tag", Prompt: "unselect tag: ", Needs: NeedInput, Run: func(ctx *runtime.Context, input string) (string, error) {
		return fmt.Sprintf("unselected %d", actions.UnselectTag(ctx, strings.TrimSpace(input))), nil
	}},
	SelectAll: {Name: "select-all", Help: "select everything inside the cursor on every frame", Run: count("selected %d", func(ctx *runtime.Context) (int, error) {
		return actions.SelectBox(ctx, ctx.Cursor.Box), nil
	})},
	ToggleAll: {Name: "toggle-all", Help: "toggle selection inside the cursor on every frame", Run: count("toggled %d", func(ctx *runtime.Context) (int, error) {
		return actions.ToggleBox(ctx, ctx.Cursor.Box), nil
	})},
	GoPrevSelected: {Name: "go-prev-selected", Help: "go to the previous selected row", Needs: NeedSelection, Run: do(func(ctx *runtime.Context) error {
		return actions.GoSelected(ctx, true)
	})},
	GoNextSelected: {Name: "go-next-selected", Help: "go to the next selected row", Needs: NeedSelection, Run: do(func(ctx *runtime.Context) error {
		return actions.GoSelected(ctx, false)
	})},
	EnableAllGroups: {Name: "enable-all-groups", Help: "draw every tag", Run: func(ctx *runtime.Context, _ string) (string, error) {
		actions.EnableAllTags(ctx)
		return "all tags shown", nil
	}},
	ToggleEnabledGroup: {Name: "toggle-enabled-group", Help: "show or hide tag n", Needs: NeedInput, Run: number(actions.ToggleTagN)},
	SelectGroup: {Name: "select-group", Help: "select rows with tag n", Needs: NeedInput, Run: nthTag(func(ctx *runtime.Context, tag string) string {
		return fmt.Sprintf("selected %d", actions.SelectTag(ctx, tag))
	})},
	UnselectGroup: {Name: "unselect-group", Help: "unselect rows with tag n", Needs: NeedInput, Run: nthTag(func(ctx *runtime.Context, tag string) string {
		return fmt.Sprintf("unselected %d", actions.UnselectTag(ctx, tag))
	})},
	TagSelected:    {Name: "tag-selected", Help: "tag the selected rows", Prompt: "tag selected as: ", Needs: NeedInput, Run: tag(someSelectedRows, actions.TagRows)},
	TagCursor:      {Name: "tag-cursor", Help: "tag the rows under the cursor", Prompt: "tag cursor as: ", Needs: NeedInput, Run: tag(cursorRows, actions.TagRows)},
	TagTopCursor:   {Name: "tag-topcursor", Help: "tag the top rows under the cursor", Prompt: "tag top of cursor as: ", Needs: NeedInput, Run: tag(topCursorRows, actions.TagRows)},
	UntagCursor:    {Name: "untag-cursor", Help: "untag the rows under the cursor", Prompt: "untag cursor as: ", Needs: NeedInput, Run: tag(cursorRows, actions.UntagRows)},
	UntagSelected:  {Name: "untag-selected", Help: "untag the selected rows", Prompt: "untag selected as: ", Needs: NeedInput, Run: tag(someSelectedRows, actions.UntagRows)},
	UntagTopCursor: {Name: "untag-topcursor", Help: "untag the top rows under the cursor", Prompt: "untag top of cursor as: ", Needs: NeedInput, Run: tag(topCursorRows, actions.UntagRows)},
	Visibility: {Name: "visibility", Help: "cycle the side panel", Run: func(ctx *runtime.Context, _ string) (string, error) {
		ctx.Session.Visibility = ctx.Session.Visibility.Next()
		return "", nil
	}},

	SetDefaultColorInput: {Name: "set-default-color-input", Help: "set the color for new text", Prompt: "set default color: ", Run: func(ctx *runtime.Context, input string) (string, error) {
		actions.SetDefaultColor(ctx, input)
		return "", nil
	}},
	SetDefaultColor:       {Name: "set-default-color", Help: "take the default color from the cursor", Needs: NeedCursor, Run: do(actions.PickDefaultColor)},
	SetColorInput:         {Name: "set-color-input", Help: "color the rows under the cursor", Prompt: "color: ", Needs: NeedCursor, Run: color(cursorRows)},
	SetColorInputSelected: {Name: "set-color-input-selected", Help: "color the selected rows", Prompt: "color: ", Needs: NeedSelection, Run: color(selectedRows)},
	CycleCursorPrev:       {Name: "cycle-cursor-prev", Help: "cycle colors under the cursor down", Needs: NeedCursor, Run: cycle(cursorRows, -1)},
	CycleCursorNext:       {Name: "cycle-cursor-next", Help: "cycle colors under the cursor up", Needs: NeedCursor, Run: cycle(cursorRows, 1)},
	ColorSelectedPrev:     {Name: "color-selected-prev", Help: "cycle selected colors down", Needs: NeedSelection, Run: cycle(selectedRows, -1)},
	ColorSelectedNext:     {Name: "color-selected-next", Help: "cycle selected colors up", Needs: NeedSelection, Run: cycle(selectedRows, 1)},
	CycleTopCursorPrev:    {Name: "cycle-topcursor-prev", Help: "cycle top colors under the cursor down", Needs: NeedCursor, Run: cycle(topCursorRows, -1)},
	CycleTopCursorNext:    {Name: "cycle-topcursor-next", Help: "cycle top colors under the cursor up", Needs: NeedCursor, Run: cycle(topCursorRows, 1)},

	AlignXSelected:      {Name: "align-x-selected", Help: "line selected rows up with the first", Run: do(actions.AlignSelected)},
	SlideTopSelected:    {Name: "slide-top-selected", Help: "move selected items to the top layer", Run: rows(someSelectedRows, actions.SlideTop)},
	SlideBottomSelected: {Name: "slide-bottom-selected", Help: "move selected items to the bottom layer", Run: rows(someSelectedRows, actions.SlideBottom)},
	InsertRow:           {Name: "insert-row", Help: "push rows at the cursor down a line", Run: do(actions.InsertRow)},
	InsertCol:           {Name: "insert-col", Help: "push rows at the cursor right a column", Run: do(actions.InsertCol)},
	SetBoxChars:         {Name: "set-box-chars", Help: "set characters for drawing boxes (horiz vert tl tr bl br)", Prompt: "box chars: ", Needs: NeedInput, Run: text(actions.SetBoxChars)},
	BoxCursor:           {Name: "box-cursor", Help: "draw a box along the inner edge of the cursor", Run: do(actions.BoxCursor)},
	StampCircle: {Name: "stamp-circle", Help: "draw a circle inside the cursor", Run: do(func(ctx *runtime.Context) error {
		return actions.StampCircle(ctx, ctx.Cursor.Box)
	})},
	UpgradeCursor:       {Name: "upgrade-cursor", Help: "make lines under the cursor heavier", Needs: NeedCursor, Run: rows(cursorRows, actions.Upgrade)},
	DowngradeCursor:     {Name: "downgrade-cursor", Help: "make lines under the cursor lighter", Needs: NeedCursor, Run: rows(cursorRows, actions.Downgrade)},
	FlipCursorHoriz:     {Name: "flip-cursor-horiz", Help: "flip elements under the cursor horizontally", Needs: NeedCursor, Run: flip(actions.Flip, false, actions.Horizontal)},
	FlipCursorVert:      {Name: "flip-cursor-vert", Help: "flip elements under the cursor vertically", Needs: NeedCursor, Run: flip(actions.Flip, false, actions.Vertical)},
	MirrorCursorHoriz:   {Name: "mirror-cursor-horiz", Help: "flip and mirror glyphs under the cursor horizontally", Needs: NeedCursor, Run: flip(actions.Mirror, false, actions.Horizontal)},
	MirrorCursorVert:    {Name: "mirror-cursor-vert", Help: "flip and mirror glyphs under the cursor vertically", Needs: NeedCursor, Run: flip(actions.Mirror, false, actions.Vertical)},
	FlipSelectedHoriz:   {Name: "flip-selected-horiz", Help: "flip selected elements horizontally", Needs: NeedSelection, Run: flip(actions.Flip, true, actions.Horizontal)},
	FlipSelectedVert:    {Name: "flip-selected-vert", Help: "flip selected elements vertically", Needs: NeedSelection, Run: flip(actions.Flip, true, actions.Vertical)},
	MirrorSelectedHoriz: {Name: "mirror-selected-horiz", Help: "flip and mirror selected glyphs horizontally", Needs: NeedSelection, Run: flip(actions.Mirror, true, actions.Horizontal)},
	MirrorSelectedVert:  {Name: "mirror-selected-vert", Help: "flip and mirror selected glyphs vertically", Needs: NeedSelection, Run: flip(actions.Mirror, true, actions.Vertical)},
	NextPoint: {Name: "next-point", Help: "add a line point at the cursor", Run: do(func(ctx *runtime.Context) error {
		if ctx.Session.Mode != runtime.ModeLine {
			return fmt.Errorf("not drawing lines: %w", errors.ErrInvalidInput)
		}
		if len(ctx.Session.LinePoints) == 0 {
			ctx.Session.LinePoints = [][2]int{{ctx.Cursor.X1, ctx.Cursor.Y1}}
			return nil
		}
		return actions.NextPoint(ctx, ctx.Cursor.X1, ctx.Cursor.Y1)
	})},
	LineDrawingMode: {Name: "line-drawing-mode", Help: "toggle drawing lines with clicks", Run: func(ctx *runtime.Context, _ string) (string, error) {
		if actions.ToggleLineMode(ctx) == runtime.ModeLine {
			return "line drawing on", nil
		}
		return "line drawing off", nil
	}},

	SaveSheet: {Name: "save-sheet", Help: "save the drawing", Prompt: "save to: ", Run: func(ctx *runtime.Context, input string) (string, error) {
		if err := ctx.Save(strings.TrimSpace(input)); err != nil {
			return "", err
		}
		return "saved " + ctx.Path, nil
	}},
	Undo: {Name: "undo", Help: "undo the last change", Run: do(actions.Undo)},
	Redo: {Name: "redo", Help: "redo the last undone change", Run: do(actions.Redo)},

	ExecLongname: {Name: "exec-longname", Help: "run a command by name", Prompt: "command: "},
	TypingMode:   {Name: "typing-mode", Help: "enter raw typing mode"},
	LoadKeymap:   {Name: "load-keymap", Help: "load a keymap for typing mode", Prompt: "keymap to load: "},
	Quit:         {Name: "quit", Help: "leave the editor"},
}

func do(fn func(ctx *runtime.Context) error) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		return "", fn(ctx)
	}
}

func text(fn func(ctx *runtime.Context, text string) error) Handler {
	return func(ctx *runtime.Context, input string) (string, error) {
		return "", fn(ctx, input)
	}
}

func move(fn func(c *cursor.Cursor)) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		fn(ctx.Cursor)
		return "", nil
	}
}

func pen(dir cursor.PenDir) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		ctx.Cursor.PenDir = dir
		return "pen " + dir.String(), nil
	}
}

func goObj(dx, dy int) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		if !ctx.Cursor.NextObject(ctx.Cache, dx, dy) {
			return "", fmt.Errorf("no object in that direction")
		}
		return "", nil
	}
}

func page(n int) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		ctx.Session.CyclePage(n)
		return fmt.Sprintf("clipboard page %d", ctx.Session.Page), nil
	}
}

func parseInt(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("not a number %q: %w", input, errors.ErrInvalidInput)
	}
	return n, nil
}

func number(fn func(ctx *runtime.Context, n int) error) Handler {
	return func(ctx *runtime.Context, input string) (string, error) {
		n, err := parseInt(input)
		if err != nil {
			return "", err
		}
		return "", fn(ctx, n)
	}
}

// point parses "x y" or "x,y"
func point(fn func(ctx *runtime.Context, x, y int) error) Handler {
	return func(ctx *runtime.Context, input string) (string, error) {
		fields := strings.FieldsFunc(input, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) != 2 {
			return "", fmt.Errorf("want x and y, got %q: %w", input, errors.ErrInvalidInput)
		}
		x, err := parseInt(fields[0])
		if err != nil {
			return "", err
		}
		y, err := parseInt(fields[1])
		if err != nil {
			return "", err
		}
		return "", fn(ctx, x, y)
	}
}

func nthTag(fn func(ctx *runtime.Context, tag string) string) Handler {
	return func(ctx *runtime.Context, input string) (string, error) {
		n, err := parseInt(input)
		if err != nil {
			return "", err
		}
		tag, err := actions.TagAt(ctx, n)
		if err != nil {
			return "", err
		}
		return fn(ctx, tag), nil
	}
}

func count(format string, fn func(ctx *runtime.Context) (int, error)) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		n, err := fn(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, n), nil
	}
}

type rowSource func(ctx *runtime.Context) []scene.ID

func cursorRows(ctx *runtime.Context) []scene.ID       { return ctx.CursorRows() }
func topCursorRows(ctx *runtime.Context) []scene.ID    { return ctx.TopCursorRows() }
func selectedRows(ctx *runtime.Context) []scene.ID     { return ctx.Store.Selected() }
func someSelectedRows(ctx *runtime.Context) []scene.ID { return ctx.SomeSelectedRows() }

func rows(src rowSource, fn func(ctx *runtime.Context, ids []scene.ID) error) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		return "", fn(ctx, src(ctx))
	}
}

func tag(src rowSource, fn func(ctx *runtime.Context, ids []scene.ID, tags string) error) Handler {
	return func(ctx *runtime.Context, input string) (string, error) {
		return "", fn(ctx, src(ctx), input)
	}
}

func split(src rowSource) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		n, err := actions.SplitRows(ctx, src(ctx))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("split %d elements", n), nil
	}
}

func degroup(fn func(ctx *runtime.Context, ids []scene.ID) ([]scene.ID, error)) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		_, err := fn(ctx, ctx.SomeSelectedRows())
		return "", err
	}
}

func color(src rowSource) Handler {
	return func(ctx *runtime.Context, input string) (string, error) {
		return "", actions.SetColor(ctx, strings.TrimSpace(input), src(ctx))
	}
}

func cycle(src rowSource, n int) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		return "", actions.CycleColor(ctx, src(ctx), n)
	}
}

func flip(fn func(ctx *runtime.Context, box cursor.Box, ids []scene.ID, axis actions.Axis) error, selected bool, axis actions.Axis) Handler {
	return func(ctx *runtime.Context, _ string) (string, error) {
		if selected {
			return "", fn(ctx, actions.SelectedBox(ctx), ctx.Store.Selected(), axis)
		}
		return "", fn(ctx, ctx.Cursor.Box, ctx.CursorRows(), axis)
	}
}

func showChar(ctx *runtime.Context, _ string) (string, error) {
	ch := ctx.Cache.Char(ctx.Cursor.X1, ctx.Cursor.Y1)
	if ch == "" {
		return ctx.Cursor.Box.String(), nil
	}
	return fmt.Sprintf("%s <%s> U+%04X", ctx.Cursor.Box, ch, []rune(ch)[0]), nil
}
