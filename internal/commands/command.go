package commands

import (
	"fmt"
	"strings"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
)

// Command identifies an editor command
type Command int

// Cursor and viewport
const (
	GoLeft Command = iota
	GoDown
	GoUp
	GoRight
	GoPageDown
	GoPageUp
	GoLeftmost
	GoTop
	GoBottom
	GoRightmost
	GoLeftObj
	GoDownObj
	GoUpObj
	GoRightObj
	PenLeft
	PenDown
	PenUp
	PenRight
	ResizeWider
	ResizeThinner
	ResizeShorter
	ResizeTaller
	PlaceMark
	SwapMark
	ClickCursor
	EndCursor
	ShowChar

	// Frames
	PrevFrame
	NextFrame
	FirstFrame
	LastFrame
	NewFrameBefore
	NewFrameAfter
	ResetTime
	StopAnimation
	SetFrameDuration

	// Text and clipboard
	AddInput
	EditText
	EditSelected
	DeleteCursor
	DeleteSelected
	YankChar
	YankSelected
	CutChar
	CutCharTop
	PasteChars
	PasteSpecial
	FillChars
	PasteCharN
	CyclePasteMode
	SetPasteBase
	CyclePaletteDown
	CyclePaletteUp
	SetClipboardPage
	JoinSelected
	SplitCursor
	SplitSelected

	// Groups
	GroupSelected
	DegroupSelectedTemp
	DegroupSelectedPerm
	RegroupSelected

	// Selection and tags
	SelectTop
	SelectAllThisFrame
	UnselectAllThisFrame
	SelectEqualChar
	SelectTag
	UnselectTag
	SelectAll
	ToggleAll
	GoPrevSelected
	GoNextSelected
	EnableAllGroups
	ToggleEnabledGroup
	SelectGroup
	UnselectGroup
	TagSelected
	TagCursor
	TagTopCursor
	UntagCursor
	UntagSelected
	UntagTopCursor
	Visibility

	// Color
	SetDefaultColorInput
	SetDefaultColor
	SetColorInput
	SetColorInputSelected
	CycleCursorPrev
	CycleCursorNext
	ColorSelectedPrev
	ColorSelectedNext
	CycleTopCursorPrev
	CycleTopCursorNext

	// Layout
	AlignXSelected
	SlideTopSelected
	SlideBottomSelected
	InsertRow
	InsertCol
	SetBoxChars
	BoxCursor
	StampCircle
	UpgradeCursor
	DowngradeCursor
	FlipCursorHoriz
	FlipCursorVert
	MirrorCursorHoriz
	MirrorCursorVert
	FlipSelectedHoriz
	FlipSelectedVert
	MirrorSelectedHoriz
	MirrorSelectedVert
	NextPoint
	LineDrawingMode

	// Document
	SaveSheet
	Undo
	Redo

	// Handled by the editor itself
	ExecLongname
	TypingMode
	LoadKeymap
	Quit

	numCommands
)

// Precondition is a set of requirements checked before a command runs
type Precondition uint8

const (
	// NeedClipboard requires items on the current clipboard page
	NeedClipboard Precondition = 1 << iota
	// NeedSelection requires selected rows
	NeedSelection
	// NeedFrames requires at least one frame
	NeedFrames
	// NeedInput requires non-empty input text
	NeedInput
	// NeedCursor requires something drawn under the cursor
	NeedCursor
)

// Check returns the error for the first unmet requirement
func (p Precondition) Check(ctx *runtime.Context, input string) error {
	switch {
	case p&NeedClipboard != 0 && len(ctx.Session.ClipboardRows()) == 0:
		return errors.ErrEmptyClipboard
	case p&NeedSelection != 0 && ctx.Store.NumSelected() == 0:
		return errors.ErrEmptySelection
	case p&NeedFrames != 0 && ctx.Player.Len() == 0:
		return errors.ErrNoFrames
	case p&NeedInput != 0 && strings.TrimSpace(input) == "":
		return fmt.Errorf("no input: %w", errors.ErrInvalidInput)
	case p&NeedCursor != 0 && len(ctx.CursorRows()) == 0:
		return errors.ErrNothingUnderCursor
	}
	return nil
}

// Handler runs a command and returns a status message, or "" to use the
// last message the command logged
type Handler func(ctx *runtime.Context, input string) (string, error)

// Spec describes a command
type Spec struct {
	Name string
	Help string
	// Prompt is shown when the command reads a line of input
	Prompt string
	Needs  Precondition
	// Run is nil for commands the editor handles itself
	Run Handler
}

// Spec returns the table entry for c
func (c Command) Spec() Spec {
	if c < 0 || c >= numCommands {
		return Spec{}
	}
	return table[c]
}

func (c Command) String() string {
	if name := c.Spec().Name; name != "" {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Valid reports whether c is in the table
func (c Command) Valid() bool {
	return c >= 0 && c < numCommands && table[c].Name != ""
}

// All returns every command in table order
func All() []Command {
	all := make([]Command, 0, numCommands)
	for c := Command(0); c < numCommands; c++ {
		all = append(all, c)
	}
	return all
}

var byName = func() map[string]Command {
	m := make(map[string]Command, numCommands)
	for c := Command(0); c < numCommands; c++ {
		m[table[c].Name] = c
	}
	return m
}()

// Lookup finds a command by its long name
func Lookup(name string) (Command, bool) {
	c, ok := byName[strings.TrimSpace(name)]
	return c, ok
}
