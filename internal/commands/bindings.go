package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"darkdraw.dev/ddw/internal/errors"
)

// Binding is a command bound to a key sequence, with the input it gets
// when it takes a fixed argument (a tag number, a clipboard slot)
type Binding struct {
	Command Command
	Arg     string
}

// Bindings maps key sequences to commands. A sequence is a space-separated
// list of key names as the terminal reports them, e.g. "g z (" or "ctrl+s".
type Bindings map[string]Binding

var defaultBindings = map[string]Command{
	"h": GoLeft, "left": GoLeft,
	"j": GoDown, "down": GoDown,
	"k": GoUp, "up": GoUp,
	"l": GoRight, "right": GoRight,
	"pgdown": GoPageDown, "ctrl+f": GoPageDown,
	"pgup": GoPageUp, "ctrl+b": GoPageUp,
	"g h": GoLeftmost, "g left": GoLeftmost, "home": GoLeftmost,
	"g k": GoTop, "g up": GoTop,
	"g j": GoBottom, "g down": GoBottom,
	"g l": GoRightmost, "g right": GoRightmost, "end": GoRightmost,
	"z h": GoLeftObj, "z j": GoDownObj, "z k": GoUpObj, "z l": GoRightObj,
	"H": PenLeft, "J": PenDown, "K": PenUp, "L": PenRight,
	"z right": ResizeWider, "z left": ResizeThinner, "z up": ResizeShorter, "z down": ResizeTaller,
	"z m": PlaceMark, "m": SwapMark,
	"ctrl+g": ShowChar,

	"[": PrevFrame, "]": NextFrame,
	"g [": FirstFrame, "g ]": LastFrame,
	"z [": NewFrameBefore, "z ]": NewFrameAfter,
	"r": ResetTime, "z r": StopAnimation,

	"a": AddInput, "e": EditText, "g e": EditSelected,
	"d": DeleteCursor, "g d": DeleteSelected,
	"y": YankChar, "g y": YankSelected,
	"x": CutChar, "z x": CutCharTop,
	"p": PasteChars, "z p": PasteSpecial, "f": FillChars,
	";": CyclePasteMode, "g ;": SetPasteBase,
	"alt+[": CyclePaletteDown, "alt+]": CyclePaletteUp,
	"&": JoinSelected, "/": SplitCursor, "g /": SplitSelected,

	"g )": GroupSelected, "g (": DegroupSelectedTemp,
	"g z (": DegroupSelectedPerm, "g z )": RegroupSelected,

	"z s": SelectTop, "g z s": SelectAllThisFrame, "g z u": UnselectAllThisFrame,
	",": SelectEqualChar, "|": SelectTag, "\\": UnselectTag,
	"g s": SelectAll, "g t": ToggleAll,
	"{": GoPrevSelected, "}": GoNextSelected,
	"z 0 0": EnableAllGroups,
	"g +": TagSelected, "+": TagCursor, "z +": TagTopCursor,
	"g -": UntagSelected, "z -": UntagTopCursor,
	"v": Visibility,

	"g c": SetDefaultColorInput, "c": SetDefaultColor,
	"z c": SetColorInput, "g z c": SetColorInputSelected,
	"<": CycleCursorPrev, ">": CycleCursorNext,
	"g <": ColorSelectedPrev, "g >": ColorSelectedNext,
	"z <": CycleTopCursorPrev, "z >": CycleTopCursorNext,

	"g home": SlideTopSelected, "g end": SlideBottomSelected,
	"i": InsertRow, "z i": InsertCol,
	"=": UpgradeCursor, "-": DowngradeCursor,
	".": NextPoint, "w": LineDrawingMode,

	"ctrl+s": SaveSheet, "U": Undo, "R": Redo,
	" ": ExecLongname, "N": TypingMode, "z N": LoadKeymap,
	"q": Quit, "ctrl+q": Quit,
}

// DefaultBindings returns darkdraw's classic key bindings
func DefaultBindings() Bindings {
	b := make(Bindings, len(defaultBindings)+60)
	for key, c := range defaultBindings {
		b[key] = Binding{Command: c}
	}
	for i := 1; i <= 9; i++ {
		n := strconv.Itoa(i)
		b["0 "+n] = Binding{ToggleEnabledGroup, n}
		b["g 0 "+n] = Binding{SelectGroup, n}
		b["z 0 "+n] = Binding{UnselectGroup, n}
	}
	for i := 1; i <= 10; i++ {
		b[fmt.Sprintf("f%d", i)] = Binding{PasteCharN, strconv.Itoa(i)}
	}
	for i := 1; i <= 10; i++ {
		b[fmt.Sprintf("z f%d", i)] = Binding{SetClipboardPage, strconv.Itoa(i)}
	}
	return b
}

// NewBindings applies overrides to the default bindings. Each override
// maps a key sequence to "command-name [arg]"; an empty value unbinds the
// key. Bad overrides are skipped and reported together.
func NewBindings(overrides map[string]string) (Bindings, error) {
	b := DefaultBindings()
	var errs []error
	for key, value := range overrides {
		key = normalizeKeys(key)
		name, arg, _ := strings.Cut(strings.TrimSpace(value), " ")
		if name == "" {
			delete(b, key)
			continue
		}
		c, ok := Lookup(name)
		if !ok {
			errs = append(errs, fmt.Errorf("binding %q: unknown command %q: %w", key, name, errors.ErrInvalidInput))
			continue
		}
		b[key] = Binding{Command: c, Arg: strings.TrimSpace(arg)}
	}
	return b, errors.Join(errs...)
}

func normalizeKeys(keys string) string {
	if keys == " " {
		return keys
	}
	return strings.Join(strings.Fields(keys), " ")
}

// Lookup returns the binding for a complete key sequence
func (b Bindings) Lookup(keys string) (Binding, bool) {
	binding, ok := b[keys]
	return binding, ok
}

// IsPrefix reports whether keys starts a longer bound sequence
func (b Bindings) IsPrefix(keys string) bool {
	prefix := keys + " "
	for k := range b {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Keys returns the sequences bound to c, sorted
func (b Bindings) Keys(c Command) []string {
	var keys []string
	for k, binding := range b {
		if binding.Command == c {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
