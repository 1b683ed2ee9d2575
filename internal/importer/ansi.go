package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"darkdraw.dev/ddw/internal/scene"
)

const (
	esc = '\x1b'
	// sub marks the end of the art; a SAUCE record may follow
	sub = '\x1a'

	defaultFG = 7
	defaultBG = 0
)

// sgrState is the terminal attribute state while reading escape-coded text
type sgrState struct {
	fg, bg    int
	bold      bool
	dim       bool
	italic    bool
	underline bool
	blink     bool
	reverse   bool
}

func newSGRState() sgrState {
	return sgrState{fg: defaultFG, bg: defaultBG}
}

// color formats the state as a color string, e.g. "1 on 4 bold"
func (s sgrState) color() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d on %d", s.fg, s.bg)
	for _, attr := range []struct {
		on   bool
		name string
	}{
		{s.bold, "bold"},
		{s.dim, "dim"},
		{s.italic, "italic"},
		{s.underline, "underline"},
		{s.blink, "blink"},
		{s.reverse, "reverse"},
	} {
		if attr.on {
			b.WriteString(" " + attr.name)
		}
	}
	return b.String()
}

// apply interprets the parameters of one SGR sequence
func (s *sgrState) apply(params []int) {
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			*s = newSGRState()
		case p == 1:
			s.bold = true
		case p == 2:
			s.dim = true
		case p == 3:
			s.italic = true
		case p == 4:
			s.underline = true
		case p == 5 || p == 6:
			s.blink = true
		case p == 7:
			s.reverse = true
		case p == 22:
			s.bold, s.dim = false, false
		case p == 23:
			s.italic = false
		case p == 24:
			s.underline = false
		case p == 25:
			s.blink = false
		case p == 27:
			s.reverse = false
		case 30 <= p && p <= 37:
			s.fg = p - 30
		case p == 38:
			i += extendedColor(params[i+1:], &s.fg)
		case p == 39:
			s.fg = defaultFG
		case 40 <= p && p <= 47:
			s.bg = p - 40
		case p == 48:
			i += extendedColor(params[i+1:], &s.bg)
		case p == 49:
			s.bg = defaultBG
		case 90 <= p && p <= 97:
			s.fg = p - 90 + 8
		case 100 <= p && p <= 107:
			s.bg = p - 100 + 8
		}
	}
}

// extendedColor reads the arguments of 38 or 48 and returns how many it used.
// 256-color indexes set dst; RGB triples are skipped.
func extendedColor(args []int, dst *int) int {
	if len(args) == 0 {
		return 0
	}
	switch args[0] {
	case 5:
		if len(args) < 2 {
			return len(args)
		}
		*dst = args[1]
		return 2
	case 2:
		return min(4, len(args))
	}
	return 0
}

// decodeText reads data as UTF-8, falling back to code page 437 for
// classic DOS art
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.CodePage437.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode cp437: %w", err)
	}
	return string(out), nil
}

// ANSI reads escape-coded text and returns one glyph per drawn cell. Blank
// cells are dropped unless they have a background color.
func ANSI(r io.Reader) ([]*scene.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ansi: %w", err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	var trees []*scene.Tree
	state := newSGRState()
	x, y := 0, 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case esc:
			final, params, next := parseCSI(runes, i)
			switch final {
			case 'm':
				state.apply(params)
			case 'C':
				x += max(1, first(params))
			case 'D':
				x = max(0, x-max(1, first(params)))
			case 'B':
				y += max(1, first(params))
			case 'A':
				y = max(0, y-max(1, first(params)))
			}
			i = next - 1
			continue
		case '\r':
			x = 0
			continue
		case '\n':
			x = 0
			y++
			continue
		case sub:
			return trees, nil
		}

		if ch != ' ' || state.bg != defaultBG {
			trees = append(trees, &scene.Tree{Node: &scene.Glyph{
				Base:  scene.Base{X: x, Y: y},
				Text:  string(ch),
				Color: state.color(),
			}})
		}
		x += max(1, scene.DisplayWidth(string(ch)))
	}
	return trees, nil
}

// parseCSI reads the control sequence starting at runes[i] (an ESC). It
// returns the final byte (0 when the sequence isn't a CSI), the numeric
// parameters and the index just past the sequence.
func parseCSI(runes []rune, i int) (final rune, params []int, next int) {
	if i+1 >= len(runes) || runes[i+1] != '[' {
		return 0, nil, i + 1
	}
	j := i + 2
	for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9' || runes[j] == ';' || runes[j] == '?') {
		j++
	}
	if j >= len(runes) {
		return 0, nil, j
	}
	raw := strings.TrimPrefix(string(runes[i+2:j]), "?")
	if raw == "" {
		params = []int{0}
	} else {
		for _, field := range strings.Split(raw, ";") {
			n, _ := strconv.Atoi(field)
			params = append(params, n)
		}
	}
	return runes[j], params, j + 1
}

func first(params []int) int {
	if len(params) == 0 {
		return 0
	}
	return params[0]
}
