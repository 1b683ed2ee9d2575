package tui

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"darkdraw.dev/ddw/internal/compositor"
)

// namedColors maps color words to the 16-color palette
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

func termColor(c string) lipgloss.Color {
	if n, ok := namedColors[strings.ToLower(c)]; ok {
		return lipgloss.Color(n)
	}
	return lipgloss.Color(c)
}

// CellStyle converts a parsed color string into a lipgloss style
func CellStyle(r *lipgloss.Renderer, c compositor.Color) lipgloss.Style {
	s := r.NewStyle()
	if c.FG != "" {
		s = s.Foreground(termColor(c.FG))
	}
	if c.BG != "" {
		s = s.Background(termColor(c.BG))
	}
	for _, a := range c.Attrs {
		switch a {
		case "bold":
			s = s.Bold(true)
		case "underline":
			s = s.Underline(true)
		case "italic":
			s = s.Italic(true)
		case "reverse":
			s = s.Reverse(true)
		case "blink":
			s = s.Blink(true)
		case "dim":
			s = s.Faint(true)
		}
	}
	return s
}

// NewRenderer returns a lipgloss renderer for w with a fixed color profile
func NewRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return r
}

// CellFunc adjusts a cell before it is rendered
type CellFunc func(cell compositor.Cell) compositor.Cell

// RenderRow renders one row of rect as styled text. Runs of cells with the
// same color are rendered together.
func RenderRow(r *lipgloss.Renderer, c *compositor.Cache, rect compositor.Rect, y int) string {
	return RenderRowFunc(r, c, rect, y, nil)
}

// RenderRowFunc is RenderRow with every cell passed through fn first
func RenderRowFunc(r *lipgloss.Renderer, c *compositor.Cache, rect compositor.Rect, y int, fn CellFunc) string {
	var out, run strings.Builder
	var runColor compositor.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(CellStyle(r, runColor).Render(run.String()))
		run.Reset()
	}
	for x := rect.X; x < rect.X+rect.W; x++ {
		cell := c.Cell(x, y)
		if fn != nil {
			cell = fn(cell)
		}
		if cell.Cont {
			continue
		}
		text := cell.Text
		if cell.Empty || text == "" {
			text = " "
		}
		if cell.Color.String() != runColor.String() {
			flush()
			runColor = cell.Color
		}
		run.WriteString(text)
	}
	flush()
	return out.String()
}

// WriteANSI writes the whole drawing with terminal color escapes
func WriteANSI(w io.Writer, c *compositor.Cache, profile termenv.Profile) error {
	bw := bufio.NewWriter(w)
	r := NewRenderer(bw, profile)
	rect := c.Extent()
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		if _, err := bw.WriteString(RenderRow(r, c, rect, y) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
