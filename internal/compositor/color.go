package compositor

import (
	"slices"
	"strings"
)

// attributeNames are the color-string words that name text attributes
// rather than colors.
var attributeNames = []string{
	"bold", "dim", "italic", "underline", "blink", "reverse",
	"standout", "invis", "normal", "altcharset", "protect",
}

// Color is a parsed element color string
type Color struct {
	FG    string
	BG    string
	Attrs []string
}

// ParseColor splits a color string such as "bold 208 on 17" into its
// foreground, background and attributes. "fg" switches to the foreground,
// "on" and "bg" to the background; the first color given for each wins.
func ParseColor(s string) Color {
	var c Color
	bg := false
	for _, word := range strings.Fields(s) {
		switch word {
		case "fg":
			bg = false
			continue
		case "on", "bg":
			bg = true
			continue
		}

		if slices.Contains(attributeNames, strings.ToLower(word)) {
			c.Attrs = append(c.Attrs, strings.ToLower(word))
			continue
		}
		if bg {
			if c.BG == "" {
				c.BG = word
			}
		} else if c.FG == "" {
			c.FG = word
		}
	}
	return c
}

// Has reports whether the color carries attribute attr
func (c Color) Has(attr string) bool {
	return slices.Contains(c.Attrs, attr)
}

// String formats the color back into its string form
func (c Color) String() string {
	parts := slices.Clone(c.Attrs)
	if c.FG != "" {
		parts = append(parts, c.FG)
	}
	if c.BG != "" {
		parts = append(parts, "on", c.BG)
	}
	return strings.Join(parts, " ")
}
