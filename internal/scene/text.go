package scene

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal cells text occupies
func DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// Clusters splits text into user-perceived characters
func Clusters(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// CharAt returns the cluster of text rendered at cell offset dx, or "" when
// dx falls on the trailing half of a wide cluster or past the end.
func CharAt(text string, dx int) string {
	x := 0
	for _, c := range Clusters(text) {
		if x == dx {
			return c
		}
		x += DisplayWidth(c)
		if x > dx {
			return ""
		}
	}
	return ""
}
