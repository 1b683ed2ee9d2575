package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/scene"
)

// Must is a helper that fails the test if err is not nil.
// Usage: val := Must(someFunc())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Texts returns the glyph texts of the top-level rows in z-order
func Texts(store *engine.Store) []string {
	var out []string
	for _, id := range store.Rows() {
		if g, ok := store.Get(id).(*scene.Glyph); ok {
			out = append(out, g.Text)
		}
	}
	return out
}

// Positions returns the absolute position of every glyph in the drawing,
// nested ones included, keyed by text
func Positions(store *engine.Store) map[string][][2]int {
	out := make(map[string][][2]int)
	store.Walk(store.Rows(), func(v engine.Visit) bool {
		if g, ok := v.Node.(*scene.Glyph); ok {
			out[g.Text] = append(out[g.Text], [2]int{v.X, v.Y})
		}
		return true
	})
	return out
}

// ExpectTexts asserts the glyph texts of the top-level rows
func ExpectTexts(t *testing.T, store *engine.Store, expected []string) {
	t.Helper()
	require.Equal(t, expected, Texts(store))
}

// ExpectGlyphAt asserts that a top-level glyph with text sits at (x, y)
func ExpectGlyphAt(t *testing.T, store *engine.Store, text string, x, y int) {
	t.Helper()
	for _, id := range store.Rows() {
		if g, ok := store.Get(id).(*scene.Glyph); ok && g.Text == text && g.X == x && g.Y == y {
			return
		}
	}
	t.Fatalf("no glyph %q at (%d, %d); rows: %v", text, x, y, Positions(store))
}
