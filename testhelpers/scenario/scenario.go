// Package scenario provides a high-level test scenario that combines a Scene
// and a runtime Context to provide a terse API for editing tests.
package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/compositor"
	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/internal/tui"
	"darkdraw.dev/ddw/testhelpers"
)

// Scenario represents an editing session on a test drawing
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Context *runtime.Context
	Log     *bytes.Buffer
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	s := testhelpers.NewScene(t, setup)
	log := &bytes.Buffer{}
	splog, err := tui.NewSplogWithConfig(log, "")
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx := runtime.NewContext(context.Background(), s.Store, cfg, splog)
	return &Scenario{T: t, Scene: s, Context: ctx, Log: log}
}

// Cursor places the cursor box
func (s *Scenario) Cursor(x, y, w, h int) *Scenario {
	s.Context.Cursor.Box = cursor.NewBox(x, y, w, h)
	return s
}

// SelectAll selects every top-level row
func (s *Scenario) SelectAll() *Scenario {
	s.Context.Store.Select(s.Context.Store.Rows()...)
	return s
}

// Clip puts record lines on the clipboard
func (s *Scenario) Clip(lines ...string) *Scenario {
	s.T.Helper()
	trees, err := scene.DecodeAll(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(s.T, err)
	s.Context.Session.SetClipboard(trees)
	return s
}

// Run calls fn and requires it to succeed
func (s *Scenario) Run(fn func(ctx *runtime.Context) error) *Scenario {
	s.T.Helper()
	require.NoError(s.T, fn(s.Context))
	return s
}

// Seek shows frame i
func (s *Scenario) Seek(i int) *Scenario {
	s.Context.Player.Seek(i)
	s.Context.Recomposite()
	return s
}

// Text renders the current frame as plain text
func (s *Scenario) Text() string {
	s.T.Helper()
	s.Context.Recomposite()
	var buf bytes.Buffer
	require.NoError(s.T, compositor.WriteText(&buf, s.Context.Cache))
	return buf.String()
}

// ExpectText asserts the current frame renders as lines
func (s *Scenario) ExpectText(lines ...string) *Scenario {
	s.T.Helper()
	want := ""
	if len(lines) > 0 {
		want = strings.Join(lines, "\n") + "\n"
	}
	require.Equal(s.T, want, s.Text())
	return s
}

// ExpectChar asserts the character drawn at x, y
func (s *Scenario) ExpectChar(x, y int, ch string) *Scenario {
	s.T.Helper()
	s.Context.Recomposite()
	require.Equal(s.T, ch, s.Context.Cache.Char(x, y), "char at %d,%d", x, y)
	return s
}

// ExpectRows asserts the number of top-level rows
func (s *Scenario) ExpectRows(n int) *Scenario {
	s.T.Helper()
	require.Equal(s.T, n, s.Context.Store.Len())
	return s
}

// Saved returns the drawing in its file format
func (s *Scenario) Saved() string {
	s.T.Helper()
	var buf bytes.Buffer
	require.NoError(s.T, s.Context.Store.Save(&buf))
	return buf.String()
}
