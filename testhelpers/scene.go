package testhelpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/scene"
)

// Scene represents a test scene with a temporary directory and a drawing
// store.
type Scene struct {
	Dir   string
	Store *engine.Store
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and an empty
// store. Cleanup is handled by t.TempDir().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	scene := &Scene{
		Dir:   t.TempDir(),
		Store: engine.NewStore(),
	}

	// Keep config lookups inside the scene
	t.Setenv("DDW_CONFIG", filepath.Join(scene.Dir, "config.json"))
	t.Setenv("DDW_TEST_NO_INTERACTIVE", "1")

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// Load replaces the scene's drawing with the given record lines
func (s *Scene) Load(lines ...string) error {
	return s.Store.Load(strings.NewReader(strings.Join(lines, "\n")))
}

// WriteDrawing writes record lines to a file in the scene directory and
// returns its path
func (s *Scene) WriteDrawing(name string, lines ...string) (string, error) {
	path := filepath.Join(s.Dir, name)
	return path, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
}

// Records returns a setup function that loads the given record lines
func Records(lines ...string) SceneSetup {
	return func(s *Scene) error {
		return s.Load(lines...)
	}
}

// Glyph builds a positioned glyph
func Glyph(x, y int, text string) *scene.Glyph {
	return &scene.Glyph{Base: scene.Base{X: x, Y: y}, Text: text}
}

// FrameGlyph builds a positioned glyph scoped to frames
func FrameGlyph(x, y int, text string, frames ...string) *scene.Glyph {
	g := Glyph(x, y, text)
	g.Frames = scene.FrameSet(frames)
	return g
}

// Frame builds a frame marker
func Frame(id string, durationMS int) *scene.Frame {
	return &scene.Frame{ID: id, DurationMS: durationMS}
}
