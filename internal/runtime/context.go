package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"darkdraw.dev/ddw/internal/animation"
	"darkdraw.dev/ddw/internal/compositor"
	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/cursor"
	"darkdraw.dev/ddw/internal/engine"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/internal/tui"
)

// Context provides access to the drawing and editing state for actions
type Context struct {
	context.Context

	Store   *engine.Store
	Session *Session
	Cursor  *cursor.Cursor
	Player  *animation.Player
	Splog   *tui.Splog
	Config  *config.Config

	// Path is the drawing file, "" until the drawing is saved
	Path string

	// Cache is the composited drawing for the current frame
	Cache *compositor.Cache
	// CompositeErr holds the referential problems found by the last
	// Recomposite; the cache is still usable
	CompositeErr error
}

// NewContext creates a context editing store
func NewContext(ctx context.Context, store *engine.Store, cfg *config.Config, splog *tui.Splog) *Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if splog == nil {
		splog = tui.NewSplog()
	}
	c := &Context{
		Context: ctx,
		Store:   store,
		Session: NewSession(),
		Cursor:  cursor.New(80, 24),
		Player:  animation.NewPlayer(),
		Splog:   splog,
		Config:  cfg,
	}
	c.applyConfig()
	c.Recomposite()
	return c
}

func (c *Context) applyConfig() {
	c.Session.DefaultColor = c.Config.Color()
	c.Session.AddBaseFrame = c.Config.BaseFrame()
}

// GetContext loads the configuration and sets up logging for a command.
// configPath may be "" for the default location.
func GetContext(ctx context.Context, configPath string) (*Context, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logPath := cfg.LogPath()
	if logPath == "" && os.Getenv("DDW_LOG_FILE") != "" {
		logPath = tui.GetLogFilePath()
	}
	splog, err := tui.NewSplogWithConfig(os.Stdout, logPath)
	if err != nil {
		return nil, err
	}
	return NewContext(ctx, engine.NewStore(), cfg, splog), nil
}

// Open loads the drawing at path into a fresh store. A missing file starts
// an empty drawing that will be saved there.
func (c *Context) Open(path string) error {
	store, err := engine.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	c.Store = store
	c.Path = path
	c.Reset()
	return nil
}

// Save writes the drawing to path, or to the path it was opened from
func (c *Context) Save(path string) error {
	if path == "" {
		path = c.Path
	}
	if path == "" {
		return fmt.Errorf("no file name")
	}
	if err := c.Store.SaveFile(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	c.Path = path
	return nil
}

// Reset restores per-document editing state after a new drawing is loaded
func (c *Context) Reset() {
	c.Session.Reset()
	c.applyConfig()
	c.Player.Stop()
	c.Player.Seek(0)
	c.Cursor.Box = cursor.NewBox(0, 0, 1, 1)
	c.Cursor.XOffset, c.Cursor.YOffset = 0, 0
	c.Recomposite()
}

// Options returns the compositing options for the current frame
func (c *Context) Options() compositor.Options {
	return compositor.Options{
		Frames:       c.Player.Active(),
		DisabledTags: c.Session.DisabledTags,
	}
}

// Recomposite syncs the player with the drawing's frames and rebuilds the
// cache for the frame on display
func (c *Context) Recomposite() {
	c.Player.SetFrames(c.Store.Frames())
	c.Cache, c.CompositeErr = compositor.Composite(c.Store, c.Options())
	if c.CompositeErr != nil {
		c.Splog.Debug("composite: %v", c.CompositeErr)
	}
}

// CurrentFrame returns the frame on display, or nil without frames
func (c *Context) CurrentFrame() *scene.Frame {
	return c.Player.Current()
}

// CurrentFrameID returns the id of the frame on display, or ""
func (c *Context) CurrentFrameID() string {
	if f := c.CurrentFrame(); f != nil {
		return f.ID
	}
	return ""
}

// BoxRows returns the top-level rows drawn in box, topmost n per cell
func (c *Context) BoxRows(b cursor.Box, n int) []scene.ID {
	return c.Cache.Box(b.X1, b.Y1, b.W, b.H, n)
}

// CursorRows returns every top-level row drawn under the cursor
func (c *Context) CursorRows() []scene.ID {
	return c.BoxRows(c.Cursor.Box, 0)
}

// TopCursorRows returns the topmost row of each cell under the cursor
func (c *Context) TopCursorRows() []scene.ID {
	return c.BoxRows(c.Cursor.Box, 1)
}

// CursorHit returns the glyph drawn on top at the cursor position
func (c *Context) CursorHit() (compositor.Hit, bool) {
	return c.Cache.Top(c.Cursor.X1, c.Cursor.Y1)
}

// SomeSelectedRows returns the selection, or the rows under the cursor
// when nothing is selected
func (c *Context) SomeSelectedRows() []scene.ID {
	if c.Store.NumSelected() > 0 {
		return c.Store.Selected()
	}
	return c.CursorRows()
}

// Status returns the editor status line
func (c *Context) Status() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("paste %s", c.Session.PasteMode))
	if c.Session.AddBaseFrame {
		parts = append(parts, "base")
	}
	if c.Session.Mode != ModeNormal {
		parts = append(parts, string(c.Session.Mode))
	}
	parts = append(parts, fmt.Sprintf("clip %d:%d", c.Session.Page, len(c.Session.ClipboardRows())))
	if c.Session.DefaultColor != "" {
		parts = append(parts, "color "+c.Session.DefaultColor)
	}
	if h, ok := c.CursorHit(); ok {
		if ch := h.Char(c.Cursor.X1); ch != "" {
			parts = append(parts, fmt.Sprintf("%s U+%04X", ch, []rune(ch)[0]))
		}
	}
	if f := c.Player.Describe(); f != "" {
		parts = append(parts, f)
	}
	if n := c.Store.NumSelected(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	parts = append(parts, c.Cursor.Box.String())
	return strings.Join(parts, "  ")
}
