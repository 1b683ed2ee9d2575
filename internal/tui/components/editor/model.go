// Package editor is the interactive drawing editor: a bubbletea model that
// feeds key sequences and mouse drags to the command table and paints the
// composited drawing with the cursor, selection and guides on top.
package editor

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/autosave"
	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/runtime"
)

// inputMode is what keypresses currently drive
type inputMode int

const (
	modeCommand inputMode = iota
	modePrompt
	modeTyping
)

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	Bindings commands.Bindings
	Keymap   *config.Keymap
	Saver    *autosave.Saver
	Renderer *lipgloss.Renderer
	Now      func() time.Time
}

// Model is the bubbletea model of the editor
type Model struct {
	ctx      *runtime.Context
	bindings commands.Bindings
	keymap   *config.Keymap
	saver    *autosave.Saver
	now      func() time.Time
	styles   Styles

	mode    inputMode
	pending []string
	input   textinput.Model
	// prompting is the command waiting for the prompt's answer
	prompting commands.Command
	typist    *actions.Typist

	message string
	failed  bool
	// quitArmed is set after a quit was refused for unsaved changes
	quitArmed bool
	quitting  bool

	guideX, guideY int
	guides         bool
}

// TickMsg wakes the editor to advance autoplay and autosave
type TickMsg time.Time

// New creates an editor on ctx
func New(ctx *runtime.Context, opts Options) *Model {
	if opts.Bindings == nil {
		opts.Bindings = commands.DefaultBindings()
	}
	if opts.Keymap == nil {
		opts.Keymap = config.NewKeymap()
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.CharLimit = 512

	m := &Model{
		ctx:      ctx,
		bindings: opts.Bindings,
		keymap:   opts.Keymap,
		saver:    opts.Saver,
		now:      opts.Now,
		styles:   DefaultStyles(opts.Renderer),
		input:    ti,
	}

	x, y, ok, err := ctx.Config.Guides()
	if err != nil {
		ctx.Splog.Warn("ignoring guides: %v", err)
	}
	m.guideX, m.guideY, m.guides = x, y, ok && err == nil
	return m
}

// Init starts the wake-up timer
func (m *Model) Init() tea.Cmd {
	if m.saver != nil {
		m.saver.Reset(m.now())
	}
	return m.tick()
}

// tick schedules the next wake-up after the player's timeout
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.ctx.Player.Timeout(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ctx.Cursor.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.advance(time.Time(msg))
		return m, m.tick()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modePrompt:
			cmd = m.handlePromptKey(msg)
		case modeTyping:
			m.handleTypingKey(msg)
		default:
			cmd = m.handleKey(msg)
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

// advance moves autoplay along and takes a due autosave snapshot
func (m *Model) advance(now time.Time) {
	if m.ctx.Player.Playing() {
		before := m.ctx.Player.Current()
		if m.ctx.Player.Advance(now) != before {
			m.ctx.Recomposite()
		}
	}
	if m.saver != nil {
		m.saver.Tick(m.ctx, now)
	}
}

// Quitting reports whether the editor asked to exit
func (m *Model) Quitting() bool {
	return m.quitting
}

// Message returns the text shown on the message line
func (m *Model) Message() string {
	return m.message
}

func (m *Model) setMessage(s string) {
	m.message, m.failed = s, false
}

func (m *Model) fail(err error) {
	m.message, m.failed = err.Error(), true
}
