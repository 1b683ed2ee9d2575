package editor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"darkdraw.dev/ddw/internal/actions"
	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/errors"
)

// handleKey extends the pending key sequence and runs its command once the
// sequence is bound
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key != "q" && key != "ctrl+q" {
		m.quitArmed = false
	}
	if key == "esc" && len(m.pending) > 0 {
		m.pending = nil
		m.setMessage("")
		return nil
	}

	m.pending = append(m.pending, key)
	seq := strings.Join(m.pending, " ")
	if b, ok := m.bindings.Lookup(seq); ok {
		m.pending = nil
		return m.run(b.Command, b.Arg)
	}
	if m.bindings.IsPrefix(seq) {
		return nil
	}
	m.pending = nil
	m.fail(fmt.Errorf("no command on %q", seq))
	return nil
}

// run starts cmd. Commands that want input open the prompt unless the
// binding already carries the argument.
func (m *Model) run(cmd commands.Command, arg string) tea.Cmd {
	switch cmd {
	case commands.Quit:
		m.quit()
		return nil
	case commands.TypingMode:
		m.startTyping()
		return nil
	}

	spec := cmd.Spec()
	if spec.Prompt != "" && arg == "" {
		if err := (spec.Needs &^ commands.NeedInput).Check(m.ctx, ""); err != nil {
			m.fail(fmt.Errorf("%s: %w", spec.Name, err))
			return nil
		}
		return m.openPrompt(cmd)
	}
	return m.dispatch(cmd, arg)
}

func (m *Model) dispatch(cmd commands.Command, input string) tea.Cmd {
	switch cmd {
	case commands.ExecLongname:
		name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
		next, ok := commands.Lookup(name)
		if !ok {
			m.fail(fmt.Errorf("no command %q: %w", name, errors.ErrInvalidInput))
			return nil
		}
		return m.run(next, strings.TrimSpace(arg))
	case commands.LoadKeymap:
		km, err := config.LoadKeymap(input)
		if err != nil {
			m.fail(err)
			return nil
		}
		m.keymap = km
		m.setMessage(fmt.Sprintf("loaded keymap %s", input))
		return nil
	}

	status, err := commands.Dispatch(m.ctx, cmd, input)
	if err != nil {
		m.fail(err)
		return nil
	}
	m.setMessage(status)
	return nil
}

// quit leaves the editor. Unsaved changes need a second quit.
func (m *Model) quit() {
	if m.ctx.Store.Modified() && !m.quitArmed {
		m.quitArmed = true
		m.fail(fmt.Errorf("unsaved changes; quit again to discard them"))
		return
	}
	m.quitting = true
}

// openPrompt shows the input line for cmd
func (m *Model) openPrompt(cmd commands.Command) tea.Cmd {
	m.mode = modePrompt
	m.prompting = cmd
	m.input.Prompt = cmd.Spec().Prompt
	m.input.SetValue(m.promptDefault(cmd))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) promptDefault(cmd commands.Command) string {
	switch cmd {
	case commands.SaveSheet:
		return m.ctx.Path
	case commands.LoadKeymap:
		return m.ctx.Config.KeymapPath()
	case commands.SetDefaultColorInput:
		return m.ctx.Session.DefaultColor
	}
	return ""
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.closePrompt()
		m.setMessage("")
		return nil
	case tea.KeyEnter:
		value := m.input.Value()
		cmd := m.prompting
		m.closePrompt()
		return m.dispatch(cmd, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.mode = modeCommand
	m.input.Blur()
	m.input.Reset()
}

// Prompting returns the command whose input is being read
func (m *Model) Prompting() (commands.Command, bool) {
	return m.prompting, m.mode == modePrompt
}

func (m *Model) startTyping() {
	m.mode = modeTyping
	m.typist = actions.NewTypist(m.keymap)
	m.setMessage("typing mode; esc to leave")
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) {
	more, err := m.typist.Key(m.ctx, msg.String())
	if err != nil {
		m.fail(err)
	}
	if !more {
		m.mode = modeCommand
		m.typist = nil
		m.setMessage("")
	}
}

// handleMouse turns a left-button drag into a cursor box, or into a line
// segment in line drawing mode
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.mode != modeCommand {
		return nil
	}
	x := msg.X + m.ctx.Cursor.XOffset
	y := msg.Y + m.ctx.Cursor.YOffset
	if msg.Y >= m.canvasHeight() {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.dispatch(commands.ClickCursor, fmt.Sprintf("%d %d", x, y))
	case tea.MouseActionRelease:
		return m.dispatch(commands.EndCursor, fmt.Sprintf("%d %d", x, y))
	}
	return nil
}
