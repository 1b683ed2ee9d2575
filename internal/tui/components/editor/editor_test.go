package editor_test

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"darkdraw.dev/ddw/internal/commands"
	"darkdraw.dev/ddw/internal/tui"
	"darkdraw.dev/ddw/internal/tui/components/editor"
	"darkdraw.dev/ddw/testhelpers"
	"darkdraw.dev/ddw/testhelpers/scenario"
)

func newEditor(s *scenario.Scenario) *editor.Model {
	return editor.New(s.Context, editor.Options{
		Renderer: tui.NewRenderer(io.Discard, termenv.Ascii),
	})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(m *editor.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func lastLine(view string) string {
	lines := strings.Split(view, "\n")
	return lines[len(lines)-1]
}

func TestKeySequences(t *testing.T) {
	t.Run("bound keys run commands", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Cursor(0, 0, 3, 1).Clip(`{"text":"x"}`)
		m := newEditor(s)

		send(m, "f")
		s.ExpectText("xxx")
		require.Equal(t, "filled 3 cells", m.Message())
	})

	t.Run("prefixes wait for the rest of the sequence", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Cursor(5, 0, 1, 1)
		m := newEditor(s)

		send(m, "g")
		require.Equal(t, "g", lastLine(m.View()))
		require.Equal(t, 5, s.Context.Cursor.X1)

		send(m, "h")
		require.Equal(t, 0, s.Context.Cursor.X1)
	})

	t.Run("escape drops a pending sequence", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		send(m, "g", "esc")
		require.Empty(t, strings.TrimSpace(lastLine(m.View())))
	})

	t.Run("unbound sequences report an error", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		send(m, "ctrl+t")
		require.Contains(t, m.Message(), `no command on "ctrl+t"`)
	})
}

func TestPrompts(t *testing.T) {
	t.Run("commands read their input", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		send(m, "a")
		cmd, ok := m.Prompting()
		require.True(t, ok)
		require.Equal(t, commands.AddInput, cmd)
		require.Contains(t, lastLine(m.View()), "text: ")

		send(m, "h", "i", "enter")
		_, ok = m.Prompting()
		require.False(t, ok)
		s.ExpectText("hi")
	})

	t.Run("preconditions are checked before prompting", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		send(m, "g", "e")
		_, ok := m.Prompting()
		require.False(t, ok)
		require.Contains(t, m.Message(), "edit-selected")
	})

	t.Run("escape cancels", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		send(m, "a", "x", "esc")
		_, ok := m.Prompting()
		require.False(t, ok)
		s.ExpectText()
	})

	t.Run("commands by name", func(t *testing.T) {
		s := scenario.NewScenario(t, nil).Clip(`{"text":"a"}`, `{"text":"b"}`)
		m := newEditor(s)

		send(m, " ", "paste-char 2", "enter")
		s.ExpectText("b")

		send(m, " ", "frobnicate", "enter")
		require.Contains(t, m.Message(), "frobnicate")
	})
}

func TestTypingMode(t *testing.T) {
	s := scenario.NewScenario(t, nil)
	m := newEditor(s)

	send(m, "N")
	require.Contains(t, m.View(), "typing random layer")
	send(m, "o", "k", "esc")
	s.ExpectText("ok")
	require.NotContains(t, m.View(), "typing random layer")
}

func TestQuit(t *testing.T) {
	t.Run("quits a clean drawing", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		cmd := send(m, "q")
		require.True(t, m.Quitting())
		require.NotNil(t, cmd)
		require.Empty(t, m.View())
	})

	t.Run("unsaved changes need a second quit", func(t *testing.T) {
		s := scenario.NewScenario(t, nil)
		m := newEditor(s)

		send(m, "a", "x", "enter", "q")
		require.False(t, m.Quitting())
		require.Contains(t, m.Message(), "unsaved changes")

		send(m, "q")
		require.True(t, m.Quitting())
	})
}

func TestMouse(t *testing.T) {
	s := scenario.NewScenario(t, nil)
	m := newEditor(s)

	m.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	box := s.Context.Cursor.Box
	require.Equal(t, [4]int{1, 1, 3, 2}, [4]int{box.X1, box.Y1, box.W, box.H})
}

func TestAutoplay(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(
		`{"type":"frame","id":"1","duration_ms":100}`,
		`{"type":"frame","id":"2","duration_ms":200}`,
		`{"text":"a","frame":"1"}`,
		`{"text":"b","frame":"2"}`,
	))
	m := newEditor(s)
	require.NotNil(t, m.Init())

	send(m, "r")
	require.True(t, s.Context.Player.Playing())

	start := time.Now()
	m.Update(editor.TickMsg(start))
	require.Equal(t, "1", s.Context.CurrentFrameID())
	require.Equal(t, "a", s.Context.Cache.Char(0, 0))

	m.Update(editor.TickMsg(start.Add(150 * time.Millisecond)))
	require.Equal(t, "2", s.Context.CurrentFrameID())
	require.Equal(t, "b", s.Context.Cache.Char(0, 0))

	m.Update(editor.TickMsg(start.Add(400 * time.Millisecond)))
	require.Equal(t, "1", s.Context.CurrentFrameID())
	require.Equal(t, 1, s.Context.Player.Loops())
}

func TestView(t *testing.T) {
	s := scenario.NewScenario(t, testhelpers.Records(`{"x":1,"y":0,"text":"hi","tags":["word"]}`))
	m := newEditor(s)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 5})

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, " hi", strings.TrimRight(lines[0], " "))
	require.Contains(t, lines[3], s.Context.Cursor.Box.String())

	send(m, "v")
	require.Contains(t, m.View(), "01:    word")
}
