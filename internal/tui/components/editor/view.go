package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"darkdraw.dev/ddw/internal/compositor"
	"darkdraw.dev/ddw/internal/runtime"
	"darkdraw.dev/ddw/internal/scene"
	"darkdraw.dev/ddw/internal/tui"
)

const (
	// reservedRows holds the status and message lines below the canvas
	reservedRows = 2
	panelWidth   = 20
	panelItems   = 10
)

// Styles holds the editor's chrome styles
type Styles struct {
	renderer *lipgloss.Renderer

	Status  lipgloss.Style
	Message lipgloss.Style
	Error   lipgloss.Style
	Pending lipgloss.Style
	Panel   lipgloss.Style
	Hidden  lipgloss.Style
	Heading lipgloss.Style
}

// DefaultStyles returns the editor styles for r
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		renderer: r,
		Status:   r.NewStyle().Reverse(true),
		Message:  r.NewStyle(),
		Error:    r.NewStyle().Foreground(lipgloss.Color("1")),
		Pending:  r.NewStyle().Foreground(lipgloss.Color("39")),
		Panel:    r.NewStyle().Width(panelWidth),
		Hidden:   r.NewStyle().Foreground(lipgloss.Color("240")),
		Heading:  r.NewStyle().Underline(true),
	}
}

// guideColor draws guide lines that don't cover the drawing
var guideColor = compositor.Color{FG: "240"}

func (m *Model) canvasHeight() int {
	return max(1, m.ctx.Cursor.Height-reservedRows)
}

func (m *Model) canvasWidth() int {
	w := m.ctx.Cursor.Width
	if m.ctx.Session.Visibility != runtime.ShowNothing {
		w -= panelWidth
	}
	return max(1, w)
}

// View renders the canvas, the side panel, the status line and the
// message line
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	c := m.ctx.Cursor
	rect := compositor.Rect{X: c.XOffset, Y: c.YOffset, W: m.canvasWidth(), H: m.canvasHeight()}
	rows := make([]string, 0, rect.H)
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		rows = append(rows, tui.RenderRowFunc(m.styles.renderer, m.ctx.Cache, rect, y, m.decorate))
	}
	canvas := strings.Join(rows, "\n")
	if panel := m.panel(); panel != "" {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.styles.Panel.Render(panel))
	}

	return strings.Join([]string{canvas, m.statusLine(), m.messageLine()}, "\n")
}

// decorate marks the cursor box and the selection, and draws guides on
// empty cells
func (m *Model) decorate(cell compositor.Cell) compositor.Cell {
	if cell.Empty && m.guides {
		switch {
		case cell.Y == m.guideY && cell.X < m.guideX:
			cell.Text, cell.Color = "-", guideColor
		case cell.X == m.guideX && cell.Y < m.guideY:
			cell.Text, cell.Color = "|", guideColor
		}
	}
	if hit, ok := m.ctx.Cache.Top(cell.X, cell.Y); ok && m.ctx.Store.IsSelected(hit.Top) {
		cell.Color.Attrs = append(cell.Color.Attrs, "underline")
	}
	if m.ctx.Cursor.Box.Contains(cell.X, cell.Y) {
		cell.Color.Attrs = append(cell.Color.Attrs, "reverse")
	}
	return cell
}

func (m *Model) statusLine() string {
	status := m.ctx.Status()
	if m.mode == modeTyping {
		status = fmt.Sprintf("typing %s layer  %s", m.typist.Layer(), status)
	}
	return m.styles.Status.Render(status)
}

func (m *Model) messageLine() string {
	switch {
	case m.mode == modePrompt:
		return m.input.View()
	case len(m.pending) > 0:
		return m.styles.Pending.Render(strings.Join(m.pending, " "))
	case m.failed:
		return m.styles.Error.Render(m.message)
	}
	return m.styles.Message.Render(m.message)
}

// panel returns the side panel selected by the session's visibility
func (m *Model) panel() string {
	var lines []string
	switch m.ctx.Session.Visibility {
	case runtime.ShowTags:
		lines = append(lines, "  00: (reset)")
		for i, tag := range m.ctx.Cache.Tags() {
			line := fmt.Sprintf("  %02d: %7s", i+1, tag)
			if m.ctx.Session.DisabledTags.Has(tag) {
				line = m.styles.Hidden.Render(line)
			}
			lines = append(lines, line)
		}
	case runtime.ShowClipboard:
		lines = append(lines, m.styles.Heading.Render(fmt.Sprintf("clipboard %d", m.ctx.Session.Page)))
		for i, t := range m.ctx.Session.ClipboardRows() {
			if i == panelItems {
				break
			}
			lines = append(lines, fmt.Sprintf("  %d: %s", (i+1)%10, clipLabel(t)))
		}
	default:
		return ""
	}
	return strings.Join(lines, "\n")
}

// clipLabel shows a clipboard item: a glyph's text, or the kind and id of
// anything else
func clipLabel(t *scene.Tree) string {
	if text := t.Text(); text != "" {
		return text
	}
	if id := t.GroupID(); id != "" {
		return fmt.Sprintf("[%s %s]", t.Node.Kind(), id)
	}
	return fmt.Sprintf("[%s]", t.Node.Kind())
}
