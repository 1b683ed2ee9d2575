package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Export item states
const (
	StatusPending = "pending"
	StatusWriting = "writing"
	StatusDone    = "done"
	StatusError   = "error"
)

// ExportItem is one file written by a multi-file export
type ExportItem struct {
	Name   string
	Status string
	Path   string
	Error  error
}

// ExportTUIModel is the bubbletea model for export progress
type ExportTUIModel struct {
	items      []ExportItem
	currentIdx int
	spinner    spinner.Model
	done       bool
	quitting   bool
	exportFunc func(idx int) tea.Cmd
	styles     progressStyles
}

type progressStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	nameStyle    lipgloss.Style
	pathStyle    lipgloss.Style
	dimStyle     lipgloss.Style
}

// ExportResultMsg is sent when a single item has been written
type ExportResultMsg struct {
	Idx   int
	Path  string
	Error error
}

// NewExportTUIModel creates a new export progress model
func NewExportTUIModel(items []ExportItem, exportFunc func(idx int) tea.Cmd) ExportTUIModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportTUIModel{
		items:      items,
		spinner:    s,
		exportFunc: exportFunc,
		styles: progressStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			nameStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			pathStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m ExportTUIModel) Init() tea.Cmd {
	if len(m.items) > 0 {
		m.items[0].Status = StatusWriting
		return tea.Batch(m.spinner.Tick, m.exportFunc(0))
	}
	return tea.Quit
}

func (m ExportTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ExportResultMsg:
		if msg.Idx < len(m.items) {
			if msg.Error != nil {
				m.items[msg.Idx].Status = StatusError
				m.items[msg.Idx].Error = msg.Error
			} else {
				m.items[msg.Idx].Status = StatusDone
				m.items[msg.Idx].Path = msg.Path
			}
		}

		m.currentIdx++
		if m.currentIdx < len(m.items) {
			m.items[m.currentIdx].Status = StatusWriting
			return m, tea.Batch(m.spinner.Tick, m.exportFunc(m.currentIdx))
		}

		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ExportTUIModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, item := range m.items {
		var icon, status string
		switch item.Status {
		case StatusWriting:
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render("writing...")
		case StatusDone:
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.doneStyle.Render("written")
		case StatusError:
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("failed")
		default:
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render("pending")
		}

		line := fmt.Sprintf("  %s %s %s", icon, m.styles.nameStyle.Render(item.Name), status)
		if item.Status == StatusDone && item.Path != "" {
			line += " " + m.styles.pathStyle.Render("→ "+item.Path)
		}
		if item.Status == StatusError && item.Error != nil {
			line += " " + m.styles.errorStyle.Render(item.Error.Error())
		}

		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if m.done {
		completed, failed := m.counts()
		b.WriteString("\n")
		if failed > 0 {
			b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("Written: %d, Failed: %d", completed, failed)))
		} else {
			b.WriteString(m.styles.doneStyle.Render(fmt.Sprintf("✓ All %d frames exported", completed)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m ExportTUIModel) counts() (completed, failed int) {
	for _, item := range m.items {
		switch item.Status {
		case StatusDone:
			completed++
		case StatusError:
			failed++
		}
	}
	return completed, failed
}

// Err returns the first failure, if any
func (m ExportTUIModel) Err() error {
	for _, item := range m.items {
		if item.Error != nil {
			return fmt.Errorf("%s: %w", item.Name, item.Error)
		}
	}
	if m.quitting && m.currentIdx < len(m.items) {
		return fmt.Errorf("canceled")
	}
	return nil
}

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// RunExportTUI runs the export progress view and returns when complete
func RunExportTUI(items []ExportItem, exportFunc func(idx int) tea.Cmd) error {
	p := tea.NewProgram(NewExportTUIModel(items, exportFunc), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ExportTUIModel); ok {
		return m.Err()
	}
	return nil
}

// RunExportSimple writes each item in turn, logging progress, for non-TTY environments
func RunExportSimple(items []ExportItem, exportFunc func(idx int) (string, error), splog *Splog) error {
	for i, item := range items {
		path, err := exportFunc(i)
		if err != nil {
			splog.Info("  ✗ %s failed: %v", item.Name, err)
			return err
		}
		splog.Info("  ✓ %s → %s", item.Name, path)
	}
	return nil
}
