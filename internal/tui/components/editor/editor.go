package editor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"darkdraw.dev/ddw/internal/runtime"
)

// Run shows the editor on the terminal until the user quits. Console
// logging is muted while the editor owns the screen.
func Run(ctx *runtime.Context, opts Options) error {
	ctx.Splog.SetQuiet(true)
	defer ctx.Splog.SetQuiet(false)

	m := New(ctx, opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
