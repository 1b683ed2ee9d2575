// Package tui provides the terminal side of ddw.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Confirmation and selection prompts (using survey and bubbletea)
//   - Rendering composited drawings with lipgloss styles
package tui
