// Package config manages ddw configuration.
//
// It handles:
//   - The user configuration file (autosave, colors, guides, logging)
//   - Key binding overrides for the editor
//   - Typing-mode keymaps
package config
