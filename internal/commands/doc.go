// Package commands is the editor's static command table.
//
// Every editing command is a Command value with a Spec naming it, describing
// it and declaring the state it needs (clipboard, selection, frames, input)
// before its handler runs. Key sequences map onto commands through
// Bindings, which start from darkdraw's classic keys and accept overrides
// from the config file.
package commands
