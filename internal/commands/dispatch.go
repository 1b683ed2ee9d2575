package commands

import (
	"fmt"

	"darkdraw.dev/ddw/internal/errors"
	"darkdraw.dev/ddw/internal/runtime"
)

// ErrEditorCommand is returned for commands only the editor can run
var ErrEditorCommand = fmt.Errorf("command runs only in the editor: %w", errors.ErrInvalidInput)

// Dispatch checks cmd's preconditions and runs it with input. The returned
// status is the handler's message, or else the last message it logged.
// The cursor is kept on the drawing afterwards.
func Dispatch(ctx *runtime.Context, cmd Command, input string) (string, error) {
	if !cmd.Valid() {
		return "", fmt.Errorf("unknown command %d: %w", int(cmd), errors.ErrInvalidInput)
	}
	spec := table[cmd]
	if spec.Run == nil {
		return "", fmt.Errorf("%s: %w", spec.Name, ErrEditorCommand)
	}
	if err := spec.Needs.Check(ctx, input); err != nil {
		return "", fmt.Errorf("%s: %w", spec.Name, err)
	}

	ctx.Splog.ClearStatus()
	status, err := spec.Run(ctx, input)
	ctx.Cursor.Check()
	if err != nil {
		return "", err
	}
	if status == "" {
		status = ctx.Splog.Status()
	}
	ctx.Splog.Debug("%s: %s", spec.Name, status)
	return status, nil
}

// DispatchName runs the command called name
func DispatchName(ctx *runtime.Context, name, input string) (string, error) {
	cmd, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("no command %q: %w", name, errors.ErrInvalidInput)
	}
	return Dispatch(ctx, cmd, input)
}
