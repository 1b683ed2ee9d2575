package helpers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	ctx, err := runtime.GetContext(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	defer func() { _ = ctx.Splog.Close() }()
	return fn(ctx)
}

// RunDrawing is Run with the existing drawing at path loaded
func RunDrawing(cmd *cobra.Command, path string, fn func(ctx *runtime.Context) error) error {
	if err := RequireFile(path); err != nil {
		return err
	}
	return Run(cmd, func(ctx *runtime.Context) error {
		if err := ctx.Open(path); err != nil {
			return err
		}
		return fn(ctx)
	})
}

// RequireFile fails unless path is an existing regular file
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
