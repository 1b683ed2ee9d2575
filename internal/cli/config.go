package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"darkdraw.dev/ddw/internal/cli/helpers"
	"darkdraw.dev/ddw/internal/config"
	"darkdraw.dev/ddw/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration",
		Long: `Get and set ddw configuration values. Key binding overrides are
addressed as bindings.<keys>.

Examples:
  ddw config list
  ddw config get autosave_interval_s
  ddw config set default_color "bold 214"
  ddw config set "bindings.ctrl+s" save-sheet`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigListCmd())

	return cmd
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Get a configuration value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				value, err := ctx.Config.Get(args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value and write the configuration file. An empty
value restores the default.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Config.Set(args[0], args[1]); err != nil {
					return err
				}
				if err := ctx.Config.Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				ctx.Splog.Info("Set %s in %s", args[0], ctx.Config.Path())
				return nil
			})
		},
	}
}

// newConfigListCmd creates the config list command
func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every configuration key with its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				out := cmd.OutOrStdout()
				for _, key := range config.Keys() {
					value, err := ctx.Config.Get(key)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "%s=%s\n", key, value)
				}
				for _, keys := range slices.Sorted(maps.Keys(ctx.Config.Bindings)) {
					_, _ = fmt.Fprintf(out, "bindings.%s=%s\n", keys, ctx.Config.Bindings[keys])
				}
				return nil
			})
		},
	}
}
