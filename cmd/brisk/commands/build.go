package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/brisk/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bundle the project's source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			root, _ := flags.GetString("root")
			configPath, _ := flags.GetString("config")
			watch, _ := flags.GetBool("watch")
			noWarnings, _ := flags.GetBool("no-warnings")

			return c.app.Build(cmd.Context(), domain.BuildOptions{
				Root:         root,
				ConfigPath:   configPath,
				Tsconfig:     changedString(flags, "tsconfig"),
				Format:       changedString(flags, "format"),
				Mode:         changedString(flags, "mode"),
				Language:     changedString(flags, "language"),
				Sourcemap:    changedBool(flags, "sourcemap"),
				Watch:        watch,
				WatchCommand: changedString(flags, "watch-command"),
				NoWarnings:   noWarnings,
			})
		},
	}
	cmd.Flags().String("root", "", "Project root (defaults to the working directory)")
	cmd.Flags().StringP("config", "c", "", "Path to the config file (defaults to "+domain.ConfigFileName+")")
	cmd.Flags().String("tsconfig", "", "Path to the project's tsconfig.json or jsconfig.json")
	cmd.Flags().StringP("format", "f", "", "Output format: esm or cjs")
	cmd.Flags().StringP("mode", "m", "", "Build mode: development or production")
	cmd.Flags().String("language", "", "Source language: typescript or javascript")
	cmd.Flags().Bool("sourcemap", false, "Emit linked source maps")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild on file changes")
	cmd.Flags().String("watch-command", "", "Command to run after each successful rebuild (requires --watch)")
	cmd.Flags().Bool("no-warnings", false, "Suppress warnings")
	return cmd
}

// changedString returns the flag value only when it was set on the command line.
func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetBool(name)
	return &v
}
