// Package cli provides the command-line interface for stagegen.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/stagegen/internal/cli/commands"
	"github.com/leapstack-labs/stagegen/internal/cli/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "stagegen",
		Short: "stagegen - staging model generation for templated SQL projects",
		Long: `stagegen automates staging-model maintenance in a templated SQL project.

It discovers which source tables the project references, generates one
staging SQL file per table via the configured code generator, and rewrites
direct source() references into ref() calls against the generated models.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			cmd.SetContext(commands.WithRuntime(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./stagegen.yaml)")
	rootCmd.PersistentFlags().String("ext", config.DefaultExt, "SQL file extension")
	rootCmd.PersistentFlags().StringSlice("exclude-dirs", []string{config.DefaultExcludeDir}, "Directory names excluded from scanning")
	rootCmd.PersistentFlags().String("rewrite-dir", config.DefaultRewriteDir, "Default directory for the rewrite command")
	rootCmd.PersistentFlags().String("generator-cmd", config.DefaultCommand, "External code generation command")
	rootCmd.PersistentFlags().String("generator-operation", config.DefaultOperation, "Generator operation invoked per table")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Timeout per generator invocation")
	rootCmd.PersistentFlags().Int("workers", config.DefaultWorkers, "Concurrent table generations (1 = sequential)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Scan output format (table|json)")

	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewRewriteCommand())
	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	rootCmd.SetContext(context.Background())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
