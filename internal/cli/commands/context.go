// Package commands implements the stagegen subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/leapstack-labs/stagegen/internal/cli/config"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithRuntime stores the loaded config and logger in the context. The root
// command calls this once per invocation; no global state is involved.
func WithRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Ext:                config.DefaultExt,
		ExcludeDirs:        []string{config.DefaultExcludeDir},
		RewriteDir:         config.DefaultRewriteDir,
		GeneratorCmd:       config.DefaultCommand,
		GeneratorOperation: config.DefaultOperation,
		Timeout:            config.DefaultTimeout,
		Workers:            config.DefaultWorkers,
		Output:             config.DefaultOutput,
	}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
