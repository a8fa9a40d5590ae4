// Package generator produces staging SQL files by invoking an external code
// generation command per source table and scraping the SQL from its output.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// sqlMarker starts the generated staging query within the command's output.
// Everything before it is noise (progress lines, banners).
const sqlMarker = "with source"

// ErrMarkerNotFound reports that the command output held no staging query.
// Distinct from a command failure: the process ran, the marker was missing.
var ErrMarkerNotFound = errors.New(`marker "with source" not found in generator output`)

// ExtractSQL returns the substring of output from the first marker to the
// end, trimmed of surrounding whitespace.
func ExtractSQL(output string) (string, error) {
	idx := strings.Index(output, sqlMarker)
	if idx < 0 {
		return "", ErrMarkerNotFound
	}
	return strings.TrimSpace(output[idx:]), nil
}

// Config holds generator configuration.
type Config struct {
	// Command is the external generator executable (default "dbt").
	Command string
	// Operation is the run-operation invoked per table
	// (default "generate_base_model").
	Operation string
	// Timeout bounds each command invocation (default 2m).
	Timeout time.Duration
	// Workers bounds concurrent table generation. 1 (the default) keeps
	// strictly sequential processing.
	Workers int
	// Ext is the staging file extension (default ".sql").
	Ext string
	// Runner overrides command execution, for tests.
	Runner Runner
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Generator runs the per-table generation pipeline.
type Generator struct {
	runner    Runner
	emitter   *Emitter
	command   string
	operation string
	timeout   time.Duration
	workers   int
	logger    *slog.Logger
}

// New creates a generator from the given configuration.
func New(cfg Config) *Generator {
	command := cfg.Command
	if command == "" {
		command = "dbt"
	}
	operation := cfg.Operation
	if operation == "" {
		operation = "generate_base_model"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	runner := cfg.Runner
	if runner == nil {
		runner = NewExecRunner()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		runner:    runner,
		emitter:   NewEmitter(cfg.Ext, logger),
		command:   command,
		operation: operation,
		timeout:   timeout,
		workers:   workers,
		logger:    logger,
	}
}

// SkippedTable records a table whose generation failed softly.
type SkippedTable struct {
	Table  string
	Reason string
}

// Result summarizes one generation batch.
type Result struct {
	Source    string
	OutputDir string
	Generated []string
	Skipped   []SkippedTable
}

// Summary returns a human-readable one-liner.
func (r *Result) Summary() string {
	return fmt.Sprintf("Generated staging SQL for %d of %d tables from source %q into %s",
		len(r.Generated), len(r.Generated)+len(r.Skipped), r.Source, r.OutputDir)
}

// Generate builds and writes one staging file per table. Per-table failures
// (command failure, timeout, missing marker) are logged and recorded in the
// result without aborting the batch; a failed write is fatal. Writes to
// distinct tables never collide, so tables may generate concurrently.
func (g *Generator) Generate(ctx context.Context, source string, tables []string, outputDir string) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{Source: source, OutputDir: outputDir}
	var mu sync.Mutex

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for _, table := range tables {
		table := table
		eg.Go(func() error {
			sqlText, err := g.buildSQL(egctx, source, table)
			if err != nil {
				g.logger.Warn("could not extract SQL content, skipping table",
					"source", source, "table", table, "reason", err)
				mu.Lock()
				result.Skipped = append(result.Skipped, SkippedTable{Table: table, Reason: err.Error()})
				mu.Unlock()
				return nil
			}
			if _, err := g.emitter.Write(outputDir, source, table, sqlText); err != nil {
				return err
			}
			mu.Lock()
			result.Generated = append(result.Generated, table)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return result, err
	}
	g.logger.Info(result.Summary())
	return result, nil
}

// buildSQL invokes the generator command for one table and extracts the
// staging query from its output.
func (g *Generator) buildSQL(ctx context.Context, source, table string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	args := []string{
		"run-operation", g.operation,
		"--args", fmt.Sprintf("{source_name: %s, table_name: %s}", source, table),
	}
	output, err := g.runner.Run(ctx, g.command, args...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("generator command timed out after %s: %w", g.timeout, ctx.Err())
		}
		return "", fmt.Errorf("generator command failed: %w", err)
	}
	return ExtractSQL(output)
}
