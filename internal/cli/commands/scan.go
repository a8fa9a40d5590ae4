package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/stagegen/internal/scanner"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <source_name> [project_dir]",
		Short: "Report which source tables the project references",
		Long: `Scan the project for source() references to the given source and report
each referenced table with the files using it. Read-only; nothing is
generated or rewritten.`,
		Example: `  # Report usage of the supermetrics source under ./models
  stagegen scan supermetrics ./models

  # Machine-readable output
  stagegen scan supermetrics ./models -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runScan,
	}
}

// scanEntry is the JSON shape of one referenced table.
type scanEntry struct {
	Table string   `json:"table"`
	Files []string `json:"files"`
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	source := args[0]
	projectDir := "."
	if len(args) == 2 {
		projectDir = args[1]
	}

	s := scanner.New(scanner.Config{
		Ext:         cfg.Ext,
		ExcludeDirs: cfg.ExcludeDirs,
		Logger:      logger,
	})
	used, err := s.Scan(projectDir, source)
	if err != nil {
		return err
	}

	entries := make([]scanEntry, 0, len(used))
	for _, t := range used.Tables() {
		entries = append(entries, scanEntry{Table: t, Files: used.Files(t)})
	}

	if cfg.Output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No references to source %q found under %s\n", source, projectDir)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Files", "Referenced By"})
	for _, e := range entries {
		for i, f := range e.Files {
			if i == 0 {
				t.AppendRow(table.Row{e.Table, len(e.Files), f})
			} else {
				t.AppendRow(table.Row{"", "", f})
			}
		}
	}
	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "(%d tables)\n", len(entries))
	return nil
}
