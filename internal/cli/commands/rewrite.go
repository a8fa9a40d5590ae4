package commands

import (
	"fmt"

	"github.com/leapstack-labs/stagegen/internal/rewriter"
	"github.com/spf13/cobra"
)

// NewRewriteCommand creates the rewrite command.
func NewRewriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite [project_dir]",
		Short: "Rewrite source() references into ref() calls",
		Long: `Rewrite every templated source() reference in the project into a ref()
call against the corresponding generated staging model. Files without
source references are left untouched.`,
		Example: `  # Rewrite the default marts directory
  stagegen rewrite

  # Rewrite a specific tree
  stagegen rewrite ./models/marts`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRewrite,
	}
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	projectDir := cfg.RewriteDir
	if len(args) == 1 {
		projectDir = args[0]
	}

	r := rewriter.New(rewriter.Config{Ext: cfg.Ext, Logger: logger})
	result, err := r.Rewrite(projectDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d files with source references.\n", result.FilesChanged)
	return nil
}
