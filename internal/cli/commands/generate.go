package commands

import (
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/stagegen/internal/generator"
	"github.com/leapstack-labs/stagegen/internal/scanner"
	"github.com/leapstack-labs/stagegen/internal/sources"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <mode> <source_name> [args...]",
		Short: "Generate staging SQL files for a source",
		Long: `Generate one staging SQL file per table of a source.

Modes:
  used_sources <source_name> <project_dir> <output_dir>
      Scan the project for source() references and generate staging files
      for every table actually used.

  yaml <source_name> <yaml_path>
      Generate staging files for every table declared under the source in
      the definition document, alongside the document.`,
		Example: `  # Stage every table the project references
  stagegen generate used_sources supermetrics ./models ./models/sources/supermetrics

  # Stage every table declared in the definition document
  stagegen generate yaml supermetrics ./models/sources/supermetrics/supermetrics.yml`,
		Args: cobra.MinimumNArgs(2),
		RunE: runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd.Context())
	logger := getLogger(cmd.Context())

	mode := args[0]
	source := args[1]

	gen := generator.New(generator.Config{
		Command:   cfg.GeneratorCmd,
		Operation: cfg.GeneratorOperation,
		Timeout:   cfg.Timeout,
		Workers:   cfg.Workers,
		Ext:       cfg.Ext,
		Logger:    logger,
	})

	var tables []string
	var outputDir string

	switch mode {
	case "used_sources":
		if len(args) != 4 {
			return fmt.Errorf("usage: stagegen generate used_sources <source_name> <project_dir> <output_dir>")
		}
		projectDir, outDir := args[2], args[3]

		s := scanner.New(scanner.Config{
			Ext:         cfg.Ext,
			ExcludeDirs: cfg.ExcludeDirs,
			Logger:      logger,
		})
		used, err := s.Scan(projectDir, source)
		if err != nil {
			return err
		}
		tables = used.Tables()
		outputDir = outDir

	case "yaml", "yml":
		if len(args) != 3 {
			return fmt.Errorf("usage: stagegen generate yaml <source_name> <yaml_path>")
		}
		docPath := args[2]

		doc, err := sources.Load(docPath)
		if err != nil {
			return err
		}
		tables = doc.TablesFor(source)
		outputDir = filepath.Dir(docPath)

	default:
		return fmt.Errorf("invalid mode %q: use \"used_sources\" or \"yaml\"", mode)
	}

	result, err := gen.Generate(cmd.Context(), source, tables, outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	return nil
}
