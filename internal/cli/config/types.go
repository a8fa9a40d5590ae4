// Package config provides configuration management for the stagegen CLI.
//
// Configuration is loaded from defaults, an optional stagegen.yaml file,
// STAGEGEN_* environment variables, and CLI flags, in increasing precedence.
package config

import "time"

// Defaults for the configuration values.
const (
	DefaultExt        = ".sql"
	DefaultExcludeDir = "sources"
	DefaultRewriteDir = "models/marts"
	DefaultCommand    = "dbt"
	DefaultOperation  = "generate_base_model"
	DefaultTimeout    = 2 * time.Minute
	DefaultWorkers    = 1
	DefaultOutput     = "table"
)

// Config holds all CLI configuration options.
type Config struct {
	// Ext is the SQL file extension scanned and rewritten.
	Ext string `koanf:"ext"`
	// ExcludeDirs are directory names the scanner never descends into.
	ExcludeDirs []string `koanf:"exclude_dirs"`
	// RewriteDir is the default tree for the rewrite command.
	RewriteDir string `koanf:"rewrite_dir"`
	// GeneratorCmd is the external code generation executable.
	GeneratorCmd string `koanf:"generator_cmd"`
	// GeneratorOperation is the run-operation invoked per table.
	GeneratorOperation string `koanf:"generator_operation"`
	// Timeout bounds each generator invocation.
	Timeout time.Duration `koanf:"timeout"`
	// Workers bounds concurrent table generation (1 = sequential).
	Workers int `koanf:"workers"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// Output selects the scan report format (table|json).
	Output string `koanf:"output"`
}
