package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ".sql", cfg.Ext)
	assert.Equal(t, []string{"sources"}, cfg.ExcludeDirs)
	assert.Equal(t, "models/marts", cfg.RewriteDir)
	assert.Equal(t, "dbt", cfg.GeneratorCmd)
	assert.Equal(t, "generate_base_model", cfg.GeneratorOperation)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stagegen.yaml"), []byte(`
rewrite_dir: models/core
workers: 4
timeout: 30s
`), 0o644))
	chdir(t, dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "models/core", cfg.RewriteDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, ".sql", cfg.Ext, "unset keys keep defaults")
}

func TestLoad_ConfigFileFoundUpward(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stagegen.yml"), []byte("workers: 2\n"), 0o644))
	nested := filepath.Join(dir, "models", "marts")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stagegen.yaml"), []byte("generator_cmd: dbt\n"), 0o644))
	chdir(t, dir)
	t.Setenv("STAGEGEN_GENERATOR_CMD", "dbt-cloud")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "dbt-cloud", cfg.GeneratorCmd)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STAGEGEN_WORKERS", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", DefaultWorkers, "")
	require.NoError(t, flags.Parse([]string{"--workers", "8"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
}

func TestLoad_UnchangedFlagDoesNotOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STAGEGEN_WORKERS", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("workers", DefaultWorkers, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_ExplicitMissingConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml", nil)
	assert.Error(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
