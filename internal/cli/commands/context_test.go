package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/stagegen/internal/cli/config"
	"github.com/stretchr/testify/assert"
)

func TestGetConfig_DefaultsWhenUnset(t *testing.T) {
	cfg := getConfig(context.Background())

	assert.Equal(t, config.DefaultExt, cfg.Ext)
	assert.Equal(t, config.DefaultWorkers, cfg.Workers)
	assert.Equal(t, []string{config.DefaultExcludeDir}, cfg.ExcludeDirs)
}

func TestWithRuntime_RoundTrip(t *testing.T) {
	cfg := &config.Config{Ext: ".sqlx"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithRuntime(context.Background(), cfg, logger)

	assert.Same(t, cfg, getConfig(ctx))
	assert.Same(t, logger, getLogger(ctx))
}

func TestGetLogger_DiscardWhenUnset(t *testing.T) {
	assert.NotNil(t, getLogger(context.Background()))
}
