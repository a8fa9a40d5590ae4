package generator

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/stagegen/internal/matcher"
)

// Emitter writes generated staging SQL to deterministically named files.
type Emitter struct {
	ext    string
	logger *slog.Logger
}

// NewEmitter creates an emitter. ext defaults to ".sql".
func NewEmitter(ext string, logger *slog.Logger) *Emitter {
	if ext == "" {
		ext = ".sql"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Emitter{ext: ext, logger: logger}
}

// FileName returns the staging file name for a source/table pair. The name
// is a pure function of its inputs; one file per table, every run.
func (e *Emitter) FileName(source, table string) string {
	return matcher.StagingModelName(source, table) + e.ext
}

// Write stores sqlText verbatim under dir, creating dir if needed and
// overwriting any existing file of the same name. Returns the written path.
func (e *Emitter) Write(dir, source, table, sqlText string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, e.FileName(source, table))
	if err := os.WriteFile(path, []byte(sqlText), 0o644); err != nil {
		return "", fmt.Errorf("failed to write staging model: %w", err)
	}
	e.logger.Info("created staging model", "path", path)
	return path, nil
}
