// Package scanner discovers which source tables a project actually
// references, by walking the SQL tree and matching source call expressions.
package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/stagegen/internal/matcher"
)

// UsedSources maps a table name to the set of files referencing it.
// Membership only; neither tables nor files carry an ordering guarantee.
type UsedSources map[string]map[string]struct{}

// Tables returns the referenced table names, sorted for stable output.
func (u UsedSources) Tables() []string {
	tables := make([]string, 0, len(u))
	for table := range u {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// Files returns the sorted file paths referencing the given table.
func (u UsedSources) Files(table string) []string {
	files := make([]string, 0, len(u[table]))
	for path := range u[table] {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

func (u UsedSources) add(table, path string) {
	if u[table] == nil {
		u[table] = make(map[string]struct{})
	}
	u[table][path] = struct{}{}
}

// Config holds scanner configuration.
type Config struct {
	// Ext is the SQL file extension, including the dot (default ".sql").
	Ext string
	// ExcludeDirs are directory names skipped during traversal. The staging
	// output directory belongs here so generated files are not scanned as
	// fresh usages.
	ExcludeDirs []string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Scanner walks a project tree and indexes source references.
type Scanner struct {
	ext     string
	exclude map[string]struct{}
	logger  *slog.Logger
}

// New creates a scanner from the given configuration.
func New(cfg Config) *Scanner {
	ext := cfg.Ext
	if ext == "" {
		ext = ".sql"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	exclude := make(map[string]struct{}, len(cfg.ExcludeDirs))
	for _, dir := range cfg.ExcludeDirs {
		exclude[dir] = struct{}{}
	}
	return &Scanner{ext: ext, exclude: exclude, logger: logger}
}

// Scan walks root and returns, per table of the given source, the set of
// files containing at least one matching reference expression. Files with no
// matches do not appear. An unreadable file aborts the scan.
func (s *Scanner) Scan(root, source string) (UsedSources, error) {
	m := matcher.New(source)
	used := make(UsedSources)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := s.exclude[d.Name()]; skip && path != root {
				s.logger.Debug("skipping excluded directory", "path", path)
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), s.ext) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, table := range m.FindTables(string(content)) {
			used.add(table, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	s.logger.Debug("scan complete", "source", source, "tables", len(used))
	return used, nil
}
