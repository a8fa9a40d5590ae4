// Package sources loads source definition documents, the declarative YAML
// listing of external sources and their tables.
package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is one table declared under a source.
type Table struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	LoadedAtField string `yaml:"loaded_at_field"`
}

// Source is one declared external source and its tables.
type Source struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Database    string  `yaml:"database"`
	Schema      string  `yaml:"schema"`
	Tables      []Table `yaml:"tables"`
}

// Document is a parsed source definition document.
type Document struct {
	Sources []Source `yaml:"sources"`
}

// Load reads and parses the document at path. A document without a sources
// list is malformed and fails; unknown extra fields are ignored.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source definitions: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Sources == nil {
		return nil, fmt.Errorf("malformed source definitions in %s: missing sources list", path)
	}
	return &doc, nil
}

// TablesFor returns the declared table names for a source, in declared
// order. A source name absent from the document yields an empty list, not an
// error; callers that want to treat that as a failure must check themselves.
func (d *Document) TablesFor(source string) []string {
	for _, s := range d.Sources {
		if s.Name != source {
			continue
		}
		tables := make([]string, 0, len(s.Tables))
		for _, t := range s.Tables {
			tables = append(tables, t.Name)
		}
		return tables
	}
	return nil
}
