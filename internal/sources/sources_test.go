package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TablesInDeclaredOrder(t *testing.T) {
	path := writeDoc(t, `
sources:
  - name: sup
    schema: raw
    tables:
      - name: zebra
      - name: clicks
        loaded_at_field: _loaded_at
      - name: orders
  - name: ga
    tables:
      - name: sessions
`)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra", "clicks", "orders"}, doc.TablesFor("sup"))
	assert.Equal(t, []string{"sessions"}, doc.TablesFor("ga"))
}

func TestLoad_AbsentSourceYieldsEmptyList(t *testing.T) {
	path := writeDoc(t, `
sources:
  - name: sup
    tables:
      - name: clicks
`)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, doc.TablesFor("missing"))
}

func TestLoad_MissingSourcesListIsMalformed(t *testing.T) {
	path := writeDoc(t, `
version: 2
models:
  - name: orders
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing sources list")
}

func TestLoad_EmptySourcesListIsValid(t *testing.T) {
	path := writeDoc(t, `sources: []`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, doc.Sources)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeDoc(t, "sources: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
