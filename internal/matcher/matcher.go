// Package matcher defines the reference-expression patterns shared by the
// scan and rewrite paths. All quoting and whitespace leniency lives here so
// the two paths cannot drift apart.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// arg matches one call argument: an optionally single- or double-quoted
// literal. Partial quoting (opening quote only, or none at all) still
// matches, mirroring the formatting found in real projects.
const arg = `['"]?\s*([^'"(),]+?)\s*['"]?`

// templatedCallPattern matches a full templated source call,
// {{ source(<arg1>, <arg2>) }}, including newlines inside the expression.
// Whitespace is permitted around every token.
var templatedCallPattern = regexp.MustCompile(
	`\{\{\s*source\s*\(\s*` + arg + `\s*,\s*` + arg + `\s*\)\s*\}\}`,
)

// Matcher recognizes source(<name>, <table>) calls for a single source name.
type Matcher struct {
	source  string
	pattern *regexp.Regexp
}

// New compiles a matcher for the given source name. The first argument must
// equal the source name exactly; the table argument is captured.
func New(source string) *Matcher {
	return &Matcher{
		source: source,
		pattern: regexp.MustCompile(
			`source\s*\(\s*['"]?` + regexp.QuoteMeta(source) + `['"]?\s*,\s*` + arg + `\s*\)`,
		),
	}
}

// Source returns the source name this matcher was compiled for.
func (m *Matcher) Source() string {
	return m.source
}

// FindTables returns the table argument of every matching call in content,
// in match order. Duplicates are preserved.
func (m *Matcher) FindTables(content string) []string {
	var tables []string
	for _, groups := range m.pattern.FindAllStringSubmatch(content, -1) {
		if table := strings.TrimSpace(groups[1]); table != "" {
			tables = append(tables, table)
		}
	}
	return tables
}

// StagingModelName returns the logical name of the staging model for a
// source/table pair. The name is a pure function of its inputs; the emitter
// and the rewriter both depend on it producing identical results.
func StagingModelName(source, table string) string {
	return fmt.Sprintf("source_%s__%s", source, table)
}

// RefExpression returns the templated ref call pointing at the staging model
// for a source/table pair.
func RefExpression(source, table string) string {
	return fmt.Sprintf("{{ ref('%s') }}", StagingModelName(source, table))
}

// ReplaceSourceCalls rewrites every templated source call in content into
// the corresponding ref expression and reports how many calls were replaced.
// Each matched span is substituted by its own replacement, so multiple
// distinct pairs in one file rewrite independently. Content without source
// calls is returned unchanged, which makes the rewrite idempotent.
func ReplaceSourceCalls(content string) (string, int) {
	count := 0
	out := templatedCallPattern.ReplaceAllStringFunc(content, func(call string) string {
		groups := templatedCallPattern.FindStringSubmatch(call)
		if len(groups) != 3 {
			return call
		}
		count++
		return RefExpression(strings.TrimSpace(groups[1]), strings.TrimSpace(groups[2]))
	})
	return out, count
}
