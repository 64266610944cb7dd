// Package static implements the deterministic rule layer: every catalog
// pattern is matched line by line against file content.
package static

import (
	"strings"

	"github.com/Berachem/reposcan/internal/rules"
	"github.com/Berachem/reposcan/internal/types"
)

// Engine applies the compiled rule catalog to file content.
type Engine struct {
	rules []*rules.Rule
}

// New creates an Engine over the given compiled catalog. Catalog order
// is preserved in the output.
func New(catalog []*rules.Rule) *Engine {
	return &Engine{rules: catalog}
}

func (e *Engine) Name() string { return "static" }

// Analyze scans content line by line (1-based numbering) and returns one
// Finding per pattern hit. Severity, description, and snippet come from
// the rule's kind, never from which pattern matched. Multiple patterns
// hitting the same line each produce a separate Finding; downstream
// consumers rely on that, so no deduplication happens here.
func (e *Engine) Analyze(relPath string, content []byte) []types.Finding {
	var findings []types.Finding
	lines := strings.Split(string(content), "\n")

	for _, rule := range e.rules {
		for _, re := range rule.Patterns {
			for i, line := range lines {
				if !re.MatchString(line) {
					continue
				}
				findings = append(findings, types.Finding{
					Kind:        rule.Kind,
					Severity:    rule.Severity,
					Description: rule.Description,
					File:        relPath,
					Line:        i + 1,
					Snippet:     strings.TrimSpace(line),
				})
			}
		}
	}
	return findings
}
