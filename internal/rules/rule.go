// Package rules defines the detection rule catalog: one rule per finding
// kind, each carrying its patterns, severity, description, and remediation
// recommendation. Rules are authored as multi-document YAML (embedded via
// builtin) and compiled to case-insensitive regular expressions.
package rules

import (
	"regexp"

	"github.com/Berachem/reposcan/internal/types"
)

// RawRule is the YAML representation of a detection rule.
type RawRule struct {
	Kind           string   `yaml:"kind"`
	Severity       string   `yaml:"severity"`
	Description    string   `yaml:"description"`
	Recommendation string   `yaml:"recommendation"`
	Patterns       []string `yaml:"patterns"`
}

// Rule is a compiled rule ready for matching. Severity and Description
// are fixed per kind; which of the patterns matched does not change them.
type Rule struct {
	Kind           types.Kind
	Severity       types.Severity
	Description    string
	Recommendation string
	Patterns       []*regexp.Regexp
}
