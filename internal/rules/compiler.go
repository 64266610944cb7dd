package rules

import (
	"fmt"
	"regexp"

	"github.com/Berachem/reposcan/internal/types"
)

// Compile converts a RawRule into a Rule ready for execution. All
// patterns are compiled case-insensitive.
func Compile(raw RawRule) (*Rule, error) {
	if raw.Kind == "" {
		return nil, fmt.Errorf("rule missing kind")
	}
	if len(raw.Patterns) == 0 {
		return nil, fmt.Errorf("rule %s: no patterns defined", raw.Kind)
	}

	compiled := &Rule{
		Kind:           types.Kind(raw.Kind),
		Severity:       types.ParseSeverity(raw.Severity),
		Description:    raw.Description,
		Recommendation: raw.Recommendation,
	}

	for i, p := range raw.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("rule %s pattern %d: %w", raw.Kind, i, err)
		}
		compiled.Patterns = append(compiled.Patterns, re)
	}

	return compiled, nil
}

// CompileAll compiles a slice of raw rules, returning compiled rules in
// input order plus any per-rule errors. A broken rule is skipped, not
// fatal.
func CompileAll(raws []RawRule) ([]*Rule, []error) {
	var rules []*Rule
	var errs []error
	for _, raw := range raws {
		r, err := Compile(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, r)
	}
	return rules, errs
}

// Find returns the rule for the given kind, or nil.
func Find(catalog []*Rule, kind types.Kind) *Rule {
	for _, r := range catalog {
		if r.Kind == kind {
			return r
		}
	}
	return nil
}
