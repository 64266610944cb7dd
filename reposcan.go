// Package reposcan provides a public API for security scanning of source
// code repositories: pattern-rule detection, optional LLM-backed
// analysis, dependency auditing, and a severity-weighted report.
//
// This is the library entry point. For the CLI tool, see cmd/reposcan/.
package reposcan

import (
	"context"
	"fmt"
	"strings"

	"github.com/Berachem/reposcan/internal/config"
	"github.com/Berachem/reposcan/internal/engine/ai"
	"github.com/Berachem/reposcan/internal/progress"
	"github.com/Berachem/reposcan/internal/rules"
	"github.com/Berachem/reposcan/internal/rules/builtin"
	"github.com/Berachem/reposcan/internal/scanner"
	"github.com/Berachem/reposcan/internal/types"
)

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	Severity   = types.Severity
	Kind       = types.Kind
	Finding    = types.Finding
	Summary    = types.Summary
	ScanReport = types.ScanReport
)

const (
	SeverityLow      = types.SeverityLow
	SeverityMedium   = types.SeverityMedium
	SeverityHigh     = types.SeverityHigh
	SeverityCritical = types.SeverityCritical
)

// Config is the full scanner configuration, for consumers that want to
// set everything at once via WithConfig rather than per-field options.
type Config = config.Config

// DefaultConfig returns the configuration used when nothing is
// overridden.
func DefaultConfig() Config {
	return config.Default()
}

// AnalyzerClient is the contract for a pluggable external analyzer
// backend. Implementations take a prompt and return the raw reply.
type AnalyzerClient = ai.Client

// ProgressEvent is one progress update emitted at scan milestones.
type ProgressEvent = progress.Event

// RuleInfo summarizes one detection rule from the catalog.
type RuleInfo struct {
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// RuleDetail is the full rule record, including its patterns and the
// remediation recommendation attached to the kind.
type RuleDetail struct {
	Kind           string   `json:"kind"`
	Severity       string   `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Patterns       []string `json:"patterns"`
}

// Scan scans a local directory tree for security issues.
func Scan(ctx context.Context, path string, opts ...Option) (*ScanReport, error) {
	s, err := buildScanner(opts)
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, path)
}

// ScanRepo clones a remote git repository, scans it, and cleans up the
// checkout. A clone failure is returned as an error with no report.
func ScanRepo(ctx context.Context, repoURL string, opts ...Option) (*ScanReport, error) {
	s, err := buildScanner(opts)
	if err != nil {
		return nil, err
	}
	return s.ScanRepo(ctx, repoURL)
}

// ListRules returns the detection catalog in its fixed order. Use
// WithRulesDir to include custom rules in the listing.
func ListRules(opts ...Option) ([]RuleInfo, error) {
	catalog, err := loadCatalog(applyOpts(opts).cfg.RulesDir)
	if err != nil {
		return nil, err
	}
	infos := make([]RuleInfo, len(catalog))
	for i, r := range catalog {
		infos[i] = RuleInfo{
			Kind:        string(r.Kind),
			Severity:    r.Severity.String(),
			Description: r.Description,
		}
	}
	return infos, nil
}

// ExplainRule returns the full record for one catalog kind.
func ExplainRule(kind string, opts ...Option) (*RuleDetail, error) {
	catalog, err := loadCatalog(applyOpts(opts).cfg.RulesDir)
	if err != nil {
		return nil, err
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	r := rules.Find(catalog, types.Kind(kind))
	if r == nil {
		return nil, fmt.Errorf("rule %q not found", kind)
	}

	patterns := make([]string, len(r.Patterns))
	for i, re := range r.Patterns {
		patterns[i] = re.String()
	}
	return &RuleDetail{
		Kind:           string(r.Kind),
		Severity:       r.Severity.String(),
		Description:    r.Description,
		Recommendation: r.Recommendation,
		Patterns:       patterns,
	}, nil
}

// --- internal helpers ---

func loadCatalog(rulesDir string) ([]*rules.Rule, error) {
	raws, err := rules.LoadFromFS(builtin.FS())
	if err != nil {
		return nil, fmt.Errorf("loading built-in rules: %w", err)
	}
	if rulesDir != "" {
		custom, err := rules.LoadFromDir(rulesDir)
		if err != nil {
			return nil, fmt.Errorf("loading custom rules from %s: %w", rulesDir, err)
		}
		raws = append(raws, custom...)
	}
	catalog, errs := rules.CompileAll(raws)
	if len(errs) > 0 {
		return nil, fmt.Errorf("compiling built-in rules: %v", errs[0])
	}
	return catalog, nil
}

// buildScanner creates a fully wired Scanner from the options.
func buildScanner(opts []Option) (*scanner.Scanner, error) {
	cfg := applyOpts(opts)

	var s *scanner.Scanner
	var err error
	if cfg.analyzerOff {
		s, err = scanner.NewWithClient(cfg.cfg, nil)
	} else if cfg.client != nil {
		s, err = scanner.NewWithClient(cfg.cfg, cfg.client)
	} else {
		s, err = scanner.New(cfg.cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.logger != nil {
		s.SetLogger(cfg.logger)
	}
	if cfg.reporter != nil {
		s.SetProgressReporter(cfg.reporter)
	}
	return s, nil
}
