// Package report aggregates findings into the final ScanReport: severity
// histogram, 0-100 security score, and deduplicated recommendations.
package report

import (
	"fmt"
	"time"

	"github.com/Berachem/reposcan/internal/rules"
	"github.com/Berachem/reposcan/internal/types"
	"go.uber.org/zap"
)

const (
	maxSnippetLen = 500
	maxContextLen = 1000
)

// severityWeight drives the security score: score = 100 - sum(weights),
// clamped to [0, 100].
var severityWeight = map[types.Severity]int{
	types.SeverityCritical: 10,
	types.SeverityHigh:     5,
	types.SeverityMedium:   2,
	types.SeverityLow:      1,
}

// Builder turns an accumulated finding sequence into a ScanReport. The
// catalog supplies the kind -> recommendation table and its fixed
// enumeration order.
type Builder struct {
	catalog []*rules.Rule
	log     *zap.SugaredLogger
}

// NewBuilder creates a Builder over the given rule catalog.
func NewBuilder(catalog []*rules.Rule, log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{catalog: catalog, log: log}
}

// Build produces the report. It never fails: downstream renderers assume
// a report shape always exists, so an internal panic is converted into a
// report with Success=false and a zeroed summary.
func (b *Builder) Build(findings []types.Finding, target string) (rep *types.ScanReport) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Errorw("report build failed", "panic", r)
			rep = b.failureReport(target, fmt.Sprintf("report generation failed: %v", r))
		}
	}()

	cleaned := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		cleaned = append(cleaned, sanitize(f))
	}

	breakdown := map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0}
	weight := 0
	for _, f := range cleaned {
		breakdown[f.Severity.String()]++
		weight += severityWeight[f.Severity]
	}

	score := 100 - weight
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &types.ScanReport{
		Summary: types.Summary{
			TotalFindings:     len(cleaned),
			SecurityScore:     score,
			SeverityBreakdown: breakdown,
			ScanDate:          time.Now(),
			Target:            target,
		},
		Findings:        cleaned,
		Recommendations: b.recommendations(cleaned),
		Success:         true,
	}
}

// sanitize coerces a finding into its declared shape so the report is
// always safely transportable regardless of what upstream produced.
func sanitize(f types.Finding) types.Finding {
	if f.Kind == "" {
		f.Kind = types.KindUnknown
	}
	if f.Severity < types.SeverityLow || f.Severity > types.SeverityCritical {
		f.Severity = types.SeverityLow
	}
	if f.File == "" {
		f.File = "unknown"
	}
	if f.Description == "" {
		f.Description = "No description"
	}
	if f.Line < 0 {
		f.Line = 0
	}
	if len(f.Snippet) > maxSnippetLen {
		f.Snippet = f.Snippet[:maxSnippetLen]
	}
	if len(f.Context) > maxContextLen {
		f.Context = f.Context[:maxContextLen]
	}
	return f
}

// recommendations returns one remediation string per distinct finding
// kind, in catalog order. Kinds without a mapped recommendation are
// skipped.
func (b *Builder) recommendations(findings []types.Finding) []string {
	present := make(map[types.Kind]bool, len(findings))
	for _, f := range findings {
		present[f.Kind] = true
	}

	var recs []string
	for _, rule := range b.catalog {
		if present[rule.Kind] && rule.Recommendation != "" {
			recs = append(recs, rule.Recommendation)
		}
	}
	return recs
}

func (b *Builder) failureReport(target, msg string) *types.ScanReport {
	return &types.ScanReport{
		Summary: types.Summary{
			SeverityBreakdown: map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0},
			ScanDate:          time.Now(),
			Target:            target,
		},
		Findings:        []types.Finding{},
		Recommendations: []string{},
		Success:         false,
		Error:           msg,
	}
}
