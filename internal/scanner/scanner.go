// Package scanner orchestrates the scan pipeline: file collection, the
// static rule layer, the external analyzer layer, the dependency audit,
// and report building, with progress milestones in between.
package scanner

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Berachem/reposcan/internal/collector"
	"github.com/Berachem/reposcan/internal/config"
	"github.com/Berachem/reposcan/internal/deps"
	"github.com/Berachem/reposcan/internal/engine/ai"
	"github.com/Berachem/reposcan/internal/engine/static"
	"github.com/Berachem/reposcan/internal/progress"
	"github.com/Berachem/reposcan/internal/report"
	"github.com/Berachem/reposcan/internal/rules"
	"github.com/Berachem/reposcan/internal/rules/builtin"
	"github.com/Berachem/reposcan/internal/types"
	"go.uber.org/zap"
)

// contextRadius is how many lines of surrounding source are attached to
// findings that carry a line number.
const contextRadius = 2

// Scanner runs the full pipeline. Files are processed one at a time, in
// collection order: the external analyzer is a rate-limited stateful
// service and must never see overlapping calls, and sequential
// processing keeps progress reporting monotonic. All mutable state is
// owned by the Scan call for its duration; a Scanner itself is
// stateless between scans.
type Scanner struct {
	cfg       config.Config
	catalog   []*rules.Rule
	collector *collector.Collector
	static    *static.Engine
	client    ai.Client
	analyzer  *ai.Analyzer
	auditor   *deps.Auditor
	builder   *report.Builder
	reporter  progress.Reporter
	log       *zap.SugaredLogger
}

// New creates a Scanner wired with the built-in rule catalog and the
// default Ollama analyzer client.
func New(cfg config.Config) (*Scanner, error) {
	return NewWithClient(cfg, ai.NewOllamaClient(cfg.OllamaURL, cfg.Model))
}

// NewWithClient creates a Scanner with an explicit analyzer client. A
// nil client disables the external analyzer layer entirely.
func NewWithClient(cfg config.Config, client ai.Client) (*Scanner, error) {
	raws, err := rules.LoadFromFS(builtin.FS())
	if err != nil {
		return nil, fmt.Errorf("loading built-in rules: %w", err)
	}
	if cfg.RulesDir != "" {
		custom, err := rules.LoadFromDir(cfg.RulesDir)
		if err != nil {
			return nil, fmt.Errorf("loading custom rules from %s: %w", cfg.RulesDir, err)
		}
		raws = append(raws, custom...)
	}
	catalog, errs := rules.CompileAll(raws)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "reposcan: warning: %v\n", e)
	}

	log := zap.NewNop().Sugar()
	s := &Scanner{
		cfg:       cfg,
		catalog:   catalog,
		collector: collector.New(cfg.Extensions),
		static:    static.New(catalog),
		auditor:   deps.NewAuditor(log),
		builder:   report.NewBuilder(catalog, log),
		reporter:  progress.Nop{},
		log:       log,
	}
	s.client = client
	s.rebuildAnalyzer()
	return s, nil
}

// SetLogger replaces the no-op logger on the scanner and its stages.
func (s *Scanner) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		return
	}
	s.log = log
	s.auditor = deps.NewAuditor(log)
	s.builder = report.NewBuilder(s.catalog, log)
	s.rebuildAnalyzer()
}

// SetAnalyzerClient swaps the external analyzer backend. Passing nil
// disables the analyzer layer.
func (s *Scanner) SetAnalyzerClient(client ai.Client) {
	s.client = client
	s.rebuildAnalyzer()
}

func (s *Scanner) rebuildAnalyzer() {
	if s.client == nil {
		s.analyzer = nil
		return
	}
	s.analyzer = ai.NewAnalyzer(s.client, s.cfg.MaxFileSize, s.cfg.AnalyzerTimeout, s.log)
}

// SetProgressReporter installs a progress sink. Events are delivered
// synchronously on the scanning goroutine.
func (s *Scanner) SetProgressReporter(r progress.Reporter) {
	if r == nil {
		r = progress.Nop{}
	}
	s.reporter = r
}

// Catalog exposes the compiled rule catalog (for listings).
func (s *Scanner) Catalog() []*rules.Rule {
	return s.catalog
}

// Scan runs the full pipeline over a local directory. Only two
// conditions are fatal: a missing root and context cancellation (plus
// the empty-tree case below). Everything else is absorbed into the
// report as findings.
func (s *Scanner) Scan(ctx context.Context, root string) (*types.ScanReport, error) {
	return s.scan(ctx, root, root, nil)
}

func (s *Scanner) scan(ctx context.Context, root, target string, src *types.Source) (*types.ScanReport, error) {
	s.emit(progress.StepCollecting, 15, map[string]any{"target": target})

	files, err := s.collector.Collect(root)
	if err != nil {
		return nil, s.fail(err)
	}
	s.emit(progress.StepFileCollection, 25, map[string]any{
		"files_found": len(files),
		"target":      target,
	})

	if len(files) == 0 {
		return nil, s.fail(fmt.Errorf("no supported source files found under %s", root))
	}

	s.emit(progress.StepStaticAnalysis, 35, map[string]any{"files_found": len(files)})

	var findings []types.Finding
	total := len(files)
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, s.fail(err)
		}

		// 35-65%, interpolated per file.
		percent := 35 + int(float64(i+1)/float64(total)*30)
		s.emit(progress.StepAIAnalysis, percent, map[string]any{
			"files_analyzed": i + 1,
			"total_files":    total,
			"current_file":   file.RelPath,
			"findings_found": len(findings),
		})

		findings = append(findings, s.scanFile(ctx, file)...)
	}

	s.emit(progress.StepDependencyCheck, 75, map[string]any{"findings_found": len(findings)})
	findings = append(findings, s.auditor.Audit(root)...)

	s.emit(progress.StepGeneratingReport, 90, map[string]any{"findings_found": len(findings)})
	rep := s.builder.Build(findings, target)
	rep.Source = src

	s.emit(progress.StepComplete, 100, map[string]any{
		"findings_found": len(findings),
		"security_score": rep.Summary.SecurityScore,
	})
	return rep, nil
}

// scanFile runs both detection layers over one file and returns its
// findings. Per-file failures never abort the scan: an unreadable file
// becomes a read-error finding, an oversized file a single
// oversized-file finding that bypasses both layers.
func (s *Scanner) scanFile(ctx context.Context, file collector.File) []types.Finding {
	if file.Size > s.cfg.MaxFileSize {
		s.log.Debugw("skipping oversized file", "file", file.RelPath, "size", file.Size)
		return []types.Finding{{
			Kind:        types.KindOversizedFile,
			Severity:    types.SeverityLow,
			Description: fmt.Sprintf("File too large to analyze (%d bytes)", file.Size),
			File:        file.RelPath,
		}}
	}

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return []types.Finding{{
			Kind:        types.KindReadError,
			Severity:    types.SeverityLow,
			Description: fmt.Sprintf("Failed to read file: %v", err),
			File:        file.RelPath,
		}}
	}

	findings := s.static.Analyze(file.RelPath, content)
	if s.analyzer != nil {
		findings = append(findings, s.analyzer.Analyze(ctx, file.RelPath, content)...)
	}

	// Attach a source window around every finding that has a line anchor.
	for i := range findings {
		if findings[i].Line > 0 {
			findings[i].Context = contextWindow(content, findings[i].Line, contextRadius)
		}
	}
	return findings
}

// contextWindow renders the lines around lineNum (1-based), marking the
// matched line with ">>> ".
func contextWindow(content []byte, lineNum, radius int) string {
	lines := strings.Split(string(content), "\n")
	start := max(lineNum-radius-1, 0)
	end := min(lineNum+radius, len(lines))
	if start >= end {
		return ""
	}

	var out []string
	for i := start; i < end; i++ {
		if i == lineNum-1 {
			out = append(out, ">>> "+lines[i])
		} else {
			out = append(out, "    "+lines[i])
		}
	}
	return strings.Join(out, "\n")
}

func (s *Scanner) emit(step string, percent int, details map[string]any) {
	s.reporter.Report(progress.Event{Step: step, Percent: percent, Details: details})
}

// fail reports the error milestone and passes the error through.
func (s *Scanner) fail(err error) error {
	s.emit(progress.StepError, 0, map[string]any{"error": err.Error()})
	return err
}
