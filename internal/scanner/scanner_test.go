package scanner_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Berachem/reposcan/internal/collector"
	"github.com/Berachem/reposcan/internal/config"
	"github.com/Berachem/reposcan/internal/progress"
	"github.com/Berachem/reposcan/internal/scanner"
	"github.com/Berachem/reposcan/internal/types"
	"github.com/stretchr/testify/require"
)

// cleanClient answers the no-findings sentinel and records which files
// were sent to the analyzer.
type cleanClient struct {
	calls []string
}

func (c *cleanClient) Generate(_ context.Context, prompt string) (string, error) {
	c.calls = append(c.calls, prompt)
	return "NO_VULNERABILITIES_FOUND", nil
}

func newScanner(t *testing.T, cfg config.Config, client *cleanClient) *scanner.Scanner {
	t.Helper()
	s, err := scanner.NewWithClient(cfg, client)
	require.NoError(t, err)
	return s
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py", "import db\nquery(\"SELECT * WHERE id=\" + user_id)\n")
	write(t, dir, "b.py", "password = \"abcdef1234\"\n")
	write(t, dir, "c.py", "")

	s := newScanner(t, config.Default(), &cleanClient{})
	rep, err := s.Scan(context.Background(), dir)
	require.NoError(t, err)

	require.True(t, rep.Success)
	require.Equal(t, 2, rep.Summary.TotalFindings)
	require.Equal(t, 1, rep.Summary.SeverityBreakdown["critical"])
	require.Equal(t, 1, rep.Summary.SeverityBreakdown["high"])
	require.Equal(t, 0, rep.Summary.SeverityBreakdown["medium"])
	require.Equal(t, 0, rep.Summary.SeverityBreakdown["low"])
	require.Equal(t, 85, rep.Summary.SecurityScore)
	require.Equal(t, dir, rep.Summary.Target)

	// Discovery order: a.py's injection before b.py's secret.
	require.Equal(t, types.KindInjectionPattern, rep.Findings[0].Kind)
	require.Equal(t, "a.py", rep.Findings[0].File)
	require.Equal(t, 2, rep.Findings[0].Line)
	require.Equal(t, types.KindExposedSecret, rep.Findings[1].Kind)
	require.Equal(t, "b.py", rep.Findings[1].File)

	require.Len(t, rep.Recommendations, 2)
	require.Contains(t, rep.Recommendations[0], "parameterized queries")
	require.Contains(t, rep.Recommendations[1], "environment variables")
}

func TestScanAttachesContextWindows(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py", "first\nsecond\nthird\neval(x)\nfifth\nsixth\n")

	s := newScanner(t, config.Default(), &cleanClient{})
	rep, err := s.Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Findings, 1)

	// Two lines either side of the match, with the match marked.
	ctx := rep.Findings[0].Context
	require.Contains(t, ctx, ">>> eval(x)")
	require.Contains(t, ctx, "    second")
	require.Contains(t, ctx, "    sixth")
	require.NotContains(t, ctx, "first")
}

func TestScanOversizedFileSkipsBothLayers(t *testing.T) {
	dir := t.TempDir()
	// Content would match rules if the layers ran.
	write(t, dir, "big.py", "eval(x)\n"+strings.Repeat("x", 100))

	cfg := config.Default()
	cfg.MaxFileSize = 10
	client := &cleanClient{}
	s := newScanner(t, cfg, client)

	rep, err := s.Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Findings, 1)
	require.Equal(t, types.KindOversizedFile, rep.Findings[0].Kind)
	require.Equal(t, types.SeverityLow, rep.Findings[0].Severity)
	require.Equal(t, "big.py", rep.Findings[0].File)
	require.Empty(t, client.calls, "analyzer must not run on oversized files")
}

func TestScanRootNotFound(t *testing.T) {
	var events []progress.Event
	s := newScanner(t, config.Default(), &cleanClient{})
	s.SetProgressReporter(progress.Func(func(ev progress.Event) {
		events = append(events, ev)
	}))

	_, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, collector.ErrRootNotFound)

	last := events[len(events)-1]
	require.Equal(t, progress.StepError, last.Step)
	require.Equal(t, 0, last.Percent)
}

func TestScanEmptyTreeFails(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "README.md", "docs only")

	s := newScanner(t, config.Default(), &cleanClient{})
	_, err := s.Scan(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no supported source files")
}

func TestScanProgressMilestones(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py", "x = 1\n")
	write(t, dir, "b.py", "y = 2\n")

	var events []progress.Event
	s := newScanner(t, config.Default(), &cleanClient{})
	s.SetProgressReporter(progress.Func(func(ev progress.Event) {
		events = append(events, ev)
	}))

	_, err := s.Scan(context.Background(), dir)
	require.NoError(t, err)

	known := map[string]bool{
		progress.StepCollecting:       true,
		progress.StepFileCollection:   true,
		progress.StepStaticAnalysis:   true,
		progress.StepAIAnalysis:       true,
		progress.StepDependencyCheck:  true,
		progress.StepGeneratingReport: true,
		progress.StepComplete:         true,
	}
	prev := 0
	for _, ev := range events {
		require.True(t, known[ev.Step], "unknown step %q", ev.Step)
		require.GreaterOrEqual(t, ev.Percent, prev, "percent must be non-decreasing")
		prev = ev.Percent
	}
	require.Equal(t, progress.StepComplete, events[len(events)-1].Step)
	require.Equal(t, 100, events[len(events)-1].Percent)
}

func TestScanWithoutAnalyzer(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py", "md5(data)\n")

	s, err := scanner.NewWithClient(config.Default(), nil)
	require.NoError(t, err)

	rep, err := s.Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Findings, 1)
	require.Equal(t, types.KindWeakCrypto, rep.Findings[0].Kind)
}

func TestScanIncludesDependencyAudit(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py", "x = 1\n")
	write(t, dir, "requirements.txt", "flask==2.1.0\n")

	s := newScanner(t, config.Default(), &cleanClient{})
	rep, err := s.Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, rep.Findings, 1)
	require.Equal(t, types.KindVulnerableDependency, rep.Findings[0].Kind)
	require.Equal(t, "flask", rep.Findings[0].Package)
}

func TestScanCancellation(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.py", "x = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newScanner(t, config.Default(), &cleanClient{})
	_, err := s.Scan(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanRepoCloneFailureIsFatal(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	s := newScanner(t, config.Default(), &cleanClient{})
	rep, err := s.ScanRepo(context.Background(), filepath.Join(t.TempDir(), "not-a-repo"))
	require.Error(t, err)
	require.Nil(t, rep, "clone failure must not produce a partial report")
}
