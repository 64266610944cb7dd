package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Berachem/reposcan/internal/types"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

const (
	lineWidth = 72
	barWidth  = 30
)

// TerminalFormatter renders a report for human triage: score, severity
// dashboard, findings grouped by severity, then recommendations.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, rep *types.ScanReport) error {
	sep := strings.Repeat("─", lineWidth)
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "REPOSCAN SECURITY REPORT"))
	fmt.Fprintf(w, "  Target: %s\n", rep.Summary.Target)
	if rep.Source != nil {
		fmt.Fprintf(w, "  Source: %s (%s)\n", rep.Source.URL, rep.Source.Type)
	}
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))

	if !rep.Success {
		fmt.Fprintf(w, "\n  %s %s\n\n", f.color(red, "✗ scan failed:"), rep.Error)
		return nil
	}

	score := rep.Summary.SecurityScore
	fmt.Fprintf(w, "\n  Security score: %s\n", f.scoreLabel(score))
	fmt.Fprintf(w, "  Findings: %d\n\n", rep.Summary.TotalFindings)

	f.printDashboard(w, rep.Summary.SeverityBreakdown)

	if len(rep.Findings) > 0 {
		for _, sev := range []types.Severity{
			types.SeverityCritical,
			types.SeverityHigh,
			types.SeverityMedium,
			types.SeverityLow,
		} {
			f.printSeveritySection(w, sev, rep.Findings)
		}
	}

	if len(rep.Recommendations) > 0 {
		fmt.Fprintf(w, "\n  %s\n", f.color(bold, "Recommendations"))
		for _, rec := range rep.Recommendations {
			fmt.Fprintf(w, "    • %s\n", rec)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func (f *TerminalFormatter) scoreLabel(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 80:
		return f.color(green, label)
	case score >= 50:
		return f.color(yellow, label)
	default:
		return f.color(red, label)
	}
}

func (f *TerminalFormatter) printDashboard(w io.Writer, breakdown map[string]int) {
	maxCount := 0
	for _, c := range breakdown {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		fmt.Fprintf(w, "  %s No security issues found.\n", f.color(cyan, "✔"))
		return
	}
	for _, sev := range []string{"critical", "high", "medium", "low"} {
		count := breakdown[sev]
		bar := ""
		if count > 0 {
			bar = strings.Repeat("█", max(count*barWidth/maxCount, 1))
		}
		fmt.Fprintf(w, "  %-8s %3d %s\n", sev, count, f.color(f.severityColor(sev), bar))
	}
}

func (f *TerminalFormatter) printSeveritySection(w io.Writer, sev types.Severity, findings []types.Finding) {
	var section []types.Finding
	for _, fd := range findings {
		if fd.Severity == sev {
			section = append(section, fd)
		}
	}
	if len(section) == 0 {
		return
	}

	name := strings.ToUpper(sev.String())
	fmt.Fprintf(w, "\n  %s\n", f.color(bold+f.severityColor(sev.String()), name))
	for _, fd := range section {
		loc := fd.File
		if fd.Line > 0 {
			loc = fmt.Sprintf("%s:%d", fd.File, fd.Line)
		}
		fmt.Fprintf(w, "    %s  %s  %s\n", f.color(dim, loc), fd.Kind, fd.Description)
		if f.Verbose && fd.Snippet != "" {
			fmt.Fprintf(w, "      %s\n", f.color(dim, fd.Snippet))
		}
	}
}

func (f *TerminalFormatter) severityColor(sev string) string {
	switch sev {
	case "critical", "high":
		return red
	case "medium":
		return yellow
	default:
		return cyan
	}
}
