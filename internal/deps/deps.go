// Package deps audits well-known dependency manifests at the scan root
// against a static table of packages with known-vulnerable releases.
package deps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Berachem/reposcan/internal/types"
	"go.uber.org/zap"
)

// manifest pairs a well-known dependency file name with its ecosystem.
type manifest struct {
	name      string
	ecosystem string
}

// manifests is probed in this order so audit output is deterministic.
// Only the Python manifest is deeply parsed today; the others are
// detected for presence (extension point for further ecosystems).
var manifests = []manifest{
	{"requirements.txt", "python"},
	{"package.json", "npm"},
	{"pom.xml", "maven"},
	{"Gemfile", "ruby"},
}

// vulnerablePackages maps Python package names to the version ranges
// with known vulnerabilities. Matching is by package name only — any
// pinned version of a listed package is flagged. The ranges are kept
// for a future real range comparison; today they are informational.
var vulnerablePackages = map[string][]string{
	"django":   {"<3.2.13", "<4.0.4"},
	"flask":    {"<2.2.0"},
	"requests": {"<2.28.0"},
	"urllib3":  {"<1.26.5"},
}

// Auditor inspects dependency manifests for vulnerable packages.
type Auditor struct {
	log *zap.SugaredLogger
}

// NewAuditor creates an Auditor. A nil logger is replaced by a no-op.
func NewAuditor(log *zap.SugaredLogger) *Auditor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Auditor{log: log}
}

// Audit scans the manifests present at root. A manifest that exists but
// cannot be read yields a dependency-error Finding and the audit moves
// on; nothing here aborts a scan.
func (a *Auditor) Audit(root string) []types.Finding {
	var findings []types.Finding

	for _, m := range manifests {
		path := filepath.Join(root, m.name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			findings = append(findings, types.Finding{
				Kind:        types.KindDependencyError,
				Severity:    types.SeverityLow,
				Description: fmt.Sprintf("failed to read dependency manifest: %v", err),
				File:        m.name,
			})
			continue
		}

		switch m.ecosystem {
		case "python":
			findings = append(findings, a.auditPython(m.name, string(data))...)
		default:
			a.log.Debugw("dependency manifest detected, ecosystem not parsed",
				"manifest", m.name, "ecosystem", m.ecosystem)
		}
	}

	return findings
}

// auditPython parses name==version lines and flags packages present in
// the vulnerable table.
func (a *Auditor) auditPython(file, content string) []types.Finding {
	var findings []types.Finding

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "==") {
			continue
		}
		name, version, _ := strings.Cut(line, "==")
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)

		if _, ok := vulnerablePackages[strings.ToLower(name)]; !ok {
			continue
		}
		findings = append(findings, types.Finding{
			Kind:        types.KindVulnerableDependency,
			Severity:    types.SeverityMedium,
			Description: fmt.Sprintf("Package %s version %s may have known vulnerabilities", name, version),
			File:        file,
			Package:     name,
			Version:     version,
		})
	}

	return findings
}
