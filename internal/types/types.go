// Package types defines the shared data model (Finding, Severity, ScanReport)
// used across collector, engines, report, and scanner packages to prevent
// import cycles.
package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Severity is the ordinal risk bucket of a finding.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseSeverity converts a string to a Severity. Unrecognized values
// default to low; they still count toward the score, just at the
// lowest weight.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// MarshalJSON serializes the severity as its lowercase name, which is
// what downstream report consumers expect.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseSeverity(str)
	return nil
}

// Kind is the detection category of a finding.
type Kind string

const (
	KindInjectionPattern     Kind = "injection-pattern"
	KindScriptInjection      Kind = "script-injection"
	KindExposedSecret        Kind = "exposed-secret"
	KindWeakCrypto           Kind = "weak-crypto"
	KindOversizedFile        Kind = "oversized-file"
	KindReadError            Kind = "read-error"
	KindAnalyzerError        Kind = "analyzer-error"
	KindVulnerableDependency Kind = "vulnerable-dependency"
	KindDependencyError      Kind = "dependency-error"
	KindUnknown              Kind = "unknown"
)

// Finding represents a single detected security issue.
//
// The JSON field names keep the wire shape consumed by the report
// renderer: "type", "code" and "code_context" rather than the Go
// field names.
type Finding struct {
	Kind        Kind     `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	File        string   `json:"file"`
	Line        int      `json:"line,omitempty"`
	Snippet     string   `json:"code,omitempty"`
	Context     string   `json:"code_context,omitempty"`
	Package     string   `json:"package,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// Summary aggregates per-scan statistics.
type Summary struct {
	TotalFindings     int            `json:"total_vulnerabilities"`
	SecurityScore     int            `json:"security_score"`
	SeverityBreakdown map[string]int `json:"severity_breakdown"`
	ScanDate          time.Time      `json:"scan_date"`
	Target            string         `json:"target"`
}

// Source identifies where a scanned tree came from when it was not a
// plain local directory (e.g. a cloned git repository).
type Source struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ScanReport is the terminal artifact of a scan. It is built once by
// the report builder and never mutated afterwards; downstream
// consumers (renderers, UIs) treat it as read-only.
type ScanReport struct {
	Summary         Summary   `json:"summary"`
	Findings        []Finding `json:"vulnerabilities"`
	Recommendations []string  `json:"recommendations"`
	Success         bool      `json:"success"`
	Error           string    `json:"error,omitempty"`
	Source          *Source   `json:"source,omitempty"`
}
