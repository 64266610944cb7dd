package ai

import (
	"strconv"
	"strings"

	"github.com/Berachem/reposcan/internal/types"
)

// noFindingsSentinel means the model saw nothing to report.
const noFindingsSentinel = "NO_VULNERABILITIES_FOUND"

// recordSeparator delimits individual finding records in a reply.
const recordSeparator = "---"

// ParseResponse converts a model reply into findings. The parse is
// tolerant: unknown lines are ignored, missing fields are simply left
// empty on the resulting Finding, and a malformed LINE value is dropped
// rather than treated as an error. A record accumulates until a
// separator; a trailing unterminated record is emitted as long as it
// has a TYPE.
func ParseResponse(response string, file string) []types.Finding {
	if strings.Contains(strings.ToUpper(response), noFindingsSentinel) {
		return nil
	}

	var findings []types.Finding
	current := types.Finding{}
	dirty := false

	flush := func() {
		current.File = file
		findings = append(findings, current)
		current = types.Finding{}
		dirty = false
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "TYPE:"):
			current.Kind = types.Kind(strings.TrimSpace(strings.TrimPrefix(line, "TYPE:")))
			dirty = true
		case strings.HasPrefix(line, "SEVERITY:"):
			current.Severity = types.ParseSeverity(strings.TrimPrefix(line, "SEVERITY:"))
			dirty = true
		case strings.HasPrefix(line, "DESCRIPTION:"):
			current.Description = strings.TrimSpace(strings.TrimPrefix(line, "DESCRIPTION:"))
			dirty = true
		case strings.HasPrefix(line, "LINE:"):
			// A LINE value that does not parse is dropped entirely and
			// does not open a record on its own.
			if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "LINE:"))); err == nil {
				current.Line = n
				dirty = true
			}
		case line == recordSeparator && dirty:
			flush()
		}
	}

	// Trailing record without a final separator.
	if dirty && current.Kind != "" {
		flush()
	}

	return findings
}
