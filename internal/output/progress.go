package output

import (
	"fmt"

	"github.com/Berachem/reposcan/internal/progress"
)

// SpinnerReporter adapts a Spinner into a progress.Reporter: each scan
// milestone updates the spinner message with the step, percent, and the
// file counter when one is available.
type SpinnerReporter struct {
	sp *Spinner
}

// NewSpinnerReporter wraps an already-started spinner.
func NewSpinnerReporter(sp *Spinner) *SpinnerReporter {
	return &SpinnerReporter{sp: sp}
}

func (r *SpinnerReporter) Report(ev progress.Event) {
	msg := fmt.Sprintf("%s (%d%%)", stepLabel(ev.Step), ev.Percent)

	if cur, ok := ev.Details["current_file"].(string); ok {
		if analyzed, ok2 := ev.Details["files_analyzed"].(int); ok2 {
			total, _ := ev.Details["total_files"].(int)
			msg = fmt.Sprintf("%s (%d%%) %d/%d %s", stepLabel(ev.Step), ev.Percent, analyzed, total, cur)
		}
	}
	r.sp.Update(msg)
}

func stepLabel(step string) string {
	switch step {
	case progress.StepCollecting:
		return "collecting files"
	case progress.StepFileCollection:
		return "files collected"
	case progress.StepStaticAnalysis:
		return "running static rules"
	case progress.StepAIAnalysis:
		return "analyzing files"
	case progress.StepDependencyCheck:
		return "auditing dependencies"
	case progress.StepGeneratingReport:
		return "building report"
	case progress.StepComplete:
		return "done"
	case progress.StepError:
		return "failed"
	default:
		return step
	}
}
