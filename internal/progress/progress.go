// Package progress defines the progress event model and the sink
// interface the scanner reports milestones through. Events are emitted
// synchronously on the scanning goroutine; sinks must not block.
package progress

// Step names form a fixed vocabulary; sinks can key UI state off them.
const (
	StepCollecting       = "collecting"
	StepFileCollection   = "file_collection"
	StepStaticAnalysis   = "static_analysis"
	StepAIAnalysis       = "ai_analysis"
	StepDependencyCheck  = "dependency_check"
	StepGeneratingReport = "generating_report"
	StepComplete         = "complete"
	StepError            = "error"
)

// Event is one progress update. Percent is non-decreasing across a
// scan except for StepError, which resets to 0. Events are transient;
// nothing persists them.
type Event struct {
	Step    string
	Percent int
	Details map[string]any
}

// Reporter receives progress events.
type Reporter interface {
	Report(ev Event)
}

// Nop discards all events. It is the default sink.
type Nop struct{}

func (Nop) Report(Event) {}

// Func adapts a plain function into a Reporter.
type Func func(Event)

func (f Func) Report(ev Event) { f(ev) }
