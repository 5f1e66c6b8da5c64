package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// CompileOutcomeLabel is the final status of a compile run.
type CompileOutcomeLabel string

const (
	CompileOutcomeSuccess  CompileOutcomeLabel = "success"
	CompileOutcomeFailed   CompileOutcomeLabel = "failed"
	CompileOutcomeCanceled CompileOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for compile and stage metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveCompileDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncCompileOutcome(outcome CompileOutcomeLabel)
	SetItems(collection string, n int)
	SetRoutes(n int)
	SetListingPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveCompileDuration(time.Duration)       {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncCompileOutcome(CompileOutcomeLabel)      {}
func (NoopRecorder) SetItems(string, int)                       {}
func (NoopRecorder) SetRoutes(int)                              {}
func (NoopRecorder) SetListingPages(int)                        {}
