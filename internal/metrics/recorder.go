package metrics

import "time"

// ResultLabel enumerates compile-unit result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailure ResultLabel = "failure"
)

// Recorder defines observability hooks for batch and unit metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc. The NoopRecorder allows optional
// injection without nil checks at call sites.
type Recorder interface {
	ObserveBatchDuration(d time.Duration)
	IncUnitResult(result ResultLabel)
	IncBatchOutcome(outcome string) // outcome: success|failed
	IncReconcileDeletion()
	IncClear()
	IncWatchTrigger()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBatchDuration(time.Duration) {}
func (NoopRecorder) IncUnitResult(ResultLabel)          {}
func (NoopRecorder) IncBatchOutcome(string)             {}
func (NoopRecorder) IncReconcileDeletion()              {}
func (NoopRecorder) IncClear()                          {}
func (NoopRecorder) IncWatchTrigger()                   {}
