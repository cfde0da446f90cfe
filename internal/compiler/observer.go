package compiler

import (
	"git.home.luguber.info/inful/tonegen/internal/metrics"
)

// Observer receives callbacks around batch lifecycle and tree maintenance.
// It abstracts away the metrics.Recorder so future observers (tracing,
// notifications) can hook in without changing orchestration code.
type Observer interface {
	UnitFinished(err error)
	BatchFinished(res *BatchResult)
	ReconcileDeleted(path string)
	Cleared()
	WatchTriggered()
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) UnitFinished(error)         {}
func (NoopObserver) BatchFinished(*BatchResult) {}
func (NoopObserver) ReconcileDeleted(string)    {}
func (NoopObserver) Cleared()                   {}
func (NoopObserver) WatchTriggered()            {}

// recorderObserver adapts metrics.Recorder into an Observer.
type recorderObserver struct {
	rec metrics.Recorder
}

// NewRecorderObserver wraps a metrics Recorder as an Observer.
func NewRecorderObserver(rec metrics.Recorder) Observer {
	if rec == nil {
		return NoopObserver{}
	}
	return recorderObserver{rec: rec}
}

func (r recorderObserver) UnitFinished(err error) {
	if err != nil {
		r.rec.IncUnitResult(metrics.ResultFailure)
		return
	}
	r.rec.IncUnitResult(metrics.ResultSuccess)
}

func (r recorderObserver) BatchFinished(res *BatchResult) {
	r.rec.ObserveBatchDuration(res.Elapsed)
	outcome := "success"
	if len(res.Errors) > 0 {
		outcome = "failed"
	}
	r.rec.IncBatchOutcome(outcome)
}

func (r recorderObserver) ReconcileDeleted(string) { r.rec.IncReconcileDeletion() }

func (r recorderObserver) Cleared() { r.rec.IncClear() }

func (r recorderObserver) WatchTriggered() { r.rec.IncWatchTrigger() }
