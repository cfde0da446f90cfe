package compiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tonegen/internal/metrics"
)

type countingRecorder struct {
	batchDurations int
	unitResults    map[metrics.ResultLabel]int
	batchOutcomes  map[string]int
	reconciles     int
	clears         int
	watchTriggers  int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		unitResults:   map[metrics.ResultLabel]int{},
		batchOutcomes: map[string]int{},
	}
}

func (r *countingRecorder) ObserveBatchDuration(time.Duration)       { r.batchDurations++ }
func (r *countingRecorder) IncUnitResult(result metrics.ResultLabel) { r.unitResults[result]++ }
func (r *countingRecorder) IncBatchOutcome(outcome string)           { r.batchOutcomes[outcome]++ }
func (r *countingRecorder) IncReconcileDeletion()                    { r.reconciles++ }
func (r *countingRecorder) IncClear()                                { r.clears++ }
func (r *countingRecorder) IncWatchTrigger()                         { r.watchTriggers++ }

func TestRecorderObserver(t *testing.T) {
	rec := newCountingRecorder()
	obs := NewRecorderObserver(rec)

	obs.UnitFinished(nil)
	obs.UnitFinished(fmt.Errorf("boom"))
	obs.BatchFinished(&BatchResult{Elapsed: time.Second})
	obs.BatchFinished(&BatchResult{Errors: []*CompilationError{{File: "x"}}})
	obs.ReconcileDeleted("templates/x.java")
	obs.Cleared()
	obs.WatchTriggered()

	require.Equal(t, 1, rec.unitResults[metrics.ResultSuccess])
	require.Equal(t, 1, rec.unitResults[metrics.ResultFailure])
	require.Equal(t, 2, rec.batchDurations)
	require.Equal(t, 1, rec.batchOutcomes["success"])
	require.Equal(t, 1, rec.batchOutcomes["failed"])
	require.Equal(t, 1, rec.reconciles)
	require.Equal(t, 1, rec.clears)
	require.Equal(t, 1, rec.watchTriggers)
}

func TestNewRecorderObserverNil(t *testing.T) {
	require.IsType(t, NoopObserver{}, NewRecorderObserver(nil))
}
