package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveBatchDuration(time.Second)
	r.IncUnitResult(ResultSuccess)
	r.IncBatchOutcome("success")
	r.IncReconcileDeletion()
	r.IncClear()
	r.IncWatchTrigger()
}

func TestPrometheusRecorderCounters(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IncUnitResult(ResultSuccess)
	r.IncUnitResult(ResultSuccess)
	r.IncUnitResult(ResultFailure)
	r.IncReconcileDeletion()
	r.IncClear()
	r.IncWatchTrigger()
	r.ObserveBatchDuration(250 * time.Millisecond)
	r.IncBatchOutcome("failed")

	if got := testutil.ToFloat64(r.unitResults.WithLabelValues(string(ResultSuccess))); got != 2 {
		t.Errorf("unit success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.unitResults.WithLabelValues(string(ResultFailure))); got != 1 {
		t.Errorf("unit failure count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.reconcileDeletions); got != 1 {
		t.Errorf("reconcile deletions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.clears); got != 1 {
		t.Errorf("clears = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.watchTriggers); got != 1 {
		t.Errorf("watch triggers = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.batchOutcome.WithLabelValues("failed")); got != 1 {
		t.Errorf("batch outcome failed = %v, want 1", got)
	}
}

func TestPrometheusRecorderMetricsAreScrapeable(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)
	r.IncClear()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "tonegen_clears_total" {
			found = true
		}
	}
	if !found {
		t.Error("tonegen_clears_total not exposed by the registry the recorder was handed")
	}
}

func TestPrometheusRecorderNilRegistererUsesDefault(t *testing.T) {
	orig := prom.DefaultRegisterer
	defer func() { prom.DefaultRegisterer = orig }()

	reg := prom.NewRegistry()
	prom.DefaultRegisterer = reg

	r := NewPrometheusRecorder(nil)
	r.IncWatchTrigger()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "tonegen_watch_triggers_total" {
			found = true
		}
	}
	if !found {
		t.Error("nil registerer did not register into prometheus.DefaultRegisterer")
	}
}
