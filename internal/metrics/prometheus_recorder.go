package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once               sync.Once
	batchDuration      prom.Histogram
	unitResults        *prom.CounterVec
	batchOutcome       *prom.CounterVec
	reconcileDeletions prom.Counter
	clears             prom.Counter
	watchTriggers      prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
// A nil registerer falls back to prometheus.DefaultRegisterer so the metrics
// stay scrapeable through the default handler.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.batchDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "tonegen",
			Name:      "batch_duration_seconds",
			Help:      "Total duration of one compile-all batch",
			Buckets:   prom.DefBuckets,
		})
		pr.unitResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tonegen",
			Name:      "unit_results_total",
			Help:      "Compile unit results by outcome",
		}, []string{"result"})
		pr.batchOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tonegen",
			Name:      "batch_outcomes_total",
			Help:      "Batch outcomes by final status",
		}, []string{"outcome"})
		pr.reconcileDeletions = prom.NewCounter(prom.CounterOpts{
			Namespace: "tonegen",
			Name:      "reconcile_deletions_total",
			Help:      "Stale output artifacts deleted during reconciliation",
		})
		pr.clears = prom.NewCounter(prom.CounterOpts{
			Namespace: "tonegen",
			Name:      "clears_total",
			Help:      "Output tree clear operations",
		})
		pr.watchTriggers = prom.NewCounter(prom.CounterOpts{
			Namespace: "tonegen",
			Name:      "watch_triggers_total",
			Help:      "Recompilations triggered by the source-tree watcher",
		})
		reg.MustRegister(pr.batchDuration, pr.unitResults, pr.batchOutcome, pr.reconcileDeletions, pr.clears, pr.watchTriggers)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveBatchDuration(d time.Duration) {
	p.batchDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncUnitResult(result ResultLabel) {
	p.unitResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncBatchOutcome(outcome string) {
	p.batchOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncReconcileDeletion() { p.reconcileDeletions.Inc() }

func (p *PrometheusRecorder) IncClear() { p.clears.Inc() }

func (p *PrometheusRecorder) IncWatchTrigger() { p.watchTriggers.Inc() }
