package engine

import (
	"time"

	"github.com/huichen/ocrmatch/types"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type engineMetrics struct {
	documents  *prometheus.CounterVec
	strategies *prometheus.CounterVec
	failures   prometheus.Counter
	latency    prometheus.Histogram
}

// 创建指标，registerer为nil时只在内存中计数
func newEngineMetrics(registerer prometheus.Registerer) (*engineMetrics, error) {
	metrics := &engineMetrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocrmatch",
			Name:      "documents_total",
			Help:      "Matched documents by bucket outcome.",
		}, []string{"outcome", "reason"}),
		strategies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ocrmatch",
			Name:      "strategy_total",
			Help:      "Matched documents by winning strategy.",
		}, []string{"strategy"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ocrmatch",
			Name:      "document_failures_total",
			Help:      "Documents that could not be processed.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ocrmatch",
			Name:      "document_duration_seconds",
			Help:      "Time from submission to classification of one document.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
	if registerer == nil {
		return metrics, nil
	}
	for _, collector := range []prometheus.Collector{
		metrics.documents, metrics.strategies, metrics.failures, metrics.latency,
	} {
		if err := registerer.Register(collector); err != nil {
			return nil, errors.Wrap(err, "register metrics")
		}
	}
	return metrics, nil
}

func (metrics *engineMetrics) observe(result types.DocumentResult, elapsed time.Duration) {
	metrics.documents.WithLabelValues(string(result.Bucket.Outcome), string(result.Bucket.Reason)).Inc()
	metrics.strategies.WithLabelValues(string(result.Match.Strategy)).Inc()
	metrics.latency.Observe(elapsed.Seconds())
}
