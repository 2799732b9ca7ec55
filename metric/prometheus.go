// Package metric exports clustering metrics to Prometheus.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/lloyd"
)

const namespace = "lloyd"

var _ lloyd.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements lloyd.MetricsCollector on top of
// client_golang counters and histograms.
type PrometheusCollector struct {
	iterations        prometheus.Counter
	iterationDuration prometheus.Histogram
	moved             prometheus.Counter
	snapshots         *prometheus.CounterVec
	snapshotBytes     prometheus.Counter
	snapshotDuration  prometheus.Histogram
	runs              *prometheus.CounterVec
	runDuration       prometheus.Histogram
	lastIterations    prometheus.Gauge
}

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. Use prometheus.DefaultRegisterer to expose them on the default
// promhttp handler.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Total number of reassign+iterate cycles",
		}),
		iterationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "Latency of one reassign+iterate cycle",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		moved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_moved_total",
			Help:      "Total number of points that changed cluster",
		}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_total",
			Help:      "Total number of snapshot writes",
		}, []string{"status"}),
		snapshotBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_bytes_total",
			Help:      "Total number of snapshot bytes stored",
		}),
		snapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Snapshot render and store latency",
			Buckets:   prometheus.DefBuckets,
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of clustering runs by result",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Clustering run latency",
			Buckets:   prometheus.DefBuckets,
		}),
		lastIterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_iterations",
			Help:      "Iterations executed by the most recent successful run",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.iterations, c.iterationDuration, c.moved,
		c.snapshots, c.snapshotBytes, c.snapshotDuration,
		c.runs, c.runDuration, c.lastIterations,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordIteration implements lloyd.MetricsCollector.
func (c *PrometheusCollector) RecordIteration(_ int, moved uint64, duration time.Duration) {
	c.iterations.Inc()
	c.iterationDuration.Observe(duration.Seconds())
	c.moved.Add(float64(moved))
}

// RecordSnapshot implements lloyd.MetricsCollector.
func (c *PrometheusCollector) RecordSnapshot(bytes int, duration time.Duration, err error) {
	if err != nil {
		c.snapshots.WithLabelValues("error").Inc()
		return
	}
	c.snapshots.WithLabelValues("ok").Inc()
	c.snapshotBytes.Add(float64(bytes))
	c.snapshotDuration.Observe(duration.Seconds())
}

// RecordRun implements lloyd.MetricsCollector.
func (c *PrometheusCollector) RecordRun(iterations int, converged bool, duration time.Duration, err error) {
	c.runDuration.Observe(duration.Seconds())
	switch {
	case err != nil:
		c.runs.WithLabelValues("error").Inc()
		return
	case converged:
		c.runs.WithLabelValues("converged").Inc()
	default:
		c.runs.WithLabelValues("capped").Inc()
	}
	c.lastIterations.Set(float64(iterations))
}
