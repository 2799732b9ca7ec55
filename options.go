package lloyd

import (
	"context"
	"log/slog"

	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/palette"
)

const (
	// DefaultClusterSize is the number of consecutive points per initial cluster.
	DefaultClusterSize = 6

	// DefaultMaxIterations bounds the convergence loop.
	DefaultMaxIterations = 100
)

// Snapshotter receives the post-reassignment cluster set of every iteration.
// An error aborts the run.
type Snapshotter interface {
	Snapshot(ctx context.Context, iteration int, set ClusterSet) error
}

// SnapshotFunc adapts a function to a Snapshotter.
type SnapshotFunc func(ctx context.Context, iteration int, set ClusterSet) error

// Snapshot calls f.
func (f SnapshotFunc) Snapshot(ctx context.Context, iteration int, set ClusterSet) error {
	return f(ctx, iteration, set)
}

type options struct {
	clusterSize      int
	maxIterations    int
	tolerance        float64
	metric           distance.Metric
	palette          palette.Palette
	codec            codec.Codec
	snapshotter      Snapshotter
	metricsCollector MetricsCollector
	logger           *Logger
	raw              bool
}

// Option configures Run and RunPoints.
type Option func(*options)

// WithClusterSize sets how many consecutive points form one initial cluster.
// The last cluster holds the remainder. Values <= 0 make Run fail with
// ErrInvalidClusterSize.
func WithClusterSize(n int) Option {
	return func(o *options) {
		o.clusterSize = n
	}
}

// WithMaxIterations caps the number of reassign+iterate cycles.
// n <= 0 removes the cap; the loop then only ends on convergence.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance treats two centroid states as equal when every centroid moved
// by at most tol and kept its color. With tol == 0 (default) the states must
// have identical fingerprints.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithMetric selects the distance used for nearest-centroid search.
// Both metrics produce the same assignment; MetricSquaredL2 skips the root.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithPalette sets the color source for clusters.
// If nil is passed, palette.Random is used.
func WithPalette(p palette.Palette) Option {
	return func(o *options) {
		if p == nil {
			p = palette.Random{}
		}
		o.palette = p
	}
}

// WithCodec configures the codec used to fingerprint centroids.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSnapshotter registers a Snapshotter called once per iteration.
func WithSnapshotter(s Snapshotter) Option {
	return func(o *options) {
		o.snapshotter = s
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, _ := lloyd.Run(ctx, rows, lloyd.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, moved: %d\n", stats.IterationCount, stats.MovedPoints)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithRawCoordinates skips normalization: rows are parsed and clustered in
// their source units. Centroids of the initial clusters then take the color
// of their first point.
func WithRawCoordinates() Option {
	return func(o *options) {
		o.raw = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		clusterSize:      DefaultClusterSize,
		maxIterations:    DefaultMaxIterations,
		metric:           distance.MetricL2,
		palette:          palette.Random{},
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
