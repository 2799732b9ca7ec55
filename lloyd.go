package lloyd

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/model"
)

type (
	// RawRow is one unparsed input record.
	RawRow = model.RawRow
	// Point is a 2D point with a cluster color tag.
	Point = model.Point
	// Cluster is a group of points and their centroid.
	Cluster = model.Cluster
	// ClusterSet is an ordered list of clusters.
	ClusterSet = model.ClusterSet
	// IterationStats describes one reassign+iterate cycle.
	IterationStats = kmeans.IterationStats
)

// Result is the outcome of a run.
type Result struct {
	// Clusters is the final cluster set.
	Clusters ClusterSet
	// Iterations is the number of reassign+iterate cycles executed.
	Iterations int
	// Converged is false when the iteration cap was reached first.
	Converged bool
	// Fingerprint identifies the final centroid state.
	Fingerprint string
	// Stats has one entry per iteration.
	Stats []IterationStats
	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// Run normalizes rows into the unit square, partitions them into clusters of
// the configured size and iterates until the centroids stop changing.
//
// All rows share one color after normalization; each initial cluster then
// draws its own. Rows are not modified.
func Run(ctx context.Context, rows []RawRow, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	set, err := initFromRows(rows, o)
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordRun(0, false, time.Since(start), err)
		o.logger.LogConverged(ctx, nil, err)
		return nil, err
	}
	return converge(ctx, set, o, start)
}

// RunPoints clusters points that are already in their target coordinate
// space, such as the output of datasets.Generate.
func RunPoints(ctx context.Context, points []Point, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	set, err := initFromPoints(points, o)
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordRun(0, false, time.Since(start), err)
		o.logger.LogConverged(ctx, nil, err)
		return nil, err
	}
	return converge(ctx, set, o, start)
}

func initFromRows(rows []RawRow, o options) (ClusterSet, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	if o.raw {
		return kmeans.InitFromRows(rows, o.clusterSize, o.palette)
	}

	points, err := kmeans.Normalize(rows, o.palette.Next())
	if err != nil {
		return nil, err
	}
	if kmeans.HasNaN(points) {
		if i := kmeans.NonFinite(rows); i >= 0 {
			return nil, fmt.Errorf("%w: row %d", ErrNonFinite, i)
		}
		return nil, ErrDegenerateRange
	}
	return kmeans.InitFromPoints(points, o.clusterSize, o.palette)
}

func initFromPoints(points []Point, o options) (ClusterSet, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	return kmeans.InitFromPoints(points, o.clusterSize, o.palette)
}

func converge(ctx context.Context, set ClusterSet, o options, start time.Time) (res *Result, err error) {
	log := o.logger.WithClusterSize(o.clusterSize)

	defer func() {
		err = translateError(err)
		if err != nil {
			o.metricsCollector.RecordRun(0, false, time.Since(start), err)
			log.LogConverged(ctx, nil, err)
			return
		}
		o.metricsCollector.RecordRun(res.Iterations, res.Converged, res.Duration, nil)
		log.LogConverged(ctx, res, nil)
	}()

	kopts := kmeans.Options{
		Metric:        o.metric,
		MaxIterations: o.maxIterations,
		Tolerance:     o.tolerance,
		Codec:         o.codec,
		Logger:        log.Logger,
		OnIteration: func(s kmeans.IterationStats) {
			log.LogIteration(ctx, s)
			o.metricsCollector.RecordIteration(s.Iteration, s.Moved, s.Duration)
		},
	}
	if o.snapshotter != nil {
		kopts.Snapshotter = kmeans.SnapshotFunc(func(ctx context.Context, i int, set model.ClusterSet) error {
			err := o.snapshotter.Snapshot(ctx, i, set)
			log.LogSnapshot(ctx, i, err)
			return err
		})
	}

	engine, err := kmeans.NewEngine(kopts)
	if err != nil {
		return nil, err
	}

	out, err := engine.Converge(ctx, set)
	if err != nil {
		return nil, err
	}

	return &Result{
		Clusters:    out.Clusters,
		Iterations:  out.Iterations,
		Converged:   out.Converged,
		Fingerprint: out.Fingerprint,
		Stats:       out.Stats,
		Duration:    time.Since(start),
	}, nil
}
