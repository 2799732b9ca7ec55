package kmeans

import (
	"context"
	"log/slog"
	"time"

	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/model"
)

// Snapshotter receives the post-reassignment cluster set of every iteration.
type Snapshotter interface {
	Snapshot(ctx context.Context, iteration int, set model.ClusterSet) error
}

// SnapshotFunc adapts a function to a Snapshotter.
type SnapshotFunc func(ctx context.Context, iteration int, set model.ClusterSet) error

// Snapshot calls f.
func (f SnapshotFunc) Snapshot(ctx context.Context, iteration int, set model.ClusterSet) error {
	return f(ctx, iteration, set)
}

// Options configures an Engine.
type Options struct {
	// Metric selects the distance used for nearest-centroid search.
	Metric distance.Metric

	// MaxIterations bounds the number of reassign+iterate cycles.
	// Zero or less means no bound.
	MaxIterations int

	// Tolerance is the largest centroid movement still counted as unchanged.
	// Zero compares centroid fingerprints exactly.
	Tolerance float64

	// Codec encodes centroids for fingerprinting. Defaults to codec.Default.
	Codec codec.Codec

	// Logger receives warnings about dropped points. Defaults to discard.
	Logger *slog.Logger

	// Snapshotter, if set, is called after every reassignment.
	Snapshotter Snapshotter

	// OnIteration, if set, is called after every centroid update.
	OnIteration func(IterationStats)
}

// IterationStats describes one reassign+iterate cycle.
type IterationStats struct {
	Iteration   int
	Points      int
	Moved       uint64
	Fingerprint string
	Converged   bool
	Duration    time.Duration
}

// Result is the outcome of Converge.
type Result struct {
	Clusters    model.ClusterSet
	Iterations  int
	Converged   bool
	Fingerprint string
	Stats       []IterationStats
}

// Converge runs reassign → snapshot → iterate → compare until the centroids
// stop changing. The first comparison is against the initial set, so at
// least one full cycle always runs.
//
// If MaxIterations is reached first, the last state is returned with
// Converged set to false.
func (e *Engine) Converge(ctx context.Context, set model.ClusterSet) (*Result, error) {
	prev, err := e.Fingerprint(set)
	if err != nil {
		return nil, err
	}
	members := MembershipOf(set)

	res := &Result{Clusters: set, Fingerprint: prev}

	for i := 0; e.opts.MaxIterations <= 0 || i < e.opts.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()

		reassigned, err := e.Reassign(set)
		if err != nil {
			return nil, err
		}
		nextMembers := MembershipOf(reassigned)

		if e.opts.Snapshotter != nil {
			if err := e.opts.Snapshotter.Snapshot(ctx, i, reassigned); err != nil {
				return nil, err
			}
		}

		next, err := e.Iterate(reassigned)
		if err != nil {
			return nil, err
		}
		fp, err := e.Fingerprint(next)
		if err != nil {
			return nil, err
		}

		var done bool
		if e.opts.Tolerance > 0 {
			done = e.withinTolerance(set, next, e.opts.Tolerance)
		} else {
			done = fp == prev
		}

		stats := IterationStats{
			Iteration:   i,
			Points:      reassigned.Len(),
			Moved:       Moved(members, nextMembers),
			Fingerprint: fp,
			Converged:   done,
			Duration:    time.Since(start),
		}
		res.Stats = append(res.Stats, stats)
		if e.opts.OnIteration != nil {
			e.opts.OnIteration(stats)
		}

		set, prev, members = next, fp, nextMembers
		res.Clusters = set
		res.Iterations = i + 1
		res.Fingerprint = fp

		if done {
			res.Converged = true
			return res, nil
		}
	}

	return res, nil
}
