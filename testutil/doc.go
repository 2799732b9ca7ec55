// Package testutil provides testing utilities for lloyd.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random points and raw rows, computing
// the exact nearest centroid of every point, and verifying assignments.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100)            // uniform in [0, 1)²
//	pts = rng.ClusteredPoints(100, 3, 0.05)  // three blobs
//	rows := testutil.Rows(pts, 0, 500)       // scaled back to raw CSV text
//
// # Ground Truth
//
//	want := testutil.NearestCentroids(points, centroids)
//	agreement := testutil.ComputeAgreement(want, got)
package testutil
