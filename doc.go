// Package lloyd clusters 2D points with Lloyd's k-means and records how the
// assignment evolves until it converges.
//
// # Quick Start
//
//	rows, _, _ := datasets.Load("blobs")
//	res, err := lloyd.Run(ctx, rows, lloyd.WithClusterSize(10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(res.Clusters), res.Iterations, res.Converged)
//
// # Pipeline
//
// Run normalizes raw rows into the unit square with one shared color, splits
// the points into consecutive groups of the configured cluster size, and then
// loops
//
//	reassign → snapshot → update centroids → compare
//
// until two consecutive centroid states are equal. Reassignment pools every
// point and moves it to the nearest centroid; ties go to the lower cluster
// index. Centroid colors are sticky across iterations.
//
// # Termination
//
// By default two states are equal when their centroid fingerprints (SHA-256
// over the JSON encoded centroids) match. WithTolerance switches to a
// per-centroid distance bound and WithMaxIterations caps the loop; a run that
// hits the cap returns its last state with Converged == false.
//
// # Snapshots
//
// WithSnapshotter receives the post-reassignment set of every iteration. The
// snapshot package provides a Snapshotter that renders SVG documents into any
// blobstore.BlobStore (local directory, memory, MinIO, S3).
package lloyd
