// Package distance provides the numeric helpers shared by the clustering
// engine: point-to-point distances and coordinate-wise means.
//
// # Supported Metrics
//
//   - MetricL2: Euclidean distance sqrt(dx²+dy²) (default)
//   - MetricSquaredL2: Squared Euclidean distance
//
// Both metrics rank candidates identically, so nearest-centroid assignment
// does not depend on the choice. Squared L2 skips the square root.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	c, ok := distance.Mean(points)
package distance
