// Package model defines the core types shared by the clustering pipeline.
//
// # Data Types
//
//   - RawRow: one input row before normalization (index, d1, d2 as text)
//   - Point: a 2D position in the unit square plus a color tag
//   - Cluster: an ordered point sequence and its centroid
//   - ClusterSet: the ordered sequence of K clusters
//
// A point's Color is a membership tag, not an intrinsic property. It is
// rewritten whenever the point moves to another cluster.
package model
