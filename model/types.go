package model

import (
	"fmt"
)

// RawRow is a single input row prior to normalization.
// Fields keep their textual form; conversion happens in the normalizer,
// which never writes back to the row.
type RawRow struct {
	Index string
	D1    string
	D2    string
}

// Point is a position in the unit square tagged with the color of the
// cluster it currently belongs to.
type Point struct {
	// ID is the row position the point was created from. It is used for
	// membership bookkeeping only; clusters are never referenced from points.
	ID    uint32  `json:"-"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	if p.Color == "" {
		return fmt.Sprintf("(%g, %g)", p.X, p.Y)
	}
	return fmt.Sprintf("(%g, %g %s)", p.X, p.Y, p.Color)
}

// Cluster owns an ordered point sequence.
// Centroid is nil only before the first computation.
type Cluster struct {
	Points   []Point
	Centroid *Point
}

// Len returns the number of points in the cluster.
func (c Cluster) Len() int {
	return len(c.Points)
}

// ClusterSet is an ordered sequence of exactly K clusters.
type ClusterSet []Cluster

// Len returns the total number of points across all clusters.
func (s ClusterSet) Len() int {
	n := 0
	for _, c := range s {
		n += len(c.Points)
	}
	return n
}

// Points flattens every cluster's points into one slice, in cluster order.
func (s ClusterSet) Points() []Point {
	out := make([]Point, 0, s.Len())
	for _, c := range s {
		out = append(out, c.Points...)
	}
	return out
}

// Centroids returns the centroid of every cluster in order.
// The second return value is the index of the first cluster without a
// centroid, or -1 if all centroids are defined.
func (s ClusterSet) Centroids() ([]Point, int) {
	out := make([]Point, len(s))
	for i, c := range s {
		if c.Centroid == nil {
			return nil, i
		}
		out[i] = *c.Centroid
	}
	return out, -1
}
