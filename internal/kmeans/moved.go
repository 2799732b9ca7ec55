package kmeans

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/model"
)

// Membership is the set of point IDs held by each cluster.
type Membership []*roaring.Bitmap

// MembershipOf builds the per-cluster ID bitmaps of set.
func MembershipOf(set model.ClusterSet) Membership {
	m := make(Membership, len(set))
	for i, c := range set {
		bm := roaring.New()
		for _, p := range c.Points {
			bm.Add(p.ID)
		}
		m[i] = bm
	}
	return m
}

// Moved counts the points of next that sit in a different cluster than in
// prev. Both memberships must have the same cluster count.
func Moved(prev, next Membership) uint64 {
	var moved uint64
	for i := range next {
		if i >= len(prev) {
			moved += next[i].GetCardinality()
			continue
		}
		moved += roaring.AndNot(next[i], prev[i]).GetCardinality()
	}
	return moved
}
