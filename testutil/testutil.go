package testutil

import (
	"math"
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/lloyd/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformPoints generates points in [0, 1)². IDs are positions.
func (r *RNG) UniformPoints(num int) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, num)
	for i := range points {
		points[i] = model.Point{ID: uint32(i), X: r.rand.Float64(), Y: r.rand.Float64()}
	}
	return points
}

// ClusteredPoints generates points around random centers in the unit
// square. Points are dealt to centers round robin and clamped to [0, 1].
func (r *RNG) ClusteredPoints(num, centers int, spread float64) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	cs := make([][2]float64, centers)
	for i := range cs {
		cs[i] = [2]float64{r.rand.Float64(), r.rand.Float64()}
	}

	points := make([]model.Point, num)
	for i := range points {
		c := cs[i%centers]
		points[i] = model.Point{
			ID: uint32(i),
			X:  clamp(c[0] + r.rand.NormFloat64()*spread),
			Y:  clamp(c[1] + r.rand.NormFloat64()*spread),
		}
	}
	return points
}

// Rows scales unit points onto [lo, hi] and formats them as raw rows, the
// shape CSV ingestion produces.
func Rows(points []model.Point, lo, hi float64) []model.RawRow {
	rows := make([]model.RawRow, len(points))
	for i, p := range points {
		rows[i] = model.RawRow{
			Index: strconv.Itoa(i),
			D1:    strconv.FormatFloat(lo+p.X*(hi-lo), 'f', -1, 64),
			D2:    strconv.FormatFloat(lo+p.Y*(hi-lo), 'f', -1, 64),
		}
	}
	return rows
}

// NearestCentroids returns, per point, the index of the closest centroid by
// exhaustive search. Ties resolve to the lowest index.
func NearestCentroids(points, centroids []model.Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		best, bestDist := -1, math.Inf(1)
		for j, c := range centroids {
			dx, dy := p.X-c.X, p.Y-c.Y
			if d := dx*dx + dy*dy; d < bestDist {
				best, bestDist = j, d
			}
		}
		out[i] = best
	}
	return out
}

// Assignments maps point IDs to the index of the cluster holding them.
func Assignments(set model.ClusterSet) map[uint32]int {
	out := make(map[uint32]int, set.Len())
	for i, c := range set {
		for _, p := range c.Points {
			out[p.ID] = i
		}
	}
	return out
}

// ComputeAgreement returns the fraction of points whose cluster in got
// matches the exact assignment in want. want is indexed by point ID.
func ComputeAgreement(want []int, got map[uint32]int) float64 {
	if len(want) == 0 {
		if len(got) == 0 {
			return 1.0
		}
		return 0.0
	}

	hits := 0
	for id, cluster := range want {
		if c, ok := got[uint32(id)]; ok && c == cluster {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
