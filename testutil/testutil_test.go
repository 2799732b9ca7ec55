package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/model"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	pts := rng.UniformPoints(32)

	require.Len(t, pts, 32)
	for i, p := range pts {
		assert.Equal(t, uint32(i), p.ID)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 1.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 1.0)
	}
}

func TestClusteredPoints(t *testing.T) {
	rng := NewRNG(4711)

	pts := rng.ClusteredPoints(100, 5, 0.5)

	require.Len(t, pts, 100)
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 1.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 1.0)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	p1 := rng.UniformPoints(4)

	rng.Reset()
	p2 := rng.UniformPoints(4)

	assert.Equal(t, p1, p2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestRows(t *testing.T) {
	rows := Rows([]model.Point{{X: 0, Y: 1}, {X: 0.5, Y: 0.25}}, 10, 20)

	assert.Equal(t, []model.RawRow{
		{Index: "0", D1: "10", D2: "20"},
		{Index: "1", D1: "15", D2: "12.5"},
	}, rows)
}

func TestNearestCentroids(t *testing.T) {
	points := []model.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}}
	centroids := []model.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}

	// The midpoint is equidistant and goes to the lower index.
	assert.Equal(t, []int{0, 1, 0}, NearestCentroids(points, centroids))
}

func TestComputeAgreement(t *testing.T) {
	want := []int{0, 1, 1, 0}

	assert.InDelta(t, 1.0, ComputeAgreement(want, map[uint32]int{0: 0, 1: 1, 2: 1, 3: 0}), 1e-12)
	assert.InDelta(t, 0.5, ComputeAgreement(want, map[uint32]int{0: 0, 1: 0, 2: 1}), 1e-12)
	assert.InDelta(t, 1.0, ComputeAgreement(nil, nil), 1e-12)
	assert.InDelta(t, 0.0, ComputeAgreement(nil, map[uint32]int{0: 0}), 1e-12)
}

func TestAssignments(t *testing.T) {
	set := model.ClusterSet{
		{Points: []model.Point{{ID: 2}, {ID: 0}}},
		{Points: []model.Point{{ID: 1}}},
	}

	assert.Equal(t, map[uint32]int{0: 0, 1: 1, 2: 0}, Assignments(set))
}
