package kmeans

import (
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/model"
	"github.com/hupe1980/lloyd/palette"
)

// InitFromPoints partitions points, in order, into consecutive groups of
// clusterSize. Each group draws one color from pal; its points and its
// centroid carry that color. The last group holds the remainder.
//
// Point IDs are reset to input positions.
func InitFromPoints(points []model.Point, clusterSize int, pal palette.Palette) (model.ClusterSet, error) {
	if clusterSize <= 0 {
		return nil, ErrInvalidClusterSize
	}

	set, colors := partition(len(points), clusterSize, pal, func(i int, color string) model.Point {
		p := points[i]
		p.ID = uint32(i)
		p.Color = color
		return p
	})

	for i := range set {
		setCentroid(&set[i], colors[i])
	}
	return set, nil
}

// InitFromRows is the raw-row variant of InitFromPoints. Row values are
// parsed but not normalized.
//
// The centroid takes the color of the cluster's first point rather than the
// cluster color. Both are equal today since every point is tagged with the
// cluster color on insertion.
func InitFromRows(rows []model.RawRow, clusterSize int, pal palette.Palette) (model.ClusterSet, error) {
	if clusterSize <= 0 {
		return nil, ErrInvalidClusterSize
	}

	xs, ys, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	set, _ := partition(len(rows), clusterSize, pal, func(i int, color string) model.Point {
		return model.Point{ID: uint32(i), X: xs[i], Y: ys[i], Color: color}
	})

	for i := range set {
		setCentroid(&set[i], set[i].Points[0].Color)
	}
	return set, nil
}

func partition(n, clusterSize int, pal palette.Palette, point func(i int, color string) model.Point) (model.ClusterSet, []string) {
	k := (n + clusterSize - 1) / clusterSize
	set := make(model.ClusterSet, 0, k)
	colors := make([]string, 0, k)

	for i := 0; i < n; i++ {
		if i%clusterSize == 0 {
			colors = append(colors, pal.Next())
			set = append(set, model.Cluster{Points: make([]model.Point, 0, clusterSize)})
		}
		cur := len(set) - 1
		set[cur].Points = append(set[cur].Points, point(i, colors[cur]))
	}
	return set, colors
}

func setCentroid(c *model.Cluster, color string) {
	m, ok := distance.Mean(c.Points)
	if !ok {
		return
	}
	m.Color = color
	c.Centroid = &m
}
