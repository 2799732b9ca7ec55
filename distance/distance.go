package distance

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/lloyd/model"
)

// Euclidean calculates the Euclidean distance between two points.
func Euclidean(a, b model.Point) float64 {
	return floats.Distance([]float64{a.X, a.Y}, []float64{b.X, b.Y}, 2)
}

// SquaredEuclidean calculates the squared Euclidean distance between two points.
func SquaredEuclidean(a, b model.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Mean returns the coordinate-wise arithmetic mean of points.
// The returned point carries no color.
// Returns false if points is empty.
func Mean(points []model.Point) (model.Point, bool) {
	if len(points) == 0 {
		return model.Point{}, false
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return model.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}, true
}

// Metric represents the distance metric used for centroid comparison.
type Metric int

const (
	MetricL2 Metric = iota
	MetricSquaredL2
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricSquaredL2:
		return "SquaredL2"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b model.Point) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return Euclidean, nil
	case MetricSquaredL2:
		return SquaredEuclidean, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
