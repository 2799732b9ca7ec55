package kmeans

import (
	"math"
	"strconv"

	"github.com/hupe1980/lloyd/model"
)

// Normalize rescales rows into the unit square using the global min and max
// of each axis. Every point gets the same color. Point IDs are row positions.
//
// The rows are never modified. A zero-width axis range is not guarded and
// produces NaN coordinates.
func Normalize(rows []model.RawRow, color string) ([]model.Point, error) {
	xs, ys, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)

	points := make([]model.Point, len(rows))
	for i := range rows {
		points[i] = model.Point{
			ID:    uint32(i),
			X:     (xs[i] - minX) / (maxX - minX),
			Y:     (ys[i] - minY) / (maxY - minY),
			Color: color,
		}
	}
	return points, nil
}

// HasNaN reports whether any point has a NaN coordinate, which is what
// Normalize produces for a zero-width axis.
func HasNaN(points []model.Point) bool {
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return true
		}
	}
	return false
}

// NonFinite returns the position of the first row with a NaN or infinite
// coordinate, or -1 if there is none. Rows that do not parse are skipped.
func NonFinite(rows []model.RawRow) int {
	for i, r := range rows {
		for _, v := range [2]string{r.D1, r.D2} {
			f, err := strconv.ParseFloat(v, 64)
			if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
				return i
			}
		}
	}
	return -1
}

func parseRows(rows []model.RawRow) ([]float64, []float64, error) {
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		x, err := parseField(i, "d1", r.D1)
		if err != nil {
			return nil, nil, err
		}
		y, err := parseField(i, "d2", r.D2)
		if err != nil {
			return nil, nil, err
		}
		xs[i], ys[i] = x, y
	}
	return xs, ys, nil
}

func parseField(row int, field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ErrParse{Row: row, Field: field, Value: value, cause: err}
	}
	return f, nil
}

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
