package kmeans

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"math"

	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/model"
)

// Engine runs the reassignment and centroid-update steps.
type Engine struct {
	opts Options
	dist distance.Func
}

// NewEngine creates an Engine. Zero-valued options fall back to defaults.
func NewEngine(opts Options) (*Engine, error) {
	dist, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{opts: opts, dist: dist}, nil
}

// Reassign pools every point of set and moves each one to the cluster with
// the nearest centroid. Ties go to the lowest cluster index. A moved point
// takes the color of its new centroid.
//
// Cluster membership is rebuilt from scratch; centroids are carried over
// unchanged. If set has no clusters every point is logged and dropped.
func (e *Engine) Reassign(set model.ClusterSet) (model.ClusterSet, error) {
	centroids, missing := set.Centroids()
	if missing >= 0 {
		return nil, undefinedCentroid(missing)
	}

	out := make(model.ClusterSet, len(set))
	for i := range set {
		out[i] = model.Cluster{
			Points:   make([]model.Point, 0, len(set[i].Points)),
			Centroid: set[i].Centroid,
		}
	}

	for _, p := range set.Points() {
		best := e.nearest(p, centroids)
		if best < 0 {
			e.opts.Logger.Warn("point could not be assigned to any cluster",
				"id", p.ID,
				"x", p.X,
				"y", p.Y,
				"clusters", len(centroids),
			)
			continue
		}
		p.Color = centroids[best].Color
		out[best].Points = append(out[best].Points, p)
	}

	return out, nil
}

func (e *Engine) nearest(p model.Point, centroids []model.Point) int {
	best := -1
	minDist := math.Inf(1)
	for j, c := range centroids {
		if d := e.dist(p, c); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

// Iterate recomputes each centroid as the mean of the cluster's current
// points. The centroid keeps the color it had before. A cluster left empty
// by reassignment keeps its previous centroid.
//
// The returned set shares point slices with set.
func (e *Engine) Iterate(set model.ClusterSet) (model.ClusterSet, error) {
	out := make(model.ClusterSet, len(set))
	for i, c := range set {
		if c.Centroid == nil {
			return nil, undefinedCentroid(i)
		}
		next := *c.Centroid
		if m, ok := distance.Mean(c.Points); ok {
			next.X, next.Y = m.X, m.Y
		} else {
			e.opts.Logger.Debug("empty cluster keeps its centroid", "cluster", i)
		}
		out[i] = model.Cluster{Points: c.Points, Centroid: &next}
	}
	return out, nil
}

// Fingerprint returns the hex SHA-256 digest of the JSON-encoded centroid list.
func (e *Engine) Fingerprint(set model.ClusterSet) (string, error) {
	return Fingerprint(set, e.opts.Codec)
}

// Fingerprint returns the hex SHA-256 digest of the centroid list encoded
// with c. Equal fingerprints mean equal coordinates and colors, in order.
//
// NaN and infinite coordinates are encoded as null, so a degenerate
// centroid still has a fingerprint.
func Fingerprint(set model.ClusterSet, c codec.Codec) (string, error) {
	centroids, missing := set.Centroids()
	if missing >= 0 {
		return "", undefinedCentroid(missing)
	}
	if c == nil {
		c = codec.Default
	}

	entries := make([]fingerprintEntry, len(centroids))
	for i, p := range centroids {
		entries[i] = fingerprintEntry{X: finite(p.X), Y: finite(p.Y), Color: p.Color}
	}
	b, err := c.Marshal(entries)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

type fingerprintEntry struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Color string   `json:"color,omitempty"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// withinTolerance reports whether every centroid of b kept the color of its
// counterpart in a and lies within tol of it.
func (e *Engine) withinTolerance(a, b model.ClusterSet, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i].Centroid, b[i].Centroid
		if ca == nil || cb == nil {
			return false
		}
		if ca.Color != cb.Color || distance.Euclidean(*ca, *cb) > tol {
			return false
		}
	}
	return true
}
