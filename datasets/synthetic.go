package datasets

import (
	"errors"
	"math/rand/v2"

	"github.com/hupe1980/lloyd/model"
)

// Synthetic configures Generate.
type Synthetic struct {
	// Centers is the number of blobs.
	Centers int `yaml:"centers"`
	// PerCenter is the number of points drawn around each center.
	PerCenter int `yaml:"per_center"`
	// Spread is the standard deviation of each blob.
	Spread float64 `yaml:"spread"`
	Seed   uint64  `yaml:"seed"`
}

// DefaultSynthetic is used for zero-valued fields.
var DefaultSynthetic = Synthetic{Centers: 3, PerCenter: 20, Spread: 0.08, Seed: 1}

func (s Synthetic) withDefaults() Synthetic {
	if s.Centers <= 0 {
		s.Centers = DefaultSynthetic.Centers
	}
	if s.PerCenter <= 0 {
		s.PerCenter = DefaultSynthetic.PerCenter
	}
	if s.Spread == 0 {
		s.Spread = DefaultSynthetic.Spread
	}
	return s
}

// Generate draws gaussian blobs inside the unit square. Centers are uniform
// in [0,1]²; coordinates that fall outside are clamped to the border.
// Points are emitted center by center, so initializing clusters with
// cluster size PerCenter starts from the true grouping.
func Generate(s Synthetic) ([]model.Point, error) {
	s = s.withDefaults()
	if s.Spread < 0 {
		return nil, errors.New("synthetic: spread must not be negative")
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	points := make([]model.Point, 0, s.Centers*s.PerCenter)
	for range s.Centers {
		cx, cy := rng.Float64(), rng.Float64()
		for range s.PerCenter {
			points = append(points, model.Point{
				ID: uint32(len(points)),
				X:  clamp(cx + rng.NormFloat64()*s.Spread),
				Y:  clamp(cy + rng.NormFloat64()*s.Spread),
			})
		}
	}
	return points, nil
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
