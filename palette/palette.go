// Package palette hands out color tags for clusters.
//
// A color is drawn once per cluster (or once per normalization batch) and
// copied onto every member point. Colors are hex strings such as "#3fa2c8".
package palette

import (
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette yields a fresh color on every call.
// Implementations must be safe for concurrent use.
type Palette interface {
	Next() string
}

// Random draws pleasant random colors from the process-wide source.
type Random struct{}

// Next returns a random color.
func (Random) Next() string {
	return colorful.FastHappyColor().Hex()
}

// Seeded draws random colors from its own source, so a given seed always
// produces the same color sequence.
type Seeded struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSeeded creates a Seeded palette.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rand: rand.New(rand.NewSource(seed))} // nolint gosec
}

// Next returns the next color of the sequence.
func (s *Seeded) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.rand.Float64() * 360
	c := 0.5 + s.rand.Float64()*0.3
	v := 0.6 + s.rand.Float64()*0.3
	return colorful.Hsv(h, c, v).Hex()
}

// Cycle returns the given colors in order, wrapping around.
type Cycle struct {
	mu     sync.Mutex
	colors []string
	next   int
}

// NewCycle creates a Cycle palette. It panics if colors is empty.
func NewCycle(colors ...string) *Cycle {
	if len(colors) == 0 {
		panic("palette: empty cycle")
	}
	return &Cycle{colors: colors}
}

// Next returns the next color of the cycle.
func (c *Cycle) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	col := c.colors[c.next]
	c.next = (c.next + 1) % len(c.colors)
	return col
}
