// Package render serializes a cluster set to a fixed-format SVG document.
//
// The document has a background rectangle, one diamond per point filled
// with the point's color, and one crosshair per centroid stroked with the
// centroid's color. Marker sizes are in pixels and do not scale with the
// canvas. The unit square maps onto the canvas with y pointing up.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hupe1980/lloyd/model"
)

const (
	// Background is the canvas fill color.
	Background = "#ffffff"

	pointRadius    = 3.0
	crosshairSize  = 8.0
	crosshairWidth = 2.0
	untagged       = "#000000"
)

// ErrUndefinedCentroid is returned when a cluster has no centroid to draw.
type ErrUndefinedCentroid struct {
	Cluster int
}

func (e *ErrUndefinedCentroid) Error() string {
	return fmt.Sprintf("render: cluster %d has no centroid", e.Cluster)
}

// SVG renders set onto a width×height canvas.
func SVG(set model.ClusterSet, width, height int) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, set, width, height); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSVG renders set onto a width×height canvas and writes it to w.
// Nothing is written if a centroid is missing.
func WriteSVG(w io.Writer, set model.ClusterSet, width, height int) error {
	centroids, missing := set.Centroids()
	if missing >= 0 {
		return &ErrUndefinedCentroid{Cluster: missing}
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: invalid canvas %dx%d", width, height)
	}

	s := &svg{w: w, width: float64(width), height: float64(height)}
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	s.printf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", width, height, Background)

	for _, c := range set {
		for _, p := range c.Points {
			s.diamond(p)
		}
	}
	for _, c := range centroids {
		s.crosshair(c)
	}

	s.printf("</svg>\n")
	return s.err
}

type svg struct {
	w      io.Writer
	width  float64
	height float64
	err    error
}

func (s *svg) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svg) project(p model.Point) (float64, float64) {
	return p.X * s.width, (1 - p.Y) * s.height
}

func (s *svg) diamond(p model.Point) {
	x, y := s.project(p)
	r := pointRadius
	s.printf(`<polygon points="%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f" fill="%s"/>`+"\n",
		x, y-r, x+r, y, x, y+r, x-r, y, color(p.Color))
}

func (s *svg) crosshair(c model.Point) {
	x, y := s.project(c)
	h := crosshairSize
	s.printf(`<path d="M%.2f %.2f H%.2f M%.2f %.2f V%.2f" stroke="%s" stroke-width="%g"/>`+"\n",
		x-h, y, x+h, x, y-h, y+h, color(c.Color), crosshairWidth)
}

func color(c string) string {
	if c == "" {
		return untagged
	}
	return c
}
