// Package snapshot renders each post-reassignment cluster set to an SVG
// document and stores it in a blobstore.
//
// Snapshot i is named points_0{i}.svg, followed by the compression suffix
// when compression is enabled. Indices past 9 keep the single leading zero,
// so points_010.svg sorts before points_02.svg.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/compress"
	"github.com/hupe1980/lloyd/model"
	"github.com/hupe1980/lloyd/render"
	"github.com/hupe1980/lloyd/resource"
)

const (
	// DefaultWidth is the canvas width used when none is configured.
	DefaultWidth = 800
	// DefaultHeight is the canvas height used when none is configured.
	DefaultHeight = 800
)

// Recorder receives one call per stored snapshot.
type Recorder interface {
	RecordSnapshot(bytes int, duration time.Duration, err error)
}

// Writer stores rendered snapshots. It is safe for concurrent use when
// every run uses its own Dir.
type Writer struct {
	store       blobstore.BlobStore
	dir         string
	width       int
	height      int
	compression compress.Type
	resources   *resource.Controller
	recorder    Recorder
	logger      *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithDir places snapshots under dir inside the store.
func WithDir(dir string) Option {
	return func(w *Writer) { w.dir = dir }
}

// WithCanvas sets the SVG canvas size.
func WithCanvas(width, height int) Option {
	return func(w *Writer) {
		w.width = width
		w.height = height
	}
}

// WithCompression compresses every snapshot with t.
func WithCompression(t compress.Type) Option {
	return func(w *Writer) { w.compression = t }
}

// WithResourceController throttles snapshot writes through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(w *Writer) { w.resources = rc }
}

// WithRecorder reports every write to r.
func WithRecorder(r Recorder) Option {
	return func(w *Writer) { w.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// NewWriter creates a snapshot writer on top of store.
func NewWriter(store blobstore.BlobStore, opts ...Option) *Writer {
	w := &Writer{
		store:  store,
		width:  DefaultWidth,
		height: DefaultHeight,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the blob name of snapshot i.
func (w *Writer) Name(i int) string {
	return path.Join(w.dir, fmt.Sprintf("points_0%d.svg", i)) + w.compression.Suffix()
}

// Snapshot renders set and stores it as snapshot i. Any failure aborts the
// caller's run.
func (w *Writer) Snapshot(ctx context.Context, i int, set model.ClusterSet) (err error) {
	start := time.Now()
	size := 0
	defer func() {
		if w.recorder != nil {
			w.recorder.RecordSnapshot(size, time.Since(start), err)
		}
	}()

	data, err := render.SVG(set, w.width, w.height)
	if err != nil {
		return fmt.Errorf("snapshot %d: %w", i, err)
	}

	data, err = compress.Encode(data, w.compression)
	if err != nil {
		return fmt.Errorf("snapshot %d: %w", i, err)
	}
	size = len(data)

	if err := w.resources.AcquireIO(ctx, size); err != nil {
		return fmt.Errorf("snapshot %d: %w", i, err)
	}

	name := w.Name(i)
	if err := w.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("snapshot %d: put %s: %w", i, name, err)
	}

	w.logger.LogAttrs(ctx, slog.LevelDebug, "snapshot stored",
		slog.String("name", name),
		slog.Int("bytes", size),
	)
	return nil
}
