package main

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/compress"
	"github.com/hupe1980/lloyd/datasets"
	"github.com/hupe1980/lloyd/ingest"
	"github.com/hupe1980/lloyd/palette"
	"github.com/hupe1980/lloyd/report"
	"github.com/hupe1980/lloyd/resource"
	"github.com/hupe1980/lloyd/snapshot"
)

// job is one dataset to cluster. Exactly one of rows and points is set by load.
type job struct {
	name        string
	clusterSize int
	load        func(ctx context.Context) (rows []lloyd.RawRow, points []lloyd.Point, err error)
}

type outcome struct {
	name   string
	result *lloyd.Result
}

type runner struct {
	cfg       Config
	store     blobstore.BlobStore
	resources *resource.Controller
	metrics   lloyd.MetricsCollector
	logger    *lloyd.Logger
	codec     codec.Codec
}

func (r *runner) jobs() []job {
	var jobs []job
	for _, name := range r.cfg.Datasets {
		if name == synthetic {
			s := r.cfg.Synthetic
			jobs = append(jobs, job{
				name:        synthetic,
				clusterSize: s.PerCenter,
				load: func(context.Context) ([]lloyd.RawRow, []lloyd.Point, error) {
					points, err := datasets.Generate(s)
					return nil, points, err
				},
			})
			continue
		}

		jobs = append(jobs, job{
			name: name,
			load: func(context.Context) ([]lloyd.RawRow, []lloyd.Point, error) {
				rows, _, err := datasets.Load(name)
				return rows, nil, err
			},
			clusterSize: clusterSizeOf(name),
		})
	}

	for _, in := range r.cfg.Inputs {
		name := in.Name
		if name == "" {
			name = filepath.Base(in.Path)
		}
		jobs = append(jobs, job{
			name: name,
			load: func(ctx context.Context) ([]lloyd.RawRow, []lloyd.Point, error) {
				src := blobstore.NewLocalStore(filepath.Dir(in.Path))
				rows, err := ingest.Load(ctx, src, filepath.Base(in.Path), in.Columns)
				return rows, nil, err
			},
		})
	}
	return jobs
}

func clusterSizeOf(name string) int {
	d, err := datasets.Lookup(name)
	if err != nil {
		return 0
	}
	return d.ClusterSize
}

// runAll clusters every job, at most Resources.MaxConcurrentRuns at a time.
// Outcomes are returned in job order. The first failure cancels the rest.
func (r *runner) runAll(ctx context.Context) ([]outcome, error) {
	jobs := r.jobs()
	outcomes := make([]outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			if err := r.resources.AcquireRun(ctx); err != nil {
				return err
			}
			defer r.resources.ReleaseRun()

			res, err := r.run(ctx, i, j)
			if err != nil {
				return fmt.Errorf("%s: %w", j.name, err)
			}
			outcomes[i] = outcome{name: j.name, result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (r *runner) run(ctx context.Context, i int, j job) (*lloyd.Result, error) {
	comp, err := compress.Parse(r.cfg.Compression)
	if err != nil {
		return nil, err
	}

	logger := r.logger.WithDataset(j.name)
	writer := snapshot.NewWriter(r.store,
		snapshot.WithDir(j.name),
		snapshot.WithCanvas(r.cfg.Canvas.Width, r.cfg.Canvas.Height),
		snapshot.WithCompression(comp),
		snapshot.WithResourceController(r.resources),
		snapshot.WithRecorder(r.metrics),
		snapshot.WithLogger(logger.Logger),
	)

	clusterSize := r.cfg.ClusterSize
	if clusterSize == 0 {
		clusterSize = j.clusterSize
	}
	if clusterSize == 0 {
		clusterSize = lloyd.DefaultClusterSize
	}

	var pal palette.Palette = palette.Random{}
	if r.cfg.Seed != 0 {
		pal = palette.NewSeeded(r.cfg.Seed + int64(i))
	}

	opts := []lloyd.Option{
		lloyd.WithClusterSize(clusterSize),
		lloyd.WithMaxIterations(r.cfg.MaxIterations),
		lloyd.WithTolerance(r.cfg.Tolerance),
		lloyd.WithPalette(pal),
		lloyd.WithCodec(r.codec),
		lloyd.WithSnapshotter(writer),
		lloyd.WithMetricsCollector(r.metrics),
		lloyd.WithLogger(logger),
	}

	rows, points, err := j.load(ctx)
	if err != nil {
		return nil, err
	}

	var res *lloyd.Result
	if points != nil {
		res, err = lloyd.RunPoints(ctx, points, opts...)
	} else {
		res, err = lloyd.Run(ctx, rows, opts...)
	}
	if err != nil {
		return nil, err
	}

	if r.cfg.Summary {
		data, err := r.codec.Marshal(res.Summary(j.name))
		if err != nil {
			return nil, err
		}
		if err := r.store.Put(ctx, path.Join(j.name, "summary.json"), data); err != nil {
			return nil, err
		}
	}
	if r.cfg.Report {
		html, err := report.HTML(j.name, res)
		if err != nil {
			return nil, err
		}
		if err := r.store.Put(ctx, path.Join(j.name, "report.html"), html); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// printOutcome writes the cluster count, the first cluster's point count and
// the first cluster's centroid.
func printOutcome(w io.Writer, o outcome) {
	res := o.result
	fmt.Fprintf(w, "%s:\n", o.name)
	fmt.Fprintf(w, "  clusters: %d\n", len(res.Clusters))
	if len(res.Clusters) == 0 {
		return
	}
	first := res.Clusters[0]
	fmt.Fprintf(w, "  first cluster points: %d\n", first.Len())
	if first.Centroid != nil {
		fmt.Fprintf(w, "  first cluster centroid: %s\n", first.Centroid)
	}
	fmt.Fprintf(w, "  iterations: %d (converged: %t)\n", res.Iterations, res.Converged)
}
