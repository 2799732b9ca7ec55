// Command lloyd clusters bundled or user supplied 2D datasets with Lloyd's
// k-means, storing one SVG snapshot per iteration.
//
// Usage:
//
//	lloyd [-config lloyd.yaml] [-dataset blobs,customers] [-input points.csv]
//	      [-store local|memory|minio|s3] [-out dir] [-compress zstd] [-report]
//
// For every dataset it prints the number of clusters, the number of points
// in the first cluster and the first cluster's centroid.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/metric"
	"github.com/hupe1980/lloyd/resource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "lloyd: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	logger := cfg.Log.logger()

	store, err := openStore(ctx, cfg.Output)
	if err != nil {
		return err
	}

	var metrics lloyd.MetricsCollector = &lloyd.BasicMetricsCollector{}
	if cfg.MetricsAddr != "" {
		pc, err := metric.NewPrometheusCollector(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		metrics = pc

		srv := serveMetrics(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	c, _ := codec.ByName(cfg.Codec)
	r := &runner{
		cfg:       cfg,
		store:     store,
		resources: resource.NewController(cfg.Resources),
		metrics:   metrics,
		logger:    logger,
		codec:     c,
	}

	outcomes, err := r.runAll(ctx)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		printOutcome(stdout, o)
	}

	if basic, ok := metrics.(*lloyd.BasicMetricsCollector); ok {
		s := basic.GetStats()
		logger.Info("done",
			"runs", s.RunCount,
			"iterations", s.IterationCount,
			"snapshots", s.SnapshotCount,
			"snapshot_bytes", s.SnapshotBytes,
		)
	}
	return nil
}

func serveMetrics(addr string, logger *lloyd.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}
