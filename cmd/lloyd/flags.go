package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/lloyd/datasets"
	"github.com/hupe1980/lloyd/ingest"
)

// parseArgs builds the configuration from an optional -config file and the
// flags that were set explicitly.
func parseArgs(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("lloyd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "YAML configuration file")
		dataset     = fs.String("dataset", "", "comma separated datasets: "+strings.Join(append(datasets.Names(), synthetic), ", "))
		input       = fs.String("input", "", "CSV file (index,d1,d2 with header) to cluster; .gz/.zst/.lz4 are decompressed")
		clusterSize = fs.Int("cluster-size", 0, "points per initial cluster (0 uses the dataset default)")
		maxIter     = fs.Int("max-iterations", 0, "iteration cap (<= 0 removes the cap)")
		tolerance   = fs.Float64("tolerance", 0, "centroid movement treated as converged (0 compares fingerprints)")
		seed        = fs.Int64("seed", 0, "palette seed (0 picks random colors)")
		out         = fs.String("out", "", "output directory, or key prefix for object stores")
		storeKind   = fs.String("store", "", "output store: local, memory, minio or s3")
		bucket      = fs.String("bucket", "", "bucket for minio and s3 stores")
		endpoint    = fs.String("endpoint", "", "minio endpoint or custom s3 endpoint")
		compression = fs.String("compress", "", "snapshot compression: none, gzip, zstd or lz4")
		codecName   = fs.String("codec", "", "JSON codec for fingerprints and summaries: json or go-json")
		report      = fs.Bool("report", false, "write an HTML report per dataset")
		metricsAddr = fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
		concurrency = fs.Int64("concurrency", 0, "datasets clustered at once")
		ioLimit     = fs.Int64("io-limit", 0, "snapshot write limit in bytes per second (0 is unlimited)")
		logLevel    = fs.String("log-level", "", "debug, info, warn or error")
		logFormat   = fs.String("log-format", "", "text or json")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			cfg.Datasets = splitList(*dataset)
		case "input":
			cfg.Inputs = append(cfg.Inputs, Input{
				Name:    strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input)),
				Path:    *input,
				Columns: ingest.DefaultColumns,
			})
			if !isSet(fs, "dataset") {
				cfg.Datasets = nil
			}
		case "cluster-size":
			cfg.ClusterSize = *clusterSize
		case "max-iterations":
			cfg.MaxIterations = *maxIter
		case "tolerance":
			cfg.Tolerance = *tolerance
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.Output.Dir = *out
		case "store":
			cfg.Output.Kind = *storeKind
		case "bucket":
			cfg.Output.Bucket = *bucket
		case "endpoint":
			cfg.Output.Endpoint = *endpoint
		case "compress":
			cfg.Compression = *compression
		case "codec":
			cfg.Codec = *codecName
		case "report":
			cfg.Report = *report
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "concurrency":
			cfg.Resources.MaxConcurrentRuns = *concurrency
		case "io-limit":
			cfg.Resources.IOLimitBytesPerSec = *ioLimit
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})

	if cfg.Output.AccessKey == "" {
		cfg.Output.AccessKey = os.Getenv("LLOYD_ACCESS_KEY")
	}
	if cfg.Output.SecretKey == "" {
		cfg.Output.SecretKey = os.Getenv("LLOYD_SECRET_KEY")
	}

	return cfg, cfg.Validate()
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
