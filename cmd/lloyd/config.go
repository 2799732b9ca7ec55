package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/compress"
	"github.com/hupe1980/lloyd/datasets"
	"github.com/hupe1980/lloyd/ingest"
	"github.com/hupe1980/lloyd/resource"
	"github.com/hupe1980/lloyd/snapshot"
)

// synthetic is the dataset name that selects datasets.Generate.
const synthetic = "synthetic"

// Config is the CLI configuration. It is read from YAML and then
// overridden by explicitly set flags.
type Config struct {
	Datasets      []string           `yaml:"datasets"`
	Inputs        []Input            `yaml:"inputs"`
	ClusterSize   int                `yaml:"cluster_size"`
	MaxIterations int                `yaml:"max_iterations"`
	Tolerance     float64            `yaml:"tolerance"`
	Seed          int64              `yaml:"seed"`
	Canvas        Canvas             `yaml:"canvas"`
	Compression   string             `yaml:"compression"`
	Codec         string             `yaml:"codec"`
	Report        bool               `yaml:"report"`
	Summary       bool               `yaml:"summary"`
	Output        Output             `yaml:"output"`
	Resources     resource.Config    `yaml:"resources"`
	Synthetic     datasets.Synthetic `yaml:"synthetic"`
	MetricsAddr   string             `yaml:"metrics_addr"`
	Log           Log                `yaml:"log"`
}

// Input is a CSV file on the local file system.
type Input struct {
	Name    string         `yaml:"name"`
	Path    string         `yaml:"path"`
	Columns ingest.Columns `yaml:"columns"`
}

// Canvas is the snapshot size in pixels.
type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Output selects where snapshots, summaries and reports are stored.
type Output struct {
	// Kind is one of local, memory, minio or s3.
	Kind string `yaml:"kind"`
	// Dir is the local directory, or the key prefix for object stores.
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig clusters the bundled blobs dataset into ./out.
func DefaultConfig() Config {
	return Config{
		Datasets:      []string{"blobs"},
		MaxIterations: lloyd.DefaultMaxIterations,
		Canvas:        Canvas{Width: snapshot.DefaultWidth, Height: snapshot.DefaultHeight},
		Compression:   "none",
		Codec:         codec.Default.Name(),
		Summary:       true,
		Output:        Output{Kind: "local", Dir: "out"},
		Resources:     resource.Config{MaxConcurrentRuns: 1},
		Synthetic:     datasets.DefaultSynthetic,
		Log:           Log{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration before any work starts.
func (c Config) Validate() error {
	var errs []error

	if len(c.Datasets) == 0 && len(c.Inputs) == 0 {
		errs = append(errs, errors.New("no datasets or inputs"))
	}
	for _, name := range c.Datasets {
		if name == synthetic {
			continue
		}
		if _, err := datasets.Lookup(name); err != nil {
			errs = append(errs, err)
		}
	}
	for i, in := range c.Inputs {
		if in.Path == "" {
			errs = append(errs, fmt.Errorf("inputs[%d]: path is required", i))
		}
		if err := in.Columns.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("inputs[%d]: %w", i, err))
		}
	}
	if c.ClusterSize < 0 {
		errs = append(errs, fmt.Errorf("cluster_size must not be negative, got %d", c.ClusterSize))
	}
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("tolerance must not be negative, got %g", c.Tolerance))
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid canvas %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if _, err := compress.Parse(c.Compression); err != nil {
		errs = append(errs, err)
	}
	if _, ok := codec.ByName(c.Codec); !ok {
		errs = append(errs, fmt.Errorf("unknown codec %q", c.Codec))
	}
	switch c.Output.Kind {
	case "", "local", "memory":
	case "minio", "s3":
		if c.Output.Bucket == "" {
			errs = append(errs, fmt.Errorf("output kind %s needs a bucket", c.Output.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown output kind %q", c.Output.Kind))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (l Log) level() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

func (l Log) logger() *lloyd.Logger {
	lvl, _ := l.level()
	if strings.EqualFold(l.Format, "json") {
		return lloyd.NewJSONLogger(lvl)
	}
	return lloyd.NewTextLogger(lvl)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
