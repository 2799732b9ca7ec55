// Package datasets bundles the predefined input datasets and a synthetic
// clustered-point generator.
package datasets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/lloyd/ingest"
	"github.com/hupe1980/lloyd/model"
)

//go:embed data/*.csv
var files embed.FS

// ErrUnknownDataset is returned by Lookup for names not in the registry.
var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset describes a bundled CSV file.
type Dataset struct {
	Name        string
	File        string
	Columns     ingest.Columns
	ClusterSize int
}

var registry = map[string]Dataset{
	"blobs": {
		Name:        "blobs",
		File:        "data/blobs.csv",
		Columns:     ingest.DefaultColumns,
		ClusterSize: 10,
	},
	// customers.csv is stored as (annual_spend, customer, age).
	"customers": {
		Name:        "customers",
		File:        "data/customers.csv",
		Columns:     ingest.Columns{Index: 1, D1: 2, D2: 0},
		ClusterSize: 8,
	},
}

// Names returns the registered dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the dataset registered under name.
func Lookup(name string) (Dataset, error) {
	d, ok := registry[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownDataset, name, Names())
	}
	return d, nil
}

// Rows parses the dataset into raw rows.
func (d Dataset) Rows() ([]model.RawRow, error) {
	data, err := files.ReadFile(d.File)
	if err != nil {
		return nil, err
	}
	rows, err := ingest.ReadCSV(bytes.NewReader(data), d.Columns)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	return rows, nil
}

// Load is shorthand for Lookup followed by Rows.
func Load(name string) ([]model.RawRow, Dataset, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, Dataset{}, err
	}
	rows, err := d.Rows()
	return rows, d, err
}
