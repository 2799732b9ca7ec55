// Package ingest reads raw coordinate rows from delimited text.
//
// The first record of every source is a header and is skipped. Source
// columns are remapped onto RawRow fields through Columns, so files whose
// column order differs from (index, d1, d2) load without preprocessing.
package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/compress"
	"github.com/hupe1980/lloyd/model"
)

// ErrEmpty is returned when a source holds no data rows after the header.
var ErrEmpty = errors.New("ingest: no data rows")

// Columns maps source column positions onto RawRow fields.
type Columns struct {
	Index int `yaml:"index" json:"index"`
	D1    int `yaml:"d1" json:"d1"`
	D2    int `yaml:"d2" json:"d2"`
}

// DefaultColumns reads (index, d1, d2) in source order.
var DefaultColumns = Columns{Index: 0, D1: 1, D2: 2}

func (c Columns) width() int {
	return max(c.Index, c.D1, c.D2) + 1
}

// Validate reports negative column positions.
func (c Columns) Validate() error {
	if c.Index < 0 || c.D1 < 0 || c.D2 < 0 {
		return fmt.Errorf("ingest: negative column in %+v", c)
	}
	return nil
}

// ErrShortRecord is returned when a record has fewer fields than the column
// mapping requires.
type ErrShortRecord struct {
	Line   int
	Fields int
	Want   int
}

func (e *ErrShortRecord) Error() string {
	return fmt.Sprintf("ingest: line %d has %d fields, need %d", e.Line, e.Fields, e.Want)
}

// ReadCSV reads comma-separated rows from r.
func ReadCSV(r io.Reader, cols Columns) ([]model.RawRow, error) {
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("ingest: header: %w", err)
	}

	want := cols.width()
	var rows []model.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: %w", err)
		}
		if len(rec) < want {
			line, _ := cr.FieldPos(0)
			return nil, &ErrShortRecord{Line: line, Fields: len(rec), Want: want}
		}
		rows = append(rows, model.RawRow{
			Index: strings.TrimSpace(rec[cols.Index]),
			D1:    strings.TrimSpace(rec[cols.D1]),
			D2:    strings.TrimSpace(rec[cols.D2]),
		})
	}

	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

// Load reads a CSV blob from store. Names ending in .gz, .zst or .lz4 are
// decompressed first.
func Load(ctx context.Context, store blobstore.BlobStore, name string, cols Columns) ([]model.RawRow, error) {
	data, err := blobstore.Get(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", name, err)
	}

	data, err = compress.Decode(data, compress.FromName(name))
	if err != nil {
		return nil, fmt.Errorf("ingest: decompress %s: %w", name, err)
	}

	rows, err := ReadCSV(bytes.NewReader(data), cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}
