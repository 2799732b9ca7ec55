package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/ingest"
	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/render"
)

var (
	// ErrUndefinedCentroid is returned when a cluster without a centroid
	// reaches a step that needs one.
	ErrUndefinedCentroid = errors.New("undefined centroid")

	// ErrInvalidClusterSize is returned when the cluster size is not positive.
	ErrInvalidClusterSize = errors.New("cluster size must be positive")

	// ErrDegenerateRange is returned when all rows share the same value on an
	// axis, so normalization would divide by zero.
	ErrDegenerateRange = errors.New("degenerate coordinate range")

	// ErrNonFinite is returned when a row holds a NaN or infinite coordinate
	// that normalization would spread to every point.
	ErrNonFinite = errors.New("non-finite coordinate")

	// ErrEmptyInput is returned when there are no rows or points to cluster.
	ErrEmptyInput = errors.New("empty input")
)

// ErrParse indicates a row whose coordinate is not a number.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrParse struct {
	Row   int
	Field string
	Value string
	cause error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("row %d: field %s: invalid number %q", e.Row, e.Field, e.Value)
}

func (e *ErrParse) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kmeans.ErrUndefinedCentroid) {
		return fmt.Errorf("%w: %w", ErrUndefinedCentroid, err)
	}
	var uc *render.ErrUndefinedCentroid
	if errors.As(err, &uc) {
		return fmt.Errorf("%w: %w", ErrUndefinedCentroid, err)
	}
	if errors.Is(err, kmeans.ErrInvalidClusterSize) {
		return fmt.Errorf("%w: %w", ErrInvalidClusterSize, err)
	}
	if errors.Is(err, ingest.ErrEmpty) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}

	var pe *kmeans.ErrParse
	if errors.As(err, &pe) {
		return &ErrParse{Row: pe.Row, Field: pe.Field, Value: pe.Value, cause: err}
	}

	return err
}
