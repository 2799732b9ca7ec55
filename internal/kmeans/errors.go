package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedCentroid is returned when an operation needs a centroid
	// that was never computed.
	ErrUndefinedCentroid = errors.New("undefined centroid")

	// ErrInvalidClusterSize is returned when the initializer is asked for
	// clusters of non-positive size.
	ErrInvalidClusterSize = errors.New("cluster size must be positive")
)

// ErrParse indicates a row field that is not a number.
type ErrParse struct {
	Row   int
	Field string
	Value string
	cause error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("row %d: field %s: cannot parse %q as number", e.Row, e.Field, e.Value)
}

func (e *ErrParse) Unwrap() error { return e.cause }

func undefinedCentroid(cluster int) error {
	return fmt.Errorf("%w: cluster %d", ErrUndefinedCentroid, cluster)
}
