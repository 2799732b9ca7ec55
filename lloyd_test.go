package lloyd_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/blobstore"
	"github.com/hupe1980/lloyd/datasets"
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/palette"
	"github.com/hupe1980/lloyd/snapshot"
)

// Two blobs around (1.5,1.5) and (8.5,8.5), split so that each initial
// cluster holds four points of one blob and two of the other.
func twoBlobRows() []lloyd.RawRow {
	coords := [][2]float64{
		{1, 1}, {2, 1}, {1, 2}, {2, 2}, {9, 9}, {8, 9},
		{9, 8}, {8, 8}, {1.5, 1.5}, {0, 0}, {8.5, 8.5}, {10, 10},
	}
	rows := make([]lloyd.RawRow, len(coords))
	for i, c := range coords {
		rows[i] = lloyd.RawRow{
			Index: strconv.Itoa(i),
			D1:    strconv.FormatFloat(c[0], 'f', -1, 64),
			D2:    strconv.FormatFloat(c[1], 'f', -1, 64),
		}
	}
	return rows
}

func cycle() palette.Palette {
	return palette.NewCycle("#000000", "#e41a1c", "#377eb8")
}

func TestRun_TwoBlobs(t *testing.T) {
	res, err := lloyd.Run(context.Background(), twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithPalette(cycle()),
	)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
	require.Len(t, res.Clusters, 2)
	assert.Equal(t, 12, res.Clusters.Len())

	low, high := res.Clusters[0], res.Clusters[1]
	assert.Equal(t, 6, low.Len())
	assert.Equal(t, 6, high.Len())
	assert.InDelta(t, 0.125, low.Centroid.X, 1e-12)
	assert.InDelta(t, 0.125, low.Centroid.Y, 1e-12)
	assert.InDelta(t, 0.875, high.Centroid.X, 1e-12)
	assert.Equal(t, "#e41a1c", low.Centroid.Color)
	assert.Equal(t, "#377eb8", high.Centroid.Color)

	for _, c := range res.Clusters {
		for _, p := range c.Points {
			assert.Equal(t, c.Centroid.Color, p.Color)
		}
	}

	require.Len(t, res.Stats, 2)
	assert.Equal(t, uint64(4), res.Stats[0].Moved)
	assert.Equal(t, uint64(0), res.Stats[1].Moved)
	assert.Equal(t, res.Stats[1].Fingerprint, res.Fingerprint)
}

func TestRun_DoesNotModifyRows(t *testing.T) {
	rows := twoBlobRows()
	before := append([]lloyd.RawRow(nil), rows...)

	_, err := lloyd.Run(context.Background(), rows, lloyd.WithClusterSize(6))
	require.NoError(t, err)
	assert.Equal(t, before, rows)

	// A second run over the same rows behaves identically.
	a, err := lloyd.Run(context.Background(), rows, lloyd.WithClusterSize(6), lloyd.WithPalette(cycle()))
	require.NoError(t, err)
	b, err := lloyd.Run(context.Background(), rows, lloyd.WithClusterSize(6), lloyd.WithPalette(cycle()))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestRun_Snapshots(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	metrics := &lloyd.BasicMetricsCollector{}

	w := snapshot.NewWriter(store, snapshot.WithDir("blobs"), snapshot.WithRecorder(metrics))
	res, err := lloyd.Run(ctx, twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithSnapshotter(w),
		lloyd.WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	names, err := store.List(ctx, "blobs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"blobs/points_00.svg", "blobs/points_01.svg"}, names)

	stats := metrics.GetStats()
	assert.Equal(t, int64(res.Iterations), stats.IterationCount)
	assert.Equal(t, int64(4), stats.MovedPoints)
	assert.Equal(t, int64(2), stats.SnapshotCount)
	assert.Zero(t, stats.SnapshotErrors)
	assert.Positive(t, stats.SnapshotBytes)
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunsConverged)
}

func TestRun_SnapshotFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := lloyd.Run(context.Background(), twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithSnapshotter(lloyd.SnapshotFunc(func(context.Context, int, lloyd.ClusterSet) error {
			calls++
			return boom
		})),
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRun_MaxIterations(t *testing.T) {
	metrics := &lloyd.BasicMetricsCollector{}
	res, err := lloyd.Run(context.Background(), twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithMaxIterations(1),
		lloyd.WithMetricsCollector(metrics),
	)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Zero(t, metrics.GetStats().RunsConverged)
}

func TestRun_Tolerance(t *testing.T) {
	res, err := lloyd.Run(context.Background(), twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithTolerance(1e-9),
	)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
}

func TestRun_SquaredMetric(t *testing.T) {
	a, err := lloyd.Run(context.Background(), twoBlobRows(), lloyd.WithClusterSize(6), lloyd.WithPalette(cycle()))
	require.NoError(t, err)
	b, err := lloyd.Run(context.Background(), twoBlobRows(), lloyd.WithClusterSize(6), lloyd.WithPalette(cycle()),
		lloyd.WithMetric(distance.MetricSquaredL2))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestRun_RawCoordinates(t *testing.T) {
	res, err := lloyd.Run(context.Background(), twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithRawCoordinates(),
	)
	require.NoError(t, err)
	require.Len(t, res.Clusters, 2)
	assert.InDelta(t, 1.25, res.Clusters[0].Centroid.X, 1e-12)
	assert.InDelta(t, 8.75, res.Clusters[1].Centroid.Y, 1e-12)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		_, err := lloyd.Run(ctx, nil)
		assert.ErrorIs(t, err, lloyd.ErrEmptyInput)
		_, err = lloyd.RunPoints(ctx, nil)
		assert.ErrorIs(t, err, lloyd.ErrEmptyInput)
	})

	t.Run("ClusterSize", func(t *testing.T) {
		_, err := lloyd.Run(ctx, twoBlobRows(), lloyd.WithClusterSize(0))
		assert.ErrorIs(t, err, lloyd.ErrInvalidClusterSize)
		_, err = lloyd.Run(ctx, twoBlobRows(), lloyd.WithClusterSize(-3), lloyd.WithRawCoordinates())
		assert.ErrorIs(t, err, lloyd.ErrInvalidClusterSize)
	})

	t.Run("DegenerateRange", func(t *testing.T) {
		rows := []lloyd.RawRow{{Index: "a", D1: "1", D2: "1"}, {Index: "b", D1: "1", D2: "5"}}
		_, err := lloyd.Run(ctx, rows)
		assert.ErrorIs(t, err, lloyd.ErrDegenerateRange)
	})

	t.Run("NonFinite", func(t *testing.T) {
		for _, v := range []string{"Inf", "-Inf", "NaN"} {
			rows := twoBlobRows()
			rows[5].D1 = v
			_, err := lloyd.Run(ctx, rows, lloyd.WithClusterSize(6))
			require.ErrorIs(t, err, lloyd.ErrNonFinite, v)
			assert.NotErrorIs(t, err, lloyd.ErrDegenerateRange, v)
			assert.Contains(t, err.Error(), "row 5", v)
		}
	})

	t.Run("Parse", func(t *testing.T) {
		rows := twoBlobRows()
		rows[3].D2 = "n/a"
		_, err := lloyd.Run(ctx, rows)
		var pe *lloyd.ErrParse
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 3, pe.Row)
		assert.Equal(t, "d2", pe.Field)
		assert.Equal(t, "n/a", pe.Value)
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := lloyd.Run(ctx, twoBlobRows(), lloyd.WithClusterSize(6))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("RecordsFailedRun", func(t *testing.T) {
		metrics := &lloyd.BasicMetricsCollector{}
		_, err := lloyd.Run(ctx, nil, lloyd.WithMetricsCollector(metrics))
		require.Error(t, err)
		assert.Equal(t, int64(1), metrics.GetStats().RunErrors)
	})
}

func TestRunPoints_Synthetic(t *testing.T) {
	points, err := datasets.Generate(datasets.Synthetic{Centers: 3, PerCenter: 15, Spread: 0.03, Seed: 9})
	require.NoError(t, err)

	res, err := lloyd.RunPoints(context.Background(), points, lloyd.WithClusterSize(15))
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Len(t, res.Clusters, 3)
	assert.Equal(t, 45, res.Clusters.Len())
}

// Non-finite coordinates that bypass normalization stay in the data: the
// affected centroid becomes non-finite, its points cannot be assigned and the
// run still converges.
func TestRun_NonFiniteRawCoordinates(t *testing.T) {
	rows := []lloyd.RawRow{
		{Index: "0", D1: "NaN", D2: "Inf"},
		{Index: "1", D1: "1", D2: "1"},
		{Index: "2", D1: "2", D2: "2"},
		{Index: "3", D1: "3", D2: "3"},
	}

	res, err := lloyd.Run(context.Background(), rows,
		lloyd.WithRawCoordinates(),
		lloyd.WithClusterSize(2),
		lloyd.WithPalette(cycle()),
	)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
	assert.NotEmpty(t, res.Fingerprint)

	require.Len(t, res.Clusters, 2)
	assert.Empty(t, res.Clusters[0].Points)
	assert.True(t, math.IsNaN(res.Clusters[0].Centroid.X))
	assert.True(t, math.IsInf(res.Clusters[0].Centroid.Y, 1))
	assert.Equal(t, 3, res.Clusters[1].Len())
	assert.Equal(t, 2.0, res.Clusters[1].Centroid.X)
	assert.Equal(t, 2.0, res.Clusters[1].Centroid.Y)
}

func TestRunPoints_NonFinite(t *testing.T) {
	points := []lloyd.Point{
		{X: math.NaN(), Y: 0.5},
		{X: 0.1, Y: 0.1},
		{X: 0.2, Y: 0.2},
		{X: 0.9, Y: 0.9},
	}

	res, err := lloyd.RunPoints(context.Background(), points, lloyd.WithClusterSize(2))
	require.NoError(t, err)
	assert.True(t, res.Converged)

	require.Len(t, res.Clusters, 2)
	assert.True(t, math.IsNaN(res.Clusters[0].Centroid.X))
	assert.Empty(t, res.Clusters[0].Points)
	assert.Equal(t, 3, res.Clusters.Len())
}

func TestRun_Datasets(t *testing.T) {
	for _, name := range datasets.Names() {
		t.Run(name, func(t *testing.T) {
			rows, d, err := datasets.Load(name)
			require.NoError(t, err)

			res, err := lloyd.Run(context.Background(), rows, lloyd.WithClusterSize(d.ClusterSize))
			require.NoError(t, err)
			assert.True(t, res.Converged)
			assert.Equal(t, len(rows), res.Clusters.Len())
			for _, c := range res.Clusters {
				require.NotNil(t, c.Centroid)
			}
		})
	}
}

func TestResult_Summary(t *testing.T) {
	res, err := lloyd.Run(context.Background(), twoBlobRows(), lloyd.WithClusterSize(6))
	require.NoError(t, err)

	s := res.Summary("two-blobs")
	assert.Equal(t, "two-blobs", s.Dataset)
	assert.Equal(t, 2, s.Clusters)
	assert.Equal(t, 12, s.Points)
	assert.Equal(t, []int{6, 6}, s.Sizes)
	assert.Len(t, s.Centroids, 2)
	assert.Equal(t, []uint64{4, 0}, s.Moved)
	assert.True(t, s.Converged)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := lloyd.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := lloyd.Run(context.Background(), twoBlobRows(),
		lloyd.WithClusterSize(6),
		lloyd.WithLogger(logger.WithDataset("two-blobs")),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"iteration completed"`)
	assert.Contains(t, out, `"msg":"converged"`)
	assert.Contains(t, out, `"dataset":"two-blobs"`)
	assert.Contains(t, out, `"cluster_size":6`)
}
