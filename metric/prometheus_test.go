package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	c.RecordIteration(0, 4, time.Millisecond)
	c.RecordIteration(1, 0, time.Millisecond)
	c.RecordSnapshot(512, time.Millisecond, nil)
	c.RecordSnapshot(0, time.Millisecond, errors.New("disk full"))
	c.RecordRun(2, true, 10*time.Millisecond, nil)
	c.RecordRun(100, false, time.Second, nil)
	c.RecordRun(0, false, time.Millisecond, errors.New("bad input"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.iterations))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.moved))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.snapshots.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.snapshots.WithLabelValues("error")))
	assert.Equal(t, 512.0, testutil.ToFloat64(c.snapshotBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("capped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("error")))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.lastIterations))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestPrometheusCollector_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg)
	var are prometheus.AlreadyRegisteredError
	assert.True(t, errors.As(err, &are))
}
