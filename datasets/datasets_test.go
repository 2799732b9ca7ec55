package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"blobs", "customers"}, Names())
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("iris")
	assert.ErrorIs(t, err, ErrUnknownDataset)
}

func TestRows(t *testing.T) {
	rows, d, err := Load("blobs")
	require.NoError(t, err)
	assert.Len(t, rows, 30)
	assert.Equal(t, 10, d.ClusterSize)
	assert.Equal(t, "7", rows[0].Index)
	assert.Equal(t, "10.0", rows[0].D1)
	assert.Equal(t, "35.13", rows[0].D2)
}

func TestRows_RemappedColumns(t *testing.T) {
	rows, _, err := Load("customers")
	require.NoError(t, err)
	require.Len(t, rows, 32)

	// annual_spend,customer,age = 8344,c026,35
	assert.Equal(t, "c026", rows[0].Index)
	assert.Equal(t, "35", rows[0].D1)
	assert.Equal(t, "8344", rows[0].D2)
}

func TestGenerate(t *testing.T) {
	s := Synthetic{Centers: 4, PerCenter: 25, Spread: 0.5, Seed: 42}
	points, err := Generate(s)
	require.NoError(t, err)
	require.Len(t, points, 100)

	for i, p := range points {
		assert.Equal(t, uint32(i), p.ID)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 1.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 1.0)
	}

	again, err := Generate(s)
	require.NoError(t, err)
	assert.Equal(t, points, again, "same seed, same points")
}

func TestGenerate_Defaults(t *testing.T) {
	points, err := Generate(Synthetic{})
	require.NoError(t, err)
	assert.Len(t, points, DefaultSynthetic.Centers*DefaultSynthetic.PerCenter)

	_, err = Generate(Synthetic{Spread: -1})
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-0.2))
	assert.Equal(t, 1.0, clamp(1.7))
	assert.Equal(t, 0.3, clamp(0.3))
}
