package priors

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "priors"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestLookupMissingReturnsNotFound(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Lookup(12345)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRecordThenLookupRoundTrips(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Record(1, []float64{0.7, 0.3}, 10))

	entry, found, err := s.Lookup(1)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []float64{0.7, 0.3}, entry.Distribution)
	require.EqualValues(t, 10, entry.Samples)
}

func TestRecordBlendsWeightedBySampleCount(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Record(1, []float64{1.0, 0.0}, 10))
	require.NoError(t, s.Record(1, []float64{0.0, 1.0}, 10))

	entry, found, err := s.Lookup(1)
	require.NoError(t, err)
	require.True(t, found)
	require.InDelta(t, 0.5, entry.Distribution[0], 1e-9)
	require.InDelta(t, 0.5, entry.Distribution[1], 1e-9)
	require.EqualValues(t, 20, entry.Samples)
}

func TestEmpiricalWeightRampsWithConfidence(t *testing.T) {
	require.Equal(t, 0.0, EmpiricalWeight(0, 100, 0.5))
	require.InDelta(t, 0.25, EmpiricalWeight(50, 100, 0.5), 1e-9)
	require.Equal(t, 0.5, EmpiricalWeight(500, 100, 0.5), "should clamp at maxWeight past confidenceSamples")
}
