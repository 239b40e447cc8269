package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScratchResetClearsOnlyProcessedRange(t *testing.T) {
	s := &Scratch{}
	s.N[0] = 5
	s.P[0] = 0.5
	s.N[3] = 9 // outside the reset range, must survive

	s.reset(1)

	require.EqualValues(t, 0, s.N[0])
	require.Equal(t, 0.0, s.P[0])
	require.EqualValues(t, 9, s.N[3], "reset must not touch indices >= n")
}

func TestAcquireReleaseScratchRoundTrips(t *testing.T) {
	s := AcquireScratch()
	require.NotNil(t, s)
	s.N[0] = 42
	ReleaseScratch(s)

	// A freshly-acquired buffer is not guaranteed to be the same
	// instance, but if it is (the common pool-reuse case), callers must
	// reset before use rather than assume zero state — this is exactly
	// what ComputeTopChildScores does.
	s2 := AcquireScratch()
	s2.reset(MaxChildren)
	require.EqualValues(t, 0, s2.N[0])
	ReleaseScratch(s2)
}
