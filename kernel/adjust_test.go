package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEmpiricalBlend(t *testing.T) {
	s := &Scratch{}
	s.P[0], s.P[1] = 0.5, 0.5

	applyEmpiricalBlend(s, 2, []float64{0.8, 0.2}, 0.25)

	require.InDelta(t, 0.75*0.5+0.25*0.8, s.P[0], 1e-9)
	require.InDelta(t, 0.75*0.5+0.25*0.2, s.P[1], 1e-9)
}

func TestApplyEmpiricalBlendSkippedWhenWeightZeroOrTooFewSamples(t *testing.T) {
	s := &Scratch{}
	s.P[0], s.P[1] = 0.5, 0.5

	applyEmpiricalBlend(s, 2, []float64{0.8, 0.2}, 0)
	require.Equal(t, 0.5, s.P[0])

	applyEmpiricalBlend(s, 2, []float64{0.8}, 0.5)
	require.Equal(t, 0.5, s.P[0], "empiricalDistrib shorter than numToProcess must be ignored")
}

func TestApplyPolicyDecayPreservesSumAndOrdering(t *testing.T) {
	// Scenario 6: policy decay at root.
	parent := &ParentNode{IsRoot: true, N: 10_000}
	s := &Scratch{}
	s.P[0], s.P[1], s.P[2] = 0.6, 0.3, 0.1
	settings := DefaultSettings()
	settings.PolicyDecayFactor = 1
	settings.PolicyDecayExponent = 0.5

	applyPolicyDecay(parent, s, settings, 0, 3)

	sum := s.P[0] + s.P[1] + s.P[2]
	require.InDelta(t, 1.0, sum, 1e-5)
	require.Greater(t, s.P[0], s.P[1])
	require.Greater(t, s.P[1], s.P[2])
	require.Greater(t, s.P[0], 0.6, "sharper softmax should widen the gap on the largest prior")
}

func TestApplyPolicyDecaySkippedOffRootOrShallowN(t *testing.T) {
	s := &Scratch{}
	s.P[0], s.P[1] = 0.6, 0.4
	settings := DefaultSettings()
	settings.PolicyDecayFactor = 1

	nonRoot := &ParentNode{IsRoot: false, N: 10_000}
	applyPolicyDecay(nonRoot, s, settings, 0, 2)
	require.Equal(t, 0.6, s.P[0])

	shallow := &ParentNode{IsRoot: true, N: 50}
	applyPolicyDecay(shallow, s, settings, 0, 2)
	require.Equal(t, 0.6, s.P[0])

	root := &ParentNode{IsRoot: true, N: 10_000}
	applyPolicyDecay(root, s, settings, 1, 2) // depth != 0
	require.Equal(t, 0.6, s.P[0])
}

func TestApplyUncertaintyBoostPreservesNWeightedAverage(t *testing.T) {
	parent := &ParentNode{N: 1000, Uncertainty: 0.2, NumChildrenExpanded: 3}
	s := &Scratch{}
	s.P[0], s.P[1], s.P[2] = 0.5, 0.3, 0.2
	s.N[0], s.N[1], s.N[2] = 200, 100, 60
	s.U[0], s.U[1], s.U[2] = 0.4, 0.1, 0.2

	settings := DefaultSettings()
	settings.EnableUncertaintyBoosting = true
	settings.MinNEstimate = 50

	applyUncertaintyBoost(parent, s, settings, 3, DefaultExplorationMultiplier)

	mult0 := DefaultExplorationMultiplier(0.4, 0.2)
	mult1 := DefaultExplorationMultiplier(0.1, 0.2)
	mult2 := DefaultExplorationMultiplier(0.2, 0.2)
	avg := (float64(200)*mult0 + float64(100)*mult1 + float64(60)*mult2) / float64(200+100+60)

	require.InDelta(t, 0.5*mult0/avg, s.P[0], 1e-9)
	require.InDelta(t, 0.3*mult1/avg, s.P[1], 1e-9)
	require.InDelta(t, 0.2*mult2/avg, s.P[2], 1e-9)
}

func TestApplyUncertaintyBoostSkipsBelowMinNEstimate(t *testing.T) {
	parent := &ParentNode{N: 1000, Uncertainty: 0.2, NumChildrenExpanded: 1}
	s := &Scratch{}
	s.P[0] = 0.5
	s.N[0] = 10 // below MinNEstimate

	settings := DefaultSettings()
	settings.EnableUncertaintyBoosting = true
	settings.MinNEstimate = 50

	applyUncertaintyBoost(parent, s, settings, 1, DefaultExplorationMultiplier)

	require.Equal(t, 0.5, s.P[0])
}

func TestApplyRootPruningOverrideSetsWToInfForVisitedPrunedChildren(t *testing.T) {
	parent := &ParentNode{IsRoot: true}
	s := &Scratch{}
	s.N[0], s.N[1] = 5, 0
	pruning := &staticPruning{pruned: map[int]bool{0: true, 1: true}}

	applyRootPruningOverride(parent, s, 2, 4, pruning)

	require.True(t, math.IsInf(s.W[0], 1), "visited pruned child gets W=+Inf")
	require.Equal(t, 0.0, s.W[1], "unvisited pruned child must not be suppressed")
}

func TestApplyRootPruningOverrideNoopWhenNotRootOrNoBudget(t *testing.T) {
	s := &Scratch{}
	s.N[0] = 5
	pruning := &staticPruning{pruned: map[int]bool{0: true}}

	applyRootPruningOverride(&ParentNode{IsRoot: false}, s, 1, 4, pruning)
	require.Equal(t, 0.0, s.W[0])

	applyRootPruningOverride(&ParentNode{IsRoot: true}, s, 1, 0, pruning)
	require.Equal(t, 0.0, s.W[0])
}

func TestApplyCheckmateCertaintyPropagationModes(t *testing.T) {
	parent := &ParentNode{CheckmateKnownAmongChildren: true, NumChildrenExpanded: 2}

	dampened := DefaultSettings()
	dampened.CheckmateCertaintyPropagationEnabled = true
	dampened.CheckmateFullCollapse = false
	result := applyCheckmateCertaintyPropagation(parent, dampened, 1.0, 5)
	require.Equal(t, 0.1, result.cpuctMultiplier)
	require.Equal(t, 5, result.numToProcess)

	collapse := dampened
	collapse.CheckmateFullCollapse = true
	result = applyCheckmateCertaintyPropagation(parent, collapse, 1.0, 5)
	require.Equal(t, 0.0, result.cpuctMultiplier)
	require.Equal(t, 2, result.numToProcess)

	disabled := DefaultSettings()
	result = applyCheckmateCertaintyPropagation(parent, disabled, 1.0, 5)
	require.Equal(t, 1.0, result.cpuctMultiplier)
	require.Equal(t, 5, result.numToProcess)
}

func TestApplyRunningQBlendOnlyAtRootAfterThreshold(t *testing.T) {
	s := &Scratch{}
	s.W[0] = 10
	s.N[0] = 5
	runningQ := &staticRunningQ{values: []float64{1.0}}

	settings := DefaultSettings()
	settings.FracWeightUseRunningQ = 0.5

	notRoot := &ParentNode{IsRoot: false, N: 1000}
	applyRunningQBlend(notRoot, s, settings, runningQ, 0)
	require.Equal(t, 10.0, s.W[0])

	tooFewVisits := &ParentNode{IsRoot: true, N: 100}
	applyRunningQBlend(tooFewVisits, s, settings, runningQ, 0)
	require.Equal(t, 10.0, s.W[0])

	root := &ParentNode{IsRoot: true, N: 1000}
	applyRunningQBlend(root, s, settings, runningQ, 0)
	require.InDelta(t, 0.5*10+0.5*1.0*5, s.W[0], 1e-9)
}
