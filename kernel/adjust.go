package kernel

import "math"

// applyRunningQBlend blends each child's accumulated value toward a
// root-move tracker's exponentially-weighted recent outcome, active only at
// the root once the node has enough visits to trust the tracker. Off by
// default (FracWeightUseRunningQ == 0) and a no-op when runningQ is nil,
// since it's an optional external collaborator.
func applyRunningQBlend(parent *ParentNode, scratch *Scratch, s Settings, runningQ RunningQProvider, maxChildIndex int) {
	if !parent.IsRoot || parent.N <= 500 || s.FracWeightUseRunningQ <= 0 || runningQ == nil {
		return
	}

	f := s.FracWeightUseRunningQ
	n := maxChildIndex + 1
	if n > MaxChildren {
		n = MaxChildren
	}
	for i := 0; i < n; i++ {
		rv := runningQ.RunningValue(i)
		scratch.W[i] = (1-f)*scratch.W[i] + f*rv*float64(scratch.N[i])
	}
}

// applyEmpiricalBlend nudges each processed child's prior toward an external
// empirical move distribution (e.g. an opening book), weighted by how much
// that source is trusted. A no-op unless the distribution covers every
// processed child.
func applyEmpiricalBlend(scratch *Scratch, numToProcess int, empiricalDistrib []float64, empiricalWeight float64) {
	if empiricalWeight <= 0 || len(empiricalDistrib) < numToProcess {
		return
	}

	w := empiricalWeight
	for i := 0; i < numToProcess; i++ {
		scratch.P[i] = (1-w)*scratch.P[i] + w*empiricalDistrib[i]
	}
}

// applyPolicyDecay sharpens root priors over time via a softmax-temperature
// exponent that grows with visit count, rescaling afterward so the
// processed priors still sum to their original total.
func applyPolicyDecay(parent *ParentNode, scratch *Scratch, s Settings, depth int, numToProcess int) {
	if !parent.IsRoot || depth != 0 || parent.N <= 100 || s.PolicyDecayFactor <= 0 {
		return
	}

	sum := 0.0
	for i := 0; i < numToProcess; i++ {
		sum += scratch.P[i]
	}
	if sum <= 0 {
		return
	}

	f := s.PolicyDecayFactor
	e := s.PolicyDecayExponent
	softmax := 1 + math.Log(1+f*2e-4*math.Pow(float64(parent.N), e))
	if softmax <= 0 {
		return
	}

	invSoftmax := 1.0 / softmax
	adjustedSum := 0.0
	for i := 0; i < numToProcess; i++ {
		if scratch.P[i] > 0 {
			scratch.P[i] = math.Pow(scratch.P[i], invSoftmax)
		}
		adjustedSum += scratch.P[i]
	}

	if adjustedSum > 0 {
		rescale := sum / adjustedSum
		for i := 0; i < numToProcess; i++ {
			scratch.P[i] *= rescale
		}
	}
}

// applyUncertaintyBoost multiplies each sufficiently-visited child's prior by
// an exploration multiplier derived from that child's own value variance
// relative to the parent's, then renormalises the boosted priors by a single
// N-weighted average multiplier so the N-weighted mean of the applied
// multipliers is 1. The summed prior mass of the boosted children is not in
// general preserved.
func applyUncertaintyBoost(parent *ParentNode, scratch *Scratch, s Settings, numToProcess int, boost UncertaintyMultiplierFunc) {
	if parent.N < s.MinNEstimate || !s.EnableUncertaintyBoosting {
		return
	}
	if boost == nil {
		boost = DefaultExplorationMultiplier
	}

	parentMAD := parent.Uncertainty
	weightedMultSum := 0.0
	weightSum := 0.0

	isAdjusted := func(i int) bool {
		return i < parent.NumChildrenExpanded && scratch.N[i] >= s.MinNEstimate
	}

	for i := 0; i < numToProcess; i++ {
		if !isAdjusted(i) {
			continue
		}
		mult := boost(scratch.U[i], parentMAD)
		scratch.P[i] *= mult

		weightedMultSum += float64(scratch.N[i]) * mult
		weightSum += float64(scratch.N[i])
	}

	if weightSum <= 0 {
		return
	}
	avg := weightedMultSum / weightSum
	if avg <= 0 {
		return
	}
	for i := 0; i < numToProcess; i++ {
		if isAdjusted(i) {
			scratch.P[i] /= avg
		}
	}
}

// applyRootPruningOverride marks previously-visited root children that an
// external futility pass has ruled out, by setting their accumulated value
// to +Inf so the negated Q-bar drives their score to -Inf and the allocator
// never sends further visits their way.
func applyRootPruningOverride(parent *ParentNode, scratch *Scratch, numToProcess int, numVisitsToCompute int, pruning PruningOracle) {
	if !parent.IsRoot || numVisitsToCompute <= 0 || pruning == nil {
		return
	}
	for i := 0; i < numToProcess; i++ {
		if scratch.N[i] > 0 && pruning.IsPruned(i) {
			scratch.W[i] = math.Inf(1)
		}
	}
}

// checkmateAdjustment carries the effective cpuctMultiplier and numToProcess
// after checkmate-certainty propagation has had a chance to shrink either.
type checkmateAdjustment struct {
	cpuctMultiplier float64
	numToProcess    int
}

// applyCheckmateCertaintyPropagation reacts to a proven mate among a node's
// children: it dampens exploration by shrinking the CPUCT multiplier, or, in
// full-collapse mode, kills exploration entirely and restricts allocation to
// only the already-expanded children.
func applyCheckmateCertaintyPropagation(parent *ParentNode, s Settings, cpuctMultiplier float64, numToProcess int) checkmateAdjustment {
	result := checkmateAdjustment{cpuctMultiplier: cpuctMultiplier, numToProcess: numToProcess}
	if !s.CheckmateCertaintyPropagationEnabled || !parent.CheckmateKnownAmongChildren {
		return result
	}

	if s.CheckmateFullCollapse {
		result.cpuctMultiplier = 0
		if parent.NumChildrenExpanded < result.numToProcess {
			result.numToProcess = parent.NumChildrenExpanded
		}
		return result
	}

	result.cpuctMultiplier = 0.1
	return result
}
