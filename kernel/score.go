package kernel

import "math"

// ComputeTopChildScores is the kernel's single entry point. It gathers a
// snapshot of the parent's children into a pooled scratch buffer, runs the
// fixed-order prior adjusters, computes a PUCT score for every child, and —
// if numVisitsToCompute > 0 — allocates that many new visits across children
// in a way that matches performing each visit one at a time and
// re-selecting the argmax after each.
func (k *Kernel) ComputeTopChildScores(
	parent *ParentNode,
	selector SelectorID,
	depth int,
	dynamicVLossBoost float64,
	minChildIndex, maxChildIndex int,
	numVisitsToCompute int,
	scores []float64,
	childVisitCounts []int16,
	cpuctMultiplier float64,
	empiricalDistrib []float64,
	empiricalWeight float64,
) error {
	checkPreconditions(parent, minChildIndex, maxChildIndex, numVisitsToCompute)
	k.metrics.AddInvocation()

	n := numToProcess(maxChildIndex, parent.NumPolicyMoves)
	if n == 0 {
		return nil
	}

	scratch := AcquireScratch()
	defer ReleaseScratch(scratch)
	scratch.reset(n)

	n = k.gather.Gather(parent, selector, depth, maxChildIndex, scratch)
	if n <= 0 {
		return nil
	}
	if n > MaxChildren {
		n = MaxChildren
	}

	if normalizePriors(scratch, n) {
		k.metrics.AddDegenerateClamp()
	}

	applyRunningQBlend(parent, scratch, k.settings, k.runningQ, maxChildIndex)
	applyEmpiricalBlend(scratch, n, empiricalDistrib, empiricalWeight)
	applyPolicyDecay(parent, scratch, k.settings, depth, n)
	applyUncertaintyBoost(parent, scratch, k.settings, n, k.boost)
	applyRootPruningOverride(parent, scratch, n, numVisitsToCompute, k.pruning)

	adjustment := applyCheckmateCertaintyPropagation(parent, k.settings, cpuctMultiplier, n)
	cpuctMultiplier = adjustment.cpuctMultiplier
	n = adjustment.numToProcess
	if n == 0 {
		return nil
	}

	vloss := k.settings.VirtualLoss
	if selector == SelectorSecondary && k.settings.FlowDualSelectors {
		vloss *= 1 + dynamicVLossBoost
	}

	c := k.settings.cpuctBase(parent.N) * cpuctMultiplier

	nParentEff := float64(parent.N + parent.inFlight(selector))
	if nParentEff < 0 {
		nParentEff = 0
	}
	nParentEffSqrt := math.Sqrt(nParentEff)

	fpuReduction := k.settings.FPUReduction
	if parent.IsRoot {
		fpuReduction = k.settings.FPUReductionAtRoot
	}
	sumPVisited := parent.SumPVisited
	if sumPVisited < 0 {
		sumPVisited = 0
	}
	fpu := parent.Q - fpuReduction*math.Sqrt(sumPVisited)
	fpu = clamp(fpu, -1, 1)

	extra := scratch.Extra[:n]

	for i := 0; i < n; i++ {
		scores[i] = puctScore(scratch, i, c, vloss, nParentEffSqrt, fpu, extra[i])
	}

	if numVisitsToCompute == 0 {
		return nil
	}

	for i := 0; i < n; i++ {
		childVisitCounts[i] = 0
	}

	for v := 0; v < numVisitsToCompute; v++ {
		best := 0
		bestScore := math.Inf(-1)
		for i := 0; i < n; i++ {
			s := puctScore(scratch, i, c, vloss, nParentEffSqrt, fpu, extra[i])
			if s > bestScore {
				bestScore = s
				best = i
			}
		}
		extra[best]++
		childVisitCounts[best]++
	}

	fillHoles(childVisitCounts, parent.NumChildrenExpanded, n, k.metrics)

	return nil
}

// puctScore computes the PUCT score for child i given cumAllocated
// additional in-flight visits already assigned to it earlier in the same
// batch, so repeated calls within one allocation loop see each prior pick's
// effect on the denominator and virtual loss immediately.
func puctScore(scratch *Scratch, i int, c, vloss, nParentEffSqrt, fpu float64, cumAllocated int64) float64 {
	realN := scratch.N[i]
	inFlight := scratch.InFlight[i] + cumAllocated

	var qbar float64
	if realN == 0 {
		qbar = fpu
	} else {
		denom := float64(realN) + float64(inFlight)
		if denom < 1 {
			denom = 1
		}
		qbar = -(scratch.W[i] + vloss*float64(inFlight)) / denom
	}

	exploration := c * scratch.P[i] * nParentEffSqrt / (1 + float64(realN) + float64(inFlight))
	return qbar + exploration
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
