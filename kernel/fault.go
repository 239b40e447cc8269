package kernel

import "github.com/rs/zerolog/log"

// checkPreconditions treats malformed call arguments and inconsistent tree
// state as programmer errors: the kernel has no retry logic and no
// error-return path for these, so it fails fast instead of silently
// producing garbage scores.
func checkPreconditions(parent *ParentNode, minChildIndex, maxChildIndex, numVisitsToCompute int) {
	if minChildIndex != 0 {
		log.Error().Int("minChildIndex", minChildIndex).Msg("kernel contract violation: minChildIndex must be 0")
		panic("kernel: minChildIndex must be 0")
	}
	if maxChildIndex >= MaxChildren {
		log.Error().Int("maxChildIndex", maxChildIndex).Msg("kernel contract violation: maxChildIndex out of range")
		panic("kernel: maxChildIndex must be < MaxChildren")
	}
	if numVisitsToCompute < 0 {
		log.Error().Int("numVisitsToCompute", numVisitsToCompute).Msg("kernel contract violation: negative visit budget")
		panic("kernel: numVisitsToCompute must be >= 0")
	}
	if parent.NumChildrenExpanded > parent.NumPolicyMoves {
		log.Error().
			Int("numChildrenExpanded", parent.NumChildrenExpanded).
			Int("numPolicyMoves", parent.NumPolicyMoves).
			Msg("kernel contract violation: inconsistent tree state")
		panic("kernel: NumChildrenExpanded must be <= NumPolicyMoves")
	}
}
