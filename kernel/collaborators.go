package kernel

// RunningQProvider supplies the root-move tracker's exponentially-weighted
// recent value estimate for a child, consumed by the running-Q blend
// adjuster.
type RunningQProvider interface {
	RunningValue(childIndex int) float64
}

// PruningOracle reports whether a move has been marked pruned by whatever
// futility-pruning pass runs outside the kernel. Only visited pruned
// children are suppressed; unvisited ones are left alone so their subtree
// can still be discovered later.
type PruningOracle interface {
	IsPruned(childIndex int) bool
}
