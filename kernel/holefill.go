package kernel

// fillHoles scans from NumChildrenExpanded to numToProcess-1, and on finding
// the first gap (a zero-count index with a later positive-count index),
// shifts one visit left and stops. The caller is expected to invoke the
// kernel repeatedly across a search, so a single shift per call is
// sufficient to keep the expansion prefix dense over time — it does not
// attempt to close every gap in one pass.
func fillHoles(childVisitCounts []int16, numChildrenExpanded int, numToProcess int, metrics MetricsCollector) {
	for i := numChildrenExpanded; i < numToProcess; i++ {
		if childVisitCounts[i] != 0 {
			continue
		}
		for j := i + 1; j < numToProcess; j++ {
			if childVisitCounts[j] > 0 {
				childVisitCounts[i] = 1
				childVisitCounts[j]--
				metrics.AddHoleShift()
				return
			}
		}
		return
	}
}
