package kernel

import "sync/atomic"

// MetricsCollector tracks kernel-invocation-level counters via an
// interface-plus-no-op pair, so instrumentation can be swapped in without
// branching on a nil check at every call site.
type MetricsCollector interface {
	AddInvocation()
	AddDegenerateClamp()
	AddHoleShift()
	Snapshot() MetricsSnapshot
}

// MetricsSnapshot is a point-in-time read of the collected counters.
type MetricsSnapshot struct {
	Invocations      int64
	DegenerateClamps int64
	HoleShifts       int64
}

type metricsCollector struct {
	invocations      atomic.Int64
	degenerateClamps atomic.Int64
	holeShifts       atomic.Int64
}

// NewMetricsCollector returns a real, atomic-counter-backed collector.
func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) AddInvocation()      { m.invocations.Add(1) }
func (m *metricsCollector) AddDegenerateClamp() { m.degenerateClamps.Add(1) }
func (m *metricsCollector) AddHoleShift()       { m.holeShifts.Add(1) }

func (m *metricsCollector) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Invocations:      m.invocations.Load(),
		DegenerateClamps: m.degenerateClamps.Load(),
		HoleShifts:       m.holeShifts.Load(),
	}
}

type noMetricsCollector struct{}

// NewNoMetricsCollector returns a collector whose methods are all no-ops.
func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) AddInvocation()             {}
func (m *noMetricsCollector) AddDegenerateClamp()        {}
func (m *noMetricsCollector) AddHoleShift()              {}
func (m *noMetricsCollector) Snapshot() MetricsSnapshot { return MetricsSnapshot{} }
