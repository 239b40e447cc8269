package kernel

// Option configures a Kernel via the functional-options pattern.
type Option func(*Kernel)

// Kernel wires together the settings record and the external collaborators
// the surrounding tree provides. It carries no per-call state of its own —
// all mutable state for one invocation lives in a pooled scratch buffer that
// the call acquires and releases itself, so a single Kernel value may be
// shared and called concurrently by every worker goroutine.
type Kernel struct {
	settings Settings
	gather   ChildStatGatherer
	pruning  PruningOracle
	runningQ RunningQProvider
	boost    UncertaintyMultiplierFunc
	metrics  MetricsCollector
}

// WithGather sets the required child-statistics collaborator.
func WithGather(g ChildStatGatherer) Option {
	return func(k *Kernel) { k.gather = g }
}

// WithPruningOracle sets the optional root-pruning collaborator.
func WithPruningOracle(p PruningOracle) Option {
	return func(k *Kernel) { k.pruning = p }
}

// WithRunningQProvider sets the optional root-move tracker collaborator.
func WithRunningQProvider(r RunningQProvider) Option {
	return func(k *Kernel) { k.runningQ = r }
}

// WithUncertaintyMultiplier overrides the default exploration-multiplier
// function used by uncertainty boosting.
func WithUncertaintyMultiplier(f UncertaintyMultiplierFunc) Option {
	return func(k *Kernel) { k.boost = f }
}

// WithMetrics enables real (atomic-counter) kernel metrics collection.
// Without this option the kernel uses a no-op collector.
func WithMetrics() Option {
	return func(k *Kernel) { k.metrics = NewMetricsCollector() }
}

// New builds a Kernel from Settings and options. A ChildStatGatherer must be
// supplied via WithGather or New panics — it's a required collaborator, not
// an optional one.
func New(settings Settings, options ...Option) *Kernel {
	k := &Kernel{
		settings: settings,
		metrics:  NewNoMetricsCollector(),
	}
	for _, opt := range options {
		opt(k)
	}
	if k.gather == nil {
		panic("kernel: New requires WithGather")
	}
	return k
}
