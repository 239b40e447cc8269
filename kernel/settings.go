package kernel

import "math"

// Settings holds every kernel toggle. It is a plain record passed by
// value; the kernel never mutates it and never reaches for a global
// singleton to find one.
type Settings struct {
	CPUCT       float64 `yaml:"cpuct"`
	CPUCTBase   float64 `yaml:"cpuct_base"`
	CPUCTFactor float64 `yaml:"cpuct_factor"`

	FPUReduction       float64 `yaml:"fpu_reduction"`
	FPUReductionAtRoot float64 `yaml:"fpu_reduction_at_root"`

	PolicyDecayFactor   float64 `yaml:"policy_decay_factor"`
	PolicyDecayExponent float64 `yaml:"policy_decay_exponent"`

	FracWeightUseRunningQ float64 `yaml:"frac_weight_use_running_q"`

	EnableUncertaintyBoosting bool  `yaml:"enable_uncertainty_boosting"`
	MinNEstimate              int64 `yaml:"min_n_estimate"`

	CheckmateCertaintyPropagationEnabled bool `yaml:"checkmate_certainty_propagation_enabled"`
	CheckmateFullCollapse                bool `yaml:"checkmate_full_collapse"`

	FlowDualSelectors bool `yaml:"flow_dual_selectors"`

	VirtualLoss float64 `yaml:"virtual_loss"`

	TraceEnabled bool `yaml:"trace_enabled"`
}

// DefaultSettings mirrors typical AlphaZero-style defaults; every field can
// be overridden by the caller or by config.Load.
func DefaultSettings() Settings {
	return Settings{
		CPUCT:                                1.25,
		CPUCTBase:                            19652,
		CPUCTFactor:                          1.0,
		FPUReduction:                         0.25,
		FPUReductionAtRoot:                   0.25,
		PolicyDecayFactor:                    0,
		PolicyDecayExponent:                  0.5,
		FracWeightUseRunningQ:                0,
		EnableUncertaintyBoosting:            false,
		MinNEstimate:                         50,
		CheckmateCertaintyPropagationEnabled: false,
		CheckmateFullCollapse:                false,
		FlowDualSelectors:                    false,
		VirtualLoss:                          1.0,
		TraceEnabled:                         false,
	}
}

// cpuctBase computes the visit-count-scaled exploration constant:
// CPUCT + CPUCTFactor * log((N+CPUCTBase)/CPUCTBase)
func (s Settings) cpuctBase(nParent int64) float64 {
	base := s.CPUCTBase
	if base <= 0 {
		base = 1
	}
	return s.CPUCT + s.CPUCTFactor*math.Log((float64(nParent)+base)/base)
}
