package namematch

import "time"

// PassConfig controls one sweep of the AI fallback stage.
type PassConfig struct {
	ShortlistSize int
	Threshold     float64
	Margin        float64
}

// Config holds every tunable constant of the matching engine. The defaults
// were derived empirically against a labeled reference mapping; change them
// only after re-running the validation suite.
type Config struct {
	// Deterministic resolver.
	AcceptThreshold float64
	AmbiguityMargin float64

	// Scorer boost/cap constants.
	SubsetFloor    float64
	EqualSetFloor  float64
	ZeroOverlapCap float64
	WeakOverlapCap float64

	// Near-variant token detection.
	NearVariantSimilarity float64
	NearVariantPrefixLen  int

	// AI shortlist building.
	PreselectMin float64
	ShortlistGap float64

	// AI passes. Pass 2 only runs when TwoPass is set.
	Pass1   PassConfig
	Pass2   PassConfig
	TwoPass bool

	// Comparator call scheduling.
	Concurrency int
	CallTimeout time.Duration
}

// DefaultConfig returns the empirically tuned defaults.
func DefaultConfig() Config {
	return Config{
		AcceptThreshold:       0.78,
		AmbiguityMargin:       0.10,
		SubsetFloor:           0.90,
		EqualSetFloor:         0.97,
		ZeroOverlapCap:        0.30,
		WeakOverlapCap:        0.60,
		NearVariantSimilarity: 0.80,
		NearVariantPrefixLen:  3,
		PreselectMin:          0.35,
		ShortlistGap:          0.15,
		Pass1:                 PassConfig{ShortlistSize: 3, Threshold: 0.85, Margin: 0.15},
		Pass2:                 PassConfig{ShortlistSize: 6, Threshold: 0.75, Margin: 0.08},
		TwoPass:               true,
		Concurrency:           5,
		CallTimeout:           30 * time.Second,
	}
}
