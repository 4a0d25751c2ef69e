package ai

import "context"

// Comparator defines the interface for AI name comparison backends. A call
// scores one candidate name against one reference name and returns a
// confidence value; calls are stateless round-trips apart from usage
// accounting. Implementations must be safe for concurrent CompareNames
// calls; the matcher fans calls out over a bounded worker group.
type Comparator interface {
	Name() string
	CompareNames(ctx context.Context, nameA, nameB string) (*NameComparison, error)

	// Usage tracking.
	GetUsage() *Usage
	ResetUsage()
}

// NameComparison is the parsed verdict for one name pair.
type NameComparison struct {
	// Confidence that both strings refer to the same person, 0-1.
	Confidence float64 `json:"confidence"`
	// Reasoning is a short model explanation, kept for audit output.
	Reasoning string `json:"reasoning,omitempty"`
}

// Usage tracks token usage and calculates cost.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalCost    float64 // in USD
}

// clampConfidence forces a model-reported confidence into [0,1].
func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
