package namematch

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Signal weights for the combined deterministic score. They sum to 1 so the
// combined value stays in [0,1] before the boost/cap rules apply.
const (
	weightOverlap    = 0.35
	weightJaccard    = 0.15
	weightSoftTokens = 0.25
	weightFullString = 0.25
)

// Scorer computes a bounded [0,1] similarity between two name signatures.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given constants.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score combines token overlap, Jaccard, soft token similarity and
// full-string similarity into one confidence value, then applies the
// boost/cap rules. The second return value flags near-variant token pairs
// (short/long first-name forms) for the AI shortlist builder; it never
// inflates the score itself. Score is symmetric in its arguments.
func (s *Scorer) Score(a, b NameSignature) (float64, bool) {
	nearVariant := s.hasNearVariantTokens(a, b)

	if a.Empty() || b.Empty() {
		return 0, nearVariant
	}

	// Exact normalized equality is the strongest possible evidence and is
	// exempt from the weak-overlap cap below. A lone identical surname is
	// not: with a single matching token the cap still applies, so the pair
	// defers to the AI stage like any other weak-evidence match.
	if a.Normalized != "" && a.Normalized == b.Normalized &&
		(len(a.Tokens) >= 2 || strings.ContainsAny(a.Normalized, "0123456789")) {
		return 1, nearVariant
	}

	overlapCount := countOverlap(a, b)
	maxTokens := max(len(a.Tokens), len(b.Tokens))

	var overlap float64
	if maxTokens > 0 {
		overlap = float64(overlapCount) / float64(maxTokens)
	}

	union := len(a.Tokens) + len(b.Tokens) - overlapCount
	var jaccard float64
	if union > 0 {
		jaccard = float64(overlapCount) / float64(union)
	}

	soft := softTokenSimilarity(a, b)
	full := levenshteinSimilarity(a.Normalized, b.Normalized)

	score := weightOverlap*overlap +
		weightJaccard*jaccard +
		weightSoftTokens*soft +
		weightFullString*full

	// Boost/cap rules, in order. Later rules override earlier ones.
	if overlapCount > 0 && overlapCount == min(len(a.Tokens), len(b.Tokens)) && len(a.Tokens) >= 2 && len(b.Tokens) >= 2 {
		if len(a.Tokens) == len(b.Tokens) {
			// Same token set, only order/punctuation differs.
			score = max(score, s.cfg.EqualSetFloor)
		} else {
			// Strict subset with at least two shared tokens: middle-name or
			// extra-surname omission.
			score = max(score, s.cfg.SubsetFloor)
		}
	}
	if overlapCount == 0 {
		score = min(score, s.cfg.ZeroOverlapCap)
	}
	if overlapCount == 1 {
		score = min(score, s.cfg.WeakOverlapCap)
	}

	return clamp01(score), nearVariant
}

func countOverlap(a, b NameSignature) int {
	n := 0
	for _, tok := range a.Tokens {
		if b.hasToken(tok) {
			n++
		}
	}
	return n
}

// softTokenSimilarity averages, over the smaller token set, the best
// edit-distance similarity each token achieves against the other set.
// Both directions are averaged when the sets have the same size so the
// result stays symmetric.
func softTokenSimilarity(a, b NameSignature) float64 {
	if len(a.Tokens) == 0 || len(b.Tokens) == 0 {
		return 0
	}
	switch {
	case len(a.Tokens) < len(b.Tokens):
		return softDirected(a, b)
	case len(b.Tokens) < len(a.Tokens):
		return softDirected(b, a)
	default:
		return (softDirected(a, b) + softDirected(b, a)) / 2
	}
}

func softDirected(from, to NameSignature) float64 {
	var sum float64
	for _, tok := range from.Tokens {
		best := 0.0
		for _, other := range to.Tokens {
			if sim := levenshteinSimilarity(tok, other); sim > best {
				best = sim
			}
		}
		sum += best
	}
	return sum / float64(len(from.Tokens))
}

// levenshteinSimilarity returns 1 - distance/maxLen over runes.
func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	dist := edlib.LevenshteinDistance(a, b)
	sim := 1 - float64(dist)/float64(maxLen)
	return clamp01(sim)
}

func (s *Scorer) hasNearVariantTokens(a, b NameSignature) bool {
	for _, ta := range a.Tokens {
		for _, tb := range b.Tokens {
			if ta == tb {
				continue
			}
			if s.nearVariantPair(ta, tb) {
				return true
			}
		}
	}
	return false
}

// nearVariantPair detects short/long forms of the same name without any
// nickname dictionary: shared first letter plus either a high edit-distance
// similarity or a prefix relationship of useful length.
func (s *Scorer) nearVariantPair(ta, tb string) bool {
	ra := []rune(ta)
	rb := []rune(tb)
	if len(ra) == 0 || len(rb) == 0 || ra[0] != rb[0] {
		return false
	}
	if levenshteinSimilarity(ta, tb) > s.cfg.NearVariantSimilarity {
		return true
	}
	shorter, longer := ta, tb
	if len(rb) < len(ra) {
		shorter, longer = tb, ta
	}
	return len([]rune(shorter)) >= s.cfg.NearVariantPrefixLen && strings.HasPrefix(longer, shorter)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
