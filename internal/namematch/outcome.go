package namematch

// Method identifies which tier produced a match.
type Method string

const (
	MethodDirectID      Method = "direct-id"
	MethodDeterministic Method = "deterministic"
	MethodAIPass1       Method = "ai-pass-1"
	MethodAIPass2       Method = "ai-pass-2"
)

// Reason explains why a player ended up unmatched.
type Reason string

const (
	// ReasonNoCandidates means the candidate pool was empty when the player
	// was considered.
	ReasonNoCandidates Reason = "no-candidates"
	// ReasonNoConfidentCandidate means candidates existed but none cleared
	// the confidence and ambiguity requirements.
	ReasonNoConfidentCandidate Reason = "no-confident-candidate"
	// ReasonCancelled means the run was aborted before the player was resolved.
	ReasonCancelled Reason = "cancelled"
)

// MatchOutcome is the final verdict for one input player. Exactly one
// outcome exists per player; a photo appears in at most one matched outcome.
type MatchOutcome struct {
	PlayerID   string  `json:"player_id"`
	Matched    bool    `json:"matched"`
	PhotoID    string  `json:"photo_id,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Method     Method  `json:"method,omitempty"`
	Reason     Reason  `json:"reason,omitempty"`
}

// Counters are the run-level totals rendered by the CLI summary and diffed
// by the validation tooling.
type Counters struct {
	Players               int `json:"players"`
	Candidates            int `json:"candidates"`
	DirectMatches         int `json:"direct_matches"`
	DeterministicMatches  int `json:"deterministic_matches"`
	AIPass1Matches        int `json:"ai_pass1_matches"`
	AIPass2Matches        int `json:"ai_pass2_matches"`
	Unmatched             int `json:"unmatched"`
	ComparatorCalls       int `json:"comparator_calls"`
	FailedComparatorCalls int `json:"failed_comparator_calls"`
	InputTokens           int `json:"input_tokens"`
	OutputTokens          int `json:"output_tokens"`
}

// Report is the ordered result of one matching run. Outcomes follow the
// stable input order of the players.
type Report struct {
	RunID    string         `json:"run_id"`
	Outcomes []MatchOutcome `json:"outcomes"`
	Counters Counters       `json:"counters"`
}

// Matches returns only the matched outcomes.
func (r *Report) Matches() []MatchOutcome {
	var out []MatchOutcome
	for _, o := range r.Outcomes {
		if o.Matched {
			out = append(out, o)
		}
	}
	return out
}
