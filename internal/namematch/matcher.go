package namematch

import (
	"context"

	"github.com/google/uuid"

	"github.com/kozaktomas/photo-mapper/internal/ai"
)

// DirectMatch is a player/photo pair already resolved by external-ID
// equality before the name engine runs.
type DirectMatch struct {
	PlayerID string
	PhotoID  string
}

// ProgressInfo contains progress information for callbacks
type ProgressInfo struct {
	Phase    string
	Current  int
	Total    int
	PlayerID string
}

// Matcher runs the full two-tier resolution: deterministic global
// assignment first, AI-assisted disambiguation on the remainder. One
// Matcher is safe to reuse across runs; each run owns its own pools.
type Matcher struct {
	cfg        Config
	scorer     *Scorer
	comparator ai.Comparator

	// OnProgress, when set, is invoked during the AI passes.
	OnProgress func(ProgressInfo)
}

// New creates a matcher. comparator may be nil, in which case only the
// deterministic tier runs and every deferred row ends up unmatched.
func New(cfg Config, comparator ai.Comparator) *Matcher {
	return &Matcher{
		cfg:        cfg,
		scorer:     NewScorer(cfg),
		comparator: comparator,
	}
}

// Run resolves the player pool against the candidate pool and returns one
// outcome per input player, in input order. Direct matches are merged into
// the report and their pairs removed from both pools before scoring starts.
//
// On cancellation the returned report still contains every match accepted
// so far; the remaining players are reported as cancelled and the context
// error is returned alongside.
func (m *Matcher) Run(ctx context.Context, players []PlayerRef, candidates []PhotoCandidate, direct []DirectMatch) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	report.Counters.Players = len(players)
	report.Counters.Candidates = len(candidates)

	if len(players) == 0 {
		return report, nil
	}

	if m.comparator != nil {
		m.comparator.ResetUsage()
	}

	pl := newPool(players, candidates)
	outcomes := make(map[string]MatchOutcome, len(players))

	for _, d := range direct {
		pl.removePlayer(d.PlayerID)
		pl.removeCandidate(d.PhotoID)
		outcomes[d.PlayerID] = MatchOutcome{
			PlayerID:   d.PlayerID,
			Matched:    true,
			PhotoID:    d.PhotoID,
			Confidence: 1,
			Method:     MethodDirectID,
		}
		report.Counters.DirectMatches++
	}

	for _, acc := range m.resolveDeterministic(pl) {
		outcomes[acc.playerID] = matchedOutcome(acc)
		report.Counters.DeterministicMatches++
	}

	var runErr error
	if m.comparator != nil && !pl.drained() {
		runErr = m.runFallback(ctx, pl, report, outcomes)
	}

	noCandidatesLeft := len(candidates) == 0 || len(pl.candidates) == 0
	for _, p := range players {
		if _, ok := outcomes[p.ID]; ok {
			continue
		}
		reason := ReasonNoConfidentCandidate
		if noCandidatesLeft {
			reason = ReasonNoCandidates
		}
		if runErr != nil {
			reason = ReasonCancelled
		}
		outcomes[p.ID] = MatchOutcome{PlayerID: p.ID, Reason: reason}
		report.Counters.Unmatched++
	}

	report.Outcomes = make([]MatchOutcome, 0, len(players))
	for _, p := range players {
		report.Outcomes = append(report.Outcomes, outcomes[p.ID])
	}

	if m.comparator != nil {
		usage := m.comparator.GetUsage()
		report.Counters.InputTokens = usage.InputTokens
		report.Counters.OutputTokens = usage.OutputTokens
	}

	return report, runErr
}

// runFallback executes AI pass 1 and, when configured, the wider pass 2.
func (m *Matcher) runFallback(ctx context.Context, pl *pool, report *Report, outcomes map[string]MatchOutcome) error {
	res, err := m.runFallbackPass(ctx, pl, m.cfg.Pass1, MethodAIPass1)
	report.Counters.ComparatorCalls += res.calls
	report.Counters.FailedComparatorCalls += res.failed
	for _, acc := range res.accepted {
		outcomes[acc.playerID] = matchedOutcome(acc)
		report.Counters.AIPass1Matches++
	}
	if err != nil {
		return err
	}

	if !m.cfg.TwoPass || pl.drained() {
		return nil
	}

	res, err = m.runFallbackPass(ctx, pl, m.cfg.Pass2, MethodAIPass2)
	report.Counters.ComparatorCalls += res.calls
	report.Counters.FailedComparatorCalls += res.failed
	for _, acc := range res.accepted {
		outcomes[acc.playerID] = matchedOutcome(acc)
		report.Counters.AIPass2Matches++
	}
	return err
}

func (m *Matcher) reportProgress(info ProgressInfo) {
	if m.OnProgress != nil {
		m.OnProgress(info)
	}
}

func matchedOutcome(acc acceptedMatch) MatchOutcome {
	return MatchOutcome{
		PlayerID:   acc.playerID,
		Matched:    true,
		PhotoID:    acc.photoID,
		Confidence: acc.confidence,
		Method:     acc.method,
	}
}
