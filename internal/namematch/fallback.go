package namematch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// passResult is the partial outcome of one AI fallback sweep. It stays
// meaningful even when the pass is cancelled halfway through.
type passResult struct {
	accepted []acceptedMatch
	calls    int
	failed   int
}

// buildShortlist picks the candidates worth an AI round-trip for one player:
// anything above the adaptive preselect minimum, anything within the fixed
// gap of the top-ranked candidate, and anything flagged near-variant.
// The list is bounded to size and keeps the deterministic ranking order.
func (m *Matcher) buildShortlist(player PlayerRef, candidates []PhotoCandidate, size int) []rankedCandidate {
	ranked := m.rankCandidates(player, candidates)
	if len(ranked) == 0 {
		return nil
	}
	top := ranked[0].score
	adaptiveMin := max(m.cfg.PreselectMin, top/2)

	shortlist := make([]rankedCandidate, 0, size)
	for _, rc := range ranked {
		if len(shortlist) >= size {
			break
		}
		if rc.score >= adaptiveMin || rc.score >= top-m.cfg.ShortlistGap || rc.nearVariant {
			shortlist = append(shortlist, rc)
		}
	}
	return shortlist
}

// comparatorResult is one scored shortlist entry. failed entries count as
// non-matches for that single pair and never abort the batch.
type comparatorResult struct {
	photoID     string
	displayName string
	confidence  float64
	failed      bool
}

// runFallbackPass sweeps the still-unresolved players once with the given
// strictness. Players are processed in stable input order; comparator calls
// for one shortlist run concurrently with a bounded limit, while pool
// mutation stays with this single goroutine so two proposals can never
// double-accept the same candidate. Each acceptance shrinks later players'
// shortlists within the same pass.
func (m *Matcher) runFallbackPass(ctx context.Context, pl *pool, pass PassConfig, method Method) (passResult, error) {
	var res passResult

	snapshot := make([]PlayerRef, len(pl.players))
	copy(snapshot, pl.players)
	total := len(snapshot)

	for i, player := range snapshot {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		shortlist := m.buildShortlist(player, pl.candidates, pass.ShortlistSize)
		if len(shortlist) > 0 {
			results := m.compareShortlist(ctx, player, shortlist)

			for _, r := range results {
				res.calls++
				if r.failed {
					res.failed++
				}
			}

			best, second := bestTwo(results)
			if best != nil && best.confidence >= pass.Threshold && best.confidence-second > pass.Margin {
				pl.removePlayer(player.ID)
				pl.removeCandidate(best.photoID)
				res.accepted = append(res.accepted, acceptedMatch{
					playerID:   player.ID,
					photoID:    best.photoID,
					confidence: best.confidence,
					method:     method,
				})
			}
		}

		m.reportProgress(ProgressInfo{
			Phase:    string(method),
			Current:  i + 1,
			Total:    total,
			PlayerID: player.ID,
		})
	}

	return res, nil
}

// compareShortlist fans the comparator calls for one shortlist out over a
// bounded worker group. A timed-out or errored call is recorded as failed
// for that pair only.
func (m *Matcher) compareShortlist(ctx context.Context, player PlayerRef, shortlist []rankedCandidate) []comparatorResult {
	results := make([]comparatorResult, len(shortlist))

	g := new(errgroup.Group)
	g.SetLimit(m.cfg.Concurrency)

	for i, rc := range shortlist {
		g.Go(func() error {
			results[i] = comparatorResult{
				photoID:     rc.candidate.ID,
				displayName: rc.candidate.DisplayName,
			}
			if err := ctx.Err(); err != nil {
				results[i].failed = true
				return nil
			}

			callCtx := ctx
			if m.cfg.CallTimeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, m.cfg.CallTimeout)
				defer cancel()
			}

			comparison, err := m.comparator.CompareNames(callCtx, player.DisplayName, rc.candidate.DisplayName)
			if err != nil {
				results[i].failed = true
				return nil
			}
			results[i].confidence = comparison.Confidence
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// bestTwo returns the highest-confidence successful result and the
// confidence of the runner-up (0 when there is none).
func bestTwo(results []comparatorResult) (*comparatorResult, float64) {
	var best *comparatorResult
	second := 0.0
	for i := range results {
		r := &results[i]
		if r.failed {
			continue
		}
		switch {
		case best == nil:
			best = r
		case r.confidence > best.confidence:
			second = best.confidence
			best = r
		case r.confidence > second:
			second = r.confidence
		}
	}
	return best, second
}
