package namematch

import "sort"

// rankedCandidate is one row of a player's deterministic ranking.
type rankedCandidate struct {
	candidate   PhotoCandidate
	score       float64
	nearVariant bool
}

// rankCandidates scores every live candidate against the player and returns
// them sorted by score descending. Equal scores keep input order so runs are
// reproducible.
func (m *Matcher) rankCandidates(player PlayerRef, candidates []PhotoCandidate) []rankedCandidate {
	ranked := make([]rankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		score, nearVariant := m.scorer.Score(player.Signature, c.Signature)
		ranked = append(ranked, rankedCandidate{candidate: c, score: score, nearVariant: nearVariant})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// proposal is one player's current best claim on a candidate.
type proposal struct {
	player     PlayerRef
	candidate  PhotoCandidate
	confidence float64
	margin     float64
}

type acceptedMatch struct {
	playerID   string
	photoID    string
	confidence float64
	method     Method
}

// resolveDeterministic runs the global assignment loop: rank every
// unresolved player's candidates, keep proposals clearing the acceptance
// threshold and the ambiguity margin, accept them best-first while both
// sides are still free, and repeat until a full pass accepts nothing.
// Proposals failing the margin check are deferred to the AI fallback, not
// rejected. The reiteration avoids an early greedy lock stealing a candidate
// from a later, better-justified claim.
func (m *Matcher) resolveDeterministic(pl *pool) []acceptedMatch {
	var accepted []acceptedMatch

	for !pl.drained() {
		proposals := make([]proposal, 0, len(pl.players))
		for _, player := range pl.players {
			ranked := m.rankCandidates(player, pl.candidates)
			if len(ranked) == 0 {
				continue
			}
			top := ranked[0]
			margin := top.score
			if len(ranked) > 1 {
				margin = top.score - ranked[1].score
			}
			if top.score < m.cfg.AcceptThreshold || margin <= m.cfg.AmbiguityMargin {
				continue
			}
			proposals = append(proposals, proposal{
				player:     player,
				candidate:  top.candidate,
				confidence: top.score,
				margin:     margin,
			})
		}

		sort.SliceStable(proposals, func(i, j int) bool {
			return proposals[i].confidence > proposals[j].confidence
		})

		acceptedThisPass := 0
		for _, pr := range proposals {
			// First accepted wins among conflicting high-confidence claims.
			if !pl.hasCandidate(pr.candidate.ID) {
				continue
			}
			pl.removePlayer(pr.player.ID)
			pl.removeCandidate(pr.candidate.ID)
			accepted = append(accepted, acceptedMatch{
				playerID:   pr.player.ID,
				photoID:    pr.candidate.ID,
				confidence: pr.confidence,
				method:     MethodDeterministic,
			})
			acceptedThisPass++
		}

		if acceptedThisPass == 0 {
			break
		}
	}

	return accepted
}
