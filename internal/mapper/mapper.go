// Package mapper glues the roster and photo sources to the name matching
// engine and shapes the results for the CLI and the web API.
package mapper

import (
	"context"
	"fmt"
	"strings"

	"github.com/kozaktomas/photo-mapper/internal/namematch"
	"github.com/kozaktomas/photo-mapper/internal/photos"
	"github.com/kozaktomas/photo-mapper/internal/players"
)

// Result bundles the engine report with the rows ready for CSV output.
type Result struct {
	Report *namematch.Report
	Rows   []players.MappingRow
}

// Run matches roster records against discovered photos. Records already
// flagged as valid mappings are passed through untouched; external-ID
// equality resolves the direct tier before any name scoring happens.
func Run(ctx context.Context, matcher *namematch.Matcher, records []players.Record, photoList []photos.Photo) (*Result, error) {
	unresolved := make([]players.Record, 0, len(records))
	for _, rec := range records {
		if !rec.ValidMapping {
			unresolved = append(unresolved, rec)
		}
	}

	playerRefs := make([]namematch.PlayerRef, 0, len(unresolved))
	for _, rec := range unresolved {
		playerRefs = append(playerRefs, namematch.NewPlayerRef(rec.PlayerID, rec.DisplayName()))
	}

	candidates := make([]namematch.PhotoCandidate, 0, len(photoList))
	for _, p := range photoList {
		candidates = append(candidates, namematch.NewPhotoCandidate(p.Path, p.DisplayName, p.ExternalID))
	}

	direct := directMatches(playerRefs, unresolved, candidates)

	report, err := matcher.Run(ctx, playerRefs, candidates, direct)
	if err != nil && report == nil {
		return nil, err
	}

	result := &Result{
		Report: report,
		Rows:   buildRows(records, report),
	}
	return result, err
}

// directMatches pairs players and candidates by external-ID equality. Each
// ID is consumed at most once on either side; candidates consumed here never
// enter the scored pool.
func directMatches(playerRefs []namematch.PlayerRef, records []players.Record, candidates []namematch.PhotoCandidate) []namematch.DirectMatch {
	byExternalID := make(map[string]string, len(candidates))
	for _, c := range candidates {
		if c.ExternalID == "" {
			continue
		}
		if _, dup := byExternalID[c.ExternalID]; !dup {
			byExternalID[c.ExternalID] = c.ID
		}
	}

	var direct []namematch.DirectMatch
	used := make(map[string]bool)
	for i, ref := range playerRefs {
		externalID := records[i].ExternalID
		if externalID == "" {
			continue
		}
		photoID, ok := byExternalID[externalID]
		if !ok || used[photoID] {
			continue
		}
		used[photoID] = true
		direct = append(direct, namematch.DirectMatch{PlayerID: ref.ID, PhotoID: photoID})
	}
	return direct
}

// buildRows merges engine outcomes back into the full roster, including the
// rows that were already valid before the run.
func buildRows(records []players.Record, report *namematch.Report) []players.MappingRow {
	outcomes := make(map[string]namematch.MatchOutcome, len(report.Outcomes))
	for _, o := range report.Outcomes {
		outcomes[o.PlayerID] = o
	}

	rows := make([]players.MappingRow, 0, len(records))
	for _, rec := range records {
		row := players.MappingRow{Record: rec}
		if rec.ValidMapping {
			rows = append(rows, row)
			continue
		}
		if o, ok := outcomes[rec.PlayerID]; ok {
			if o.Matched {
				row.ValidMapping = true
				row.Confidence = o.Confidence
				row.PhotoFile = o.PhotoID
				row.Method = string(o.Method)
			} else {
				row.ValidMapping = false
				row.Confidence = 0
				row.Reason = string(o.Reason)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary renders a run report as markdown, the format the validation
// tooling archives next to the mapping CSV.
func Summary(result *Result) string {
	c := result.Report.Counters

	var b strings.Builder
	fmt.Fprintf(&b, "# Mapping run %s\n\n", result.Report.RunID)
	fmt.Fprintf(&b, "| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Players | %d |\n", c.Players)
	fmt.Fprintf(&b, "| Photo candidates | %d |\n", c.Candidates)
	fmt.Fprintf(&b, "| Direct ID matches | %d |\n", c.DirectMatches)
	fmt.Fprintf(&b, "| Deterministic matches | %d |\n", c.DeterministicMatches)
	fmt.Fprintf(&b, "| AI pass 1 matches | %d |\n", c.AIPass1Matches)
	fmt.Fprintf(&b, "| AI pass 2 matches | %d |\n", c.AIPass2Matches)
	fmt.Fprintf(&b, "| Unmatched | %d |\n", c.Unmatched)
	fmt.Fprintf(&b, "| Comparator calls | %d |\n", c.ComparatorCalls)
	fmt.Fprintf(&b, "| Failed comparator calls | %d |\n", c.FailedComparatorCalls)
	if c.InputTokens > 0 || c.OutputTokens > 0 {
		fmt.Fprintf(&b, "| Tokens in/out | %d / %d |\n", c.InputTokens, c.OutputTokens)
	}

	unmatched := make([]namematch.MatchOutcome, 0)
	for _, o := range result.Report.Outcomes {
		if !o.Matched {
			unmatched = append(unmatched, o)
		}
	}
	if len(unmatched) > 0 {
		b.WriteString("\n## Unmatched players\n\n")
		for _, o := range unmatched {
			fmt.Fprintf(&b, "- %s (%s)\n", o.PlayerID, o.Reason)
		}
	}
	return b.String()
}
