package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-mapper/internal/players"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compare a mapping run against a reference mapping",
	Long: `Validate compares the output of a map run against a reference mapping
(usually a hand-checked run) and reports agreements, photo mismatches and
players matched in only one of the two files.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("run", "", "Mapping CSV produced by the map command (required)")
	validateCmd.Flags().String("reference", "", "Reference mapping CSV (required)")
	validateCmd.Flags().StringP("output", "o", "", "Write the markdown report to this file instead of stdout")
	validateCmd.Flags().Bool("strict", false, "Exit with an error when any difference is found")
	_ = validateCmd.MarkFlagRequired("run")
	_ = validateCmd.MarkFlagRequired("reference")
}

type validationDiff struct {
	agreements    int
	photoMismatch []string
	onlyRun       []string
	onlyReference []string
}

func (d validationDiff) clean() bool {
	return len(d.photoMismatch) == 0 && len(d.onlyRun) == 0 && len(d.onlyReference) == 0
}

func runValidate(cmd *cobra.Command, args []string) error {
	runRows, err := players.LoadMapping(mustGetString(cmd, "run"))
	if err != nil {
		return fmt.Errorf("loading run: %w", err)
	}
	refRows, err := players.LoadMapping(mustGetString(cmd, "reference"))
	if err != nil {
		return fmt.Errorf("loading reference: %w", err)
	}

	diff := compareMappings(runRows, refRows)
	report := validationReport(diff)

	if output := mustGetString(cmd, "output"); output != "" {
		if err := os.WriteFile(output, []byte(report), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Wrote validation report to %s\n", output)
	} else {
		fmt.Print(report)
	}

	if mustGetBool(cmd, "strict") && !diff.clean() {
		return fmt.Errorf("validation found %d differences",
			len(diff.photoMismatch)+len(diff.onlyRun)+len(diff.onlyReference))
	}
	return nil
}

// compareMappings diffs two mapping files by player ID. Only rows flagged as
// valid mappings count as matched.
func compareMappings(runRows, refRows []players.MappingRow) validationDiff {
	ref := make(map[string]players.MappingRow, len(refRows))
	for _, row := range refRows {
		ref[row.PlayerID] = row
	}

	var diff validationDiff
	seen := make(map[string]bool, len(runRows))
	for _, row := range runRows {
		seen[row.PlayerID] = true
		refRow, ok := ref[row.PlayerID]
		switch {
		case row.ValidMapping && (!ok || !refRow.ValidMapping):
			diff.onlyRun = append(diff.onlyRun,
				fmt.Sprintf("%s -> %s (%s)", row.PlayerID, row.PhotoFile, row.Method))
		case !row.ValidMapping && ok && refRow.ValidMapping:
			diff.onlyReference = append(diff.onlyReference,
				fmt.Sprintf("%s -> %s", refRow.PlayerID, refRow.PhotoFile))
		case row.ValidMapping && refRow.ValidMapping && row.PhotoFile != refRow.PhotoFile:
			diff.photoMismatch = append(diff.photoMismatch,
				fmt.Sprintf("%s: run %s, reference %s", row.PlayerID, row.PhotoFile, refRow.PhotoFile))
		case row.ValidMapping && refRow.ValidMapping:
			diff.agreements++
		}
	}
	for _, row := range refRows {
		if !seen[row.PlayerID] && row.ValidMapping {
			diff.onlyReference = append(diff.onlyReference,
				fmt.Sprintf("%s -> %s", row.PlayerID, row.PhotoFile))
		}
	}
	return diff
}

func validationReport(diff validationDiff) string {
	var b strings.Builder
	b.WriteString("# Validation report\n\n")
	fmt.Fprintf(&b, "| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Agreements | %d |\n", diff.agreements)
	fmt.Fprintf(&b, "| Photo mismatches | %d |\n", len(diff.photoMismatch))
	fmt.Fprintf(&b, "| Matched only in run | %d |\n", len(diff.onlyRun))
	fmt.Fprintf(&b, "| Matched only in reference | %d |\n", len(diff.onlyReference))

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	section("Photo mismatches", diff.photoMismatch)
	section("Matched only in run", diff.onlyRun)
	section("Matched only in reference", diff.onlyReference)
	return b.String()
}
