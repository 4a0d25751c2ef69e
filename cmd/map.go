package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-mapper/internal/config"
	"github.com/kozaktomas/photo-mapper/internal/mapper"
	"github.com/kozaktomas/photo-mapper/internal/namematch"
	"github.com/kozaktomas/photo-mapper/internal/photos"
	"github.com/kozaktomas/photo-mapper/internal/players"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map player photos to roster records by name",
	Long: `Map loads a roster CSV and a photo directory, matches photos to players
and writes the roster back with the mapping columns filled in.

External-ID matches and confident name matches are resolved without any AI
calls; only the ambiguous remainder is escalated to the selected comparator.`,
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)

	mapCmd.Flags().String("players", "", "Path to the roster CSV file (required)")
	mapCmd.Flags().String("photos", "", "Path to the photo directory (required)")
	mapCmd.Flags().StringP("output", "o", "mapping.csv", "Output CSV file")
	mapCmd.Flags().String("summary", "", "Write a markdown run summary to this file")
	mapCmd.Flags().String("ai", "none", "AI comparator: openai, gemini, ollama or none")
	mapCmd.Flags().Float64("threshold", 0, "Override the deterministic accept threshold")
	mapCmd.Flags().Float64("margin", 0, "Override the ambiguity margin")
	mapCmd.Flags().Bool("two-pass", true, "Run the second, wider AI pass")
	mapCmd.Flags().Int("concurrency", 0, "Override the number of parallel comparator calls")
	mapCmd.Flags().Bool("json", false, "Print the full run report as JSON")
	_ = mapCmd.MarkFlagRequired("players")
	_ = mapCmd.MarkFlagRequired("photos")
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	records, err := players.Load(mustGetString(cmd, "players"))
	if err != nil {
		return fmt.Errorf("loading players: %w", err)
	}

	photoList, err := photos.ScanDir(mustGetString(cmd, "photos"))
	if err != nil {
		return fmt.Errorf("scanning photos: %w", err)
	}

	fmt.Printf("Loaded %d players and %d photos\n", len(records), len(photoList))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	comparator, err := buildComparator(ctx, cfg, mustGetString(cmd, "ai"))
	if err != nil {
		return err
	}

	engineCfg := engineConfigFromFlags(cmd, cfg)
	matcher := namematch.New(engineCfg, comparator)
	attachProgress(matcher)

	result, runErr := mapper.Run(ctx, matcher, records, photoList)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Run interrupted: %v (writing partial results)\n", runErr)
	}

	output := mustGetString(cmd, "output")
	if err := players.WriteMapping(output, result.Rows); err != nil {
		return fmt.Errorf("writing mapping: %w", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(result.Rows), output)

	if summaryPath := mustGetString(cmd, "summary"); summaryPath != "" {
		if err := os.WriteFile(summaryPath, []byte(mapper.Summary(result)), 0o644); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		fmt.Printf("Wrote summary to %s\n", summaryPath)
	}

	printCounters(result.Report)

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	}

	return runErr
}

// engineConfigFromFlags merges flag overrides on top of the configured
// engine constants. Zero-valued flags that were not passed keep the config.
func engineConfigFromFlags(cmd *cobra.Command, cfg *config.Config) namematch.Config {
	engineCfg := cfg.Matcher.Engine()
	if cmd.Flags().Changed("threshold") {
		engineCfg.AcceptThreshold = mustGetFloat64(cmd, "threshold")
	}
	if cmd.Flags().Changed("margin") {
		engineCfg.AmbiguityMargin = mustGetFloat64(cmd, "margin")
	}
	if cmd.Flags().Changed("two-pass") {
		engineCfg.TwoPass = mustGetBool(cmd, "two-pass")
	}
	if cmd.Flags().Changed("concurrency") {
		engineCfg.Concurrency = mustGetInt(cmd, "concurrency")
	}
	return engineCfg
}

// attachProgress wires a progress bar to the AI fallback passes. The bar is
// recreated whenever the phase changes because each pass has its own total.
func attachProgress(matcher *namematch.Matcher) {
	var bar *progressbar.ProgressBar
	var phase string
	matcher.OnProgress = func(info namematch.ProgressInfo) {
		if bar == nil || info.Phase != phase {
			phase = info.Phase
			bar = progressbar.NewOptions(info.Total,
				progressbar.OptionSetDescription(fmt.Sprintf("Matching (%s)", info.Phase)),
				progressbar.OptionShowCount(),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString("players"),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionFullWidth(),
			)
		}
		_ = bar.Set(info.Current)
		if info.Current == info.Total {
			_ = bar.Finish()
			fmt.Println()
		}
	}
}

func printCounters(report *namematch.Report) {
	c := report.Counters
	fmt.Printf("Direct matches:        %d\n", c.DirectMatches)
	fmt.Printf("Deterministic matches: %d\n", c.DeterministicMatches)
	fmt.Printf("AI pass 1 matches:     %d\n", c.AIPass1Matches)
	fmt.Printf("AI pass 2 matches:     %d\n", c.AIPass2Matches)
	fmt.Printf("Unmatched:             %d\n", c.Unmatched)
	if c.ComparatorCalls > 0 {
		fmt.Printf("Comparator calls:      %d (%d failed)\n", c.ComparatorCalls, c.FailedComparatorCalls)
		fmt.Printf("Tokens:                %d in / %d out\n", c.InputTokens, c.OutputTokens)
	}
}
