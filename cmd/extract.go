package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-mapper/internal/config"
	"github.com/kozaktomas/photo-mapper/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a player roster from the club database into a CSV file",
	Long: `Extract runs a SQL query against the club database (MySQL/MariaDB or
PostgreSQL, selected by the DATABASE_URL scheme) and writes the result set
as a CSV roster file ready for the map command.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("query", "i", "", "Path to the SQL query file (required)")
	extractCmd.Flags().String("team", "", "Team identifier passed as the query parameter")
	extractCmd.Flags().StringP("output", "o", "players.csv", "Output CSV file")
	_ = extractCmd.MarkFlagRequired("query")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	queryPath := mustGetString(cmd, "query")
	team := mustGetString(cmd, "team")
	output := mustGetString(cmd, "output")

	postgres := strings.HasPrefix(cfg.Database.URL, "postgres://")
	query, err := extract.LoadQuery(queryPath, postgres)
	if err != nil {
		return fmt.Errorf("loading query: %w", err)
	}

	db, err := extract.Open(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var queryArgs []any
	if team != "" {
		queryArgs = append(queryArgs, team)
	}

	rows, err := extract.Run(cmd.Context(), db, query, output, queryArgs...)
	if err != nil {
		return fmt.Errorf("extracting roster: %w", err)
	}

	fmt.Printf("Extracted %d players to %s\n", rows, output)
	return nil
}
