// Package extract pulls roster rows out of a club database and writes the
// players CSV the map command consumes.
package extract

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Open creates a connection pool for the given DSN. PostgreSQL URLs
// (postgres:// or postgresql://) use the pq driver; anything else is treated
// as a MySQL/MariaDB DSN.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	driver := "mysql"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "postgres"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Run executes the roster query and writes every returned column to a CSV
// file, header first. args are bound to the query placeholders (team ID in
// the stock query).
func Run(ctx context.Context, db *sql.DB, query string, outPath string, args ...any) (int, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("roster query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("failed to read result columns: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	values := make([]sql.NullString, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	count := 0
	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return count, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			record[i] = v.String
		}
		if err := w.Write(record); err != nil {
			return count, fmt.Errorf("failed to write CSV row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, fmt.Errorf("roster iteration failed: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return count, fmt.Errorf("failed to flush output CSV: %w", err)
	}
	return count, nil
}

// LoadQuery reads the SQL file for the extract command. A single "?"
// placeholder is rewritten to "$1" for PostgreSQL connections.
func LoadQuery(path string, postgres bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	query := strings.TrimSpace(string(data))
	if postgres {
		query = strings.Replace(query, "?", "$1", 1)
	}
	return query, nil
}
