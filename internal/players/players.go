// Package players reads and writes the roster CSV files the mapper consumes
// and produces.
package players

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record is one roster row. The column set matches the extraction output:
// PlayerId, TeamId, FamilyName, SurName, ExternalId, ValidMapping,
// Confidence, FullName.
type Record struct {
	PlayerID     string
	TeamID       string
	FamilyName   string
	SurName      string
	ExternalID   string
	ValidMapping bool
	Confidence   float64
	FullName     string
}

// DisplayName returns the name string used for matching: the explicit
// FullName when present, otherwise family and given name joined.
func (r Record) DisplayName() string {
	if r.FullName != "" {
		return r.FullName
	}
	return strings.TrimSpace(r.FamilyName + " " + r.SurName)
}

var header = []string{
	"PlayerId", "TeamId", "FamilyName", "SurName",
	"ExternalId", "ValidMapping", "Confidence", "FullName",
}

// Load reads a roster CSV. Column order is taken from the header row, so
// files with extra or reordered columns still load. A UTF-8 BOM on the
// first header cell is tolerated.
func Load(path string) ([]Record, error) {
	rows, err := LoadMapping(path)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = row.Record
	}
	return records, nil
}

// LoadMapping reads a mapping CSV produced by WriteMapping. It also accepts
// plain roster files; the resolution columns are then left empty.
func LoadMapping(path string) ([]MappingRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open players CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse players CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	head := rows[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\uFEFF")
	}
	col := make(map[string]int, len(head))
	for i, name := range head {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["playerid"]; !ok {
		return nil, fmt.Errorf("players CSV %s has no PlayerId column", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	mapped := make([]MappingRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		rec := Record{
			PlayerID:   field(row, "playerid"),
			TeamID:     field(row, "teamid"),
			FamilyName: field(row, "familyname"),
			SurName:    field(row, "surname"),
			ExternalID: field(row, "externalid"),
			FullName:   field(row, "fullname"),
		}
		if rec.PlayerID == "" {
			continue
		}
		if v := field(row, "validmapping"); v != "" {
			rec.ValidMapping, _ = strconv.ParseBool(v)
		}
		if v := field(row, "confidence"); v != "" {
			rec.Confidence, _ = strconv.ParseFloat(v, 64)
		}
		mapped = append(mapped, MappingRow{
			Record:    rec,
			PhotoFile: field(row, "photofile"),
			Method:    field(row, "method"),
			Reason:    field(row, "reason"),
		})
	}
	return mapped, nil
}

// MappingRow is one output row of a map run: the original record plus the
// resolution verdict.
type MappingRow struct {
	Record
	PhotoFile string
	Method    string
	Reason    string
}

// WriteMapping persists mapping results as CSV, keeping the roster columns
// and appending the resolution columns.
func WriteMapping(path string, rows []MappingRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mapping CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	out := make([]string, 0, len(header)+3)
	out = append(out, header...)
	out = append(out, "PhotoFile", "Method", "Reason")
	if err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.PlayerID,
			row.TeamID,
			row.FamilyName,
			row.SurName,
			row.ExternalID,
			strconv.FormatBool(row.ValidMapping),
			strconv.FormatFloat(row.Confidence, 'f', 4, 64),
			row.FullName,
			row.PhotoFile,
			row.Method,
			row.Reason,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush mapping CSV: %w", err)
	}
	return nil
}
