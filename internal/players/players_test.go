package players

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTemp(t, strings.Join([]string{
		"PlayerId,TeamId,FamilyName,SurName,ExternalId,ValidMapping,Confidence,FullName",
		"101,7,Rodríguez,Juan,250101503,false,0,",
		"102,7,López,Ana,,true,0.97,Ana López",
		"",
	}, "\n"))

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.PlayerID != "101" || first.FamilyName != "Rodríguez" || first.ExternalID != "250101503" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.DisplayName() != "Rodríguez Juan" {
		t.Errorf("DisplayName = %q, want %q", first.DisplayName(), "Rodríguez Juan")
	}

	second := records[1]
	if !second.ValidMapping || second.Confidence != 0.97 {
		t.Errorf("unexpected second record: %+v", second)
	}
	if second.DisplayName() != "Ana López" {
		t.Errorf("FullName should win: got %q", second.DisplayName())
	}
}

func TestLoadWithBOMAndReorderedColumns(t *testing.T) {
	path := writeTemp(t, "\uFEFFFullName,PlayerId\nLionel Messi,30\n")

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 || records[0].PlayerID != "30" || records[0].FullName != "Lionel Messi" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestLoadMissingPlayerIDColumn(t *testing.T) {
	path := writeTemp(t, "Name,Team\nfoo,bar\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for CSV without PlayerId column")
	}
}

func TestWriteMappingRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.csv")
	rows := []MappingRow{
		{
			Record: Record{
				PlayerID:     "101",
				TeamID:       "7",
				FamilyName:   "Rodríguez",
				SurName:      "Juan",
				ValidMapping: true,
				Confidence:   0.97,
			},
			PhotoFile: "Rodriguez_Juan_250101503.jpg",
			Method:    "deterministic",
		},
		{
			Record: Record{PlayerID: "102", FamilyName: "López", SurName: "Ana"},
			Reason: "no-confident-candidate",
		},
	}

	if err := WriteMapping(path, rows); err != nil {
		t.Fatalf("WriteMapping failed: %v", err)
	}

	loaded, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("LoadMapping of written file failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(loaded))
	}
	if !loaded[0].ValidMapping || loaded[0].Confidence != 0.97 {
		t.Errorf("unexpected round-tripped row: %+v", loaded[0])
	}
	if loaded[0].PhotoFile != "Rodriguez_Juan_250101503.jpg" || loaded[0].Method != "deterministic" {
		t.Errorf("resolution columns lost: %+v", loaded[0])
	}
	if loaded[1].ValidMapping || loaded[1].Reason != "no-confident-candidate" {
		t.Errorf("unexpected unmatched row: %+v", loaded[1])
	}
}

func TestLoadMappingAcceptsPlainRoster(t *testing.T) {
	path := writeTemp(t, "PlayerId,FullName\n30,Lionel Messi\n")

	rows, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("LoadMapping failed: %v", err)
	}
	if len(rows) != 1 || rows[0].PhotoFile != "" || rows[0].Method != "" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}
