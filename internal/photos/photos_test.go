package photos

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename   string
		name       string
		externalID string
	}{
		{"Claudia_Pina_250101503.jpg", "Claudia Pina", "250101503"},
		{"Rodriguez_Juan.png", "Rodriguez Juan", ""},
		{"Mariona-Caldentey-250101088.jpeg", "Mariona Caldentey", "250101088"},
		{"Salma_Paralluelo_Ayingono_250101566.jpg", "Salma Paralluelo Ayingono", "250101566"},
		{"250101503.jpg", "250101503", ""},
		{"single.webp", "single", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, externalID := ParseFilename(tt.filename)
			if name != tt.name {
				t.Errorf("name = %q, want %q", name, tt.name)
			}
			if externalID != tt.externalID {
				t.Errorf("externalID = %q, want %q", externalID, tt.externalID)
			}
		})
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"Claudia_Pina_250101503.jpg",
		"Lopez_Ana.png",
		"notes.txt",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	photos, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	if len(photos) != 2 {
		t.Fatalf("expected 2 photos (txt and subdir skipped), got %d", len(photos))
	}
	if photos[0].Path != "Claudia_Pina_250101503.jpg" || photos[0].ExternalID != "250101503" {
		t.Errorf("unexpected first photo: %+v", photos[0])
	}
	if photos[1].DisplayName != "Lopez Ana" {
		t.Errorf("unexpected second photo: %+v", photos[1])
	}
}

func TestScanDirManifestOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "img001.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	manifest := "img001.jpg:\n  name: Aitana Bonmatí\n  externalId: \"250101445\"\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	photos, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(photos))
	}
	if photos[0].DisplayName != "Aitana Bonmatí" || photos[0].ExternalID != "250101445" {
		t.Errorf("manifest override not applied: %+v", photos[0])
	}
}

func TestScanDirMissing(t *testing.T) {
	if _, err := ScanDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
