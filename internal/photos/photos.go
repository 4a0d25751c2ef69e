// Package photos discovers portrait photo files and extracts the name
// evidence carried by their filenames or by an optional manifest.
package photos

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Photo is one discovered portrait candidate.
type Photo struct {
	// Path is the file path relative to the scanned directory; it doubles
	// as the candidate's stable identifier.
	Path string
	// DisplayName is the person name extracted from the filename or the
	// manifest. May be empty when the filename carries no name.
	DisplayName string
	// ExternalID is the trailing numeric identifier, when present.
	ExternalID string
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".webp": true,
}

// ManifestName is the optional per-directory manifest overriding extracted
// names.
const ManifestName = "photos.yaml"

type manifestEntry struct {
	Name       string `yaml:"name"`
	ExternalID string `yaml:"externalId"`
}

// ScanDir lists the image files directly inside dir, parses their
// filenames, applies the manifest when one exists, and returns the photos
// sorted by path for reproducible runs.
func ScanDir(dir string) ([]Photo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo directory: %w", err)
	}

	manifest, err := loadManifest(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}

	var photos []Photo
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		name, externalID := ParseFilename(entry.Name())
		if override, ok := manifest[entry.Name()]; ok {
			if override.Name != "" {
				name = override.Name
			}
			if override.ExternalID != "" {
				externalID = override.ExternalID
			}
		}
		photos = append(photos, Photo{
			Path:        entry.Name(),
			DisplayName: name,
			ExternalID:  externalID,
		})
	}

	sort.Slice(photos, func(i, j int) bool { return photos[i].Path < photos[j].Path })
	return photos, nil
}

// ParseFilename splits a portrait filename like "Claudia_Pina_250101503.jpg"
// into the person name and the trailing numeric external ID. Underscores and
// dashes both act as separators; a missing trailing number yields an empty
// external ID.
func ParseFilename(filename string) (name, externalID string) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ReplaceAll(stem, "-", "_")

	parts := strings.Split(stem, "_")
	if len(parts) > 1 && isDigits(parts[len(parts)-1]) {
		externalID = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	var nameParts []string
	for _, p := range parts {
		if p != "" {
			nameParts = append(nameParts, p)
		}
	}
	return strings.Join(nameParts, " "), externalID
}

func loadManifest(path string) (map[string]manifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read photo manifest: %w", err)
	}

	var manifest map[string]manifestEntry
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse photo manifest: %w", err)
	}
	return manifest, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
