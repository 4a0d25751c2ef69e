package namematch

import (
	"reflect"
	"testing"
)

func TestRemoveDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Rodríguez", "Rodriguez"},
		{"Sánchez", "Sanchez"},
		{"Jiří", "Jiri"},
		{"naïve", "naive"},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := RemoveDiacritics(tt.input)
			if result != tt.expected {
				t.Errorf("RemoveDiacritics(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		normalized string
		tokens     []string
	}{
		{"plain", "Juan Rodríguez", "juan rodriguez", []string{"juan", "rodriguez"}},
		{"underscores and dash", "Claudia_Pina-Medina", "claudia pina medina", []string{"claudia", "pina", "medina"}},
		{"punctuation dropped", "Rodríguez Sánchez, Isco", "rodriguez sanchez isco", []string{"rodriguez", "sanchez", "isco"}},
		{"digit token kept in string only", "Claudia_Pina_250101503", "claudia pina 250101503", []string{"claudia", "pina"}},
		{"apostrophe", "O'Neil", "oneil", []string{"oneil"}},
		{"whitespace collapsed", "  Ana   López  ", "ana lopez", []string{"ana", "lopez"}},
		{"empty", "", "", nil},
		{"only digits", "123456", "123456", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Normalize(tt.input)
			if sig.Normalized != tt.normalized {
				t.Errorf("Normalized = %q, want %q", sig.Normalized, tt.normalized)
			}
			if !reflect.DeepEqual(sig.Tokens, tt.tokens) {
				t.Errorf("Tokens = %v, want %v", sig.Tokens, tt.tokens)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"Juan Rodríguez", "Claudia_Pina_250101503", "Žluťoučký kůň", ""}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once.Normalized)
		if twice.Normalized != once.Normalized {
			t.Errorf("re-normalizing %q changed string: %q -> %q", input, once.Normalized, twice.Normalized)
		}
		if !reflect.DeepEqual(twice.Tokens, once.Tokens) {
			t.Errorf("re-normalizing %q changed tokens: %v -> %v", input, once.Tokens, twice.Tokens)
		}
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	a := Normalize("Isco Rodríguez Sánchez")
	b := Normalize("Isco Rodríguez Sánchez")
	if a.Normalized != b.Normalized || !reflect.DeepEqual(a.Tokens, b.Tokens) {
		t.Error("same raw string must always yield the same signature")
	}
}

func TestSignatureEmpty(t *testing.T) {
	if !Normalize("").Empty() {
		t.Error("empty input should yield an empty signature")
	}
	if Normalize("Messi").Empty() {
		t.Error("non-empty input should not be empty")
	}
}
