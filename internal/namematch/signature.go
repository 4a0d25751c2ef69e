// Package namematch resolves unresolved players against unresolved portrait
// photos using person-name evidence. It runs a cheap deterministic tier first
// and escalates only ambiguous rows to an AI name comparator.
package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameSignature is the normalized, tokenized representation of a raw name.
// It is a pure function of the input string and is never mutated.
type NameSignature struct {
	// Normalized is the full folded string, digit tokens included.
	Normalized string
	// Tokens are the name tokens in order, all-digit tokens excluded.
	Tokens []string

	tokenSet map[string]struct{}
}

// RemoveDiacritics removes diacritical marks from a string (e.g., "Rodríguez" -> "Rodriguez").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Normalize canonicalizes a raw person name into a comparable signature.
// It is total: empty or garbage input yields an empty signature.
func Normalize(raw string) NameSignature {
	s := strings.ReplaceAll(raw, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = RemoveDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	fields := strings.Fields(b.String())
	normalized := strings.Join(fields, " ")

	sig := NameSignature{
		Normalized: normalized,
		tokenSet:   make(map[string]struct{}, len(fields)),
	}
	for _, tok := range fields {
		// All-digit tokens are identifiers, not name parts. They stay in
		// Normalized for exact-string comparison but never drive matching.
		if isDigits(tok) {
			continue
		}
		if _, seen := sig.tokenSet[tok]; seen {
			continue
		}
		sig.Tokens = append(sig.Tokens, tok)
		sig.tokenSet[tok] = struct{}{}
	}
	return sig
}

// Empty reports whether the signature carries no usable name evidence.
func (s NameSignature) Empty() bool {
	return len(s.Tokens) == 0 && s.Normalized == ""
}

func (s NameSignature) hasToken(tok string) bool {
	_, ok := s.tokenSet[tok]
	return ok
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
