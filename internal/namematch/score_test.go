package namematch

import "testing"

func testScorer() *Scorer {
	return NewScorer(DefaultConfig())
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"Juan Rodríguez", "Rodriguez Juan"},
		{"Messi Lionel", "Ramos Sergio"},
		{"Silva David", "Silva David dos Santos"},
		{"Garcia Juan", "Garcia J."},
		{"Dani Carvajal", "Daniel Carvajal"},
		{"", "Ana López"},
	}

	scorer := testScorer()
	for _, pair := range pairs {
		a := Normalize(pair[0])
		b := Normalize(pair[1])
		ab, abVariant := scorer.Score(a, b)
		ba, baVariant := scorer.Score(b, a)
		if ab != ba {
			t.Errorf("Score(%q, %q) = %v but reversed = %v", pair[0], pair[1], ab, ba)
		}
		if abVariant != baVariant {
			t.Errorf("near-variant flag not symmetric for (%q, %q)", pair[0], pair[1])
		}
	}
}

func TestScoreTokenOrderInvariance(t *testing.T) {
	a := Normalize("Rodríguez Sánchez, Isco")
	b := Normalize("Isco Rodríguez Sánchez")
	score, _ := testScorer().Score(a, b)
	if score < 0.95 {
		t.Errorf("reordered identical tokens scored %v, want >= 0.95", score)
	}
}

func TestScoreExactMatch(t *testing.T) {
	a := Normalize("Ana López")
	b := Normalize("ana lopez")
	score, _ := testScorer().Score(a, b)
	if score != 1 {
		t.Errorf("identical normalized strings scored %v, want 1", score)
	}
}

func TestScoreIdenticalSingleTokenStaysCapped(t *testing.T) {
	// A lone identical surname is still one overlapping token; the weak
	// overlap cap keeps it out of the confident range.
	score, _ := testScorer().Score(Normalize("Garcia"), Normalize("Garcia"))
	if score > DefaultConfig().WeakOverlapCap {
		t.Errorf("identical single token scored %v, want <= %v", score, DefaultConfig().WeakOverlapCap)
	}
}

func TestScoreExactMatchWithDigitID(t *testing.T) {
	// A shared digit ID lifts a single-token name out of the weak range.
	score, _ := testScorer().Score(Normalize("Garcia_250101503"), Normalize("Garcia 250101503"))
	if score != 1 {
		t.Errorf("identical name+ID scored %v, want 1", score)
	}
}

func TestScoreZeroOverlapCap(t *testing.T) {
	a := Normalize("Messi Lionel")
	b := Normalize("Ramos Sergio")
	score, _ := testScorer().Score(a, b)
	if score >= 0.5 {
		t.Errorf("disjoint names scored %v, want < 0.5", score)
	}
}

func TestScoreSubsetBoost(t *testing.T) {
	a := Normalize("Silva David")
	b := Normalize("Silva David dos Santos")
	score, _ := testScorer().Score(a, b)
	if score < 0.9 {
		t.Errorf("strict token subset scored %v, want >= 0.9", score)
	}
}

func TestScoreWeakOverlapCap(t *testing.T) {
	// Only the surname overlaps; weak evidence must never reach the
	// confident range on its own.
	a := Normalize("Garcia Juan")
	b := Normalize("Garcia Pedro")
	score, _ := testScorer().Score(a, b)
	if score > DefaultConfig().WeakOverlapCap {
		t.Errorf("single-token overlap scored %v, want <= %v", score, DefaultConfig().WeakOverlapCap)
	}
}

func TestScoreEmptySignature(t *testing.T) {
	score, _ := testScorer().Score(Normalize(""), Normalize("Ana López"))
	if score != 0 {
		t.Errorf("empty signature scored %v, want 0", score)
	}
}

func TestNearVariantFlag(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		variant bool
	}{
		{"prefix form", "Dani Carvajal", "Daniel Carvajal", true},
		{"close edit distance", "Sergi Roberto", "Sergio Roberto", true},
		{"unrelated", "Messi Lionel", "Ramos Sergio", false},
		{"same first letter only", "Juan Garcia", "Jimena Garcia", false},
	}

	scorer := testScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, variant := scorer.Score(Normalize(tt.a), Normalize(tt.b))
			if variant != tt.variant {
				t.Errorf("near-variant(%q, %q) = %v, want %v", tt.a, tt.b, variant, tt.variant)
			}
		})
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"rodriguez", "rodriguez", 1},
		{"", "", 1},
		{"abc", "xyz", 0},
	}

	for _, tt := range tests {
		if got := levenshteinSimilarity(tt.a, tt.b); got != tt.expected {
			t.Errorf("levenshteinSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}

	if sim := levenshteinSimilarity("rodriguez", "rodrigues"); sim <= 0.8 {
		t.Errorf("one-edit similarity = %v, want > 0.8", sim)
	}
}

func TestScoreBounded(t *testing.T) {
	inputs := []string{"", "Messi", "Juan Rodríguez", "Claudia_Pina_250101503", "a b c d e f"}
	scorer := testScorer()
	for _, x := range inputs {
		for _, y := range inputs {
			score, _ := scorer.Score(Normalize(x), Normalize(y))
			if score < 0 || score > 1 {
				t.Errorf("Score(%q, %q) = %v out of [0,1]", x, y, score)
			}
		}
	}
}
