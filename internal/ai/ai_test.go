package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// --- parseComparison tests ---

func TestParseComparison_PlainJSON(t *testing.T) {
	comparison, err := parseComparison(`{"confidence": 0.92, "reasoning": "same person, reordered"}`)
	if err != nil {
		t.Fatalf("parseComparison failed: %v", err)
	}
	if comparison.Confidence != 0.92 {
		t.Errorf("expected confidence 0.92, got %v", comparison.Confidence)
	}
	if comparison.Reasoning != "same person, reordered" {
		t.Errorf("unexpected reasoning: %q", comparison.Reasoning)
	}
}

func TestParseComparison_MarkdownFences(t *testing.T) {
	content := "```json\n{\"confidence\": 0.5}\n```"
	comparison, err := parseComparison(content)
	if err != nil {
		t.Fatalf("parseComparison failed: %v", err)
	}
	if comparison.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", comparison.Confidence)
	}
}

func TestParseComparison_ClampsConfidence(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{`{"confidence": 1.7}`, 1},
		{`{"confidence": -0.3}`, 0},
		{`{"confidence": 0}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			comparison, err := parseComparison(tt.input)
			if err != nil {
				t.Fatalf("parseComparison failed: %v", err)
			}
			if comparison.Confidence != tt.expected {
				t.Errorf("expected confidence %v, got %v", tt.expected, comparison.Confidence)
			}
		})
	}
}

func TestParseComparison_MalformedJSON(t *testing.T) {
	if _, err := parseComparison(`{"confidence": `); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

// --- buildCompareContent tests ---

func TestBuildCompareContent(t *testing.T) {
	content := buildCompareContent("  Juan Rodríguez ", "Rodriguez_Juan")
	if !strings.Contains(content, "Name A: Juan Rodríguez\n") {
		t.Errorf("missing trimmed name A: %q", content)
	}
	if !strings.Contains(content, "Name B: Rodriguez_Juan\n") {
		t.Errorf("missing name B: %q", content)
	}
}

func TestNameComparePromptEmbedded(t *testing.T) {
	if !strings.Contains(nameComparePrompt, "confidence") {
		t.Error("embedded prompt should describe the confidence field")
	}
}

// --- usage accounting ---

func TestOllamaConcurrentUsageTracking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"model": "llama3.2",
			"message": {"role": "assistant", "content": "{\"confidence\": 0.9}"},
			"done": true,
			"prompt_eval_count": 10,
			"eval_count": 5
		}`)
	}))
	defer server.Close()

	p := NewOllamaComparator(server.URL, "llama3.2")

	const calls = 20
	var wg sync.WaitGroup
	for range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.CompareNames(context.Background(), "Garcia Juan", "Garcia J."); err != nil {
				t.Errorf("CompareNames failed: %v", err)
			}
		}()
	}
	wg.Wait()

	usage := p.GetUsage()
	if usage.InputTokens != calls*10 || usage.OutputTokens != calls*5 {
		t.Errorf("usage = %d in / %d out, want %d / %d",
			usage.InputTokens, usage.OutputTokens, calls*10, calls*5)
	}

	p.ResetUsage()
	if u := p.GetUsage(); u.InputTokens != 0 || u.OutputTokens != 0 {
		t.Errorf("usage not reset: %+v", u)
	}
}
