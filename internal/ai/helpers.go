package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildCompareContent builds the user message for one name pair.
// This is shared across all comparator providers.
func buildCompareContent(nameA, nameB string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name A: %s\n", strings.TrimSpace(nameA))
	fmt.Fprintf(&b, "Name B: %s\n", strings.TrimSpace(nameB))
	return b.String()
}

// parseComparison decodes a model JSON response into a NameComparison and
// clamps the confidence. Shared by the providers that return raw text.
func parseComparison(content string) (*NameComparison, error) {
	content = strings.TrimSpace(content)
	// Some local models wrap JSON in markdown fences despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var comparison NameComparison
	if err := json.Unmarshal([]byte(content), &comparison); err != nil {
		return nil, err
	}
	comparison.Confidence = clampConfidence(comparison.Confidence)
	return &comparison, nil
}
