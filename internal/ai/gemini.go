package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const (
	geminiModel = "gemini-2.5-flash"

	// Gemini 2.5 Flash pricing per 1M tokens.
	geminiInputPrice  = 0.30
	geminiOutputPrice = 2.50
)

type GeminiComparator struct {
	client *genai.Client

	// mu guards usage; comparisons run concurrently against one comparator.
	mu    sync.Mutex
	usage Usage
}

func NewGeminiComparator(ctx context.Context, apiKey string) (*GeminiComparator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiComparator{client: client}, nil
}

func (p *GeminiComparator) GetUsage() *Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.usage
	return &u
}

func (p *GeminiComparator) ResetUsage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage = Usage{}
}

func (p *GeminiComparator) trackUsage(inputTokens, outputTokens int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage.InputTokens += int(inputTokens)
	p.usage.OutputTokens += int(outputTokens)
	p.usage.TotalCost += float64(inputTokens) / 1_000_000 * geminiInputPrice
	p.usage.TotalCost += float64(outputTokens) / 1_000_000 * geminiOutputPrice
}

func (p *GeminiComparator) Name() string {
	return geminiModel
}

func (p *GeminiComparator) CompareNames(ctx context.Context, nameA, nameB string) (*NameComparison, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: nameComparePrompt + "\n\n" + buildCompareContent(nameA, nameB)},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	result, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	if result.UsageMetadata != nil {
		p.trackUsage(result.UsageMetadata.PromptTokenCount, result.UsageMetadata.CandidatesTokenCount)
	}

	content := result.Text()
	if content == "" {
		return nil, errors.New("no response from Gemini")
	}

	comparison, err := parseComparison(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comparison JSON: %w (response: %s)", err, content)
	}
	return comparison, nil
}
