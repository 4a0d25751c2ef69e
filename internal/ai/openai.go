package ai

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

//go:embed prompts/name_compare.txt
var nameComparePrompt string

const (
	chatModel = openai.ChatModelGPT4_1Mini

	// GPT-4.1-mini pricing per 1M tokens.
	openAIInputPrice  = 0.40
	openAIOutputPrice = 1.60
)

type OpenAIComparator struct {
	client *openai.Client

	// mu guards usage; comparisons run concurrently against one comparator.
	mu    sync.Mutex
	usage Usage
}

func NewOpenAIComparator(apiKey string) *OpenAIComparator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIComparator{client: &client}
}

func (p *OpenAIComparator) GetUsage() *Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.usage
	return &u
}

func (p *OpenAIComparator) ResetUsage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage = Usage{}
}

func (p *OpenAIComparator) trackUsage(inputTokens, outputTokens int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage.InputTokens += int(inputTokens)
	p.usage.OutputTokens += int(outputTokens)
	p.usage.TotalCost += float64(inputTokens) / 1_000_000 * openAIInputPrice
	p.usage.TotalCost += float64(outputTokens) / 1_000_000 * openAIOutputPrice
}

func (p *OpenAIComparator) Name() string {
	return chatModel
}

// CompareNames asks the model whether two name strings refer to the same
// person and returns the parsed confidence. Malformed JSON is retried with
// error feedback, same as the photo analysis flow this was derived from.
func (p *OpenAIComparator) CompareNames(ctx context.Context, nameA, nameB string) (*NameComparison, error) {
	const maxRetries = 3

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(nameComparePrompt),
		openai.UserMessage(buildCompareContent(nameA, nameB)),
	}

	var lastError error
	var lastResponse string

	for range maxRetries {
		resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    chatModel,
			Messages: messages,
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			},
			MaxTokens: openai.Int(200),
		})
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, errors.New("no response from OpenAI")
		}

		if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
			p.trackUsage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		}

		content := resp.Choices[0].Message.Content
		lastResponse = content

		var comparison NameComparison
		if err := json.Unmarshal([]byte(content), &comparison); err != nil {
			lastError = err
			messages = append(messages,
				openai.AssistantMessage(content),
				openai.UserMessage(fmt.Sprintf("JSON parse error: %v. Please fix the JSON and try again.", err)),
			)
			continue
		}

		comparison.Confidence = clampConfidence(comparison.Confidence)
		return &comparison, nil
	}

	return nil, fmt.Errorf("failed to parse comparison JSON after %d attempts: %w (last response: %s)", maxRetries, lastError, lastResponse)
}
