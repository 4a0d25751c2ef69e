package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.2"
)

// OllamaComparator runs name comparisons against a local Ollama instance.
// Local calls are free, so usage cost stays zero.
type OllamaComparator struct {
	baseURL string
	model   string
	client  *http.Client

	// mu guards usage; comparisons run concurrently against one comparator.
	mu    sync.Mutex
	usage Usage
}

func NewOllamaComparator(baseURL, model string) *OllamaComparator {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaComparator{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (p *OllamaComparator) Name() string {
	return p.model
}

func (p *OllamaComparator) GetUsage() *Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	u := p.usage
	return &u
}

func (p *OllamaComparator) ResetUsage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage = Usage{}
}

func (p *OllamaComparator) trackUsage(inputTokens, outputTokens int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage.InputTokens += inputTokens
	p.usage.OutputTokens += outputTokens
}

// ollamaRequest represents a request to the Ollama chat API
type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  ollamaOptions   `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	NumPredict int `json:"num_predict,omitempty"`
}

// ollamaResponse represents a response from the Ollama chat API
type ollamaResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done            bool `json:"done"`
	PromptEvalCount int  `json:"prompt_eval_count"`
	EvalCount       int  `json:"eval_count"`
}

func (p *OllamaComparator) CompareNames(ctx context.Context, nameA, nameB string) (*NameComparison, error) {
	reqBody := ollamaRequest{
		Model: p.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: nameComparePrompt},
			{Role: "user", Content: buildCompareContent(nameA, nameB)},
		},
		Stream:  false,
		Format:  "json",
		Options: ollamaOptions{NumPredict: 200},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp ollamaResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to parse ollama response: %w", err)
	}

	p.trackUsage(ollamaResp.PromptEvalCount, ollamaResp.EvalCount)

	comparison, err := parseComparison(ollamaResp.Message.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse comparison JSON: %w (response: %s)", err, ollamaResp.Message.Content)
	}
	return comparison, nil
}
