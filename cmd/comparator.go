package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-mapper/internal/ai"
	"github.com/kozaktomas/photo-mapper/internal/config"
)

// buildComparator constructs the AI comparator named by the --ai flag.
// "none" returns nil, which limits the run to the deterministic tier.
func buildComparator(ctx context.Context, cfg *config.Config, name string) (ai.Comparator, error) {
	switch name {
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, errors.New("OPENAI_TOKEN environment variable is required for --ai openai")
		}
		return ai.NewOpenAIComparator(cfg.OpenAI.Token), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is required for --ai gemini")
		}
		return ai.NewGeminiComparator(ctx, cfg.Gemini.APIKey)
	case "ollama":
		return ai.NewOllamaComparator(cfg.Ollama.URL, cfg.Ollama.Model), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q (expected openai, gemini, ollama or none)", name)
	}
}
