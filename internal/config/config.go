package config

import (
	_ "embed"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/photo-mapper/internal/namematch"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
	Ollama   OllamaConfig
	Database DatabaseConfig
	Matcher  MatcherConfig
}

type OpenAIConfig struct {
	Token string
}

type GeminiConfig struct {
	APIKey string
}

type OllamaConfig struct {
	URL   string // defaults to http://localhost:11434
	Model string // defaults to llama3.2
}

type DatabaseConfig struct {
	URL string // MySQL/MariaDB DSN or PostgreSQL URL for the extract command
}

// MatcherConfig carries the engine constants in their serialized form.
// Defaults come from the embedded defaults.yaml; individual values can be
// overridden by environment variables and CLI flags.
type MatcherConfig struct {
	AcceptThreshold       float64        `yaml:"acceptThreshold"`
	AmbiguityMargin       float64        `yaml:"ambiguityMargin"`
	SubsetFloor           float64        `yaml:"subsetFloor"`
	EqualSetFloor         float64        `yaml:"equalSetFloor"`
	ZeroOverlapCap        float64        `yaml:"zeroOverlapCap"`
	WeakOverlapCap        float64        `yaml:"weakOverlapCap"`
	NearVariantSimilarity float64        `yaml:"nearVariantSimilarity"`
	NearVariantPrefixLen  int            `yaml:"nearVariantPrefixLen"`
	PreselectMin          float64        `yaml:"preselectMin"`
	ShortlistGap          float64        `yaml:"shortlistGap"`
	Pass1                 PassYAMLConfig `yaml:"pass1"`
	Pass2                 PassYAMLConfig `yaml:"pass2"`
	TwoPass               bool           `yaml:"twoPass"`
	Concurrency           int            `yaml:"concurrency"`
	CallTimeoutSeconds    int            `yaml:"callTimeoutSeconds"`
}

type PassYAMLConfig struct {
	ShortlistSize int     `yaml:"shortlistSize"`
	Threshold     float64 `yaml:"threshold"`
	Margin        float64 `yaml:"margin"`
}

// Engine converts the serialized constants into the engine's config type.
func (m MatcherConfig) Engine() namematch.Config {
	return namematch.Config{
		AcceptThreshold:       m.AcceptThreshold,
		AmbiguityMargin:       m.AmbiguityMargin,
		SubsetFloor:           m.SubsetFloor,
		EqualSetFloor:         m.EqualSetFloor,
		ZeroOverlapCap:        m.ZeroOverlapCap,
		WeakOverlapCap:        m.WeakOverlapCap,
		NearVariantSimilarity: m.NearVariantSimilarity,
		NearVariantPrefixLen:  m.NearVariantPrefixLen,
		PreselectMin:          m.PreselectMin,
		ShortlistGap:          m.ShortlistGap,
		Pass1:                 namematch.PassConfig(m.Pass1),
		Pass2:                 namematch.PassConfig(m.Pass2),
		TwoPass:               m.TwoPass,
		Concurrency:           m.Concurrency,
		CallTimeout:           time.Duration(m.CallTimeoutSeconds) * time.Second,
	}
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0,1].
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var matcher MatcherConfig
	if err := yaml.Unmarshal(defaultsYAML, &matcher); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	matcher.AcceptThreshold = envFloat("MATCHER_ACCEPT_THRESHOLD", matcher.AcceptThreshold)
	matcher.AmbiguityMargin = envFloat("MATCHER_AMBIGUITY_MARGIN", matcher.AmbiguityMargin)
	matcher.Concurrency = envInt("MATCHER_CONCURRENCY", matcher.Concurrency)
	matcher.CallTimeoutSeconds = envInt("MATCHER_CALL_TIMEOUT_SECONDS", matcher.CallTimeoutSeconds)

	return &Config{
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Ollama: OllamaConfig{
			URL:   os.Getenv("OLLAMA_URL"),
			Model: os.Getenv("OLLAMA_MODEL"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Matcher: matcher,
	}
}
