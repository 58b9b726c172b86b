package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// Provider constants for LLM provider selection.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

const (
	defaultMaxTokens = 1000
	defaultModel     = "gpt-4o-mini"
)

// Client is a single-turn chat completion client.
type Client interface {
	// Chat requests a JSON object matching req.Schema and decodes it into result.
	Chat(ctx context.Context, req Request, result any) (*Response, error)
	// Complete requests free-form text. req.Schema is ignored.
	Complete(ctx context.Context, req Request) (string, *Response, error)
	Model() string
}

type Request struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       any
	MaxTokens    int
	Temperature  *float64 // nil = model default, explicit 0 = deterministic
}

type Response struct {
	PromptTokens     int
	CompletionTokens int
}

// Config holds LLM client configuration.
type Config struct {
	Provider string // "openai", "anthropic" or "gemini"
	APIKey   string
	BaseURL  string // Optional: custom API endpoint
	Model    string
}

// New selects a provider based on cfg.Provider. Defaults to OpenAI.
func New(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch cfg.Provider {
	case "", ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	case ProviderGemini:
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func Temp(t float64) *float64 {
	return &t
}

// jsonInstruction extends a system prompt for providers without native
// schema-constrained output.
func jsonInstruction(systemPrompt string, schema any) (string, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nRespond with a single JSON object and nothing else. It must validate against this JSON schema:\n")
	b.Write(encoded)
	return b.String(), nil
}

// ExtractJSON returns the first balanced JSON object in s, skipping any
// surrounding prose or markdown fences.
func ExtractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func decodeJSON(content string, result any) error {
	obj, ok := ExtractJSON(content)
	if !ok {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(obj), result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}
