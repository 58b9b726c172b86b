package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type geminiClient struct {
	client *genai.Client
	model  string
}

func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" || model == defaultModel {
		model = defaultGeminiModel
	}

	return &geminiClient{client: client, model: model}, nil
}

func (c *geminiClient) Chat(ctx context.Context, req Request, result any) (*Response, error) {
	system, err := jsonInstruction(req.SystemPrompt, req.Schema)
	if err != nil {
		return nil, err
	}
	req.SystemPrompt = system

	content, usage, err := c.generate(ctx, req, "application/json")
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(content, result); err != nil {
		return nil, err
	}
	return usage, nil
}

func (c *geminiClient) Complete(ctx context.Context, req Request) (string, *Response, error) {
	return c.generate(ctx, req, "")
}

func (c *geminiClient) Model() string {
	return c.model
}

func (c *geminiClient) generate(ctx context.Context, req Request, mimeType string) (string, *Response, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(maxTokensOrDefault(req.MaxTokens)),
		ResponseMIMEType: mimeType,
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		cfg.Temperature = &t
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserPrompt), cfg)
	if err != nil {
		return "", nil, fmt.Errorf("gemini generate content: %w", err)
	}

	usage := &Response{}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	slog.DebugContext(ctx, "llm chat completed",
		"provider", ProviderGemini,
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens)

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil {
				text.WriteString(part.Text)
			}
		}
	}

	output := strings.TrimSpace(text.String())
	if output == "" {
		return "", nil, fmt.Errorf("gemini api returned empty response")
	}
	return output, usage, nil
}
