package analysis

import (
	"context"
	"fmt"

	"wiw3ch.app/matchmaker/common/llm"
	"wiw3ch.app/matchmaker/core/config"
)

// Setup builds the analyzer and the explainer from their LLM configs. The
// explainer is nil when its provider is not configured, which makes every
// match use FallbackMatchReason.
func Setup(ctx context.Context, analysisCfg, explanationCfg config.LLMConfig) (Analyzer, Explainer, error) {
	analysisClient, err := llm.New(ctx, clientConfig(analysisCfg))
	if err != nil {
		return nil, nil, fmt.Errorf("creating analysis llm client: %w", err)
	}
	analyzer := NewAnalyzer(analysisClient, optionsFor(analysisCfg))

	explainer, err := SetupExplainer(ctx, explanationCfg)
	if err != nil {
		return nil, nil, err
	}
	return analyzer, explainer, nil
}

// SetupExplainer returns nil, nil when cfg has no usable provider.
func SetupExplainer(ctx context.Context, cfg config.LLMConfig) (Explainer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	client, err := llm.New(ctx, clientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating explanation llm client: %w", err)
	}
	return NewExplainer(client, optionsFor(cfg)), nil
}

func clientConfig(cfg config.LLMConfig) llm.Config {
	return llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	}
}

func optionsFor(cfg config.LLMConfig) Options {
	return Options{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}
}
