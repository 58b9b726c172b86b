package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

// IsRetryable reports whether a failed call is worth repeating: rate limits,
// provider 5xx responses and transport errors are, client errors and
// cancellation are not.
func IsRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.DebugContext(ctx, "llm error not retryable: context cancelled or deadline exceeded")
		return false
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return retryableStatus(ctx, ProviderOpenAI, openaiErr.StatusCode)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return retryableStatus(ctx, ProviderAnthropic, anthropicErr.StatusCode)
	}

	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return retryableStatus(ctx, ProviderGemini, geminiErr.Code)
	}

	// Network errors (no API response) are generally retryable
	slog.WarnContext(ctx, "llm network error, will retry", "error", err)
	return true
}

func retryableStatus(ctx context.Context, provider string, status int) bool {
	switch {
	case status == 429:
		slog.WarnContext(ctx, "llm rate limited, will retry",
			"provider", provider,
			"status_code", status)
		return true
	case status >= 500:
		slog.WarnContext(ctx, "llm server error, will retry",
			"provider", provider,
			"status_code", status)
		return true
	default:
		slog.ErrorContext(ctx, "llm client error, not retryable",
			"provider", provider,
			"status_code", status)
		return false
	}
}
