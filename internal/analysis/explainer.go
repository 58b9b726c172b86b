package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"wiw3ch.app/matchmaker/common/llm"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/model"
)

// FallbackMatchReason is used whenever the explainer fails or returns nothing.
const FallbackMatchReason = "You both have complementary goals and shared interests in the community."

var errEmptyExplanation = errors.New("empty explanation")

// Explainer writes a short human-readable reason for a proposed match.
type Explainer interface {
	ExplainMatch(ctx context.Context, a, b model.Intent, nameA, nameB string) (string, error)
}

type explainer struct {
	client llm.Client
	opts   Options
}

func NewExplainer(client llm.Client, opts Options) Explainer {
	return &explainer{client: client, opts: opts}
}

const explanationSystemPrompt = "You explain why two members of a professional community are a good match based on their intents. " +
	"Be warm, professional and specific. Focus on complementary goals and shared interests."

func (e *explainer) ExplainMatch(ctx context.Context, a, b model.Intent, nameA, nameB string) (string, error) {
	sc := logger.StartSpan(ctx, "analysis.explain_match")
	defer sc.End()
	ctx = sc.Context()

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	text, _, err := e.client.Complete(ctx, llm.Request{
		SystemPrompt: explanationSystemPrompt,
		UserPrompt:   explanationPrompt(a, b, nameA, nameB),
		MaxTokens:    e.opts.MaxTokens,
		Temperature:  llm.Temp(e.opts.Temperature),
	})
	if err != nil {
		sc.RecordError(err)
		return "", fmt.Errorf("generating match explanation: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		sc.RecordError(errEmptyExplanation)
		return "", errEmptyExplanation
	}
	return text, nil
}

func explanationPrompt(a, b model.Intent, nameA, nameB string) string {
	var sb strings.Builder
	sb.WriteString("Write a brief, friendly explanation (2-3 sentences) of why these two members are a good match.\n\n")
	writeMember(&sb, 1, nameA, a)
	sb.WriteString("\n")
	writeMember(&sb, 2, nameB, b)
	sb.WriteString("\nFocus on what they can offer each other and their shared interests.")
	return sb.String()
}

func writeMember(sb *strings.Builder, n int, name string, i model.Intent) {
	fmt.Fprintf(sb, "Member %d (%s):\n", n, name)
	fmt.Fprintf(sb, "Intent Type: %s\n", i.Analysis.IntentType)
	fmt.Fprintf(sb, "Raw Intent: %q\n", i.RawText)
	fmt.Fprintf(sb, "Domains: %s\n", strings.Join(i.Analysis.Domains, ", "))
}

// ReasonOrFallback returns the explainer output, or FallbackMatchReason when
// the explainer is absent or fails.
func ReasonOrFallback(ctx context.Context, e Explainer, a, b model.Intent, nameA, nameB string) string {
	if e == nil {
		return FallbackMatchReason
	}
	reason, err := e.ExplainMatch(ctx, a, b, nameA, nameB)
	if err != nil {
		slog.WarnContext(ctx, "match explanation unavailable, using fallback",
			"intent_a_id", a.ID,
			"intent_b_id", b.ID,
			"error", err)
		return FallbackMatchReason
	}
	return reason
}
