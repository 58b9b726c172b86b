package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Services enrich the context once (member_id, match_id, ...) and every slog call below
// picks the fields up through TraceHandler.
type LogFields struct {
	MemberID       *int64  // Acting member
	IntentID       *int64  // Intent being created, updated or scored
	MatchID        *int64  // Match being viewed or transitioned
	IntroductionID *int64  // Introduction request
	MessageID      *string // Redis stream message ID
	TaskType       *string // Queue task type (e.g. "match_refresh")
	Component      string  // Component name, e.g. "matchmaker.service.match"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.MemberID != nil {
		result.MemberID = next.MemberID
	}
	if next.IntentID != nil {
		result.IntentID = next.IntentID
	}
	if next.MatchID != nil {
		result.MatchID = next.MatchID
	}
	if next.IntroductionID != nil {
		result.IntroductionID = next.IntroductionID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.TaskType != nil {
		result.TaskType = next.TaskType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{MemberID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
