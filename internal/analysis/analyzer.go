package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wiw3ch.app/matchmaker/common/llm"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/model"
)

var ErrAnalysisFailed = errors.New("intent analysis failed")

// Analyzer turns a raw intent statement into its structured form.
type Analyzer interface {
	Analyze(ctx context.Context, rawText string) (model.IntentAnalysis, error)
}

type Options struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type analyzer struct {
	client llm.Client
	opts   Options
	schema any
}

func NewAnalyzer(client llm.Client, opts Options) Analyzer {
	return &analyzer{
		client: client,
		opts:   opts,
		schema: llm.GenerateSchema[analysisPayload](),
	}
}

// analysisPayload is the structured output contract. Strict schemas cannot
// leave fields out, so a missing experience level arrives as "unspecified".
type analysisPayload struct {
	IntentType      string            `json:"intent_type" jsonschema:"enum=receiving,enum=giving,enum=both"`
	Categories      []categoryPayload `json:"categories"`
	Domains         []string          `json:"domains"`
	ExperienceLevel string            `json:"experience_level" jsonschema:"enum=beginner,enum=intermediate,enum=advanced,enum=expert,enum=unspecified"`
	Availability    string            `json:"availability" jsonschema:"enum=immediate,enum=within_month,enum=flexible,enum=not_specified"`
}

type categoryPayload struct {
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
	Confidence    float64  `json:"confidence" jsonschema:"minimum=0,maximum=1"`
}

const analysisSystemPrompt = `You analyze intent statements for a professional women's community focused on Web3, DeFi, CeFi and related technologies.
Extract structured information from each statement.

Intent types:
- receiving: the member is seeking something (mentorship, a job, a speaking slot)
- giving: the member is offering something (mentoring, hiring, opportunities)
- both: the member is seeking and offering

%s
Experience levels:
- beginner: new to the field, learning basics
- intermediate: some experience, building skills
- advanced: experienced professional
- expert: industry leader, extensive experience
Use "unspecified" when the statement does not say.

Availability:
- immediate: available now
- within_month: available within 30 days
- flexible: no specific timeline
- not_specified: not mentioned

Use only the category, subcategory and domain names listed above. Confidence is between 0 and 1.`

func (a *analyzer) Analyze(ctx context.Context, rawText string) (model.IntentAnalysis, error) {
	sc := logger.StartSpan(ctx, "analysis.analyze")
	defer sc.End()
	ctx = sc.Context()

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	var payload analysisPayload
	_, err := a.client.Chat(ctx, llm.Request{
		SystemPrompt: fmt.Sprintf(analysisSystemPrompt, taxonomyPrompt()),
		UserPrompt:   fmt.Sprintf("Analyze this intent statement:\n\n%q", rawText),
		SchemaName:   "intent_analysis",
		Schema:       a.schema,
		MaxTokens:    a.opts.MaxTokens,
		Temperature:  llm.Temp(a.opts.Temperature),
	}, &payload)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "intent analysis call failed",
			"model", a.client.Model(),
			"error", err)
		return model.IntentAnalysis{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	result, err := normalize(payload)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "intent analysis output rejected",
			"model", a.client.Model(),
			"intent_type", payload.IntentType,
			"error", err)
		return model.IntentAnalysis{}, err
	}

	slog.DebugContext(ctx, "intent analyzed",
		"intent_type", result.IntentType,
		"categories", len(result.Categories),
		"domains", len(result.Domains))

	return result, nil
}

// normalize cleans up model output against the taxonomy.
func normalize(p analysisPayload) (model.IntentAnalysis, error) {
	intentType := model.IntentType(strings.ToLower(strings.TrimSpace(p.IntentType)))
	if !intentType.IsValid() {
		return model.IntentAnalysis{}, fmt.Errorf("%w: unknown intent type %q", ErrAnalysisFailed, p.IntentType)
	}

	result := model.IntentAnalysis{
		IntentType:   intentType,
		Categories:   []model.IntentCategory{},
		Domains:      []string{},
		Availability: model.AvailabilityNotSpecified,
	}

	seenCategories := make(map[string]struct{})
	for _, c := range p.Categories {
		name, ok := CanonicalCategory(c.Category)
		if !ok {
			continue
		}
		if _, dup := seenCategories[name]; dup {
			continue
		}
		seenCategories[name] = struct{}{}

		subs := []string{}
		seenSubs := make(map[string]struct{})
		for _, s := range c.Subcategories {
			s = strings.ToLower(strings.TrimSpace(s))
			if _, dup := seenSubs[s]; dup || !hasSubcategory(name, s) {
				continue
			}
			seenSubs[s] = struct{}{}
			subs = append(subs, s)
		}

		result.Categories = append(result.Categories, model.IntentCategory{
			Category:      name,
			Subcategories: subs,
			Confidence:    clamp01(c.Confidence),
		})
	}

	seenDomains := make(map[string]struct{})
	for _, d := range p.Domains {
		name, ok := CanonicalDomain(d)
		if !ok {
			continue
		}
		if _, dup := seenDomains[name]; dup {
			continue
		}
		seenDomains[name] = struct{}{}
		result.Domains = append(result.Domains, name)
	}

	if level := model.ExperienceLevel(strings.ToLower(strings.TrimSpace(p.ExperienceLevel))); level.IsValid() {
		result.ExperienceLevel = &level
	}

	if avail := model.Availability(strings.ToLower(strings.TrimSpace(p.Availability))); avail.IsValid() {
		result.Availability = avail
	}

	return result, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
