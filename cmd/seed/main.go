// Command seed applies migrations and loads a small demo community: onboarded
// members, their intents and the matches generated between them. It is idempotent.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/core/config"
	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
	"wiw3ch.app/matchmaker/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeSeed)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	if err := id.Init(3); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migrations applied")

	if err := seed(ctx, cfg, database); err != nil {
		slog.ErrorContext(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "seed complete", "members", len(demoMembers))
}

func seed(ctx context.Context, cfg config.Config, database *db.DB) error {
	stores := store.NewStores(database.Queries())

	// Demo intents carry hand-written analyses so seeding works offline.
	// Explanations still use the configured model when there is one.
	fixed := fixedAnalyzer{}
	for _, m := range demoMembers {
		fixed[m.intent] = m.analysis
	}
	explainer, err := analysis.SetupExplainer(ctx, cfg.ExplanationLLM)
	if err != nil {
		return err
	}

	// seeding is single-process, no queue or distributed lock needed
	cfg.Features.MatchOnIntentUpdate = false
	services := service.NewServices(stores, service.NewTxRunner(database), fixed, explainer, lock.NewNoopLocker(), nil, cfg)

	memberIDs := make([]int64, 0, len(demoMembers))
	for _, m := range demoMembers {
		member, err := services.Members().Register(ctx, m.firstName, m.lastName, m.email)
		if err != nil {
			return fmt.Errorf("registering %s: %w", m.email, err)
		}
		memberIDs = append(memberIDs, member.ID)

		intent, err := onboard(ctx, services, member.ID, m)
		if err != nil {
			return fmt.Errorf("onboarding %s: %w", m.email, err)
		}
		slog.InfoContext(ctx, "seeded member",
			"member_id", member.ID,
			"intent_id", intent.ID,
			"intent_type", intent.Analysis.IntentType)
	}

	for _, memberID := range memberIDs {
		matches, err := services.Matches().GenerateMatches(ctx, memberID, 0)
		if err != nil {
			return fmt.Errorf("generating matches for member %d: %w", memberID, err)
		}
		slog.InfoContext(ctx, "generated matches", "member_id", memberID, "count", len(matches))
	}
	return nil
}

// onboard walks the member through the required questionnaire steps, which
// also stores the demo statement as their intent.
func onboard(ctx context.Context, services *service.Services, memberID int64, m seedMember) (*model.Intent, error) {
	onboarding := services.Onboarding()

	if _, err := onboarding.SaveVisibility(ctx, memberID, model.VisibilityMembersOnly); err != nil {
		return nil, err
	}
	_, intent, err := onboarding.SaveCoreIntent(ctx, memberID, m.intent)
	if err != nil {
		return nil, err
	}
	if intent, err = services.Intents().SetConsent(ctx, memberID, true, true); err != nil {
		return nil, err
	}
	if _, err := onboarding.SaveIntentModes(ctx, memberID, m.modes); err != nil {
		return nil, err
	}
	if _, err := onboarding.Complete(ctx, memberID); err != nil {
		return nil, err
	}
	return intent, nil
}

// fixedAnalyzer returns the prepared analysis for each demo statement.
type fixedAnalyzer map[string]model.IntentAnalysis

func (f fixedAnalyzer) Analyze(_ context.Context, rawText string) (model.IntentAnalysis, error) {
	a, ok := f[rawText]
	if !ok {
		return model.IntentAnalysis{}, fmt.Errorf("%w: no demo analysis for %q", analysis.ErrAnalysisFailed, logger.Truncate(rawText, 40))
	}
	return a, nil
}
