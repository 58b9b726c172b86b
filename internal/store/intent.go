package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/core/db/sqlc"
	"wiw3ch.app/matchmaker/internal/model"
)

const oneActivePerOwner = "intents_one_active_per_owner"

type intentStore struct {
	queries *sqlc.Queries
}

func newIntentStore(queries *sqlc.Queries) IntentStore {
	return &intentStore{queries: queries}
}

func (s *intentStore) LockOwner(ctx context.Context, ownerID int64) error {
	return s.queries.LockOwnerIntents(ctx, ownerID)
}

func (s *intentStore) GetByID(ctx context.Context, id int64) (*model.Intent, error) {
	return s.one(s.queries.GetIntentByID(ctx, id))
}

func (s *intentStore) GetActiveByOwner(ctx context.Context, ownerID int64) (*model.Intent, error) {
	return s.one(s.queries.GetActiveIntentByOwner(ctx, ownerID))
}

func (s *intentStore) GetActiveByOwnerForUpdate(ctx context.Context, ownerID int64) (*model.Intent, error) {
	return s.one(s.queries.GetActiveIntentByOwnerForUpdate(ctx, ownerID))
}

func (s *intentStore) Create(ctx context.Context, intent *model.Intent) error {
	content, err := toContentColumns(intent.Analysis)
	if err != nil {
		return err
	}

	row, err := s.queries.CreateIntent(ctx, sqlc.CreateIntentParams{
		ID:               intent.ID,
		OwnerID:          intent.OwnerID,
		RawText:          intent.RawText,
		IntentType:       content.intentType,
		Categories:       content.categories,
		CategoryNames:    content.categoryNames,
		Domains:          content.domains,
		ExperienceLevel:  content.experienceLevel,
		Availability:     string(intent.Analysis.Availability),
		AnalysisStatus:   string(intent.AnalysisStatus),
		AnalysisError:    intent.AnalysisError,
		Visibility:       string(intent.Visibility),
		ConsentToMatch:   intent.ConsentToMatch,
		ConsentToContact: intent.ConsentToContact,
	})
	if err != nil {
		if db.IsUniqueViolation(err, oneActivePerOwner) {
			return ErrConflict
		}
		return err
	}

	created, err := toIntentModel(row)
	if err != nil {
		return err
	}
	*intent = *created
	return nil
}

func (s *intentStore) UpdateContent(ctx context.Context, intent *model.Intent) error {
	content, err := toContentColumns(intent.Analysis)
	if err != nil {
		return err
	}

	row, err := s.queries.UpdateIntentContent(ctx, sqlc.UpdateIntentContentParams{
		ID:               intent.ID,
		RawText:          intent.RawText,
		IntentType:       content.intentType,
		Categories:       content.categories,
		CategoryNames:    content.categoryNames,
		Domains:          content.domains,
		ExperienceLevel:  content.experienceLevel,
		Availability:     string(intent.Analysis.Availability),
		AnalysisStatus:   string(intent.AnalysisStatus),
		AnalysisError:    intent.AnalysisError,
		Visibility:       string(intent.Visibility),
		ConsentToMatch:   intent.ConsentToMatch,
		ConsentToContact: intent.ConsentToContact,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	updated, err := toIntentModel(row)
	if err != nil {
		return err
	}
	*intent = *updated
	return nil
}

func (s *intentStore) SetPaused(ctx context.Context, ownerID int64, paused bool) (*model.Intent, error) {
	return s.one(s.queries.SetIntentPaused(ctx, sqlc.SetIntentPausedParams{
		OwnerID:  ownerID,
		IsPaused: paused,
	}))
}

func (s *intentStore) Deactivate(ctx context.Context, ownerID int64) (*model.Intent, error) {
	return s.one(s.queries.DeactivateIntent(ctx, ownerID))
}

func (s *intentStore) SetVisibility(ctx context.Context, ownerID int64, visibility model.Visibility) (*model.Intent, error) {
	return s.one(s.queries.SetIntentVisibility(ctx, sqlc.SetIntentVisibilityParams{
		OwnerID:    ownerID,
		Visibility: string(visibility),
	}))
}

func (s *intentStore) SetConsent(ctx context.Context, ownerID int64, consentToMatch, consentToContact bool) (*model.Intent, error) {
	return s.one(s.queries.SetIntentConsent(ctx, sqlc.SetIntentConsentParams{
		OwnerID:          ownerID,
		ConsentToMatch:   consentToMatch,
		ConsentToContact: consentToContact,
	}))
}

func (s *intentStore) FindCandidates(ctx context.Context, filter CandidateFilter) ([]model.Intent, error) {
	rows, err := s.queries.FindCandidateIntents(ctx, sqlc.FindCandidateIntentsParams{
		OwnerID:       filter.OwnerID,
		IntentTypes:   intentTypeStrings(filter.IntentTypes),
		Domains:       nonNil(filter.Domains),
		CategoryNames: nonNil(filter.CategoryNames),
		MaxResults:    int32(filter.Limit),
	})
	if err != nil {
		return nil, err
	}
	return toIntentModels(rows)
}

func (s *intentStore) ListMatchable(ctx context.Context, filter CandidateFilter) ([]model.Intent, error) {
	rows, err := s.queries.ListMatchableIntents(ctx, sqlc.ListMatchableIntentsParams{
		OwnerID:     filter.OwnerID,
		IntentTypes: intentTypeStrings(filter.IntentTypes),
		Domains:     nonNil(filter.Domains),
		MaxResults:  int32(filter.Limit),
	})
	if err != nil {
		return nil, err
	}
	return toIntentModels(rows)
}

func (s *intentStore) one(row sqlc.Intent, err error) (*model.Intent, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIntentModel(row)
}

type contentColumns struct {
	intentType      *string
	categories      []byte
	categoryNames   []string
	domains         []string
	experienceLevel *string
}

// toContentColumns splits an analysis into its row columns. A failed analysis
// carries no intent type, which is stored as NULL.
func toContentColumns(a model.IntentAnalysis) (contentColumns, error) {
	categories := a.Categories
	if categories == nil {
		categories = []model.IntentCategory{}
	}
	encoded, err := json.Marshal(categories)
	if err != nil {
		return contentColumns{}, fmt.Errorf("encoding categories: %w", err)
	}

	cols := contentColumns{
		categories:    encoded,
		categoryNames: nonNil(a.CategoryNames()),
		domains:       nonNil(a.Domains),
	}
	if a.IntentType != "" {
		t := string(a.IntentType)
		cols.intentType = &t
	}
	if a.ExperienceLevel != nil {
		e := string(*a.ExperienceLevel)
		cols.experienceLevel = &e
	}
	return cols, nil
}

func toIntentModel(row sqlc.Intent) (*model.Intent, error) {
	var categories []model.IntentCategory
	if len(row.Categories) > 0 {
		if err := json.Unmarshal(row.Categories, &categories); err != nil {
			return nil, fmt.Errorf("decoding categories for intent %d: %w", row.ID, err)
		}
	}
	if categories == nil {
		categories = []model.IntentCategory{}
	}

	analysis := model.IntentAnalysis{
		Categories:   categories,
		Domains:      nonNil(row.Domains),
		Availability: model.Availability(row.Availability),
	}
	if row.IntentType != nil {
		analysis.IntentType = model.IntentType(*row.IntentType)
	}
	if row.ExperienceLevel != nil {
		level := model.ExperienceLevel(*row.ExperienceLevel)
		analysis.ExperienceLevel = &level
	}

	return &model.Intent{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		RawText:          row.RawText,
		Analysis:         analysis,
		AnalysisStatus:   model.AnalysisStatus(row.AnalysisStatus),
		AnalysisError:    row.AnalysisError,
		IsActive:         row.IsActive,
		IsPaused:         row.IsPaused,
		Visibility:       model.Visibility(row.Visibility),
		ConsentToMatch:   row.ConsentToMatch,
		ConsentToContact: row.ConsentToContact,
		LastProcessedAt:  row.LastProcessedAt.Time,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}, nil
}

func toIntentModels(rows []sqlc.Intent) ([]model.Intent, error) {
	intents := make([]model.Intent, 0, len(rows))
	for _, row := range rows {
		intent, err := toIntentModel(row)
		if err != nil {
			return nil, err
		}
		intents = append(intents, *intent)
	}
	return intents, nil
}

func intentTypeStrings(types []model.IntentType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// nonNil keeps text[] parameters from being sent as NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
