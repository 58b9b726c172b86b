package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"wiw3ch.app/matchmaker/core/db/sqlc"
	"wiw3ch.app/matchmaker/internal/model"
)

type onboardingStore struct {
	queries *sqlc.Queries
}

func newOnboardingStore(queries *sqlc.Queries) OnboardingStore {
	return &onboardingStore{queries: queries}
}

func (s *onboardingStore) Get(ctx context.Context, memberID int64) (*model.OnboardingProgress, error) {
	row, err := s.queries.GetOnboarding(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOnboardingModel(row), nil
}

func (s *onboardingStore) Save(ctx context.Context, progress *model.OnboardingProgress) error {
	row, err := s.queries.UpsertOnboarding(ctx, toUpsertOnboardingParams(progress))
	if err != nil {
		return err
	}
	*progress = *toOnboardingModel(row)
	return nil
}

func (s *onboardingStore) ListCompleted(ctx context.Context, limit int) ([]model.MemberProfile, error) {
	rows, err := s.queries.ListCompletedOnboarding(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	profiles := make([]model.MemberProfile, len(rows))
	for i, row := range rows {
		profiles[i] = model.MemberProfile{
			Member:     *toMemberModel(row.Member),
			Onboarding: *toOnboardingModel(row.MemberOnboarding),
		}
	}
	return profiles, nil
}

func toUpsertOnboardingParams(p *model.OnboardingProgress) sqlc.UpsertOnboardingParams {
	modes := make([]string, len(p.IntentModes))
	for i, m := range p.IntentModes {
		modes[i] = string(m)
	}

	params := sqlc.UpsertOnboardingParams{
		MemberID:          p.MemberID,
		CurrentStep:       int32(p.CurrentStep),
		CoreIntent:        p.CoreIntent,
		IntentModes:       modes,
		DomainFocus:       nonNil(p.DomainFocus),
		Skills:            nonNil(p.Skills),
		ContributionAreas: nonNil(p.ContributionAreas),
		Visibility:        enumPtr(p.Visibility),
		ExperienceLevel:   enumPtr(p.ExperienceLevel),
		Availability:      enumPtr(p.Availability),
	}
	if p.CompletedAt != nil {
		params.CompletedAt = pgtype.Timestamptz{Time: *p.CompletedAt, Valid: true}
	}
	return params
}

func toOnboardingModel(row sqlc.MemberOnboarding) *model.OnboardingProgress {
	modes := make([]model.IntentMode, len(row.IntentModes))
	for i, m := range row.IntentModes {
		modes[i] = model.IntentMode(m)
	}

	p := &model.OnboardingProgress{
		MemberID:          row.MemberID,
		CurrentStep:       int(row.CurrentStep),
		CoreIntent:        row.CoreIntent,
		IntentModes:       modes,
		DomainFocus:       nonNil(row.DomainFocus),
		Skills:            nonNil(row.Skills),
		ContributionAreas: nonNil(row.ContributionAreas),
		Visibility:        enumFromPtr[model.Visibility](row.Visibility),
		ExperienceLevel:   enumFromPtr[model.ExperienceLevel](row.ExperienceLevel),
		Availability:      enumFromPtr[model.Availability](row.Availability),
		UpdatedAt:         row.UpdatedAt.Time,
	}
	if row.CompletedAt.Valid {
		t := row.CompletedAt.Time
		p.CompletedAt = &t
	}
	return p
}

func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func enumFromPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
