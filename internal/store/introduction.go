package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/core/db/sqlc"
	"wiw3ch.app/matchmaker/internal/model"
)

const onePendingPerPair = "introduction_requests_one_pending_per_pair"

type introductionStore struct {
	queries *sqlc.Queries
}

func newIntroductionStore(queries *sqlc.Queries) IntroductionStore {
	return &introductionStore{queries: queries}
}

func (s *introductionStore) Create(ctx context.Context, req *model.IntroductionRequest) error {
	row, err := s.queries.CreateIntroductionRequest(ctx, sqlc.CreateIntroductionRequestParams{
		ID:                req.ID,
		FromMemberID:      req.FromMemberID,
		ToMemberID:        req.ToMemberID,
		Message:           req.Message,
		IntentCategory:    string(req.IntentCategory),
		IntentDescription: req.IntentDescription,
		Status:            string(req.Status),
		ExpiresAt:         pgtype.Timestamptz{Time: req.ExpiresAt, Valid: true},
	})
	if err != nil {
		if db.IsUniqueViolation(err, onePendingPerPair) {
			return ErrConflict
		}
		return err
	}
	*req = *toIntroductionModel(row)
	return nil
}

func (s *introductionStore) GetByID(ctx context.Context, id int64) (*model.IntroductionRequest, error) {
	return s.one(s.queries.GetIntroductionRequestByID(ctx, id))
}

func (s *introductionStore) HasPending(ctx context.Context, fromID, toID int64) (bool, error) {
	return s.queries.HasPendingIntroduction(ctx, sqlc.HasPendingIntroductionParams{
		FromMemberID: fromID,
		ToMemberID:   toID,
	})
}

func (s *introductionStore) ExpireStaleForPair(ctx context.Context, fromID, toID int64) error {
	return s.queries.ExpireStaleIntroductionsForPair(ctx, sqlc.ExpireStaleIntroductionsForPairParams{
		FromMemberID: fromID,
		ToMemberID:   toID,
	})
}

func (s *introductionStore) ListSent(ctx context.Context, fromID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error) {
	rows, err := s.queries.ListIntroductionsSent(ctx, sqlc.ListIntroductionsSentParams{
		MemberID: fromID,
		Status:   statusFilter(status),
	})
	if err != nil {
		return nil, err
	}
	return toIntroductionModels(rows), nil
}

func (s *introductionStore) ListReceived(ctx context.Context, toID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error) {
	rows, err := s.queries.ListIntroductionsReceived(ctx, sqlc.ListIntroductionsReceivedParams{
		MemberID: toID,
		Status:   statusFilter(status),
	})
	if err != nil {
		return nil, err
	}
	return toIntroductionModels(rows), nil
}

func (s *introductionStore) Respond(ctx context.Context, id int64, status model.IntroductionStatus) (*model.IntroductionRequest, error) {
	return s.one(s.queries.RespondIntroductionRequest(ctx, sqlc.RespondIntroductionRequestParams{
		ID:     id,
		Status: string(status),
	}))
}

func (s *introductionStore) MarkViewed(ctx context.Context, id int64) (*model.IntroductionRequest, error) {
	return s.one(s.queries.MarkIntroductionViewed(ctx, id))
}

func (s *introductionStore) Delete(ctx context.Context, id, fromID int64) (bool, error) {
	n, err := s.queries.DeleteIntroductionRequest(ctx, sqlc.DeleteIntroductionRequestParams{
		ID:           id,
		FromMemberID: fromID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *introductionStore) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.queries.ExpireStaleIntroductions(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
}

func (s *introductionStore) one(row sqlc.IntroductionRequest, err error) (*model.IntroductionRequest, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIntroductionModel(row), nil
}

func statusFilter(status *model.IntroductionStatus) *string {
	if status == nil {
		return nil
	}
	v := string(*status)
	return &v
}

func toIntroductionModel(row sqlc.IntroductionRequest) *model.IntroductionRequest {
	return &model.IntroductionRequest{
		ID:                row.ID,
		FromMemberID:      row.FromMemberID,
		ToMemberID:        row.ToMemberID,
		Message:           row.Message,
		IntentCategory:    model.IntroductionCategory(row.IntentCategory),
		IntentDescription: row.IntentDescription,
		Status:            model.IntroductionStatus(row.Status),
		ViewedAt:          timePtr(row.ViewedAt),
		RespondedAt:       timePtr(row.RespondedAt),
		ExpiresAt:         row.ExpiresAt.Time,
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}

func toIntroductionModels(rows []sqlc.IntroductionRequest) []model.IntroductionRequest {
	out := make([]model.IntroductionRequest, len(rows))
	for i, row := range rows {
		out[i] = *toIntroductionModel(row)
	}
	return out
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
