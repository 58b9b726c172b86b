package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/core/db/sqlc"
	"wiw3ch.app/matchmaker/internal/model"
)

const oneLivePerPair = "matches_one_live_per_pair"

type matchStore struct {
	queries *sqlc.Queries
}

func newMatchStore(queries *sqlc.Queries) MatchStore {
	return &matchStore{queries: queries}
}

func (s *matchStore) Create(ctx context.Context, match *model.Match) error {
	explanation, err := json.Marshal(match.Explanation)
	if err != nil {
		return fmt.Errorf("encoding explanation: %w", err)
	}

	row, err := s.queries.CreateMatch(ctx, sqlc.CreateMatchParams{
		ID:          match.ID,
		MemberAID:   match.MemberAID,
		MemberBID:   match.MemberBID,
		IntentAID:   match.IntentAID,
		IntentBID:   match.IntentBID,
		Score:       int32(match.Score),
		Explanation: explanation,
		Status:      string(match.Status),
		ExpiresAt:   pgtype.Timestamptz{Time: match.ExpiresAt, Valid: true},
	})
	if err != nil {
		if db.IsUniqueViolation(err, oneLivePerPair) {
			return ErrConflict
		}
		return err
	}

	created, err := toMatchModel(row)
	if err != nil {
		return err
	}
	*match = *created
	return nil
}

func (s *matchStore) GetByID(ctx context.Context, id int64) (*model.Match, error) {
	return s.one(s.queries.GetMatchByID(ctx, id))
}

func (s *matchStore) HasLiveForPair(ctx context.Context, memberA, memberB int64) (bool, error) {
	return s.queries.HasLiveMatchForPair(ctx, sqlc.HasLiveMatchForPairParams{
		MemberA: memberA,
		MemberB: memberB,
	})
}

func (s *matchStore) ExpireStaleForPair(ctx context.Context, memberA, memberB int64) error {
	return s.queries.ExpireStaleMatchesForPair(ctx, sqlc.ExpireStaleMatchesForPairParams{
		MemberA: memberA,
		MemberB: memberB,
	})
}

func (s *matchStore) ListForMember(ctx context.Context, memberID int64, status *model.MatchStatus) ([]model.Match, error) {
	var filter *string
	if status != nil {
		v := string(*status)
		filter = &v
	}

	rows, err := s.queries.ListMatchesForMember(ctx, sqlc.ListMatchesForMemberParams{
		MemberID: memberID,
		Status:   filter,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]model.Match, 0, len(rows))
	for _, row := range rows {
		m, err := toMatchModel(row)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, nil
}

func (s *matchStore) MarkViewed(ctx context.Context, id int64, sideA bool) (*model.Match, error) {
	if sideA {
		return s.one(s.queries.MarkMatchViewedByA(ctx, id))
	}
	return s.one(s.queries.MarkMatchViewedByB(ctx, id))
}

func (s *matchStore) TransitionPending(ctx context.Context, id int64, status model.MatchStatus) (*model.Match, error) {
	return s.one(s.queries.TransitionPendingMatch(ctx, sqlc.TransitionPendingMatchParams{
		ID:     id,
		Status: string(status),
	}))
}

func (s *matchStore) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.queries.ExpireStaleMatches(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
}

func (s *matchStore) one(row sqlc.Match, err error) (*model.Match, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMatchModel(row)
}

func toMatchModel(row sqlc.Match) (*model.Match, error) {
	var explanation model.MatchExplanation
	if len(row.Explanation) > 0 {
		if err := json.Unmarshal(row.Explanation, &explanation); err != nil {
			return nil, fmt.Errorf("decoding explanation for match %d: %w", row.ID, err)
		}
	}

	return &model.Match{
		ID:          row.ID,
		MemberAID:   row.MemberAID,
		MemberBID:   row.MemberBID,
		IntentAID:   row.IntentAID,
		IntentBID:   row.IntentBID,
		Score:       int(row.Score),
		Explanation: explanation,
		Status:      model.MatchStatus(row.Status),
		ViewedByA:   row.ViewedByA,
		ViewedByB:   row.ViewedByB,
		ExpiresAt:   row.ExpiresAt.Time,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}, nil
}
