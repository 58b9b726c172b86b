package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"wiw3ch.app/matchmaker/core/db"
	"wiw3ch.app/matchmaker/core/db/sqlc"
	"wiw3ch.app/matchmaker/internal/model"
)

type memberStore struct {
	queries *sqlc.Queries
}

func newMemberStore(queries *sqlc.Queries) MemberStore {
	return &memberStore{queries: queries}
}

func (s *memberStore) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	row, err := s.queries.GetMemberByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMemberModel(row), nil
}

func (s *memberStore) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	row, err := s.queries.GetMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMemberModel(row), nil
}

func (s *memberStore) Create(ctx context.Context, member *model.Member) error {
	row, err := s.queries.CreateMember(ctx, sqlc.CreateMemberParams{
		ID:        member.ID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Email:     member.Email,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return ErrConflict
		}
		return err
	}
	*member = *toMemberModel(row)
	return nil
}

func toMemberModel(row sqlc.Member) *model.Member {
	return &model.Member{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
