package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/store"
)

type MemberService interface {
	Get(ctx context.Context, memberID int64) (*model.Member, error)
	// Register creates a member, or returns the existing one with the same email.
	Register(ctx context.Context, firstName, lastName, email string) (*model.Member, error)
}

type memberService struct {
	members store.MemberStore
}

func NewMemberService(members store.MemberStore) MemberService {
	return &memberService{members: members}
}

func (s *memberService) Get(ctx context.Context, memberID int64) (*model.Member, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}
	return member, nil
}

func (s *memberService) Register(ctx context.Context, firstName, lastName, email string) (*model.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalidInput("email %q is not valid", email)
	}
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, invalidInput("first name is required")
	}

	existing, err := s.members.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up member by email: %w", err)
	}

	member := &model.Member{
		ID:        id.New(),
		FirstName: firstName,
		LastName:  strings.TrimSpace(lastName),
		Email:     email,
	}
	if err := s.members.Create(ctx, member); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return s.members.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("creating member: %w", err)
	}

	slog.InfoContext(ctx, "member registered", "member_id", member.ID)
	return member, nil
}
