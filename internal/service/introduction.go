package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/store"
)

// IntroductionInput is a member-initiated connect request.
type IntroductionInput struct {
	ToMemberID        int64
	Message           string
	IntentCategory    model.IntroductionCategory
	IntentDescription *string
}

type IntroductionService interface {
	Create(ctx context.Context, fromID int64, in IntroductionInput) (*model.IntroductionRequest, error)
	Respond(ctx context.Context, requestID, recipientID int64, status model.IntroductionStatus) (*model.IntroductionRequest, error)
	MarkViewed(ctx context.Context, requestID, recipientID int64) (*model.IntroductionRequest, error)
	Cancel(ctx context.Context, requestID, senderID int64) error
	ListSent(ctx context.Context, fromID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error)
	ListReceived(ctx context.Context, toID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error)
	Get(ctx context.Context, requestID, memberID int64) (*model.IntroductionRequest, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type introductionService struct {
	members       store.MemberStore
	introductions store.IntroductionStore
	txRunner      TxRunner
}

func NewIntroductionService(members store.MemberStore, introductions store.IntroductionStore, txRunner TxRunner) IntroductionService {
	return &introductionService{
		members:       members,
		introductions: introductions,
		txRunner:      txRunner,
	}
}

func (s *introductionService) Create(ctx context.Context, fromID int64, in IntroductionInput) (*model.IntroductionRequest, error) {
	if fromID == in.ToMemberID {
		return nil, ErrInvalidTarget
	}

	message := strings.TrimSpace(in.Message)
	if n := utf8.RuneCountInString(message); n < model.IntroductionMessageMinLength || n > model.IntroductionMessageMaxLength {
		return nil, invalidInput("message must be between %d and %d characters",
			model.IntroductionMessageMinLength, model.IntroductionMessageMaxLength)
	}
	if !in.IntentCategory.IsValid() {
		return nil, invalidInput("unknown intent category %q", in.IntentCategory)
	}
	var description *string
	if in.IntentDescription != nil {
		d := strings.TrimSpace(*in.IntentDescription)
		if utf8.RuneCountInString(d) > model.IntroductionDescriptionMaxLength {
			return nil, invalidInput("intent description must be at most %d characters", model.IntroductionDescriptionMaxLength)
		}
		if d != "" {
			description = &d
		}
	}

	if _, err := s.members.GetByID(ctx, in.ToMemberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting recipient: %w", err)
	}

	req := &model.IntroductionRequest{
		ID:                id.New(),
		FromMemberID:      fromID,
		ToMemberID:        in.ToMemberID,
		Message:           message,
		IntentCategory:    in.IntentCategory,
		IntentDescription: description,
		Status:            model.IntroductionStatusPending,
		ExpiresAt:         time.Now().Add(model.IntroductionTTL),
	}

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		intros := sp.Introductions()
		if err := intros.ExpireStaleForPair(ctx, fromID, in.ToMemberID); err != nil {
			return fmt.Errorf("expiring stale requests: %w", err)
		}
		pending, err := intros.HasPending(ctx, fromID, in.ToMemberID)
		if err != nil {
			return fmt.Errorf("checking pending requests: %w", err)
		}
		if pending {
			return ErrDuplicatePending
		}
		if err := intros.Create(ctx, req); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrDuplicatePending
			}
			return fmt.Errorf("creating introduction request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "introduction request created",
		"introduction_id", req.ID,
		"from_member_id", fromID,
		"to_member_id", in.ToMemberID,
		"intent_category", in.IntentCategory)

	return req, nil
}

func (s *introductionService) Respond(ctx context.Context, requestID, recipientID int64, status model.IntroductionStatus) (*model.IntroductionRequest, error) {
	if status != model.IntroductionStatusAccepted && status != model.IntroductionStatusDeclined {
		return nil, invalidInput("status must be accepted or declined, got %q", status)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{MemberID: &recipientID, IntroductionID: &requestID})

	req, err := s.forRecipient(ctx, requestID, recipientID)
	if err != nil {
		return nil, err
	}
	if !req.IsPending(time.Now()) {
		return nil, ErrIntroductionNotPending
	}

	updated, err := s.introductions.Respond(ctx, requestID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIntroductionNotPending
		}
		return nil, fmt.Errorf("responding to introduction request: %w", err)
	}

	slog.InfoContext(ctx, "introduction request answered", "status", status)
	return updated, nil
}

func (s *introductionService) MarkViewed(ctx context.Context, requestID, recipientID int64) (*model.IntroductionRequest, error) {
	if _, err := s.forRecipient(ctx, requestID, recipientID); err != nil {
		return nil, err
	}

	updated, err := s.introductions.MarkViewed(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIntroductionNotFound
		}
		return nil, fmt.Errorf("marking introduction request viewed: %w", err)
	}
	relabelIntroduction(updated)
	return updated, nil
}

func (s *introductionService) Cancel(ctx context.Context, requestID, senderID int64) error {
	req, err := s.get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.FromMemberID != senderID {
		return ErrUnauthorized
	}
	if !req.IsPending(time.Now()) {
		return ErrIntroductionNotPending
	}

	deleted, err := s.introductions.Delete(ctx, requestID, senderID)
	if err != nil {
		return fmt.Errorf("deleting introduction request: %w", err)
	}
	if !deleted {
		return ErrIntroductionNotPending
	}

	slog.InfoContext(ctx, "introduction request cancelled",
		"introduction_id", requestID,
		"from_member_id", senderID)
	return nil
}

func (s *introductionService) ListSent(ctx context.Context, fromID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error) {
	if status != nil && !status.IsValid() {
		return nil, invalidInput("unknown introduction status %q", *status)
	}
	reqs, err := s.introductions.ListSent(ctx, fromID, status)
	if err != nil {
		return nil, fmt.Errorf("listing sent introduction requests: %w", err)
	}
	return relabelIntroductions(reqs), nil
}

func (s *introductionService) ListReceived(ctx context.Context, toID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error) {
	if status != nil && !status.IsValid() {
		return nil, invalidInput("unknown introduction status %q", *status)
	}
	reqs, err := s.introductions.ListReceived(ctx, toID, status)
	if err != nil {
		return nil, fmt.Errorf("listing received introduction requests: %w", err)
	}
	return relabelIntroductions(reqs), nil
}

func (s *introductionService) Get(ctx context.Context, requestID, memberID int64) (*model.IntroductionRequest, error) {
	req, err := s.get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Involves(memberID) {
		return nil, ErrUnauthorized
	}
	relabelIntroduction(req)
	return req, nil
}

func (s *introductionService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.introductions.ExpireStale(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expiring stale introduction requests: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired stale introduction requests", "count", n)
	}
	return n, nil
}

func (s *introductionService) get(ctx context.Context, requestID int64) (*model.IntroductionRequest, error) {
	req, err := s.introductions.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIntroductionNotFound
		}
		return nil, fmt.Errorf("getting introduction request: %w", err)
	}
	return req, nil
}

func (s *introductionService) forRecipient(ctx context.Context, requestID, recipientID int64) (*model.IntroductionRequest, error) {
	req, err := s.get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToMemberID != recipientID {
		return nil, ErrUnauthorized
	}
	return req, nil
}

func relabelIntroduction(r *model.IntroductionRequest) {
	r.Status = r.EffectiveStatus(time.Now())
}

func relabelIntroductions(reqs []model.IntroductionRequest) []model.IntroductionRequest {
	for i := range reqs {
		relabelIntroduction(&reqs[i])
	}
	return reqs
}
