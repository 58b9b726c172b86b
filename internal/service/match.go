package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/scorer"
	"wiw3ch.app/matchmaker/internal/store"
)

const (
	DefaultMatchLimit = 10
	MaxMatchLimit     = 50

	// MaxCandidatesPerRun bounds the explanation calls one generation run makes.
	MaxCandidatesPerRun = 2 * MaxMatchLimit
)

type MatchService interface {
	// GenerateMatches proposes new matches for the owner's active intent and
	// returns only the matches created by this call.
	GenerateMatches(ctx context.Context, ownerID int64, limit int) ([]model.Match, error)
	UpdateStatus(ctx context.Context, matchID, memberID int64, status model.MatchStatus) (*model.Match, error)
	MarkViewed(ctx context.Context, matchID, memberID int64) (*model.Match, error)
	GetMatches(ctx context.Context, memberID int64, status *model.MatchStatus) ([]model.Match, error)
	GetMatch(ctx context.Context, matchID, memberID int64) (*model.Match, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type matchService struct {
	members      store.MemberStore
	intents      store.IntentStore
	matches      store.MatchStore
	txRunner     TxRunner
	explainer    analysis.Explainer
	locker       lock.Locker
	defaultLimit int
}

func NewMatchService(
	members store.MemberStore,
	intents store.IntentStore,
	matches store.MatchStore,
	txRunner TxRunner,
	explainer analysis.Explainer,
	locker lock.Locker,
	defaultLimit int,
) MatchService {
	if defaultLimit <= 0 {
		defaultLimit = DefaultMatchLimit
	}
	if locker == nil {
		locker = lock.NewNoopLocker()
	}
	return &matchService{
		members:      members,
		intents:      intents,
		matches:      matches,
		txRunner:     txRunner,
		explainer:    explainer,
		locker:       locker,
		defaultLimit: defaultLimit,
	}
}

func (s *matchService) GenerateMatches(ctx context.Context, ownerID int64, limit int) ([]model.Match, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MemberID:  &ownerID,
		Component: "matchmaker.service.match",
	})
	sc := logger.StartSpan(ctx, "match.generate")
	defer sc.End()
	ctx = sc.Context()

	var created []model.Match
	err := withOwnerLock(ctx, s.locker, lock.ScopeMatches, ownerID, func() error {
		var err error
		created, err = s.generate(ctx, ownerID, limit)
		return err
	})
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}

	sc.Span().SetAttributes(attribute.Int("matches.created", len(created)))
	return created, nil
}

func (s *matchService) generate(ctx context.Context, ownerID int64, limit int) ([]model.Match, error) {
	own, err := s.intents.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoEligibleIntent
		}
		return nil, fmt.Errorf("getting active intent: %w", err)
	}
	if !own.IsMatchable() {
		return nil, ErrNoEligibleIntent
	}

	owner, err := s.members.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}

	candidates, err := s.intents.ListMatchable(ctx, store.CandidateFilter{
		OwnerID:     ownerID,
		IntentTypes: own.Analysis.IntentType.CandidateTypes(),
		Domains:     own.Analysis.Domains,
		Limit:       limit * 2,
	})
	if err != nil {
		return nil, fmt.Errorf("listing candidate intents: %w", err)
	}

	created := make([]model.Match, 0, limit)
	for i := range candidates {
		candidate := &candidates[i]

		live, err := s.matches.HasLiveForPair(ctx, ownerID, candidate.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("checking existing match: %w", err)
		}
		if live {
			continue
		}

		res := scorer.Score(*own, *candidate)
		if res.Score < scorer.MinimumMatchScore {
			continue
		}

		other, err := s.members.GetByID(ctx, candidate.OwnerID)
		if err != nil {
			slog.WarnContext(ctx, "skipping candidate with unresolvable member",
				"candidate_member_id", candidate.OwnerID,
				"error", err)
			continue
		}

		match := &model.Match{
			ID:        id.New(),
			MemberAID: ownerID,
			MemberBID: candidate.OwnerID,
			IntentAID: own.ID,
			IntentBID: candidate.ID,
			Score:     res.Score,
			Explanation: model.MatchExplanation{
				Reason:               analysis.ReasonOrFallback(ctx, s.explainer, *own, *candidate, owner.DisplayName(), other.DisplayName()),
				SharedDomains:        res.SharedDomains,
				ComplementaryIntents: scorer.ComplementaryNotes(*own, *candidate, owner.FirstName, other.FirstName),
				Confidence:           res.Confidence,
			},
			Status:    model.MatchStatusPending,
			ExpiresAt: time.Now().Add(model.MatchTTL),
		}

		err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
			if err := sp.Matches().ExpireStaleForPair(ctx, ownerID, candidate.OwnerID); err != nil {
				return fmt.Errorf("expiring stale matches: %w", err)
			}
			return sp.Matches().Create(ctx, match)
		})
		if errors.Is(err, store.ErrConflict) {
			slog.DebugContext(ctx, "match created concurrently, skipping",
				"candidate_member_id", candidate.OwnerID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("creating match: %w", err)
		}

		created = append(created, *match)
		if len(created) >= limit {
			break
		}
	}

	slog.InfoContext(ctx, "matches generated",
		"intent_id", own.ID,
		"candidates", len(candidates),
		"created", len(created))

	return created, nil
}

func (s *matchService) UpdateStatus(ctx context.Context, matchID, memberID int64, status model.MatchStatus) (*model.Match, error) {
	if status != model.MatchStatusAccepted && status != model.MatchStatusDeclined {
		return nil, invalidInput("match status must be accepted or declined, got %q", status)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{MemberID: &memberID, MatchID: &matchID})

	match, err := s.authorized(ctx, matchID, memberID)
	if err != nil {
		return nil, err
	}
	if !match.IsActionable(time.Now()) {
		return nil, ErrMatchNotPending
	}

	updated, err := s.matches.TransitionPending(ctx, matchID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// lost a race with the other member or with expiry
			return nil, ErrMatchNotPending
		}
		return nil, fmt.Errorf("updating match status: %w", err)
	}

	slog.InfoContext(ctx, "match status updated", "status", status)
	return updated, nil
}

func (s *matchService) MarkViewed(ctx context.Context, matchID, memberID int64) (*model.Match, error) {
	match, err := s.authorized(ctx, matchID, memberID)
	if err != nil {
		return nil, err
	}

	alreadyViewed := (match.MemberAID == memberID && match.ViewedByA) || (match.MemberBID == memberID && match.ViewedByB)
	if alreadyViewed {
		relabel(match)
		return match, nil
	}

	updated, err := s.matches.MarkViewed(ctx, matchID, match.MemberAID == memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("marking match viewed: %w", err)
	}
	relabel(updated)
	return updated, nil
}

func (s *matchService) GetMatches(ctx context.Context, memberID int64, status *model.MatchStatus) ([]model.Match, error) {
	if status != nil && !status.IsValid() {
		return nil, invalidInput("unknown match status %q", *status)
	}

	matches, err := s.matches.ListForMember(ctx, memberID, status)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	for i := range matches {
		relabel(&matches[i])
	}
	return matches, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID, memberID int64) (*model.Match, error) {
	match, err := s.authorized(ctx, matchID, memberID)
	if err != nil {
		return nil, err
	}
	relabel(match)
	return match, nil
}

func (s *matchService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.matches.ExpireStale(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expiring stale matches: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired stale matches", "count", n)
	}
	return n, nil
}

func (s *matchService) authorized(ctx context.Context, matchID, memberID int64) (*model.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("getting match: %w", err)
	}
	if !match.HasMember(memberID) {
		return nil, ErrUnauthorized
	}
	return match, nil
}

// relabel applies read-time expiry.
func relabel(m *model.Match) {
	m.Status = m.EffectiveStatus(time.Now())
}
