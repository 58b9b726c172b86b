package store

import (
	"context"
	"errors"
	"time"

	"wiw3ch.app/matchmaker/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would break a uniqueness invariant
// (one active intent per owner, one live match per pair, one pending request per pair).
var ErrConflict = errors.New("conflict")

// MemberStore is the member directory used to validate members and resolve display names
type MemberStore interface {
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	Create(ctx context.Context, member *model.Member) error
}

// CandidateFilter narrows a candidate intent search.
type CandidateFilter struct {
	OwnerID       int64
	IntentTypes   []model.IntentType
	Domains       []string
	CategoryNames []string
	Limit         int
}

// IntentStore defines the contract for intent data access
type IntentStore interface {
	// LockOwner takes a transaction-scoped advisory lock for the owner's intent rows.
	LockOwner(ctx context.Context, ownerID int64) error
	GetByID(ctx context.Context, id int64) (*model.Intent, error)
	GetActiveByOwner(ctx context.Context, ownerID int64) (*model.Intent, error)
	GetActiveByOwnerForUpdate(ctx context.Context, ownerID int64) (*model.Intent, error)
	Create(ctx context.Context, intent *model.Intent) error
	UpdateContent(ctx context.Context, intent *model.Intent) error
	SetPaused(ctx context.Context, ownerID int64, paused bool) (*model.Intent, error)
	Deactivate(ctx context.Context, ownerID int64) (*model.Intent, error)
	SetVisibility(ctx context.Context, ownerID int64, visibility model.Visibility) (*model.Intent, error)
	SetConsent(ctx context.Context, ownerID int64, consentToMatch, consentToContact bool) (*model.Intent, error)
	// FindCandidates returns matchable intents overlapping by domain or category name.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]model.Intent, error)
	// ListMatchable returns matchable intents of the given types, restricted to
	// domain overlap when filter.Domains is non-empty. CategoryNames is ignored.
	ListMatchable(ctx context.Context, filter CandidateFilter) ([]model.Intent, error)
}

// MatchStore defines the contract for match data access
type MatchStore interface {
	Create(ctx context.Context, match *model.Match) error
	GetByID(ctx context.Context, id int64) (*model.Match, error)
	HasLiveForPair(ctx context.Context, memberA, memberB int64) (bool, error)
	ExpireStaleForPair(ctx context.Context, memberA, memberB int64) error
	ListForMember(ctx context.Context, memberID int64, status *model.MatchStatus) ([]model.Match, error)
	MarkViewed(ctx context.Context, id int64, sideA bool) (*model.Match, error)
	// TransitionPending moves a pending, unexpired match to status. ErrNotFound otherwise.
	TransitionPending(ctx context.Context, id int64, status model.MatchStatus) (*model.Match, error)
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// IntroductionStore defines the contract for introduction request data access
type IntroductionStore interface {
	Create(ctx context.Context, req *model.IntroductionRequest) error
	GetByID(ctx context.Context, id int64) (*model.IntroductionRequest, error)
	HasPending(ctx context.Context, fromID, toID int64) (bool, error)
	ExpireStaleForPair(ctx context.Context, fromID, toID int64) error
	ListSent(ctx context.Context, fromID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error)
	ListReceived(ctx context.Context, toID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error)
	// Respond moves a pending, unexpired request to status. ErrNotFound otherwise.
	Respond(ctx context.Context, id int64, status model.IntroductionStatus) (*model.IntroductionRequest, error)
	MarkViewed(ctx context.Context, id int64) (*model.IntroductionRequest, error)
	// Delete removes a pending request owned by fromID and reports whether a row was removed.
	Delete(ctx context.Context, id, fromID int64) (bool, error)
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// OnboardingStore persists questionnaire progress, one row per member
type OnboardingStore interface {
	Get(ctx context.Context, memberID int64) (*model.OnboardingProgress, error)
	// Save upserts the full progress row and refreshes progress from it.
	Save(ctx context.Context, progress *model.OnboardingProgress) error
	// ListCompleted returns non-private members who finished onboarding, newest member first.
	ListCompleted(ctx context.Context, limit int) ([]model.MemberProfile, error)
}
