package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/llm"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/core/config"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/queue"
	"wiw3ch.app/matchmaker/internal/store"
)

const (
	DefaultCandidateLimit = 20
	MaxCandidateLimit     = 100
)

// IntentInput carries the member-editable fields of an intent.
type IntentInput struct {
	RawText          string
	Visibility       model.Visibility
	ConsentToMatch   bool
	ConsentToContact bool
}

type IntentService interface {
	CreateOrUpdate(ctx context.Context, ownerID int64, in IntentInput) (*model.Intent, error)
	// Get returns the owner's active intent. found is false when there is none.
	Get(ctx context.Context, ownerID int64) (intent *model.Intent, found bool, err error)
	Pause(ctx context.Context, ownerID int64) (*model.Intent, error)
	Resume(ctx context.Context, ownerID int64) (*model.Intent, error)
	SoftDelete(ctx context.Context, ownerID int64) error
	SetVisibility(ctx context.Context, ownerID int64, visibility model.Visibility) (*model.Intent, error)
	SetConsent(ctx context.Context, ownerID int64, consentToMatch, consentToContact bool) (*model.Intent, error)
	FindCandidates(ctx context.Context, ownerID int64, limit int) ([]model.Intent, error)
	Reanalyze(ctx context.Context, ownerID int64) (*model.Intent, error)
}

type IntentServiceConfig struct {
	FailurePolicy  config.AnalysisFailurePolicy
	MaxAttempts    int
	CandidateLimit int
	// RefreshMatches enqueues a match_refresh task after a successful analysis.
	RefreshMatches bool
}

type intentService struct {
	members  store.MemberStore
	intents  store.IntentStore
	txRunner TxRunner
	analyzer analysis.Analyzer
	locker   lock.Locker
	producer queue.Producer
	cfg      IntentServiceConfig
}

func NewIntentService(
	members store.MemberStore,
	intents store.IntentStore,
	txRunner TxRunner,
	analyzer analysis.Analyzer,
	locker lock.Locker,
	producer queue.Producer,
	cfg IntentServiceConfig,
) IntentService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = DefaultCandidateLimit
	}
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = config.AnalysisPolicyAbort
	}
	if locker == nil {
		locker = lock.NewNoopLocker()
	}
	return &intentService{
		members:  members,
		intents:  intents,
		txRunner: txRunner,
		analyzer: analyzer,
		locker:   locker,
		producer: producer,
		cfg:      cfg,
	}
}

func (s *intentService) CreateOrUpdate(ctx context.Context, ownerID int64, in IntentInput) (*model.Intent, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MemberID:  &ownerID,
		Component: "matchmaker.service.intent",
	})

	rawText := strings.TrimSpace(in.RawText)
	if rawText == "" {
		return nil, invalidInput("intent text is required")
	}
	if n := utf8.RuneCountInString(rawText); n > model.MaxIntentTextLength {
		return nil, invalidInput("intent text is %d characters, the maximum is %d", n, model.MaxIntentTextLength)
	}
	if in.Visibility == "" {
		in.Visibility = model.VisibilityMembersOnly
	}
	if !in.Visibility.IsValid() {
		return nil, invalidInput("unknown visibility %q", in.Visibility)
	}

	if _, err := s.members.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}

	var saved *model.Intent
	err := withOwnerLock(ctx, s.locker, lock.ScopeIntent, ownerID, func() error {
		result, analysisErr := s.analyze(ctx, rawText)
		if analysisErr != nil && s.cfg.FailurePolicy != config.AnalysisPolicyDegrade {
			return analysisErr
		}

		draft := &model.Intent{
			OwnerID:          ownerID,
			RawText:          rawText,
			Visibility:       in.Visibility,
			ConsentToMatch:   in.ConsentToMatch,
			ConsentToContact: in.ConsentToContact,
		}
		applyAnalysis(draft, result, analysisErr)

		txErr := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
			intents := sp.Intents()
			if err := intents.LockOwner(ctx, ownerID); err != nil {
				return fmt.Errorf("locking owner intents: %w", err)
			}

			existing, err := intents.GetActiveByOwnerForUpdate(ctx, ownerID)
			switch {
			case err == nil:
				draft.ID = existing.ID
				if err := intents.UpdateContent(ctx, draft); err != nil {
					return fmt.Errorf("updating intent: %w", err)
				}
			case errors.Is(err, store.ErrNotFound):
				draft.ID = id.New()
				if err := intents.Create(ctx, draft); err != nil {
					return fmt.Errorf("creating intent: %w", err)
				}
			default:
				return fmt.Errorf("loading active intent: %w", err)
			}
			return nil
		})
		if txErr != nil {
			return txErr
		}

		saved = draft
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "intent saved",
		"intent_id", saved.ID,
		"intent_type", saved.Analysis.IntentType,
		"analysis_status", saved.AnalysisStatus)

	s.refreshMatches(ctx, saved, "intent_updated")
	return saved, nil
}

func (s *intentService) Get(ctx context.Context, ownerID int64) (*model.Intent, bool, error) {
	intent, err := s.intents.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting active intent: %w", err)
	}
	return intent, true, nil
}

func (s *intentService) Pause(ctx context.Context, ownerID int64) (*model.Intent, error) {
	return s.mutate(ctx, ownerID, "pausing intent", func() (*model.Intent, error) {
		return s.intents.SetPaused(ctx, ownerID, true)
	})
}

func (s *intentService) Resume(ctx context.Context, ownerID int64) (*model.Intent, error) {
	return s.mutate(ctx, ownerID, "resuming intent", func() (*model.Intent, error) {
		return s.intents.SetPaused(ctx, ownerID, false)
	})
}

func (s *intentService) SoftDelete(ctx context.Context, ownerID int64) error {
	intent, err := s.mutate(ctx, ownerID, "deactivating intent", func() (*model.Intent, error) {
		return s.intents.Deactivate(ctx, ownerID)
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "intent deactivated", "member_id", ownerID, "intent_id", intent.ID)
	return nil
}

func (s *intentService) SetVisibility(ctx context.Context, ownerID int64, visibility model.Visibility) (*model.Intent, error) {
	if !visibility.IsValid() {
		return nil, invalidInput("unknown visibility %q", visibility)
	}
	return s.mutate(ctx, ownerID, "updating visibility", func() (*model.Intent, error) {
		return s.intents.SetVisibility(ctx, ownerID, visibility)
	})
}

func (s *intentService) SetConsent(ctx context.Context, ownerID int64, consentToMatch, consentToContact bool) (*model.Intent, error) {
	return s.mutate(ctx, ownerID, "updating consent", func() (*model.Intent, error) {
		return s.intents.SetConsent(ctx, ownerID, consentToMatch, consentToContact)
	})
}

func (s *intentService) FindCandidates(ctx context.Context, ownerID int64, limit int) ([]model.Intent, error) {
	if limit <= 0 {
		limit = s.cfg.CandidateLimit
	}
	if limit > MaxCandidateLimit {
		limit = MaxCandidateLimit
	}

	own, found, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !found || !own.IsMatchable() {
		return []model.Intent{}, nil
	}

	candidates, err := s.intents.FindCandidates(ctx, store.CandidateFilter{
		OwnerID:       ownerID,
		IntentTypes:   own.Analysis.IntentType.CandidateTypes(),
		Domains:       own.Analysis.Domains,
		CategoryNames: own.Analysis.CategoryNames(),
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("finding candidates: %w", err)
	}
	return candidates, nil
}

func (s *intentService) Reanalyze(ctx context.Context, ownerID int64) (*model.Intent, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MemberID:  &ownerID,
		Component: "matchmaker.service.intent",
	})

	var saved *model.Intent
	err := withOwnerLock(ctx, s.locker, lock.ScopeIntent, ownerID, func() error {
		current, found, err := s.Get(ctx, ownerID)
		if err != nil {
			return err
		}
		if !found {
			return ErrNoActiveIntent
		}

		result, err := s.analyze(ctx, current.RawText)
		if err != nil {
			return err
		}

		return s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
			intents := sp.Intents()
			if err := intents.LockOwner(ctx, ownerID); err != nil {
				return fmt.Errorf("locking owner intents: %w", err)
			}
			existing, err := intents.GetActiveByOwnerForUpdate(ctx, ownerID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrNoActiveIntent
				}
				return fmt.Errorf("loading active intent: %w", err)
			}

			applyAnalysis(existing, result, nil)
			if err := intents.UpdateContent(ctx, existing); err != nil {
				return fmt.Errorf("updating intent: %w", err)
			}
			saved = existing
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "intent reanalyzed",
		"intent_id", saved.ID,
		"intent_type", saved.Analysis.IntentType)

	s.refreshMatches(ctx, saved, "intent_reanalyzed")
	return saved, nil
}

// analyze runs the analyzer, repeating retryable failures up to MaxAttempts.
func (s *intentService) analyze(ctx context.Context, rawText string) (model.IntentAnalysis, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		result, err := s.analyzer.Analyze(ctx, rawText)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == s.cfg.MaxAttempts || !llm.IsRetryable(ctx, err) {
			break
		}
		slog.WarnContext(ctx, "intent analysis failed, retrying",
			"attempt", attempt,
			"max_attempts", s.cfg.MaxAttempts,
			"error", err)
	}

	if !errors.Is(lastErr, analysis.ErrAnalysisFailed) {
		lastErr = fmt.Errorf("%w: %w", analysis.ErrAnalysisFailed, lastErr)
	}
	slog.ErrorContext(ctx, "intent analysis failed",
		"policy", s.cfg.FailurePolicy,
		"error", lastErr)
	return model.IntentAnalysis{}, lastErr
}

// applyAnalysis writes the analysis outcome onto intent. A non-nil analysisErr
// yields the degraded form: no type, no categories, never matched.
func applyAnalysis(intent *model.Intent, result model.IntentAnalysis, analysisErr error) {
	if analysisErr != nil {
		msg := logger.Truncate(analysisErr.Error(), 500)
		intent.Analysis = model.IntentAnalysis{
			Categories:   []model.IntentCategory{},
			Domains:      []string{},
			Availability: model.AvailabilityNotSpecified,
		}
		intent.AnalysisStatus = model.AnalysisStatusFailed
		intent.AnalysisError = &msg
		return
	}
	intent.Analysis = result
	intent.AnalysisStatus = model.AnalysisStatusAnalyzed
	intent.AnalysisError = nil
}

func (s *intentService) mutate(ctx context.Context, ownerID int64, action string, fn func() (*model.Intent, error)) (*model.Intent, error) {
	intent, err := fn()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveIntent
		}
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	slog.DebugContext(ctx, "intent updated", "member_id", ownerID, "action", action)
	return intent, nil
}

// refreshMatches enqueues background match generation. Failures are logged only.
func (s *intentService) refreshMatches(ctx context.Context, intent *model.Intent, reason string) {
	if !s.cfg.RefreshMatches || s.producer == nil || !intent.IsMatchable() {
		return
	}

	task := queue.Task{
		TaskType: queue.TaskTypeMatchRefresh,
		MemberID: intent.OwnerID,
		IntentID: &intent.ID,
		Reason:   reason,
	}
	if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
		task.TraceID = &traceID
	}

	if err := s.producer.Enqueue(ctx, task); err != nil {
		slog.WarnContext(ctx, "failed to enqueue match refresh",
			"intent_id", intent.ID,
			"error", err)
	}
}
