package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/store"
)

const (
	DefaultDirectoryLimit = 50
	MaxDirectoryLimit     = 200
)

type OnboardingService interface {
	// Status returns the member's progress, or an empty step-0 progress.
	Status(ctx context.Context, memberID int64) (*model.OnboardingProgress, error)
	// SaveCoreIntent stores text as the member's active intent and records it as step 1.
	SaveCoreIntent(ctx context.Context, memberID int64, text string) (*model.OnboardingProgress, *model.Intent, error)
	SaveIntentModes(ctx context.Context, memberID int64, modes []model.IntentMode) (*model.OnboardingProgress, error)
	SaveVisibility(ctx context.Context, memberID int64, visibility model.Visibility) (*model.OnboardingProgress, error)
	SaveDomainFocus(ctx context.Context, memberID int64, domains []string) (*model.OnboardingProgress, error)
	SaveExperienceLevel(ctx context.Context, memberID int64, level *model.ExperienceLevel) (*model.OnboardingProgress, error)
	SaveSkills(ctx context.Context, memberID int64, skills []string) (*model.OnboardingProgress, error)
	SaveAvailability(ctx context.Context, memberID int64, availability *model.Availability) (*model.OnboardingProgress, error)
	SaveContributionAreas(ctx context.Context, memberID int64, areas []string) (*model.OnboardingProgress, error)
	// Complete fails with ErrOnboardingIncomplete until steps 1-3 are saved.
	Complete(ctx context.Context, memberID int64) (*model.OnboardingProgress, error)
	ListDirectory(ctx context.Context, limit int) ([]model.MemberProfile, error)
	GetProfile(ctx context.Context, memberID int64) (*model.MemberProfile, error)
}

type onboardingService struct {
	members    store.MemberStore
	onboarding store.OnboardingStore
	intents    IntentService
	locker     lock.Locker
	now        func() time.Time
}

func NewOnboardingService(
	members store.MemberStore,
	onboarding store.OnboardingStore,
	intents IntentService,
	locker lock.Locker,
) OnboardingService {
	if locker == nil {
		locker = lock.NewNoopLocker()
	}
	return &onboardingService{
		members:    members,
		onboarding: onboarding,
		intents:    intents,
		locker:     locker,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *onboardingService) Status(ctx context.Context, memberID int64) (*model.OnboardingProgress, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.load(ctx, memberID)
}

func (s *onboardingService) SaveCoreIntent(ctx context.Context, memberID int64, text string) (*model.OnboardingProgress, *model.Intent, error) {
	var saved *model.Intent
	progress, err := s.saveStep(ctx, memberID, model.StepCoreIntent, func(p *model.OnboardingProgress) error {
		in := IntentInput{
			RawText:        text,
			Visibility:     model.VisibilityMembersOnly,
			ConsentToMatch: true,
		}
		if p.Visibility != nil {
			in.Visibility = *p.Visibility
		}

		// an existing intent keeps its sharing settings
		current, found, err := s.intents.Get(ctx, memberID)
		if err != nil {
			return err
		}
		if found {
			in.Visibility = current.Visibility
			in.ConsentToMatch = current.ConsentToMatch
			in.ConsentToContact = current.ConsentToContact
		}

		intent, err := s.intents.CreateOrUpdate(ctx, memberID, in)
		if err != nil {
			return err
		}

		p.CoreIntent = &intent.RawText
		if len(p.DomainFocus) == 0 {
			p.DomainFocus = slices.Clone(intent.Analysis.Domains)
		}
		saved = intent
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return progress, saved, nil
}

func (s *onboardingService) SaveIntentModes(ctx context.Context, memberID int64, modes []model.IntentMode) (*model.OnboardingProgress, error) {
	if len(modes) == 0 {
		return nil, invalidInput("at least one intent mode is required")
	}
	unique := make([]model.IntentMode, 0, len(modes))
	for _, m := range modes {
		if !m.IsValid() {
			return nil, invalidInput("unknown intent mode %q", m)
		}
		if !slices.Contains(unique, m) {
			unique = append(unique, m)
		}
	}

	return s.saveStep(ctx, memberID, model.StepIntentModes, func(p *model.OnboardingProgress) error {
		p.IntentModes = unique
		return nil
	})
}

func (s *onboardingService) SaveVisibility(ctx context.Context, memberID int64, visibility model.Visibility) (*model.OnboardingProgress, error) {
	if !visibility.IsValid() {
		return nil, invalidInput("unknown visibility %q", visibility)
	}

	return s.saveStep(ctx, memberID, model.StepVisibility, func(p *model.OnboardingProgress) error {
		if _, err := s.intents.SetVisibility(ctx, memberID, visibility); err != nil && !errors.Is(err, ErrNoActiveIntent) {
			return err
		}
		p.Visibility = &visibility
		return nil
	})
}

func (s *onboardingService) SaveDomainFocus(ctx context.Context, memberID int64, domains []string) (*model.OnboardingProgress, error) {
	domains = cleanList(domains)
	return s.saveStep(ctx, memberID, model.StepDomainFocus, func(p *model.OnboardingProgress) error {
		if len(domains) > 0 {
			p.DomainFocus = domains
		}
		return nil
	})
}

func (s *onboardingService) SaveExperienceLevel(ctx context.Context, memberID int64, level *model.ExperienceLevel) (*model.OnboardingProgress, error) {
	if level != nil && !level.IsValid() {
		return nil, invalidInput("unknown experience level %q", *level)
	}
	return s.saveStep(ctx, memberID, model.StepExperienceLevel, func(p *model.OnboardingProgress) error {
		if level != nil {
			p.ExperienceLevel = level
		}
		return nil
	})
}

func (s *onboardingService) SaveSkills(ctx context.Context, memberID int64, skills []string) (*model.OnboardingProgress, error) {
	skills = cleanList(skills)
	if len(skills) > model.MaxOnboardingSkills {
		return nil, invalidInput("%d skills given, the maximum is %d", len(skills), model.MaxOnboardingSkills)
	}
	return s.saveStep(ctx, memberID, model.StepSkills, func(p *model.OnboardingProgress) error {
		if skills != nil {
			p.Skills = skills
		}
		return nil
	})
}

func (s *onboardingService) SaveAvailability(ctx context.Context, memberID int64, availability *model.Availability) (*model.OnboardingProgress, error) {
	if availability != nil && !availability.IsValid() {
		return nil, invalidInput("unknown availability %q", *availability)
	}
	return s.saveStep(ctx, memberID, model.StepAvailability, func(p *model.OnboardingProgress) error {
		if availability != nil {
			p.Availability = availability
		}
		return nil
	})
}

func (s *onboardingService) SaveContributionAreas(ctx context.Context, memberID int64, areas []string) (*model.OnboardingProgress, error) {
	areas = cleanList(areas)
	return s.saveStep(ctx, memberID, model.StepContributionAreas, func(p *model.OnboardingProgress) error {
		if len(areas) > 0 {
			p.ContributionAreas = areas
		}
		return nil
	})
}

func (s *onboardingService) Complete(ctx context.Context, memberID int64) (*model.OnboardingProgress, error) {
	wasCompleted := false
	progress, err := s.saveStep(ctx, memberID, model.FinalOnboardingStep, func(p *model.OnboardingProgress) error {
		switch {
		case p.CoreIntent == nil || strings.TrimSpace(*p.CoreIntent) == "":
			return fmt.Errorf("%w: core intent (step %d) is required", ErrOnboardingIncomplete, model.StepCoreIntent)
		case len(p.IntentModes) == 0:
			return fmt.Errorf("%w: at least one intent mode (step %d) is required", ErrOnboardingIncomplete, model.StepIntentModes)
		case p.Visibility == nil:
			return fmt.Errorf("%w: visibility (step %d) is required", ErrOnboardingIncomplete, model.StepVisibility)
		}

		wasCompleted = p.Completed()
		if !wasCompleted {
			now := s.now()
			p.CompletedAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !wasCompleted {
		slog.InfoContext(ctx, "onboarding completed", "member_id", memberID)
	}
	return progress, nil
}

func (s *onboardingService) ListDirectory(ctx context.Context, limit int) ([]model.MemberProfile, error) {
	if limit <= 0 {
		limit = DefaultDirectoryLimit
	}
	if limit > MaxDirectoryLimit {
		limit = MaxDirectoryLimit
	}

	profiles, err := s.onboarding.ListCompleted(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}
	return profiles, nil
}

func (s *onboardingService) GetProfile(ctx context.Context, memberID int64) (*model.MemberProfile, error) {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}

	progress, err := s.load(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &model.MemberProfile{Member: *member, Onboarding: *progress}, nil
}

// saveStep applies fn to the member's progress under the onboarding lock,
// stamps the step number and persists the result.
func (s *onboardingService) saveStep(ctx context.Context, memberID int64, step int, fn func(p *model.OnboardingProgress) error) (*model.OnboardingProgress, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MemberID:  &memberID,
		Component: "matchmaker.service.onboarding",
	})

	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	var progress *model.OnboardingProgress
	err := withOwnerLock(ctx, s.locker, lock.ScopeOnboarding, memberID, func() error {
		p, err := s.load(ctx, memberID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}

		p.CurrentStep = step
		if err := s.onboarding.Save(ctx, p); err != nil {
			return fmt.Errorf("saving onboarding step %d: %w", step, err)
		}
		progress = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "onboarding step saved", "step", step)
	return progress, nil
}

func (s *onboardingService) load(ctx context.Context, memberID int64) (*model.OnboardingProgress, error) {
	progress, err := s.onboarding.Get(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &model.OnboardingProgress{
				MemberID:          memberID,
				IntentModes:       []model.IntentMode{},
				DomainFocus:       []string{},
				Skills:            []string{},
				ContributionAreas: []string{},
			}, nil
		}
		return nil, fmt.Errorf("getting onboarding progress: %w", err)
	}
	return progress, nil
}

func (s *onboardingService) requireMember(ctx context.Context, memberID int64) error {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("getting member: %w", err)
	}
	return nil
}

// cleanList trims entries and drops blanks and repeats. nil stays nil.
func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
