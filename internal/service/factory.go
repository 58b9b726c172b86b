package service

import (
	"wiw3ch.app/matchmaker/core/config"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/queue"
	"wiw3ch.app/matchmaker/internal/store"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	analyzer  analysis.Analyzer
	explainer analysis.Explainer
	locker    lock.Locker
	producer  queue.Producer
	cfg       config.Config
}

// NewServices wires services over shared stores. producer may be nil.
func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	analyzer analysis.Analyzer,
	explainer analysis.Explainer,
	locker lock.Locker,
	producer queue.Producer,
	cfg config.Config,
) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		analyzer:  analyzer,
		explainer: explainer,
		locker:    locker,
		producer:  producer,
		cfg:       cfg,
	}
}

func (s *Services) Members() MemberService {
	return NewMemberService(s.stores.Members())
}

func (s *Services) Intents() IntentService {
	return NewIntentService(
		s.stores.Members(),
		s.stores.Intents(),
		s.txRunner,
		s.analyzer,
		s.locker,
		s.producer,
		IntentServiceConfig{
			FailurePolicy:  s.cfg.Intent.AnalysisFailurePolicy,
			MaxAttempts:    s.cfg.Intent.AnalysisMaxAttempts,
			CandidateLimit: s.cfg.Matching.CandidateLimit,
			RefreshMatches: s.cfg.Features.MatchOnIntentUpdate,
		},
	)
}

func (s *Services) Matches() MatchService {
	return NewMatchService(
		s.stores.Members(),
		s.stores.Intents(),
		s.stores.Matches(),
		s.txRunner,
		s.explainer,
		s.locker,
		s.cfg.Matching.DefaultLimit,
	)
}

func (s *Services) Introductions() IntroductionService {
	return NewIntroductionService(s.stores.Members(), s.stores.Introductions(), s.txRunner)
}

func (s *Services) Onboarding() OnboardingService {
	return NewOnboardingService(s.stores.Members(), s.stores.Onboarding(), s.Intents(), s.locker)
}
