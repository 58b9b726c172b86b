package store

import (
	"wiw3ch.app/matchmaker/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Members() MemberStore {
	return newMemberStore(s.queries)
}

func (s *Stores) Intents() IntentStore {
	return newIntentStore(s.queries)
}

func (s *Stores) Matches() MatchStore {
	return newMatchStore(s.queries)
}

func (s *Stores) Introductions() IntroductionStore {
	return newIntroductionStore(s.queries)
}

func (s *Stores) Onboarding() OnboardingStore {
	return newOnboardingStore(s.queries)
}
