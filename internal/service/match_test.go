package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
	"wiw3ch.app/matchmaker/internal/store"
)

func matchableIntent(id, owner int64, t model.IntentType, domains ...string) model.Intent {
	return model.Intent{
		ID:             id,
		OwnerID:        owner,
		IsActive:       true,
		ConsentToMatch: true,
		AnalysisStatus: model.AnalysisStatusAnalyzed,
		Analysis: model.IntentAnalysis{
			IntentType: t,
			Categories: []model.IntentCategory{
				{Category: "Technology & Development", Confidence: 0.8},
			},
			Domains:      domains,
			Availability: model.AvailabilityFlexible,
		},
	}
}

var _ = Describe("MatchService", func() {
	var (
		ctx       context.Context
		members   *mockMemberStore
		intents   *mockIntentStore
		matches   *mockMatchStore
		txRunner  *mockTxRunner
		explainer *mockExplainer
		locker    *mockLocker
		svc       service.MatchService
	)

	const ownerID int64 = 1

	BeforeEach(func() {
		ctx = context.Background()
		members = &mockMemberStore{}
		intents = &mockIntentStore{}
		matches = &mockMatchStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{intents: intents, matches: matches}}
		explainer = &mockExplainer{}
		locker = &mockLocker{}

		Expect(id.Init(1)).To(Succeed())
	})

	JustBeforeEach(func() {
		svc = service.NewMatchService(members, intents, matches, txRunner, explainer, locker, 0)
	})

	Describe("GenerateMatches", func() {
		var own model.Intent

		BeforeEach(func() {
			own = matchableIntent(100, ownerID, model.IntentTypeReceiving, "AI/ML", "Startups")
			intents.getActiveFn = func(_ context.Context, _ int64) (*model.Intent, error) {
				intent := own
				return &intent, nil
			}
		})

		It("requires an active intent", func() {
			intents.getActiveFn = nil
			_, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).To(MatchError(service.ErrNoEligibleIntent))
		})

		It("refuses a paused intent", func() {
			own.IsPaused = true
			_, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).To(MatchError(service.ErrNoEligibleIntent))
		})

		It("refuses an intent without matching consent", func() {
			own.ConsentToMatch = false
			_, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).To(MatchError(service.ErrNoEligibleIntent))
		})

		It("creates a scored, explained match for a complementary candidate", func() {
			var filter store.CandidateFilter
			intents.listMatchableFn = func(_ context.Context, f store.CandidateFilter) ([]model.Intent, error) {
				filter = f
				return []model.Intent{matchableIntent(200, 2, model.IntentTypeGiving, "AI/ML")}, nil
			}
			members.getByIDFn = func(_ context.Context, id int64) (*model.Member, error) {
				if id == ownerID {
					return &model.Member{ID: id, FirstName: "Ada", LastName: "Lovelace"}, nil
				}
				return &model.Member{ID: id, FirstName: "Grace", LastName: "Hopper"}, nil
			}
			var names []string
			explainer.explainFn = func(_ context.Context, _, _ model.Intent, a, b string) (string, error) {
				names = []string{a, b}
				return "Ada and Grace share AI interests.", nil
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(filter.Limit).To(Equal(2 * service.DefaultMatchLimit))
			Expect(filter.IntentTypes).To(ConsistOf(model.IntentTypeGiving, model.IntentTypeBoth))
			Expect(created).To(HaveLen(1))

			m := created[0]
			Expect(m.MemberAID).To(Equal(ownerID))
			Expect(m.MemberBID).To(Equal(int64(2)))
			Expect(m.IntentAID).To(Equal(int64(100)))
			Expect(m.IntentBID).To(Equal(int64(200)))
			// 15 shared domain + 30 complementary + 10 category + 16 confidence + 5 availability
			Expect(m.Score).To(Equal(76))
			Expect(m.Status).To(Equal(model.MatchStatusPending))
			Expect(m.ExpiresAt).To(BeTemporally("~", time.Now().Add(model.MatchTTL), time.Minute))
			Expect(m.Explanation.Reason).To(Equal("Ada and Grace share AI interests."))
			Expect(m.Explanation.SharedDomains).To(Equal([]string{"AI/ML"}))
			Expect(m.Explanation.ComplementaryIntents).To(Equal([]string{"Ada is seeking what Grace is offering"}))
			Expect(m.Explanation.Confidence).To(BeNumerically("~", 0.8, 1e-9))
			Expect(names).To(Equal([]string{"Ada Lovelace", "Grace Hopper"}))
			Expect(matches.created).To(HaveLen(1))
		})

		It("uses the fallback reason when the explainer fails", func() {
			intents.listMatchableFn = func(_ context.Context, _ store.CandidateFilter) ([]model.Intent, error) {
				return []model.Intent{matchableIntent(200, 2, model.IntentTypeGiving, "AI/ML")}, nil
			}
			explainer.explainFn = func(_ context.Context, _, _ model.Intent, _, _ string) (string, error) {
				return "", errors.New("llm unavailable")
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].Explanation.Reason).To(Equal(analysis.FallbackMatchReason))
		})

		It("skips candidates below the minimum score", func() {
			weak := matchableIntent(200, 2, model.IntentTypeReceiving)
			weak.Analysis.Categories = nil
			weak.Analysis.Availability = model.AvailabilityNotSpecified
			intents.listMatchableFn = func(_ context.Context, _ store.CandidateFilter) ([]model.Intent, error) {
				return []model.Intent{weak}, nil
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeEmpty())
			Expect(matches.created).To(BeEmpty())
		})

		It("skips pairs that already have a live match", func() {
			intents.listMatchableFn = func(_ context.Context, _ store.CandidateFilter) ([]model.Intent, error) {
				return []model.Intent{
					matchableIntent(200, 2, model.IntentTypeGiving, "AI/ML"),
					matchableIntent(300, 3, model.IntentTypeGiving, "AI/ML"),
				}, nil
			}
			matches.hasLiveForPairFn = func(_ context.Context, _, b int64) (bool, error) {
				return b == 2, nil
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].MemberBID).To(Equal(int64(3)))
		})

		It("skips a pair created concurrently", func() {
			intents.listMatchableFn = func(_ context.Context, _ store.CandidateFilter) ([]model.Intent, error) {
				return []model.Intent{matchableIntent(200, 2, model.IntentTypeGiving, "AI/ML")}, nil
			}
			matches.createFn = func(_ context.Context, _ *model.Match) error {
				return store.ErrConflict
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeEmpty())
		})

		It("skips candidates whose member cannot be resolved", func() {
			intents.listMatchableFn = func(_ context.Context, _ store.CandidateFilter) ([]model.Intent, error) {
				return []model.Intent{matchableIntent(200, 2, model.IntentTypeGiving, "AI/ML")}, nil
			}
			members.getByIDFn = func(_ context.Context, id int64) (*model.Member, error) {
				if id == 2 {
					return nil, store.ErrNotFound
				}
				return &model.Member{ID: id, FirstName: "Ada"}, nil
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeEmpty())
		})

		It("stops at the requested limit", func() {
			intents.listMatchableFn = func(_ context.Context, f store.CandidateFilter) ([]model.Intent, error) {
				Expect(f.Limit).To(Equal(4))
				return []model.Intent{
					matchableIntent(200, 2, model.IntentTypeGiving, "AI/ML"),
					matchableIntent(300, 3, model.IntentTypeGiving, "AI/ML"),
					matchableIntent(400, 4, model.IntentTypeGiving, "AI/ML"),
				}, nil
			}

			created, err := svc.GenerateMatches(ctx, ownerID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(2))
		})

		It("clamps the limit to the maximum", func() {
			intents.listMatchableFn = func(_ context.Context, f store.CandidateFilter) ([]model.Intent, error) {
				Expect(f.Limit).To(Equal(2 * service.MaxMatchLimit))
				return nil, nil
			}
			_, err := svc.GenerateMatches(ctx, ownerID, 1000)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("UpdateStatus", func() {
		var match *model.Match

		BeforeEach(func() {
			match = &model.Match{
				ID:        10,
				MemberAID: 1,
				MemberBID: 2,
				Status:    model.MatchStatusPending,
				ExpiresAt: time.Now().Add(time.Hour),
			}
			matches.getByIDFn = func(_ context.Context, _ int64) (*model.Match, error) {
				m := *match
				return &m, nil
			}
			matches.transitionPendingFn = func(_ context.Context, _ int64, status model.MatchStatus) (*model.Match, error) {
				m := *match
				m.Status = status
				return &m, nil
			}
		})

		It("rejects statuses other than accepted or declined", func() {
			matches.getByIDFn = nil
			_, err := svc.UpdateStatus(ctx, 999, 1, model.MatchStatusExpired)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("lets either member accept", func() {
			updated, err := svc.UpdateStatus(ctx, 10, 2, model.MatchStatusAccepted)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(model.MatchStatusAccepted))
		})

		It("rejects a member outside the pair", func() {
			_, err := svc.UpdateStatus(ctx, 10, 3, model.MatchStatusDeclined)
			Expect(err).To(MatchError(service.ErrUnauthorized))
		})

		It("rejects an unknown match", func() {
			matches.getByIDFn = nil
			_, err := svc.UpdateStatus(ctx, 999, 1, model.MatchStatusAccepted)
			Expect(err).To(MatchError(service.ErrMatchNotFound))
		})

		It("rejects an expired match", func() {
			match.ExpiresAt = time.Now().Add(-time.Minute)
			_, err := svc.UpdateStatus(ctx, 10, 1, model.MatchStatusAccepted)
			Expect(err).To(MatchError(service.ErrMatchNotPending))
		})

		It("rejects a match that was already answered", func() {
			match.Status = model.MatchStatusDeclined
			_, err := svc.UpdateStatus(ctx, 10, 1, model.MatchStatusAccepted)
			Expect(err).To(MatchError(service.ErrMatchNotPending))
		})

		It("reports a lost race as not pending", func() {
			matches.transitionPendingFn = func(_ context.Context, _ int64, _ model.MatchStatus) (*model.Match, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.UpdateStatus(ctx, 10, 1, model.MatchStatusAccepted)
			Expect(err).To(MatchError(service.ErrMatchNotPending))
		})
	})

	Describe("MarkViewed", func() {
		BeforeEach(func() {
			matches.getByIDFn = func(_ context.Context, _ int64) (*model.Match, error) {
				return &model.Match{ID: 10, MemberAID: 1, MemberBID: 2, ViewedByA: true,
					Status: model.MatchStatusPending, ExpiresAt: time.Now().Add(time.Hour)}, nil
			}
		})

		It("marks the caller's side", func() {
			var side *bool
			matches.markViewedFn = func(_ context.Context, _ int64, sideA bool) (*model.Match, error) {
				side = &sideA
				return &model.Match{ID: 10, MemberAID: 1, MemberBID: 2, ViewedByA: true, ViewedByB: true,
					Status: model.MatchStatusPending, ExpiresAt: time.Now().Add(time.Hour)}, nil
			}

			updated, err := svc.MarkViewed(ctx, 10, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(side).NotTo(BeNil())
			Expect(*side).To(BeFalse())
			Expect(updated.ViewedByB).To(BeTrue())
		})

		It("is a no-op when already viewed", func() {
			updated, err := svc.MarkViewed(ctx, 10, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ViewedByA).To(BeTrue())
			Expect(matches.markViewedCalls).To(BeZero())
		})

		It("rejects a member outside the pair", func() {
			_, err := svc.MarkViewed(ctx, 10, 3)
			Expect(err).To(MatchError(service.ErrUnauthorized))
		})
	})

	Describe("GetMatches", func() {
		It("reports expired pending matches as expired", func() {
			matches.listForMemberFn = func(_ context.Context, _ int64, _ *model.MatchStatus) ([]model.Match, error) {
				return []model.Match{
					{ID: 1, Status: model.MatchStatusPending, ExpiresAt: time.Now().Add(-time.Hour)},
					{ID: 2, Status: model.MatchStatusPending, ExpiresAt: time.Now().Add(time.Hour)},
				}, nil
			}

			result, err := svc.GetMatches(ctx, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result[0].Status).To(Equal(model.MatchStatusExpired))
			Expect(result[1].Status).To(Equal(model.MatchStatusPending))
		})

		It("rejects an unknown status filter", func() {
			status := model.MatchStatus("archived")
			_, err := svc.GetMatches(ctx, 1, &status)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})
	})

	Describe("ExpireStale", func() {
		It("passes the cutoff through", func() {
			now := time.Now()
			matches.expireStaleFn = func(_ context.Context, cutoff time.Time) (int64, error) {
				Expect(cutoff).To(Equal(now))
				return 3, nil
			}
			n, err := svc.ExpireStale(ctx, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(3)))
		})
	})
})
