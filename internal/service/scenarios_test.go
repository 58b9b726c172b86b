package service_test

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/core/config"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/lock"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/scorer"
	"wiw3ch.app/matchmaker/internal/service"
)

// Multi-step flows over the in-memory stores.
var _ = Describe("Scenarios", func() {
	const (
		ada   int64 = 1
		bruno int64 = 2
		chen  int64 = 3
		dana  int64 = 4
	)

	var (
		ctx       context.Context
		db        *memDB
		analyses  map[string]model.IntentAnalysis
		intentSvc service.IntentService
		matchSvc  service.MatchService
		introSvc  service.IntroductionService
	)

	save := func(ownerID int64, text string) *model.Intent {
		intent, err := intentSvc.CreateOrUpdate(ctx, ownerID, service.IntentInput{RawText: text, ConsentToMatch: true})
		Expect(err).NotTo(HaveOccurred())
		return intent
	}

	activeCount := func(ownerID int64) int {
		n := 0
		for _, i := range db.intents {
			if i.OwnerID == ownerID && i.IsActive {
				n++
			}
		}
		return n
	}

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())

		db = newMemDB()
		members := &mockMemberStore{}
		analyses = map[string]model.IntentAnalysis{
			"seeking a defi mentor": {
				IntentType:   model.IntentTypeReceiving,
				Categories:   []model.IntentCategory{{Category: "mentorship", Subcategories: []string{"seeking_mentor"}, Confidence: 0.9}},
				Domains:      []string{"DeFi", "Smart Contracts"},
				Availability: model.AvailabilityFlexible,
			},
			"offering defi mentorship": {
				IntentType:   model.IntentTypeGiving,
				Categories:   []model.IntentCategory{{Category: "mentorship", Subcategories: []string{"offering_mentorship"}, Confidence: 0.95}},
				Domains:      []string{"DeFi", "Security"},
				Availability: model.AvailabilityFlexible,
			},
			"learning about daos": {
				IntentType: model.IntentTypeReceiving,
				Categories: []model.IntentCategory{{Category: "learning", Confidence: 0.6}},
				Domains:    []string{"DAOs"},
			},
			"trading notes on daos": {
				IntentType: model.IntentTypeBoth,
				Categories: []model.IntentCategory{{Category: "community", Confidence: 0.7}},
				Domains:    []string{"DAOs"},
			},
			"building dao tooling": {
				IntentType: model.IntentTypeBoth,
				Categories: []model.IntentCategory{{Category: "collaboration", Confidence: 0.8}},
				Domains:    []string{"DAOs"},
			},
		}
		analyzer := &mockAnalyzer{analyzeFn: func(_ context.Context, text string) (model.IntentAnalysis, error) {
			a, ok := analyses[text]
			if !ok {
				return model.IntentAnalysis{}, fmt.Errorf("%w: unexpected text %q", analysis.ErrAnalysisFailed, text)
			}
			return a, nil
		}}

		intentSvc = service.NewIntentService(members, db.Intents(), db, analyzer, lock.NewNoopLocker(), nil, service.IntentServiceConfig{
			FailurePolicy:  config.AnalysisPolicyAbort,
			MaxAttempts:    1,
			CandidateLimit: 20,
		})
		matchSvc = service.NewMatchService(members, db.Intents(), db.Matches(), db, nil, lock.NewNoopLocker(), 10)
		introSvc = service.NewIntroductionService(members, db.Introductions(), db)
	})

	Describe("intents", func() {
		It("keeps one active intent per member and the last write wins", func() {
			first := save(ada, "seeking a defi mentor")
			second := save(ada, "offering defi mentorship")

			Expect(second.ID).To(Equal(first.ID))
			Expect(activeCount(ada)).To(Equal(1))

			got, found, err := intentSvc.Get(ctx, ada)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(got.RawText).To(Equal("offering defi mentorship"))
			Expect(got.Analysis.IntentType).To(Equal(model.IntentTypeGiving))
		})

		It("drops a paused intent from candidates and restores it on resume", func() {
			save(ada, "seeking a defi mentor")
			before := save(bruno, "offering defi mentorship")

			candidates, err := intentSvc.FindCandidates(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(HaveLen(1))

			_, err = intentSvc.Pause(ctx, bruno)
			Expect(err).NotTo(HaveOccurred())
			candidates, err = intentSvc.FindCandidates(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(BeEmpty())

			resumed, err := intentSvc.Resume(ctx, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(resumed.RawText).To(Equal(before.RawText))
			Expect(resumed.Analysis.Categories).To(Equal(before.Analysis.Categories))

			candidates, err = intentSvc.FindCandidates(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].OwnerID).To(Equal(bruno))
		})

		It("hides a deleted intent while earlier matches still point at it", func() {
			save(ada, "seeking a defi mentor")
			brunoIntent := save(bruno, "offering defi mentorship")

			created, err := matchSvc.GenerateMatches(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(1))

			Expect(intentSvc.SoftDelete(ctx, bruno)).To(Succeed())

			_, found, err := intentSvc.Get(ctx, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())

			match, err := matchSvc.GetMatch(ctx, created[0].ID, ada)
			Expect(err).NotTo(HaveOccurred())
			Expect(match.IntentBID).To(Equal(brunoIntent.ID))
			Expect(db.intents).To(HaveKey(brunoIntent.ID))
		})
	})

	Describe("matches", func() {
		It("creates at most one live match per pair, in either direction", func() {
			save(ada, "seeking a defi mentor")
			save(bruno, "offering defi mentorship")

			first, err := matchSvc.GenerateMatches(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(HaveLen(1))
			Expect(first[0].MemberAID).To(Equal(ada))
			Expect(first[0].Explanation.Reason).To(Equal(analysis.FallbackMatchReason))

			again, err := matchSvc.GenerateMatches(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(BeEmpty())

			reverse, err := matchSvc.GenerateMatches(ctx, bruno, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(reverse).To(BeEmpty())
			Expect(db.matches).To(HaveLen(1))
		})

		It("allows a fresh match once the previous one was declined", func() {
			save(ada, "seeking a defi mentor")
			save(bruno, "offering defi mentorship")

			first, err := matchSvc.GenerateMatches(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			_, err = matchSvc.UpdateStatus(ctx, first[0].ID, bruno, model.MatchStatusDeclined)
			Expect(err).NotTo(HaveOccurred())

			again, err := matchSvc.GenerateMatches(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(HaveLen(1))
		})

		It("never returns a match below the minimum score", func() {
			save(chen, "trading notes on daos")
			save(ada, "learning about daos")
			save(dana, "building dao tooling")

			created, err := matchSvc.GenerateMatches(ctx, chen, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].MemberBID).To(Equal(dana))
			for _, m := range created {
				Expect(m.Score).To(BeNumerically(">=", scorer.MinimumMatchScore))
			}
		})

		It("lists matches for both members, highest score first", func() {
			save(ada, "seeking a defi mentor")
			save(bruno, "offering defi mentorship")
			_, err := matchSvc.GenerateMatches(ctx, ada, 0)
			Expect(err).NotTo(HaveOccurred())

			for _, member := range []int64{ada, bruno} {
				list, err := matchSvc.GetMatches(ctx, member, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(list).To(HaveLen(1))
			}
		})
	})

	Describe("introductions", func() {
		input := service.IntroductionInput{
			ToMemberID:     bruno,
			Message:        "Would love your take on my audit plan.",
			IntentCategory: model.IntroductionCategoryMentorship,
		}

		It("blocks a duplicate pending request until the first is declined", func() {
			first, err := introSvc.Create(ctx, ada, input)
			Expect(err).NotTo(HaveOccurred())

			_, err = introSvc.Create(ctx, ada, input)
			Expect(err).To(MatchError(service.ErrDuplicatePending))

			_, err = introSvc.Respond(ctx, first.ID, bruno, model.IntroductionStatusDeclined)
			Expect(err).NotTo(HaveOccurred())

			second, err := introSvc.Create(ctx, ada, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).NotTo(Equal(first.ID))
		})

		It("lets the recipient send a request the other way", func() {
			_, err := introSvc.Create(ctx, ada, input)
			Expect(err).NotTo(HaveOccurred())

			reverse := input
			reverse.ToMemberID = ada
			_, err = introSvc.Create(ctx, bruno, reverse)
			Expect(err).NotTo(HaveOccurred())
		})

		It("refuses to cancel once the request was answered", func() {
			req, err := introSvc.Create(ctx, ada, input)
			Expect(err).NotTo(HaveOccurred())
			_, err = introSvc.Respond(ctx, req.ID, bruno, model.IntroductionStatusAccepted)
			Expect(err).NotTo(HaveOccurred())

			Expect(introSvc.Cancel(ctx, req.ID, ada)).To(MatchError(service.ErrIntroductionNotPending))

			sent, err := introSvc.ListSent(ctx, ada, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(sent).To(HaveLen(1))
			Expect(sent[0].Status).To(Equal(model.IntroductionStatusAccepted))
		})

		It("records the first view only", func() {
			req, err := introSvc.Create(ctx, ada, input)
			Expect(err).NotTo(HaveOccurred())

			viewed, err := introSvc.MarkViewed(ctx, req.ID, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(viewed.ViewedAt).NotTo(BeNil())
			firstView := *viewed.ViewedAt

			again, err := introSvc.MarkViewed(ctx, req.ID, bruno)
			Expect(err).NotTo(HaveOccurred())
			Expect(*again.ViewedAt).To(Equal(firstView))
		})
	})
})
