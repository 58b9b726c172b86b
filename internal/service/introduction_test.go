package service_test

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
	"wiw3ch.app/matchmaker/internal/store"
)

var _ = Describe("IntroductionService", func() {
	var (
		ctx      context.Context
		members  *mockMemberStore
		intros   *mockIntroductionStore
		txRunner *mockTxRunner
		svc      service.IntroductionService
		input    service.IntroductionInput
	)

	const (
		senderID    int64 = 1
		recipientID int64 = 2
	)

	BeforeEach(func() {
		ctx = context.Background()
		members = &mockMemberStore{}
		intros = &mockIntroductionStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{introductions: intros}}
		input = service.IntroductionInput{
			ToMemberID:     recipientID,
			Message:        "Would love to chat about your startup journey.",
			IntentCategory: model.IntroductionCategoryMentorship,
		}

		Expect(id.Init(1)).To(Succeed())
	})

	JustBeforeEach(func() {
		svc = service.NewIntroductionService(members, intros, txRunner)
	})

	Describe("Create", func() {
		It("creates a pending request that expires in 30 days", func() {
			req, err := svc.Create(ctx, senderID, input)

			Expect(err).NotTo(HaveOccurred())
			Expect(req.ID).NotTo(BeZero())
			Expect(req.FromMemberID).To(Equal(senderID))
			Expect(req.ToMemberID).To(Equal(recipientID))
			Expect(req.Status).To(Equal(model.IntroductionStatusPending))
			Expect(req.ExpiresAt).To(BeTemporally("~", time.Now().Add(30*24*time.Hour), time.Minute))
			Expect(intros.createCalls).To(Equal(1))
		})

		It("rejects a request to yourself", func() {
			input.ToMemberID = senderID
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).To(MatchError(service.ErrInvalidTarget))
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		DescribeTable("message length bounds",
			func(length int, ok bool) {
				input.Message = strings.Repeat("x", length)
				_, err := svc.Create(ctx, senderID, input)
				if ok {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(MatchError(service.ErrInvalidInput))
				}
			},
			Entry("too short", model.IntroductionMessageMinLength-1, false),
			Entry("minimum", model.IntroductionMessageMinLength, true),
			Entry("maximum", model.IntroductionMessageMaxLength, true),
			Entry("too long", model.IntroductionMessageMaxLength+1, false),
		)

		It("rejects an unknown category", func() {
			input.IntentCategory = "dating"
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("rejects an overlong description", func() {
			d := strings.Repeat("d", model.IntroductionDescriptionMaxLength+1)
			input.IntentDescription = &d
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("rejects an unknown recipient", func() {
			members.getByIDFn = func(_ context.Context, _ int64) (*model.Member, error) {
				return nil, store.ErrNotFound
			}
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).To(MatchError(service.ErrMemberNotFound))
		})

		It("rejects a second pending request to the same member", func() {
			intros.hasPendingFn = func(_ context.Context, from, to int64) (bool, error) {
				Expect(from).To(Equal(senderID))
				Expect(to).To(Equal(recipientID))
				return true, nil
			}
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).To(MatchError(service.ErrDuplicatePending))
			Expect(intros.createCalls).To(BeZero())
		})

		It("maps a unique violation to a duplicate", func() {
			intros.createFn = func(_ context.Context, _ *model.IntroductionRequest) error {
				return store.ErrConflict
			}
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).To(MatchError(service.ErrDuplicatePending))
		})

		It("expires stale requests for the pair first", func() {
			expired := false
			intros.expireStaleForPairFn = func(_ context.Context, _, _ int64) error {
				expired = true
				return nil
			}
			intros.hasPendingFn = func(_ context.Context, _, _ int64) (bool, error) {
				Expect(expired).To(BeTrue())
				return false, nil
			}
			_, err := svc.Create(ctx, senderID, input)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("responding", func() {
		var req *model.IntroductionRequest

		BeforeEach(func() {
			req = &model.IntroductionRequest{
				ID:           50,
				FromMemberID: senderID,
				ToMemberID:   recipientID,
				Status:       model.IntroductionStatusPending,
				ExpiresAt:    time.Now().Add(time.Hour),
			}
			intros.getByIDFn = func(_ context.Context, _ int64) (*model.IntroductionRequest, error) {
				r := *req
				return &r, nil
			}
			intros.respondFn = func(_ context.Context, _ int64, status model.IntroductionStatus) (*model.IntroductionRequest, error) {
				r := *req
				r.Status = status
				now := time.Now()
				r.RespondedAt = &now
				return &r, nil
			}
		})

		It("lets the recipient accept", func() {
			updated, err := svc.Respond(ctx, 50, recipientID, model.IntroductionStatusAccepted)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(model.IntroductionStatusAccepted))
			Expect(updated.RespondedAt).NotTo(BeNil())
		})

		It("does not let the sender respond", func() {
			_, err := svc.Respond(ctx, 50, senderID, model.IntroductionStatusAccepted)
			Expect(err).To(MatchError(service.ErrUnauthorized))
		})

		It("rejects responses to an expired request", func() {
			req.ExpiresAt = time.Now().Add(-time.Second)
			_, err := svc.Respond(ctx, 50, recipientID, model.IntroductionStatusDeclined)
			Expect(err).To(MatchError(service.ErrIntroductionNotPending))
		})

		It("rejects a pending status", func() {
			_, err := svc.Respond(ctx, 50, recipientID, model.IntroductionStatusPending)
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("only lets the recipient mark it viewed", func() {
			_, err := svc.MarkViewed(ctx, 50, senderID)
			Expect(err).To(MatchError(service.ErrUnauthorized))
		})

		Describe("Cancel", func() {
			It("lets the sender withdraw a pending request", func() {
				intros.deleteFn = func(_ context.Context, id, from int64) (bool, error) {
					Expect(id).To(Equal(int64(50)))
					Expect(from).To(Equal(senderID))
					return true, nil
				}
				Expect(svc.Cancel(ctx, 50, senderID)).To(Succeed())
			})

			It("does not let the recipient cancel", func() {
				Expect(svc.Cancel(ctx, 50, recipientID)).To(MatchError(service.ErrUnauthorized))
			})

			It("refuses once answered", func() {
				req.Status = model.IntroductionStatusAccepted
				Expect(svc.Cancel(ctx, 50, senderID)).To(MatchError(service.ErrIntroductionNotPending))
			})
		})

		Describe("Get", func() {
			It("is visible to both parties only", func() {
				_, err := svc.Get(ctx, 50, senderID)
				Expect(err).NotTo(HaveOccurred())
				_, err = svc.Get(ctx, 50, recipientID)
				Expect(err).NotTo(HaveOccurred())
				_, err = svc.Get(ctx, 50, 3)
				Expect(err).To(MatchError(service.ErrUnauthorized))
			})

			It("reports an unknown request", func() {
				intros.getByIDFn = nil
				_, err := svc.Get(ctx, 50, senderID)
				Expect(err).To(MatchError(service.ErrIntroductionNotFound))
			})
		})
	})

	Describe("listing", func() {
		It("relabels expired pending requests", func() {
			intros.listReceivedFn = func(_ context.Context, _ int64, _ *model.IntroductionStatus) ([]model.IntroductionRequest, error) {
				return []model.IntroductionRequest{
					{ID: 1, Status: model.IntroductionStatusPending, ExpiresAt: time.Now().Add(-time.Hour)},
				}, nil
			}
			reqs, err := svc.ListReceived(ctx, recipientID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(reqs[0].Status).To(Equal(model.IntroductionStatusExpired))
		})

		It("passes the status filter to the store", func() {
			status := model.IntroductionStatusAccepted
			intros.listSentFn = func(_ context.Context, from int64, s *model.IntroductionStatus) ([]model.IntroductionRequest, error) {
				Expect(from).To(Equal(senderID))
				Expect(*s).To(Equal(status))
				return nil, nil
			}
			_, err := svc.ListSent(ctx, senderID, &status)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
