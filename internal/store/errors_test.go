package store_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/core/db/sqlc"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/store"
)

var _ = Describe("Store error mapping", func() {
	var (
		ctx    context.Context
		fake   *fakeDB
		stores *store.Stores
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = &fakeDB{}
		stores = store.NewStores(sqlc.New(fake))
	})

	uniqueViolation := func(constraint string) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
	}

	Context("when no row comes back", func() {
		BeforeEach(func() {
			fake.err = pgx.ErrNoRows
		})

		It("reports ErrNotFound for every single-row lookup", func() {
			_, err := stores.Members().GetByID(ctx, 1)
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = stores.Intents().GetActiveByOwner(ctx, 1)
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = stores.Intents().SetPaused(ctx, 1, true)
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = stores.Matches().TransitionPending(ctx, 1, model.MatchStatusAccepted)
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = stores.Introductions().Respond(ctx, 1, model.IntroductionStatusDeclined)
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = stores.Onboarding().Get(ctx, 1)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("reports ErrNotFound when updating an intent that is no longer active", func() {
			intent := &model.Intent{ID: 5, OwnerID: 1, RawText: "x"}
			Expect(stores.Intents().UpdateContent(ctx, intent)).To(MatchError(store.ErrNotFound))
		})
	})

	It("maps the one-active-intent index to ErrConflict", func() {
		fake.err = uniqueViolation("intents_one_active_per_owner")

		err := stores.Intents().Create(ctx, &model.Intent{ID: 5, OwnerID: 1, RawText: "x"})
		Expect(err).To(MatchError(store.ErrConflict))
	})

	It("maps the one-live-match index to ErrConflict", func() {
		fake.err = uniqueViolation("matches_one_live_per_pair")

		err := stores.Matches().Create(ctx, &model.Match{ID: 9, MemberAID: 1, MemberBID: 2})
		Expect(err).To(MatchError(store.ErrConflict))
	})

	It("maps the one-pending-request index to ErrConflict", func() {
		fake.err = uniqueViolation("introduction_requests_one_pending_per_pair")

		err := stores.Introductions().Create(ctx, &model.IntroductionRequest{ID: 9, FromMemberID: 1, ToMemberID: 2})
		Expect(err).To(MatchError(store.ErrConflict))
	})

	It("passes other unique violations through", func() {
		fake.err = uniqueViolation("intents_pkey")

		err := stores.Intents().Create(ctx, &model.Intent{ID: 5, OwnerID: 1, RawText: "x"})
		Expect(err).NotTo(MatchError(store.ErrConflict))
		Expect(err).To(MatchError(fake.err))
	})

	It("passes driver errors through untouched", func() {
		fake.err = errors.New("connection reset")

		_, err := stores.Members().GetByID(ctx, 1)
		Expect(err).To(MatchError("connection reset"))
		Expect(err).NotTo(MatchError(store.ErrNotFound))
	})

	It("never binds NULL for empty text[] filters", func() {
		fake.err = errors.New("stop")

		_, _ = stores.Intents().FindCandidates(ctx, store.CandidateFilter{OwnerID: 1, Limit: 5})
		Expect(fake.args).To(HaveLen(1))
		args := fake.args[0]
		Expect(args[1]).To(Equal([]string{}))
		Expect(args[2]).To(Equal([]string{}))
		Expect(args[3]).To(Equal([]string{}))
		Expect(args[4]).To(Equal(int32(5)))
	})

	It("checks a pair with both members bound", func() {
		fake.scanFn = func(dest ...any) error {
			*dest[0].(*bool) = true
			return nil
		}

		live, err := stores.Matches().HasLiveForPair(ctx, 1, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(live).To(BeTrue())
		Expect(fake.args).To(Equal([][]any{{int64(1), int64(2)}}))
	})
})
