package analysis_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/model"
)

var _ = Describe("Analyzer", func() {
	var (
		ctx    context.Context
		client *mockLLMClient
		az     analysis.Analyzer
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockLLMClient{}
		az = analysis.NewAnalyzer(client, analysis.Options{MaxTokens: 1000, Temperature: 0.3})
	})

	It("returns the structured analysis", func() {
		client.chatJSON = `{
			"intent_type": "giving",
			"categories": [{"category": "mentorship", "subcategories": ["offering_mentorship"], "confidence": 0.9}],
			"domains": ["DeFi", "Engineering"],
			"experience_level": "expert",
			"availability": "immediate"
		}`

		res, err := az.Analyze(ctx, "I can mentor DeFi engineers")

		Expect(err).NotTo(HaveOccurred())
		Expect(res.IntentType).To(Equal(model.IntentTypeGiving))
		Expect(res.Categories).To(HaveLen(1))
		Expect(res.Categories[0].Subcategories).To(Equal([]string{"offering_mentorship"}))
		Expect(res.Domains).To(Equal([]string{"DeFi", "Engineering"}))
		Expect(res.ExperienceLevel).NotTo(BeNil())
		Expect(*res.ExperienceLevel).To(Equal(model.ExperienceExpert))
		Expect(res.Availability).To(Equal(model.AvailabilityImmediate))
	})

	It("sends a schema and the configured temperature", func() {
		client.chatJSON = `{"intent_type":"both","categories":[],"domains":[],"experience_level":"unspecified","availability":"flexible"}`

		_, err := az.Analyze(ctx, "anything")

		Expect(err).NotTo(HaveOccurred())
		Expect(client.lastReq.Schema).NotTo(BeNil())
		Expect(client.lastReq.SchemaName).To(Equal("intent_analysis"))
		Expect(client.lastReq.Temperature).NotTo(BeNil())
		Expect(*client.lastReq.Temperature).To(Equal(0.3))
		Expect(client.lastReq.SystemPrompt).To(ContainSubstring("seeking_speaking_slots"))
	})

	It("normalizes names against the taxonomy", func() {
		client.chatJSON = `{
			"intent_type": "Receiving",
			"categories": [
				{"category": "Career", "subcategories": ["job_seeking", "JOB_SEEKING", "underwater_basket_weaving"], "confidence": 1.4},
				{"category": "career", "subcategories": [], "confidence": 0.2},
				{"category": "astrology", "subcategories": [], "confidence": 0.9},
				{"category": "learning", "subcategories": ["courses"], "confidence": -1}
			],
			"domains": ["defi", "smart  contracts", "DeFi", "Gardening", "ai/ml"],
			"experience_level": "unspecified",
			"availability": "someday"
		}`

		res, err := az.Analyze(ctx, "looking for a DeFi job")

		Expect(err).NotTo(HaveOccurred())
		Expect(res.IntentType).To(Equal(model.IntentTypeReceiving))
		Expect(res.CategoryNames()).To(Equal([]string{"career", "learning"}))
		Expect(res.Categories[0].Subcategories).To(Equal([]string{"job_seeking"}))
		Expect(res.Categories[0].Confidence).To(Equal(1.0))
		Expect(res.Categories[1].Confidence).To(Equal(0.0))
		Expect(res.Domains).To(Equal([]string{"DeFi", "Smart Contracts", "AI/ML"}))
		Expect(res.ExperienceLevel).To(BeNil())
		Expect(res.Availability).To(Equal(model.AvailabilityNotSpecified))
	})

	It("fails on an unknown intent type", func() {
		client.chatJSON = `{"intent_type":"lurking","categories":[],"domains":[],"experience_level":"unspecified","availability":"flexible"}`

		_, err := az.Analyze(ctx, "just browsing")

		Expect(err).To(MatchError(analysis.ErrAnalysisFailed))
	})

	It("wraps transport errors", func() {
		cause := errors.New("connection refused")
		client.chatErr = cause

		_, err := az.Analyze(ctx, "anything")

		Expect(err).To(MatchError(analysis.ErrAnalysisFailed))
		Expect(errors.Is(err, cause)).To(BeTrue())
	})

	It("wraps unparseable output", func() {
		client.chatJSON = `not json`

		_, err := az.Analyze(ctx, "anything")

		Expect(err).To(MatchError(analysis.ErrAnalysisFailed))
	})
})

var _ = Describe("Taxonomy", func() {
	It("canonicalizes domains case-insensitively", func() {
		d, ok := analysis.CanonicalDomain("  data SCIENCE ")
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal("Data Science"))
	})

	It("rejects unknown categories", func() {
		_, ok := analysis.CanonicalCategory("astrology")
		Expect(ok).To(BeFalse())
	})

	It("lists seven categories and nineteen domains", func() {
		Expect(analysis.CategoryNames()).To(HaveLen(7))
		Expect(analysis.Domains).To(HaveLen(19))
	})
})
