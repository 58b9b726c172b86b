package scorer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/scorer"
)

func intent(t model.IntentType, domains []string, categories ...model.IntentCategory) model.Intent {
	return model.Intent{
		Analysis: model.IntentAnalysis{
			IntentType:   t,
			Domains:      domains,
			Categories:   categories,
			Availability: model.AvailabilityNotSpecified,
		},
		AnalysisStatus: model.AnalysisStatusAnalyzed,
		IsActive:       true,
		ConsentToMatch: true,
	}
}

func category(name string, confidence float64) model.IntentCategory {
	return model.IntentCategory{Category: name, Confidence: confidence}
}

var _ = Describe("Score", func() {
	It("scores the giving/receiving DeFi mentorship pair at 72", func() {
		a := intent(model.IntentTypeGiving, []string{"DeFi", "Engineering"}, category("mentorship", 0.9))
		b := intent(model.IntentTypeReceiving, []string{"DeFi"}, category("mentorship", 0.8))

		res := scorer.Score(a, b)

		Expect(res.Score).To(Equal(72))
		Expect(res.SharedDomains).To(Equal([]string{"DeFi"}))
		Expect(res.SharedCategories).To(Equal([]string{"mentorship"}))
		Expect(res.Confidence).To(BeNumerically("~", 0.85, 1e-9))
		Expect(res.Complementary).To(BeTrue())
	})

	DescribeTable("complementarity bonus",
		func(ta, tb model.IntentType, expected int) {
			res := scorer.Score(intent(ta, nil), intent(tb, nil))
			Expect(res.Score).To(Equal(expected))
		},
		Entry("receiving with giving", model.IntentTypeReceiving, model.IntentTypeGiving, 40),
		Entry("receiving with both", model.IntentTypeReceiving, model.IntentTypeBoth, 40),
		Entry("giving with receiving", model.IntentTypeGiving, model.IntentTypeReceiving, 40),
		Entry("both with both", model.IntentTypeBoth, model.IntentTypeBoth, 40),
		Entry("receiving with receiving", model.IntentTypeReceiving, model.IntentTypeReceiving, 10),
		Entry("giving with giving", model.IntentTypeGiving, model.IntentTypeGiving, 10),
		Entry("both with receiving", model.IntentTypeBoth, model.IntentTypeReceiving, 10),
	)

	It("contributes exactly 10 from confidence when no categories are shared", func() {
		a := intent(model.IntentTypeReceiving, nil, category("career", 1))
		b := intent(model.IntentTypeReceiving, nil, category("learning", 1))

		res := scorer.Score(a, b)

		Expect(res.Score).To(Equal(10))
		Expect(res.Confidence).To(Equal(scorer.DefaultConfidence))
		Expect(res.SharedCategories).To(BeEmpty())
	})

	It("clamps at 100", func() {
		domains := []string{"DeFi", "CeFi", "Web3", "Blockchain", "NFTs", "DAOs", "Tokenomics", "Engineering", "Product", "Design"}
		res := scorer.Score(intent(model.IntentTypeGiving, domains), intent(model.IntentTypeReceiving, domains))
		Expect(res.Score).To(Equal(100))
	})

	It("stays within [0,100] for an empty pair", func() {
		res := scorer.Score(model.Intent{}, model.Intent{})
		Expect(res.Score).To(BeNumerically(">=", 0))
		Expect(res.Score).To(BeNumerically("<=", 100))
	})

	It("adds the availability bonus only for equal, specified availability", func() {
		a := intent(model.IntentTypeReceiving, nil)
		b := intent(model.IntentTypeReceiving, nil)
		Expect(scorer.Score(a, b).Score).To(Equal(10))

		a.Analysis.Availability = model.AvailabilityImmediate
		b.Analysis.Availability = model.AvailabilityImmediate
		Expect(scorer.Score(a, b).Score).To(Equal(15))

		b.Analysis.Availability = model.AvailabilityFlexible
		Expect(scorer.Score(a, b).Score).To(Equal(10))
	})

	It("keeps shared domains in the first intent's order", func() {
		a := intent(model.IntentTypeGiving, []string{"Security", "DeFi", "Product"})
		b := intent(model.IntentTypeReceiving, []string{"Product", "Security"})
		Expect(scorer.Score(a, b).SharedDomains).To(Equal([]string{"Security", "Product"}))
	})

	It("averages confidence across shared categories", func() {
		a := intent(model.IntentTypeGiving, nil, category("mentorship", 1.0), category("career", 0.6))
		b := intent(model.IntentTypeReceiving, nil, category("career", 0.4), category("mentorship", 0.8))

		res := scorer.Score(a, b)

		// 30 + 2*10 + 20*((0.9+0.5)/2)
		Expect(res.Confidence).To(BeNumerically("~", 0.7, 1e-9))
		Expect(res.Score).To(Equal(64))
	})
})

var _ = Describe("ComplementaryNotes", func() {
	It("describes a seeker from the first member's side", func() {
		notes := scorer.ComplementaryNotes(intent(model.IntentTypeReceiving, nil), intent(model.IntentTypeGiving, nil), "Ada", "Linus")
		Expect(notes).To(ConsistOf("Ada is seeking what Linus is offering"))
	})

	It("describes an offerer from the first member's side", func() {
		notes := scorer.ComplementaryNotes(intent(model.IntentTypeGiving, nil), intent(model.IntentTypeBoth, nil), "Ada", "Linus")
		Expect(notes).To(ConsistOf("Ada is offering what Linus is seeking"))
	})

	It("uses a neutral note for both/both", func() {
		notes := scorer.ComplementaryNotes(intent(model.IntentTypeBoth, nil), intent(model.IntentTypeBoth, nil), "Ada", "Linus")
		Expect(notes).To(ConsistOf("Both members have complementary giving and receiving intents"))
	})

	It("is empty for non-complementary types", func() {
		notes := scorer.ComplementaryNotes(intent(model.IntentTypeBoth, nil), intent(model.IntentTypeGiving, nil), "Ada", "Linus")
		Expect(notes).To(BeEmpty())
	})
})
