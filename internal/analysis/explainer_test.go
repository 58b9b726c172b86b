package analysis_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/common/llm"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/model"
)

var _ = Describe("Explainer", func() {
	var (
		ctx    context.Context
		client *mockLLMClient
		ex     analysis.Explainer
		a, b   model.Intent
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockLLMClient{}
		ex = analysis.NewExplainer(client, analysis.Options{MaxTokens: 150, Temperature: 0.7})
		a = model.Intent{RawText: "I mentor DeFi engineers", Analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeGiving, Domains: []string{"DeFi", "Engineering"},
		}}
		b = model.Intent{RawText: "Looking for a DeFi mentor", Analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeReceiving, Domains: []string{"DeFi"},
		}}
	})

	It("seeds the prompt with both members", func() {
		client.completeFn = func(_ context.Context, req llm.Request) (string, *llm.Response, error) {
			Expect(req.UserPrompt).To(ContainSubstring("Member 1 (Ada Lovelace)"))
			Expect(req.UserPrompt).To(ContainSubstring("Member 2 (Grace Hopper)"))
			Expect(req.UserPrompt).To(ContainSubstring("Intent Type: giving"))
			Expect(req.UserPrompt).To(ContainSubstring("Domains: DeFi, Engineering"))
			Expect(req.MaxTokens).To(Equal(150))
			return "  You should talk.  ", &llm.Response{}, nil
		}

		reason, err := ex.ExplainMatch(ctx, a, b, "Ada Lovelace", "Grace Hopper")

		Expect(err).NotTo(HaveOccurred())
		Expect(reason).To(Equal("You should talk."))
	})

	It("errors on empty output", func() {
		client.completeFn = func(_ context.Context, _ llm.Request) (string, *llm.Response, error) {
			return "   ", &llm.Response{}, nil
		}

		_, err := ex.ExplainMatch(ctx, a, b, "Ada", "Grace")
		Expect(err).To(HaveOccurred())
	})

	Describe("ReasonOrFallback", func() {
		It("falls back on failure", func() {
			client.completeFn = func(_ context.Context, _ llm.Request) (string, *llm.Response, error) {
				return "", nil, errors.New("boom")
			}
			Expect(analysis.ReasonOrFallback(ctx, ex, a, b, "Ada", "Grace")).To(Equal(analysis.FallbackMatchReason))
		})

		It("falls back without an explainer", func() {
			Expect(analysis.ReasonOrFallback(ctx, nil, a, b, "Ada", "Grace")).To(Equal(analysis.FallbackMatchReason))
		})
	})
})
