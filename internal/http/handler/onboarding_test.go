package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/internal/http/handler"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
)

var _ = Describe("OnboardingHandler", func() {
	var (
		router     *gin.Engine
		onboarding *mockOnboardingService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		onboarding = &mockOnboardingService{}

		authed := router.Group("", middleware.RequireMember(&mockMemberService{}, ""))
		h := handler.NewOnboardingHandler(onboarding)
		authed.GET("/onboarding/me", h.Status)
		authed.POST("/onboarding/steps/:step", h.SaveStep)
		authed.POST("/onboarding/complete", h.Complete)
		authed.GET("/directory", h.Directory)
		authed.GET("/directory/:id", h.Profile)
	})

	It("returns the analyzed intent with step 1", func() {
		w := do(router, http.MethodPost, "/onboarding/steps/1", map[string]any{"core_intent": "Hiring designers"})
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp struct {
			Onboarding struct {
				MemberID    string `json:"member_id"`
				CurrentStep int    `json:"current_step"`
				CoreIntent  string `json:"core_intent"`
			} `json:"onboarding"`
			Intent struct {
				ID string `json:"id"`
			} `json:"intent"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Onboarding.MemberID).To(Equal(fmt.Sprint(memberID)))
		Expect(resp.Onboarding.CurrentStep).To(Equal(1))
		Expect(resp.Onboarding.CoreIntent).To(Equal("Hiring designers"))
		Expect(resp.Intent.ID).To(Equal("9"))
	})

	It("dispatches each step to its own operation", func() {
		steps := []map[string]any{
			{"core_intent": "Hiring designers"},
			{"intent_modes": []string{"hiring"}},
			{"visibility": "public"},
			{"domain_focus": []string{"Web3"}},
			{"experience_level": "expert"},
			{"skills": []string{"figma"}},
			{"availability": "flexible"},
			{"contribution_areas": []string{"Writing"}},
		}
		for i, body := range steps {
			w := do(router, http.MethodPost, fmt.Sprintf("/onboarding/steps/%d", i+1), body)
			Expect(w.Code).To(Equal(http.StatusOK), "step %d", i+1)
		}

		Expect(onboarding.calls).To(Equal([]string{
			"core_intent", "intent_modes", "visibility", "domain_focus",
			"experience_level", "skills", "availability", "contribution_areas",
		}))
		Expect(onboarding.lastModes).To(Equal([]model.IntentMode{model.IntentModeHiring}))
		Expect(*onboarding.lastLevel).To(Equal(model.ExperienceExpert))
		Expect(onboarding.lastSkills).To(Equal([]string{"figma"}))
	})

	It("accepts an empty body for an optional step", func() {
		req := httptest.NewRequest(http.MethodPost, "/onboarding/steps/5", strings.NewReader(""))
		req.Header.Set(middleware.DefaultMemberHeader, fmt.Sprint(memberID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(onboarding.lastLevel).To(BeNil())
	})

	DescribeTable("rejects an unknown step",
		func(step string) {
			w := do(router, http.MethodPost, "/onboarding/steps/"+step, map[string]any{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(onboarding.calls).To(BeEmpty())
		},
		Entry("zero", "0"),
		Entry("past the end", "9"),
		Entry("not a number", "first"),
	)

	It("maps invalid step input to 400", func() {
		w := do(router, http.MethodPost, "/onboarding/steps/3", map[string]any{"visibility": "open"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps an incomplete questionnaire to 422", func() {
		onboarding.completeFn = func(context.Context, int64) (*model.OnboardingProgress, error) {
			return nil, fmt.Errorf("%w: visibility (step 3) is required", service.ErrOnboardingIncomplete)
		}

		w := do(router, http.MethodPost, "/onboarding/complete", nil)
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(errorBody(w)).To(ContainSubstring("step 3"))
	})

	It("reports completion", func() {
		w := do(router, http.MethodPost, "/onboarding/complete", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["completed"]).To(BeTrue())
		Expect(resp["current_step"]).To(BeNumerically("==", 8))
	})

	It("lists directory entries with a capped headline", func() {
		long := strings.Repeat("é", 150)
		var gotLimit int
		onboarding.listDirectoryFn = func(_ context.Context, limit int) ([]model.MemberProfile, error) {
			gotLimit = limit
			return []model.MemberProfile{{
				Member:     model.Member{ID: 42, FirstName: "Dana", LastName: "Levi"},
				Onboarding: model.OnboardingProgress{MemberID: 42, CoreIntent: &long},
			}}, nil
		}

		w := do(router, http.MethodGet, "/directory?limit=5", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotLimit).To(Equal(5))

		var resp []map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(HaveLen(1))
		Expect(resp[0]["member_id"]).To(Equal("42"))
		Expect(resp[0]["full_name"]).To(Equal("Dana Levi"))
		Expect([]rune(resp[0]["headline"].(string))).To(HaveLen(model.DirectoryHeadlineLength))
		Expect(resp[0]["skills"]).To(BeEmpty())
	})

	It("returns 404 for an unknown profile", func() {
		w := do(router, http.MethodGet, "/directory/77", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
