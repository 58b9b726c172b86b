package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/handler"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/service"
)

type RouterConfig struct {
	MemberHeader string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	members := services.Members()
	requireMember := middleware.RequireMember(members, cfg.MemberHeader)

	v1 := router.Group("/api/v1")
	{
		memberHandler := handler.NewMemberHandler(members)
		MemberRouter(v1.Group("/members"), requireMember, memberHandler)

		authed := v1.Group("")
		authed.Use(requireMember)

		IntentRouter(authed.Group("/intents"), handler.NewIntentHandler(services.Intents()))
		MatchRouter(authed.Group("/matches"), handler.NewMatchHandler(services.Matches()))
		IntroductionRouter(authed.Group("/introductions"), handler.NewIntroductionHandler(services.Introductions()))

		onboardingHandler := handler.NewOnboardingHandler(services.Onboarding())
		OnboardingRouter(authed.Group("/onboarding"), onboardingHandler)
		DirectoryRouter(authed.Group("/directory"), onboardingHandler)
	}
}
