package router

import (
	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/handler"
)

func OnboardingRouter(rg *gin.RouterGroup, h *handler.OnboardingHandler) {
	rg.GET("/me", h.Status)
	rg.POST("/steps/:step", h.SaveStep)
	rg.POST("/complete", h.Complete)
}

// DirectoryRouter lists members who completed onboarding
func DirectoryRouter(rg *gin.RouterGroup, h *handler.OnboardingHandler) {
	rg.GET("", h.Directory)
	rg.GET("/:id", h.Profile)
}
