package router

import (
	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/handler"
)

func IntentRouter(rg *gin.RouterGroup, h *handler.IntentHandler) {
	rg.PUT("/me", h.Upsert)
	rg.GET("/me", h.Get)
	rg.DELETE("/me", h.Delete)
	rg.POST("/me/pause", h.Pause)
	rg.POST("/me/resume", h.Resume)
	rg.POST("/me/reanalyze", h.Reanalyze)
	rg.PATCH("/me/visibility", h.UpdateVisibility)
	rg.PATCH("/me/consent", h.UpdateConsent)
	rg.GET("/candidates", h.Candidates)
}
