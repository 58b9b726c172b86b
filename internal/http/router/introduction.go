package router

import (
	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/handler"
)

func IntroductionRouter(rg *gin.RouterGroup, h *handler.IntroductionHandler) {
	rg.POST("", h.Create)
	rg.GET("/sent", h.ListSent)
	rg.GET("/received", h.ListReceived)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/view", h.MarkViewed)
	rg.PATCH("/:id/status", h.Respond)
	rg.DELETE("/:id", h.Cancel)
}
