package router

import (
	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/handler"
)

func MatchRouter(rg *gin.RouterGroup, h *handler.MatchHandler) {
	rg.POST("/generate", h.Generate)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/view", h.MarkViewed)
	rg.PATCH("/:id/status", h.UpdateStatus)
}
