package router

import (
	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/handler"
)

// MemberRouter sets up member routes
// - POST / registers a member and is called by the gateway, not by members
// - GET /me requires the member header
func MemberRouter(rg *gin.RouterGroup, requireMember gin.HandlerFunc, h *handler.MemberHandler) {
	rg.POST("", h.Register)
	rg.GET("/me", requireMember, h.Me)
}
