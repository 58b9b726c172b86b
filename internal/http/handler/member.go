package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/dto"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/service"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Register(ctx, req.FirstName, req.LastName, req.Email)
	if err != nil {
		respondError(c, err, "failed to register member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

func (h *MemberHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToMemberResponse(middleware.GetMember(c.Request.Context())))
}
