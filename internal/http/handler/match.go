package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/dto"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
)

type MatchHandler struct {
	matchService service.MatchService
}

func NewMatchHandler(matchService service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// Generate accepts an empty body, which uses the default limit.
func (h *MatchHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateMatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matches, err := h.matchService.GenerateMatches(ctx, middleware.MemberID(ctx), req.Limit)
	if err != nil {
		respondError(c, err, "failed to generate matches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": dto.ToMatchResponses(matches)})
}

func (h *MatchHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var status *model.MatchStatus
	if raw := c.Query("status"); raw != "" {
		s := model.MatchStatus(raw)
		status = &s
	}

	matches, err := h.matchService.GetMatches(ctx, middleware.MemberID(ctx), status)
	if err != nil {
		respondError(c, err, "failed to list matches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": dto.ToMatchResponses(matches)})
}

func (h *MatchHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	matchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(ctx, matchID, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, "failed to get match")
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchResponse(match))
}

func (h *MatchHandler) MarkViewed(c *gin.Context) {
	ctx := c.Request.Context()

	matchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.MarkViewed(ctx, matchID, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, "failed to mark match viewed")
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchResponse(match))
}

func (h *MatchHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	matchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.UpdateStatus(ctx, matchID, middleware.MemberID(ctx), model.MatchStatus(req.Status))
	if err != nil {
		respondError(c, err, "failed to update match status")
		return
	}

	c.JSON(http.StatusOK, dto.ToMatchResponse(match))
}
