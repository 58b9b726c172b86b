package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/dto"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
)

type IntroductionHandler struct {
	introService service.IntroductionService
}

func NewIntroductionHandler(introService service.IntroductionService) *IntroductionHandler {
	return &IntroductionHandler{introService: introService}
}

func (h *IntroductionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateIntroductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intro, err := h.introService.Create(ctx, middleware.MemberID(ctx), service.IntroductionInput{
		ToMemberID:        req.ToMemberID,
		Message:           req.Message,
		IntentCategory:    model.IntroductionCategory(req.IntentCategory),
		IntentDescription: req.IntentDescription,
	})
	if err != nil {
		respondError(c, err, "failed to create introduction request")
		return
	}

	c.JSON(http.StatusCreated, dto.ToIntroductionResponse(intro))
}

func (h *IntroductionHandler) ListSent(c *gin.Context) {
	h.list(c, h.introService.ListSent, "failed to list sent introduction requests")
}

func (h *IntroductionHandler) ListReceived(c *gin.Context) {
	h.list(c, h.introService.ListReceived, "failed to list received introduction requests")
}

func (h *IntroductionHandler) Get(c *gin.Context) {
	h.byID(c, h.introService.Get, "failed to get introduction request")
}

func (h *IntroductionHandler) MarkViewed(c *gin.Context) {
	h.byID(c, h.introService.MarkViewed, "failed to mark introduction request viewed")
}

func (h *IntroductionHandler) Respond(c *gin.Context) {
	ctx := c.Request.Context()

	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.RespondIntroductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intro, err := h.introService.Respond(ctx, requestID, middleware.MemberID(ctx), model.IntroductionStatus(req.Status))
	if err != nil {
		respondError(c, err, "failed to respond to introduction request")
		return
	}

	c.JSON(http.StatusOK, dto.ToIntroductionResponse(intro))
}

func (h *IntroductionHandler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.introService.Cancel(ctx, requestID, middleware.MemberID(ctx)); err != nil {
		respondError(c, err, "failed to cancel introduction request")
		return
	}

	c.Status(http.StatusNoContent)
}

type listFn func(ctx context.Context, memberID int64, status *model.IntroductionStatus) ([]model.IntroductionRequest, error)

func (h *IntroductionHandler) list(c *gin.Context, fn listFn, fallback string) {
	ctx := c.Request.Context()

	var status *model.IntroductionStatus
	if raw := c.Query("status"); raw != "" {
		s := model.IntroductionStatus(raw)
		status = &s
	}

	intros, err := fn(ctx, middleware.MemberID(ctx), status)
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	c.JSON(http.StatusOK, gin.H{"introductions": dto.ToIntroductionResponses(intros)})
}

type byIDFn func(ctx context.Context, requestID, memberID int64) (*model.IntroductionRequest, error)

func (h *IntroductionHandler) byID(c *gin.Context, fn byIDFn, fallback string) {
	ctx := c.Request.Context()

	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	intro, err := fn(ctx, requestID, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToIntroductionResponse(intro))
}
