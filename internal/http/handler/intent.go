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

type IntentHandler struct {
	intentService service.IntentService
}

func NewIntentHandler(intentService service.IntentService) *IntentHandler {
	return &IntentHandler{intentService: intentService}
}

func (h *IntentHandler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpsertIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consentToMatch, consentToContact := req.Consent()
	intent, err := h.intentService.CreateOrUpdate(ctx, middleware.MemberID(ctx), service.IntentInput{
		RawText:          req.RawText,
		Visibility:       model.Visibility(req.Visibility),
		ConsentToMatch:   consentToMatch,
		ConsentToContact: consentToContact,
	})
	if err != nil {
		respondError(c, err, "failed to save intent")
		return
	}

	c.JSON(http.StatusOK, dto.ToIntentResponse(intent))
}

func (h *IntentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	intent, found, err := h.intentService.Get(ctx, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, "failed to get intent")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNoActiveIntent.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToIntentResponse(intent))
}

func (h *IntentHandler) Pause(c *gin.Context) {
	h.toggle(c, h.intentService.Pause, "failed to pause intent")
}

func (h *IntentHandler) Resume(c *gin.Context) {
	h.toggle(c, h.intentService.Resume, "failed to resume intent")
}

func (h *IntentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.intentService.SoftDelete(ctx, middleware.MemberID(ctx)); err != nil {
		respondError(c, err, "failed to delete intent")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *IntentHandler) UpdateVisibility(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.intentService.SetVisibility(ctx, middleware.MemberID(ctx), model.Visibility(req.Visibility))
	if err != nil {
		respondError(c, err, "failed to update visibility")
		return
	}

	c.JSON(http.StatusOK, dto.ToIntentResponse(intent))
}

func (h *IntentHandler) UpdateConsent(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.intentService.SetConsent(ctx, middleware.MemberID(ctx), *req.ConsentToMatch, *req.ConsentToContact)
	if err != nil {
		respondError(c, err, "failed to update consent")
		return
	}

	c.JSON(http.StatusOK, dto.ToIntentResponse(intent))
}

func (h *IntentHandler) Reanalyze(c *gin.Context) {
	h.toggle(c, h.intentService.Reanalyze, "failed to reanalyze intent")
}

func (h *IntentHandler) Candidates(c *gin.Context) {
	ctx := c.Request.Context()

	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	candidates, err := h.intentService.FindCandidates(ctx, middleware.MemberID(ctx), limit)
	if err != nil {
		respondError(c, err, "failed to find candidates")
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": dto.ToIntentResponses(candidates)})
}

func (h *IntentHandler) toggle(c *gin.Context, fn func(ctx context.Context, ownerID int64) (*model.Intent, error), fallback string) {
	ctx := c.Request.Context()

	intent, err := fn(ctx, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	c.JSON(http.StatusOK, dto.ToIntentResponse(intent))
}
