package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/internal/analysis"
	"wiw3ch.app/matchmaker/internal/service"
)

// statusFor maps service sentinels to HTTP status codes. 0 means unmapped.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrNoActiveIntent),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrIntroductionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicatePending),
		errors.Is(err, service.ErrMatchNotPending),
		errors.Is(err, service.ErrIntroductionNotPending),
		errors.Is(err, service.ErrOperationInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoEligibleIntent),
		errors.Is(err, service.ErrOnboardingIncomplete):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analysis.ErrAnalysisFailed):
		return http.StatusBadGateway
	}
	return 0
}

// respondError writes the mapped status, or logs and returns 500 with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()
	if status := statusFor(err); status != 0 {
		msg := err.Error()
		if status == http.StatusBadGateway {
			// provider details stay in the logs
			slog.WarnContext(ctx, "intent analysis failed", "error", err)
			msg = analysis.ErrAnalysisFailed.Error()
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	slog.ErrorContext(ctx, fallback, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return limit, true
}
