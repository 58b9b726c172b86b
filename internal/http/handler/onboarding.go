package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/internal/http/dto"
	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
)

type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

func (h *OnboardingHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	progress, err := h.onboardingService.Status(ctx, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, "failed to get onboarding status")
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingResponse(progress))
}

// SaveStep handles POST /steps/:step for steps 1 through 8.
func (h *OnboardingHandler) SaveStep(c *gin.Context) {
	ctx := c.Request.Context()
	memberID := middleware.MemberID(ctx)

	step, err := strconv.Atoi(c.Param("step"))
	if err != nil || step < model.StepCoreIntent || step > model.FinalOnboardingStep {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step must be between 1 and 8"})
		return
	}

	// optional steps may be skipped with an empty body
	var req dto.OnboardingStepRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var progress *model.OnboardingProgress
	switch step {
	case model.StepCoreIntent:
		var intent *model.Intent
		progress, intent, err = h.onboardingService.SaveCoreIntent(ctx, memberID, req.CoreIntent)
		if err != nil {
			respondError(c, err, "failed to save core intent")
			return
		}
		c.JSON(http.StatusOK, dto.CoreIntentResponse{
			Onboarding: dto.ToOnboardingResponse(progress),
			Intent:     dto.ToIntentResponse(intent),
		})
		return
	case model.StepIntentModes:
		modes := make([]model.IntentMode, len(req.IntentModes))
		for i, m := range req.IntentModes {
			modes[i] = model.IntentMode(m)
		}
		progress, err = h.onboardingService.SaveIntentModes(ctx, memberID, modes)
	case model.StepVisibility:
		progress, err = h.onboardingService.SaveVisibility(ctx, memberID, model.Visibility(req.Visibility))
	case model.StepDomainFocus:
		progress, err = h.onboardingService.SaveDomainFocus(ctx, memberID, req.DomainFocus)
	case model.StepExperienceLevel:
		progress, err = h.onboardingService.SaveExperienceLevel(ctx, memberID, enumOf[model.ExperienceLevel](req.ExperienceLevel))
	case model.StepSkills:
		progress, err = h.onboardingService.SaveSkills(ctx, memberID, req.Skills)
	case model.StepAvailability:
		progress, err = h.onboardingService.SaveAvailability(ctx, memberID, enumOf[model.Availability](req.Availability))
	case model.StepContributionAreas:
		progress, err = h.onboardingService.SaveContributionAreas(ctx, memberID, req.ContributionAreas)
	}
	if err != nil {
		respondError(c, err, "failed to save onboarding step")
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingResponse(progress))
}

func (h *OnboardingHandler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	progress, err := h.onboardingService.Complete(ctx, middleware.MemberID(ctx))
	if err != nil {
		respondError(c, err, "failed to complete onboarding")
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingResponse(progress))
}

func (h *OnboardingHandler) Directory(c *gin.Context) {
	ctx := c.Request.Context()

	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	profiles, err := h.onboardingService.ListDirectory(ctx, limit)
	if err != nil {
		respondError(c, err, "failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToDirectoryResponses(profiles))
}

func (h *OnboardingHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	memberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	profile, err := h.onboardingService.GetProfile(ctx, memberID)
	if err != nil {
		respondError(c, err, "failed to get member profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// enumOf converts an optional JSON string, keeping nil as absent.
func enumOf[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
