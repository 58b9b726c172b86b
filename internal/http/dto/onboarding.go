package dto

import (
	"time"

	"wiw3ch.app/matchmaker/internal/model"
)

// OnboardingStepRequest carries the answer for one step. Only the field
// belonging to the posted step is read.
type OnboardingStepRequest struct {
	CoreIntent        string   `json:"core_intent,omitempty"`
	IntentModes       []string `json:"intent_modes,omitempty"`
	Visibility        string   `json:"visibility,omitempty"`
	DomainFocus       []string `json:"domain_focus,omitempty"`
	ExperienceLevel   *string  `json:"experience_level,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Availability      *string  `json:"availability,omitempty"`
	ContributionAreas []string `json:"contribution_areas,omitempty"`
}

type OnboardingResponse struct {
	MemberID          int64      `json:"member_id,string"`
	CurrentStep       int        `json:"current_step"`
	Completed         bool       `json:"completed"`
	CoreIntent        *string    `json:"core_intent"`
	IntentModes       []string   `json:"intent_modes"`
	Visibility        *string    `json:"visibility"`
	DomainFocus       []string   `json:"domain_focus"`
	ExperienceLevel   *string    `json:"experience_level"`
	Skills            []string   `json:"skills"`
	Availability      *string    `json:"availability"`
	ContributionAreas []string   `json:"contribution_areas"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// CoreIntentResponse is returned by step 1 with the analyzed intent.
type CoreIntentResponse struct {
	Onboarding *OnboardingResponse `json:"onboarding"`
	Intent     *IntentResponse     `json:"intent"`
}

type DirectoryEntryResponse struct {
	MemberID        int64     `json:"member_id,string"`
	FullName        string    `json:"full_name"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Headline        string    `json:"headline"`
	DomainFocus     []string  `json:"domain_focus"`
	Skills          []string  `json:"skills"`
	ExperienceLevel *string   `json:"experience_level"`
	MemberSince     time.Time `json:"member_since"`
}

type ProfileResponse struct {
	Member     *MemberResponse     `json:"member"`
	Headline   string              `json:"headline"`
	Onboarding *OnboardingResponse `json:"onboarding"`
}

func ToOnboardingResponse(p *model.OnboardingProgress) *OnboardingResponse {
	modes := make([]string, len(p.IntentModes))
	for i, m := range p.IntentModes {
		modes[i] = string(m)
	}

	return &OnboardingResponse{
		MemberID:          p.MemberID,
		CurrentStep:       p.CurrentStep,
		Completed:         p.Completed(),
		CoreIntent:        p.CoreIntent,
		IntentModes:       modes,
		Visibility:        stringPtr(p.Visibility),
		DomainFocus:       orEmpty(p.DomainFocus),
		ExperienceLevel:   stringPtr(p.ExperienceLevel),
		Skills:            orEmpty(p.Skills),
		Availability:      stringPtr(p.Availability),
		ContributionAreas: orEmpty(p.ContributionAreas),
		CompletedAt:       p.CompletedAt,
	}
}

func ToDirectoryResponses(profiles []model.MemberProfile) []*DirectoryEntryResponse {
	out := make([]*DirectoryEntryResponse, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out[i] = &DirectoryEntryResponse{
			MemberID:        p.Member.ID,
			FullName:        p.Member.DisplayName(),
			FirstName:       p.Member.FirstName,
			LastName:        p.Member.LastName,
			Headline:        p.Headline(),
			DomainFocus:     orEmpty(p.Onboarding.DomainFocus),
			Skills:          orEmpty(p.Onboarding.Skills),
			ExperienceLevel: stringPtr(p.Onboarding.ExperienceLevel),
			MemberSince:     p.Member.CreatedAt,
		}
	}
	return out
}

func ToProfileResponse(p *model.MemberProfile) *ProfileResponse {
	return &ProfileResponse{
		Member:     ToMemberResponse(&p.Member),
		Headline:   p.Headline(),
		Onboarding: ToOnboardingResponse(&p.Onboarding),
	}
}

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
