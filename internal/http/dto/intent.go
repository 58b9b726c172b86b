package dto

import (
	"time"

	"wiw3ch.app/matchmaker/internal/model"
)

// UpsertIntentRequest omits consent flags to keep their defaults:
// matching on, direct contact off.
type UpsertIntentRequest struct {
	RawText          string `json:"raw_text" binding:"required"`
	Visibility       string `json:"visibility,omitempty"`
	ConsentToMatch   *bool  `json:"consent_to_match,omitempty"`
	ConsentToContact *bool  `json:"consent_to_contact,omitempty"`
}

func (r UpsertIntentRequest) Consent() (match, contact bool) {
	match = true
	if r.ConsentToMatch != nil {
		match = *r.ConsentToMatch
	}
	if r.ConsentToContact != nil {
		contact = *r.ConsentToContact
	}
	return match, contact
}

type UpdateVisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required"`
}

type UpdateConsentRequest struct {
	ConsentToMatch   *bool `json:"consent_to_match" binding:"required"`
	ConsentToContact *bool `json:"consent_to_contact" binding:"required"`
}

type IntentCategoryResponse struct {
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
	Confidence    float64  `json:"confidence"`
}

type IntentResponse struct {
	ID               int64                    `json:"id,string"`
	OwnerID          int64                    `json:"owner_id,string"`
	RawText          string                   `json:"raw_text"`
	IntentType       string                   `json:"intent_type,omitempty"`
	Categories       []IntentCategoryResponse `json:"categories"`
	Domains          []string                 `json:"domains"`
	ExperienceLevel  *string                  `json:"experience_level,omitempty"`
	Availability     string                   `json:"availability,omitempty"`
	AnalysisStatus   string                   `json:"analysis_status"`
	AnalysisError    *string                  `json:"analysis_error,omitempty"`
	IsActive         bool                     `json:"is_active"`
	IsPaused         bool                     `json:"is_paused"`
	Visibility       string                   `json:"visibility"`
	ConsentToMatch   bool                     `json:"consent_to_match"`
	ConsentToContact bool                     `json:"consent_to_contact"`
	LastProcessedAt  time.Time                `json:"last_processed_at"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

func ToIntentResponse(i *model.Intent) *IntentResponse {
	categories := make([]IntentCategoryResponse, len(i.Analysis.Categories))
	for idx, c := range i.Analysis.Categories {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		categories[idx] = IntentCategoryResponse{
			Category:      c.Category,
			Subcategories: subs,
			Confidence:    c.Confidence,
		}
	}

	domains := i.Analysis.Domains
	if domains == nil {
		domains = []string{}
	}

	var level *string
	if i.Analysis.ExperienceLevel != nil {
		l := string(*i.Analysis.ExperienceLevel)
		level = &l
	}

	return &IntentResponse{
		ID:               i.ID,
		OwnerID:          i.OwnerID,
		RawText:          i.RawText,
		IntentType:       string(i.Analysis.IntentType),
		Categories:       categories,
		Domains:          domains,
		ExperienceLevel:  level,
		Availability:     string(i.Analysis.Availability),
		AnalysisStatus:   string(i.AnalysisStatus),
		AnalysisError:    i.AnalysisError,
		IsActive:         i.IsActive,
		IsPaused:         i.IsPaused,
		Visibility:       string(i.Visibility),
		ConsentToMatch:   i.ConsentToMatch,
		ConsentToContact: i.ConsentToContact,
		LastProcessedAt:  i.LastProcessedAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func ToIntentResponses(intents []model.Intent) []*IntentResponse {
	out := make([]*IntentResponse, len(intents))
	for i := range intents {
		out[i] = ToIntentResponse(&intents[i])
	}
	return out
}
