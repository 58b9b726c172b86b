package dto

import (
	"time"

	"wiw3ch.app/matchmaker/internal/model"
)

type CreateIntroductionRequest struct {
	ToMemberID        int64   `json:"to_member_id,string" binding:"required"`
	Message           string  `json:"message" binding:"required"`
	IntentCategory    string  `json:"intent_category" binding:"required"`
	IntentDescription *string `json:"intent_description,omitempty"`
}

type RespondIntroductionRequest struct {
	Status string `json:"status" binding:"required"`
}

type IntroductionResponse struct {
	ID                int64      `json:"id,string"`
	FromMemberID      int64      `json:"from_member_id,string"`
	ToMemberID        int64      `json:"to_member_id,string"`
	Message           string     `json:"message"`
	IntentCategory    string     `json:"intent_category"`
	IntentDescription *string    `json:"intent_description,omitempty"`
	Status            string     `json:"status"`
	ViewedAt          *time.Time `json:"viewed_at,omitempty"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`
	ExpiresAt         time.Time  `json:"expires_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToIntroductionResponse(r *model.IntroductionRequest) *IntroductionResponse {
	return &IntroductionResponse{
		ID:                r.ID,
		FromMemberID:      r.FromMemberID,
		ToMemberID:        r.ToMemberID,
		Message:           r.Message,
		IntentCategory:    string(r.IntentCategory),
		IntentDescription: r.IntentDescription,
		Status:            string(r.Status),
		ViewedAt:          r.ViewedAt,
		RespondedAt:       r.RespondedAt,
		ExpiresAt:         r.ExpiresAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func ToIntroductionResponses(reqs []model.IntroductionRequest) []*IntroductionResponse {
	out := make([]*IntroductionResponse, len(reqs))
	for i := range reqs {
		out[i] = ToIntroductionResponse(&reqs[i])
	}
	return out
}
