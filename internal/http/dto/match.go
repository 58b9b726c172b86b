package dto

import (
	"time"

	"wiw3ch.app/matchmaker/internal/model"
)

type GenerateMatchesRequest struct {
	Limit int `json:"limit" binding:"omitempty,min=1"`
}

type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MatchExplanationResponse struct {
	Reason               string   `json:"reason"`
	SharedDomains        []string `json:"shared_domains"`
	ComplementaryIntents []string `json:"complementary_intents"`
	Confidence           float64  `json:"confidence"`
}

type MatchResponse struct {
	ID          int64                    `json:"id,string"`
	MemberAID   int64                    `json:"member_a_id,string"`
	MemberBID   int64                    `json:"member_b_id,string"`
	IntentAID   int64                    `json:"intent_a_id,string"`
	IntentBID   int64                    `json:"intent_b_id,string"`
	Score       int                      `json:"score"`
	Explanation MatchExplanationResponse `json:"explanation"`
	Status      string                   `json:"status"`
	ViewedByA   bool                     `json:"viewed_by_a"`
	ViewedByB   bool                     `json:"viewed_by_b"`
	ExpiresAt   time.Time                `json:"expires_at"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func ToMatchResponse(m *model.Match) *MatchResponse {
	return &MatchResponse{
		ID:        m.ID,
		MemberAID: m.MemberAID,
		MemberBID: m.MemberBID,
		IntentAID: m.IntentAID,
		IntentBID: m.IntentBID,
		Score:     m.Score,
		Explanation: MatchExplanationResponse{
			Reason:               m.Explanation.Reason,
			SharedDomains:        orEmpty(m.Explanation.SharedDomains),
			ComplementaryIntents: orEmpty(m.Explanation.ComplementaryIntents),
			Confidence:           m.Explanation.Confidence,
		},
		Status:    string(m.Status),
		ViewedByA: m.ViewedByA,
		ViewedByB: m.ViewedByB,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToMatchResponses(matches []model.Match) []*MatchResponse {
	out := make([]*MatchResponse, len(matches))
	for i := range matches {
		out[i] = ToMatchResponse(&matches[i])
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
