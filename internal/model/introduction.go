package model

import "time"

type IntroductionStatus string

const (
	IntroductionStatusPending  IntroductionStatus = "pending"
	IntroductionStatusAccepted IntroductionStatus = "accepted"
	IntroductionStatusDeclined IntroductionStatus = "declined"
	IntroductionStatusExpired  IntroductionStatus = "expired"
)

func (s IntroductionStatus) IsValid() bool {
	switch s {
	case IntroductionStatusPending, IntroductionStatusAccepted, IntroductionStatusDeclined, IntroductionStatusExpired:
		return true
	}
	return false
}

type IntroductionCategory string

const (
	IntroductionCategoryMentorship          IntroductionCategory = "mentorship"
	IntroductionCategoryJobOpportunity      IntroductionCategory = "job_opportunity"
	IntroductionCategoryCollaboration       IntroductionCategory = "collaboration"
	IntroductionCategoryNetworking          IntroductionCategory = "networking"
	IntroductionCategorySpeakingOpportunity IntroductionCategory = "speaking_opportunity"
	IntroductionCategoryLearning            IntroductionCategory = "learning"
	IntroductionCategoryHiring              IntroductionCategory = "hiring"
	IntroductionCategoryVolunteering        IntroductionCategory = "volunteering"
	IntroductionCategoryOther               IntroductionCategory = "other"
)

func (c IntroductionCategory) IsValid() bool {
	switch c {
	case IntroductionCategoryMentorship,
		IntroductionCategoryJobOpportunity,
		IntroductionCategoryCollaboration,
		IntroductionCategoryNetworking,
		IntroductionCategorySpeakingOpportunity,
		IntroductionCategoryLearning,
		IntroductionCategoryHiring,
		IntroductionCategoryVolunteering,
		IntroductionCategoryOther:
		return true
	}
	return false
}

const (
	IntroductionTTL                  = 30 * 24 * time.Hour
	IntroductionMessageMinLength     = 10
	IntroductionMessageMaxLength     = 500
	IntroductionDescriptionMaxLength = 200
)

type IntroductionRequest struct {
	ID                int64                `json:"id,string"`
	FromMemberID      int64                `json:"from_member_id,string"`
	ToMemberID        int64                `json:"to_member_id,string"`
	Message           string               `json:"message"`
	IntentCategory    IntroductionCategory `json:"intent_category"`
	IntentDescription *string              `json:"intent_description,omitempty"`
	Status            IntroductionStatus   `json:"status"`
	ViewedAt          *time.Time           `json:"viewed_at,omitempty"`
	RespondedAt       *time.Time           `json:"responded_at,omitempty"`
	ExpiresAt         time.Time            `json:"expires_at"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// EffectiveStatus relabels a pending request whose expiry has passed.
func (r *IntroductionRequest) EffectiveStatus(now time.Time) IntroductionStatus {
	if r.Status == IntroductionStatusPending && !now.Before(r.ExpiresAt) {
		return IntroductionStatusExpired
	}
	return r.Status
}

// IsPending reports whether the request still awaits a response.
func (r *IntroductionRequest) IsPending(now time.Time) bool {
	return r.EffectiveStatus(now) == IntroductionStatusPending
}

func (r *IntroductionRequest) Involves(memberID int64) bool {
	return r.FromMemberID == memberID || r.ToMemberID == memberID
}
