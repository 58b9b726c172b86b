package model

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusDeclined MatchStatus = "declined"
	MatchStatusExpired  MatchStatus = "expired"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusDeclined, MatchStatusExpired:
		return true
	}
	return false
}

// MatchTTL is how long a proposed match stays actionable.
const MatchTTL = 30 * 24 * time.Hour

type MatchExplanation struct {
	Reason               string   `json:"reason"`
	SharedDomains        []string `json:"shared_domains"`
	ComplementaryIntents []string `json:"complementary_intents"`
	Confidence           float64  `json:"confidence"`
}

type Match struct {
	ID          int64            `json:"id,string"`
	MemberAID   int64            `json:"member_a_id,string"`
	MemberBID   int64            `json:"member_b_id,string"`
	IntentAID   int64            `json:"intent_a_id,string"`
	IntentBID   int64            `json:"intent_b_id,string"`
	Score       int              `json:"score"`
	Explanation MatchExplanation `json:"explanation"`
	Status      MatchStatus      `json:"status"`
	ViewedByA   bool             `json:"viewed_by_a"`
	ViewedByB   bool             `json:"viewed_by_b"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (m *Match) HasMember(memberID int64) bool {
	return m.MemberAID == memberID || m.MemberBID == memberID
}

// OtherMember returns the counterpart of memberID, or 0 if memberID is not in the pair.
func (m *Match) OtherMember(memberID int64) int64 {
	switch memberID {
	case m.MemberAID:
		return m.MemberBID
	case m.MemberBID:
		return m.MemberAID
	}
	return 0
}

// EffectiveStatus relabels a pending match whose expiry has passed.
func (m *Match) EffectiveStatus(now time.Time) MatchStatus {
	if m.Status == MatchStatusPending && !now.Before(m.ExpiresAt) {
		return MatchStatusExpired
	}
	return m.Status
}

// IsActionable reports whether the match can still be accepted or declined.
func (m *Match) IsActionable(now time.Time) bool {
	return m.EffectiveStatus(now) == MatchStatusPending
}
