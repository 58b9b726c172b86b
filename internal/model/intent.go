package model

import "time"

type IntentType string

const (
	IntentTypeReceiving IntentType = "receiving"
	IntentTypeGiving    IntentType = "giving"
	IntentTypeBoth      IntentType = "both"
)

func (t IntentType) IsValid() bool {
	switch t {
	case IntentTypeReceiving, IntentTypeGiving, IntentTypeBoth:
		return true
	}
	return false
}

// Complements reports whether other is a valid counterpart for t:
// receiving pairs with giving or both, giving pairs with receiving or both,
// both pairs only with both. The relation is evaluated in this direction only.
func (t IntentType) Complements(other IntentType) bool {
	switch t {
	case IntentTypeReceiving:
		return other == IntentTypeGiving || other == IntentTypeBoth
	case IntentTypeGiving:
		return other == IntentTypeReceiving || other == IntentTypeBoth
	case IntentTypeBoth:
		return other == IntentTypeBoth
	}
	return false
}

// CandidateTypes lists the intent types t may be matched with during candidate search.
// "both" places no restriction.
func (t IntentType) CandidateTypes() []IntentType {
	switch t {
	case IntentTypeReceiving:
		return []IntentType{IntentTypeGiving, IntentTypeBoth}
	case IntentTypeGiving:
		return []IntentType{IntentTypeReceiving, IntentTypeBoth}
	case IntentTypeBoth:
		return []IntentType{IntentTypeReceiving, IntentTypeGiving, IntentTypeBoth}
	}
	return nil
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

func (e ExperienceLevel) IsValid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}
	return false
}

type Availability string

const (
	AvailabilityImmediate    Availability = "immediate"
	AvailabilityWithinMonth  Availability = "within_month"
	AvailabilityFlexible     Availability = "flexible"
	AvailabilityNotSpecified Availability = "not_specified"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityImmediate, AvailabilityWithinMonth, AvailabilityFlexible, AvailabilityNotSpecified:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityMembersOnly Visibility = "members_only"
	VisibilityPrivate     Visibility = "private"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityMembersOnly, VisibilityPrivate:
		return true
	}
	return false
}

type AnalysisStatus string

const (
	AnalysisStatusAnalyzed AnalysisStatus = "analyzed"
	// AnalysisStatusFailed marks an intent saved without a usable analysis.
	// Such intents carry no type, categories or domains and are never matched.
	AnalysisStatusFailed AnalysisStatus = "failed"
)

// MaxIntentTextLength bounds the raw statement, measured in characters.
const MaxIntentTextLength = 2000

type IntentCategory struct {
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
	Confidence    float64  `json:"confidence"`
}

// IntentAnalysis is the structured form of a raw intent statement.
type IntentAnalysis struct {
	IntentType      IntentType       `json:"intent_type"`
	Categories      []IntentCategory `json:"categories"`
	Domains         []string         `json:"domains"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
	Availability    Availability     `json:"availability"`
}

// CategoryNames returns category names in list order.
func (a IntentAnalysis) CategoryNames() []string {
	names := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		names[i] = c.Category
	}
	return names
}

type Intent struct {
	ID               int64          `json:"id,string"`
	OwnerID          int64          `json:"owner_id,string"`
	RawText          string         `json:"raw_text"`
	Analysis         IntentAnalysis `json:"analysis"`
	AnalysisStatus   AnalysisStatus `json:"analysis_status"`
	AnalysisError    *string        `json:"analysis_error,omitempty"`
	IsActive         bool           `json:"is_active"`
	IsPaused         bool           `json:"is_paused"`
	Visibility       Visibility     `json:"visibility"`
	ConsentToMatch   bool           `json:"consent_to_match"`
	ConsentToContact bool           `json:"consent_to_contact"`
	LastProcessedAt  time.Time      `json:"last_processed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsMatchable reports whether the intent may take part in algorithmic matching.
func (i *Intent) IsMatchable() bool {
	return i.IsActive &&
		!i.IsPaused &&
		i.ConsentToMatch &&
		i.AnalysisStatus == AnalysisStatusAnalyzed &&
		i.Analysis.IntentType.IsValid()
}
