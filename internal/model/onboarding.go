package model

import "time"

type IntentMode string

const (
	IntentModeSeekingMentorship  IntentMode = "seeking_mentorship"
	IntentModeOfferingMentorship IntentMode = "offering_mentorship"
	IntentModeExploringJobs      IntentMode = "exploring_jobs"
	IntentModeHiring             IntentMode = "hiring"
	IntentModeSpeaking           IntentMode = "speaking"
	IntentModeOrganizingEvents   IntentMode = "organizing_events"
	IntentModeVolunteering       IntentMode = "volunteering"
	IntentModeLearning           IntentMode = "learning"
	IntentModeCollaborating      IntentMode = "collaborating"
	IntentModeRecruitmentHiring  IntentMode = "recruitment_hiring"
	IntentModeRecruitmentSeeking IntentMode = "recruitment_seeking"
)

func (m IntentMode) IsValid() bool {
	switch m {
	case IntentModeSeekingMentorship, IntentModeOfferingMentorship, IntentModeExploringJobs,
		IntentModeHiring, IntentModeSpeaking, IntentModeOrganizingEvents, IntentModeVolunteering,
		IntentModeLearning, IntentModeCollaborating, IntentModeRecruitmentHiring, IntentModeRecruitmentSeeking:
		return true
	}
	return false
}

// Onboarding step numbers. Steps 1-3 are required to complete.
const (
	StepCoreIntent        = 1
	StepIntentModes       = 2
	StepVisibility        = 3
	StepDomainFocus       = 4
	StepExperienceLevel   = 5
	StepSkills            = 6
	StepAvailability      = 7
	StepContributionAreas = 8

	FinalOnboardingStep = StepContributionAreas
)

const (
	MaxOnboardingSkills     = 10
	DirectoryHeadlineLength = 100
)

// OnboardingProgress is a member's questionnaire state. The zero value
// (apart from MemberID) is a member who has not started.
type OnboardingProgress struct {
	MemberID          int64            `json:"member_id,string"`
	CurrentStep       int              `json:"current_step"`
	CoreIntent        *string          `json:"core_intent,omitempty"`
	IntentModes       []IntentMode     `json:"intent_modes"`
	Visibility        *Visibility      `json:"visibility,omitempty"`
	DomainFocus       []string         `json:"domain_focus"`
	ExperienceLevel   *ExperienceLevel `json:"experience_level,omitempty"`
	Skills            []string         `json:"skills"`
	Availability      *Availability    `json:"availability,omitempty"`
	ContributionAreas []string         `json:"contribution_areas"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (p *OnboardingProgress) Completed() bool {
	return p.CompletedAt != nil
}

// MemberProfile is a directory view of a member.
type MemberProfile struct {
	Member     Member             `json:"member"`
	Onboarding OnboardingProgress `json:"onboarding"`
}

// Headline is the start of the core intent, empty when none was given.
func (p *MemberProfile) Headline() string {
	if p.Onboarding.CoreIntent == nil {
		return ""
	}
	runes := []rune(*p.Onboarding.CoreIntent)
	if len(runes) > DirectoryHeadlineLength {
		runes = runes[:DirectoryHeadlineLength]
	}
	return string(runes)
}
