package main

import "wiw3ch.app/matchmaker/internal/model"

type seedMember struct {
	firstName string
	lastName  string
	email     string
	intent    string
	modes     []model.IntentMode
	analysis  model.IntentAnalysis
}

func level(l model.ExperienceLevel) *model.ExperienceLevel { return &l }

var demoMembers = []seedMember{
	{
		firstName: "Ada",
		lastName:  "Okafor",
		email:     "ada.okafor@example.com",
		intent:    "I'm looking for a mentor who has shipped DeFi protocols to help me grow as a smart contract engineer.",
		modes:     []model.IntentMode{model.IntentModeSeekingMentorship, model.IntentModeLearning},
		analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeReceiving,
			Categories: []model.IntentCategory{
				{Category: "mentorship", Subcategories: []string{"seeking_mentor"}, Confidence: 0.9},
				{Category: "learning", Subcategories: []string{"skill_development"}, Confidence: 0.7},
			},
			Domains:         []string{"DeFi", "Smart Contracts"},
			ExperienceLevel: level(model.ExperienceIntermediate),
			Availability:    model.AvailabilityFlexible,
		},
	},
	{
		firstName: "Bruno",
		lastName:  "Silva",
		email:     "bruno.silva@example.com",
		intent:    "Happy to mentor engineers building on DeFi and smart contracts, a few hours a month.",
		modes:     []model.IntentMode{model.IntentModeOfferingMentorship},
		analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeGiving,
			Categories: []model.IntentCategory{
				{Category: "mentorship", Subcategories: []string{"offering_mentorship"}, Confidence: 0.95},
			},
			Domains:         []string{"DeFi", "Smart Contracts", "Security"},
			ExperienceLevel: level(model.ExperienceExpert),
			Availability:    model.AvailabilityFlexible,
		},
	},
	{
		firstName: "Chen",
		lastName:  "Wei",
		email:     "chen.wei@example.com",
		intent:    "We're hiring product designers with Web3 experience and I'm open to sharing what I know about DAOs.",
		modes:     []model.IntentMode{model.IntentModeHiring, model.IntentModeCollaborating},
		analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeBoth,
			Categories: []model.IntentCategory{
				{Category: "career", Subcategories: []string{"hiring"}, Confidence: 0.85},
				{Category: "learning", Subcategories: []string{"knowledge_sharing"}, Confidence: 0.6},
			},
			Domains:         []string{"Web3", "Design", "DAOs"},
			ExperienceLevel: level(model.ExperienceAdvanced),
			Availability:    model.AvailabilityImmediate,
		},
	},
	{
		firstName: "Dana",
		lastName:  "Levi",
		email:     "dana.levi@example.com",
		intent:    "Designer moving into Web3, looking for a role on a DAO tooling team and to trade notes with other designers.",
		modes:     []model.IntentMode{model.IntentModeExploringJobs, model.IntentModeCollaborating},
		analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeBoth,
			Categories: []model.IntentCategory{
				{Category: "career", Subcategories: []string{"job_seeking", "career_transition"}, Confidence: 0.9},
				{Category: "learning", Subcategories: []string{"knowledge_sharing"}, Confidence: 0.5},
			},
			Domains:         []string{"Web3", "Design", "DAOs"},
			ExperienceLevel: level(model.ExperienceIntermediate),
			Availability:    model.AvailabilityImmediate,
		},
	},
	{
		firstName: "Emeka",
		lastName:  "Nwosu",
		email:     "emeka.nwosu@example.com",
		intent:    "Raising a pre-seed round for an AI/ML infrastructure startup and looking for angel investors.",
		modes:     []model.IntentMode{model.IntentModeCollaborating},
		analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeReceiving,
			Categories: []model.IntentCategory{
				{Category: "investment", Subcategories: []string{"seeking_funding"}, Confidence: 0.95},
			},
			Domains:      []string{"AI/ML", "Infrastructure"},
			Availability: model.AvailabilityWithinMonth,
		},
	},
	{
		firstName: "Farah",
		lastName:  "Haddad",
		email:     "farah.haddad@example.com",
		intent:    "Angel investing in AI/ML and data infrastructure, always keen to meet early founders.",
		modes:     []model.IntentMode{model.IntentModeCollaborating},
		analysis: model.IntentAnalysis{
			IntentType: model.IntentTypeGiving,
			Categories: []model.IntentCategory{
				{Category: "investment", Subcategories: []string{"angel_investing"}, Confidence: 0.9},
			},
			Domains:      []string{"AI/ML", "Data Science", "Infrastructure"},
			Availability: model.AvailabilityWithinMonth,
		},
	},
}
