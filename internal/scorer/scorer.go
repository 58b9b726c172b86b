// Package scorer computes the compatibility score between two intents.
// Everything here is a pure function of its inputs.
package scorer

import (
	"fmt"
	"math"

	"wiw3ch.app/matchmaker/internal/model"
)

const (
	SharedDomainPoints   = 15
	ComplementaryPoints  = 30
	SharedCategoryPoints = 10
	ConfidenceWeight     = 20
	AvailabilityPoints   = 5
	MaxScore             = 100
	DefaultConfidence    = 0.5
	MinimumMatchScore    = 30
)

// Result is the score of a pair plus the components the match explanation is built from.
type Result struct {
	Score            int
	SharedDomains    []string
	SharedCategories []string
	Confidence       float64
	Complementary    bool
}

// Score rates intent a against intent b. The relation is directional: shared
// domains and categories follow a's order.
func Score(a, b model.Intent) Result {
	res := Result{
		SharedDomains:    sharedDomains(a.Analysis.Domains, b.Analysis.Domains),
		Complementary:    a.Analysis.IntentType.Complements(b.Analysis.IntentType),
		SharedCategories: []string{},
	}

	var confidenceSum float64
	for _, ca := range a.Analysis.Categories {
		cb, ok := findCategory(b.Analysis.Categories, ca.Category)
		if !ok {
			continue
		}
		res.SharedCategories = append(res.SharedCategories, ca.Category)
		confidenceSum += (ca.Confidence + cb.Confidence) / 2
	}

	res.Confidence = DefaultConfidence
	if n := len(res.SharedCategories); n > 0 {
		res.Confidence = confidenceSum / float64(n)
	}

	total := float64(len(res.SharedDomains) * SharedDomainPoints)
	if res.Complementary {
		total += ComplementaryPoints
	}
	total += float64(len(res.SharedCategories) * SharedCategoryPoints)
	total += res.Confidence * ConfidenceWeight
	if a.Analysis.Availability == b.Analysis.Availability &&
		a.Analysis.Availability != model.AvailabilityNotSpecified &&
		a.Analysis.Availability != "" {
		total += AvailabilityPoints
	}

	res.Score = int(math.Round(math.Min(total, MaxScore)))
	return res
}

// ComplementaryNotes describes how the pair's intent types fit together,
// addressed by first name. It is empty when the types are not complementary.
func ComplementaryNotes(a, b model.Intent, nameA, nameB string) []string {
	ta, tb := a.Analysis.IntentType, b.Analysis.IntentType
	if !ta.Complements(tb) {
		return []string{}
	}
	switch ta {
	case model.IntentTypeReceiving:
		return []string{fmt.Sprintf("%s is seeking what %s is offering", nameA, nameB)}
	case model.IntentTypeGiving:
		return []string{fmt.Sprintf("%s is offering what %s is seeking", nameA, nameB)}
	default:
		return []string{"Both members have complementary giving and receiving intents"}
	}
}

func sharedDomains(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, d := range b {
		set[d] = struct{}{}
	}
	shared := []string{}
	for _, d := range a {
		if _, ok := set[d]; ok {
			shared = append(shared, d)
		}
	}
	return shared
}

func findCategory(categories []model.IntentCategory, name string) (model.IntentCategory, bool) {
	for _, c := range categories {
		if c.Category == name {
			return c, true
		}
	}
	return model.IntentCategory{}, false
}
