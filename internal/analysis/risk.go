package analysis

import (
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// ClassifyAll returns a tier for every health domain
func (e *Engine) ClassifyAll(answers []entities.Answer, age int, bmi float64) map[entities.HealthDomain]entities.RiskLevel {
	levels := make(map[entities.HealthDomain]entities.RiskLevel, len(entities.AllHealthDomains()))
	for _, domain := range entities.AllHealthDomains() {
		levels[domain] = e.Classify(domain, answers, age, bmi)
	}
	return levels
}

// Classify maps a domain's risk score onto its tier
func (e *Engine) Classify(domain entities.HealthDomain, answers []entities.Answer, age int, bmi float64) entities.RiskLevel {
	rule, ok := e.rules.RiskRule(domain)
	if !ok {
		return entities.RiskLow
	}
	score := e.RiskScore(domain, answers, age, bmi)
	switch {
	case score >= rule.High:
		return entities.RiskHigh
	case score >= rule.Medium:
		return entities.RiskMedium
	}
	return entities.RiskLow
}

// RiskScore sums the demographic pre-score and the points of every selected
// option listed in the domain's table
func (e *Engine) RiskScore(domain entities.HealthDomain, answers []entities.Answer, age int, bmi float64) int {
	rule, ok := e.rules.RiskRule(domain)
	if !ok {
		return 0
	}

	score := firstPointTier(rule.Demographics.Age, float64(age)) +
		firstPointTier(rule.Demographics.BMI, bmi)

	for _, a := range answers {
		if !a.HasSelection() {
			continue
		}
		table, ok := rule.Points[a.SubCategory]
		if !ok {
			continue
		}
		for _, opt := range a.SelectedOptions {
			score += table[opt.Text]
		}
	}
	return score
}

func firstPointTier(tiers []PointTier, v float64) int {
	if v <= 0 {
		return 0
	}
	for _, tier := range tiers {
		if tier.Matches(v) {
			return tier.Points
		}
	}
	return 0
}
