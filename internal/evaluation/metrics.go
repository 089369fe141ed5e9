package evaluation

import "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"

// RecallAtK computes Recall@K: the fraction of expected ingredients found in
// the top-K recommended ones. Returns 0.0 if expected is empty.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	found := 0
	for _, r := range topK(retrieved, k) {
		if _, ok := relevantSet[r]; ok {
			found++
		}
	}

	return float64(found) / float64(len(relevant))
}

// MRRAtK computes the reciprocal rank of the first expected ingredient in the
// top-K recommended ones. Returns 0.0 if none is found.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	for i, r := range topK(retrieved, k) {
		if _, ok := relevantSet[r]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}

// RiskAccuracy is the fraction of expected domain tiers the result matches,
// 1.0 when nothing is expected.
func RiskAccuracy(expected, actual map[entities.HealthDomain]entities.RiskLevel) float64 {
	if len(expected) == 0 {
		return 1.0
	}
	correct := 0
	for domain, level := range expected {
		if actual[domain] == level {
			correct++
		}
	}
	return float64(correct) / float64(len(expected))
}

func topK(items []string, k int) []string {
	if k < len(items) {
		return items[:k]
	}
	return items
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
