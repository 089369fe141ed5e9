package analysis

import (
	"math"
	"sort"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// MaxDisplayScore is the top of the normalized display scale
const MaxDisplayScore = 5.0

// SelectIngredients ranks the scores and returns at most maxResults entries.
// Baseline ingredients are floored at 1, entries below 1 are dropped, ties are
// ordered by name, and display scores are normalized against the top raw
// score onto 0.0-5.0 with one decimal.
func SelectIngredients(scores IngredientScores, baseline []string, maxResults int) []entities.IngredientScore {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ranked := make(IngredientScores, len(scores)+len(baseline))
	for name, score := range scores {
		ranked[name] = score
	}
	for _, name := range baseline {
		if ranked[name] < 1 {
			ranked[name] = 1
		}
	}

	selected := make([]entities.IngredientScore, 0, len(ranked))
	for name, score := range ranked {
		if score < 1 {
			continue
		}
		selected = append(selected, entities.IngredientScore{Name: name, RawScore: score})
	}

	sort.Slice(selected, func(i, j int) bool {
		if selected[i].RawScore != selected[j].RawScore {
			return selected[i].RawScore > selected[j].RawScore
		}
		return selected[i].Name < selected[j].Name
	})

	if len(selected) > maxResults {
		selected = selected[:maxResults]
	}

	maxRaw := 1
	if len(selected) > 0 {
		maxRaw = selected[0].RawScore
	}
	for i := range selected {
		selected[i].Score = normalize(selected[i].RawScore, maxRaw)
	}
	return selected
}

func normalize(raw, maxRaw int) float64 {
	if maxRaw <= 0 {
		maxRaw = 1
	}
	v := float64(raw) / float64(maxRaw) * MaxDisplayScore
	v = math.Min(MaxDisplayScore, math.Max(0, v))
	return math.Round(v*10) / 10
}
