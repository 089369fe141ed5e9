package evaluation

import (
	"fmt"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

type GuardrailConfig struct {
	MaxIngredients int
}

// Guardrails checks structural properties every recommendation result must hold
// regardless of the questionnaire that produced it.
type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxIngredients <= 0 {
		config.MaxIngredients = analysis.DefaultMaxResults
	}
	return &Guardrails{config: config}
}

// Check returns one message per violated property
func (g *Guardrails) Check(result *entities.RecommendationResult) []string {
	if result == nil {
		return []string{"result is nil"}
	}
	var violations []string

	domains := entities.AllHealthDomains()
	if len(result.RiskLevels) != len(domains) {
		violations = append(violations, fmt.Sprintf("risk levels cover %d of %d domains", len(result.RiskLevels), len(domains)))
	}
	for _, domain := range domains {
		if level, ok := result.RiskLevels[domain]; ok && !level.IsValid() {
			violations = append(violations, fmt.Sprintf("invalid risk level %q for %s", level, domain))
		}
	}

	ingredients := result.RecommendedIngredients
	if len(ingredients) > g.config.MaxIngredients {
		violations = append(violations, fmt.Sprintf("%d ingredients exceed limit %d", len(ingredients), g.config.MaxIngredients))
	}
	recommended := make(map[string]struct{}, len(ingredients))
	for i, ing := range ingredients {
		recommended[ing.Name] = struct{}{}
		if ing.Score < 0 || ing.Score > analysis.MaxDisplayScore {
			violations = append(violations, fmt.Sprintf("score %.1f of %s out of range", ing.Score, ing.Name))
		}
		if ing.RawScore < 1 {
			violations = append(violations, fmt.Sprintf("%s recommended with raw score %d", ing.Name, ing.RawScore))
		}
		if i > 0 && ing.RawScore > ingredients[i-1].RawScore {
			violations = append(violations, fmt.Sprintf("%s ranked below a lower score", ing.Name))
		}
	}
	if len(ingredients) > 0 && ingredients[0].Score != analysis.MaxDisplayScore {
		violations = append(violations, fmt.Sprintf("top score is %.1f", ingredients[0].Score))
	}

	seen := make(map[string]struct{}, len(result.Recommendations))
	for _, rec := range result.Recommendations {
		if _, dup := seen[rec.ProductID]; dup {
			violations = append(violations, fmt.Sprintf("product %s recommended twice", rec.ProductID))
		}
		seen[rec.ProductID] = struct{}{}

		if len(rec.MatchedIngredients) == 0 {
			violations = append(violations, fmt.Sprintf("product %s matches no ingredient", rec.ProductID))
		}
		for _, name := range rec.MatchedIngredients {
			if _, ok := recommended[name]; !ok {
				violations = append(violations, fmt.Sprintf("product %s matched unrecommended %s", rec.ProductID, name))
			}
		}
	}

	return violations
}
