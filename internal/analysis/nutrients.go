package analysis

import (
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// IngredientScores is the raw accumulated weight per ingredient for one run
type IngredientScores map[string]int

func (s IngredientScores) add(weights IngredientWeights) {
	for name, w := range weights {
		s[name] += w
	}
}

// Score accumulates nutrient rule weights over every selected option and then
// applies the demographic bonuses. The map is built fresh on every call.
func (e *Engine) Score(answers []entities.Answer, age int, bmi float64, gender entities.Gender) IngredientScores {
	scores := make(IngredientScores)

	for _, a := range answers {
		if !a.HasSelection() || a.SubCategory.IsDemographic() || !appliesToGender(a.SubCategory, gender) {
			continue
		}
		for _, opt := range a.SelectedOptions {
			weights, ok := e.rules.NutrientWeights(a.SubCategory, opt.Text)
			if !ok {
				e.logger.Warn().
					Str("sub_category", string(a.SubCategory)).
					Str("option", opt.Text).
					Str("question_id", a.QuestionID).
					Msg("No nutrient rule for selected option")
				continue
			}
			scores.add(weights)
		}
	}

	if tier, ok := firstBonusTier(e.rules.Adjustments.Age, float64(age)); ok {
		scores.add(tier.Bonuses)
	}
	if tier, ok := firstBonusTier(e.rules.Adjustments.BMI, bmi); ok {
		scores.add(tier.Bonuses)
	}

	return scores
}

// appliesToGender keeps a gendered question block only for members of that
// gender. Unknown gender scores neither block.
func appliesToGender(sub entities.SubCategory, gender entities.Gender) bool {
	switch sub {
	case entities.SubCategoryFemaleHealth:
		return gender == entities.GenderFemale
	case entities.SubCategoryMaleHealth:
		return gender == entities.GenderMale
	}
	return true
}

func firstBonusTier(tiers []BonusTier, v float64) (BonusTier, bool) {
	if v <= 0 {
		return BonusTier{}, false
	}
	for _, tier := range tiers {
		if tier.Matches(v) {
			return tier, true
		}
	}
	return BonusTier{}, false
}
