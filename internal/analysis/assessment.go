package analysis

import (
	"fmt"
	"strings"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

const assessmentTopIngredients = 3

// BMIStatus returns the Korean weight category for a BMI value
func BMIStatus(bmi float64) string {
	switch {
	case bmi <= 0:
		return "알 수 없음"
	case bmi < 18.5:
		return "저체중"
	case bmi < 23:
		return "정상 체중"
	case bmi < 25:
		return "과체중"
	}
	return "비만"
}

// WriteAssessment renders the overall assessment text. Domains are listed in
// their fixed order so the text is stable for identical input.
func WriteAssessment(d Demographics, risks map[entities.HealthDomain]entities.RiskLevel, ingredients []entities.IngredientScore) string {
	var high, medium []string
	for _, domain := range entities.AllHealthDomains() {
		switch risks[domain] {
		case entities.RiskHigh:
			high = append(high, domain.Label())
		case entities.RiskMedium:
			medium = append(medium, domain.Label())
		}
	}

	var parts []string
	if d.Name != "" {
		parts = append(parts, fmt.Sprintf("%s님의 BMI는 %.1f(%s)입니다.", d.Name, d.BMI, BMIStatus(d.BMI)))
	} else {
		parts = append(parts, fmt.Sprintf("BMI는 %.1f(%s)입니다.", d.BMI, BMIStatus(d.BMI)))
	}

	if len(high) > 0 {
		parts = append(parts, fmt.Sprintf("위험도가 높은 영역: %s.", strings.Join(high, ", ")))
	}
	if len(medium) > 0 {
		parts = append(parts, fmt.Sprintf("주의가 필요한 영역: %s.", strings.Join(medium, ", ")))
	}
	if len(high) == 0 && len(medium) == 0 {
		parts = append(parts, "모든 건강 영역의 위험도가 낮습니다.")
	}

	if len(ingredients) > 0 {
		n := min(len(ingredients), assessmentTopIngredients)
		names := make([]string, n)
		for i := range n {
			names[i] = ingredients[i].Name
		}
		parts = append(parts, fmt.Sprintf("우선 추천 영양소는 %s입니다.", strings.Join(names, ", ")))
	}

	return strings.Join(parts, " ")
}
