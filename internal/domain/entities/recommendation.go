package entities

// HealthDomain is one of the nine symptom domains that receive a risk tier
type HealthDomain string

const (
	DomainCirculation HealthDomain = "circulation"
	DomainDigestion   HealthDomain = "digestion"
	DomainSkin        HealthDomain = "skin"
	DomainEyes        HealthDomain = "eyes"
	DomainBrain       HealthDomain = "brain"
	DomainFatigue     HealthDomain = "fatigue"
	DomainBoneJoint   HealthDomain = "bone_joint"
	DomainImmune      HealthDomain = "immune"
	DomainHair        HealthDomain = "hair"
)

var domainSubCategories = map[HealthDomain]SubCategory{
	DomainCirculation: SubCategoryCirculation,
	DomainDigestion:   SubCategoryDigestion,
	DomainSkin:        SubCategorySkin,
	DomainEyes:        SubCategoryEyes,
	DomainBrain:       SubCategoryBrain,
	DomainFatigue:     SubCategoryFatigue,
	DomainBoneJoint:   SubCategoryBoneJoint,
	DomainImmune:      SubCategoryImmune,
	DomainHair:        SubCategoryHair,
}

// AllHealthDomains returns the fixed domain list in display order
func AllHealthDomains() []HealthDomain {
	return []HealthDomain{
		DomainCirculation,
		DomainDigestion,
		DomainSkin,
		DomainEyes,
		DomainBrain,
		DomainFatigue,
		DomainBoneJoint,
		DomainImmune,
		DomainHair,
	}
}

// IsValid checks if the domain is one of the nine fixed domains
func (d HealthDomain) IsValid() bool {
	_, ok := domainSubCategories[d]
	return ok
}

// SubCategory returns the survey sub-category whose questions describe the domain
func (d HealthDomain) SubCategory() SubCategory {
	return domainSubCategories[d]
}

// Label returns the Korean display name of the domain
func (d HealthDomain) Label() string {
	return string(domainSubCategories[d])
}

// RiskLevel is the three-tier risk classification
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// IsValid checks if the level is one of the three tiers
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// IngredientScore is a recommended ingredient with its display score (0.0-5.0)
// and the raw accumulated weight it was ranked by
type IngredientScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	RawScore int     `json:"rawScore"`
}

// RecommendationResult is the engine's sole output. It is treated as immutable
// once produced.
type RecommendationResult struct {
	BMI                    float64                    `json:"bmi"`
	RiskLevels             map[HealthDomain]RiskLevel `json:"riskLevels"`
	OverallAssessment      string                     `json:"overallAssessment"`
	RecommendedIngredients []IngredientScore          `json:"recommendedIngredients"`
	Recommendations        []ProductRecommendation    `json:"recommendations"`
}

// IngredientNames returns the recommended ingredient names in rank order
func (r *RecommendationResult) IngredientNames() []string {
	names := make([]string, len(r.RecommendedIngredients))
	for i, ing := range r.RecommendedIngredients {
		names[i] = ing.Name
	}
	return names
}
