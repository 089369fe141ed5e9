package evaluation

import (
	"time"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// Expected error outcomes a scenario may declare.
const (
	ExpectNoError             = ""
	ExpectMissingDemographics = "missing_demographics"
)

// GoldenScenario is a labeled questionnaire with the analysis outcome it must produce.
type GoldenScenario struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Name        string `json:"name,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         string `json:"age,omitempty"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	// Answers maps a sub-category to the option texts selected under it
	Answers map[entities.SubCategory][]string `json:"answers,omitempty"`

	ExpectedTop         string                                       `json:"expected_top,omitempty"`
	ExpectedIngredients []string                                     `json:"expected_ingredients,omitempty"`
	ExcludedIngredients []string                                     `json:"excluded_ingredients,omitempty"`
	ExpectedRisks       map[entities.HealthDomain]entities.RiskLevel `json:"expected_risks,omitempty"`
	ExpectError         string                                       `json:"expect_error,omitempty"`
}

// EvalResult holds the evaluation outcome for a single scenario.
type EvalResult struct {
	ScenarioID   string        `json:"scenario_id"`
	Passed       bool          `json:"passed"`
	Error        string        `json:"error,omitempty"`
	TopMatch     bool          `json:"top_match"`
	RecallAtK    float64       `json:"recall_at_k"`
	MRRAtK       float64       `json:"mrr_at_k"`
	RiskAccuracy float64       `json:"risk_accuracy"`
	Ingredients  []string      `json:"ingredients,omitempty"`
	Products     int           `json:"products"`
	Violations   []string      `json:"violations,omitempty"`
	Latency      time.Duration `json:"latency"`

	riskChecks map[entities.HealthDomain]bool
}

// EvalSummary holds aggregate metrics across all golden scenarios.
type EvalSummary struct {
	TotalScenarios  int                                      `json:"total_scenarios"`
	Passed          int                                      `json:"passed"`
	Failed          int                                      `json:"failed"`
	AvgRecallAtK    float64                                  `json:"avg_recall_at_k"`
	AvgMRRAtK       float64                                  `json:"avg_mrr_at_k"`
	AvgRiskAccuracy float64                                  `json:"avg_risk_accuracy"`
	AvgLatency      time.Duration                            `json:"avg_latency"`
	ByDomain        map[entities.HealthDomain]*DomainSummary `json:"by_domain"`
	Results         []EvalResult                             `json:"results"`
}

// DomainSummary counts risk tier checks for one health domain.
type DomainSummary struct {
	Checked  int     `json:"checked"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}
