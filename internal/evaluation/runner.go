package evaluation

import (
	"context"
	"errors"
	"time"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// Analyzer is the part of the analysis engine the runner exercises.
type Analyzer interface {
	Analyze(ctx context.Context, in analysis.Input) (*analysis.Analysis, error)
}

// Runner runs evaluation across a set of golden scenarios.
type Runner struct {
	analyzer   Analyzer
	catalog    []*entities.Product
	guardrails *Guardrails
	k          int
}

func NewRunner(analyzer Analyzer, catalog []*entities.Product, guardrails *Guardrails) *Runner {
	if guardrails == nil {
		guardrails = NewGuardrails(GuardrailConfig{})
	}
	return &Runner{
		analyzer:   analyzer,
		catalog:    catalog,
		guardrails: guardrails,
		k:          guardrails.config.MaxIngredients,
	}
}

func (r *Runner) Run(ctx context.Context, scenarios []GoldenScenario) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalScenarios: len(scenarios),
		ByDomain:       make(map[entities.HealthDomain]*DomainSummary),
		Results:        make([]EvalResult, 0, len(scenarios)),
	}

	for _, gs := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := r.evaluate(ctx, gs)
		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) evaluate(ctx context.Context, gs GoldenScenario) EvalResult {
	start := time.Now()
	out, err := r.analyzer.Analyze(ctx, analysis.Input{
		Submission: gs.Submission(),
		Catalog:    r.catalog,
	})
	result := EvalResult{
		ScenarioID: gs.ID,
		Latency:    time.Since(start),
	}

	if err != nil {
		result.Error = err.Error()
		result.Passed = gs.ExpectError == ExpectMissingDemographics && errors.Is(err, analysis.ErrMissingDemographics)
		if result.Passed {
			result.TopMatch = true
			result.RecallAtK = 1.0
			result.RiskAccuracy = 1.0
		}
		return result
	}
	if gs.ExpectError != ExpectNoError {
		result.Violations = append(result.Violations, "expected error "+gs.ExpectError)
		return result
	}

	rec := out.Result
	names := rec.IngredientNames()
	result.Ingredients = names
	result.Products = len(rec.Recommendations)
	result.TopMatch = gs.ExpectedTop == "" || (len(names) > 0 && names[0] == gs.ExpectedTop)
	result.RecallAtK = 1.0
	if len(gs.ExpectedIngredients) > 0 {
		result.RecallAtK = RecallAtK(gs.ExpectedIngredients, names, r.k)
		result.MRRAtK = MRRAtK(gs.ExpectedIngredients, names, r.k)
	}
	result.RiskAccuracy = RiskAccuracy(gs.ExpectedRisks, rec.RiskLevels)
	result.riskChecks = make(map[entities.HealthDomain]bool, len(gs.ExpectedRisks))
	for domain, level := range gs.ExpectedRisks {
		result.riskChecks[domain] = rec.RiskLevels[domain] == level
	}

	excluded := toSet(gs.ExcludedIngredients)
	for _, name := range names {
		if _, ok := excluded[name]; ok {
			result.Violations = append(result.Violations, "excluded ingredient "+name+" recommended")
		}
	}
	result.Violations = append(result.Violations, r.guardrails.Check(rec)...)

	result.Passed = result.TopMatch &&
		result.RecallAtK == 1.0 &&
		result.RiskAccuracy == 1.0 &&
		len(result.Violations) == 0
	return result
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.Results = append(s.Results, res)
	if res.Passed {
		s.Passed++
	} else {
		s.Failed++
	}
	s.AvgRecallAtK += res.RecallAtK
	s.AvgMRRAtK += res.MRRAtK
	s.AvgRiskAccuracy += res.RiskAccuracy
	s.AvgLatency += res.Latency

	for domain, correct := range res.riskChecks {
		ds, ok := s.ByDomain[domain]
		if !ok {
			ds = &DomainSummary{}
			s.ByDomain[domain] = ds
		}
		ds.Checked++
		if correct {
			ds.Correct++
		}
	}
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalScenarios > 0 {
		n := float64(s.TotalScenarios)
		s.AvgRecallAtK /= n
		s.AvgMRRAtK /= n
		s.AvgRiskAccuracy /= n
		s.AvgLatency /= time.Duration(s.TotalScenarios)
	}

	for _, ds := range s.ByDomain {
		if ds.Checked > 0 {
			ds.Accuracy = float64(ds.Correct) / float64(ds.Checked)
		}
	}
}
