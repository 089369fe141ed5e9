package analysis

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// DefaultMaxResults is the default length of the recommended ingredient list
const DefaultMaxResults = 5

// Engine runs the survey analysis pipeline over one submission. It holds no
// per-run state and is safe for concurrent use.
type Engine struct {
	rules      *RuleSet
	maxResults int
	logger     zerolog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithMaxResults caps the recommended ingredient list
func WithMaxResults(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// WithLogger sets the logger used for unknown-option warnings
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over a validated rule set
func NewEngine(rules *RuleSet, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:      rules,
		maxResults: DefaultMaxResults,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the rule set the engine scores with
func (e *Engine) Rules() *RuleSet {
	return e.rules
}

// Input is everything one analysis run reads. The caller fetches it up front
// from a consistent snapshot.
type Input struct {
	Submission *entities.Submission
	Catalog    []*entities.Product
	// Member labels the result when the submission lacks name or gender
	Member *entities.Member
}

// Analysis is the outcome of one run
type Analysis struct {
	Demographics Demographics
	Scores       IngredientScores
	Result       *entities.RecommendationResult
}

// Analyze extracts demographics, scores nutrients, classifies risk, selects
// ingredients and matches products. It fails only when age, height or weight
// cannot be resolved.
func (e *Engine) Analyze(ctx context.Context, in Input) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub := in.Submission
	if sub == nil {
		sub = &entities.Submission{}
	}

	d := e.rules.ExtractDemographics(sub)
	if in.Member != nil {
		if d.Name == "" {
			d.Name = in.Member.Name
		}
		if d.Gender == entities.GenderUnknown {
			d.Gender = in.Member.Gender
		}
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	scores := e.Score(sub.Answers, d.Age, d.BMI, d.Gender)
	risks := e.ClassifyAll(sub.Answers, d.Age, d.BMI)
	ingredients := SelectIngredients(scores, e.rules.BaselineIngredients, e.maxResults)

	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.Name
	}
	products := MatchProducts(names, in.Catalog)

	result := &entities.RecommendationResult{
		BMI:                    d.BMI,
		RiskLevels:             risks,
		OverallAssessment:      WriteAssessment(d, risks, ingredients),
		RecommendedIngredients: ingredients,
		Recommendations:        products,
	}

	return &Analysis{
		Demographics: d,
		Scores:       scores,
		Result:       result,
	}, nil
}
