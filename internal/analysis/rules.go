package analysis

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

//go:embed rules/*.yaml
var embeddedRules embed.FS

var validate = validator.New(validator.WithRequiredStructEnabled())

// IngredientWeights maps an ingredient name to the points one rule hit adds to it
type IngredientWeights map[string]int

// OptionTable maps canonical option text to the value it contributes
type OptionTable[V any] map[string]V

// Condition compares a demographic value against a fixed threshold
type Condition struct {
	Op    string  `yaml:"op" validate:"oneof=gt gte lt lte"`
	Value float64 `yaml:"value" validate:"gt=0"`
}

// Matches reports whether v satisfies the condition
func (c Condition) Matches(v float64) bool {
	switch c.Op {
	case "gt":
		return v > c.Value
	case "gte":
		return v >= c.Value
	case "lt":
		return v < c.Value
	case "lte":
		return v <= c.Value
	}
	return false
}

// BonusTier adds fixed ingredient bonuses when its condition holds
type BonusTier struct {
	Condition `yaml:",inline"`
	Bonuses   IngredientWeights `yaml:"bonuses" validate:"required,min=1,dive,min=1"`
}

// PointTier adds risk points when its condition holds
type PointTier struct {
	Condition `yaml:",inline"`
	Points    int `yaml:"points" validate:"min=1,max=2"`
}

// Adjustments are the demographic nutrient bonuses. Within each factor the
// tiers are ordered and only the first matching tier applies.
type Adjustments struct {
	Age []BonusTier `yaml:"age" validate:"dive"`
	BMI []BonusTier `yaml:"bmi" validate:"dive"`
}

// DemographicPoints is a domain's risk pre-score, first matching tier per factor
type DemographicPoints struct {
	Age []PointTier `yaml:"age" validate:"dive"`
	BMI []PointTier `yaml:"bmi" validate:"dive"`
}

// RiskRule holds the point table and thresholds of one health domain
type RiskRule struct {
	Domain       entities.HealthDomain                     `yaml:"domain" validate:"required"`
	Medium       int                                       `yaml:"medium" validate:"min=1"`
	High         int                                       `yaml:"high" validate:"gtfield=Medium"`
	Points       map[entities.SubCategory]OptionTable[int] `yaml:"points" validate:"required,min=1"`
	Demographics DemographicPoints                         `yaml:"demographics"`
}

// RuleSet is the complete static scoring configuration
type RuleSet struct {
	Version             string                                                  `yaml:"version"`
	Nutrients           map[entities.SubCategory]OptionTable[IngredientWeights] `yaml:"nutrients" validate:"required,min=1"`
	Adjustments         Adjustments                                             `yaml:"adjustments"`
	BaselineIngredients []string                                                `yaml:"baseline_ingredients" validate:"required,min=1,dive,required"`
	Risks               []RiskRule                                              `yaml:"risks" validate:"len=9,dive"`
	GenderOptions       map[string]entities.Gender                              `yaml:"gender_options" validate:"dive,oneof=여성 남성"`

	riskByDomain map[entities.HealthDomain]*RiskRule
}

// DefaultRuleSet parses the rule tables compiled into the binary
func DefaultRuleSet() (*RuleSet, error) {
	files, err := fs.Glob(embeddedRules, "rules/*.yaml")
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, len(files))
	for _, name := range files {
		data, err := embeddedRules.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path.Base(name), err)
		}
		docs = append(docs, data)
	}
	return ParseRuleSet(docs...)
}

// MustDefaultRuleSet is DefaultRuleSet for callers that cannot recover from a
// broken embedded table, such as tests and seeders
func MustDefaultRuleSet() *RuleSet {
	rules, err := DefaultRuleSet()
	if err != nil {
		panic(err)
	}
	return rules
}

// LoadRuleSet reads a rule set from a YAML file. An empty path yields the
// embedded defaults.
func LoadRuleSet(filePath string) (*RuleSet, error) {
	if filePath == "" {
		return DefaultRuleSet()
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet decodes one or more YAML documents into a single rule set.
// Later documents override top-level keys set by earlier ones.
func ParseRuleSet(docs ...[]byte) (*RuleSet, error) {
	rules := &RuleSet{}
	for i, doc := range docs {
		if err := yaml.Unmarshal(doc, rules); err != nil {
			return nil, fmt.Errorf("failed to parse rule document %d: %w", i, err)
		}
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks the rule set and builds its lookup indexes
func (r *RuleSet) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid rule set: %w", err)
	}

	for sub, table := range r.Nutrients {
		for option, weights := range table {
			for ingredient, w := range weights {
				if ingredient == "" || w < 1 {
					return fmt.Errorf("invalid rule set: %s/%s has weight %d for %q", sub, option, w, ingredient)
				}
			}
		}
	}

	index := make(map[entities.HealthDomain]*RiskRule, len(r.Risks))
	for i := range r.Risks {
		rule := &r.Risks[i]
		if !rule.Domain.IsValid() {
			return fmt.Errorf("invalid rule set: unknown domain %q", rule.Domain)
		}
		if _, dup := index[rule.Domain]; dup {
			return fmt.Errorf("invalid rule set: duplicate domain %q", rule.Domain)
		}
		index[rule.Domain] = rule
	}
	r.riskByDomain = index
	return nil
}

// RiskRule returns the rule for a domain
func (r *RuleSet) RiskRule(domain entities.HealthDomain) (*RiskRule, bool) {
	rule, ok := r.riskByDomain[domain]
	return rule, ok
}

// NutrientWeights returns the weights for an option within a sub-category.
// ok is false when the option has no entry, which callers treat as an
// unknown option. A known option may legitimately carry no weights.
func (r *RuleSet) NutrientWeights(sub entities.SubCategory, option string) (IngredientWeights, bool) {
	table, ok := r.Nutrients[sub]
	if !ok {
		return nil, false
	}
	weights, ok := table[option]
	return weights, ok
}

// Ingredients returns every ingredient name the rule set can recommend
func (r *RuleSet) Ingredients() map[string]struct{} {
	out := make(map[string]struct{})
	for _, table := range r.Nutrients {
		for _, weights := range table {
			for name := range weights {
				out[name] = struct{}{}
			}
		}
	}
	for _, tiers := range [][]BonusTier{r.Adjustments.Age, r.Adjustments.BMI} {
		for _, tier := range tiers {
			for name := range tier.Bonuses {
				out[name] = struct{}{}
			}
		}
	}
	for _, name := range r.BaselineIngredients {
		out[name] = struct{}{}
	}
	return out
}
