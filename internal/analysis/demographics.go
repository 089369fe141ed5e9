package analysis

import (
	"math"
	"regexp"
	"strconv"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Demographics are the basic-info answers of a submission plus derived BMI.
// Unresolvable numeric fields are zero and named in Missing.
type Demographics struct {
	Name     string
	Gender   entities.Gender
	Age      int
	HeightCM float64
	WeightKG float64
	BMI      float64
	Missing  []string
}

// Complete reports whether age, height and weight were all resolved
func (d Demographics) Complete() bool {
	return len(d.Missing) == 0
}

// Err returns a MissingDemographicsError when the demographics are incomplete
func (d Demographics) Err() error {
	if d.Complete() {
		return nil
	}
	return &MissingDemographicsError{Fields: d.Missing}
}

// ExtractDemographics pulls name, gender, age, height and weight out of the
// submission. Gender is resolved through the rule set's option-id table, then
// the option text itself.
func (r *RuleSet) ExtractDemographics(sub *entities.Submission) Demographics {
	var d Demographics

	d.Name, _ = sub.TextAnswer(entities.SubCategoryName)
	d.Gender = r.extractGender(sub)

	if age, ok := positiveNumber(sub, entities.SubCategoryAge); ok {
		d.Age = int(age)
	} else {
		d.Missing = append(d.Missing, "age")
	}
	if height, ok := positiveNumber(sub, entities.SubCategoryHeight); ok {
		d.HeightCM = height
	} else {
		d.Missing = append(d.Missing, "height")
	}
	if weight, ok := positiveNumber(sub, entities.SubCategoryWeight); ok {
		d.WeightKG = weight
	} else {
		d.Missing = append(d.Missing, "weight")
	}

	d.BMI = CalculateBMI(d.HeightCM, d.WeightKG)
	return d
}

func (r *RuleSet) extractGender(sub *entities.Submission) entities.Gender {
	for _, a := range sub.AnswersBySubCategory(entities.SubCategoryGender) {
		for _, opt := range a.SelectedOptions {
			if g, ok := r.GenderOptions[opt.ID]; ok {
				return g
			}
			if g := entities.ParseGender(opt.Text); g != entities.GenderUnknown {
				return g
			}
		}
		if g := entities.ParseGender(a.Text); g != entities.GenderUnknown {
			return g
		}
	}
	return entities.GenderUnknown
}

// CalculateBMI returns weight / height(m)^2 rounded to two decimals, or 0 when
// either input is not positive
func CalculateBMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 || weightKG <= 0 {
		return 0
	}
	m := heightCM / 100
	return math.Round(weightKG/(m*m)*100) / 100
}

func positiveNumber(sub *entities.Submission, category entities.SubCategory) (float64, bool) {
	raw, ok := sub.TextAnswer(category)
	if !ok {
		return 0, false
	}
	match := numberPattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
