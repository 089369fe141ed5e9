package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// LoadGoldenScenarios reads and parses a golden scenario set from a JSON file.
func LoadGoldenScenarios(path string) ([]GoldenScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden scenarios file: %w", err)
	}

	var scenarios []GoldenScenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse golden scenarios: %w", err)
	}

	return scenarios, nil
}

// ValidateGoldenScenarios checks that every scenario has an id, a known
// expectation and vocabulary the engine understands.
func ValidateGoldenScenarios(scenarios []GoldenScenario) error {
	seen := make(map[string]struct{}, len(scenarios))

	for i, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario at index %d: missing id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("scenario at index %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}

		switch s.ExpectError {
		case ExpectNoError:
			if s.ExpectedTop == "" && len(s.ExpectedIngredients) == 0 && len(s.ExpectedRisks) == 0 {
				return fmt.Errorf("scenario %q: no expectations", s.ID)
			}
		case ExpectMissingDemographics:
		default:
			return fmt.Errorf("scenario %q: unknown expect_error %q", s.ID, s.ExpectError)
		}

		for sub := range s.Answers {
			if sub.IsDemographic() {
				return fmt.Errorf("scenario %q: demographic %q belongs in its own field", s.ID, sub)
			}
		}
		for domain, level := range s.ExpectedRisks {
			if !domain.IsValid() {
				return fmt.Errorf("scenario %q: unknown domain %q", s.ID, domain)
			}
			if !level.IsValid() {
				return fmt.Errorf("scenario %q: invalid risk level %q for %s", s.ID, level, domain)
			}
		}
	}

	return nil
}

// Submission builds the questionnaire submission the scenario describes.
func (s GoldenScenario) Submission() *entities.Submission {
	sub := &entities.Submission{ID: "eval-" + s.ID, MemberID: "eval-" + s.ID}

	text := func(category entities.SubCategory, value string) {
		if value == "" {
			return
		}
		sub.Answers = append(sub.Answers, entities.Answer{
			QuestionID:  "q-" + string(category),
			SubCategory: category,
			Kind:        entities.QuestionTypeText,
			Text:        value,
		})
	}
	text(entities.SubCategoryName, s.Name)
	text(entities.SubCategoryAge, s.Age)
	text(entities.SubCategoryHeight, s.Height)
	text(entities.SubCategoryWeight, s.Weight)

	if s.Gender != "" {
		sub.Answers = append(sub.Answers, entities.Answer{
			QuestionID:      "q-" + string(entities.SubCategoryGender),
			SubCategory:     entities.SubCategoryGender,
			Kind:            entities.QuestionTypeSingleChoice,
			SelectedOptions: []entities.SelectedOption{{ID: "eval-gender", Text: s.Gender}},
		})
	}

	for category, options := range s.Answers {
		answer := entities.Answer{
			QuestionID:  "q-" + string(category),
			SubCategory: category,
			Kind:        entities.QuestionTypeMultipleChoice,
		}
		for i, text := range options {
			answer.SelectedOptions = append(answer.SelectedOptions, entities.SelectedOption{
				ID:   "eval-" + string(category) + "-" + strconv.Itoa(i),
				Text: text,
			})
		}
		sub.Answers = append(sub.Answers, answer)
	}
	return sub
}
