package analysis

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

func textAnswer(sub entities.SubCategory, value string) entities.Answer {
	return entities.Answer{
		QuestionID:  "q-" + string(sub),
		SubCategory: sub,
		Kind:        entities.QuestionTypeText,
		Text:        value,
	}
}

func choiceAnswer(sub entities.SubCategory, options ...string) entities.Answer {
	a := entities.Answer{
		QuestionID:  "q-" + string(sub),
		SubCategory: sub,
		Kind:        entities.QuestionTypeMultipleChoice,
	}
	for i, text := range options {
		a.SelectedOptions = append(a.SelectedOptions, entities.SelectedOption{
			ID:   fmt.Sprintf("opt-%s-%d", sub, i),
			Text: text,
		})
	}
	return a
}

func newSubmission(age, height, weight string, answers ...entities.Answer) *entities.Submission {
	base := []entities.Answer{
		textAnswer(entities.SubCategoryAge, age),
		textAnswer(entities.SubCategoryHeight, height),
		textAnswer(entities.SubCategoryWeight, weight),
	}
	return &entities.Submission{
		ID:       "sub-1",
		MemberID: "member-1",
		Answers:  append(base, answers...),
	}
}

func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *bytes.Buffer) {
	t.Helper()
	rules, err := DefaultRuleSet()
	require.NoError(t, err)

	var buf bytes.Buffer
	opts = append([]EngineOption{WithLogger(zerolog.New(&buf))}, opts...)
	return NewEngine(rules, opts...), &buf
}
