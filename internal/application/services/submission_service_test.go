package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

func surveyQuestions() []*entities.Question {
	return []*entities.Question{
		{ID: "q-age", Type: entities.QuestionTypeText, SubCategory: entities.SubCategoryAge},
		{
			ID: "q-gender", Type: entities.QuestionTypeSingleChoice, SubCategory: entities.SubCategoryGender,
			Options: []entities.Option{{ID: "opt-gender-female", Text: "여성"}, {ID: "opt-gender-male", Text: "남성"}},
		},
		{
			ID: "q-circ", Type: entities.QuestionTypeMultipleChoice, SubCategory: entities.SubCategoryCirculation,
			Options: []entities.Option{{ID: "opt-c1", Text: "손발 끝이 자주 저려요"}, {ID: "opt-c2", Text: "손발이 자주 차가워요"}},
		},
	}
}

func newSubmissionFixture() (*SubmissionService, *MockAnswerRepo, *MockQuestionRepo) {
	answers := new(MockAnswerRepo)
	questions := new(MockQuestionRepo)
	service := NewSubmissionService(answers, questions)
	service.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return service, answers, questions
}

func TestSubmit_StoresResolvedAnswers(t *testing.T) {
	service, answers, questions := newSubmissionFixture()
	ctx := context.Background()

	questions.On("GetByIDs", ctx, []string{"q-age", "q-gender", "q-circ"}).Return(surveyQuestions(), nil)
	answers.On("CreateSubmission", ctx, mock.AnythingOfType("*entities.Submission")).Return(nil)

	sub, err := service.Submit(ctx, "member-1", &SubmitRequest{Answers: []AnswerInput{
		{QuestionID: "q-age", Text: " 42 "},
		{QuestionID: "q-gender", OptionIDs: []string{"opt-gender-female"}},
		{QuestionID: "q-circ", OptionIDs: []string{"opt-c2", "opt-c1", "opt-c2"}},
	}})
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "member-1", sub.MemberID)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), sub.SubmittedAt)
	require.Len(t, sub.Answers, 3)

	assert.Equal(t, "42", sub.Answers[0].Text)
	assert.Equal(t, entities.SubCategoryAge, sub.Answers[0].SubCategory)
	assert.Equal(t, []entities.SelectedOption{{ID: "opt-gender-female", Text: "여성"}}, sub.Answers[1].SelectedOptions)
	assert.Equal(t, []entities.SelectedOption{
		{ID: "opt-c2", Text: "손발이 자주 차가워요"},
		{ID: "opt-c1", Text: "손발 끝이 자주 저려요"},
	}, sub.Answers[2].SelectedOptions)
	for _, a := range sub.Answers {
		assert.Equal(t, sub.ID, a.SubmissionID)
		assert.NotEmpty(t, a.ID)
	}
	answers.AssertExpectations(t)
}

func TestSubmit_RejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers []AnswerInput
	}{
		{"unknown question", []AnswerInput{{QuestionID: "q-unknown", Text: "x"}}},
		{"duplicate question", []AnswerInput{{QuestionID: "q-age", Text: "1"}, {QuestionID: "q-age", Text: "2"}}},
		{"empty text", []AnswerInput{{QuestionID: "q-age", Text: "  "}}},
		{"options on text question", []AnswerInput{{QuestionID: "q-age", OptionIDs: []string{"opt-c1"}}}},
		{"no option on choice", []AnswerInput{{QuestionID: "q-circ"}}},
		{"two options on single choice", []AnswerInput{{QuestionID: "q-gender", OptionIDs: []string{"opt-gender-female", "opt-gender-male"}}}},
		{"foreign option", []AnswerInput{{QuestionID: "q-circ", OptionIDs: []string{"opt-gender-male"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, answers, questions := newSubmissionFixture()
			questions.On("GetByIDs", mock.Anything, mock.Anything).Return(surveyQuestions(), nil)

			_, err := service.Submit(context.Background(), "member-1", &SubmitRequest{Answers: tt.answers})
			assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
			answers.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_RejectsMalformedRequest(t *testing.T) {
	service, _, questions := newSubmissionFixture()

	_, err := service.Submit(context.Background(), "", &SubmitRequest{Answers: []AnswerInput{{QuestionID: "q-age", Text: "1"}}})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	_, err = service.Submit(context.Background(), "member-1", &SubmitRequest{})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	_, err = service.Submit(context.Background(), "member-1", nil)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	questions.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}
