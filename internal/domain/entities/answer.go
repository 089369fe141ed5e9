package entities

import (
	"strings"
	"time"
)

// SelectedOption is an option chosen in a choice answer, resolved to its canonical text
type SelectedOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Answer is one member's answer to one question within a submission
type Answer struct {
	ID              string           `json:"id" db:"id"`
	SubmissionID    string           `json:"submission_id" db:"submission_id"`
	MemberID        string           `json:"member_id" db:"member_id"`
	QuestionID      string           `json:"question_id" db:"question_id"`
	SubCategory     SubCategory      `json:"sub_category" db:"sub_category"`
	Kind            QuestionType     `json:"kind" db:"kind"`
	Text            string           `json:"text,omitempty" db:"text_value"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty" db:"-"`
}

// HasSelection reports whether the answer carries at least one chosen option
func (a Answer) HasSelection() bool {
	return a.Kind.IsChoice() && len(a.SelectedOptions) > 0
}

// Submission is one complete survey batch. Only the latest submission of a
// member is ever analyzed; answers from different submissions are never mixed.
type Submission struct {
	ID          string    `json:"id" db:"id"`
	MemberID    string    `json:"member_id" db:"member_id"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`
	Answers     []Answer  `json:"answers" db:"-"`
}

// AnswersBySubCategory returns the answers tagged with the given sub-category
func (s *Submission) AnswersBySubCategory(sub SubCategory) []Answer {
	var out []Answer
	for _, a := range s.Answers {
		if a.SubCategory == sub {
			out = append(out, a)
		}
	}
	return out
}

// TextAnswer returns the trimmed free-text value for the first answer in the
// sub-category, falling back to the first selected option's text.
func (s *Submission) TextAnswer(sub SubCategory) (string, bool) {
	for _, a := range s.AnswersBySubCategory(sub) {
		if v := strings.TrimSpace(a.Text); v != "" {
			return v, true
		}
		if len(a.SelectedOptions) > 0 {
			return strings.TrimSpace(a.SelectedOptions[0].Text), true
		}
	}
	return "", false
}
