package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/application/services"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// maxSubmissionBytes bounds a posted survey batch
const maxSubmissionBytes = 1 << 20

// SurveyService defines the survey operations used by the handler
type SurveyService interface {
	Questions(ctx context.Context) ([]*entities.Question, error)
	Submit(ctx context.Context, memberID string, req *services.SubmitRequest) (*entities.Submission, error)
}

// SurveyHandler serves the questionnaire and records submissions
type SurveyHandler struct {
	service SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(service SurveyService) *SurveyHandler {
	return &SurveyHandler{service: service}
}

// ListQuestions handles GET /api/questions
func (h *SurveyHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.Questions(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	})
}

// SubmitSurvey handles POST /api/members/{id}/submissions
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	memberID := r.PathValue("id")

	var req services.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	submission, err := h.service.Submit(r.Context(), memberID, &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"id":           submission.ID,
		"member_id":    submission.MemberID,
		"submitted_at": submission.SubmittedAt,
		"answers":      len(submission.Answers),
	})
}
