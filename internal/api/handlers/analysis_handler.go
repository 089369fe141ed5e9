package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// AnalysisService defines the analysis operation used by the handler
type AnalysisService interface {
	AnalyzeAndRecommend(ctx context.Context, memberID string) (*entities.RecommendationResult, error)
}

// AnalysisHandler runs the recommendation engine for a member
type AnalysisHandler struct {
	service AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze handles POST /api/members/{id}/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.AnalyzeAndRecommend(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
