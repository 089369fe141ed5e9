package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
)

// HealthRecordService defines the history operations used by the handler
type HealthRecordService interface {
	Latest(ctx context.Context, memberID string) (*entities.HealthRecord, error)
	History(ctx context.Context, memberID string, limit, offset int) ([]*entities.HealthRecord, error)
}

// HealthRecordHandler serves a member's analysis history
type HealthRecordHandler struct {
	service HealthRecordService
}

// NewHealthRecordHandler creates a new health record handler
func NewHealthRecordHandler(service HealthRecordService) *HealthRecordHandler {
	return &HealthRecordHandler{service: service}
}

// GetLatest handles GET /api/members/{id}/health-records/latest
func (h *HealthRecordHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Latest(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, record)
}

// ListHistory handles GET /api/members/{id}/health-records
func (h *HealthRecordHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	records, err := h.service.History(r.Context(), r.PathValue("id"), limit, offset)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}
