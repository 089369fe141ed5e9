package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/application/services"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/errors"
)

type stubAnalysisService struct {
	result *entities.RecommendationResult
	err    error
	member string
}

func (s *stubAnalysisService) AnalyzeAndRecommend(ctx context.Context, memberID string) (*entities.RecommendationResult, error) {
	s.member = memberID
	return s.result, s.err
}

func serve(pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	service := &stubAnalysisService{result: &entities.RecommendationResult{
		BMI:        22.49,
		RiskLevels: map[entities.HealthDomain]entities.RiskLevel{entities.DomainCirculation: entities.RiskMedium},
		RecommendedIngredients: []entities.IngredientScore{
			{Name: "오메가-3", Score: 5.0, RawScore: 5},
		},
		Recommendations: []entities.ProductRecommendation{},
	}}
	handler := handlers.NewAnalysisHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/members/member-1/analysis", nil)
	w := serve("POST /api/members/{id}/analysis", handler.Analyze, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "member-1", service.member)

	body := decodeBody(t, w)
	assert.Equal(t, 22.49, body["bmi"])
	assert.Equal(t, map[string]interface{}{"circulation": "MEDIUM"}, body["riskLevels"])
	assert.Equal(t, []interface{}{}, body["recommendations"])
}

func TestAnalysisHandler_ErrorMapping(t *testing.T) {
	missing := &analysis.MissingDemographicsError{Fields: []string{"age"}}
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"no submission", apperrors.NewNotFoundError("no survey submission for member m-1"), http.StatusNotFound, "no survey submission for member m-1"},
		{"missing demographics", apperrors.NewUnprocessableError(missing.Error(), missing), http.StatusUnprocessableEntity, "missing demographics: age"},
		{"validation", apperrors.NewValidationError("member id is required"), http.StatusBadRequest, "member id is required"},
		{"internal", apperrors.NewInternalError("failed to list products", errors.New("conn refused")), http.StatusInternalServerError, "internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewAnalysisHandler(&stubAnalysisService{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/members/m-1/analysis", nil)
			w := serve("POST /api/members/{id}/analysis", handler.Analyze, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, decodeBody(t, w)["error"])
		})
	}
}

type stubSurveyService struct {
	questions []*entities.Question
	req       *services.SubmitRequest
	err       error
}

func (s *stubSurveyService) Questions(ctx context.Context) ([]*entities.Question, error) {
	return s.questions, s.err
}

func (s *stubSurveyService) Submit(ctx context.Context, memberID string, req *services.SubmitRequest) (*entities.Submission, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Submission{ID: "sub-1", MemberID: memberID, Answers: make([]entities.Answer, len(req.Answers))}, nil
}

func TestSurveyHandler_SubmitSurvey(t *testing.T) {
	service := &stubSurveyService{}
	handler := handlers.NewSurveyHandler(service)

	body := `{"answers":[{"question_id":"q-age","text":"42"},{"question_id":"q-circ","option_ids":["opt-c1"]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/members/m-1/submissions", strings.NewReader(body))
	w := serve("POST /api/members/{id}/submissions", handler.SubmitSurvey, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "sub-1", resp["id"])
	assert.Equal(t, "m-1", resp["member_id"])
	assert.Equal(t, float64(2), resp["answers"])
	require.NotNil(t, service.req)
	assert.Equal(t, []string{"opt-c1"}, service.req.Answers[1].OptionIDs)
}

func TestSurveyHandler_SubmitSurvey_InvalidPayload(t *testing.T) {
	handler := handlers.NewSurveyHandler(&stubSurveyService{})

	req := httptest.NewRequest(http.MethodPost, "/api/members/m-1/submissions", strings.NewReader("{"))
	w := serve("POST /api/members/{id}/submissions", handler.SubmitSurvey, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request payload", decodeBody(t, w)["error"])
}

func TestSurveyHandler_ListQuestions(t *testing.T) {
	handler := handlers.NewSurveyHandler(&stubSurveyService{questions: []*entities.Question{
		{ID: "q-age", Text: "나이를 알려주세요", Type: entities.QuestionTypeText, SubCategory: entities.SubCategoryAge},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	w := serve("GET /api/questions", handler.ListQuestions, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

type stubHealthRecordService struct {
	limit, offset int
}

func (s *stubHealthRecordService) Latest(ctx context.Context, memberID string) (*entities.HealthRecord, error) {
	return nil, apperrors.NewNotFoundError("no health record for member " + memberID)
}

func (s *stubHealthRecordService) History(ctx context.Context, memberID string, limit, offset int) ([]*entities.HealthRecord, error) {
	s.limit, s.offset = limit, offset
	return []*entities.HealthRecord{{ID: "hr-1", MemberID: memberID}}, nil
}

func TestHealthRecordHandler(t *testing.T) {
	service := &stubHealthRecordService{}
	handler := handlers.NewHealthRecordHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/members/m-1/health-records?limit=5&offset=10", nil)
	w := serve("GET /api/members/{id}/health-records", handler.ListHistory, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, service.limit)
	assert.Equal(t, 10, service.offset)

	req = httptest.NewRequest(http.MethodGet, "/api/members/m-1/health-records?limit=abc", nil)
	w = serve("GET /api/members/{id}/health-records", handler.ListHistory, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/members/m-1/health-records/latest", nil)
	w = serve("GET /api/members/{id}/health-records/latest", handler.GetLatest, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubCatalogService struct {
	params repositories.ProductSearchParams
}

func (s *stubCatalogService) List(ctx context.Context) ([]*entities.Product, error) {
	return []*entities.Product{{ID: "p-1"}, {ID: "p-2"}}, nil
}

func (s *stubCatalogService) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	if id != "p-1" {
		return nil, apperrors.NewNotFoundError("product with id " + id + " not found")
	}
	return &entities.Product{ID: "p-1", Name: "본 케어"}, nil
}

func (s *stubCatalogService) Search(ctx context.Context, params repositories.ProductSearchParams) ([]*entities.Product, int, error) {
	s.params = params
	return []*entities.Product{{ID: "p-1"}}, 4, nil
}

func TestProductHandler(t *testing.T) {
	service := &stubCatalogService{}
	handler := handlers.NewProductHandler(service)

	w := serve("GET /api/products", handler.ListProducts, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	w = serve("GET /api/products/{id}", handler.GetProduct, httptest.NewRequest(http.MethodGet, "/api/products/p-9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?ingredient=%EC%B9%BC%EC%8A%98&limit=3", nil)
	w = serve("GET /api/products/search", handler.SearchProducts, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "칼슘", service.params.Ingredient)
	assert.Equal(t, 3, service.params.Limit)
	assert.Equal(t, float64(4), decodeBody(t, w)["total"])
}
