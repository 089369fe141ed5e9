package routes

import (
	"net/http"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/api/middleware"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	surveyHandler       *handlers.SurveyHandler
	analysisHandler     *handlers.AnalysisHandler
	healthRecordHandler *handlers.HealthRecordHandler
	productHandler      *handlers.ProductHandler

	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	surveyHandler *handlers.SurveyHandler,
	analysisHandler *handlers.AnalysisHandler,
	healthRecordHandler *handlers.HealthRecordHandler,
	productHandler *handlers.ProductHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		surveyHandler:       surveyHandler,
		analysisHandler:     analysisHandler,
		healthRecordHandler: healthRecordHandler,
		productHandler:      productHandler,
		cacheMiddleware:     cacheMiddleware,
		allowedOrigins:      allowedOrigins,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey
	r.mux.HandleFunc("GET /api/questions", r.surveyHandler.ListQuestions)
	r.mux.HandleFunc("POST /api/members/{id}/submissions", r.surveyHandler.SubmitSurvey)

	// Analysis and history
	r.mux.HandleFunc("POST /api/members/{id}/analysis", r.analysisHandler.Analyze)
	r.mux.HandleFunc("GET /api/members/{id}/health-records", r.healthRecordHandler.ListHistory)
	r.mux.HandleFunc("GET /api/members/{id}/health-records/latest", r.healthRecordHandler.GetLatest)

	// Catalog
	r.mux.HandleFunc("GET /api/products", r.productHandler.ListProducts)
	r.mux.HandleFunc("GET /api/products/search", r.productHandler.SearchProducts)
	r.mux.HandleFunc("GET /api/products/{id}", r.productHandler.GetProduct)

	// Middleware wraps inside out. CORS is outermost so cached responses
	// carry CORS headers too.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
