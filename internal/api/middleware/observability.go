package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
)

// ObservabilityMiddleware opens a span per request and records request metrics
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeName(r)

			ctx, span := observability.StartSpan(r.Context(), r.Method+" "+route)
			defer span.End()

			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.user_agent", r.UserAgent()),
			)

			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r.WithContext(ctx))

			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, time.Since(start))
			observability.SetSpanAttributes(span, attribute.Int("http.status_code", rw.statusCode))
		})
	}
}

// routeName collapses member ids so metric labels stay low-cardinality
func routeName(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	if memberID := memberIDFromPath(r.URL.Path); memberID != "" {
		return "/api/members/{id}" + r.URL.Path[len("/api/members/")+len(memberID):]
	}
	return r.URL.Path
}
