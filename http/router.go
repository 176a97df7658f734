// Package http exposes the metrics, loan and recommendation services over a
// JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Metrics         *MetricsHandler
	Loan            *LoanHandler
	Recommendations *RecommendationHandler
}

// NewRouter builds the API router. limiter may be nil to disable rate limiting.
func NewRouter(h Handlers, limiter *RateLimiter, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, log, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Get("/metrics/history", h.Metrics.History)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Post("/metrics", h.Metrics.Assess)
			r.Post("/loan/calculate", h.Loan.CalculateLoan)
			r.Post("/loan/schedule", h.Loan.Schedule)
			r.Post("/recommendations", h.Recommendations.Recommend)
			r.Post("/investment-advice", h.Recommendations.InvestmentAdvice)
			r.Post("/cost-analysis", h.Recommendations.CostAnalysis)
		})
	})

	return r
}

func loggingMiddleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("HTTP request")
		})
	}
}
