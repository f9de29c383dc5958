// Package web wires the HTTP API: transliteration of submitted text, speech
// transcription via the ASR collaborator, history listing, and feedback.
package web

import (
	"log/slog"
	"net/http"

	"github.com/tinig-app/tinig/internal/asr"
	"github.com/tinig-app/tinig/internal/db"
	"github.com/tinig-app/tinig/internal/web/handlers"
	"github.com/tinig-app/tinig/internal/web/middleware"
)

type Router struct {
	repo           db.Repository
	log            *slog.Logger
	transcriber    asr.Transcriber
	allowedOrigins []string
}

func NewRouter(repo db.Repository, log *slog.Logger, transcriber asr.Transcriber, allowedOrigins []string) *Router {
	return &Router{
		repo:           repo,
		log:            log,
		transcriber:    transcriber,
		allowedOrigins: allowedOrigins,
	}
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	transliterationHandler := handlers.NewTransliterationHandler(r.repo, r.log)
	transcriptionHandler := handlers.NewTranscriptionHandler(r.repo, r.log, r.transcriber)
	feedbackHandler := handlers.NewFeedbackHandler(r.repo, r.log)

	rateLimiter := middleware.NewRateLimiter(30, 60)

	mux.Handle("GET /api/v1/transliterations",
		middleware.Chain(
			http.HandlerFunc(transliterationHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("GET /api/v1/transliterations/{id}",
		middleware.Chain(
			http.HandlerFunc(transliterationHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	mux.Handle("POST /api/v1/transliterations",
		middleware.Chain(
			http.HandlerFunc(transliterationHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
		),
	)

	mux.Handle("POST /api/v1/transcriptions",
		middleware.Chain(
			http.HandlerFunc(transcriptionHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
		),
	)

	mux.Handle("POST /api/v1/transliterations/{id}/feedback",
		middleware.Chain(
			http.HandlerFunc(feedbackHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
		),
	)

	mux.Handle("GET /api/v1/transliterations/{id}/feedback",
		middleware.Chain(
			http.HandlerFunc(feedbackHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
		),
	)

	return middleware.CORS(mux, r.allowedOrigins)
}
