package reportserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"shici/internal/ledger"
	"shici/internal/quiz"
	"shici/internal/report"
)

// Source provides recorded results.
type Source interface {
	Recent(ctx context.Context, limit int) ([]ledger.Entry, error)
	Get(ctx context.Context, sessionID string) (quiz.Result, error)
}

// NewHandler builds the router for the history pages and JSON endpoints.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Source == nil {
		return nil, errors.New("reportserver: source is required")
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = ledger.DefaultLimit
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", historyPage(cfg.Source, limit))
	r.Get("/results/{sessionID}", resultPage(cfg.Source))
	r.Route("/api/results", func(api chi.Router) {
		api.Get("/", listResults(cfg.Source, limit))
		api.Get("/{sessionID}", getResult(cfg.Source))
	})
	return r, nil
}

func historyPage(source Source, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := source.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = report.HistoryPage(entries).Render(r.Context(), w)
	}
}

func resultPage(source Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := source.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = report.ResultPage(result).Render(r.Context(), w)
	}
}

func listResults(source Source, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}
		entries, err := source.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []ledger.Entry{}
		}
		writeJSON(w, entries)
	}
}

func getResult(source Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := source.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, result)
	}
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}

func statusFor(err error) int {
	if errors.Is(err, ledger.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
