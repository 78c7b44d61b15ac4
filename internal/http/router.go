package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/live-scores-service/internal/http/handlers"
)

// NewRouter registers the scoreboard routes. feed and admin are optional.
func NewRouter(handler *handlers.Handler, feed nethttp.Handler, admin *handlers.AdminHandler, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFound(logger)
	r.MethodNotAllowedHandler = handlers.MethodNotAllowed(logger)

	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/matches", handler.Matches).Methods(nethttp.MethodGet)
	if feed != nil {
		r.Handle("/matches/stream", feed).Methods(nethttp.MethodGet)
	}
	r.HandleFunc("/matches/{id}", handler.MatchByID).Methods(nethttp.MethodGet)
	if admin != nil {
		r.HandleFunc("/admin/reset", admin.ResetMatches).Methods(nethttp.MethodPost)
	}
	return r
}
