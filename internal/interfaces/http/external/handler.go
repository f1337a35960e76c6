package external

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	analyticsapp "github.com/formbase/formbase-services/api/internal/analytics/application"
)

// Handler wires the API-token facing endpoints to application services.
type Handler struct {
	logger   *log.Logger
	external analyticsapp.ExternalService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   *log.Logger
	External analyticsapp.ExternalService
}

// NewHandler constructs the external HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		external: cfg.External,
	}
}

// Register mounts the token-authenticated external routes onto the router.
func (h *Handler) Register(r chi.Router, tokenMiddleware func(http.Handler) http.Handler) {
	r.Route("/external", func(r chi.Router) {
		r.Use(tokenMiddleware)
		r.Get("/templates", h.templateListHandler())
		r.Get("/templates/{id}", h.templateDetailHandler())
	})
}
