package insights

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	analyticsapp "github.com/formbase/formbase-services/api/internal/analytics/application"
)

// Handler wires owner-facing analytics endpoints to application services.
type Handler struct {
	logger    *log.Logger
	templates analyticsapp.TemplateRepository
	analytics analyticsapp.AnalyticsService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Templates analyticsapp.TemplateRepository
	Analytics analyticsapp.AnalyticsService
}

// NewHandler constructs the analytics HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		templates: cfg.Templates,
		analytics: cfg.Analytics,
	}
}

// Register mounts analytics routes onto the router. All routes require an
// authenticated user.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/templates/{id}/analytics", h.templateAnalyticsHandler())
}
