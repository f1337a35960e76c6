package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	searchapp "github.com/formbase/formbase-services/api/internal/search/application"
)

// Handler wires unauthenticated public endpoints to application services.
type Handler struct {
	logger *log.Logger
	search searchapp.SearchService
	tags   searchapp.TagCloudService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger *log.Logger
	Search searchapp.SearchService
	Tags   searchapp.TagCloudService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger: cfg.Logger,
		search: cfg.Search,
		tags:   cfg.Tags,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/search", h.searchHandler())
	r.Get("/tags", h.tagCloudHandler())
}
