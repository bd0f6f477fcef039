package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/localbites/localbites-services/api/internal/directory/application"
)

// Handler wires the directory HTTP endpoints to application services.
type Handler struct {
	logger       *logrus.Logger
	stores       application.StoreService
	storeQueries application.StoreQueryService
	users        application.UserService
	reviews      application.ReviewService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *logrus.Logger
	Stores       application.StoreService
	StoreQueries application.StoreQueryService
	Users        application.UserService
	Reviews      application.ReviewService
}

// NewHandler constructs the directory HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		stores:       cfg.Stores,
		storeQueries: cfg.StoreQueries,
		users:        cfg.Users,
		reviews:      cfg.Reviews,
	}
}

// Register mounts all routes onto the router. Write routes and anything that
// touches the caller's own record go through the auth middleware.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/search", h.storeSearchHandler())
	r.Get("/stores/near", h.storeNearHandler())
	r.Get("/stores/top", h.storeTopHandler())
	r.Get("/stores/{slug}", h.storeDetailHandler())
	r.Get("/tags", h.tagDirectoryHandler())
	r.Get("/tags/{tag}", h.tagDirectoryHandler())

	r.With(authMiddleware).Post("/stores", h.storeCreateHandler())
	r.With(authMiddleware).Put("/stores/{id}", h.storeUpdateHandler())
	r.With(authMiddleware).Post("/stores/{id}/heart", h.heartToggleHandler())
	r.With(authMiddleware).Get("/hearts", h.heartedStoresHandler())
	r.With(authMiddleware).Post("/stores/{id}/reviews", h.reviewCreateHandler())
}
