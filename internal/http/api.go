package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/siteview"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/rs/cors"
)

// ViewerFunc decides whether a request may see drafts. Authentication lives
// in the host application.
type ViewerFunc func(r *http.Request) domain.Viewer

// SiteAPI serves composed views and navigation trees.
type SiteAPI struct {
	basePath    string
	views       *siteview.Service
	pages       pages.Service
	viewer      ViewerFunc
	corsOrigins []string
	logger      interfaces.Logger
}

// Option mutates the SiteAPI configuration.
type Option func(*SiteAPI)

// NewSiteAPI constructs a SiteAPI instance.
func NewSiteAPI(views *siteview.Service, opts ...Option) *SiteAPI {
	api := &SiteAPI{
		basePath: "/api",
		views:    views,
		viewer:   func(*http.Request) domain.Viewer { return domain.ViewerPublic },
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *SiteAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = joinPath(trimmed, "")
		}
	}
}

// WithPageService enables the page listing route.
func WithPageService(service pages.Service) Option {
	return func(api *SiteAPI) {
		api.pages = service
	}
}

// WithViewer installs the viewer resolver.
func WithViewer(fn ViewerFunc) Option {
	return func(api *SiteAPI) {
		if fn != nil {
			api.viewer = fn
		}
	}
}

// WithCORSOrigins enables CORS for the listed origins.
func WithCORSOrigins(origins ...string) Option {
	return func(api *SiteAPI) {
		for _, origin := range origins {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				api.corsOrigins = append(api.corsOrigins, trimmed)
			}
		}
	}
}

// WithLogger overrides the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *SiteAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Handler builds the router.
func (api *SiteAPI) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api.requestFields)
	if len(api.corsOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: api.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}).Handler)
	}

	r.Route(joinPath(api.basePath, "sites/{scope}"), func(sr chi.Router) {
		sr.Get("/view", api.handleView)
		sr.Get("/navigation", api.handleNavigation)
		sr.Get("/pages", api.handlePages)
	})
	return r
}

func (api *SiteAPI) requestFields(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.ContextWithFields(r.Context(), map[string]any{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
