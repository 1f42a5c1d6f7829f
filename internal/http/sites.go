package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/siteview"
)

type pageSummary struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	IsPublished bool   `json:"is_published"`
	IsHomepage  bool   `json:"is_homepage"`
	Order       int    `json:"order"`
}

func (api *SiteAPI) handleView(w http.ResponseWriter, r *http.Request) {
	if api.views == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	req, err := api.viewRequest(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	view, err := api.views.View(r.Context(), req)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *SiteAPI) handleNavigation(w http.ResponseWriter, r *http.Request) {
	if api.views == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	req, err := api.viewRequest(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	tree, err := api.views.Navigation(r.Context(), req)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"navigation": tree})
}

func (api *SiteAPI) handlePages(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	target, err := parseTarget(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	records, err := api.pages.List(r.Context(), pages.ScopeFilter(target.Collection, target.Scope))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	viewer := api.viewer(r)
	out := make([]pageSummary, 0, len(records))
	for _, record := range records {
		if !record.VisibleTo(viewer) {
			continue
		}
		out = append(out, pageSummary{
			ID:          record.ID.String(),
			Slug:        record.Slug,
			Title:       record.Title,
			IsPublished: record.IsPublished,
			IsHomepage:  record.IsHomepage,
			Order:       record.Order,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": out})
}

func (api *SiteAPI) viewRequest(r *http.Request) (siteview.Request, error) {
	target, err := parseTarget(r)
	if err != nil {
		return siteview.Request{}, err
	}
	query := r.URL.Query()
	req := siteview.Request{
		Target:  target,
		Slug:    strings.TrimSpace(query.Get("slug")),
		Builtin: strings.TrimSpace(query.Get("builtin")),
		Viewer:  api.viewer(r),
	}
	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return siteview.Request{}, badRequest("page must be a uuid")
		}
		req.PageID = id
	}
	return req, nil
}

func parseTarget(r *http.Request) (siteview.Target, error) {
	scope, err := domain.ParseScope(chi.URLParam(r, "scope"))
	if err != nil {
		return siteview.Target{}, err
	}
	collection := domain.DefaultCollection(scope.Kind)
	if raw := strings.TrimSpace(r.URL.Query().Get("collection")); raw != "" {
		collection, err = domain.NormalizeCollection(raw)
		if err != nil {
			return siteview.Target{}, err
		}
	}
	if err := scope.ValidateFor(collection); err != nil {
		return siteview.Target{}, err
	}
	return siteview.Target{Collection: collection, Scope: scope}, nil
}

func (api *SiteAPI) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		logging.WithFields(logging.FromContext(r.Context(), api.logger), map[string]any{
			"status": status,
			"error":  err,
		}).Error("http.request.failed")
	}
	writeJSON(w, status, payload)
}
