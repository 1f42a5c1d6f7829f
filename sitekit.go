// Package sitekit composes entity mini-sites: scoped pages made of typed
// sections, navigation trees and layout compositions.
package sitekit

import (
	"context"
	"net/http"

	"github.com/goliatone/go-sitekit/internal/di"
	sitehttp "github.com/goliatone/go-sitekit/internal/http"
	"github.com/goliatone/go-sitekit/internal/importer"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/siteview"
)

// PageService exports the pages service contract.
type PageService = pages.Service

// NavigationService exports the navigation service contract.
type NavigationService = navigation.Service

// ViewService exports the entity view service.
type ViewService = *siteview.Service

// ViewRequest exports the entity view request.
type ViewRequest = siteview.Request

// View exports the composed entity view.
type View = siteview.View

// ImportOptions exports the Markdown import options.
type ImportOptions = importer.Options

// ImportResult exports the Markdown import result.
type ImportResult = importer.Result

// Module represents the top level sitekit runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Navigation returns the configured navigation service.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Views returns the entity view service.
func (m *Module) Views() ViewService {
	return m.container.SiteviewService()
}

// View composes a single entity view.
func (m *Module) View(ctx context.Context, req ViewRequest) (*View, error) {
	return m.container.SiteviewService().View(ctx, req)
}

// Import loads Markdown pages from the configured content directory. It
// returns ErrMarkdownFeatureRequired when the markdown feature is off.
func (m *Module) Import(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	if m == nil || m.container == nil || m.container.Importer() == nil {
		return nil, ErrMarkdownFeatureRequired
	}
	return m.container.Importer().ImportDirectory(ctx, dir, opts)
}

// HTTPHandler returns the read API routes.
func (m *Module) HTTPHandler(opts ...sitehttp.Option) http.Handler {
	return m.container.SiteAPI(opts...).Handler()
}

// Close releases resources opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
