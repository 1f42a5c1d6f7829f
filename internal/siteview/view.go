package siteview

import (
	"context"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/layouts"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

// Request asks for the view of a target.
type Request struct {
	Target  Target
	PageID  uuid.UUID
	Slug    string
	Builtin string
	Viewer  domain.Viewer
}

// Listing is the catalog content shown by built-in views and the default view.
type Listing struct {
	Products []interfaces.CatalogItem `json:"products,omitempty"`
	Services []interfaces.CatalogItem `json:"services,omitempty"`
}

// View is a fully composed entity view.
type View struct {
	Collection  domain.Collection     `json:"collection"`
	Scope       string                `json:"scope"`
	Page        *pages.Page           `json:"page,omitempty"`
	Builtin     string                `json:"builtin,omitempty"`
	DefaultView bool                  `json:"default_view"`
	Navigation  []navigation.TreeNode `json:"navigation"`
	Plan        layouts.RenderPlan    `json:"plan"`
	Listing     *Listing              `json:"listing,omitempty"`
}

// NavigationConfig overrides the synthetic item defaults.
type NavigationConfig struct {
	ProductsLabel string
	ServicesLabel string
	ProductsOrder int
	ServicesOrder int
}

// Composer turns a snapshot into a view. It performs no I/O.
type Composer struct {
	renderer      *sections.Renderer
	navigation    NavigationConfig
	defaultLayout int
	basePath      func(Target) string
	logger        interfaces.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithRenderer sets the section renderer.
func WithRenderer(renderer *sections.Renderer) ComposerOption {
	return func(c *Composer) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithNavigationConfig sets synthetic item labels and orders.
func WithNavigationConfig(cfg NavigationConfig) ComposerOption {
	return func(c *Composer) {
		c.navigation = cfg
	}
}

// WithDefaultLayout sets the layout used when a page selects none.
func WithDefaultLayout(layout int) ComposerOption {
	return func(c *Composer) {
		c.defaultLayout = layout
	}
}

// WithBasePath sets how navigation hrefs are prefixed per target.
func WithBasePath(fn func(Target) string) ComposerOption {
	return func(c *Composer) {
		if fn != nil {
			c.basePath = fn
		}
	}
}

// WithComposerLogger sets the composer logger.
func WithComposerLogger(logger interfaces.Logger) ComposerOption {
	return func(c *Composer) {
		c.logger = logging.Ensure(logger)
	}
}

// NewComposer constructs a composer.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		defaultLayout: int(layouts.Standard),
		basePath:      DefaultBasePath,
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = sections.NewRenderer(sections.WithLogger(c.logger))
	}
	return c
}

// DefaultBasePath maps targets to "/", "/s/{store}" or "/{type}/{id}".
func DefaultBasePath(target Target) string {
	switch target.Scope.Kind {
	case domain.ScopeEntity:
		return "/" + target.Scope.EntityType + "/" + target.Scope.EntityID
	case domain.ScopeStore:
		return "/s/" + target.Scope.StoreID
	default:
		return "/"
	}
}

// Compose resolves the requested page, builds the navigation and arranges
// the blocks. Only pages.NotFoundError is returned for unresolvable requests.
func (c *Composer) Compose(ctx context.Context, snapshot *Snapshot, req Request) (*View, error) {
	target := snapshot.Target
	resolver := pages.NewResolver(pages.NewSnapshot(snapshot.Pages), c.logger)
	resolution, err := resolver.Resolve(ctx, pages.Request{
		Collection: target.Collection,
		Scope:      target.Scope,
		ID:         req.PageID,
		Slug:       req.Slug,
		Builtin:    req.Builtin,
		Viewer:     req.Viewer,
	})
	if err != nil {
		return nil, err
	}

	view := &View{
		Collection:  target.Collection,
		Scope:       target.Scope.Key(),
		Page:        resolution.Page,
		Builtin:     resolution.Builtin,
		DefaultView: resolution.DefaultView,
	}

	nodes := navigation.Build(snapshot.Items, navigation.Options{
		HasProducts:   snapshot.Presence.HasProducts,
		HasServices:   snapshot.Presence.HasServices,
		PageSlugs:     pageSlugs(snapshot.Pages, req.Viewer),
		BasePath:      c.basePath(target),
		ProductsLabel: c.navigation.ProductsLabel,
		ServicesLabel: c.navigation.ServicesLabel,
		ProductsOrder: c.navigation.ProductsOrder,
		ServicesOrder: c.navigation.ServicesOrder,
		Logger:        c.logger,
	})
	active := navigation.View{Builtin: resolution.Builtin}
	if resolution.Page != nil {
		active.PageSlug = resolution.Page.Slug
	}
	view.Navigation = navigation.Tree(navigation.MarkActive(nodes, active))

	layout := c.defaultLayout
	var fragments []sections.Fragment
	if resolution.Page != nil {
		fragments = c.renderer.RenderAll(resolution.Page.Sections)
		if resolution.Page.Layout != 0 {
			layout = resolution.Page.Layout
		}
	}
	view.Plan = layouts.Compose(layout, blocksFor(snapshot, resolution.Page, fragments))

	switch {
	case resolution.DefaultView:
		view.Listing = &Listing{Products: snapshot.Products, Services: snapshot.Services}
	case resolution.Builtin == pages.BuiltinProducts:
		view.Listing = &Listing{Products: snapshot.Products}
	case resolution.Builtin == pages.BuiltinServices:
		view.Listing = &Listing{Services: snapshot.Services}
	}
	return view, nil
}

// pageSlugs lists the pages a navigation link may point at for viewer.
// Drafts resolve only for editors.
func pageSlugs(records []*pages.Page, viewer domain.Viewer) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(records))
	for _, record := range records {
		if record != nil && record.VisibleTo(viewer) {
			out[record.ID] = record.Slug
		}
	}
	return out
}

func blocksFor(snapshot *Snapshot, page *pages.Page, fragments []sections.Fragment) layouts.Blocks {
	profile := snapshot.Profile
	hero := profile.Hero
	if hero.Title == "" && page != nil {
		hero.Title = page.Title
	}
	if hero.Image == "" && len(snapshot.Photos) > 0 {
		hero.Image = snapshot.Photos[0].URL
	}
	return layouts.Blocks{
		Hero:              hero,
		ClaimedProvider:   profile.ClaimedProvider,
		LocalContext:      profile.LocalContext,
		Sections:          fragments,
		FAQs:              profile.FAQs,
		RelatedItems:      profile.RelatedItems,
		ExternalResources: profile.ExternalResources,
		ClaimCTA:          profile.ClaimCTA,
	}
}
