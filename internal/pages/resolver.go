package pages

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

// Builtin views are catalog listings that exist without a page record.
const (
	BuiltinProducts = "products"
	BuiltinServices = "services"
)

// Request asks the resolver for the page to render within a scope.
type Request struct {
	Collection domain.Collection
	Scope      domain.Scope
	ID         uuid.UUID
	Slug       string
	Builtin    string
	Viewer     domain.Viewer
}

// Resolution is what the caller renders. Exactly one of Page, Builtin or
// DefaultView is set.
type Resolution struct {
	Page        *Page
	Builtin     string
	DefaultView bool
	// Ambiguous is set when more than one page shares the requested slug.
	Ambiguous bool
}

// PageLister is the read side of the page store the resolver depends on.
type PageLister interface {
	List(ctx context.Context, filter Filter) ([]*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
}

// Resolver maps requests to pages, built-in views or the default view.
type Resolver struct {
	pages  PageLister
	logger interfaces.Logger
}

// NewResolver constructs a resolver reading from pages.
func NewResolver(pages PageLister, logger interfaces.Logger) *Resolver {
	return &Resolver{
		pages:  pages,
		logger: logging.Ensure(logger),
	}
}

// Resolve applies, in order: slug lookup, id lookup, built-in view, homepage.
// A requested slug never falls back to the id. An id only resolves pages of
// the requested collection and scope. A scope without a homepage resolves to
// the default view rather than an error. NotFoundError is the only error
// produced by the lookup itself; store failures are returned wrapped.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	collection, err := domain.NormalizeCollection(string(req.Collection))
	if err != nil {
		return nil, err
	}
	logger := logging.WithScope(r.logger, string(collection), req.Scope.Key())

	if slug := strings.TrimSpace(req.Slug); slug != "" {
		filter := ScopeFilter(collection, req.Scope)
		filter.Slug = slug
		filter.PublishedOnly = !req.Viewer.CanSeeDrafts()
		matches, err := r.pages.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, notFound(slug)
		}
		resolution := &Resolution{Page: matches[0]}
		if len(matches) > 1 {
			resolution.Ambiguous = true
			logging.WithFields(logger, map[string]any{
				"slug":    slug,
				"matches": len(matches),
				"page_id": matches[0].ID,
			}).Warn("pages.resolve.ambiguous_slug")
		}
		return resolution, nil
	}

	if req.ID != uuid.Nil {
		page, err := r.pages.Get(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if page.Collection != collection || page.ScopeKey != req.Scope.Key() {
			logging.WithFields(logger, map[string]any{
				"page_id":         req.ID,
				"page_collection": page.Collection,
				"page_scope":      page.ScopeKey,
			}).Debug("pages.resolve.scope_mismatch")
			return nil, notFound(req.ID.String())
		}
		if !page.VisibleTo(req.Viewer) {
			return nil, notFound(req.ID.String())
		}
		return &Resolution{Page: page}, nil
	}

	if raw := strings.TrimSpace(req.Builtin); raw != "" {
		builtin, ok := NormalizeBuiltin(raw)
		if !ok {
			return nil, &NotFoundError{Resource: "builtin view", Key: raw}
		}
		return &Resolution{Builtin: builtin}, nil
	}

	filter := ScopeFilter(collection, req.Scope)
	filter.PublishedOnly = true
	filter.HomepageOnly = true
	homepages, err := r.pages.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(homepages) == 0 {
		logger.Debug("pages.resolve.default_view")
		return &Resolution{DefaultView: true}, nil
	}
	if len(homepages) > 1 {
		logging.WithFields(logger, map[string]any{
			"matches": len(homepages),
			"page_id": homepages[0].ID,
		}).Warn("pages.resolve.ambiguous_homepage")
	}
	return &Resolution{Page: homepages[0]}, nil
}

// NormalizeBuiltin maps a requested built-in view name onto BuiltinProducts
// or BuiltinServices. Any other name reports false.
func NormalizeBuiltin(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case BuiltinProducts:
		return BuiltinProducts, true
	case BuiltinServices:
		return BuiltinServices, true
	default:
		return "", false
	}
}

// IsNotFound reports whether err means the page does not exist for the viewer.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
