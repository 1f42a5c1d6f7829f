package siteview

import (
	"context"
	"fmt"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"golang.org/x/sync/errgroup"
)

// Target names the collection and scope an entity view is built for.
type Target struct {
	Collection domain.Collection
	Scope      domain.Scope
}

// Key identifies the target for in-flight bookkeeping.
func (t Target) Key() string {
	return string(t.Collection) + "|" + t.Scope.Key()
}

// PageSource is the read side of the page store.
type PageSource interface {
	List(ctx context.Context, filter pages.Filter) ([]*pages.Page, error)
}

// NavigationSource is the read side of the navigation store.
type NavigationSource interface {
	List(ctx context.Context, collection domain.Collection, scope domain.Scope) ([]*navigation.Item, error)
}

// Snapshot holds everything fetched for one target.
type Snapshot struct {
	Target   Target
	Pages    []*pages.Page
	Items    []*navigation.Item
	Presence interfaces.CatalogPresence
	Products []interfaces.CatalogItem
	Services []interfaces.CatalogItem
	Profile  interfaces.EntityProfile
	Photos   []interfaces.Photo
}

// Loader fetches a target's records concurrently.
type Loader struct {
	pages    PageSource
	nav      NavigationSource
	catalog  interfaces.CatalogProvider
	entities interfaces.EntityProvider
	logger   interfaces.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCatalog sets the catalog collaborator.
func WithCatalog(provider interfaces.CatalogProvider) LoaderOption {
	return func(l *Loader) {
		l.catalog = provider
	}
}

// WithEntities sets the entity profile collaborator.
func WithEntities(provider interfaces.EntityProvider) LoaderOption {
	return func(l *Loader) {
		l.entities = provider
	}
}

// WithLoaderLogger sets the loader logger.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logging.Ensure(logger)
	}
}

// NewLoader constructs a loader. Catalog and entity collaborators are
// optional; without them the snapshot carries empty values.
func NewLoader(pageSource PageSource, navSource NavigationSource, opts ...LoaderOption) *Loader {
	l := &Loader{
		pages:  pageSource,
		nav:    navSource,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fans out one fetch per source and joins them. The first failure
// cancels the rest and is returned.
func (l *Loader) Load(ctx context.Context, target Target) (*Snapshot, error) {
	collection, err := domain.NormalizeCollection(string(target.Collection))
	if err != nil {
		return nil, err
	}
	if err := target.Scope.ValidateFor(collection); err != nil {
		return nil, err
	}
	target.Collection = collection
	scopeKey := target.Scope.Key()

	snapshot := &Snapshot{Target: target}
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		records, err := l.pages.List(gctx, pages.ScopeFilter(collection, target.Scope))
		if err != nil {
			return fmt.Errorf("load pages: %w", err)
		}
		snapshot.Pages = records
		return nil
	})
	group.Go(func() error {
		items, err := l.nav.List(gctx, collection, target.Scope)
		if err != nil {
			return fmt.Errorf("load navigation: %w", err)
		}
		snapshot.Items = items
		return nil
	})

	if l.catalog != nil {
		group.Go(func() error {
			presence, err := l.catalog.Presence(gctx, scopeKey)
			if err != nil {
				return fmt.Errorf("load catalog presence: %w", err)
			}
			snapshot.Presence = presence
			return nil
		})
		group.Go(func() error {
			products, err := l.catalog.Products(gctx, scopeKey)
			if err != nil {
				return fmt.Errorf("load products: %w", err)
			}
			snapshot.Products = products
			return nil
		})
		group.Go(func() error {
			services, err := l.catalog.Services(gctx, scopeKey)
			if err != nil {
				return fmt.Errorf("load services: %w", err)
			}
			snapshot.Services = services
			return nil
		})
	}

	if l.entities != nil {
		group.Go(func() error {
			profile, err := l.entities.Profile(gctx, scopeKey)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			snapshot.Profile = profile
			return nil
		})
		group.Go(func() error {
			photos, err := l.entities.Photos(gctx, scopeKey)
			if err != nil {
				return fmt.Errorf("load photos: %w", err)
			}
			snapshot.Photos = photos
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		logging.WithFields(logging.WithScope(l.logger, string(collection), scopeKey), map[string]any{
			"error": err,
		}).Warn("siteview.load.failed")
		return nil, err
	}
	return snapshot, nil
}
