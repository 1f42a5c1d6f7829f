package pages

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// pageNamespace matches the namespace the cache decorator derives from Page,
// so InvalidateCache also drops the decorator's lookups.
const pageNamespace = "page"

const filteredListKey = "filtered_list"

// NewPageRepository builds the generic bun repository for pages.
func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Slug
		},
	})
}

// BunPageRepository implements PageRepository with optional caching.
type BunPageRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Page]
	base         repository.Repository[*Page]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunPageRepository creates a page repository without caching.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache creates a page repository with caching services.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRepository(db)
	repo := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = pageNamespace + cache.KeySeparator
	}
	return &BunPageRepository{
		db:           db,
		repo:         repo,
		base:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	if err := r.invalidateLists(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

// List returns the pages matching filter in creation order. Filtered lists
// are cached under a key derived from the filter; the query processors are
// closures and cannot tell filters apart.
func (r *BunPageRepository) List(ctx context.Context, filter Filter) ([]*Page, error) {
	if r.cacheService == nil {
		return r.list(ctx, filter)
	}
	key := r.cachePrefix + filteredListKey + cache.KeySeparator + filter.cacheKey()
	records, err := cache.GetOrFetch(ctx, r.cacheService, key, func(ctx context.Context) ([]*Page, error) {
		return r.list(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	out := make([]*Page, len(records))
	for i, record := range records {
		out[i] = clonePage(record)
	}
	return out, nil
}

func (r *BunPageRepository) list(ctx context.Context, filter Filter) ([]*Page, error) {
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return applyFilter(q, filter)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC").OrderExpr("?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func (r *BunPageRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"slug",
			"title",
			"is_published",
			"is_homepage",
			"sections",
			"sort_order",
			"layout",
			"meta_title",
			"meta_description",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	if err := r.invalidateLists(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return ErrDatabaseRequired
	}
	result, err := r.db.NewDelete().
		Model((*Page)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("page delete rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(id.String())
	}
	return r.InvalidateCache(ctx)
}

// InvalidateCache drops every cached page lookup.
func (r *BunPageRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunPageRepository) invalidateLists(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix+filteredListKey+cache.KeySeparator)
}

func applyFilter(q *bun.SelectQuery, filter Filter) *bun.SelectQuery {
	if filter.Collection != "" {
		q = q.Where("?TableAlias.collection = ?", filter.Collection)
	}
	if filter.Scope != nil {
		q = q.Where("?TableAlias.scope_key = ?", filter.Scope.Key())
	}
	if filter.Slug != "" {
		q = q.Where("?TableAlias.slug = ?", filter.Slug)
	}
	if filter.PublishedOnly {
		q = q.Where("?TableAlias.is_published = ?", true)
	}
	if filter.HomepageOnly {
		q = q.Where("?TableAlias.is_homepage = ?", true)
	}
	return q
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound(key)
	}
	return fmt.Errorf("page repository error: %w", err)
}
