package navigation

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// itemNamespace matches the namespace the cache decorator derives from Item,
// so InvalidateCache also drops the decorator's lookups.
const itemNamespace = "item"

const filteredListKey = "filtered_list"

// NewItemRepository builds the generic bun repository for navigation items.
func NewItemRepository(db *bun.DB) repository.Repository[*Item] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Item]{
		NewRecord: func() *Item { return &Item{} },
		GetID: func(i *Item) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Item, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(i *Item) string {
			return i.ID.String()
		},
	})
}

// BunItemRepository implements ItemRepository with optional caching.
type BunItemRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Item]
	base         repository.Repository[*Item]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunItemRepository creates an item repository without caching.
func NewBunItemRepository(db *bun.DB) *BunItemRepository {
	return NewBunItemRepositoryWithCache(db, nil, nil)
}

// NewBunItemRepositoryWithCache creates an item repository with caching services.
func NewBunItemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunItemRepository {
	base := NewItemRepository(db)
	repo := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		repo = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = itemNamespace + cache.KeySeparator
	}
	return &BunItemRepository{
		db:           db,
		repo:         repo,
		base:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunItemRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	record, err := r.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("navigation item repository error: %w", err)
	}
	if err := r.invalidateLists(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// List returns the items matching filter ordered by sort order then id.
// Filtered lists are cached under a key derived from the filter.
func (r *BunItemRepository) List(ctx context.Context, filter Filter) ([]*Item, error) {
	if r.cacheService == nil {
		return r.list(ctx, filter)
	}
	key := r.cachePrefix + filteredListKey + cache.KeySeparator + filter.cacheKey()
	records, err := cache.GetOrFetch(ctx, r.cacheService, key, func(ctx context.Context) ([]*Item, error) {
		return r.list(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	out := make([]*Item, len(records))
	for i, record := range records {
		out[i] = cloneItem(record)
	}
	return out, nil
}

func (r *BunItemRepository) list(ctx context.Context, filter Filter) ([]*Item, error) {
	records, _, err := r.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return applyFilter(q, filter)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sort_order ASC").OrderExpr("?TableAlias.id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

func (r *BunItemRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	record, err := r.repo.Update(ctx, item,
		repository.UpdateByID(item.ID.String()),
		repository.UpdateColumns(
			"label",
			"sort_order",
			"link_type",
			"target",
			"parent_id",
			"is_visible",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, item.ID.String())
	}
	if err := r.invalidateLists(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("navigation item repository: database not configured")
	}
	result, err := r.db.NewDelete().
		Model((*Item)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete navigation item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("navigation item delete rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(id.String())
	}
	return r.InvalidateCache(ctx)
}

// DetachTarget clears the target of every page link pointing at pageID in a
// single statement and returns the number of detached items.
func (r *BunItemRepository) DetachTarget(ctx context.Context, pageID uuid.UUID, detachedAt time.Time) (int, error) {
	if r.db == nil {
		return 0, fmt.Errorf("navigation item repository: database not configured")
	}
	var affected int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*Item)(nil)).
			Set("target = ?", "").
			Set("updated_at = ?", detachedAt).
			Where("link_type = ?", LinkPage).
			Where("target = ?", pageID.String()).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("detach navigation targets: %w", err)
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	if err := r.InvalidateCache(ctx); err != nil {
		return int(affected), err
	}
	return int(affected), nil
}

// InvalidateCache drops every cached navigation lookup.
func (r *BunItemRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunItemRepository) invalidateLists(ctx context.Context) error {
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
	if filter.LinkType != "" {
		q = q.Where("?TableAlias.link_type = ?", filter.LinkType)
	}
	if filter.Target != "" {
		q = q.Where("?TableAlias.target = ?", filter.Target)
	}
	if filter.ParentID != nil {
		q = q.Where("?TableAlias.parent_id = ?", *filter.ParentID)
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
	return fmt.Errorf("navigation item repository error: %w", err)
}
