package pages

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/google/uuid"
)

// PageRepository exposes persistence operations for page records.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	// List returns matching pages in creation order.
	List(ctx context.Context, filter Filter) ([]*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Collection    domain.Collection
	Scope         *domain.Scope
	Slug          string
	PublishedOnly bool
	HomepageOnly  bool
}

// ScopeFilter matches every page of collection in scope.
func ScopeFilter(collection domain.Collection, scope domain.Scope) Filter {
	return Filter{Collection: collection, Scope: &scope}
}

// cacheKey renders every filter field so distinct filters never share a key.
func (f Filter) cacheKey() string {
	scope := "*"
	if f.Scope != nil {
		scope = f.Scope.Key()
	}
	return fmt.Sprintf("collection=%s|scope=%s|slug=%s|published=%t|homepage=%t",
		f.Collection, scope, f.Slug, f.PublishedOnly, f.HomepageOnly)
}

func (f Filter) matches(p *Page) bool {
	if p == nil {
		return false
	}
	if f.Collection != "" && p.Collection != f.Collection {
		return false
	}
	if f.Scope != nil && p.ScopeKey != f.Scope.Key() {
		return false
	}
	if f.Slug != "" && p.Slug != f.Slug {
		return false
	}
	if f.PublishedOnly && !p.IsPublished {
		return false
	}
	if f.HomepageOnly && !p.IsHomepage {
		return false
	}
	return true
}

func sortByCreation(records []*Page) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID.String() < records[j].ID.String()
	})
}
