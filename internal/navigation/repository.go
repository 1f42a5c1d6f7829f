package navigation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/google/uuid"
)

// ItemRepository exposes persistence operations for navigation items.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Collection domain.Collection
	Scope      *domain.Scope
	LinkType   LinkType
	Target     string
	ParentID   *uuid.UUID
}

// ScopeFilter matches every item of collection in scope.
func ScopeFilter(collection domain.Collection, scope domain.Scope) Filter {
	return Filter{Collection: collection, Scope: &scope}
}

// cacheKey renders every filter field so distinct filters never share a key.
func (f Filter) cacheKey() string {
	scope, parent := "*", "*"
	if f.Scope != nil {
		scope = f.Scope.Key()
	}
	if f.ParentID != nil {
		parent = f.ParentID.String()
	}
	return fmt.Sprintf("collection=%s|scope=%s|link_type=%s|target=%s|parent=%s",
		f.Collection, scope, f.LinkType, f.Target, parent)
}

func (f Filter) matches(item *Item) bool {
	if item == nil {
		return false
	}
	if f.Collection != "" && item.Collection != f.Collection {
		return false
	}
	if f.Scope != nil && item.ScopeKey != f.Scope.Key() {
		return false
	}
	if f.LinkType != "" && item.LinkType != f.LinkType {
		return false
	}
	if f.Target != "" && item.Target != f.Target {
		return false
	}
	if f.ParentID != nil && (item.ParentID == nil || *item.ParentID != *f.ParentID) {
		return false
	}
	return true
}

var ErrNotFound = errors.New("navigation: not found")

// NotFoundError is returned when a navigation item cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(key string) error {
	return &NotFoundError{Resource: "navigation item", Key: key}
}

func sortItems(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}
