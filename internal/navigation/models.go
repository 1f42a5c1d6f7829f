package navigation

import (
	"time"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LinkType discriminates what a navigation item points at.
type LinkType string

const (
	LinkPage     LinkType = "page"
	LinkURL      LinkType = "url"
	LinkProducts LinkType = "products"
	LinkServices LinkType = "services"
	LinkHeader   LinkType = "header"
)

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool {
	switch t {
	case LinkPage, LinkURL, LinkProducts, LinkServices, LinkHeader:
		return true
	}
	return false
}

// HasTarget reports whether items of this type carry a target value.
func (t LinkType) HasTarget() bool {
	return t == LinkPage || t == LinkURL
}

// Item is a persisted navigation entry. Items form a tree through ParentID.
type Item struct {
	bun.BaseModel `bun:"table:navigation_items,alias:ni"`

	ID         uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Collection domain.Collection `bun:"collection,notnull" json:"collection"`
	ScopeKind  domain.ScopeKind  `bun:"scope_kind,notnull" json:"scope_kind"`
	ScopeKey   string            `bun:"scope_key,notnull" json:"scope_key"`
	EntityType string            `bun:"entity_type" json:"entity_type,omitempty"`
	EntityID   string            `bun:"entity_id" json:"entity_id,omitempty"`
	StoreID    string            `bun:"store_id" json:"store_id,omitempty"`
	Label      string            `bun:"label,notnull" json:"label"`
	Order      int               `bun:"sort_order,notnull,default:0" json:"order"`
	LinkType   LinkType          `bun:"link_type,notnull" json:"link_type"`
	// Target holds the page id for page links and the address for url links.
	Target    string     `bun:"target" json:"target,omitempty"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	IsVisible bool       `bun:"is_visible,notnull" json:"is_visible"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Scope rebuilds the owning scope from the stored columns.
func (i *Item) Scope() domain.Scope {
	return domain.Scope{
		Kind:       i.ScopeKind,
		EntityType: i.EntityType,
		EntityID:   i.EntityID,
		StoreID:    i.StoreID,
	}
}

// PageID returns the target page of a page link, or uuid.Nil when detached.
func (i *Item) PageID() uuid.UUID {
	if i.LinkType != LinkPage || i.Target == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(i.Target)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (i *Item) setScope(scope domain.Scope) {
	i.ScopeKind = scope.Kind
	if i.ScopeKind == "" {
		i.ScopeKind = domain.ScopeGlobal
	}
	i.ScopeKey = scope.Key()
	i.EntityType = scope.EntityType
	i.EntityID = scope.EntityID
	i.StoreID = scope.StoreID
}

func cloneItem(item *Item) *Item {
	if item == nil {
		return nil
	}
	cloned := *item
	if item.ParentID != nil {
		parent := *item.ParentID
		cloned.ParentID = &parent
	}
	return &cloned
}
