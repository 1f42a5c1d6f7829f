package pages

import (
	"time"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page is one document of ordered sections. All four collections share the
// table; the collection fixes which scope kind the record carries.
type Page struct {
	bun.BaseModel `bun:"table:site_pages,alias:sp"`

	ID              uuid.UUID          `bun:",pk,type:uuid" json:"id"`
	Collection      domain.Collection  `bun:"collection,notnull" json:"collection"`
	ScopeKind       domain.ScopeKind   `bun:"scope_kind,notnull" json:"scope_kind"`
	ScopeKey        string             `bun:"scope_key,notnull" json:"scope_key"`
	EntityType      string             `bun:"entity_type" json:"entity_type,omitempty"`
	EntityID        string             `bun:"entity_id" json:"entity_id,omitempty"`
	StoreID         string             `bun:"store_id" json:"store_id,omitempty"`
	Slug            string             `bun:"slug,notnull" json:"slug"`
	Title           string             `bun:"title,notnull" json:"title"`
	IsPublished     bool               `bun:"is_published,notnull,default:false" json:"is_published"`
	IsHomepage      bool               `bun:"is_homepage,notnull,default:false" json:"is_homepage"`
	Sections        []sections.Section `bun:"sections,type:jsonb,notnull" json:"sections"`
	Order           int                `bun:"sort_order,notnull,default:0" json:"order"`
	Layout          int                `bun:"layout,notnull,default:0" json:"layout,omitempty"`
	MetaTitle       string             `bun:"meta_title" json:"meta_title,omitempty"`
	MetaDescription string             `bun:"meta_description" json:"meta_description,omitempty"`
	CreatedAt       time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Scope rebuilds the owning scope from the stored columns.
func (p *Page) Scope() domain.Scope {
	if p == nil {
		return domain.GlobalScope()
	}
	return domain.Scope{
		Kind:       p.ScopeKind,
		EntityType: p.EntityType,
		EntityID:   p.EntityID,
		StoreID:    p.StoreID,
	}
}

// VisibleTo reports whether viewer may see the page.
func (p *Page) VisibleTo(viewer domain.Viewer) bool {
	return p != nil && (p.IsPublished || viewer.CanSeeDrafts())
}

func (p *Page) setScope(scope domain.Scope) {
	p.ScopeKind = scope.Kind
	if p.ScopeKind == "" {
		p.ScopeKind = domain.ScopeGlobal
	}
	p.ScopeKey = scope.Key()
	p.EntityType = scope.EntityType
	p.EntityID = scope.EntityID
	p.StoreID = scope.StoreID
}

func clonePage(p *Page) *Page {
	if p == nil {
		return nil
	}
	cloned := *p
	if p.Sections != nil {
		cloned.Sections = append([]sections.Section(nil), p.Sections...)
	}
	return &cloned
}
