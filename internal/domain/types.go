package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Collection identifies which page family a record belongs to.
type Collection string

const (
	// CollectionPages holds generic site pages
	CollectionPages Collection = "pages"
	// CollectionStorePages holds pages owned by a single store
	CollectionStorePages Collection = "store_pages"
	// CollectionServicePages holds per-service marketing pages
	CollectionServicePages Collection = "service_pages"
	// CollectionEntityPages holds mini-site pages attached to an entity
	CollectionEntityPages Collection = "entity_pages"
)

// ScopeKind names the owner a slug must be unique within.
type ScopeKind string

const (
	ScopeGlobal ScopeKind = "global"
	ScopeEntity ScopeKind = "entity"
	ScopeStore  ScopeKind = "store"
)

var (
	ErrUnknownCollection = errors.New("domain: unknown collection")
	ErrInvalidScope      = errors.New("domain: invalid scope")
	ErrScopeMismatch     = errors.New("domain: scope kind does not match collection")
)

// Collections lists every supported collection in a stable order.
func Collections() []Collection {
	return []Collection{
		CollectionPages,
		CollectionStorePages,
		CollectionServicePages,
		CollectionEntityPages,
	}
}

// ScopeKind returns the scope kind a collection is fixed to.
func (c Collection) ScopeKind() ScopeKind {
	switch c {
	case CollectionStorePages:
		return ScopeStore
	case CollectionEntityPages:
		return ScopeEntity
	default:
		return ScopeGlobal
	}
}

// DefaultCollection returns the collection used for a scope kind when none is
// named. Global scopes default to generic site pages.
func DefaultCollection(kind ScopeKind) Collection {
	switch kind {
	case ScopeStore:
		return CollectionStorePages
	case ScopeEntity:
		return CollectionEntityPages
	default:
		return CollectionPages
	}
}

// Valid reports whether c is a known collection.
func (c Collection) Valid() bool {
	switch c {
	case CollectionPages, CollectionStorePages, CollectionServicePages, CollectionEntityPages:
		return true
	}
	return false
}

// NormalizeCollection coerces arbitrary input into a known collection.
func NormalizeCollection(input string) (Collection, error) {
	value := Collection(strings.ToLower(strings.TrimSpace(input)))
	if value == "" {
		return CollectionPages, nil
	}
	if !value.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, input)
	}
	return value, nil
}

// Viewer distinguishes public visitors from editors allowed to see drafts.
type Viewer string

const (
	ViewerPublic Viewer = "public"
	ViewerEditor Viewer = "editor"
)

// CanSeeDrafts reports whether unpublished pages are visible to the viewer.
func (v Viewer) CanSeeDrafts() bool {
	return v == ViewerEditor
}
