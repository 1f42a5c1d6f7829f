package domain

import (
	"fmt"
	"strings"
)

const keySeparator = ":"

// Scope is the owner of a page or navigation set. Exactly one kind is set.
type Scope struct {
	Kind       ScopeKind
	EntityType string
	EntityID   string
	StoreID    string
}

// GlobalScope returns the site-wide scope.
func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

// EntityScope returns the scope of an entity mini-site.
func EntityScope(entityType, entityID string) Scope {
	return Scope{
		Kind:       ScopeEntity,
		EntityType: strings.ToLower(strings.TrimSpace(entityType)),
		EntityID:   strings.TrimSpace(entityID),
	}
}

// StoreScope returns the scope of a single store.
func StoreScope(storeID string) Scope {
	return Scope{Kind: ScopeStore, StoreID: strings.TrimSpace(storeID)}
}

// Key renders the scope as a stable string, e.g. "entity:restaurant:42".
func (s Scope) Key() string {
	switch s.Kind {
	case ScopeEntity:
		return strings.Join([]string{string(ScopeEntity), s.EntityType, s.EntityID}, keySeparator)
	case ScopeStore:
		return string(ScopeStore) + keySeparator + s.StoreID
	default:
		return string(ScopeGlobal)
	}
}

func (s Scope) String() string {
	return s.Key()
}

// Validate checks that only the fields of the scope kind are set.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeGlobal, "":
		if s.EntityType != "" || s.EntityID != "" || s.StoreID != "" {
			return fmt.Errorf("%w: global scope carries owner fields", ErrInvalidScope)
		}
	case ScopeEntity:
		if s.EntityType == "" || s.EntityID == "" {
			return fmt.Errorf("%w: entity scope requires type and id", ErrInvalidScope)
		}
		if s.StoreID != "" {
			return fmt.Errorf("%w: entity scope carries store id", ErrInvalidScope)
		}
	case ScopeStore:
		if s.StoreID == "" {
			return fmt.Errorf("%w: store scope requires id", ErrInvalidScope)
		}
		if s.EntityType != "" || s.EntityID != "" {
			return fmt.Errorf("%w: store scope carries entity fields", ErrInvalidScope)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidScope, s.Kind)
	}
	return nil
}

// ValidateFor checks the scope and that its kind matches the collection.
func (s Scope) ValidateFor(collection Collection) error {
	if !collection.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.normalizedKind() != collection.ScopeKind() {
		return fmt.Errorf("%w: %s requires %s scope, got %s", ErrScopeMismatch, collection, collection.ScopeKind(), s.normalizedKind())
	}
	return nil
}

func (s Scope) normalizedKind() ScopeKind {
	if s.Kind == "" {
		return ScopeGlobal
	}
	return s.Kind
}

// ParseScope is the inverse of Scope.Key.
func ParseScope(key string) (Scope, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" || trimmed == string(ScopeGlobal) {
		return GlobalScope(), nil
	}
	parts := strings.Split(trimmed, keySeparator)
	switch ScopeKind(parts[0]) {
	case ScopeEntity:
		if len(parts) != 3 {
			return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, key)
		}
		scope := EntityScope(parts[1], parts[2])
		return scope, scope.Validate()
	case ScopeStore:
		if len(parts) != 2 {
			return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, key)
		}
		scope := StoreScope(parts[1])
		return scope, scope.Validate()
	default:
		return Scope{}, fmt.Errorf("%w: %q", ErrInvalidScope, key)
	}
}
