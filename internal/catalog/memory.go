// Package catalog provides in-memory catalog and entity profile collaborators
// for wiring the entity view without external services.
package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Item kinds.
const (
	KindProduct = "product"
	KindService = "service"
)

// MemoryCatalog is a read-mostly catalog keyed by scope key.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string][]interfaces.CatalogItem
	services map[string][]interfaces.CatalogItem
}

var _ interfaces.CatalogProvider = (*MemoryCatalog)(nil)

// NewMemoryCatalog constructs an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		products: make(map[string][]interfaces.CatalogItem),
		services: make(map[string][]interfaces.CatalogItem),
	}
}

// AddProduct registers a product under scopeKey.
func (c *MemoryCatalog) AddProduct(scopeKey string, item interfaces.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item.Kind = KindProduct
	c.products[scopeKey] = append(c.products[scopeKey], item)
}

// AddService registers a service under scopeKey.
func (c *MemoryCatalog) AddService(scopeKey string, item interfaces.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item.Kind = KindService
	c.services[scopeKey] = append(c.services[scopeKey], item)
}

func (c *MemoryCatalog) Presence(ctx context.Context, scopeKey string) (interfaces.CatalogPresence, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.CatalogPresence{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return interfaces.CatalogPresence{
		HasProducts: len(c.products[scopeKey]) > 0,
		HasServices: len(c.services[scopeKey]) > 0,
	}, nil
}

func (c *MemoryCatalog) Products(ctx context.Context, scopeKey string) ([]interfaces.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products[scopeKey]), nil
}

func (c *MemoryCatalog) Services(ctx context.Context, scopeKey string) ([]interfaces.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.services[scopeKey]), nil
}

// MemoryProfiles serves entity profiles and photos keyed by scope key.
// Unknown scopes yield an empty profile.
type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[string]interfaces.EntityProfile
	photos   map[string][]interfaces.Photo
}

var _ interfaces.EntityProvider = (*MemoryProfiles)(nil)

// NewMemoryProfiles constructs an empty profile store.
func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{
		profiles: make(map[string]interfaces.EntityProfile),
		photos:   make(map[string][]interfaces.Photo),
	}
}

// SetProfile replaces the profile for scopeKey.
func (p *MemoryProfiles) SetProfile(scopeKey string, profile interfaces.EntityProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[scopeKey] = profile
}

// AddPhoto appends a photo for scopeKey.
func (p *MemoryProfiles) AddPhoto(scopeKey string, photo interfaces.Photo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.photos[scopeKey] = append(p.photos[scopeKey], photo)
}

func (p *MemoryProfiles) Profile(ctx context.Context, scopeKey string) (interfaces.EntityProfile, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.EntityProfile{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	profile := p.profiles[scopeKey]
	profile.FAQs = slices.Clone(profile.FAQs)
	profile.RelatedItems = slices.Clone(profile.RelatedItems)
	profile.ExternalResources = slices.Clone(profile.ExternalResources)
	return profile, nil
}

func (p *MemoryProfiles) Photos(ctx context.Context, scopeKey string) ([]interfaces.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.photos[scopeKey]), nil
}
