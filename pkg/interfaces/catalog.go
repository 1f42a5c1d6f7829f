package interfaces

import "context"

// CatalogPresence reports whether a scope has any catalog records backing
// the built-in Products and Services views.
type CatalogPresence struct {
	HasProducts bool
	HasServices bool
}

// CatalogItem is a read-only summary of a product or service record used to
// compose the catalog default view.
type CatalogItem struct {
	ID          string
	Kind        string
	Title       string
	Slug        string
	Description string
	Price       string
	Image       string
}

// CatalogProvider exposes the product/service collaborators consumed by the
// navigation builder and the default view. Implementations never mutate the
// catalog on behalf of sitekit.
type CatalogProvider interface {
	Presence(ctx context.Context, scopeKey string) (CatalogPresence, error)
	Products(ctx context.Context, scopeKey string) ([]CatalogItem, error)
	Services(ctx context.Context, scopeKey string) ([]CatalogItem, error)
}
