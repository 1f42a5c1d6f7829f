package pages

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPageRepository is an in-memory page store for tests and the memory provider.
type MemoryPageRepository struct {
	mu    sync.RWMutex
	pages map[uuid.UUID]*Page
}

// NewMemoryPageRepository constructs the repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages: make(map[uuid.UUID]*Page),
	}
}

// Create inserts the supplied page.
func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := clonePage(record)
	m.pages[copied.ID] = copied
	return clonePage(copied), nil
}

// GetByID retrieves a page by identifier.
func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, notFound(id.String())
	}
	return clonePage(page), nil
}

// List returns the pages matching filter in creation order.
func (m *MemoryPageRepository) List(_ context.Context, filter Filter) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Page, 0, len(m.pages))
	for _, record := range m.pages {
		if filter.matches(record) {
			out = append(out, clonePage(record))
		}
	}
	sortByCreation(out)
	return out, nil
}

// Update replaces the stored page.
func (m *MemoryPageRepository) Update(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[record.ID]; !ok {
		return nil, notFound(record.ID.String())
	}
	copied := clonePage(record)
	m.pages[record.ID] = copied
	return clonePage(copied), nil
}

// Delete removes the page.
func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return notFound(id.String())
	}
	delete(m.pages, id)
	return nil
}
