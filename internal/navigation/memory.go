package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryItemRepository is an in-memory navigation store.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Item
}

// NewMemoryItemRepository constructs the repository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{items: make(map[uuid.UUID]*Item)}
}

func (m *MemoryItemRepository) Create(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneItem(item)
	m.items[copied.ID] = copied
	return cloneItem(copied), nil
}

func (m *MemoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, notFound(id.String())
	}
	return cloneItem(item), nil
}

// List returns matching items sorted by order then id.
func (m *MemoryItemRepository) List(_ context.Context, filter Filter) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Item, 0, len(m.items))
	for _, item := range m.items {
		if filter.matches(item) {
			out = append(out, cloneItem(item))
		}
	}
	sortItems(out)
	return out, nil
}

func (m *MemoryItemRepository) Update(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return nil, notFound(item.ID.String())
	}
	copied := cloneItem(item)
	m.items[item.ID] = copied
	return cloneItem(copied), nil
}

func (m *MemoryItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return notFound(id.String())
	}
	delete(m.items, id)
	return nil
}

// DetachTarget clears the target of every page link pointing at pageID.
func (m *MemoryItemRepository) DetachTarget(_ context.Context, pageID uuid.UUID, detachedAt time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	target := pageID.String()
	count := 0
	for _, item := range m.items {
		if item.LinkType == LinkPage && item.Target == target {
			item.Target = ""
			item.UpdatedAt = detachedAt
			count++
		}
	}
	return count, nil
}
