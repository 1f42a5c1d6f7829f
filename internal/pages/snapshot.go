package pages

import (
	"context"

	"github.com/google/uuid"
)

// Snapshot is a read-only PageLister over records fetched earlier, so
// resolution can run without further store round trips.
type Snapshot struct {
	records []*Page
}

var _ PageLister = (*Snapshot)(nil)

// NewSnapshot copies records and orders them by creation.
func NewSnapshot(records []*Page) *Snapshot {
	copied := make([]*Page, 0, len(records))
	for _, record := range records {
		if record != nil {
			copied = append(copied, clonePage(record))
		}
	}
	sortByCreation(copied)
	return &Snapshot{records: copied}
}

func (s *Snapshot) List(_ context.Context, filter Filter) ([]*Page, error) {
	out := make([]*Page, 0, len(s.records))
	for _, record := range s.records {
		if filter.matches(record) {
			out = append(out, clonePage(record))
		}
	}
	return out, nil
}

func (s *Snapshot) Get(_ context.Context, id uuid.UUID) (*Page, error) {
	for _, record := range s.records {
		if record.ID == id {
			return clonePage(record), nil
		}
	}
	return nil, notFound(id.String())
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}
