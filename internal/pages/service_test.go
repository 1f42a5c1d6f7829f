package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
	"github.com/google/uuid"
)

type recordingListener struct {
	detached []uuid.UUID
}

func (r *recordingListener) DetachPage(_ context.Context, pageID uuid.UUID) error {
	r.detached = append(r.detached, pageID)
	return nil
}

func newService(opts ...pages.ServiceOption) pages.Service {
	base := []pages.ServiceOption{
		pages.WithClock(testsupport.StepClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)),
	}
	return pages.NewService(pages.NewMemoryPageRepository(), append(base, opts...)...)
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	page, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection: domain.CollectionServicePages,
		Scope:      domain.GlobalScope(),
		Title:      "Foundation Repair!",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.Slug != "foundation-repair" {
		t.Fatalf("expected derived slug, got %q", page.Slug)
	}
	if page.ScopeKey != "global" || page.Collection != domain.CollectionServicePages {
		t.Fatalf("unexpected scope/collection: %q %q", page.ScopeKey, page.Collection)
	}

	second, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection: domain.CollectionServicePages,
		Scope:      domain.GlobalScope(),
		Title:      "Foundation repair",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug != "foundation-repair-2" {
		t.Fatalf("expected suffixed slug, got %q", second.Slug)
	}
}

func TestCreateFallsBackToIDForSymbolOnlyTitle(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	svc := newService()

	page, err := svc.Create(context.Background(), pages.CreatePageRequest{
		ID:         id,
		Collection: domain.CollectionPages,
		Scope:      domain.GlobalScope(),
		Title:      "!!!",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.Slug != id.String() {
		t.Fatalf("expected id slug fallback, got %q", page.Slug)
	}
}

func TestCreateSlugUniquenessIsPerScope(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, storeID := range []string{"a", "b"} {
		page, err := svc.Create(ctx, pages.CreatePageRequest{
			Collection: domain.CollectionStorePages,
			Scope:      domain.StoreScope(storeID),
			Title:      "About",
			Slug:       "about",
		})
		if err != nil {
			t.Fatalf("create in store %s: %v", storeID, err)
		}
		if page.Slug != "about" {
			t.Fatalf("expected about in store %s, got %q", storeID, page.Slug)
		}
	}

	_, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection: domain.CollectionStorePages,
		Scope:      domain.StoreScope("a"),
		Title:      "About again",
		Slug:       "About",
	})
	if !errors.Is(err, pages.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestCreateRejectsScopeMismatch(t *testing.T) {
	svc := newService()
	_, err := svc.Create(context.Background(), pages.CreatePageRequest{
		Collection: domain.CollectionEntityPages,
		Scope:      domain.StoreScope("s1"),
		Title:      "Menu",
	})
	if !errors.Is(err, domain.ErrScopeMismatch) {
		t.Fatalf("expected ErrScopeMismatch, got %v", err)
	}
}

func TestCreateRejectsInvalidSections(t *testing.T) {
	svc := newService()
	_, err := svc.Create(context.Background(), pages.CreatePageRequest{
		Collection: domain.CollectionPages,
		Scope:      domain.GlobalScope(),
		Title:      "Home",
		Sections:   []sections.Section{{ID: "x", Type: sections.TypeHero, Payload: sections.Hero{}}},
	})
	if !errors.Is(err, pages.ErrSectionsInvalid) {
		t.Fatalf("expected ErrSectionsInvalid, got %v", err)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	page, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection:  domain.CollectionPages,
		Scope:       domain.GlobalScope(),
		Title:       "Contact",
		MetaTitle:   "Reach us",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	layout := 4
	updated, err := svc.Update(ctx, page.ID, pages.UpdatePageRequest{Layout: &layout})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Layout != 4 || updated.MetaTitle != "Reach us" || !updated.IsPublished {
		t.Fatalf("unexpected patched page: %+v", updated)
	}
	if !updated.UpdatedAt.After(page.UpdatedAt) {
		t.Fatal("expected updated_at to advance")
	}

	bad := 6
	if _, err := svc.Update(ctx, page.ID, pages.UpdatePageRequest{Layout: &bad}); !errors.Is(err, pages.ErrLayoutInvalid) {
		t.Fatalf("expected ErrLayoutInvalid, got %v", err)
	}
}

func TestUpdateRejectsSlugTakenInScope(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, pages.CreatePageRequest{Collection: domain.CollectionPages, Scope: domain.GlobalScope(), Title: "About"}); err != nil {
		t.Fatalf("create about: %v", err)
	}
	team, err := svc.Create(ctx, pages.CreatePageRequest{Collection: domain.CollectionPages, Scope: domain.GlobalScope(), Title: "Team"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	slug := "about"
	if _, err := svc.Update(ctx, team.ID, pages.UpdatePageRequest{Slug: &slug}); !errors.Is(err, pages.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	same := "team"
	if _, err := svc.Update(ctx, team.ID, pages.UpdatePageRequest{Slug: &same}); err != nil {
		t.Fatalf("expected unchanged slug to be accepted: %v", err)
	}
}

func TestDeleteNotifiesListeners(t *testing.T) {
	listener := &recordingListener{}
	svc := newService(pages.WithDeletionListener(listener))
	ctx := context.Background()

	page, err := svc.Create(ctx, pages.CreatePageRequest{Collection: domain.CollectionPages, Scope: domain.GlobalScope(), Title: "Gone"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, page.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(listener.detached) != 1 || listener.detached[0] != page.ID {
		t.Fatalf("expected listener to be notified, got %v", listener.detached)
	}
	if _, err := svc.Get(ctx, page.ID); !pages.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, page.ID); !pages.IsNotFound(err) {
		t.Fatalf("expected not found deleting twice, got %v", err)
	}
}

func TestSectionHelpers(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	page, err := svc.Create(ctx, pages.CreatePageRequest{Collection: domain.CollectionPages, Scope: domain.GlobalScope(), Title: "Story"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, id := range []string{"A", "B", "C"} {
		page, err = svc.AddSection(ctx, page.ID, sections.Section{ID: id, Type: sections.TypeText, Payload: sections.Text{Body: id}}, nil)
		if err != nil {
			t.Fatalf("add section %s: %v", id, err)
		}
	}

	page, err = svc.MoveSection(ctx, page.ID, "C", pages.DirectionUp)
	if err != nil {
		t.Fatalf("move up: %v", err)
	}
	if page.Sections[1].ID != "C" {
		t.Fatalf("expected C at index 1, got %s", page.Sections[1].ID)
	}

	page, err = svc.MoveSection(ctx, page.ID, "C", pages.DirectionDown)
	if err != nil {
		t.Fatalf("move down: %v", err)
	}
	if page.Sections[2].ID != "C" {
		t.Fatalf("expected C restored at index 2, got %s", page.Sections[2].ID)
	}

	if _, err := svc.AddSection(ctx, page.ID, sections.Section{ID: "A", Type: sections.TypeText, Payload: sections.Text{Body: "dup"}}, nil); !errors.Is(err, sections.ErrDuplicateID) {
		t.Fatalf("expected duplicate id rejection, got %v", err)
	}

	page, err = svc.RemoveSection(ctx, page.ID, "B")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(page.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(page.Sections))
	}

	if _, err := svc.MoveSection(ctx, page.ID, "A", "sideways"); !errors.Is(err, pages.ErrDirectionInvalid) {
		t.Fatalf("expected ErrDirectionInvalid, got %v", err)
	}
}

func TestSetPublished(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	page, err := svc.Create(ctx, pages.CreatePageRequest{Collection: domain.CollectionPages, Scope: domain.GlobalScope(), Title: "Draft"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if page.IsPublished {
		t.Fatal("expected draft by default")
	}
	page, err = svc.SetPublished(ctx, page.ID, true)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !page.IsPublished {
		t.Fatal("expected page to be published")
	}
}
