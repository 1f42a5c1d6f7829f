package pages_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

func TestBunPageRepositoryRoundTrip(t *testing.T) {
	db := testsupport.NewBunDB(t, (*pages.Page)(nil))
	repo := pages.NewBunPageRepository(db)
	svc := pages.NewService(repo, pages.WithClock(testsupport.StepClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Second)))
	ctx := context.Background()

	created, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection:  domain.CollectionStorePages,
		Scope:       domain.StoreScope("store-1"),
		Title:       "Opening Hours",
		IsPublished: true,
		Sections: []sections.Section{
			{ID: "hero", Type: sections.TypeHero, Payload: sections.Hero{Title: "Welcome"}},
			{ID: "faq", Type: sections.TypeFAQ, Payload: sections.FAQ{Items: []sections.FAQItem{{Question: "Sunday?", Answer: "Closed"}}}},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Slug != "opening-hours" || fetched.StoreID != "store-1" {
		t.Fatalf("unexpected stored page: %+v", fetched)
	}
	if len(fetched.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(fetched.Sections))
	}
	faq, ok := fetched.Sections[1].Payload.(sections.FAQ)
	if !ok || faq.Items[0].Answer != "Closed" {
		t.Fatalf("expected faq payload to survive storage, got %#v", fetched.Sections[1].Payload)
	}

	listed, err := svc.List(ctx, pages.ScopeFilter(domain.CollectionStorePages, domain.StoreScope("store-1")))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 page in scope, got %d", len(listed))
	}
	other, err := svc.List(ctx, pages.ScopeFilter(domain.CollectionStorePages, domain.StoreScope("store-2")))
	if err != nil {
		t.Fatalf("list other scope: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected other scope to be empty, got %d", len(other))
	}

	title := "Hours"
	updated, err := svc.Update(ctx, created.ID, pages.UpdatePageRequest{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Hours" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !pages.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestBunPageRepositoryWithCacheInvalidates(t *testing.T) {
	db := testsupport.NewBunDB(t, (*pages.Page)(nil))
	cfg := repocache.DefaultConfig()
	cfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := pages.NewBunPageRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
	svc := pages.NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, pages.CreatePageRequest{Collection: domain.CollectionPages, Scope: domain.GlobalScope(), Title: "Cached"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if _, err := svc.SetPublished(ctx, created.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := svc.InvalidateCache(ctx); err != nil {
		t.Fatalf("invalidate cache: %v", err)
	}
	fetched, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !fetched.IsPublished {
		t.Fatal("expected read after invalidation to observe the publish")
	}
}

func newCachedPageService(t *testing.T) pages.Service {
	t.Helper()
	db := testsupport.NewBunDB(t, (*pages.Page)(nil))
	cfg := repocache.DefaultConfig()
	cfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := pages.NewBunPageRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
	return pages.NewService(repo, pages.WithClock(testsupport.StepClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Second)))
}

func TestBunPageRepositoryWithCacheKeepsScopesApart(t *testing.T) {
	svc := newCachedPageService(t)
	ctx := context.Background()

	storeA := domain.StoreScope("a")
	storeB := domain.StoreScope("b")
	if _, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection:  domain.CollectionStorePages,
		Scope:       storeA,
		Title:       "Hours",
		IsPublished: true,
		IsHomepage:  true,
	}); err != nil {
		t.Fatalf("create store a page: %v", err)
	}

	listA, err := svc.List(ctx, pages.ScopeFilter(domain.CollectionStorePages, storeA))
	if err != nil {
		t.Fatalf("list store a: %v", err)
	}
	listB, err := svc.List(ctx, pages.ScopeFilter(domain.CollectionStorePages, storeB))
	if err != nil {
		t.Fatalf("list store b: %v", err)
	}
	if len(listA) != 1 || len(listB) != 0 {
		t.Fatalf("expected 1 page in store a and none in store b, got %d and %d", len(listA), len(listB))
	}

	created, err := svc.Create(ctx, pages.CreatePageRequest{
		Collection: domain.CollectionStorePages,
		Scope:      storeB,
		Title:      "Hours",
	})
	if err != nil {
		t.Fatalf("create store b page: %v", err)
	}
	if created.Slug != "hours" {
		t.Fatalf("expected slug uniqueness to be checked within store b only, got %q", created.Slug)
	}

	listB, err = svc.List(ctx, pages.ScopeFilter(domain.CollectionStorePages, storeB))
	if err != nil {
		t.Fatalf("list store b after create: %v", err)
	}
	if len(listB) != 1 || listB[0].StoreID != "b" {
		t.Fatalf("expected the new store b page after create, got %+v", listB)
	}

	homepages, err := svc.List(ctx, pages.Filter{Collection: domain.CollectionStorePages, Scope: &storeB, HomepageOnly: true})
	if err != nil {
		t.Fatalf("list store b homepages: %v", err)
	}
	if len(homepages) != 0 {
		t.Fatalf("expected no homepage in store b, got %d", len(homepages))
	}
}
