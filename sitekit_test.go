package sitekit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	sitekit "github.com/goliatone/go-sitekit"
	"github.com/goliatone/go-sitekit/internal/di"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/siteview"
	"github.com/google/uuid"
)

func TestModuleImportsAndServesPages(t *testing.T) {
	cfg := sitekit.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = "content"
	cfg.Logging.Provider = "none"

	files := fstest.MapFS{
		"site/home.md": {Data: []byte("---\ntitle: Welcome\nhomepage: true\n---\nHello there.\n")},
	}
	module, err := sitekit.New(cfg, di.WithContentFS(files))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() {
		_ = module.Close()
	})

	ctx := context.Background()
	result, err := module.Import(ctx, "site", sitekit.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected one created page, got %+v", result)
	}

	view, err := module.View(ctx, sitekit.ViewRequest{
		Target: siteview.Target{Collection: domain.CollectionPages, Scope: domain.GlobalScope()},
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Page == nil || view.Page.Title != "Welcome" {
		t.Fatalf("expected homepage, got %+v", view.Page)
	}

	server := httptest.NewServer(module.HTTPHandler())
	t.Cleanup(server.Close)
	resp, err := server.Client().Get(server.URL + "/api/sites/global/view")
	if err != nil {
		t.Fatalf("get view: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestModuleImportRequiresMarkdownFeature(t *testing.T) {
	module, err := sitekit.New(sitekit.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.Import(context.Background(), "content", sitekit.ImportOptions{}); !errors.Is(err, sitekit.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired, got %v", err)
	}
}

func TestModuleExposesServices(t *testing.T) {
	module, err := sitekit.New(sitekit.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.Pages() == nil || module.Navigation() == nil || module.Views() == nil {
		t.Fatalf("expected services to be wired")
	}

	_, err = module.Pages().Get(context.Background(), uuid.New())
	if !errors.Is(err, pages.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
