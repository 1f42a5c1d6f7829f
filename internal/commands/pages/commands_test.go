package pagescmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/sections"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

func seedPage(t *testing.T, svc pages.Service) *pages.Page {
	t.Helper()
	page, err := svc.Create(context.Background(), pages.CreatePageRequest{
		Collection: domain.CollectionPages,
		Scope:      domain.GlobalScope(),
		Title:      "About",
		Sections: []sections.Section{
			{ID: "a", Type: sections.TypeText, Payload: sections.Text{Body: "a"}},
			{ID: "b", Type: sections.TypeText, Payload: sections.Text{Body: "b"}},
		},
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return page
}

func TestPublishPageHandler(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryPageRepository())
	page := seedPage(t, svc)
	handler := NewPublishPageHandler(svc, commands.CommandLogger(nil, "pages"), FeatureGates{})

	if err := handler.Execute(context.Background(), PublishPageCommand{PageID: page.ID, Published: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	stored, err := svc.Get(context.Background(), page.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.IsPublished {
		t.Fatal("expected page published")
	}
}

func TestPublishPageHandlerValidationError(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryPageRepository())
	handler := NewPublishPageHandler(svc, nil, FeatureGates{})

	err := handler.Execute(context.Background(), PublishPageCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestDeletePageHandlerMissingPage(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryPageRepository())
	handler := NewDeletePageHandler(svc, nil, FeatureGates{})

	err := handler.Execute(context.Background(), DeletePageCommand{PageID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for missing page")
	}
	if !errors.Is(err, pages.ErrNotFound) {
		t.Fatalf("expected wrapped ErrNotFound, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) || commands.TextCode(err) != commands.TextCodePageNotFound {
		t.Fatalf("expected page not found classification, got %v", err)
	}
}

func TestMoveSectionHandler(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryPageRepository())
	page := seedPage(t, svc)
	handler := NewMoveSectionHandler(svc, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), MoveSectionCommand{PageID: page.ID, SectionID: "b", Direction: pages.DirectionUp}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	stored, _ := svc.Get(context.Background(), page.ID)
	if stored.Sections[0].ID != "b" || stored.Sections[1].ID != "a" {
		t.Fatalf("expected sections swapped, got %s,%s", stored.Sections[0].ID, stored.Sections[1].ID)
	}

	err := handler.Execute(context.Background(), MoveSectionCommand{PageID: page.ID, SectionID: "b", Direction: "sideways"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error for direction, got %v", err)
	}
}

func TestPageCommandsDisabled(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryPageRepository())
	page := seedPage(t, svc)
	handler := NewDeletePageHandler(svc, nil, FeatureGates{CommandsEnabled: func() bool { return false }})

	err := handler.Execute(context.Background(), DeletePageCommand{PageID: page.ID})
	if !errors.Is(err, ErrPageCommandsDisabled) || !errors.Is(err, commands.ErrDisabled) {
		t.Fatalf("expected ErrPageCommandsDisabled, got %v", err)
	}
	if _, err := svc.Get(context.Background(), page.ID); err != nil {
		t.Fatalf("expected page kept: %v", err)
	}
}
