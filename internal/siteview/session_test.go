package siteview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/siteview"
)

// gatedLoader blocks loads of gated targets until released.
type gatedLoader struct {
	inner   siteview.SnapshotLoader
	gates   map[string]chan struct{}
	started chan string
}

func (g *gatedLoader) Load(ctx context.Context, target siteview.Target) (*siteview.Snapshot, error) {
	g.started <- target.Key()
	if gate, ok := g.gates[target.Key()]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	return g.inner.Load(context.Background(), target)
}

var attraction = siteview.Target{
	Collection: domain.CollectionEntityPages,
	Scope:      domain.EntityScope("attraction", "7"),
}

func TestSessionDiscardsSupersededLoad(t *testing.T) {
	h := newHarness(t)
	loader := &gatedLoader{
		inner:   h.loader,
		gates:   map[string]chan struct{}{restaurant.Key(): make(chan struct{})},
		started: make(chan string, 4),
	}
	session := siteview.NewSession(loader, nil, siteview.Request{Viewer: domain.ViewerPublic}, nil)
	ctx := context.Background()

	type result struct {
		view *siteview.View
		err  error
	}
	first := make(chan result, 1)
	go func() {
		view, err := session.Open(ctx, siteview.Request{Target: restaurant})
		first <- result{view, err}
	}()
	<-loader.started

	second, err := session.Open(ctx, siteview.Request{Target: attraction})
	if err != nil {
		t.Fatalf("open attraction: %v", err)
	}
	<-loader.started
	close(loader.gates[restaurant.Key()])

	stale := <-first
	if !errors.Is(stale.err, siteview.ErrStaleLoad) || stale.view != nil {
		t.Fatalf("expected stale load, got %+v", stale)
	}
	current, ok := session.View()
	if !ok || current != second || current.Scope != attraction.Scope.Key() {
		t.Fatalf("expected attraction view to stay current, got %+v", current)
	}
}

func TestSessionDiscardsLoadFinishingAfterClose(t *testing.T) {
	h := newHarness(t)
	loader := &gatedLoader{
		inner:   h.loader,
		gates:   map[string]chan struct{}{restaurant.Key(): make(chan struct{})},
		started: make(chan string, 2),
	}
	session := siteview.NewSession(loader, nil, siteview.Request{}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := session.Open(context.Background(), siteview.Request{Target: restaurant})
		done <- err
	}()
	<-loader.started
	session.Close()

	if err := <-done; !errors.Is(err, siteview.ErrStaleLoad) {
		t.Fatalf("expected stale load after close, got %v", err)
	}
	if _, ok := session.View(); ok {
		t.Fatalf("expected no view after close")
	}
	if _, err := session.Open(context.Background(), siteview.Request{Target: restaurant}); !errors.Is(err, siteview.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSessionModeTransitionsReload(t *testing.T) {
	h := newHarness(t)
	session := h.service.NewSession(siteview.Request{Viewer: domain.ViewerEditor})
	ctx := context.Background()

	if _, err := session.Open(ctx, siteview.Request{Target: restaurant, Viewer: domain.ViewerEditor}); err != nil {
		t.Fatalf("open: %v", err)
	}
	steps := []struct {
		event siteview.Event
		want  siteview.Mode
	}{
		{siteview.EventOpenDashboard, siteview.ModeDashboard},
		{siteview.EventEditNav, siteview.ModeEditingNav},
		{siteview.EventSave, siteview.ModeDashboard},
		{siteview.EventEditPage, siteview.ModeEditingPage},
		{siteview.EventExit, siteview.ModeViewing},
	}
	for _, step := range steps {
		mode, err := session.Fire(ctx, step.event)
		if err != nil {
			t.Fatalf("fire %s: %v", step.event, err)
		}
		if mode != step.want {
			t.Fatalf("fire %s: expected %s, got %s", step.event, step.want, mode)
		}
	}
}
