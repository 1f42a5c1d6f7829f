package navigationcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/navigation"
)

type trackingNavigationService struct {
	navigation.Service
	invalidateCalls int
}

func (t *trackingNavigationService) InvalidateCache(ctx context.Context) error {
	t.invalidateCalls++
	if t.Service != nil {
		return t.Service.InvalidateCache(ctx)
	}
	return nil
}

func TestInvalidateNavigationCacheHandler(t *testing.T) {
	tracking := &trackingNavigationService{Service: navigation.NewService(navigation.NewMemoryItemRepository())}
	handler := NewInvalidateNavigationCacheHandler(tracking, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return true },
	})

	if err := handler.Execute(context.Background(), InvalidateNavigationCacheCommand{}); err != nil {
		t.Fatalf("execute invalidate: %v", err)
	}
	if tracking.invalidateCalls != 1 {
		t.Fatalf("expected invalidate calls 1, got %d", tracking.invalidateCalls)
	}
}

func TestInvalidateNavigationCacheHandlerFeatureDisabled(t *testing.T) {
	tracking := &trackingNavigationService{Service: navigation.NewService(navigation.NewMemoryItemRepository())}
	handler := NewInvalidateNavigationCacheHandler(tracking, logging.NoOp(), FeatureGates{
		CommandsEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), InvalidateNavigationCacheCommand{})
	if !errors.Is(err, ErrNavigationCommandsDisabled) {
		t.Fatalf("expected ErrNavigationCommandsDisabled, got %v", err)
	}
	if tracking.invalidateCalls != 0 {
		t.Fatalf("expected no invalidation calls, got %d", tracking.invalidateCalls)
	}
}
