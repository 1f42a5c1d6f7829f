package navigationcmd

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const invalidateNavigationCacheMessageType = "sitekit.navigation.cache.invalidate"

var ErrNavigationCommandsDisabled = fmt.Errorf("navigation command: %w", commands.ErrDisabled)

// FeatureGates exposes the runtime toggle required by navigation command handlers.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}

// InvalidateNavigationCacheCommand clears cached navigation lookups.
type InvalidateNavigationCacheCommand struct{}

// Type implements command.Message.
func (InvalidateNavigationCacheCommand) Type() string { return invalidateNavigationCacheMessageType }

// Validate satisfies command.Message.
func (InvalidateNavigationCacheCommand) Validate() error {
	return validation.ValidateStruct(&InvalidateNavigationCacheCommand{})
}

// InvalidateNavigationCacheHandler orchestrates navigation cache invalidation.
type InvalidateNavigationCacheHandler struct {
	inner *commands.Handler[InvalidateNavigationCacheCommand]
}

// NewInvalidateNavigationCacheHandler constructs a handler wired to the navigation service.
func NewInvalidateNavigationCacheHandler(service navigation.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InvalidateNavigationCacheCommand]) *InvalidateNavigationCacheHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, _ InvalidateNavigationCacheCommand) error {
		if !gates.commandsEnabled() {
			return ErrNavigationCommandsDisabled
		}
		if err := service.InvalidateCache(ctx); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"operation": "invalidate",
		}).Info("navigation.command.cache.invalidated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateNavigationCacheCommand]{
		commands.WithLogger[InvalidateNavigationCacheCommand](baseLogger),
		commands.WithOperation[InvalidateNavigationCacheCommand]("navigation.cache.invalidate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateNavigationCacheHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateNavigationCacheCommand].
func (h *InvalidateNavigationCacheHandler) Execute(ctx context.Context, msg InvalidateNavigationCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
