package pagescmd

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	publishPageMessageType = "sitekit.pages.publish"
	deletePageMessageType  = "sitekit.pages.delete"
	moveSectionMessageType = "sitekit.pages.section.move"
)

var ErrPageCommandsDisabled = fmt.Errorf("pages command: %w", commands.ErrDisabled)

// PublishPageCommand toggles the published flag of a page.
type PublishPageCommand struct {
	PageID    uuid.UUID `json:"page_id"`
	Published bool      `json:"published"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

// Validate ensures the page identifier is present.
func (m PublishPageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sitekit.pages.publish.page_id_required", "page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeletePageCommand removes a page and detaches navigation items pointing at it.
type DeletePageCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

// Validate ensures the page identifier is present.
func (m DeletePageCommand) Validate() error {
	if m.PageID == uuid.Nil {
		return validation.Errors{
			"page_id": validation.NewError("sitekit.pages.delete.page_id_required", "page_id is required"),
		}
	}
	return nil
}

// MoveSectionCommand swaps a section with its neighbour.
type MoveSectionCommand struct {
	PageID    uuid.UUID       `json:"page_id"`
	SectionID string          `json:"section_id"`
	Direction pages.Direction `json:"direction"`
}

// Type implements command.Message.
func (MoveSectionCommand) Type() string { return moveSectionMessageType }

// Validate checks identifiers and direction.
func (m MoveSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("sitekit.pages.section.move.page_id_required", "page_id is required")
	}
	if strings.TrimSpace(m.SectionID) == "" {
		errs["section_id"] = validation.NewError("sitekit.pages.section.move.section_id_required", "section_id is required")
	}
	if m.Direction != pages.DirectionUp && m.Direction != pages.DirectionDown {
		errs["direction"] = validation.NewError("sitekit.pages.section.move.direction_invalid", "direction must be up or down")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPageHandler publishes or unpublishes pages.
type PublishPageHandler struct {
	inner *commands.Handler[PublishPageCommand]
}

// NewPublishPageHandler constructs a handler wired to the page service.
func NewPublishPageHandler(service pages.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg PublishPageCommand) error {
		if !gates.commandsEnabled() {
			return ErrPageCommandsDisabled
		}
		_, err := service.SetPublished(ctx, msg.PageID, msg.Published)
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishPageCommand]{
		commands.WithLogger[PublishPageCommand](baseLogger),
		commands.WithOperation[PublishPageCommand]("pages.publish"),
		commands.WithMessageFields(func(msg PublishPageCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID, "published": msg.Published}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PublishPageCommand].
func (h *PublishPageHandler) Execute(ctx context.Context, msg PublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeletePageHandler deletes pages.
type DeletePageHandler struct {
	inner *commands.Handler[DeletePageCommand]
}

// NewDeletePageHandler constructs a handler wired to the page service.
func NewDeletePageHandler(service pages.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DeletePageCommand]) *DeletePageHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg DeletePageCommand) error {
		if !gates.commandsEnabled() {
			return ErrPageCommandsDisabled
		}
		return service.Delete(ctx, msg.PageID)
	}

	handlerOpts := []commands.HandlerOption[DeletePageCommand]{
		commands.WithLogger[DeletePageCommand](baseLogger),
		commands.WithOperation[DeletePageCommand]("pages.delete"),
		commands.WithMessageFields(func(msg DeletePageCommand) map[string]any {
			return map[string]any{"page_id": msg.PageID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeletePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePageHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[DeletePageCommand].
func (h *DeletePageHandler) Execute(ctx context.Context, msg DeletePageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MoveSectionHandler reorders page sections.
type MoveSectionHandler struct {
	inner *commands.Handler[MoveSectionCommand]
}

// NewMoveSectionHandler constructs a handler wired to the page service.
func NewMoveSectionHandler(service pages.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[MoveSectionCommand]) *MoveSectionHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg MoveSectionCommand) error {
		if !gates.commandsEnabled() {
			return ErrPageCommandsDisabled
		}
		_, err := service.MoveSection(ctx, msg.PageID, msg.SectionID, msg.Direction)
		return err
	}

	handlerOpts := []commands.HandlerOption[MoveSectionCommand]{
		commands.WithLogger[MoveSectionCommand](baseLogger),
		commands.WithOperation[MoveSectionCommand]("pages.section.move"),
		commands.WithMessageFields(func(msg MoveSectionCommand) map[string]any {
			return map[string]any{
				"page_id":    msg.PageID,
				"section_id": msg.SectionID,
				"direction":  msg.Direction,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MoveSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MoveSectionHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[MoveSectionCommand].
func (h *MoveSectionHandler) Execute(ctx context.Context, msg MoveSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}
