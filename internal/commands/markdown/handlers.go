package markdowncmd

import (
	"context"
	"fmt"

	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/importer"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	importOperation = "markdown.import_directory"
	syncOperation   = "markdown.sync_directory"
)

var (
	// ErrMarkdownFeatureDisabled is returned when the markdown feature flag is disabled at runtime.
	ErrMarkdownFeatureDisabled = fmt.Errorf("markdown command: %w", commands.ErrDisabled)
)

var (
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]   = (*SyncDirectoryHandler)(nil)
)

// DirectoryImporter is the importer contract the handlers drive.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, dir string, opts importer.Options) (*importer.Result, error)
}

// ImportDirectoryHandler orchestrates Markdown directory imports via the shared command handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied importer.
func NewImportDirectoryHandler(service DirectoryImporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		collection, scope := parseTarget(msg.Collection, msg.Scope)
		return runImport(ctx, service, baseLogger, gates, msg.Directory, importer.Options{
			Collection: collection,
			Scope:      scope,
			DryRun:     msg.DryRun,
		}, "markdown.command.import_directory.completed")
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			return messageFields(msg.Directory, msg.Collection, msg.Scope, msg.DryRun)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler orchestrates Markdown sync runs via the shared command handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied importer.
func NewSyncDirectoryHandler(service DirectoryImporter, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		collection, scope := parseTarget(msg.Collection, msg.Scope)
		return runImport(ctx, service, baseLogger, gates, msg.Directory, importer.Options{
			Collection:     collection,
			Scope:          scope,
			UpdateExisting: true,
			DryRun:         msg.DryRun,
		}, "markdown.command.sync_directory.completed")
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			return messageFields(msg.Directory, msg.Collection, msg.Scope, msg.DryRun)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func runImport(ctx context.Context, service DirectoryImporter, logger interfaces.Logger, gates FeatureGates, dir string, opts importer.Options, event string) error {
	if !gates.markdownEnabled() {
		return ErrMarkdownFeatureDisabled
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := service.ImportDirectory(ctx, dir, opts)
	if err != nil {
		return err
	}
	if result != nil {
		logging.WithFields(logger, map[string]any{
			"created_count":   len(result.Created),
			"updated_count":   len(result.Updated),
			"skipped_count":   len(result.Skipped),
			"error_count":     len(result.Errors),
			"dry_run":         opts.DryRun,
			"update_existing": opts.UpdateExisting,
		}).Info(event)
	}
	return nil
}

func messageFields(directory, collection, scope string, dryRun bool) map[string]any {
	fields := map[string]any{
		"directory": directory,
	}
	if collection != "" {
		fields["collection"] = collection
	}
	if scope != "" {
		fields["scope"] = scope
	}
	if dryRun {
		fields["dry_run"] = true
	}
	return fields
}
