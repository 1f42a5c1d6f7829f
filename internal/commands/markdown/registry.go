package markdowncmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitekit/internal/commands"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// ErrImporterRequired is returned when commands are registered without an importer.
var ErrImporterRequired = errors.New("markdown command registration: importer is nil")

// CommandRegistry accepts the constructed handlers, e.g. a go-command registry.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet holds the import and sync handlers together with the target
// applied to runs that do not name one.
type HandlerSet struct {
	Import *ImportDirectoryHandler
	Sync   *SyncDirectoryHandler

	collection string
	scope      string
	logger     interfaces.Logger
}

// Option customises registration.
type Option func(*options)

type options struct {
	collection        string
	scope             string
	importHandlerOpts []commands.HandlerOption[ImportDirectoryCommand]
	syncHandlerOpts   []commands.HandlerOption[SyncDirectoryCommand]
}

// WithDefaultTarget sets the collection and scope key used by Run and
// Schedule when the caller leaves them empty.
func WithDefaultTarget(collection, scope string) Option {
	return func(cfg *options) {
		cfg.collection = strings.TrimSpace(collection)
		cfg.scope = strings.TrimSpace(scope)
	}
}

// WithImportHandlerOptions forwards options to the ImportDirectoryHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncDirectoryHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the import and sync handlers around service
// and registers them with reg when one is given. A default target that does
// not parse is rejected here rather than on the first run.
func RegisterMarkdownCommands(reg CommandRegistry, service DirectoryImporter, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, ErrImporterRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if _, err := domain.NormalizeCollection(cfg.collection); err != nil {
		return nil, fmt.Errorf("markdown command registration: %w", err)
	}
	if _, err := domain.ParseScope(cfg.scope); err != nil {
		return nil, fmt.Errorf("markdown command registration: %w", err)
	}

	logger := commands.CommandLogger(provider, "markdown")
	set := &HandlerSet{
		Import:     NewImportDirectoryHandler(service, logger, gates, cfg.importHandlerOpts...),
		Sync:       NewSyncDirectoryHandler(service, logger, gates, cfg.syncHandlerOpts...),
		collection: cfg.collection,
		scope:      cfg.scope,
		logger:     logger,
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Import); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Sync); err != nil {
			return nil, err
		}
	}

	logging.WithFields(logger, map[string]any{
		"collection": set.collection,
		"scope":      set.scope,
		"registered": reg != nil,
	}).Debug("markdown.commands.registered")
	return set, nil
}

// ImportMessage builds an import message for dir, falling back to the
// default target for an empty collection or scope.
func (s *HandlerSet) ImportMessage(dir, collection, scope string) ImportDirectoryCommand {
	collection, scope = s.target(collection, scope)
	return ImportDirectoryCommand{Directory: dir, Collection: collection, Scope: scope}
}

// SyncMessage is ImportMessage for sync runs.
func (s *HandlerSet) SyncMessage(dir, collection, scope string) SyncDirectoryCommand {
	collection, scope = s.target(collection, scope)
	return SyncDirectoryCommand{Directory: dir, Collection: collection, Scope: scope}
}

// Run imports dir into the given target. With sync set, pages imported
// before from the same documents are overwritten.
func (s *HandlerSet) Run(ctx context.Context, dir, collection, scope string, sync bool) error {
	if sync {
		return s.Sync.Execute(ctx, s.SyncMessage(dir, collection, scope))
	}
	return s.Import.Execute(ctx, s.ImportMessage(dir, collection, scope))
}

// Schedule registers a periodic sync of dir into the default target. The
// handler runs with a background context. A nil registrar is a no-op.
func (s *HandlerSet) Schedule(reg CronRegistrar, cfg command.HandlerConfig, dir string) error {
	if s == nil {
		return nil
	}
	return RegisterMarkdownCron(reg, s.Sync, cfg, s.SyncMessage(dir, "", ""))
}

func (s *HandlerSet) target(collection, scope string) (string, string) {
	if strings.TrimSpace(collection) == "" {
		collection = s.collection
	}
	if strings.TrimSpace(scope) == "" {
		scope = s.scope
	}
	return collection, scope
}

// RegisterMarkdownCron wires the sync handler into a cron registrar.
func RegisterMarkdownCron(reg CronRegistrar, handler *SyncDirectoryHandler, cfg command.HandlerConfig, msg SyncDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
