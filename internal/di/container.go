package di

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-sitekit/internal/commands"
	markdowncmd "github.com/goliatone/go-sitekit/internal/commands/markdown"
	navigationcmd "github.com/goliatone/go-sitekit/internal/commands/navigation"
	pagescmd "github.com/goliatone/go-sitekit/internal/commands/pages"
	sitehttp "github.com/goliatone/go-sitekit/internal/http"
	"github.com/goliatone/go-sitekit/internal/importer"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/logging/gologger"
	"github.com/goliatone/go-sitekit/internal/markdown"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/runtimeconfig"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/internal/siteview"
	"github.com/goliatone/go-sitekit/internal/storage"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	storagecfg "github.com/goliatone/go-sitekit/pkg/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Memory repositories are used unless a
// bun database is supplied or configured.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheConfig   *repocache.Config
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo pages.PageRepository
	navRepo  navigation.ItemRepository

	catalog   interfaces.CatalogProvider
	entities  interfaces.EntityProvider
	contentFS fs.FS

	pageSvc     pages.Service
	navSvc      navigation.Service
	renderer    *sections.Renderer
	composer    *siteview.Composer
	loader      *siteview.Loader
	siteviewSvc *siteview.Service
	importer    *importer.Importer
	commands    *CommandSet
}

// CommandSet groups the command handlers built by the container.
type CommandSet struct {
	PublishPage          *pagescmd.PublishPageHandler
	DeletePage           *pagescmd.DeletePageHandler
	MoveSection          *pagescmd.MoveSectionHandler
	InvalidateNavigation *navigationcmd.InvalidateNavigationCacheHandler
	Markdown             *markdowncmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB makes the container use bun repositories on db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheConfig replaces the repository cache defaults used when caching is
// enabled and no cache service was injected.
func WithCacheConfig(cfg repocache.Config) Option {
	return func(c *Container) {
		c.cacheConfig = &cfg
	}
}

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithCatalog binds the catalog collaborator used for synthetic navigation
// items and listings.
func WithCatalog(provider interfaces.CatalogProvider) Option {
	return func(c *Container) {
		c.catalog = provider
	}
}

// WithEntities binds the entity profile collaborator.
func WithEntities(provider interfaces.EntityProvider) Option {
	return func(c *Container) {
		c.entities = provider
	}
}

// WithContentFS sets the filesystem Markdown imports read from. Defaults to
// the configured content directory.
func WithContentFS(filesystem fs.FS) Option {
	return func(c *Container) {
		c.contentFS = filesystem
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// WithNavigationService overrides the default navigation service binding.
func WithNavigationService(svc navigation.Service) Option {
	return func(c *Container) {
		c.navSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		pageRepo: pages.NewMemoryPageRepository(),
		navRepo:  navigation.NewMemoryItemRepository(),
	}
	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	if err := c.configureImporter(); err != nil {
		return nil, err
	}
	c.configureCommands()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case runtimeconfig.LoggingProviderGoLogger:
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
			Levels:    c.Config.Logging.Levels,
		})
		if err != nil {
			return fmt.Errorf("configure logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = nil
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil {
		return nil
	}
	if !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), runtimeconfig.StorageProviderBun) {
		return nil
	}
	driver, err := storagecfg.NormalizeDriver(c.Config.Storage.Driver)
	if err != nil {
		return err
	}
	db, err := storage.Open(context.Background(), storagecfg.Config{
		Driver:       driver,
		DSN:          c.Config.Storage.DSN,
		MaxOpenConns: c.Config.Storage.MaxOpenConns,
		Migrate:      c.Config.Storage.Migrate,
	}, logging.ModuleLogger(c.loggerProvider, "sitekit.storage"))
	if err != nil {
		return err
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		if c.cacheConfig != nil {
			cfg = *c.cacheConfig
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			logging.WithFields(logging.ModuleLogger(c.loggerProvider, "sitekit.cache"), map[string]any{
				"error":    err,
				"ttl":      cfg.TTL,
				"capacity": cfg.Capacity,
			}).Warn("sitekit.cache.disabled")
			return
		}
		c.cacheService = service
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.navRepo = navigation.NewBunItemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureServices() {
	if c.navSvc == nil {
		c.navSvc = navigation.NewService(c.navRepo,
			navigation.WithPageLookup(pageRepositoryLookup{repo: c.pageRepo}),
			navigation.WithLogger(logging.NavigationLogger(c.loggerProvider)),
		)
	}
	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(c.pageRepo,
			pages.WithDeletionListener(c.navSvc),
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		)
	}

	siteLogger := logging.SiteviewLogger(c.loggerProvider)
	c.renderer = sections.NewRenderer(
		sections.WithSanitizer(sections.NewSanitizer(sections.SanitizerConfig{
			AllowElements:       c.Config.Sanitizer.AllowElements,
			AllowDataAttributes: c.Config.Sanitizer.AllowDataAttributes,
			AllowTables:         c.Config.Sanitizer.AllowTables,
		})),
		sections.WithMarkdownParser(markdown.NewGoldmarkParser(interfaces.ParseOptions{})),
		sections.WithLogger(siteLogger),
	)
	c.composer = siteview.NewComposer(
		siteview.WithRenderer(c.renderer),
		siteview.WithNavigationConfig(siteview.NavigationConfig{
			ProductsLabel: c.Config.Navigation.ProductsLabel,
			ServicesLabel: c.Config.Navigation.ServicesLabel,
			ProductsOrder: c.Config.Navigation.ProductsOrder,
			ServicesOrder: c.Config.Navigation.ServicesOrder,
		}),
		siteview.WithDefaultLayout(c.Config.Layouts.Default),
		siteview.WithComposerLogger(siteLogger),
	)

	loaderOpts := []siteview.LoaderOption{siteview.WithLoaderLogger(siteLogger)}
	if c.catalog != nil {
		loaderOpts = append(loaderOpts, siteview.WithCatalog(c.catalog))
	}
	if c.entities != nil {
		loaderOpts = append(loaderOpts, siteview.WithEntities(c.entities))
	}
	c.loader = siteview.NewLoader(c.pageSvc, c.navSvc, loaderOpts...)
	c.siteviewSvc = siteview.NewService(c.loader, c.composer, siteLogger)
}

func (c *Container) configureImporter() error {
	if !c.Config.Features.Markdown {
		return nil
	}
	filesystem := c.contentFS
	if filesystem == nil {
		filesystem = os.DirFS(c.Config.Markdown.ContentDir)
	}
	imp, err := importer.New(filesystem, c.pageSvc,
		importer.WithLoaderConfig(filesystem, markdown.LoaderConfig{
			Pattern:   c.Config.Markdown.Pattern,
			Recursive: c.Config.Markdown.Recursive,
		}),
		importer.WithLogger(logging.ImporterLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	c.importer = imp
	return nil
}

func (c *Container) configureCommands() {
	if !c.Config.Features.Commands {
		return
	}
	enabled := func() bool { return c.Config.Features.Commands }
	logger := commands.CommandLogger(c.loggerProvider, "pages")
	pageGates := pagescmd.FeatureGates{CommandsEnabled: enabled}

	set := &CommandSet{
		PublishPage: pagescmd.NewPublishPageHandler(c.pageSvc, logger, pageGates),
		DeletePage:  pagescmd.NewDeletePageHandler(c.pageSvc, logger, pageGates),
		MoveSection: pagescmd.NewMoveSectionHandler(c.pageSvc, logger, pageGates),
		InvalidateNavigation: navigationcmd.NewInvalidateNavigationCacheHandler(c.navSvc,
			commands.CommandLogger(c.loggerProvider, "navigation"),
			navigationcmd.FeatureGates{CommandsEnabled: enabled},
		),
	}
	if c.importer != nil {
		markdownSet, err := markdowncmd.RegisterMarkdownCommands(nil, c.importer, c.loggerProvider, markdowncmd.FeatureGates{
			MarkdownEnabled: func() bool { return c.Config.Features.Markdown },
		}, markdowncmd.WithDefaultTarget(c.Config.Markdown.Collection, c.Config.Markdown.Scope))
		if err != nil {
			logging.WithFields(logging.ModuleLogger(c.loggerProvider, "sitekit.commands"), map[string]any{
				"error": err,
			}).Warn("sitekit.commands.markdown_disabled")
		} else {
			set.Markdown = markdownSet
		}
	}
	c.commands = set
}

// Close releases the database opened by the container.
func (c *Container) Close() error {
	if c.bunDB != nil && c.ownsDB {
		return c.bunDB.Close()
	}
	return nil
}

// LoggerProvider exposes the configured logger provider; nil means no-op.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the bun database, nil for memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// PageService returns the configured page service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// NavigationService returns the configured navigation service.
func (c *Container) NavigationService() navigation.Service {
	return c.navSvc
}

// Renderer returns the section renderer.
func (c *Container) Renderer() *sections.Renderer {
	return c.renderer
}

// SiteviewService returns the entity view service.
func (c *Container) SiteviewService() *siteview.Service {
	return c.siteviewSvc
}

// Importer returns the Markdown importer, nil when the markdown feature is off.
func (c *Container) Importer() *importer.Importer {
	return c.importer
}

// Commands returns the command handlers, nil when commands are disabled.
func (c *Container) Commands() *CommandSet {
	return c.commands
}

// SiteAPI builds the HTTP read API over the container's services.
func (c *Container) SiteAPI(opts ...sitehttp.Option) *sitehttp.SiteAPI {
	base := []sitehttp.Option{
		sitehttp.WithBasePath(c.Config.HTTP.BasePath),
		sitehttp.WithPageService(c.pageSvc),
		sitehttp.WithCORSOrigins(c.Config.HTTP.CORSOrigins...),
		sitehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	return sitehttp.NewSiteAPI(c.siteviewSvc, append(base, opts...)...)
}

type pageRepositoryLookup struct {
	repo pages.PageRepository
}

func (l pageRepositoryLookup) Get(ctx context.Context, id uuid.UUID) (*pages.Page, error) {
	return l.repo.GetByID(ctx, id)
}
