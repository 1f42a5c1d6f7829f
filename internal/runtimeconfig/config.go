package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	storagecfg "github.com/goliatone/go-sitekit/pkg/storage"
)

var ErrStorageProviderUnknown = errors.New("sitekit config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("sitekit config: storage dsn is required for the bun provider")
var ErrCacheTTLInvalid = errors.New("sitekit config: cache ttl must be positive when cache is enabled")
var ErrNavigationOrderInvalid = errors.New("sitekit config: synthetic navigation orders must be distinct")
var ErrDefaultLayoutInvalid = errors.New("sitekit config: default layout must be between 1 and 5")
var ErrMarkdownFeatureRequired = errors.New("sitekit config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("sitekit config: markdown content directory is required when markdown is enabled")
var ErrHTTPAddressRequired = errors.New("sitekit config: http address is required")
var ErrLoggingProviderUnknown = errors.New("sitekit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitekit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitekit config: logging format is invalid")

const (
	StorageProviderMemory = "memory"
	StorageProviderBun    = "bun"

	LoggingProviderGoLogger = "gologger"
	LoggingProviderNone     = "none"
)

// Config aggregates feature flags and adapter bindings for the sitekit module.
type Config struct {
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Layouts    LayoutsConfig
	Sanitizer  SanitizerConfig
	Markdown   MarkdownConfig
	HTTP       HTTPConfig
	Features   Features
	Logging    LoggingConfig
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	// Provider is "memory" or "bun".
	Provider     string
	Driver       string
	DSN          string
	MaxOpenConns int
	Migrate      bool
}

// CacheConfig captures cache behaviour toggles for the bun repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig overrides the synthetic Products/Services items.
type NavigationConfig struct {
	ProductsLabel string
	ServicesLabel string
	ProductsOrder int
	ServicesOrder int
}

// LayoutsConfig sets the layout used when a page selects none.
type LayoutsConfig struct {
	Default int
}

// SanitizerConfig extends the HTML sanitizer policy.
type SanitizerConfig struct {
	AllowElements       []string
	AllowDataAttributes bool
	AllowTables         bool
}

// MarkdownConfig captures filesystem behaviour for Markdown page imports.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	// Collection and Scope are the import target used when neither the
	// command nor the document frontmatter names one.
	Collection string
	Scope      string
}

// HTTPConfig configures the read API.
type HTTPConfig struct {
	Address     string
	BasePath    string
	CORSOrigins []string
}

// Features toggles module functionality.
type Features struct {
	Commands bool
	Markdown bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	// Levels overrides Level per module, keyed by module name.
	Levels map[string]string
}

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: StorageProviderMemory,
			Driver:   string(storagecfg.DriverSQLite),
			Migrate:  true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{
			ProductsLabel: "Products",
			ServicesLabel: "Services",
			ProductsOrder: 9998,
			ServicesOrder: 9999,
		},
		Layouts: LayoutsConfig{
			Default: 1,
		},
		Sanitizer: SanitizerConfig{
			AllowTables: true,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		HTTP: HTTPConfig{
			Address:  ":8080",
			BasePath: "/api",
		},
		Features: Features{
			Commands: true,
		},
		Logging: LoggingConfig{
			Provider: LoggingProviderGoLogger,
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case StorageProviderMemory:
	case StorageProviderBun:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
		if _, err := storagecfg.NormalizeDriver(cfg.Storage.Driver); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Navigation.ProductsOrder != 0 && cfg.Navigation.ProductsOrder == cfg.Navigation.ServicesOrder {
		return ErrNavigationOrderInvalid
	}
	if cfg.Layouts.Default < 0 || cfg.Layouts.Default > 5 {
		return fmt.Errorf("%w: %d", ErrDefaultLayoutInvalid, cfg.Layouts.Default)
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if strings.TrimSpace(cfg.HTTP.Address) == "" {
		return ErrHTTPAddressRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	for module, level := range cfg.Logging.Levels {
		if !isSupportedLevel(strings.TrimSpace(level)) {
			return fmt.Errorf("%w: %s=%s", ErrLoggingLevelInvalid, module, level)
		}
	}
	if provider == LoggingProviderGoLogger {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case LoggingProviderGoLogger, LoggingProviderNone:
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
