package sitekit

import "github.com/goliatone/go-sitekit/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown     = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrNavigationOrderInvalid     = runtimeconfig.ErrNavigationOrderInvalid
	ErrDefaultLayoutInvalid       = runtimeconfig.ErrDefaultLayoutInvalid
	ErrMarkdownFeatureRequired    = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrHTTPAddressRequired        = runtimeconfig.ErrHTTPAddressRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	NavigationConfig = runtimeconfig.NavigationConfig
	LayoutsConfig    = runtimeconfig.LayoutsConfig
	SanitizerConfig  = runtimeconfig.SanitizerConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	HTTPConfig       = runtimeconfig.HTTPConfig
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
