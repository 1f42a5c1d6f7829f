package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const (
	rootModule       = "sitekit"
	pagesModule      = "sitekit.pages"
	navigationModule = "sitekit.navigation"
	siteviewModule   = "sitekit.siteview"
	commandsModule   = "sitekit.commands"
	importerModule   = "sitekit.importer"
	httpModule       = "sitekit.http"
)

const (
	fieldScope      = "scope"
	fieldCollection = "collection"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for page stores and the resolver.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// NavigationLogger returns the logger namespace reserved for navigation services.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// SiteviewLogger returns the logger namespace reserved for entity view loading.
func SiteviewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, siteviewModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// ImporterLogger returns the logger namespace reserved for markdown imports.
func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

// HTTPLogger returns the logger namespace reserved for the read API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithScope enriches the logger with the scope key and collection being
// served. Empty values are ignored.
func WithScope(logger interfaces.Logger, collection, scopeKey string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(collection); trimmed != "" {
		fields[fieldCollection] = trimmed
	}
	if trimmed := strings.TrimSpace(scopeKey); trimmed != "" {
		fields[fieldScope] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
