package gologger

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// RootName prefixes every module logger handed out by the provider.
const RootName = "sitekit"

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named modules. Short names such as
	// "pages" are expanded to "sitekit.pages".
	Focus []string
	// Levels overrides Level per module. A key also covers its children,
	// so "navigation" applies to "sitekit.navigation.cache".
	Levels map[string]string
}

// Provider hands out go-logger module loggers named under RootName.
type Provider struct {
	root   *glog.BaseLogger
	levels map[string]string

	mu      sync.Mutex
	leveled map[string]bool
}

// NewProvider constructs a logger provider backed by go-logger.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{glog.WithName(RootName)}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	levels := make(map[string]string, len(cfg.Levels))
	for module, raw := range cfg.Levels {
		level := normalizeLevel(raw)
		if level == "" {
			return nil, fmt.Errorf("logging: unsupported level %q for module %q", raw, module)
		}
		levels[ModuleName(module)] = level
	}

	root := glog.NewLogger(options...)
	if focus := normalizeFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root, levels: levels, leveled: map[string]bool{}}, nil
}

// ModuleName expands a short module name to its full logger name.
func ModuleName(name string) string {
	name = strings.Trim(strings.TrimSpace(name), ".")
	switch {
	case name == "", name == RootName:
		return RootName
	case strings.HasPrefix(name, RootName+"."):
		return name
	default:
		return RootName + "." + name
	}
}

// GetLogger satisfies interfaces.LoggerProvider. Module level overrides are
// applied the first time a name is requested.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	name = ModuleName(name)
	if name == RootName {
		return wrap(p.root)
	}
	child := p.root.GetLogger(name)
	if level := p.levelFor(name); level != "" {
		p.mu.Lock()
		if !p.leveled[name] {
			child.WithLevel(level)
			p.leveled[name] = true
		}
		p.mu.Unlock()
	}
	return wrap(child)
}

// levelFor returns the override of the closest configured ancestor.
func (p *Provider) levelFor(name string) string {
	for candidate := name; candidate != ""; {
		if level, ok := p.levels[candidate]; ok {
			return level
		}
		idx := strings.LastIndex(candidate, ".")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return ""
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, withErrorAttrs(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, withErrorAttrs(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, withErrorAttrs(args)...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(maps.Clone(fields)))
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}

// withErrorAttrs appends the go-errors category and text code of an
// "error" argument so rejected commands can be filtered by code.
func withErrorAttrs(args []any) []any {
	var tagged *goerrors.Error
	present := map[string]bool{}
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		present[key] = true
		if err, ok := args[i+1].(error); ok && key == "error" && tagged == nil {
			errors.As(err, &tagged)
		}
	}
	if tagged == nil {
		return args
	}

	out := slices.Clip(args)
	if tagged.Category != "" && !present["error_category"] {
		out = append(out, "error_category", string(tagged.Category))
	}
	if tagged.TextCode != "" && !present["text_code"] {
		out = append(out, "text_code", tagged.TextCode)
	}
	return out
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return ""
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}

func normalizeFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			out = append(out, ModuleName(name))
		}
	}
	return out
}
