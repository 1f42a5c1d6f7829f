package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	sitekit "github.com/goliatone/go-sitekit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("sitekit: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("sitekit", flag.ContinueOnError)
	addr := flags.String("addr", "", "HTTP listen address (overrides SITEKIT_HTTP_ADDR)")
	envFile := flags.String("env", ".env", "Optional dotenv file")
	importDir := flags.String("import", "", "Directory to import Markdown pages from, relative to SITEKIT_MARKDOWN_DIR")
	sync := flags.Bool("sync", false, "Overwrite pages imported before")
	collection := flags.String("collection", "", "Collection for documents without one")
	scope := flags.String("scope", "", "Scope key for documents without one")
	importOnly := flags.Bool("import-only", false, "Exit after importing instead of serving")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	cfg, err := configFromEnv(sitekit.DefaultConfig(), os.Getenv)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTP.Address = *addr
	}

	module, err := sitekit.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if *importDir != "" {
		if err := runImport(ctx, module, *importDir, *collection, *scope, *sync); err != nil {
			return err
		}
	}
	if *importOnly {
		return nil
	}
	return serve(ctx, cfg.HTTP.Address, module.HTTPHandler())
}

func runImport(ctx context.Context, module *sitekit.Module, dir, collection, scope string, sync bool) error {
	set := module.Container().Commands()
	if set == nil || set.Markdown == nil {
		return fmt.Errorf("markdown commands not configured; set SITEKIT_MARKDOWN_DIR and keep commands enabled")
	}
	if err := set.Markdown.Run(ctx, dir, collection, scope, sync); err != nil {
		return fmt.Errorf("execute markdown command: %w", err)
	}
	return nil
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("sitekit: listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// configFromEnv overlays SITEKIT_* variables on cfg.
func configFromEnv(cfg sitekit.Config, getenv func(string) string) (sitekit.Config, error) {
	str := func(key string, target *string) {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			*target = value
		}
	}

	str("SITEKIT_STORAGE_PROVIDER", &cfg.Storage.Provider)
	str("SITEKIT_DB_DRIVER", &cfg.Storage.Driver)
	str("SITEKIT_DB_DSN", &cfg.Storage.DSN)
	str("SITEKIT_HTTP_ADDR", &cfg.HTTP.Address)
	str("SITEKIT_HTTP_BASE_PATH", &cfg.HTTP.BasePath)
	str("SITEKIT_LOG_PROVIDER", &cfg.Logging.Provider)
	str("SITEKIT_LOG_LEVEL", &cfg.Logging.Level)
	str("SITEKIT_LOG_FORMAT", &cfg.Logging.Format)
	str("SITEKIT_MARKDOWN_PATTERN", &cfg.Markdown.Pattern)
	str("SITEKIT_MARKDOWN_COLLECTION", &cfg.Markdown.Collection)
	str("SITEKIT_MARKDOWN_SCOPE", &cfg.Markdown.Scope)
	str("SITEKIT_PRODUCTS_LABEL", &cfg.Navigation.ProductsLabel)
	str("SITEKIT_SERVICES_LABEL", &cfg.Navigation.ServicesLabel)

	if dir := strings.TrimSpace(getenv("SITEKIT_MARKDOWN_DIR")); dir != "" {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
		cfg.Markdown.ContentDir = dir
	}
	if origins := strings.TrimSpace(getenv("SITEKIT_CORS_ORIGINS")); origins != "" {
		cfg.HTTP.CORSOrigins = splitList(origins)
	}

	var err error
	if cfg.Storage.MaxOpenConns, err = intEnv(getenv, "SITEKIT_DB_MAX_OPEN_CONNS", cfg.Storage.MaxOpenConns); err != nil {
		return cfg, err
	}
	if cfg.Layouts.Default, err = intEnv(getenv, "SITEKIT_DEFAULT_LAYOUT", cfg.Layouts.Default); err != nil {
		return cfg, err
	}
	if cfg.Storage.Migrate, err = boolEnv(getenv, "SITEKIT_DB_MIGRATE", cfg.Storage.Migrate); err != nil {
		return cfg, err
	}
	if cfg.Cache.Enabled, err = boolEnv(getenv, "SITEKIT_CACHE_ENABLED", cfg.Cache.Enabled); err != nil {
		return cfg, err
	}
	if cfg.Features.Commands, err = boolEnv(getenv, "SITEKIT_COMMANDS_ENABLED", cfg.Features.Commands); err != nil {
		return cfg, err
	}
	if value := strings.TrimSpace(getenv("SITEKIT_CACHE_TTL")); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil {
			return cfg, fmt.Errorf("SITEKIT_CACHE_TTL: %w", err)
		}
		cfg.Cache.DefaultTTL = ttl
	}
	return cfg, nil
}

func intEnv(getenv func(string) string, key string, fallback int) (int, error) {
	value := strings.TrimSpace(getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func boolEnv(getenv func(string) string, key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
