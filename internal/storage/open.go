// Package storage opens the SQL database behind the bun repositories and
// creates the tables they read and write.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	storagecfg "github.com/goliatone/go-sitekit/pkg/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// Open connects to the configured database, verifies the connection and
// optionally runs Migrate.
func Open(ctx context.Context, cfg storagecfg.Config, logger interfaces.Logger) (*bun.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	driver, _ := storagecfg.NormalizeDriver(string(cfg.Driver))

	var (
		driverName string
		dialect    schema.Dialect
	)
	switch driver {
	case storagecfg.DriverPostgres:
		driverName, dialect = "pgx", pgdialect.New()
	default:
		driverName, dialect = "sqlite3", sqlitedialect.New()
	}

	sqlDB, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage open %s: %w", driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	} else if driver == storagecfg.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("storage ping %s: %w", driver, err)
	}

	db := bun.NewDB(sqlDB, dialect)
	if cfg.Migrate {
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	logging.WithFields(logging.Ensure(logger), map[string]any{
		"driver":  string(driver),
		"migrate": cfg.Migrate,
	}).Info("storage.open.success")
	return db, nil
}

// Models lists the bun models persisted by the repositories.
func Models() []any {
	return []any{
		(*pages.Page)(nil),
		(*navigation.Item)(nil),
	}
}

type index struct {
	name    string
	model   any
	columns []string
}

var indexes = []index{
	{name: "idx_site_pages_scope_slug", model: (*pages.Page)(nil), columns: []string{"collection", "scope_key", "slug"}},
	{name: "idx_navigation_items_scope", model: (*navigation.Item)(nil), columns: []string{"collection", "scope_key"}},
	{name: "idx_navigation_items_target", model: (*navigation.Item)(nil), columns: []string{"link_type", "target"}},
}

// Migrate creates missing tables and indexes. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage migrate table %T: %w", model, err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().Model(idx.model).Index(idx.name).Column(idx.columns...).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage migrate index %s: %w", idx.name, err)
		}
	}
	return nil
}
