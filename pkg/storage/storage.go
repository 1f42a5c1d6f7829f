package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Driver names a supported SQL backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

var (
	ErrDriverUnsupported = errors.New("storage: unsupported driver")
	ErrDSNRequired       = errors.New("storage: dsn required")
)

// Config captures how the bun provider connects to its database.
type Config struct {
	Driver       Driver `json:"driver"`
	DSN          string `json:"dsn"`
	MaxOpenConns int    `json:"max_open_conns,omitempty"`
	// Migrate creates missing tables when the database is opened.
	Migrate bool `json:"migrate,omitempty"`
}

// NormalizeDriver maps common driver aliases onto a Driver.
func NormalizeDriver(value string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "postgresql", "pgx", "pg":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrDriverUnsupported, value)
	}
}

// Validate checks the driver and DSN.
func (c Config) Validate() error {
	if _, err := NormalizeDriver(string(c.Driver)); err != nil {
		return err
	}
	if strings.TrimSpace(c.DSN) == "" {
		return ErrDSNRequired
	}
	return nil
}
