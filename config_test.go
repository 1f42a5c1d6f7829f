package sitekit_test

import (
	"errors"
	"testing"

	sitekit "github.com/goliatone/go-sitekit"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := sitekit.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestNewRejectsInvalidLayout(t *testing.T) {
	cfg := sitekit.DefaultConfig()
	cfg.Layouts.Default = 9
	if _, err := sitekit.New(cfg); !errors.Is(err, sitekit.ErrDefaultLayoutInvalid) {
		t.Fatalf("expected ErrDefaultLayoutInvalid, got %v", err)
	}
}

func TestNewRequiresDSNForBunStorage(t *testing.T) {
	cfg := sitekit.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = ""
	if _, err := sitekit.New(cfg); !errors.Is(err, sitekit.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}
