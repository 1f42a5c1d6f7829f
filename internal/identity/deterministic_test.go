package identity_test

import (
	"testing"

	"github.com/goliatone/go-sitekit/internal/identity"
	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := identity.PageUUID("pages", "global", "about")
	second := identity.PageUUID("pages", " global ", "About")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected normalized keys to match: %s != %s", first, second)
	}
	if other := identity.PageUUID("store_pages", "store:1", "about"); other == first {
		t.Fatal("expected different scopes to produce different ids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := identity.UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}

func TestSectionIDDependsOnPosition(t *testing.T) {
	page := identity.PageUUID("pages", "global", "home")
	if identity.SectionID(page, 0) == identity.SectionID(page, 1) {
		t.Fatal("expected distinct section ids per position")
	}
}
