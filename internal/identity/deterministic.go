package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID derives the id of an imported or seeded page from its scope and slug.
func PageUUID(collection, scopeKey, slug string) uuid.UUID {
	return UUID("sitekit:page:" + strings.TrimSpace(collection) + ":" + strings.TrimSpace(scopeKey) + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// NavigationItemUUID derives the id of a seeded navigation item.
func NavigationItemUUID(scopeKey, canonicalKey string) uuid.UUID {
	return UUID("sitekit:navigation_item:" + strings.TrimSpace(scopeKey) + ":" + strings.TrimSpace(canonicalKey))
}

// SectionID derives a stable section id from its page and position at import time.
func SectionID(pageID uuid.UUID, position int) string {
	return UUID("sitekit:section:" + pageID.String() + ":" + strconv.Itoa(position)).String()
}
