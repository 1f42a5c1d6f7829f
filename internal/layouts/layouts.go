// Package layouts arranges the blocks of an entity view into one of five
// fixed compositions. Composition is pure: the same layout and blocks always
// produce the same plan.
package layouts

import (
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// ID selects one of the fixed arrangements.
type ID int

const (
	Standard ID = iota + 1
	Split
	Cards
	Timeline
	Magazine
)

var names = map[ID]string{
	Standard: "standard",
	Split:    "split",
	Cards:    "cards",
	Timeline: "timeline",
	Magazine: "magazine",
}

// IDs returns every layout in table order.
func IDs() []ID {
	return []ID{Standard, Split, Cards, Timeline, Magazine}
}

// Valid reports whether id is one of the five layouts.
func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

// Name returns the layout's lowercase name.
func (id ID) Name() string {
	return names[Normalize(int(id))]
}

// Normalize maps unknown or unset values onto Standard.
func Normalize(value int) ID {
	id := ID(value)
	if !id.Valid() {
		return Standard
	}
	return id
}

// Blocks is the semantic content of an entity view. Every field is optional
// except Hero, and a zero Hero is treated as absent.
type Blocks struct {
	Hero              interfaces.EntityHero
	ClaimedProvider   *interfaces.ClaimedProvider
	LocalContext      *interfaces.LocalContext
	Sections          []sections.Fragment
	FAQs              []interfaces.FAQ
	RelatedItems      []interfaces.RelatedItem
	ExternalResources []interfaces.ExternalResource
	ClaimCTA          *interfaces.ClaimCTA
}
