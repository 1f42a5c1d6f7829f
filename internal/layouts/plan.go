package layouts

import (
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Kind names a block in a render plan.
type Kind string

const (
	KindHero            Kind = "hero"
	KindClaimedProvider Kind = "claimed_provider"
	KindLocalContext    Kind = "local_context"
	KindSection         Kind = "section"
	KindFAQ             Kind = "faq"
	KindClaimCTA        Kind = "claim_cta"
	KindRelated         Kind = "related"
	KindExternal        Kind = "external"
)

// Arrangement describes how a group lays out its blocks.
type Arrangement string

const (
	ArrangeStack    Arrangement = "stack"
	ArrangeSplit    Arrangement = "split"
	ArrangeGrid2    Arrangement = "grid-2"
	ArrangeCardGrid Arrangement = "card-grid"
	ArrangeTimeline Arrangement = "timeline"
	ArrangeColumns  Arrangement = "columns"
)

// Hero variants.
const (
	HeroStacked    = "stacked"
	HeroBannerCard = "banner-card"
	HeroFullWidth  = "full-width-banner"
)

// Labels attached to blocks by some layouts.
const (
	LabelMoreQuestions = "More questions"
	// SidebarFAQLimit caps the FAQs shown in the magazine sidebar.
	SidebarFAQLimit = 3
)

// Block is a single placed block. Exactly one payload field is set,
// matching Kind.
type Block struct {
	Kind    Kind   `json:"kind"`
	Variant string `json:"variant,omitempty"`
	Label   string `json:"label,omitempty"`

	Hero            *interfaces.EntityHero        `json:"hero,omitempty"`
	ClaimedProvider *interfaces.ClaimedProvider   `json:"claimed_provider,omitempty"`
	LocalContext    *interfaces.LocalContext      `json:"local_context,omitempty"`
	Section         *sections.Fragment            `json:"section,omitempty"`
	FAQs            []interfaces.FAQ              `json:"faqs,omitempty"`
	Related         []interfaces.RelatedItem      `json:"related,omitempty"`
	External        []interfaces.ExternalResource `json:"external,omitempty"`
	ClaimCTA        *interfaces.ClaimCTA          `json:"claim_cta,omitempty"`
}

// Group is a region of the plan. Column groups nest further groups instead
// of holding blocks.
type Group struct {
	Region      string      `json:"region"`
	Arrangement Arrangement `json:"arrangement"`
	Blocks      []Block     `json:"blocks,omitempty"`
	Columns     []Group     `json:"columns,omitempty"`
}

func (g Group) empty() bool {
	if len(g.Blocks) > 0 {
		return false
	}
	for _, column := range g.Columns {
		if !column.empty() {
			return false
		}
	}
	return true
}

// RenderPlan is the ordered arrangement of an entity view.
type RenderPlan struct {
	Layout ID      `json:"layout"`
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// Blocks flattens the plan in reading order.
func (p RenderPlan) Blocks() []Block {
	var out []Block
	var walk func(groups []Group)
	walk = func(groups []Group) {
		for _, group := range groups {
			out = append(out, group.Blocks...)
			walk(group.Columns)
		}
	}
	walk(p.Groups)
	return out
}

// Count returns how many blocks of kind the plan holds.
func (p RenderPlan) Count(kind Kind) int {
	count := 0
	for _, block := range p.Blocks() {
		if block.Kind == kind {
			count++
		}
	}
	return count
}

// Find returns the group path and block of the first block of kind.
func (p RenderPlan) Find(kind Kind) (string, Block, bool) {
	var (
		region string
		found  Block
		ok     bool
	)
	var walk func(prefix string, groups []Group)
	walk = func(prefix string, groups []Group) {
		for _, group := range groups {
			if ok {
				return
			}
			path := group.Region
			if prefix != "" {
				path = prefix + "/" + group.Region
			}
			for _, block := range group.Blocks {
				if block.Kind == kind {
					region, found, ok = path, block, true
					return
				}
			}
			walk(path, group.Columns)
		}
	}
	walk("", p.Groups)
	return region, found, ok
}

// Sections returns the fragments placed in the plan in reading order.
func (p RenderPlan) Sections() []sections.Fragment {
	var out []sections.Fragment
	for _, block := range p.Blocks() {
		if block.Kind == KindSection && block.Section != nil {
			out = append(out, *block.Section)
		}
	}
	return out
}
