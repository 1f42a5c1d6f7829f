package layouts

import (
	"fmt"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Compose arranges blocks according to layout. Unknown layout ids compose as
// Standard. Empty blocks are omitted, every other block appears once, and
// the claim CTA is shown only when no provider has claimed the page.
func Compose(layout int, blocks Blocks) RenderPlan {
	id := Normalize(layout)
	parts := collect(blocks)

	var groups []Group
	switch id {
	case Split:
		groups = composeSplit(parts)
	case Cards:
		groups = composeCards(parts)
	case Timeline:
		groups = composeTimeline(parts)
	case Magazine:
		groups = composeMagazine(parts)
	default:
		groups = composeStandard(parts)
	}

	return RenderPlan{
		Layout: id,
		Name:   id.Name(),
		Groups: prune(groups),
	}
}

// parts holds the non-empty blocks of a view, each at most once.
type parts struct {
	hero     *Block
	provider *Block
	local    *Block
	sections []Block
	faqs     []interfaces.FAQ
	claim    *Block
	related  *Block
	external *Block
}

func collect(blocks Blocks) parts {
	var p parts
	if !blocks.Hero.IsZero() {
		hero := blocks.Hero
		p.hero = &Block{Kind: KindHero, Hero: &hero}
	}
	if blocks.ClaimedProvider != nil {
		provider := *blocks.ClaimedProvider
		p.provider = &Block{Kind: KindClaimedProvider, ClaimedProvider: &provider}
	}
	if blocks.LocalContext != nil && !blocks.LocalContext.IsZero() {
		local := *blocks.LocalContext
		p.local = &Block{Kind: KindLocalContext, LocalContext: &local}
	}
	for i := range blocks.Sections {
		fragment := blocks.Sections[i]
		p.sections = append(p.sections, Block{Kind: KindSection, Section: &fragment})
	}
	if len(blocks.FAQs) > 0 {
		p.faqs = append([]interfaces.FAQ(nil), blocks.FAQs...)
	}
	if blocks.ClaimedProvider == nil && blocks.ClaimCTA != nil {
		cta := *blocks.ClaimCTA
		p.claim = &Block{Kind: KindClaimCTA, ClaimCTA: &cta}
	}
	if len(blocks.RelatedItems) > 0 {
		p.related = &Block{Kind: KindRelated, Related: append([]interfaces.RelatedItem(nil), blocks.RelatedItems...)}
	}
	if len(blocks.ExternalResources) > 0 {
		p.external = &Block{Kind: KindExternal, External: append([]interfaces.ExternalResource(nil), blocks.ExternalResources...)}
	}
	return p
}

func faqBlock(label string, items []interfaces.FAQ) *Block {
	if len(items) == 0 {
		return nil
	}
	return &Block{Kind: KindFAQ, Label: label, FAQs: items}
}

func (p parts) heroAs(variant string) *Block {
	if p.hero == nil {
		return nil
	}
	hero := *p.hero
	hero.Variant = variant
	return &hero
}

func composeStandard(p parts) []Group {
	main := stack("main",
		p.heroAs(HeroStacked),
		p.provider,
		p.local,
	)
	main.Blocks = append(main.Blocks, p.sections...)
	main.Blocks = appendBlocks(main.Blocks, faqBlock("", p.faqs), p.claim, p.related, p.external)
	return []Group{main}
}

func composeSplit(p parts) []Group {
	aside := p.provider
	if aside == nil {
		aside = p.claim
	}
	top := Group{
		Region:      "top",
		Arrangement: ArrangeSplit,
		Columns: []Group{
			stack("hero", p.heroAs(HeroStacked)),
			stack("side-panel", aside, p.local),
		},
	}
	body := Group{Region: "sections", Arrangement: ArrangeGrid2, Blocks: p.sections}
	tail := stack("tail", faqBlock("", p.faqs), p.related, p.external)
	return []Group{top, body, tail}
}

func composeCards(p parts) []Group {
	head := stack("hero", p.heroAs(HeroBannerCard), p.provider)
	grid := Group{Region: "cards", Arrangement: ArrangeCardGrid}
	grid.Blocks = appendBlocks(grid.Blocks, p.local)
	grid.Blocks = append(grid.Blocks, p.sections...)
	tail := stack("tail", faqBlock("", p.faqs), p.claim, p.related, p.external)
	return []Group{head, grid, tail}
}

func composeTimeline(p parts) []Group {
	head := stack("hero", p.heroAs(HeroStacked), p.provider)
	line := Group{Region: "timeline", Arrangement: ArrangeTimeline}
	line.Blocks = appendBlocks(line.Blocks, p.local)
	for i, block := range p.sections {
		block.Label = StepLabel(i + 1)
		line.Blocks = append(line.Blocks, block)
	}
	tail := stack("tail", faqBlock("", p.faqs), p.claim, p.related, p.external)
	return []Group{head, line, tail}
}

func composeMagazine(p parts) []Group {
	sidebarFAQs, moreFAQs := p.faqs, []interfaces.FAQ(nil)
	if len(p.faqs) > SidebarFAQLimit {
		sidebarFAQs, moreFAQs = p.faqs[:SidebarFAQLimit], p.faqs[SidebarFAQLimit:]
	}

	primary := stack("primary", p.local)
	primary.Blocks = append(primary.Blocks, p.sections...)
	primary.Blocks = appendBlocks(primary.Blocks, faqBlock(LabelMoreQuestions, moreFAQs))

	sidebar := stack("sidebar",
		p.provider,
		p.claim,
		faqBlock("", sidebarFAQs),
		p.related,
	)

	return []Group{
		stack("banner", p.heroAs(HeroFullWidth)),
		{Region: "body", Arrangement: ArrangeColumns, Columns: []Group{primary, sidebar}},
		stack("footer", p.external),
	}
}

// StepLabel returns the timeline label for the 1-based section position.
func StepLabel(n int) string {
	return fmt.Sprintf("Step %d", n)
}

func stack(region string, blocks ...*Block) Group {
	return Group{Region: region, Arrangement: ArrangeStack, Blocks: appendBlocks(nil, blocks...)}
}

func appendBlocks(dst []Block, blocks ...*Block) []Block {
	for _, block := range blocks {
		if block != nil {
			dst = append(dst, *block)
		}
	}
	return dst
}

func prune(groups []Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, group := range groups {
		if len(group.Columns) > 0 {
			group.Columns = prune(group.Columns)
		}
		if group.empty() {
			continue
		}
		out = append(out, group)
	}
	return out
}
