package interfaces

import "context"

// EntityHero is the headline block of an entity view.
type EntityHero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	CTAText  string `json:"cta_text,omitempty"`
	CTALink  string `json:"cta_link,omitempty"`
}

// IsZero reports whether the hero carries nothing to show.
func (h EntityHero) IsZero() bool {
	return h.Title == "" && h.Subtitle == "" && h.Image == ""
}

// ClaimedProvider describes the owner who claimed an entity page.
type ClaimedProvider struct {
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	Bio        string `json:"bio,omitempty"`
	ContactURL string `json:"contact_url,omitempty"`
}

// LocalContext summarises the neighbourhood around an entity.
type LocalContext struct {
	Heading    string   `json:"heading,omitempty"`
	Body       string   `json:"body,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// IsZero reports whether the local context carries nothing to show.
func (l LocalContext) IsZero() bool {
	return l.Heading == "" && l.Body == "" && len(l.Highlights) == 0
}

// FAQ is a single question and answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RelatedItem links to a nearby or similar entity.
type RelatedItem struct {
	Title string `json:"title"`
	Href  string `json:"href"`
	Image string `json:"image,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// ExternalResource links to a third party page about the entity.
type ExternalResource struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source,omitempty"`
}

// ClaimCTA invites the owner to claim an unclaimed page.
type ClaimCTA struct {
	Heading    string `json:"heading"`
	Text       string `json:"text,omitempty"`
	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`
}

// Photo is an image attached to an entity.
type Photo struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// EntityProfile bundles the non-page blocks of an entity view.
type EntityProfile struct {
	Hero              EntityHero         `json:"hero"`
	ClaimedProvider   *ClaimedProvider   `json:"claimed_provider,omitempty"`
	LocalContext      *LocalContext      `json:"local_context,omitempty"`
	FAQs              []FAQ              `json:"faqs,omitempty"`
	RelatedItems      []RelatedItem      `json:"related_items,omitempty"`
	ExternalResources []ExternalResource `json:"external_resources,omitempty"`
	ClaimCTA          *ClaimCTA          `json:"claim_cta,omitempty"`
}

// EntityProvider supplies profile blocks and photos for a scope. Both calls
// are read-only.
type EntityProvider interface {
	Profile(ctx context.Context, scopeKey string) (EntityProfile, error)
	Photos(ctx context.Context, scopeKey string) ([]Photo, error)
}
