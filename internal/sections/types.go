package sections

// Type discriminates the payload carried by a Section.
type Type string

const (
	TypeHero     Type = "hero"
	TypeText     Type = "text"
	TypeRichText Type = "richtext"
	TypeImage    Type = "image"
	TypeGallery  Type = "gallery"
	TypeFeatures Type = "features"
	TypeFAQ      Type = "faq"
	TypeCTA      Type = "cta"
	TypeColumns  Type = "columns"
	TypeHTML     Type = "html"
)

// Types lists every known section type in editor order.
func Types() []Type {
	return []Type{
		TypeHero,
		TypeText,
		TypeRichText,
		TypeImage,
		TypeGallery,
		TypeFeatures,
		TypeFAQ,
		TypeCTA,
		TypeColumns,
		TypeHTML,
	}
}

// Known reports whether t has a registered payload shape.
func (t Type) Known() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Section is one typed content block of a page. Its position in the page's
// section list is its order.
type Section struct {
	ID      string
	Type    Type
	Payload Payload
}

// Payload is implemented only by the payload structs of this package.
type Payload interface {
	SectionType() Type
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image,omitempty"`
	CTAText  string `json:"cta_text,omitempty"`
	CTALink  string `json:"cta_link,omitempty"`
}

type Text struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
}

// RichTextFormat selects how a RichText body is interpreted.
type RichTextFormat string

const (
	FormatMarkdown RichTextFormat = "markdown"
	FormatHTML     RichTextFormat = "html"
)

type RichText struct {
	Heading string         `json:"heading,omitempty"`
	Body    string         `json:"body"`
	Format  RichTextFormat `json:"format,omitempty"`
}

type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type Gallery struct {
	Heading string  `json:"heading,omitempty"`
	Images  []Image `json:"images"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type Features struct {
	Heading string    `json:"heading,omitempty"`
	Items   []Feature `json:"items"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQ struct {
	Heading string    `json:"heading,omitempty"`
	Items   []FAQItem `json:"items"`
}

type CTA struct {
	Heading    string `json:"heading"`
	Text       string `json:"text,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	ButtonLink string `json:"button_link,omitempty"`
}

type Column struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body"`
}

type Columns struct {
	Heading string   `json:"heading,omitempty"`
	Columns []Column `json:"columns"`
}

type HTML struct {
	HTML string `json:"html"`
}

// Unknown keeps the raw payload of a section type this package does not
// understand so it survives a decode/encode cycle.
type Unknown struct {
	Kind Type
	Raw  []byte
}

func (Hero) SectionType() Type     { return TypeHero }
func (Text) SectionType() Type     { return TypeText }
func (RichText) SectionType() Type { return TypeRichText }
func (Image) SectionType() Type    { return TypeImage }
func (Gallery) SectionType() Type  { return TypeGallery }
func (Features) SectionType() Type { return TypeFeatures }
func (FAQ) SectionType() Type      { return TypeFAQ }
func (CTA) SectionType() Type      { return TypeCTA }
func (Columns) SectionType() Type  { return TypeColumns }
func (HTML) SectionType() Type     { return TypeHTML }
func (u Unknown) SectionType() Type { return u.Kind }

var (
	_ Payload = Hero{}
	_ Payload = Text{}
	_ Payload = RichText{}
	_ Payload = Image{}
	_ Payload = Gallery{}
	_ Payload = Features{}
	_ Payload = FAQ{}
	_ Payload = CTA{}
	_ Payload = Columns{}
	_ Payload = HTML{}
	_ Payload = Unknown{}
)
