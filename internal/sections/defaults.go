package sections

import (
	"strings"

	"github.com/google/uuid"
)

// Default returns the empty payload an editor starts from for kind.
func Default(kind Type) Payload {
	switch kind {
	case TypeHero:
		return Hero{}
	case TypeText:
		return Text{}
	case TypeRichText:
		return RichText{Format: FormatMarkdown}
	case TypeImage:
		return Image{}
	case TypeGallery:
		return Gallery{Images: []Image{}}
	case TypeFeatures:
		return Features{Items: []Feature{}}
	case TypeFAQ:
		return FAQ{Items: []FAQItem{}}
	case TypeCTA:
		return CTA{}
	case TypeColumns:
		return Columns{Columns: []Column{}}
	case TypeHTML:
		return HTML{}
	default:
		return Unknown{Kind: kind}
	}
}

// New creates a section of kind with a fresh id and the default payload.
func New(kind Type) Section {
	return Section{
		ID:      uuid.NewString(),
		Type:    kind,
		Payload: Default(kind),
	}
}

// NewWithPayload creates a section whose type is taken from the payload.
func NewWithPayload(payload Payload) Section {
	return Section{
		ID:      uuid.NewString(),
		Type:    payload.SectionType(),
		Payload: payload,
	}
}

// Normalize fills defaults that editors may omit: missing ids, a nil
// payload and the richtext format.
func Normalize(section Section) Section {
	if strings.TrimSpace(section.ID) == "" {
		section.ID = uuid.NewString()
	}
	if section.Payload == nil {
		section.Payload = Default(section.Type)
	}
	if rich, ok := section.Payload.(RichText); ok && rich.Format == "" {
		rich.Format = FormatMarkdown
		section.Payload = rich
	}
	return section
}
