package sections

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrPayloadMismatch = errors.New("sections: payload does not match section type")
	ErrUnknownType     = errors.New("sections: unknown section type")
	ErrDuplicateID     = errors.New("sections: duplicate section id")
)

const maxHeadingLength = 200

// Validate checks the section id, that the payload matches the type and the
// payload's own rules. Unknown types fail validation on write but still
// decode and render as diagnostics on read.
func Validate(section Section) error {
	if strings.TrimSpace(section.ID) == "" {
		return validation.Errors{"id": validation.ErrRequired}
	}
	if !section.Type.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownType, section.Type)
	}
	if section.Payload == nil || section.Payload.SectionType() != section.Type {
		return fmt.Errorf("%w: section %q", ErrPayloadMismatch, section.ID)
	}
	if v, ok := section.Payload.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("section %q: %w", section.ID, err)
		}
	}
	return nil
}

// ValidateList validates every section and rejects duplicate ids.
func ValidateList(list []Section) error {
	seen := make(map[string]struct{}, len(list))
	for _, section := range list {
		if err := Validate(section); err != nil {
			return err
		}
		if _, ok := seen[section.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, section.ID)
		}
		seen[section.ID] = struct{}{}
	}
	return nil
}

var linkRule = validation.By(func(value any) error {
	link, _ := value.(string)
	if link == "" || strings.HasPrefix(link, "/") || strings.HasPrefix(link, "#") {
		return nil
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return validation.NewError("validation_link_invalid", "must be a valid link")
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return nil
	}
	return validation.NewError("validation_link_scheme", "must be a relative path or an http(s), mailto or tel link")
})

func (h Hero) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required, validation.Length(1, maxHeadingLength)),
		validation.Field(&h.Image, linkRule),
		validation.Field(&h.CTALink, linkRule, validation.When(h.CTAText != "", validation.Required)),
	)
}

func (t Text) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Heading, validation.Length(0, maxHeadingLength)),
		validation.Field(&t.Body, validation.Required),
	)
}

func (r RichText) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Heading, validation.Length(0, maxHeadingLength)),
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.Format, validation.In(FormatMarkdown, FormatHTML)),
	)
}

func (i Image) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.URL, validation.Required, linkRule),
	)
}

func (g Gallery) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Heading, validation.Length(0, maxHeadingLength)),
		validation.Field(&g.Images),
	)
}

func (f Feature) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, maxHeadingLength)),
	)
}

func (f Features) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Heading, validation.Length(0, maxHeadingLength)),
		validation.Field(&f.Items),
	)
}

func (q FAQItem) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question, validation.Required),
		validation.Field(&q.Answer, validation.Required),
	)
}

func (f FAQ) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Heading, validation.Length(0, maxHeadingLength)),
		validation.Field(&f.Items),
	)
}

func (c CTA) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Heading, validation.Required, validation.Length(1, maxHeadingLength)),
		validation.Field(&c.ButtonLink, linkRule, validation.When(c.ButtonText != "", validation.Required)),
	)
}

func (c Column) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Body, validation.Required),
	)
}

func (c Columns) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Heading, validation.Length(0, maxHeadingLength)),
		validation.Field(&c.Columns, validation.Length(0, 4)),
	)
}

func (h HTML) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.HTML, validation.Required),
	)
}
