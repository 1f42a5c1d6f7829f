package sections

import (
	"bytes"
	"html/template"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/markdown"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Fragment is the display output of one section.
type Fragment struct {
	SectionID string        `json:"section_id"`
	Type      Type          `json:"type"`
	HTML      template.HTML `json:"html"`
	// Diagnostic is set when the section could not be rendered normally.
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Inert reports whether the fragment is a diagnostic placeholder.
func (f Fragment) Inert() bool {
	return f.Diagnostic != ""
}

// Renderer maps sections to fragments purely by type.
type Renderer struct {
	sanitizer *Sanitizer
	markdown  interfaces.MarkdownParser
	templates *template.Template
	logger    interfaces.Logger
}

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithSanitizer overrides the shared sanitizer.
func WithSanitizer(s *Sanitizer) RendererOption {
	return func(r *Renderer) {
		if s != nil {
			r.sanitizer = s
		}
	}
}

// WithMarkdownParser overrides the goldmark parser used for richtext.
func WithMarkdownParser(p interfaces.MarkdownParser) RendererOption {
	return func(r *Renderer) {
		if p != nil {
			r.markdown = p
		}
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logging.Ensure(logger)
	}
}

// NewRenderer constructs a renderer with the default sanitizer and parser.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		sanitizer: DefaultSanitizer(),
		markdown:  markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		templates: fragmentTemplates,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// RenderAll renders list in order.
func (r *Renderer) RenderAll(list []Section) []Fragment {
	out := make([]Fragment, 0, len(list))
	for _, section := range list {
		out = append(out, r.Render(section))
	}
	return out
}

// Render never fails: unknown types, mismatched payloads and template errors
// produce an inert diagnostic fragment.
func (r *Renderer) Render(section Section) Fragment {
	fragment := Fragment{SectionID: section.ID, Type: section.Type}

	if section.Payload == nil || section.Payload.SectionType() != section.Type {
		return r.diagnostic(fragment, "section payload does not match its type")
	}

	var data any
	switch payload := section.Payload.(type) {
	case Hero, Text, Image, Gallery, Features, FAQ, CTA, Columns:
		data = payload
	case RichText:
		data = richTextView{Heading: payload.Heading, Body: r.richTextBody(payload)}
	case HTML:
		data = htmlView{Body: r.sanitizer.SanitizeToHTML(payload.HTML)}
	case Unknown:
		return r.diagnostic(fragment, "unsupported section type")
	default:
		return r.diagnostic(fragment, "unsupported section type")
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(section.Type), data); err != nil {
		logging.WithFields(r.logger, map[string]any{
			"section_id":   section.ID,
			"section_type": section.Type,
			"error":        err,
		}).Error("sections.render.failed")
		return r.diagnostic(fragment, "section failed to render")
	}
	fragment.HTML = template.HTML(buf.String())
	return fragment
}

func (r *Renderer) richTextBody(payload RichText) template.HTML {
	if payload.Format == FormatHTML {
		return r.sanitizer.SanitizeToHTML(payload.Body)
	}
	rendered, err := r.markdown.Parse([]byte(payload.Body))
	if err != nil {
		logging.WithFields(r.logger, map[string]any{
			"error": err,
		}).Warn("sections.render.markdown_failed")
		return template.HTML(template.HTMLEscapeString(payload.Body))
	}
	return r.sanitizer.SanitizeToHTML(string(rendered))
}

func (r *Renderer) diagnostic(fragment Fragment, reason string) Fragment {
	logging.WithFields(r.logger, map[string]any{
		"section_id":   fragment.SectionID,
		"section_type": fragment.Type,
		"reason":       reason,
	}).Debug("sections.render.diagnostic")

	fragment.Diagnostic = reason
	var buf bytes.Buffer
	_ = r.templates.ExecuteTemplate(&buf, "diagnostic", fragment)
	fragment.HTML = template.HTML(buf.String())
	return fragment
}

type richTextView struct {
	Heading string
	Body    template.HTML
}

type htmlView struct {
	Body template.HTML
}
