package sections

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// SanitizerConfig extends the base user generated content policy.
type SanitizerConfig struct {
	AllowElements       []string
	AllowDataAttributes bool
	AllowTables         bool
}

// Sanitizer scrubs editor supplied markup before it is trusted as HTML.
type Sanitizer struct {
	policy *bluemonday.Policy
}

var (
	defaultSanitizer     *Sanitizer
	defaultSanitizerOnce sync.Once
)

// DefaultSanitizer returns the shared sanitizer with tables allowed.
func DefaultSanitizer() *Sanitizer {
	defaultSanitizerOnce.Do(func() {
		defaultSanitizer = NewSanitizer(SanitizerConfig{AllowTables: true})
	})
	return defaultSanitizer
}

// NewSanitizer builds a policy on top of bluemonday's UGC policy.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("u", "s", "sub", "sup", "mark", "figure", "figcaption")
	policy.AllowAttrs("src", "alt").OnElements("img")
	if cfg.AllowTables {
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	}
	if cfg.AllowDataAttributes {
		policy.AllowDataAttributes()
	}
	if elements := normalizeElements(cfg.AllowElements); len(elements) > 0 {
		policy.AllowElements(elements...)
	}
	return &Sanitizer{policy: policy}
}

// Sanitize returns the cleaned markup.
func (s *Sanitizer) Sanitize(markup string) string {
	if markup == "" {
		return ""
	}
	return s.policy.Sanitize(markup)
}

// SanitizeToHTML sanitizes markup and marks it safe for html/template.
func (s *Sanitizer) SanitizeToHTML(markup string) template.HTML {
	return template.HTML(s.Sanitize(markup))
}

var blockedElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"iframe": {},
	"object": {},
	"embed":  {},
}

func normalizeElements(input []string) []string {
	out := make([]string, 0, len(input))
	for _, element := range input {
		name := strings.ToLower(strings.TrimSpace(element))
		if name == "" {
			continue
		}
		if _, blocked := blockedElements[name]; blocked {
			continue
		}
		out = append(out, name)
	}
	return out
}
