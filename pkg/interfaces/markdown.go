package interfaces

import "time"

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// Document is a Markdown page file with its parsed frontmatter.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
	Checksum     []byte
}

// FrontMatter describes the page a Markdown document becomes on import.
type FrontMatter struct {
	Title           string         `yaml:"title" json:"title"`
	Slug            string         `yaml:"slug" json:"slug"`
	Collection      string         `yaml:"collection" json:"collection"`
	Scope           string         `yaml:"scope" json:"scope"`
	Homepage        bool           `yaml:"homepage" json:"homepage"`
	Draft           bool           `yaml:"draft" json:"draft"`
	Layout          int            `yaml:"layout" json:"layout"`
	Order           int            `yaml:"order" json:"order"`
	MetaTitle       string         `yaml:"meta_title" json:"meta_title"`
	MetaDescription string         `yaml:"meta_description" json:"meta_description"`
	Custom          map[string]any `yaml:",inline" json:"custom"`
}
