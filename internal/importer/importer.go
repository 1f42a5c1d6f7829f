// Package importer turns Markdown documents with frontmatter into pages. Each
// document becomes one page holding a single markdown richtext section; page
// ids are derived from collection, scope and slug so repeated imports address
// the same record.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/identity"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/markdown"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/internal/slugs"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrPagesServiceRequired = errors.New("importer: pages service required")
	ErrDocumentInvalid      = errors.New("importer: document invalid")
)

// Options control a single import run.
type Options struct {
	// Collection is used for documents whose frontmatter omits one.
	Collection domain.Collection
	// Scope is used for documents whose frontmatter omits one.
	Scope domain.Scope
	// UpdateExisting overwrites pages that were imported before.
	UpdateExisting bool
	DryRun         bool
}

// Result reports what an import did, per page id.
type Result struct {
	Created []uuid.UUID
	Updated []uuid.UUID
	Skipped []uuid.UUID
	Errors  []error
}

// Importer loads Markdown documents and writes them through the page service.
type Importer struct {
	loader *markdown.Loader
	pages  pages.Service
	logger interfaces.Logger
}

// Option customises the importer.
type Option func(*Importer)

// WithLogger overrides the importer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithLoaderConfig replaces the default loader configuration.
func WithLoaderConfig(filesystem fs.FS, cfg markdown.LoaderConfig) Option {
	return func(i *Importer) {
		if filesystem != nil {
			i.loader = markdown.NewLoader(filesystem, cfg)
		}
	}
}

// New constructs an importer reading *.md files recursively from filesystem.
func New(filesystem fs.FS, service pages.Service, opts ...Option) (*Importer, error) {
	if service == nil {
		return nil, ErrPagesServiceRequired
	}
	imp := &Importer{
		loader: markdown.NewLoader(filesystem, markdown.LoaderConfig{Recursive: true}),
		pages:  service,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(imp)
		}
	}
	return imp, nil
}

// ImportDirectory imports every document under dir. Per document failures are
// collected in Result.Errors; only loader and context failures abort the run.
func (i *Importer) ImportDirectory(ctx context.Context, dir string, opts Options) (*Result, error) {
	docs, err := i.loader.LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		id, outcome, err := i.importDocument(ctx, doc, opts)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", doc.FilePath, err))
			logging.WithFields(i.logger, map[string]any{
				"file":  doc.FilePath,
				"error": err,
			}).Warn("importer.document.failed")
			continue
		}
		switch outcome {
		case outcomeCreated:
			result.Created = append(result.Created, id)
		case outcomeUpdated:
			result.Updated = append(result.Updated, id)
		default:
			result.Skipped = append(result.Skipped, id)
		}
	}

	logging.WithFields(i.logger, map[string]any{
		"directory":     dir,
		"created_count": len(result.Created),
		"updated_count": len(result.Updated),
		"skipped_count": len(result.Skipped),
		"error_count":   len(result.Errors),
		"dry_run":       opts.DryRun,
	}).Info("importer.directory.completed")
	return result, nil
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
)

func (i *Importer) importDocument(ctx context.Context, doc *interfaces.Document, opts Options) (uuid.UUID, outcome, error) {
	draft, err := PageFromDocument(doc, opts)
	if err != nil {
		return uuid.Nil, outcomeSkipped, err
	}

	existing, err := i.pages.Get(ctx, draft.ID)
	switch {
	case err == nil:
		if !opts.UpdateExisting {
			return existing.ID, outcomeSkipped, nil
		}
		if opts.DryRun {
			return existing.ID, outcomeUpdated, nil
		}
		if _, err := i.pages.Update(ctx, existing.ID, patchFromRequest(draft)); err != nil {
			return uuid.Nil, outcomeSkipped, err
		}
		return existing.ID, outcomeUpdated, nil
	case errors.Is(err, pages.ErrNotFound):
	default:
		return uuid.Nil, outcomeSkipped, err
	}

	if opts.DryRun {
		return draft.ID, outcomeCreated, nil
	}
	created, err := i.pages.Create(ctx, draft)
	if err != nil {
		return uuid.Nil, outcomeSkipped, err
	}
	return created.ID, outcomeCreated, nil
}

// PageFromDocument maps a document onto a page create request. The slug comes
// from frontmatter, then the title, then the file name.
func PageFromDocument(doc *interfaces.Document, opts Options) (pages.CreatePageRequest, error) {
	if doc == nil {
		return pages.CreatePageRequest{}, ErrDocumentInvalid
	}
	meta := doc.FrontMatter

	collection := opts.Collection
	if strings.TrimSpace(meta.Collection) != "" {
		collection = domain.Collection(meta.Collection)
	}
	collection, err := domain.NormalizeCollection(string(collection))
	if err != nil {
		return pages.CreatePageRequest{}, err
	}

	scope := opts.Scope
	if strings.TrimSpace(meta.Scope) != "" {
		scope, err = domain.ParseScope(meta.Scope)
		if err != nil {
			return pages.CreatePageRequest{}, err
		}
	}
	if err := scope.ValidateFor(collection); err != nil {
		return pages.CreatePageRequest{}, err
	}

	title := strings.TrimSpace(meta.Title)
	stem := strings.TrimSuffix(path.Base(doc.FilePath), path.Ext(doc.FilePath))
	if title == "" {
		title = stem
	}
	slug := slugs.Slugify(meta.Slug)
	if slug == "" {
		slug = slugs.Slugify(title)
	}
	if slug == "" {
		slug = slugs.Slugify(stem)
	}
	if slug == "" {
		return pages.CreatePageRequest{}, fmt.Errorf("%w: no usable slug", ErrDocumentInvalid)
	}

	id := identity.PageUUID(string(collection), scope.Key(), slug)
	var body []sections.Section
	if text := strings.TrimSpace(string(doc.Body)); text != "" {
		body = append(body, sections.Section{
			ID:   identity.SectionID(id, 0),
			Type: sections.TypeRichText,
			Payload: sections.RichText{
				Body:   text,
				Format: sections.FormatMarkdown,
			},
		})
	}

	return pages.CreatePageRequest{
		ID:              id,
		Collection:      collection,
		Scope:           scope,
		Title:           title,
		Slug:            slug,
		IsPublished:     !meta.Draft,
		IsHomepage:      meta.Homepage,
		Sections:        body,
		Order:           meta.Order,
		Layout:          meta.Layout,
		MetaTitle:       meta.MetaTitle,
		MetaDescription: meta.MetaDescription,
	}, nil
}

func patchFromRequest(req pages.CreatePageRequest) pages.UpdatePageRequest {
	return pages.UpdatePageRequest{
		Title:           &req.Title,
		IsPublished:     &req.IsPublished,
		IsHomepage:      &req.IsHomepage,
		Sections:        &req.Sections,
		Order:           &req.Order,
		Layout:          &req.Layout,
		MetaTitle:       &req.MetaTitle,
		MetaDescription: &req.MetaDescription,
	}
}
