package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/sections"
	"github.com/goliatone/go-sitekit/internal/slugs"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

// MaxLayout is the highest layout id a page may select.
const MaxLayout = 5

// Service is the page store adapter shared by every collection.
type Service interface {
	List(ctx context.Context, filter Filter) ([]*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	Create(ctx context.Context, req CreatePageRequest) (*Page, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdatePageRequest) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error)
	AddSection(ctx context.Context, id uuid.UUID, section sections.Section, index *int) (*Page, error)
	RemoveSection(ctx context.Context, id uuid.UUID, sectionID string) (*Page, error)
	MoveSection(ctx context.Context, id uuid.UUID, sectionID string, direction Direction) (*Page, error)
	InvalidateCache(ctx context.Context) error
}

// CreatePageRequest captures the fields an editor submits for a new page.
type CreatePageRequest struct {
	ID              uuid.UUID
	Collection      domain.Collection
	Scope           domain.Scope
	Title           string
	Slug            string
	IsPublished     bool
	IsHomepage      bool
	Sections        []sections.Section
	Order           int
	Layout          int
	MetaTitle       string
	MetaDescription string
}

// Validate checks field level rules; scope and slug rules are enforced by the service.
func (r CreatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Layout, validation.Min(0), validation.Max(MaxLayout)),
		validation.Field(&r.MetaTitle, validation.Length(0, 200)),
		validation.Field(&r.MetaDescription, validation.Length(0, 500)),
	)
}

// UpdatePageRequest is a patch; nil fields are left untouched.
type UpdatePageRequest struct {
	Title           *string
	Slug            *string
	IsPublished     *bool
	IsHomepage      *bool
	Sections        *[]sections.Section
	Order           *int
	Layout          *int
	MetaTitle       *string
	MetaDescription *string
}

// Direction selects a section move.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// DeletionListener is notified after a page is removed so references to it
// can be detached.
type DeletionListener interface {
	DetachPage(ctx context.Context, pageID uuid.UUID) error
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// IDGenerator produces page identifiers for requests without one.
type IDGenerator func(CreatePageRequest) uuid.UUID

// ServiceOption configures the page service.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithDeletionListener registers a listener invoked after Delete.
func WithDeletionListener(listener DeletionListener) ServiceOption {
	return func(s *service) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.Ensure(logger)
	}
}

type service struct {
	repo      PageRepository
	now       func() time.Time
	id        IDGenerator
	listeners []DeletionListener
	logger    interfaces.Logger
}

// NewService constructs the page service.
func NewService(repo PageRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     func(CreatePageRequest) uuid.UUID { return uuid.New() },
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Page, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}
	return s.repo.GetByID(ctx, id)
}

// Create derives the slug from the title when none is supplied, falling back
// to the record id when the title has no usable characters. Derived slugs are
// suffixed until free in scope; explicit slugs must already be free.
func (s *service) Create(ctx context.Context, req CreatePageRequest) (*Page, error) {
	collection, err := domain.NormalizeCollection(string(req.Collection))
	if err != nil {
		return nil, err
	}
	if err := req.Scope.ValidateFor(collection); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	list, err := normalizeSections(req.Sections)
	if err != nil {
		return nil, err
	}

	id := req.ID
	if id == uuid.Nil {
		id = s.id(req)
	}

	existing, err := s.repo.List(ctx, ScopeFilter(collection, req.Scope))
	if err != nil {
		return nil, err
	}
	taken := takenSlugs(existing, uuid.Nil)

	slug, err := s.pickSlug(req, id, taken)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Page{
		ID:              id,
		Collection:      collection,
		Slug:            slug,
		Title:           strings.TrimSpace(req.Title),
		IsPublished:     req.IsPublished,
		IsHomepage:      req.IsHomepage,
		Sections:        list,
		Order:           req.Order,
		Layout:          req.Layout,
		MetaTitle:       strings.TrimSpace(req.MetaTitle),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	record.setScope(req.Scope)

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logging.WithFields(logging.WithScope(s.logger, string(collection), created.ScopeKey), map[string]any{
		"page_id": created.ID,
		"slug":    created.Slug,
	}).Info("pages.create.success")
	return created, nil
}

func (s *service) pickSlug(req CreatePageRequest, id uuid.UUID, taken map[string]struct{}) (string, error) {
	isTaken := func(candidate string) bool {
		_, ok := taken[candidate]
		return ok
	}

	if explicit := strings.TrimSpace(req.Slug); explicit != "" {
		slug := slugs.Slugify(explicit)
		if slug == "" {
			return "", fmt.Errorf("%w: %q", ErrSlugInvalid, explicit)
		}
		if isTaken(slug) {
			return "", fmt.Errorf("%w: %q", ErrSlugExists, slug)
		}
		return slug, nil
	}

	base := slugs.Slugify(req.Title)
	if base == "" {
		base = id.String()
	}
	return slugs.Unique(base, isTaken), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdatePageRequest) (*Page, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		record.Title = title
	}
	if patch.Slug != nil {
		slug := slugs.Slugify(*patch.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: %q", ErrSlugInvalid, *patch.Slug)
		}
		if slug != record.Slug {
			existing, err := s.repo.List(ctx, ScopeFilter(record.Collection, record.Scope()))
			if err != nil {
				return nil, err
			}
			if _, ok := takenSlugs(existing, record.ID)[slug]; ok {
				return nil, fmt.Errorf("%w: %q", ErrSlugExists, slug)
			}
			record.Slug = slug
		}
	}
	if patch.IsPublished != nil {
		record.IsPublished = *patch.IsPublished
	}
	if patch.IsHomepage != nil {
		record.IsHomepage = *patch.IsHomepage
	}
	if patch.Sections != nil {
		list, err := normalizeSections(*patch.Sections)
		if err != nil {
			return nil, err
		}
		record.Sections = list
	}
	if patch.Order != nil {
		record.Order = *patch.Order
	}
	if patch.Layout != nil {
		if *patch.Layout < 0 || *patch.Layout > MaxLayout {
			return nil, ErrLayoutInvalid
		}
		record.Layout = *patch.Layout
	}
	if patch.MetaTitle != nil {
		record.MetaTitle = strings.TrimSpace(*patch.MetaTitle)
	}
	if patch.MetaDescription != nil {
		record.MetaDescription = strings.TrimSpace(*patch.MetaDescription)
	}

	return s.save(ctx, record)
}

// Delete removes the page and then notifies deletion listeners. Listener
// failures are returned joined; the page stays deleted.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrPageRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	var errs []error
	for _, listener := range s.listeners {
		if err := listener.DetachPage(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	logging.WithFields(s.logger, map[string]any{
		"page_id": id,
	}).Info("pages.delete.success")
	return errors.Join(errs...)
}

func (s *service) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*Page, error) {
	return s.Update(ctx, id, UpdatePageRequest{IsPublished: &published})
}

func (s *service) AddSection(ctx context.Context, id uuid.UUID, section sections.Section, index *int) (*Page, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	section = sections.Normalize(section)
	position := len(record.Sections)
	if index != nil {
		position = *index
	}
	list, err := sections.Insert(record.Sections, position, section)
	if err != nil {
		return nil, err
	}
	if err := sections.ValidateList(list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSectionsInvalid, err)
	}
	record.Sections = list
	return s.save(ctx, record)
}

func (s *service) RemoveSection(ctx context.Context, id uuid.UUID, sectionID string) (*Page, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := sections.Remove(record.Sections, sectionID)
	if err != nil {
		return nil, err
	}
	record.Sections = list
	return s.save(ctx, record)
}

func (s *service) MoveSection(ctx context.Context, id uuid.UUID, sectionID string, direction Direction) (*Page, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	index := sections.IndexOf(record.Sections, sectionID)
	if index < 0 {
		return nil, fmt.Errorf("%w: %q", sections.ErrSectionNotFound, sectionID)
	}

	var list []sections.Section
	switch direction {
	case DirectionUp:
		list, err = sections.MoveUp(record.Sections, index)
	case DirectionDown:
		list, err = sections.MoveDown(record.Sections, index)
	default:
		return nil, fmt.Errorf("%w: %q", ErrDirectionInvalid, direction)
	}
	if err != nil {
		return nil, err
	}
	record.Sections = list
	return s.save(ctx, record)
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if invalidator, ok := s.repo.(cacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

func (s *service) save(ctx context.Context, record *Page) (*Page, error) {
	record.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.InvalidateCache(ctx); err != nil {
		logging.WithFields(s.logger, map[string]any{
			"error": err,
		}).Warn("pages.cache.invalidate_failed")
	}
}

func normalizeSections(input []sections.Section) ([]sections.Section, error) {
	list := make([]sections.Section, 0, len(input))
	for _, section := range input {
		list = append(list, sections.Normalize(section))
	}
	if err := sections.ValidateList(list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSectionsInvalid, err)
	}
	return list, nil
}

func takenSlugs(records []*Page, exclude uuid.UUID) map[string]struct{} {
	out := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record == nil || record.ID == exclude {
			continue
		}
		out[record.Slug] = struct{}{}
	}
	return out
}
