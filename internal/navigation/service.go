package navigation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitekit/internal/domain"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/pages"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
	"github.com/google/uuid"
)

// Service manages persisted navigation items for every collection.
type Service interface {
	List(ctx context.Context, collection domain.Collection, scope domain.Scope) ([]*Item, error)
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	Create(ctx context.Context, req CreateItemRequest) (*Item, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateItemRequest) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DetachPage(ctx context.Context, pageID uuid.UUID) error
	InvalidateCache(ctx context.Context) error
}

// PageLookup resolves page link targets on write.
type PageLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*pages.Page, error)
}

// CreateItemRequest captures a new navigation entry.
type CreateItemRequest struct {
	ID         uuid.UUID
	Collection domain.Collection
	Scope      domain.Scope
	Label      string
	Order      int
	LinkType   LinkType
	Target     string
	ParentID   *uuid.UUID
	// Hidden creates the item with is_visible unset.
	Hidden bool
}

// Validate checks field level rules; target resolution is done by the service.
func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required.Error("label is required"), validation.Length(1, 120)),
		validation.Field(&r.LinkType, validation.Required, validation.By(linkTypeRule)),
		validation.Field(&r.Target,
			validation.When(r.LinkType.HasTarget(), validation.Required.Error("target is required")),
			validation.When(r.LinkType == LinkURL, validation.By(urlTargetRule)),
			validation.When(r.LinkType == LinkPage, validation.By(pageTargetRule)),
		),
	)
}

// UpdateItemRequest is a patch; nil fields are left untouched. ClearParent
// moves the item to the top level and wins over ParentID.
type UpdateItemRequest struct {
	Label       *string
	Order       *int
	LinkType    *LinkType
	Target      *string
	ParentID    *uuid.UUID
	ClearParent bool
	IsVisible   *bool
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

type targetDetacher interface {
	DetachTarget(ctx context.Context, pageID uuid.UUID, detachedAt time.Time) (int, error)
}

// ServiceOption configures the navigation service.
type ServiceOption func(*service)

// WithPageLookup enables page target checks on write.
func WithPageLookup(lookup PageLookup) ServiceOption {
	return func(s *service) {
		s.pages = lookup
	}
}

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
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
	repo   ItemRepository
	pages  PageLookup
	now    func() time.Time
	id     func() uuid.UUID
	logger interfaces.Logger
}

// NewService constructs the navigation service.
func NewService(repo ItemRepository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseKey converts a built node key back to an item id. Synthetic keys
// are rejected with ErrSyntheticItem.
func ParseKey(key string) (uuid.UUID, error) {
	key = strings.TrimSpace(key)
	if SyntheticKey(key) {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrSyntheticItem, key)
	}
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrKeyInvalid, key)
	}
	return id, nil
}

func (s *service) List(ctx context.Context, collection domain.Collection, scope domain.Scope) ([]*Item, error) {
	normalized, err := domain.NormalizeCollection(string(collection))
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ScopeFilter(normalized, scope))
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	if id == uuid.Nil {
		return nil, ErrItemRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	collection, err := domain.NormalizeCollection(string(req.Collection))
	if err != nil {
		return nil, err
	}
	if err := req.Scope.ValidateFor(collection); err != nil {
		return nil, err
	}
	req.Label = strings.TrimSpace(req.Label)
	req.Target = strings.TrimSpace(req.Target)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := req.ID
	if id == uuid.Nil {
		id = s.id()
	}

	record := &Item{
		ID:         id,
		Collection: collection,
		Label:      req.Label,
		Order:      req.Order,
		LinkType:   req.LinkType,
		Target:     req.Target,
		IsVisible:  !req.Hidden,
	}
	if !record.LinkType.HasTarget() {
		record.Target = ""
	}
	record.setScope(req.Scope)

	if err := s.checkTarget(ctx, record); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		parent := *req.ParentID
		record.ParentID = &parent
		if err := s.checkParent(ctx, record); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logging.WithFields(logging.WithScope(s.logger, string(collection), created.ScopeKey), map[string]any{
		"item_id":   created.ID,
		"link_type": created.LinkType,
	}).Info("navigation.item.create.success")
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch UpdateItemRequest) (*Item, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Label != nil {
		label := strings.TrimSpace(*patch.Label)
		if label == "" {
			return nil, ErrLabelRequired
		}
		record.Label = label
	}
	if patch.Order != nil {
		record.Order = *patch.Order
	}
	if patch.LinkType != nil {
		if !patch.LinkType.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrLinkTypeInvalid, *patch.LinkType)
		}
		record.LinkType = *patch.LinkType
	}
	if patch.Target != nil {
		record.Target = strings.TrimSpace(*patch.Target)
	}
	if !record.LinkType.HasTarget() {
		record.Target = ""
	}
	if patch.LinkType != nil || patch.Target != nil {
		if err := validateTarget(record.LinkType, record.Target); err != nil {
			return nil, err
		}
		if err := s.checkTarget(ctx, record); err != nil {
			return nil, err
		}
	}
	if patch.IsVisible != nil {
		record.IsVisible = *patch.IsVisible
	}

	switch {
	case patch.ClearParent:
		record.ParentID = nil
	case patch.ParentID != nil:
		parent := *patch.ParentID
		record.ParentID = &parent
		if err := s.checkParent(ctx, record); err != nil {
			return nil, err
		}
	}

	return s.save(ctx, record)
}

// Delete removes the item and moves its children up to the deleted item's
// parent, keeping their relative order.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	children, err := s.repo.List(ctx, Filter{
		Collection: record.Collection,
		Scope:      scopePtr(record.Scope()),
		ParentID:   &record.ID,
	})
	if err != nil {
		return err
	}
	for _, child := range children {
		child.ParentID = cloneParent(record.ParentID)
		child.UpdatedAt = s.now().UTC()
		if _, err := s.repo.Update(ctx, child); err != nil {
			return fmt.Errorf("reparent navigation item %s: %w", child.ID, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	logging.WithFields(s.logger, map[string]any{
		"item_id":    id,
		"reparented": len(children),
	}).Info("navigation.item.delete.success")
	return nil
}

// DetachPage clears the target of every page link pointing at pageID. The
// items are kept and drop out of built navigation until retargeted.
func (s *service) DetachPage(ctx context.Context, pageID uuid.UUID) error {
	if pageID == uuid.Nil {
		return nil
	}
	now := s.now().UTC()

	var count int
	if detacher, ok := s.repo.(targetDetacher); ok {
		detached, err := detacher.DetachTarget(ctx, pageID, now)
		if err != nil {
			return err
		}
		count = detached
	} else {
		linked, err := s.repo.List(ctx, Filter{LinkType: LinkPage, Target: pageID.String()})
		if err != nil {
			return err
		}
		for _, item := range linked {
			item.Target = ""
			item.UpdatedAt = now
			if _, err := s.repo.Update(ctx, item); err != nil {
				return fmt.Errorf("detach navigation item %s: %w", item.ID, err)
			}
		}
		count = len(linked)
	}
	s.invalidate(ctx)

	logging.WithFields(s.logger, map[string]any{
		"page_id":  pageID,
		"detached": count,
	}).Info("navigation.page.detached")
	return nil
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if invalidator, ok := s.repo.(cacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

func (s *service) save(ctx context.Context, record *Item) (*Item, error) {
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
		}).Warn("navigation.cache.invalidate_failed")
	}
}

// checkTarget confirms a page link points at a page of the same collection
// and scope. Without a page lookup the target is accepted as is.
func (s *service) checkTarget(ctx context.Context, record *Item) error {
	if record.LinkType != LinkPage || s.pages == nil {
		return nil
	}
	page, err := s.pages.Get(ctx, record.PageID())
	if err != nil {
		if pages.IsNotFound(err) {
			return fmt.Errorf("%w: page %s not found", ErrTargetInvalid, record.Target)
		}
		return err
	}
	if page.Collection != record.Collection || page.ScopeKey != record.ScopeKey {
		return fmt.Errorf("%w: %s", ErrTargetScope, record.Target)
	}
	return nil
}

// checkParent rejects parents outside the item's scope and assignments that
// would close a loop.
func (s *service) checkParent(ctx context.Context, record *Item) error {
	if record.ParentID == nil {
		return nil
	}
	if *record.ParentID == record.ID {
		return fmt.Errorf("%w: item is its own parent", ErrParentCycle)
	}
	parent, err := s.repo.GetByID(ctx, *record.ParentID)
	if err != nil {
		return err
	}
	if parent.Collection != record.Collection || parent.ScopeKey != record.ScopeKey {
		return ErrParentInvalid
	}

	siblings, err := s.repo.List(ctx, ScopeFilter(record.Collection, record.Scope()))
	if err != nil {
		return err
	}
	parents := make(map[uuid.UUID]*uuid.UUID, len(siblings)+1)
	for _, item := range siblings {
		parents[item.ID] = item.ParentID
	}
	parents[record.ID] = record.ParentID
	if hasCycle(parents) {
		return ErrParentCycle
	}
	return nil
}

// hasCycle walks parent pointers depth first; 1 marks in progress, 2 done.
func hasCycle(parents map[uuid.UUID]*uuid.UUID) bool {
	visited := make(map[uuid.UUID]int, len(parents))
	var visit func(id uuid.UUID) bool
	visit = func(id uuid.UUID) bool {
		switch visited[id] {
		case 1:
			return true
		case 2:
			return false
		}
		visited[id] = 1
		if parent := parents[id]; parent != nil {
			if _, ok := parents[*parent]; ok && visit(*parent) {
				return true
			}
		}
		visited[id] = 2
		return false
	}
	for id := range parents {
		if visit(id) {
			return true
		}
	}
	return false
}

func validateTarget(linkType LinkType, target string) error {
	if !linkType.HasTarget() {
		return nil
	}
	if target == "" {
		return ErrTargetRequired
	}
	switch linkType {
	case LinkURL:
		if err := urlTargetRule(target); err != nil {
			return fmt.Errorf("%w: %v", ErrTargetInvalid, err)
		}
	case LinkPage:
		if err := pageTargetRule(target); err != nil {
			return fmt.Errorf("%w: %v", ErrTargetInvalid, err)
		}
	}
	return nil
}

func linkTypeRule(value any) error {
	linkType, _ := value.(LinkType)
	if !linkType.Valid() {
		return validation.NewError("validation_link_type", "unknown link type")
	}
	return nil
}

// urlTargetRule accepts site relative paths and absolute http(s), mailto
// and tel addresses.
func urlTargetRule(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "#") {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_url", "must be a valid url")
	}
	switch parsed.Scheme {
	case "http", "https":
		if parsed.Host == "" {
			return validation.NewError("validation_url", "must include a host")
		}
		return nil
	case "mailto", "tel":
		return nil
	}
	return validation.NewError("validation_url", "unsupported url scheme")
}

func pageTargetRule(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		return validation.NewError("validation_page_target", "must be a page id")
	}
	return nil
}

func scopePtr(scope domain.Scope) *domain.Scope {
	return &scope
}

func cloneParent(parent *uuid.UUID) *uuid.UUID {
	if parent == nil {
		return nil
	}
	copied := *parent
	return &copied
}

// IsNotFound reports whether err is a missing navigation item.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
