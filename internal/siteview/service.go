// Package siteview assembles entity views: it loads a target's records
// concurrently, resolves the requested page, builds navigation and arranges
// the layout.
package siteview

import (
	"context"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/navigation"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

// Service is the read entry point used by transports.
type Service struct {
	loader   SnapshotLoader
	composer *Composer
	logger   interfaces.Logger
}

// NewService wires a loader and composer.
func NewService(loader SnapshotLoader, composer *Composer, logger interfaces.Logger) *Service {
	logger = logging.Ensure(logger)
	if composer == nil {
		composer = NewComposer(WithComposerLogger(logger))
	}
	return &Service{loader: loader, composer: composer, logger: logger}
}

// View loads and composes a single view.
func (s *Service) View(ctx context.Context, req Request) (*View, error) {
	snapshot, err := s.loader.Load(ctx, req.Target)
	if err != nil {
		return nil, err
	}
	view, err := s.composer.Compose(ctx, snapshot, req)
	if err != nil {
		return nil, err
	}
	logging.WithFields(logging.WithScope(s.logger, string(view.Collection), view.Scope), map[string]any{
		"default_view": view.DefaultView,
		"builtin":      view.Builtin,
		"layout":       view.Plan.Layout,
	}).Debug("siteview.view.composed")
	return view, nil
}

// Navigation returns only the navigation tree of a view.
func (s *Service) Navigation(ctx context.Context, req Request) ([]navigation.TreeNode, error) {
	view, err := s.View(ctx, req)
	if err != nil {
		return nil, err
	}
	return view.Navigation, nil
}

// NewSession starts a session sharing this service's loader and composer.
func (s *Service) NewSession(req Request) *Session {
	return NewSession(s.loader, s.composer, req, s.logger)
}
