package siteview

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

var (
	// ErrStaleLoad is returned for a load superseded by a newer one or
	// finished after the session closed. Its result is discarded.
	ErrStaleLoad     = errors.New("siteview: stale load discarded")
	ErrSessionClosed = errors.New("siteview: session closed")
	ErrNothingLoaded = errors.New("siteview: no view loaded")
)

// SnapshotLoader fetches the records of a target.
type SnapshotLoader interface {
	Load(ctx context.Context, target Target) (*Snapshot, error)
}

// Session holds the current view of one visitor. Each Open supersedes any
// load still in flight; only the latest load for the current target may
// update the session.
type Session struct {
	loader   SnapshotLoader
	composer *Composer
	logger   interfaces.Logger
	machine  *Machine

	mu         sync.Mutex
	generation uint64
	current    string
	cancel     context.CancelFunc
	closed     bool
	view       *View
	last       Request
	loaded     bool
}

// NewSession constructs a session for req.Viewer.
func NewSession(loader SnapshotLoader, composer *Composer, req Request, logger interfaces.Logger) *Session {
	if composer == nil {
		composer = NewComposer(WithComposerLogger(logger))
	}
	return &Session{
		loader:   loader,
		composer: composer,
		logger:   logging.Ensure(logger),
		machine:  NewMachine(req.Viewer),
		last:     req,
	}
}

// Open loads and composes the view for req. A load that is superseded by a
// later Open, or still running when Close is called, returns ErrStaleLoad
// and leaves the session untouched.
func (s *Session) Open(ctx context.Context, req Request) (*View, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.cancel != nil {
		s.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.generation++
	generation := s.generation
	key := req.Target.Key()
	s.current = key
	s.cancel = cancel
	s.mu.Unlock()

	defer cancel()

	snapshot, err := s.loader.Load(loadCtx, req.Target)
	var view *View
	if err == nil {
		view, err = s.composer.Compose(loadCtx, snapshot, req)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || generation != s.generation || key != s.current {
		logging.WithFields(s.logger, map[string]any{
			"target":     key,
			"generation": generation,
		}).Debug("siteview.load.discarded")
		return nil, ErrStaleLoad
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	s.view = view
	s.last = req
	s.loaded = true
	return view, nil
}

// Refresh reopens the last successful request.
func (s *Session) Refresh(ctx context.Context) (*View, error) {
	s.mu.Lock()
	req, loaded := s.last, s.loaded
	s.mu.Unlock()
	if !loaded {
		return nil, ErrNothingLoaded
	}
	return s.Open(ctx, req)
}

// View returns the current view, if any.
func (s *Session) View() (*View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.view != nil
}

// Mode returns the session's editing mode.
func (s *Session) Mode() Mode {
	return s.machine.Mode()
}

// Fire applies a mode event. Transitions that complete an edit reload the
// current view.
func (s *Session) Fire(ctx context.Context, event Event) (Mode, error) {
	mode, reload, err := s.machine.Fire(event)
	if err != nil {
		return mode, err
	}
	if reload {
		if _, err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrNothingLoaded) {
			return mode, err
		}
	}
	return mode, nil
}

// Close cancels any load in flight and rejects further opens.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.view = nil
}
