package siteview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-sitekit/internal/domain"
)

// Mode is the editing state of an entity view.
type Mode string

const (
	ModeViewing     Mode = "viewing"
	ModeDashboard   Mode = "dashboard"
	ModeEditingPage Mode = "editing_page"
	ModeEditingNav  Mode = "editing_nav"
)

// Event drives a mode transition.
type Event string

const (
	EventOpenDashboard Event = "open_dashboard"
	EventEditPage      Event = "edit_page"
	EventEditNav       Event = "edit_nav"
	EventSave          Event = "save"
	EventCancel        Event = "cancel"
	EventExit          Event = "exit"
)

var (
	ErrInvalidTransition = errors.New("siteview: invalid mode transition")
	ErrEditorRequired    = errors.New("siteview: editor access required")
)

// transition is one row of the mode table. Reload marks transitions after
// which the view must be fetched again.
type transition struct {
	to     Mode
	reload bool
}

var modeTable = map[Mode]map[Event]transition{
	ModeViewing: {
		EventOpenDashboard: {to: ModeDashboard},
		EventEditPage:      {to: ModeEditingPage},
	},
	ModeDashboard: {
		EventEditPage: {to: ModeEditingPage},
		EventEditNav:  {to: ModeEditingNav},
		EventExit:     {to: ModeViewing},
	},
	ModeEditingPage: {
		EventSave:   {to: ModeDashboard, reload: true},
		EventCancel: {to: ModeDashboard},
		EventExit:   {to: ModeViewing},
	},
	ModeEditingNav: {
		EventSave:   {to: ModeDashboard, reload: true},
		EventCancel: {to: ModeDashboard},
		EventExit:   {to: ModeViewing},
	},
}

// Transition looks up the next mode. The boolean reports whether the view
// must be reloaded.
func Transition(from Mode, event Event) (Mode, bool, error) {
	row, ok := modeTable[from]
	if !ok {
		return from, false, fmt.Errorf("%w: unknown mode %q", ErrInvalidTransition, from)
	}
	next, ok := row[event]
	if !ok {
		return from, false, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, event, from)
	}
	return next.to, next.reload, nil
}

// Machine tracks the mode of one session. Only editors may leave Viewing.
type Machine struct {
	mu     sync.Mutex
	mode   Mode
	viewer domain.Viewer
}

// NewMachine starts in ModeViewing.
func NewMachine(viewer domain.Viewer) *Machine {
	return &Machine{mode: ModeViewing, viewer: viewer}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Fire applies event and returns the new mode and whether a reload is due.
func (m *Machine) Fire(event Event) (Mode, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, reload, err := Transition(m.mode, event)
	if err != nil {
		return m.mode, false, err
	}
	if next != ModeViewing && !m.viewer.CanSeeDrafts() {
		return m.mode, false, ErrEditorRequired
	}
	m.mode = next
	return next, reload, nil
}
