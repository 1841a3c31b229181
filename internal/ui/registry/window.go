package registry

import (
	"time"

	"github.com/panekit/panekit/internal/ui/scene"
)

// WindowID identifies one registered surface, unique within a Registry.
type WindowID string

// WindowConfig is the fully-enumerated behavior contract a surface declares at
// registration. The zero value is a plain panel: no outside-click dismissal,
// non-modal, priority 0, no handlers.
type WindowConfig struct {
	// CloseOnClickOutside requests dismissal when a press lands outside the
	// surface. Requires CloseHandler to have any effect.
	CloseOnClickOutside bool

	// Modal marks the surface as belonging to the modal precedence class:
	// it stays above non-modal surfaces whenever it is active.
	Modal bool

	// Priority is the tie-break weight when surfaces compete for focus.
	// Higher wins; equal priorities fall back to registration recency.
	Priority int

	// CloseHandler dismisses the surface. Invoked by outside-click dispatch
	// and keyboard dismissal. The registry never awaits asynchronous work
	// started by the handler.
	CloseHandler func()

	// FocusHandler is invoked when the surface becomes the focus owner.
	FocusHandler func()
}

// Window is a point-in-time snapshot of one registered surface. Snapshots are
// plain values; holding one past Unregister is harmless.
type Window struct {
	ID           WindowID
	Config       WindowConfig
	Element      scene.Node
	ZOrder       int64
	RegisteredAt time.Time
	Active       bool
}

// entry is the registry's mutable record for one surface. Active and zOrder
// are updated in place; everything else is fixed at registration.
type entry struct {
	id           WindowID
	cfg          WindowConfig
	element      scene.Node
	zOrder       int64
	registeredAt time.Time
	seq          uint64
	active       bool
}

func (e *entry) snapshot() Window {
	return Window{
		ID:           e.id,
		Config:       e.cfg,
		Element:      e.element,
		ZOrder:       e.zOrder,
		RegisteredAt: e.registeredAt,
		Active:       e.active,
	}
}

// EventType classifies registry lifecycle events delivered to observers.
type EventType string

const (
	EventRegistered       EventType = "registered"
	EventReplaced         EventType = "replaced"
	EventUnregistered     EventType = "unregistered"
	EventActivated        EventType = "activated"
	EventDeactivated      EventType = "deactivated"
	EventRaised           EventType = "raised"
	EventFocusChanged     EventType = "focus_changed"
	EventDismissedOutside EventType = "dismissed_outside"
	EventClosed           EventType = "registry_closed"
)

// Event is one registry state transition.
type Event struct {
	Type     EventType
	WindowID WindowID
	ZOrder   int64
	Modal    bool
	Priority int
	Detail   string
	Time     time.Time
}

// Observer receives registry events synchronously, in emission order, outside
// the registry's internal lock. Implementations must not block.
type Observer interface {
	WindowEvent(Event)
}
