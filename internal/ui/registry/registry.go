// Package registry coordinates floating surfaces layered over a main UI
// surface: registration, activation, z-ordering, outside-click dismissal,
// and focus routing. It operates on scene abstractions only, so it runs the
// same under GTK, the terminal simulator, and tests.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/scene"
)

// Policy tunes registry-wide behavior. Values come from configuration; the
// zero value disables every behavior, use DefaultPolicy for the defaults.
type Policy struct {
	// ModalExclusive deactivates other modal surfaces whenever a modal
	// surface is activated. Non-modal surfaces are never touched.
	ModalExclusive bool

	// FocusFollowsDismissal hands focus to the best remaining active surface
	// (highest priority, then latest registration) when the focus owner is
	// unregistered, deactivated, or dismissed.
	FocusFollowsDismissal bool

	// WarnUnknownIDs logs no-op operations on unregistered ids at warn level
	// instead of debug.
	WarnUnknownIDs bool
}

// DefaultPolicy returns the stock policy: modal exclusivity and focus
// handoff both enabled.
func DefaultPolicy() Policy {
	return Policy{ModalExclusive: true, FocusFollowsDismissal: true}
}

// Options configures a Registry.
type Options struct {
	// Pointer is the capture-phase press source backing outside-click
	// dispatch. The registry attaches exactly one listener for its whole
	// lifetime. Nil disables dispatch; containment queries keep working.
	Pointer scene.PointerSource

	// Policy overrides DefaultPolicy when non-nil.
	Policy *Policy

	// Observers receive lifecycle events synchronously, in order.
	Observers []Observer

	// GlobalOutsideHandler fires when a press lands outside every registered
	// surface, e.g. to dismiss a menu that never registered.
	GlobalOutsideHandler func()
}

// Registry is the window registry service. Construct with New; the zero
// value is not usable. All operations are synchronous and safe for
// concurrent use; handlers and observers run outside the internal lock and
// may re-enter the registry.
type Registry struct {
	logger        zerolog.Logger
	policy        Policy
	observers     []Observer
	globalOutside func()

	mu          sync.Mutex
	windows     map[WindowID]*entry
	stack       zStack
	seq         uint64
	focus       WindowID
	unsubscribe func()
	closed      bool
}

// New builds a Registry and, when opts.Pointer is set, attaches the single
// process-wide pointer listener.
func New(ctx context.Context, opts Options) *Registry {
	policy := DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	r := &Registry{
		logger:        logging.FromContext(ctx).With().Str("component", "window-registry").Logger(),
		policy:        policy,
		observers:     opts.Observers,
		globalOutside: opts.GlobalOutsideHandler,
		windows:       make(map[WindowID]*entry),
		stack:         newZStack(),
	}

	if opts.Pointer != nil {
		d := &outsideDetector{reg: r}
		r.unsubscribe = opts.Pointer.AddListener(d.handlePress)
	}

	return r
}

// effects accumulates events and handler invocations while the lock is held;
// both are dispatched after release so callbacks can re-enter the registry.
type effects struct {
	events []Event
	calls  []func()
}

func (fx *effects) event(e *entry, t EventType, detail string) {
	fx.events = append(fx.events, Event{
		Type:     t,
		WindowID: e.id,
		ZOrder:   e.zOrder,
		Modal:    e.cfg.Modal,
		Priority: e.cfg.Priority,
		Detail:   detail,
		Time:     time.Now(),
	})
}

func (r *Registry) flush(fx *effects) {
	for _, ev := range fx.events {
		for _, o := range r.observers {
			o.WindowEvent(ev)
		}
	}
	for _, fn := range fx.calls {
		fn()
	}
}

// Register adds id to the registry. A duplicate id replaces the previous
// entry and logs a warning; registration never fails. The new entry starts
// inactive with a fresh base z-order, except modal surfaces, which are
// activated and brought to the front immediately.
func (r *Registry) Register(id WindowID, element scene.Node, cfg WindowConfig) {
	var fx effects

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Debug().Str("window_id", string(id)).Msg("register on closed registry ignored")
		return
	}

	_, replaced := r.windows[id]
	r.seq++
	e := &entry{
		id:           id,
		cfg:          cfg,
		element:      element,
		zOrder:       r.stack.take(),
		registeredAt: time.Now(),
		seq:          r.seq,
	}
	r.windows[id] = e

	if replaced {
		fx.event(e, EventReplaced, "existing registration replaced")
		if r.focus == id {
			r.focus = ""
		}
	} else {
		fx.event(e, EventRegistered, "")
	}

	if cfg.Modal {
		r.raiseLocked(e, &fx)
	} else if replaced && r.focus == "" {
		r.handoffLocked(&fx)
	}
	r.mu.Unlock()

	if replaced {
		r.logger.Warn().Str("window_id", string(id)).Msg("duplicate registration replaced existing window")
	}
	if element == nil {
		r.logger.Debug().Str("window_id", string(id)).Msg("window registered without element, treated as outside every press")
	}
	r.flush(&fx)
}

// Unregister removes id and its active membership. Unknown ids are a no-op.
func (r *Registry) Unregister(id WindowID) {
	var fx effects

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		r.logUnknownID("unregister", id)
		return
	}
	delete(r.windows, id)
	fx.event(e, EventUnregistered, "")
	if r.focus == id {
		r.handoffLocked(&fx)
	}
	r.mu.Unlock()

	r.flush(&fx)
}

// SetActive marks id active. Non-modal surfaces keep their z-order; modal
// surfaces are raised so modal precedence holds whenever they are active.
// Unknown ids are a no-op.
func (r *Registry) SetActive(id WindowID) {
	var fx effects

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		r.logUnknownID("set-active", id)
		return
	}
	if e.cfg.Modal {
		r.raiseLocked(e, &fx)
	} else {
		r.activateLocked(e, &fx)
		r.assertModalPrecedenceLocked(&fx)
		r.recomputeFocusLocked(&fx)
	}
	r.mu.Unlock()

	r.flush(&fx)
}

// SetInactive removes id from the active set; the entry stays registered.
// Unknown ids are a no-op.
func (r *Registry) SetInactive(id WindowID) {
	var fx effects

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		r.logUnknownID("set-inactive", id)
		return
	}
	if e.active {
		e.active = false
		fx.event(e, EventDeactivated, "")
	}
	if r.focus == id {
		r.handoffLocked(&fx)
	}
	r.mu.Unlock()

	r.flush(&fx)
}

// BringToFront assigns id a fresh z-order above everything assigned so far
// and activates it. Active modal surfaces are re-asserted above non-modal
// raises. Unknown ids are a no-op.
func (r *Registry) BringToFront(id WindowID) {
	var fx effects

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	e, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		r.logUnknownID("bring-to-front", id)
		return
	}
	r.raiseLocked(e, &fx)
	r.mu.Unlock()

	r.flush(&fx)
}

// logUnknownID reports a no-op on an unregistered id. Debug by default, warn
// when the policy asks for it.
func (r *Registry) logUnknownID(op string, id WindowID) {
	evt := r.logger.Debug()
	if r.policy.WarnUnknownIDs {
		evt = r.logger.Warn()
	}
	evt.Str("op", op).Str("window_id", string(id)).Msg("operation on unknown window ignored")
}

// activateLocked marks e active and applies modal exclusivity.
func (r *Registry) activateLocked(e *entry, fx *effects) {
	if !e.active {
		e.active = true
		fx.event(e, EventActivated, "")
	}
	if e.cfg.Modal && r.policy.ModalExclusive {
		for _, other := range r.windows {
			if other != e && other.active && other.cfg.Modal {
				other.active = false
				fx.event(other, EventDeactivated, "modal exclusivity")
			}
		}
	}
}

// raiseLocked gives e a fresh z-order and activates it. Re-asserting modal
// precedence afterwards guarantees that modal surfaces win z-order against
// anything raised or activated in the same pass.
func (r *Registry) raiseLocked(e *entry, fx *effects) {
	e.zOrder = r.stack.take()
	fx.event(e, EventRaised, "")
	r.activateLocked(e, fx)
	r.assertModalPrecedenceLocked(fx)
	r.recomputeFocusLocked(fx)
}

// assertModalPrecedenceLocked re-raises the active modals, relative order
// preserved, whenever any of them sits below an active non-modal surface.
func (r *Registry) assertModalPrecedenceLocked(fx *effects) {
	var maxNonModal int64
	for _, e := range r.windows {
		if e.active && !e.cfg.Modal && e.zOrder > maxNonModal {
			maxNonModal = e.zOrder
		}
	}
	if maxNonModal == 0 {
		return
	}
	modals := activeModalsAscending(r.windows, nil)
	buried := false
	for _, m := range modals {
		if m.zOrder < maxNonModal {
			buried = true
			break
		}
	}
	if !buried {
		return
	}
	for _, m := range modals {
		m.zOrder = r.stack.take()
		fx.event(m, EventRaised, "modal precedence")
	}
}

// recomputeFocusLocked moves focus to the top active surface and queues its
// FocusHandler when ownership changes.
func (r *Registry) recomputeFocusLocked(fx *effects) {
	top := topActive(r.windows)
	var id WindowID
	if top != nil {
		id = top.id
	}
	if id == r.focus {
		return
	}
	r.focus = id
	if top == nil {
		fx.events = append(fx.events, Event{Type: EventFocusChanged, Detail: "cleared", Time: time.Now()})
		return
	}
	fx.event(top, EventFocusChanged, "")
	if top.cfg.FocusHandler != nil {
		fx.calls = append(fx.calls, top.cfg.FocusHandler)
	}
}

// handoffLocked selects the next focus owner after the current one left:
// the strongest active candidate by priority, then registration recency.
// The candidate is raised when it is not already on top.
func (r *Registry) handoffLocked(fx *effects) {
	if !r.policy.FocusFollowsDismissal {
		r.recomputeFocusLocked(fx)
		return
	}
	cand := focusCandidate(r.windows)
	if cand == nil {
		r.recomputeFocusLocked(fx)
		return
	}
	if top := topActive(r.windows); top == cand {
		r.recomputeFocusLocked(fx)
		return
	}
	r.raiseLocked(cand, fx)
}

// Window returns a snapshot of id.
func (r *Registry) Window(id WindowID) (Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.windows[id]
	if !ok {
		return Window{}, false
	}
	return e.snapshot(), true
}

// Windows returns snapshots of every registered surface, bottom to top.
func (r *Registry) Windows() []Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := ascendingZ(r.windows)
	out := make([]Window, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.snapshot())
	}
	return out
}

// ActiveWindows returns snapshots of the active surfaces, bottom to top.
func (r *Registry) ActiveWindows() []Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := ascendingZ(r.windows)
	out := make([]Window, 0, len(entries))
	for _, e := range entries {
		if e.active {
			out = append(out, e.snapshot())
		}
	}
	return out
}

// IsRegistered reports whether id is registered.
func (r *Registry) IsRegistered(id WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.windows[id]
	return ok
}

// IsActive reports whether id is registered and active.
func (r *Registry) IsActive(id WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.windows[id]
	return ok && e.active
}

// FocusOwner returns the id of the current focus owner; ok is false when no
// surface is active.
func (r *Registry) FocusOwner() (WindowID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focus, r.focus != ""
}

// Close detaches the pointer listener and clears all state. Further
// operations are no-ops. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	unsub := r.unsubscribe
	r.unsubscribe = nil
	r.windows = make(map[WindowID]*entry)
	r.focus = ""
	r.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	for _, o := range r.observers {
		o.WindowEvent(Event{Type: EventClosed, Time: time.Now()})
	}
	r.logger.Debug().Msg("registry closed")
	return nil
}
