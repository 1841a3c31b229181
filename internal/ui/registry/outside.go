package registry

import (
	"sort"
	"time"

	"github.com/panekit/panekit/internal/ui/scene"
)

// outsideDetector drives outside-click dismissal from the single pointer
// listener the registry attaches at construction. Listener count stays one
// no matter how many surfaces register.
type outsideDetector struct {
	reg *Registry
}

// outsideOf reports whether target lies outside e. A surface whose element
// is nil or detached from the tree is outside by definition (fail-safe
// closing), and so is a press that hit no tracked node.
func outsideOf(target scene.Node, e *entry) bool {
	if e.element == nil || !e.element.Anchored() {
		return true
	}
	if target == nil {
		return true
	}
	return !e.element.Contains(target)
}

// handlePress runs the two-phase dismissal pass. Phase one evaluates every
// registered surface against the same captured target under the lock; phase
// two invokes close handlers topmost first. One surface's closure can never
// change another surface's outside result for the same press.
func (d *outsideDetector) handlePress(ev scene.PointerEvent) {
	r := d.reg

	type victim struct {
		id       WindowID
		zOrder   int64
		modal    bool
		priority int
		handler  func()
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	outsideAll := true
	var victims []victim
	for _, e := range r.windows {
		out := outsideOf(ev.Target, e)
		if !out {
			outsideAll = false
		}
		if out && e.active && e.cfg.CloseOnClickOutside {
			victims = append(victims, victim{
				id:       e.id,
				zOrder:   e.zOrder,
				modal:    e.cfg.Modal,
				priority: e.cfg.Priority,
				handler:  e.cfg.CloseHandler,
			})
		}
	}
	r.mu.Unlock()

	sort.Slice(victims, func(i, j int) bool { return victims[i].zOrder > victims[j].zOrder })

	for _, v := range victims {
		if v.handler == nil {
			r.logger.Warn().Str("window_id", string(v.id)).
				Msg("close_on_click_outside set but no close handler configured, skipping")
			continue
		}
		r.logger.Debug().Str("window_id", string(v.id)).Msg("outside press, dismissing window")
		evt := Event{
			Type:     EventDismissedOutside,
			WindowID: v.id,
			ZOrder:   v.zOrder,
			Modal:    v.modal,
			Priority: v.priority,
			Time:     time.Now(),
		}
		for _, o := range r.observers {
			o.WindowEvent(evt)
		}
		v.handler()
	}

	if outsideAll && r.globalOutside != nil {
		r.globalOutside()
	}
}

// IsClickOutside reports whether target lies outside the surface registered
// as id. Unknown ids are outside by definition.
func (r *Registry) IsClickOutside(target scene.Node, id WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.windows[id]
	if !ok {
		return true
	}
	return outsideOf(target, e)
}

// IsClickOutsideAll reports whether target lies outside every registered
// surface, active or not. With nothing registered it is vacuously true.
func (r *Registry) IsClickOutsideAll(target scene.Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.windows {
		if !outsideOf(target, e) {
			return false
		}
	}
	return true
}
