package component

import (
	"sync"

	"github.com/panekit/panekit/internal/ui/registry"
	"github.com/panekit/panekit/internal/ui/scene"
)

// PanelOptions controls floating panel behavior.
type PanelOptions struct {
	ID                  registry.WindowID
	CloseOnClickOutside bool
	Modal               bool
	Priority            int

	// Toolkit hooks. OnShow/OnHide flip the widget's visibility; OnFocus runs
	// when the registry grants the panel focus. All run outside panel locks.
	OnShow  func()
	OnHide  func()
	OnFocus func()
}

// Panel tracks floating panel state and keeps it bound to the window
// registry: registered while mounted, active while visible, dismissed by
// outside presses when configured.
type Panel struct {
	client *registry.Client
	opts   PanelOptions

	mu           sync.RWMutex
	element      scene.Node
	mounted      bool
	visible      bool
	stateVersion uint64
}

// NewPanel creates a panel shell bound to reg. The panel starts unmounted.
func NewPanel(reg *registry.Registry, opts PanelOptions) *Panel {
	if opts.ID == "" {
		opts.ID = "panel"
	}
	return &Panel{
		client: registry.NewClient(reg, opts.ID),
		opts:   opts,
	}
}

// ID returns the panel's window id.
func (p *Panel) ID() registry.WindowID { return p.client.ID() }

// Mount registers the panel for the given element. The panel starts hidden;
// mounting twice re-registers with the new element.
func (p *Panel) Mount(element scene.Node) {
	p.mu.Lock()
	p.element = element
	p.mounted = true
	p.visible = false
	p.stateVersion++
	p.mu.Unlock()

	p.client.RegisterSelf(element, registry.WindowConfig{
		CloseOnClickOutside: p.opts.CloseOnClickOutside,
		Modal:               p.opts.Modal,
		Priority:            p.opts.Priority,
		CloseHandler:        p.Hide,
		FocusHandler:        p.opts.OnFocus,
	})

	// Modal surfaces come out of registration active; mirror that here so
	// the panel's visibility agrees with the registry.
	if p.client.Active() {
		p.mu.Lock()
		wasVisible := p.visible
		p.visible = true
		p.stateVersion++
		p.mu.Unlock()
		if !wasVisible && p.opts.OnShow != nil {
			p.opts.OnShow()
		}
	}
}

// Unmount unregisters the panel. Safe when never mounted.
func (p *Panel) Unmount() {
	p.mu.Lock()
	wasVisible := p.visible
	p.mounted = false
	p.visible = false
	p.stateVersion++
	p.mu.Unlock()

	p.client.UnregisterSelf()
	if wasVisible && p.opts.OnHide != nil {
		p.opts.OnHide()
	}
}

// Show makes the panel visible, activates it and raises it. No-op while
// unmounted.
func (p *Panel) Show() {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return
	}
	wasVisible := p.visible
	p.visible = true
	p.stateVersion++
	// Registry calls and hooks run after release: both may re-enter the
	// panel from handlers.
	p.mu.Unlock()

	p.client.BringToFront()
	if !wasVisible && p.opts.OnShow != nil {
		p.opts.OnShow()
	}
}

// Hide deactivates the panel and invokes the hide hook. The registration is
// kept, so a later Show resumes participation without re-mounting. Hide is
// also the panel's close handler for outside-press dismissal.
func (p *Panel) Hide() {
	p.mu.Lock()
	if !p.mounted && !p.visible {
		p.mu.Unlock()
		return
	}
	wasVisible := p.visible
	p.visible = false
	p.stateVersion++
	p.mu.Unlock()

	p.client.SetInactive()
	if wasVisible && p.opts.OnHide != nil {
		p.opts.OnHide()
	}
}

// Toggle shows the panel when hidden and hides it when visible. It returns
// the resulting visibility.
func (p *Panel) Toggle() bool {
	if p.IsVisible() {
		p.Hide()
		return false
	}
	p.Show()
	return p.IsVisible()
}

// IsVisible reports whether the panel is currently shown.
func (p *Panel) IsVisible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible
}

// Mounted reports whether the panel is registered.
func (p *Panel) Mounted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mounted
}

// Element returns the mounted element, nil while unmounted.
func (p *Panel) Element() scene.Node {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.element
}
