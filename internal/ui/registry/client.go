package registry

import (
	"sync"

	"github.com/panekit/panekit/internal/ui/scene"
)

// Client is the small per-panel registry binding. A panel constructs one
// with its id, registers on mount and unregisters on unmount; repeated
// register/unregister cycles are fine, and unregistering a panel that never
// registered is a no-op.
type Client struct {
	reg *Registry
	id  WindowID

	mu         sync.Mutex
	registered bool
}

// NewClient binds id to reg.
func NewClient(reg *Registry, id WindowID) *Client {
	return &Client{reg: reg, id: id}
}

// ID returns the bound window id.
func (c *Client) ID() WindowID { return c.id }

// RegisterSelf registers the panel with the given element and behavior
// contract. Calling it while already registered replaces the entry, same as
// Registry.Register.
func (c *Client) RegisterSelf(element scene.Node, cfg WindowConfig) {
	c.mu.Lock()
	c.registered = true
	c.mu.Unlock()
	c.reg.Register(c.id, element, cfg)
}

// UnregisterSelf removes the panel's registration. Safe to call when never
// registered and safe to call repeatedly.
func (c *Client) UnregisterSelf() {
	c.mu.Lock()
	was := c.registered
	c.registered = false
	c.mu.Unlock()
	if !was {
		return
	}
	c.reg.Unregister(c.id)
}

// Scoped registers the panel and returns an idempotent release function for
// defer-style lifetimes.
func (c *Client) Scoped(element scene.Node, cfg WindowConfig) (release func()) {
	c.RegisterSelf(element, cfg)
	var once sync.Once
	return func() {
		once.Do(c.UnregisterSelf)
	}
}

// BringToFront raises the panel.
func (c *Client) BringToFront() { c.reg.BringToFront(c.id) }

// SetActive activates the panel.
func (c *Client) SetActive() { c.reg.SetActive(c.id) }

// SetInactive deactivates the panel.
func (c *Client) SetInactive() { c.reg.SetInactive(c.id) }

// Registered reports whether the panel is currently registered.
func (c *Client) Registered() bool { return c.reg.IsRegistered(c.id) }

// Active reports whether the panel is currently active.
func (c *Client) Active() bool { return c.reg.IsActive(c.id) }
