// Package shell is the GTK4 surface shell: a real window whose floating
// panels are driven by the window registry. It adapts GTK widgets and
// pointer input to the scene abstractions the registry operates on.
package shell

import (
	"context"
	"sync"
	"time"

	"github.com/jwijenbergh/puregotk/v4/graphene"
	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/rs/zerolog"

	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/scene"
)

// Scene adapts a GTK widget tree to scene.PointerSource. One capture-phase
// click gesture on the root widget feeds every listener; panel targets are
// resolved by rectangle hit-testing in root coordinates.
type Scene struct {
	logger zerolog.Logger
	root   *gtk.Widget

	mu        sync.Mutex
	rootNode  *Node
	nodes     []*Node
	listeners map[int]scene.PointerListener
	nextLis   int

	// topMost breaks ties when a press lands inside several overlapping
	// panels. The shell wires it to the registry's stacking order.
	topMost func(candidates []scene.Node) scene.Node

	// Callback retention: must stay reachable by Go GC.
	click     *gtk.GestureClick
	pressedCb func(gtk.GestureClick, int, float64, float64)
}

// NewScene builds a scene over root and attaches the capture-phase click
// gesture to it. Press coordinates are root-relative.
func NewScene(ctx context.Context, root *gtk.Widget) *Scene {
	s := &Scene{
		logger:    logging.FromContext(ctx).With().Str("component", "gtk-scene").Logger(),
		root:      root,
		listeners: make(map[int]scene.PointerListener),
	}
	s.rootNode = &Node{scene: s, widget: root, name: "root"}

	s.click = gtk.NewGestureClick()
	if s.click == nil {
		s.logger.Error().Msg("failed to create click gesture")
		return s
	}

	// Listen to all mouse buttons, before any child widget sees the press.
	s.click.SetButton(0)
	s.click.SetPropagationPhase(gtk.PhaseCaptureValue)

	// Connect pressed handler (retain callback to prevent GC)
	s.pressedCb = func(_ gtk.GestureClick, _ int, x float64, y float64) {
		s.dispatchPress(x, y)
	}
	s.click.ConnectPressed(&s.pressedCb)
	root.AddController(&s.click.EventController)

	return s
}

// Root returns the node standing for the main surface.
func (s *Scene) Root() *Node { return s.rootNode }

// NewNode tracks widget for hit-testing and returns its scene node.
func (s *Scene) NewNode(name string, widget *gtk.Widget) *Node {
	n := &Node{scene: s, widget: widget, name: name}
	s.mu.Lock()
	s.nodes = append(s.nodes, n)
	s.mu.Unlock()
	return n
}

// SetTopMostResolver installs the overlap tie-breaker.
func (s *Scene) SetTopMostResolver(fn func(candidates []scene.Node) scene.Node) {
	s.mu.Lock()
	s.topMost = fn
	s.mu.Unlock()
}

// AddListener implements scene.PointerSource.
func (s *Scene) AddListener(fn scene.PointerListener) func() {
	s.mu.Lock()
	id := s.nextLis
	s.nextLis++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// dispatchPress resolves the press target and fans the event out.
func (s *Scene) dispatchPress(x, y float64) {
	target := s.hitTest(x, y)

	s.mu.Lock()
	fns := make([]scene.PointerListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	s.logger.Debug().Float64("x", x).Float64("y", y).Str("target", target.Name()).Msg("pointer press")

	ev := scene.PointerEvent{Target: target, X: x, Y: y, Time: time.Now()}
	for _, fn := range fns {
		fn(ev)
	}
}

// hitTest finds the tracked panel under the press, falling back to the
// root node for presses on the bare surface.
func (s *Scene) hitTest(x, y float64) scene.Node {
	s.mu.Lock()
	nodes := make([]*Node, len(s.nodes))
	copy(nodes, s.nodes)
	resolve := s.topMost
	s.mu.Unlock()

	var candidates []scene.Node
	for _, n := range nodes {
		if n.containsPoint(x, y) {
			candidates = append(candidates, n)
		}
	}

	switch len(candidates) {
	case 0:
		return s.rootNode
	case 1:
		return candidates[0]
	}
	if resolve != nil {
		if top := resolve(candidates); top != nil {
			return top
		}
	}
	// Later nodes sit above earlier ones in overlay order.
	return candidates[len(candidates)-1]
}

// Node adapts one GTK widget to scene.Node. Identity follows the native
// widget pointer, so the same widget always compares equal.
type Node struct {
	scene  *Scene
	widget *gtk.Widget
	name   string
}

var _ scene.Node = (*Node)(nil)

// Widget returns the underlying GTK widget.
func (n *Node) Widget() *gtk.Widget { return n.widget }

// Contains implements scene.Node by walking other's parent chain.
func (n *Node) Contains(other scene.Node) bool {
	o, ok := other.(*Node)
	if !ok || o == nil || o.widget == nil || n.widget == nil {
		return false
	}
	self := n.widget.GoPointer()
	for cur := o.widget; cur != nil; cur = cur.GetParent() {
		if cur.GoPointer() == self {
			return true
		}
	}
	return false
}

// Anchored implements scene.Node: the widget must still reach the scene
// root through its parents.
func (n *Node) Anchored() bool {
	if n.widget == nil || n.scene == nil || n.scene.root == nil {
		return false
	}
	root := n.scene.root.GoPointer()
	for cur := n.widget; cur != nil; cur = cur.GetParent() {
		if cur.GoPointer() == root {
			return true
		}
	}
	return false
}

// Name implements scene.Node.
func (n *Node) Name() string { return n.name }

// containsPoint reports whether the root-relative point lies inside the
// widget's allocation. Hidden widgets never contain anything.
func (n *Node) containsPoint(x, y float64) bool {
	if n.widget == nil || !n.widget.GetVisible() {
		return false
	}

	srcPoint := &graphene.Point{X: 0, Y: 0}
	outPoint := &graphene.Point{}
	if !n.widget.ComputePoint(n.scene.root, srcPoint, outPoint) {
		return false
	}

	ox := float64(outPoint.X)
	oy := float64(outPoint.Y)
	w := float64(n.widget.GetAllocatedWidth())
	h := float64(n.widget.GetAllocatedHeight())

	return x >= ox && x < ox+w && y >= oy && y < oy+h
}
