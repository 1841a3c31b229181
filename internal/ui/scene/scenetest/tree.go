// Package scenetest provides an in-memory scene tree and pointer source for
// tests that need containment and click dispatch without a GUI runtime.
package scenetest

import (
	"sync"
	"time"

	"github.com/panekit/panekit/internal/ui/scene"
)

// Tree is a fake scene. The zero value is not usable; construct with NewTree.
type Tree struct {
	mu        sync.Mutex
	root      *Node
	listeners map[int]scene.PointerListener
	nextLis   int
}

// NewTree builds a tree with a single root node.
func NewTree() *Tree {
	t := &Tree{listeners: make(map[int]scene.PointerListener)}
	t.root = &Node{tree: t, name: "root"}
	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// NewNode creates a node under parent. A nil parent attaches to the root.
func (t *Tree) NewNode(name string, parent *Node) *Node {
	if parent == nil {
		parent = t.root
	}
	return &Node{tree: t, name: name, parent: parent}
}

// AddListener implements scene.PointerSource.
func (t *Tree) AddListener(fn scene.PointerListener) func() {
	t.mu.Lock()
	id := t.nextLis
	t.nextLis++
	t.listeners[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// ListenerCount reports the number of attached pointer listeners.
func (t *Tree) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// Click synthesizes a button-1 press targeting the given node. A nil target
// models a press that landed on no tracked node.
func (t *Tree) Click(target scene.Node) {
	t.ClickAt(target, 0, 0)
}

// ClickAt synthesizes a press at root-relative coordinates.
func (t *Tree) ClickAt(target scene.Node, x, y float64) {
	ev := scene.PointerEvent{Target: target, X: x, Y: y, Button: 1, Time: time.Now()}

	t.mu.Lock()
	fns := make([]scene.PointerListener, 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// ClickBackground synthesizes a press on the bare root, outside every surface.
func (t *Tree) ClickBackground() {
	t.Click(t.root)
}

// Node is a fake scene node. Identity is pointer identity.
type Node struct {
	tree     *Tree
	name     string
	parent   *Node
	detached bool
}

var _ scene.Node = (*Node)(nil)

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other scene.Node) bool {
	o, ok := other.(*Node)
	if !ok || o == nil {
		return false
	}
	for cur := o; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Anchored reports whether n still reaches the tree root through its parents.
func (n *Node) Anchored() bool {
	if n.detached {
		return false
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.tree.root {
			return true
		}
	}
	return false
}

// Name returns the node's diagnostic name.
func (n *Node) Name() string { return n.name }

// Reparent moves n under newParent and clears any detached mark.
func (n *Node) Reparent(newParent *Node) {
	n.parent = newParent
	n.detached = false
}

// Detach severs n from the tree, modeling an element removed from the
// document. Descendants become unanchored as well.
func (n *Node) Detach() {
	n.parent = nil
	n.detached = true
}
