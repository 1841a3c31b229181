package registry

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/scene/scenetest"
)

// eventLog records observer events for assertions.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) WindowEvent(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *eventLog) of(t EventType) []Event {
	var out []Event
	for _, ev := range l.all() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func newTestRegistry(t *testing.T) (*Registry, *scenetest.Tree, *eventLog) {
	t.Helper()
	tree := scenetest.NewTree()
	events := &eventLog{}
	r := New(context.Background(), Options{Pointer: tree, Observers: []Observer{events}})
	t.Cleanup(func() { _ = r.Close() })
	return r, tree, events
}

func newTestRegistryWithPolicy(t *testing.T, policy Policy) (*Registry, *scenetest.Tree, *eventLog) {
	t.Helper()
	tree := scenetest.NewTree()
	events := &eventLog{}
	r := New(context.Background(), Options{Pointer: tree, Policy: &policy, Observers: []Observer{events}})
	t.Cleanup(func() { _ = r.Close() })
	return r, tree, events
}

// newLoggedRegistry builds a registry whose diagnostics land in the returned
// buffer as JSON lines.
func newLoggedRegistry(t *testing.T) (*Registry, *scenetest.Tree, *bytes.Buffer) {
	t.Helper()
	tree := scenetest.NewTree()
	buf := &bytes.Buffer{}
	ctx := logging.WithContext(context.Background(), zerolog.New(buf))
	r := New(ctx, Options{Pointer: tree})
	t.Cleanup(func() { _ = r.Close() })
	return r, tree, buf
}

func TestRegisterAndQueries(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	chat := tree.NewNode("chat", nil)
	settings := tree.NewNode("settings", nil)

	r.Register("chat-panel", chat, WindowConfig{})
	r.Register("settings-panel", settings, WindowConfig{Priority: 10})

	require.True(t, r.IsRegistered("chat-panel"))
	require.True(t, r.IsRegistered("settings-panel"))
	assert.False(t, r.IsRegistered("unknown"))

	w, ok := r.Window("settings-panel")
	require.True(t, ok)
	assert.Equal(t, WindowID("settings-panel"), w.ID)
	assert.Equal(t, 10, w.Config.Priority)
	assert.Same(t, settings, w.Element)
	assert.False(t, w.Active)
	assert.False(t, w.RegisteredAt.IsZero())

	_, ok = r.Window("unknown")
	assert.False(t, ok)

	all := r.Windows()
	require.Len(t, all, 2)
	assert.Equal(t, WindowID("chat-panel"), all[0].ID)
	assert.Equal(t, WindowID("settings-panel"), all[1].ID)
	assert.Less(t, all[0].ZOrder, all[1].ZOrder)

	assert.Empty(t, r.ActiveWindows())
	assert.False(t, r.IsActive("chat-panel"))

	r.SetActive("chat-panel")
	assert.True(t, r.IsActive("chat-panel"))
	active := r.ActiveWindows()
	require.Len(t, active, 1)
	assert.Equal(t, WindowID("chat-panel"), active[0].ID)
}

func TestDuplicateRegisterReplacesAndWarns(t *testing.T) {
	r, tree, buf := newLoggedRegistry(t)

	first := tree.NewNode("first", nil)
	second := tree.NewNode("second", nil)

	r.Register("menu", first, WindowConfig{})
	r.Register("menu", second, WindowConfig{Priority: 3})

	require.Len(t, r.Windows(), 1)
	w, ok := r.Window("menu")
	require.True(t, ok)
	assert.Same(t, second, w.Element)
	assert.Equal(t, 3, w.Config.Priority)

	assert.Contains(t, buf.String(), "duplicate registration")
}

func TestReplaceEmitsReplacedEvent(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	el := tree.NewNode("el", nil)
	r.Register("menu", el, WindowConfig{})
	r.Register("menu", el, WindowConfig{})

	assert.Len(t, events.of(EventRegistered), 1)
	assert.Len(t, events.of(EventReplaced), 1)
}

func TestOperationsOnUnknownIDAreNoOps(t *testing.T) {
	r, _, events := newTestRegistry(t)

	ops := map[string]func(WindowID){
		"unregister":     r.Unregister,
		"set-active":     r.SetActive,
		"set-inactive":   r.SetInactive,
		"bring-to-front": r.BringToFront,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() { op("ghost") })
		})
	}
	assert.Empty(t, events.all())
}

func TestUnknownIDWarnsWhenPolicyAsks(t *testing.T) {
	tree := scenetest.NewTree()
	buf := &bytes.Buffer{}
	ctx := logging.WithContext(context.Background(), zerolog.New(buf))
	policy := DefaultPolicy()
	policy.WarnUnknownIDs = true
	r := New(ctx, Options{Pointer: tree, Policy: &policy})
	t.Cleanup(func() { _ = r.Close() })

	r.BringToFront("ghost")

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "unknown window")
}

func TestUnregisterRemovesActiveMembership(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	el := tree.NewNode("el", nil)
	r.Register("panel", el, WindowConfig{})
	r.SetActive("panel")
	require.True(t, r.IsActive("panel"))

	r.Unregister("panel")
	assert.False(t, r.IsRegistered("panel"))
	assert.False(t, r.IsActive("panel"))
	assert.Empty(t, r.ActiveWindows())
	assert.Len(t, events.of(EventUnregistered), 1)
}

func TestModalRegistrationActivatesAndFocuses(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	var focused int
	el := tree.NewNode("dialog", nil)
	r.Register("dialog", el, WindowConfig{Modal: true, FocusHandler: func() { focused++ }})

	assert.True(t, r.IsActive("dialog"))
	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("dialog"), owner)
	assert.Equal(t, 1, focused)

	assert.Len(t, events.of(EventRegistered), 1)
	assert.Len(t, events.of(EventActivated), 1)
	assert.NotEmpty(t, events.of(EventRaised))
	assert.Len(t, events.of(EventFocusChanged), 1)
}

func TestReplacedFocusOwnerHandsOff(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	var chatFocused int
	chat := tree.NewNode("chat", nil)
	other := tree.NewNode("other", nil)
	r.Register("chat", chat, WindowConfig{FocusHandler: func() { chatFocused++ }})
	r.Register("other", other, WindowConfig{})

	r.BringToFront("chat")
	r.SetActive("other")
	require.Equal(t, 1, chatFocused)

	// Re-registering the focus owner drops its active state, so focus must
	// move to the remaining active surface.
	r.Register("chat", chat, WindowConfig{FocusHandler: func() { chatFocused++ }})
	owner, ok := r.FocusOwner()
	require.True(t, ok)
	assert.Equal(t, WindowID("other"), owner)
	assert.False(t, r.IsActive("chat"))
}

func TestCloseDetachesListenerAndClearsState(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	el := tree.NewNode("el", nil)
	r.Register("panel", el, WindowConfig{})
	require.Equal(t, 1, tree.ListenerCount())

	require.NoError(t, r.Close())
	assert.Equal(t, 0, tree.ListenerCount())
	assert.Empty(t, r.Windows())
	assert.Len(t, events.of(EventClosed), 1)

	// Operations after Close are no-ops, and Close is idempotent.
	r.Register("late", el, WindowConfig{})
	assert.False(t, r.IsRegistered("late"))
	require.NoError(t, r.Close())
	assert.Len(t, events.of(EventClosed), 1)
}

func TestObserverOrderMatchesTransitions(t *testing.T) {
	r, tree, events := newTestRegistry(t)

	el := tree.NewNode("dialog", nil)
	r.Register("dialog", el, WindowConfig{Modal: true})

	var got []EventType
	for _, ev := range events.all() {
		got = append(got, ev.Type)
	}
	require.NotEmpty(t, got)
	assert.Equal(t, EventRegistered, got[0])
	// Activation and raising precede the focus change.
	assert.Equal(t, EventFocusChanged, got[len(got)-1])
}

func TestConcurrentOperations(t *testing.T) {
	r, tree, _ := newTestRegistry(t)

	els := make([]*scenetest.Node, 8)
	for i := range els {
		els[i] = tree.NewNode(fmt.Sprintf("panel-%d", i), nil)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := WindowID(fmt.Sprintf("panel-%d", i))
			for j := 0; j < 50; j++ {
				r.Register(id, els[i], WindowConfig{CloseOnClickOutside: true, CloseHandler: func() {}})
				r.BringToFront(id)
				r.SetInactive(id)
				r.SetActive(id)
				_ = r.Windows()
				_ = r.IsClickOutsideAll(els[i])
				r.Unregister(id)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			tree.ClickBackground()
		}
	}()
	wg.Wait()

	assert.Empty(t, r.Windows())

	// The counter survived the churn; a fresh registration still gets a
	// positive, never-reused value.
	el := tree.NewNode("final", nil)
	r.Register("final", el, WindowConfig{})
	w, ok := r.Window("final")
	require.True(t, ok)
	assert.Positive(t, w.ZOrder)
}
