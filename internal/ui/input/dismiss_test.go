package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panekit/panekit/internal/ui/registry"
	"github.com/panekit/panekit/internal/ui/scene/scenetest"
)

func TestEscapeDismissesTopmostFirst(t *testing.T) {
	tree := scenetest.NewTree()
	reg := registry.New(context.Background(), registry.Options{Pointer: tree})
	t.Cleanup(func() { _ = reg.Close() })
	router := NewDismissRouter(context.Background(), reg)

	var order []string
	lower := tree.NewNode("lower", nil)
	dialog := tree.NewNode("dialog", nil)
	reg.Register("lower", lower, registry.WindowConfig{CloseHandler: func() {
		order = append(order, "lower")
		reg.Unregister("lower")
	}})
	reg.Register("dialog", dialog, registry.WindowConfig{Modal: true, CloseHandler: func() {
		order = append(order, "dialog")
		reg.Unregister("dialog")
	}})
	reg.SetActive("lower")

	require.True(t, router.HandleEscape())
	require.True(t, router.HandleEscape())
	assert.False(t, router.HandleEscape(), "nothing dismissable left")

	assert.Equal(t, []string{"dialog", "lower"}, order, "modal goes first")
}

func TestEscapeSkipsSurfacesWithoutCloseHandler(t *testing.T) {
	tree := scenetest.NewTree()
	reg := registry.New(context.Background(), registry.Options{Pointer: tree})
	t.Cleanup(func() { _ = reg.Close() })
	router := NewDismissRouter(context.Background(), reg)

	var closed int
	sticky := tree.NewNode("sticky", nil)
	panel := tree.NewNode("panel", nil)
	reg.Register("sticky", sticky, registry.WindowConfig{})
	reg.Register("panel", panel, registry.WindowConfig{CloseHandler: func() { closed++ }})
	reg.SetActive("panel")
	reg.SetActive("sticky")
	reg.BringToFront("sticky")

	require.True(t, router.HandleEscape())
	assert.Equal(t, 1, closed, "handler-less surface on top is skipped")
}

func TestEscapeWithNoActiveSurfaces(t *testing.T) {
	reg := registry.New(context.Background(), registry.Options{})
	t.Cleanup(func() { _ = reg.Close() })
	router := NewDismissRouter(context.Background(), reg)

	assert.False(t, router.HandleEscape())
}
