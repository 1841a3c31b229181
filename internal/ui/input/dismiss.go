// Package input routes keyboard input to registry actions. The GTK shell and
// the terminal simulator both feed it, so it stays toolkit-free.
package input

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/registry"
)

// DismissRouter closes floating surfaces from keyboard input.
type DismissRouter struct {
	logger zerolog.Logger
	reg    *registry.Registry
}

// NewDismissRouter builds a router over reg.
func NewDismissRouter(ctx context.Context, reg *registry.Registry) *DismissRouter {
	return &DismissRouter{
		logger: logging.FromContext(ctx).With().Str("component", "dismiss-router").Logger(),
		reg:    reg,
	}
}

// HandleEscape dismisses the topmost active surface that declares a close
// handler; active modals sit on top, so they go first. It reports whether
// the key was consumed.
func (d *DismissRouter) HandleEscape() bool {
	wins := d.reg.ActiveWindows()
	for i := len(wins) - 1; i >= 0; i-- {
		w := wins[i]
		if w.Config.CloseHandler == nil {
			continue
		}
		d.logger.Debug().Str("window_id", string(w.ID)).Msg("escape pressed, dismissing window")
		w.Config.CloseHandler()
		return true
	}
	return false
}
