package shell

import (
	"context"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/rs/zerolog"

	"github.com/panekit/panekit/internal/config"
	"github.com/panekit/panekit/internal/journal"
	"github.com/panekit/panekit/internal/logging"
	"github.com/panekit/panekit/internal/ui/component"
	"github.com/panekit/panekit/internal/ui/input"
	"github.com/panekit/panekit/internal/ui/registry"
	"github.com/panekit/panekit/internal/ui/scene"
)

const (
	defaultWidth  = 960
	defaultHeight = 640
)

// shellPanel ties one floating panel's widget tree to its registry binding.
type shellPanel struct {
	widget *panelWidget
	panel  *component.Panel
	node   *Node
	modal  bool
}

// Shell is the GTK4 surface shell. It hosts a main surface with a set of
// floating panels and drives their stacking, dismissal and focus through the
// window registry.
type Shell struct {
	cfg    *config.Config
	logger zerolog.Logger
	ctx    context.Context

	gtkApp  *gtk.Application
	window  *gtk.ApplicationWindow
	overlay *gtk.Overlay
	status  *gtk.Label
	focus   *gtk.Label

	scene  *Scene
	reg    *registry.Registry
	router *input.DismissRouter
	jrnl   *journal.Journal

	panels     map[registry.WindowID]*shellPanel
	panelOrder []registry.WindowID
	closing    bool

	cssProvider *gtk.CssProvider

	// Callback retention: must stay reachable by Go GC.
	retainedCallbacks []interface{}
}

// New creates a shell for cfg. Widgets are built on activation.
func New(ctx context.Context, cfg *config.Config) *Shell {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Shell{
		cfg:    cfg,
		logger: logging.FromContext(ctx).With().Str("component", "shell").Logger(),
		ctx:    ctx,
		panels: make(map[registry.WindowID]*shellPanel),
	}
}

// Run starts the GTK application and blocks until it exits. Returns the
// process exit code.
func (s *Shell) Run(args []string) int {
	s.logger.Debug().Msg("creating GTK application")

	s.gtkApp = gtk.NewApplication("", gio.GApplicationFlagsNoneValue)
	if s.gtkApp == nil {
		s.logger.Error().Msg("failed to create GTK application")
		return 1
	}
	defer s.gtkApp.Unref()

	activateCb := func(_ gio.Application) {
		s.onActivate()
	}
	s.gtkApp.ConnectActivate(&activateCb)

	shutdownCb := func(_ gio.Application) {
		s.onShutdown()
	}
	s.gtkApp.ConnectShutdown(&shutdownCb)

	s.logger.Info().Msg("starting GTK main loop")
	return s.gtkApp.Run(len(args), args)
}

func (s *Shell) onActivate() {
	s.logger.Debug().Msg("GTK application activated")

	if err := s.buildWindow(); err != nil {
		s.logger.Error().Err(err).Msg("failed to build main window")
		return
	}

	s.openJournal()
	s.buildRegistry()

	if err := s.buildPanels(); err != nil {
		s.logger.Error().Err(err).Msg("failed to build panels")
		return
	}

	s.attachKeyController()
	s.applyCSS()

	s.window.Present()
}

func (s *Shell) onShutdown() {
	s.logger.Debug().Msg("GTK application shutting down")
	s.closing = true

	// Unmount in reverse mount order so the journal records an orderly
	// teardown before the registry closes. Widget hooks are skipped once
	// closing is set; GTK owns the widget teardown.
	for i := len(s.panelOrder) - 1; i >= 0; i-- {
		if sp, ok := s.panels[s.panelOrder[i]]; ok {
			sp.panel.Unmount()
		}
	}

	if s.reg != nil {
		if err := s.reg.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("registry close failed")
		}
	}
	if s.jrnl != nil {
		if err := s.jrnl.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("journal close failed")
		}
	}
}

// buildWindow creates the application window, the overlay and the main
// surface content behind the panels.
func (s *Shell) buildWindow() error {
	s.window = gtk.NewApplicationWindow(s.gtkApp)
	if s.window == nil {
		return errNilWidget("shellWindow")
	}
	title := "Panekit"
	s.window.SetTitle(title)
	s.window.SetDefaultSize(defaultWidth, defaultHeight)

	s.overlay = gtk.NewOverlay()
	if s.overlay == nil {
		return errNilWidget("shellOverlay")
	}

	surface, err := s.buildSurface()
	if err != nil {
		return err
	}
	s.overlay.SetChild(&surface.Widget)
	s.window.SetChild(&s.overlay.Widget)

	return nil
}

// buildSurface creates the main surface content: title, status line and the
// panel toggle row.
func (s *Shell) buildSurface() (*gtk.Box, error) {
	surface := gtk.NewBox(gtk.OrientationVerticalValue, 12)
	if surface == nil {
		return nil, errNilWidget("surfaceBox")
	}
	surface.SetHexpand(true)
	surface.SetVexpand(true)
	surface.SetMarginTop(24)
	surface.SetMarginBottom(24)
	surface.SetMarginStart(24)
	surface.SetMarginEnd(24)

	titleText := "Panekit"
	titleLbl := gtk.NewLabel(titleText)
	if titleLbl == nil {
		return nil, errNilWidget("surfaceTitle")
	}
	titleLbl.AddCssClass("surface-title")
	titleLbl.SetHalign(gtk.AlignStartValue)
	surface.Append(&titleLbl.Widget)

	statusText := "Press a button to open a panel."
	s.status = gtk.NewLabel(statusText)
	if s.status == nil {
		return nil, errNilWidget("surfaceStatus")
	}
	s.status.AddCssClass("surface-status")
	s.status.SetHalign(gtk.AlignStartValue)
	s.status.SetWrap(true)
	surface.Append(&s.status.Widget)

	focusText := "focus: main surface"
	s.focus = gtk.NewLabel(focusText)
	if s.focus == nil {
		return nil, errNilWidget("surfaceFocus")
	}
	s.focus.AddCssClass("surface-hint")
	s.focus.SetHalign(gtk.AlignStartValue)
	surface.Append(&s.focus.Widget)

	btnRow, err := s.buildToggleRow()
	if err != nil {
		return nil, err
	}
	btnRow.SetValign(gtk.AlignEndValue)
	btnRow.SetVexpand(true)
	surface.Append(&btnRow.Widget)

	hintText := "Click outside a panel to dismiss it. Escape dismisses the topmost panel."
	hintLbl := gtk.NewLabel(hintText)
	if hintLbl == nil {
		return nil, errNilWidget("surfaceHint")
	}
	hintLbl.AddCssClass("surface-hint")
	hintLbl.SetHalign(gtk.AlignStartValue)
	surface.Append(&hintLbl.Widget)

	return surface, nil
}

// buildToggleRow creates the row of buttons toggling each panel.
func (s *Shell) buildToggleRow() (*gtk.Box, error) {
	row := gtk.NewBox(gtk.OrientationHorizontalValue, panelButtonSpacing)
	if row == nil {
		return nil, errNilWidget("toggleRow")
	}
	row.AddCssClass("surface-btn-row")
	row.SetHalign(gtk.AlignStartValue)

	toggles := []struct {
		label string
		id    registry.WindowID
	}{
		{"Chat", "chat"},
		{"Settings", "settings"},
		{"Menu", "menu"},
		{"Dialog", "dialog"},
	}
	for _, tg := range toggles {
		btn := gtk.NewButtonWithLabel(tg.label)
		if btn == nil {
			return nil, errNilWidget("toggleBtn" + tg.label)
		}
		id := tg.id
		cb := func(_ gtk.Button) {
			s.togglePanel(id)
		}
		s.retainedCallbacks = append(s.retainedCallbacks, cb)
		btn.ConnectClicked(&cb)
		row.Append(&btn.Widget)
	}

	return row, nil
}

// openJournal opens the event journal when enabled. Failure is non-fatal;
// the shell runs without persistence.
func (s *Shell) openJournal() {
	if !s.cfg.Journal.Enabled {
		return
	}
	j, err := journal.Open(s.ctx, journal.Options{Path: s.cfg.Journal.Path})
	if err != nil {
		s.logger.Warn().Err(err).Msg("journal unavailable, panel events will not be persisted")
		return
	}
	s.jrnl = j
}

// buildRegistry creates the scene over the window and the registry on top
// of it.
func (s *Shell) buildRegistry() {
	s.scene = NewScene(s.ctx, &s.window.Widget)
	s.scene.SetTopMostResolver(s.topMostCandidate)

	policy := registry.Policy{
		ModalExclusive:        s.cfg.Registry.ModalExclusive,
		FocusFollowsDismissal: s.cfg.Registry.FocusFollowsDismissal,
		WarnUnknownIDs:        s.cfg.Registry.WarnUnknownIDs,
	}

	observers := []registry.Observer{s}
	if s.jrnl != nil {
		observers = append(observers, s.jrnl)
	}

	s.reg = registry.New(s.ctx, registry.Options{
		Pointer:   s.scene,
		Policy:    &policy,
		Observers: observers,
		GlobalOutsideHandler: func() {
			s.setStatus("Pressed the main surface.")
		},
	})
	s.router = input.NewDismissRouter(s.ctx, s.reg)
}

// topMostCandidate picks the highest stacked candidate under a press.
func (s *Shell) topMostCandidate(candidates []scene.Node) scene.Node {
	if s.reg == nil {
		return nil
	}
	wins := s.reg.ActiveWindows()
	for i := len(wins) - 1; i >= 0; i-- {
		el := wins[i].Element
		if el == nil {
			continue
		}
		for _, c := range candidates {
			if el.Contains(c) {
				return c
			}
		}
	}
	return nil
}

// buildPanels constructs the floating panels and mounts the non-modal ones.
// The dialog mounts lazily: modal surfaces activate on registration, and the
// shell should start with the main surface on top.
func (s *Shell) buildPanels() error {
	specs := []struct {
		spec     panelSpec
		modal    bool
		priority int
	}{
		{
			spec: panelSpec{
				id:     "chat",
				title:  "Chat",
				body:   "Messages land here. The panel stays open while you press inside it.",
				halign: gtk.AlignEndValue,
				valign: gtk.AlignEndValue,
				width:  280,
			},
		},
		{
			spec: panelSpec{
				id:     "settings",
				title:  "Settings",
				body:   "Session preferences. Raised above other panels on open.",
				halign: gtk.AlignCenterValue,
				valign: gtk.AlignCenterValue,
				width:  320,
			},
			priority: 5,
		},
		{
			spec: panelSpec{
				id:     "menu",
				title:  "Menu",
				halign: gtk.AlignStartValue,
				valign: gtk.AlignStartValue,
				width:  200,
			},
		},
		{
			spec: panelSpec{
				id:       "dialog",
				title:    "Confirm action",
				body:     "This dialog is modal. Presses outside dismiss it; nothing beneath it gets focus.",
				cssClass: "panel-dialog",
				halign:   gtk.AlignCenterValue,
				valign:   gtk.AlignStartValue,
				width:    360,
			},
			modal:    true,
			priority: 10,
		},
	}

	for i := range specs {
		entry := &specs[i]
		id := registry.WindowID(entry.spec.id)
		sp := &shellPanel{modal: entry.modal}
		entry.spec.buttons = s.panelButtons(id, sp)

		pw, err := newPanelWidget(entry.spec)
		if err != nil {
			return err
		}
		sp.widget = pw

		s.overlay.AddOverlay(pw.Widget())
		sp.node = s.scene.NewNode(entry.spec.id, pw.Widget())

		sp.panel = component.NewPanel(s.reg, component.PanelOptions{
			ID:                  id,
			CloseOnClickOutside: true,
			Modal:               entry.modal,
			Priority:            entry.priority,
			OnShow:              func() { pw.SetShown(true) },
			OnHide: func() {
				if s.closing {
					return
				}
				pw.SetShown(false)
			},
			OnFocus: func() {
				if s.closing {
					return
				}
				pw.GrabFocus()
			},
		})

		s.panels[id] = sp
		s.panelOrder = append(s.panelOrder, id)

		if !entry.modal {
			sp.panel.Mount(sp.node)
		}
	}

	return nil
}

// panelButtons returns the button set for a panel. sp is filled in after the
// widget exists; the closures read it lazily.
func (s *Shell) panelButtons(id registry.WindowID, sp *shellPanel) []panelButton {
	hide := func() {
		if sp.panel != nil {
			sp.panel.Hide()
		}
	}

	switch id {
	case "menu":
		return []panelButton{
			{label: "New pane", onClick: func() {
				s.setStatus("Menu: new pane requested.")
				hide()
			}},
			{label: "Split view", onClick: func() {
				s.setStatus("Menu: split view requested.")
				hide()
			}},
			{label: "Quit", cssClasses: []string{"panel-btn-destructive"}, onClick: func() {
				if s.gtkApp != nil {
					s.gtkApp.Quit()
				}
			}},
		}
	case "dialog":
		return []panelButton{
			{label: "Cancel", onClick: hide},
			{label: "Confirm", cssClasses: []string{"panel-btn-primary"}, onClick: func() {
				s.setStatus("Dialog confirmed.")
				hide()
			}},
		}
	default:
		return []panelButton{
			{label: "Close", onClick: hide},
		}
	}
}

// togglePanel shows or hides a panel from the toggle row. The modal dialog
// mounts on first use.
func (s *Shell) togglePanel(id registry.WindowID) {
	sp, ok := s.panels[id]
	if !ok {
		return
	}

	if sp.modal && !sp.panel.Mounted() {
		sp.panel.Mount(sp.node)
		return
	}
	if sp.modal && !sp.panel.IsVisible() {
		sp.panel.Show()
		return
	}
	sp.panel.Toggle()
}

// attachKeyController routes Escape to the dismiss router, capture phase so
// panels cannot swallow it first.
func (s *Shell) attachKeyController() {
	controller := gtk.NewEventControllerKey()
	if controller == nil {
		s.logger.Error().Msg("failed to create key controller")
		return
	}
	controller.SetPropagationPhase(gtk.PhaseCaptureValue)

	keyPressedCb := func(_ gtk.EventControllerKey, keyval uint, _ uint, _ gdk.ModifierType) bool {
		if keyval == uint(gdk.KEY_Escape) {
			if s.router != nil && s.router.HandleEscape() {
				s.setStatus("Dismissed the topmost panel.")
				return true
			}
		}
		return false
	}
	s.retainedCallbacks = append(s.retainedCallbacks, keyPressedCb)
	controller.ConnectKeyPressed(&keyPressedCb)
	s.window.AddController(&controller.EventController)
}

// applyCSS loads the palette stylesheet into the window's display.
func (s *Shell) applyCSS() {
	palette := resolvePalette(s.cfg)
	css := generateCSS(palette)

	if s.cssProvider == nil {
		s.cssProvider = gtk.NewCssProvider()
	}
	if s.cssProvider == nil {
		s.logger.Error().Msg("failed to create CSS provider")
		return
	}

	display := s.window.GetDisplay()
	if display == nil {
		s.logger.Warn().Msg("no display, skipping CSS")
		return
	}

	s.cssProvider.LoadFromString(css)
	gtk.StyleContextAddProviderForDisplay(
		display,
		s.cssProvider,
		uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION),
	)

	s.logger.Debug().Msg("shell CSS applied to display")
}

// WindowEvent implements registry.Observer: the shell mirrors focus changes
// onto the surface. Registry calls all originate from GTK callbacks here, so
// touching widgets is safe.
func (s *Shell) WindowEvent(ev registry.Event) {
	s.logger.Debug().
		Str("event", string(ev.Type)).
		Str("window_id", string(ev.WindowID)).
		Int64("z_order", ev.ZOrder).
		Msg("panel event")

	if s.closing || ev.Type != registry.EventFocusChanged || s.focus == nil || s.reg == nil {
		return
	}
	if id, ok := s.reg.FocusOwner(); ok {
		s.focus.SetText("focus: " + string(id))
		return
	}
	s.focus.SetText("focus: main surface")
}

func (s *Shell) setStatus(msg string) {
	if s.status == nil {
		return
	}
	s.status.SetText(msg)
}
