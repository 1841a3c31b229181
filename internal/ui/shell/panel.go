package shell

import (
	"fmt"

	"github.com/jwijenbergh/puregotk/v4/gtk"
)

// panelButtonSpacing is the spacing between buttons in a panel's button row.
const panelButtonSpacing = 6

func errNilWidget(name string) error {
	return fmt.Errorf("failed to create %s widget", name)
}

// panelButton describes one clickable action inside a panel.
type panelButton struct {
	label      string
	cssClasses []string
	onClick    func()
}

// panelSpec describes one floating panel's widget tree.
type panelSpec struct {
	id       string
	title    string
	body     string
	cssClass string
	halign   gtk.Align
	valign   gtk.Align
	width    int
	buttons  []panelButton
}

// panelWidget is a floating panel's widget tree: an aligned outer box
// holding a styled container with heading, body and a button row. It starts
// hidden; visibility is driven by the registry through the panel hooks.
type panelWidget struct {
	outerBox *gtk.Box
	mainBox  *gtk.Box
	heading  *gtk.Label
	bodyLbl  *gtk.Label
	firstBtn *gtk.Button

	retainedCallbacks []interface{}
}

// newPanelWidget builds the widget tree for spec.
func newPanelWidget(spec panelSpec) (*panelWidget, error) {
	pw := &panelWidget{}
	if err := pw.setupContainers(spec); err != nil {
		return nil, err
	}
	if err := pw.setupLabels(spec); err != nil {
		return nil, err
	}
	if err := pw.setupButtons(spec); err != nil {
		return nil, err
	}
	return pw, nil
}

// Widget returns the outer GTK widget for overlay registration.
func (pw *panelWidget) Widget() *gtk.Widget {
	if pw.outerBox == nil {
		return nil
	}
	return &pw.outerBox.Widget
}

// SetShown flips the panel's visibility.
func (pw *panelWidget) SetShown(shown bool) {
	if pw.outerBox == nil {
		return
	}
	pw.outerBox.SetVisible(shown)
}

// GrabFocus moves keyboard focus into the panel.
func (pw *panelWidget) GrabFocus() {
	if pw.firstBtn != nil {
		pw.firstBtn.GrabFocus()
		return
	}
	if pw.mainBox != nil {
		pw.mainBox.GrabFocus()
	}
}

func (pw *panelWidget) setupContainers(spec panelSpec) error {
	pw.outerBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if pw.outerBox == nil {
		return errNilWidget(spec.id + "OuterBox")
	}
	pw.outerBox.AddCssClass("panel-outer")
	pw.outerBox.SetHalign(spec.halign)
	pw.outerBox.SetValign(spec.valign)
	pw.outerBox.SetMarginTop(24)
	pw.outerBox.SetMarginBottom(24)
	pw.outerBox.SetMarginStart(24)
	pw.outerBox.SetMarginEnd(24)
	pw.outerBox.SetVisible(false)

	pw.mainBox = gtk.NewBox(gtk.OrientationVerticalValue, 8)
	if pw.mainBox == nil {
		return errNilWidget(spec.id + "MainBox")
	}
	pw.mainBox.AddCssClass("panel-container")
	if spec.cssClass != "" {
		pw.mainBox.AddCssClass(spec.cssClass)
	}
	if spec.width > 0 {
		pw.mainBox.SetSizeRequest(spec.width, -1)
	}

	pw.outerBox.Append(&pw.mainBox.Widget)
	return nil
}

func (pw *panelWidget) setupLabels(spec panelSpec) error {
	title := spec.title
	pw.heading = gtk.NewLabel(title)
	if pw.heading == nil {
		return errNilWidget(spec.id + "HeadingLabel")
	}
	pw.heading.AddCssClass("panel-heading")
	pw.heading.SetHalign(gtk.AlignStartValue)
	pw.mainBox.Append(&pw.heading.Widget)

	if spec.body != "" {
		body := spec.body
		pw.bodyLbl = gtk.NewLabel(body)
		if pw.bodyLbl == nil {
			return errNilWidget(spec.id + "BodyLabel")
		}
		pw.bodyLbl.AddCssClass("panel-body")
		pw.bodyLbl.SetHalign(gtk.AlignStartValue)
		pw.bodyLbl.SetWrap(true)
		pw.mainBox.Append(&pw.bodyLbl.Widget)
	}
	return nil
}

func (pw *panelWidget) setupButtons(spec panelSpec) error {
	if len(spec.buttons) == 0 {
		return nil
	}

	btnRow := gtk.NewBox(gtk.OrientationHorizontalValue, panelButtonSpacing)
	if btnRow == nil {
		return errNilWidget(spec.id + "BtnRow")
	}
	btnRow.AddCssClass("panel-btn-row")
	btnRow.SetHalign(gtk.AlignEndValue)

	for _, pb := range spec.buttons {
		btn := gtk.NewButtonWithLabel(pb.label)
		if btn == nil {
			return errNilWidget(spec.id + "Btn" + pb.label)
		}
		btn.AddCssClass("panel-btn")
		for _, class := range pb.cssClasses {
			btn.AddCssClass(class)
		}
		pw.wireButton(btn, pb.onClick)
		btnRow.Append(&btn.Widget)
		if pw.firstBtn == nil {
			pw.firstBtn = btn
		}
	}

	pw.mainBox.Append(&btnRow.Widget)
	return nil
}

// wireButton connects a button click, retaining the callback for GC.
func (pw *panelWidget) wireButton(btn *gtk.Button, onClick func()) {
	cb := func(_ gtk.Button) {
		if onClick != nil {
			onClick()
		}
	}
	pw.retainedCallbacks = append(pw.retainedCallbacks, cb)
	btn.ConnectClicked(&cb)
}
