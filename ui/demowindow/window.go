// Package demowindow provides the scrim demo application window.
package demowindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"scrimkit/internal/app"
	"scrimkit/pkg/overlay"
)

const prefKeyStyle = "lastStyle"

// DemoWindow is the demo application window. Its content area doubles as
// the surface that scrims attach to.
type DemoWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State

	surface     *fyne.Container
	styleSelect *widget.Select
	statusBar   *widget.Label
}

// New creates the demo window.
func New(fyneApp fyne.App, state *app.State) *DemoWindow {
	win := fyneApp.NewWindow("ScrimKit Demo")
	win.Resize(fyne.NewSize(640, 480))

	dw := &DemoWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	dw.setupUI()
	dw.setupEventHandlers()
	dw.restoreLastStyle()

	return dw
}

// setupUI creates the window layout.
func (dw *DemoWindow) setupUI() {
	// The surface: demo content in a stack so an attached scrim stretches
	// edge-to-edge over it.
	content := container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle("ScrimKit", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Pick a style, show a scrim, tap it to dismiss."),
	))
	dw.surface = container.NewStack(content)

	dw.styleSelect = widget.NewSelect(dw.state.StyleNames(), func(name string) {
		dw.state.SelectStyle(name)
	})
	dw.styleSelect.SetSelected(dw.state.SelectedStyle())

	showBtn := widget.NewButton("Show Scrim", dw.onShowScrim)
	dismissBtn := widget.NewButton("Dismiss", dw.onDismiss)

	controls := container.NewHBox(
		widget.NewLabel("Style:"),
		dw.styleSelect,
		showBtn,
		dismissBtn,
	)

	dw.statusBar = widget.NewLabel("Ready")

	dw.SetContent(container.NewBorder(
		container.NewPadded(controls),     // top
		container.NewPadded(dw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		dw.surface,                        // center
	))
}

// setupEventHandlers registers for demo state events.
func (dw *DemoWindow) setupEventHandlers() {
	dw.state.On(app.EventStyleChanged, func(data interface{}) {
		if name, ok := data.(string); ok {
			dw.app.Preferences().SetString(prefKeyStyle, name)
			dw.updateStatus("Style: " + name)
		}
	})

	dw.state.On(app.EventOverlayShown, func(data interface{}) {
		dw.updateStatus(fmt.Sprintf("Scrim shown (#%v)", data))
	})

	dw.state.On(app.EventOverlayTapped, func(data interface{}) {
		dw.updateStatus("Scrim tapped")
	})

	dw.state.On(app.EventOverlayRemoved, func(data interface{}) {
		shown, removed := dw.state.Counts()
		dw.updateStatus(fmt.Sprintf("Scrim removed (%d shown, %d removed)", shown, removed))
	})
}

// onShowScrim attaches a scrim in the selected style and shows it.
func (dw *DemoWindow) onShowScrim() {
	ctrl, err := overlay.Attach(dw.surface)
	if err != nil {
		log.Error().Err(err).Msg("attach scrim")
		return
	}

	if st, ok := dw.state.Style(dw.state.SelectedStyle()); ok {
		if err := st.Apply(ctrl); err != nil {
			log.Warn().Err(err).Str("style", dw.state.SelectedStyle()).Msg("apply style")
		}
	}

	ctrl.
		OnShow(func() { dw.state.CountShown() }).
		OnTap(func() { dw.state.Emit(app.EventOverlayTapped, nil) }).
		OnRemove(func() { dw.state.CountRemoved() }).
		Show()
}

// onDismiss removes the first attached scrim, if any.
func (dw *DemoWindow) onDismiss() {
	if !overlay.RemoveFrom(dw.surface) {
		dw.updateStatus("No scrim to dismiss")
	}
}

// restoreLastStyle re-selects the style used in the previous session.
func (dw *DemoWindow) restoreLastStyle() {
	name := dw.app.Preferences().String(prefKeyStyle)
	if name == "" {
		return
	}
	if _, ok := dw.state.Style(name); ok {
		dw.styleSelect.SetSelected(name)
	}
}

// updateStatus updates the status bar text.
func (dw *DemoWindow) updateStatus(text string) {
	dw.statusBar.SetText(text)
}
