package overlay

import (
	"image/color"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"scrimkit/pkg/colorutil"
)

// scrim is the colored rectangle presented over the surface. It swallows
// taps over its area and forwards them to the controller once armed.
type scrim struct {
	widget.BaseWidget

	rect     *canvas.Rectangle
	ctrl     *Controller
	tapArmed atomic.Bool
}

var _ fyne.Tappable = (*scrim)(nil)

// newScrim creates a fully transparent scrim for the controller's fill.
func newScrim(ctrl *Controller) *scrim {
	s := &scrim{
		rect: canvas.NewRectangle(colorutil.ScaleAlpha(ctrl.fill, 0)),
		ctrl: ctrl,
	}
	s.ExtendBaseWidget(s)
	return s
}

func (s *scrim) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

// Tapped forwards recognized taps to the controller. Recognition is armed
// as part of Show, so a scrim that was never shown ignores taps.
func (s *scrim) Tapped(_ *fyne.PointEvent) {
	if !s.tapArmed.Load() {
		return
	}
	s.ctrl.handleTap()
}

// armTap enables tap recognition.
func (s *scrim) armTap() {
	s.tapArmed.Store(true)
}

// setFill updates the rectangle's fill and repaints it.
func (s *scrim) setFill(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}
