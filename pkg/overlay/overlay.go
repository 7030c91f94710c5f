// Package overlay provides a dismissible scrim overlay with an animated
// show/hide lifecycle for Fyne containers.
package overlay

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"scrimkit/pkg/anim"
	"scrimkit/pkg/colorutil"
)

// Logger receives diagnostics for ignored calls and lookup misses.
// Defaults to a no-op logger; assign a real one to see them.
var Logger = zerolog.Nop()

// Default animation timings.
const (
	DefaultAppearDuration  = 400 * time.Millisecond
	DefaultDismissDuration = 250 * time.Millisecond
)

// State is the lifecycle state of a Controller.
type State int

const (
	StateCreated        State = iota // Attached, not yet shown
	StateAppearing                   // Appear animation running
	StateVisible                     // Fully shown, accepting taps
	StateDismissPending              // Dismiss animation running
	StateRemoved                     // Detached and inert
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateAppearing:
		return "appearing"
	case StateVisible:
		return "visible"
	case StateDismissPending:
		return "dismiss-pending"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Controller owns one overlay's state, configuration, and handlers, and
// drives its lifecycle transitions. Create one with Attach; configure it
// with the fluent setters; present it with Show.
//
// All methods are safe for concurrent use. Once a controller reaches
// StateRemoved it is permanently inert: every further call is a no-op.
type Controller struct {
	mu      sync.Mutex
	state   State
	surface *fyne.Container
	scrim   *scrim
	runner  anim.Runner

	fill     color.Color
	progress float64 // last applied opacity, 0 to 1

	appearDuration  time.Duration
	dismissDuration time.Duration
	dismissDelay    time.Duration
	dismissOnTap    bool
	dismissQueued   bool // a delayed dismiss timer is already armed

	onShow   func()
	onTap    func()
	onRemove func()

	registry *Registry
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FillColor returns the configured scrim fill.
func (c *Controller) FillColor() color.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fill
}

// SetFillColor sets the scrim fill. The change takes effect immediately on
// the attached scrim, at its current opacity.
func (c *Controller) SetFillColor(fill color.Color) *Controller {
	c.mu.Lock()
	if !c.configurable() {
		state := c.state
		c.mu.Unlock()
		logIgnored("set fill color", state)
		return c
	}
	c.fill = fill
	scrim, p := c.scrim, c.progress
	c.mu.Unlock()

	scrim.setFill(colorutil.ScaleAlpha(fill, p))
	return c
}

// SetAppearDuration sets the show animation duration.
// Negative durations are clamped to zero.
func (c *Controller) SetAppearDuration(d time.Duration) *Controller {
	return c.setDuration("set appear duration", &c.appearDuration, d)
}

// SetDismissDuration sets the dismiss animation duration.
// Negative durations are clamped to zero.
func (c *Controller) SetDismissDuration(d time.Duration) *Controller {
	return c.setDuration("set dismiss duration", &c.dismissDuration, d)
}

// SetDismissDelay sets the pause between a recognized tap and the start of
// the dismiss animation. Negative durations are clamped to zero.
func (c *Controller) SetDismissDelay(d time.Duration) *Controller {
	return c.setDuration("set dismiss delay", &c.dismissDelay, d)
}

// DisableDismissOnTap keeps the overlay up when tapped. The tap handler
// still fires.
func (c *Controller) DisableDismissOnTap() *Controller {
	c.mu.Lock()
	if !c.configurable() {
		state := c.state
		c.mu.Unlock()
		logIgnored("disable dismiss on tap", state)
		return c
	}
	c.dismissOnTap = false
	c.mu.Unlock()
	return c
}

// SetRunner replaces the animation runner. Useful for tests and for
// reduced-motion rendering via anim.InstantRunner.
func (c *Controller) SetRunner(r anim.Runner) *Controller {
	c.mu.Lock()
	if !c.configurable() || r == nil {
		state := c.state
		c.mu.Unlock()
		logIgnored("set runner", state)
		return c
	}
	c.runner = r
	c.mu.Unlock()
	return c
}

// OnShow registers the handler invoked once the appear animation completes.
// A single slot: registering replaces any prior handler.
func (c *Controller) OnShow(handler func()) *Controller {
	return c.setHandler("on show", &c.onShow, handler)
}

// OnTap registers the handler invoked on every recognized tap, before any
// dismiss begins. A single slot: registering replaces any prior handler.
func (c *Controller) OnTap(handler func()) *Controller {
	return c.setHandler("on tap", &c.onTap, handler)
}

// OnRemove registers the handler invoked exactly once, after the dismiss
// animation completes and before the overlay detaches from its surface.
// A single slot: registering replaces any prior handler.
func (c *Controller) OnRemove(handler func()) *Controller {
	return c.setHandler("on remove", &c.onRemove, handler)
}

// Show starts the appear animation, fading the scrim from transparent to
// its fill color and arming tap recognition. Ignored with a diagnostic
// unless the controller is still in StateCreated.
func (c *Controller) Show() *Controller {
	c.mu.Lock()
	if c.state != StateCreated {
		state := c.state
		c.mu.Unlock()
		logIgnored("show", state)
		return c
	}
	c.state = StateAppearing
	c.scrim.armTap()
	runner, d := c.runner, c.appearDuration
	c.mu.Unlock()

	runner.Animate(0, 1, d, c.applyOpacity).Then(c.finishShow)
	return c
}

// Remove starts the dismiss animation from the overlay's current opacity.
// Valid from any state except StateRemoved; repeated or concurrent calls
// collapse into a single dismissal, so the remove handler fires at most
// once. Calling Remove while the appear animation is still running starts
// the dismiss on top of the current visual state.
func (c *Controller) Remove() {
	c.mu.Lock()
	if c.state == StateDismissPending || c.state == StateRemoved {
		state := c.state
		c.mu.Unlock()
		logIgnored("remove", state)
		return
	}
	c.state = StateDismissPending
	runner, d, from := c.runner, c.dismissDuration, c.progress
	c.mu.Unlock()

	runner.Animate(from, 0, d, c.applyOpacity).Then(c.finalize)
}

// handleTap runs on every tap that lands on the scrim. Taps are recognized
// only while fully visible; the tap handler fires synchronously before any
// dismiss is scheduled.
func (c *Controller) handleTap() {
	c.mu.Lock()
	if c.state != StateVisible {
		c.mu.Unlock()
		return
	}
	tapFn := c.onTap
	dismiss := c.dismissOnTap && !c.dismissQueued
	delay := c.dismissDelay
	if dismiss {
		c.dismissQueued = true
	}
	c.mu.Unlock()

	if tapFn != nil {
		tapFn()
	}
	if !dismiss {
		return
	}
	if delay <= 0 {
		c.Remove()
		return
	}
	time.AfterFunc(delay, c.Remove)
}

// applyOpacity is the animation tick: it fades the scrim fill.
func (c *Controller) applyOpacity(p float64) {
	c.mu.Lock()
	c.progress = p
	scrim, fill := c.scrim, c.fill
	c.mu.Unlock()

	if scrim != nil {
		scrim.setFill(colorutil.ScaleAlpha(fill, p))
	}
}

// finishShow resolves the appear animation. The transition to visible is
// skipped if a removal started while the animation was still running.
func (c *Controller) finishShow() {
	c.mu.Lock()
	if c.state != StateAppearing {
		c.mu.Unlock()
		return
	}
	c.state = StateVisible
	fn := c.onShow
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// finalize resolves the dismiss animation: fire the remove handler, detach
// from the surface, release all references. The state check makes this
// fire at most once no matter how many triggers race to get here.
func (c *Controller) finalize() {
	c.mu.Lock()
	if c.state != StateDismissPending {
		c.mu.Unlock()
		return
	}
	c.state = StateRemoved
	fn := c.onRemove
	c.mu.Unlock()

	// The handler runs before detachment so it may still read configuration.
	if fn != nil {
		fn()
	}

	c.mu.Lock()
	surface, scrim, reg := c.surface, c.scrim, c.registry
	c.surface = nil
	c.scrim = nil
	c.registry = nil
	c.onShow = nil
	c.onTap = nil
	c.onRemove = nil
	c.mu.Unlock()

	if surface != nil && scrim != nil {
		surface.Remove(scrim)
	}
	if reg != nil {
		reg.detach(surface, c)
	}
}

// configurable reports whether mutators are accepted in the current state.
// Must be called with the mutex held.
func (c *Controller) configurable() bool {
	return c.state == StateCreated || c.state == StateAppearing || c.state == StateVisible
}

// logIgnored emits the diagnostic for a call rejected by the state guard.
// Called without the mutex held.
func logIgnored(op string, state State) {
	Logger.Debug().AnErr("reason", ErrInvalidState).Stringer("state", state).Str("op", op).
		Msg("overlay: call ignored")
}

func (c *Controller) setDuration(op string, field *time.Duration, d time.Duration) *Controller {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	if !c.configurable() {
		state := c.state
		c.mu.Unlock()
		logIgnored(op, state)
		return c
	}
	*field = d
	c.mu.Unlock()
	return c
}

func (c *Controller) setHandler(op string, slot *func(), handler func()) *Controller {
	c.mu.Lock()
	if !c.configurable() {
		state := c.state
		c.mu.Unlock()
		logIgnored(op, state)
		return c
	}
	*slot = handler
	c.mu.Unlock()
	return c
}
