// Package anim abstracts timed visual transitions behind a Runner interface
// with a single-shot completion signal.
package anim

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Completion is a single-shot completion signal for one animation.
// Complete may be called any number of times; observers fire exactly once.
type Completion struct {
	once sync.Once
	done chan struct{}

	mu  sync.Mutex
	fns []func()
}

// NewCompletion creates a pending completion signal.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Complete settles the signal. Only the first call has any effect.
func (c *Completion) Complete() {
	c.once.Do(func() {
		close(c.done)
		c.mu.Lock()
		fns := c.fns
		c.fns = nil
		c.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	})
}

// Done returns a channel that is closed once the signal has settled.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Completed reports whether the signal has settled.
func (c *Completion) Completed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Then registers fn to run when the signal settles. If the signal has
// already settled, fn runs immediately. Each registered fn runs at most once.
func (c *Completion) Then(fn func()) {
	c.mu.Lock()
	select {
	case <-c.done:
		c.mu.Unlock()
		fn()
		return
	default:
	}
	c.fns = append(c.fns, fn)
	c.mu.Unlock()
}

// Runner drives a timed transition of a scalar property from one value to
// another, reporting progress through tick and settling the returned
// Completion exactly once after the duration has elapsed. A zero or negative
// duration ticks the final value and completes immediately.
type Runner interface {
	Animate(from, to float64, d time.Duration, tick func(float64)) *Completion
}

// FyneRunner runs transitions on the Fyne driver's animation ticker.
// The zero value uses Fyne's default ease-in-out curve.
type FyneRunner struct {
	// Curve shapes the transition progress. Nil means ease-in-out.
	Curve Curve
}

// NewFyneRunner creates a runner with the given easing curve.
// A nil curve means ease-in-out.
func NewFyneRunner(curve Curve) *FyneRunner {
	return &FyneRunner{Curve: curve}
}

// Animate starts a Fyne animation lasting d.
func (r *FyneRunner) Animate(from, to float64, d time.Duration, tick func(float64)) *Completion {
	comp := NewCompletion()
	if d <= 0 {
		tick(to)
		comp.Complete()
		return comp
	}

	a := fyne.NewAnimation(d, r.frame(from, to, tick, comp))
	// The driver must deliver the raw time fraction; shaping happens in
	// frame. A curved value crossing 1 mid-flight (overshoot) must not end
	// the transition.
	a.Curve = fyne.AnimationLinear
	a.Start()
	return comp
}

// frame builds the per-tick callback. It shapes the raw time fraction with
// the runner's curve and settles comp only once the full duration has
// elapsed, which the driver reports as a final tick at exactly 1.
func (r *FyneRunner) frame(from, to float64, tick func(float64), comp *Completion) func(float32) {
	curve := r.Curve
	if curve == nil {
		curve = EaseInOut
	}
	return func(p float32) {
		raw := float64(p)
		tick(from + (to-from)*evalClamped(curve, raw))
		if raw >= 1 {
			comp.Complete()
		}
	}
}

// InstantRunner completes every transition immediately, regardless of
// duration. Useful for reduced-motion rendering.
type InstantRunner struct{}

// Animate ticks the final value once and completes.
func (InstantRunner) Animate(from, to float64, _ time.Duration, tick func(float64)) *Completion {
	comp := NewCompletion()
	tick(to)
	comp.Complete()
	return comp
}

// ManualRunner records transitions and leaves their progression to the
// caller. Tests drive it with Step and Finish.
type ManualRunner struct {
	mu      sync.Mutex
	pending []*manualAnim
}

type manualAnim struct {
	from, to float64
	duration time.Duration
	tick     func(float64)
	comp     *Completion
}

// NewManualRunner creates an empty manual runner.
func NewManualRunner() *ManualRunner {
	return &ManualRunner{}
}

// Animate records a pending transition and ticks its starting value.
func (r *ManualRunner) Animate(from, to float64, d time.Duration, tick func(float64)) *Completion {
	a := &manualAnim{from: from, to: to, duration: d, tick: tick, comp: NewCompletion()}
	tick(from)
	r.mu.Lock()
	r.pending = append(r.pending, a)
	r.mu.Unlock()
	return a.comp
}

// Pending returns the number of unfinished transitions.
func (r *ManualRunner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Step advances the oldest unfinished transition to the given progress
// (0 to 1) without completing it.
func (r *ManualRunner) Step(progress float64) {
	r.mu.Lock()
	if len(r.pending) == 0 {
		r.mu.Unlock()
		return
	}
	a := r.pending[0]
	r.mu.Unlock()

	a.tick(a.from + (a.to-a.from)*progress)
}

// Finish ticks the oldest unfinished transition to its final value and
// settles its completion signal.
func (r *ManualRunner) Finish() {
	r.mu.Lock()
	if len(r.pending) == 0 {
		r.mu.Unlock()
		return
	}
	a := r.pending[0]
	r.pending = r.pending[1:]
	r.mu.Unlock()

	a.tick(a.to)
	a.comp.Complete()
}

// FinishAll settles every unfinished transition in start order.
func (r *ManualRunner) FinishAll() {
	for r.Pending() > 0 {
		r.Finish()
	}
}
