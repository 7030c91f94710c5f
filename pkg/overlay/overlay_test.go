package overlay

import (
	"bytes"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrimkit/pkg/anim"
	"scrimkit/pkg/colorutil"
)

// attachForTest creates a controller on a fresh surface and registry, driven
// by a manual animation runner.
func attachForTest(t *testing.T) (*Controller, *fyne.Container, *Registry, *anim.ManualRunner) {
	t.Helper()
	test.NewApp()

	surface := container.NewStack()
	reg := NewRegistry()
	runner := anim.NewManualRunner()

	c, err := reg.Attach(surface)
	require.NoError(t, err)
	c.SetRunner(runner)

	return c, surface, reg, runner
}

func TestAttach(t *testing.T) {
	c, surface, reg, _ := attachForTest(t)

	assert.Equal(t, StateCreated, c.State())
	require.Len(t, surface.Objects, 1, "scrim should be added to the surface")
	assert.Same(t, c, reg.First(surface))

	// Fully transparent until shown.
	fill := c.scrim.rect.FillColor.(color.NRGBA)
	assert.Equal(t, uint8(0), fill.A)
}

func TestAttachNilSurface(t *testing.T) {
	c, err := Attach(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSurface))
	assert.Nil(t, c)
}

func TestShowReachesVisibleOnce(t *testing.T) {
	c, _, _, runner := attachForTest(t)

	shown := 0
	c.OnShow(func() { shown++ })

	c.Show()
	assert.Equal(t, StateAppearing, c.State())
	assert.Equal(t, 1, runner.Pending())

	runner.Step(0.5)
	assert.Equal(t, StateAppearing, c.State())

	runner.Finish()
	assert.Equal(t, StateVisible, c.State())
	assert.Equal(t, 1, shown)

	// Re-showing an already-visible overlay is not supported.
	c.Show()
	assert.Equal(t, StateVisible, c.State())
	assert.Equal(t, 0, runner.Pending())
	assert.Equal(t, 1, shown)
}

func TestShowZeroDurationIsSynchronous(t *testing.T) {
	test.NewApp()
	surface := container.NewStack()
	reg := NewRegistry()

	blue := color.NRGBA{R: 0, G: 0, B: 0xFF, A: 0xFF}

	c, err := reg.Attach(surface)
	require.NoError(t, err)
	c.SetFillColor(blue).SetAppearDuration(0).Show()

	assert.Equal(t, StateVisible, c.State())
	assert.Equal(t, blue, c.scrim.rect.FillColor)
}

func TestTapDismisses(t *testing.T) {
	c, surface, reg, runner := attachForTest(t)

	var taps, removes int
	c.OnTap(func() { taps++ }).OnRemove(func() { removes++ })

	c.Show()
	runner.Finish()
	require.Equal(t, StateVisible, c.State())

	test.Tap(c.scrim)
	assert.Equal(t, 1, taps, "tap handler fires before the dismiss starts")
	assert.Equal(t, StateDismissPending, c.State())
	assert.Zero(t, removes)

	runner.Finish()
	assert.Equal(t, StateRemoved, c.State())
	assert.Equal(t, 1, removes)
	assert.Empty(t, surface.Objects, "scrim should be detached")
	assert.Nil(t, reg.First(surface))
}

func TestTapWithDismissDisabled(t *testing.T) {
	c, _, _, runner := attachForTest(t)

	taps := 0
	c.DisableDismissOnTap().OnTap(func() { taps++ })

	c.Show()
	runner.Finish()

	test.Tap(c.scrim)
	test.Tap(c.scrim)

	assert.Equal(t, 2, taps)
	assert.Equal(t, StateVisible, c.State())
	assert.Zero(t, runner.Pending())
}

func TestTapIgnoredBeforeVisible(t *testing.T) {
	c, _, _, runner := attachForTest(t)

	taps := 0
	c.OnTap(func() { taps++ })

	// Tap recognition is not armed until Show.
	test.Tap(c.scrim)
	assert.Equal(t, StateCreated, c.State())

	c.Show()
	test.Tap(c.scrim)
	assert.Equal(t, StateAppearing, c.State())
	assert.Zero(t, taps)

	runner.Finish()
	test.Tap(c.scrim)
	assert.Equal(t, 1, taps)
}

func TestRemoveIsIdempotent(t *testing.T) {
	c, surface, _, runner := attachForTest(t)

	removes := 0
	c.OnRemove(func() { removes++ })

	c.Show()
	runner.Finish()

	c.Remove()
	c.Remove() // Already dismissing: guarded no-op
	assert.Equal(t, 1, runner.Pending())

	runner.Finish()
	assert.Equal(t, StateRemoved, c.State())
	assert.Equal(t, 1, removes)
	assert.Empty(t, surface.Objects)

	c.Remove() // Already removed: guarded no-op
	assert.Equal(t, 1, removes)
}

func TestConcurrentRemoveFiresCallbackOnce(t *testing.T) {
	test.NewApp()
	surface := container.NewStack()
	reg := NewRegistry()

	c, err := reg.Attach(surface)
	require.NoError(t, err)

	var mu sync.Mutex
	removes := 0
	c.SetRunner(anim.InstantRunner{}).OnRemove(func() {
		mu.Lock()
		removes++
		mu.Unlock()
	})
	c.Show()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Remove()
		}()
	}
	wg.Wait()

	assert.Equal(t, StateRemoved, c.State())
	assert.Equal(t, 1, removes)
	assert.Empty(t, surface.Objects)
}

func TestRemoveDuringAppear(t *testing.T) {
	c, _, _, runner := attachForTest(t)

	var shown, removes int
	c.OnShow(func() { shown++ }).OnRemove(func() { removes++ })

	c.Show()
	runner.Step(0.4)

	c.Remove()
	assert.Equal(t, StateDismissPending, c.State())

	// The stale appear completion must not resurface the overlay.
	runner.Finish()
	assert.Equal(t, StateDismissPending, c.State())
	assert.Zero(t, shown)

	runner.Finish()
	assert.Equal(t, StateRemoved, c.State())
	assert.Equal(t, 1, removes)
}

func TestDismissDelay(t *testing.T) {
	test.NewApp()
	surface := container.NewStack()
	reg := NewRegistry()

	c, err := reg.Attach(surface)
	require.NoError(t, err)

	var mu sync.Mutex
	var taps, removes int
	c.SetRunner(anim.InstantRunner{}).
		SetDismissDelay(20 * time.Millisecond).
		OnTap(func() { mu.Lock(); taps++; mu.Unlock() }).
		OnRemove(func() { mu.Lock(); removes++; mu.Unlock() }).
		Show()

	test.Tap(c.scrim)
	assert.Equal(t, StateVisible, c.State(), "dismiss waits for the delay")

	// A second tap during the delay fires the handler but arms no second timer.
	test.Tap(c.scrim)

	require.Eventually(t, func() bool {
		return c.State() == StateRemoved
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, taps)
	assert.Equal(t, 1, removes)
}

func TestConfigurationAfterRemovedIsInert(t *testing.T) {
	c, surface, _, _ := attachForTest(t)

	c.SetRunner(anim.InstantRunner{}).Show()
	c.Remove()
	require.Equal(t, StateRemoved, c.State())

	fired := false
	c.SetFillColor(colorutil.Shadow).
		SetAppearDuration(time.Second).
		SetDismissDelay(time.Second).
		DisableDismissOnTap().
		OnRemove(func() { fired = true }).
		Show()

	assert.Equal(t, StateRemoved, c.State())
	assert.Empty(t, surface.Objects, "a removed overlay must not reattach")
	assert.False(t, fired)
	assert.Nil(t, c.onRemove, "handlers stay released after removal")
}

func TestIgnoredCallDiagnostics(t *testing.T) {
	c, _, _, _ := attachForTest(t)

	var buf bytes.Buffer
	prev := Logger
	Logger = zerolog.New(&buf)
	defer func() { Logger = prev }()

	c.SetRunner(anim.InstantRunner{}).Show()
	c.Remove()
	require.Equal(t, StateRemoved, c.State())

	buf.Reset()
	c.SetAppearDuration(time.Second).Show()
	c.Remove()

	out := buf.String()
	assert.Contains(t, out, "call ignored")
	assert.Contains(t, out, "removed")
	assert.Contains(t, out, "set appear duration")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "remove")
}

func TestNegativeDurationsClamped(t *testing.T) {
	c, _, _, _ := attachForTest(t)

	c.SetAppearDuration(-time.Second).
		SetDismissDuration(-time.Second).
		SetDismissDelay(-time.Second)

	assert.Equal(t, time.Duration(0), c.appearDuration)
	assert.Equal(t, time.Duration(0), c.dismissDuration)
	assert.Equal(t, time.Duration(0), c.dismissDelay)
}

func TestOnRemoveOrdering(t *testing.T) {
	c, surface, _, runner := attachForTest(t)

	c.OnRemove(func() {
		// The handler runs after the dismiss completes but before the
		// overlay detaches, so configuration is still readable.
		assert.Len(t, surface.Objects, 1)
		assert.Equal(t, colorutil.DefaultScrim, c.FillColor())
	})

	c.Show()
	runner.Finish()
	c.Remove()
	runner.Finish()

	assert.Empty(t, surface.Objects)
}

func TestSetFillColorTakesEffectWhileVisible(t *testing.T) {
	c, _, _, runner := attachForTest(t)

	c.Show()
	runner.Finish()

	c.SetFillColor(colorutil.Shadow)
	assert.Equal(t, colorutil.Shadow, c.scrim.rect.FillColor, "fill applies at current opacity")
}
