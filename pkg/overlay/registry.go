package overlay

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"

	"scrimkit/pkg/anim"
	"scrimkit/pkg/colorutil"
)

// Registry maps container identity to the overlays attached to it, in
// attachment order. It backs the lookup-based removal entry point without
// scanning the container's child list. The package-level Attach and
// RemoveFrom operate on DefaultRegistry; independent registries exist
// mostly so tests do not share state.
type Registry struct {
	mu      sync.Mutex
	entries map[*fyne.Container][]*Controller
}

// DefaultRegistry tracks overlays created through Attach.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[*fyne.Container][]*Controller),
	}
}

// Attach creates a new overlay bound one-to-one with the surface: a fully
// transparent scrim is added edge-to-edge over the surface's content and
// the controller starts in StateCreated with default configuration
// (50%-opacity gray fill, 400ms appear, 250ms dismiss, dismiss-on-tap).
// Fails only if the surface is nil.
func (r *Registry) Attach(surface *fyne.Container) (*Controller, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: nil container", ErrInvalidSurface)
	}

	c := &Controller{
		state:           StateCreated,
		surface:         surface,
		runner:          anim.NewFyneRunner(nil),
		fill:            colorutil.DefaultScrim,
		appearDuration:  DefaultAppearDuration,
		dismissDuration: DefaultDismissDuration,
		dismissOnTap:    true,
		registry:        r,
	}
	c.scrim = newScrim(c)
	c.scrim.Resize(surface.Size())
	surface.Add(c.scrim)

	r.mu.Lock()
	r.entries[surface] = append(r.entries[surface], c)
	r.mu.Unlock()

	return c, nil
}

// First returns the first-attached live overlay on the surface, or nil.
// With stacked overlays this is a documented simplification: first
// attached wins.
func (r *Registry) First(surface *fyne.Container) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cs := r.entries[surface]; len(cs) > 0 {
		return cs[0]
	}
	return nil
}

// Controllers returns the live overlays on the surface in attachment order.
func (r *Registry) Controllers(surface *fyne.Container) []*Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	cs := r.entries[surface]
	out := make([]*Controller, len(cs))
	copy(out, cs)
	return out
}

// RemoveFrom dismisses the first-attached overlay on the surface using its
// configured dismiss duration. Returns false, with a diagnostic, if the
// surface has no live overlay.
func (r *Registry) RemoveFrom(surface *fyne.Container) bool {
	c := r.First(surface)
	if c == nil {
		Logger.Debug().Msg("overlay: remove-from found no overlay on surface")
		return false
	}
	c.Remove()
	return true
}

// detach forgets a controller that has reached StateRemoved.
func (r *Registry) detach(surface *fyne.Container, c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cs := r.entries[surface]
	for i, cur := range cs {
		if cur == c {
			cs = append(cs[:i], cs[i+1:]...)
			break
		}
	}
	if len(cs) == 0 {
		delete(r.entries, surface)
	} else {
		r.entries[surface] = cs
	}
}

// Attach creates a new overlay on the surface, tracked by DefaultRegistry.
func Attach(surface *fyne.Container) (*Controller, error) {
	return DefaultRegistry.Attach(surface)
}

// RemoveFrom dismisses the first-attached overlay on the surface, looked up
// in DefaultRegistry.
func RemoveFrom(surface *fyne.Container) bool {
	return DefaultRegistry.RemoveFrom(surface)
}
