// Package app provides demo application state, events, and theming.
package app

import (
	"sort"
	"sync"

	"scrimkit/pkg/style"
)

// EventType identifies different demo application events.
type EventType int

const (
	EventOverlayShown EventType = iota
	EventOverlayTapped
	EventOverlayRemoved
	EventStyleChanged
	EventStylesLoaded
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the demo's styles, selection, and counters.
type State struct {
	mu sync.RWMutex

	styles    map[string]style.Style
	styleName string

	shown   int
	removed int

	listeners map[EventType][]EventListener
}

// NewState creates demo state seeded with the built-in styles.
func NewState() *State {
	return &State{
		styles:    style.Builtin(),
		styleName: "dim",
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadStyles merges styles from a YAML file over the built-ins.
func (s *State) LoadStyles(path string) error {
	loaded, err := style.LoadFile(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for name, st := range loaded {
		s.styles[name] = st
	}
	s.mu.Unlock()

	s.Emit(EventStylesLoaded, path)
	return nil
}

// StyleNames returns the known style names.
func (s *State) StyleNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Style returns the named style and whether it exists.
func (s *State) Style(name string) (style.Style, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.styles[name]
	return st, ok
}

// SelectedStyle returns the currently selected style name.
func (s *State) SelectedStyle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.styleName
}

// SelectStyle changes the selected style and emits an event. Unknown names
// are ignored.
func (s *State) SelectStyle(name string) {
	s.mu.Lock()
	if _, ok := s.styles[name]; !ok {
		s.mu.Unlock()
		return
	}
	s.styleName = name
	s.mu.Unlock()

	s.Emit(EventStyleChanged, name)
}

// CountShown records a presented overlay and emits an event.
func (s *State) CountShown() {
	s.mu.Lock()
	s.shown++
	n := s.shown
	s.mu.Unlock()
	s.Emit(EventOverlayShown, n)
}

// CountRemoved records a dismissed overlay and emits an event.
func (s *State) CountRemoved() {
	s.mu.Lock()
	s.removed++
	n := s.removed
	s.mu.Unlock()
	s.Emit(EventOverlayRemoved, n)
}

// Counts returns how many overlays were shown and removed.
func (s *State) Counts() (shown, removed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shown, s.removed
}
