package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateEvents(t *testing.T) {
	s := NewState()

	var got []interface{}
	s.On(EventOverlayShown, func(data interface{}) { got = append(got, data) })

	s.CountShown()
	s.CountShown()

	assert.Equal(t, []interface{}{1, 2}, got)

	shown, removed := s.Counts()
	assert.Equal(t, 2, shown)
	assert.Zero(t, removed)
}

func TestStateSelectStyle(t *testing.T) {
	s := NewState()

	changed := 0
	s.On(EventStyleChanged, func(interface{}) { changed++ })

	s.SelectStyle("shadow")
	assert.Equal(t, "shadow", s.SelectedStyle())
	assert.Equal(t, 1, changed)

	// Unknown styles are ignored.
	s.SelectStyle("nope")
	assert.Equal(t, "shadow", s.SelectedStyle())
	assert.Equal(t, 1, changed)
}

func TestStateLoadStyles(t *testing.T) {
	s := NewState()
	builtin := len(s.StyleNames())

	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("custom:\n  fill: teal\n"), 0o644))

	loaded := 0
	s.On(EventStylesLoaded, func(interface{}) { loaded++ })

	require.NoError(t, s.LoadStyles(path))
	assert.Len(t, s.StyleNames(), builtin+1)
	assert.Equal(t, 1, loaded)

	_, ok := s.Style("custom")
	assert.True(t, ok)

	require.Error(t, s.LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
}
