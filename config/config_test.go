package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/config"
	"github.com/plus3/ecsloop/input"
	"github.com/plus3/ecsloop/physics"
)

func TestDefaultIsValid(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, 11*time.Millisecond, s.Timing().Delay())
	assert.Equal(t, physics.DefaultConstants(), s.Constants())
	assert.Equal(t, input.KeyF, s.FireKey())
	assert.Equal(t, 800.0, s.ScreenSize().Width)
	assert.True(t, s.RenderOptions().Scale)
	assert.False(t, s.RenderOptions().Rotation)
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
screen:
  width: 1024
  height: 768
loop:
  fps_target: 50
  delay_min: 2ms
render:
  rotation: true
  history_depth: 4
  grid:
    minor: false
physics:
  policy: symmetric
logging:
  level: debug
  encoding: json
`
	s, err := config.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1024, s.Screen.Width)
	assert.Equal(t, 1.0, s.Screen.Zoom)
	assert.Equal(t, 20*time.Millisecond, s.Timing().Delay())
	assert.Equal(t, 2*time.Millisecond, s.Loop.DelayMin)
	assert.True(t, s.Loop.FPSTargetEnabled)
	assert.True(t, s.RenderOptions().Rotation)
	assert.Equal(t, 4, s.Render.HistoryDepth)
	assert.False(t, s.RenderOptions().Grid.MinorVisible)
	assert.True(t, s.RenderOptions().Grid.MajorVisible)
	assert.Equal(t, physics.PolicySymmetric, s.Physics.Policy)
	assert.Equal(t, "json", s.Logging.Encoding)
}

func TestParseEmpty(t *testing.T) {
	s, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "screen:\n  depth: 3\n"},
		{"negative size", "screen:\n  width: -1\n"},
		{"bad policy", "physics:\n  policy: sticky\n"},
		{"bad collider policy", "physics:\n  collider_policy: sticky\n"},
		{"zero stride", "render:\n  history_stride: 0\n"},
		{"bad fire key", "input:\n  fire_key: hyper\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"negative delay", "loop:\n  delay_min: -5ms\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	s := config.Default()
	s.Screen.Width = 640
	s.Loop.FPSTargetEnabled = false
	s.Debug.Overlay = true

	data, err := s.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
	assert.Equal(t, time.Second, loaded.Timing().Delay())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
