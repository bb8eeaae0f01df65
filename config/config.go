// Package config loads the runtime settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/engine"
	"github.com/plus3/ecsloop/input"
	"github.com/plus3/ecsloop/logging"
	"github.com/plus3/ecsloop/physics"
	"github.com/plus3/ecsloop/render"
)

// Settings is the root of the settings file.
type Settings struct {
	Name    string         `yaml:"name"`
	Screen  ScreenSettings `yaml:"screen"`
	Loop    LoopSettings   `yaml:"loop"`
	Render  RenderSettings `yaml:"render"`
	Physics PhysicsConfig  `yaml:"physics"`
	Input   InputSettings  `yaml:"input"`
	Debug   DebugSettings  `yaml:"debug"`
	Logging logging.Config `yaml:"logging"`
}

type ScreenSettings struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Zoom   float64 `yaml:"zoom"`
}

type LoopSettings struct {
	FPSTargetEnabled bool          `yaml:"fps_target_enabled"`
	FPSTarget        float64       `yaml:"fps_target"`
	DelayFixed       time.Duration `yaml:"delay_fixed"`
	DelayMin         time.Duration `yaml:"delay_min"`
}

type RenderSettings struct {
	Rotation      bool         `yaml:"rotation"`
	Scale         bool         `yaml:"scale"`
	Geometry      bool         `yaml:"geometry"`
	History       bool         `yaml:"history"`
	HistoryDepth  int          `yaml:"history_depth"`
	HistoryStride int          `yaml:"history_stride"`
	CrosshairSize float64      `yaml:"crosshair_size"`
	Grid          GridSettings `yaml:"grid"`
}

type GridSettings struct {
	Visible bool `yaml:"visible"`
	Axis    bool `yaml:"axis"`
	Major   bool `yaml:"major"`
	Minor   bool `yaml:"minor"`
	MajorX  int  `yaml:"major_x"`
	MajorY  int  `yaml:"major_y"`
	MinorX  int  `yaml:"minor_x"`
	MinorY  int  `yaml:"minor_y"`
}

type PhysicsConfig struct {
	// Policy drives the player entities, ColliderPolicy the collider system.
	Policy         string  `yaml:"policy"`
	ColliderPolicy string  `yaml:"collider_policy"`
	Acceleration   float64 `yaml:"acceleration"`
	Friction       float64 `yaml:"friction"`
	Amplifier      float64 `yaml:"amplifier"`
}

type InputSettings struct {
	FireKey string `yaml:"fire_key"`
}

type DebugSettings struct {
	Overlay bool `yaml:"overlay"`
	// Describe prints systems and entities to stdout at startup.
	Describe bool `yaml:"describe"`
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	constants := physics.DefaultConstants()
	return &Settings{
		Name:   "ecsloop",
		Screen: ScreenSettings{Width: 800, Height: 600, Zoom: 1},
		Loop: LoopSettings{
			FPSTargetEnabled: true,
			FPSTarget:        90,
			DelayFixed:       time.Second,
			DelayMin:         5 * time.Millisecond,
		},
		Render: RenderSettings{
			Rotation:      false,
			Scale:         true,
			Geometry:      true,
			History:       true,
			HistoryDepth:  component.DefaultHistoryDepth,
			HistoryStride: component.DefaultHistoryStride,
			CrosshairSize: 6,
			Grid: GridSettings{
				Visible: true,
				Axis:    true,
				Major:   true,
				Minor:   true,
				MajorX:  2,
				MajorY:  2,
				MinorX:  8,
				MinorY:  8,
			},
		},
		Physics: PhysicsConfig{
			Policy:         physics.PolicyDirectional,
			ColliderPolicy: physics.PolicySymmetric,
			Acceleration:   constants.Acceleration,
			Friction:       constants.Friction,
			Amplifier:      constants.Amplifier,
		},
		Input:   InputSettings{FireKey: input.KeyF.String()},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a settings document over the defaults and validates it.
func Parse(r io.Reader) (*Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports every invalid setting.
func (s *Settings) Validate() error {
	var errs []error
	if s.Screen.Width <= 0 || s.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", s.Screen.Width, s.Screen.Height))
	}
	if s.Screen.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("screen zoom %g must be positive", s.Screen.Zoom))
	}
	if s.Loop.FPSTarget < 0 {
		errs = append(errs, fmt.Errorf("fps target %g is negative", s.Loop.FPSTarget))
	}
	if err := s.Timing().Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.Render.HistoryDepth < 0 {
		errs = append(errs, fmt.Errorf("history depth %d is negative", s.Render.HistoryDepth))
	}
	if s.Render.HistoryStride < 1 {
		errs = append(errs, fmt.Errorf("history stride %d must be at least 1", s.Render.HistoryStride))
	}
	g := s.Render.Grid
	if g.MajorX < 0 || g.MajorY < 0 || g.MinorX < 0 || g.MinorY < 0 {
		errs = append(errs, errors.New("grid subdivisions must not be negative"))
	}
	if _, err := physics.PolicyByName(s.Physics.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := physics.PolicyByName(s.Physics.ColliderPolicy); err != nil {
		errs = append(errs, fmt.Errorf("collider: %w", err))
	}
	if s.Physics.Acceleration < 0 || s.Physics.Friction < 0 || s.Physics.Amplifier < 0 {
		errs = append(errs, errors.New("physics constants must not be negative"))
	}
	if _, err := input.ParseKey(s.Input.FireKey); err != nil {
		errs = append(errs, fmt.Errorf("fire key: %w", err))
	}
	if s.Logging.Enabled {
		if err := s.Logging.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Timing converts the loop settings.
func (s *Settings) Timing() engine.Timing {
	return engine.Timing{
		FPSTargetEnabled: s.Loop.FPSTargetEnabled,
		FPSTarget:        s.Loop.FPSTarget,
		LoopDelayFixed:   s.Loop.DelayFixed,
		LoopDelayMin:     s.Loop.DelayMin,
	}
}

// RenderOptions converts the render settings, keeping default colors.
func (s *Settings) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Rotation = s.Render.Rotation
	opts.Scale = s.Render.Scale
	opts.GeometryVisible = s.Render.Geometry
	opts.HistoryVisible = s.Render.History
	opts.CrosshairSize = s.Render.CrosshairSize
	opts.Grid.Visible = s.Render.Grid.Visible
	opts.Grid.AxisVisible = s.Render.Grid.Axis
	opts.Grid.MajorVisible = s.Render.Grid.Major
	opts.Grid.MinorVisible = s.Render.Grid.Minor
	opts.Grid.MajorX = s.Render.Grid.MajorX
	opts.Grid.MajorY = s.Render.Grid.MajorY
	opts.Grid.MinorX = s.Render.Grid.MinorX
	opts.Grid.MinorY = s.Render.Grid.MinorY
	return opts
}

// ScreenSize returns the render screen singleton.
func (s *Settings) ScreenSize() render.Screen {
	return render.Screen{Width: float64(s.Screen.Width), Height: float64(s.Screen.Height)}
}

// Constants converts the physics tuning.
func (s *Settings) Constants() physics.Constants {
	return physics.Constants{
		Acceleration: s.Physics.Acceleration,
		Friction:     s.Physics.Friction,
		Amplifier:    s.Physics.Amplifier,
	}
}

// FireKey returns the parsed fire key, KeyF when the name is invalid.
func (s *Settings) FireKey() input.Key {
	k, err := input.ParseKey(s.Input.FireKey)
	if err != nil {
		return input.KeyF
	}
	return k
}

// Marshal renders the settings as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
