package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GameSpecFile   = "game.yaml"
	PlayerSpecFile = "player.yaml"
	CameraSpecFile = "camera.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec holds process-wide settings.
type GameSpec struct {
	Title      string  `yaml:"title"`
	StartLevel string  `yaml:"start_level"`
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
	AppName    string  `yaml:"save_app_name"`
	ErrorLog   string  `yaml:"error_log"`
	// AlertSeconds is how long the checkpoint alert stays up.
	AlertSeconds float64    `yaml:"checkpoint_alert_seconds"`
	FadeSeconds  float64    `yaml:"death_fade_seconds"`
	Colors       ColorsSpec `yaml:"colors"`
}

type ColorsSpec struct {
	Background *YAMLColor `yaml:"background"`
	Solid      *YAMLColor `yaml:"solid"`
	Hazard     *YAMLColor `yaml:"hazard"`
	Checkpoint *YAMLColor `yaml:"checkpoint"`
	Player     *YAMLColor `yaml:"player"`
}

func DefaultGameSpec() GameSpec {
	return GameSpec{
		Title:        "pawbs",
		StartLevel:   "levels/intro.tmx",
		Gravity:      1400,
		Iterations:   20,
		AppName:      "pawbs",
		ErrorLog:     "errors.log",
		AlertSeconds: 1.5,
		FadeSeconds:  0.4,
	}
}

// WithDefaults fills zero fields from DefaultGameSpec.
func (s GameSpec) WithDefaults() GameSpec {
	d := DefaultGameSpec()
	if s.Title == "" {
		s.Title = d.Title
	}
	if s.StartLevel == "" {
		s.StartLevel = d.StartLevel
	}
	if s.Gravity == 0 {
		s.Gravity = d.Gravity
	}
	if s.Iterations <= 0 {
		s.Iterations = d.Iterations
	}
	if s.AppName == "" {
		s.AppName = d.AppName
	}
	if s.ErrorLog == "" {
		s.ErrorLog = d.ErrorLog
	}
	if s.AlertSeconds <= 0 {
		s.AlertSeconds = d.AlertSeconds
	}
	if s.FadeSeconds <= 0 {
		s.FadeSeconds = d.FadeSeconds
	}
	return s
}

type PlayerSpec struct {
	Name             string  `yaml:"name"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Mass             float64 `yaml:"mass"`
	MoveSpeed        float64 `yaml:"move_speed"`
	JumpSpeed        float64 `yaml:"jump_speed"`
	CoyoteFrames     int     `yaml:"coyote_frames"`
	JumpBufferFrames int     `yaml:"jump_buffer_frames"`
	FootHeight       float64 `yaml:"foot_sensor_height"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:             "pawbs",
		Width:            24,
		Height:           30,
		Mass:             1,
		MoveSpeed:        220,
		JumpSpeed:        560,
		CoyoteFrames:     6,
		JumpBufferFrames: 6,
		FootHeight:       4,
	}
}

func (s PlayerSpec) WithDefaults() PlayerSpec {
	d := DefaultPlayerSpec()
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.Mass <= 0 {
		s.Mass = d.Mass
	}
	if s.MoveSpeed <= 0 {
		s.MoveSpeed = d.MoveSpeed
	}
	if s.JumpSpeed <= 0 {
		s.JumpSpeed = d.JumpSpeed
	}
	if s.CoyoteFrames < 0 {
		s.CoyoteFrames = 0
	}
	if s.JumpBufferFrames < 0 {
		s.JumpBufferFrames = 0
	}
	if s.FootHeight <= 0 {
		s.FootHeight = d.FootHeight
	}
	return s
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func DefaultCameraSpec() CameraSpec {
	return CameraSpec{Zoom: 1, Smoothness: 0.15}
}

func (s CameraSpec) WithDefaults() CameraSpec {
	if s.Zoom <= 0 {
		s.Zoom = 1
	}
	if s.Smoothness < 0 || s.Smoothness > 1 {
		s.Smoothness = DefaultCameraSpec().Smoothness
	}
	return s
}

// ColorOr returns c, or fallback when c was not set.
func ColorOr(c *YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
