// Package config holds the tunable parameters of the page and its scenes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid reports a value that cannot be used even after clamping.
var ErrInvalid = errors.New("config: invalid value")

// Vec3 is an [x, y, z] triple.
type Vec3 [3]float64

type Config struct {
	Window     Window     `yaml:"window"`
	Activation Activation `yaml:"activation"`
	Camera     Camera     `yaml:"camera"`
	Hero       Hero       `yaml:"hero"`
	Skills     Skills     `yaml:"skills"`
	Projects   Projects   `yaml:"projects"`
	Contact    Contact    `yaml:"contact"`
}

type Window struct {
	Title       string  `yaml:"title"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	TickRate    int     `yaml:"tick_rate"`    // headless and terminal hosts
	RenderScale float64 `yaml:"render_scale"` // scene pixels per device pixel
	Background  Color   `yaml:"background"`
}

type Activation struct {
	Threshold float64 `yaml:"threshold"`
	Rearm     bool    `yaml:"rearm"`
}

type Camera struct {
	Position Vec3    `yaml:"position"`
	FOV      float64 `yaml:"fov"`
}

type Sphere struct {
	Position Vec3    `yaml:"position"`
	Color    Color   `yaml:"color"`
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Bob      float64 `yaml:"bob"`
	Phase    float64 `yaml:"phase"`
}

type Torus struct {
	Position Vec3    `yaml:"position"`
	Color    Color   `yaml:"color"`
	Major    float64 `yaml:"major"`
	Minor    float64 `yaml:"minor"`
	SpeedX   float64 `yaml:"speed_x"`
	SpeedY   float64 `yaml:"speed_y"`
}

type Particles struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
	Seed   uint64  `yaml:"seed"`
	Color  Color   `yaml:"color"`
	Speed  float64 `yaml:"speed"`
}

type Hero struct {
	Spheres    []Sphere  `yaml:"spheres"`
	Torus      Torus     `yaml:"torus"`
	Particles  Particles `yaml:"particles"`
	AutoRotate float64   `yaml:"auto_rotate"`
}

type Skill struct {
	Label    string `yaml:"label"`
	Color    Color  `yaml:"color"`
	Position Vec3   `yaml:"position"`
}

type Skills struct {
	Items       []Skill `yaml:"items"`
	AutoRotate  float64 `yaml:"auto_rotate"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	HoverScale  float64 `yaml:"hover_scale"`
	RateX       float64 `yaml:"rate_x"`
	RateY       float64 `yaml:"rate_y"`
}

type Projects struct {
	Titles   []string `yaml:"titles"`
	SpinBase float64  `yaml:"spin_base"`
	SpinStep float64  `yaml:"spin_step"`
	Bob      float64  `yaml:"bob"`
	Color    Color    `yaml:"color"`
	Emissive Color    `yaml:"emissive"`
}

type Contact struct {
	Radius float64 `yaml:"radius"`
	Color  Color   `yaml:"color"`
	RateX  float64 `yaml:"rate_x"`
	RateY  float64 `yaml:"rate_y"`
	Bob    float64 `yaml:"bob"`
}

// Default returns the built-in page configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:       "folio",
			Width:       1280,
			Height:      800,
			TickRate:    60,
			RenderScale: 1,
			Background:  MustHex("#020617"),
		},
		Activation: Activation{Threshold: 0.1},
		Camera:     Camera{Position: Vec3{0, 0, 8}, FOV: 50},
		Hero: Hero{
			Spheres: []Sphere{
				{Position: Vec3{-3, 0, 0}, Color: MustHex("#3b82f6"), Radius: 1, Speed: 0.5, Bob: 0.5},
				{Position: Vec3{3, 1, -2}, Color: MustHex("#06b6d4"), Radius: 1, Speed: 0.7, Bob: 0.5, Phase: 2},
			},
			Torus: Torus{
				Position: Vec3{0, -1, -3},
				Color:    MustHex("#8b5cf6"),
				Major:    1.5,
				Minor:    0.4,
				SpeedX:   0.3,
				SpeedY:   0.2,
			},
			Particles: Particles{
				Count:  800,
				Spread: 20,
				Seed:   1,
				Color:  MustHex("#60a5fa"),
				Speed:  0.05,
			},
			AutoRotate: 0.5,
		},
		Skills: Skills{
			Items: []Skill{
				{"React", MustHex("#61dafb"), Vec3{-3, 2, 0}},
				{"Three.js", MustHex("#049ef4"), Vec3{0, 2, 0}},
				{"TypeScript", MustHex("#3178c6"), Vec3{3, 2, 0}},
				{"Node.js", MustHex("#68a063"), Vec3{-3, 0, 0}},
				{"Next.js", MustHex("#ffffff"), Vec3{0, 0, 0}},
				{"Python", MustHex("#ffd43b"), Vec3{3, 0, 0}},
				{"Docker", MustHex("#2496ed"), Vec3{-3, -2, 0}},
				{"Git", MustHex("#f05032"), Vec3{0, -2, 0}},
				{"Tailwind", MustHex("#06b6d4"), Vec3{3, -2, 0}},
			},
			AutoRotate:  1,
			MinDistance: 6,
			MaxDistance: 12,
			HoverScale:  1.2,
			RateX:       0.3,
			RateY:       0.5,
		},
		Projects: Projects{
			Titles: []string{
				"Expérience 3D Interactive",
				"Dashboard Analytics 3D",
				"Configurateur 3D Produit",
				"Jeu Web Multijoueur",
				"Plateforme E-Learning VR",
				"Portfolio Architectural 3D",
			},
			SpinBase: 0.3,
			SpinStep: 0.1,
			Bob:      0.2,
			Color:    MustHex("#3b82f6"),
			Emissive: MustHex("#60a5fa"),
		},
		Contact: Contact{
			Radius: 1.5,
			Color:  MustHex("#3b82f6"),
			RateX:  0.2,
			RateY:  0.3,
			Bob:    0.2,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as YAML with two-space indentation.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Write stores cfg as YAML.
func Write(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
