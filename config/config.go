// Package config loads the optional strokemesh.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/gmlewis/strokemesh/canvas"
	"github.com/gmlewis/strokemesh/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the settings file looked up by the commands.
const DefaultFilename = "strokemesh.yaml"

// ErrInvalid is wrapped by errors describing bad settings.
var ErrInvalid = errors.New("invalid config")

// Config represents strokemesh.yaml.
type Config struct {
	Stroke StrokeConfig `yaml:"stroke"`
	Draw   DrawConfig   `yaml:"draw"`
	Export ExportConfig `yaml:"export"`
}

// StrokeConfig contains the mesh generation settings.
type StrokeConfig struct {
	Radius    float64 `yaml:"radius,omitempty"`
	Segments  int     `yaml:"segments,omitempty"`
	Color     string  `yaml:"color,omitempty"` // #rrggbb or #rrggbbaa
	Strategy  string  `yaml:"strategy,omitempty"`
	Smoothing int     `yaml:"smoothing,omitempty"`
}

// DrawConfig contains the live drawing settings.
type DrawConfig struct {
	MinDistance float64   `yaml:"min_distance,omitempty"`
	Offset      []float64 `yaml:"offset,omitempty"` // x, y, z in camera space
}

// ExportConfig contains exporter settings.
type ExportConfig struct {
	// VoxelSize is the binvox voxel edge length in meters.
	VoxelSize float64 `yaml:"voxel_size,omitempty"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Stroke: StrokeConfig{
			Radius:   0.001,
			Segments: 9,
			Color:    "#ffffffff",
			Strategy: mesh.TriangleStripTube.String(),
		},
		Draw: DrawConfig{
			MinDistance: 0.0005,
			Offset:      []float64{0.0025 * 0.6, 0, -0.06},
		},
		Export: ExportConfig{
			VoxelSize: 0.0005,
		},
	}
}

// Load reads path if it exists and fills unset values with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %v: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings, fills unset values with defaults and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve() {
	def := Default()
	if c.Stroke.Radius == 0 {
		c.Stroke.Radius = def.Stroke.Radius
	}
	if c.Stroke.Segments == 0 {
		c.Stroke.Segments = def.Stroke.Segments
	}
	if strings.TrimSpace(c.Stroke.Color) == "" {
		c.Stroke.Color = def.Stroke.Color
	}
	if strings.TrimSpace(c.Stroke.Strategy) == "" {
		c.Stroke.Strategy = def.Stroke.Strategy
	}
	if c.Draw.MinDistance == 0 {
		c.Draw.MinDistance = c.Stroke.Radius / 2
	}
	if len(c.Draw.Offset) == 0 {
		c.Draw.Offset = def.Draw.Offset
	}
	if c.Export.VoxelSize == 0 {
		c.Export.VoxelSize = c.Stroke.Radius / 2
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	m, err := c.Mesh()
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Draw.MinDistance < 0 {
		return fmt.Errorf("%w: draw.min_distance must not be negative, got %v", ErrInvalid, c.Draw.MinDistance)
	}
	if len(c.Draw.Offset) != 3 {
		return fmt.Errorf("%w: draw.offset must have 3 values, found %v", ErrInvalid, len(c.Draw.Offset))
	}
	if !(c.Export.VoxelSize > 0) {
		return fmt.Errorf("%w: export.voxel_size must be positive, got %v", ErrInvalid, c.Export.VoxelSize)
	}
	return nil
}

// Mesh returns the mesh generation settings.
func (c *Config) Mesh() (mesh.Config, error) {
	kind, err := mesh.ParseKind(c.Stroke.Strategy)
	if err != nil {
		return mesh.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	col, err := ParseColor(c.Stroke.Color)
	if err != nil {
		return mesh.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return mesh.Config{
		Radius:    c.Stroke.Radius,
		Segments:  c.Stroke.Segments,
		Color:     col,
		Kind:      kind,
		Smoothing: c.Stroke.Smoothing,
	}, nil
}

// Session returns the live drawing settings.
func (c *Config) Session() (canvas.SessionOptions, error) {
	m, err := c.Mesh()
	if err != nil {
		return canvas.SessionOptions{}, err
	}
	opts := canvas.SessionOptions{Mesh: m, MinDistance: c.Draw.MinDistance}
	if len(c.Draw.Offset) == 3 {
		opts.DrawOffset = mgl64.Translate3D(c.Draw.Offset[0], c.Draw.Offset[1], c.Draw.Offset[2])
	}
	return opts, nil
}

// ParseColor parses #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q must be #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %v", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
