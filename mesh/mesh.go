// Package mesh turns stroke vertices into renderable geometry: either a
// continuous triangle-strip tube or a chain of oriented cylinders.
//
// Generation is a pure function of the input points and Config.
// Degenerate input never fails: too few points yield an empty Geometry
// and zero-length segments are skipped.
package mesh

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/spline"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind selects a mesh generation strategy.
type Kind int

const (
	// TriangleStripTube generates one continuous tube with a
	// cross-section ring at every vertex.
	TriangleStripTube Kind = iota
	// DiscreteCylinders generates one oriented cylinder per segment.
	// Joints between cylinders are not filled.
	DiscreteCylinders
)

var kindNames = map[Kind]string{
	TriangleStripTube: "tube",
	DiscreteCylinders: "cylinders",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the name of a strategy ("tube" or "cylinders").
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown mesh strategy %q", s)
}

// Config holds the options recognized by the generators.
type Config struct {
	// Radius is the tube thickness in meters.
	Radius float64
	// Segments is the number of sides of each cross-section polygon.
	Segments int
	// Color is the flat diffuse tint handed to the renderer.
	Color color.NRGBA
	// Kind selects the strategy used by Generate.
	Kind Kind
	// Smoothing, when positive, resamples the points through a Bezier
	// spline with that many samples per control point before generating.
	Smoothing int
}

// DefaultConfig returns the stroke settings of the drawing application.
func DefaultConfig() Config {
	return Config{
		Radius:   0.001,
		Segments: 9,
		Color:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Kind:     TriangleStripTube,
	}
}

// ErrInvalidConfig is wrapped by errors from Config.Validate.
var ErrInvalidConfig = errors.New("invalid mesh config")

// Validate checks that c can produce geometry.
func (c Config) Validate() error {
	if !(c.Radius > 0) {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidConfig, c.Radius)
	}
	if c.Segments < 3 {
		return fmt.Errorf("%w: segments must be at least 3, got %v", ErrInvalidConfig, c.Segments)
	}
	if _, ok := kindNames[c.Kind]; !ok {
		return fmt.Errorf("%w: unknown strategy %v", ErrInvalidConfig, c.Kind)
	}
	if c.Smoothing < 0 {
		return fmt.Errorf("%w: smoothing must not be negative, got %v", ErrInvalidConfig, c.Smoothing)
	}
	return nil
}

// Strategy generates geometry for a sequence of points.
type Strategy interface {
	Generate(points []geom.Point3, cfg Config) *Geometry
}

// StrategyFor returns the generator for kind.
func StrategyFor(kind Kind) Strategy {
	if kind == DiscreteCylinders {
		return Cylinders{}
	}
	return Tube{}
}

// Generate optionally smooths points and then runs the strategy
// selected by cfg.Kind.
func Generate(points []geom.Point3, cfg Config) *Geometry {
	if cfg.Smoothing > 0 && len(points) > 2 {
		if s, err := spline.New(points); err == nil {
			points = s.Sample(cfg.Smoothing)
		}
	}
	return StrategyFor(cfg.Kind).Generate(points, cfg)
}

// Primitive describes how Geometry.Indices are assembled.
type Primitive int

const (
	// PrimitiveNone is used by cylinder geometry, which has no indices.
	PrimitiveNone Primitive = iota
	// PrimitiveTriangleStrip means each entry of Strips is a triangle strip.
	PrimitiveTriangleStrip
)

// Section is one rendered piece of a stroke between two path points.
type Section struct {
	Start, End geom.Point3
	Length     float64
}

// Cylinder is a primitive of the given height and radius whose axis is
// the local Y axis, centered at the origin before Transform is applied.
type Cylinder struct {
	Center   geom.Point3
	Rotation mgl64.Quat
	Height   float64
	Radius   float64
}

// Transform returns the model matrix placing the cylinder in the scene.
func (c Cylinder) Transform() mgl64.Mat4 {
	return mgl64.Translate3D(c.Center[0], c.Center[1], c.Center[2]).Mul4(c.Rotation.Mat4())
}

// Endpoints returns the centers of the cylinder's two caps.
func (c Cylinder) Endpoints() (geom.Point3, geom.Point3) {
	half := c.Rotation.Rotate(geom.Up).Mul(c.Height / 2)
	return c.Center.Sub(half), c.Center.Add(half)
}

// Geometry is the description handed to a renderer or exporter.
type Geometry struct {
	Kind     Kind
	Color    color.NRGBA
	Radius   float64
	Segments int

	// Sections lists the path pieces covered, in order, for both kinds.
	Sections []Section

	// Tube geometry: Vertices and Normals are stored ring by ring, with
	// Segments entries per ring centered on Centers[i].
	Primitive Primitive
	Centers   []geom.Point3
	Vertices  []geom.Point3
	Normals   []geom.Point3
	Strips    [][]uint32

	// Cylinder geometry.
	Cylinders []Cylinder
}

// Empty reports whether g contains nothing to draw.
func (g *Geometry) Empty() bool {
	return len(g.Sections) == 0
}

// Ring returns the vertices of the i-th cross-section ring.
func (g *Geometry) Ring(i int) []geom.Point3 {
	return g.Vertices[i*g.Segments : (i+1)*g.Segments]
}

func newGeometry(kind Kind, cfg Config) *Geometry {
	return &Geometry{
		Kind:     kind,
		Color:    cfg.Color,
		Radius:   cfg.Radius,
		Segments: cfg.Segments,
	}
}
