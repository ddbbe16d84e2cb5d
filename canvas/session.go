package canvas

import (
	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/mesh"
	"github.com/gmlewis/strokemesh/polyline"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDrawOffset moves the draw point 6cm in front of the camera and
// compensates for the lens' horizontal offset.
var DefaultDrawOffset = mgl64.Mat4FromRows(
	mgl64.Vec4{1, 0, 0, 0.0025 * 0.6},
	mgl64.Vec4{0, 1, 0, 0},
	mgl64.Vec4{0, 0, 1, -0.06},
	mgl64.Vec4{0, 0, 0, 1},
)

// SessionOptions configures a Session.
type SessionOptions struct {
	// Mesh is used to generate incremental geometry.
	Mesh mesh.Config
	// MinDistance is the distance a new sample must exceed from the
	// previous one to be recorded. Zero uses Mesh.Radius/2.
	MinDistance float64
	// DrawOffset is applied to each camera transform to find the draw
	// point. The zero value uses DefaultDrawOffset.
	DrawOffset mgl64.Mat4
}

// Session turns a stream of tracked camera poses into strokes.
//
// The host calls Begin when the user starts pressing, Track on every
// tracking update, and End when the press ends. Session has no timer
// or goroutine of its own.
type Session struct {
	canvas *Canvas
	opts   SessionOptions

	stroke   *polyline.Polyline
	previous geom.Point3
	hasPrev  bool
}

// NewSession returns a session recording into c.
func NewSession(c *Canvas, opts SessionOptions) *Session {
	if opts.DrawOffset == (mgl64.Mat4{}) {
		opts.DrawOffset = DefaultDrawOffset
	}
	if opts.MinDistance <= 0 {
		opts.MinDistance = opts.Mesh.Radius / 2
	}
	return &Session{canvas: c, opts: opts}
}

// Canvas returns the canvas being drawn into.
func (s *Session) Canvas() *Canvas {
	return s.canvas
}

// Drawing reports whether a stroke is in progress.
func (s *Session) Drawing() bool {
	return s.stroke != nil
}

// Begin starts a new stroke. A stroke already in progress is ended.
func (s *Session) Begin() {
	s.stroke = s.canvas.BeginStroke()
	s.hasPrev = false
}

// End finishes the stroke in progress, if any.
func (s *Session) End() {
	s.stroke = nil
	s.hasPrev = false
}

// Clear ends any stroke in progress and removes all strokes.
func (s *Session) Clear() {
	s.End()
	s.canvas.Clear()
}

// DrawPoint returns the position at which camera draws.
func (s *Session) DrawPoint(camera mgl64.Mat4) geom.Point3 {
	return geom.Translation(camera.Mul4(s.opts.DrawOffset))
}

// Track records the draw point for camera if a stroke is in progress
// and the point is far enough from the previous sample. When a new
// segment results, its geometry is returned with ok set.
func (s *Session) Track(camera mgl64.Mat4) (g *mesh.Geometry, ok bool) {
	if s.stroke == nil {
		return nil, false
	}
	pos := s.DrawPoint(camera)
	if !geom.IsFinite(pos) {
		return nil, false
	}
	if s.hasPrev && geom.Distance(pos, s.previous) <= s.opts.MinDistance {
		return nil, false
	}
	s.stroke.Add(pos)
	s.previous, s.hasPrev = pos, true
	return s.IncrementalSegment()
}

// IncrementalSegment returns the geometry for the last segment of the
// stroke in progress.
func (s *Session) IncrementalSegment() (*mesh.Geometry, bool) {
	if s.stroke == nil {
		return nil, false
	}
	seg, ok := s.stroke.LastSegment()
	if !ok {
		return nil, false
	}
	cfg := s.opts.Mesh
	cfg.Smoothing = 0
	return mesh.Generate([]geom.Point3{seg.U, seg.V}, cfg), true
}
