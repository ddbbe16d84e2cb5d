// Package canvas holds the strokes of a drawing and drives them from
// tracked device poses.
package canvas

import (
	"errors"
	"fmt"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/mesh"
	"github.com/gmlewis/strokemesh/polyline"
)

var (
	// ErrEmpty is returned when removing a stroke from an empty canvas.
	ErrEmpty = errors.New("canvas has no strokes")
	// ErrOutOfRange is returned for a stroke index outside [0, Len()).
	ErrOutOfRange = errors.New("stroke index out of range")
)

// Canvas owns an ordered collection of strokes. Strokes are never
// reordered. A Canvas is not safe for concurrent mutation.
type Canvas struct {
	strokes []*polyline.Polyline
}

// New returns a canvas with one stroke per element of strokes.
func New(strokes ...[]geom.Point3) *Canvas {
	c := &Canvas{}
	for _, s := range strokes {
		c.AddStroke(s)
	}
	return c
}

// BeginStroke appends a new empty stroke and returns it.
func (c *Canvas) BeginStroke() *polyline.Polyline {
	p := polyline.New()
	c.strokes = append(c.strokes, p)
	return p
}

// AddStroke appends a stroke holding a copy of points.
func (c *Canvas) AddStroke(points []geom.Point3) *polyline.Polyline {
	p := polyline.New(points...)
	c.strokes = append(c.strokes, p)
	return p
}

// Append adds point to the last stroke, starting one if the canvas is
// empty.
func (c *Canvas) Append(point geom.Point3) {
	if len(c.strokes) == 0 {
		c.BeginStroke()
	}
	c.strokes[len(c.strokes)-1].Add(point)
}

// RemoveLast removes and returns the most recent stroke.
func (c *Canvas) RemoveLast() (*polyline.Polyline, error) {
	n := len(c.strokes)
	if n == 0 {
		return nil, ErrEmpty
	}
	last := c.strokes[n-1]
	c.strokes[n-1] = nil
	c.strokes = c.strokes[:n-1]
	return last, nil
}

// Clear removes every stroke.
func (c *Canvas) Clear() {
	c.strokes = nil
}

// Len returns the number of strokes.
func (c *Canvas) Len() int {
	return len(c.strokes)
}

// Stroke returns the i-th stroke.
func (c *Canvas) Stroke(i int) (*polyline.Polyline, error) {
	if i < 0 || i >= len(c.strokes) {
		return nil, fmt.Errorf("%w: %v not in [0,%v)", ErrOutOfRange, i, len(c.strokes))
	}
	return c.strokes[i], nil
}

// Strokes returns the strokes in drawing order. The slice is a copy; the
// polylines are shared.
func (c *Canvas) Strokes() []*polyline.Polyline {
	return append([]*polyline.Polyline(nil), c.strokes...)
}

// Points returns a copy of every stroke's vertices.
func (c *Canvas) Points() [][]geom.Point3 {
	out := make([][]geom.Point3, len(c.strokes))
	for i, s := range c.strokes {
		out[i] = s.Vertices()
	}
	return out
}

// Geometry generates one Geometry per stroke, in drawing order.
func (c *Canvas) Geometry(cfg mesh.Config) []*mesh.Geometry {
	out := make([]*mesh.Geometry, len(c.strokes))
	for i, s := range c.strokes {
		out[i] = mesh.Generate(s.Vertices(), cfg)
	}
	return out
}
