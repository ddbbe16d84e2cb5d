// Package polyline represents a single stroke as an ordered sequence of
// 3D samples.
//
// A Polyline is not safe for concurrent mutation; callers serialize
// access to a single stroke. Distinct polylines share no state.
package polyline

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/gmlewis/strokemesh/geom"
)

// ErrEmpty is returned when removing a vertex from an empty polyline.
var ErrEmpty = errors.New("polyline is empty")

// Segment is a pair of consecutive vertices.
type Segment struct {
	U, V geom.Point3
}

// Length returns the distance between the segment's endpoints.
func (s Segment) Length() float64 {
	return geom.Distance(s.U, s.V)
}

// Polyline is an ordered, append-only sequence of vertices that
// supports removing the most recent vertex.
type Polyline struct {
	vertices []geom.Point3
}

// New returns a polyline containing a copy of vertices.
func New(vertices ...geom.Point3) *Polyline {
	p := &Polyline{}
	if len(vertices) > 0 {
		p.vertices = append(make([]geom.Point3, 0, len(vertices)), vertices...)
	}
	return p
}

// FromGenerator returns a polyline with one vertex per value, fn(value).
func FromGenerator(fn func(float64) geom.Point3, values []float64) *Polyline {
	p := &Polyline{vertices: make([]geom.Point3, 0, len(values))}
	for _, v := range values {
		p.vertices = append(p.vertices, fn(v))
	}
	return p
}

// Add appends vertex to the end of the polyline.
func (p *Polyline) Add(vertex geom.Point3) {
	p.vertices = append(p.vertices, vertex)
}

// RemoveLast removes and returns the last vertex.
// It returns ErrEmpty if there are no vertices.
func (p *Polyline) RemoveLast() (geom.Point3, error) {
	n := len(p.vertices)
	if n == 0 {
		return geom.Point3{}, ErrEmpty
	}
	last := p.vertices[n-1]
	p.vertices = p.vertices[:n-1]
	return last, nil
}

// Len returns the number of vertices.
func (p *Polyline) Len() int {
	return len(p.vertices)
}

// At returns the i-th vertex. It panics if i is out of range.
func (p *Polyline) At(i int) geom.Point3 {
	return p.vertices[i]
}

// Last returns the last vertex, if any.
func (p *Polyline) Last() (geom.Point3, bool) {
	if len(p.vertices) == 0 {
		return geom.Point3{}, false
	}
	return p.vertices[len(p.vertices)-1], true
}

// Vertices returns a copy of the vertices in insertion order.
func (p *Polyline) Vertices() []geom.Point3 {
	return append([]geom.Point3(nil), p.vertices...)
}

// LastSegment returns the last two vertices. ok is false when the
// polyline has fewer than two vertices.
func (p *Polyline) LastSegment() (seg Segment, ok bool) {
	n := len(p.vertices)
	if n < 2 {
		return Segment{}, false
	}
	return Segment{U: p.vertices[n-2], V: p.vertices[n-1]}, true
}

// Segments returns the consecutive vertex pairs in order.
// The sequence is derived from the stored vertices each time it is
// ranged over, so it may be iterated any number of times.
func (p *Polyline) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := 1; i < len(p.vertices); i++ {
			if !yield(Segment{U: p.vertices[i-1], V: p.vertices[i]}) {
				return
			}
		}
	}
}

// NumSegments returns max(0, Len()-1).
func (p *Polyline) NumSegments() int {
	return max(0, len(p.vertices)-1)
}

// Length returns the sum of the segment lengths.
func (p *Polyline) Length() float64 {
	var total float64
	for seg := range p.Segments() {
		total += seg.Length()
	}
	return total
}

// Bounds returns the minimum bounding box of the vertices.
func (p *Polyline) Bounds() (min, max geom.Point3) {
	return geom.Bounds(p.vertices)
}

// String implements fmt.Stringer.
func (p *Polyline) String() string {
	parts := make([]string, 0, len(p.vertices))
	for _, v := range p.vertices {
		parts = append(parts, fmt.Sprintf("(%v,%v,%v)", v[0], v[1], v[2]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
