// Package spline smooths a sequence of control points with piecewise
// cubic Bezier segments.
//
// The control points are partitioned into consecutive groups of four.
// The curve is parametrized by t in [0, MaxIndex()] where integer values
// of t correspond to control point indices: a group starting at index 4k
// covers t in [4k, 4k+3] and interpolates its first and last points.
// Consecutive groups are joined by straight lines over (4k+3, 4k+4).
//
// The last 1-3 points that do not fill a group (the tail) are handled
// according to the spline's Tail policy.
package spline

import (
	"errors"
	"fmt"
	"math"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNoPoints is returned by New when given no control points.
	ErrNoPoints = errors.New("spline requires at least one control point")
	// ErrOutOfRange is returned by Eval for t outside [0, MaxIndex()].
	ErrOutOfRange = errors.New("spline parameter out of range")
)

// Tail selects how the leftover control points are evaluated.
type Tail int

const (
	// TailBezier evaluates the leftover points as a lower-degree Bezier
	// curve (a point, a line or a quadratic), keeping Eval continuous.
	TailBezier Tail = iota
	// TailNearest returns the control point nearest to t for any t in
	// the tail. This may produce visible jumps at the end of a stroke.
	TailNearest
)

// String implements fmt.Stringer.
func (t Tail) String() string {
	switch t {
	case TailBezier:
		return "bezier"
	case TailNearest:
		return "nearest"
	default:
		return fmt.Sprintf("Tail(%d)", int(t))
	}
}

// bezierBasis is the cubic Bezier basis matrix. A point on the curve is
// (1, u, u², u³) · bezierBasis · (P0, P1, P2, P3)ᵀ.
var bezierBasis = mgl64.Mat4FromRows(
	mgl64.Vec4{1, 0, 0, 0},
	mgl64.Vec4{-3, 3, 0, 0},
	mgl64.Vec4{3, -6, 3, 0},
	mgl64.Vec4{-1, 3, -3, 1},
)

// Spline is an immutable piecewise cubic Bezier curve.
type Spline struct {
	points []geom.Point3
	full   int // number of points belonging to complete groups
	tail   Tail
}

// Option configures a Spline.
type Option func(*Spline)

// WithTail sets the tail policy. The default is TailBezier.
func WithTail(tail Tail) Option {
	return func(s *Spline) { s.tail = tail }
}

// New returns a spline over a copy of points.
func New(points []geom.Point3, opts ...Option) (*Spline, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	s := &Spline{
		points: append([]geom.Point3(nil), points...),
		full:   len(points) - len(points)%4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxIndex returns the largest valid parameter, the number of control
// points minus one.
func (s *Spline) MaxIndex() int {
	return len(s.points) - 1
}

// Eval returns the point on the curve at parameter t.
func (s *Spline) Eval(t float64) (geom.Point3, error) {
	if !(t >= 0 && t <= float64(s.MaxIndex())) {
		return geom.Point3{}, fmt.Errorf("%w: t=%v not in [0,%v]", ErrOutOfRange, t, s.MaxIndex())
	}

	if t < float64(s.full) {
		base := 4 * int(t/4)
		local := t - float64(base)
		if local <= 3 {
			return cubic(s.points[base:base+4], local/3), nil
		}
		// Bridge between the end of this group and the start of the next.
		return lerp(s.points[base+3], s.points[base+4], local-3), nil
	}

	if s.tail == TailNearest {
		return s.points[int(math.Round(t))], nil
	}

	tail := s.points[s.full:]
	switch len(tail) {
	case 1:
		return tail[0], nil
	case 2:
		return lerp(tail[0], tail[1], t-float64(s.full)), nil
	default:
		return quadratic(tail, (t-float64(s.full))/2), nil
	}
}

// Sample evaluates the curve stepsPerUnit times per unit of t, including
// both endpoints. stepsPerUnit values below one are treated as one.
func (s *Spline) Sample(stepsPerUnit int) []geom.Point3 {
	if stepsPerUnit < 1 {
		stepsPerUnit = 1
	}
	n := s.MaxIndex() * stepsPerUnit
	out := make([]geom.Point3, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(stepsPerUnit)
		p, err := s.Eval(t)
		if err != nil {
			// t never leaves [0, MaxIndex].
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

func cubic(p []geom.Point3, u float64) geom.Point3 {
	w := bezierBasis.Transpose().Mul4x1(mgl64.Vec4{1, u, u * u, u * u * u})
	var out geom.Point3
	for i := 0; i < 4; i++ {
		out = out.Add(p[i].Mul(w[i]))
	}
	return out
}

func quadratic(p []geom.Point3, u float64) geom.Point3 {
	v := 1 - u
	return p[0].Mul(v * v).Add(p[1].Mul(2 * u * v)).Add(p[2].Mul(u * u))
}

func lerp(a, b geom.Point3, f float64) geom.Point3 {
	return a.Mul(1 - f).Add(b.Mul(f))
}
