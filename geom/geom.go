// Package geom provides the vector, quaternion and transform primitives
// used to turn strokes into geometry.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a point (or direction) in 3D space, in meters.
type Point3 = mgl64.Vec3

// Up is the default axis of generated primitives (cylinders, rings).
var Up = Point3{0, 1, 0}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point3) float64 {
	return b.Sub(a).Len()
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point3) Point3 {
	return a.Add(b).Mul(0.5)
}

// RotationAxisAngle computes the rotation associated with the direction
// n = v - u: with d = sqrt(n.x² + n.z²), the angle is atan(d/n.y) and the
// axis is normalize(-n.z/d, 0, n.x/d).
//
// When d is zero (u == v, or the segment is vertical) there is no
// horizontal component to build an axis from and ok is false; the
// returned axis and angle then describe the identity rotation.
func RotationAxisAngle(u, v Point3) (axis Point3, angle float64, ok bool) {
	n := v.Sub(u)
	x, y, z := n[0], n[1], n[2]
	d := math.Hypot(x, z)
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return Up, 0, false
	}
	// y == ±0 yields ±Inf and atan(±Inf) = ±π/2.
	angle = math.Atan(d / y)
	axis = Point3{-z / d, 0, x / d}.Normalize()
	return axis, angle, true
}

// AlignUp returns the rotation that maps Up onto the line through u and v.
// The rotation angle is π - phi where phi is the angle returned by
// RotationAxisAngle. Degenerate directions yield the identity.
//
// The image of Up is parallel to v - u; its sign depends on n.y.
func AlignUp(u, v Point3) mgl64.Quat {
	axis, phi, ok := RotationAxisAngle(u, v)
	if !ok {
		return mgl64.QuatIdent()
	}
	return QuatFromAxisAngle(axis, math.Pi-phi)
}

// QuatFromAxisAngle returns the unit quaternion rotating by angle radians
// around axis. A zero axis yields the identity.
func QuatFromAxisAngle(axis Point3, angle float64) mgl64.Quat {
	if axis.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, axis.Normalize())
}

// Transform applies the homogeneous transform m to every point and returns
// the results in a new slice.
func Transform(points []Point3, m mgl64.Mat4) []Point3 {
	out := make([]Point3, len(points))
	for i, p := range points {
		out[i] = mgl64.TransformCoordinate(p, m)
	}
	return out
}

// Rotate applies q to every point and returns the results in a new slice.
func Rotate(points []Point3, q mgl64.Quat) []Point3 {
	out := make([]Point3, len(points))
	for i, p := range points {
		out[i] = q.Rotate(p)
	}
	return out
}

// Translation returns the translation column of the homogeneous transform m.
func Translation(m mgl64.Mat4) Point3 {
	return m.Col(3).Vec3()
}

// IsFinite reports whether every component of p is a finite number.
func IsFinite(p Point3) bool {
	for _, c := range p {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Bounds returns the minimum bounding box of points.
// It returns zero values when points is empty.
func Bounds(points []Point3) (min, max Point3) {
	if len(points) == 0 {
		return min, max
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], p[i])
			max[i] = math.Max(max[i], p[i])
		}
	}
	return min, max
}

// SegmentDistance returns the distance from p to the closed segment ab.
func SegmentDistance(p, a, b Point3) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return Distance(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Distance(p, a.Add(ab.Mul(t)))
}
