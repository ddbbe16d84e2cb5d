package mesh

import (
	"math"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Tube is the TriangleStripTube strategy.
type Tube struct{}

var _ Strategy = Tube{}

// Generate builds a cross-section ring at every distinct point and joins
// consecutive rings with one triangle strip per section.
// Repeated consecutive points are dropped; fewer than two distinct points
// produce an empty Geometry.
func (Tube) Generate(points []geom.Point3, cfg Config) *Geometry {
	g := newGeometry(TriangleStripTube, cfg)
	g.Segments = max(cfg.Segments, 3)

	pts := dedupe(points)
	if len(pts) < 2 {
		return g
	}

	n := g.Segments
	base := circle(cfg.Radius, n)
	g.Primitive = PrimitiveTriangleStrip
	g.Centers = pts
	g.Vertices = make([]geom.Point3, 0, len(pts)*n)
	g.Normals = make([]geom.Point3, 0, len(pts)*n)

	var prev geom.Point3
	for i, p := range pts {
		a, b := direction(pts, i)
		offsets := geom.Rotate(base, ringRotation(a, b))
		if i > 0 {
			offsets = alignRing(offsets, prev)
		}
		prev = offsets[0]
		for _, o := range offsets {
			g.Vertices = append(g.Vertices, p.Add(o))
			g.Normals = append(g.Normals, unit(o))
		}
	}

	for i := 1; i < len(pts); i++ {
		strip := make([]uint32, 0, 2*(n+1))
		lo, hi := uint32((i-1)*n), uint32(i*n)
		for k := 0; k <= n; k++ {
			kk := uint32(k % n)
			strip = append(strip, lo+kk, hi+kk)
		}
		g.Strips = append(g.Strips, strip)
		g.Sections = append(g.Sections, Section{
			Start:  pts[i-1],
			End:    pts[i],
			Length: geom.Distance(pts[i-1], pts[i]),
		})
	}
	return g
}

// circle returns an n-gon of radius r in the XZ plane, perpendicular to Up.
func circle(r float64, n int) []geom.Point3 {
	out := make([]geom.Point3, n)
	for k := range out {
		a := 2 * math.Pi * float64(k) / float64(n)
		out[k] = geom.Point3{r * math.Cos(a), 0, r * math.Sin(a)}
	}
	return out
}

// direction returns two points whose difference is the local path
// direction at pts[i]. Interior points use their neighbors.
func direction(pts []geom.Point3, i int) (geom.Point3, geom.Point3) {
	switch {
	case i == 0:
		return pts[0], pts[1]
	case i == len(pts)-1:
		return pts[i-1], pts[i]
	case pts[i-1] == pts[i+1]:
		return pts[i-1], pts[i]
	default:
		return pts[i-1], pts[i+1]
	}
}

// ringRotation maps Up onto the direction from a to b. AlignUp only
// guarantees the image of Up is parallel to b-a; flipping through X keeps
// all rings wound the same way around the path.
func ringRotation(a, b geom.Point3) mgl64.Quat {
	q := geom.AlignUp(a, b)
	if q.Rotate(geom.Up).Dot(b.Sub(a)) < 0 {
		q = q.Mul(mgl64.QuatRotate(math.Pi, geom.Point3{1, 0, 0}))
	}
	return q
}

// alignRing cyclically shifts offsets so that the first one is the
// closest to prev, which limits twisting between consecutive rings.
func alignRing(offsets []geom.Point3, prev geom.Point3) []geom.Point3 {
	best, bestD := 0, math.Inf(1)
	for k, o := range offsets {
		if d := geom.Distance(o, prev); d < bestD {
			best, bestD = k, d
		}
	}
	if best == 0 {
		return offsets
	}
	return append(offsets[best:], offsets[:best]...)
}

func dedupe(points []geom.Point3) []geom.Point3 {
	var out []geom.Point3
	for i, p := range points {
		if i > 0 && p == points[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
