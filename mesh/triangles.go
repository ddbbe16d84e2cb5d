package mesh

import (
	"github.com/gmlewis/strokemesh/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a single facet with an outward unit normal.
type Triangle struct {
	N, V1, V2, V3 geom.Point3
}

// Triangles tessellates g into independent facets with closed ends,
// suitable for exporters that cannot consume strips or transforms.
func (g *Geometry) Triangles() []Triangle {
	if g.Empty() {
		return nil
	}
	if g.Kind == DiscreteCylinders {
		var out []Triangle
		for _, c := range g.Cylinders {
			out = append(out, c.triangles(g.Segments)...)
		}
		return out
	}
	return g.tubeTriangles()
}

func (g *Geometry) tubeTriangles() []Triangle {
	var out []Triangle
	for _, strip := range g.Strips {
		for j := 0; j+2 < len(strip); j++ {
			i1, i2, i3 := strip[j], strip[j+1], strip[j+2]
			outward := g.Normals[i1].Add(g.Normals[i2]).Add(g.Normals[i3])
			if t, ok := facet(g.Vertices[i1], g.Vertices[i2], g.Vertices[i3], outward); ok {
				out = append(out, t)
			}
		}
	}

	last := len(g.Centers) - 1
	first := g.Centers[1].Sub(g.Centers[0])
	end := g.Centers[last].Sub(g.Centers[last-1])
	out = append(out, fan(g.Centers[0], g.Ring(0), first.Mul(-1))...)
	out = append(out, fan(g.Centers[last], g.Ring(last), end)...)
	return out
}

func (c Cylinder) triangles(segments int) []Triangle {
	m := c.Transform()
	base := circle(c.Radius, segments)
	bottom := make([]geom.Point3, segments)
	top := make([]geom.Point3, segments)
	for k, b := range base {
		bottom[k] = mgl64.TransformCoordinate(b.Add(geom.Point3{0, -c.Height / 2, 0}), m)
		top[k] = mgl64.TransformCoordinate(b.Add(geom.Point3{0, c.Height / 2, 0}), m)
	}

	var out []Triangle
	for k := range base {
		kk := (k + 1) % segments
		outward := c.Rotation.Rotate(base[k].Add(base[kk]))
		if t, ok := facet(bottom[k], bottom[kk], top[kk], outward); ok {
			out = append(out, t)
		}
		if t, ok := facet(bottom[k], top[kk], top[k], outward); ok {
			out = append(out, t)
		}
	}

	lo, hi := c.Endpoints()
	axis := hi.Sub(lo)
	out = append(out, fan(lo, bottom, axis.Mul(-1))...)
	out = append(out, fan(hi, top, axis)...)
	return out
}

// fan closes ring with triangles around center facing outward.
func fan(center geom.Point3, ring []geom.Point3, outward geom.Point3) []Triangle {
	out := make([]Triangle, 0, len(ring))
	for k := range ring {
		if t, ok := facet(center, ring[k], ring[(k+1)%len(ring)], outward); ok {
			out = append(out, t)
		}
	}
	return out
}

// facet returns the triangle v1,v2,v3 wound so that its normal points
// along outward. Zero-area triangles are dropped.
func facet(v1, v2, v3, outward geom.Point3) (Triangle, bool) {
	n := v2.Sub(v1).Cross(v3.Sub(v1))
	l := n.Len()
	if l == 0 || !geom.IsFinite(n) {
		return Triangle{}, false
	}
	n = n.Mul(1 / l)
	if n.Dot(outward) < 0 {
		v2, v3 = v3, v2
		n = n.Mul(-1)
	}
	return Triangle{N: n, V1: v1, V2: v2, V3: v3}, true
}

func unit(v geom.Point3) geom.Point3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
