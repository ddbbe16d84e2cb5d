package mesh

import (
	"github.com/gmlewis/strokemesh/geom"
)

// Cylinders is the DiscreteCylinders strategy.
type Cylinders struct{}

var _ Strategy = Cylinders{}

// Generate places one cylinder of radius cfg.Radius on every segment with
// a non-zero length. Fewer than two points produce an empty Geometry.
func (Cylinders) Generate(points []geom.Point3, cfg Config) *Geometry {
	g := newGeometry(DiscreteCylinders, cfg)
	g.Segments = max(cfg.Segments, 3)
	for i := 1; i < len(points); i++ {
		u, v := points[i-1], points[i]
		height := geom.Distance(u, v)
		if height == 0 {
			continue
		}
		g.Cylinders = append(g.Cylinders, Cylinder{
			Center:   geom.Midpoint(u, v),
			Rotation: geom.AlignUp(u, v),
			Height:   height,
			Radius:   cfg.Radius,
		})
		g.Sections = append(g.Sections, Section{Start: u, End: v, Length: height})
	}
	return g
}
