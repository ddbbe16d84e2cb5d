// Package binvox voxelizes strokes and writes binvox files.
package binvox

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/gmlewis/stldice/v4/binvox"
	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/polyline"
)

// MaxCells is the largest number of voxels along any axis.
const MaxCells = 2048

// Canvas represents an ordered set of strokes.
type Canvas interface {
	Len() int
	Stroke(i int) (*polyline.Polyline, error)
}

// Slice voxelizes every stroke of c as a tube of the given radius and
// writes one binvox file per stroke. Empty strokes are skipped.
func Slice(baseFilename string, c Canvas, radius, voxelSize float64) error {
	for i := 0; i < c.Len(); i++ {
		stroke, err := c.Stroke(i)
		if err != nil {
			return err
		}

		g, err := Voxelize(stroke.Vertices(), radius, voxelSize)
		if err != nil {
			return fmt.Errorf("stroke #%v: %w", i+1, err)
		}
		if g == nil {
			log.Printf("Skipping empty stroke #%v", i+1)
			continue
		}

		filename := fmt.Sprintf("%v-stroke%02d.binvox", baseFilename, i+1)
		b := binvox.New(g.NX, g.NY, g.NZ, g.Min[0], g.Min[1], g.Min[2], g.Scale(), false)
		for _, v := range g.Voxels {
			b.Add(v[0], v[1], v[2])
		}

		log.Printf("Writing: %v", filename)
		if err := b.Write(filename, 0, 0, 0, b.NX, b.NY, b.NZ); err != nil {
			return fmt.Errorf("Write: %v", err)
		}
	}

	return nil
}

// Grid is a sparse voxel grid anchored at Min.
type Grid struct {
	NX, NY, NZ int
	Min        geom.Point3
	VoxelSize  float64

	// Voxels lists the filled cells in (x, y, z) order.
	Voxels [][3]int
}

// Scale returns the edge length of the cube enclosing the grid.
func (g *Grid) Scale() float64 {
	return g.VoxelSize * float64(max(g.NX, g.NY, g.NZ))
}

// Center returns the center of cell (x, y, z).
func (g *Grid) Center(x, y, z int) geom.Point3 {
	return g.Min.Add(geom.Point3{float64(x) + 0.5, float64(y) + 0.5, float64(z) + 0.5}.Mul(g.VoxelSize))
}

// Voxelize fills every cell whose center lies within radius of the path
// through points. It returns nil when points is empty.
func Voxelize(points []geom.Point3, radius, voxelSize float64) (*Grid, error) {
	if !(radius > 0) || !(voxelSize > 0) {
		return nil, fmt.Errorf("radius (%v) and voxel size (%v) must be positive", radius, voxelSize)
	}
	if len(points) == 0 {
		return nil, nil
	}

	min, max := geom.Bounds(points)
	pad := geom.Point3{radius, radius, radius}
	min, max = min.Sub(pad), max.Add(pad)

	g := &Grid{Min: min, VoxelSize: voxelSize}
	dims := [3]int{}
	for i := range dims {
		dims[i] = int(math.Ceil((max[i] - min[i]) / voxelSize))
		if dims[i] < 1 {
			dims[i] = 1
		}
		if dims[i] > MaxCells {
			return nil, fmt.Errorf("grid needs %v cells along axis %v, max is %v", dims[i], i, MaxCells)
		}
	}
	g.NX, g.NY, g.NZ = dims[0], dims[1], dims[2]

	segments := make([][2]geom.Point3, 0, len(points))
	for i := 1; i < len(points); i++ {
		segments = append(segments, [2]geom.Point3{points[i-1], points[i]})
	}
	if len(segments) == 0 {
		segments = append(segments, [2]geom.Point3{points[0], points[0]})
	}

	filled := map[[3]int]struct{}{}
	for _, seg := range segments {
		lo, hi := geom.Bounds(seg[:])
		from := g.cell(lo.Sub(pad), dims)
		to := g.cell(hi.Add(pad), dims)
		for x := from[0]; x <= to[0]; x++ {
			for y := from[1]; y <= to[1]; y++ {
				for z := from[2]; z <= to[2]; z++ {
					if geom.SegmentDistance(g.Center(x, y, z), seg[0], seg[1]) <= radius {
						filled[[3]int{x, y, z}] = struct{}{}
					}
				}
			}
		}
	}

	g.Voxels = make([][3]int, 0, len(filled))
	for v := range filled {
		g.Voxels = append(g.Voxels, v)
	}
	sort.Slice(g.Voxels, func(i, j int) bool {
		a, b := g.Voxels[i], g.Voxels[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	return g, nil
}

// cell returns the clamped cell containing p.
func (g *Grid) cell(p geom.Point3, dims [3]int) [3]int {
	var out [3]int
	for i := range out {
		c := int(math.Floor((p[i] - g.Min[i]) / g.VoxelSize))
		out[i] = min(dims[i]-1, max(0, c))
	}
	return out
}
