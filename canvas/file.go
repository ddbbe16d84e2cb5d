package canvas

import (
	"fmt"

	"github.com/gmlewis/strokemesh/geom"
	"gopkg.in/yaml.v3"
)

// strokeFile is the on-disk YAML representation of a canvas.
//
//	strokes:
//	  - [[0, 0, 0], [0.01, 0, 0]]
type strokeFile struct {
	Strokes [][][]float64 `yaml:"strokes"`
}

// Unmarshal parses a YAML stroke file.
func Unmarshal(data []byte) (*Canvas, error) {
	var f strokeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse strokes: %w", err)
	}

	c := &Canvas{}
	for i, stroke := range f.Strokes {
		points := make([]geom.Point3, 0, len(stroke))
		for j, p := range stroke {
			if len(p) != 3 {
				return nil, fmt.Errorf("stroke %v, point %v: want 3 coordinates, got %v", i, j, len(p))
			}
			points = append(points, geom.Point3{p[0], p[1], p[2]})
		}
		c.AddStroke(points)
	}
	return c, nil
}

// Marshal encodes c as a YAML stroke file.
func (c *Canvas) Marshal() ([]byte, error) {
	f := strokeFile{Strokes: make([][][]float64, 0, len(c.strokes))}
	for _, s := range c.strokes {
		stroke := make([][]float64, 0, s.Len())
		for _, p := range s.Vertices() {
			stroke = append(stroke, []float64{p[0], p[1], p[2]})
		}
		f.Strokes = append(f.Strokes, stroke)
	}
	buf, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("unable to encode strokes: %w", err)
	}
	return buf, nil
}
