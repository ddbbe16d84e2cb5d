// Package zipper writes stroke exports into ZIP-based archives.
package zipper

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gmlewis/strokemesh/mesh"
	"github.com/gmlewis/strokemesh/polyline"
	"github.com/gmlewis/strokemesh/stl"
)

// Canvas represents an ordered set of strokes.
type Canvas interface {
	Len() int
	Stroke(i int) (*polyline.Polyline, error)
}

// Slice writes a ZIP file containing one STL file per non-empty stroke.
func Slice(zipName string, c Canvas, cfg mesh.Config) error {
	zf, err := os.Create(zipName)
	if err != nil {
		return fmt.Errorf("Create: %v", err)
	}

	log.Printf("Writing: %v", zipName)
	if err := Write(zf, c, cfg); err != nil {
		zf.Close()
		return err
	}

	if err := zf.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP file: %v", err)
	}
	return nil
}

// Write writes a ZIP archive containing one STL file per non-empty
// stroke to w. Entries are named stroke0001.stl, stroke0002.stl, ...
// after the stroke's position on the canvas.
func Write(w io.Writer, c Canvas, cfg mesh.Config) error {
	zp := &zipper{w: zip.NewWriter(w)}
	for i := 0; i < c.Len(); i++ {
		stroke, err := c.Stroke(i)
		if err != nil {
			return err
		}
		g := mesh.Generate(stroke.Vertices(), cfg)
		if g.Empty() {
			continue
		}
		if err := zp.writeSTL(fmt.Sprintf("stroke%04d.stl", i+1), g); err != nil {
			return err
		}
	}

	if err := zp.w.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP writer: %v", err)
	}
	return nil
}

// zipper writes entries to a ZIP archive.
type zipper struct {
	w *zip.Writer
}

func (zp *zipper) create(name, comment string) (io.Writer, error) {
	fh := &zip.FileHeader{
		Name:     name,
		Comment:  comment,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	f, err := zp.w.CreateHeader(fh)
	if err != nil {
		return nil, fmt.Errorf("Unable to create ZIP file %q: %v", name, err)
	}
	return f, nil
}

func (zp *zipper) writeSTL(name string, g *mesh.Geometry) error {
	f, err := zp.create(name, fmt.Sprintf("sections=%v", len(g.Sections)))
	if err != nil {
		return err
	}
	if err := stl.Encode(f, stl.FromGeometry(g)); err != nil {
		return fmt.Errorf("STL encode: %v", err)
	}
	return nil
}
