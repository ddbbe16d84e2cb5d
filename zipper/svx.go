package zipper

import (
	"archive/zip"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/gmlewis/strokemesh/binvox"
)

// SVXSlice voxelizes each stroke as a tube of the given radius and writes
// one SVX file (a ZIP of PNG density slices plus a manifest) per stroke.
func SVXSlice(baseFilename string, c Canvas, radius, voxelSize float64) error {
	for i := 0; i < c.Len(); i++ {
		stroke, err := c.Stroke(i)
		if err != nil {
			return err
		}
		g, err := binvox.Voxelize(stroke.Vertices(), radius, voxelSize)
		if err != nil {
			return fmt.Errorf("stroke #%v: %w", i+1, err)
		}
		if g == nil {
			continue
		}

		filename := fmt.Sprintf("%v-stroke%02d.svx", baseFilename, i+1)
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("Create: %v", err)
		}
		log.Printf("Writing: %v", filename)
		if err := WriteSVX(f, g); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("Unable to close SVX file: %v", err)
		}
	}
	return nil
}

// WriteSVX writes g to w in the SVX format.
func WriteSVX(w io.Writer, g *binvox.Grid) error {
	zp := &zipper{w: zip.NewWriter(w)}
	if err := zp.writeManifest(g); err != nil {
		return err
	}

	slices := make([]*image.Gray, g.NZ)
	for z := range slices {
		slices[z] = image.NewGray(image.Rect(0, 0, g.NX, g.NY))
	}
	for _, v := range g.Voxels {
		slices[v[2]].SetGray(v[0], v[1], color.Gray{Y: 255})
	}

	for z, img := range slices {
		f, err := zp.create(fmt.Sprintf("density/slice%04d.png", z), "")
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("PNG encode: %v", err)
		}
	}

	if err := zp.w.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP writer: %v", err)
	}
	return nil
}

func (zp *zipper) writeManifest(g *binvox.Grid) error {
	f, err := zp.create("manifest.xml", "")
	if err != nil {
		return err
	}

	fmt.Fprintf(f, manifestFmt,
		g.NX,
		g.NY,
		g.NZ,
		g.VoxelSize, // already in meters
		time.Now().Format("2006-01-02"))
	return nil
}

var manifestFmt = `<?xml version="1.0"?>

<grid version="1.0" gridSizeX="%v" gridSizeY="%v" gridSizeZ="%v"
   voxelSize="%v" subvoxelBits="8" slicesOrientation="Z" >

    <channels>
        <channel type="DENSITY" bits="8" slices="density/slice%%04d.png" />
    </channels>

    <materials>
        <material id="1" urn="urn:shapeways:materials/1" />
    </materials>

    <metadata>
        <entry key="creationDate" value=%q />
    </metadata>
</grid>`
