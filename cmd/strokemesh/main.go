// strokemesh converts one or more YAML stroke files into meshes.
//
// It writes an STL file of the whole drawing, a ZIP of one STL per stroke,
// binvox or SVX voxel files (one per stroke), or any combination.
//
// Settings are read from strokemesh.yaml in the current directory (or the
// file named by -config) and may be overridden with flags.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/gmlewis/strokemesh/binvox"
	"github.com/gmlewis/strokemesh/canvas"
	"github.com/gmlewis/strokemesh/config"
	"github.com/gmlewis/strokemesh/mesh"
	"github.com/gmlewis/strokemesh/stl"
	"github.com/gmlewis/strokemesh/zipper"
)

var (
	configFile = flag.String("config", config.DefaultFilename, "YAML settings file")
	radius     = flag.Float64("radius", 0, "Tube radius in meters (default from config: 0.001)")
	segments   = flag.Int("segments", 0, "Sides of each cross-section (default from config: 9)")
	strategy   = flag.String("strategy", "", "Mesh strategy: tube or cylinders (default from config: tube)")
	smoothing  = flag.Int("smooth", -1, "Spline samples per control point, 0 disables (default from config)")
	voxelSize  = flag.Float64("voxel", 0, "Voxel size in meters for -binvox and -svx (default from config)")

	writeBinvox = flag.Bool("binvox", false, "Write binvox files, one per stroke")
	writeSTL    = flag.Bool("stl", false, "Write one stl file per input")
	writeSVX    = flag.Bool("svx", false, "Write svx voxel files, one per stroke")
	writeZip    = flag.Bool("zip", false, "Write zip files containing one stl per stroke")
)

func main() {
	flag.Parse()

	if !*writeBinvox && !*writeSTL && !*writeSVX && !*writeZip {
		log.Printf("-binvox, -stl, -svx, or -zip must be supplied to generate output. Validating stroke files only.")
	}

	cfg, err := config.Load(*configFile)
	check("config.Load: %v", err)
	applyFlags(cfg)
	check("config: %v", cfg.Validate())

	meshCfg, err := cfg.Mesh()
	check("config: %v", err)
	log.Printf("Stroke: strategy=%v radius=%v segments=%v smoothing=%v", meshCfg.Kind, meshCfg.Radius, meshCfg.Segments, meshCfg.Smoothing)

	for _, arg := range flag.Args() {
		if !strings.HasSuffix(arg, ".yaml") && !strings.HasSuffix(arg, ".yml") {
			log.Printf("Skipping non-YAML file %q", arg)
			continue
		}

		log.Printf("Processing strokes %q...", arg)
		buf, err := os.ReadFile(arg)
		check("ReadFile: %v", err)

		c, err := canvas.Unmarshal(buf)
		check("%v: %v", arg, err)

		baseName := strings.TrimSuffix(strings.TrimSuffix(arg, ".yaml"), ".yml")

		if *writeBinvox {
			log.Printf("Voxelizing %v strokes into separate binvox files...", c.Len())
			err = binvox.Slice(baseName, c, meshCfg.Radius, cfg.Export.VoxelSize)
			check("binvox.Slice: %v", err)
		}

		if *writeSTL {
			err = writeCanvasSTL(baseName+".stl", c, meshCfg)
			check("stl: %v", err)
		}

		if *writeSVX {
			log.Printf("Voxelizing %v strokes into separate SVX files...", c.Len())
			err = zipper.SVXSlice(baseName, c, meshCfg.Radius, cfg.Export.VoxelSize)
			check("zipper.SVXSlice: %v", err)
		}

		if *writeZip {
			log.Printf("Meshing %v strokes into a ZIP file...", c.Len())
			err = zipper.Slice(baseName+".zip", c, meshCfg)
			check("zipper.Slice: %v", err)
		}
	}

	log.Println("Done.")
}

func applyFlags(cfg *config.Config) {
	if *radius > 0 {
		cfg.Stroke.Radius = *radius
	}
	if *segments > 0 {
		cfg.Stroke.Segments = *segments
	}
	if *strategy != "" {
		cfg.Stroke.Strategy = *strategy
	}
	if *smoothing >= 0 {
		cfg.Stroke.Smoothing = *smoothing
	}
	if *voxelSize > 0 {
		cfg.Export.VoxelSize = *voxelSize
	}
}

func writeCanvasSTL(filename string, c *canvas.Canvas, cfg mesh.Config) error {
	w, err := stl.New(filename)
	if err != nil {
		return err
	}
	log.Printf("Writing: %v", filename)
	n, err := stl.WriteGeometry(w, c.Geometry(cfg)...)
	if err != nil {
		w.Close()
		return err
	}
	log.Printf("Wrote %v triangles", n)
	return w.Close()
}

func check(fmtStr string, args ...interface{}) {
	err := args[len(args)-1]
	if err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
