// -*- compile-command: "go run main.go"; -*-

// test-strokes simulates a device tracing a helix and writes the live
// incremental segments to helix.stl and the recorded strokes to helix.yaml.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/gmlewis/strokemesh/canvas"
	"github.com/gmlewis/strokemesh/mesh"
	"github.com/gmlewis/strokemesh/stl"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	samples = flag.Int("n", 600, "Number of simulated tracking updates")
	turns   = flag.Float64("turns", 3, "Number of helix turns")
)

func main() {
	flag.Parse()

	w, err := stl.New("helix.stl")
	check("stl.New: %v", err)

	cfg := mesh.DefaultConfig()
	c := canvas.New()
	s := canvas.NewSession(c, canvas.SessionOptions{Mesh: cfg})

	var segments int
	s.Begin()
	for i := 0; i < *samples; i++ {
		a := 2 * math.Pi * *turns * float64(i) / float64(*samples)
		camera := mgl64.Translate3D(0.05*math.Cos(a), 0.02*a, 0.05*math.Sin(a)).Mul4(mgl64.HomogRotate3DY(-a))
		g, ok := s.Track(camera)
		if !ok {
			continue
		}
		_, err := stl.WriteGeometry(w, g)
		check("stl.WriteGeometry: %v", err)
		segments++
	}
	s.End()
	check("Close: %v", w.Close())
	log.Printf("Wrote %v segments to helix.stl", segments)

	buf, err := c.Marshal()
	check("Marshal: %v", err)
	check("WriteFile: %v", os.WriteFile("helix.yaml", buf, 0644))

	log.Printf("Done.")
}

func check(fmtStr string, args ...interface{}) {
	if err := args[len(args)-1]; err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
