package zipper

import (
	"archive/zip"
	"bytes"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/gmlewis/strokemesh/binvox"
	"github.com/gmlewis/strokemesh/canvas"
	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/mesh"
	"github.com/google/go-cmp/cmp"
)

func readZip(t *testing.T, buf []byte) *zip.Reader {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	return r
}

func TestWrite(t *testing.T) {
	c := canvas.New(
		[]geom.Point3{{0, 0, 0}, {0.01, 0, 0}},
		[]geom.Point3{{1, 1, 1}},
		[]geom.Point3{{0, 0, 0}, {0, 0.01, 0}, {0.01, 0.01, 0}},
	)
	cfg := mesh.DefaultConfig()

	var buf bytes.Buffer
	if err := Write(&buf, c, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r := readZip(t, buf.Bytes())
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	if d := cmp.Diff([]string{"stroke0001.stl", "stroke0003.stl"}, names); d != "" {
		t.Errorf("entries mismatch (-want +got):\n%v", d)
	}

	f, err := r.File[1].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	// 2 sections: 2*2*9 side triangles plus 2*9 cap triangles.
	if want := 80 + 4 + 50*(4*9+2*9); len(data) != want {
		t.Errorf("stroke0003.stl has %v bytes, want %v", len(data), want)
	}
}

func TestWriteSVX(t *testing.T) {
	g, err := binvox.Voxelize([]geom.Point3{{0, 0, 0}, {10, 0, 0}}, 1, 1)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSVX(&buf, g); err != nil {
		t.Fatalf("WriteSVX: %v", err)
	}

	r := readZip(t, buf.Bytes())
	if want := 1 + g.NZ; len(r.File) != want {
		t.Fatalf("got %v entries, want %v", len(r.File), want)
	}
	if r.File[0].Name != "manifest.xml" {
		t.Fatalf("first entry = %q, want manifest.xml", r.File[0].Name)
	}

	mf, err := r.File[0].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	manifest, err := io.ReadAll(mf)
	mf.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !strings.Contains(string(manifest), `gridSizeX="12" gridSizeY="2" gridSizeZ="2"`) {
		t.Errorf("unexpected manifest:\n%s", manifest)
	}

	sf, err := r.File[1].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sf.Close()
	img, err := png.Decode(sf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 2 {
		t.Errorf("slice bounds = %v, want 12x2", b)
	}
	if r, _, _, _ := img.At(5, 1).RGBA(); r == 0 {
		t.Error("voxel (5,1,0) not filled")
	}
}
