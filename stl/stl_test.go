package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/mesh"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name string
		tris []Tri
	}{
		{
			name: "no triangles",
		},
		{
			name: "one triangle",
			tris: []Tri{{N: [3]float32{0, 0, 1}, V2: [3]float32{1, 0, 0}, V3: [3]float32{0, 1, 0}}},
		},
		{
			name: "stroke",
			tris: FromGeometry(mesh.Generate([]geom.Point3{{0, 0, 0}, {0.01, 0, 0}}, mesh.DefaultConfig())),
		},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			out := &fakeFile{}
			ch := make(chan Tri, bufSize)
			c := &Client{ch: ch}
			c.start(out)

			for i, tri := range tt.tris {
				if err := c.Write(&tri); err != nil {
					t.Fatalf("c.Write: i=%v, %v", i, err)
				}
			}
			if err := c.Close(); err != nil {
				t.Fatalf("c.Close: %v", err)
			}

			if out.closes != 1 {
				t.Errorf("expected 1 close, got %v", out.closes)
			}
			if out.seeks != 1 {
				t.Errorf("expected 1 seek, got %v", out.seeks)
			}
			if out.writes != len(tt.tris)+1 { // +1 for the final count
				t.Errorf("expected %v writes, got %v", len(tt.tris)+1, out.writes)
			}
		})
	}
}

func TestWriterError(t *testing.T) {
	out := &fakeFile{failWrites: true}
	c := &Client{ch: make(chan Tri, 1)}
	c.start(out)

	tri := Tri{}
	for i := 0; i < 5; i++ {
		c.Write(&tri) // must not block once the writer has failed
	}
	if err := c.Close(); err == nil {
		t.Fatal("c.Close succeeded, want write error")
	}
	if out.closes != 1 {
		t.Errorf("expected 1 close, got %v", out.closes)
	}
}

func TestEncode(t *testing.T) {
	g := mesh.Generate([]geom.Point3{{0, 0, 0}, {0.01, 0.01, 0}, {0.02, 0, 0}}, mesh.DefaultConfig())
	tris := FromGeometry(g)
	if len(tris) == 0 {
		t.Fatal("FromGeometry returned no triangles")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, tris); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if want := headerSize + 4 + 50*len(tris); buf.Len() != want {
		t.Errorf("Encode wrote %v bytes, want %v", buf.Len(), want)
	}
	count := binary.LittleEndian.Uint32(buf.Bytes()[headerSize:])
	if int(count) != len(tris) {
		t.Errorf("triangle count = %v, want %v", count, len(tris))
	}
}

func TestWriteGeometry(t *testing.T) {
	points := []geom.Point3{{0, 0, 0}, {0, 0, 0.01}}
	cfg := mesh.DefaultConfig()
	cfg.Kind = mesh.DiscreteCylinders

	w := &fakeTriWriter{}
	n, err := WriteGeometry(w, mesh.Generate(points, cfg), mesh.Generate(points[:1], cfg))
	if err != nil {
		t.Fatalf("WriteGeometry: %v", err)
	}
	if want := 4 * cfg.Segments; n != want || len(w.tris) != want {
		t.Errorf("WriteGeometry wrote %v (%v recorded), want %v", n, len(w.tris), want)
	}

	w = &fakeTriWriter{failAfter: 3}
	if n, err := WriteGeometry(w, mesh.Generate(points, cfg)); err == nil || n != 3 {
		t.Errorf("WriteGeometry = %v, %v, want 3 and an error", n, err)
	}
}

type fakeTriWriter struct {
	tris      []Tri
	failAfter int
}

func (f *fakeTriWriter) Write(t *Tri) error {
	if f.failAfter > 0 && len(f.tris) == f.failAfter {
		return errors.New("full")
	}
	f.tris = append(f.tris, *t)
	return nil
}

type fakeFile struct {
	closes     int
	seeks      int
	writes     int
	failWrites bool
}

func (f *fakeFile) Close() error {
	f.closes++
	return nil
}

func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	f.seeks++
	return 0, nil
}

func (f *fakeFile) Write(p []byte) (n int, err error) {
	f.writes++
	if f.failWrites {
		return 0, errors.New("disk full")
	}
	return len(p), nil
}
