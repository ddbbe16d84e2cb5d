// Package stl provides binary STL writers for stroke geometry.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/gmlewis/strokemesh/mesh"
)

const (
	headerSize = 80
	bufSize    = 10000
)

// Client is a streaming binary STL file writer client.
type Client struct {
	wg sync.WaitGroup // ensures file is closed
	ch chan Tri

	mu  sync.RWMutex
	err error
}

// Tri represents an STL triangle.
type Tri struct {
	// Normal plus three vertex triplets: [3]float{x,y,z}
	N, V1, V2, V3 [3]float32
	_             uint16 // unused attribute byte count
}

// TriWriter is a writer that accepts STL triangles.
type TriWriter interface {
	Write(t *Tri) error
}

var _ TriWriter = &Client{}

// New creates a new streaming binary STL file writer.
func New(filename string) (*Client, error) {
	out, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	if err := writeHeader(out, 0); err != nil {
		out.Close()
		return nil, err
	}

	c := &Client{
		ch: make(chan Tri, bufSize),
	}
	c.start(out)
	return c, nil
}

func (c *Client) start(out writeSeekCloser) {
	c.wg.Add(1)
	go func() {
		err := writer(out, c.ch)
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		c.wg.Done()
	}()
}

// Write writes a triangle to the STL file.
func (c *Client) Write(t *Tri) error {
	c.ch <- *t
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Close finalizes the STL file.
func (c *Client) Close() error {
	close(c.ch)
	c.wg.Wait()
	return c.err
}

type writeSeekCloser interface {
	io.Writer
	io.Seeker
	io.Closer
}

func writer(out writeSeekCloser, ch <-chan Tri) error {
	var count uint32
	for t := range ch {
		if err := binary.Write(out, binary.LittleEndian, &t); err != nil {
			for range ch { // drain so Write never blocks
			}
			out.Close()
			return fmt.Errorf("write triangle %#v: %v", t, err)
		}
		count++
	}

	if _, err := out.Seek(headerSize, io.SeekStart); err != nil {
		out.Close()
		return fmt.Errorf("seek: %v", err)
	}

	if err := binary.Write(out, binary.LittleEndian, &count); err != nil {
		out.Close()
		return fmt.Errorf("write count %v: %v", count, err)
	}

	return out.Close()
}

func writeHeader(w io.Writer, count uint32) error {
	header := struct {
		_     [headerSize]uint8
		Count uint32
	}{Count: count}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("error writing header: %v", err)
	}
	return nil
}

// Encode writes a complete binary STL file containing tris to w.
func Encode(w io.Writer, tris []Tri) error {
	if err := writeHeader(w, uint32(len(tris))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, tris); err != nil {
		return fmt.Errorf("write triangles: %v", err)
	}
	return nil
}

// FromGeometry tessellates geometries into STL triangles.
func FromGeometry(geoms ...*mesh.Geometry) []Tri {
	var out []Tri
	for _, g := range geoms {
		for _, t := range g.Triangles() {
			out = append(out, Tri{N: vec(t.N), V1: vec(t.V1), V2: vec(t.V2), V3: vec(t.V3)})
		}
	}
	return out
}

// WriteGeometry tessellates geometries and writes every triangle to w.
// It returns the number of triangles written.
func WriteGeometry(w TriWriter, geoms ...*mesh.Geometry) (int, error) {
	tris := FromGeometry(geoms...)
	for i := range tris {
		if err := w.Write(&tris[i]); err != nil {
			return i, err
		}
	}
	return len(tris), nil
}

func vec(p geom.Point3) [3]float32 {
	return [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
}
