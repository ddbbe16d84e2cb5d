package polyline

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/gmlewis/strokemesh/geom"
	"github.com/google/go-cmp/cmp"
)

func collect(p *Polyline) []Segment {
	var got []Segment
	for seg := range p.Segments() {
		got = append(got, seg)
	}
	return got
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name     string
		vertices []geom.Point3
		want     []Segment
	}{
		{
			name: "empty",
		},
		{
			name:     "single vertex",
			vertices: []geom.Point3{{1, 2, 3}},
		},
		{
			name:     "three vertices",
			vertices: []geom.Point3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
			want: []Segment{
				{U: geom.Point3{0, 0, 0}, V: geom.Point3{1, 0, 0}},
				{U: geom.Point3{1, 0, 0}, V: geom.Point3{2, 0, 0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			for _, v := range tt.vertices {
				p.Add(v)
			}

			got := collect(p)
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("Segments mismatch (-want +got):\n%v", d)
			}
			if want := max(0, len(tt.vertices)-1); len(got) != want || p.NumSegments() != want {
				t.Errorf("got %v segments (NumSegments=%v), want %v", len(got), p.NumSegments(), want)
			}

			// Restartable.
			if d := cmp.Diff(got, collect(p)); d != "" {
				t.Errorf("second iteration differs:\n%v", d)
			}
		})
	}
}

func TestSegmentsEarlyBreak(t *testing.T) {
	p := New(geom.Point3{0, 0, 0}, geom.Point3{1, 0, 0}, geom.Point3{2, 0, 0}, geom.Point3{3, 0, 0})
	var n int
	for range p.Segments() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %v segments, want 2", n)
	}
}

func TestRemoveLast(t *testing.T) {
	p := New()
	if _, err := p.RemoveLast(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("RemoveLast on empty = %v, want ErrEmpty", err)
	}
	if p.Len() != 0 {
		t.Fatalf("Len = %v after failed RemoveLast", p.Len())
	}

	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("n=%v", n), func(t *testing.T) {
			p := New()
			for i := 0; i < n; i++ {
				p.Add(geom.Point3{float64(i), 0, 0})
			}
			x := geom.Point3{9, 9, 9}

			last, err := p.RemoveLast()
			if err != nil {
				t.Fatalf("RemoveLast: %v", err)
			}
			if want := (geom.Point3{float64(n - 1), 0, 0}); last != want {
				t.Errorf("RemoveLast = %v, want %v", last, want)
			}
			p.Add(x)

			if p.Len() != n {
				t.Errorf("Len = %v, want %v", p.Len(), n)
			}
			if got, ok := p.Last(); !ok || got != x {
				t.Errorf("Last = %v, %v, want %v", got, ok, x)
			}
		})
	}
}

func TestLastSegment(t *testing.T) {
	p := New(geom.Point3{1, 1, 1})
	if _, ok := p.LastSegment(); ok {
		t.Fatal("LastSegment ok with one vertex")
	}
	p.Add(geom.Point3{2, 2, 2})
	p.Add(geom.Point3{3, 3, 3})
	seg, ok := p.LastSegment()
	if !ok {
		t.Fatal("LastSegment not ok with three vertices")
	}
	want := Segment{U: geom.Point3{2, 2, 2}, V: geom.Point3{3, 3, 3}}
	if seg != want {
		t.Errorf("LastSegment = %v, want %v", seg, want)
	}
}

func TestNewCopies(t *testing.T) {
	in := []geom.Point3{{1, 0, 0}, {2, 0, 0}}
	p := New(in...)
	in[0] = geom.Point3{7, 7, 7}
	if got := p.At(0); got != (geom.Point3{1, 0, 0}) {
		t.Errorf("At(0) = %v, caller mutation leaked", got)
	}
	out := p.Vertices()
	out[1] = geom.Point3{7, 7, 7}
	if got := p.At(1); got != (geom.Point3{2, 0, 0}) {
		t.Errorf("At(1) = %v, Vertices mutation leaked", got)
	}
}

func TestFromGenerator(t *testing.T) {
	p := FromGenerator(func(v float64) geom.Point3 { return geom.Point3{v, v * v, 0} }, []float64{0, 1, 2})
	want := []geom.Point3{{0, 0, 0}, {1, 1, 0}, {2, 4, 0}}
	if d := cmp.Diff(want, p.Vertices()); d != "" {
		t.Errorf("FromGenerator mismatch (-want +got):\n%v", d)
	}
	if got, want := p.Length(), 1+math.Sqrt(1+9); math.Abs(got-want) > 1e-12 {
		t.Errorf("Length = %v, want %v", got, want)
	}
	if got := p.String(); got != "[(0,0,0) (1,1,0) (2,4,0)]" {
		t.Errorf("String = %q", got)
	}
}
