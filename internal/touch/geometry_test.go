package touch

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Distance(tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point{{10, 20}, {30, 5}, {-2, 15}}
	box := BoundingBox(points)

	if box.MinX != -2 || box.MaxX != 30 {
		t.Errorf("x range = [%f, %f], want [-2, 30]", box.MinX, box.MaxX)
	}
	if box.MinY != 5 || box.MaxY != 20 {
		t.Errorf("y range = [%f, %f], want [5, 20]", box.MinY, box.MaxY)
	}
	if box.Width() != 32 || box.Height() != 15 {
		t.Errorf("size = %fx%f, want 32x15", box.Width(), box.Height())
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	box := BoundingBox(nil)
	if box != (Rect{}) {
		t.Errorf("expected zero rect for empty input, got %+v", box)
	}
}

func TestCentroid(t *testing.T) {
	points := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	c := Centroid(points)
	if c.X != 5 || c.Y != 5 {
		t.Errorf("centroid = %v, want (5, 5)", c)
	}
}

func TestPathLength(t *testing.T) {
	points := []Point{{0, 0}, {3, 4}, {3, 10}}
	got := PathLength(points)
	if math.Abs(got-11) > 1e-9 {
		t.Errorf("PathLength = %f, want 11", got)
	}

	if PathLength([]Point{{1, 1}}) != 0 {
		t.Error("single point path should have zero length")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	if !r.Contains(Point{5, 5}) {
		t.Error("expected interior point to be contained")
	}
	if !r.Contains(Point{0, 10}) {
		t.Error("expected edge point to be contained")
	}
	if r.Contains(Point{11, 5}) {
		t.Error("expected exterior point to not be contained")
	}
}

func TestNewSampleDefaults(t *testing.T) {
	s := NewSample(10, 20, 1.5, PhaseStart)

	if s.Pressure != 1.0 {
		t.Errorf("default pressure = %f, want 1.0", s.Pressure)
	}
	if s.Kind != PointerFinger {
		t.Errorf("default kind = %v, want finger", s.Kind)
	}
	if s.Contact != 0 {
		t.Errorf("default contact = %d, want 0", s.Contact)
	}
}
