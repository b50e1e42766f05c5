package shape

import (
	"math"
	"reflect"
	"testing"

	"github.com/ayusman/mudra/internal/touch"
)

// circlePoints samples n points evenly on a circle, closing the path.
func circlePoints(cx, cy, r float64, n int) []touch.Point {
	points := make([]touch.Point, 0, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, touch.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	points = append(points, points[0])
	return points
}

// polygonPoints walks the given vertices with perSide points per edge,
// closing the path back to the first vertex.
func polygonPoints(vertices []touch.Point, perSide int) []touch.Point {
	var points []touch.Point
	for i, v := range vertices {
		next := vertices[(i+1)%len(vertices)]
		for j := 0; j < perSide; j++ {
			t := float64(j) / float64(perSide)
			points = append(points, touch.Point{
				X: v.X + t*(next.X-v.X),
				Y: v.Y + t*(next.Y-v.Y),
			})
		}
	}
	points = append(points, vertices[0])
	return points
}

// linePoints samples n points evenly between two endpoints.
func linePoints(a, b touch.Point, n int) []touch.Point {
	points := make([]touch.Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		points[i] = touch.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
	}
	return points
}

func TestClassifyCircle(t *testing.T) {
	result := Classify(circlePoints(100, 100, 50, 20))

	if result.Shape != ShapeCircle {
		t.Fatalf("shape = %v (confidence %f), want circle", result.Shape, result.Confidence)
	}
	if result.Confidence <= 0.5 {
		t.Errorf("confidence = %f, want > 0.5", result.Confidence)
	}
}

func TestClassifyDegenerateInput(t *testing.T) {
	tests := []struct {
		name   string
		points []touch.Point
	}{
		{"empty", nil},
		{"single point", []touch.Point{{X: 10, Y: 10}}},
		{"two points", []touch.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.points)
			if result.Shape != ShapeUnknown {
				t.Errorf("shape = %v, want unknown", result.Shape)
			}
			if result.Confidence != 0 {
				t.Errorf("confidence = %f, want 0", result.Confidence)
			}
		})
	}
}

func TestClassifyHorizontalLine(t *testing.T) {
	result := Classify(linePoints(touch.Point{X: 0, Y: 100}, touch.Point{X: 300, Y: 100}, 20))

	if result.Shape != ShapeHorizontalLine {
		t.Fatalf("shape = %v, want horizontal_line", result.Shape)
	}
	if result.Confidence <= 0.5 {
		t.Errorf("confidence = %f, want > 0.5", result.Confidence)
	}
}

func TestClassifyVerticalLine(t *testing.T) {
	result := Classify(linePoints(touch.Point{X: 100, Y: 0}, touch.Point{X: 100, Y: 300}, 20))

	if result.Shape != ShapeVerticalLine {
		t.Fatalf("shape = %v, want vertical_line", result.Shape)
	}
}

func TestClassifyDiagonalLine(t *testing.T) {
	result := Classify(linePoints(touch.Point{X: 0, Y: 0}, touch.Point{X: 200, Y: 200}, 20))

	if result.Shape != ShapeLine {
		t.Fatalf("shape = %v, want line", result.Shape)
	}
}

func TestClassifySquare(t *testing.T) {
	square := polygonPoints([]touch.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}, 10)
	result := Classify(square)

	if result.Shape != ShapeSquare {
		t.Fatalf("shape = %v (confidence %f), want square", result.Shape, result.Confidence)
	}
	if result.Confidence <= 0.5 {
		t.Errorf("confidence = %f, want > 0.5", result.Confidence)
	}
}

func TestClassifyRectangle(t *testing.T) {
	rect := polygonPoints([]touch.Point{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 200, Y: 80}, {X: 0, Y: 80}}, 10)
	result := Classify(rect)

	if result.Shape != ShapeRectangle {
		t.Fatalf("shape = %v (confidence %f), want rectangle", result.Shape, result.Confidence)
	}
}

func TestClassifyTriangle(t *testing.T) {
	tri := polygonPoints([]touch.Point{{X: 0, Y: 100}, {X: 100, Y: 100}, {X: 50, Y: 0}}, 10)
	result := Classify(tri)

	if result.Shape != ShapeTriangle {
		t.Fatalf("shape = %v (confidence %f), want triangle", result.Shape, result.Confidence)
	}
}

func TestClassifyCheckmark(t *testing.T) {
	// Down-right then a longer stroke up-right (y grows downward).
	var points []touch.Point
	points = append(points, linePoints(touch.Point{X: 0, Y: 50}, touch.Point{X: 40, Y: 90}, 10)...)
	points = append(points, linePoints(touch.Point{X: 40, Y: 90}, touch.Point{X: 120, Y: 0}, 10)...)
	result := Classify(points)

	if result.Shape != ShapeCheckmark {
		t.Fatalf("shape = %v (confidence %f), want checkmark", result.Shape, result.Confidence)
	}
}

func TestClassifyIsPure(t *testing.T) {
	points := circlePoints(100, 100, 50, 20)

	first := Classify(points)
	second := Classify(points)

	if first.Shape != second.Shape || first.Confidence != second.Confidence {
		t.Errorf("classification not deterministic: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(first.Bounds, second.Bounds) {
		t.Errorf("bounds differ between runs")
	}
}

func TestClassifyBoundsAndPoints(t *testing.T) {
	points := circlePoints(100, 100, 50, 20)
	result := Classify(points)

	if math.Abs(result.Bounds.MinX-50) > 1e-9 || math.Abs(result.Bounds.MaxX-150) > 1e-9 {
		t.Errorf("bounds x = [%f, %f], want [50, 150]", result.Bounds.MinX, result.Bounds.MaxX)
	}
	if len(result.Points) != len(points) {
		t.Errorf("source points length = %d, want %d", len(result.Points), len(points))
	}
}

func TestDetectCornersSquare(t *testing.T) {
	square := polygonPoints([]touch.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}, 10)
	corners := DetectCorners(square, 4)

	if len(corners) != 4 {
		t.Fatalf("corner count = %d, want 4", len(corners))
	}
	for _, c := range corners {
		if math.Abs(c.Angle-math.Pi/2) > 0.2 {
			t.Errorf("corner angle = %f rad, want ~pi/2", c.Angle)
		}
	}
}

func TestDetectCornersCircleHasNone(t *testing.T) {
	corners := DetectCorners(circlePoints(0, 0, 50, 40), 4)
	if len(corners) != 0 {
		t.Errorf("corner count = %d on a circle, want 0", len(corners))
	}
}

func TestDetectCornersDegenerate(t *testing.T) {
	if got := DetectCorners(nil, 4); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := DetectCorners([]touch.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, 4); got != nil {
		t.Errorf("expected nil for tiny input, got %v", got)
	}
}
