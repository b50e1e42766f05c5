package shape

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/mudra/internal/touch"
)

// Classify scores a completed stroke against the canonical shape templates
// and returns the best match. Degenerate input (fewer than 3 points)
// returns ShapeUnknown with confidence 0. Classify is a pure function: the
// same point sequence always yields the same result.
func Classify(points []touch.Point) Result {
	bounds := touch.BoundingBox(points)
	result := Result{
		Shape:  ShapeUnknown,
		Bounds: bounds,
		Points: points,
	}

	if len(points) < 3 {
		return result
	}

	norm := normalize(points, bounds)

	type candidate struct {
		shape      Shape
		confidence float64
	}

	candidates := []candidate{}
	add := func(shape Shape, conf float64) {
		candidates = append(candidates, candidate{shape: shape, confidence: conf})
	}

	add(ShapeCircle, scoreCircle(norm))

	lineShape, lineConf := scoreLine(norm, bounds)
	add(lineShape, lineConf)

	rectShape, rectConf := scoreRectangle(norm, bounds)
	add(rectShape, rectConf)

	add(ShapeTriangle, scoreTriangle(norm))
	add(ShapeCheckmark, scoreCheckmark(points))
	add(ShapeCross, scoreCross(norm))

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.confidence > best.confidence {
			best = c
		}
	}

	if best.confidence < AcceptThreshold {
		return result
	}

	result.Shape = best.shape
	result.Confidence = best.confidence
	return result
}

// normalize maps points into the unit box. A degenerate bounding box
// (zero width or height) returns the raw points unmodified.
func normalize(points []touch.Point, bounds touch.Rect) []touch.Point {
	w := bounds.Width()
	h := bounds.Height()
	if w <= 0 || h <= 0 {
		return points
	}

	norm := make([]touch.Point, len(points))
	for i, p := range points {
		norm[i] = touch.Point{
			X: (p.X - bounds.MinX) / w,
			Y: (p.Y - bounds.MinY) / h,
		}
	}
	return norm
}

// isClosed reports whether the path's start and end are close relative to
// its bounding-box diagonal.
func isClosed(points []touch.Point) bool {
	if len(points) < 2 {
		return false
	}
	diag := touch.BoundingBox(points).Diagonal()
	if diag <= 0 {
		return false
	}
	return points[0].Distance(points[len(points)-1]) <= closureTolerance*diag
}

// scoreCircle scores roundness: low variance of the radial distance from
// the centroid. An open path is penalized rather than rejected.
func scoreCircle(points []touch.Point) float64 {
	center := touch.Centroid(points)

	radii := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Distance(center)
	}

	mean, std := stat.MeanStdDev(radii, nil)
	if mean <= 0 {
		return 0
	}

	conf := 1 - std/mean
	if conf < 0 {
		conf = 0
	}
	if !isClosed(points) {
		conf *= 0.5
	}
	return conf
}

// scoreLine scores straightness as the average perpendicular deviation of
// all points from the start-to-end chord, normalized by chord length. The
// bounding box of the raw stroke decides the axis-aligned sub-type by the
// 2:1 dominance rule.
func scoreLine(points []touch.Point, rawBounds touch.Rect) (Shape, float64) {
	start := points[0]
	end := points[len(points)-1]
	chord := start.Distance(end)
	if chord <= 0 {
		return ShapeLine, 0
	}

	devs := make([]float64, len(points))
	for i, p := range points {
		devs[i] = perpendicularDistance(p, start, end)
	}
	avgDev := stat.Mean(devs, nil)

	conf := 1 - math.Min(1, (avgDev/chord)*5)

	shape := ShapeLine
	dx := rawBounds.Width()
	dy := rawBounds.Height()
	switch {
	case dx >= lineDominanceRatio*dy:
		shape = ShapeHorizontalLine
	case dy >= lineDominanceRatio*dx:
		shape = ShapeVerticalLine
	}
	return shape, conf
}

// perpendicularDistance returns the distance from p to the infinite line
// through a and b.
func perpendicularDistance(p, a, b touch.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length <= 0 {
		return p.Distance(a)
	}
	return math.Abs(dx*(a.Y-p.Y)-dy*(a.X-p.X)) / length
}

// scoreRectangle requires a closed path with at least four detected
// corners and scores how close each corner's interior angle is to 90
// degrees. The raw bounding-box aspect ratio distinguishes squares from
// rectangles.
func scoreRectangle(points []touch.Point, rawBounds touch.Rect) (Shape, float64) {
	if !isClosed(points) {
		return ShapeRectangle, 0
	}

	corners := DetectCorners(points, 4)
	if len(corners) < 4 {
		return ShapeRectangle, 0
	}

	var score float64
	for _, c := range corners {
		dev := math.Abs(c.Angle-math.Pi/2) / (math.Pi / 2)
		score += 1 - math.Min(1, dev)
	}
	score /= float64(len(corners))

	shape := ShapeRectangle
	if w, h := rawBounds.Width(), rawBounds.Height(); w > 0 && h > 0 {
		aspect := w / h
		if aspect >= 1-SquareAspectTolerance && aspect <= 1+SquareAspectTolerance {
			shape = ShapeSquare
		}
	}
	return shape, score
}

// triangleConfidence is the fixed score once a stroke passes the triangle
// geometry criteria; corner angles are not scored more finely.
const triangleConfidence = 0.75

// scoreTriangle requires a closed path with exactly three detected corners.
func scoreTriangle(points []touch.Point) float64 {
	if !isClosed(points) {
		return 0
	}
	corners := DetectCorners(points, 4)
	if len(corners) != 3 {
		return 0
	}
	return triangleConfidence
}

// checkmarkConfidence is the fixed score for a stroke whose first half
// heads down-right and second half heads up-right.
const checkmarkConfidence = 0.7

// scoreCheckmark splits the raw path into two equal-length halves and
// confirms the first heads down-right and the second up-right (screen
// coordinates, y grows downward).
func scoreCheckmark(points []touch.Point) float64 {
	if len(points) < 4 {
		return 0
	}

	mid := len(points) / 2
	first := points[mid].Sub(points[0])
	second := points[len(points)-1].Sub(points[mid])

	if first.X > 0 && first.Y > 0 && second.X > 0 && second.Y < 0 {
		return checkmarkConfidence
	}
	return 0
}

// crossConfidence is deliberately weak: the heuristic below cannot
// distinguish a cross from many other two-segment strokes, so it only
// wins when nothing else scores.
const crossConfidence = 0.4

// scoreCross is a placeholder heuristic: an open stroke whose two halves
// run roughly perpendicular to each other.
func scoreCross(points []touch.Point) float64 {
	if len(points) < 4 || isClosed(points) {
		return 0
	}

	mid := len(points) / 2
	first := points[mid].Sub(points[0])
	second := points[len(points)-1].Sub(points[mid])

	l1 := first.Length()
	l2 := second.Length()
	if l1 <= 0 || l2 <= 0 {
		return 0
	}

	cos := (first.X*second.X + first.Y*second.Y) / (l1 * l2)
	if math.Abs(cos) < 0.3 {
		return crossConfidence
	}
	return 0
}

// vertexAngle returns the angle at b formed by segments b-a and b-c,
// via the law of cosines.
func vertexAngle(a, b, c touch.Point) float64 {
	ab := a.Distance(b)
	cb := c.Distance(b)
	ac := a.Distance(c)
	if ab <= 0 || cb <= 0 {
		return 0
	}
	cos := (ab*ab + cb*cb - ac*ac) / (2 * ab * cb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}
