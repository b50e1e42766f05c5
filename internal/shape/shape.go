// Package shape provides a stateless geometric classifier that scores a
// captured stroke against canonical shape templates, plus a DTW-based
// matcher for user-registered path templates.
package shape

import "github.com/ayusman/mudra/internal/touch"

// Shape identifies a canonical shape template.
type Shape string

const (
	// ShapeUnknown means no candidate scored above the acceptance threshold.
	ShapeUnknown Shape = "unknown"
	// ShapeCircle is a closed round stroke.
	ShapeCircle Shape = "circle"
	// ShapeLine is a straight stroke with no dominant axis.
	ShapeLine Shape = "line"
	// ShapeHorizontalLine is a straight stroke dominated by the x axis.
	ShapeHorizontalLine Shape = "horizontal_line"
	// ShapeVerticalLine is a straight stroke dominated by the y axis.
	ShapeVerticalLine Shape = "vertical_line"
	// ShapeSquare is a closed four-corner stroke with near-equal sides.
	ShapeSquare Shape = "square"
	// ShapeRectangle is a closed four-corner stroke.
	ShapeRectangle Shape = "rectangle"
	// ShapeTriangle is a closed three-corner stroke.
	ShapeTriangle Shape = "triangle"
	// ShapeCheckmark is a down-right then up-right stroke.
	ShapeCheckmark Shape = "checkmark"
	// ShapeCross is two roughly perpendicular strokes.
	ShapeCross Shape = "cross"
)

// Result is the outcome of classifying one completed stroke.
type Result struct {
	Shape      Shape         `json:"shape"`
	Confidence float64       `json:"confidence"`
	Bounds     touch.Rect    `json:"bounds"`
	Points     []touch.Point `json:"points"`
}

// Classification tuning constants. The acceptance threshold and the
// square aspect tolerance are inherited tuning values with no deeper
// rationale; they are exported so hosts can consult them.
const (
	// AcceptThreshold is the minimum confidence for a non-unknown result.
	AcceptThreshold = 0.5
	// SquareAspectTolerance is how far the bounding-box aspect ratio may
	// deviate from 1:1 while still classifying as a square.
	SquareAspectTolerance = 0.2
)

const (
	// closureTolerance is the maximum start/end separation for a closed
	// path, as a fraction of the bounding-box diagonal.
	closureTolerance = 0.3
	// lineDominanceRatio is the axis-dominance ratio for classifying a
	// line as horizontal or vertical (2:1 rule).
	lineDominanceRatio = 2.0
)
