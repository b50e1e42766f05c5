package recognizer

import "math"

// Direction is a swipe/drag direction bucketed into 8 sectors.
// Up means decreasing y (screen coordinates).
type Direction int

const (
	// DirectionNone means no displacement.
	DirectionNone Direction = iota
	// DirectionRight is increasing x.
	DirectionRight
	// DirectionLeft is decreasing x.
	DirectionLeft
	// DirectionUp is decreasing y.
	DirectionUp
	// DirectionDown is increasing y.
	DirectionDown
	// DirectionUpRight is the diagonal toward +x, -y.
	DirectionUpRight
	// DirectionUpLeft is the diagonal toward -x, -y.
	DirectionUpLeft
	// DirectionDownRight is the diagonal toward +x, +y.
	DirectionDownRight
	// DirectionDownLeft is the diagonal toward -x, +y.
	DirectionDownLeft
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionUpRight:
		return "up_right"
	case DirectionUpLeft:
		return "up_left"
	case DirectionDownRight:
		return "down_right"
	case DirectionDownLeft:
		return "down_left"
	default:
		return "none"
	}
}

// DefaultDiagonalTolerance is the relative tolerance for classifying a
// displacement as diagonal: the two axis magnitudes must differ by less
// than this fraction of the larger one. The value is a tuning constant
// with no deeper rationale; override it per recognizer via configuration.
const DefaultDiagonalTolerance = 0.5

// ResolveDirection buckets a displacement vector into one of 8 sectors.
// A displacement is diagonal when |dx| and |dy| are within tolerance of
// each other; otherwise the dominant axis wins.
func ResolveDirection(dx, dy, tolerance float64) Direction {
	ax := math.Abs(dx)
	ay := math.Abs(dy)
	if ax == 0 && ay == 0 {
		return DirectionNone
	}

	if tolerance <= 0 {
		tolerance = DefaultDiagonalTolerance
	}

	if math.Abs(ax-ay) <= tolerance*math.Max(ax, ay) {
		switch {
		case dx >= 0 && dy < 0:
			return DirectionUpRight
		case dx < 0 && dy < 0:
			return DirectionUpLeft
		case dx >= 0 && dy >= 0:
			return DirectionDownRight
		default:
			return DirectionDownLeft
		}
	}

	if ax > ay {
		if dx > 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	if dy > 0 {
		return DirectionDown
	}
	return DirectionUp
}
