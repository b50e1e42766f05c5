package shape

import (
	"math"
	"sort"

	"github.com/ayusman/mudra/internal/touch"
)

// Corner is one high-curvature point found on a stroke.
type Corner struct {
	// Index is the point's position in the source path.
	Index int
	// Point is the corner location.
	Point touch.Point
	// Angle is the interior angle at the corner in radians, measured
	// between the window-neighbor vectors.
	Angle float64
}

// Corner detection tuning constants.
const (
	// cornerWindowFraction sizes the sliding window as a fraction of the
	// point count (minimum window of 2).
	cornerWindowFraction = 0.1
	// minCornerTurn is the minimum turning angle (pi minus the interior
	// angle) for a point to count as a corner candidate.
	minCornerTurn = math.Pi / 3
	// cornerSeparationFraction is the minimum distance between selected
	// corners as a fraction of the bounding-box diagonal.
	cornerSeparationFraction = 0.25
)

// DetectCorners finds up to maxCorners high-curvature points on a stroke.
//
// Each interior point's turning angle is measured via the law of cosines on
// the vectors to its window neighbors; the highest-curvature candidates are
// then selected greedily, skipping any candidate closer than a minimum
// separation to an already-selected corner, until maxCorners are found or
// candidates are exhausted. Closed paths are scanned circularly so a corner
// at the start point is not missed.
//
// The returned corners are ordered by path index.
func DetectCorners(points []touch.Point, maxCorners int) []Corner {
	n := len(points)
	if n < 5 || maxCorners <= 0 {
		return nil
	}

	window := n / 10
	if window < 2 {
		window = 2
	}

	closed := isClosed(points)

	// Drop an exactly duplicated closing point so circular neighbor
	// lookups do not degenerate.
	if closed && points[0] == points[n-1] {
		points = points[:n-1]
		n--
		if n < 5 {
			return nil
		}
	}

	var candidates []Corner
	lo, hi := window, n-window
	if closed {
		lo, hi = 0, n
	}
	for i := lo; i < hi; i++ {
		prev := points[(i-window+n)%n]
		next := points[(i+window)%n]
		angle := vertexAngle(prev, points[i], next)
		if math.Pi-angle >= minCornerTurn {
			candidates = append(candidates, Corner{Index: i, Point: points[i], Angle: angle})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Sharpest turns first; ties resolved by path order for determinism.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Angle != candidates[j].Angle {
			return candidates[i].Angle < candidates[j].Angle
		}
		return candidates[i].Index < candidates[j].Index
	})

	minSep := cornerSeparationFraction * touch.BoundingBox(points).Diagonal()

	var selected []Corner
	for _, c := range candidates {
		if len(selected) >= maxCorners {
			break
		}
		tooClose := false
		for _, s := range selected {
			if c.Point.Distance(s.Point) < minSep {
				tooClose = true
				break
			}
		}
		if !tooClose {
			selected = append(selected, c)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})
	return selected
}
