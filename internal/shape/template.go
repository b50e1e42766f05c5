package shape

import (
	"math"
	"sort"
	"sync"

	"github.com/ayusman/mudra/internal/touch"
)

// Template is a user-registered stroke shape for template matching,
// complementing the canonical templates built into Classify.
type Template struct {
	ID        string        // Unique identifier for the template
	Name      string        // Human-readable name
	Path      []touch.Point // Canonical stroke path
	Tolerance float64       // Maximum DTW distance for a match
}

// Match represents a matching result between a stroke and a template.
type Match struct {
	Template *Template // The matched template
	Score    float64   // Match score (0-1, higher is better)
	Distance float64   // Normalized DTW distance
}

// Matcher matches strokes against registered path templates using
// dynamic time warping. It is safe for concurrent use.
type Matcher struct {
	mu        sync.RWMutex
	templates []*Template
}

// NewMatcher creates an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		templates: make([]*Template, 0),
	}
}

// AddTemplate adds a shape template to the matcher.
func (m *Matcher) AddTemplate(t *Template) {
	if t == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates = append(m.templates, t)
}

// RemoveTemplate removes a template by its ID.
func (m *Matcher) RemoveTemplate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.templates {
		if t.ID == id {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return
		}
	}
}

// Templates returns a snapshot of the registered templates.
func (m *Matcher) Templates() []*Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Template, len(m.templates))
	copy(out, m.templates)
	return out
}

// Match finds matching templates for the given stroke.
// Returns matches sorted by score in descending order (best matches first).
func (m *Matcher) Match(points []touch.Point) []Match {
	if len(points) == 0 {
		return nil
	}

	input := normalizePath(points)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Match
	for _, template := range m.templates {
		if len(template.Path) == 0 {
			continue
		}

		candidate := normalizePath(template.Path)
		distance := DTWDistance(input, candidate)
		if math.IsInf(distance, 1) {
			continue
		}

		score := 1.0 / (1.0 + distance)
		if distance <= template.Tolerance {
			matches = append(matches, Match{
				Template: template,
				Score:    score,
				Distance: distance,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// DTWDistance calculates the dynamic time warping distance between two
// strokes, normalized by the longer path length. Returns infinity if
// either path is empty.
func DTWDistance(path1, path2 []touch.Point) float64 {
	n := len(path1)
	m := len(path2)
	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	dtw := make([][]float64, n+1)
	for i := range dtw {
		dtw[i] = make([]float64, m+1)
		for j := range dtw[i] {
			dtw[i][j] = math.Inf(1)
		}
	}
	dtw[0][0] = 0

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := path1[i-1].Distance(path2[j-1])
			dtw[i][j] = cost + min3(dtw[i-1][j], dtw[i][j-1], dtw[i-1][j-1])
		}
	}

	longer := n
	if m > longer {
		longer = m
	}
	return dtw[n][m] / float64(longer)
}

// normalizePath scales each axis independently into the 0-1 range. A
// degenerate axis (zero range) collapses to 0, so straight horizontal and
// vertical strokes still normalize.
func normalizePath(points []touch.Point) []touch.Point {
	if len(points) == 0 {
		return nil
	}

	box := touch.BoundingBox(points)
	rangeX := box.Width()
	rangeY := box.Height()

	norm := make([]touch.Point, len(points))
	for i, p := range points {
		var x, y float64
		if rangeX > 0 {
			x = (p.X - box.MinX) / rangeX
		}
		if rangeY > 0 {
			y = (p.Y - box.MinY) / rangeY
		}
		norm[i] = touch.Point{X: x, Y: y}
	}
	return norm
}

// min3 returns the minimum of three float64 values.
func min3(a, b, c float64) float64 {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
