package shape

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/touch"
)

func TestMatcherMatchesSimilarStroke(t *testing.T) {
	m := NewMatcher()
	m.AddTemplate(&Template{
		ID:        "zigzag",
		Name:      "Zigzag",
		Path:      []touch.Point{{X: 0, Y: 0}, {X: 50, Y: 100}, {X: 100, Y: 0}, {X: 150, Y: 100}},
		Tolerance: 0.5,
	})

	// Same stroke drawn at twice the size and offset.
	input := []touch.Point{{X: 200, Y: 200}, {X: 300, Y: 400}, {X: 400, Y: 200}, {X: 500, Y: 400}}
	matches := m.Match(input)

	if len(matches) == 0 {
		t.Fatal("expected a match for a scaled copy of the template")
	}
	if matches[0].Template.ID != "zigzag" {
		t.Errorf("matched template = %q, want zigzag", matches[0].Template.ID)
	}
	if matches[0].Score < 0.9 {
		t.Errorf("score = %f, want >= 0.9 for an identical normalized stroke", matches[0].Score)
	}
}

func TestMatcherRejectsDissimilarStroke(t *testing.T) {
	m := NewMatcher()
	m.AddTemplate(&Template{
		ID:        "horizontal",
		Name:      "Horizontal",
		Path:      []touch.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}},
		Tolerance: 0.1,
	})

	matches := m.Match(circlePoints(100, 100, 50, 20))
	if len(matches) != 0 {
		t.Errorf("expected no match, got %d (distance %f)", len(matches), matches[0].Distance)
	}
}

func TestMatcherAddRemoveTemplate(t *testing.T) {
	m := NewMatcher()
	m.AddTemplate(&Template{ID: "a", Path: []touch.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Tolerance: 1})
	m.AddTemplate(&Template{ID: "b", Path: []touch.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, Tolerance: 1})
	m.AddTemplate(nil)

	if len(m.Templates()) != 2 {
		t.Fatalf("template count = %d, want 2", len(m.Templates()))
	}

	m.RemoveTemplate("a")
	if len(m.Templates()) != 1 || m.Templates()[0].ID != "b" {
		t.Error("expected only template b to remain")
	}
}

func TestDTWDistance(t *testing.T) {
	a := []touch.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1}}

	if d := DTWDistance(a, a); d != 0 {
		t.Errorf("self distance = %f, want 0", d)
	}
	if d := DTWDistance(a, nil); !math.IsInf(d, 1) {
		t.Errorf("distance to empty path = %f, want +inf", d)
	}

	b := []touch.Point{{X: 0, Y: 1}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}}
	if d := DTWDistance(a, b); d <= 0 {
		t.Errorf("distance between different paths = %f, want > 0", d)
	}
}
