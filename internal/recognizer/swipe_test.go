package recognizer

import (
	"testing"

	"github.com/ayusman/mudra/internal/touch"
)

func TestSwipeRightRecognized(t *testing.T) {
	sw := NewSwipe(DefaultSwipeConfig())

	sw.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	sw.Ingest(touch.NewSample(300, 100, 0.05, touch.PhaseEnd))

	if sw.State() != StateRecognized {
		t.Fatalf("state = %v (reason %v), want recognized", sw.State(), sw.FailureReason())
	}
	if sw.Direction() != DirectionRight {
		t.Errorf("direction = %v, want right", sw.Direction())
	}
	if sw.Velocity().X <= 100 {
		t.Errorf("velocity.x = %f, want > 100", sw.Velocity().X)
	}
}

func TestSwipeTooSlowFails(t *testing.T) {
	sw := NewSwipe(DefaultSwipeConfig())

	sw.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	sw.Ingest(touch.NewSample(110, 100, 1.0, touch.PhaseEnd))

	if sw.State() != StateFailed {
		t.Fatalf("state = %v, want failed", sw.State())
	}
	if sw.FailureReason() != ReasonInvalidGesture && sw.FailureReason() != ReasonVelocityTooLow {
		t.Errorf("reason = %v, want a rejection reason", sw.FailureReason())
	}
}

func TestSwipeDisallowedDirection(t *testing.T) {
	cfg := DefaultSwipeConfig()
	cfg.Allowed = []Direction{DirectionLeft}
	sw := NewSwipe(cfg)

	sw.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	sw.Ingest(touch.NewSample(300, 100, 0.05, touch.PhaseEnd))

	if sw.State() != StateFailed {
		t.Fatalf("state = %v, want failed for a right swipe with only left allowed", sw.State())
	}
}

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Direction
	}{
		{"right", 200, 0, DirectionRight},
		{"left", -200, 0, DirectionLeft},
		{"up", 0, -200, DirectionUp},
		{"down", 0, 200, DirectionDown},
		{"up right diagonal", 100, -100, DirectionUpRight},
		{"up left diagonal", -100, -100, DirectionUpLeft},
		{"down right diagonal", 100, 100, DirectionDownRight},
		{"down left diagonal", -100, 100, DirectionDownLeft},
		{"dominant x wins", 200, 10, DirectionRight},
		{"dominant y wins", 10, 200, DirectionDown},
		{"zero displacement", 0, 0, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDirection(tt.dx, tt.dy, 0)
			if got != tt.want {
				t.Errorf("ResolveDirection(%f, %f) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}
