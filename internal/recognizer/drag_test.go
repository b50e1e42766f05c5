package recognizer

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/touch"
)

func TestDragRecognized(t *testing.T) {
	d := NewDrag(DefaultDragConfig())

	d.Ingest(touch.NewSample(0, 0, 0, touch.PhaseStart))
	d.Ingest(touch.NewSample(60, 80, 0.5, touch.PhaseMove))
	d.Ingest(touch.NewSample(60, 80, 1.0, touch.PhaseEnd))

	if d.State() != StateRecognized {
		t.Fatalf("state = %v (reason %v), want recognized", d.State(), d.FailureReason())
	}
	if got := d.Translation(); got.X != 60 || got.Y != 80 {
		t.Errorf("translation = %v, want (60, 80)", got)
	}
	// 100px over 1s.
	if math.Abs(d.Velocity().Length()-100) > 1e-9 {
		t.Errorf("velocity magnitude = %f, want 100", d.Velocity().Length())
	}
}

func TestDragZeroDistanceFails(t *testing.T) {
	d := NewDrag(DefaultDragConfig())

	d.Ingest(touch.NewSample(50, 50, 0, touch.PhaseStart))
	d.Ingest(touch.NewSample(50, 50, 0.5, touch.PhaseEnd))

	if d.State() != StateFailed {
		t.Fatalf("state = %v, want failed for a zero-distance drag", d.State())
	}
}

func TestDragMomentum(t *testing.T) {
	cfg := DefaultDragConfig()
	cfg.MomentumMultiplier = 2.0
	d := NewDrag(cfg)

	d.Ingest(touch.NewSample(0, 0, 0, touch.PhaseStart))
	d.Ingest(touch.NewSample(100, 0, 1.0, touch.PhaseEnd))

	m := d.Momentum()
	if math.Abs(m.X-200) > 1e-9 || m.Y != 0 {
		t.Errorf("momentum = %v, want (200, 0)", m)
	}
}

func TestDragOutOfBoundsFails(t *testing.T) {
	cfg := DefaultDragConfig()
	cfg.Bounds = &touch.Rect{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50}
	d := NewDrag(cfg)

	d.Ingest(touch.NewSample(0, 0, 0, touch.PhaseStart))
	d.Ingest(touch.NewSample(100, 0, 0.5, touch.PhaseEnd))

	if d.State() != StateFailed {
		t.Fatalf("state = %v, want failed for a 100px drag with 50px bounds", d.State())
	}
	if d.FailureReason() != ReasonInvalidGesture {
		t.Errorf("reason = %v, want invalid_gesture", d.FailureReason())
	}
}
