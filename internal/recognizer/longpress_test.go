package recognizer

import (
	"testing"

	"github.com/ayusman/mudra/internal/touch"
)

func TestLongPressRecognized(t *testing.T) {
	lp := NewLongPress(DefaultLongPressConfig())

	lp.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	lp.Ingest(touch.NewSample(102, 100, 0.3, touch.PhaseMove))
	lp.Ingest(touch.NewSample(101, 100, 0.7, touch.PhaseEnd))

	if lp.State() != StateRecognized {
		t.Fatalf("state = %v (reason %v), want recognized", lp.State(), lp.FailureReason())
	}
	if lp.HoldDuration() < 0.5 {
		t.Errorf("hold duration = %f, want >= 0.5", lp.HoldDuration())
	}
}

func TestLongPressReleasedTooEarly(t *testing.T) {
	lp := NewLongPress(DefaultLongPressConfig())

	lp.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	lp.Ingest(touch.NewSample(100, 100, 0.2, touch.PhaseEnd))

	if lp.State() != StateFailed {
		t.Fatalf("state = %v, want failed for a 200ms press", lp.State())
	}
}

func TestLongPressMovedTooFar(t *testing.T) {
	lp := NewLongPress(DefaultLongPressConfig())

	lp.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	lp.Ingest(touch.NewSample(150, 100, 0.4, touch.PhaseMove))
	lp.Ingest(touch.NewSample(150, 100, 0.7, touch.PhaseEnd))

	if lp.State() != StateFailed {
		t.Fatalf("state = %v, want failed for 50px movement", lp.State())
	}
	if lp.Movement() < 50 {
		t.Errorf("movement = %f, want >= 50", lp.Movement())
	}
}

func TestLongPressRequiredContacts(t *testing.T) {
	cfg := DefaultLongPressConfig()
	cfg.RequiredContacts = 2
	lp := NewLongPress(cfg)

	lp.Ingest(touch.NewSample(100, 100, 0, touch.PhaseStart))
	lp.Ingest(touch.NewSample(100, 100, 0.7, touch.PhaseEnd))

	if lp.State() != StateFailed {
		t.Fatalf("state = %v, want failed with one contact of two required", lp.State())
	}

	lp.Reset()
	lp.Ingest(twoContactSample(0, 100, 100, 0, touch.PhaseStart))
	lp.Ingest(twoContactSample(1, 120, 100, 0.01, touch.PhaseStart))
	lp.Ingest(twoContactSample(0, 100, 100, 0.7, touch.PhaseEnd))

	if lp.State() != StateRecognized {
		t.Errorf("state = %v (reason %v), want recognized with two contacts", lp.State(), lp.FailureReason())
	}
}

func TestLongPressPressureTooLow(t *testing.T) {
	cfg := DefaultLongPressConfig()
	cfg.MinPressure = 0.5
	lp := NewLongPress(cfg)

	s := touch.NewSample(100, 100, 0, touch.PhaseStart)
	s.Pressure = 0.2
	lp.Ingest(s)

	e := touch.NewSample(100, 100, 0.7, touch.PhaseEnd)
	e.Pressure = 0.2
	lp.Ingest(e)

	if lp.State() != StateFailed {
		t.Fatalf("state = %v, want failed for low pressure", lp.State())
	}
	if lp.FailureReason() != ReasonPressureTooLow {
		t.Errorf("reason = %v, want pressure_too_low", lp.FailureReason())
	}
}
