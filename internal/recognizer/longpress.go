package recognizer

import "github.com/ayusman/mudra/internal/touch"

// LongPressConfig holds thresholds for long-press recognition.
type LongPressConfig struct {
	Config
	// MinDuration is the minimum hold time in seconds.
	MinDuration float64
	// MaxHold bounds the hold time in seconds. Zero leaves it unbounded.
	MaxHold float64
	// MaxMovement is the maximum drift from the start position in pixels.
	MaxMovement float64
	// RequiredContacts is the number of simultaneous contacts required.
	RequiredContacts int
	// MinPressure rejects presses whose weakest sample falls below this
	// value. Zero disables the check.
	MinPressure float64
}

// DefaultLongPressConfig returns thresholds for a one-finger hold.
func DefaultLongPressConfig() LongPressConfig {
	return LongPressConfig{
		MinDuration:      0.5,
		MaxMovement:      10,
		RequiredContacts: 1,
	}
}

// LongPress recognizes press-and-hold gestures: a contact that stays
// near its start position for at least the configured duration.
type LongPress struct {
	machine
	cfg LongPressConfig

	hold        float64
	movement    float64
	minPressure float64
	// anchors maps each contact to its first observed position; movement
	// is measured per contact against its own anchor.
	anchors map[int]touch.Point
}

// NewLongPress creates a long-press recognizer with the given configuration.
func NewLongPress(cfg LongPressConfig) *LongPress {
	if cfg.RequiredContacts <= 0 {
		cfg.RequiredContacts = 1
	}
	lp := &LongPress{cfg: cfg, minPressure: 1, anchors: make(map[int]touch.Point)}
	lp.machine.init(KindLongPress, cfg.Config, lp)
	return lp
}

// HoldDuration returns the elapsed hold time in seconds.
func (lp *LongPress) HoldDuration() float64 { return lp.hold }

// Movement returns the largest drift of any contact from its anchor
// position, in pixels.
func (lp *LongPress) Movement() float64 { return lp.movement }

func (lp *LongPress) begin(s touch.Sample) {
	lp.anchors[s.Contact] = s.Position
	lp.minPressure = s.Pressure
}

func (lp *LongPress) update(s touch.Sample) {
	anchor, seen := lp.anchors[s.Contact]
	if !seen {
		lp.anchors[s.Contact] = s.Position
		anchor = s.Position
	}
	if s.Pressure < lp.minPressure {
		lp.minPressure = s.Pressure
	}

	start, ok := lp.StartSample()
	if !ok {
		return
	}
	lp.hold = s.Timestamp - start.Timestamp
	if d := s.Position.Distance(anchor); d > lp.movement {
		lp.movement = d
	}
}

func (lp *LongPress) validate() (bool, FailureReason) {
	if lp.hold < lp.cfg.MinDuration {
		return false, ReasonInvalidGesture
	}
	if lp.cfg.MaxHold > 0 && lp.hold > lp.cfg.MaxHold {
		return false, ReasonInvalidGesture
	}
	if lp.cfg.MaxMovement > 0 && lp.movement > lp.cfg.MaxMovement {
		return false, ReasonInvalidGesture
	}
	if len(lp.anchors) < lp.cfg.RequiredContacts {
		return false, ReasonInvalidGesture
	}
	if lp.cfg.MinPressure > 0 && lp.minPressure < lp.cfg.MinPressure {
		return false, ReasonPressureTooLow
	}
	return true, ReasonNone
}

func (lp *LongPress) clear() {
	lp.hold = 0
	lp.movement = 0
	lp.minPressure = 1
	lp.anchors = make(map[int]touch.Point)
}
