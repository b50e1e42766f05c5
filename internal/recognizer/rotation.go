package recognizer

import (
	"math"

	"github.com/ayusman/mudra/internal/touch"
)

// RotationConfig holds thresholds for rotation recognition.
type RotationConfig struct {
	Config
	// MinAngle is the minimum |angle delta| in radians.
	MinAngle float64
	// MaxAngle is the maximum |angle delta| in radians.
	MaxAngle float64
}

// DefaultRotationConfig returns thresholds for a two-finger rotation.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		MinAngle: 0.1,
		MaxAngle: 2 * math.Pi,
	}
}

// Rotation recognizes two-point rotation gestures, tracking the signed
// angle between the initial and current bearing of the contact pair.
type Rotation struct {
	machine
	cfg RotationConfig

	contacts       map[int]touch.Point
	order          []int
	initialBearing float64
	currentBearing float64
	haveBearing    bool
}

// NewRotation creates a rotation recognizer with the given configuration.
func NewRotation(cfg RotationConfig) *Rotation {
	r := &Rotation{cfg: cfg, contacts: make(map[int]touch.Point)}
	r.machine.init(KindRotation, cfg.Config, r)
	return r
}

// AngleDelta returns the signed rotation in radians since both contacts
// were first observed, normalized to (-pi, pi].
func (r *Rotation) AngleDelta() float64 {
	if !r.haveBearing {
		return 0
	}
	return normalizeAngle(r.currentBearing - r.initialBearing)
}

func (r *Rotation) begin(s touch.Sample) {
	r.track(s)
}

func (r *Rotation) update(s touch.Sample) {
	r.track(s)

	if len(r.order) < 2 {
		return
	}
	a := r.contacts[r.order[0]]
	b := r.contacts[r.order[1]]
	bearing := a.Bearing(b)
	if !r.haveBearing {
		r.initialBearing = bearing
		r.haveBearing = true
	}
	r.currentBearing = bearing
}

func (r *Rotation) track(s touch.Sample) {
	if _, seen := r.contacts[s.Contact]; !seen {
		r.order = append(r.order, s.Contact)
	}
	r.contacts[s.Contact] = s.Position
}

func (r *Rotation) validate() (bool, FailureReason) {
	if !r.haveBearing {
		return false, ReasonInsufficientSamples
	}
	delta := math.Abs(r.AngleDelta())
	if delta < r.cfg.MinAngle {
		return false, ReasonInvalidGesture
	}
	if r.cfg.MaxAngle > 0 && delta > r.cfg.MaxAngle {
		return false, ReasonInvalidGesture
	}
	return true, ReasonNone
}

func (r *Rotation) clear() {
	r.contacts = make(map[int]touch.Point)
	r.order = r.order[:0]
	r.initialBearing = 0
	r.currentBearing = 0
	r.haveBearing = false
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
