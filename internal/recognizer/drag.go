package recognizer

import "github.com/ayusman/mudra/internal/touch"

// DragConfig holds thresholds for drag recognition.
type DragConfig struct {
	Config
	// MinDistance is the minimum translation magnitude in pixels.
	MinDistance float64
	// MinVelocity is the minimum average speed in pixels per second.
	MinVelocity float64
	// MomentumMultiplier scales the release velocity into a momentum
	// vector for projecting post-release motion.
	MomentumMultiplier float64
	// Bounds, when non-nil, constrains the translation vector to an
	// axis-aligned region.
	Bounds *touch.Rect
}

// DefaultDragConfig returns thresholds for an unconstrained drag.
func DefaultDragConfig() DragConfig {
	return DragConfig{
		MinDistance:        1,
		MinVelocity:        1,
		MomentumMultiplier: 0.8,
	}
}

// Drag recognizes pan gestures, tracking the translation vector and an
// average velocity since the start sample.
type Drag struct {
	machine
	cfg DragConfig

	translation touch.Point
	velocity    touch.Point
}

// NewDrag creates a drag recognizer with the given configuration.
func NewDrag(cfg DragConfig) *Drag {
	d := &Drag{cfg: cfg}
	d.machine.init(KindDrag, cfg.Config, d)
	return d
}

// Translation returns the translation vector from the start sample.
func (d *Drag) Translation() touch.Point { return d.translation }

// Velocity returns the average velocity vector in pixels per second.
func (d *Drag) Velocity() touch.Point { return d.velocity }

// Momentum returns the velocity scaled by the configured multiplier,
// projecting motion past the release point.
func (d *Drag) Momentum() touch.Point {
	return d.velocity.Scale(d.cfg.MomentumMultiplier)
}

func (d *Drag) begin(s touch.Sample) {}

func (d *Drag) update(s touch.Sample) {
	start, ok := d.StartSample()
	if !ok {
		return
	}

	d.translation = s.Position.Sub(start.Position)
	if dt := s.Timestamp - start.Timestamp; dt > 0 {
		d.velocity = d.translation.Scale(1 / dt)
	} else {
		d.velocity = touch.Point{}
	}
}

func (d *Drag) validate() (bool, FailureReason) {
	if d.translation.Length() < d.cfg.MinDistance {
		return false, ReasonInvalidGesture
	}
	if d.velocity.Length() < d.cfg.MinVelocity {
		return false, ReasonVelocityTooLow
	}
	if d.cfg.Bounds != nil && !d.cfg.Bounds.Contains(d.translation) {
		return false, ReasonInvalidGesture
	}
	return true, ReasonNone
}

func (d *Drag) clear() {
	d.translation = touch.Point{}
	d.velocity = touch.Point{}
}
