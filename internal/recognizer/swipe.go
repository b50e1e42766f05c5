package recognizer

import "github.com/ayusman/mudra/internal/touch"

// SwipeConfig holds thresholds for swipe recognition.
type SwipeConfig struct {
	Config
	// MinDistance is the minimum net displacement in pixels.
	MinDistance float64
	// MinVelocity is the minimum average speed in pixels per second.
	MinVelocity float64
	// Allowed restricts the accepted directions. Empty allows all.
	Allowed []Direction
	// DiagonalTolerance overrides DefaultDiagonalTolerance for direction
	// bucketing. Zero uses the default.
	DiagonalTolerance float64
}

// DefaultSwipeConfig returns thresholds for a quick flick in any direction.
func DefaultSwipeConfig() SwipeConfig {
	return SwipeConfig{
		Config:      Config{MaxDuration: 0.8},
		MinDistance: 50,
		MinVelocity: 100,
	}
}

// Swipe recognizes quick directional flicks. Velocity is the net
// displacement over the wall time elapsed since the start sample.
type Swipe struct {
	machine
	cfg SwipeConfig

	displacement touch.Point
	velocity     touch.Point
	duration     float64
	direction    Direction
}

// NewSwipe creates a swipe recognizer with the given configuration.
func NewSwipe(cfg SwipeConfig) *Swipe {
	sw := &Swipe{cfg: cfg}
	sw.machine.init(KindSwipe, cfg.Config, sw)
	return sw
}

// Displacement returns the net displacement vector from the start sample.
func (sw *Swipe) Displacement() touch.Point { return sw.displacement }

// Velocity returns the average velocity vector in pixels per second.
func (sw *Swipe) Velocity() touch.Point { return sw.velocity }

// Duration returns the elapsed time since the start sample in seconds.
func (sw *Swipe) Duration() float64 { return sw.duration }

// Direction returns the resolved direction bucket of the swipe.
func (sw *Swipe) Direction() Direction { return sw.direction }

func (sw *Swipe) begin(s touch.Sample) {}

func (sw *Swipe) update(s touch.Sample) {
	start, ok := sw.StartSample()
	if !ok {
		return
	}

	sw.displacement = s.Position.Sub(start.Position)
	sw.duration = s.Timestamp - start.Timestamp
	if sw.duration > 0 {
		sw.velocity = sw.displacement.Scale(1 / sw.duration)
	} else {
		sw.velocity = touch.Point{}
	}
	sw.direction = ResolveDirection(sw.displacement.X, sw.displacement.Y, sw.cfg.DiagonalTolerance)
}

func (sw *Swipe) validate() (bool, FailureReason) {
	if sw.velocity.Length() < sw.cfg.MinVelocity {
		return false, ReasonVelocityTooLow
	}
	if sw.displacement.Length() < sw.cfg.MinDistance {
		return false, ReasonInvalidGesture
	}
	if sw.cfg.MaxDuration > 0 && sw.duration > sw.cfg.MaxDuration {
		return false, ReasonTimeout
	}
	if len(sw.cfg.Allowed) > 0 && !directionAllowed(sw.direction, sw.cfg.Allowed) {
		return false, ReasonInvalidGesture
	}
	return true, ReasonNone
}

func (sw *Swipe) clear() {
	sw.displacement = touch.Point{}
	sw.velocity = touch.Point{}
	sw.duration = 0
	sw.direction = DirectionNone
}

func directionAllowed(d Direction, allowed []Direction) bool {
	for _, a := range allowed {
		if a == d {
			return true
		}
	}
	return false
}
